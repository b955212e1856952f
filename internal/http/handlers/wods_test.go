package handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/providers/wodgen"
	"server/internal/wod"
)

func sampleWod(id, userID string) domain.GeneratedWod {
	return domain.GeneratedWod{
		ID:     id,
		UserID: userID,
		Title:  "Engine Builder",
		Saved:  true,
		Parameters: domain.WodParameters{
			Location:  domain.LocationHome,
			Equipment: domain.EquipmentBodyweight,
			Level:     domain.LevelBeginner,
		},
		Sections: []domain.WodSection{
			{Title: "Warm-up", Type: domain.SectionWarmup, Duration: "8 min", Movements: []string{"Jumping jacks"}, Order: 0},
			{Title: "Strength", Type: domain.SectionStrength, Movements: []string{"Push-up progression"}, Order: 1},
			{Title: "Metcon", Type: domain.SectionMetcon, Description: "3 rounds", Movements: []string{"Burpees"}, Order: 2},
			{Title: "Cool-down", Type: domain.SectionCooldown, Duration: "5 min", Movements: []string{"Stretch"}, Order: 3},
		},
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestGenerateWod(t *testing.T) {
	app, _, _ := newTestApp()
	app.Wods = &fakeWodService{
		generateFn: func(_ context.Context, userID string, params wodgen.Params) (*wod.View, error) {
			if userID != "user-1" {
				t.Fatalf("userID = %q", userID)
			}
			if params.Location != domain.LocationHome {
				t.Fatalf("location = %q", params.Location)
			}
			return &wod.View{ID: "wod-1", Title: "Engine Builder"}, nil
		},
	}

	body := `{"location":"HOME","equipment":"BODYWEIGHT","level":"BEGINNER"}`
	rec := httptest.NewRecorder()
	app.GenerateWod(rec, authedRequest(http.MethodPost, "/v1/wods/generate", "user-1", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var view wod.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.ID != "wod-1" {
		t.Fatalf("view id = %q", view.ID)
	}
}

func TestGenerateWodErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind string
	}{
		{"quota", fmt.Errorf("%w: Daily limit of 2 WODs reached", domain.ErrQuotaExceeded), http.StatusForbidden, "quota_exceeded"},
		{"validation", fmt.Errorf("%w: missing required parameters", domain.ErrValidation), http.StatusBadRequest, "bad_request"},
		{"upstream", fmt.Errorf("%w: status 500", domain.ErrUpstream), http.StatusBadGateway, "upstream_error"},
		{"malformed", fmt.Errorf("%w: missing \"metcon\"", domain.ErrMalformedResponse), http.StatusBadGateway, "invalid_response"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, _, _ := newTestApp()
			app.Wods = &fakeWodService{
				generateFn: func(context.Context, string, wodgen.Params) (*wod.View, error) {
					return nil, tc.err
				},
			}
			body := `{"location":"HOME","equipment":"BODYWEIGHT","level":"BEGINNER"}`
			rec := httptest.NewRecorder()
			app.GenerateWod(rec, authedRequest(http.MethodPost, "/v1/wods/generate", "user-1", body))
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp["code"] != tc.wantKind {
				t.Fatalf("code = %q, want %q", resp["code"], tc.wantKind)
			}
		})
	}
}

func TestGenerateWodUpstreamFailureIsLoggedAsFault(t *testing.T) {
	app, _, _ := newTestApp()
	var logs bytes.Buffer
	app.Logger = zerolog.New(&logs)
	app.Wods = &fakeWodService{
		generateFn: func(context.Context, string, wodgen.Params) (*wod.View, error) {
			return nil, fmt.Errorf("%w: openai status 503", domain.ErrUpstream)
		},
	}

	body := `{"location":"HOME","equipment":"BODYWEIGHT","level":"BEGINNER"}`
	rec := httptest.NewRecorder()
	app.GenerateWod(rec, authedRequest(http.MethodPost, "/v1/wods/generate", "user-1", body))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
	if logs.Len() == 0 {
		t.Fatal("upstream failure produced no log entry")
	}
	if !strings.Contains(logs.String(), "openai status 503") {
		t.Fatalf("log entry does not carry the cause: %s", logs.String())
	}
}

func TestGenerateWodMalformedResponseIsNotLogged(t *testing.T) {
	app, _, _ := newTestApp()
	var logs bytes.Buffer
	app.Logger = zerolog.New(&logs)
	app.Wods = &fakeWodService{
		generateFn: func(context.Context, string, wodgen.Params) (*wod.View, error) {
			return nil, fmt.Errorf("%w: missing %q", domain.ErrMalformedResponse, "metcon")
		},
	}

	body := `{"location":"HOME","equipment":"BODYWEIGHT","level":"BEGINNER"}`
	rec := httptest.NewRecorder()
	app.GenerateWod(rec, authedRequest(http.MethodPost, "/v1/wods/generate", "user-1", body))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
	if logs.Len() != 0 {
		t.Fatalf("malformed response should not log a fault, got: %s", logs.String())
	}
}

func TestGenerateWodRequiresAuth(t *testing.T) {
	app, _, _ := newTestApp()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/wods/generate", bytes.NewReader([]byte(`{}`)))
	app.GenerateWod(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestSaveWod(t *testing.T) {
	app, _, _ := newTestApp()
	app.Wods = &fakeWodService{
		saveFn: func(_ context.Context, userID, wodID string) (*domain.GeneratedWod, error) {
			if wodID != "wod-7" {
				t.Fatalf("wodID = %q", wodID)
			}
			w := sampleWod(wodID, userID)
			return &w, nil
		},
	}

	rec := httptest.NewRecorder()
	req := withURLParam(authedRequest(http.MethodPost, "/v1/wods/wod-7/save", "user-1", ""), "id", "wod-7")
	app.SaveWod(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["saved"] != true {
		t.Fatalf("saved = %v", resp["saved"])
	}
}

func TestSaveWodPremiumRequired(t *testing.T) {
	app, _, _ := newTestApp()
	app.Wods = &fakeWodService{
		saveFn: func(context.Context, string, string) (*domain.GeneratedWod, error) {
			return nil, domain.ErrPremiumRequired
		},
	}
	rec := httptest.NewRecorder()
	req := withURLParam(authedRequest(http.MethodPost, "/v1/wods/wod-7/save", "user-1", ""), "id", "wod-7")
	app.SaveWod(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestCompleteWod(t *testing.T) {
	app, _, _ := newTestApp()
	app.Wods = &fakeWodService{
		completeFn: func(_ context.Context, userID, wodID string, input wod.CompleteInput) (*domain.WodProgress, error) {
			if input.Duration == nil || *input.Duration != 1200 {
				t.Fatalf("duration = %v", input.Duration)
			}
			return &domain.WodProgress{ID: "prog-1", UserID: userID, WodID: wodID, Duration: input.Duration, CompletedAt: time.Now()}, nil
		},
	}

	body := `{"duration":1200,"rating":4,"notes":"felt strong"}`
	rec := httptest.NewRecorder()
	req := withURLParam(authedRequest(http.MethodPost, "/v1/wods/wod-7/complete", "user-1", body), "id", "wod-7")
	app.CompleteWod(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestCompleteWodDuplicateConflicts(t *testing.T) {
	app, _, _ := newTestApp()
	app.Wods = &fakeWodService{
		completeFn: func(context.Context, string, string, wod.CompleteInput) (*domain.WodProgress, error) {
			return nil, domain.ErrConflict
		},
	}
	rec := httptest.NewRecorder()
	req := withURLParam(authedRequest(http.MethodPost, "/v1/wods/wod-7/complete", "user-1", `{}`), "id", "wod-7")
	app.CompleteWod(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestCompleteWodRejectsBadRating(t *testing.T) {
	app, _, _ := newTestApp()
	rec := httptest.NewRecorder()
	req := withURLParam(authedRequest(http.MethodPost, "/v1/wods/wod-7/complete", "user-1", `{"rating":9}`), "id", "wod-7")
	app.CompleteWod(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestWodHistory(t *testing.T) {
	app, _, _ := newTestApp()
	app.Wods = &fakeWodService{
		historyFn: func(_ context.Context, userID string) ([]domain.GeneratedWod, error) {
			return []domain.GeneratedWod{sampleWod("wod-1", userID)}, nil
		},
		savedFn: func(_ context.Context, userID string) ([]domain.GeneratedWod, error) {
			return nil, nil
		},
	}

	t.Run("full history", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.WodHistory(rec, authedRequest(http.MethodGet, "/v1/wods/history", "user-1", ""))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Wods []historyItemDTO `json:"wods"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Wods) != 1 {
			t.Fatalf("wods = %d, want 1", len(resp.Wods))
		}
		if len(resp.Wods[0].Sections) != 4 {
			t.Fatalf("sections = %d, want 4", len(resp.Wods[0].Sections))
		}
	})

	t.Run("saved filter returns empty list not null", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.WodHistory(rec, authedRequest(http.MethodGet, "/v1/wods/history?saved=true", "user-1", ""))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp struct {
			Wods []historyItemDTO `json:"wods"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Wods == nil || len(resp.Wods) != 0 {
			t.Fatalf("wods = %v, want empty slice", resp.Wods)
		}
	})
}

func TestWodHistoryPremiumRequired(t *testing.T) {
	app, _, _ := newTestApp()
	app.Wods = &fakeWodService{
		historyFn: func(context.Context, string) ([]domain.GeneratedWod, error) {
			return nil, domain.ErrPremiumRequired
		},
	}
	rec := httptest.NewRecorder()
	app.WodHistory(rec, authedRequest(http.MethodGet, "/v1/wods/history", "user-1", ""))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["code"] != "premium_required" {
		t.Fatalf("code = %q", resp["code"])
	}
}

func TestExportWods(t *testing.T) {
	app, _, _ := newTestApp()
	app.Wods = &fakeWodService{
		savedFn: func(_ context.Context, userID string) ([]domain.GeneratedWod, error) {
			return []domain.GeneratedWod{sampleWod("wod-1", userID)}, nil
		},
	}

	rec := httptest.NewRecorder()
	app.ExportWods(rec, authedRequest(http.MethodGet, "/v1/wods/export", "user-1", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Fatalf("content type = %q", ct)
	}
	reader, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(reader.File) != 1 {
		t.Fatalf("archive entries = %d, want 1", len(reader.File))
	}
}
