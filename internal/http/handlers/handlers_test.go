package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/providers/wodgen"
	"server/internal/wod"
)

type fakeUsers struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	nextID  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, domain.ErrConflict
	}
	f.nextID++
	u := *user
	if u.ID == "" {
		u.ID = strings.Repeat("u", f.nextID)
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.byID[u.ID] = &u
	f.byEmail[u.Email] = &u
	return &u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsers) UpdateProfile(_ context.Context, user *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.byID[user.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	existing.Name = user.Name
	existing.Level = user.Level
	existing.Location = user.Location
	existing.Equipment = user.Equipment
	existing.Injuries = user.Injuries
	existing.UpdatedAt = time.Now()
	copied := *existing
	return &copied, nil
}

type fakeSubscriptions struct {
	mu     sync.Mutex
	byUser map[string]*domain.Subscription
}

func newFakeSubscriptions() *fakeSubscriptions {
	return &fakeSubscriptions{byUser: map[string]*domain.Subscription{}}
}

func (f *fakeSubscriptions) GetByUser(_ context.Context, userID string) (*domain.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.byUser[userID]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSubscriptions) Upsert(_ context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := *sub
	if s.ID == "" {
		s.ID = "sub-" + s.UserID
	}
	f.byUser[s.UserID] = &s
	copied := s
	return &copied, nil
}

type fakeWodService struct {
	generateFn func(ctx context.Context, userID string, params wodgen.Params) (*wod.View, error)
	saveFn     func(ctx context.Context, userID, wodID string) (*domain.GeneratedWod, error)
	completeFn func(ctx context.Context, userID, wodID string, input wod.CompleteInput) (*domain.WodProgress, error)
	historyFn  func(ctx context.Context, userID string) ([]domain.GeneratedWod, error)
	savedFn    func(ctx context.Context, userID string) ([]domain.GeneratedWod, error)
}

func (f *fakeWodService) Generate(ctx context.Context, userID string, params wodgen.Params) (*wod.View, error) {
	return f.generateFn(ctx, userID, params)
}

func (f *fakeWodService) Save(ctx context.Context, userID, wodID string) (*domain.GeneratedWod, error) {
	return f.saveFn(ctx, userID, wodID)
}

func (f *fakeWodService) Complete(ctx context.Context, userID, wodID string, input wod.CompleteInput) (*domain.WodProgress, error) {
	return f.completeFn(ctx, userID, wodID, input)
}

func (f *fakeWodService) History(ctx context.Context, userID string) ([]domain.GeneratedWod, error) {
	return f.historyFn(ctx, userID)
}

func (f *fakeWodService) SavedWods(ctx context.Context, userID string) ([]domain.GeneratedWod, error) {
	return f.savedFn(ctx, userID)
}

type fakeGate struct {
	remaining int
	limit     int
	reset     time.Time
}

func (f *fakeGate) Remaining(context.Context, string) (int, error) { return f.remaining, nil }
func (f *fakeGate) Limit() int                                     { return f.limit }
func (f *fakeGate) NextReset() time.Time                           { return f.reset }

func newTestApp() (*App, *fakeUsers, *fakeSubscriptions) {
	users := newFakeUsers()
	subs := newFakeSubscriptions()
	app := &App{
		Logger:        zerolog.Nop(),
		JWTSecret:     "test-secret",
		Users:         users,
		Subscriptions: subs,
		Gate:          &fakeGate{remaining: 2, limit: 2, reset: time.Now().Add(time.Hour)},
	}
	return app, users, subs
}

// authedRequest builds a request whose context already carries a user id, the
// way the auth middleware would after verifying a token.
func authedRequest(method, target, userID string, body string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

// withURLParam attaches a chi route parameter to the request context so
// handlers using chi.URLParam can be exercised without a router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
