package wodgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"server/internal/domain"
)

// planKeys are the required top-level fields, in contract order.
var planKeys = []string{"title", "warmUp", "strengthSkill", "metcon", "coolDown"}

// ParsePlan turns raw completion text into a validated Plan. The model is
// expected-but-not-guaranteed to answer with bare JSON; a single surrounding
// code fence (with or without a language tag) and leading/trailing prose are
// stripped before the structural parse. All failures map to
// domain.ErrMalformedResponse.
func ParsePlan(raw string) (*Plan, error) {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty completion", domain.ErrMalformedResponse)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	for _, key := range planKeys {
		if emptyField(fields[key]) {
			return nil, fmt.Errorf("%w: missing %q", domain.ErrMalformedResponse, key)
		}
	}

	var plan Plan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if strings.TrimSpace(plan.Title) == "" {
		return nil, fmt.Errorf("%w: missing %q", domain.ErrMalformedResponse, "title")
	}
	return &plan, nil
}

func emptyField(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	switch trimmed {
	case "", "null", `""`, "{}", "[]":
		return true
	}
	return false
}

func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
