package handlers

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"server/internal/domain"
	"server/internal/quota"
)

type subscriptionStatusResponse struct {
	Tier           string `json:"tier"`
	IsActive       bool   `json:"is_active"`
	DailyLimit     int    `json:"daily_limit"`
	Remaining      any    `json:"remaining"`
	ResetsAt       string `json:"resets_at"`
	ClientTimezone string `json:"client_timezone,omitempty"`
}

// SubscriptionStatus reports the tier and how many generations remain today.
// Premium renders remaining as the string "unlimited". When a GeoIP database
// is configured, the reset instant is also echoed with the caller's timezone
// as a display hint.
func (a *App) SubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	resp := subscriptionStatusResponse{
		Tier:       string(domain.TierFree),
		DailyLimit: a.Gate.Limit(),
		ResetsAt:   a.Gate.NextReset().Format(time.RFC3339),
	}

	sub, err := a.Subscriptions.GetByUser(r.Context(), userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		a.domainError(w, err)
		return
	}
	if sub != nil {
		resp.Tier = string(sub.Tier)
		resp.IsActive = sub.IsActive
	}

	remaining, err := a.Gate.Remaining(r.Context(), userID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if remaining == quota.Unlimited {
		resp.Remaining = "unlimited"
	} else {
		resp.Remaining = remaining
	}

	if a.Timezones != nil {
		if tz, err := a.Timezones.Timezone(clientIP(r)); err == nil && tz != "" {
			resp.ClientTimezone = tz
		}
	}

	a.json(w, http.StatusOK, resp)
}

func clientIP(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
