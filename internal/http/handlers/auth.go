package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/quota"
)

const (
	bcryptCost     = 12
	tokenLifetime  = 24 * time.Hour
	tokenIssuer    = "wod-api"
	tokenAudience  = "wod-clients"
	minPasswordLen = 6
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Level     string `json:"level"`
	Location  string `json:"location"`
	Equipment string `json:"equipment"`
	Injuries  string `json:"injuries"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type userDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Level     string `json:"level"`
	Location  string `json:"location"`
	Equipment string `json:"equipment"`
	Injuries  string `json:"injuries,omitempty"`
	Tier      string `json:"tier"`
}

// Register creates an account with a free active subscription and returns a
// signed access token.
func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		a.error(w, http.StatusBadRequest, "bad_request", "valid email required")
		return
	}
	if len(req.Password) < minPasswordLen {
		a.error(w, http.StatusBadRequest, "bad_request", "password must be at least 6 characters")
		return
	}

	user := &domain.User{
		Email:     req.Email,
		Name:      strings.TrimSpace(req.Name),
		Level:     domain.Level(req.Level),
		Location:  domain.Location(req.Location),
		Equipment: domain.Equipment(req.Equipment),
		Injuries:  strings.TrimSpace(req.Injuries),
	}
	applyProfileDefaults(user)
	if err := validateProfile(user); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		a.Logger.Error().Err(err).Msg("hash password failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	user.PasswordHash = string(hash)

	created, err := a.Users.Create(r.Context(), user)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			a.error(w, http.StatusConflict, "conflict", "email already registered")
			return
		}
		a.Logger.Error().Err(err).Msg("create user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to persist user")
		return
	}

	sub, err := a.Subscriptions.Upsert(r.Context(), &domain.Subscription{
		UserID:   created.ID,
		Tier:     domain.TierFree,
		IsActive: true,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("create subscription failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to persist subscription")
		return
	}

	token, err := a.signToken(created.ID, sub.Tier)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusCreated, authResponse{Token: token, User: userToDTO(created, sub.Tier)})
}

// Login exchanges credentials for an access token.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := a.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		a.Logger.Error().Err(err).Msg("load user failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}

	tier := a.tierFor(r, user.ID)
	token, err := a.signToken(user.ID, tier)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, authResponse{Token: token, User: userToDTO(user, tier)})
}

type meResponse struct {
	userDTO
	Remaining any `json:"remaining"`
}

// Me returns the authenticated user's profile along with today's remaining
// generations.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	user, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	remaining, err := a.Gate.Remaining(r.Context(), userID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	resp := meResponse{userDTO: userToDTO(user, a.tierFor(r, userID))}
	if remaining == quota.Unlimited {
		resp.Remaining = "unlimited"
	} else {
		resp.Remaining = remaining
	}
	a.json(w, http.StatusOK, resp)
}

type profileUpdateRequest struct {
	Name      string `json:"name"`
	Level     string `json:"level"`
	Location  string `json:"location"`
	Equipment string `json:"equipment"`
	Injuries  string `json:"injuries"`
}

// UpdateProfile replaces the workout profile defaults.
func (a *App) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	user, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	user.Level = domain.Level(req.Level)
	user.Location = domain.Location(req.Location)
	user.Equipment = domain.Equipment(req.Equipment)
	user.Injuries = strings.TrimSpace(req.Injuries)
	applyProfileDefaults(user)
	if err := validateProfile(user); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	updated, err := a.Users.UpdateProfile(r.Context(), user)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, userToDTO(updated, a.tierFor(r, userID)))
}

func (a *App) signToken(userID string, tier domain.SubscriptionTier) (string, error) {
	return middleware.SignJWT(a.JWTSecret, middleware.TokenClaims{
		Sub:      userID,
		Tier:     string(tier),
		Exp:      time.Now().Add(tokenLifetime).Unix(),
		Issuer:   tokenIssuer,
		Audience: tokenAudience,
	})
}

// tierFor is best effort for display purposes only; gating never trusts it.
func (a *App) tierFor(r *http.Request, userID string) domain.SubscriptionTier {
	sub, err := a.Subscriptions.GetByUser(r.Context(), userID)
	if err != nil || !sub.IsActive {
		return domain.TierFree
	}
	return sub.Tier
}

func applyProfileDefaults(u *domain.User) {
	if u.Level == "" {
		u.Level = domain.LevelBeginner
	}
	if u.Location == "" {
		u.Location = domain.LocationGym
	}
	if u.Equipment == "" {
		u.Equipment = domain.EquipmentFull
	}
}

func validateProfile(u *domain.User) error {
	if !u.Level.Valid() {
		return errors.New("unknown level")
	}
	if !u.Location.Valid() {
		return errors.New("unknown location")
	}
	if !u.Equipment.Valid() {
		return errors.New("unknown equipment")
	}
	return nil
}

func userToDTO(u *domain.User, tier domain.SubscriptionTier) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Level:     string(u.Level),
		Location:  string(u.Location),
		Equipment: string(u.Equipment),
		Injuries:  u.Injuries,
		Tier:      string(tier),
	}
}
