package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog/log"

	"github.com/folio/portfolio-cms/internal/audit"
	"github.com/folio/portfolio-cms/internal/challenge"
	"github.com/folio/portfolio-cms/internal/config"
	apperrors "github.com/folio/portfolio-cms/internal/errors"
	"github.com/folio/portfolio-cms/internal/httputil"
	"github.com/folio/portfolio-cms/internal/middleware"
	"github.com/folio/portfolio-cms/internal/util"
)

// Authenticator issues login codes and trades them for the admin
// credential.
type Authenticator interface {
	IssueChallenge(ctx context.Context, identity string) error
	Authorize(ctx context.Context, identity, code string) (string, error)
}

type AuthHandler struct {
	auth          Authenticator
	redeemLimiter *middleware.RedeemRateLimiter
	secureCookie  bool
}

func NewAuthHandler(auth Authenticator, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		auth:          auth,
		redeemLimiter: middleware.NewRedeemRateLimiter(),
		secureCookie:  secureCookie,
	}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(httprate.LimitByIP(config.PublicPostLimitPerMin, time.Minute)).Post("/challenge", h.Challenge)
	r.With(h.redeemLimiter.Handler).Post("/redeem", h.Redeem)
	r.Post("/logout", h.Logout)

	return r
}

type challengeRequest struct {
	Identity string `json:"identity"`
	Email    string `json:"email"`
}

type redeemRequest struct {
	Identity string `json:"identity"`
	Email    string `json:"email"`
	Code     string `json:"code"`
	OTP      string `json:"otp"`
}

// POST /challenge
func (h *AuthHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	identity := strings.TrimSpace(firstNonEmpty(req.Identity, req.Email))
	masked := util.MaskEmail(identity)

	err := h.auth.IssueChallenge(r.Context(), identity)
	switch {
	case err == nil:
		audit.LogFromRequest(r, audit.Event{Type: audit.EventChallengeIssued, Identity: masked})
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"message": "Code sent to your email",
		})
	case errors.Is(err, challenge.ErrUnauthorized):
		audit.LogFromRequest(r, audit.Event{Type: audit.EventChallengeDenied, Identity: masked})
		httputil.WriteError(w, apperrors.Unauthorized("Unauthorized"))
	case errors.Is(err, challenge.ErrRateLimited):
		audit.LogFromRequest(r, audit.Event{Type: audit.EventRateLimitExceed, Identity: masked})
		httputil.WriteError(w, apperrors.RateLimitExceeded())
	case errors.Is(err, challenge.ErrNotification):
		log.Error().Err(err).Msg("failed to deliver login code")
		audit.LogFromRequest(r, audit.Event{Type: audit.EventNotificationFail, Identity: masked})
		httputil.WriteError(w, apperrors.UpstreamNotification(err))
	default:
		log.Error().Err(err).Msg("failed to issue login challenge")
		httputil.WriteError(w, apperrors.Internal("Failed to send code"))
	}
}

// POST /redeem
func (h *AuthHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	identity := strings.TrimSpace(firstNonEmpty(req.Identity, req.Email))
	code := strings.TrimSpace(firstNonEmpty(req.Code, req.OTP))
	masked := util.MaskEmail(identity)

	token, err := h.auth.Authorize(r.Context(), identity, code)
	if err != nil && !errors.Is(err, challenge.ErrUnauthorized) {
		log.Error().Err(err).Msg("challenge redemption failed")
		httputil.WriteError(w, apperrors.Internal("Verification failed"))
		return
	}
	if err != nil {
		audit.LogFromRequest(r, audit.Event{Type: audit.EventLoginFailure, Identity: masked})
		httputil.WriteError(w, apperrors.InvalidCode())
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventLoginSuccess, Identity: masked})
	middleware.SetSessionCookie(w, token, h.secureCookie)
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"success": true,
		"token":   token,
	})
}

// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.secureCookie)
	audit.LogFromRequest(r, audit.Event{Type: audit.EventLogout})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
