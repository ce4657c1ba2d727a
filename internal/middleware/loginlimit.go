package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/folio/portfolio-cms/internal/audit"
)

const (
	redeemMaxAttempts    = 5
	redeemWindowDuration = time.Minute
	redeemCleanupPeriod  = 5 * time.Minute

	// redeemPeekLimit bounds how much of the body is read to find the identity.
	redeemPeekLimit = 4 << 10
)

type redeemWindow struct {
	count       int
	windowStart time.Time
}

// RedeemRateLimiter caps code redemption attempts per client host and per
// identity. A six digit code survives wrong guesses, so guessing has to be
// slow, and rotating addresses must not widen the budget for one identity.
type RedeemRateLimiter struct {
	mu          sync.Mutex
	windows     map[string]*redeemWindow
	lastCleanup time.Time
	now         func() time.Time
}

func NewRedeemRateLimiter() *RedeemRateLimiter {
	return &RedeemRateLimiter{
		windows:     make(map[string]*redeemWindow),
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

// cleanup must be called with mu held.
func (l *RedeemRateLimiter) cleanup(now time.Time) {
	if now.Sub(l.lastCleanup) < redeemCleanupPeriod {
		return
	}
	l.lastCleanup = now

	for key, win := range l.windows {
		if now.Sub(win.windowStart) > redeemWindowDuration {
			delete(l.windows, key)
		}
	}
}

// allow counts one attempt against every non-empty key and returns the
// seconds until the window reopens when any of them is exhausted. Nothing is
// counted on denial.
func (l *RedeemRateLimiter) allow(keys ...string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.cleanup(now)

	for _, key := range keys {
		if key == "" {
			continue
		}
		win, exists := l.windows[key]
		if exists && now.Sub(win.windowStart) <= redeemWindowDuration && win.count >= redeemMaxAttempts {
			left := redeemWindowDuration - now.Sub(win.windowStart)
			return false, int(left.Seconds()) + 1
		}
	}

	for _, key := range keys {
		if key == "" {
			continue
		}
		win, exists := l.windows[key]
		if !exists || now.Sub(win.windowStart) > redeemWindowDuration {
			l.windows[key] = &redeemWindow{count: 1, windowStart: now}
			continue
		}
		win.count++
	}
	return true, 0
}

// clientHost drops the port so a fresh connection does not get a fresh window.
func clientHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// redeemIdentity reads the identity out of the body and puts the body back
// for the handler. Either the identity or the legacy email field is accepted.
func redeemIdentity(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, redeemPeekLimit))
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), r.Body))
	if err != nil {
		return ""
	}

	var fields struct {
		Identity string `json:"identity"`
		Email    string `json:"email"`
	}
	if json.Unmarshal(raw, &fields) != nil {
		return ""
	}
	identity := fields.Identity
	if identity == "" {
		identity = fields.Email
	}
	return strings.ToLower(strings.TrimSpace(identity))
}

func (l *RedeemRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hostKey := "host:" + clientHost(r.RemoteAddr)
		identityKey := ""
		if identity := redeemIdentity(r); identity != "" {
			identityKey = "identity:" + identity
		}

		allowed, retryAfter := l.allow(hostKey, identityKey)
		if !allowed {
			audit.LogFromRequest(r, audit.Event{Type: audit.EventRateLimitExceed})
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error": "Too many login attempts. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
