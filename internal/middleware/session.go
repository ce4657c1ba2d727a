package middleware

import (
	"net/http"
	"strings"

	"github.com/folio/portfolio-cms/internal/audit"
	"github.com/folio/portfolio-cms/internal/config"
	"github.com/folio/portfolio-cms/internal/util"
)

const AdminSessionCookie = "admin_session"

// Gate admits a request only when it presents the configured admin secret,
// either as the session cookie or as a bearer token.
type Gate struct {
	secret    string
	loginPath string
}

func NewGate(secret, loginPath string) *Gate {
	return &Gate{secret: secret, loginPath: loginPath}
}

// Authorized fails closed: with no secret configured nothing matches.
func (g *Gate) Authorized(token string) bool {
	return g.secret != "" && token != "" && util.ConstantTimeEqual(token, g.secret)
}

// Browser guards page navigation. The login page is always reachable and
// every other denied request is redirected to it.
func (g *Gate) Browser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == g.loginPath || strings.HasPrefix(r.URL.Path, g.loginPath+"/") {
			next.ServeHTTP(w, r)
			return
		}

		var token string
		if cookie, err := r.Cookie(AdminSessionCookie); err == nil {
			token = cookie.Value
		}

		if !g.Authorized(token) {
			http.Redirect(w, r, g.loginPath, http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// API guards privileged API calls with an Authorization: Bearer header.
func (g *Gate) API(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Authorized(BearerToken(r)) {
			audit.LogFromRequest(r, audit.Event{
				Type:    audit.EventAuthFailure,
				Details: map[string]interface{}{"path": r.URL.Path},
			})
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// BearerToken returns everything after a literal "Bearer " prefix, untouched.
func BearerToken(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return token
}

func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminSessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
