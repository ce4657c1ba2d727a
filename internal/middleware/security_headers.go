package middleware

import (
	"net/http"
)

// SecurityHeaders hardens the admin pages. HSTS is sent only when the
// site is served over TLS, which is every environment but development.
type SecurityHeaders struct {
	hsts bool
}

func NewSecurityHeaders(hsts bool) *SecurityHeaders {
	return &SecurityHeaders{hsts: hsts}
}

const adminCSP = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline'; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data: https:; " +
	"font-src 'self'; " +
	"connect-src 'self'; " +
	"frame-ancestors 'none'; " +
	"base-uri 'self'; " +
	"form-action 'self'"

func (m *SecurityHeaders) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		h.Set("Content-Security-Policy", adminCSP)
		// Admin pages carry the owner's draft content.
		h.Set("Cache-Control", "no-store")

		if m.hsts {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
