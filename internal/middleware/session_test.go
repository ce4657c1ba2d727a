package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestGate_Authorized(t *testing.T) {
	gate := NewGate(testSecret, "/admin/login")

	assert.True(t, gate.Authorized(testSecret))
	assert.False(t, gate.Authorized(""))
	assert.False(t, gate.Authorized("wrong"))
	assert.False(t, gate.Authorized(testSecret+"x"))

	t.Run("unset secret denies everything", func(t *testing.T) {
		open := NewGate("", "/admin/login")
		assert.False(t, open.Authorized(""))
		assert.False(t, open.Authorized("anything"))
	})
}

func TestGate_API(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		header string
		status int
	}{
		{"valid bearer", testSecret, "Bearer " + testSecret, http.StatusOK},
		{"lowercase scheme", testSecret, "bearer " + testSecret, http.StatusUnauthorized},
		{"padded token", testSecret, "Bearer  " + testSecret + " ", http.StatusUnauthorized},
		{"trailing space", testSecret, "Bearer " + testSecret + " ", http.StatusUnauthorized},
		{"missing header", testSecret, "", http.StatusUnauthorized},
		{"empty token", testSecret, "Bearer ", http.StatusUnauthorized},
		{"wrong token", testSecret, "Bearer nope", http.StatusUnauthorized},
		{"basic scheme", testSecret, "Basic " + testSecret, http.StatusUnauthorized},
		{"no secret configured", "", "Bearer ", http.StatusUnauthorized},
		{"no secret configured, any token", "", "Bearer anything", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewGate(tc.secret, "/admin/login").API(okHandler)

			req := httptest.NewRequest(http.MethodPost, "/content/hero", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
			}
		})
	}

	t.Run("cookie alone does not pass the API gate", func(t *testing.T) {
		handler := NewGate(testSecret, "/admin/login").API(okHandler)
		req := httptest.NewRequest(http.MethodPost, "/content/hero", nil)
		req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: testSecret})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGate_Browser(t *testing.T) {
	gate := NewGate(testSecret, "/admin/login")
	handler := gate.Browser(okHandler)

	serve := func(path, cookie string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: cookie})
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("login page is always allowed", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve("/admin/login", "").Code)
	})

	t.Run("missing cookie redirects to login", func(t *testing.T) {
		rec := serve("/admin/dashboard", "")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	})

	t.Run("wrong cookie redirects to login", func(t *testing.T) {
		assert.Equal(t, http.StatusFound, serve("/admin/dashboard", "stale").Code)
	})

	t.Run("lookalike path is not exempt", func(t *testing.T) {
		assert.Equal(t, http.StatusFound, serve("/admin/login-backdoor", "").Code)
	})

	t.Run("valid cookie passes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve("/admin/dashboard", testSecret).Code)
	})

	t.Run("unset secret still redirects", func(t *testing.T) {
		open := NewGate("", "/admin/login").Browser(okHandler)
		req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
		req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: ""})
		rec := httptest.NewRecorder()
		open.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusFound, rec.Code)
	})
}

func TestSessionCookie(t *testing.T) {
	t.Run("set cookie attributes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SetSessionCookie(rec, testSecret, true)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, AdminSessionCookie, c.Name)
		assert.Equal(t, testSecret, c.Value)
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, 7*24*60*60, c.MaxAge)
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	})

	t.Run("development drops Secure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SetSessionCookie(rec, testSecret, false)
		assert.False(t, rec.Result().Cookies()[0].Secure)
	})

	t.Run("clear expires the cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ClearSessionCookie(rec, true)
		c := rec.Result().Cookies()[0]
		assert.Equal(t, AdminSessionCookie, c.Name)
		assert.Empty(t, c.Value)
		assert.Less(t, c.MaxAge, 0)
	})
}
