package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/portfolio-cms/internal/model"
)

func TestSendCode(t *testing.T) {
	var received postmarkEmail
	var gotToken string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Postmark-Server-Token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"MessageID": "test-id"}`))
	}))
	defer server.Close()

	client := NewPostmarkClient("test-token", "noreply@example.com",
		WithEndpoint(server.URL), WithHTTPClient(server.Client()))

	require.NoError(t, client.SendCode(context.Background(), "owner@example.com", "482913"))

	assert.Equal(t, "test-token", gotToken)
	assert.Equal(t, "owner@example.com", received.To)
	assert.Equal(t, "noreply@example.com", received.From)
	assert.Equal(t, "Your Admin Login Code", received.Subject)
	assert.Contains(t, received.HtmlBody, "482913")
	assert.Contains(t, received.HtmlBody, "10 minutes")
	assert.Contains(t, received.TextBody, "482913")
}

func TestSendCodeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewPostmarkClient("test-token", "noreply@example.com", WithEndpoint(server.URL))

	err := client.SendCode(context.Background(), "owner@example.com", "482913")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestSendCodeNotConfigured(t *testing.T) {
	client := NewPostmarkClient("", "noreply@example.com")

	err := client.SendCode(context.Background(), "owner@example.com", "482913")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSendCodeHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server watches the connection and cancels
		// r.Context() when the client disconnects.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewPostmarkClient("test-token", "noreply@example.com", WithEndpoint(server.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Error(t, client.SendCode(ctx, "owner@example.com", "482913"))
}

func TestForward(t *testing.T) {
	var received webhookPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	f := NewForwarder(server.URL, server.Client())
	require.True(t, f.Configured())

	msg := &model.Message{
		Name:      "Ada",
		Email:     "ada@example.com",
		Message:   "Hello there",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.Forward(context.Background(), msg))

	assert.Equal(t, "Ada", received.Name)
	assert.Equal(t, "ada@example.com", received.Email)
	assert.Equal(t, "Hello there", received.Message)
	assert.Equal(t, "2026-03-01T12:00:00.000Z", received.Timestamp)
}

func TestForwardErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewForwarder(server.URL, nil)
	assert.Error(t, f.Forward(context.Background(), &model.Message{}))

	assert.False(t, NewForwarder("", nil).Configured())
	var nilForwarder *Forwarder
	assert.False(t, nilForwarder.Configured())
}
