package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"backoffice/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(t *testing.T, handler http.HandlerFunc) *ResendNotifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	notifier, err := NewResendNotifier("re_test", "panel@example.com", "https://panel.example.com/")
	require.NoError(t, err)
	notifier.client.BaseURL, err = url.Parse(server.URL + "/")
	require.NoError(t, err)
	return notifier
}

func TestResendNotifier_SendsAccountVerifiedMail(t *testing.T) {
	var payload map[string]any
	notifier := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	})

	err := notifier.SendAccountVerified(context.Background(), entity.User{Name: "<Ann>", Email: "ann@x.com"})

	require.NoError(t, err)
	assert.Equal(t, "panel@example.com", payload["from"])
	assert.Equal(t, []any{"ann@x.com"}, payload["to"])
	assert.Contains(t, payload["html"], "&lt;Ann&gt;")
	assert.Contains(t, payload["text"], "https://panel.example.com/admin/login")
}

func TestResendNotifier_CancelledContextSkipsRequest(t *testing.T) {
	var hits atomic.Int32
	notifier := newTestNotifier(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := notifier.SendAccountVerified(ctx, entity.User{Name: "Ann", Email: "ann@x.com"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, hits.Load())
}

func TestResendNotifier_APIErrorIsReturned(t *testing.T) {
	notifier := newTestNotifier(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"invalid from"}`))
	})

	err := notifier.SendAccountVerified(context.Background(), entity.User{Name: "Ann", Email: "ann@x.com"})

	assert.ErrorContains(t, err, "resend")
}
