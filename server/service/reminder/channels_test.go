package reminder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelRegistry_DeliveredWhenOneSucceeds(t *testing.T) {
	registry := NewChannelRegistry()
	failing := &recordingSender{fail: true}
	working := &recordingSender{}
	registry.Register(failing)
	registry.Register(working)

	err := registry.Send(context.Background(), "u-1", "hello")
	require.NoError(t, err)
	assert.Len(t, working.all(), 1)
}

func TestChannelRegistry_AllFail(t *testing.T) {
	registry := NewChannelRegistry()
	registry.Register(&recordingSender{fail: true})

	err := registry.Send(context.Background(), "u-1", "hello")
	assert.Error(t, err)
}

func TestChannelRegistry_Empty(t *testing.T) {
	registry := NewChannelRegistry()

	err := registry.Send(context.Background(), "u-1", "hello")
	assert.Error(t, err)
}

func TestTelegramSender(t *testing.T) {
	var got telegramMessage
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := NewTelegramSender("test-token")
	sender.baseURL = server.URL

	err := sender.Send(context.Background(), "12345", "time to call mum")
	require.NoError(t, err)
	assert.Equal(t, "/bottest-token/sendMessage", path)
	assert.Equal(t, "12345", got.ChatID)
	assert.Equal(t, "time to call mum", got.Text)
}

func TestTelegramSender_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusForbidden)
	}))
	defer server.Close()

	sender := NewTelegramSender("test-token")
	sender.baseURL = server.URL

	err := sender.Send(context.Background(), "12345", "hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestLogSender(t *testing.T) {
	sender := NewLogSender()
	assert.Equal(t, "log", sender.Name())
	assert.NoError(t, sender.Send(context.Background(), "u-1", "hello"))
}
