package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"quote-storefront/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTelegramClient_SendMessage(t *testing.T) {
	var got telegramSendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:abc/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	c := NewTelegramClient(&config.Telegram{BaseApiURL: srv.URL, BotToken: "123:abc", ChatID: "-100"}, "test", zap.NewNop())

	err := c.SendMessage(context.Background(), "<b>hello</b>")
	require.NoError(t, err)
	assert.Equal(t, "-100", got.ChatID)
	assert.Equal(t, "<b>hello</b>", got.Text)
	assert.Equal(t, "HTML", got.ParseMode)
}

func TestTelegramClient_NotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	c := NewTelegramClient(&config.Telegram{BaseApiURL: srv.URL, BotToken: "t", ChatID: "c"}, "test", zap.NewNop())

	err := c.SendMessage(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestTelegramClient_NotConfigured(t *testing.T) {
	c := NewTelegramClient(&config.Telegram{BaseApiURL: "http://127.0.0.1:1"}, "test", zap.NewNop())
	assert.Error(t, c.SendMessage(context.Background(), "hi"))
}

func TestTelegramClient_CircuitOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewTelegramClient(&config.Telegram{BaseApiURL: srv.URL, BotToken: "t", ChatID: "c"}, "test", zap.NewNop())

	for i := 0; i < 5; i++ {
		err := c.SendMessage(context.Background(), "hi")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCircuitOpen)
	}

	err := c.SendMessage(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(5), calls.Load())
}

func TestTelegramClient_SeparateBreakers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/botbad/sendMessage" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	visitors := NewTelegramClient(&config.Telegram{BaseApiURL: srv.URL, BotToken: "bad", ChatID: "c"}, "visitors", zap.NewNop())
	orders := NewTelegramClient(&config.Telegram{BaseApiURL: srv.URL, BotToken: "good", ChatID: "c"}, "orders", zap.NewNop())

	for i := 0; i < 6; i++ {
		visitors.SendMessage(context.Background(), "hi")
	}
	assert.ErrorIs(t, visitors.SendMessage(context.Background(), "hi"), ErrCircuitOpen)
	assert.NoError(t, orders.SendMessage(context.Background(), "order"))
}
