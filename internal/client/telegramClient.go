package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"quote-storefront/internal/config"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

var ErrCircuitOpen = errors.New("telegram circuit open")

// TelegramClient delivers HTML-formatted messages to the configured bot chat.
type TelegramClient interface {
	SendMessage(ctx context.Context, text string) error
}

type telegramClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	botToken   string
	chatID     string
	breaker    *gobreaker.CircuitBreaker[struct{}]
}

type telegramSendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NewTelegramClient returns a client with its own circuit breaker. Callers
// that must not share failure accounting take separate clients.
func NewTelegramClient(cfg *config.Telegram, name string, log *zap.Logger) TelegramClient {
	return &telegramClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: cfg.BaseApiURL,
		botToken:   cfg.BotToken,
		chatID:     cfg.ChatID,
		breaker: gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:        "telegram-" + name,
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("circuit breaker state change",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}),
	}
}

func (c *telegramClientImpl) SendMessage(ctx context.Context, text string) error {
	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.sendMessage(ctx, text)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return err
}

func (c *telegramClientImpl) sendMessage(ctx context.Context, text string) error {
	if c.botToken == "" || c.chatID == "" {
		return fmt.Errorf("telegram bot token or chat id not configured")
	}

	body, err := json.Marshal(telegramSendMessageRequest{
		ChatID:                c.chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("marshal req payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseApiURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var result telegramResponse
	if err := json.Unmarshal(respBody, &result); err != nil && resp.StatusCode < 300 {
		return fmt.Errorf("decode telegram response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !result.OK {
		return fmt.Errorf(
			"telegram send failed: status=%d description=%s",
			resp.StatusCode,
			result.Description,
		)
	}

	return nil
}
