package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// StatusError reports a non-2xx answer from the bot API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bot api status %d", e.Code)
}

// TelegramGateway delivers login codes through the Telegram bot API.
type TelegramGateway struct {
	apiBase string
	token   string
	client  *http.Client
}

// NewTelegramGateway creates a bot API gateway. Returns nil when no
// token is configured so the caller can fall back to a no-op.
func NewTelegramGateway(apiBase, token string, client *http.Client) *TelegramGateway {
	if token == "" {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &TelegramGateway{apiBase: apiBase, token: token, client: client}
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// SendCode sends the login code to the user's Telegram chat.
func (g *TelegramGateway) SendCode(ctx context.Context, chatID int64, code string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID: chatID,
		Text:   fmt.Sprintf("Ваш код для входа в Mogilev Express: %s", code),
	})
	if err != nil {
		return fmt.Errorf("marshal sendMessage: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", g.apiBase, g.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("send login code: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}
