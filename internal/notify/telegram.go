package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

const defaultTelegramAPI = "https://api.telegram.org"

// Telegram sends alerts as bot messages to a fixed chat.
type Telegram struct {
	apiURL     string
	token      string
	chatID     string
	httpClient *http.Client
}

// TelegramOption configures a Telegram notifier.
type TelegramOption func(*Telegram)

// WithTelegramAPI overrides the API base URL.
func WithTelegramAPI(base string) TelegramOption {
	return func(t *Telegram) { t.apiURL = strings.TrimRight(base, "/") }
}

// WithTelegramHTTPClient sets a custom HTTP client.
func WithTelegramHTTPClient(hc *http.Client) TelegramOption {
	return func(t *Telegram) { t.httpClient = hc }
}

// NewTelegram creates a Telegram notifier.
func NewTelegram(token, chatID string, opts ...TelegramOption) *Telegram {
	t := &Telegram{
		apiURL: defaultTelegramAPI,
		token:  token,
		chatID: chatID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name implements Notifier.
func (t *Telegram) Name() string { return "telegram" }

// Send implements Notifier.
func (t *Telegram) Send(ctx context.Context, a model.Alert) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.apiURL, t.token)

	form := url.Values{}
	form.Set("chat_id", t.chatID)
	form.Set("text", formatAlert(a))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram sendMessage failed: status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}

// formatAlert renders one alert as a plain-text message.
func formatAlert(a model.Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", a.Severity, a.Message)
	if a.Ticker != "" {
		fmt.Fprintf(&b, "\nTicker: %s", a.Ticker)
	}
	fmt.Fprintf(&b, "\nCIK: %d", a.CIK)
	return b.String()
}

var _ Notifier = (*Telegram)(nil)
