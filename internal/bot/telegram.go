package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tartampluch/go-thienco/internal/config"
)

// Update is the subset of a Telegram update the bot reads.
type Update struct {
	UpdateID int64
	Message  *Message
}

// Message is an incoming or sent Telegram message.
type Message struct {
	MessageID int64
	Chat      Chat
	Text      string
}

type Chat struct {
	ID int64
}

// Client adapts tgbotapi.BotAPI to the API interface.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	token   string
}

// NewClient creates a client whose timeout exceeds the long-polling window.
// No request is made until the first call.
func NewClient(token string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: config.HTTPTimeout},
		BaseURL: config.TelegramAPIBase,
		token:   token,
	}
}

// SendMessage posts Markdown text to chatID and returns the new message id.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) (int64, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	sent, err := c.api(ctx).Send(msg)
	if err != nil {
		return 0, c.wrap(config.TelegramMethodSend, err)
	}
	return int64(sent.MessageID), nil
}

// DeleteMessage removes a message sent earlier.
func (c *Client) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	_, err := c.api(ctx).Request(tgbotapi.NewDeleteMessage(chatID, int(messageID)))
	return c.wrap(config.TelegramMethodDel, err)
}

// GetUpdates long-polls for updates with an id >= offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, error) {
	cfg := tgbotapi.NewUpdate(int(offset))
	cfg.Timeout = timeout
	cfg.AllowedUpdates = []string{"message"}

	raw, err := c.api(ctx).GetUpdates(cfg)
	if err != nil {
		return nil, c.wrap(config.TelegramMethodPoll, err)
	}

	updates := make([]Update, 0, len(raw))
	for _, u := range raw {
		out := Update{UpdateID: int64(u.UpdateID)}
		if m := u.Message; m != nil {
			out.Message = &Message{MessageID: int64(m.MessageID), Text: m.Text}
			if m.Chat != nil {
				out.Message.Chat.ID = m.Chat.ID
			}
		}
		updates = append(updates, out)
	}
	return updates, nil
}

// api returns a BotAPI bound to ctx. The SDK issues requests without a
// context, so cancellation is attached by the HTTP client. Building the
// struct directly skips the getMe round trip made by the SDK constructors.
func (c *Client) api(ctx context.Context) *tgbotapi.BotAPI {
	api := &tgbotapi.BotAPI{
		Token:  c.token,
		Client: contextDoer{ctx: ctx, http: c.HTTP},
	}
	api.SetAPIEndpoint(c.BaseURL + config.TelegramEndpointPath)
	return api
}

// wrap maps SDK errors to APIError or to a request error stripped of the
// token-bearing URL.
func (c *Client) wrap(method string, err error) error {
	if err == nil {
		return nil
	}
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompBot),
		slog.String(config.LogKeyMethod, method),
	)

	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		log.Warn(config.ErrTelegramAPI,
			slog.Int(config.LogKeyStatus, apiErr.Code),
			slog.String(config.LogKeyError, apiErr.Message),
		)
		return &APIError{Code: apiErr.Code, Description: apiErr.Message}
	}

	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", config.ErrTelegramRequest, redact(uerr))
	}

	log.Warn(config.ErrTelegramDecode, slog.String(config.LogKeyError, err.Error()))
	return fmt.Errorf("%s: %w", config.ErrTelegramDecode, err)
}

// contextDoer attaches ctx and the User-Agent to every SDK request.
type contextDoer struct {
	ctx  context.Context
	http *http.Client
}

func (d contextDoer) Do(req *http.Request) (*http.Response, error) {
	req = req.WithContext(d.ctx)
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	return d.http.Do(req)
}

// APIError is a refusal reported by the Bot API.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %d %s", config.ErrTelegramAPI, e.Code, e.Description)
}

// redact drops the URL, which embeds the bot token.
func redact(uerr *url.Error) error {
	return fmt.Errorf("%s %s: %w", uerr.Op, config.TelegramAPIBase, uerr.Err)
}
