// Package telegram sends club notifications through the Telegram Bot
// API: booking requests go to the manager chat, sync failures to the
// admin chat.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"clubhouse-backend/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"

	"log/slog"
)

var tracer = otel.Tracer("services/telegram")

type Config struct {
	Token string `json:"token"`
	// chat that receives booking requests
	ManagerChatId int64 `json:"manager_chat_id"`
	// chat that receives system alerts
	AdminChatId int64 `json:"admin_chat_id"`
	// overridable for tests
	ApiUrl string `json:"api_url"`
}

type Bot struct {
	http *resty.Client
	cfg  Config
}

func NewBot(cfg Config) *Bot {
	apiUrl := cfg.ApiUrl
	if apiUrl == "" {
		apiUrl = "https://api.telegram.org"
	}

	client := resty.New()
	client.SetBaseURL(fmt.Sprintf("%s/bot%s", apiUrl, cfg.Token))
	client.SetTimeout(time.Second * 10)
	restyutil.InstrumentClient(client, tracer)

	return &Bot{http: client, cfg: cfg}
}

func (b *Bot) SendMessage(ctx context.Context, chatId int64, text string) error {
	res, err := b.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"chat_id":    strconv.FormatInt(chatId, 10),
			"text":       text,
			"parse_mode": "Markdown",
		}).
		Post("/sendMessage")
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("send telegram message: status %d: %s", res.StatusCode(), res.String())
	}
	return nil
}

// NotifyManager forwards a booking request to the manager chat.
func (b *Bot) NotifyManager(ctx context.Context, text string) error {
	if b.cfg.ManagerChatId == 0 {
		return fmt.Errorf("manager chat is not configured")
	}
	return b.SendMessage(ctx, b.cfg.ManagerChatId, text)
}

// SystemAlert tells the admin chat that something broke. Alerting is
// best effort: a failure here is logged, never propagated, so a dead
// bot cannot take the sync cycle down with it.
func (b *Bot) SystemAlert(ctx context.Context, message string) {
	if b == nil || b.cfg.AdminChatId == 0 {
		return
	}
	if err := b.SendMessage(ctx, b.cfg.AdminChatId, message); err != nil {
		slog.WarnContext(ctx, "failed to deliver system alert", "err", err)
	}
}
