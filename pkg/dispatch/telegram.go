package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dskvich/selfie-sender/pkg/domain"
)

type telegramTransport struct {
	token       string
	apiEndpoint string
	hc          *http.Client
}

// NewTelegramTransport sends the image as a photo through the Bot API. The
// bot is authorized lazily on first delivery so no request is made before
// the image exists.
func NewTelegramTransport(token string, hc *http.Client) (*telegramTransport, error) {
	if token == "" {
		return nil, &domain.ConfigurationError{Setting: "TELEGRAM_BOT_TOKEN"}
	}
	if hc == nil {
		hc = &http.Client{}
	}
	return &telegramTransport{
		token:       token,
		apiEndpoint: tgbotapi.APIEndpoint,
		hc:          hc,
	}, nil
}

func (t *telegramTransport) Name() string { return "telegram" }

func (t *telegramTransport) Deliver(ctx context.Context, channel, text, media string) error {
	photo, err := newPhoto(channel, media)
	if err != nil {
		return &domain.DispatchError{Transport: t.Name(), Err: err}
	}
	photo.Caption = text

	bot, err := tgbotapi.NewBotAPIWithClient(t.token, t.apiEndpoint, t.hc)
	if err != nil {
		return &domain.DispatchError{Transport: t.Name(), Err: fmt.Errorf("creating bot api instance: %w", err)}
	}

	slog.DebugContext(ctx, "Authorized on telegram", "account", bot.Self.UserName)

	msg, err := bot.Send(photo)
	if err != nil {
		dispatchErr := &domain.DispatchError{Transport: t.Name(), Err: fmt.Errorf("sending photo: %w", err)}
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) {
			dispatchErr.StatusCode = apiErr.Code
		}
		return dispatchErr
	}

	slog.DebugContext(ctx, "Photo sent", "messageID", msg.MessageID)
	return nil
}

// newPhoto addresses a numeric chat id or an @channel username.
func newPhoto(channel, media string) (tgbotapi.PhotoConfig, error) {
	file := tgbotapi.FileURL(media)

	if strings.HasPrefix(channel, "@") {
		return tgbotapi.NewPhotoToChannel(channel, file), nil
	}

	chatID, err := strconv.ParseInt(channel, 10, 64)
	if err != nil {
		return tgbotapi.PhotoConfig{}, fmt.Errorf("invalid telegram chat %q", channel)
	}
	return tgbotapi.NewPhoto(chatID, file), nil
}
