package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yeremiapane/food-order-bot/utils"
)

// Bot membungkus transport Telegram (long-poll) di atas Handler.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
}

func New(token string, deps Deps) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	utils.InfoLogger.Printf("Telegram bot authorized as @%s", api.Self.UserName)

	return &Bot{
		api:     api,
		handler: NewHandler(api, deps),
	}, nil
}

// Start menarik update sampai context dibatalkan. Tiap update diproses di
// goroutine sendiri supaya satu chat yang lambat tidak memblokir chat lain;
// urutan per chat dijaga oleh lock di Handler.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			go b.handler.HandleUpdate(update)
		}
	}
}
