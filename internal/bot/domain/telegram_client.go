package domain

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
)

type TelegramClientAPI interface {
	SendReply(ctx context.Context, chatID int64, reply *models.Reply) error

	AnswerCallback(ctx context.Context, callbackID string) error

	SetMyCommands(ctx context.Context, commands []BotCommand) error

	GetBot() *tgbotapi.BotAPI
}

type BotCommand struct {
	Command     string
	Description string
}
