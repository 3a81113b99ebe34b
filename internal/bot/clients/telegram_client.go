package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/central-university-dev/musicclub-bot/internal/bot/domain"
	"github.com/central-university-dev/musicclub-bot/internal/common/metrics"
	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
)

const telegramService = "telegram"

type TelegramClient struct {
	bot    *tgbotapi.BotAPI
	logger *slog.Logger
}

func NewTelegramClient(token string, logger *slog.Logger) (*TelegramClient, error) {
	return NewTelegramClientWithEndpoint(token, tgbotapi.APIEndpoint, logger)
}

// NewTelegramClientWithEndpoint позволяет указать другой адрес Bot API (локальный сервер или тесты).
func NewTelegramClientWithEndpoint(token, endpoint string, logger *slog.Logger) (*TelegramClient, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: 90 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании Telegram клиента: %w", err)
	}

	logger.Info("Telegram клиент авторизован", "username", bot.Self.UserName)

	return &TelegramClient{
		bot:    bot,
		logger: logger,
	}, nil
}

func (c *TelegramClient) SendReply(_ context.Context, chatID int64, reply *models.Reply) error {
	if reply == nil || reply.Text == "" {
		return nil
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)

	if keyboard, ok := buildKeyboard(reply.Buttons); ok {
		msg.ReplyMarkup = keyboard
	}

	start := time.Now()
	_, err := c.bot.Send(msg)

	metrics.RecordHTTPRequest(telegramService, "sendMessage", statusOf(err), time.Since(start))

	if err != nil {
		return fmt.Errorf("ошибка при отправке сообщения: %w", err)
	}

	return nil
}

func (c *TelegramClient) AnswerCallback(_ context.Context, callbackID string) error {
	start := time.Now()
	_, err := c.bot.Request(tgbotapi.NewCallback(callbackID, ""))

	metrics.RecordHTTPRequest(telegramService, "answerCallbackQuery", statusOf(err), time.Since(start))

	if err != nil {
		return fmt.Errorf("ошибка при ответе на нажатие кнопки: %w", err)
	}

	return nil
}

func (c *TelegramClient) SetMyCommands(_ context.Context, commands []domain.BotCommand) error {
	botAPICommands := make([]tgbotapi.BotCommand, 0, len(commands))
	for _, cmd := range commands {
		botAPICommands = append(botAPICommands, tgbotapi.BotCommand{
			Command:     cmd.Command,
			Description: cmd.Description,
		})
	}

	_, err := c.bot.Request(tgbotapi.NewSetMyCommands(botAPICommands...))
	if err != nil {
		return fmt.Errorf("ошибка при установке команд бота: %w", err)
	}

	return nil
}

func (c *TelegramClient) GetBot() *tgbotapi.BotAPI {
	return c.bot
}

// buildKeyboard размещает каждую кнопку в отдельном ряду.
func buildKeyboard(buttons []models.Button) (tgbotapi.InlineKeyboardMarkup, bool) {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))

	for _, b := range buttons {
		switch {
		case b.Action != "":
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(b.Text, string(b.Action))))
		case b.URL != "":
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL)))
		}
	}

	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func statusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) && tgErr.Code != 0 {
		return tgErr.Code
	}

	return 0
}
