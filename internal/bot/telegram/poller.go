package telegram

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/central-university-dev/musicclub-bot/internal/bot/domain"
	"github.com/central-university-dev/musicclub-bot/internal/bot/i18n"
	"github.com/central-university-dev/musicclub-bot/internal/common/metrics"
	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
)

type BotService interface {
	ProcessCommand(ctx context.Context, command *models.Command) (*models.Reply, error)

	ProcessMessage(ctx context.Context, profile models.UserProfile, text string) (*models.Reply, error)

	ProcessAction(ctx context.Context, profile models.UserProfile, data string) (*models.Reply, error)
}

// Poller получает обновления long polling'ом и обрабатывает их по одному.
type Poller struct {
	telegramClient domain.TelegramClientAPI
	botService     BotService
	localizer      *i18n.Localizer
	pollTimeout    int
	handlerTimeout time.Duration
	logger         *slog.Logger

	started  atomic.Bool
	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

func NewPoller(
	telegramClient domain.TelegramClientAPI,
	botService BotService,
	localizer *i18n.Localizer,
	pollTimeout int,
	handlerTimeout time.Duration,
	logger *slog.Logger,
) *Poller {
	return &Poller{
		telegramClient: telegramClient,
		botService:     botService,
		localizer:      localizer,
		pollTimeout:    pollTimeout,
		handlerTimeout: handlerTimeout,
		logger:         logger,
		stopChan:       make(chan struct{}),
		done:           make(chan struct{}),
	}
}

func (p *Poller) Start() {
	p.logger.Info("Запуск Telegram поллера")

	bot := p.telegramClient.GetBot()
	if bot == nil {
		p.logger.Error("Не удалось получить доступ к API бота")
		return
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = p.pollTimeout
	u.AllowedUpdates = []string{"message", "callback_query"}

	p.started.Store(true)

	go p.run(bot.GetUpdatesChan(u))
}

func (p *Poller) run(updates tgbotapi.UpdatesChannel) {
	defer close(p.done)

	for {
		select {
		case <-p.stopChan:
			p.logger.Info("Получен сигнал остановки поллера")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}

			p.HandleUpdate(&update)
		}
	}
}

// Close останавливает получение обновлений и дожидается обработки текущего.
func (p *Poller) Close() error {
	p.stopOnce.Do(func() {
		p.logger.Info("Остановка Telegram поллера")

		if bot := p.telegramClient.GetBot(); bot != nil {
			bot.StopReceivingUpdates()
		}

		close(p.stopChan)
	})

	if p.started.Load() {
		<-p.done
	}

	return nil
}

func (p *Poller) HandleUpdate(update *tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(context.Background(), p.handlerTimeout)
	defer cancel()

	switch {
	case update.CallbackQuery != nil:
		p.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil:
		p.handleMessage(ctx, update.Message)
	}
}

func (p *Poller) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	profile := profileOf(message.From)
	chatID := message.Chat.ID

	p.logger.Info("Получено сообщение",
		"chat_id", chatID,
		"chat_user_id", profile.ChatUserID,
		"username", profile.Username,
	)

	var (
		reply *models.Reply
		err   error
	)

	if message.IsCommand() {
		metrics.RecordUserMessage("command")

		reply, err = p.botService.ProcessCommand(ctx, &models.Command{
			Type:    models.ParseCommandType("/" + message.Command()),
			ChatID:  chatID,
			Text:    message.Text,
			Args:    message.CommandArguments(),
			Profile: profile,
		})
	} else {
		metrics.RecordUserMessage("message")

		reply, err = p.botService.ProcessMessage(ctx, profile, message.Text)
	}

	p.respond(ctx, chatID, profile, reply, err)
}

func (p *Poller) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	metrics.RecordUserMessage("callback")

	if err := p.telegramClient.AnswerCallback(ctx, query.ID); err != nil {
		p.logger.Warn("Ошибка при ответе на нажатие кнопки", "error", err, "callback_id", query.ID)
	}

	if query.From == nil {
		return
	}

	profile := profileOf(query.From)

	chatID := profile.ChatUserID
	if query.Message != nil && query.Message.Chat != nil {
		chatID = query.Message.Chat.ID
	}

	p.logger.Info("Получено нажатие кнопки",
		"chat_id", chatID,
		"chat_user_id", profile.ChatUserID,
		"data", query.Data,
	)

	reply, err := p.botService.ProcessAction(ctx, profile, query.Data)

	p.respond(ctx, chatID, profile, reply, err)
}

func (p *Poller) respond(ctx context.Context, chatID int64, profile models.UserProfile, reply *models.Reply, err error) {
	if err != nil {
		p.logger.Error("Ошибка при обработке обновления",
			"error", err,
			"chat_id", chatID,
		)

		if reply == nil {
			reply = models.NewReply(p.localizer.Text(i18n.LocaleFor(profile.LanguageCode), i18n.KeyErrorGeneric))
		}
	}

	if reply == nil {
		return
	}

	if err := p.telegramClient.SendReply(ctx, chatID, reply); err != nil {
		p.logger.Error("Ошибка при отправке ответа",
			"error", err,
			"chat_id", chatID,
		)
	}
}

func profileOf(user *tgbotapi.User) models.UserProfile {
	return models.UserProfile{
		ChatUserID:   user.ID,
		Username:     user.UserName,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		LanguageCode: user.LanguageCode,
	}
}
