package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/central-university-dev/musicclub-bot/internal/bot/i18n"
	domainerrors "github.com/central-university-dev/musicclub-bot/internal/domain/errors"
	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
)

type AuthConfirmer interface {
	Confirm(ctx context.Context, token uuid.UUID, chatUserID int64) bool
}

type CalendarConversation interface {
	Start(ctx context.Context, profile models.UserProfile) *models.Reply

	ConfirmEmail(ctx context.Context, profile models.UserProfile, accepted bool) *models.Reply

	HandleMessage(ctx context.Context, profile models.UserProfile, text string) *models.Reply

	Detach(ctx context.Context, profile models.UserProfile) *models.Reply
}

// BotService распределяет команды, сообщения и нажатия кнопок по сценариям.
// Возвращённый nil-ответ означает, что отвечать не нужно.
type BotService struct {
	auth      AuthConfirmer
	calendar  CalendarConversation
	localizer *i18n.Localizer
	webAppURL string
	logger    *slog.Logger
}

func NewBotService(
	auth AuthConfirmer,
	calendar CalendarConversation,
	localizer *i18n.Localizer,
	webAppURL string,
	logger *slog.Logger,
) *BotService {
	return &BotService{
		auth:      auth,
		calendar:  calendar,
		localizer: localizer,
		webAppURL: webAppURL,
		logger:    logger,
	}
}

func (s *BotService) ProcessCommand(ctx context.Context, command *models.Command) (*models.Reply, error) {
	locale := i18n.LocaleFor(command.Profile.LanguageCode)

	//nolint:exhaustive // CommandUnknown обрабатывается в блоке default
	switch command.Type {
	case models.CommandStart:
		if command.Args == "" {
			return s.handleStart(locale), nil
		}

		return s.handleDeepLink(ctx, locale, command), nil
	case models.CommandHelp:
		return models.NewReply(s.localizer.Text(locale, i18n.KeyHelpStart)), nil
	case models.CommandCalendar:
		return s.calendar.Start(ctx, command.Profile), nil
	case models.CommandCalendarDetach:
		return s.calendar.Detach(ctx, command.Profile), nil
	default:
		return models.NewReply(s.localizer.Text(locale, i18n.KeyHelpStart)),
			&domainerrors.ErrUnknownCommand{Command: command.Text}
	}
}

func (s *BotService) ProcessMessage(ctx context.Context, profile models.UserProfile, text string) (*models.Reply, error) {
	return s.calendar.HandleMessage(ctx, profile, text), nil
}

func (s *BotService) ProcessAction(ctx context.Context, profile models.UserProfile, data string) (*models.Reply, error) {
	//nolint:exhaustive // ActionUnknown обрабатывается в блоке default
	switch models.ParseAction(data) {
	case models.ActionCalendarAttach:
		return s.calendar.Start(ctx, profile), nil
	case models.ActionEmailConfirmYes:
		return s.calendar.ConfirmEmail(ctx, profile, true), nil
	case models.ActionEmailConfirmNo:
		return s.calendar.ConfirmEmail(ctx, profile, false), nil
	default:
		s.logger.Debug("Неизвестное действие кнопки", "data", data, "chat_user_id", profile.ChatUserID)
		return nil, nil
	}
}

func (s *BotService) handleStart(locale i18n.Locale) *models.Reply {
	text := s.localizer.Text(locale, i18n.KeyStartWelcome)

	if s.webAppURL == "" {
		return models.NewReply(text)
	}

	return models.NewReply(text, models.Button{
		Text: s.localizer.Text(locale, i18n.KeyStartButton),
		URL:  s.webAppURL,
	})
}

func (s *BotService) handleDeepLink(ctx context.Context, locale i18n.Locale, command *models.Command) *models.Reply {
	s.logger.Info("Получена команда /start с параметром", "args", command.Args, "chat_user_id", command.Profile.ChatUserID)

	token, err := ParseDeepLink(command.Args)
	if err != nil {
		if errors.Is(err, &domainerrors.ErrInvalidAuthToken{}) {
			return models.NewReply(s.localizer.Text(locale, i18n.KeyStartInvalidToken))
		}

		return models.NewReply(s.localizer.Text(locale, i18n.KeyStartInvalidParam))
	}

	if s.auth.Confirm(ctx, token, command.Profile.ChatUserID) {
		return models.NewReply(s.localizer.Text(locale, i18n.KeyAuthOK))
	}

	return models.NewReply(s.localizer.Text(locale, i18n.KeyAuthFail))
}
