package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/central-university-dev/musicclub-bot/internal/bot/i18n"
	"github.com/central-university-dev/musicclub-bot/internal/common"
	"github.com/central-university-dev/musicclub-bot/internal/common/metrics"
	domainerrors "github.com/central-university-dev/musicclub-bot/internal/domain/errors"
	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
)

// CalendarAttachService ведёт диалог привязки календаря. Шаг диалога хранится в базе и
// перечитывается на каждом событии.
type CalendarAttachService struct {
	states    ConversationStateRepository
	accounts  AccountRepository
	calendars CalendarRepository
	guesser   *common.EmailGuesser
	validator *common.CalendarURLValidator
	probe     FeedProbe
	events    EventPublisher
	localizer *i18n.Localizer
	logger    *slog.Logger
	tracer    trace.Tracer
}

func NewCalendarAttachService(
	states ConversationStateRepository,
	accounts AccountRepository,
	calendars CalendarRepository,
	guesser *common.EmailGuesser,
	validator *common.CalendarURLValidator,
	probe FeedProbe,
	events EventPublisher,
	localizer *i18n.Localizer,
	logger *slog.Logger,
) *CalendarAttachService {
	return &CalendarAttachService{
		states:    states,
		accounts:  accounts,
		calendars: calendars,
		guesser:   guesser,
		validator: validator,
		probe:     probe,
		events:    events,
		localizer: localizer,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
	}
}

// Start начинает диалог заново: при известном email сразу спрашивает ссылку,
// иначе предлагает угаданный адрес или просит ввести его.
func (s *CalendarAttachService) Start(ctx context.Context, profile models.UserProfile) *models.Reply {
	ctx, span := s.startSpan(ctx, "CalendarAttachService.Start", profile)
	defer span.End()

	locale := i18n.LocaleFor(profile.LanguageCode)
	from := s.currentStep(ctx, profile.ChatUserID)

	account, err := s.accounts.GetByChatUserID(ctx, profile.ChatUserID)
	if err != nil {
		if errors.Is(err, &domainerrors.ErrAccountNotFound{}) {
			s.logger.Info("Привязка календаря без привязанного аккаунта", "chat_user_id", profile.ChatUserID)
			s.clearState(ctx, profile.ChatUserID, from)

			return s.reply(locale, i18n.KeyCalendarNotLinked)
		}

		s.logger.Error("Ошибка при получении аккаунта",
			"error", err,
			"operation", domainerrors.OpGetAccount,
			"chat_user_id", profile.ChatUserID,
		)

		return s.reply(locale, i18n.KeyErrorGeneric)
	}

	if account.HasEmail() {
		return s.moveTo(ctx, locale, from, &models.ConversationState{
			ChatUserID:       profile.ChatUserID,
			Step:             models.StepAwaitingCalendarURL,
			PendingAccountID: &account.ID,
		}, s.reply(locale, i18n.KeyCalendarAsk))
	}

	candidate, ok := s.guesser.Guess(account.DisplayName, profile.FirstName, profile.LastName)
	if !ok {
		return s.moveTo(ctx, locale, from, &models.ConversationState{
			ChatUserID:       profile.ChatUserID,
			Step:             models.StepAwaitingEmailInput,
			PendingAccountID: &account.ID,
		}, s.reply(locale, i18n.KeyEmailAsk))
	}

	return s.moveTo(ctx, locale, from, &models.ConversationState{
		ChatUserID:       profile.ChatUserID,
		Step:             models.StepAwaitingEmailGuess,
		PendingAccountID: &account.ID,
		PendingEmail:     &candidate,
	}, s.emailPrompt(locale, candidate))
}

// ConfirmEmail обрабатывает кнопки Да/Нет под угаданным email. Вне шага
// AwaitingEmailGuess нажатие игнорируется.
func (s *CalendarAttachService) ConfirmEmail(ctx context.Context, profile models.UserProfile, accepted bool) *models.Reply {
	ctx, span := s.startSpan(ctx, "CalendarAttachService.ConfirmEmail", profile)
	defer span.End()

	span.SetAttributes(attribute.Bool("email.accepted", accepted))

	locale := i18n.LocaleFor(profile.LanguageCode)

	state, reply := s.loadState(ctx, locale, profile.ChatUserID)
	if state == nil {
		return reply
	}

	if state.Step != models.StepAwaitingEmailGuess {
		s.logger.Debug("Устаревшая кнопка подтверждения email",
			"chat_user_id", profile.ChatUserID,
			"step", state.Step.String(),
		)

		return nil
	}

	if !accepted || state.PendingEmail == nil {
		return s.moveTo(ctx, locale, state.Step, &models.ConversationState{
			ChatUserID:       profile.ChatUserID,
			Step:             models.StepAwaitingEmailInput,
			PendingAccountID: state.PendingAccountID,
		}, s.reply(locale, i18n.KeyEmailAsk))
	}

	return s.saveEmail(ctx, locale, state, *state.PendingEmail)
}

// HandleMessage обрабатывает свободный текст согласно текущему шагу диалога.
// Без начатого диалога ответа нет.
func (s *CalendarAttachService) HandleMessage(ctx context.Context, profile models.UserProfile, text string) *models.Reply {
	ctx, span := s.startSpan(ctx, "CalendarAttachService.HandleMessage", profile)
	defer span.End()

	locale := i18n.LocaleFor(profile.LanguageCode)

	state, reply := s.loadState(ctx, locale, profile.ChatUserID)
	if state == nil {
		return reply
	}

	span.SetAttributes(attribute.String("conversation.step", state.Step.String()))

	switch state.Step {
	case models.StepAwaitingEmailGuess:
		if state.PendingEmail == nil {
			return s.reply(locale, i18n.KeyEmailAsk)
		}

		return s.emailPrompt(locale, *state.PendingEmail)
	case models.StepAwaitingEmailInput:
		email := common.NormalizeEmail(text)
		if !common.IsValidEmail(email) {
			return s.reply(locale, i18n.KeyEmailInvalid)
		}

		return s.saveEmail(ctx, locale, state, email)
	case models.StepAwaitingCalendarURL:
		return s.saveCalendar(ctx, locale, state, text)
	default:
		return nil
	}
}

// Detach удаляет подписку на календарь пользователя.
func (s *CalendarAttachService) Detach(ctx context.Context, profile models.UserProfile) *models.Reply {
	ctx, span := s.startSpan(ctx, "CalendarAttachService.Detach", profile)
	defer span.End()

	locale := i18n.LocaleFor(profile.LanguageCode)

	account, err := s.accounts.GetByChatUserID(ctx, profile.ChatUserID)
	if err != nil {
		if errors.Is(err, &domainerrors.ErrAccountNotFound{}) {
			return s.reply(locale, i18n.KeyCalendarNotLinked)
		}

		s.logger.Error("Ошибка при получении аккаунта",
			"error", err,
			"operation", domainerrors.OpGetAccount,
			"chat_user_id", profile.ChatUserID,
		)

		return s.reply(locale, i18n.KeyErrorGeneric)
	}

	if err := s.calendars.Delete(ctx, account.ID); err != nil {
		if errors.Is(err, &domainerrors.ErrCalendarNotFound{}) {
			return s.reply(locale, i18n.KeyCalendarDetachNone)
		}

		s.logger.Error("Ошибка при удалении календаря",
			"error", err,
			"operation", domainerrors.OpDeleteCalendar,
			"account_id", account.ID,
		)

		return s.reply(locale, i18n.KeyErrorGeneric)
	}

	s.logger.Info("Календарь отвязан", "account_id", account.ID, "chat_user_id", profile.ChatUserID)

	publish(ctx, s.events, s.logger, &models.AccountEvent{
		Type:       models.EventCalendarDetached,
		AccountID:  account.ID,
		ChatUserID: profile.ChatUserID,
		OccurredAt: time.Now().UTC(),
	})

	return s.reply(locale, i18n.KeyCalendarDetachOK)
}

func (s *CalendarAttachService) saveEmail(
	ctx context.Context,
	locale i18n.Locale,
	state *models.ConversationState,
	email string,
) *models.Reply {
	accountID, reply := s.resolveAccount(ctx, locale, state)
	if reply != nil {
		return reply
	}

	if err := s.accounts.UpdateEmail(ctx, accountID, email); err != nil {
		if errors.Is(err, &domainerrors.ErrAccountNotFound{}) {
			s.clearState(ctx, state.ChatUserID, state.Step)
			return s.reply(locale, i18n.KeyCalendarNotLinked)
		}

		s.logger.Error("Ошибка при сохранении email",
			"error", err,
			"operation", domainerrors.OpUpdateAccountEmail,
			"account_id", accountID,
		)

		return s.reply(locale, i18n.KeyEmailSaveFail)
	}

	return s.moveTo(ctx, locale, state.Step, &models.ConversationState{
		ChatUserID:       state.ChatUserID,
		Step:             models.StepAwaitingCalendarURL,
		PendingAccountID: &accountID,
	}, s.reply(locale, i18n.KeyCalendarAsk))
}

func (s *CalendarAttachService) saveCalendar(
	ctx context.Context,
	locale i18n.Locale,
	state *models.ConversationState,
	text string,
) *models.Reply {
	calendarURL, err := s.validator.Validate(text)
	if err != nil {
		s.logger.Debug("Некорректная ссылка на календарь", "error", err, "chat_user_id", state.ChatUserID)
		metrics.RecordCalendarAttach("invalid_url")

		return s.reply(locale, i18n.KeyCalendarInvalidURL)
	}

	account, err := s.accounts.GetByChatUserID(ctx, state.ChatUserID)
	if err != nil {
		if errors.Is(err, &domainerrors.ErrAccountNotFound{}) {
			s.clearState(ctx, state.ChatUserID, state.Step)
			metrics.RecordCalendarAttach("not_linked")

			return s.reply(locale, i18n.KeyCalendarNotLinked)
		}

		s.logger.Error("Ошибка при получении аккаунта",
			"error", err,
			"operation", domainerrors.OpGetAccount,
			"chat_user_id", state.ChatUserID,
		)
		metrics.RecordCalendarAttach("fail")

		return s.reply(locale, i18n.KeyCalendarFail)
	}

	if s.probe != nil {
		if err := s.probe.Check(ctx, calendarURL); err != nil {
			s.logger.Warn("Календарь недоступен", "error", err, "url", calendarURL)
			metrics.RecordCalendarAttach("unreachable")

			return s.reply(locale, i18n.KeyCalendarUnreachable)
		}
	}

	if err := s.calendars.Upsert(ctx, account.ID, calendarURL); err != nil {
		s.logger.Error("Ошибка при сохранении календаря",
			"error", err,
			"operation", domainerrors.OpUpsertCalendar,
			"account_id", account.ID,
		)
		metrics.RecordCalendarAttach("fail")

		return s.reply(locale, i18n.KeyCalendarFail)
	}

	s.clearState(ctx, state.ChatUserID, state.Step)

	s.logger.Info("Календарь привязан", "account_id", account.ID, "chat_user_id", state.ChatUserID)
	metrics.RecordCalendarAttach("success")

	publish(ctx, s.events, s.logger, &models.AccountEvent{
		Type:        models.EventCalendarAttached,
		AccountID:   account.ID,
		ChatUserID:  state.ChatUserID,
		CalendarURL: calendarURL,
		OccurredAt:  time.Now().UTC(),
	})

	return s.reply(locale, i18n.KeyCalendarSuccess)
}

// resolveAccount возвращает аккаунт из состояния или ищет его по telegram id.
// Непустой ответ означает, что диалог продолжать нельзя.
func (s *CalendarAttachService) resolveAccount(
	ctx context.Context,
	locale i18n.Locale,
	state *models.ConversationState,
) (uuid.UUID, *models.Reply) {
	if state.PendingAccountID != nil {
		return *state.PendingAccountID, nil
	}

	account, err := s.accounts.GetByChatUserID(ctx, state.ChatUserID)
	if err != nil {
		if errors.Is(err, &domainerrors.ErrAccountNotFound{}) {
			s.clearState(ctx, state.ChatUserID, state.Step)
			return uuid.Nil, s.reply(locale, i18n.KeyCalendarNotLinked)
		}

		s.logger.Error("Ошибка при получении аккаунта",
			"error", err,
			"operation", domainerrors.OpGetAccount,
			"chat_user_id", state.ChatUserID,
		)

		return uuid.Nil, s.reply(locale, i18n.KeyEmailSaveFail)
	}

	return account.ID, nil
}

// loadState возвращает nil-состояние, если диалог не начат или чтение не удалось;
// во втором случае вместе с ответом об ошибке.
func (s *CalendarAttachService) loadState(
	ctx context.Context,
	locale i18n.Locale,
	chatUserID int64,
) (*models.ConversationState, *models.Reply) {
	state, err := s.states.Get(ctx, chatUserID)
	if err != nil {
		if errors.Is(err, &domainerrors.ErrConversationStateNotFound{}) {
			return nil, nil
		}

		s.logger.Error("Ошибка при получении состояния диалога",
			"error", err,
			"operation", domainerrors.OpGetConversationState,
			"chat_user_id", chatUserID,
		)

		return nil, s.reply(locale, i18n.KeyErrorGeneric)
	}

	return state, nil
}

func (s *CalendarAttachService) currentStep(ctx context.Context, chatUserID int64) models.ConversationStep {
	state, err := s.states.Get(ctx, chatUserID)
	if err != nil {
		return models.StepIdle
	}

	return state.Step
}

func (s *CalendarAttachService) moveTo(
	ctx context.Context,
	locale i18n.Locale,
	from models.ConversationStep,
	next *models.ConversationState,
	reply *models.Reply,
) *models.Reply {
	if err := s.states.Upsert(ctx, next); err != nil {
		s.logger.Error("Ошибка при сохранении состояния диалога",
			"error", err,
			"operation", domainerrors.OpUpsertConversationState,
			"chat_user_id", next.ChatUserID,
			"step", next.Step.String(),
		)

		return s.reply(locale, i18n.KeyErrorGeneric)
	}

	metrics.RecordTransition(from.String(), next.Step.String())

	return reply
}

func (s *CalendarAttachService) clearState(ctx context.Context, chatUserID int64, from models.ConversationStep) {
	if err := s.states.Clear(ctx, chatUserID); err != nil {
		s.logger.Error("Ошибка при сбросе состояния диалога",
			"error", err,
			"operation", domainerrors.OpClearConversationState,
			"chat_user_id", chatUserID,
		)

		return
	}

	if from != models.StepIdle {
		metrics.RecordTransition(from.String(), models.StepIdle.String())
	}
}

func (s *CalendarAttachService) emailPrompt(locale i18n.Locale, email string) *models.Reply {
	return models.NewReply(
		s.localizer.Text(locale, i18n.KeyEmailConfirmPrompt, email),
		models.Button{Text: s.localizer.Text(locale, i18n.KeyEmailConfirmYes), Action: models.ActionEmailConfirmYes},
		models.Button{Text: s.localizer.Text(locale, i18n.KeyEmailConfirmNo), Action: models.ActionEmailConfirmNo},
	)
}

func (s *CalendarAttachService) reply(locale i18n.Locale, key string) *models.Reply {
	return models.NewReply(s.localizer.Text(locale, key))
}

func (s *CalendarAttachService) startSpan(
	ctx context.Context,
	name string,
	profile models.UserProfile,
) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.Int64("chat.user_id", profile.ChatUserID)))
}
