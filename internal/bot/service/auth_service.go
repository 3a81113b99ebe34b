package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/central-university-dev/musicclub-bot/internal/common/metrics"
	domainerrors "github.com/central-university-dev/musicclub-bot/internal/domain/errors"
	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
)

const (
	tracerName = "github.com/central-university-dev/musicclub-bot/internal/bot/service"

	deepLinkAuthPrefix = "auth_"
)

// ParseDeepLink извлекает токен из параметра /start вида auth_<uuid>.
func ParseDeepLink(args string) (uuid.UUID, error) {
	args = strings.TrimSpace(args)

	raw, ok := strings.CutPrefix(args, deepLinkAuthPrefix)
	if !ok {
		return uuid.Nil, &domainerrors.ErrInvalidDeepLink{Payload: args}
	}

	token, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &domainerrors.ErrInvalidAuthToken{Raw: raw, Cause: err}
	}

	return token, nil
}

// AuthService подтверждает вход через одноразовую ссылку и привязывает telegram к аккаунту.
type AuthService struct {
	txManager TxManager
	tokens    AuthTokenRepository
	accounts  AccountRepository
	events    EventPublisher
	logger    *slog.Logger
	tracer    trace.Tracer
}

func NewAuthService(
	txManager TxManager,
	tokens AuthTokenRepository,
	accounts AccountRepository,
	events EventPublisher,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		txManager: txManager,
		tokens:    tokens,
		accounts:  accounts,
		events:    events,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
	}
}

// Confirm погашает токен, привязывает chatUserID к аккаунту и выдаёт права по умолчанию.
// Все три записи выполняются в одной транзакции; true возвращается только после commit.
func (s *AuthService) Confirm(ctx context.Context, token uuid.UUID, chatUserID int64) bool {
	ctx, span := s.tracer.Start(ctx, "AuthService.Confirm", trace.WithAttributes(
		attribute.String("auth.token", token.String()),
		attribute.Int64("chat.user_id", chatUserID),
	))
	defer span.End()

	var accountID uuid.UUID

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		authToken, err := s.tokens.GetForUpdate(ctx, token)
		if err != nil {
			return err
		}

		if authToken.Used {
			return &domainerrors.ErrAuthTokenAlreadyUsed{Token: token}
		}

		if err := s.tokens.MarkUsed(ctx, token, chatUserID); err != nil {
			return err
		}

		if err := s.accounts.LinkChatUser(ctx, authToken.AccountID, chatUserID); err != nil {
			return err
		}

		if err := s.accounts.GrantDefaultPermissions(ctx, authToken.AccountID); err != nil {
			return err
		}

		accountID = authToken.AccountID

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, &domainerrors.ErrAuthTokenNotFound{}):
			s.logger.Info("Токен авторизации не найден", "token", token, "chat_user_id", chatUserID)
			metrics.RecordAuthConfirmation("not_found")
		case errors.Is(err, &domainerrors.ErrAuthTokenAlreadyUsed{}):
			s.logger.Info("Токен авторизации уже использован", "token", token, "chat_user_id", chatUserID)
			metrics.RecordAuthConfirmation("already_used")
		default:
			s.logger.Error("Ошибка при подтверждении авторизации",
				"error", err,
				"token", token,
				"chat_user_id", chatUserID,
			)
			metrics.RecordAuthConfirmation("error")
		}

		span.SetStatus(codes.Error, err.Error())

		return false
	}

	s.logger.Info("Авторизация подтверждена",
		"token", token,
		"account_id", accountID,
		"chat_user_id", chatUserID,
	)
	metrics.RecordAuthConfirmation("ok")

	publish(ctx, s.events, s.logger, &models.AccountEvent{
		Type:       models.EventAccountLinked,
		AccountID:  accountID,
		ChatUserID: chatUserID,
		OccurredAt: time.Now().UTC(),
	})

	return true
}

func publish(ctx context.Context, events EventPublisher, logger *slog.Logger, event *models.AccountEvent) {
	if events == nil {
		return
	}

	if err := events.Publish(ctx, event); err != nil {
		logger.Warn("Не удалось опубликовать событие аккаунта",
			"error", err,
			"type", event.Type,
			"account_id", event.AccountID,
		)
	}
}
