package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
)

// ConversationStateRepository хранит шаг диалога привязки календаря.
// Get возвращает ErrConversationStateNotFound, когда диалог не начат.
type ConversationStateRepository interface {
	Get(ctx context.Context, chatUserID int64) (*models.ConversationState, error)

	Upsert(ctx context.Context, state *models.ConversationState) error

	Clear(ctx context.Context, chatUserID int64) error
}

type AccountRepository interface {
	GetByChatUserID(ctx context.Context, chatUserID int64) (*models.Account, error)

	UpdateEmail(ctx context.Context, accountID uuid.UUID, email string) error

	LinkChatUser(ctx context.Context, accountID uuid.UUID, chatUserID int64) error

	GrantDefaultPermissions(ctx context.Context, accountID uuid.UUID) error
}

type AuthTokenRepository interface {
	// GetForUpdate блокирует строку токена до конца текущей транзакции.
	GetForUpdate(ctx context.Context, token uuid.UUID) (*models.AuthToken, error)

	MarkUsed(ctx context.Context, token uuid.UUID, chatUserID int64) error
}

type CalendarRepository interface {
	Get(ctx context.Context, accountID uuid.UUID) (*models.CalendarSubscription, error)

	Create(ctx context.Context, subscription *models.CalendarSubscription) error

	Upsert(ctx context.Context, accountID uuid.UUID, calendarURL string) error

	Delete(ctx context.Context, accountID uuid.UUID) error

	ListLinkedAccountsWithoutCalendar(ctx context.Context) ([]models.LinkedAccount, error)
}

type TxManager interface {
	WithTransaction(ctx context.Context, txFunc func(ctx context.Context) error) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event *models.AccountEvent) error
}

type FeedProbe interface {
	Check(ctx context.Context, feedURL string) error
}

type MessageSender interface {
	SendReply(ctx context.Context, chatID int64, reply *models.Reply) error
}

type RoutineLock interface {
	TryAcquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
}
