package sql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/central-university-dev/musicclub-bot/internal/database"
	customerrors "github.com/central-university-dev/musicclub-bot/internal/domain/errors"
	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
	"github.com/central-university-dev/musicclub-bot/pkg/txs"
)

const (
	selectConversationStateQuery = `
SELECT tg_user_id, state, pending_user_id, pending_email, updated_at
FROM calendar_attach_state
WHERE tg_user_id = $1`

	upsertConversationStateQuery = `
INSERT INTO calendar_attach_state (tg_user_id, state, pending_user_id, pending_email, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (tg_user_id) DO UPDATE
SET state = EXCLUDED.state,
    pending_user_id = EXCLUDED.pending_user_id,
    pending_email = EXCLUDED.pending_email,
    updated_at = NOW()`

	clearConversationStateQuery = `DELETE FROM calendar_attach_state WHERE tg_user_id = $1`
)

type ConversationStateRepository struct {
	db *database.PostgresDB
}

func NewConversationStateRepository(db *database.PostgresDB) *ConversationStateRepository {
	return &ConversationStateRepository{db: db}
}

func (r *ConversationStateRepository) Get(ctx context.Context, chatUserID int64) (*models.ConversationState, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	var (
		state models.ConversationState
		step  int16
	)

	err := querier.QueryRow(ctx, selectConversationStateQuery, chatUserID).Scan(
		&state.ChatUserID,
		&step,
		&state.PendingAccountID,
		&state.PendingEmail,
		&state.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &customerrors.ErrConversationStateNotFound{ChatUserID: chatUserID}
		}

		return nil, &customerrors.ErrSQLExecution{Operation: customerrors.OpGetConversationState, Cause: err}
	}

	state.Step = models.ConversationStep(step)

	return &state, nil
}

func (r *ConversationStateRepository) Upsert(ctx context.Context, state *models.ConversationState) error {
	if !state.Step.Persisted() {
		return &customerrors.ErrInvalidArgument{Message: "шаг диалога не сохраняется: " + state.Step.String()}
	}

	querier := txs.GetQuerier(ctx, r.db.Pool)

	_, err := querier.Exec(ctx, upsertConversationStateQuery,
		state.ChatUserID,
		int16(state.Step),
		state.PendingAccountID,
		state.PendingEmail,
	)
	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpUpsertConversationState, Cause: err}
	}

	return nil
}

func (r *ConversationStateRepository) Clear(ctx context.Context, chatUserID int64) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	if _, err := querier.Exec(ctx, clearConversationStateQuery, chatUserID); err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpClearConversationState, Cause: err}
	}

	return nil
}
