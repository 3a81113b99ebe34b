package orm

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/central-university-dev/musicclub-bot/internal/database"
	customerrors "github.com/central-university-dev/musicclub-bot/internal/domain/errors"
	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
	"github.com/central-university-dev/musicclub-bot/pkg/txs"
)

type ConversationStateRepository struct {
	db *database.PostgresDB
	sq sq.StatementBuilderType
}

func NewConversationStateRepository(db *database.PostgresDB) *ConversationStateRepository {
	return &ConversationStateRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ConversationStateRepository) Get(ctx context.Context, chatUserID int64) (*models.ConversationState, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Select("tg_user_id", "state", "pending_user_id", "pending_email", "updated_at").
		From("calendar_attach_state").
		Where(sq.Eq{"tg_user_id": chatUserID}).
		ToSql()
	if err != nil {
		return nil, &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpGetConversationState, Cause: err}
	}

	var (
		state models.ConversationState
		step  int16
	)

	err = querier.QueryRow(ctx, query, args...).Scan(
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

	query, args, err := r.sq.Insert("calendar_attach_state").
		Columns("tg_user_id", "state", "pending_user_id", "pending_email", "updated_at").
		Values(state.ChatUserID, int16(state.Step), state.PendingAccountID, state.PendingEmail, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (tg_user_id) DO UPDATE SET state = EXCLUDED.state, " +
			"pending_user_id = EXCLUDED.pending_user_id, pending_email = EXCLUDED.pending_email, updated_at = NOW()").
		ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpUpsertConversationState, Cause: err}
	}

	if _, err = querier.Exec(ctx, query, args...); err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpUpsertConversationState, Cause: err}
	}

	return nil
}

func (r *ConversationStateRepository) Clear(ctx context.Context, chatUserID int64) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Delete("calendar_attach_state").
		Where(sq.Eq{"tg_user_id": chatUserID}).
		ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpClearConversationState, Cause: err}
	}

	if _, err = querier.Exec(ctx, query, args...); err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpClearConversationState, Cause: err}
	}

	return nil
}
