package orm

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/central-university-dev/musicclub-bot/internal/database"
	customerrors "github.com/central-university-dev/musicclub-bot/internal/domain/errors"
	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
	"github.com/central-university-dev/musicclub-bot/pkg/txs"
)

type AuthTokenRepository struct {
	db *database.PostgresDB
	sq sq.StatementBuilderType
}

func NewAuthTokenRepository(db *database.PostgresDB) *AuthTokenRepository {
	return &AuthTokenRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AuthTokenRepository) GetForUpdate(ctx context.Context, token uuid.UUID) (*models.AuthToken, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Select("id", "user_id", "tg_user_id", "success", "created_at").
		From("tg_auth_user").
		Where(sq.Eq{"id": token}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpGetAuthToken, Cause: err}
	}

	var authToken models.AuthToken

	err = querier.QueryRow(ctx, query, args...).Scan(
		&authToken.ID,
		&authToken.AccountID,
		&authToken.ChatUserID,
		&authToken.Used,
		&authToken.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &customerrors.ErrAuthTokenNotFound{Token: token}
		}

		return nil, &customerrors.ErrSQLExecution{Operation: customerrors.OpGetAuthToken, Cause: err}
	}

	return &authToken, nil
}

func (r *AuthTokenRepository) MarkUsed(ctx context.Context, token uuid.UUID, chatUserID int64) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Update("tg_auth_user").
		Set("tg_user_id", chatUserID).
		Set("success", true).
		Where(sq.Eq{"id": token}).
		ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpMarkAuthTokenUsed, Cause: err}
	}

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpMarkAuthTokenUsed, Cause: err}
	}

	if tag.RowsAffected() == 0 {
		return &customerrors.ErrAuthTokenNotFound{Token: token}
	}

	return nil
}
