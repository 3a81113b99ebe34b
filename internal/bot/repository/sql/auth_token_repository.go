package sql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/central-university-dev/musicclub-bot/internal/database"
	customerrors "github.com/central-university-dev/musicclub-bot/internal/domain/errors"
	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
	"github.com/central-university-dev/musicclub-bot/pkg/txs"
)

const (
	selectAuthTokenForUpdateQuery = `
SELECT id, user_id, tg_user_id, success, created_at
FROM tg_auth_user
WHERE id = $1
FOR UPDATE`

	markAuthTokenUsedQuery = `UPDATE tg_auth_user SET tg_user_id = $1, success = TRUE WHERE id = $2`
)

type AuthTokenRepository struct {
	db *database.PostgresDB
}

func NewAuthTokenRepository(db *database.PostgresDB) *AuthTokenRepository {
	return &AuthTokenRepository{db: db}
}

func (r *AuthTokenRepository) GetForUpdate(ctx context.Context, token uuid.UUID) (*models.AuthToken, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	var authToken models.AuthToken

	err := querier.QueryRow(ctx, selectAuthTokenForUpdateQuery, token).Scan(
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

	tag, err := querier.Exec(ctx, markAuthTokenUsedQuery, chatUserID, token)
	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpMarkAuthTokenUsed, Cause: err}
	}

	if tag.RowsAffected() == 0 {
		return &customerrors.ErrAuthTokenNotFound{Token: token}
	}

	return nil
}
