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
	selectAccountByChatUserQuery = `
SELECT id, display_name, email, tg_user_id
FROM app_user
WHERE tg_user_id = $1`

	updateAccountEmailQuery = `UPDATE app_user SET email = $1, updated_at = NOW() WHERE id = $2`

	linkChatUserQuery = `UPDATE app_user SET tg_user_id = $1, updated_at = NOW() WHERE id = $2`

	grantDefaultPermissionsQuery = `
INSERT INTO user_permissions (user_id, edit_own_participation, edit_own_songs)
VALUES ($1, TRUE, TRUE)
ON CONFLICT (user_id) DO UPDATE
SET edit_own_participation = TRUE,
    edit_own_songs = TRUE`
)

type AccountRepository struct {
	db *database.PostgresDB
}

func NewAccountRepository(db *database.PostgresDB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByChatUserID(ctx context.Context, chatUserID int64) (*models.Account, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	var account models.Account

	err := querier.QueryRow(ctx, selectAccountByChatUserQuery, chatUserID).Scan(
		&account.ID,
		&account.DisplayName,
		&account.Email,
		&account.ChatUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &customerrors.ErrAccountNotFound{ChatUserID: chatUserID}
		}

		return nil, &customerrors.ErrSQLExecution{Operation: customerrors.OpGetAccount, Cause: err}
	}

	return &account, nil
}

func (r *AccountRepository) UpdateEmail(ctx context.Context, accountID uuid.UUID, email string) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	tag, err := querier.Exec(ctx, updateAccountEmailQuery, email, accountID)
	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpUpdateAccountEmail, Cause: err}
	}

	if tag.RowsAffected() == 0 {
		return &customerrors.ErrAccountNotFound{AccountID: accountID}
	}

	return nil
}

func (r *AccountRepository) LinkChatUser(ctx context.Context, accountID uuid.UUID, chatUserID int64) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	tag, err := querier.Exec(ctx, linkChatUserQuery, chatUserID, accountID)
	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpLinkChatUser, Cause: err}
	}

	if tag.RowsAffected() == 0 {
		return &customerrors.ErrAccountNotFound{AccountID: accountID}
	}

	return nil
}

func (r *AccountRepository) GrantDefaultPermissions(ctx context.Context, accountID uuid.UUID) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	if _, err := querier.Exec(ctx, grantDefaultPermissionsQuery, accountID); err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpGrantPermissions, Cause: err}
	}

	return nil
}
