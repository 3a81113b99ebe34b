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

type AccountRepository struct {
	db *database.PostgresDB
	sq sq.StatementBuilderType
}

func NewAccountRepository(db *database.PostgresDB) *AccountRepository {
	return &AccountRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AccountRepository) GetByChatUserID(ctx context.Context, chatUserID int64) (*models.Account, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Select("id", "display_name", "email", "tg_user_id").
		From("app_user").
		Where(sq.Eq{"tg_user_id": chatUserID}).
		ToSql()
	if err != nil {
		return nil, &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpGetAccount, Cause: err}
	}

	var account models.Account

	err = querier.QueryRow(ctx, query, args...).Scan(
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
	return r.updateAccount(ctx, accountID, customerrors.OpUpdateAccountEmail, sq.Eq{"email": email})
}

func (r *AccountRepository) LinkChatUser(ctx context.Context, accountID uuid.UUID, chatUserID int64) error {
	return r.updateAccount(ctx, accountID, customerrors.OpLinkChatUser, sq.Eq{"tg_user_id": chatUserID})
}

func (r *AccountRepository) updateAccount(ctx context.Context, accountID uuid.UUID, operation string, values sq.Eq) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	update := r.sq.Update("app_user").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": accountID})

	for column, value := range values {
		update = update.Set(column, value)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: operation, Cause: err}
	}

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: operation, Cause: err}
	}

	if tag.RowsAffected() == 0 {
		return &customerrors.ErrAccountNotFound{AccountID: accountID}
	}

	return nil
}

func (r *AccountRepository) GrantDefaultPermissions(ctx context.Context, accountID uuid.UUID) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Insert("user_permissions").
		Columns("user_id", "edit_own_participation", "edit_own_songs").
		Values(accountID, true, true).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET edit_own_participation = TRUE, edit_own_songs = TRUE").
		ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpGrantPermissions, Cause: err}
	}

	if _, err = querier.Exec(ctx, query, args...); err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpGrantPermissions, Cause: err}
	}

	return nil
}
