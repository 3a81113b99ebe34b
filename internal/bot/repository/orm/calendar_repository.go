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

type CalendarRepository struct {
	db *database.PostgresDB
	sq sq.StatementBuilderType
}

func NewCalendarRepository(db *database.PostgresDB) *CalendarRepository {
	return &CalendarRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *CalendarRepository) Get(ctx context.Context, accountID uuid.UUID) (*models.CalendarSubscription, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Select("user_id", "calendar_url", "created_at", "updated_at").
		From("calendar").
		Where(sq.Eq{"user_id": accountID}).
		ToSql()
	if err != nil {
		return nil, &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpGetCalendar, Cause: err}
	}

	var subscription models.CalendarSubscription

	err = querier.QueryRow(ctx, query, args...).Scan(
		&subscription.AccountID,
		&subscription.CalendarURL,
		&subscription.CreatedAt,
		&subscription.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &customerrors.ErrCalendarNotFound{AccountID: accountID}
		}

		return nil, &customerrors.ErrSQLExecution{Operation: customerrors.OpGetCalendar, Cause: err}
	}

	return &subscription, nil
}

func (r *CalendarRepository) Create(ctx context.Context, subscription *models.CalendarSubscription) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Insert("calendar").
		Columns("user_id", "calendar_url", "created_at", "updated_at").
		Values(subscription.AccountID, subscription.CalendarURL, subscription.CreatedAt, subscription.UpdatedAt).
		ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpCreateCalendar, Cause: err}
	}

	if _, err = querier.Exec(ctx, query, args...); err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpCreateCalendar, Cause: err}
	}

	return nil
}

func (r *CalendarRepository) Upsert(ctx context.Context, accountID uuid.UUID, calendarURL string) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Insert("calendar").
		Columns("user_id", "calendar_url", "created_at", "updated_at").
		Values(accountID, calendarURL, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET calendar_url = EXCLUDED.calendar_url, updated_at = NOW()").
		ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpUpsertCalendar, Cause: err}
	}

	if _, err = querier.Exec(ctx, query, args...); err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpUpsertCalendar, Cause: err}
	}

	return nil
}

func (r *CalendarRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Delete("calendar").
		Where(sq.Eq{"user_id": accountID}).
		ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpDeleteCalendar, Cause: err}
	}

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpDeleteCalendar, Cause: err}
	}

	if tag.RowsAffected() == 0 {
		return &customerrors.ErrCalendarNotFound{AccountID: accountID}
	}

	return nil
}

func (r *CalendarRepository) ListLinkedAccountsWithoutCalendar(ctx context.Context) ([]models.LinkedAccount, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Select("u.id", "u.tg_user_id").
		From("app_user u").
		LeftJoin("calendar c ON c.user_id = u.id").
		Where(sq.And{
			sq.NotEq{"u.tg_user_id": nil},
			sq.Eq{"c.user_id": nil},
		}).
		OrderBy("u.id").
		ToSql()
	if err != nil {
		return nil, &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpListWithoutCalendar, Cause: err}
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, &customerrors.ErrSQLExecution{Operation: customerrors.OpListWithoutCalendar, Cause: err}
	}
	defer rows.Close()

	var accounts []models.LinkedAccount

	for rows.Next() {
		var account models.LinkedAccount

		if err := rows.Scan(&account.AccountID, &account.ChatUserID); err != nil {
			return nil, &customerrors.ErrSQLScan{Entity: "аккаунт без календаря", Cause: err}
		}

		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, &customerrors.ErrSQLExecution{Operation: customerrors.OpListWithoutCalendar, Cause: err}
	}

	return accounts, nil
}
