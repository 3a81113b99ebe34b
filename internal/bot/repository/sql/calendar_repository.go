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
	selectCalendarQuery = `
SELECT user_id, calendar_url, created_at, updated_at
FROM calendar
WHERE user_id = $1`

	insertCalendarQuery = `
INSERT INTO calendar (user_id, calendar_url, created_at, updated_at)
VALUES ($1, $2, $3, $4)`

	upsertCalendarQuery = `
INSERT INTO calendar (user_id, calendar_url, created_at, updated_at)
VALUES ($1, $2, NOW(), NOW())
ON CONFLICT (user_id) DO UPDATE
SET calendar_url = EXCLUDED.calendar_url,
    updated_at = NOW()`

	deleteCalendarQuery = `DELETE FROM calendar WHERE user_id = $1`

	listLinkedWithoutCalendarQuery = `
SELECT u.id, u.tg_user_id
FROM app_user u
LEFT JOIN calendar c ON c.user_id = u.id
WHERE u.tg_user_id IS NOT NULL
  AND c.user_id IS NULL
ORDER BY u.id`
)

type CalendarRepository struct {
	db *database.PostgresDB
}

func NewCalendarRepository(db *database.PostgresDB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) Get(ctx context.Context, accountID uuid.UUID) (*models.CalendarSubscription, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	var subscription models.CalendarSubscription

	err := querier.QueryRow(ctx, selectCalendarQuery, accountID).Scan(
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

	_, err := querier.Exec(ctx, insertCalendarQuery,
		subscription.AccountID,
		subscription.CalendarURL,
		subscription.CreatedAt,
		subscription.UpdatedAt,
	)
	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpCreateCalendar, Cause: err}
	}

	return nil
}

func (r *CalendarRepository) Upsert(ctx context.Context, accountID uuid.UUID, calendarURL string) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	if _, err := querier.Exec(ctx, upsertCalendarQuery, accountID, calendarURL); err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpUpsertCalendar, Cause: err}
	}

	return nil
}

func (r *CalendarRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	tag, err := querier.Exec(ctx, deleteCalendarQuery, accountID)
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

	rows, err := querier.Query(ctx, listLinkedWithoutCalendarQuery)
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
