package repository_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/central-university-dev/musicclub-bot/internal/bot/events"
	"github.com/central-university-dev/musicclub-bot/internal/bot/repository"
	"github.com/central-university-dev/musicclub-bot/internal/bot/service"
	"github.com/central-university-dev/musicclub-bot/internal/config"
	"github.com/central-university-dev/musicclub-bot/internal/database"
	customerrors "github.com/central-university-dev/musicclub-bot/internal/domain/errors"
	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
	"github.com/central-university-dev/musicclub-bot/pkg/txs"
)

var (
	testDB *database.PostgresDB
	logger *slog.Logger
)

var accessTypes = []config.AccessType{config.SQLAccess, config.SquirrelAccess}

func setupTestDatabase(ctx context.Context) (*database.PostgresDB, func(), error) {
	dbName := "testdb"
	dbUser := "testuser"
	dbPassword := "testpassword"

	container, err := postgres.Run(ctx,
		"postgres:16",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось запустить контейнер postgres: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось получить строку подключения: %w", err)
	}

	if err := database.RunMigrations(dsn, "../../../migrations", logger); err != nil {
		return nil, nil, err
	}

	db, err := database.NewPostgresDB(ctx, &config.Config{DatabaseURL: dsn, DatabaseMaxConn: 5}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось подключиться к тестовой БД: %w", err)
	}

	cleanup := func() {
		db.Close()

		if err := container.Terminate(context.Background()); err != nil {
			logger.Error("Не удалось остановить контейнер postgres", "error", err)
		}
	}

	return db, cleanup, nil
}

func TestMain(m *testing.M) {
	flag.Parse()

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if testing.Short() {
		os.Exit(m.Run())
	}

	exitCode := func() int {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		var (
			cleanup func()
			err     error
		)

		testDB, cleanup, err = setupTestDatabase(ctx)
		if err != nil {
			logger.Error("Ошибка при настройке тестовой БД", "error", err)
			return 1
		}

		defer cleanup()

		return m.Run()
	}()

	os.Exit(exitCode)
}

func skipShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Пропускаем интеграционный тест в режиме short")
	}
}

func clearTables(ctx context.Context, t *testing.T) {
	t.Helper()

	_, err := testDB.Pool.Exec(ctx,
		"TRUNCATE calendar_attach_state, calendar, tg_auth_user, user_permissions, app_user CASCADE")
	require.NoError(t, err)
}

func newRepositories(t *testing.T, accessType config.AccessType) *repository.Repositories {
	t.Helper()

	repos, err := repository.NewFactory(testDB, &config.Config{DatabaseAccessType: accessType}, logger).CreateRepositories()
	require.NoError(t, err)

	return repos
}

func insertAccount(ctx context.Context, t *testing.T, displayName string, email *string, chatUserID *int64) uuid.UUID {
	t.Helper()

	id := uuid.New()

	_, err := testDB.Pool.Exec(ctx,
		"INSERT INTO app_user (id, display_name, email, tg_user_id) VALUES ($1, $2, $3, $4)",
		id, displayName, email, chatUserID)
	require.NoError(t, err)

	return id
}

func insertToken(ctx context.Context, t *testing.T, accountID uuid.UUID) uuid.UUID {
	t.Helper()

	id := uuid.New()

	_, err := testDB.Pool.Exec(ctx, "INSERT INTO tg_auth_user (id, user_id) VALUES ($1, $2)", id, accountID)
	require.NoError(t, err)

	return id
}

type linkSnapshot struct {
	tokenUsed   bool
	tokenChat   *int64
	accountChat *int64
	permissions int
}

func snapshot(ctx context.Context, t *testing.T, token, accountID uuid.UUID) linkSnapshot {
	t.Helper()

	var s linkSnapshot

	err := testDB.Pool.QueryRow(ctx, "SELECT success, tg_user_id FROM tg_auth_user WHERE id = $1", token).
		Scan(&s.tokenUsed, &s.tokenChat)
	require.NoError(t, err)

	err = testDB.Pool.QueryRow(ctx, "SELECT tg_user_id FROM app_user WHERE id = $1", accountID).Scan(&s.accountChat)
	require.NoError(t, err)

	err = testDB.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM user_permissions WHERE user_id = $1 AND edit_own_participation AND edit_own_songs",
		accountID).Scan(&s.permissions)
	require.NoError(t, err)

	return s
}

// failingPermissions подменяет выдачу прав ошибкой, чтобы проверить откат транзакции.
type failingPermissions struct {
	service.AccountRepository
}

func (failingPermissions) GrantDefaultPermissions(context.Context, uuid.UUID) error {
	return errors.New("permissions table unavailable")
}

func newAuthService(repos *repository.Repositories, accounts service.AccountRepository) *service.AuthService {
	return service.NewAuthService(
		txs.NewTxManager(testDB.Pool, logger),
		repos.AuthTokens,
		accounts,
		events.NopPublisher{},
		logger,
	)
}

func TestAuthConfirm(t *testing.T) {
	skipShort(t)

	ctx := context.Background()

	for _, accessType := range accessTypes {
		t.Run(string(accessType), func(t *testing.T) {
			repos := newRepositories(t, accessType)

			t.Run("успешная привязка выполняет все три записи", func(t *testing.T) {
				clearTables(ctx, t)

				accountID := insertAccount(ctx, t, "Anna Ivanova", nil, nil)
				token := insertToken(ctx, t, accountID)

				ok := newAuthService(repos, repos.Accounts).Confirm(ctx, token, 424242)
				require.True(t, ok)

				s := snapshot(ctx, t, token, accountID)
				assert.True(t, s.tokenUsed)
				require.NotNil(t, s.tokenChat)
				assert.Equal(t, int64(424242), *s.tokenChat)
				require.NotNil(t, s.accountChat)
				assert.Equal(t, int64(424242), *s.accountChat)
				assert.Equal(t, 1, s.permissions)
			})

			t.Run("токен одноразовый", func(t *testing.T) {
				clearTables(ctx, t)

				accountID := insertAccount(ctx, t, "Anna Ivanova", nil, nil)
				token := insertToken(ctx, t, accountID)
				auth := newAuthService(repos, repos.Accounts)

				require.True(t, auth.Confirm(ctx, token, 424242))
				assert.False(t, auth.Confirm(ctx, token, 515151))

				s := snapshot(ctx, t, token, accountID)
				assert.Equal(t, int64(424242), *s.accountChat)
			})

			t.Run("неизвестный токен ничего не пишет", func(t *testing.T) {
				clearTables(ctx, t)

				accountID := insertAccount(ctx, t, "Anna Ivanova", nil, nil)
				token := insertToken(ctx, t, accountID)

				assert.False(t, newAuthService(repos, repos.Accounts).Confirm(ctx, uuid.New(), 424242))

				s := snapshot(ctx, t, token, accountID)
				assert.False(t, s.tokenUsed)
				assert.Nil(t, s.tokenChat)
				assert.Nil(t, s.accountChat)
				assert.Zero(t, s.permissions)
			})

			t.Run("ошибка выдачи прав откатывает все записи", func(t *testing.T) {
				clearTables(ctx, t)

				accountID := insertAccount(ctx, t, "Anna Ivanova", nil, nil)
				token := insertToken(ctx, t, accountID)

				auth := newAuthService(repos, failingPermissions{AccountRepository: repos.Accounts})
				assert.False(t, auth.Confirm(ctx, token, 424242))

				s := snapshot(ctx, t, token, accountID)
				assert.False(t, s.tokenUsed)
				assert.Nil(t, s.tokenChat)
				assert.Nil(t, s.accountChat)
				assert.Zero(t, s.permissions)

				assert.True(t, newAuthService(repos, repos.Accounts).Confirm(ctx, token, 424242))
			})

			t.Run("конкурентное погашение успешно ровно один раз", func(t *testing.T) {
				clearTables(ctx, t)

				accountID := insertAccount(ctx, t, "Anna Ivanova", nil, nil)
				token := insertToken(ctx, t, accountID)
				auth := newAuthService(repos, repos.Accounts)

				const attempts = 5

				var (
					wg        sync.WaitGroup
					mu        sync.Mutex
					successes int
				)

				for i := 0; i < attempts; i++ {
					wg.Add(1)

					go func(chatUserID int64) {
						defer wg.Done()

						if auth.Confirm(ctx, token, chatUserID) {
							mu.Lock()
							successes++
							mu.Unlock()
						}
					}(int64(1000 + i))
				}

				wg.Wait()

				assert.Equal(t, 1, successes)
			})
		})
	}
}

func TestAccountRepository(t *testing.T) {
	skipShort(t)

	ctx := context.Background()

	for _, accessType := range accessTypes {
		t.Run(string(accessType), func(t *testing.T) {
			repos := newRepositories(t, accessType)
			clearTables(ctx, t)

			chatUserID := int64(777)
			accountID := insertAccount(ctx, t, "Anna Ivanova", nil, &chatUserID)

			account, err := repos.Accounts.GetByChatUserID(ctx, chatUserID)
			require.NoError(t, err)
			assert.Equal(t, accountID, account.ID)
			assert.Equal(t, "Anna Ivanova", account.DisplayName)
			assert.False(t, account.HasEmail())

			require.NoError(t, repos.Accounts.UpdateEmail(ctx, accountID, "a.ivanova@centraluniversity.ru"))

			account, err = repos.Accounts.GetByChatUserID(ctx, chatUserID)
			require.NoError(t, err)
			require.True(t, account.HasEmail())
			assert.Equal(t, "a.ivanova@centraluniversity.ru", *account.Email)

			_, err = repos.Accounts.GetByChatUserID(ctx, 999)
			assert.ErrorIs(t, err, &customerrors.ErrAccountNotFound{})

			err = repos.Accounts.UpdateEmail(ctx, uuid.New(), "x@centraluniversity.ru")
			assert.ErrorIs(t, err, &customerrors.ErrAccountNotFound{})
		})
	}
}

func TestConversationStateRepository(t *testing.T) {
	skipShort(t)

	ctx := context.Background()

	for _, accessType := range accessTypes {
		t.Run(string(accessType), func(t *testing.T) {
			repos := newRepositories(t, accessType)
			clearTables(ctx, t)

			chatUserID := int64(424242)
			accountID := insertAccount(ctx, t, "Anna Ivanova", nil, &chatUserID)

			_, err := repos.ConversationStates.Get(ctx, chatUserID)
			assert.ErrorIs(t, err, &customerrors.ErrConversationStateNotFound{})

			email := "a.ivanova@centraluniversity.ru"
			require.NoError(t, repos.ConversationStates.Upsert(ctx, &models.ConversationState{
				ChatUserID:       chatUserID,
				Step:             models.StepAwaitingEmailGuess,
				PendingAccountID: &accountID,
				PendingEmail:     &email,
			}))

			state, err := repos.ConversationStates.Get(ctx, chatUserID)
			require.NoError(t, err)
			assert.Equal(t, models.StepAwaitingEmailGuess, state.Step)
			require.NotNil(t, state.PendingEmail)
			assert.Equal(t, email, *state.PendingEmail)
			require.NotNil(t, state.PendingAccountID)
			assert.Equal(t, accountID, *state.PendingAccountID)

			require.NoError(t, repos.ConversationStates.Upsert(ctx, &models.ConversationState{
				ChatUserID: chatUserID,
				Step:       models.StepAwaitingCalendarURL,
			}))

			state, err = repos.ConversationStates.Get(ctx, chatUserID)
			require.NoError(t, err)
			assert.Equal(t, models.StepAwaitingCalendarURL, state.Step)
			assert.Nil(t, state.PendingEmail)

			err = repos.ConversationStates.Upsert(ctx, &models.ConversationState{ChatUserID: chatUserID, Step: models.StepIdle})
			assert.Error(t, err)

			require.NoError(t, repos.ConversationStates.Clear(ctx, chatUserID))
			require.NoError(t, repos.ConversationStates.Clear(ctx, chatUserID))

			_, err = repos.ConversationStates.Get(ctx, chatUserID)
			assert.ErrorIs(t, err, &customerrors.ErrConversationStateNotFound{})
		})
	}
}

func TestCalendarRepository(t *testing.T) {
	skipShort(t)

	ctx := context.Background()

	for _, accessType := range accessTypes {
		t.Run(string(accessType), func(t *testing.T) {
			repos := newRepositories(t, accessType)
			clearTables(ctx, t)

			linkedWith := int64(1)
			linkedWithout := int64(2)

			withCalendar := insertAccount(ctx, t, "With Calendar", nil, &linkedWith)
			withoutCalendar := insertAccount(ctx, t, "Without Calendar", nil, &linkedWithout)
			insertAccount(ctx, t, "Not Linked", nil, nil)

			require.NoError(t, repos.Calendars.Create(ctx, &models.CalendarSubscription{
				AccountID:   withCalendar,
				CalendarURL: "https://calendar.example.org/first.ics",
			}))

			require.NoError(t, repos.Calendars.Upsert(ctx, withCalendar, "https://calendar.example.org/second.ics"))

			subscription, err := repos.Calendars.Get(ctx, withCalendar)
			require.NoError(t, err)
			assert.Equal(t, "https://calendar.example.org/second.ics", subscription.CalendarURL)

			var rows int
			require.NoError(t, testDB.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM calendar WHERE user_id = $1", withCalendar).Scan(&rows))
			assert.Equal(t, 1, rows)

			pending, err := repos.Calendars.ListLinkedAccountsWithoutCalendar(ctx)
			require.NoError(t, err)
			require.Len(t, pending, 1)
			assert.Equal(t, withoutCalendar, pending[0].AccountID)
			assert.Equal(t, linkedWithout, pending[0].ChatUserID)

			require.NoError(t, repos.Calendars.Delete(ctx, withCalendar))
			assert.ErrorIs(t, repos.Calendars.Delete(ctx, withCalendar), &customerrors.ErrCalendarNotFound{})

			_, err = repos.Calendars.Get(ctx, withCalendar)
			assert.ErrorIs(t, err, &customerrors.ErrCalendarNotFound{})

			pending, err = repos.Calendars.ListLinkedAccountsWithoutCalendar(ctx)
			require.NoError(t, err)
			assert.Len(t, pending, 2)
		})
	}
}

func TestFactory_UnknownAccessType(t *testing.T) {
	_, err := repository.NewFactory(nil, &config.Config{DatabaseAccessType: "MONGO"}, logger).CreateRepositories()

	var target *customerrors.ErrUnknownDBAccessType
	assert.ErrorAs(t, err, &target)
}
