package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/musicclub-bot/internal/bot/i18n"
	"github.com/central-university-dev/musicclub-bot/internal/bot/service"
	"github.com/central-university-dev/musicclub-bot/internal/common"
	domainerrors "github.com/central-university-dev/musicclub-bot/internal/domain/errors"
	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
)

// memoryStore держит таблицы диалога, аккаунтов и календарей в памяти и
// проверяет, что в хранилище попадают только сохраняемые шаги.
type memoryStore struct {
	t         *testing.T
	mu        sync.Mutex
	states    map[int64]models.ConversationState
	accounts  map[uuid.UUID]*models.Account
	calendars map[uuid.UUID]models.CalendarSubscription
}

func newMemoryStore(t *testing.T) *memoryStore {
	return &memoryStore{
		t:         t,
		states:    make(map[int64]models.ConversationState),
		accounts:  make(map[uuid.UUID]*models.Account),
		calendars: make(map[uuid.UUID]models.CalendarSubscription),
	}
}

func (s *memoryStore) addAccount(account *models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[account.ID] = account
}

func (s *memoryStore) Get(_ context.Context, chatUserID int64) (*models.ConversationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[chatUserID]
	if !ok {
		return nil, &domainerrors.ErrConversationStateNotFound{ChatUserID: chatUserID}
	}

	return &state, nil
}

func (s *memoryStore) Upsert(_ context.Context, state *models.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !state.Step.Persisted() {
		s.t.Errorf("попытка сохранить шаг %s", state.Step)
	}

	stored := *state
	stored.UpdatedAt = time.Now()
	s.states[state.ChatUserID] = stored

	return nil
}

func (s *memoryStore) Clear(_ context.Context, chatUserID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, chatUserID)

	return nil
}

func (s *memoryStore) GetByChatUserID(_ context.Context, chatUserID int64) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.ChatUserID != nil && *account.ChatUserID == chatUserID {
			copied := *account
			return &copied, nil
		}
	}

	return nil, &domainerrors.ErrAccountNotFound{ChatUserID: chatUserID}
}

func (s *memoryStore) UpdateEmail(_ context.Context, accountID uuid.UUID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return &domainerrors.ErrAccountNotFound{AccountID: accountID}
	}

	account.Email = &email

	return nil
}

func (s *memoryStore) LinkChatUser(_ context.Context, accountID uuid.UUID, chatUserID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return &domainerrors.ErrAccountNotFound{AccountID: accountID}
	}

	account.ChatUserID = &chatUserID

	return nil
}

func (s *memoryStore) GrantDefaultPermissions(context.Context, uuid.UUID) error {
	return nil
}

func (s *memoryStore) calendar(accountID uuid.UUID) (models.CalendarSubscription, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subscription, ok := s.calendars[accountID]

	return subscription, ok
}

type memoryCalendars struct {
	*memoryStore
}

func (c memoryCalendars) Get(_ context.Context, accountID uuid.UUID) (*models.CalendarSubscription, error) {
	subscription, ok := c.calendar(accountID)
	if !ok {
		return nil, &domainerrors.ErrCalendarNotFound{AccountID: accountID}
	}

	return &subscription, nil
}

func (c memoryCalendars) Create(_ context.Context, subscription *models.CalendarSubscription) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calendars[subscription.AccountID] = *subscription

	return nil
}

func (c memoryCalendars) Upsert(_ context.Context, accountID uuid.UUID, calendarURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()

	subscription, ok := c.calendars[accountID]
	if !ok {
		subscription = models.CalendarSubscription{AccountID: accountID, CreatedAt: now}
	}

	subscription.CalendarURL = calendarURL
	subscription.UpdatedAt = now
	c.calendars[accountID] = subscription

	return nil
}

func (c memoryCalendars) Delete(_ context.Context, accountID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.calendars[accountID]; !ok {
		return &domainerrors.ErrCalendarNotFound{AccountID: accountID}
	}

	delete(c.calendars, accountID)

	return nil
}

func (c memoryCalendars) ListLinkedAccountsWithoutCalendar(context.Context) ([]models.LinkedAccount, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result []models.LinkedAccount

	for id, account := range c.accounts {
		if _, ok := c.calendars[id]; ok || account.ChatUserID == nil {
			continue
		}

		result = append(result, models.LinkedAccount{AccountID: id, ChatUserID: *account.ChatUserID})
	}

	return result, nil
}

func newStoreBackedService(t *testing.T, store *memoryStore) *service.CalendarAttachService {
	localizer, err := i18n.NewLocalizer()
	require.NoError(t, err)

	return service.NewCalendarAttachService(
		store,
		store,
		memoryCalendars{store},
		common.NewEmailGuesser(testEmailDomain),
		common.NewCalendarURLValidator(),
		nil,
		nil,
		localizer,
		newTestLogger(),
	)
}

func TestCalendarAttach_FullDialogWithGuessedEmail(t *testing.T) {
	store := newMemoryStore(t)
	svc := newStoreBackedService(t, store)
	ctx := context.Background()

	chatUserID := testChatUserID
	account := &models.Account{ID: uuid.New(), DisplayName: "Anna Ivanova", ChatUserID: &chatUserID}
	store.addAccount(account)

	profile := testProfile()

	require.NotNil(t, svc.Start(ctx, profile))

	state, err := store.Get(ctx, chatUserID)
	require.NoError(t, err)
	assert.Equal(t, models.StepAwaitingEmailGuess, state.Step)

	require.NotNil(t, svc.ConfirmEmail(ctx, profile, true))

	state, err = store.Get(ctx, chatUserID)
	require.NoError(t, err)
	assert.Equal(t, models.StepAwaitingCalendarURL, state.Step)
	require.NotNil(t, account.Email)
	assert.Equal(t, "a.ivanova@"+testEmailDomain, *account.Email)

	require.NotNil(t, svc.HandleMessage(ctx, profile, "ftp://calendar.example.com/a.ics"))

	state, err = store.Get(ctx, chatUserID)
	require.NoError(t, err)
	assert.Equal(t, models.StepAwaitingCalendarURL, state.Step, "невалидная ссылка не меняет шаг")

	require.NotNil(t, svc.HandleMessage(ctx, profile, testCalendarURL))

	_, err = store.Get(ctx, chatUserID)
	assert.ErrorIs(t, err, &domainerrors.ErrConversationStateNotFound{})

	subscription, ok := store.calendar(account.ID)
	require.True(t, ok)
	assert.Equal(t, testCalendarURL, subscription.CalendarURL)

	assert.Nil(t, svc.HandleMessage(ctx, profile, "anything else"), "после завершения диалога сообщения игнорируются")
	assert.Nil(t, svc.ConfirmEmail(ctx, profile, true), "устаревшая кнопка ничего не делает")
}

func TestCalendarAttach_ResubmissionOverwritesURL(t *testing.T) {
	store := newMemoryStore(t)
	svc := newStoreBackedService(t, store)
	ctx := context.Background()

	chatUserID := testChatUserID
	email := "anna@example.com"
	account := &models.Account{ID: uuid.New(), Email: &email, ChatUserID: &chatUserID}
	store.addAccount(account)

	second := "https://calendar.example.com/u/anna/work.ICS"

	for _, calendarURL := range []string{testCalendarURL, second} {
		require.NotNil(t, svc.Start(ctx, testProfile()))
		require.NotNil(t, svc.HandleMessage(ctx, testProfile(), calendarURL))
	}

	subscription, ok := store.calendar(account.ID)
	require.True(t, ok)
	assert.Equal(t, second, subscription.CalendarURL)
}

func TestCalendarAttach_ConcurrentUsersAreIndependent(t *testing.T) {
	store := newMemoryStore(t)
	svc := newStoreBackedService(t, store)
	ctx := context.Background()

	const users = 8

	accounts := make([]*models.Account, users)

	for i := range accounts {
		chatUserID := int64(1000 + i)
		email := fmt.Sprintf("user%d@example.com", i)
		accounts[i] = &models.Account{ID: uuid.New(), Email: &email, ChatUserID: &chatUserID}
		store.addAccount(accounts[i])
	}

	var wg sync.WaitGroup

	for i := range accounts {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			profile := models.UserProfile{ChatUserID: *accounts[i].ChatUserID, LanguageCode: "ru"}
			calendarURL := fmt.Sprintf("https://calendar.example.com/u/%d/basic.ics", i)

			svc.Start(ctx, profile)
			svc.HandleMessage(ctx, profile, calendarURL)
		}(i)
	}

	wg.Wait()

	for i, account := range accounts {
		subscription, ok := store.calendar(account.ID)
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("https://calendar.example.com/u/%d/basic.ics", i), subscription.CalendarURL)

		_, err := store.Get(ctx, *account.ChatUserID)
		assert.ErrorIs(t, err, &domainerrors.ErrConversationStateNotFound{})
	}
}
