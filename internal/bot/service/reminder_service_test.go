package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/musicclub-bot/internal/bot/i18n"
	"github.com/central-university-dev/musicclub-bot/internal/bot/service"
	"github.com/central-university-dev/musicclub-bot/internal/bot/service/mocks"
	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
)

func newReminder(
	t *testing.T,
	calendars service.CalendarRepository,
	sender service.MessageSender,
	lock service.RoutineLock,
) *service.ReminderService {
	localizer, err := i18n.NewLocalizer()
	require.NoError(t, err)

	return service.NewReminderService(calendars, sender, localizer, service.ReminderOptions{
		Locale:  i18n.LocaleEN,
		Workers: 3,
		Lock:    lock,
		LockTTL: time.Hour,
	}, newTestLogger())
}

func linkedAccounts(n int) []models.LinkedAccount {
	accounts := make([]models.LinkedAccount, n)
	for i := range accounts {
		accounts[i] = models.LinkedAccount{AccountID: uuid.New(), ChatUserID: int64(100 + i)}
	}

	return accounts
}

func TestReminderService_Run_SendsPromptWithAttachButton(t *testing.T) {
	calendars := mocks.NewCalendarRepository(t)
	sender := mocks.NewMessageSender(t)

	accounts := linkedAccounts(5)
	calendars.On("ListLinkedAccountsWithoutCalendar", mock.Anything).Return(accounts, nil).Once()

	for _, account := range accounts {
		sender.On("SendReply", mock.Anything, account.ChatUserID, mock.MatchedBy(func(reply *models.Reply) bool {
			return len(reply.Buttons) == 1 && reply.Buttons[0].Action == models.ActionCalendarAttach
		})).Return(nil).Once()
	}

	report, err := newReminder(t, calendars, sender, nil).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, service.ReminderReport{Total: 5, Sent: 5}, report)
}

func TestReminderService_Run_FailuresDoNotAbortBatch(t *testing.T) {
	calendars := mocks.NewCalendarRepository(t)
	sender := mocks.NewMessageSender(t)

	accounts := linkedAccounts(4)
	calendars.On("ListLinkedAccountsWithoutCalendar", mock.Anything).Return(accounts, nil).Once()

	var mu sync.Mutex

	delivered := make(map[int64]bool)

	sender.On("SendReply", mock.Anything, mock.AnythingOfType("int64"), mock.Anything).
		Return(func(_ context.Context, chatID int64, _ *models.Reply) error {
			if chatID == accounts[0].ChatUserID || chatID == accounts[2].ChatUserID {
				return assert.AnError
			}

			mu.Lock()
			delivered[chatID] = true
			mu.Unlock()

			return nil
		})

	report, err := newReminder(t, calendars, sender, nil).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, 2, report.Failed)
	assert.True(t, delivered[accounts[1].ChatUserID])
	assert.True(t, delivered[accounts[3].ChatUserID])
	sender.AssertNumberOfCalls(t, "SendReply", 4)
}

func TestReminderService_Run_ListFailure(t *testing.T) {
	calendars := mocks.NewCalendarRepository(t)
	sender := mocks.NewMessageSender(t)

	calendars.On("ListLinkedAccountsWithoutCalendar", mock.Anything).Return(nil, assert.AnError).Once()

	_, err := newReminder(t, calendars, sender, nil).Run(context.Background())

	require.ErrorIs(t, err, assert.AnError)
	sender.AssertNotCalled(t, "SendReply", mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderService_Run_NobodyToRemind(t *testing.T) {
	calendars := mocks.NewCalendarRepository(t)
	sender := mocks.NewMessageSender(t)

	calendars.On("ListLinkedAccountsWithoutCalendar", mock.Anything).Return([]models.LinkedAccount{}, nil).Once()

	report, err := newReminder(t, calendars, sender, nil).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, report.Total)
}

func TestReminderService_Run_SkipsWhenLockHeldElsewhere(t *testing.T) {
	calendars := mocks.NewCalendarRepository(t)
	sender := mocks.NewMessageSender(t)
	lock := mocks.NewRoutineLock(t)

	lock.On("TryAcquire", mock.Anything, "without_calendar", time.Hour).Return(false, nil).Once()

	report, err := newReminder(t, calendars, sender, lock).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, report.Skipped)
	calendars.AssertNotCalled(t, "ListLinkedAccountsWithoutCalendar", mock.Anything)
}

func TestReminderService_Run_LockErrorStillRuns(t *testing.T) {
	calendars := mocks.NewCalendarRepository(t)
	sender := mocks.NewMessageSender(t)
	lock := mocks.NewRoutineLock(t)

	lock.On("TryAcquire", mock.Anything, "without_calendar", time.Hour).Return(false, assert.AnError).Once()
	calendars.On("ListLinkedAccountsWithoutCalendar", mock.Anything).Return([]models.LinkedAccount{}, nil).Once()

	report, err := newReminder(t, calendars, sender, lock).Run(context.Background())

	require.NoError(t, err)
	assert.False(t, report.Skipped)
}
