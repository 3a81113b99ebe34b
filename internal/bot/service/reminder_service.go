package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/central-university-dev/musicclub-bot/internal/bot/i18n"
	"github.com/central-university-dev/musicclub-bot/internal/common/metrics"
	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
)

const reminderRoutineName = "without_calendar"

type ReminderReport struct {
	Total   int
	Sent    int
	Failed  int
	Skipped bool
}

// ReminderService напоминает привязанным пользователям без календаря о его привязке.
// Ошибка отправки одному пользователю не прерывает рассылку остальным.
type ReminderService struct {
	calendars CalendarRepository
	sender    MessageSender
	localizer *i18n.Localizer
	locale    i18n.Locale
	lock      RoutineLock
	lockTTL   time.Duration
	limiter   *rate.Limiter
	workers   int
	logger    *slog.Logger
}

type ReminderOptions struct {
	Locale    i18n.Locale
	Workers   int
	RateLimit int
	Lock      RoutineLock
	LockTTL   time.Duration
}

func NewReminderService(
	calendars CalendarRepository,
	sender MessageSender,
	localizer *i18n.Localizer,
	opts ReminderOptions,
	logger *slog.Logger,
) *ReminderService {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	limit := rate.Inf
	burst := 1

	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
		burst = opts.RateLimit
	}

	return &ReminderService{
		calendars: calendars,
		sender:    sender,
		localizer: localizer,
		locale:    opts.Locale,
		lock:      opts.Lock,
		lockTTL:   opts.LockTTL,
		limiter:   rate.NewLimiter(limit, burst),
		workers:   workers,
		logger:    logger,
	}
}

func (s *ReminderService) Name() string {
	return reminderRoutineName
}

// Run выполняет одну рассылку. Ошибка возвращается только если не удалось получить
// список пользователей.
func (s *ReminderService) Run(ctx context.Context) (ReminderReport, error) {
	start := time.Now()
	defer func() { metrics.RecordReminderRun(time.Since(start)) }()

	if s.lock != nil {
		acquired, err := s.lock.TryAcquire(ctx, reminderRoutineName, s.lockTTL)
		if err != nil {
			s.logger.Warn("Не удалось взять блокировку рутины, продолжаем без неё", "error", err)
		} else if !acquired {
			s.logger.Info("Рутина уже выполнена другим экземпляром", "routine", reminderRoutineName)
			return ReminderReport{Skipped: true}, nil
		}
	}

	accounts, err := s.calendars.ListLinkedAccountsWithoutCalendar(ctx)
	if err != nil {
		return ReminderReport{}, err
	}

	report := ReminderReport{Total: len(accounts)}
	if len(accounts) == 0 {
		s.logger.Info("Нет пользователей без календаря")
		return report, nil
	}

	var sent, failed atomic.Int64

	accountCh := make(chan models.LinkedAccount)
	wg := sync.WaitGroup{}

	workers := min(s.workers, len(accounts))
	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func(workerID int) {
			defer wg.Done()

			for account := range accountCh {
				if s.remind(ctx, account, workerID) {
					sent.Add(1)
				} else {
					failed.Add(1)
				}
			}
		}(i + 1)
	}

	for _, account := range accounts {
		accountCh <- account
	}

	close(accountCh)
	wg.Wait()

	report.Sent = int(sent.Load())
	report.Failed = int(failed.Load())

	s.logger.Info("Рассылка напоминаний завершена",
		"total", report.Total,
		"sent", report.Sent,
		"failed", report.Failed,
	)

	return report, nil
}

func (s *ReminderService) remind(ctx context.Context, account models.LinkedAccount, workerID int) bool {
	if err := s.limiter.Wait(ctx); err != nil {
		s.logger.Warn("Напоминание не отправлено", "error", err, "chat_user_id", account.ChatUserID)
		metrics.RecordReminder("failed")

		return false
	}

	reply := models.NewReply(
		s.localizer.Text(s.locale, i18n.KeyCalendarPrompt),
		models.Button{
			Text:   s.localizer.Text(s.locale, i18n.KeyCalendarButton),
			Action: models.ActionCalendarAttach,
		},
	)

	if err := s.sender.SendReply(ctx, account.ChatUserID, reply); err != nil {
		s.logger.Warn("Не удалось отправить напоминание",
			"error", err,
			"worker", workerID,
			"account_id", account.AccountID,
			"chat_user_id", account.ChatUserID,
		)
		metrics.RecordReminder("failed")

		return false
	}

	s.logger.Debug("Напоминание отправлено", "worker", workerID, "chat_user_id", account.ChatUserID)
	metrics.RecordReminder("sent")

	return true
}
