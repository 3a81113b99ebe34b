package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Job выполняет одну итерацию периодической рутины.
type Job func(ctx context.Context) error

type Scheduler struct {
	scheduler *gocron.Scheduler
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Add регистрирует рутину. Рутины с неположительным интервалом пропускаются.
// Запуски одной рутины не пересекаются. При runAtStart первый запуск происходит сразу
// после Start, иначе через interval.
func (s *Scheduler) Add(name string, interval time.Duration, runAtStart bool, job Job) bool {
	if interval <= 0 {
		s.logger.Warn("Рутина пропущена: интервал должен быть положительным",
			"routine", name,
			"interval", interval.String(),
		)

		return false
	}

	schedule := s.scheduler.Every(interval)
	if !runAtStart {
		schedule = schedule.WaitForSchedule()
	}

	_, err := schedule.SingletonMode().Do(func() {
		s.logger.Info("Запуск рутины", "routine", name)

		start := time.Now()

		if err := job(s.ctx); err != nil {
			s.logger.Error("Ошибка при выполнении рутины",
				"routine", name,
				"error", err,
			)

			return
		}

		s.logger.Info("Рутина завершена",
			"routine", name,
			"duration", time.Since(start).String(),
		)
	})
	if err != nil {
		s.logger.Error("Ошибка при настройке планировщика",
			"routine", name,
			"error", err,
		)

		return false
	}

	s.logger.Info("Рутина зарегистрирована",
		"routine", name,
		"interval", interval.String(),
		"run_at_start", runAtStart,
	)

	return true
}

func (s *Scheduler) Start() {
	s.logger.Info("Запуск планировщика", "jobs", s.scheduler.Len())
	s.scheduler.StartAsync()
}

// Stop отменяет контекст выполняющихся рутин и останавливает планировщик.
func (s *Scheduler) Stop() {
	s.logger.Info("Остановка планировщика")
	s.cancel()
	s.scheduler.Stop()
}
