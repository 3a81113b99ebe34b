package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/multierr"

	"github.com/central-university-dev/musicclub-bot/internal/bot/cache"
	"github.com/central-university-dev/musicclub-bot/internal/bot/clients"
	"github.com/central-university-dev/musicclub-bot/internal/bot/domain"
	"github.com/central-university-dev/musicclub-bot/internal/bot/events"
	"github.com/central-university-dev/musicclub-bot/internal/bot/i18n"
	"github.com/central-university-dev/musicclub-bot/internal/bot/repository"
	botservice "github.com/central-university-dev/musicclub-bot/internal/bot/service"
	"github.com/central-university-dev/musicclub-bot/internal/bot/telegram"
	"github.com/central-university-dev/musicclub-bot/internal/common"
	"github.com/central-university-dev/musicclub-bot/internal/common/httputil"
	"github.com/central-university-dev/musicclub-bot/internal/common/metrics"
	"github.com/central-university-dev/musicclub-bot/internal/config"
	"github.com/central-university-dev/musicclub-bot/internal/database"
	"github.com/central-university-dev/musicclub-bot/internal/scheduler"
	"github.com/central-university-dev/musicclub-bot/pkg"
	"github.com/central-university-dev/musicclub-bot/pkg/txs"
)

type publisher interface {
	botservice.EventPublisher
	Close() error
}

func setupTelegramCommands(telegramClient domain.TelegramClientAPI, appLogger *slog.Logger) {
	botCommands := []domain.BotCommand{
		{Command: "start", Description: "Начать работу с ботом"},
		{Command: "help", Description: "Получить справку о командах"},
		{Command: "calendar", Description: "Привязать календарь"},
		{Command: "calendar_detach", Description: "Отвязать календарь"},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := telegramClient.SetMyCommands(ctx, botCommands); err != nil {
		appLogger.Error("Ошибка при регистрации команд бота",
			"error", err,
		)
	} else {
		appLogger.Info("Команды бота успешно зарегистрированы")
	}
}

func newPublisher(cfg *config.Config, appLogger *slog.Logger) publisher {
	if cfg.EventsTransport != config.EventsKafka {
		appLogger.Info("Публикация событий аккаунтов отключена")
		return events.NopPublisher{}
	}

	brokers := strings.Split(cfg.KafkaBrokers, ",")

	appLogger.Info("События аккаунтов публикуются в Kafka",
		"brokers", brokers,
		"topic", cfg.TopicAccountEvents,
	)

	return events.NewKafkaPublisher(brokers, cfg.TopicAccountEvents, appLogger)
}

func gracefulShutdown(
	poller *telegram.Poller,
	jobs *scheduler.Scheduler,
	eventPublisher publisher,
	routineLock *cache.RedisRoutineLock,
	appLogger *slog.Logger,
) error {
	var err error

	err = multierr.Append(err, poller.Close())

	if jobs != nil {
		jobs.Stop()
	}

	err = multierr.Append(err, eventPublisher.Close())

	if routineLock != nil {
		err = multierr.Append(err, routineLock.Close())
	}

	if err != nil {
		appLogger.Error("Ошибки при остановке сервиса", "error", err)
		return err
	}

	appLogger.Info("Сервис успешно остановлен")

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка запуска сервиса: %v\n", err)
		os.Exit(1)
	}
}

//nolint:funlen // Длина функции обусловлена необходимостью последовательной инициализации всех компонентов.
func run() error {
	cfg := config.LoadConfig()

	appLogger := pkg.NewLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MigrationsEnabled {
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
			return fmt.Errorf("ошибка применения миграций: %w", err)
		}
	}

	db, err := database.NewPostgresDB(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Ошибка при подключении к базе данных",
			"error", err,
		)

		return fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	defer db.Close()

	txManager := txs.NewTxManager(db.Pool, appLogger)

	repos, err := repository.NewFactory(db, cfg, appLogger).CreateRepositories()
	if err != nil {
		return fmt.Errorf("ошибка создания репозиториев: %w", err)
	}

	localizer, err := i18n.NewLocalizer()
	if err != nil {
		return fmt.Errorf("ошибка инициализации локализации: %w", err)
	}

	telegramClient, err := clients.NewTelegramClient(cfg.TelegramBotToken, appLogger)
	if err != nil {
		return err
	}

	setupTelegramCommands(telegramClient, appLogger)

	eventPublisher := newPublisher(cfg, appLogger)

	var probe botservice.FeedProbe
	if cfg.CalendarProbeEnabled {
		probe = clients.NewFeedClient(httputil.SettingsFromConfig(cfg), appLogger)
	}

	authService := botservice.NewAuthService(txManager, repos.AuthTokens, repos.Accounts, eventPublisher, appLogger)

	calendarService := botservice.NewCalendarAttachService(
		repos.ConversationStates,
		repos.Accounts,
		repos.Calendars,
		common.NewEmailGuesser(cfg.EmailDomain),
		common.NewCalendarURLValidator(),
		probe,
		eventPublisher,
		localizer,
		appLogger,
	)

	botService := botservice.NewBotService(authService, calendarService, localizer, cfg.WebAppURL, appLogger)

	var routineLock *cache.RedisRoutineLock

	var jobs *scheduler.Scheduler

	if cfg.ReminderEnabled {
		opts := botservice.ReminderOptions{
			Locale:    i18n.LocaleFor(cfg.DefaultLocale),
			Workers:   cfg.ReminderWorkers,
			RateLimit: cfg.ReminderRateLimit,
			LockTTL:   cfg.ReminderLockTTL,
		}

		if cfg.RedisURL != "" {
			routineLock, err = cache.NewRedisRoutineLock(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB, appLogger)
			if err != nil {
				appLogger.Warn("Redis недоступен, рутины выполняются без блокировки", "error", err)
			} else {
				opts.Lock = routineLock
			}
		}

		reminder := botservice.NewReminderService(repos.Calendars, telegramClient, localizer, opts, appLogger)

		// Без блокировки запуск при старте повторял бы рассылку после каждого рестарта.
		runAtStart := opts.Lock != nil

		jobs = scheduler.NewScheduler(appLogger)
		jobs.Add(reminder.Name(), cfg.ReminderInterval, runAtStart, func(ctx context.Context) error {
			_, err := reminder.Run(ctx)
			return err
		})
		jobs.Start()
	}

	metricsServer := metrics.NewMetricsServer(cfg.BotMetricsPort, db.Pool, appLogger)

	// Сервер метрик останавливается по отмене ctx.
	go func() {
		if err := metricsServer.Start(ctx); err != nil {
			appLogger.Error("Ошибка сервера метрик", "error", err)
		}
	}()

	poller := telegram.NewPoller(telegramClient, botService, localizer, cfg.PollTimeout, cfg.HandlerTimeout, appLogger)
	poller.Start()

	appLogger.Info("Бот запущен")

	<-ctx.Done()
	appLogger.Info("Получен сигнал завершения")

	return gracefulShutdown(poller, jobs, eventPublisher, routineLock, appLogger)
}
