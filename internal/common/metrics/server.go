package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthPingTimeout = 2 * time.Second

// Pinger проверяет доступность хранилища, без которого бот не может обрабатывать события.
type Pinger interface {
	Ping(ctx context.Context) error
}

//nolint:revive // Имя MetricsServer используется для ясности
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
	port   int
}

func NewMetricsServer(port int, db Pinger, logger *slog.Logger) *MetricsServer {
	return &MetricsServer{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewHandler(db, logger),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
		logger: logger,
		port:   port,
	}
}

// NewHandler отдаёт /metrics и /health. /health отвечает 503, пока PostgreSQL не отвечает на ping.
func NewHandler(db Pinger, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Warn("Проверка готовности не пройдена: PostgreSQL недоступен", "error", err)

			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("DATABASE UNAVAILABLE"))

			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return mux
}

// Start блокируется до отмены ctx, после чего сервер останавливается.
func (s *MetricsServer) Start(ctx context.Context) error {
	s.logger.Info("Запуск сервера метрик",
		"port", s.port,
		"endpoints", []string{"/metrics", "/health"},
	)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Ошибка при остановке сервера метрик", "error", err)
			return
		}

		s.logger.Info("Сервер метрик остановлен")
	}()

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ошибка запуска сервера метрик: %w", err)
	}

	return nil
}
