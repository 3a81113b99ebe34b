package cache

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

const routineLockPrefix = "musicclub:routine:"

// RedisRoutineLock не даёт нескольким экземплярам бота выполнить одну рутину за интервал.
type RedisRoutineLock struct {
	client *redis.Client
	owner  string
	logger *slog.Logger
}

func NewRedisRoutineLock(redisURL, password string, db int, logger *slog.Logger) (*RedisRoutineLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ошибка при подключении к Redis: %w", err)
	}

	logger.Info("Соединение с Redis успешно установлено")

	hostname, _ := os.Hostname()

	return &RedisRoutineLock{
		client: client,
		owner:  fmt.Sprintf("%s:%d", hostname, os.Getpid()),
		logger: logger,
	}, nil
}

// TryAcquire занимает ключ рутины на ttl. false означает, что рутину уже выполняет
// или недавно выполнил другой экземпляр.
func (l *RedisRoutineLock) TryAcquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	acquired, err := l.client.SetNX(ctx, routineLockPrefix+name, l.owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("ошибка при захвате блокировки %s в Redis: %w", name, err)
	}

	l.logger.Debug("Попытка захвата блокировки рутины",
		"routine", name,
		"owner", l.owner,
		"acquired", acquired,
	)

	return acquired, nil
}

func (l *RedisRoutineLock) Close() error {
	return l.client.Close()
}
