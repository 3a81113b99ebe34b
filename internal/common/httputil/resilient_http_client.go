package httputil

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/central-university-dev/musicclub-bot/internal/config"
	"github.com/central-university-dev/musicclub-bot/internal/domain/errors"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

type Settings struct {
	Timeout              time.Duration
	RetryCount           int
	RetryBackoff         time.Duration
	RetryableStatusCodes []int

	WindowSize           int
	MinimumRequiredCalls int
	FailureRateThreshold int
	PermittedInHalfOpen  int
	OpenStateWait        time.Duration
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Timeout:              cfg.ExternalRequestTimeout,
		RetryCount:           cfg.RetryCount,
		RetryBackoff:         cfg.RetryBackoff,
		RetryableStatusCodes: cfg.RetryableStatusCodes,
		WindowSize:           cfg.CBSlidingWindowSize,
		MinimumRequiredCalls: cfg.CBMinimumRequiredCalls,
		FailureRateThreshold: cfg.CBFailureRateThreshold,
		PermittedInHalfOpen:  cfg.CBPermittedCallsInHalfOpen,
		OpenStateWait:        cfg.CBWaitDurationInOpenState,
	}
}

// NewResilientClient returns a resty client that retries retryable statuses and trips a
// circuit breaker per serviceName on 5xx and transport failures.
func NewResilientClient(settings Settings, logger *slog.Logger, serviceName string) *resty.Client {
	client := resty.New()

	client.SetTimeout(settings.Timeout)

	client.SetRetryCount(settings.RetryCount)
	client.SetRetryWaitTime(settings.RetryBackoff)
	client.SetRetryMaxWaitTime(settings.RetryBackoff * 5)

	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}

		for _, status := range settings.RetryableStatusCodes {
			if r.StatusCode() == status {
				return true
			}
		}

		return false
	})

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        serviceName + "_circuit_breaker",
		MaxRequests: uint32(settings.PermittedInHalfOpen), //nolint:gosec // G115: значение из конфига
		Interval:    time.Duration(settings.WindowSize) * time.Second,
		Timeout:     settings.OpenStateWait,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= uint32(settings.MinimumRequiredCalls) && //nolint:gosec // G115: значение из конфига
				failureRatio >= float64(settings.FailureRateThreshold)/100.0
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("Состояние circuit breaker изменилось",
					"breaker", name,
					"from", from.String(),
					"to", to.String(),
				)
			}
		},
	})

	client.SetTransport(&CircuitBreakerTransport{
		breaker:     breaker,
		next:        http.DefaultTransport,
		logger:      logger,
		serviceName: serviceName,
	})

	if logger != nil {
		client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			if resp.Request.Attempt > 1 {
				logger.Info("Повторный HTTP запрос",
					"service", serviceName,
					"url", resp.Request.URL,
					"attempt", resp.Request.Attempt,
					"status", resp.StatusCode(),
				)
			}

			return nil
		})
	}

	return client
}

type CircuitBreakerTransport struct {
	breaker     *gobreaker.CircuitBreaker
	next        http.RoundTripper
	logger      *slog.Logger
	serviceName string
}

func (t *CircuitBreakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	result, err := t.breaker.Execute(func() (interface{}, error) {
		resp, err := t.next.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			return nil, &errors.HTTPError{StatusCode: resp.StatusCode}
		}

		return resp, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState && t.logger != nil {
			t.logger.Warn("Circuit breaker открыт",
				"service", t.serviceName,
				"url", req.URL.String(),
			)
		}

		return nil, err
	}

	return result.(*http.Response), nil
}
