package httputil_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/central-university-dev/musicclub-bot/internal/common/httputil"
	"github.com/central-university-dev/musicclub-bot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() httputil.Settings {
	return httputil.Settings{
		Timeout:              2 * time.Second,
		RetryCount:           3,
		RetryBackoff:         20 * time.Millisecond,
		RetryableStatusCodes: []int{500, 502, 503, 504},
		WindowSize:           100,
		MinimumRequiredCalls: 10,
		FailureRateThreshold: 90,
		PermittedInHalfOpen:  3,
		OpenStateWait:        10 * time.Second,
	}
}

func TestResilientClient_OpensBreaker(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	settings := testSettings()
	settings.RetryCount = 0
	settings.WindowSize = 1
	settings.MinimumRequiredCalls = 1
	settings.FailureRateThreshold = 100
	settings.PermittedInHalfOpen = 1
	settings.OpenStateWait = 2 * time.Second

	client := httputil.NewResilientClient(settings, logger, "calendar_feed")

	_, err := client.R().Get(server.URL + "/feed.ics")
	require.Error(t, err)

	before := atomic.LoadInt32(&requestCount)

	start := time.Now()
	_, err = client.R().Get(server.URL + "/feed.ics")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Less(t, time.Since(start), 200*time.Millisecond)
	assert.Equal(t, before, atomic.LoadInt32(&requestCount), "Открытый breaker не должен пропускать запросы")
}

func TestResilientClient_RetriesUntilSuccess(t *testing.T) {
	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&requestCount, 1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "text/calendar")
		_, _ = w.Write([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR\n"))
	}))
	defer server.Close()

	client := httputil.NewResilientClient(testSettings(), nil, "calendar_feed")

	resp, err := client.R().Get(server.URL + "/feed.ics")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, int32(3), atomic.LoadInt32(&requestCount))
}

func TestResilientClient_DoesNotRetryClientErrors(t *testing.T) {
	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := httputil.NewResilientClient(testSettings(), nil, "calendar_feed")

	resp, err := client.R().Get(server.URL + "/missing.ics")

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := &config.Config{
		ExternalRequestTimeout:     3 * time.Second,
		RetryCount:                 4,
		RetryBackoff:               time.Second,
		RetryableStatusCodes:       []int{503},
		CBSlidingWindowSize:        7,
		CBMinimumRequiredCalls:     2,
		CBFailureRateThreshold:     60,
		CBPermittedCallsInHalfOpen: 1,
		CBWaitDurationInOpenState:  5 * time.Second,
	}

	settings := httputil.SettingsFromConfig(cfg)

	assert.Equal(t, 3*time.Second, settings.Timeout)
	assert.Equal(t, 4, settings.RetryCount)
	assert.Equal(t, []int{503}, settings.RetryableStatusCodes)
	assert.Equal(t, 7, settings.WindowSize)
	assert.Equal(t, 60, settings.FailureRateThreshold)
	assert.Equal(t, 5*time.Second, settings.OpenStateWait)
}
