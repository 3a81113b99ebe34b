package clients

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-resty/resty/v2"

	"github.com/central-university-dev/musicclub-bot/internal/common/httputil"
	"github.com/central-university-dev/musicclub-bot/internal/common/metrics"
	domainerrors "github.com/central-university-dev/musicclub-bot/internal/domain/errors"
)

const feedServiceName = "calendar_feed"

// FeedClient проверяет, что ссылка на .ics календарь отвечает успешным статусом.
type FeedClient struct {
	client *resty.Client
	logger *slog.Logger
}

func NewFeedClient(settings httputil.Settings, logger *slog.Logger) *FeedClient {
	return &FeedClient{
		client: httputil.NewResilientClient(settings, logger, feedServiceName),
		logger: logger,
	}
}

func (c *FeedClient) Check(ctx context.Context, feedURL string) error {
	start := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/calendar").
		SetDoNotParseResponse(true).
		Get(feedURL)
	if err != nil {
		metrics.RecordHTTPRequest(feedServiceName, http.MethodGet, 0, time.Since(start))
		return &domainerrors.ErrFeedUnavailable{URL: feedURL, Cause: errors.Wrap(err, "request feed")}
	}

	metrics.RecordHTTPRequest(feedServiceName, http.MethodGet, resp.StatusCode(), time.Since(start))

	body := resp.RawBody()
	if body != nil {
		defer body.Close()
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return &domainerrors.ErrFeedUnavailable{
			URL:   feedURL,
			Cause: errors.Wrapf(&domainerrors.HTTPError{StatusCode: resp.StatusCode()}, "feed status"),
		}
	}

	c.logger.Debug("Календарь доступен", "url", feedURL, "status", resp.StatusCode())

	return nil
}
