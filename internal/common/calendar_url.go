package common

import (
	"net/url"
	"strings"

	"github.com/central-university-dev/musicclub-bot/internal/domain/errors"
)

const calendarFeedMarker = ".ics"

type CalendarURLValidator struct{}

func NewCalendarURLValidator() *CalendarURLValidator {
	return &CalendarURLValidator{}
}

// Validate accepts http(s) URLs with a host whose path mentions an .ics feed and returns
// the trimmed URL.
func (v *CalendarURLValidator) Validate(raw string) (string, error) {
	value := strings.TrimSpace(raw)

	parsed, err := url.Parse(value)
	if err != nil {
		return "", &errors.ErrInvalidCalendarURL{URL: value, Reason: err.Error()}
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", &errors.ErrInvalidCalendarURL{URL: value, Reason: "схема должна быть http или https"}
	}

	if parsed.Host == "" {
		return "", &errors.ErrInvalidCalendarURL{URL: value, Reason: "не указан хост"}
	}

	if !strings.Contains(strings.ToLower(parsed.Path), calendarFeedMarker) {
		return "", &errors.ErrInvalidCalendarURL{URL: value, Reason: "путь не содержит .ics"}
	}

	return value, nil
}
