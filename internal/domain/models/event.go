package models

import (
	"time"

	"github.com/google/uuid"
)

type AccountEventType string

const (
	EventAccountLinked    AccountEventType = "account_linked"
	EventCalendarAttached AccountEventType = "calendar_attached"
	EventCalendarDetached AccountEventType = "calendar_detached"
)

// AccountEvent notifies other club services that an account's chat link or calendar
// changed.
type AccountEvent struct {
	Type        AccountEventType
	AccountID   uuid.UUID
	ChatUserID  int64
	CalendarURL string
	OccurredAt  time.Time
}
