package models

import (
	"time"

	"github.com/google/uuid"
)

type CalendarSubscription struct {
	AccountID   uuid.UUID
	CalendarURL string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
