package models

import (
	"time"

	"github.com/google/uuid"
)

// ConversationStep is the persisted cursor of the calendar attachment dialog. StepIdle is
// never stored: a missing row means no conversation is in progress.
type ConversationStep int

const (
	StepIdle ConversationStep = iota
	StepAwaitingCalendarURL
	StepAwaitingEmailGuess
	StepAwaitingEmailInput
)

func (s ConversationStep) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepAwaitingCalendarURL:
		return "awaiting_calendar_url"
	case StepAwaitingEmailGuess:
		return "awaiting_email_guess"
	case StepAwaitingEmailInput:
		return "awaiting_email_input"
	default:
		return "unknown"
	}
}

func (s ConversationStep) Persisted() bool {
	return s == StepAwaitingCalendarURL || s == StepAwaitingEmailGuess || s == StepAwaitingEmailInput
}

type ConversationState struct {
	ChatUserID       int64
	Step             ConversationStep
	PendingAccountID *uuid.UUID
	PendingEmail     *string
	UpdatedAt        time.Time
}
