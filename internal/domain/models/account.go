package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a web-application user. ChatUserID is set once the Telegram identity has been
// linked and is unique across accounts.
type Account struct {
	ID          uuid.UUID
	DisplayName string
	Email       *string
	ChatUserID  *int64
}

func (a *Account) HasEmail() bool {
	return a.Email != nil && *a.Email != ""
}

// AuthToken is a one-time invitation issued by the web application. Used is terminal.
type AuthToken struct {
	ID         uuid.UUID
	AccountID  uuid.UUID
	ChatUserID *int64
	Used       bool
	CreatedAt  time.Time
}

type LinkedAccount struct {
	AccountID  uuid.UUID
	ChatUserID int64
}
