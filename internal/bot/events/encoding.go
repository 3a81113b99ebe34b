package events

import (
	"time"

	"github.com/go-faster/jx"

	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
)

// EncodeAccountEvent сериализует событие в JSON. Пустые calendar_url и chat_user_id опускаются.
func EncodeAccountEvent(event *models.AccountEvent) []byte {
	var e jx.Encoder

	e.ObjStart()

	e.FieldStart("type")
	e.Str(string(event.Type))

	e.FieldStart("account_id")
	e.Str(event.AccountID.String())

	if event.ChatUserID != 0 {
		e.FieldStart("chat_user_id")
		e.Int64(event.ChatUserID)
	}

	if event.CalendarURL != "" {
		e.FieldStart("calendar_url")
		e.Str(event.CalendarURL)
	}

	e.FieldStart("occurred_at")
	e.Str(event.OccurredAt.UTC().Format(time.RFC3339Nano))

	e.ObjEnd()

	return e.Bytes()
}
