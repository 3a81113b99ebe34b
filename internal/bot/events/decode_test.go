package events_test

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/google/uuid"

	"github.com/central-university-dev/musicclub-bot/internal/domain/models"
)

// decodeAccountEvent читает событие так же, как его читает сервис календарей.
func decodeAccountEvent(data []byte) (*models.AccountEvent, error) {
	event := &models.AccountEvent{}

	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "type":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "type")
			}

			event.Type = models.AccountEventType(v)
		case "account_id":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "account_id")
			}

			id, err := uuid.Parse(v)
			if err != nil {
				return errors.Wrap(err, "parse account_id")
			}

			event.AccountID = id
		case "chat_user_id":
			v, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "chat_user_id")
			}

			event.ChatUserID = v
		case "calendar_url":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "calendar_url")
			}

			event.CalendarURL = v
		case "occurred_at":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "occurred_at")
			}

			ts, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return errors.Wrap(err, "parse occurred_at")
			}

			event.OccurredAt = ts
		default:
			return d.Skip()
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode account event")
	}

	return event, nil
}
