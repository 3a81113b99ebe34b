package models

// ActionKind is the closed set of inline-button callbacks the bot understands.
type ActionKind string

const (
	ActionCalendarAttach  ActionKind = "calendar_attach"
	ActionEmailConfirmYes ActionKind = "calendar_email_yes"
	ActionEmailConfirmNo  ActionKind = "calendar_email_no"
	ActionUnknown         ActionKind = "unknown"
)

func ParseAction(data string) ActionKind {
	switch ActionKind(data) {
	case ActionCalendarAttach, ActionEmailConfirmYes, ActionEmailConfirmNo:
		return ActionKind(data)
	default:
		return ActionUnknown
	}
}
