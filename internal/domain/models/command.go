package models

type CommandType string

const (
	CommandStart          CommandType = "/start"
	CommandHelp           CommandType = "/help"
	CommandCalendar       CommandType = "/calendar"
	CommandCalendarDetach CommandType = "/calendar_detach"
	CommandUnknown        CommandType = "unknown"
)

func ParseCommandType(name string) CommandType {
	switch CommandType(name) {
	case CommandStart, CommandHelp, CommandCalendar, CommandCalendarDetach:
		return CommandType(name)
	default:
		return CommandUnknown
	}
}

// UserProfile is what Telegram reports about the sender of an update.
type UserProfile struct {
	ChatUserID   int64
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
}

type Command struct {
	Type    CommandType
	ChatID  int64
	Text    string
	Args    string
	Profile UserProfile
}
