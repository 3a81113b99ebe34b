package models

// Reply is a localized answer to a single update. A nil *Reply means nothing is sent.
type Reply struct {
	Text    string
	Buttons []Button
}

// Button is rendered as an inline keyboard button: a callback when Action is set, a link
// otherwise.
type Button struct {
	Text   string
	Action ActionKind
	URL    string
}

func NewReply(text string, buttons ...Button) *Reply {
	return &Reply{Text: text, Buttons: buttons}
}
