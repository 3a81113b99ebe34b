package errors

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrAccountNotFound struct {
	ChatUserID int64
	AccountID  uuid.UUID
}

func (e *ErrAccountNotFound) Error() string {
	if e.AccountID != uuid.Nil {
		return fmt.Sprintf("аккаунт не найден: %s", e.AccountID)
	}

	return fmt.Sprintf("аккаунт не привязан к пользователю telegram: %d", e.ChatUserID)
}

func (e *ErrAccountNotFound) Is(target error) bool {
	_, ok := target.(*ErrAccountNotFound)
	return ok
}

type ErrAuthTokenNotFound struct {
	Token uuid.UUID
}

func (e *ErrAuthTokenNotFound) Error() string {
	return fmt.Sprintf("токен авторизации не найден: %s", e.Token)
}

func (e *ErrAuthTokenNotFound) Is(target error) bool {
	_, ok := target.(*ErrAuthTokenNotFound)
	return ok
}

type ErrAuthTokenAlreadyUsed struct {
	Token uuid.UUID
}

func (e *ErrAuthTokenAlreadyUsed) Error() string {
	return fmt.Sprintf("токен авторизации уже использован: %s", e.Token)
}

func (e *ErrAuthTokenAlreadyUsed) Is(target error) bool {
	_, ok := target.(*ErrAuthTokenAlreadyUsed)
	return ok
}

type ErrConversationStateNotFound struct {
	ChatUserID int64
}

func (e *ErrConversationStateNotFound) Error() string {
	return fmt.Sprintf("состояние диалога не найдено: %d", e.ChatUserID)
}

func (e *ErrConversationStateNotFound) Is(target error) bool {
	_, ok := target.(*ErrConversationStateNotFound)
	return ok
}

type ErrCalendarNotFound struct {
	AccountID uuid.UUID
}

func (e *ErrCalendarNotFound) Error() string {
	return fmt.Sprintf("календарь не найден для аккаунта: %s", e.AccountID)
}

func (e *ErrCalendarNotFound) Is(target error) bool {
	_, ok := target.(*ErrCalendarNotFound)
	return ok
}

// ErrInvalidDeepLink возникает, когда параметр /start не начинается с auth_.
type ErrInvalidDeepLink struct {
	Payload string
}

func (e *ErrInvalidDeepLink) Error() string {
	return "некорректный параметр deep link: " + e.Payload
}

func (e *ErrInvalidDeepLink) Is(target error) bool {
	_, ok := target.(*ErrInvalidDeepLink)
	return ok
}

type ErrInvalidAuthToken struct {
	Raw   string
	Cause error
}

func (e *ErrInvalidAuthToken) Error() string {
	return fmt.Sprintf("некорректный токен авторизации %q: %v", e.Raw, e.Cause)
}

func (e *ErrInvalidAuthToken) Unwrap() error {
	return e.Cause
}

func (e *ErrInvalidAuthToken) Is(target error) bool {
	_, ok := target.(*ErrInvalidAuthToken)
	return ok
}

type ErrInvalidCalendarURL struct {
	URL    string
	Reason string
}

func (e *ErrInvalidCalendarURL) Error() string {
	return fmt.Sprintf("некорректная ссылка на календарь %q: %s", e.URL, e.Reason)
}

func (e *ErrInvalidCalendarURL) Is(target error) bool {
	_, ok := target.(*ErrInvalidCalendarURL)
	return ok
}

type ErrFeedUnavailable struct {
	URL   string
	Cause error
}

func (e *ErrFeedUnavailable) Error() string {
	return fmt.Sprintf("календарь по ссылке %s недоступен: %v", e.URL, e.Cause)
}

func (e *ErrFeedUnavailable) Unwrap() error {
	return e.Cause
}

type ErrUnknownCommand struct {
	Command string
}

func (e *ErrUnknownCommand) Error() string {
	return "неизвестная команда: " + e.Command
}

type ErrInvalidArgument struct {
	Message string
}

func (e *ErrInvalidArgument) Error() string {
	return fmt.Sprintf("некорректный аргумент: %s", e.Message)
}

type ErrUnknownDBAccessType struct {
	AccessType string
}

func (e *ErrUnknownDBAccessType) Error() string {
	return fmt.Sprintf("неизвестный тип доступа к базе данных: %s", e.AccessType)
}

type ErrBuildSQLQuery struct {
	Operation string
	Cause     error
}

func (e *ErrBuildSQLQuery) Error() string {
	return fmt.Sprintf("ошибка при построении SQL запроса для %s: %v", e.Operation, e.Cause)
}

func (e *ErrBuildSQLQuery) Unwrap() error {
	return e.Cause
}

type ErrSQLExecution struct {
	Operation string
	Cause     error
}

func (e *ErrSQLExecution) Error() string {
	return fmt.Sprintf("ошибка при выполнении SQL запроса для %s: %v", e.Operation, e.Cause)
}

func (e *ErrSQLExecution) Unwrap() error {
	return e.Cause
}

type ErrSQLScan struct {
	Entity string
	Cause  error
}

func (e *ErrSQLScan) Error() string {
	return fmt.Sprintf("ошибка при сканировании %s: %v", e.Entity, e.Cause)
}

func (e *ErrSQLScan) Unwrap() error {
	return e.Cause
}

const (
	OpGetConversationState    = "get_conversation_state"
	OpUpsertConversationState = "upsert_conversation_state"
	OpClearConversationState  = "clear_conversation_state"
	OpGetAccount              = "get_account"
	OpUpdateAccountEmail      = "update_account_email"
	OpLinkChatUser            = "link_chat_user"
	OpGrantPermissions        = "grant_permissions"
	OpGetAuthToken            = "get_auth_token"
	OpMarkAuthTokenUsed       = "mark_auth_token_used"
	OpGetCalendar             = "get_calendar"
	OpCreateCalendar          = "create_calendar"
	OpUpsertCalendar          = "upsert_calendar"
	OpDeleteCalendar          = "delete_calendar"
	OpListWithoutCalendar     = "list_without_calendar"
)

type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}
