package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleRU Locale = "ru"
)

// LocaleFor выбирает локаль по language_code пользователя telegram.
func LocaleFor(languageCode string) Locale {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(languageCode)), "ru") {
		return LocaleRU
	}

	return LocaleEN
}

func (l Locale) tag() language.Tag {
	if l == LocaleRU {
		return language.Russian
	}

	return language.English
}

const (
	KeyStartWelcome        = "start.welcome"
	KeyStartButton         = "start.button"
	KeyStartInvalidParam   = "start.invalid_param"
	KeyStartInvalidToken   = "start.invalid_token"
	KeyAuthOK              = "auth.ok"
	KeyAuthFail            = "auth.fail"
	KeyHelpStart           = "help.start"
	KeyCalendarAsk         = "calendar.attach.ask"
	KeyCalendarInvalidURL  = "calendar.attach.invalid_url"
	KeyCalendarNotLinked   = "calendar.attach.not_linked"
	KeyCalendarSuccess     = "calendar.attach.success"
	KeyCalendarFail        = "calendar.attach.fail"
	KeyCalendarUnreachable = "calendar.attach.unreachable"
	KeyCalendarPrompt      = "calendar.attach.prompt"
	KeyCalendarButton      = "calendar.attach.button"
	KeyEmailConfirmPrompt  = "email.confirm.prompt"
	KeyEmailConfirmYes     = "email.confirm.yes"
	KeyEmailConfirmNo      = "email.confirm.no"
	KeyEmailAsk            = "email.ask"
	KeyEmailInvalid        = "email.invalid"
	KeyEmailSaveFail       = "email.save_fail"
	KeyCalendarDetachOK    = "calendar.detach.ok"
	KeyCalendarDetachNone  = "calendar.detach.none"
	KeyErrorGeneric        = "error.generic"
)

var messages = map[Locale]map[string]string{
	LocaleEN: {
		KeyStartWelcome:        "Hi! This is the music club bot. Open the club app to manage songs and concerts.",
		KeyStartButton:         "Open the app",
		KeyStartInvalidParam:   "Unknown start parameter.",
		KeyStartInvalidToken:   "The login link is malformed.",
		KeyAuthOK:              "Your Telegram account is linked. You can go back to the app.",
		KeyAuthFail:            "Could not confirm the login. The link may be expired or already used.",
		KeyHelpStart:           "/start - open the club app\n/calendar - attach your calendar\n/calendar_detach - detach your calendar\n/help - show this message",
		KeyCalendarAsk:         "Send a link to your calendar in .ics format.",
		KeyCalendarInvalidURL:  "This does not look like an .ics calendar link. Send an http(s) link containing .ics.",
		KeyCalendarNotLinked:   "Your Telegram account is not linked yet. Log in through the club app first.",
		KeyCalendarSuccess:     "Calendar attached. Thank you!",
		KeyCalendarFail:        "Could not save the calendar. Please try again.",
		KeyCalendarUnreachable: "The calendar link does not respond. Check it and send it again.",
		KeyCalendarPrompt:      "You have not attached a calendar yet. It helps us plan rehearsals around your schedule.",
		KeyCalendarButton:      "Attach calendar",
		KeyEmailConfirmPrompt:  "Is %s your email?",
		KeyEmailConfirmYes:     "Yes",
		KeyEmailConfirmNo:      "No",
		KeyEmailAsk:            "Send your email address.",
		KeyEmailInvalid:        "This does not look like an email address. Try again.",
		KeyEmailSaveFail:       "Could not save the email. Please try again.",
		KeyCalendarDetachOK:    "Calendar detached.",
		KeyCalendarDetachNone:  "You have no attached calendar.",
		KeyErrorGeneric:        "Something went wrong. Please try again later.",
	},
	LocaleRU: {
		KeyStartWelcome:        "Привет! Это бот музыкального клуба. Откройте приложение клуба, чтобы управлять песнями и концертами.",
		KeyStartButton:         "Открыть приложение",
		KeyStartInvalidParam:   "Неизвестный параметр запуска.",
		KeyStartInvalidToken:   "Ссылка для входа повреждена.",
		KeyAuthOK:              "Аккаунт Telegram привязан. Можно вернуться в приложение.",
		KeyAuthFail:            "Не удалось подтвердить вход. Ссылка устарела или уже использована.",
		KeyHelpStart:           "/start - открыть приложение клуба\n/calendar - привязать календарь\n/calendar_detach - отвязать календарь\n/help - показать это сообщение",
		KeyCalendarAsk:         "Отправьте ссылку на ваш календарь в формате .ics.",
		KeyCalendarInvalidURL:  "Это не похоже на ссылку на .ics календарь. Отправьте http(s) ссылку, содержащую .ics.",
		KeyCalendarNotLinked:   "Аккаунт Telegram ещё не привязан. Сначала войдите через приложение клуба.",
		KeyCalendarSuccess:     "Календарь привязан. Спасибо!",
		KeyCalendarFail:        "Не удалось сохранить календарь. Попробуйте ещё раз.",
		KeyCalendarUnreachable: "Ссылка на календарь не отвечает. Проверьте её и отправьте снова.",
		KeyCalendarPrompt:      "Вы ещё не привязали календарь. Он помогает планировать репетиции с учётом вашего расписания.",
		KeyCalendarButton:      "Привязать календарь",
		KeyEmailConfirmPrompt:  "Ваш email %s?",
		KeyEmailConfirmYes:     "Да",
		KeyEmailConfirmNo:      "Нет",
		KeyEmailAsk:            "Отправьте ваш адрес электронной почты.",
		KeyEmailInvalid:        "Это не похоже на адрес электронной почты. Попробуйте ещё раз.",
		KeyEmailSaveFail:       "Не удалось сохранить email. Попробуйте ещё раз.",
		KeyCalendarDetachOK:    "Календарь отвязан.",
		KeyCalendarDetachNone:  "У вас нет привязанного календаря.",
		KeyErrorGeneric:        "Что-то пошло не так. Попробуйте позже.",
	},
}

type Localizer struct {
	printers map[Locale]*message.Printer
}

func NewLocalizer() (*Localizer, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))

	for locale, entries := range messages {
		for key, text := range entries {
			if err := builder.SetString(locale.tag(), key, text); err != nil {
				return nil, err
			}
		}
	}

	return &Localizer{
		printers: map[Locale]*message.Printer{
			LocaleEN: message.NewPrinter(language.English, message.Catalog(builder)),
			LocaleRU: message.NewPrinter(language.Russian, message.Catalog(builder)),
		},
	}, nil
}

// Text возвращает сообщение по ключу; неизвестная локаль считается английской.
func (l *Localizer) Text(locale Locale, key string, args ...any) string {
	printer, ok := l.printers[locale]
	if !ok {
		printer = l.printers[LocaleEN]
	}

	return printer.Sprintf(key, args...)
}
