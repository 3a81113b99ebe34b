package common

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s.]+$`)

// EmailGuesser derives an organization address of the form f.lastname@domain from a
// person's name.
type EmailGuesser struct {
	domain string
}

func NewEmailGuesser(domain string) *EmailGuesser {
	return &EmailGuesser{domain: strings.ToLower(strings.TrimPrefix(strings.TrimSpace(domain), "@"))}
}

// Guess takes the first and the last whitespace-separated token of displayName. When the
// display name has fewer than two tokens the separately reported first and last names are
// used instead.
func (g *EmailGuesser) Guess(displayName, firstName, lastName string) (string, bool) {
	if g.domain == "" {
		return "", false
	}

	first, last := firstName, lastName

	if tokens := strings.Fields(displayName); len(tokens) >= 2 {
		first, last = tokens[0], tokens[len(tokens)-1]
	}

	first = normalizeNamePart(first)
	last = normalizeNamePart(last)

	if first == "" || last == "" {
		return "", false
	}

	return first[:1] + "." + last + "@" + g.domain, true
}

// normalizeNamePart keeps ASCII letters only, lowercased. Anything else, including
// non-Latin scripts, cannot appear in the organization's mailbox names.
func normalizeNamePart(part string) string {
	var sb strings.Builder

	for _, r := range part {
		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r + ('a' - 'A'))
		}
	}

	return sb.String()
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
