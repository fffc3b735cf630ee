// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address. Matching between the
// supervisor and user directories is by normalized email, so every
// write path must pass emails through here first.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims and collapses internal runs of whitespace to single spaces.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Phone trims surrounding whitespace. Digits, '+', '-', and spaces are
// kept as entered; no format is enforced.
func Phone(s string) string {
	return strings.TrimSpace(s)
}

// Username derives a username from an email address: the local-part
// (text before '@'), lowercased.
func Username(email string) string {
	e := Email(email)
	if i := strings.IndexByte(e, '@'); i > 0 {
		return e[:i]
	}
	return e
}

// SplitName splits a display name on the first space: the first token
// is the first name, the remainder (joined) is the last name.
func SplitName(name string) (first, last string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	first = fields[0]
	last = strings.Join(fields[1:], " ")
	return first, last
}
