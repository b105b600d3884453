package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"myclient/domain"
	"myclient/helpers"
	"myclient/interfaces"
)

// EmptyDate is shown for a missing date.
const EmptyDate = "-"

// InvalidDate is shown for a date that cannot be parsed.
const InvalidDate = "Invalid Date"

// Formatter renders dates in a locale and time zone.
type Formatter struct {
	locale Locale
	zone   *time.Location
	clock  interfaces.TimeProvider
}

// NewFormatter creates a Formatter. Panics on nil zone or clock.
func NewFormatter(locale Locale, zone *time.Location, clock interfaces.TimeProvider) *Formatter {
	return &Formatter{
		locale: locale,
		zone:   helpers.NilPanic(zone, "ui.format.go: zone is required"),
		clock:  helpers.NilPanic(clock, "ui.format.go: clock is required"),
	}
}

// Locale returns the formatter's locale.
func (f *Formatter) Locale() Locale {
	return f.locale
}

// FormatDate renders a backend timestamp as an absolute date and time: "-" for "", "Invalid Date" when unparsable.
func (f *Formatter) FormatDate(value string) string {
	if value == "" {
		return EmptyDate
	}
	t, err := domain.ParseTimestamp(value)
	if err != nil {
		return InvalidDate
	}
	return t.In(f.zone).Format(f.locale.DateLayout)
}

// FormatRelativeTime renders a backend timestamp relative to now: just now under a minute, then minutes, hours
// and days; a week or older falls back to FormatDate. Future timestamps read as just now.
func (f *Formatter) FormatRelativeTime(value string) string {
	t, err := domain.ParseTimestamp(value)
	if err != nil {
		return f.FormatDate(value)
	}

	diff := f.clock.Now().Sub(t)
	minutes := int64(diff / time.Minute)
	hours := int64(diff / time.Hour)
	days := int64(diff / (24 * time.Hour))
	switch {
	case minutes < 1:
		return f.locale.JustNow
	case minutes < 60:
		return fmt.Sprintf(f.locale.MinutesAgo, minutes)
	case hours < 24:
		return fmt.Sprintf(f.locale.HoursAgo, hours)
	case days < 7:
		return fmt.Sprintf(f.locale.DaysAgo, days)
	default:
		return f.FormatDate(value)
	}
}

// RoleLabel returns the display label of a user role.
func (f *Formatter) RoleLabel(role string) string {
	if role == domain.RoleAdmin {
		return f.locale.RoleAdmin
	}
	return f.locale.RoleUser
}

// GetInitials returns up to two upper-cased initials of the space-separated words of name, "?" for "".
func GetInitials(name string) string {
	if name == "" {
		return "?"
	}
	var initials []rune
	for _, word := range strings.Split(name, " ") {
		if word == "" {
			continue
		}
		for _, r := range word {
			initials = append(initials, unicode.ToUpper(r))
			break
		}
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

// EscapeHTML escapes text for use as HTML element content: & < > and the no-break space. Quotes are kept.
func EscapeHTML(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range text {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\u00a0':
			b.WriteString("&nbsp;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
