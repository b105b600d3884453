package ui

import (
	"fmt"
	"strings"
)

// Locale holds the user-facing strings and date layout of one language.
type Locale struct {
	Name       string
	DateLayout string

	JustNow    string
	MinutesAgo string
	HoursAgo   string
	DaysAgo    string

	RoleAdmin string
	RoleUser  string
}

// LocaleEN is the default locale.
var LocaleEN = Locale{
	Name:       "en",
	DateLayout: "01/02/2006, 03:04 PM",
	JustNow:    "just now",
	MinutesAgo: "%d min ago",
	HoursAgo:   "%d hours ago",
	DaysAgo:    "%d days ago",
	RoleAdmin:  "Administrator",
	RoleUser:   "User",
}

// LocaleTR is the Turkish locale.
var LocaleTR = Locale{
	Name:       "tr",
	DateLayout: "02.01.2006 15:04",
	JustNow:    "Az önce",
	MinutesAgo: "%d dk önce",
	HoursAgo:   "%d saat önce",
	DaysAgo:    "%d gün önce",
	RoleAdmin:  "Yönetici",
	RoleUser:   "Kullanıcı",
}

// LocaleByName returns the locale for name ("en", "tr", case-insensitive; "" means en).
func LocaleByName(name string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "en":
		return LocaleEN, nil
	case "tr":
		return LocaleTR, nil
	default:
		return Locale{}, fmt.Errorf("unknown locale %q (want en or tr)", name)
	}
}
