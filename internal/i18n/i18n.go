// Package i18n holds the handful of user-visible strings the backend
// produces itself: placeholder names for dangling references, the fallback
// category bucket and the weekday labels on the 7-day sales series.
package i18n

import "time"

// Language selects the label set. Spanish is the product default.
type Language string

const (
	Spanish Language = "es"
	English Language = "en"
)

// Parse returns the language for a config value, defaulting to Spanish.
func Parse(s string) Language {
	if s == string(English) {
		return English
	}
	return Spanish
}

// UnknownCustomer is the placeholder shown when an order or conversation
// references a customer that no longer exists.
func UnknownCustomer(lang Language) string {
	if lang == English {
		return "Unknown"
	}
	return "Desconocido"
}

// OtherCategory is the bucket for order items whose product has no category.
func OtherCategory(lang Language) string {
	if lang == English {
		return "Other"
	}
	return "Otros"
}

var shortWeekdays = map[Language][7]string{
	Spanish: {"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
	English: {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
}

// ShortWeekday returns the abbreviated weekday name for lang.
func ShortWeekday(lang Language, d time.Weekday) string {
	names, ok := shortWeekdays[lang]
	if !ok {
		names = shortWeekdays[Spanish]
	}
	return names[int(d)]
}
