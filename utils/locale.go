package utils

import (
	"fmt"
	"strings"
	"time"
)

// Document labels used in file names and sheet titles
const (
	LabelPurchase     = "Закупка"
	LabelAvailability = "Наличие"
)

// Field fallbacks for incomplete catalog rows
const (
	PlaceholderName = "Неизвестно"
	UnknownSupplier = "Неизвестный поставщик"
)

var monthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// FormatFileDate formats a date as "DD месяца YY", e.g. "05 марта 25"
func FormatFileDate(t time.Time) string {
	return fmt.Sprintf("%02d %s %02d", t.Day(), monthsGenitive[t.Month()-1], t.Year()%100)
}

var unsafeFileChars = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_",
)

// SanitizeFileName replaces characters that are not allowed in file names
func SanitizeFileName(name string) string {
	return strings.TrimSpace(unsafeFileChars.Replace(name))
}

var unsafeSheetChars = strings.NewReplacer(
	"[", "", "]", "", ":", "", "*", "", "?", "", "/", "", "\\", "",
)

// SheetTitle builds a worksheet title, trimmed to the 31 character limit
func SheetTitle(label, supplier string) string {
	title := strings.TrimSpace(unsafeSheetChars.Replace(label + " " + supplier))
	runes := []rune(title)
	if len(runes) > 31 {
		title = string(runes[:31])
	}
	// Sheet names cannot start or end with an apostrophe
	title = strings.Trim(title, "' ")
	if title == "" {
		return label
	}
	return title
}
