package ui

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// supportedLocales are the locales with a dedicated date layout. The first entry
// is the fallback.
var supportedLocales = []language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
	language.German,
	language.French,
	language.Spanish,
	language.Japanese,
}

var localeMatcher = language.NewMatcher(supportedLocales)

var dateLayouts = map[language.Tag]string{
	language.AmericanEnglish: "1/2/2006",
	language.BritishEnglish:  "02/01/2006",
	language.German:          "2.1.2006",
	language.French:          "02/01/2006",
	language.Spanish:         "2/1/2006",
	language.Japanese:        "2006/1/2",
}

// matchLocale picks the best supported locale for an Accept-Language header.
func matchLocale(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supportedLocales[0]
	}
	_, idx, _ := localeMatcher.Match(tags...)
	return supportedLocales[idx]
}

// formatLocalDate formats t as a short date in the given locale.
func formatLocalDate(t time.Time, tag language.Tag) string {
	if t.IsZero() {
		return "-"
	}
	layout, ok := dateLayouts[tag]
	if !ok {
		layout = dateLayouts[supportedLocales[0]]
	}
	return t.Format(layout)
}

// formatCount formats n with the locale's digit grouping.
func formatCount(n int, tag language.Tag) string {
	return message.NewPrinter(tag).Sprintf("%d", n)
}

// formatPageUpdated describes a refreshed list page.
func formatPageUpdated(page int, tag language.Tag) string {
	return message.NewPrinter(tag).Sprintf("Page %d has been updated", page)
}
