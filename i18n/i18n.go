// Package i18n holds the site locales (ru, kz, en) and the UI strings.
package i18n

import (
	"golang.org/x/text/language"
)

// Locale is a site locale as it appears in URLs
type Locale string

const (
	RU Locale = "ru"
	KZ Locale = "kz"
	EN Locale = "en"

	Default = RU
)

// Supported lists locales in matcher preference order
var Supported = []Locale{RU, KZ, EN}

// "kz" is the site's URL code; the BCP 47 tag for Kazakh is "kk".
var matcher = language.NewMatcher([]language.Tag{
	language.Russian,
	language.Kazakh,
	language.English,
})

// Parse returns the Locale for a URL segment
func Parse(s string) (Locale, bool) {
	switch Locale(s) {
	case RU, KZ, EN:
		return Locale(s), true
	}
	return "", false
}

// Tag returns the BCP 47 tag for the locale
func (l Locale) Tag() language.Tag {
	switch l {
	case KZ:
		return language.Kazakh
	case EN:
		return language.English
	default:
		return language.Russian
	}
}

// HTMLLang is the value for the <html lang> attribute
func (l Locale) HTMLLang() string {
	return l.Tag().String()
}

func (l Locale) String() string {
	return string(l)
}

// Negotiate picks the best locale for an Accept-Language header value,
// falling back to Default.
func Negotiate(acceptLanguage string) Locale {
	if acceptLanguage == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(Supported) {
		return Default
	}
	return Supported[index]
}
