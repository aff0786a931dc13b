package provider

import "strings"

// DefaultLocale is used when no locale is requested or the requested one is
// not available.
const DefaultLocale = "en_US"

var supportedLocales = []string{"en_US", "en"}

// SupportedLocales lists the locales the faker data covers.
func SupportedLocales() []string {
	return append([]string(nil), supportedLocales...)
}

// NormalizeLocale maps a requested locale onto a supported one. The boolean
// is false when the request had to fall back to DefaultLocale.
func NormalizeLocale(locale string) (string, bool) {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return DefaultLocale, true
	}
	candidate := strings.ReplaceAll(trimmed, "-", "_")
	for _, supported := range supportedLocales {
		if strings.EqualFold(candidate, supported) {
			return supported, true
		}
	}
	return DefaultLocale, false
}
