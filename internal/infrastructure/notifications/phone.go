package notifications

import "strings"

// NormalizePhone converts a local phone number into the international form
// the gateway requires: a leading trunk-prefix zero is stripped and the
// country code prepended; bare subscriber numbers get the country code;
// numbers already carrying the country code pass through unchanged. A
// leading "+" is always dropped.
func NormalizePhone(raw, countryCode string) string {
	number := strings.TrimSpace(raw)
	number = strings.TrimPrefix(number, "+")
	number = strings.ReplaceAll(number, " ", "")

	switch {
	case strings.HasPrefix(number, countryCode):
		return number
	case strings.HasPrefix(number, "0"):
		return countryCode + number[1:]
	case len(number) == 9:
		// bare subscriber number without trunk prefix
		return countryCode + number
	default:
		// assume already international
		return number
	}
}
