package utils

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// NormalizePhone parses a phone number and returns it in E.164 form.
// Numbers without a country prefix are parsed against defaultRegion
// (e.g. "SN"). Unparseable input is returned trimmed but otherwise as-is:
// counterparty records with odd legacy numbers must stay writable.
func NormalizePhone(raw, defaultRegion string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	num, err := libphonenumber.Parse(trimmed, defaultRegion)
	if err != nil || !libphonenumber.IsValidNumber(num) {
		return trimmed
	}
	return libphonenumber.Format(num, libphonenumber.E164)
}
