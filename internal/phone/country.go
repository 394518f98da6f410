package phone

import "strings"

// CountryTag is a coarse country label derived from an E.164 prefix.
type CountryTag string

const (
	CountryUS      CountryTag = "US"
	CountryMX      CountryTag = "MX"
	CountryIntl    CountryTag = "INTL"
	CountryUnknown CountryTag = "UNKNOWN"
)

// Country classifies a normalized number by prefix alone: +1 is US, +52 is
// MX, any other '+'-prefixed number is INTL. No numbering-plan lookup; all
// NANP numbers, Canadian ones included, tag as US.
func Country(e164 string) CountryTag {
	switch {
	case strings.HasPrefix(e164, "+1"):
		return CountryUS
	case strings.HasPrefix(e164, "+52"):
		return CountryMX
	case strings.HasPrefix(e164, "+"):
		return CountryIntl
	}
	return CountryUnknown
}
