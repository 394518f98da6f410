// Package lists prepares cleaned contact rows for sending: friendly first
// names, greeting fallbacks, and per-channel list splits.
package lists

import (
	"regexp"
	"strings"

	"github.com/dialsheet/dialsheet/internal/contacts"
)

// DefaultGreetingFallback addresses contacts whose name yields no usable
// first name. Neutral friendly Spanish.
const DefaultGreetingFallback = "amig@"

var (
	// A "name" that is really a phone number pasted into the name column.
	phoneShapedRE = regexp.MustCompile(`^[+()\-.\s0-9]+$`)
	// One leading honorific with its trailing dot and spacing.
	honorificRE = regexp.MustCompile(`(?i)^(mr|mrs|ms|dr|ing|sr|sra|srta|lic)\.?[\s,]+`)
	// Non-letter clutter around a token, quotes and the like. Spanish
	// accented letters count as letters.
	edgeTrimRE = regexp.MustCompile(`^[^A-Za-zÁÉÍÓÚÑáéíóúÜü]+|[^A-Za-zÁÉÍÓÚÑáéíóúÜü]+$`)
)

// FirstName derives a friendly first name from a full display name, or ""
// when none can be found.
func FirstName(full string) string {
	name := strings.TrimSpace(full)
	if name == "" {
		return ""
	}
	if phoneShapedRE.MatchString(name) {
		return ""
	}

	name = honorificRE.ReplaceAllString(name, "")

	// "Lastname, Firstname" exports: keep the part before the comma, which
	// is the likelier single token to greet by.
	if i := strings.IndexByte(name, ','); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}

	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return edgeTrimRE.ReplaceAllString(fields[0], "")
}

// Greeting returns first when present, otherwise fallback; an empty
// fallback means DefaultGreetingFallback.
func Greeting(first, fallback string) string {
	if first != "" {
		return first
	}
	if fallback == "" {
		return DefaultGreetingFallback
	}
	return fallback
}

// Enrich fills FirstName and GreetingName on every row in place, deriving
// both from the row's display name.
func Enrich(rows []contacts.Row, greetingFallback string) {
	for i := range rows {
		first := FirstName(rows[i].Name)
		rows[i].FirstName = first
		rows[i].GreetingName = Greeting(first, greetingFallback)
	}
}
