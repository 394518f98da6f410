package lists

import (
	"strings"

	"github.com/dialsheet/dialsheet/internal/contacts"
)

// DefaultSMSCountries limits the SMS list to countries the SMS sender has
// routes for.
var DefaultSMSCountries = []string{"US", "MX"}

// WhatsAppRows returns the rows already marked for the WhatsApp channel.
func WhatsAppRows(rows []contacts.Row) []contacts.Row {
	var out []contacts.Row
	for _, r := range rows {
		if strings.EqualFold(strings.TrimSpace(r.Channel), contacts.ChannelWhatsApp) {
			out = append(out, r)
		}
	}
	return out
}

// SMSRows returns copies of the rows whose country is in countries, with
// Channel forced to SMS. Empty countries means DefaultSMSCountries. The
// input rows are left untouched.
func SMSRows(rows []contacts.Row, countries []string) []contacts.Row {
	if len(countries) == 0 {
		countries = DefaultSMSCountries
	}
	allowed := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		allowed[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
	}

	var out []contacts.Row
	for _, r := range rows {
		if _, ok := allowed[strings.ToUpper(strings.TrimSpace(r.Country))]; !ok {
			continue
		}
		r.Channel = contacts.ChannelSMS
		out = append(out, r)
	}
	return out
}

// ForceChannel returns a copy of rows with every Channel overwritten, for
// building one send list per channel out of a single master.
func ForceChannel(rows []contacts.Row, channel string) []contacts.Row {
	out := make([]contacts.Row, len(rows))
	copy(out, rows)
	for i := range out {
		out[i].Channel = channel
	}
	return out
}
