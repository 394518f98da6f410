package lists

import (
	"testing"

	"github.com/dialsheet/dialsheet/internal/contacts"
	"github.com/dialsheet/dialsheet/internal/testutil"
)

func sampleRows() []contacts.Row {
	return []contacts.Row{
		{Name: "A", Phone: "+12145551212", Country: "US", Channel: "WhatsApp"},
		{Name: "B", Phone: "+525512345678", Country: "MX", Channel: "whatsapp"},
		{Name: "C", Phone: "+442079460958", Country: "INTL", Channel: "WhatsApp"},
		{Name: "D", Phone: "+18173070515", Country: "US", Channel: "SMS"},
	}
}

func TestWhatsAppRows(t *testing.T) {
	t.Parallel()
	out := WhatsAppRows(sampleRows())
	testutil.SliceLen(t, out, 3)
	testutil.Equal(t, "A", out[0].Name)
	testutil.Equal(t, "B", out[1].Name)
	testutil.Equal(t, "C", out[2].Name)
}

func TestSMSRows(t *testing.T) {
	t.Parallel()
	rows := sampleRows()
	out := SMSRows(rows, nil)
	testutil.SliceLen(t, out, 3)
	for _, r := range out {
		testutil.Equal(t, "SMS", r.Channel)
	}
	// INTL is outside the default route set.
	for _, r := range out {
		testutil.NotEqual(t, "C", r.Name)
	}
	// Forcing the channel must not touch the input rows.
	testutil.Equal(t, "WhatsApp", rows[0].Channel)
}

func TestSMSRows_CustomCountries(t *testing.T) {
	t.Parallel()
	out := SMSRows(sampleRows(), []string{"intl"})
	testutil.SliceLen(t, out, 1)
	testutil.Equal(t, "C", out[0].Name)
	testutil.Equal(t, "SMS", out[0].Channel)
}

func TestForceChannel(t *testing.T) {
	t.Parallel()
	rows := sampleRows()
	out := ForceChannel(rows, "WhatsApp")
	testutil.SliceLen(t, out, len(rows))
	for _, r := range out {
		testutil.Equal(t, "WhatsApp", r.Channel)
	}
	testutil.Equal(t, "SMS", rows[3].Channel)
}
