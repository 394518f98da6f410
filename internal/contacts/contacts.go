// Package contacts turns raw contact records into deduplicated rows ready
// for messaging lists: best-number selection per contact, country tagging,
// and batch-wide dedup.
package contacts

// Channel values carried on rows and understood by the list splitters and
// senders.
const (
	ChannelWhatsApp = "WhatsApp"
	ChannelSMS      = "SMS"
)

// Field is one phone slot of a contact: the raw column value plus the
// label the export attached to it ("Mobile", "Home", may be empty).
type Field struct {
	Value string
	Label string
}

// Record is one contact as read from an export, before cleaning. Channel
// and OptIn are passthrough metadata; the cleaner never computes them.
type Record struct {
	Name    string
	Fields  []Field
	Channel string
	OptIn   string
}

// Row is one cleaned output row. FirstName and GreetingName stay empty
// until list preparation fills them in.
type Row struct {
	Name         string
	Phone        string // E.164
	Country      string
	Channel      string
	OptIn        string
	FirstName    string
	GreetingName string
}
