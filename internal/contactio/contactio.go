// Package contactio reads contact exports and writes cleaned lists. CSV and
// TSV inputs are sniffed from the header line; spreadsheet exports (.xlsx)
// are read through their first sheet. The column layout is detected, never
// declared by the caller.
package contactio

// Schema identifies a recognized input column layout.
type Schema string

const (
	// SchemaGoogle is a Google Contacts export: name parts spread over
	// several columns and up to six "Phone N - Value"/"Phone N - Label"
	// slots.
	SchemaGoogle Schema = "google"
	// SchemaClean is a previously cleaned list with a Phone_E164 column.
	// Cleaning one again re-normalizes every number.
	SchemaClean Schema = "clean"
	// SchemaSimple is a minimal Name/Phone layout.
	SchemaSimple Schema = "simple"
	// SchemaUnknown is an unrecognized layout.
	SchemaUnknown Schema = ""
)

// Label returns a human-readable name for the schema.
func (s Schema) Label() string {
	switch s {
	case SchemaGoogle:
		return "Google Contacts"
	case SchemaClean:
		return "cleaned list"
	case SchemaSimple:
		return "simple list"
	default:
		return "unknown"
	}
}

// phoneSlots is how many phone columns a Google Contacts export carries.
const phoneSlots = 6

// DetectSchema classifies a header row.
func DetectSchema(header []string) Schema {
	has := make(map[string]bool, len(header))
	for _, h := range header {
		has[h] = true
	}
	switch {
	case has["Phone 1 - Value"]:
		return SchemaGoogle
	case has["Phone_E164"]:
		return SchemaClean
	case has["Phone"]:
		return SchemaSimple
	}
	return SchemaUnknown
}
