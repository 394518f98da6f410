package contactio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dialsheet/dialsheet/internal/contacts"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// ReadRecords loads any supported export into engine records, reporting
// which schema it detected. Missing cells read as empty strings; ragged
// rows are tolerated.
func ReadRecords(path string) ([]contacts.Record, Schema, error) {
	return ReadRecordsFormat(path, "")
}

// ReadRecordsFormat is ReadRecords with the table format forced ("csv",
// "tsv", or "xlsx") instead of sniffed from the file extension, for
// exports that arrive with the wrong or no extension.
func ReadRecordsFormat(path, format string) ([]contacts.Record, Schema, error) {
	table, err := readTable(path, format)
	if err != nil {
		return nil, SchemaUnknown, err
	}
	if len(table) == 0 {
		return nil, SchemaUnknown, fmt.Errorf("contactio: %s: empty file", path)
	}

	header := trimCells(table[0])
	schema := DetectSchema(header)
	if schema == SchemaUnknown {
		return nil, SchemaUnknown, fmt.Errorf("contactio: %s: unrecognized column layout", path)
	}

	idx := headerIndex(header)
	records := make([]contacts.Record, 0, len(table)-1)
	for _, row := range table[1:] {
		records = append(records, recordFrom(schema, idx, row))
	}
	return records, schema, nil
}

// ReadRows loads a previously cleaned list for preparation, splitting, or
// sending. Google exports are rejected here; they must be cleaned first.
func ReadRows(path string) ([]contacts.Row, error) {
	table, err := readTable(path, "")
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("contactio: %s: empty file", path)
	}

	header := trimCells(table[0])
	schema := DetectSchema(header)
	if schema != SchemaClean && schema != SchemaSimple {
		return nil, fmt.Errorf("contactio: %s: expected a cleaned contact list", path)
	}
	phoneCol := "Phone_E164"
	if schema == SchemaSimple {
		phoneCol = "Phone"
	}

	idx := headerIndex(header)
	rows := make([]contacts.Row, 0, len(table)-1)
	for _, raw := range table[1:] {
		get := cellGetter(idx, raw)
		rows = append(rows, contacts.Row{
			Name:         get("Name"),
			Phone:        get(phoneCol),
			Country:      get("Country"),
			Channel:      get("Channel"),
			OptIn:        get("OptIn"),
			FirstName:    get("FirstName"),
			GreetingName: get("GreetingName"),
		})
	}
	return rows, nil
}

// readTable loads path into rows of cells. Spreadsheets go through the
// sheet reader; everything else is parsed as delimited text. An empty
// format means sniff from the file extension.
func readTable(path, format string) ([][]string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case "xlsx", "xls":
		return readSheet(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("contactio: read %s: %w", path, err)
	}
	var delim rune
	switch format {
	case "csv":
		delim = ','
	case "tsv":
		delim = '\t'
	}
	return parseDelimited(data, delim)
}

// parseDelimited handles CSV and TSV. With delim 0 the delimiter is sniffed
// from the header line. A UTF-8 byte order mark is tolerated, matching what
// spreadsheet tools and Google Takeout produce.
func parseDelimited(data []byte, delim rune) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	if delim != 0 {
		r.Comma = delim
	} else if head, _, _ := bytes.Cut(data, []byte("\n")); bytes.IndexByte(head, '\t') >= 0 {
		r.Comma = '\t'
	}
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("contactio: parse: %w", err)
	}
	return rows, nil
}

func recordFrom(schema Schema, idx map[string]int, raw []string) contacts.Record {
	get := cellGetter(idx, raw)

	if schema == SchemaGoogle {
		rec := contacts.Record{Name: googleName(get)}
		for i := 1; i <= phoneSlots; i++ {
			value := get(fmt.Sprintf("Phone %d - Value", i))
			if value == "" {
				continue
			}
			rec.Fields = append(rec.Fields, contacts.Field{
				Value: value,
				Label: get(fmt.Sprintf("Phone %d - Label", i)),
			})
		}
		return rec
	}

	phoneCol := "Phone_E164"
	if schema == SchemaSimple {
		phoneCol = "Phone"
	}
	rec := contacts.Record{
		Name:    get("Name"),
		Channel: get("Channel"),
		OptIn:   get("OptIn"),
	}
	if v := get(phoneCol); v != "" {
		rec.Fields = []contacts.Field{{Value: v}}
	}
	return rec
}

// googleName assembles a display name from the export's name columns:
// first and last name, then nickname, then organization, then the first
// email address, then "Unknown".
func googleName(get func(string) string) string {
	name := get("First Name")
	if last := get("Last Name"); last != "" {
		if name != "" {
			name += " "
		}
		name += last
	}
	if name == "" {
		name = get("Nickname")
	}
	if name == "" {
		name = get("Organization Name")
	}
	if name == "" {
		name = get("E-mail 1 - Value")
	}
	if name == "" {
		name = "Unknown"
	}
	return name
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

func cellGetter(idx map[string]int, raw []string) func(string) string {
	return func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(raw) {
			return ""
		}
		return strings.TrimSpace(raw[i])
	}
}

func trimCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
