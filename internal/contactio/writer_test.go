package contactio

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/dialsheet/dialsheet/internal/contacts"
	"github.com/dialsheet/dialsheet/internal/testutil"
)

func TestWriteRows(t *testing.T) {
	t.Parallel()
	rows := []contacts.Row{
		{Name: "Pérez, Juan", Phone: "+525512345678", Country: "MX", Channel: "WhatsApp", OptIn: "Yes"},
		{Name: "Alice", Phone: "+12145551212", Country: "US", Channel: "SMS"},
	}

	var buf bytes.Buffer
	testutil.NoError(t, WriteRows(&buf, rows, false))

	table, err := csv.NewReader(&buf).ReadAll()
	testutil.NoError(t, err)
	testutil.SliceLen(t, table, 3)
	testutil.SliceLen(t, table[0], 5)
	testutil.Equal(t, "Phone_E164", table[0][1])
	// The comma in the name must survive quoting.
	testutil.Equal(t, "Pérez, Juan", table[1][0])
	testutil.Equal(t, "+12145551212", table[2][1])
}

func TestWriteRows_WithNames(t *testing.T) {
	t.Parallel()
	rows := []contacts.Row{
		{Name: "Dr. Juan Pérez", Phone: "+525512345678", Country: "MX", Channel: "WhatsApp", FirstName: "Juan", GreetingName: "Juan"},
	}

	var buf bytes.Buffer
	testutil.NoError(t, WriteRows(&buf, rows, true))

	table, err := csv.NewReader(&buf).ReadAll()
	testutil.NoError(t, err)
	testutil.SliceLen(t, table[0], 7)
	testutil.Equal(t, "GreetingName", table[0][6])
	testutil.Equal(t, "Juan", table[1][5])
}

func TestWriteFile_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out.csv")
	rows := []contacts.Row{
		{Name: "Alice", Phone: "+12145551212", Country: "US", Channel: "SMS", OptIn: "Yes", FirstName: "Alice", GreetingName: "Alice"},
	}

	testutil.NoError(t, WriteFile(path, rows, true))

	back, err := ReadRows(path)
	testutil.NoError(t, err)
	testutil.SliceLen(t, back, 1)
	testutil.Equal(t, rows[0], back[0])
}
