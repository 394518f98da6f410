package contactio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/dialsheet/dialsheet/internal/contacts"
)

// BaseHeader is the cleaned-list column set.
var BaseHeader = []string{"Name", "Phone_E164", "Country", "Channel", "OptIn"}

// WriteRows writes rows to w as CSV. withNames appends the FirstName and
// GreetingName columns that prepared lists carry.
func WriteRows(w io.Writer, rows []contacts.Row, withNames bool) error {
	header := BaseHeader
	if withNames {
		header = append(append([]string(nil), BaseHeader...), "FirstName", "GreetingName")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("contactio: write header: %w", err)
	}
	for _, r := range rows {
		cells := []string{r.Name, r.Phone, r.Country, r.Channel, r.OptIn}
		if withNames {
			cells = append(cells, r.FirstName, r.GreetingName)
		}
		if err := cw.Write(cells); err != nil {
			return fmt.Errorf("contactio: write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("contactio: flush: %w", err)
	}
	return nil
}

// WriteFile writes rows to path, creating or truncating it.
func WriteFile(path string, rows []contacts.Row, withNames bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("contactio: create %s: %w", path, err)
	}
	if err := WriteRows(f, rows, withNames); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("contactio: close %s: %w", path, err)
	}
	return nil
}
