package contactio

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readSheet loads the first sheet of a workbook as rows of cells.
func readSheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("contactio: open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("contactio: %s: workbook has no sheets", path)
	}

	it, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("contactio: %s: %w", path, err)
	}
	defer it.Close()

	var rows [][]string
	for it.Next() {
		cells, err := it.Columns()
		if err != nil {
			return nil, fmt.Errorf("contactio: %s: %w", path, err)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
