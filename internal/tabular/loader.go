package tabular

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/niveshlab/folio/internal/domain"
)

// Load reads and parses the holdings source at path, dispatching on the
// file extension: .json for a row-object export, .xlsx for the workbook
// itself.
func Load(path string) ([]domain.Holding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading holdings file: %w", err)
		}
		rows, err := ParseJSON(data)
		if err != nil {
			return nil, err
		}
		return Parse(rows), nil
	case ".xlsx":
		rows, err := ReadXLSX(path)
		if err != nil {
			return nil, err
		}
		return Parse(rows), nil
	default:
		return nil, fmt.Errorf("unsupported holdings file extension: %s", filepath.Ext(path))
	}
}

// ParseJSON decodes a JSON array of row objects. Entries that are not
// objects (JSON null rows appear in real exports) decode to nil and are
// skipped downstream by classification.
func ParseJSON(data []byte) ([]Row, error) {
	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing holdings JSON: %w", err)
	}
	return rows, nil
}

// ReadXLSX reads the first sheet of a workbook into rows keyed
// Column1..ColumnN. Numeric-looking cells become float64 so that type-driven
// classification behaves the same as with the JSON export; empty cells are
// absent from the row.
func ReadXLSX(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	rows := make([]Row, 0, len(cells))
	for _, line := range cells {
		row := make(Row, len(line))
		for i, cell := range line {
			if cell == "" {
				continue
			}
			key := "Column" + strconv.Itoa(i+1)
			if n, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64); err == nil {
				row[key] = n
			} else {
				row[key] = cell
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
