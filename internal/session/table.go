package session

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// TableOptions controls how a delimited metadata table is interpreted.
type TableOptions struct {
	// Delimiter defaults to ','.
	Delimiter rune
	// IDColumn names the unique-id column. Defaults to "id".
	IDColumn string
	// PathColumn names the pose source path column. Defaults to "path".
	PathColumn string
}

func (o TableOptions) withDefaults() TableOptions {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.IDColumn == "" {
		o.IDColumn = "id"
	}
	if o.PathColumn == "" {
		o.PathColumn = "path"
	}
	return o
}

// ReadTable parses a delimited text table with one header row into a
// Registry. The id and path columns are consumed; every other column becomes
// a categorical attribute.
func ReadTable(path string, opts TableOptions) (*Registry, error) {
	opts = opts.withDefaults()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse metadata table %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("metadata table %s is empty", path)
	}

	header := rows[0]
	idCol, pathCol := -1, -1
	attrCols := make([]int, 0, len(header))
	columns := make([]string, 0, len(header))
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case opts.IDColumn:
			idCol = i
		case opts.PathColumn:
			pathCol = i
		default:
			attrCols = append(attrCols, i)
			columns = append(columns, strings.TrimSpace(name))
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("%w: metadata table %s has no %q column", ErrMissingField, path, opts.IDColumn)
	}
	if pathCol < 0 {
		return nil, fmt.Errorf("%w: metadata table %s has no %q column", ErrMissingField, path, opts.PathColumn)
	}

	records := make([]Record, 0, len(rows)-1)
	for rowNum, row := range rows[1:] {
		rawID := strings.TrimSpace(row[idCol])
		if rawID == "" {
			return nil, fmt.Errorf("%w: row %d has no session id", ErrMissingField, rowNum+1)
		}
		id, err := strconv.ParseUint(rawID, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("row %d: session id %q is not an unsigned integer", rowNum+1, rawID)
		}
		values := make([]string, len(attrCols))
		for i, col := range attrCols {
			values[i] = strings.TrimSpace(row[col])
		}
		records = append(records, Record{
			ID:     uint32(id),
			Path:   strings.TrimSpace(row[pathCol]),
			Values: values,
		})
	}

	return Build(columns, records)
}
