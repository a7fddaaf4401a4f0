/*
csv.go - CSV to row mappings

The gviz export returns plain CSV with a header record. Rows become
header-keyed maps; cells and headers are trimmed, and rows whose cells are
all empty (spreadsheet padding) are dropped.
*/
package dataset

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/warp/payroll-engine/payroll"
)

// ParseCSV converts raw CSV text into row mappings.
func ParseCSV(raw string) ([]payroll.Row, error) {
	reader := csv.NewReader(strings.NewReader(raw))
	reader.FieldsPerRecord = -1 // ragged exports are common

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []payroll.Row
	for _, record := range records[1:] {
		row := payroll.Row{}
		empty := true
		for i, cellValue := range record {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			v := strings.TrimSpace(cellValue)
			if v != "" {
				empty = false
			}
			row[headers[i]] = v
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
