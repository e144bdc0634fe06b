// =============================================================================
// fieldforge - XLSX Parser Module
// =============================================================================
//
// This module reads field-definition workbooks. The sheet shape mirrors the
// CSV contract: the first row is the header row, every following non-empty
// row is one field definition. Only the first sheet of the workbook is read.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sforcekit/fieldforge/internal/csvparser"
	"github.com/sforcekit/fieldforge/internal/field"
)

// Parse reads the first sheet of an XLSX workbook and returns the parsed
// records in row order, the same shape the CSV parser produces.
func Parse(filePath string) (*csvparser.Data, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("malformed xlsx input: workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("malformed xlsx input: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("malformed xlsx input: sheet %q is empty", sheets[0])
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]field.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}

		record := make(field.Record, len(headers))
		for i, header := range headers {
			if i < len(row) {
				record[header] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, record)
	}

	return &csvparser.Data{
		Headers:    headers,
		Records:    records,
		SourceFile: filePath,
	}, nil
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
