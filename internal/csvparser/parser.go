// =============================================================================
// fieldforge - CSV Parser Module
// =============================================================================
//
// This module parses field-definition CSV files into raw field records.
// The first row is the header row; every following non-empty row becomes one
// record, in file order. It handles:
//   - Different delimiters (comma, pipe, tab, semicolon)
//   - Non-UTF-8 encodings (windows-1251, windows-1252, iso-8859-1)
//   - Quoted fields
//   - Rows with missing trailing columns (treated as absent, not an error)
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/sforcekit/fieldforge/internal/config"
	"github.com/sforcekit/fieldforge/internal/field"
)

// =============================================================================
// PARSED DATA STRUCTURE
// =============================================================================

// Data represents a parsed field-definition file.
type Data struct {
	// Headers contains the column headers from the first row.
	Headers []string

	// Records contains the data rows as header -> value records,
	// in file order. Empty rows are skipped.
	Records []field.Record

	// SourceFile is the path to the source file.
	SourceFile string
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed records.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings from the configuration.
//
// RETURNS:
//   - A pointer to the Data struct containing the parsed records.
//   - An error if the file cannot be read or is not well-formed CSV.
func Parse(filePath string, settings config.CSVSettings) (*Data, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(bufio.NewReader(file), filePath, settings)
}

// ParseReader parses CSV content from an already-open reader. Split out of
// Parse so tests can feed strings directly.
func ParseReader(r io.Reader, sourceName string, settings config.CSVSettings) (*Data, error) {
	decoded, err := decodeReader(r, settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(decoded)
	configureReader(csvReader, settings)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed csv input: %w", err)
	}

	if len(allRows) == 0 {
		return nil, fmt.Errorf("malformed csv input: file is empty")
	}

	headers := cleanHeaders(allRows[0])

	data := &Data{
		Headers:    headers,
		Records:    extractRecords(allRows[1:], headers),
		SourceFile: sourceName,
	}

	return data, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	// Set the delimiter, accepting the common aliases.
	switch settings.Delimiter {
	case "\\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Allow variable column counts: rows with missing trailing columns are
	// tolerated, and the absent columns read as empty values.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true

	// Trim leading space from fields.
	reader.TrimLeadingSpace = true
}

// decodeReader wraps the reader with a charsets decoder when the input is
// not UTF-8.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1251":
		return charmap.Windows1251.NewDecoder().Reader(r), nil
	case "windows-1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	default:
		return nil, fmt.Errorf("unsupported csv encoding %q", encoding)
	}
}

// cleanHeaders trims whitespace from header values.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		cleaned[i] = strings.TrimSpace(header)
	}
	return cleaned
}

// extractRecords converts data rows to records, skipping empty rows and
// preserving order. Rows shorter than the header row simply lack the
// trailing columns.
func extractRecords(rows [][]string, headers []string) []field.Record {
	records := make([]field.Record, 0, len(rows))

	for _, row := range rows {
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

	return records
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
