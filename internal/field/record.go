// =============================================================================
// fieldforge - Field Records
// =============================================================================
//
// A Record is one raw row from the input file: column name -> string value,
// no type enforcement, any column may be absent or empty. The parsers
// (csvparser, xlsxparser) produce Records; normalization turns them into
// typed Field values.
//
// =============================================================================

package field

import "strings"

// Input column names. Header matching is exact; column order in the input
// file does not matter.
const (
	ColFullName       = "fullName"
	ColLabel          = "label"
	ColType           = "type"
	ColLength         = "length"
	ColPrecision      = "precision"
	ColScale          = "scale"
	ColDescription    = "description"
	ColFormula        = "formula"
	ColPicklistValues = "picklistValues"
	ColDefaultValue   = "defaultValue"
	ColRequired       = "required"
	ColExternalID     = "externalId"
	ColUnique         = "unique"
	ColCaseSensitive  = "caseSensitive"
	ColInlineHelpText = "inlineHelpText"
)

// Record is one raw input row.
type Record map[string]string

// Get returns the trimmed value of a column. Absent and empty columns are
// indistinguishable by design.
func (r Record) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Has reports whether a column carries a non-empty value.
func (r Record) Has(column string) bool {
	return r.Get(column) != ""
}
