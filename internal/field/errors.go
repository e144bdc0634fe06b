// =============================================================================
// fieldforge - Field Errors
// =============================================================================
//
// Sentinel errors for the normalization and build stages. Callers match with
// errors.Is; the wrapped messages carry the offending field name and row.
//
// =============================================================================

package field

import "errors"

var (
	// ErrInvalidFieldDefinition is returned when a row lacks one of the
	// required columns (fullName, label, type).
	ErrInvalidFieldDefinition = errors.New("invalid field definition")

	// ErrInvalidFieldName is returned when a row's fullName does not end
	// with the custom-field suffix.
	ErrInvalidFieldName = errors.New("invalid field name")

	// ErrNoFieldDefinitions is returned when the parsed input yields zero
	// data rows.
	ErrNoFieldDefinitions = errors.New("no field definitions found in input file")

	// ErrNoMetadataGenerated is returned when every descriptor build
	// failed and nothing is left to deploy.
	ErrNoMetadataGenerated = errors.New("no field metadata generated")
)
