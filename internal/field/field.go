// =============================================================================
// fieldforge - Field Normalizer & Validator
// =============================================================================
//
// This module turns raw input Records into typed Field values. Normalization
// is all-or-nothing per batch: the first violation aborts processing of all
// remaining records, and no partial result set is returned.
//
// VALIDATION RULES (in order, per record):
//   1. fullName, label and type must be non-empty -> "invalid field definition"
//   2. fullName must end with "__c"               -> "invalid field name"
//   3. the legacy type literal "Boolean" is rewritten to "Checkbox"; the
//      rewrite is logged once per field.
//
// Optional attributes are carried as pointers: a nil pointer means the column
// was absent or empty in the source row, never an empty-string sentinel.
//
// =============================================================================

package field

import (
	"fmt"
	"strings"

	"github.com/sforcekit/fieldforge/internal/logging"
)

// CustomSuffix is the suffix every Salesforce custom field name carries.
const CustomSuffix = "__c"

// Supported field type literals.
const (
	TypeText         = "Text"
	TypeCurrency     = "Currency"
	TypeCheckbox     = "Checkbox"
	TypePicklist     = "Picklist"
	TypeNumber       = "Number"
	TypePercent      = "Percent"
	TypeEmail        = "Email"
	TypePhone        = "Phone"
	TypeURL          = "Url"
	TypeTextArea     = "TextArea"
	TypeLongTextArea = "LongTextArea"
	TypeHtml         = "Html"

	// typeBoolean is a legacy alias accepted on input and rewritten to
	// Checkbox before any further processing.
	typeBoolean = "Boolean"
)

// =============================================================================
// NORMALIZED FIELD
// =============================================================================

// Field is one normalized field definition. FullName, Label and Type are
// always present; everything else is optional.
type Field struct {
	FullName string
	Label    string
	Type     string

	Length         *string
	Precision      *string
	Scale          *string
	Description    *string
	Formula        *string
	PicklistValues *string
	DefaultValue   *string
	InlineHelpText *string

	Required      *bool
	ExternalID    *bool
	Unique        *bool
	CaseSensitive *bool

	// Row is the 1-indexed data row this field came from, for error
	// reporting.
	Row int
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// NormalizeAll validates and normalizes all records in input order.
// Zero records is an error (ErrNoFieldDefinitions); the first invalid record
// aborts the whole batch.
func NormalizeAll(records []Record, log logging.Logger) ([]Field, error) {
	if len(records) == 0 {
		return nil, ErrNoFieldDefinitions
	}

	fields := make([]Field, 0, len(records))
	for i, record := range records {
		f, err := Normalize(record, i+1, log)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	return fields, nil
}

// Normalize validates a single record and builds the Field for it.
// row is the 1-indexed data row number, used in error messages.
func Normalize(record Record, row int, log logging.Logger) (Field, error) {
	fullName := record.Get(ColFullName)
	label := record.Get(ColLabel)
	fieldType := record.Get(ColType)

	// Rule 1: the three required columns must be present.
	for _, missing := range []struct {
		column string
		value  string
	}{
		{ColFullName, fullName},
		{ColLabel, label},
		{ColType, fieldType},
	} {
		if missing.value == "" {
			return Field{}, fmt.Errorf("%w: row %d is missing %q", ErrInvalidFieldDefinition, row, missing.column)
		}
	}

	// Rule 2: custom field names must carry the __c suffix.
	if !strings.HasSuffix(fullName, CustomSuffix) {
		return Field{}, fmt.Errorf("%w: %q must end with %q", ErrInvalidFieldName, fullName, CustomSuffix)
	}

	// Rule 3: rewrite the legacy Boolean alias. This is the only
	// type-aliasing rule.
	if fieldType == typeBoolean {
		log.Info("field %s: rewriting type %s -> %s", fullName, typeBoolean, TypeCheckbox)
		fieldType = TypeCheckbox
	}

	f := Field{
		FullName: fullName,
		Label:    label,
		Type:     fieldType,
		Row:      row,
	}

	// Optional string attributes: copied only when the source column has a
	// value, omitted entirely otherwise.
	f.Length = optionalString(record, ColLength)
	f.Precision = optionalString(record, ColPrecision)
	f.Scale = optionalString(record, ColScale)
	f.Description = optionalString(record, ColDescription)
	f.Formula = optionalString(record, ColFormula)
	f.PicklistValues = optionalString(record, ColPicklistValues)
	f.DefaultValue = optionalString(record, ColDefaultValue)
	f.InlineHelpText = optionalString(record, ColInlineHelpText)

	// Boolean attributes: true iff the literal token is "true",
	// case-insensitively. Any other value parses as false.
	f.Required = optionalBool(record, ColRequired)
	f.ExternalID = optionalBool(record, ColExternalID)
	f.Unique = optionalBool(record, ColUnique)
	f.CaseSensitive = optionalBool(record, ColCaseSensitive)

	return f, nil
}

// optionalString returns nil when the column is absent or empty.
func optionalString(record Record, column string) *string {
	if !record.Has(column) {
		return nil
	}
	v := record.Get(column)
	return &v
}

// optionalBool returns nil when the column is absent or empty; otherwise the
// value is true iff the token equals "true" case-insensitively.
func optionalBool(record Record, column string) *bool {
	if !record.Has(column) {
		return nil
	}
	v := strings.EqualFold(record.Get(column), "true")
	return &v
}
