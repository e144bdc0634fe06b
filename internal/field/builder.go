// =============================================================================
// fieldforge - Metadata Object Builder
// =============================================================================
//
// This module turns a normalized Field into a Descriptor: the fully-resolved,
// type-default-applied representation that is rendered to field-meta.xml and
// submitted to the org.
//
// TYPE DEFAULTING RULES (each independent; Picklist supersedes defaultValue):
//   Picklist                 -> value set from picklistValues with exactly one
//                               default entry; generic defaultValue discarded
//   Text                     -> length 255 when absent
//   Phone, Url               -> length 100 when absent
//   Email                    -> length always omitted
//   Number, Currency, Percent-> precision 18 / scale 2 when absent
//   Checkbox                 -> defaultValue "false" when never set
//   TextArea                 -> length 1000 when absent
//   LongTextArea, Html       -> length 32768 / visibleLines 10 when absent
//
// Applying the defaults to an already-defaulted descriptor changes nothing.
//
// Per-field build failures (e.g. a non-numeric length) are isolated: sibling
// fields keep going, and only an empty successful set fails the batch.
//
// =============================================================================

package field

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sforcekit/fieldforge/internal/logging"
)

// =============================================================================
// DESCRIPTOR TYPES
// =============================================================================

// Descriptor is one deployable CustomField document. Numeric attributes are
// parsed; nil pointers mean the attribute is omitted from the rendered XML.
type Descriptor struct {
	FullName string
	Label    string
	Type     string

	Length       *int
	Precision    *int
	Scale        *int
	VisibleLines *int

	Description    *string
	Formula        *string
	DefaultValue   *string
	InlineHelpText *string

	Required      *bool
	ExternalID    *bool
	Unique        *bool
	CaseSensitive *bool

	// ValueSet is populated for Picklist fields only, in input order.
	ValueSet []ValueSetEntry
}

// ValueSetEntry is one picklist value. Default is true for exactly the entry
// whose literal equals the source record's defaultValue.
type ValueSetEntry struct {
	FullName string
	Label    string
	Default  bool
}

// BuildFailure records a per-field build error without aborting siblings.
type BuildFailure struct {
	FullName string
	Row      int
	Err      error
}

func (f BuildFailure) Error() string {
	return fmt.Sprintf("field %s (row %d): %v", f.FullName, f.Row, f.Err)
}

// =============================================================================
// BUILDING
// =============================================================================

// BuildAll builds descriptors for all fields in order. Individual failures
// are logged and collected; ErrNoMetadataGenerated is returned only when no
// descriptor could be built at all.
func BuildAll(fields []Field, log logging.Logger) ([]Descriptor, []BuildFailure, error) {
	descriptors := make([]Descriptor, 0, len(fields))
	var failures []BuildFailure

	for _, f := range fields {
		d, err := Build(f)
		if err != nil {
			failure := BuildFailure{FullName: f.FullName, Row: f.Row, Err: err}
			failures = append(failures, failure)
			log.Warn("skipping %s", failure.Error())
			continue
		}
		descriptors = append(descriptors, d)
	}

	if len(descriptors) == 0 {
		return nil, failures, ErrNoMetadataGenerated
	}

	return descriptors, failures, nil
}

// Build produces the Descriptor for one normalized field.
func Build(f Field) (Descriptor, error) {
	d := Descriptor{
		FullName: f.FullName,
		Label:    f.Label,
		Type:     f.Type,

		Description:    f.Description,
		Formula:        f.Formula,
		DefaultValue:   f.DefaultValue,
		InlineHelpText: f.InlineHelpText,

		Required:      f.Required,
		ExternalID:    f.ExternalID,
		Unique:        f.Unique,
		CaseSensitive: f.CaseSensitive,
	}

	var err error
	if d.Length, err = optionalInt(f.Length, ColLength); err != nil {
		return Descriptor{}, err
	}
	if d.Precision, err = optionalInt(f.Precision, ColPrecision); err != nil {
		return Descriptor{}, err
	}
	if d.Scale, err = optionalInt(f.Scale, ColScale); err != nil {
		return Descriptor{}, err
	}

	// The Picklist value set is derived before defaulting so the rule can
	// supersede the generic defaultValue.
	if f.Type == TypePicklist && f.PicklistValues != nil {
		d.ValueSet = buildValueSet(*f.PicklistValues, f.DefaultValue)
	}

	ApplyTypeDefaults(&d)

	return d, nil
}

// ApplyTypeDefaults injects the type-conditional default attributes.
// It is idempotent: present attributes are never overwritten, so applying it
// to its own output is a no-op.
func ApplyTypeDefaults(d *Descriptor) {
	switch d.Type {
	case TypePicklist:
		// The value set carries the defaults; a generic defaultValue is
		// superseded and dropped entirely.
		d.DefaultValue = nil

	case TypeText:
		defaultInt(&d.Length, 255)

	case TypePhone, TypeURL:
		defaultInt(&d.Length, 100)

	case TypeEmail:
		// Length is not a valid attribute on Email fields.
		d.Length = nil

	case TypeNumber, TypeCurrency, TypePercent:
		defaultInt(&d.Precision, 18)
		defaultInt(&d.Scale, 2)

	case TypeCheckbox:
		defaultString(&d.DefaultValue, "false")

	case TypeTextArea:
		defaultInt(&d.Length, 1000)

	case TypeLongTextArea, TypeHtml:
		defaultInt(&d.Length, 32768)
		defaultInt(&d.VisibleLines, 10)
	}
	// All other types pass through unchanged.
}

// buildValueSet splits the picklist literal on commas, trims each entry and
// keeps the distinct literals in order. defaultValue marks at most one entry
// as the default.
func buildValueSet(literal string, defaultValue *string) []ValueSetEntry {
	seen := make(map[string]bool)
	var entries []ValueSetEntry

	for _, raw := range strings.Split(literal, ",") {
		value := strings.TrimSpace(raw)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true

		entries = append(entries, ValueSetEntry{
			FullName: value,
			Label:    value,
			Default:  defaultValue != nil && value == *defaultValue,
		})
	}

	return entries
}

// =============================================================================
// HELPERS
// =============================================================================

// optionalInt parses an optional numeric attribute. nil stays nil.
func optionalInt(s *string, column string) (*int, error) {
	if s == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		return nil, fmt.Errorf("%s %q is not a number", column, *s)
	}
	return &n, nil
}

// defaultInt sets *p to value only when no value is present.
func defaultInt(p **int, value int) {
	if *p == nil {
		v := value
		*p = &v
	}
}

// defaultString sets *p to value only when no value is present.
func defaultString(p **string, value string) {
	if *p == nil {
		v := value
		*p = &v
	}
}
