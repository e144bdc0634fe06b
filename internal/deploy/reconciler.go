// =============================================================================
// fieldforge - Deployment Reconciler
// =============================================================================
//
// This module maps the endpoint's per-item results back onto per-field
// outcomes and aggregates them into one pass/fail verdict for the batch.
//
// CLASSIFICATION:
//   - success                                  -> Created
//   - failure on an already-existing field,
//     when --skip-existing was requested       -> SkippedExisting
//   - any other failure                        -> Failed(message)
//
// Outcome-to-descriptor mapping is strictly positional (result[i] belongs to
// descriptor[i]). Failures are aggregated across the whole batch and reported
// once, after every result is classified.
//
// =============================================================================

package deploy

import (
	"fmt"
	"strings"

	"github.com/sforcekit/fieldforge/internal/field"
)

// =============================================================================
// OUTCOME TYPES
// =============================================================================

// Outcome classifies the deployment result of one field.
type Outcome int

const (
	// Created means the org accepted the field.
	Created Outcome = iota

	// SkippedExisting means the field already existed and skip-existing
	// treatment was requested. Counts toward success.
	SkippedExisting

	// Failed means the org rejected the field.
	Failed
)

// String returns the outcome name for logs and error messages.
func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case SkippedExisting:
		return "skipped (already exists)"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// FieldOutcome is the classified result for one submitted field.
type FieldOutcome struct {
	FieldName string
	Outcome   Outcome

	// Message carries the joined sub-error messages for failures and
	// skips; empty for created fields.
	Message string
}

// Reconciliation is the immutable classification of a whole batch.
type Reconciliation struct {
	// Outcomes holds one entry per submitted descriptor, in submission
	// order.
	Outcomes []FieldOutcome
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Substrings that identify an already-exists rejection. Inherited from the
// messages the Metadata API actually produces.
var alreadyExistsMarkers = []string{
	"already a field named",
	"already exists",
}

// Reconcile classifies the endpoint results against the submitted
// descriptors. Mapping is positional; if the endpoint returns fewer results
// than descriptors were submitted, the surplus descriptors are classified as
// failed with an explanatory message rather than silently dropped.
func Reconcile(descriptors []field.Descriptor, results []SaveResult, skipExisting bool) Reconciliation {
	outcomes := make([]FieldOutcome, 0, len(descriptors))

	for i, d := range descriptors {
		if i >= len(results) {
			outcomes = append(outcomes, FieldOutcome{
				FieldName: d.FullName,
				Outcome:   Failed,
				Message:   "no result returned by the metadata endpoint",
			})
			continue
		}

		outcomes = append(outcomes, classify(d.FullName, results[i], skipExisting))
	}

	return Reconciliation{Outcomes: outcomes}
}

// classify determines the outcome of one field from its result.
func classify(fieldName string, result SaveResult, skipExisting bool) FieldOutcome {
	if result.Success {
		return FieldOutcome{FieldName: fieldName, Outcome: Created}
	}

	message := result.Message()

	if skipExisting && isAlreadyExists(message) {
		return FieldOutcome{FieldName: fieldName, Outcome: SkippedExisting, Message: message}
	}

	return FieldOutcome{FieldName: fieldName, Outcome: Failed, Message: message}
}

// isAlreadyExists reports whether the failure message identifies a field
// that already exists in the org.
func isAlreadyExists(message string) bool {
	for _, marker := range alreadyExistsMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}

// =============================================================================
// AGGREGATION
// =============================================================================

// DeployedFields returns the names classified Created or SkippedExisting, in
// submission order.
func (r Reconciliation) DeployedFields() []string {
	var names []string
	for _, o := range r.Outcomes {
		if o.Outcome == Created || o.Outcome == SkippedExisting {
			names = append(names, o.FieldName)
		}
	}
	return names
}

// Failures returns the outcomes classified Failed, in submission order.
func (r Reconciliation) Failures() []FieldOutcome {
	var failures []FieldOutcome
	for _, o := range r.Outcomes {
		if o.Outcome == Failed {
			failures = append(failures, o)
		}
	}
	return failures
}

// CreatedCount returns the number of fields classified Created.
func (r Reconciliation) CreatedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Outcome == Created {
			n++
		}
	}
	return n
}

// SkippedCount returns the number of fields classified SkippedExisting.
func (r Reconciliation) SkippedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Outcome == SkippedExisting {
			n++
		}
	}
	return n
}

// Err returns nil when no failures remain; otherwise a DeploymentError
// carrying the failure count and the per-field messages.
func (r Reconciliation) Err() error {
	failures := r.Failures()
	if len(failures) == 0 {
		return nil
	}
	return &DeploymentError{Failures: failures}
}

// DeploymentError aggregates the failed outcomes of one batch.
type DeploymentError struct {
	Failures []FieldOutcome
}

func (e *DeploymentError) Error() string {
	details := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		details[i] = fmt.Sprintf("%s: %s", f.FieldName, f.Message)
	}
	return fmt.Sprintf("deployment failed for %d field(s): %s", len(e.Failures), strings.Join(details, "; "))
}
