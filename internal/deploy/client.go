// =============================================================================
// fieldforge - Metadata Client Interface
// =============================================================================
//
// The remote collaborator boundary. The reconciler and the pipeline only ever
// see this interface; the SOAP implementation lives in soap.go and tests
// substitute stubs.
//
// =============================================================================

package deploy

import (
	"context"
	"strings"

	"github.com/sforcekit/fieldforge/internal/field"
)

// MetadataClient submits a batch of field descriptors for creation and
// returns one SaveResult per descriptor, in submission order. A returned
// error means the call itself could not be completed (transport failure);
// per-field failures are carried inside the results.
type MetadataClient interface {
	CreateFields(ctx context.Context, objectName string, descriptors []field.Descriptor) ([]SaveResult, error)
}

// SaveResult is the per-item outcome reported by the creation endpoint.
type SaveResult struct {
	// FullName is the qualified member name as reported by the endpoint,
	// e.g. "Account.Status__c". Informational only: outcome-to-descriptor
	// mapping is positional.
	FullName string

	// Success reports whether the item was created.
	Success bool

	// Errors carries zero or more sub-errors for failed items.
	Errors []SaveError
}

// SaveError is one sub-error of a failed SaveResult.
type SaveError struct {
	StatusCode string
	Message    string
}

// Message joins the sub-error messages into one human-readable string.
func (r SaveResult) Message() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		if e.Message != "" {
			parts = append(parts, e.Message)
		}
	}
	return strings.Join(parts, ", ")
}
