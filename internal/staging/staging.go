// =============================================================================
// fieldforge - Staging Writer
// =============================================================================
//
// This module lays out the generated metadata on disk before deployment:
//
//   <staging root>/
//     package.xml
//     objects/<Object>/fields/<FullName>.field-meta.xml
//
// Each invocation gets its own uuid-suffixed staging directory so concurrent
// runs and leftovers from earlier runs never collide. The object directory is
// always derived from the caller-supplied object name.
//
// =============================================================================

package staging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/sforcekit/fieldforge/internal/field"
	"github.com/sforcekit/fieldforge/internal/metaxml"
)

// Stager writes staged metadata under a per-run directory.
type Stager struct {
	// BaseDir is where staging directories are created.
	// Empty means the system temp directory.
	BaseDir string

	// APIVersion is written into the package.xml manifest.
	APIVersion string
}

// New creates a Stager.
func New(baseDir, apiVersion string) *Stager {
	return &Stager{BaseDir: baseDir, APIVersion: apiVersion}
}

// Stage writes one field-meta.xml per descriptor plus the package.xml
// manifest, and returns the staging root.
//
// PARAMETERS:
//   - objectName: The object the fields belong to (directory key and
//     manifest member prefix).
//   - descriptors: The built field descriptors, in submission order.
//
// RETURNS:
//   - The path of the staging root.
//   - An error if any directory or file cannot be written.
func (s *Stager) Stage(objectName string, descriptors []field.Descriptor) (string, error) {
	root, err := s.createRoot()
	if err != nil {
		return "", err
	}

	fieldsDir := filepath.Join(root, "objects", objectName, "fields")
	if err := os.MkdirAll(fieldsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}

	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		path := filepath.Join(fieldsDir, d.FullName+".field-meta.xml")
		if err := os.WriteFile(path, metaxml.RenderField(d), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
		names = append(names, d.FullName)
	}

	manifest := metaxml.RenderManifest(objectName, names, s.APIVersion)
	manifestPath := filepath.Join(root, "package.xml")
	if err := os.WriteFile(manifestPath, manifest, 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return root, nil
}

// createRoot makes the per-run staging root.
func (s *Stager) createRoot() (string, error) {
	base := s.BaseDir
	if base == "" {
		base = os.TempDir()
	}

	root := filepath.Join(base, "fieldforge-"+uuid.New().String())
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create staging root: %w", err)
	}

	return root, nil
}
