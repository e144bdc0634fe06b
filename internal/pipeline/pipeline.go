// =============================================================================
// fieldforge - Deployment Pipeline
// =============================================================================
//
// This module orchestrates one invocation end to end:
//
//   1. Parse the source file into raw records (CSV or XLSX by extension)
//   2. Normalize and validate every record (fail fast on the first violation)
//   3. Build one descriptor per field, applying type defaults
//   4. Stage the field documents and the package.xml manifest
//   5. Submit the batch through the metadata client (unless staging only)
//   6. Reconcile the results into per-field outcomes
//
// Validation errors abort the whole batch. Descriptor-build errors are
// isolated per field. Remote failures are aggregated once after all results
// are classified.
//
// =============================================================================

package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sforcekit/fieldforge/internal/config"
	"github.com/sforcekit/fieldforge/internal/csvparser"
	"github.com/sforcekit/fieldforge/internal/deploy"
	"github.com/sforcekit/fieldforge/internal/field"
	"github.com/sforcekit/fieldforge/internal/logging"
	"github.com/sforcekit/fieldforge/internal/staging"
	"github.com/sforcekit/fieldforge/internal/xlsxparser"
)

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options are the per-invocation parameters.
type Options struct {
	// ObjectName is the object the fields are created on. Required.
	ObjectName string

	// SourceFile is the field-definition file. Required.
	SourceFile string

	// SkipExisting treats "field already exists" rejections as successes.
	SkipExisting bool

	// StageOnly stops after staging; nothing is submitted.
	StageOnly bool
}

// Result is the outcome of a successful invocation.
type Result struct {
	// StagingDir is where the metadata documents were written.
	StagingDir string

	// DeployedFields are the names that ended up Created or
	// SkippedExisting, in submission order. Empty for stage-only runs.
	DeployedFields []string

	// Created and Skipped break DeployedFields down.
	Created int
	Skipped int

	// BuildFailures lists fields whose descriptors could not be built.
	BuildFailures []field.BuildFailure
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner executes the pipeline.
type Runner struct {
	cfg    *config.Config
	client deploy.MetadataClient
	log    logging.Logger
}

// New creates a Runner. client may be nil for stage-only runs.
func New(cfg *config.Config, client deploy.MetadataClient, log logging.Logger) *Runner {
	return &Runner{cfg: cfg, client: client, log: log}
}

// Run executes one invocation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.ObjectName == "" {
		return nil, fmt.Errorf("object name is required")
	}
	if opts.SourceFile == "" {
		return nil, fmt.Errorf("source file is required")
	}

	// Step 1: parse.
	fields, err := r.LoadFields(opts.SourceFile)
	if err != nil {
		return nil, err
	}
	r.log.Debug("normalized %d field definition(s) from %s", len(fields), opts.SourceFile)

	// Step 3: build descriptors.
	descriptors, buildFailures, err := field.BuildAll(fields, r.log)
	if err != nil {
		return nil, err
	}

	// Step 4: stage.
	stager := staging.New(r.cfg.StagingDir, r.cfg.APIVersion)
	stagingDir, err := stager.Stage(opts.ObjectName, descriptors)
	if err != nil {
		return nil, err
	}
	r.log.Info("staged %d field(s) under %s", len(descriptors), stagingDir)

	result := &Result{
		StagingDir:    stagingDir,
		BuildFailures: buildFailures,
	}

	if opts.StageOnly {
		return result, nil
	}

	// Step 5: submit.
	if r.client == nil {
		return nil, fmt.Errorf("no metadata client configured")
	}
	results, err := r.client.CreateFields(ctx, opts.ObjectName, descriptors)
	if err != nil {
		return nil, fmt.Errorf("metadata deployment failed: %w", err)
	}

	// Step 6: reconcile.
	reconciliation := deploy.Reconcile(descriptors, results, opts.SkipExisting)
	for _, o := range reconciliation.Outcomes {
		if o.Message != "" {
			r.log.Debug("%s: %s (%s)", o.FieldName, o.Outcome, o.Message)
		} else {
			r.log.Debug("%s: %s", o.FieldName, o.Outcome)
		}
	}

	result.DeployedFields = reconciliation.DeployedFields()
	result.Created = reconciliation.CreatedCount()
	result.Skipped = reconciliation.SkippedCount()

	if err := reconciliation.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// LoadFields parses and normalizes the source file. Exposed separately so
// the validate command can stop after this stage.
func (r *Runner) LoadFields(sourceFile string) ([]field.Field, error) {
	data, err := r.parse(sourceFile)
	if err != nil {
		return nil, err
	}

	return field.NormalizeAll(data.Records, r.log)
}

// parse selects the parser by file extension.
func (r *Runner) parse(sourceFile string) (*csvparser.Data, error) {
	switch strings.ToLower(filepath.Ext(sourceFile)) {
	case ".xlsx", ".xlsm":
		return xlsxparser.Parse(sourceFile)
	default:
		return csvparser.Parse(sourceFile, r.cfg.CSV)
	}
}
