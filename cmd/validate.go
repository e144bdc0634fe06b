// =============================================================================
// fieldforge - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which parses and normalizes the
// field definitions without building or deploying anything. Useful as a
// pre-flight check on a definition file.
//
// COMMAND USAGE:
//   fieldforge validate --file fields.csv
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sforcekit/fieldforge/internal/config"
	"github.com/sforcekit/fieldforge/internal/logging"
	"github.com/sforcekit/fieldforge/internal/pipeline"
)

// validateFile is the definition file to check.
var validateFile string

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a field-definition file without deploying",
	Long: `The validate command parses the definition file and runs the normalization
rules (required columns, the __c naming convention, type aliasing) against
every row. The first violation is reported and the command exits non-zero.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(
		&validateFile,
		"file",
		"",
		"Field-definition CSV or XLSX file",
	)
	validateCmd.MarkFlagRequired("file")
}

// runValidate parses and normalizes the file, reporting the row count.
func runValidate() error {
	log := logging.New(verbose)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	runner := pipeline.New(cfg, nil, log)
	fields, err := runner.LoadFields(validateFile)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d field definition(s), all valid\n", validateFile, len(fields))
	return nil
}
