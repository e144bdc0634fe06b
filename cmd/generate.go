// =============================================================================
// fieldforge - Generate Command
// =============================================================================
//
// This file defines the 'generate' command: the deploy pipeline without the
// remote call. Field metadata and the manifest are staged on disk and the
// staging location is printed, which is useful for reviewing the generated
// XML or feeding it to another deployment tool.
//
// COMMAND USAGE:
//   fieldforge generate --object Account --file fields.csv
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sforcekit/fieldforge/internal/config"
	"github.com/sforcekit/fieldforge/internal/logging"
	"github.com/sforcekit/fieldforge/internal/pipeline"
)

// generateObject and generateFile mirror the deploy flags; generate keeps its
// own copies so the two commands can be used in one invocation chain.
var generateObject string
var generateFile string

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Stage field metadata without deploying it",
	Long: `The generate command runs the same parse, validate, build and stage steps as
deploy, but stops before the remote call. No credentials are required.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(
		&generateObject,
		"object",
		"",
		"Target object the fields are created on (e.g. Account)",
	)
	generateCmd.Flags().StringVar(
		&generateFile,
		"file",
		"",
		"Field-definition CSV or XLSX file",
	)

	generateCmd.MarkFlagRequired("object")
	generateCmd.MarkFlagRequired("file")
}

// runGenerate stages the metadata and prints the staging location.
func runGenerate() error {
	log := logging.New(verbose)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	runner := pipeline.New(cfg, nil, log)
	result, err := runner.Run(context.Background(), pipeline.Options{
		ObjectName: generateObject,
		SourceFile: generateFile,
		StageOnly:  true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Staged field metadata under %s\n", result.StagingDir)
	if len(result.BuildFailures) > 0 {
		fmt.Printf("%d field(s) could not be built; see warnings above\n", len(result.BuildFailures))
	}

	return nil
}
