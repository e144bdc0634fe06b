// =============================================================================
// fieldforge - Deploy Command
// =============================================================================
//
// This file defines the 'deploy' command, the main command of the tool. It
// runs the full pipeline: parse the field definitions, build the metadata,
// stage it on disk, and submit it to the target org.
//
// COMMAND USAGE:
//   fieldforge deploy --object Account --file fields.csv [flags]
//
// FLAGS:
//   --object         : Target object the fields are created on (required)
//   --file           : Field-definition CSV or XLSX file (required)
//   --skip-existing  : Treat fields that already exist in the org as deployed
//   --login-url      : Override the login endpoint for this run
//
// Credentials come from the environment (SF_USERNAME, SF_PASSWORD, SF_TOKEN,
// SF_LOGIN_URL), with an optional .env file in the working directory.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/sforcekit/fieldforge/internal/config"
	"github.com/sforcekit/fieldforge/internal/deploy"
	"github.com/sforcekit/fieldforge/internal/logging"
	"github.com/sforcekit/fieldforge/internal/org"
	"github.com/sforcekit/fieldforge/internal/pipeline"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// objectName is the target object the fields are created on.
var objectName string

// sourceFile is the field-definition file to deploy.
var sourceFile string

// skipExisting treats already-existing fields as deployed.
var skipExisting bool

// loginURL overrides the configured login endpoint.
var loginURL string

// =============================================================================
// DEPLOY COMMAND DEFINITION
// =============================================================================

// deployCmd represents the 'deploy' command.
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Create custom fields in the target org from a definition file",
	Long: `The deploy command reads custom-field definitions from a CSV or XLSX file,
renders one CustomField metadata document per definition, stages the documents
with a package.xml manifest, and submits the whole batch to the target org in
a single Metadata API call.

Validation is all-or-nothing: the first invalid row aborts the run before
anything is submitted. With --skip-existing, fields the org reports as already
existing count as deployed instead of failing the batch.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeploy(cmd.Context())
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the deploy command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(deployCmd)

	deployCmd.Flags().StringVar(
		&objectName,
		"object",
		"",
		"Target object the fields are created on (e.g. Account)",
	)
	deployCmd.Flags().StringVar(
		&sourceFile,
		"file",
		"",
		"Field-definition CSV or XLSX file",
	)
	deployCmd.Flags().BoolVar(
		&skipExisting,
		"skip-existing",
		false,
		"Treat fields that already exist in the org as deployed",
	)
	deployCmd.Flags().StringVar(
		&loginURL,
		"login-url",
		"",
		"Override the Salesforce login endpoint",
	)

	deployCmd.MarkFlagRequired("object")
	deployCmd.MarkFlagRequired("file")
}

// =============================================================================
// MAIN DEPLOY FUNCTION
// =============================================================================

// runDeploy runs the full deployment pipeline.
func runDeploy(ctx context.Context) error {
	startTime := time.Now()
	log := logging.New(verbose)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if loginURL != "" {
		cfg.LoginURL = loginURL
	}

	// Resolve the org handle before doing any work: a missing credential
	// should fail before files are parsed.
	target, err := org.FromEnv(cfg.LoginURL)
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: 120 * time.Second}

	log.Debug("logging in to %s as %s", target.LoginURL, target.Username)
	session, err := deploy.Login(ctx, httpClient, target, cfg.APIVersion)
	if err != nil {
		return err
	}

	runner := pipeline.New(cfg, deploy.NewSOAPClient(httpClient, session), log)
	result, err := runner.Run(ctx, pipeline.Options{
		ObjectName:   objectName,
		SourceFile:   sourceFile,
		SkipExisting: skipExisting,
	})
	if err != nil {
		return err
	}

	fmt.Println("\n=== Deployment Complete ===")
	fmt.Printf("Staging dir:     %s\n", result.StagingDir)
	fmt.Printf("Created:         %d\n", result.Created)
	fmt.Printf("Skipped:         %d\n", result.Skipped)
	if len(result.BuildFailures) > 0 {
		fmt.Printf("Not built:       %d\n", len(result.BuildFailures))
	}
	fmt.Printf("Time elapsed:    %s\n", time.Since(startTime))
	for _, name := range result.DeployedFields {
		fmt.Printf("  ✓ %s.%s\n", objectName, name)
	}

	return nil
}
