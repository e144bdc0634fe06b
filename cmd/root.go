// =============================================================================
// fieldforge - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'deploy', 'generate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (fieldforge)
//   ├── deployCmd   (fieldforge deploy)
//   ├── generateCmd (fieldforge generate)
//   ├── validateCmd (fieldforge validate)
//   └── versionCmd  (fieldforge version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	// Use is the one-line usage message.
	Use: "fieldforge",

	// Short is a short description shown in the 'help' output.
	Short: "Create Salesforce custom fields in bulk from a CSV file",

	// Long is a longer description shown in the 'help <command>' output.
	Long: `fieldforge is a CLI tool that turns tabular custom-field definitions into
Salesforce CustomField metadata and deploys them to a target org in one batch.

Key Features:
  - Field definitions from CSV or XLSX files
  - Per-type attribute defaulting (lengths, precision/scale, picklist values)
  - Generated field-meta.xml documents staged with a package.xml manifest
  - Single batch submission through the Metadata API
  - Optional skip-on-exists handling for fields already present in the org

Example Usage:
  fieldforge deploy --object Account --file fields.csv
  fieldforge deploy --object Lead --file fields.csv --skip-existing
  fieldforge generate --object Account --file fields.csv`,

	// Run is the function that will be executed when the root command is called
	// without any subcommands. In this case, we just print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Execute the root command. If there's an error, print it and exit.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags shared by all subcommands.
func init() {
	// Persistent flags are available to this command and all subcommands.

	// --config flag: Allows the user to specify a custom configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables verbose/debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
