// =============================================================================
// fieldforge - Main Entry Point
// =============================================================================
//
// fieldforge is a CLI tool that reads custom-field definitions from a CSV (or
// XLSX) file, renders each definition as a Salesforce CustomField metadata XML
// document, stages the documents alongside a package.xml manifest, and submits
// the batch to a target org through the Metadata API.
//
// USAGE:
//   fieldforge deploy     - Stage field metadata and deploy it to an org
//   fieldforge generate   - Stage field metadata without deploying
//   fieldforge validate   - Parse and validate field definitions only
//   fieldforge version    - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//
// =============================================================================

package main

import (
	"github.com/sforcekit/fieldforge/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
