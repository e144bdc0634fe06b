// =============================================================================
// fieldforge - Logging
// =============================================================================
//
// A minimal leveled logger shared by the pipeline stages. Commands construct
// one logger and thread it through; Debug output is gated by the --verbose
// flag.
//
// =============================================================================

package logging

import "fmt"

// Logger is the logging interface used throughout the pipeline.
// Having an interface here keeps the core packages testable with a
// silent logger.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// StdLogger writes leveled messages to stdout.
type StdLogger struct {
	// Verbose enables Debug output.
	Verbose bool
}

// New returns a stdout logger. Debug messages are suppressed unless
// verbose is true.
func New(verbose bool) *StdLogger {
	return &StdLogger{Verbose: verbose}
}

func (l *StdLogger) Debug(msg string, args ...interface{}) {
	if l.Verbose {
		fmt.Printf("[DEBUG] "+msg+"\n", args...)
	}
}

func (l *StdLogger) Info(msg string, args ...interface{}) {
	fmt.Printf("[INFO] "+msg+"\n", args...)
}

func (l *StdLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("[WARN] "+msg+"\n", args...)
}

func (l *StdLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}

// Nop discards everything. Used in tests.
type Nop struct{}

func (Nop) Debug(string, ...interface{}) {}
func (Nop) Info(string, ...interface{})  {}
func (Nop) Warn(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
