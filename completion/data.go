// Package completion generates shell completion scripts for programs whose first argument
// is an argbind command.
package completion

// CompletionValue is a value offered for a flag
type CompletionValue struct {
	Pattern     string // The value as typed
	Description string // Human-readable description
}

// CompletionFlag describes one parameter and every name it is known by
type CompletionFlag struct {
	Names       []string
	Description string
	Boolean     bool
	Values      []CompletionValue
}

// CompletionCommand describes one command and its flags
type CompletionCommand struct {
	Names       []string
	Description string
	Flags       []CompletionFlag
	Vars        bool
}

// CompletionData is used to store the completion data for all commands of a program
type CompletionData struct {
	Commands []CompletionCommand
}

// Generator renders CompletionData as a script for one shell
type Generator interface {
	Generate(programName string, data CompletionData) string
}
