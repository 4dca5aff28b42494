package completion

import (
	"path/filepath"
	"strings"

	"github.com/napalu/argbind/errs"
)

var generators = map[string]Generator{
	"bash":       &BashGenerator{},
	"zsh":        &ZshGenerator{},
	"fish":       &FishGenerator{},
	"powershell": &PowerShellGenerator{},
}

// Shells lists the supported shells
func Shells() []string {
	return []string{"bash", "fish", "powershell", "zsh"}
}

// GetGenerator returns the generator for shell
func GetGenerator(shell string) (Generator, error) {
	g, ok := generators[shell]
	if !ok {
		return nil, errs.ErrUnsupportedShell.WithArgs(shell, strings.Join(Shells(), ", "))
	}

	return g, nil
}

// Generate renders data for shell. programName may be a path; only its base name is used.
func Generate(shell, programName string, data CompletionData) (string, error) {
	g, err := GetGenerator(shell)
	if err != nil {
		return "", err
	}

	return g.Generate(filepath.Base(programName), data), nil
}

func escapeBash(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, `$`, `\$`)
	s = strings.ReplaceAll(s, "`", "\\`")
	return s
}

func escapeFish(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", "\\'")
}

func escapePowerShell(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func escapeZsh(s string) string {
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	s = strings.ReplaceAll(s, ":", "\\:")
	return strings.ReplaceAll(s, "'", `'\''`)
}

// functionName turns a program name into a shell identifier
func functionName(programName string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, programName)
}

func commandNames(data CompletionData) []string {
	var names []string
	for _, cmd := range data.Commands {
		names = append(names, cmd.Names...)
	}

	return names
}

func flagNames(cmd CompletionCommand) []string {
	var names []string
	for _, f := range cmd.Flags {
		names = append(names, f.Names...)
	}

	return names
}

func valuePatterns(values []CompletionValue) []string {
	patterns := make([]string, len(values))
	for i, v := range values {
		patterns[i] = v.Pattern
	}

	return patterns
}
