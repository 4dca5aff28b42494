package completion

import (
	"fmt"
	"strings"
)

type FishGenerator struct{}

func (g *FishGenerator) Generate(programName string, data CompletionData) string {
	var script strings.Builder

	for _, cmd := range data.Commands {
		for _, name := range cmd.Names {
			script.WriteString(fmt.Sprintf(
				"complete -c %s -f -n '__fish_use_subcommand' -a '%s' -d '%s'\n",
				programName, escapeFish(name), escapeFish(cmd.Description)))
		}
	}

	for _, cmd := range data.Commands {
		condition := fmt.Sprintf("__fish_seen_subcommand_from %s", strings.Join(cmd.Names, " "))
		for _, f := range cmd.Flags {
			line := fmt.Sprintf("complete -c %s -f -n '%s'", programName, condition)
			for _, name := range f.Names {
				line += fishOption(name)
			}
			if !f.Boolean {
				line += " -r"
			}
			if len(f.Values) > 0 {
				line += fmt.Sprintf(" -a '%s'", escapeFish(strings.Join(valuePatterns(f.Values), " ")))
			}
			if f.Description != "" {
				line += fmt.Sprintf(" -d '%s'", escapeFish(f.Description))
			}
			script.WriteString(line + "\n")
		}
	}

	return script.String()
}

// fishOption maps a flag name to fish's long (-l), short (-s) or old-style (-o) option
func fishOption(name string) string {
	switch {
	case strings.HasPrefix(name, "--"):
		return " -l " + strings.TrimPrefix(name, "--")
	case len(name) == 2:
		return " -s " + name[1:]
	}

	return " -o " + strings.TrimPrefix(name, "-")
}
