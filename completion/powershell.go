package completion

import (
	"fmt"
	"strings"
)

type PowerShellGenerator struct{}

func (g *PowerShellGenerator) Generate(programName string, data CompletionData) string {
	var script strings.Builder

	script.WriteString(fmt.Sprintf(`Register-ArgumentCompleter -Native -CommandName '%s' -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })
    if ($wordToComplete -ne '') {
        $words = $words[0..($words.Count - 2)]
    }

    $results = @()
    if ($words.Count -le 1) {
        $results = @(`, escapePowerShell(programName)))

	for _, cmd := range data.Commands {
		for _, name := range cmd.Names {
			script.WriteString(completionResult(12, name, "Command", cmd.Description))
		}
	}

	script.WriteString(`
        )
    } else {
        $prev = $words[-1]
        switch ($words[1]) {`)

	for _, cmd := range data.Commands {
		script.WriteString(fmt.Sprintf(`
            { $_ -in %s } {`, quotedList(cmd.Names)))

		for _, f := range cmd.Flags {
			if len(f.Values) == 0 {
				continue
			}
			script.WriteString(fmt.Sprintf(`
                if ($prev -in %s) {
                    $results = @(`, quotedList(f.Names)))
			for _, v := range f.Values {
				script.WriteString(completionResult(24, v.Pattern, "ParameterValue", v.Description))
			}
			script.WriteString(`
                    )
                }`)
		}

		script.WriteString(`
                if ($results.Count -eq 0 -and $wordToComplete.StartsWith('-')) {
                    $results = @(`)
		for _, f := range cmd.Flags {
			for _, name := range f.Names {
				script.WriteString(completionResult(24, name, "ParameterName", f.Description))
			}
		}
		script.WriteString(`
                    )
                }
            }`)
	}

	script.WriteString(`
        }
    }

    $results | Where-Object { $_.CompletionText -like "$wordToComplete*" }
}
`)

	return script.String()
}

// completionResult renders one CompletionResult. PowerShell rejects an empty tooltip, so
// text stands in for a missing description.
func completionResult(indent int, text, kind, description string) string {
	if description == "" {
		description = text
	}

	return fmt.Sprintf("\n%[1]s[System.Management.Automation.CompletionResult]::new('%[2]s', '%[2]s', [System.Management.Automation.CompletionResultType]::%[3]s, '%[4]s')",
		strings.Repeat(" ", indent), escapePowerShell(text), kind, escapePowerShell(description))
}

func quotedList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + escapePowerShell(n) + "'"
	}

	return strings.Join(quoted, ", ")
}
