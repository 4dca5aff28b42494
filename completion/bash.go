package completion

import (
	"fmt"
	"strings"
)

type BashGenerator struct{}

func (g *BashGenerator) Generate(programName string, data CompletionData) string {
	var script strings.Builder
	fn := functionName(programName)

	script.WriteString(fmt.Sprintf(`#!/bin/bash

function __%s_completion() {
    local cur prev cmd
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # The command is always the first argument
    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "%s" -- "$cur") )
        return
    fi
    cmd="${COMP_WORDS[1]}"

    case "${cmd}" in`, fn, escapeBash(strings.Join(commandNames(data), " "))))

	for _, cmd := range data.Commands {
		script.WriteString(fmt.Sprintf(`
        %s)`, strings.Join(cmd.Names, "|")))

		var valued []CompletionFlag
		for _, f := range cmd.Flags {
			if len(f.Values) > 0 {
				valued = append(valued, f)
			}
		}
		if len(valued) > 0 {
			script.WriteString(`
            case "${prev}" in`)
			for _, f := range valued {
				script.WriteString(fmt.Sprintf(`
                %s)
                    COMPREPLY=( $(compgen -W "%s" -- "$cur") )
                    return
                    ;;`, strings.Join(f.Names, "|"), escapeBash(strings.Join(valuePatterns(f.Values), " "))))
			}
			script.WriteString(`
            esac`)
		}

		script.WriteString(fmt.Sprintf(`
            if [[ "$cur" == -* ]]; then
                COMPREPLY=( $(compgen -W "%s" -- "$cur") )
            fi
            ;;`, escapeBash(strings.Join(flagNames(cmd), " "))))
	}

	script.WriteString(fmt.Sprintf(`
    esac
}

complete -o default -F __%s_completion %s
`, fn, programName))

	return script.String()
}
