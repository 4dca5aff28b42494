package completion

import (
	"fmt"
	"strings"
)

type ZshGenerator struct{}

func (g *ZshGenerator) Generate(programName string, data CompletionData) string {
	var script strings.Builder
	fn := functionName(programName)

	script.WriteString(fmt.Sprintf(`#compdef %s

__%s_completion() {
    local curcontext="$curcontext" state line
    typeset -A opt_args

    _arguments -C \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _values 'commands'`, programName, fn))

	for _, cmd := range data.Commands {
		for _, name := range cmd.Names {
			script.WriteString(fmt.Sprintf(` \
                '%s[%s]'`, escapeZsh(name), escapeZsh(cmd.Description)))
		}
	}

	script.WriteString(`
            ;;
        args)
            case $words[1] in`)

	for _, cmd := range data.Commands {
		script.WriteString(fmt.Sprintf(`
                %s)
                    _arguments`, strings.Join(cmd.Names, "|")))
		for _, f := range cmd.Flags {
			for _, name := range f.Names {
				script.WriteString(fmt.Sprintf(` \
                        '*%s[%s]%s'`, name, escapeZsh(f.Description), zshAction(f)))
			}
		}
		if cmd.Vars {
			script.WriteString(` \
                        '*:vars:_default'`)
		}
		script.WriteString(`
                    ;;`)
	}

	script.WriteString(fmt.Sprintf(`
            esac
            ;;
    esac
}

__%s_completion "$@"
`, fn))

	return script.String()
}

func zshAction(f CompletionFlag) string {
	switch {
	case len(f.Values) > 0:
		values := make([]string, len(f.Values))
		for i, v := range f.Values {
			values[i] = escapeZsh(v.Pattern)
		}
		return ":value:(" + strings.Join(values, " ") + ")"
	case f.Boolean:
		return ""
	}

	return ":value: "
}
