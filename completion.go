package argbind

import (
	"regexp"
	"strings"

	"github.com/napalu/argbind/completion"
	"github.com/napalu/argbind/convert"
)

// literalAlternation matches patterns such as "json|yaml" whose accepted values can be listed
var literalAlternation = regexp.MustCompile(`^[\w.-]+(\|[\w.-]+)*$`)

// Completion describes s for shell completion. Enum parameters offer their constant names
// and parameters whose pattern is a list of literals offer those literals.
func (p *Parser) Completion(s *Schema) completion.CompletionCommand {
	cmd := completion.CompletionCommand{
		Names:       append([]string(nil), s.Command.Names...),
		Description: s.Command.Description,
		Vars:        s.Vars != nil,
	}

	for _, param := range s.Parameters {
		cmd.Flags = append(cmd.Flags, completion.CompletionFlag{
			Names:       append([]string(nil), param.Names...),
			Description: param.Description,
			Boolean:     param.Boolean,
			Values:      p.completionValues(param),
		})
	}

	return cmd
}

// CompletionScript renders a completion script for shell covering the given schemas
func (p *Parser) CompletionScript(shell, programName string, schemas ...*Schema) (string, error) {
	var data completion.CompletionData
	for _, s := range schemas {
		data.Commands = append(data.Commands, p.Completion(s))
	}

	return completion.Generate(shell, programName, data)
}

func (p *Parser) completionValues(param *ParameterDescriptor) []completion.CompletionValue {
	var names []string
	switch {
	case param.Pattern != nil && literalAlternation.MatchString(param.Pattern.Pattern):
		names = strings.Split(param.Pattern.Pattern, "|")
	case param.Converter == "":
		t := param.Field.Type
		if convert.ShapeOf(t) != convert.Scalar && convert.ShapeOf(t) != convert.Map {
			t = convert.ElemOf(t)
		}
		names = p.registry.EnumNames(t)
	}

	values := make([]completion.CompletionValue, 0, len(names))
	for _, name := range names {
		values = append(values, completion.CompletionValue{Pattern: name})
	}
	if len(values) == 0 {
		return nil
	}

	return values
}

// CompletionScript renders a completion script for shell
func (b *Binder[T]) CompletionScript(shell, programName string) (string, error) {
	return b.parser.CompletionScript(shell, programName, b.schema)
}
