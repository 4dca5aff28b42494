package argbind

import (
	"strings"

	"github.com/napalu/argbind/errs"
	"github.com/napalu/argbind/internal/parse"
	orderedmap "github.com/wk8/go-ordered-map"
)

// Tokenize splits argv into the command name, flags and positional values. argv[0] must be
// one of the command names. A token starting with '-' is a flag; the following token is its
// value unless that token also starts with '-'. A flag without a value reads "true" when it
// is boolean and "" otherwise. When a flag is repeated the last value wins and the flag
// moves to the position of its last occurrence.
func Tokenize(s *Schema, argv []string) (*ParsedArguments, error) {
	if len(argv) == 0 {
		return nil, errs.NewParseError(s.Command.Names, "", errs.ErrEmptyInput)
	}
	if !s.IsCommand(argv[0]) {
		return nil, errs.NewParseError(s.Command.Names, argv[0],
			errs.ErrCommandMismatch.WithArgs(argv[0], strings.Join(s.Command.Names, "|")))
	}

	parsed := &ParsedArguments{
		Command:  argv[0],
		Flags:    orderedmap.New(),
		Booleans: make(map[string]struct{}),
	}

	state := parse.NewState(argv)
	state.Advance()
	for state.Advance() {
		token := state.CurrentArg()
		if !isFlag(token) {
			parsed.Positionals = append(parsed.Positionals, token)
			continue
		}

		value := ""
		switch {
		case state.HasNext() && !isFlag(state.Peek()):
			state.Advance()
			value = state.CurrentArg()
		case s.IsBoolean(token):
			value = "true"
		}
		parsed.Flags.Delete(token)
		parsed.Flags.Set(token, value)
		if s.IsBoolean(token) {
			parsed.Booleans[token] = struct{}{}
		}
	}

	return parsed, nil
}

func isFlag(token string) bool {
	return strings.HasPrefix(token, "-")
}

// Flag returns the raw value of the flag name
func (p *ParsedArguments) Flag(name string) (string, bool) {
	v, ok := p.Flags.Get(name)
	if !ok {
		return "", false
	}

	return v.(string), true
}

// HasFlag reports whether the flag name was supplied
func (p *ParsedArguments) HasFlag(name string) bool {
	_, ok := p.Flags.Get(name)
	return ok
}

// FlagNames returns the supplied flag names in order of last appearance
func (p *ParsedArguments) FlagNames() []string {
	names := make([]string, 0, p.Flags.Len())
	for pair := p.Flags.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key.(string))
	}

	return names
}

// EachFlag calls fn for every supplied flag in order of last appearance and stops at the
// first error
func (p *ParsedArguments) EachFlag(fn func(name, value string) error) error {
	for pair := p.Flags.Oldest(); pair != nil; pair = pair.Next() {
		if err := fn(pair.Key.(string), pair.Value.(string)); err != nil {
			return err
		}
	}

	return nil
}
