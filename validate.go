package argbind

import (
	"strings"

	"github.com/napalu/argbind/errs"
)

// Validate checks parsed against s. Flags are checked in input order: each must name a
// parameter and match its pattern. Then every required group must have a supplied name,
// in declaration order, and positional values need a vars field. The first violation is
// returned.
func Validate(s *Schema, parsed *ParsedArguments) error {
	err := parsed.EachFlag(func(name, value string) error {
		p, ok := s.Lookup(name)
		if !ok {
			return errs.NewParseError(s.Command.Names, name, errs.ErrUnknownParameter.WithArgs(name))
		}
		if p.Pattern != nil && !p.Pattern.Matches(value) {
			return errs.NewParseError(s.Command.Names, name,
				errs.ErrValidationFailed.WithArgs(value, name, p.Pattern.Describe()))
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, group := range s.required {
		if !anySupplied(parsed, group) {
			return errs.NewParseError(s.Command.Names, "",
				errs.ErrMissingRequiredParameter.WithArgs(strings.Join(group, "|")))
		}
	}

	if len(parsed.Positionals) > 0 && s.Vars == nil {
		return errs.NewParseError(s.Command.Names, parsed.Positionals[0],
			errs.ErrUnsupportedVars.WithArgs(strings.Join(s.Command.Names, "|"), strings.Join(parsed.Positionals, " ")))
	}

	return nil
}

func anySupplied(parsed *ParsedArguments, names []string) bool {
	for _, name := range names {
		if parsed.HasFlag(name) {
			return true
		}
	}

	return false
}
