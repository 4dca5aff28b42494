package parse

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/napalu/argbind/types"
)

const (
	TagKey        = "argbind"
	PatternTagKey = "pattern"
	RuleTagKey    = "rule"
)

const (
	errInvalidFormat = "invalid tag format in field %s: %s"
	errInvalidKind   = "invalid kind in field %s: %s (must be 'command', 'param' or 'vars')"
	errDuplicateKey  = "duplicate key '%s' in field %s"
	errUnknownKey    = "unrecognized key '%s' in field %s"
	errBothPatterns  = "field %s declares both 'accepted' and a '" + PatternTagKey + "' tag"
)

// UnmarshalTagFormat parses the value of an argbind struct tag. Items are separated by ';'
// and have the form key:value. A ';' inside braces or preceded by a backslash does not
// separate items.
func UnmarshalTagFormat(tag string, field reflect.StructField) (*types.TagConfig, error) {
	config := &types.TagConfig{}
	seen := make(map[string]bool)

	for _, part := range splitItems(tag) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		key, value, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf(errInvalidFormat, field.Name, part)
		}
		key = strings.TrimSpace(key)
		if seen[key] {
			return nil, fmt.Errorf(errDuplicateKey, key, field.Name)
		}
		seen[key] = true

		switch key {
		case "kind":
			switch types.Kind(value) {
			case types.KindCommand, types.KindParam, types.KindVars, types.KindEmpty:
				config.Kind = types.Kind(value)
			default:
				return nil, fmt.Errorf(errInvalidKind, field.Name, value)
			}
		case "names":
			config.Names = Names(value)
		case "desc":
			config.Description = value
		case "required":
			boolVal, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("invalid 'required' value in field %s: %w", field.Name, err)
			}
			config.Required = boolVal
		case "accepted":
			pv, err := PatternValue(value)
			if err != nil {
				return nil, fmt.Errorf("invalid 'accepted' value in field %s: %w", field.Name, err)
			}
			config.Accepted = pv
		case "converter":
			config.Converter = strings.TrimSpace(value)
		case "default":
			v := value
			config.Default = &v
		default:
			return nil, fmt.Errorf(errUnknownKey, key, field.Name)
		}
	}

	pv, err := standalonePattern(field)
	if err != nil {
		return nil, err
	}
	if pv != nil {
		if config.Accepted != nil {
			return nil, fmt.Errorf(errBothPatterns, field.Name)
		}
		config.Accepted = pv
	}

	if config.Kind == types.KindEmpty {
		config.Kind = types.KindParam
	}

	return config, nil
}

// Names splits a '|'-separated name list, dropping blanks
func Names(value string) []string {
	var names []string
	for _, n := range strings.Split(value, "|") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	return names
}

// HasTags reports whether field carries any tag read by argbind
func HasTags(field reflect.StructField) bool {
	for _, key := range []string{TagKey, PatternTagKey, RuleTagKey} {
		if _, ok := field.Tag.Lookup(key); ok {
			return true
		}
	}

	return false
}

// standalonePattern reads the pattern and rule struct tags, which avoid the escaping
// needed inside an 'accepted' item
func standalonePattern(field reflect.StructField) (*types.PatternValue, error) {
	pattern, ok := field.Tag.Lookup(PatternTagKey)
	if !ok {
		if _, hasRule := field.Tag.Lookup(RuleTagKey); hasRule {
			return nil, fmt.Errorf("field %s declares a '%s' tag without a '%s' tag", field.Name, RuleTagKey, PatternTagKey)
		}
		return nil, nil
	}
	if pattern == "" {
		return nil, fmt.Errorf("empty '%s' tag in field %s", PatternTagKey, field.Name)
	}

	return &types.PatternValue{
		Pattern:     pattern,
		Description: field.Tag.Get(RuleTagKey),
	}, nil
}

func splitItems(tag string) []string {
	var (
		parts   []string
		current strings.Builder
		depth   int
		escaped bool
	)

	for i := 0; i < len(tag); i++ {
		ch := tag[i]
		if escaped {
			if ch != ';' {
				current.WriteByte('\\')
			}
			current.WriteByte(ch)
			escaped = false
			continue
		}

		switch ch {
		case '\\':
			escaped = true
		case '{':
			depth++
			current.WriteByte(ch)
		case '}':
			if depth > 0 {
				depth--
			}
			current.WriteByte(ch)
		case ';':
			if depth == 0 {
				parts = append(parts, current.String())
				current.Reset()
				continue
			}
			current.WriteByte(ch)
		default:
			current.WriteByte(ch)
		}
	}
	if escaped {
		current.WriteByte('\\')
	}
	parts = append(parts, current.String())

	return parts
}
