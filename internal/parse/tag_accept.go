package parse

import (
	"fmt"
	"strings"

	"github.com/napalu/argbind/types"
)

const (
	errEmptyInput      = "empty %s"
	errMalformedBraces = "malformed braces in: %s"
	errItemFormat      = "expected key:value in: %s"
	errEmptyKey        = "empty key in: %s"
	errUnknownItem     = "unknown key '%s' in: %s"
	errMissingValue    = "missing or empty %s in: %s"
)

// PatternValue parses an accepted value in the form {pattern:<regex>,desc:<rule>}. The desc
// item is optional. The returned value is not compiled.
//
// Escape sequences:
//
//	\,  -> ,
//	\:  -> :
//	\{  -> {
//	\}  -> }
//	\;  -> ;
//	\"  -> "
//	\'  -> '
//	\\  -> \
//
// Any other escaped character keeps its backslash, so regex classes such as \d survive:
//
//	{pattern:\d+(\.\d{1\,2})?,desc:at most two decimals}  -> pattern=`\d+(\.\d{1,2})?`
func PatternValue(input string) (*types.PatternValue, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf(errEmptyInput, "pattern value")
	}
	if !strings.HasPrefix(input, "{") || !strings.HasSuffix(input, "}") || len(input) < 2 {
		return nil, fmt.Errorf(errMalformedBraces, input)
	}
	body := input[1 : len(input)-1]

	items := make(map[string]string, 2)
	var current strings.Builder
	escaped := false

	flush := func() error {
		item := strings.TrimSpace(current.String())
		current.Reset()
		if item == "" {
			return nil
		}
		key, value, found := cutUnescaped(item)
		if !found {
			return fmt.Errorf(errItemFormat, input)
		}
		key = strings.TrimSpace(key)
		switch key {
		case "":
			return fmt.Errorf(errEmptyKey, input)
		case "pattern", "desc":
			items[key] = unescape(strings.TrimSpace(value))
		default:
			return fmt.Errorf(errUnknownItem, key, input)
		}
		return nil
	}

	for i := 0; i < len(body); i++ {
		ch := body[i]
		if escaped {
			current.WriteByte('\\')
			current.WriteByte(ch)
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = true
		case ',':
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			current.WriteByte(ch)
		}
	}
	if escaped {
		current.WriteByte('\\')
	}
	if err := flush(); err != nil {
		return nil, err
	}

	pattern := items["pattern"]
	if pattern == "" {
		return nil, fmt.Errorf(errMissingValue, "pattern", input)
	}

	return &types.PatternValue{
		Pattern:     pattern,
		Description: items["desc"],
	}, nil
}

// cutUnescaped splits item at its first colon not preceded by a backslash
func cutUnescaped(item string) (string, string, bool) {
	for i := 0; i < len(item); i++ {
		switch item[i] {
		case '\\':
			i++
		case ':':
			return item[:i], item[i+1:], true
		}
	}

	return item, "", false
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' || i+1 == len(s) {
			sb.WriteByte(ch)
			continue
		}
		next := s[i+1]
		switch next {
		case ',', ':', '{', '}', ';', '"', '\'', '\\':
			sb.WriteByte(next)
		default:
			sb.WriteByte('\\')
			sb.WriteByte(next)
		}
		i++
	}

	return sb.String()
}
