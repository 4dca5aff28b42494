package errs

import (
	"strings"

	"github.com/napalu/argbind/i18n"
	"golang.org/x/text/language"
)

// ParseError records where a parse failed. It is a snapshot: Commands holds the names of
// the command being parsed and Token the offending token, if any.
type ParseError struct {
	Commands []string
	Token    string
	Err      error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	if len(e.Commands) > 0 {
		sb.WriteString(i18n.Default().T(ErrParseKey, strings.Join(e.Commands, "|")))
		sb.WriteString(": ")
	}
	if e.Err != nil {
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

// Translate renders the error in lang, prefixed with the command names
func (e *ParseError) Translate(b *i18n.Bundle, lang language.Tag) string {
	var sb strings.Builder
	if len(e.Commands) > 0 {
		sb.WriteString(b.TL(lang, ErrParseKey, strings.Join(e.Commands, "|")))
		sb.WriteString(": ")
	}
	if tr, ok := e.Err.(i18n.Translator); ok {
		sb.WriteString(tr.Translate(b, lang))
	} else if e.Err != nil {
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError wraps err with the command context. A nil err yields nil.
func NewParseError(commands []string, token string, err error) error {
	if err == nil {
		return nil
	}
	names := make([]string, len(commands))
	copy(names, commands)

	return &ParseError{Commands: names, Token: token, Err: err}
}
