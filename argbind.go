// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT licensee
// which can be found in the LICENSE file.

// Package argbind binds command-line arguments to struct fields.
//
// A schema is a struct type. A blank field of type Cmd declares the command and its names;
// tagged fields declare parameters (flags) and at most one field receives the positional
// values ("vars"):
//
//	type Trans struct {
//		_      argbind.Cmd     `argbind:"names:trans|t;desc:account operations"`
//		Type   TransType       `argbind:"names:-t|--type;desc:operation type;required:true"`
//		Amount decimal.Decimal `argbind:"names:-a|--amount;required:true" pattern:"\\d+(\\.\\d{1,2})?" rule:"at most two decimals"`
//		Orders []int64         `argbind:"names:-o|--orders"`
//		Ids    []int64         `argbind:"kind:vars;desc:id list"`
//	}
//
//	trans, err := argbind.Parse[Trans](os.Args[1:])
//
// The argument vector starts with a command name, followed by flags and positional values
// in any order. A flag's value is the next token unless that token starts with '-'. Values
// are converted with the converter registry (see package convert), which covers the basic
// types, decimals, dates and times, one level of collections and maps, enums and any type
// implementing encoding.TextUnmarshaler.
//
// Help text is derived from the same declarations and can be rendered in every language of
// the i18n bundle.
package argbind

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/napalu/argbind/convert"
	"github.com/napalu/argbind/errs"
	"github.com/napalu/argbind/i18n"
	"github.com/napalu/argbind/internal/parse"
	"golang.org/x/text/language"
)

func newParser() *Parser {
	return &Parser{
		registry:          convert.Default(),
		named:             map[string]convert.Func{},
		itemSeparator:     convert.DefaultItemSeparator,
		keyValueSeparator: convert.DefaultKeyValueSeparator,
		bundle:            i18n.Default(),
		lang:              language.English,
		stdout:            os.Stdout,
		stderr:            os.Stderr,
	}
}

// Parse binds argv to a new T
func Parse[T any](argv []string, configs ...ConfigureParserFunc) (*T, error) {
	b, err := NewBinder[T](configs...)
	if err != nil {
		return nil, err
	}

	return b.Parse(argv)
}

// ParseString splits cmdLine with shell quoting rules and binds the result to a new T
func ParseString[T any](cmdLine string, configs ...ConfigureParserFunc) (*T, error) {
	b, err := NewBinder[T](configs...)
	if err != nil {
		return nil, err
	}

	return b.ParseString(cmdLine)
}

// ParseSchema tokenizes argv, validates it against s, converts every value and returns a
// pointer to a new instance of s.Type
func (p *Parser) ParseSchema(s *Schema, argv []string) (any, error) {
	v, err := p.parse(s, argv)
	if err != nil {
		return nil, err
	}

	return v.Interface(), nil
}

func (p *Parser) parse(s *Schema, argv []string) (reflect.Value, error) {
	parsed, err := Tokenize(s, argv)
	if err != nil {
		return reflect.Value{}, err
	}
	if err = Validate(s, parsed); err != nil {
		return reflect.Value{}, err
	}
	bound, err := p.Bind(s, parsed)
	if err != nil {
		return reflect.Value{}, err
	}

	return p.Commit(s, bound), nil
}

// Help renders the help text of s in the parser's language
func (p *Parser) Help(s *Schema) string {
	return renderHelp(s, p.renderer)
}

// HelpIn renders the help text of s in lang with the parser's bundle
func (p *Parser) HelpIn(s *Schema, lang language.Tag) string {
	return renderHelp(s, NewRenderer(p.bundle, lang))
}

// PrintHelp writes the help text of s to w, or to the parser's stdout when w is nil
func (p *Parser) PrintHelp(s *Schema, w io.Writer) error {
	if w == nil {
		w = p.stdout
	}
	_, err := io.WriteString(w, p.Help(s))

	return err
}

// TranslateError renders err in the parser's language. Errors that are not translatable
// are rendered with their Error method.
func (p *Parser) TranslateError(err error) string {
	if err == nil {
		return ""
	}
	if tr, ok := err.(i18n.Translator); ok {
		return tr.Translate(p.bundle, p.lang)
	}

	return err.Error()
}

// PrintError writes the translated err to the parser's stderr
func (p *Parser) PrintError(err error) {
	if err != nil {
		_, _ = fmt.Fprintln(p.stderr, p.TranslateError(err))
	}
}

// NewBinder extracts the schema of T once and returns a Binder parsing with the given
// options
func NewBinder[T any](configs ...ConfigureParserFunc) (*Binder[T], error) {
	s, err := Describe[T]()
	if err != nil {
		return nil, err
	}
	p, err := NewParser(configs...)
	if err != nil {
		return nil, err
	}

	return &Binder[T]{parser: p, schema: s}, nil
}

// Parse binds argv to a new T
func (b *Binder[T]) Parse(argv []string) (*T, error) {
	v, err := b.parser.parse(b.schema, argv)
	if err != nil {
		return nil, err
	}

	return v.Interface().(*T), nil
}

// ParseString splits cmdLine with shell quoting rules and binds the result to a new T
func (b *Binder[T]) ParseString(cmdLine string) (*T, error) {
	argv, err := parse.Split(cmdLine)
	if err != nil {
		return nil, errs.NewParseError(b.schema.Command.Names, cmdLine, err)
	}

	return b.Parse(argv)
}

// Help renders the help text in the binder's language
func (b *Binder[T]) Help() string {
	return b.parser.Help(b.schema)
}

// HelpIn renders the help text in lang
func (b *Binder[T]) HelpIn(lang language.Tag) string {
	return b.parser.HelpIn(b.schema, lang)
}

// PrintHelp writes the help text to w, or to the binder's stdout when w is nil
func (b *Binder[T]) PrintHelp(w io.Writer) error {
	return b.parser.PrintHelp(b.schema, w)
}

// PrintError writes the translated err to the binder's stderr
func (b *Binder[T]) PrintError(err error) {
	b.parser.PrintError(err)
}

func (b *Binder[T]) Schema() *Schema {
	return b.schema
}

func (b *Binder[T]) Parser() *Parser {
	return b.parser
}
