package argbind

import (
	"io"

	"github.com/napalu/argbind/convert"
	"github.com/napalu/argbind/errs"
	"github.com/napalu/argbind/i18n"
	"golang.org/x/text/language"
)

// NewParser allows initialization of Parser using option functions. The caller should always
// test for error on return because Parser will be nil when an error occurs during
// initialization.
//
// Configuration example:
//
//	parser, err := NewParser(
//		WithRegistry(registry),
//		WithNamedConverter("account", parseAccount),
//		WithItemSeparator(";"),
//		WithLanguage(language.MustParse("zh-CN")))
func NewParser(configs ...ConfigureParserFunc) (*Parser, error) {
	p := newParser()

	var err error
	for _, config := range configs {
		config(p, &err)
		if err != nil {
			return nil, errs.ErrConfiguringParser.Wrap(err)
		}
	}

	if !p.bundle.Supports(p.lang) {
		return nil, errs.ErrConfiguringParser.Wrap(errs.ErrLanguageUnavailable.WithArgs(p.lang.String()))
	}
	if p.renderer == nil {
		p.renderer = NewRenderer(p.bundle, p.lang)
	}

	return p, nil
}

// WithRegistry sets the converter registry. Defaults to convert.Default().
func WithRegistry(registry *convert.Registry) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		if registry == nil {
			*err = errs.ErrNilOption.WithArgs("registry")
			return
		}
		p.registry = registry
	}
}

// WithNamedConverter makes fn available to parameters declaring converter:name. Converters
// set on the parser take precedence over the registry's named converters.
func WithNamedConverter(name string, fn convert.Func) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		if fn == nil {
			*err = errs.ErrNilOption.WithArgs("converter " + name)
			return
		}
		p.named[name] = fn
	}
}

// WithItemSeparator sets the separator of collection and map items. Defaults to ",".
func WithItemSeparator(separator string) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		if separator == "" {
			*err = errs.ErrEmptySeparator.WithArgs("item")
			return
		}
		p.itemSeparator = separator
	}
}

// WithKeyValueSeparator sets the separator between a map key and its value. Defaults to "=".
func WithKeyValueSeparator(separator string) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		if separator == "" {
			*err = errs.ErrEmptySeparator.WithArgs("key/value")
			return
		}
		p.keyValueSeparator = separator
	}
}

// WithLanguage sets the language of help text and translated errors
func WithLanguage(lang language.Tag) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.lang = lang
	}
}

// WithBundle replaces the translation bundle. Defaults to i18n.Default().
func WithBundle(bundle *i18n.Bundle) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		if bundle == nil {
			*err = errs.ErrNilOption.WithArgs("bundle")
			return
		}
		p.bundle = bundle
	}
}

// WithRenderer replaces the help renderer
func WithRenderer(renderer Renderer) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		if renderer == nil {
			*err = errs.ErrNilOption.WithArgs("renderer")
			return
		}
		p.renderer = renderer
	}
}

// WithStdout sets the writer help is printed to. Defaults to os.Stdout.
func WithStdout(w io.Writer) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		if w == nil {
			*err = errs.ErrNilOption.WithArgs("stdout")
			return
		}
		p.stdout = w
	}
}

// WithStderr sets the writer errors are printed to. Defaults to os.Stderr.
func WithStderr(w io.Writer) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		if w == nil {
			*err = errs.ErrNilOption.WithArgs("stderr")
			return
		}
		p.stderr = w
	}
}
