package i18n

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// TranslatableError represents an error whose message is looked up by key in a Bundle
type TranslatableError interface {
	error
	Key() string
	Args() []interface{}
	Unwrap() error
	WithArgs(args ...interface{}) TranslatableError
	Wrap(err error) TranslatableError
	Translate(b *Bundle, lang language.Tag) string
}

// Translator is implemented by errors that can render themselves in a given language
type Translator interface {
	Translate(b *Bundle, lang language.Tag) string
}

// MessageProvider supplies the format string used by Error
type MessageProvider interface {
	GetMessage(key string) string
}

// TrError is a translatable error with optional format arguments and a wrapped cause.
// Copies made with WithArgs and Wrap share the sentinel of the error they were made from,
// so errors.Is matches them against the package-level value.
//
//	err := ErrValidationFailed.WithArgs("-a", "abc", "digits only")
//	err = err.Wrap(cause)
type TrError struct {
	sentinel        error
	key             string
	args            []interface{}
	wrapped         error
	messageProvider MessageProvider
}

// DefaultMessageProvider reads messages from a bundle in a fixed language
type DefaultMessageProvider struct {
	bundle *Bundle
	lang   language.Tag
}

func (p *DefaultMessageProvider) GetMessage(key string) string {
	return p.bundle.Message(p.lang, key)
}

// NewError creates a new sentinel translatable error
func NewError(key string) *TrError {
	sentinel := errors.New(key)
	return &TrError{
		sentinel:        sentinel,
		key:             key,
		messageProvider: getDefaultProvider(),
	}
}

// Error returns the English message, formatted with args if provided
func (e *TrError) Error() string {
	msg := e.messageProvider.GetMessage(e.key)
	if len(e.args) > 0 {
		msg = fmt.Sprintf(msg, e.args...)
	}

	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.wrapped)
	}
	return msg
}

// Translate renders the error chain in lang. Wrapped translatable errors are translated too;
// any other wrapped error contributes its Error text.
func (e *TrError) Translate(b *Bundle, lang language.Tag) string {
	msg := b.TL(lang, e.key, e.args...)
	if e.wrapped == nil {
		return msg
	}

	var sb strings.Builder
	sb.WriteString(msg)
	sb.WriteString(": ")
	if tr, ok := e.wrapped.(Translator); ok {
		sb.WriteString(tr.Translate(b, lang))
	} else {
		sb.WriteString(e.wrapped.Error())
	}

	return sb.String()
}

// WithArgs returns a copy of the error with format arguments
func (e *TrError) WithArgs(args ...interface{}) TranslatableError {
	return &TrError{
		sentinel:        e.sentinel,
		key:             e.key,
		args:            args,
		wrapped:         e.wrapped,
		messageProvider: e.messageProvider,
	}
}

// Wrap returns a copy of the error wrapping err
func (e *TrError) Wrap(err error) TranslatableError {
	return &TrError{
		sentinel:        e.sentinel,
		key:             e.key,
		args:            e.args,
		wrapped:         err,
		messageProvider: e.messageProvider,
	}
}

// Is implements errors.Is by sentinel identity
func (e *TrError) Is(target error) bool {
	if t, ok := target.(*TrError); ok {
		return e.sentinel == t.sentinel
	}
	return target == e.sentinel || target == e
}

// Key returns the translation key
func (e *TrError) Key() string {
	return e.key
}

// Args returns the format arguments
func (e *TrError) Args() []interface{} {
	return e.args
}

// Unwrap returns the wrapped error
func (e *TrError) Unwrap() error {
	return e.wrapped
}

var (
	defaultProvider    MessageProvider
	defaultProviderMux sync.RWMutex
)

// SetDefaultMessageProvider replaces the provider used by errors created afterwards
func SetDefaultMessageProvider(p MessageProvider) {
	defaultProviderMux.Lock()
	defer defaultProviderMux.Unlock()
	defaultProvider = p
}

func getDefaultProvider() MessageProvider {
	defaultProviderMux.RLock()
	if defaultProvider != nil {
		defer defaultProviderMux.RUnlock()
		return defaultProvider
	}
	defaultProviderMux.RUnlock()

	defaultProviderMux.Lock()
	defer defaultProviderMux.Unlock()

	if defaultProvider == nil {
		defaultProvider = &DefaultMessageProvider{
			bundle: Default(),
			lang:   language.English,
		}
	}
	return defaultProvider
}
