// Package i18n provides the translation bundle used for error messages and help text.
//
// The system bundle is built from the locales embedded in this package (en, zh-CN) and is
// returned by Default. Parsers may be given their own bundle, in which case only that
// parser is affected.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.json
var defaultLocales embed.FS

var (
	ErrInvalidLanguage                    = errors.New("invalid language in filename")
	ErrDefaultLanguageTranslationsMissing = errors.New("default language translations missing")
	ErrInvalidTranslations                = errors.New("invalid translations")
	ErrEmptyTranslations                  = errors.New("empty translations")
	ErrFailedToSetString                  = errors.New("failed to set string")
	ErrLanguageNotFound                   = errors.New("language not found")
	ErrExtraKey                           = errors.New("extra key")
	ErrMissingKey                         = errors.New("missing key")
)

// Bundle holds translations per language and the x/text printers that format them.
type Bundle struct {
	mu           sync.RWMutex
	defaultLang  language.Tag
	translations map[language.Tag]map[string]string
	catalog      *catalog.Builder
	printers     map[language.Tag]*message.Printer
	supported    []language.Tag
	matcher      language.Matcher
}

var (
	defaultBundle     *Bundle
	defaultBundleOnce sync.Once
)

// Default returns the system bundle built from the embedded locales.
func Default() *Bundle {
	defaultBundleOnce.Do(func() {
		var err error
		defaultBundle, err = NewBundle()
		if err != nil {
			panic("failed to load embedded locales: " + err.Error())
		}
	})

	return defaultBundle
}

// NewBundle returns a fresh bundle loaded with the embedded locales.
func NewBundle() (*Bundle, error) {
	return NewBundleWithFS(defaultLocales, "locales")
}

// NewEmptyBundle returns a bundle without translations. Its default language is English.
func NewEmptyBundle() *Bundle {
	return &Bundle{
		defaultLang:  language.English,
		translations: make(map[language.Tag]map[string]string),
		catalog:      catalog.NewBuilder(),
		printers:     make(map[language.Tag]*message.Printer),
		supported:    []language.Tag{language.English},
		matcher:      language.NewMatcher([]language.Tag{language.English}),
	}
}

// NewBundleWithFS loads every <lang>.json file found in dirPrefix. The default language
// (English unless lang is given) must be among them.
func NewBundleWithFS(fs embed.FS, dirPrefix string, lang ...language.Tag) (*Bundle, error) {
	b := NewEmptyBundle()
	if len(lang) > 0 {
		b.defaultLang = lang[0]
	}

	if err := b.LoadFromFS(fs, dirPrefix); err != nil {
		return nil, err
	}

	if _, ok := b.translations[b.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLanguageTranslationsMissing, b.defaultLang)
	}

	return b, nil
}

// T translates key in the default language.
func (b *Bundle) T(key string, args ...interface{}) string {
	return b.TL(b.GetDefaultLanguage(), key, args...)
}

// TL translates key in lang, falling back to the closest supported language and then to
// the default language. Unknown keys are returned as-is.
func (b *Bundle) TL(lang language.Tag, key string, args ...interface{}) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.hasKey(lang, key) {
		lang = b.closest(lang)
		if !b.hasKey(lang, key) {
			lang = b.defaultLang
			if !b.hasKey(lang, key) {
				return key
			}
		}
	}

	if p, ok := b.printers[lang]; ok {
		return p.Sprintf(key, args...)
	}

	return key
}

// AddLanguage merges translations into lang. Languages other than the default must carry
// exactly the keys of the default language.
func (b *Bundle) AddLanguage(lang language.Tag, translations map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing := b.translations[lang]
	merged := make(map[string]string, len(existing)+len(translations))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range translations {
		merged[k] = v
	}

	if lang != b.defaultLang && existing == nil {
		if errs := b.validateLanguage(lang, merged); len(errs) > 0 {
			return fmt.Errorf("%w: %s: %v", ErrInvalidTranslations, lang, errs)
		}
	}

	for key, value := range translations {
		if err := b.catalog.SetString(lang, key, value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFailedToSetString, key, err)
		}
	}

	b.translations[lang] = merged
	b.printers[lang] = message.NewPrinter(lang, message.Catalog(b.catalog))
	b.updateMatcher()

	return nil
}

// LoadFromString loads a JSON object of key/translation pairs for lang.
func (b *Bundle) LoadFromString(lang language.Tag, jsonStr string) error {
	var translations map[string]string
	if err := json.Unmarshal([]byte(jsonStr), &translations); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return b.AddLanguage(lang, translations)
}

// LoadFromFS loads every JSON locale file in dirPrefix. The default language is loaded first
// so that the remaining languages can be validated against it.
func (b *Bundle) LoadFromFS(fs embed.FS, dirPrefix string) error {
	entries, err := fs.ReadDir(dirPrefix)
	if err != nil {
		return err
	}

	var deferred []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang, err := language.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidLanguage, entry.Name())
		}
		if lang != b.defaultLang {
			deferred = append(deferred, entry.Name())
			continue
		}
		if err := b.loadFile(fs, lang, dirPrefix+"/"+entry.Name()); err != nil {
			return err
		}
	}

	for _, name := range deferred {
		lang, _ := language.Parse(strings.TrimSuffix(name, ".json"))
		if err := b.loadFile(fs, lang, dirPrefix+"/"+name); err != nil {
			return err
		}
	}

	return nil
}

// SetDefaultLanguage changes the fallback language. Unsupported languages are ignored.
func (b *Bundle) SetDefaultLanguage(lang language.Tag) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.translations[lang]; ok || len(b.translations) == 0 {
		b.defaultLang = lang
	}
}

func (b *Bundle) GetDefaultLanguage() language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.defaultLang
}

// HasLanguage reports whether translations for lang were loaded.
func (b *Bundle) HasLanguage(lang language.Tag) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.translations[lang]

	return ok
}

// Supports reports whether lang or a close variant of it (zh-Hans for zh-CN, for instance)
// was loaded
func (b *Bundle) Supports(lang language.Tag) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if _, ok := b.translations[lang]; ok {
		return true
	}
	_, _, confidence := b.matcher.Match(lang)

	return confidence != language.No
}

// Languages returns the loaded languages sorted by tag.
func (b *Bundle) Languages() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	langs := make([]language.Tag, 0, len(b.translations))
	for lang := range b.translations {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i].String() < langs[j].String() })

	return langs
}

// Message returns the untranslated format string for key in lang, or key itself.
func (b *Bundle) Message(lang language.Tag, key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if msg, ok := b.translations[lang][key]; ok {
		return msg
	}
	if msg, ok := b.translations[b.defaultLang][key]; ok {
		return msg
	}

	return key
}

func (b *Bundle) hasKey(lang language.Tag, key string) bool {
	_, ok := b.translations[lang][key]
	return ok
}

func (b *Bundle) loadFile(fs embed.FS, lang language.Tag, path string) error {
	data, err := fs.ReadFile(path)
	if err != nil {
		return err
	}

	return b.LoadFromString(lang, string(data))
}

// closest returns the loaded language matching lang best, or the default language
func (b *Bundle) closest(lang language.Tag) language.Tag {
	_, index, confidence := b.matcher.Match(lang)
	if confidence == language.No || index >= len(b.supported) {
		return b.defaultLang
	}

	return b.supported[index]
}

func (b *Bundle) updateMatcher() {
	supported := []language.Tag{b.defaultLang}
	for lang := range b.translations {
		if lang != b.defaultLang {
			supported = append(supported, lang)
		}
	}
	b.supported = supported
	b.matcher = language.NewMatcher(supported)
}

func (b *Bundle) validateLanguage(lang language.Tag, translations map[string]string) []error {
	reference, ok := b.translations[b.defaultLang]
	if !ok {
		return nil
	}

	var e []error
	if len(translations) == 0 {
		e = append(e, fmt.Errorf("%w: %s", ErrEmptyTranslations, lang))
	}
	for key := range reference {
		if _, exists := translations[key]; !exists {
			e = append(e, fmt.Errorf("%w: %s: %q", ErrMissingKey, lang, key))
		}
	}
	for key := range translations {
		if _, exists := reference[key]; !exists {
			e = append(e, fmt.Errorf("%w: %s: %q", ErrExtraKey, lang, key))
		}
	}

	return e
}
