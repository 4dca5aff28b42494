package argbind

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/napalu/argbind/convert"
	"github.com/napalu/argbind/errs"
	"github.com/napalu/argbind/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewParser_Defaults(t *testing.T) {
	p, err := NewParser()
	require.NoError(t, err)

	assert.Same(t, convert.Default(), p.registry)
	assert.Same(t, i18n.Default(), p.bundle)
	assert.Equal(t, language.English, p.lang)
	assert.Equal(t, ",", p.itemSeparator)
	assert.Equal(t, "=", p.keyValueSeparator)
	assert.NotNil(t, p.renderer)
}

func TestNewParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		config  ConfigureParserFunc
		wantErr error
	}{
		{"nil registry", WithRegistry(nil), errs.ErrNilOption},
		{"nil converter", WithNamedConverter("x", nil), errs.ErrNilOption},
		{"empty item separator", WithItemSeparator(""), errs.ErrEmptySeparator},
		{"empty key/value separator", WithKeyValueSeparator(""), errs.ErrEmptySeparator},
		{"nil bundle", WithBundle(nil), errs.ErrNilOption},
		{"nil renderer", WithRenderer(nil), errs.ErrNilOption},
		{"nil stdout", WithStdout(nil), errs.ErrNilOption},
		{"nil stderr", WithStderr(nil), errs.ErrNilOption},
		{"unavailable language", WithLanguage(language.German), errs.ErrLanguageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParser(tt.config)
			assert.Nil(t, p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrConfiguringParser), "got %v", err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestNewParser_LanguageFromCustomBundle(t *testing.T) {
	bundle, err := i18n.NewBundle()
	require.NoError(t, err)

	_, err = NewParser(WithBundle(bundle), WithLanguage(language.French))
	require.True(t, errors.Is(err, errs.ErrLanguageUnavailable))
	assert.Equal(t, "error configuring parser: language fr is not available", err.Error())
}

func TestWithNamedConverter_Precedence(t *testing.T) {
	reg := convert.NewRegistry()
	convert.RegisterEnum(reg, map[string]TransType{"REPAY": Repay, "LOAN": Loan})
	convert.RegisterNamed(reg, "account", func(raw string) (Account, error) {
		return Account{No: "registry", Name: raw}, nil
	})

	argv := strings.Fields("trans -A 1@x -t LOAN -a 1")

	trans, err := Parse[Trans](argv, WithRegistry(reg))
	require.NoError(t, err)
	assert.Equal(t, Account{No: "registry", Name: "1@x"}, trans.Account)

	trans, err = Parse[Trans](argv, WithRegistry(reg), WithNamedConverter("account", parseAccount))
	require.NoError(t, err)
	assert.Equal(t, Account{No: "1", Name: "x"}, trans.Account)
}

func TestNewParser_TranslateError(t *testing.T) {
	var stderr bytes.Buffer
	p, err := NewParser(WithLanguage(language.MustParse("zh-CN")), WithStderr(&stderr))
	require.NoError(t, err)

	assert.Equal(t, "", p.TranslateError(nil))
	assert.Equal(t, "缺少必填参数 -x", p.TranslateError(errs.ErrMissingRequiredParameter.WithArgs("-x")))
	assert.Equal(t, "plain", p.TranslateError(errors.New("plain")))

	p.PrintError(errs.NewParseError([]string{"get"}, "", errs.ErrMissingRequiredParameter.WithArgs("-k")))
	assert.Equal(t, "命令 get: 缺少必填参数 -k\n", stderr.String())
}
