package argbind

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/napalu/argbind/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaCmpOpts = cmp.Options{
	cmp.Comparer(func(a, b reflect.Type) bool { return a == b }),
	cmp.Comparer(func(a, b *regexp.Regexp) bool {
		if a == nil || b == nil {
			return a == b
		}
		return a.String() == b.String()
	}),
}

type Common struct {
	Verbose bool   `argbind:"desc:verbose output"`
	Ignored string // untagged fields are not parameters
}

type Deploy struct {
	_ Cmd `argbind:"names:deploy"`
	Common
	Target string   `argbind:"names:--target;required:true"`
	Hosts  []string `argbind:"kind:vars"`
}

type cmdA struct {
	_ Cmd `argbind:"names:a"`
}

type cmdB struct {
	_ Cmd `argbind:"names:b"`
}

func TestExtract_Trans(t *testing.T) {
	s, err := Describe[Trans]()
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeOf(Trans{}), s.Type)
	assert.Equal(t, CommandDescriptor{Names: []string{"trans"}, Description: "account operations"}, s.Command)

	var names [][]string
	for _, p := range s.Parameters {
		names = append(names, p.Names)
	}
	assert.Equal(t, [][]string{
		{"-n", "--name"},
		{"-A", "--account"},
		{"-t", "--type"},
		{"-a", "--amount"},
		{"-o", "--orders"},
		{"-r", "--remark"},
	}, names)

	assert.Equal(t, []RequiredGroup{{"-A", "--account"}, {"-t", "--type"}, {"-a", "--amount"}}, s.RequiredGroups())

	amount, ok := s.Lookup("--amount")
	require.True(t, ok)
	require.NotNil(t, amount.Pattern)
	assert.Equal(t, "at most two decimals", amount.Pattern.Description)
	assert.True(t, amount.Pattern.Matches("0.01"))
	assert.False(t, amount.Pattern.Matches("x0.01"))
	assert.Equal(t, []int{4}, amount.Field.Index)

	account, _ := s.Lookup("-A")
	assert.Equal(t, "account", account.Converter)

	require.NotNil(t, s.Vars)
	assert.Equal(t, "Ids", s.Vars.Field.Name)
	assert.Equal(t, "id list", s.Vars.Description)

	_, ok = s.Lookup("-x")
	assert.False(t, ok)
	assert.Empty(t, s.BooleanNames())
}

func TestExtract_Cached(t *testing.T) {
	s1, err := Describe[Trans]()
	require.NoError(t, err)
	s2, err := Extract(reflect.TypeOf(Trans{}))
	require.NoError(t, err)

	assert.Same(t, s1, s2)
}

func TestExtract_Idempotent(t *testing.T) {
	s1, err := extract(reflect.TypeOf(Trans{}))
	require.NoError(t, err)
	s2, err := extract(reflect.TypeOf(Trans{}))
	require.NoError(t, err)

	assert.NotSame(t, s1, s2)
	if diff := cmp.Diff(s1, s2, schemaCmpOpts, cmp.AllowUnexported(Schema{})); diff != "" {
		t.Errorf("extractions differ (-first +second):\n%s", diff)
	}
}

func TestExtract_Login(t *testing.T) {
	s, err := Describe[Login]()
	require.NoError(t, err)

	assert.True(t, s.IsCommand("login"))
	assert.True(t, s.IsCommand("l"))
	assert.False(t, s.IsCommand("-u"))
	assert.True(t, s.IsBoolean("-v"))
	assert.True(t, s.IsBoolean("--verbose"))
	assert.False(t, s.IsBoolean("-u"))
	assert.Equal(t, map[string]struct{}{"-v": {}, "--verbose": {}}, s.BooleanNames())
	assert.Equal(t, []RequiredGroup{{"-u", "--user"}}, s.RequiredGroups())

	timeout, ok := s.Lookup("--timeout")
	require.True(t, ok)
	require.NotNil(t, timeout.Default)
	assert.Equal(t, "30s", *timeout.Default)
	assert.Nil(t, s.Vars)
}

func TestExtract_Embedded(t *testing.T) {
	s, err := Describe[Deploy]()
	require.NoError(t, err)

	require.Len(t, s.Parameters, 2)
	assert.Equal(t, []string{"--verbose"}, s.Parameters[0].Names)
	assert.Equal(t, []int{1, 0}, s.Parameters[0].Field.Index)
	assert.Equal(t, []string{"--target"}, s.Parameters[1].Names)

	deploy, err := Parse[Deploy](strings.Fields("deploy --verbose --target prod web1 web2"))
	require.NoError(t, err)
	assert.True(t, deploy.Verbose)
	assert.Equal(t, "prod", deploy.Target)
	assert.Equal(t, []string{"web1", "web2"}, deploy.Hosts)
}

func TestExtract_CommandDepth(t *testing.T) {
	type top struct {
		_ Cmd `argbind:"names:top"`
		cmdA
	}
	type both struct {
		cmdA
		cmdB
	}

	s, err := Extract(reflect.TypeOf(top{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"top"}, s.Command.Names)

	s, err = Extract(reflect.TypeOf(struct{ cmdB }{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, s.Command.Names)

	_, err = Extract(reflect.TypeOf(both{}))
	assert.True(t, errors.Is(err, errs.ErrSchema))
	assert.True(t, errors.Is(err, errs.ErrAmbiguousCommand))
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name    string
		typ     reflect.Type
		wantErr error
	}{
		{
			name:    "not a struct",
			typ:     reflect.TypeOf(0),
			wantErr: errs.ErrNotAStruct,
		},
		{
			name:    "nil type",
			typ:     nil,
			wantErr: errs.ErrNotAStruct,
		},
		{
			name: "missing command",
			typ: reflect.TypeOf(struct {
				Name string `argbind:"names:-n"`
			}{}),
			wantErr: errs.ErrMissingCommand,
		},
		{
			name: "command without names",
			typ: reflect.TypeOf(struct {
				_ Cmd `argbind:"desc:nameless"`
			}{}),
			wantErr: errs.ErrNoCommandNames,
		},
		{
			name: "command with parameter keys",
			typ: reflect.TypeOf(struct {
				_ Cmd `argbind:"names:x;required:true"`
			}{}),
			wantErr: errs.ErrInvalidTag,
		},
		{
			name: "command kind on ordinary field",
			typ: reflect.TypeOf(struct {
				_ Cmd    `argbind:"names:x"`
				X string `argbind:"kind:command;names:y"`
			}{}),
			wantErr: errs.ErrInvalidTag,
		},
		{
			name: "duplicate parameter name",
			typ: reflect.TypeOf(struct {
				_ Cmd `argbind:"names:x"`
				A int `argbind:"names:-a"`
				B int `argbind:"names:-a|--b"`
			}{}),
			wantErr: errs.ErrDuplicateParameter,
		},
		{
			name: "multiple vars",
			typ: reflect.TypeOf(struct {
				_ Cmd      `argbind:"names:x"`
				A []string `argbind:"kind:vars"`
				B []string `argbind:"kind:vars"`
			}{}),
			wantErr: errs.ErrMultipleVars,
		},
		{
			name: "vars with names",
			typ: reflect.TypeOf(struct {
				_ Cmd      `argbind:"names:x"`
				A []string `argbind:"kind:vars;names:-a"`
			}{}),
			wantErr: errs.ErrInvalidTag,
		},
		{
			name: "name without dash",
			typ: reflect.TypeOf(struct {
				_ Cmd `argbind:"names:x"`
				A int `argbind:"names:a"`
			}{}),
			wantErr: errs.ErrInvalidParameterName,
		},
		{
			name: "name of dashes only",
			typ: reflect.TypeOf(struct {
				_ Cmd `argbind:"names:x"`
				A int `argbind:"names:--"`
			}{}),
			wantErr: errs.ErrInvalidParameterName,
		},
		{
			name: "unexported tagged field",
			typ: reflect.TypeOf(struct {
				_ Cmd `argbind:"names:x"`
				a int `argbind:"names:-a"`
			}{}),
			wantErr: errs.ErrUnexportedField,
		},
		{
			name: "unknown tag key",
			typ: reflect.TypeOf(struct {
				_ Cmd `argbind:"names:x"`
				A int `argbind:"bogus:1"`
			}{}),
			wantErr: errs.ErrInvalidTag,
		},
		{
			name: "invalid pattern",
			typ: reflect.TypeOf(struct {
				_ Cmd `argbind:"names:x"`
				A int `argbind:"names:-a" pattern:"("`
			}{}),
			wantErr: errs.ErrInvalidPattern,
		},
		{
			name: "nested list",
			typ: reflect.TypeOf(struct {
				_ Cmd     `argbind:"names:x"`
				A [][]int `argbind:"names:-a"`
			}{}),
			wantErr: errs.ErrNestedCollection,
		},
		{
			name: "map of lists",
			typ: reflect.TypeOf(struct {
				_ Cmd              `argbind:"names:x"`
				A map[string][]int `argbind:"names:-a"`
			}{}),
			wantErr: errs.ErrNestedCollection,
		},
		{
			name: "nested vars",
			typ: reflect.TypeOf(struct {
				_ Cmd     `argbind:"names:x"`
				A [][]int `argbind:"kind:vars"`
			}{}),
			wantErr: errs.ErrNestedCollection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Extract(tt.typ)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, errs.ErrSchema), "got %v", err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestExtract_NestedWithConverter(t *testing.T) {
	s, err := Extract(reflect.TypeOf(struct {
		_      Cmd     `argbind:"names:x"`
		Matrix [][]int `argbind:"names:-m;converter:matrix"`
	}{}))
	require.NoError(t, err)
	assert.Equal(t, "matrix", s.Parameters[0].Converter)
}

func TestDerivedName(t *testing.T) {
	assert.Equal(t, "--verbose", DerivedName("Verbose"))
	assert.Equal(t, "--dry-run", DerivedName("DryRun"))
	assert.Equal(t, "--json-data", DerivedName("JSONData"))
	assert.Equal(t, "--user-id", DerivedName("userID"))
}

func transPlainSchema() (*Schema, error) {
	return NewSchema[TransPlain](
		WithCommandDescription("account operations"),
		WithCommand("trans"),
		WithParameter("Name", NewParam(WithNames("-n", "--name"), WithDescription("name"))),
		WithParameter("Account", NewParam(
			WithNames("-A", "--account"),
			WithDescription("account, format id@name"),
			IsRequired(),
			WithConverter("account"))),
		WithParameter("Type", NewParam(
			WithNames("-t", "--type"),
			WithDescription("operation type, REPAY or LOAN"),
			SetRequired(true))),
		WithParameter("Amount", NewParam(
			WithNames("-a", "--amount"),
			WithDescription("amount"),
			IsRequired(),
			WithPattern(`\d+(\.\d{1,2})?`, "at most two decimals"))),
		WithParameter("Orders", NewParam(WithNames("-o", "--orders"), WithDescription("order ids, comma separated"))),
		WithParameter("Remark", NewParam(WithNames("-r", "--remark"), WithDescription("remarks, id=remark,..."))),
		WithVars("Ids", NewVars(WithVarsDescription("id list"))))
}

func TestNewSchema_MatchesTags(t *testing.T) {
	tagged, err := Describe[Trans]()
	require.NoError(t, err)
	built, err := transPlainSchema()
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeOf(TransPlain{}), built.Type)
	if diff := cmp.Diff(tagged.Command, built.Command, schemaCmpOpts); diff != "" {
		t.Errorf("command mismatch (-tagged +built):\n%s", diff)
	}
	if diff := cmp.Diff(tagged.Parameters, built.Parameters, schemaCmpOpts); diff != "" {
		t.Errorf("parameters mismatch (-tagged +built):\n%s", diff)
	}
	if diff := cmp.Diff(tagged.Vars, built.Vars, schemaCmpOpts); diff != "" {
		t.Errorf("vars mismatch (-tagged +built):\n%s", diff)
	}
	assert.Equal(t, tagged.RequiredGroups(), built.RequiredGroups())
	assert.Equal(t, tagged.Help(), built.Help())
}

func TestNewSchema_Parse(t *testing.T) {
	s, err := transPlainSchema()
	require.NoError(t, err)
	p, err := NewParser(transOptions()...)
	require.NoError(t, err)

	v, err := p.ParseSchema(s, strings.Fields("trans -A 7@x -t LOAN --amount 3.5 9"))
	require.NoError(t, err)
	trans := v.(*TransPlain)
	assert.Equal(t, Account{No: "7", Name: "x"}, trans.Account)
	assert.Equal(t, []int64{9}, trans.Ids)
}

func TestNewSchema_DerivedNamesAndDefaults(t *testing.T) {
	type options struct {
		Retries int
		Verbose bool
	}

	shared := NewParam(WithDefault("2"))
	s, err := NewSchema[options](
		WithCommand("opts"),
		WithParameter("Retries", shared),
		WithParameter("Verbose", NewParam()))
	require.NoError(t, err)

	require.Len(t, s.Parameters, 2)
	assert.Equal(t, []string{"--retries"}, s.Parameters[0].Names)
	assert.Empty(t, shared.Names)
	assert.Equal(t, []string{"--verbose"}, s.Parameters[1].Names)
	assert.True(t, s.IsBoolean("--verbose"))

	p, err := NewParser()
	require.NoError(t, err)
	v, err := p.ParseSchema(s, []string{"opts", "--verbose"})
	require.NoError(t, err)
	assert.Equal(t, &options{Retries: 2, Verbose: true}, v)
}

func TestNewSchema_PromotedField(t *testing.T) {
	type withCommon struct {
		Common
	}

	s, err := NewSchema[withCommon](WithCommand("x"), WithParameter("Verbose", NewParam(WithNames("-v"))))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, s.Parameters[0].Field.Index)
}

func TestNewSchema_Errors(t *testing.T) {
	type target struct {
		Name   string
		secret string
		Other  string
	}
	_ = target{}.secret

	tests := []struct {
		name    string
		configs []ConfigureSchemaFunc
		wantErr error
	}{
		{
			name:    "missing command",
			configs: []ConfigureSchemaFunc{WithParameter("Name", NewParam())},
			wantErr: errs.ErrMissingCommand,
		},
		{
			name:    "command without names",
			configs: []ConfigureSchemaFunc{WithCommand()},
			wantErr: errs.ErrNoCommandNames,
		},
		{
			name:    "command declared twice",
			configs: []ConfigureSchemaFunc{WithCommand("a"), WithCommand("b")},
			wantErr: errs.ErrAmbiguousCommand,
		},
		{
			name:    "unknown field",
			configs: []ConfigureSchemaFunc{WithCommand("a"), WithParameter("Missing", NewParam())},
			wantErr: errs.ErrUnknownField,
		},
		{
			name:    "unexported field",
			configs: []ConfigureSchemaFunc{WithCommand("a"), WithParameter("secret", NewParam())},
			wantErr: errs.ErrUnexportedField,
		},
		{
			name: "duplicate name",
			configs: []ConfigureSchemaFunc{
				WithCommand("a"),
				WithParameter("Name", NewParam(WithNames("-n"))),
				WithParameter("Other", NewParam(WithNames("-n"))),
			},
			wantErr: errs.ErrDuplicateParameter,
		},
		{
			name: "invalid pattern",
			configs: []ConfigureSchemaFunc{
				WithCommand("a"),
				WithParameter("Name", NewParam(WithPattern("[", "broken"))),
			},
			wantErr: errs.ErrInvalidPattern,
		},
		{
			name: "multiple vars",
			configs: []ConfigureSchemaFunc{
				WithCommand("a"),
				WithVars("Name", NewVars()),
				WithVars("Other", NewVars()),
			},
			wantErr: errs.ErrMultipleVars,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSchema[target](tt.configs...)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, errs.ErrSchema), "got %v", err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	_, err := NewSchema[int](WithCommand("a"))
	assert.True(t, errors.Is(err, errs.ErrNotAStruct))
}
