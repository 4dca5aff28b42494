package argbind

import (
	"errors"
	"strings"
	"testing"

	"github.com/napalu/argbind/errs"
	"github.com/napalu/argbind/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flagPair struct {
	name, value string
}

func flagPairs(p *ParsedArguments) []flagPair {
	var pairs []flagPair
	_ = p.EachFlag(func(name, value string) error {
		pairs = append(pairs, flagPair{name, value})
		return nil
	})

	return pairs
}

func TestTokenize(t *testing.T) {
	login, err := Describe[Login]()
	require.NoError(t, err)

	tests := []struct {
		name            string
		argv            string
		wantFlags       []flagPair
		wantPositionals []string
		wantBooleans    []string
	}{
		{
			name: "command only",
			argv: "login",
		},
		{
			name:      "flag and value",
			argv:      "login -u bob",
			wantFlags: []flagPair{{"-u", "bob"}},
		},
		{
			name:         "boolean before flag",
			argv:         "login -v -u bob",
			wantFlags:    []flagPair{{"-v", "true"}, {"-u", "bob"}},
			wantBooleans: []string{"-v"},
		},
		{
			name:         "boolean with explicit value",
			argv:         "login --verbose false",
			wantFlags:    []flagPair{{"--verbose", "false"}},
			wantBooleans: []string{"--verbose"},
		},
		{
			name:            "boolean consumes following value",
			argv:            "login -v extra",
			wantFlags:       []flagPair{{"-v", "extra"}},
			wantBooleans:    []string{"-v"},
			wantPositionals: nil,
		},
		{
			name:      "non boolean without value",
			argv:      "login -u",
			wantFlags: []flagPair{{"-u", ""}},
		},
		{
			name:      "unknown flag is kept",
			argv:      "login -x 1",
			wantFlags: []flagPair{{"-x", "1"}},
		},
		{
			name:            "positionals anywhere",
			argv:            "login a -u bob b c",
			wantFlags:       []flagPair{{"-u", "bob"}},
			wantPositionals: []string{"a", "b", "c"},
		},
		{
			name:      "repeated flag moves to its last position",
			argv:      "login -u alice --retries 1 -u bob",
			wantFlags: []flagPair{{"--retries", "1"}, {"-u", "bob"}},
		},
		{
			name:      "negative number reads as a flag",
			argv:      "login --retries -1",
			wantFlags: []flagPair{{"--retries", ""}, {"-1", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Tokenize(login, strings.Fields(tt.argv))
			require.NoError(t, err)

			assert.Equal(t, strings.Fields(tt.argv)[0], parsed.Command)
			assert.Equal(t, tt.wantFlags, flagPairs(parsed))
			assert.Equal(t, tt.wantPositionals, parsed.Positionals)

			var booleans []string
			for name := range parsed.Booleans {
				booleans = append(booleans, name)
			}
			assert.ElementsMatch(t, tt.wantBooleans, booleans)
		})
	}
}

func TestTokenize_Errors(t *testing.T) {
	login, err := Describe[Login]()
	require.NoError(t, err)

	_, err = Tokenize(login, nil)
	assert.True(t, errors.Is(err, errs.ErrEmptyInput))

	_, err = Tokenize(login, []string{"-u", "bob"})
	require.True(t, errors.Is(err, errs.ErrCommandMismatch))
	var pe *errs.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "-u", pe.Token)
	assert.Equal(t, `command login|l: "-u" is not a name of command login|l`, err.Error())
}

func TestParsedArguments_Accessors(t *testing.T) {
	login, err := Describe[Login]()
	require.NoError(t, err)

	parsed, err := Tokenize(login, strings.Fields("login --retries 4 -u bob"))
	require.NoError(t, err)

	v, ok := parsed.Flag("-u")
	assert.True(t, ok)
	assert.Equal(t, "bob", v)
	_, ok = parsed.Flag("--user")
	assert.False(t, ok)
	assert.True(t, parsed.HasFlag("--retries"))
	assert.Equal(t, []string{"--retries", "-u"}, parsed.FlagNames())

	stop := errors.New("stop")
	var visited []string
	err = parsed.EachFlag(func(name, _ string) error {
		visited = append(visited, name)
		return stop
	})
	assert.Same(t, stop, err)
	assert.Equal(t, []string{"--retries"}, visited)
}

func FuzzTokenize(f *testing.F) {
	seeds := []string{
		"login",
		"login -u bob",
		"login -v -u bob extra",
		"l --user 'quoted value' -v false",
		"login -- - --- a b",
		"login -u=bob --retries -3",
		"login \"-v\" '' -u",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	login, err := Describe[Login]()
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, input string) {
		args, err := parse.Split(input)
		if err != nil {
			return
		}
		argv := append([]string{"login"}, args...)

		parsed, err := Tokenize(login, argv)
		if err != nil {
			t.Fatalf("tokenize %q: %v", argv, err)
		}

		consumed := len(parsed.Positionals)
		for _, p := range parsed.Positionals {
			if strings.HasPrefix(p, "-") {
				t.Errorf("positional %q starts with '-'", p)
			}
		}
		for _, name := range parsed.FlagNames() {
			if !strings.HasPrefix(name, "-") {
				t.Errorf("flag %q does not start with '-'", name)
			}
			if _, ok := parsed.Booleans[name]; ok != login.IsBoolean(name) {
				t.Errorf("flag %q: boolean mismatch", name)
			}
		}

		for _, a := range args {
			if strings.HasPrefix(a, "-") {
				consumed++
			}
		}
		if consumed > len(args) {
			t.Errorf("%q: more tokens accounted for than given", argv)
		}

		// positionals keep their input order
		i := 0
		for _, a := range args {
			if i < len(parsed.Positionals) && a == parsed.Positionals[i] {
				i++
			}
		}
		if i != len(parsed.Positionals) {
			t.Errorf("%q: positionals %q out of order", argv, parsed.Positionals)
		}
	})
}
