package argbind

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/iancoleman/strcase"
	"github.com/napalu/argbind/convert"
	"github.com/napalu/argbind/errs"
	"github.com/napalu/argbind/i18n"
	"github.com/napalu/argbind/internal/parse"
	"github.com/napalu/argbind/types"
	"golang.org/x/text/language"
)

var (
	cmdType     = reflect.TypeOf(Cmd{})
	schemaCache sync.Map // reflect.Type -> *Schema
)

// Describe returns the schema of T, extracting it on first use
func Describe[T any]() (*Schema, error) {
	return Extract(convert.TypeFor[T]())
}

// Extract returns the schema declared by the struct tags of t. Schemas are cached per type;
// failed extractions are not.
func Extract(t reflect.Type) (*Schema, error) {
	if t == nil {
		return nil, errs.ErrSchema.WithArgs("<nil>").Wrap(errs.ErrNotAStruct.WithArgs("<nil>"))
	}
	if cached, ok := schemaCache.Load(t); ok {
		return cached.(*Schema), nil
	}

	s, err := extract(t)
	if err != nil {
		return nil, err
	}
	actual, _ := schemaCache.LoadOrStore(t, s)

	return actual.(*Schema), nil
}

func extract(t reflect.Type) (*Schema, error) {
	a := newAssembler(t)
	if t.Kind() != reflect.Struct {
		return nil, a.fail(errs.ErrNotAStruct.WithArgs(t.String()))
	}

	w := &walker{a: a}
	if err := w.walk(t, nil, 0); err != nil {
		return nil, err
	}
	if err := w.resolveCommand(); err != nil {
		return nil, err
	}

	return a.finish()
}

type commandMarker struct {
	depth int
	field reflect.StructField
}

type walker struct {
	a       *assembler
	markers []commandMarker
}

// walk visits the fields of t in declaration order. Untagged embedded structs are walked
// in place, one level deeper.
func (w *walker) walk(t reflect.Type, index []int, depth int) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		path := make([]int, len(index)+1)
		copy(path, index)
		path[len(index)] = i

		if f.Type == cmdType {
			w.markers = append(w.markers, commandMarker{depth: depth, field: f})
			continue
		}

		if !parse.HasTags(f) {
			if f.Anonymous && f.Type.Kind() == reflect.Struct {
				if err := w.walk(f.Type, path, depth+1); err != nil {
					return err
				}
			}
			continue
		}

		if !f.IsExported() {
			return w.a.fail(errs.ErrUnexportedField.WithArgs(f.Name))
		}

		cfg, err := parse.UnmarshalTagFormat(f.Tag.Get(parse.TagKey), f)
		if err != nil {
			return w.a.fail(errs.ErrInvalidTag.WithArgs(f.Name).Wrap(err))
		}
		ref := FieldRef{Name: f.Name, Index: path, Type: f.Type}

		switch cfg.Kind {
		case types.KindCommand:
			return w.a.fail(errs.ErrInvalidTag.WithArgs(f.Name).Wrap(
				fmt.Errorf("kind:%s requires a field of type argbind.Cmd", types.KindCommand)))
		case types.KindVars:
			if err := checkVarsTag(cfg); err != nil {
				return w.a.fail(errs.ErrInvalidTag.WithArgs(f.Name).Wrap(err))
			}
			err = w.a.setVars(&VarsDescriptor{
				Description: cfg.Description,
				Converter:   cfg.Converter,
				Field:       ref,
			})
		default:
			names := cfg.Names
			if len(names) == 0 {
				names = []string{DerivedName(f.Name)}
			}
			err = w.a.addParameter(&ParameterDescriptor{
				Names:       names,
				Description: cfg.Description,
				Required:    cfg.Required,
				Pattern:     cfg.Accepted,
				Converter:   cfg.Converter,
				Default:     cfg.Default,
				Field:       ref,
			})
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// resolveCommand applies the shallowest command marker. Two markers at that depth are
// ambiguous.
func (w *walker) resolveCommand() error {
	var chosen []commandMarker
	for _, m := range w.markers {
		switch {
		case len(chosen) == 0 || m.depth < chosen[0].depth:
			chosen = []commandMarker{m}
		case m.depth == chosen[0].depth:
			chosen = append(chosen, m)
		}
	}
	if len(chosen) == 0 {
		return nil
	}
	if len(chosen) > 1 {
		return w.a.fail(errs.ErrAmbiguousCommand.WithArgs(chosen[0].field.Name, chosen[1].field.Name))
	}

	f := chosen[0].field
	cfg, err := parse.UnmarshalTagFormat(f.Tag.Get(parse.TagKey), f)
	if err != nil {
		return w.a.fail(errs.ErrInvalidTag.WithArgs(f.Name).Wrap(err))
	}
	if cfg.Kind != types.KindParam && cfg.Kind != types.KindCommand || cfg.Required ||
		cfg.Accepted != nil || cfg.Converter != "" || cfg.Default != nil {
		return w.a.fail(errs.ErrInvalidTag.WithArgs(f.Name).Wrap(
			fmt.Errorf("a command only accepts the keys names and desc")))
	}

	return w.a.setCommand(cfg.Names, cfg.Description)
}

func checkVarsTag(cfg *types.TagConfig) error {
	if len(cfg.Names) > 0 || cfg.Required || cfg.Accepted != nil || cfg.Default != nil {
		return fmt.Errorf("kind:%s only accepts the keys desc and converter", types.KindVars)
	}

	return nil
}

// DerivedName is the flag name of a tagged field that declares no names: the kebab-case
// field name prefixed with "--"
func DerivedName(field string) string {
	return "--" + strcase.ToKebab(field)
}

// assembler checks descriptors as they are added and produces the Schema. It is shared by
// struct tag extraction and NewSchema.
type assembler struct {
	s          *Schema
	hasCommand bool
}

func newAssembler(t reflect.Type) *assembler {
	return &assembler{
		s: &Schema{
			Type:     t,
			byName:   make(map[string]*ParameterDescriptor),
			booleans: make(map[string]struct{}),
		},
	}
}

func (a *assembler) fail(err error) error {
	return errs.WrapOnce(err, errs.ErrSchema, a.s.Type.String())
}

func (a *assembler) setCommand(names []string, description string) error {
	if a.hasCommand {
		return a.fail(errs.ErrAmbiguousCommand.WithArgs(strings.Join(a.s.Command.Names, "|"), strings.Join(names, "|")))
	}
	if len(names) == 0 {
		return a.fail(errs.ErrNoCommandNames)
	}

	a.hasCommand = true
	a.s.Command = CommandDescriptor{
		Names:       append([]string(nil), names...),
		Description: description,
	}

	return nil
}

func (a *assembler) addParameter(p *ParameterDescriptor) error {
	for _, name := range p.Names {
		if !validName(name) {
			return a.fail(errs.ErrInvalidParameterName.WithArgs(name, p.Field.Name))
		}
		if _, exists := a.s.byName[name]; exists {
			return a.fail(errs.ErrDuplicateParameter.WithArgs(name))
		}
		a.s.byName[name] = p
	}
	if len(p.Names) == 0 {
		return a.fail(errs.ErrInvalidParameterName.WithArgs("", p.Field.Name))
	}

	if p.Pattern != nil && p.Pattern.Compiled == nil {
		compiled, err := types.CompilePattern(p.Pattern.Pattern, p.Pattern.Description)
		if err != nil {
			return a.fail(errs.ErrInvalidPattern.WithArgs(p.Pattern.Pattern, p.Field.Name).Wrap(err))
		}
		p.Pattern = compiled
	}

	if p.Converter == "" {
		if err := convert.CheckNesting(p.Field.Type); err != nil {
			return a.fail(err)
		}
	}

	p.Boolean = isBoolean(p.Field.Type)
	if p.Boolean {
		for _, name := range p.Names {
			a.s.booleans[name] = struct{}{}
		}
	}
	if p.Required {
		a.s.required = append(a.s.required, append(RequiredGroup(nil), p.Names...))
	}
	a.s.Parameters = append(a.s.Parameters, p)

	return nil
}

func (a *assembler) setVars(v *VarsDescriptor) error {
	if a.s.Vars != nil {
		return a.fail(errs.ErrMultipleVars.WithArgs(a.s.Vars.Field.Name, v.Field.Name))
	}
	if v.Converter == "" {
		if err := convert.CheckNesting(v.Field.Type); err != nil {
			return a.fail(err)
		}
	}
	a.s.Vars = v

	return nil
}

func (a *assembler) finish() (*Schema, error) {
	if !a.hasCommand {
		return nil, a.fail(errs.ErrMissingCommand)
	}
	a.s.help = renderHelp(a.s, NewRenderer(i18n.Default(), language.English))

	return a.s, nil
}

func validName(name string) bool {
	return strings.HasPrefix(name, "-") && strings.TrimLeft(name, "-") != "" &&
		!strings.ContainsAny(name, " \t\r\n")
}

func isBoolean(t reflect.Type) bool {
	return t.Kind() == reflect.Bool || t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Bool
}

// Lookup returns the parameter declaring name
func (s *Schema) Lookup(name string) (*ParameterDescriptor, bool) {
	p, ok := s.byName[name]
	return p, ok
}

// IsBoolean reports whether name belongs to a boolean parameter
func (s *Schema) IsBoolean(name string) bool {
	_, ok := s.booleans[name]
	return ok
}

// IsCommand reports whether name is one of the command names
func (s *Schema) IsCommand(name string) bool {
	for _, n := range s.Command.Names {
		if n == name {
			return true
		}
	}

	return false
}

// RequiredGroups returns the name groups of the required parameters in declaration order
func (s *Schema) RequiredGroups() []RequiredGroup {
	out := make([]RequiredGroup, len(s.required))
	for i, g := range s.required {
		out[i] = append(RequiredGroup(nil), g...)
	}

	return out
}

// BooleanNames returns the names of the boolean parameters
func (s *Schema) BooleanNames() map[string]struct{} {
	out := make(map[string]struct{}, len(s.booleans))
	for name := range s.booleans {
		out[name] = struct{}{}
	}

	return out
}

// Help returns the English help text rendered at extraction
func (s *Schema) Help() string {
	return s.help
}
