package argbind

import (
	"reflect"

	"github.com/napalu/argbind/convert"
	"github.com/napalu/argbind/errs"
)

// SchemaBuilder collects the declarations passed to NewSchema
type SchemaBuilder struct {
	a *assembler
}

// NewSchema declares the schema of T with option functions instead of struct tags. The same
// checks as Extract apply and equivalent declarations yield equal schemas. The caller should
// always test for error on return because the Schema is nil when a declaration fails.
//
//	schema, err := NewSchema[Trans](
//		WithCommand("trans", "t"),
//		WithCommandDescription("account operations"),
//		WithParameter("Amount", NewParam(
//			WithNames("-a", "--amount"),
//			IsRequired(),
//			WithPattern(`\d+(\.\d{1,2})?`, "at most two decimals"))),
//		WithVars("Ids", NewVars(WithVarsDescription("id list"))))
func NewSchema[T any](configs ...ConfigureSchemaFunc) (*Schema, error) {
	t := convert.TypeFor[T]()
	b := &SchemaBuilder{a: newAssembler(t)}
	if t.Kind() != reflect.Struct {
		return nil, b.a.fail(errs.ErrNotAStruct.WithArgs(t.String()))
	}

	var err error
	for _, config := range configs {
		config(b, &err)
		if err != nil {
			return nil, err
		}
	}

	return b.a.finish()
}

// WithCommand declares the command names
func WithCommand(names ...string) ConfigureSchemaFunc {
	return func(b *SchemaBuilder, err *error) {
		*err = b.a.setCommand(names, b.a.s.Command.Description)
	}
}

// WithCommandDescription sets the command description. It may be given before or after
// WithCommand.
func WithCommandDescription(description string) ConfigureSchemaFunc {
	return func(b *SchemaBuilder, err *error) {
		b.a.s.Command.Description = description
	}
}

// WithParameter binds the field named field to param. Promoted fields of embedded structs
// may be named directly.
func WithParameter(field string, param *ParameterDescriptor) ConfigureSchemaFunc {
	return func(b *SchemaBuilder, err *error) {
		ref, e := b.field(field)
		if e != nil {
			*err = e
			return
		}
		p := *param
		p.Names = append([]string(nil), param.Names...)
		if len(p.Names) == 0 {
			p.Names = []string{DerivedName(ref.Name)}
		}
		if param.Pattern != nil {
			pattern := *param.Pattern
			p.Pattern = &pattern
		}
		p.Field = ref
		*err = b.a.addParameter(&p)
	}
}

// WithVars binds the field named field to the positional values
func WithVars(field string, vars *VarsDescriptor) ConfigureSchemaFunc {
	return func(b *SchemaBuilder, err *error) {
		ref, e := b.field(field)
		if e != nil {
			*err = e
			return
		}
		v := *vars
		v.Field = ref
		*err = b.a.setVars(&v)
	}
}

func (b *SchemaBuilder) field(name string) (FieldRef, error) {
	f, ok := b.a.s.Type.FieldByName(name)
	if !ok || f.Type == cmdType {
		return FieldRef{}, b.a.fail(errs.ErrUnknownField.WithArgs(name))
	}
	if !f.IsExported() {
		return FieldRef{}, b.a.fail(errs.ErrUnexportedField.WithArgs(name))
	}
	// promoted through an embedded pointer: there is no struct to write to
	t := b.a.s.Type
	for _, i := range f.Index[:len(f.Index)-1] {
		t = t.Field(i).Type
		if t.Kind() != reflect.Struct {
			return FieldRef{}, b.a.fail(errs.ErrUnknownField.WithArgs(name))
		}
	}

	return FieldRef{Name: f.Name, Index: f.Index, Type: f.Type}, nil
}
