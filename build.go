package argbind

import (
	"reflect"

	"github.com/napalu/argbind/convert"
	"github.com/napalu/argbind/errs"
)

// Bind converts the values of parsed into BoundValues. Nothing is written to an instance,
// so a conversion failure leaves no partially built value behind. When several names of one
// parameter are supplied, the one given last wins.
func (p *Parser) Bind(s *Schema, parsed *ParsedArguments) (*BoundValues, error) {
	engine := p.engine()
	bound := &BoundValues{Fields: make(map[*ParameterDescriptor]reflect.Value, len(s.Parameters))}

	err := parsed.EachFlag(func(name, value string) error {
		param, ok := s.Lookup(name)
		if !ok {
			return errs.NewParseError(s.Command.Names, name, errs.ErrUnknownParameter.WithArgs(name))
		}
		v, err := p.convertParameter(engine, param, value)
		if err != nil {
			return errs.NewParseError(s.Command.Names, name, err)
		}
		bound.Fields[param] = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, param := range s.Parameters {
		if _, ok := bound.Fields[param]; ok || param.Default == nil {
			continue
		}
		v, err := p.convertParameter(engine, param, *param.Default)
		if err != nil {
			return nil, errs.NewParseError(s.Command.Names, param.Names[0], err)
		}
		bound.Fields[param] = v
	}

	if s.Vars != nil && len(parsed.Positionals) > 0 {
		v, err := p.convertVars(engine, s.Vars, parsed.Positionals)
		if err != nil {
			return nil, errs.NewParseError(s.Command.Names, parsed.Positionals[0], err)
		}
		bound.Vars = v
		bound.HasVars = true
	}

	return bound, nil
}

// Commit writes bound into a new instance of s.Type and returns a pointer to it
func (p *Parser) Commit(s *Schema, bound *BoundValues) reflect.Value {
	instance := reflect.New(s.Type)
	target := instance.Elem()

	for _, param := range s.Parameters {
		if v, ok := bound.Fields[param]; ok {
			target.FieldByIndex(param.Field.Index).Set(v)
		}
	}
	if bound.HasVars && s.Vars != nil {
		target.FieldByIndex(s.Vars.Field.Index).Set(bound.Vars)
	}

	return instance
}

func (p *Parser) convertParameter(engine *convert.Engine, param *ParameterDescriptor, raw string) (reflect.Value, error) {
	if param.Converter == "" {
		return engine.Convert(param.Field.Type, raw)
	}

	fn, err := p.namedConverter(param.Converter)
	if err != nil {
		return reflect.Value{}, err
	}

	return convert.Apply(fn, param.Converter, param.Field.Type, raw)
}

// convertVars converts positionals for the vars field. Collection fields receive one item
// per positional value; any other field accepts a single positional value.
func (p *Parser) convertVars(engine *convert.Engine, vars *VarsDescriptor, positionals []string) (reflect.Value, error) {
	var (
		fn  convert.Func
		err error
	)
	if vars.Converter != "" {
		if fn, err = p.namedConverter(vars.Converter); err != nil {
			return reflect.Value{}, err
		}
	}

	t := vars.Field.Type
	switch convert.ShapeOf(t) {
	case convert.List, convert.Set, convert.Queue:
		return engine.ConvertItems(t, positionals, fn, vars.Converter)
	}

	if len(positionals) > 1 {
		return reflect.Value{}, errs.ErrMultipleVarsNotSupported.WithArgs(vars.Field.Name, len(positionals))
	}
	if fn != nil {
		return convert.Apply(fn, vars.Converter, t, positionals[0])
	}

	return engine.Convert(t, positionals[0])
}

func (p *Parser) namedConverter(name string) (convert.Func, error) {
	if fn, ok := p.named[name]; ok {
		return fn, nil
	}
	if fn, ok := p.registry.Named(name); ok {
		return fn, nil
	}

	return nil, errs.ErrUnknownConverter.WithArgs(name)
}

func (p *Parser) engine() *convert.Engine {
	e := convert.NewEngine(p.registry)
	e.ItemSeparator = p.itemSeparator
	e.KeyValueSeparator = p.keyValueSeparator

	return e
}
