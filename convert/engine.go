package convert

import (
	"encoding"
	"reflect"
	"strings"

	"github.com/napalu/argbind/errs"
)

const (
	DefaultItemSeparator     = ","
	DefaultKeyValueSeparator = "="
)

// Shape classifies a type by how its raw value is read
type Shape int

const (
	Scalar Shape = iota // a single value
	List                // slice, items in order
	Set                 // map[K]struct{}
	Queue               // pointer type with an Enqueue(E) method, such as *queue.Q[E]
	Map                 // map[K]V, items of the form key=value
)

func (s Shape) String() string {
	switch s {
	case List:
		return "list"
	case Set:
		return "set"
	case Queue:
		return "queue"
	case Map:
		return "map"
	default:
		return "scalar"
	}
}

// IsCollection reports whether the shape holds several items
func (s Shape) IsCollection() bool {
	return s != Scalar
}

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	errorType           = reflect.TypeOf((*error)(nil)).Elem()
)

// ShapeOf returns the shape of t
func ShapeOf(t reflect.Type) Shape {
	switch t.Kind() {
	case reflect.Slice:
		return List
	case reflect.Map:
		if isEmptyStruct(t.Elem()) {
			return Set
		}
		return Map
	case reflect.Ptr:
		if _, ok := enqueueMethod(t); ok {
			return Queue
		}
	}

	return Scalar
}

// ElemOf returns the item type of a collection shape. For maps it is the value type.
func ElemOf(t reflect.Type) reflect.Type {
	switch ShapeOf(t) {
	case List, Map:
		return t.Elem()
	case Set:
		return t.Key()
	case Queue:
		m, _ := enqueueMethod(t)
		return m.Type.In(1)
	}

	return nil
}

// CheckNesting fails with errs.ErrNestedCollection when t nests collections or maps more
// than one level deep
func CheckNesting(t reflect.Type) error {
	shape := ShapeOf(t)
	if !shape.IsCollection() {
		return nil
	}
	if ShapeOf(ElemOf(t)).IsCollection() || (shape == Map && ShapeOf(t.Key()).IsCollection()) {
		return errs.ErrNestedCollection.WithArgs(t.String())
	}

	return nil
}

// Engine converts raw strings to values of a requested type using a Registry
type Engine struct {
	Registry          *Registry
	ItemSeparator     string
	KeyValueSeparator string
}

// NewEngine returns an engine over r with the default separators. A nil r means Default().
func NewEngine(r *Registry) *Engine {
	if r == nil {
		r = Default()
	}

	return &Engine{
		Registry:          r,
		ItemSeparator:     DefaultItemSeparator,
		KeyValueSeparator: DefaultKeyValueSeparator,
	}
}

// Convert converts raw to a value of type t. The order is: registered converter, enum,
// collection, map, pointer, then TextUnmarshaler or Set(string) error on *t.
func (e *Engine) Convert(t reflect.Type, raw string) (reflect.Value, error) {
	return e.convert(t, raw, 0)
}

// ConvertItems builds a collection of type t from already separated items. Each item goes
// through itemFn when it is non-nil, else through the engine.
func (e *Engine) ConvertItems(t reflect.Type, items []string, itemFn Func, itemFnName string) (reflect.Value, error) {
	shape := ShapeOf(t)
	if shape != List && shape != Set && shape != Queue {
		return reflect.Value{}, errs.ErrNoConversionAvailable.WithArgs(t.String())
	}

	elem := ElemOf(t)
	values := make([]reflect.Value, 0, len(items))
	for _, item := range items {
		var (
			v   reflect.Value
			err error
		)
		if itemFn != nil {
			v, err = Apply(itemFn, itemFnName, elem, item)
		} else {
			v, err = e.convert(elem, item, 1)
		}
		if err != nil {
			return reflect.Value{}, err
		}
		values = append(values, v)
	}

	return collect(t, shape, values), nil
}

// Apply runs fn on raw and checks that its result fits t. Results of a different type
// with the same kind (a named string type, for instance) are converted.
func Apply(fn Func, name string, t reflect.Type, raw string) (reflect.Value, error) {
	out, err := fn(raw)
	if err != nil {
		return reflect.Value{}, errs.ErrConversionFailed.WithArgs(raw, t.String()).Wrap(err)
	}

	if out == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, errs.ErrIncompatibleConverterResult.WithArgs(name, "nil", t.String())
	}

	v := reflect.ValueOf(out)
	switch {
	case v.Type().AssignableTo(t):
		if v.Type() != t {
			assigned := reflect.New(t).Elem()
			assigned.Set(v)
			return assigned, nil
		}
		return v, nil
	case v.Kind() == t.Kind() && v.Type().ConvertibleTo(t):
		return v.Convert(t), nil
	}

	return reflect.Value{}, errs.ErrIncompatibleConverterResult.WithArgs(name, v.Type().String(), t.String())
}

func (e *Engine) convert(t reflect.Type, raw string, depth int) (reflect.Value, error) {
	if fn, ok := e.Registry.Lookup(t); ok {
		return Apply(fn, t.String(), t, raw)
	}

	if table, ok := e.Registry.enum(t); ok {
		v, found := table.values[raw]
		if !found {
			return reflect.Value{}, errs.ErrInvalidEnumValue.WithArgs(raw, t.String(), strings.Join(table.names, ", "))
		}
		return reflect.ValueOf(v), nil
	}

	switch shape := ShapeOf(t); shape {
	case List, Set, Queue:
		if depth > 0 {
			return reflect.Value{}, errs.ErrNestedCollection.WithArgs(t.String())
		}
		return e.convertCollection(t, shape, raw)
	case Map:
		if depth > 0 {
			return reflect.Value{}, errs.ErrNestedCollection.WithArgs(t.String())
		}
		return e.convertMap(t, raw)
	}

	if t.Kind() == reflect.Ptr {
		v, err := e.convert(t.Elem(), raw, depth)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(v)
		return ptr, nil
	}

	return e.construct(t, raw)
}

func (e *Engine) convertCollection(t reflect.Type, shape Shape, raw string) (reflect.Value, error) {
	elem := ElemOf(t)
	items := strings.Split(raw, e.ItemSeparator)
	values := make([]reflect.Value, 0, len(items))
	for _, item := range items {
		v, err := e.convert(elem, item, 1)
		if err != nil {
			return reflect.Value{}, err
		}
		values = append(values, v)
	}

	return collect(t, shape, values), nil
}

func (e *Engine) convertMap(t reflect.Type, raw string) (reflect.Value, error) {
	m := reflect.MakeMap(t)
	for _, item := range strings.Split(raw, e.ItemSeparator) {
		kv := strings.SplitN(item, e.KeyValueSeparator, 2)
		if len(kv) != 2 {
			return reflect.Value{}, errs.ErrMalformedMapEntry.WithArgs(item, e.KeyValueSeparator)
		}
		k, err := e.convert(t.Key(), kv[0], 1)
		if err != nil {
			return reflect.Value{}, err
		}
		v, err := e.convert(t.Elem(), kv[1], 1)
		if err != nil {
			return reflect.Value{}, err
		}
		m.SetMapIndex(k, v)
	}

	return m, nil
}

// construct is the last resort: TextUnmarshaler, then Set(string) error, then the converter
// of the underlying basic kind for named types such as `type Level int`
func (e *Engine) construct(t reflect.Type, raw string) (reflect.Value, error) {
	ptr := reflect.New(t)
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
			return reflect.Value{}, errs.ErrConversionFailed.WithArgs(raw, t.String()).Wrap(err)
		}
		return ptr.Elem(), nil
	}

	if set := ptr.MethodByName("Set"); set.IsValid() && isSetter(set.Type()) {
		out := set.Call([]reflect.Value{reflect.ValueOf(raw)})
		if err, _ := out[0].Interface().(error); err != nil {
			return reflect.Value{}, errs.ErrConversionFailed.WithArgs(raw, t.String()).Wrap(err)
		}
		return ptr.Elem(), nil
	}

	if base := basicType(t.Kind()); base != nil && base != t {
		if fn, ok := e.Registry.Lookup(base); ok {
			return Apply(fn, base.String(), t, raw)
		}
	}

	return reflect.Value{}, errs.ErrNoConversionAvailable.WithArgs(t.String())
}

func collect(t reflect.Type, shape Shape, values []reflect.Value) reflect.Value {
	switch shape {
	case Set:
		set := reflect.MakeMapWithSize(t, len(values))
		empty := reflect.Zero(t.Elem())
		for _, v := range values {
			set.SetMapIndex(v, empty)
		}
		return set
	case Queue:
		q := reflect.New(t.Elem())
		enqueue := q.MethodByName("Enqueue")
		for _, v := range values {
			enqueue.Call([]reflect.Value{v})
		}
		return q
	default:
		list := reflect.MakeSlice(t, 0, len(values))
		return reflect.Append(list, values...)
	}
}

func enqueueMethod(t reflect.Type) (reflect.Method, bool) {
	m, ok := t.MethodByName("Enqueue")
	if !ok || m.Type.NumIn() != 2 || m.Type.NumOut() != 0 {
		return reflect.Method{}, false
	}

	return m, true
}

func isSetter(ft reflect.Type) bool {
	return ft.NumIn() == 1 && ft.In(0).Kind() == reflect.String &&
		ft.NumOut() == 1 && ft.Out(0) == errorType
}

func isEmptyStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() == 0
}

func basicType(k reflect.Kind) reflect.Type {
	switch k {
	case reflect.String:
		return reflect.TypeOf("")
	case reflect.Bool:
		return reflect.TypeOf(false)
	case reflect.Int:
		return reflect.TypeOf(int(0))
	case reflect.Int8:
		return reflect.TypeOf(int8(0))
	case reflect.Int16:
		return reflect.TypeOf(int16(0))
	case reflect.Int32:
		return reflect.TypeOf(int32(0))
	case reflect.Int64:
		return reflect.TypeOf(int64(0))
	case reflect.Uint:
		return reflect.TypeOf(uint(0))
	case reflect.Uint8:
		return reflect.TypeOf(uint8(0))
	case reflect.Uint16:
		return reflect.TypeOf(uint16(0))
	case reflect.Uint32:
		return reflect.TypeOf(uint32(0))
	case reflect.Uint64:
		return reflect.TypeOf(uint64(0))
	case reflect.Float32:
		return reflect.TypeOf(float32(0))
	case reflect.Float64:
		return reflect.TypeOf(float64(0))
	}

	return nil
}
