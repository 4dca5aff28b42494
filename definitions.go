package argbind

import (
	"io"
	"reflect"

	"github.com/napalu/argbind/convert"
	"github.com/napalu/argbind/i18n"
	"github.com/napalu/argbind/types"
	orderedmap "github.com/wk8/go-ordered-map"
	"golang.org/x/text/language"
)

// Cmd marks the command of a schema. Declare it as a blank field carrying the command tag:
//
//	type Trans struct {
//		_ argbind.Cmd `argbind:"names:trans|t;desc:account operations"`
//	}
type Cmd struct{}

// CommandDescriptor holds the names (aliases) and description of a command
type CommandDescriptor struct {
	Names       []string
	Description string
}

// FieldRef locates the field a value is written to. Index is the path through embedded
// structs as accepted by reflect.Value.FieldByIndex.
type FieldRef struct {
	Name  string
	Index []int
	Type  reflect.Type
}

// ParameterDescriptor describes a flag and the field it binds to
type ParameterDescriptor struct {
	Names       []string
	Description string
	Required    bool
	Pattern     *types.PatternValue
	Converter   string
	Default     *string
	Boolean     bool
	Field       FieldRef
}

// VarsDescriptor describes the field receiving positional values
type VarsDescriptor struct {
	Description string
	Converter   string
	Field       FieldRef
}

// RequiredGroup lists the names of one required parameter. The group is satisfied when any
// of its names is supplied.
type RequiredGroup []string

// Schema is the immutable description of a command extracted from a struct type
type Schema struct {
	Type       reflect.Type
	Command    CommandDescriptor
	Parameters []*ParameterDescriptor
	Vars       *VarsDescriptor

	byName   map[string]*ParameterDescriptor
	booleans map[string]struct{}
	required []RequiredGroup
	help     string
}

// ParsedArguments is the tokenized form of one argument vector
type ParsedArguments struct {
	Command     string
	Flags       *orderedmap.OrderedMap // flag name -> raw value, in order of first appearance
	Booleans    map[string]struct{}    // flags supplied whose parameter is boolean
	Positionals []string
}

// BoundValues holds the converted values of one invocation before they are written
type BoundValues struct {
	Fields  map[*ParameterDescriptor]reflect.Value
	Vars    reflect.Value
	HasVars bool
}

// Parser converts argument vectors into schema instances. A Parser holds no per-call state
// and may be shared between goroutines once constructed.
type Parser struct {
	registry          *convert.Registry
	named             map[string]convert.Func
	itemSeparator     string
	keyValueSeparator string
	bundle            *i18n.Bundle
	lang              language.Tag
	renderer          Renderer
	stdout            io.Writer
	stderr            io.Writer
}

// Binder parses argument vectors into *T with a schema extracted once
type Binder[T any] struct {
	parser *Parser
	schema *Schema
}

// ConfigureParserFunc is used when defining Parser options
type ConfigureParserFunc func(p *Parser, err *error)

// ConfigureParameterFunc is used when declaring a parameter with NewParam
type ConfigureParameterFunc func(param *ParameterDescriptor)

// ConfigureVarsFunc is used when declaring a vars field with NewVars
type ConfigureVarsFunc func(vars *VarsDescriptor)

// ConfigureSchemaFunc is used when declaring a schema with NewSchema
type ConfigureSchemaFunc func(b *SchemaBuilder, err *error)

// Renderer renders the lines of the help text. Every method returns a single line without
// its trailing newline; an empty string omits the line.
type Renderer interface {
	UsageLine(s *Schema) string
	CommandLine(c *CommandDescriptor) string
	DescriptionLine(c *CommandDescriptor) string
	ParameterLine(p *ParameterDescriptor) string
	VarsLine(v *VarsDescriptor) string
}
