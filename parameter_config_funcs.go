package argbind

import (
	"github.com/napalu/argbind/types"
)

// NewParam convenience initialization method to declare parameters for NewSchema
func NewParam(configs ...ConfigureParameterFunc) *ParameterDescriptor {
	param := &ParameterDescriptor{}
	for _, config := range configs {
		config(param)
	}

	return param
}

// WithNames sets the flag names of the parameter. Each name must start with '-'. When no
// name is given the parameter is known as DerivedName(field).
func WithNames(names ...string) ConfigureParameterFunc {
	return func(param *ParameterDescriptor) {
		param.Names = append(param.Names, names...)
	}
}

// WithDescription sets the description shown in help
func WithDescription(description string) ConfigureParameterFunc {
	return func(param *ParameterDescriptor) {
		param.Description = description
	}
}

// IsRequired marks the parameter as required: one of its names must be supplied
func IsRequired() ConfigureParameterFunc {
	return SetRequired(true)
}

// SetRequired sets whether the parameter is required
func SetRequired(required bool) ConfigureParameterFunc {
	return func(param *ParameterDescriptor) {
		param.Required = required
	}
}

// WithPattern restricts raw values to those matching pattern in full. rule is the
// human-readable form shown in help and in validation errors.
func WithPattern(pattern, rule string) ConfigureParameterFunc {
	return func(param *ParameterDescriptor) {
		param.Pattern = &types.PatternValue{Pattern: pattern, Description: rule}
	}
}

// WithConverter names the converter used for the raw value instead of the conversion engine
func WithConverter(name string) ConfigureParameterFunc {
	return func(param *ParameterDescriptor) {
		param.Converter = name
	}
}

// WithDefault sets the raw value converted when the parameter is not supplied
func WithDefault(value string) ConfigureParameterFunc {
	return func(param *ParameterDescriptor) {
		param.Default = &value
	}
}

// NewVars convenience initialization method to declare the vars field for NewSchema
func NewVars(configs ...ConfigureVarsFunc) *VarsDescriptor {
	vars := &VarsDescriptor{}
	for _, config := range configs {
		config(vars)
	}

	return vars
}

// WithVarsDescription sets the vars description shown in help
func WithVarsDescription(description string) ConfigureVarsFunc {
	return func(vars *VarsDescriptor) {
		vars.Description = description
	}
}

// WithVarsConverter names the converter applied to each positional value
func WithVarsConverter(name string) ConfigureVarsFunc {
	return func(vars *VarsDescriptor) {
		vars.Converter = name
	}
}
