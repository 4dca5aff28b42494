// Package types provides the value types shared by the argbind packages.
package types

import (
	"regexp"
)

// Kind is used to define the kind of entity a struct tag represents
type Kind string

const (
	KindCommand Kind = "command"
	KindParam   Kind = "param"
	KindVars    Kind = "vars"
	KindEmpty   Kind = ""
)

// PatternValue is used to define an acceptable value for a parameter. The Pattern is compiled to a regular
// expression and the Description provides a human-readable version of it (the input rule shown in help).
type PatternValue struct {
	Pattern     string
	Description string
	Compiled    *regexp.Regexp
}

// Describe a PatternValue (regular expression with a human-readable explanation of the pattern)
func (r *PatternValue) Describe() string {
	if len(r.Description) > 0 {
		return r.Description
	}

	return r.Pattern
}

// Matches reports whether the whole of value matches the pattern
func (r *PatternValue) Matches(value string) bool {
	if r.Compiled == nil {
		return true
	}

	return r.Compiled.MatchString(value)
}

// CompilePattern compiles pattern so that it only matches complete values
func CompilePattern(pattern, description string) (*PatternValue, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, err
	}

	return &PatternValue{
		Pattern:     pattern,
		Description: description,
		Compiled:    re,
	}, nil
}

// TagConfig is used to store struct tag information about a command, parameter or vars field
type TagConfig struct {
	Kind        Kind
	Names       []string
	Description string
	Required    bool
	Accepted    *PatternValue
	Converter   string
	Default     *string
}
