package argbind

import (
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// SchemaDoc is the plain-data form of a Schema, for documentation and tooling
type SchemaDoc struct {
	Command     []string       `json:"command" yaml:"command"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters  []ParameterDoc `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Vars        *VarsDoc       `json:"vars,omitempty" yaml:"vars,omitempty"`
}

type ParameterDoc struct {
	Names       []string `json:"names" yaml:"names"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool     `json:"required" yaml:"required"`
	Boolean     bool     `json:"boolean,omitempty" yaml:"boolean,omitempty"`
	Pattern     string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Rule        string   `json:"rule,omitempty" yaml:"rule,omitempty"`
	Converter   string   `json:"converter,omitempty" yaml:"converter,omitempty"`
	Default     *string  `json:"default,omitempty" yaml:"default,omitempty"`
	Field       string   `json:"field" yaml:"field"`
	Type        string   `json:"type" yaml:"type"`
}

type VarsDoc struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Converter   string `json:"converter,omitempty" yaml:"converter,omitempty"`
	Field       string `json:"field" yaml:"field"`
	Type        string `json:"type" yaml:"type"`
}

// Export returns the plain-data form of s
func (s *Schema) Export() SchemaDoc {
	doc := SchemaDoc{
		Command:     append([]string(nil), s.Command.Names...),
		Description: s.Command.Description,
	}

	for _, p := range s.Parameters {
		pd := ParameterDoc{
			Names:       append([]string(nil), p.Names...),
			Description: p.Description,
			Required:    p.Required,
			Boolean:     p.Boolean,
			Converter:   p.Converter,
			Default:     p.Default,
			Field:       p.Field.Name,
			Type:        p.Field.Type.String(),
		}
		if p.Pattern != nil {
			pd.Pattern = p.Pattern.Pattern
			pd.Rule = p.Pattern.Description
		}
		doc.Parameters = append(doc.Parameters, pd)
	}

	if s.Vars != nil {
		doc.Vars = &VarsDoc{
			Description: s.Vars.Description,
			Converter:   s.Vars.Converter,
			Field:       s.Vars.Field.Name,
			Type:        s.Vars.Field.Type.String(),
		}
	}

	return doc
}

// JSON returns the indented JSON form of the exported schema
func (s *Schema) JSON() ([]byte, error) {
	return json.MarshalIndent(s.Export(), "", "  ")
}

// YAML returns the YAML form of the exported schema
func (s *Schema) YAML() ([]byte, error) {
	return yaml.Marshal(s.Export())
}
