package argbind

import (
	"strings"

	"github.com/napalu/argbind/i18n"
	"github.com/napalu/argbind/internal/messages"
	"golang.org/x/text/language"
)

// DefaultRenderer renders help lines with the labels of an i18n bundle
type DefaultRenderer struct {
	bundle *i18n.Bundle
	lang   language.Tag
}

// NewRenderer returns a renderer translating labels into lang. A nil bundle means
// i18n.Default().
func NewRenderer(bundle *i18n.Bundle, lang language.Tag) *DefaultRenderer {
	if bundle == nil {
		bundle = i18n.Default()
	}

	return &DefaultRenderer{bundle: bundle, lang: lang}
}

// UsageLine shows the invocation form with the primary command name
func (r *DefaultRenderer) UsageLine(s *Schema) string {
	name := ""
	if len(s.Command.Names) > 0 {
		name = s.Command.Names[0]
	}

	return r.bundle.TL(r.lang, messages.HelpUsageKey, name)
}

func (r *DefaultRenderer) CommandLine(c *CommandDescriptor) string {
	return r.bundle.TL(r.lang, messages.HelpCommandKey, strings.Join(c.Names, "|"))
}

func (r *DefaultRenderer) DescriptionLine(c *CommandDescriptor) string {
	if c.Description == "" {
		return ""
	}

	return r.bundle.TL(r.lang, messages.HelpDescriptionKey, c.Description)
}

// ParameterLine lists the names, the required marker and, when present, the description
// and the input rule
func (r *DefaultRenderer) ParameterLine(p *ParameterDescriptor) string {
	key := messages.HelpParameterOptionalKey
	if p.Required {
		key = messages.HelpParameterRequiredKey
	}

	var sb strings.Builder
	sb.WriteString(r.bundle.TL(r.lang, key, strings.Join(p.Names, "|")))
	if p.Description != "" {
		sb.WriteString(r.bundle.TL(r.lang, messages.HelpParameterDescriptionKey, p.Description))
	}
	if p.Pattern != nil && p.Pattern.Description != "" {
		sb.WriteString(r.bundle.TL(r.lang, messages.HelpInputRuleKey, p.Pattern.Description))
	}

	return sb.String()
}

func (r *DefaultRenderer) VarsLine(v *VarsDescriptor) string {
	if v == nil || v.Description == "" {
		return ""
	}

	return r.bundle.TL(r.lang, messages.HelpVarsKey, v.Description)
}

// renderHelp joins the non-empty lines of r, each ending in a newline
func renderHelp(s *Schema, r Renderer) string {
	var sb strings.Builder
	line := func(text string) {
		if text != "" {
			sb.WriteString(text)
			sb.WriteByte('\n')
		}
	}

	line(r.UsageLine(s))
	line(r.CommandLine(&s.Command))
	line(r.DescriptionLine(&s.Command))
	for _, p := range s.Parameters {
		line(r.ParameterLine(p))
	}
	line(r.VarsLine(s.Vars))

	return sb.String()
}
