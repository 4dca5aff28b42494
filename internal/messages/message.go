// Package messages holds the translation keys of the help text labels.
package messages

const (
	prefixKey     = "argbind"
	HelpPrefixKey = prefixKey + ".help"
)

// Help text labels, one per line kind
const (
	HelpUsageKey                = HelpPrefixKey + ".usage"
	HelpCommandKey              = HelpPrefixKey + ".command"
	HelpDescriptionKey          = HelpPrefixKey + ".description"
	HelpParameterRequiredKey    = HelpPrefixKey + ".parameter_required"
	HelpParameterOptionalKey    = HelpPrefixKey + ".parameter_optional"
	HelpParameterDescriptionKey = HelpPrefixKey + ".parameter_description"
	HelpInputRuleKey            = HelpPrefixKey + ".input_rule"
	HelpVarsKey                 = HelpPrefixKey + ".vars"
)
