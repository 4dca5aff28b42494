// Package errs contains the translatable errors returned by argbind and the keys used to
// look up their messages.
package errs

const (
	prefixKey = "argbind"
)

const (
	ErrorPrefixKey = prefixKey + ".error"
)

// Schema errors
const (
	ErrSchemaKey               = ErrorPrefixKey + ".schema"
	ErrNotAStructKey           = ErrorPrefixKey + ".not_a_struct"
	ErrMissingCommandKey       = ErrorPrefixKey + ".missing_command"
	ErrNoCommandNamesKey       = ErrorPrefixKey + ".no_command_names"
	ErrAmbiguousCommandKey     = ErrorPrefixKey + ".ambiguous_command"
	ErrDuplicateParameterKey   = ErrorPrefixKey + ".duplicate_parameter"
	ErrMultipleVarsKey         = ErrorPrefixKey + ".multiple_vars"
	ErrInvalidParameterNameKey = ErrorPrefixKey + ".invalid_parameter_name"
	ErrUnexportedFieldKey      = ErrorPrefixKey + ".unexported_field"
	ErrInvalidTagKey           = ErrorPrefixKey + ".invalid_tag"
	ErrInvalidPatternKey       = ErrorPrefixKey + ".invalid_pattern"
	ErrUnknownFieldKey         = ErrorPrefixKey + ".unknown_field"
)

// Parse and validation errors
const (
	ErrEmptyInputKey                  = ErrorPrefixKey + ".empty_input"
	ErrCommandMismatchKey             = ErrorPrefixKey + ".command_mismatch"
	ErrUnknownParameterKey            = ErrorPrefixKey + ".unknown_parameter"
	ErrValidationFailedKey            = ErrorPrefixKey + ".validation_failed"
	ErrMissingRequiredParameterKey    = ErrorPrefixKey + ".missing_required_parameter"
	ErrUnsupportedVarsKey             = ErrorPrefixKey + ".unsupported_vars"
	ErrMultipleVarsNotSupportedKey    = ErrorPrefixKey + ".multiple_vars_not_supported"
	ErrNestedCollectionKey            = ErrorPrefixKey + ".nested_collection"
	ErrMalformedMapEntryKey           = ErrorPrefixKey + ".malformed_map_entry"
	ErrInvalidEnumValueKey            = ErrorPrefixKey + ".invalid_enum_value"
	ErrNoConversionAvailableKey       = ErrorPrefixKey + ".no_conversion_available"
	ErrConversionFailedKey            = ErrorPrefixKey + ".conversion_failed"
	ErrUnknownConverterKey            = ErrorPrefixKey + ".unknown_converter"
	ErrIncompatibleConverterResultKey = ErrorPrefixKey + ".incompatible_converter_result"
	ErrParseKey                       = ErrorPrefixKey + ".parse"
)

// Configuration errors
const (
	ErrConfiguringParserKey   = ErrorPrefixKey + ".configuring_parser"
	ErrEmptySeparatorKey      = ErrorPrefixKey + ".empty_separator"
	ErrNilOptionKey           = ErrorPrefixKey + ".nil_option"
	ErrLanguageUnavailableKey = ErrorPrefixKey + ".language_unavailable"
)

// Completion errors
const (
	ErrUnsupportedShellKey = ErrorPrefixKey + ".unsupported_shell"
)
