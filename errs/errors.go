package errs

import (
	"errors"

	"github.com/napalu/argbind/i18n"
)

// Schema errors. ErrSchema wraps every other error in this group.
var (
	ErrSchema               = i18n.NewError(ErrSchemaKey)
	ErrNotAStruct           = i18n.NewError(ErrNotAStructKey)
	ErrMissingCommand       = i18n.NewError(ErrMissingCommandKey)
	ErrNoCommandNames       = i18n.NewError(ErrNoCommandNamesKey)
	ErrAmbiguousCommand     = i18n.NewError(ErrAmbiguousCommandKey)
	ErrDuplicateParameter   = i18n.NewError(ErrDuplicateParameterKey)
	ErrMultipleVars         = i18n.NewError(ErrMultipleVarsKey)
	ErrInvalidParameterName = i18n.NewError(ErrInvalidParameterNameKey)
	ErrUnexportedField      = i18n.NewError(ErrUnexportedFieldKey)
	ErrInvalidTag           = i18n.NewError(ErrInvalidTagKey)
	ErrInvalidPattern       = i18n.NewError(ErrInvalidPatternKey)
	ErrUnknownField         = i18n.NewError(ErrUnknownFieldKey)
)

// Parsing, validation and conversion errors
var (
	ErrEmptyInput                  = i18n.NewError(ErrEmptyInputKey)
	ErrCommandMismatch             = i18n.NewError(ErrCommandMismatchKey)
	ErrUnknownParameter            = i18n.NewError(ErrUnknownParameterKey)
	ErrValidationFailed            = i18n.NewError(ErrValidationFailedKey)
	ErrMissingRequiredParameter    = i18n.NewError(ErrMissingRequiredParameterKey)
	ErrUnsupportedVars             = i18n.NewError(ErrUnsupportedVarsKey)
	ErrMultipleVarsNotSupported    = i18n.NewError(ErrMultipleVarsNotSupportedKey)
	ErrNestedCollection            = i18n.NewError(ErrNestedCollectionKey)
	ErrMalformedMapEntry           = i18n.NewError(ErrMalformedMapEntryKey)
	ErrInvalidEnumValue            = i18n.NewError(ErrInvalidEnumValueKey)
	ErrNoConversionAvailable       = i18n.NewError(ErrNoConversionAvailableKey)
	ErrConversionFailed            = i18n.NewError(ErrConversionFailedKey)
	ErrUnknownConverter            = i18n.NewError(ErrUnknownConverterKey)
	ErrIncompatibleConverterResult = i18n.NewError(ErrIncompatibleConverterResultKey)
)

// Configuration errors
var (
	ErrConfiguringParser   = i18n.NewError(ErrConfiguringParserKey)
	ErrEmptySeparator      = i18n.NewError(ErrEmptySeparatorKey)
	ErrNilOption           = i18n.NewError(ErrNilOptionKey)
	ErrLanguageUnavailable = i18n.NewError(ErrLanguageUnavailableKey)
)

// Completion errors
var (
	ErrUnsupportedShell = i18n.NewError(ErrUnsupportedShellKey)
)

// WrapOnce wraps err with wrapper unless err already matches it
func WrapOnce(err error, wrapper i18n.TranslatableError, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, wrapper) {
		return err
	}

	return wrapper.WithArgs(args...).Wrap(err)
}
