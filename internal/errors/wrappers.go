package errors

import (
	"errors"
	"fmt"
)

// SyntaxError reports a malformed descriptor file
type SyntaxError struct {
	*BaseError
}

// NewSyntaxError creates a syntax error at the given location
func NewSyntaxError(message string, loc SourceLocation) *SyntaxError {
	return &SyntaxError{BaseError: New(SyntaxErrorCode, message).WithLocation(loc)}
}

// SlotSynthesisError reports a vtable slot whose wrapper could not be synthesized.
// It never aborts generation of the enclosing class.
type SlotSynthesisError struct {
	*BaseError
	Interface string // simple name of the owning interface
	Slot      string // accessor / descriptor name of the slot
}

// NewSlotSynthesisError creates a slot synthesis error
func NewSlotSynthesisError(iface, slot, reason string) *SlotSynthesisError {
	message := fmt.Sprintf("failed to generate wrapper method for %s.%s: %s", iface, slot, reason)
	err := &SlotSynthesisError{
		BaseError: New(SlotSynthesisErrorCode, message),
		Interface: iface,
		Slot:      slot,
	}
	err.WithContext("interface", iface).WithContext("slot", slot)
	return err
}

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(item string, cause error) *SyntaxError {
	message := fmt.Sprintf("failed to parse %s", item)
	return &SyntaxError{
		BaseError: Wrap(SyntaxErrorCode, message, cause),
	}
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapTemplateError wraps rendering errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return Wrap(TemplateErrorCode, message, cause).
		WithContext("template", templateName)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// ConfigurationError creates a configuration error
func ConfigurationError(configType, message string) *BaseError {
	fullMessage := fmt.Sprintf("configuration error in '%s': %s", configType, message)
	return New(ConfigurationErrorCode, fullMessage).
		WithContext("config_type", configType)
}

// Code extracts the error code from any error in the chain
func Code(err error) ErrorCode {
	var ve VtwrapError
	if errors.As(err, &ve) {
		return ve.ErrorCode()
	}
	return UnknownErrorCode
}
