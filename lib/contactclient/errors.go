package contactclient

import (
	"errors"
	"fmt"

	"github.com/oliverisaac/portfolio/types"
)

// Kind classifies why a call to the contact backend failed.
type Kind string

const (
	// KindValidation is a rejected request carrying field-level messages.
	KindValidation Kind = "validation"
	// KindApplication is a rejected request without field-level detail.
	KindApplication Kind = "application"
	// KindTransport means no well-formed response was obtained. Status is always 0.
	KindTransport Kind = "transport"
)

const (
	DefaultErrorMessage = "An error occurred"
	NetworkErrorMessage = "Network error. Please check your connection."
	UnreachableMessage  = "Server is not reachable"
)

// ApiError is the only error type returned by Client.
type ApiError struct {
	Kind    Kind
	Message string
	Status  int
	Errors  []types.FieldError
}

func (e *ApiError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("contact api %s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("contact api %s error (%d): %s", e.Kind, e.Status, e.Message)
}

// FieldErrors returns the field annotations keyed by field name. Later entries win.
func (e *ApiError) FieldErrors() map[string]string {
	if len(e.Errors) == 0 {
		return nil
	}
	ret := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		ret[fe.Field] = fe.Message
	}
	return ret
}

func AsApiError(err error) (*ApiError, bool) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func newStatusError(status int, message string, fieldErrors []types.FieldError) *ApiError {
	if message == "" {
		message = DefaultErrorMessage
	}
	kind := KindApplication
	if len(fieldErrors) > 0 {
		kind = KindValidation
	}
	return &ApiError{
		Kind:    kind,
		Message: message,
		Status:  status,
		Errors:  fieldErrors,
	}
}

// newTransportError wraps a failure that happened before a usable response existed.
// An ApiError passed in is returned unchanged.
func newTransportError(err error, fallback string) *ApiError {
	if apiErr, ok := AsApiError(err); ok {
		return apiErr
	}
	message := fallback
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return &ApiError{
		Kind:    KindTransport,
		Message: message,
		Status:  0,
	}
}
