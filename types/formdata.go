package types

import "time"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ContactFormView is everything the contact form needs to render one form instance.
type ContactFormView struct {
	Form          ContactFormData
	Submitting    bool
	StatusKind    string
	StatusMessage string
	FieldErrors   map[string]string
	// ClearAfter is how long a success status stays up before the form reloads.
	ClearAfter time.Duration
}

func (v ContactFormView) HasStatus() bool {
	return v.StatusKind != ""
}

func (v ContactFormView) FieldError(field string) string {
	return v.FieldErrors[field]
}

func (v ContactFormView) WithStatus(kind, message string) ContactFormView {
	v.StatusKind = kind
	v.StatusMessage = message
	return v
}

func (v ContactFormView) WithFieldErrors(fieldErrors []FieldError) ContactFormView {
	if len(fieldErrors) == 0 {
		return v
	}
	m := make(map[string]string, len(fieldErrors)+len(v.FieldErrors))
	for k, msg := range v.FieldErrors {
		m[k] = msg
	}
	for _, fe := range fieldErrors {
		m[fe.Field] = fe.Message
	}
	v.FieldErrors = m
	return v
}
