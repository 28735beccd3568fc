package types

import "time"

// ContactFormData is what a visitor types into the contact form.
type ContactFormData struct {
	Name    string `json:"name" form:"name" validate:"required,max=100"`
	Email   string `json:"email" form:"email" validate:"required,email,max=255"`
	Message string `json:"message" form:"message" validate:"required,max=5000"`
}

func (d ContactFormData) IsEmpty() bool {
	return d.Name == "" && d.Email == "" && d.Message == ""
}

// FieldError attributes a validation failure to one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ApiResponse is the envelope every contact backend endpoint answers with.
type ApiResponse[T any] struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    *T           `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// ContactReceipt is returned as data for an accepted contact message.
type ContactReceipt struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
