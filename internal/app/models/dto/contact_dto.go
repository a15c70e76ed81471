package dto

import "strings"

// CreateContactRequest is the public contact form
type CreateContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,phone"`
	Subject string `json:"subject" validate:"required,min=5,max=200"`
	Message string `json:"message" validate:"required,min=10"`
}

// Normalize trims input and lower-cases the email
func (r *CreateContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

// UpdateContactRequest records handling progress on a contact request
type UpdateContactRequest struct {
	Status   *string `json:"status" validate:"omitnil,oneof=new in-progress resolved"`
	Response *string `json:"response" validate:"omitnil,max=5000"`
}

// Normalize trims the response text
func (r *UpdateContactRequest) Normalize() {
	trimPtr(r.Response)
}
