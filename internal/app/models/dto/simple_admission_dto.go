package dto

import "strings"

// CreateSimpleAdmissionRequest is the public enquiry form
type CreateSimpleAdmissionRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Course   string `json:"course" validate:"required,max=200"`
	Message  string `json:"message" validate:"max=2000"`
}

// Normalize trims input and lower-cases the email
func (r *CreateSimpleAdmissionRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Course = strings.TrimSpace(r.Course)
	r.Message = strings.TrimSpace(r.Message)
}
