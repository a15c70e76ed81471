package models

import "time"

// SimpleAdmission is the unauthenticated lead-capture form. Course is a free
// text label, not a reference to a Course row.
type SimpleAdmission struct {
	ID                int64           `json:"id" db:"id"`
	FullName          string          `json:"fullName" db:"full_name"`
	Email             string          `json:"email" db:"email"`
	Phone             string          `json:"phone" db:"phone"`
	Course            string          `json:"course" db:"course"`
	Message           string          `json:"message" db:"message"`
	Status            AdmissionStatus `json:"status" db:"status"`
	ApplicationNumber string          `json:"applicationNumber" db:"application_number"`
	CreatedAt         time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time       `json:"updatedAt" db:"updated_at"`
}
