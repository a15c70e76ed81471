package models

import "time"

// Contact is a message left through the public contact form.
type Contact struct {
	ID          int64         `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Email       string        `json:"email" db:"email"`
	Phone       string        `json:"phone" db:"phone"`
	Subject     string        `json:"subject" db:"subject"`
	Message     string        `json:"message" db:"message"`
	Status      ContactStatus `json:"status" db:"status"`
	Response    string        `json:"response" db:"response"`
	RespondedBy *int64        `json:"respondedBy,omitempty" db:"responded_by"`
	RespondedAt *time.Time    `json:"respondedAt,omitempty" db:"responded_at"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
}
