package dto

import (
	"strings"

	"github.com/yigit/campusadmit/internal/app/models"
)

// CreateCourseRequest represents a new course
type CreateCourseRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Duration    string   `json:"duration" validate:"required,max=50"`
	Fees        *float64 `json:"fees" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required,oneof=Engineering Medical Arts Commerce Science Management"`
	Eligibility string   `json:"eligibility" validate:"required"`
	Seats       *int     `json:"seats" validate:"required,min=1"`
}

// Normalize trims text fields
func (r *CreateCourseRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Duration = strings.TrimSpace(r.Duration)
	r.Category = strings.TrimSpace(r.Category)
	r.Eligibility = strings.TrimSpace(r.Eligibility)
}

// UpdateCourseRequest carries a partial course update
type UpdateCourseRequest struct {
	Name        *string  `json:"name" validate:"omitnil,notblank,max=200"`
	Description *string  `json:"description" validate:"omitnil,notblank"`
	Duration    *string  `json:"duration" validate:"omitnil,notblank,max=50"`
	Fees        *float64 `json:"fees" validate:"omitnil,gte=0"`
	Category    *string  `json:"category" validate:"omitnil,oneof=Engineering Medical Arts Commerce Science Management"`
	Eligibility *string  `json:"eligibility" validate:"omitnil,notblank"`
	Seats       *int     `json:"seats" validate:"omitnil,min=1"`
	IsActive    *bool    `json:"isActive"`
}

// Normalize trims the provided text fields
func (r *UpdateCourseRequest) Normalize() {
	trimPtr(r.Name)
	trimPtr(r.Description)
	trimPtr(r.Duration)
	trimPtr(r.Category)
	trimPtr(r.Eligibility)
}

// CourseSummary is the course excerpt embedded in admission responses
type CourseSummary struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Category    models.CourseCategory `json:"category"`
	Fees        float64               `json:"fees"`
	Duration    string                `json:"duration"`
	Eligibility string                `json:"eligibility,omitempty"`
}

// NewCourseSummary builds a CourseSummary, or nil when c is nil
func NewCourseSummary(c *models.Course) *CourseSummary {
	if c == nil {
		return nil
	}
	return &CourseSummary{
		ID:          c.ID,
		Name:        c.Name,
		Category:    c.Category,
		Fees:        c.Fees,
		Duration:    c.Duration,
		Eligibility: c.Eligibility,
	}
}
