package dto

import (
	"strings"
	"time"

	"github.com/yigit/campusadmit/internal/app/models"
)

// PersonalInfoRequest is the applicant section of an admission form
type PersonalInfoRequest struct {
	FullName    string `json:"fullName" validate:"required,max=100"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,isodate"`
	Gender      string `json:"gender" validate:"required,oneof=Male Female Other"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required,max=100"`
	State       string `json:"state" validate:"required,max=100"`
	Pincode     string `json:"pincode" validate:"required,pincode"`
}

// AcademicInfoRequest is the qualification section of an admission form
type AcademicInfoRequest struct {
	TenthMarks   *float64 `json:"tenthMarks" validate:"required,gte=0,lte=100"`
	TwelfthMarks *float64 `json:"twelfthMarks" validate:"required,gte=0,lte=100"`
	Stream       string   `json:"stream" validate:"required,max=100"`
}

// CreateAdmissionRequest is a full admission application
type CreateAdmissionRequest struct {
	CourseID     int64               `json:"course" validate:"required,gt=0"`
	PersonalInfo PersonalInfoRequest `json:"personalInfo"`
	AcademicInfo AcademicInfoRequest `json:"academicInfo"`
}

// Normalize trims text fields
func (r *CreateAdmissionRequest) Normalize() {
	p := &r.PersonalInfo
	p.FullName = strings.TrimSpace(p.FullName)
	p.DateOfBirth = strings.TrimSpace(p.DateOfBirth)
	p.Gender = strings.TrimSpace(p.Gender)
	p.Address = strings.TrimSpace(p.Address)
	p.City = strings.TrimSpace(p.City)
	p.State = strings.TrimSpace(p.State)
	p.Pincode = strings.TrimSpace(p.Pincode)
	r.AcademicInfo.Stream = strings.TrimSpace(r.AcademicInfo.Stream)
}

// UpdateStatusRequest moves an admission to a new review status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// ApplicantSummary is the user excerpt embedded in admission responses
type ApplicantSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// NewApplicantSummary builds an ApplicantSummary, or nil when u is nil
func NewApplicantSummary(u *models.User) *ApplicantSummary {
	if u == nil {
		return nil
	}
	return &ApplicantSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

// PersonalInfoResponse renders the date of birth as a calendar date
type PersonalInfoResponse struct {
	FullName    string        `json:"fullName"`
	DateOfBirth string        `json:"dateOfBirth"`
	Gender      models.Gender `json:"gender"`
	Address     string        `json:"address"`
	City        string        `json:"city"`
	State       string        `json:"state"`
	Pincode     string        `json:"pincode"`
}

// AdmissionResponse is an admission with its applicant and course joined in
type AdmissionResponse struct {
	ID                int64                  `json:"id"`
	ApplicationNumber string                 `json:"applicationNumber"`
	Status            models.AdmissionStatus `json:"status"`
	UserID            int64                  `json:"userId"`
	CourseID          int64                  `json:"courseId"`
	User              *ApplicantSummary      `json:"user,omitempty"`
	Course            *CourseSummary         `json:"course,omitempty"`
	PersonalInfo      PersonalInfoResponse   `json:"personalInfo"`
	AcademicInfo      models.AcademicInfo    `json:"academicInfo"`
	SubmittedAt       time.Time              `json:"submittedAt"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// NewAdmissionResponse joins an admission with its optional user and course
func NewAdmissionResponse(a *models.Admission, user *models.User, course *models.Course) AdmissionResponse {
	p := a.PersonalInfo
	return AdmissionResponse{
		ID:                a.ID,
		ApplicationNumber: a.ApplicationNumber,
		Status:            a.Status,
		UserID:            a.UserID,
		CourseID:          a.CourseID,
		User:              NewApplicantSummary(user),
		Course:            NewCourseSummary(course),
		PersonalInfo: PersonalInfoResponse{
			FullName:    p.FullName,
			DateOfBirth: p.DateOfBirth.Format("2006-01-02"),
			Gender:      p.Gender,
			Address:     p.Address,
			City:        p.City,
			State:       p.State,
			Pincode:     p.Pincode,
		},
		AcademicInfo: a.AcademicInfo,
		SubmittedAt:  a.SubmittedAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// SubmitAdmissionResponse is returned after a successful submission
type SubmitAdmissionResponse struct {
	Admission         AdmissionResponse `json:"admission"`
	ApplicationNumber string            `json:"applicationNumber"`
}
