package models

import "time"

// PersonalInfo is the applicant section of an admission form.
type PersonalInfo struct {
	FullName    string    `json:"fullName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Gender      Gender    `json:"gender"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Pincode     string    `json:"pincode"`
}

// AcademicInfo is the qualification section of an admission form.
type AcademicInfo struct {
	TenthMarks   float64 `json:"tenthMarks"`
	TwelfthMarks float64 `json:"twelfthMarks"`
	Stream       string  `json:"stream"`
}

// Admission links an applicant to a course. Only references are kept here;
// user and course details are joined at the API boundary.
type Admission struct {
	ID                int64           `json:"id" db:"id"`
	UserID            int64           `json:"userId" db:"user_id"`
	CourseID          int64           `json:"courseId" db:"course_id"`
	PersonalInfo      PersonalInfo    `json:"personalInfo"`
	AcademicInfo      AcademicInfo    `json:"academicInfo"`
	Status            AdmissionStatus `json:"status" db:"status"`
	ApplicationNumber string          `json:"applicationNumber" db:"application_number"`
	SubmittedAt       time.Time       `json:"submittedAt" db:"submitted_at"`
	CreatedAt         time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time       `json:"updatedAt" db:"updated_at"`
}
