package models

// RoleType defines the user role type
type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

// Valid reports whether r is a known role.
func (r RoleType) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// AdmissionStatus is the review status shared by full and simple admissions.
type AdmissionStatus string

const (
	AdmissionPending  AdmissionStatus = "pending"
	AdmissionApproved AdmissionStatus = "approved"
	AdmissionRejected AdmissionStatus = "rejected"
)

// AdmissionStatuses lists every status an admission can be moved to.
var AdmissionStatuses = []AdmissionStatus{AdmissionPending, AdmissionApproved, AdmissionRejected}

// Valid reports whether s is a known admission status.
func (s AdmissionStatus) Valid() bool {
	for _, known := range AdmissionStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ContactStatus tracks how far a contact request has been handled.
type ContactStatus string

const (
	ContactNew        ContactStatus = "new"
	ContactInProgress ContactStatus = "in-progress"
	ContactResolved   ContactStatus = "resolved"
)

// Valid reports whether s is a known contact status.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactInProgress, ContactResolved:
		return true
	}
	return false
}

// CourseCategory is the closed set of course categories.
type CourseCategory string

const (
	CategoryEngineering CourseCategory = "Engineering"
	CategoryMedical     CourseCategory = "Medical"
	CategoryArts        CourseCategory = "Arts"
	CategoryCommerce    CourseCategory = "Commerce"
	CategoryScience     CourseCategory = "Science"
	CategoryManagement  CourseCategory = "Management"
)

// Gender values accepted on an admission form.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Principal is the verified caller handed to services by the access guard.
type Principal struct {
	UserID int64
	Role   RoleType
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
