package dto

import "github.com/yigit/campusadmit/internal/app/models"

// AdmissionCounts breaks full admissions down by status
type AdmissionCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// DashboardStats is the admin overview
type DashboardStats struct {
	TotalUsers             int64                     `json:"totalUsers"`
	TotalAdmins            int64                     `json:"totalAdmins"`
	TotalCourses           int64                     `json:"totalCourses"`
	TotalContacts          int64                     `json:"totalContacts"`
	TotalSimpleAdmissions  int64                     `json:"totalSimpleAdmissions"`
	Admissions             AdmissionCounts           `json:"admissions"`
	RecentUsers            []UserResponse            `json:"recentUsers"`
	RecentContacts         []*models.Contact         `json:"recentContacts"`
	RecentSimpleAdmissions []*models.SimpleAdmission `json:"recentSimpleAdmissions"`
}
