// Package services holds the business logic of the admissions backend.
//
// Services defined in this package:
//   - AuthService: registration, login, refresh-token rotation and profile
//   - UserService: admin account management
//   - CourseService: the course catalogue
//   - AdmissionService: submit, review and delete applications with seat reconciliation
//   - SimpleAdmissionService: the public enquiry form
//   - ContactService: contact requests and admin responses
//   - DashboardService: admin overview counts
package services
