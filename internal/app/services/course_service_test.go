package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/app/models/dto"
	"github.com/yigit/campusadmit/internal/pkg/apperrors"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func newCourseService(store *memStore) *CourseService {
	return NewCourseService(memCourses{store}, store, DefaultSeatUpdateAttempts, testLogger())
}

func TestCourseCreate(t *testing.T) {
	store := newMemStore()
	svc := newCourseService(store)
	admin := models.Principal{UserID: 7, Role: models.RoleAdmin}

	course, err := svc.Create(context.Background(), admin, &dto.CreateCourseRequest{
		Name:        "  B.Tech Civil ",
		Description: "Four year programme",
		Duration:    "4 years",
		Fees:        float(150000),
		Category:    "Engineering",
		Eligibility: "12th with PCM",
		Seats:       intPtr(60),
	})
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	if course.Name != "B.Tech Civil" {
		t.Errorf("name = %q, want trimmed", course.Name)
	}
	if course.AvailableSeats != 60 || !course.IsActive || course.CreatedBy != 7 {
		t.Errorf("course = %+v, want 60 available, active, created by 7", course)
	}
}

func TestCourseCreateValidation(t *testing.T) {
	svc := newCourseService(newMemStore())
	_, err := svc.Create(context.Background(), models.Principal{UserID: 1, Role: models.RoleAdmin}, &dto.CreateCourseRequest{
		Name:     "Law",
		Category: "Law",
		Fees:     float(-1),
		Seats:    intPtr(0),
	})

	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Create error = %v, want *ValidationError", err)
	}
	want := map[string]bool{"category": false, "fees": false, "seats": false, "description": false}
	for _, fe := range verr.Fields {
		if _, ok := want[fe.Field]; ok {
			want[fe.Field] = true
		}
	}
	for field, seen := range want {
		if !seen {
			t.Errorf("missing validation error for %s in %+v", field, verr.Fields)
		}
	}
}

func TestCourseUpdateResizesSeats(t *testing.T) {
	tests := []struct {
		name          string
		seats         int
		taken         int
		newSeats      int
		wantAvailable int
	}{
		{"grow", 10, 4, 15, 11},
		{"shrink", 10, 4, 8, 4},
		{"shrink below taken clamps to zero", 10, 8, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			svc := newCourseService(store)
			c := store.addCourse("BSc", tt.seats)
			store.courses[c.ID].AvailableSeats = tt.seats - tt.taken

			got, err := svc.Update(context.Background(), c.ID, &dto.UpdateCourseRequest{Seats: intPtr(tt.newSeats)})
			if err != nil {
				t.Fatalf("Update error = %v", err)
			}
			if got.Seats != tt.newSeats || got.AvailableSeats != tt.wantAvailable {
				t.Errorf("seats/available = %d/%d, want %d/%d", got.Seats, got.AvailableSeats, tt.newSeats, tt.wantAvailable)
			}
		})
	}
}

func TestCourseUpdatePartial(t *testing.T) {
	store := newMemStore()
	svc := newCourseService(store)
	c := store.addCourse("BSc", 10)

	got, err := svc.Update(context.Background(), c.ID, &dto.UpdateCourseRequest{
		Name:     strPtr("BSc Chemistry"),
		IsActive: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("Update error = %v", err)
	}
	if got.Name != "BSc Chemistry" || got.IsActive || got.Seats != 10 || got.Duration != c.Duration {
		t.Errorf("course after partial update = %+v", got)
	}
}

func TestCourseToggleStatus(t *testing.T) {
	store := newMemStore()
	svc := newCourseService(store)
	c := store.addCourse("BSc", 10)

	got, err := svc.ToggleStatus(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("ToggleStatus error = %v", err)
	}
	if got.IsActive {
		t.Errorf("course still active after toggle")
	}
	active, _ := svc.ListActive(context.Background())
	if len(active) != 0 {
		t.Errorf("ListActive returned %d courses, want 0", len(active))
	}
	all, _ := svc.ListAll(context.Background())
	if len(all) != 1 {
		t.Errorf("ListAll returned %d courses, want 1", len(all))
	}
}

func TestCourseDelete(t *testing.T) {
	ctx := context.Background()
	f := newAdmissionFixture()
	svc := newCourseService(f.store)
	course := f.store.addCourse("BSc", 5)

	d, err := f.svc.Submit(ctx, f.applicant("Asha"), admissionRequest(course.ID))
	if err != nil {
		t.Fatalf("Submit error = %v", err)
	}

	if err := svc.Delete(ctx, course.ID); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("Delete with pending admission error = %v, want InvalidState", err)
	}

	f.setStatus(t, d.Admission.ID, models.AdmissionRejected)
	if err := svc.Delete(ctx, course.ID); err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if _, err := svc.Get(ctx, course.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("Get after delete error = %v, want not found", err)
	}
	if n := f.store.admissionCount(); n != 0 {
		t.Errorf("admissions left = %d, want 0", n)
	}
}

func TestCourseDeleteMissing(t *testing.T) {
	svc := newCourseService(newMemStore())
	if err := svc.Delete(context.Background(), 404); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("Delete error = %v, want not found", err)
	}
}
