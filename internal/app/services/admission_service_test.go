package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/app/models/dto"
	"github.com/yigit/campusadmit/internal/app/repositories"
	"github.com/yigit/campusadmit/internal/pkg/apperrors"
)

func float(v float64) *float64 { return &v }

func admissionRequest(courseID int64) *dto.CreateAdmissionRequest {
	return &dto.CreateAdmissionRequest{
		CourseID: courseID,
		PersonalInfo: dto.PersonalInfoRequest{
			FullName:    "Asha Verma",
			DateOfBirth: "2006-04-12",
			Gender:      "Female",
			Address:     "12 MG Road",
			City:        "Pune",
			State:       "Maharashtra",
			Pincode:     "411001",
		},
		AcademicInfo: dto.AcademicInfoRequest{
			TenthMarks:   float(91.5),
			TwelfthMarks: float(88),
			Stream:       "Science",
		},
	}
}

type admissionFixture struct {
	store    *memStore
	notifier *recordingNotifier
	svc      *AdmissionService
}

func newAdmissionFixture() *admissionFixture {
	store := newMemStore()
	notifier := &recordingNotifier{}
	svc := NewAdmissionService(
		memAdmissions{store}, memCourses{store}, memUsers{store}, store,
		NewApplicationNumberGenerator("APP"), notifier, DefaultSeatUpdateAttempts, testLogger(),
	)
	return &admissionFixture{store: store, notifier: notifier, svc: svc}
}

func (f *admissionFixture) applicant(name string) models.Principal {
	return f.store.addUser(name, strings.ToLower(name)+"@example.com", models.RoleUser).Principal()
}

func (f *admissionFixture) setStatus(t *testing.T, id int64, status models.AdmissionStatus) {
	t.Helper()
	if _, err := f.svc.Transition(context.Background(), id, &dto.UpdateStatusRequest{Status: string(status)}); err != nil {
		t.Fatalf("Transition(%d, %s) error = %v", id, status, err)
	}
}

func TestSingleSeatLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newAdmissionFixture()
	course := f.store.addCourse("B.Tech CSE", 1)
	a, b := f.applicant("Asha"), f.applicant("Bala")

	submitted, err := f.svc.Submit(ctx, a, admissionRequest(course.ID))
	if err != nil {
		t.Fatalf("Submit(A) error = %v", err)
	}
	if got := f.store.course(course.ID).AvailableSeats; got != 1 {
		t.Fatalf("after A submits availableSeats = %d, want 1", got)
	}
	if submitted.Admission.Status != models.AdmissionPending {
		t.Errorf("new admission status = %s, want pending", submitted.Admission.Status)
	}

	id := submitted.Admission.ID
	f.setStatus(t, id, models.AdmissionRejected)
	if got := f.store.course(course.ID).AvailableSeats; got != 1 {
		t.Fatalf("after pending -> rejected availableSeats = %d, want 1", got)
	}

	f.setStatus(t, id, models.AdmissionApproved)
	if got := f.store.course(course.ID).AvailableSeats; got != 0 {
		t.Fatalf("after approve availableSeats = %d, want 0", got)
	}

	_, err = f.svc.Submit(ctx, b, admissionRequest(course.ID))
	if !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("Submit(B) error = %v, want InvalidState", err)
	}

	if err := f.svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if got := f.store.course(course.ID).AvailableSeats; got != 1 {
		t.Fatalf("after delete availableSeats = %d, want 1", got)
	}
	if n := len(f.notifier.statuses); n != 2 {
		t.Errorf("status notifications = %d, want 2", n)
	}
}

func TestSubmitApproveDeleteRestoresSeats(t *testing.T) {
	for _, seats := range []int{1, 2, 3, 10} {
		t.Run(fmt.Sprintf("seats=%d", seats), func(t *testing.T) {
			ctx := context.Background()
			f := newAdmissionFixture()
			course := f.store.addCourse("B.Des", seats)
			before := f.store.course(course.ID).AvailableSeats

			d, err := f.svc.Submit(ctx, f.applicant("Asha"), admissionRequest(course.ID))
			if err != nil {
				t.Fatalf("Submit error = %v", err)
			}
			if got := f.store.course(course.ID).AvailableSeats; got != before {
				t.Fatalf("after submit availableSeats = %d, want %d", got, before)
			}
			f.setStatus(t, d.Admission.ID, models.AdmissionApproved)
			if got := f.store.course(course.ID).AvailableSeats; got != before-1 {
				t.Fatalf("after approve availableSeats = %d, want %d", got, before-1)
			}
			if err := f.svc.Delete(ctx, d.Admission.ID); err != nil {
				t.Fatalf("Delete error = %v", err)
			}
			if got := f.store.course(course.ID).AvailableSeats; got != before {
				t.Fatalf("after delete availableSeats = %d, want %d", got, before)
			}
		})
	}
}

func TestApprovedApplicantsUseOneSeatEach(t *testing.T) {
	ctx := context.Background()
	f := newAdmissionFixture()
	course := f.store.addCourse("BBA", 3)

	for _, name := range []string{"Asha", "Bala"} {
		d, err := f.svc.Submit(ctx, f.applicant(name), admissionRequest(course.ID))
		if err != nil {
			t.Fatalf("Submit(%s) error = %v", name, err)
		}
		f.setStatus(t, d.Admission.ID, models.AdmissionApproved)
	}
	if got := f.store.course(course.ID).AvailableSeats; got != 1 {
		t.Fatalf("availableSeats = %d, want 1", got)
	}

	third, err := f.svc.Submit(ctx, f.applicant("Chitra"), admissionRequest(course.ID))
	if err != nil {
		t.Fatalf("third Submit error = %v, want the last seat open", err)
	}
	f.setStatus(t, third.Admission.ID, models.AdmissionApproved)

	_, err = f.svc.Submit(ctx, f.applicant("Dev"), admissionRequest(course.ID))
	if !errors.Is(err, apperrors.ErrCourseFull) {
		t.Fatalf("fourth Submit error = %v, want ErrCourseFull", err)
	}
}

// staleStatusReads answers plain reads with an outdated status, the way a
// concurrent transaction sees the row before another one commits.
type staleStatusReads struct {
	repositories.IAdmissionRepository
	status models.AdmissionStatus
}

func (r staleStatusReads) GetByID(ctx context.Context, id int64) (*models.Admission, error) {
	a, err := r.IAdmissionRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = r.status
	return a, nil
}

type staleTx struct {
	store  *memStore
	status models.AdmissionStatus
}

func (tx staleTx) WithinTx(ctx context.Context, fn repositories.TxFunc) error {
	return tx.store.WithinTx(ctx, func(ctx context.Context, repos *repositories.TxRepositories) error {
		repos.Admissions = staleStatusReads{IAdmissionRepository: repos.Admissions, status: tx.status}
		return fn(ctx, repos)
	})
}

func TestStatusChangesReadThroughRowLock(t *testing.T) {
	ctx := context.Background()
	f := newAdmissionFixture()
	course := f.store.addCourse("MBA", 5)
	d, err := f.svc.Submit(ctx, f.applicant("Asha"), admissionRequest(course.ID))
	if err != nil {
		t.Fatalf("Submit error = %v", err)
	}
	f.setStatus(t, d.Admission.ID, models.AdmissionApproved)

	lagging := NewAdmissionService(
		memAdmissions{f.store}, memCourses{f.store}, memUsers{f.store},
		staleTx{store: f.store, status: models.AdmissionPending},
		NewApplicationNumberGenerator("APP"), nil, DefaultSeatUpdateAttempts, testLogger(),
	)

	if _, err := lagging.Transition(ctx, d.Admission.ID, &dto.UpdateStatusRequest{Status: "approved"}); err != nil {
		t.Fatalf("second approve error = %v", err)
	}
	if got := f.store.course(course.ID).AvailableSeats; got != 4 {
		t.Fatalf("after repeated approve availableSeats = %d, want 4", got)
	}

	if err := lagging.Delete(ctx, d.Admission.ID); err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if got := f.store.course(course.ID).AvailableSeats; got != 5 {
		t.Fatalf("after delete availableSeats = %d, want 5", got)
	}
}

func TestSubmitDuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	f := newAdmissionFixture()
	course := f.store.addCourse("B.Com", 10)
	a := f.applicant("Asha")

	if _, err := f.svc.Submit(ctx, a, admissionRequest(course.ID)); err != nil {
		t.Fatalf("first Submit error = %v", err)
	}
	_, err := f.svc.Submit(ctx, a, admissionRequest(course.ID))
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("second Submit error = %v, want Conflict", err)
	}
	if got := f.store.course(course.ID).AvailableSeats; got != 10 {
		t.Errorf("availableSeats = %d, want 10", got)
	}
}

func TestSubmitInvalidPincode(t *testing.T) {
	f := newAdmissionFixture()
	course := f.store.addCourse("MBBS", 5)
	req := admissionRequest(course.ID)
	req.PersonalInfo.Pincode = "1234"

	_, err := f.svc.Submit(context.Background(), f.applicant("Asha"), req)

	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Submit error = %v, want *ValidationError", err)
	}
	found := false
	for _, fe := range verr.Fields {
		if fe.Field == "personalInfo.pincode" {
			found = true
		}
	}
	if !found {
		t.Errorf("validation fields = %+v, want personalInfo.pincode", verr.Fields)
	}
	if n := f.store.admissionCount(); n != 0 {
		t.Errorf("admissions stored = %d, want 0", n)
	}
	if got := f.store.course(course.ID).AvailableSeats; got != 5 {
		t.Errorf("availableSeats = %d, want 5", got)
	}
}

func TestSubmitGate(t *testing.T) {
	ctx := context.Background()
	f := newAdmissionFixture()
	inactive := f.store.addCourse("BA History", 3)
	f.store.courses[inactive.ID].IsActive = false

	tests := []struct {
		name     string
		courseID int64
		want     error
	}{
		{"inactive course", inactive.ID, apperrors.ErrCourseInactive},
		{"missing course", 999, apperrors.ErrResourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Submit(ctx, f.applicant("Asha"+tt.name), admissionRequest(tt.courseID))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Submit error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSubmitAssignsUniqueApplicationNumbers(t *testing.T) {
	ctx := context.Background()
	f := newAdmissionFixture()
	course := f.store.addCourse("B.Sc Physics", 10)

	seen := map[string]bool{}
	for _, name := range []string{"Asha", "Bala", "Chitra"} {
		d, err := f.svc.Submit(ctx, f.applicant(name), admissionRequest(course.ID))
		if err != nil {
			t.Fatalf("Submit(%s) error = %v", name, err)
		}
		num := d.Admission.ApplicationNumber
		if !strings.HasPrefix(num, "APP") || len(num) != len("APP")+8+6 {
			t.Errorf("application number %q has unexpected shape", num)
		}
		if seen[num] {
			t.Errorf("application number %q issued twice", num)
		}
		seen[num] = true
	}
}

func TestTransitionSeatAccounting(t *testing.T) {
	ctx := context.Background()
	f := newAdmissionFixture()
	course := f.store.addCourse("BBA", 3)
	d, err := f.svc.Submit(ctx, f.applicant("Asha"), admissionRequest(course.ID))
	if err != nil {
		t.Fatalf("Submit error = %v", err)
	}
	id := d.Admission.ID

	steps := []struct {
		to   models.AdmissionStatus
		want int
	}{
		{models.AdmissionRejected, 3},
		{models.AdmissionApproved, 2},
		{models.AdmissionApproved, 2},
		{models.AdmissionPending, 3},
		{models.AdmissionApproved, 2},
		{models.AdmissionRejected, 3},
		{models.AdmissionRejected, 3},
	}
	for i, step := range steps {
		f.setStatus(t, id, step.to)
		c := f.store.course(course.ID)
		if c.AvailableSeats != step.want {
			t.Fatalf("step %d (-> %s): availableSeats = %d, want %d", i, step.to, c.AvailableSeats, step.want)
		}
		if c.AvailableSeats < 0 || c.AvailableSeats > c.Seats {
			t.Fatalf("step %d: availableSeats %d outside [0, %d]", i, c.AvailableSeats, c.Seats)
		}
	}
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	f := newAdmissionFixture()
	_, err := f.svc.Transition(context.Background(), 1, &dto.UpdateStatusRequest{Status: "waitlisted"})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("Transition error = %v, want validation failure", err)
	}
}

func TestTransitionRollsBackWhenSeatUpdateKeepsLosing(t *testing.T) {
	ctx := context.Background()
	f := newAdmissionFixture()
	course := f.store.addCourse("B.Arch", 2)
	d, err := f.svc.Submit(ctx, f.applicant("Asha"), admissionRequest(course.ID))
	if err != nil {
		t.Fatalf("Submit error = %v", err)
	}

	f.store.seatConflicts = DefaultSeatUpdateAttempts
	_, err = f.svc.Transition(ctx, d.Admission.ID, &dto.UpdateStatusRequest{Status: "approved"})
	if !errors.Is(err, apperrors.ErrSeatUpdateConflict) {
		t.Fatalf("Transition error = %v, want ErrSeatUpdateConflict", err)
	}
	if !errors.Is(err, apperrors.ErrInternal) {
		t.Errorf("seat conflict should surface as internal error")
	}

	stored, _ := memAdmissions{f.store}.GetByID(ctx, d.Admission.ID)
	if stored.Status != models.AdmissionPending {
		t.Errorf("status after failed transition = %s, want pending", stored.Status)
	}
	if got := f.store.course(course.ID).AvailableSeats; got != 2 {
		t.Errorf("availableSeats after failed transition = %d, want 2", got)
	}
}

func TestTransitionRetriesLostRace(t *testing.T) {
	ctx := context.Background()
	f := newAdmissionFixture()
	course := f.store.addCourse("B.Pharm", 2)
	d, err := f.svc.Submit(ctx, f.applicant("Asha"), admissionRequest(course.ID))
	if err != nil {
		t.Fatalf("Submit error = %v", err)
	}

	f.store.seatConflicts = DefaultSeatUpdateAttempts - 1
	f.setStatus(t, d.Admission.ID, models.AdmissionApproved)
	if got := f.store.course(course.ID).AvailableSeats; got != 1 {
		t.Errorf("availableSeats = %d, want 1", got)
	}
}

func TestConcurrentApprovalsCountEachAdmissionOnce(t *testing.T) {
	ctx := context.Background()
	f := newAdmissionFixture()
	course := f.store.addCourse("B.Tech ECE", 5)

	var ids []int64
	for i := 0; i < 3; i++ {
		d, err := f.svc.Submit(ctx, f.applicant("user"+string(rune('a'+i))), admissionRequest(course.ID))
		if err != nil {
			t.Fatalf("Submit error = %v", err)
		}
		ids = append(ids, d.Admission.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				_, err := f.svc.Transition(ctx, id, &dto.UpdateStatusRequest{Status: "approved"})
				if err != nil {
					t.Errorf("Transition(%d) error = %v", id, err)
				}
			}(id)
		}
	}
	wg.Wait()

	if got := f.store.course(course.ID).AvailableSeats; got != 2 {
		t.Errorf("availableSeats = %d, want 2", got)
	}
}

func TestGetVisibility(t *testing.T) {
	ctx := context.Background()
	f := newAdmissionFixture()
	course := f.store.addCourse("BCA", 5)
	owner := f.applicant("Asha")
	other := f.applicant("Bala")
	admin := f.store.addUser("Admin", "admin@example.com", models.RoleAdmin).Principal()

	d, err := f.svc.Submit(ctx, owner, admissionRequest(course.ID))
	if err != nil {
		t.Fatalf("Submit error = %v", err)
	}

	tests := []struct {
		name      string
		principal models.Principal
		wantErr   error
	}{
		{"owner", owner, nil},
		{"admin", admin, nil},
		{"other user", other, apperrors.ErrPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.Get(ctx, tt.principal, d.Admission.ID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Get error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get error = %v", err)
			}
			if got.Course == nil || got.Course.ID != course.ID {
				t.Errorf("joined course = %+v, want id %d", got.Course, course.ID)
			}
		})
	}
}

func TestListJoinsCoursesAndApplicants(t *testing.T) {
	ctx := context.Background()
	f := newAdmissionFixture()
	c1 := f.store.addCourse("BSc", 5)
	c2 := f.store.addCourse("MSc", 5)
	a := f.applicant("Asha")
	b := f.applicant("Bala")

	for _, sub := range []struct {
		p models.Principal
		c int64
	}{{a, c1.ID}, {a, c2.ID}, {b, c1.ID}} {
		if _, err := f.svc.Submit(ctx, sub.p, admissionRequest(sub.c)); err != nil {
			t.Fatalf("Submit error = %v", err)
		}
	}

	mine, err := f.svc.ListMine(ctx, a)
	if err != nil {
		t.Fatalf("ListMine error = %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("ListMine len = %d, want 2", len(mine))
	}
	for _, d := range mine {
		if d.Course == nil {
			t.Errorf("admission %d has no course joined", d.Admission.ID)
		}
	}

	all, err := f.svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListAll len = %d, want 3", len(all))
	}
	for _, d := range all {
		if d.User == nil || d.Course == nil {
			t.Errorf("admission %d missing joins: user=%v course=%v", d.Admission.ID, d.User, d.Course)
		}
	}
}
