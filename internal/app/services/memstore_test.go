package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/app/repositories"
	"github.com/yigit/campusadmit/internal/pkg/apperrors"
)

// memStore is an in-memory stand-in for the Postgres repositories. It keeps
// the same contract: not-found sentinels, unique (user, course) admissions,
// version-guarded course writes and all-or-nothing transactions.
type memStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	users            map[int64]*models.User
	tokens           map[string]*memToken
	courses          map[int64]*models.Course
	admissions       map[int64]*models.Admission
	simpleAdmissions map[int64]*models.SimpleAdmission
	contacts         map[int64]*models.Contact

	nextID int64
	seq    int64

	// seatConflicts makes the next N UpdateSeats calls report a lost race.
	seatConflicts int
	seatWrites    int
}

type memToken struct {
	userID    int64
	expiresAt time.Time
	revoked   bool
}

func newMemStore() *memStore {
	return &memStore{
		users:            map[int64]*models.User{},
		tokens:           map[string]*memToken{},
		courses:          map[int64]*models.Course{},
		admissions:       map[int64]*models.Admission{},
		simpleAdmissions: map[int64]*models.SimpleAdmission{},
		contacts:         map[int64]*models.Contact{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

type memSnapshot struct {
	users            map[int64]models.User
	courses          map[int64]models.Course
	admissions       map[int64]models.Admission
	simpleAdmissions map[int64]models.SimpleAdmission
	contacts         map[int64]models.Contact
}

func (m *memStore) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := memSnapshot{
		users:            map[int64]models.User{},
		courses:          map[int64]models.Course{},
		admissions:       map[int64]models.Admission{},
		simpleAdmissions: map[int64]models.SimpleAdmission{},
		contacts:         map[int64]models.Contact{},
	}
	for k, v := range m.users {
		s.users[k] = *v
	}
	for k, v := range m.courses {
		s.courses[k] = *v
	}
	for k, v := range m.admissions {
		s.admissions[k] = *v
	}
	for k, v := range m.simpleAdmissions {
		s.simpleAdmissions[k] = *v
	}
	for k, v := range m.contacts {
		s.contacts[k] = *v
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = map[int64]*models.User{}
	for k, v := range s.users {
		v := v
		m.users[k] = &v
	}
	m.courses = map[int64]*models.Course{}
	for k, v := range s.courses {
		v := v
		m.courses[k] = &v
	}
	m.admissions = map[int64]*models.Admission{}
	for k, v := range s.admissions {
		v := v
		m.admissions[k] = &v
	}
	m.simpleAdmissions = map[int64]*models.SimpleAdmission{}
	for k, v := range s.simpleAdmissions {
		v := v
		m.simpleAdmissions[k] = &v
	}
	m.contacts = map[int64]*models.Contact{}
	for k, v := range s.contacts {
		v := v
		m.contacts[k] = &v
	}
}

// WithinTx serializes transactions and rolls the store back on error.
func (m *memStore) WithinTx(ctx context.Context, fn repositories.TxFunc) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	before := m.snapshot()
	err := fn(ctx, &repositories.TxRepositories{
		Courses:          memCourses{m},
		Admissions:       memAdmissions{m},
		SimpleAdmissions: memSimpleAdmissions{m},
		Sequences:        memSequences{m},
	})
	if err != nil {
		m.restore(before)
	}
	return err
}

func (m *memStore) addUser(name, email string, role models.RoleType) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &models.User{ID: m.id(), Name: name, Email: email, Phone: "9876543210", RoleType: role, IsActive: true, CreatedAt: time.Now()}
	m.users[u.ID] = u
	cp := *u
	return &cp
}

func (m *memStore) addCourse(name string, seats int) *models.Course {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := models.NewCourse(name, "desc", "4 years", 1000, models.CategoryEngineering, "12th pass", seats, 1)
	c.ID = m.id()
	c.Version = 1
	m.courses[c.ID] = c
	cp := *c
	return &cp
}

func (m *memStore) course(id int64) models.Course {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.courses[id]
}

func (m *memStore) admissionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.admissions)
}

// memUsers implements IUserRepository.
type memUsers struct{ m *memStore }

func (r memUsers) Create(ctx context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = r.m.id()
	user.CreatedAt = time.Now()
	cp := *user
	r.m.users[user.ID] = &cp
	return nil
}

func (r memUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	out := map[int64]*models.User{}
	for _, id := range ids {
		if u, err := r.GetByID(ctx, id); err == nil {
			out[id] = u
		}
	}
	return out, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r memUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r memUsers) List(ctx context.Context) ([]*models.User, error) {
	return r.ListRecent(ctx, 0)
}

func (r memUsers) ListRecent(ctx context.Context, limit int) ([]*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*models.User, 0, len(r.m.users))
	for _, u := range r.m.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memUsers) Count(ctx context.Context) (int64, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var admins int64
	for _, u := range r.m.users {
		if u.RoleType == models.RoleAdmin {
			admins++
		}
	}
	return int64(len(r.m.users)), admins, nil
}

func (r memUsers) update(id int64, fn func(u *models.User)) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	fn(u)
	return nil
}

func (r memUsers) UpdateProfile(ctx context.Context, userID int64, name, phone string) error {
	return r.update(userID, func(u *models.User) { u.Name, u.Phone = name, phone })
}

func (r memUsers) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return r.update(userID, func(u *models.User) { u.Password = passwordHash })
}

func (r memUsers) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	return r.update(userID, func(u *models.User) { u.LastLoginAt = &at })
}

func (r memUsers) SetActive(ctx context.Context, userID int64, active bool) error {
	return r.update(userID, func(u *models.User) { u.IsActive = active })
}

// memTokens implements ITokenRepository.
type memTokens struct{ m *memStore }

func (r memTokens) CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.tokens[token] = &memToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (r memTokens) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.tokens[token]
	switch {
	case !ok:
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	case t.revoked:
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	case t.expiresAt.Before(time.Now()):
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return t.userID, t.expiresAt, nil
}

func (r memTokens) RevokeToken(ctx context.Context, token string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.tokens[token]
	if !ok || t.revoked {
		return apperrors.ErrTokenNotFound
	}
	t.revoked = true
	return nil
}

func (r memTokens) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, t := range r.m.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

func (r memTokens) CleanupExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for k, t := range r.m.tokens {
		if t.revoked || t.expiresAt.Before(now) {
			delete(r.m.tokens, k)
			n++
		}
	}
	return n, nil
}

// memCourses implements ICourseRepository.
type memCourses struct{ m *memStore }

func (r memCourses) Create(ctx context.Context, course *models.Course) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	course.ID = r.m.id()
	course.Version = 1
	cp := *course
	r.m.courses[course.ID] = &cp
	return nil
}

func (r memCourses) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (r memCourses) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Course, error) {
	out := map[int64]*models.Course{}
	for _, id := range ids {
		if c, err := r.GetByID(ctx, id); err == nil {
			out[id] = c
		}
	}
	return out, nil
}

func (r memCourses) List(ctx context.Context, activeOnly bool) ([]*models.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Course
	for _, c := range r.m.courses {
		if activeOnly && !c.IsActive {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memCourses) Count(ctx context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.courses)), nil
}

func (r memCourses) Update(ctx context.Context, course *models.Course) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.courses[course.ID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if c.Version != course.Version {
		return repositories.ErrVersionConflict
	}
	course.Version++
	cp := *course
	r.m.courses[course.ID] = &cp
	return nil
}

func (r memCourses) UpdateSeats(ctx context.Context, id, expectedVersion int64, availableSeats int) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.seatWrites++
	c, ok := r.m.courses[id]
	if !ok {
		return 0, apperrors.ErrCourseNotFound
	}
	if r.m.seatConflicts > 0 {
		r.m.seatConflicts--
		return 0, repositories.ErrVersionConflict
	}
	if c.Version != expectedVersion {
		return 0, repositories.ErrVersionConflict
	}
	c.AvailableSeats = availableSeats
	c.Version++
	return c.Version, nil
}

func (r memCourses) Delete(ctx context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	for _, a := range r.m.admissions {
		if a.CourseID == id {
			return apperrors.ErrCourseHasRequests
		}
	}
	delete(r.m.courses, id)
	return nil
}

// memAdmissions implements IAdmissionRepository.
type memAdmissions struct{ m *memStore }

func (r memAdmissions) Create(ctx context.Context, admission *models.Admission) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range r.m.admissions {
		if a.UserID == admission.UserID && a.CourseID == admission.CourseID {
			return apperrors.ErrDuplicateApplication
		}
		if a.ApplicationNumber == admission.ApplicationNumber {
			return apperrors.ErrApplicationNumberExists
		}
	}
	now := time.Now()
	admission.ID = r.m.id()
	admission.SubmittedAt, admission.CreatedAt, admission.UpdatedAt = now, now, now
	cp := *admission
	r.m.admissions[admission.ID] = &cp
	return nil
}

func (r memAdmissions) GetByID(ctx context.Context, id int64) (*models.Admission, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.admissions[id]
	if !ok {
		return nil, apperrors.ErrAdmissionNotFound
	}
	cp := *a
	return &cp, nil
}

// GetByIDForUpdate needs no extra lock here: WithinTx already serializes.
func (r memAdmissions) GetByIDForUpdate(ctx context.Context, id int64) (*models.Admission, error) {
	return r.GetByID(ctx, id)
}

func (r memAdmissions) ExistsForUserCourse(ctx context.Context, userID, courseID int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range r.m.admissions {
		if a.UserID == userID && a.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r memAdmissions) list(match func(a *models.Admission) bool) []*models.Admission {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Admission
	for _, a := range r.m.admissions {
		if match(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r memAdmissions) ListByUser(ctx context.Context, userID int64) ([]*models.Admission, error) {
	return r.list(func(a *models.Admission) bool { return a.UserID == userID }), nil
}

func (r memAdmissions) ListAll(ctx context.Context) ([]*models.Admission, error) {
	return r.list(func(*models.Admission) bool { return true }), nil
}

func (r memAdmissions) UpdateStatus(ctx context.Context, id int64, status models.AdmissionStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.admissions[id]
	if !ok {
		return apperrors.ErrAdmissionNotFound
	}
	a.Status = status
	return nil
}

func (r memAdmissions) Delete(ctx context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.admissions[id]; !ok {
		return apperrors.ErrAdmissionNotFound
	}
	delete(r.m.admissions, id)
	return nil
}

func (r memAdmissions) DeleteByCourse(ctx context.Context, courseID int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for id, a := range r.m.admissions {
		if a.CourseID == courseID {
			delete(r.m.admissions, id)
			n++
		}
	}
	return n, nil
}

func (r memAdmissions) CountHoldingByCourse(ctx context.Context, courseID int64) (int64, error) {
	held := r.list(func(a *models.Admission) bool {
		return a.CourseID == courseID && a.Status != models.AdmissionRejected
	})
	return int64(len(held)), nil
}

func (r memAdmissions) CountByStatus(ctx context.Context) (map[models.AdmissionStatus]int64, error) {
	out := map[models.AdmissionStatus]int64{}
	for _, a := range r.list(func(*models.Admission) bool { return true }) {
		out[a.Status]++
	}
	return out, nil
}

// memSimpleAdmissions implements ISimpleAdmissionRepository.
type memSimpleAdmissions struct{ m *memStore }

func (r memSimpleAdmissions) Create(ctx context.Context, admission *models.SimpleAdmission) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	admission.ID = r.m.id()
	admission.CreatedAt = time.Now()
	cp := *admission
	r.m.simpleAdmissions[admission.ID] = &cp
	return nil
}

func (r memSimpleAdmissions) GetByID(ctx context.Context, id int64) (*models.SimpleAdmission, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.simpleAdmissions[id]
	if !ok {
		return nil, apperrors.ErrSimpleAdmissionNotFound
	}
	cp := *a
	return &cp, nil
}

func (r memSimpleAdmissions) List(ctx context.Context) ([]*models.SimpleAdmission, error) {
	return r.ListRecent(ctx, 0)
}

func (r memSimpleAdmissions) ListRecent(ctx context.Context, limit int) ([]*models.SimpleAdmission, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.SimpleAdmission
	for _, a := range r.m.simpleAdmissions {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memSimpleAdmissions) Count(ctx context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.simpleAdmissions)), nil
}

func (r memSimpleAdmissions) UpdateStatus(ctx context.Context, id int64, status models.AdmissionStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.simpleAdmissions[id]
	if !ok {
		return apperrors.ErrSimpleAdmissionNotFound
	}
	a.Status = status
	return nil
}

func (r memSimpleAdmissions) Delete(ctx context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.simpleAdmissions[id]; !ok {
		return apperrors.ErrSimpleAdmissionNotFound
	}
	delete(r.m.simpleAdmissions, id)
	return nil
}

// memContacts implements IContactRepository.
type memContacts struct{ m *memStore }

func (r memContacts) Create(ctx context.Context, contact *models.Contact) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	contact.ID = r.m.id()
	contact.CreatedAt = time.Now()
	cp := *contact
	r.m.contacts[contact.ID] = &cp
	return nil
}

func (r memContacts) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.contacts[id]
	if !ok {
		return nil, apperrors.ErrContactNotFound
	}
	cp := *c
	return &cp, nil
}

func (r memContacts) List(ctx context.Context) ([]*models.Contact, error) {
	return r.ListRecent(ctx, 0)
}

func (r memContacts) ListRecent(ctx context.Context, limit int) ([]*models.Contact, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Contact
	for _, c := range r.m.contacts {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memContacts) Count(ctx context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.contacts)), nil
}

func (r memContacts) Update(ctx context.Context, contact *models.Contact) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.contacts[contact.ID]; !ok {
		return apperrors.ErrContactNotFound
	}
	cp := *contact
	r.m.contacts[contact.ID] = &cp
	return nil
}

func (r memContacts) Delete(ctx context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.contacts[id]; !ok {
		return apperrors.ErrContactNotFound
	}
	delete(r.m.contacts, id)
	return nil
}

// memSequences implements ISequenceRepository. Values survive rollbacks,
// like a Postgres sequence.
type memSequences struct{ m *memStore }

func (r memSequences) NextApplicationSequence(ctx context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.seq++
	return r.m.seq, nil
}

// recordingNotifier captures notifications instead of sending mail.
type recordingNotifier struct {
	mu       sync.Mutex
	statuses []string
	replies  []string
}

func (n *recordingNotifier) SendAdmissionStatusEmail(toEmail, toName, courseName, applicationNumber, status string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, applicationNumber+":"+status)
	return nil
}

func (n *recordingNotifier) SendContactResponseEmail(toEmail, toName, subject, response string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.replies = append(n.replies, toEmail)
	return nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
