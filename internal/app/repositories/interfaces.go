package repositories

import (
	"context"
	"time"

	"github.com/yigit/campusadmit/internal/app/models"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	ListRecent(ctx context.Context, limit int) ([]*models.User, error)
	Count(ctx context.Context) (total int64, admins int64, err error)

	UpdateProfile(ctx context.Context, userID int64, name, phone string) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
	SetActive(ctx context.Context, userID int64, active bool) error
}

// ITokenRepository stores refresh tokens.
type ITokenRepository interface {
	CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	// GetTokenByValue returns the owner of a live token. Revoked and expired
	// tokens yield apperrors.ErrTokenRevoked / ErrTokenExpired.
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
	CleanupExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// ICourseRepository defines course persistence. Every write bumps Version.
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Course, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Course, error)
	Count(ctx context.Context) (int64, error)
	// Update writes every mutable column when course.Version still matches,
	// returning ErrVersionConflict otherwise.
	Update(ctx context.Context, course *models.Course) error
	// UpdateSeats is the compare-and-set seat write. It returns the new
	// version, or ErrVersionConflict when expectedVersion is stale.
	UpdateSeats(ctx context.Context, id, expectedVersion int64, availableSeats int) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// IAdmissionRepository defines admission persistence.
type IAdmissionRepository interface {
	Create(ctx context.Context, admission *models.Admission) error
	GetByID(ctx context.Context, id int64) (*models.Admission, error)
	// GetByIDForUpdate is GetByID holding a row lock for the rest of the
	// transaction. Status changes read the old status through it.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Admission, error)
	ExistsForUserCourse(ctx context.Context, userID, courseID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Admission, error)
	ListAll(ctx context.Context) ([]*models.Admission, error)
	UpdateStatus(ctx context.Context, id int64, status models.AdmissionStatus) error
	Delete(ctx context.Context, id int64) error
	// DeleteByCourse removes every admission of a course.
	DeleteByCourse(ctx context.Context, courseID int64) (int64, error)
	// CountHoldingByCourse counts pending and approved admissions for a course.
	CountHoldingByCourse(ctx context.Context, courseID int64) (int64, error)
	CountByStatus(ctx context.Context) (map[models.AdmissionStatus]int64, error)
}

// ISimpleAdmissionRepository defines persistence for quick enquiry admissions.
type ISimpleAdmissionRepository interface {
	Create(ctx context.Context, admission *models.SimpleAdmission) error
	GetByID(ctx context.Context, id int64) (*models.SimpleAdmission, error)
	List(ctx context.Context) ([]*models.SimpleAdmission, error)
	ListRecent(ctx context.Context, limit int) ([]*models.SimpleAdmission, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.AdmissionStatus) error
	Delete(ctx context.Context, id int64) error
}

// IContactRepository defines persistence for contact requests.
type IContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id int64) (*models.Contact, error)
	List(ctx context.Context) ([]*models.Contact, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Contact, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id int64) error
}

// ISequenceRepository hands out application number sequence values.
type ISequenceRepository interface {
	NextApplicationSequence(ctx context.Context) (int64, error)
}
