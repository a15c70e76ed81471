package repositories

import (
	"github.com/yigit/campusadmit/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository            *UserRepository
	TokenRepository           *TokenRepository
	CourseRepository          *CourseRepository
	AdmissionRepository       *AdmissionRepository
	SimpleAdmissionRepository *SimpleAdmissionRepository
	ContactRepository         *ContactRepository
	SequenceRepository        *SequenceRepository
	Transactor                *PgTransactor
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	pool := database.Pool
	return &Repositories{
		UserRepository:            NewUserRepository(pool),
		TokenRepository:           NewTokenRepository(pool),
		CourseRepository:          NewCourseRepository(pool),
		AdmissionRepository:       NewAdmissionRepository(pool),
		SimpleAdmissionRepository: NewSimpleAdmissionRepository(pool),
		ContactRepository:         NewContactRepository(pool),
		SequenceRepository:        NewSequenceRepository(pool),
		Transactor:                NewTransactor(database),
	}
}
