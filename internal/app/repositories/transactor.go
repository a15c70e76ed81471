package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusadmit/internal/db"
)

// TxRepositories are repositories bound to a single transaction.
type TxRepositories struct {
	Courses          ICourseRepository
	Admissions       IAdmissionRepository
	SimpleAdmissions ISimpleAdmissionRepository
	Sequences        ISequenceRepository
}

// TxFunc runs inside a transaction; returning an error rolls it back.
type TxFunc func(ctx context.Context, repos *TxRepositories) error

// Transactor runs units of work atomically.
type Transactor interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// PgTransactor implements Transactor on top of db.PostgresDB.WithTransaction.
type PgTransactor struct {
	db *db.PostgresDB
}

// NewTransactor creates a new PgTransactor
func NewTransactor(database *db.PostgresDB) *PgTransactor {
	return &PgTransactor{db: database}
}

// WithinTx implements Transactor.
func (t *PgTransactor) WithinTx(ctx context.Context, fn TxFunc) error {
	return t.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, newTxRepositories(tx))
	})
}

func newTxRepositories(q Querier) *TxRepositories {
	return &TxRepositories{
		Courses:          NewCourseRepository(q),
		Admissions:       NewAdmissionRepository(q),
		SimpleAdmissions: NewSimpleAdmissionRepository(q),
		Sequences:        NewSequenceRepository(q),
	}
}
