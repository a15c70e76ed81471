package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/campusadmit/internal/pkg/logger"
)

// SequenceRepository reads from application_number_seq.
type SequenceRepository struct {
	db Querier
}

// NewSequenceRepository creates a new SequenceRepository
func NewSequenceRepository(db Querier) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// NextApplicationSequence returns the next value of the shared sequence.
func (r *SequenceRepository) NextApplicationSequence(ctx context.Context) (int64, error) {
	var next int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('application_number_seq')`).Scan(&next); err != nil {
		logger.Error().Err(err).Msg("Error reading application number sequence")
		return 0, fmt.Errorf("error reading application number sequence: %w", err)
	}
	return next, nil
}
