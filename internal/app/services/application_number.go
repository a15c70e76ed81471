package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/campusadmit/internal/app/repositories"
)

// DefaultApplicationNumberPrefix starts every application number.
const DefaultApplicationNumberPrefix = "APP"

// ApplicationNumberGenerator formats application numbers as
// <prefix><yyyymmdd><sequence>, e.g. APP20250614000042. The sequence is
// shared by full and simple admissions, so numbers never repeat across them.
type ApplicationNumberGenerator struct {
	prefix string
	now    func() time.Time
}

// NewApplicationNumberGenerator creates a generator with the given prefix
func NewApplicationNumberGenerator(prefix string) *ApplicationNumberGenerator {
	if prefix == "" {
		prefix = DefaultApplicationNumberPrefix
	}
	return &ApplicationNumberGenerator{prefix: prefix, now: time.Now}
}

// Next draws a sequence value and formats it.
func (g *ApplicationNumberGenerator) Next(ctx context.Context, seq repositories.ISequenceRepository) (string, error) {
	n, err := seq.NextApplicationSequence(ctx)
	if err != nil {
		return "", fmt.Errorf("next application number: %w", err)
	}
	return g.Format(n), nil
}

// Format renders sequence value n for the current day.
func (g *ApplicationNumberGenerator) Format(n int64) string {
	return fmt.Sprintf("%s%s%06d", g.prefix, g.now().UTC().Format("20060102"), n)
}
