package models

import "time"

// Course represents a course offered for admission.
type Course struct {
	ID             int64          `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	Description    string         `json:"description" db:"description"`
	Duration       string         `json:"duration" db:"duration"`
	Fees           float64        `json:"fees" db:"fees"`
	Category       CourseCategory `json:"category" db:"category"`
	Eligibility    string         `json:"eligibility" db:"eligibility"`
	Seats          int            `json:"seats" db:"seats"`
	AvailableSeats int            `json:"availableSeats" db:"available_seats"`
	IsActive       bool           `json:"isActive" db:"is_active"`
	CreatedBy      int64          `json:"createdBy" db:"created_by"`
	// Version is bumped on every write and guards seat updates.
	Version   int64     `json:"-" db:"version"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NewCourse builds an active course whose available seats equal its total seats.
func NewCourse(name, description, duration string, fees float64, category CourseCategory, eligibility string, seats int, createdBy int64) *Course {
	return &Course{
		Name:           name,
		Description:    description,
		Duration:       duration,
		Fees:           fees,
		Category:       category,
		Eligibility:    eligibility,
		Seats:          seats,
		AvailableSeats: seats,
		IsActive:       true,
		CreatedBy:      createdBy,
	}
}

// HasCapacity reports whether the course currently accepts applications.
func (c *Course) HasCapacity() bool {
	return c.IsActive && c.AvailableSeats > 0
}

// Resize changes the total seat count and shifts available seats by the same
// difference, keeping them inside [0, seats].
func (c *Course) Resize(seats int) {
	if seats == c.Seats {
		return
	}
	c.AvailableSeats = ClampSeats(c.AvailableSeats+(seats-c.Seats), seats)
	c.Seats = seats
}

// ClampSeats bounds available into [0, seats].
func ClampSeats(available, seats int) int {
	if available < 0 {
		return 0
	}
	if available > seats {
		return seats
	}
	return available
}
