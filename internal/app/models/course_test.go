package models

import "testing"

func TestNewCourseStartsWithAllSeatsAvailable(t *testing.T) {
	c := NewCourse("B.Tech CSE", "desc", "4 years", 120000, CategoryEngineering, "12th PCM", 60, 1)
	if c.AvailableSeats != 60 || c.Seats != 60 {
		t.Fatalf("expected 60/60 seats, got %d/%d", c.AvailableSeats, c.Seats)
	}
	if !c.IsActive {
		t.Fatal("expected new course to be active")
	}
}

func TestCourseHasCapacity(t *testing.T) {
	tests := []struct {
		name      string
		active    bool
		available int
		want      bool
	}{
		{"active with seats", true, 3, true},
		{"active but full", true, 0, false},
		{"inactive with seats", false, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Course{IsActive: tt.active, Seats: 5, AvailableSeats: tt.available}
			if got := c.HasCapacity(); got != tt.want {
				t.Fatalf("HasCapacity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCourseResize(t *testing.T) {
	tests := []struct {
		name          string
		seats, avail  int
		newSeats      int
		wantAvailable int
	}{
		{"grow keeps taken seats", 10, 4, 15, 9},
		{"shrink keeps taken seats", 10, 8, 5, 3},
		{"shrink below taken clamps to zero", 10, 2, 5, 0},
		{"same size is a no-op", 10, 7, 10, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Course{Seats: tt.seats, AvailableSeats: tt.avail}
			c.Resize(tt.newSeats)
			if c.Seats != tt.newSeats {
				t.Fatalf("seats = %d, want %d", c.Seats, tt.newSeats)
			}
			if c.AvailableSeats != tt.wantAvailable {
				t.Fatalf("available = %d, want %d", c.AvailableSeats, tt.wantAvailable)
			}
		})
	}
}
