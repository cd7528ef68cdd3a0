package models

import "slices"

// Slot is one driver's offered ride for an activity at a given time.
// Passengers holds user IDs in join order; a user appears at most once and
// len(Passengers) never exceeds Capacity. DriverID is set at creation and
// never changes. Multiple slots may share the same Time.
type Slot struct {
	ID         string   `json:"id"`
	Time       string   `json:"time"` // HH:MM, 24h, zero-padded
	DriverID   string   `json:"driverId"`
	DriverName string   `json:"driverName"`
	Location   string   `json:"location,omitempty"`
	Note       string   `json:"note,omitempty"`
	Capacity   int      `json:"capacity"`
	Passengers []string `json:"passengers"`
}

// HasPassenger reports whether userID has joined this slot.
func (s Slot) HasPassenger(userID string) bool {
	return slices.Contains(s.Passengers, userID)
}

// SpotsLeft is the remaining passenger capacity.
func (s Slot) SpotsLeft() int {
	return s.Capacity - len(s.Passengers)
}

// IsFull reports whether no passenger spots remain.
func (s Slot) IsFull() bool {
	return len(s.Passengers) >= s.Capacity
}
