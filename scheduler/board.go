package scheduler

import (
	"fmt"
	"slices"
	"sort"

	"poolup/models"
)

// Role is the side of the carpool the viewer picked for this session. It is
// chosen once per activity and never persisted with the slot data.
type Role string

const (
	RoleDriver    Role = "driver"
	RolePassenger Role = "passenger"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleDriver, RolePassenger:
		return Role(s), true
	}
	return "", false
}

// Viewer is the current user plus their chosen role.
type Viewer struct {
	UserID string
	Role   Role
}

// Status is the derived display state of a time cell for one viewer.
type Status string

const (
	StatusOwnSlot     Status = "own-slot"
	StatusJoined      Status = "joined"
	StatusFull        Status = "full"
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
)

// GridTimes are the fixed hourly departure times offered on the board.
var GridTimes = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00", "18:00",
}

// SlotsAt filters slots down to the ones departing at time t.
func SlotsAt(slots []models.Slot, t string) []models.Slot {
	var at []models.Slot
	for _, s := range slots {
		if s.Time == t {
			at = append(at, s)
		}
	}
	return at
}

// DeriveStatus computes the status of time t for the viewer. It is pure and
// must be recomputed on every query: it depends on the current viewer and the
// current slot list. Precedence, first match wins:
//
//	own-slot: the viewer drives a slot at t, whatever role they picked
//	joined:   the viewer is a passenger in some slot at t
//	full:     passenger viewer, slots exist at t and every one is full
//	available / unavailable per role
//
// Drivers always see open cells: concurrent drivers per time are allowed.
func DeriveStatus(t string, slots []models.Slot, v Viewer) Status {
	at := SlotsAt(slots, t)
	if len(at) == 0 {
		if v.Role == RoleDriver {
			return StatusAvailable
		}
		return StatusUnavailable
	}
	for _, s := range at {
		if s.DriverID == v.UserID {
			return StatusOwnSlot
		}
	}
	for _, s := range at {
		if s.HasPassenger(v.UserID) {
			return StatusJoined
		}
	}
	if v.Role != RoleDriver {
		for _, s := range at {
			if !s.IsFull() {
				return StatusAvailable
			}
		}
		return StatusFull
	}
	return StatusAvailable
}

// CanSelect reports whether tapping time t does anything for the viewer.
// Drivers may always stake a new claim or inspect their own slot; passengers
// need a driver at t with a seat left.
func CanSelect(t string, slots []models.Slot, v Viewer) bool {
	if v.Role == RoleDriver {
		return true
	}
	for _, s := range SlotsAt(slots, t) {
		if s.DriverID != "" && !s.IsFull() {
			return true
		}
	}
	return false
}

type SelectionKind string

const (
	SelectionExisting SelectionKind = "existing"
	SelectionNew      SelectionKind = "new"
)

// Selection is the resolved target of a tap on a time cell: either a concrete
// slot, or a fresh claim at that time for a driver who has none yet.
type Selection struct {
	Kind SelectionKind `json:"kind"`
	Time string        `json:"time"`
	Slot *models.Slot  `json:"slot,omitempty"`
}

// Select resolves time t to a Selection for the viewer. The second return is
// false when the cell is not selectable for them.
func Select(t string, slots []models.Slot, v Viewer) (Selection, bool) {
	if !CanSelect(t, slots, v) {
		return Selection{}, false
	}
	at := SlotsAt(slots, t)
	if v.Role == RoleDriver {
		for i := range at {
			if at[i].DriverID == v.UserID {
				return Selection{Kind: SelectionExisting, Time: t, Slot: &at[i]}, true
			}
		}
		return Selection{Kind: SelectionNew, Time: t}, true
	}
	for i := range at {
		if at[i].HasPassenger(v.UserID) {
			return Selection{Kind: SelectionExisting, Time: t, Slot: &at[i]}, true
		}
	}
	for i := range at {
		if at[i].DriverID != "" && !at[i].IsFull() {
			return Selection{Kind: SelectionExisting, Time: t, Slot: &at[i]}, true
		}
	}
	return Selection{}, false
}

// SortByTime returns a copy sorted ascending by departure time. Lexicographic
// order is correct for zero-padded 24h "HH:MM"; the sort is stable so slots
// at the same time keep insertion order.
func SortByTime(slots []models.Slot) []models.Slot {
	sorted := slices.Clone(slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})
	return sorted
}

// SlotLabel builds the short cell text shown on the board for time t.
func SlotLabel(t string, slots []models.Slot, v Viewer) string {
	at := SlotsAt(slots, t)
	if len(at) == 0 {
		if v.Role == RoleDriver {
			return "Available"
		}
		return "No drivers"
	}
	for _, s := range at {
		if s.DriverID == v.UserID {
			return fmt.Sprintf("Your slot (%d/%d)", len(s.Passengers), s.Capacity)
		}
	}
	for _, s := range at {
		if s.HasPassenger(v.UserID) {
			return "Joined - " + s.DriverName
		}
	}
	if v.Role != RoleDriver {
		if len(at) == 1 {
			s := at[0]
			if s.IsFull() {
				return "Full"
			}
			return fmt.Sprintf("%s (%d/%d)", s.DriverName, len(s.Passengers), s.Capacity)
		}
		open := 0
		for _, s := range at {
			if !s.IsFull() {
				open++
			}
		}
		if open == 0 {
			return "All full"
		}
		return fmt.Sprintf("%d drivers available", open)
	}
	if len(at) == 1 {
		return "1 driver"
	}
	return fmt.Sprintf("%d drivers", len(at))
}

// GridCell is one time cell of the scheduler board, fully derived for one
// viewer and ready to render.
type GridCell struct {
	Time      string        `json:"time"`
	Status    Status        `json:"status"`
	CanSelect bool          `json:"canSelect"`
	Label     string        `json:"label"`
	Slots     []models.Slot `json:"slots"`
}

// BuildGrid derives a cell for every grid time.
func BuildGrid(slots []models.Slot, v Viewer) []GridCell {
	cells := make([]GridCell, 0, len(GridTimes))
	for _, t := range GridTimes {
		cells = append(cells, GridCell{
			Time:      t,
			Status:    DeriveStatus(t, slots, v),
			CanSelect: CanSelect(t, slots, v),
			Label:     SlotLabel(t, slots, v),
			Slots:     SlotsAt(slots, t),
		})
	}
	return cells
}
