package scheduler

import (
	"testing"

	"poolup/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(id, t, driverID string, capacity int, passengers ...string) models.Slot {
	if passengers == nil {
		passengers = []string{}
	}
	return models.Slot{
		ID:         id,
		Time:       t,
		DriverID:   driverID,
		DriverName: driverID,
		Location:   "Main entrance",
		Capacity:   capacity,
		Passengers: passengers,
	}
}

func TestDeriveStatusNoSlots(t *testing.T) {
	var slots []models.Slot

	assert.Equal(t, StatusAvailable, DeriveStatus("10:00", slots, Viewer{UserID: "d1", Role: RoleDriver}))
	assert.Equal(t, StatusUnavailable, DeriveStatus("10:00", slots, Viewer{UserID: "p1", Role: RolePassenger}))
}

func TestDeriveStatusPrecedence(t *testing.T) {
	slots := []models.Slot{
		slot("s1", "09:00", "d1", 4),
		slot("s2", "09:00", "d2", 2, "d1"),
	}

	// Own slot wins even though the viewer also rides in another slot at the
	// same time, and regardless of the role they picked.
	assert.Equal(t, StatusOwnSlot, DeriveStatus("09:00", slots, Viewer{UserID: "d1", Role: RoleDriver}))
	assert.Equal(t, StatusOwnSlot, DeriveStatus("09:00", slots, Viewer{UserID: "d1", Role: RolePassenger}))

	// Joined beats available.
	slots = []models.Slot{slot("s1", "09:00", "d1", 4, "p1")}
	assert.Equal(t, StatusJoined, DeriveStatus("09:00", slots, Viewer{UserID: "p1", Role: RolePassenger}))
}

func TestDeriveStatusFullVsAvailable(t *testing.T) {
	slots := []models.Slot{
		slot("s1", "09:00", "d1", 1, "p1"),
		slot("s2", "09:00", "d2", 1, "p2"),
	}

	// Every slot at 09:00 is full: passengers see full, drivers may still claim.
	assert.Equal(t, StatusFull, DeriveStatus("09:00", slots, Viewer{UserID: "p3", Role: RolePassenger}))
	assert.Equal(t, StatusAvailable, DeriveStatus("09:00", slots, Viewer{UserID: "d3", Role: RoleDriver}))

	// One seat opens up.
	slots[1].Passengers = []string{}
	assert.Equal(t, StatusAvailable, DeriveStatus("09:00", slots, Viewer{UserID: "p3", Role: RolePassenger}))
}

func TestDeriveStatusDriverJoinScenario(t *testing.T) {
	// Driver D creates a slot at 09:00 with capacity 4; passenger P has no
	// relation to it yet.
	slots := []models.Slot{slot("s1", "09:00", "D", 4)}

	p := Viewer{UserID: "P", Role: RolePassenger}
	d := Viewer{UserID: "D", Role: RoleDriver}

	assert.Equal(t, StatusAvailable, DeriveStatus("09:00", slots, p))

	slots[0].Passengers = append(slots[0].Passengers, "P")
	assert.Equal(t, StatusJoined, DeriveStatus("09:00", slots, p))
	assert.Equal(t, StatusOwnSlot, DeriveStatus("09:00", slots, d))
}

func TestCanSelect(t *testing.T) {
	slots := []models.Slot{slot("s1", "09:00", "d1", 1, "p1")}

	driver := Viewer{UserID: "d2", Role: RoleDriver}
	passenger := Viewer{UserID: "p2", Role: RolePassenger}

	// Drivers may always select, even empty or full times.
	assert.True(t, CanSelect("09:00", slots, driver))
	assert.True(t, CanSelect("10:00", slots, driver))

	// Passenger: the only 09:00 slot is full, and 10:00 has no drivers.
	assert.False(t, CanSelect("09:00", slots, passenger))
	assert.False(t, CanSelect("10:00", slots, passenger))

	slots = append(slots, slot("s2", "09:00", "d2", 2))
	assert.True(t, CanSelect("09:00", slots, passenger))
}

func TestSelect(t *testing.T) {
	slots := []models.Slot{
		slot("s1", "09:00", "d1", 1, "p1"),
		slot("s2", "09:00", "d2", 2),
	}

	// Driver with no slot at 09:00 stakes a new claim.
	sel, ok := Select("09:00", slots, Viewer{UserID: "d3", Role: RoleDriver})
	require.True(t, ok)
	assert.Equal(t, SelectionNew, sel.Kind)
	assert.Equal(t, "09:00", sel.Time)
	assert.Nil(t, sel.Slot)

	// Driver who owns a slot lands on it.
	sel, ok = Select("09:00", slots, Viewer{UserID: "d1", Role: RoleDriver})
	require.True(t, ok)
	assert.Equal(t, SelectionExisting, sel.Kind)
	require.NotNil(t, sel.Slot)
	assert.Equal(t, "s1", sel.Slot.ID)

	// Passenger already aboard resolves to their slot.
	sel, ok = Select("09:00", slots, Viewer{UserID: "p1", Role: RolePassenger})
	require.True(t, ok)
	assert.Equal(t, SelectionExisting, sel.Kind)
	require.NotNil(t, sel.Slot)
	assert.Equal(t, "s1", sel.Slot.ID)

	// New passenger resolves to the first slot with a free seat.
	sel, ok = Select("09:00", slots, Viewer{UserID: "p2", Role: RolePassenger})
	require.True(t, ok)
	assert.Equal(t, SelectionExisting, sel.Kind)
	require.NotNil(t, sel.Slot)
	assert.Equal(t, "s2", sel.Slot.ID)

	// Nothing at 10:00 for passengers.
	_, ok = Select("10:00", slots, Viewer{UserID: "p2", Role: RolePassenger})
	assert.False(t, ok)
}

func TestSortByTimeStable(t *testing.T) {
	slots := []models.Slot{
		slot("late", "17:00", "d1", 4),
		slot("first-nine", "09:00", "d2", 4),
		slot("second-nine", "09:00", "d3", 4),
		slot("early", "08:00", "d4", 4),
	}

	sorted := SortByTime(slots)

	require.Len(t, sorted, 4)
	assert.Equal(t, "early", sorted[0].ID)
	// Ties at 09:00 keep insertion order.
	assert.Equal(t, "first-nine", sorted[1].ID)
	assert.Equal(t, "second-nine", sorted[2].ID)
	assert.Equal(t, "late", sorted[3].ID)

	// Input order untouched.
	assert.Equal(t, "late", slots[0].ID)
}

func TestSlotLabel(t *testing.T) {
	driver := Viewer{UserID: "d9", Role: RoleDriver}
	passenger := Viewer{UserID: "p9", Role: RolePassenger}

	var none []models.Slot
	assert.Equal(t, "Available", SlotLabel("09:00", none, driver))
	assert.Equal(t, "No drivers", SlotLabel("09:00", none, passenger))

	one := []models.Slot{slot("s1", "09:00", "d1", 4, "p1")}
	one[0].DriverName = "alice smith"
	assert.Equal(t, "alice smith (1/4)", SlotLabel("09:00", one, passenger))
	assert.Equal(t, "Your slot (1/4)", SlotLabel("09:00", one, Viewer{UserID: "d1", Role: RoleDriver}))
	assert.Equal(t, "Joined - alice smith", SlotLabel("09:00", one, Viewer{UserID: "p1", Role: RolePassenger}))

	full := []models.Slot{slot("s1", "09:00", "d1", 1, "p1")}
	assert.Equal(t, "Full", SlotLabel("09:00", full, passenger))

	many := []models.Slot{
		slot("s1", "09:00", "d1", 1, "p1"),
		slot("s2", "09:00", "d2", 2),
	}
	assert.Equal(t, "1 drivers available", SlotLabel("09:00", many, passenger))
	assert.Equal(t, "2 drivers", SlotLabel("09:00", many, driver))
}

func TestBuildGrid(t *testing.T) {
	slots := []models.Slot{slot("s1", "09:00", "d1", 4)}

	cells := BuildGrid(slots, Viewer{UserID: "p1", Role: RolePassenger})

	require.Len(t, cells, len(GridTimes))
	byTime := map[string]GridCell{}
	for _, c := range cells {
		byTime[c.Time] = c
	}

	assert.Equal(t, StatusAvailable, byTime["09:00"].Status)
	assert.True(t, byTime["09:00"].CanSelect)
	assert.Len(t, byTime["09:00"].Slots, 1)

	assert.Equal(t, StatusUnavailable, byTime["10:00"].Status)
	assert.False(t, byTime["10:00"].CanSelect)
	assert.Empty(t, byTime["10:00"].Slots)
}
