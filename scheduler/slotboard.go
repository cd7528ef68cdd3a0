package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"poolup/models"

	"github.com/google/uuid"
)

var (
	ErrSlotNotFound  = errors.New("slot not found")
	ErrSlotFull      = errors.New("slot is full")
	ErrAlreadyJoined = errors.New("already joined")
	ErrInvalidSlot   = errors.New("invalid slot")
)

type CreateSlotRequest struct {
	Time     string `json:"time"`
	Location string `json:"location"`
	Note     string `json:"note,omitempty"`
	Capacity int    `json:"capacity"`
}

// SlotBoard owns the slot list of activities: it derives per-viewer views and
// validates and applies mutations. Capacity and duplicate-join guards are
// enforced here, not left to the caller's UI.
type SlotBoard struct {
	repo SlotRepository
}

func NewSlotBoard(repo SlotRepository) *SlotBoard {
	return &SlotBoard{repo: repo}
}

// Slots returns the activity's driver slots sorted ascending by time.
func (b *SlotBoard) Slots(ctx context.Context, activityID string) ([]models.Slot, error) {
	slots, err := b.repo.LoadSlots(ctx, activityID)
	if err != nil {
		return nil, err
	}
	return SortByTime(slots), nil
}

// Grid derives the full per-time board for one viewer.
func (b *SlotBoard) Grid(ctx context.Context, activityID string, v Viewer) ([]GridCell, error) {
	slots, err := b.repo.LoadSlots(ctx, activityID)
	if err != nil {
		return nil, err
	}
	return BuildGrid(slots, v), nil
}

// Resolve maps a tap on time t to a Selection for the viewer.
func (b *SlotBoard) Resolve(ctx context.Context, activityID, t string, v Viewer) (Selection, bool, error) {
	slots, err := b.repo.LoadSlots(ctx, activityID)
	if err != nil {
		return Selection{}, false, err
	}
	sel, ok := Select(t, slots, v)
	return sel, ok, nil
}

// CreateSlot appends a new driver slot and persists the list. There is no
// uniqueness check across drivers and times: several drivers may depart at
// the same time, and one driver may offer several times.
func (b *SlotBoard) CreateSlot(ctx context.Context, activityID string, driver models.User, req CreateSlotRequest) (models.Slot, error) {
	if strings.TrimSpace(req.Time) == "" {
		return models.Slot{}, fmt.Errorf("%w: time is required", ErrInvalidSlot)
	}
	if strings.TrimSpace(req.Location) == "" {
		return models.Slot{}, fmt.Errorf("%w: location is required", ErrInvalidSlot)
	}
	if req.Capacity < 1 {
		return models.Slot{}, fmt.Errorf("%w: capacity must be at least 1", ErrInvalidSlot)
	}

	slot := models.Slot{
		ID:         uuid.NewString(),
		Time:       req.Time,
		DriverID:   driver.ID,
		DriverName: driver.DriverName(),
		Location:   req.Location,
		Note:       req.Note,
		Capacity:   req.Capacity,
		Passengers: []string{},
	}

	slots, err := b.repo.LoadSlots(ctx, activityID)
	if err != nil {
		return models.Slot{}, err
	}
	slots = append(slots, slot)
	if err := b.repo.SaveSlots(ctx, activityID, slots); err != nil {
		return models.Slot{}, err
	}
	return slot, nil
}

// JoinSlot appends userID to the slot's passenger list. The slot must exist,
// the user must not already be aboard, and a seat must be free; on any
// violation the stored list is left untouched.
func (b *SlotBoard) JoinSlot(ctx context.Context, activityID, slotID, userID string) (models.Slot, error) {
	slots, err := b.repo.LoadSlots(ctx, activityID)
	if err != nil {
		return models.Slot{}, err
	}
	idx := indexByID(slots, slotID)
	if idx < 0 {
		return models.Slot{}, ErrSlotNotFound
	}
	if slots[idx].HasPassenger(userID) {
		return models.Slot{}, ErrAlreadyJoined
	}
	if slots[idx].IsFull() {
		return models.Slot{}, ErrSlotFull
	}
	slots[idx].Passengers = append(slots[idx].Passengers, userID)
	if err := b.repo.SaveSlots(ctx, activityID, slots); err != nil {
		return models.Slot{}, err
	}
	return slots[idx], nil
}

// LeaveSlot removes userID from the slot's passengers. Removing an absent
// member is a no-op; the list is persisted either way.
func (b *SlotBoard) LeaveSlot(ctx context.Context, activityID, slotID, userID string) (models.Slot, error) {
	slots, err := b.repo.LoadSlots(ctx, activityID)
	if err != nil {
		return models.Slot{}, err
	}
	idx := indexByID(slots, slotID)
	if idx < 0 {
		return models.Slot{}, ErrSlotNotFound
	}
	kept := slots[idx].Passengers[:0:0]
	for _, p := range slots[idx].Passengers {
		if p != userID {
			kept = append(kept, p)
		}
	}
	if kept == nil {
		kept = []string{}
	}
	slots[idx].Passengers = kept
	if err := b.repo.SaveSlots(ctx, activityID, slots); err != nil {
		return models.Slot{}, err
	}
	return slots[idx], nil
}

func indexByID(slots []models.Slot, slotID string) int {
	for i := range slots {
		if slots[i].ID == slotID {
			return i
		}
	}
	return -1
}
