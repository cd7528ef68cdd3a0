package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"poolup/kv"
	"poolup/models"
)

const DefaultNamespace = "poolup"

// SlotRepository loads and saves the full slot list of one activity. Every
// mutation is a synchronous read-modify-write of the whole list followed by a
// full rewrite; concurrent writers to the same activity overwrite each other,
// last write wins.
type SlotRepository interface {
	LoadSlots(ctx context.Context, activityID string) ([]models.Slot, error)
	SaveSlots(ctx context.Context, activityID string, slots []models.Slot) error
}

type kvSlotRepository struct {
	store     kv.Store
	namespace string
}

// NewKVRepository stores each activity's slot list as a JSON array under
// "<namespace>-scheduler-<activityId>".
func NewKVRepository(store kv.Store, namespace string) SlotRepository {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &kvSlotRepository{store: store, namespace: namespace}
}

func (r *kvSlotRepository) key(activityID string) string {
	return fmt.Sprintf("%s-scheduler-%s", r.namespace, activityID)
}

func (r *kvSlotRepository) LoadSlots(ctx context.Context, activityID string) ([]models.Slot, error) {
	raw, err := r.store.Get(ctx, r.key(activityID))
	if err == kv.ErrNotFound {
		return []models.Slot{}, nil
	}
	if err != nil {
		return nil, err
	}
	var slots []models.Slot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		// Fail closed: a corrupt value is treated as an empty board.
		log.Printf("scheduler: corrupt slot list under %s, treating as empty: %v", r.key(activityID), err)
		return []models.Slot{}, nil
	}
	if slots == nil {
		slots = []models.Slot{}
	}
	return slots, nil
}

func (r *kvSlotRepository) SaveSlots(ctx context.Context, activityID string, slots []models.Slot) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.key(activityID), string(data))
}
