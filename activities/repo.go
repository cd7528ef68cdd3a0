package activities

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"poolup/kv"
	"poolup/models"
)

const DefaultNamespace = "poolup"

// Repository loads and saves the full activity list. Writes replace the
// whole list under the key; there is no partial update.
type Repository interface {
	LoadActivities(ctx context.Context) ([]models.Activity, error)
	SaveActivities(ctx context.Context, activities []models.Activity) error
}

type kvRepository struct {
	store kv.Store
	key   string
}

// NewKVRepository stores the activity list as a JSON array under
// "<namespace>-activities".
func NewKVRepository(store kv.Store, namespace string) Repository {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &kvRepository{store: store, key: fmt.Sprintf("%s-activities", namespace)}
}

func (r *kvRepository) LoadActivities(ctx context.Context) ([]models.Activity, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err == kv.ErrNotFound {
		return []models.Activity{}, nil
	}
	if err != nil {
		return nil, err
	}
	var activities []models.Activity
	if err := json.Unmarshal([]byte(raw), &activities); err != nil {
		// Fail closed: a corrupt value is treated as no activities.
		log.Printf("activities: corrupt list under %s, treating as empty: %v", r.key, err)
		return []models.Activity{}, nil
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	return activities, nil
}

func (r *kvRepository) SaveActivities(ctx context.Context, activities []models.Activity) error {
	data, err := json.Marshal(activities)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.key, string(data))
}
