// Package activities manages the events people organize carpools around.
package activities

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"poolup/models"

	"github.com/google/uuid"
)

var (
	ErrInvalidActivity   = errors.New("invalid activity")
	ErrDuplicateActivity = errors.New("duplicate activity")
)

type CreateRequest struct {
	Name   string `json:"name"`
	Date   string `json:"date"` // YYYY-MM-DD
	Time   string `json:"time,omitempty"`
	Campus string `json:"campus"`
	// AllowDuplicate is the "create anyway" confirmation after a conflict.
	AllowDuplicate bool `json:"allowDuplicate,omitempty"`
}

// Service owns the activity list. Activities are append-only: no edit or
// delete exists in this design.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and appends a new activity. A second activity with the
// same name (case-insensitive), date and campus is rejected with
// ErrDuplicateActivity unless the caller confirmed with AllowDuplicate.
func (s *Service) Create(ctx context.Context, req CreateRequest) (models.Activity, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Campus) == "" {
		return models.Activity{}, fmt.Errorf("%w: name, date and campus are required", ErrInvalidActivity)
	}

	existing, err := s.repo.LoadActivities(ctx)
	if err != nil {
		return models.Activity{}, err
	}

	if !req.AllowDuplicate {
		for _, act := range existing {
			if strings.EqualFold(act.Name, name) && act.Date == req.Date && act.Campus == req.Campus {
				return models.Activity{}, ErrDuplicateActivity
			}
		}
	}

	activity := models.Activity{
		ID:               uuid.NewString(),
		Name:             name,
		Date:             req.Date,
		Time:             req.Time,
		Campus:           req.Campus,
		ParticipantCount: 1,
	}
	existing = append(existing, activity)
	if err := s.repo.SaveActivities(ctx, existing); err != nil {
		return models.Activity{}, err
	}
	return activity, nil
}

// List returns every stored activity.
func (s *Service) List(ctx context.Context) ([]models.Activity, error) {
	return s.repo.LoadActivities(ctx)
}

// Get looks an activity up by id. An unknown id yields a placeholder record
// rather than an error, so a scheduler opened with a stale link still renders.
func (s *Service) Get(ctx context.Context, id string) (models.Activity, error) {
	activities, err := s.repo.LoadActivities(ctx)
	if err != nil {
		return models.Activity{}, err
	}
	for _, act := range activities {
		if act.ID == id {
			return act, nil
		}
	}
	return models.Activity{
		ID:     id,
		Name:   "Unknown Activity",
		Date:   time.Now().Format("2006-01-02"),
		Campus: "Unknown Location",
	}, nil
}
