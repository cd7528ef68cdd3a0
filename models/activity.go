package models

// Activity is an event around which carpools are organized. Immutable after
// creation except for identity; scoped to one store, never synchronized.
type Activity struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Date             string `json:"date"`           // YYYY-MM-DD
	Time             string `json:"time,omitempty"` // HH:MM, optional
	Campus           string `json:"campus"`         // free-text event location
	ParticipantCount int    `json:"participantCount"`
}
