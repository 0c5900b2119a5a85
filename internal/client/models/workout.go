// Package models defines the client-side entities kept in the local cache and
// mirrored to the document server.
package models

import "time"

// Workout is a dated training session owned by a user.
type Workout struct {
	// ID is empty until an id has been reserved for the workout.
	ID          string
	UserID      string
	Name        string
	Description string
	Date        time.Time

	// LastSyncedAt is set when the record is written to the local cache.
	// It is advisory and never used to resolve conflicts.
	LastSyncedAt time.Time
}

func (w Workout) Key() string { return w.ID }

func (w Workout) Parent() string { return w.UserID }

// Equal compares every field except LastSyncedAt.
func (w Workout) Equal(o Workout) bool {
	return w.ID == o.ID &&
		w.UserID == o.UserID &&
		w.Name == o.Name &&
		w.Description == o.Description &&
		w.Date.Equal(o.Date)
}
