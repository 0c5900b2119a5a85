package models

import "time"

// Exercise belongs to a workout and is ordered by Position within it.
type Exercise struct {
	ID           string
	WorkoutID    string
	Name         string
	Observations string
	ImageURL     *string
	Position     int
	LastSyncedAt time.Time
}

func (e Exercise) Key() string { return e.ID }

func (e Exercise) Parent() string { return e.WorkoutID }

// Equal compares every field except LastSyncedAt.
func (e Exercise) Equal(o Exercise) bool {
	return e.ID == o.ID &&
		e.WorkoutID == o.WorkoutID &&
		e.Name == o.Name &&
		e.Observations == o.Observations &&
		e.Position == o.Position &&
		sameURL(e.ImageURL, o.ImageURL)
}

// Image returns the image URL or "".
func (e Exercise) Image() string {
	if e.ImageURL == nil {
		return ""
	}
	return *e.ImageURL
}

func sameURL(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
