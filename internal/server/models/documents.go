package models

import "time"

// Workout is owned by the account in OwnerID. UserID is the parent field
// clients list by; it normally equals OwnerID.
type Workout struct {
	ID          string    `validate:"required,max=64"`
	OwnerID     string    `validate:"required"`
	UserID      string    `validate:"required"`
	Name        string    `validate:"required,max=200"`
	Description string    `validate:"max=4000"`
	Date        time.Time `validate:"required"`
	UpdatedAt   time.Time
}

type Exercise struct {
	ID           string  `validate:"required,max=64"`
	OwnerID      string  `validate:"required"`
	WorkoutID    string  `validate:"required"`
	Name         string  `validate:"required,max=200"`
	Observations string  `validate:"max=4000"`
	ImageURL     *string `validate:"omitempty,url"`
	Position     int     `validate:"gte=0"`
	UpdatedAt    time.Time
}
