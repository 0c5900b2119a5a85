// Package models defines the rows the server persists.
package models

import "time"

type User struct {
	ID           string
	UserName     string `validate:"required,min=3,max=64"`
	PasswordHash []byte
	CreatedAt    time.Time
}
