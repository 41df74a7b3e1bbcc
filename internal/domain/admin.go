package domain

import "time"

// Admin is an operator account for the triage console.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
