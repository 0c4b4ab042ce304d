package domain

import "time"

// User is the domain model for registered accounts. Guest identities are
// never backed by a User row; they exist only as signed session claims.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
