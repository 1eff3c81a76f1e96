package core

import "github.com/google/uuid"

// NewID returns a fresh random record identifier.
func NewID() string {
	return uuid.NewString()
}
