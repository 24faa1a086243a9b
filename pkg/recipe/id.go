package recipe

import "github.com/google/uuid"

// NewID returns a fresh unique identifier for any domain record.
func NewID() string {
	return uuid.NewString()
}
