package utils

import "github.com/google/uuid"

// NewTaskID generates a unique task identifier. IDs are opaque strings;
// nothing orders or parses them.
func NewTaskID() string {
	return uuid.NewString()
}
