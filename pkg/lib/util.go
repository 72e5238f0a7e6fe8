package lib

import (
	"strings"

	"github.com/google/uuid"
)

// NotRecognizedMarker is what a Windows shell prints when the requested program
// does not exist. Output containing it means "tool not installed", not "failed".
const NotRecognizedMarker = "is not recognized"

// NewID generates a UUID version 4 string (RFC 4122)
func NewID() string {
	return uuid.NewString()
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// StringPtr returns nil for an empty string and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
