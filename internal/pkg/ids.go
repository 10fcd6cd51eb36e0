package pkg

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateNewSessionID - generates a new unique player session id.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// GenerateMatchID - generates a short identifier for a match.
func GenerateMatchID() string {
	id := uuid.New()

	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}
