package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewProjectID generates a candidate project id. If the random source fails it
// falls back to a millisecond timestamp id.
func NewProjectID(now time.Time) string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("project-%d", now.UnixMilli())
	}
	return id.String()
}
