package models

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID generates a ULID string used as the opaque id for files, tasks,
// sessions, and log entries. ULIDs sort by creation time, which gives log
// ordering a stable tiebreaker.
func NewID() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(entropy, 0)).String()
}
