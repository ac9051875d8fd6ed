package database

import (
	"time"
)

// StateKey is the row holding the serialized task collection.
const StateKey = "todos"

// StateInfo describes the stored state document.
type StateInfo struct {
	Key     string    `db:"key"`
	Bytes   int       `db:"bytes"`
	Updated time.Time `db:"updated"`
	Quota   int64     `db:"-"`
}

// Usage returns the share of the quota in use, or 0 without a quota.
func (i StateInfo) Usage() float64 {
	if i.Quota <= 0 {
		return 0
	}
	return float64(i.Bytes) / float64(i.Quota)
}
