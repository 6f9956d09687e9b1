package store

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a lookup by id or unique key matches nothing.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique constraint is violated.
var ErrConflict = errors.New("conflict")

// now returns the current UTC time formatted as an ISO-8601 timestamp.
func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
