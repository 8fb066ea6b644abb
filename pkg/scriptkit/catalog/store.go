// Package catalog stores named script templates.
package catalog

import (
	"errors"
	"strings"
	"time"
)

// Store holds script text by name.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores the text of a script, replacing any previous version.
	Put(name string, text []byte) error

	// Get returns the text of a script.
	// Returns ErrNotFound if no script has that name.
	Get(name string) ([]byte, error)

	// List returns metadata for every script, ordered by name.
	// Returns an empty slice (not error) when the store is empty.
	List() ([]Info, error)

	// Delete removes a script.
	// Returns nil if the script doesn't exist.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info describes a stored script without its text.
type Info struct {
	Name    string
	Size    int64
	Updated time.Time
}

// Sentinel errors for catalog operations.
var (
	// ErrNotFound indicates no script is stored under the name.
	ErrNotFound = errors.New("script not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("catalog store closed")

	// ErrInvalidName indicates an empty or blank script name.
	ErrInvalidName = errors.New("invalid script name")
)

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return nil
}
