// Package snapshot persists rendered markup snapshots so a first
// paint can be served or inspected without re-rendering the control
// tree.
package snapshot

import (
	"context"
	"time"

	"github.com/faxui/fax/internal/errors"
)

// Store is a named-snapshot backend.
type Store interface {
	// Save persists markup under name, overwriting any previous
	// snapshot with that name.
	Save(ctx context.Context, name, markup string) error

	// Load returns the markup saved under name.
	Load(ctx context.Context, name string) (string, error)

	// Delete removes the snapshot saved under name. Deleting an
	// absent snapshot is a no-op.
	Delete(ctx context.Context, name string) error
}

// Meta describes one saved snapshot.
type Meta struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// notFound builds the error every store returns for a missing name.
func notFound(name string) error {
	return errors.New(errors.CodeSnapshotNotFound).WithDetail("snapshot %q", name)
}

// IsNotFound reports whether err indicates a missing snapshot.
func IsNotFound(err error) bool {
	return errors.IsCode(err, errors.CodeSnapshotNotFound)
}
