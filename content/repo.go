package content

import (
	"context"
	"time"
)

// Record is one stored row. Payload is the entity's JSON; the other fields
// are columns the store can filter and sort on.
type Record struct {
	Kind      Kind
	ID        string
	Position  int
	Published bool
	Payload   []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter narrows a List call. A zero Limit means no limit.
type ListFilter struct {
	PublishedOnly bool
	Limit         int
	Offset        int
}

// Repo is the row store behind every collection.
// Lists are ordered by position ascending, then newest first, then by ID.
type Repo interface {
	// Insert adds a record, failing with errors.ErrConflict if the ID is taken
	Insert(ctx context.Context, rec Record) error

	// Update replaces a record, failing with errors.ErrNotFound if it is missing
	Update(ctx context.Context, rec Record) error

	Get(ctx context.Context, kind Kind, id string) (Record, error)

	List(ctx context.Context, kind Kind, filter ListFilter) ([]Record, error)

	Delete(ctx context.Context, kind Kind, id string) error
}
