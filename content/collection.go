package content

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Collection is typed CRUD for one entity kind over a Repo
type Collection[T any, PT EntityPtr[T]] struct {
	repo    Repo
	kind    Kind
	nowTime func() time.Time
}

// NewCollection creates the collection for T's kind
func NewCollection[T any, PT EntityPtr[T]](repo Repo, nowTime func() time.Time) *Collection[T, PT] {
	if nowTime == nil {
		nowTime = time.Now
	}
	return &Collection[T, PT]{
		repo:    repo,
		kind:    PT(new(T)).Kind(),
		nowTime: nowTime,
	}
}

// Kind returns the collection's kind
func (c *Collection[T, PT]) Kind() Kind {
	return c.kind
}

// New allocates an empty entity, used by handlers to decode request bodies
func (c *Collection[T, PT]) New() PT {
	return PT(new(T))
}

// Create validates and stores item, assigning an ID when it has none
func (c *Collection[T, PT]) Create(ctx context.Context, item PT) error {
	if err := item.Validate(); err != nil {
		return err
	}

	m := item.Base()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := c.nowTime().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	rec, err := c.toRecord(item)
	if err != nil {
		return err
	}
	return errors.Wrapf(c.repo.Insert(ctx, rec), "create %s %s", c.kind, m.ID)
}

// Get loads one entity by ID
func (c *Collection[T, PT]) Get(ctx context.Context, id string) (PT, error) {
	rec, err := c.repo.Get(ctx, c.kind, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get %s %s", c.kind, id)
	}
	return c.fromRecord(rec)
}

// List loads entities matching filter in store order
func (c *Collection[T, PT]) List(ctx context.Context, filter ListFilter) ([]PT, error) {
	recs, err := c.repo.List(ctx, c.kind, filter)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", c.kind)
	}

	items := make([]PT, 0, len(recs))
	for _, rec := range recs {
		item, err := c.fromRecord(rec)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Find returns the first entity in store order for which match is true
func (c *Collection[T, PT]) Find(ctx context.Context, filter ListFilter, match func(PT) bool) (PT, error) {
	items, err := c.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if match(item) {
			return item, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "find %s", c.kind)
}

// Update replaces the entity with the given ID. CreatedAt is preserved.
func (c *Collection[T, PT]) Update(ctx context.Context, id string, item PT) error {
	if err := item.Validate(); err != nil {
		return err
	}

	existing, err := c.repo.Get(ctx, c.kind, id)
	if err != nil {
		return errors.Wrapf(err, "update %s %s", c.kind, id)
	}

	m := item.Base()
	m.ID = id
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = c.nowTime().UTC()

	rec, err := c.toRecord(item)
	if err != nil {
		return err
	}
	return errors.Wrapf(c.repo.Update(ctx, rec), "update %s %s", c.kind, id)
}

// Delete removes the entity with the given ID
func (c *Collection[T, PT]) Delete(ctx context.Context, id string) error {
	return errors.Wrapf(c.repo.Delete(ctx, c.kind, id), "delete %s %s", c.kind, id)
}

func (c *Collection[T, PT]) toRecord(item PT) (Record, error) {
	payload, err := json.Marshal(item)
	if err != nil {
		return Record{}, errors.Wrapf(err, "marshal %s", c.kind)
	}
	m := item.Base()
	return Record{
		Kind:      c.kind,
		ID:        m.ID,
		Position:  m.Position,
		Published: m.Published,
		Payload:   payload,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// fromRecord decodes the payload; the record's columns win over payload copies
func (c *Collection[T, PT]) fromRecord(rec Record) (PT, error) {
	item := PT(new(T))
	if err := json.Unmarshal(rec.Payload, item); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s %s", c.kind, rec.ID)
	}
	m := item.Base()
	m.ID = rec.ID
	m.Position = rec.Position
	m.Published = rec.Published
	m.CreatedAt = rec.CreatedAt
	m.UpdatedAt = rec.UpdatedAt
	return item, nil
}
