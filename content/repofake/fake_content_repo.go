package repofake

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jrsteele09/go-lab-site/content"
)

var _ content.Repo = (*FakeContentRepo)(nil)

// FakeContentRepo is an in-memory content.Repo for tests and local runs
type FakeContentRepo struct {
	records map[content.Kind]map[string]content.Record
	lock    sync.RWMutex
}

func NewFakeContentRepo() *FakeContentRepo {
	return &FakeContentRepo{
		records: make(map[content.Kind]map[string]content.Record),
	}
}

func (r *FakeContentRepo) Insert(_ context.Context, rec content.Record) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.records[rec.Kind]; !ok {
		r.records[rec.Kind] = make(map[string]content.Record)
	}
	if _, exists := r.records[rec.Kind][rec.ID]; exists {
		return fmt.Errorf("%s %s: %w", rec.Kind, rec.ID, content.ErrConflict)
	}
	r.records[rec.Kind][rec.ID] = clone(rec)
	return nil
}

func (r *FakeContentRepo) Update(_ context.Context, rec content.Record) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, exists := r.records[rec.Kind][rec.ID]; !exists {
		return fmt.Errorf("%s %s: %w", rec.Kind, rec.ID, content.ErrNotFound)
	}
	r.records[rec.Kind][rec.ID] = clone(rec)
	return nil
}

func (r *FakeContentRepo) Get(_ context.Context, kind content.Kind, id string) (content.Record, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	rec, ok := r.records[kind][id]
	if !ok {
		return content.Record{}, fmt.Errorf("%s %s: %w", kind, id, content.ErrNotFound)
	}
	return clone(rec), nil
}

func (r *FakeContentRepo) List(_ context.Context, kind content.Kind, filter content.ListFilter) ([]content.Record, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	list := make([]content.Record, 0, len(r.records[kind]))
	for _, rec := range r.records[kind] {
		if filter.PublishedOnly && !rec.Published {
			continue
		}
		list = append(list, clone(rec))
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Position != list[j].Position {
			return list[i].Position < list[j].Position
		}
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(list) {
			return []content.Record{}, nil
		}
		list = list[filter.Offset:]
	}
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
	}
	return list, nil
}

func (r *FakeContentRepo) Delete(_ context.Context, kind content.Kind, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.records[kind][id]; !ok {
		return fmt.Errorf("%s %s: %w", kind, id, content.ErrNotFound)
	}
	delete(r.records[kind], id)
	return nil
}

// clone copies the payload so callers cannot mutate stored bytes
func clone(rec content.Record) content.Record {
	rec.Payload = append([]byte(nil), rec.Payload...)
	return rec
}
