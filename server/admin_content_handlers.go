package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/go-lab-site/content"
	"github.com/jrsteele09/go-lab-site/internal/utils"
)

// collectionHandlers is the admin JSON API for one kind
type collectionHandlers interface {
	kind() content.Kind
	count(ctx context.Context) (int, error)
	list(w http.ResponseWriter, r *http.Request)
	create(w http.ResponseWriter, r *http.Request)
	get(w http.ResponseWriter, r *http.Request)
	update(w http.ResponseWriter, r *http.Request)
	patch(w http.ResponseWriter, r *http.Request)
	delete(w http.ResponseWriter, r *http.Request)
}

// ContentHandler dispatches on the {kind} URL segment
func (s *Server) ContentHandler(op func(collectionHandlers, http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := content.ParseKind(chi.URLParam(r, "kind"))
		if !ok {
			writeJSONError(w, http.StatusNotFound, "unknown content kind")
			return
		}
		h, ok := s.contentHandlers[kind]
		if !ok {
			writeJSONError(w, http.StatusNotFound, "unknown content kind")
			return
		}
		op(h, w, r)
	}
}

type collectionAPI[T any, PT content.EntityPtr[T]] struct {
	s          *Server
	collection *content.Collection[T, PT]
}

func newCollectionAPI[T any, PT content.EntityPtr[T]](s *Server, c *content.Collection[T, PT]) collectionHandlers {
	return &collectionAPI[T, PT]{s: s, collection: c}
}

func (a *collectionAPI[T, PT]) kind() content.Kind {
	return a.collection.Kind()
}

func (a *collectionAPI[T, PT]) count(ctx context.Context) (int, error) {
	items, err := a.collection.List(ctx, content.ListFilter{})
	return len(items), err
}

type listResponse[PT any] struct {
	Items  []PT `json:"items"`
	Limit  int  `json:"limit,omitempty"`
	Offset int  `json:"offset,omitempty"`
}

// list supports ?published=true&limit=N&offset=M
func (a *collectionAPI[T, PT]) list(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter := content.ListFilter{
		PublishedOnly: r.URL.Query().Get("published") == "true",
		Limit:         utils.Value(limit),
		Offset:        utils.Value(offset),
	}
	items, err := a.collection.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[PT]{Items: items, Limit: filter.Limit, Offset: filter.Offset})
}

func (a *collectionAPI[T, PT]) create(w http.ResponseWriter, r *http.Request) {
	item := a.collection.New()
	if err := decodeJSON(w, r, a.s.config.GetMaxFormBytes(), item); err != nil {
		writeError(w, r, err)
		return
	}
	// IDs are always assigned by the store
	item.Base().ID = ""
	if err := a.collection.Create(r.Context(), item); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (a *collectionAPI[T, PT]) get(w http.ResponseWriter, r *http.Request) {
	item, err := a.collection.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// update replaces the whole entity
func (a *collectionAPI[T, PT]) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item := a.collection.New()
	if err := decodeJSON(w, r, a.s.config.GetMaxFormBytes(), item); err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.collection.Update(r.Context(), id, item); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// metaPatch changes listing attributes without resending the entity
type metaPatch struct {
	Published *bool `json:"published"`
	Position  *int  `json:"position"`
}

func (a *collectionAPI[T, PT]) patch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p metaPatch
	if err := decodeJSON(w, r, a.s.config.GetMaxFormBytes(), &p); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := a.collection.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	m := item.Base()
	if p.Published != nil {
		m.Published = *p.Published
	}
	if p.Position != nil {
		m.Position = *p.Position
	}
	if err := a.collection.Update(r.Context(), id, item); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *collectionAPI[T, PT]) delete(w http.ResponseWriter, r *http.Request) {
	if err := a.collection.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
