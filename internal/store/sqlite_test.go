package store

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-lab-site/content"
	liberrors "github.com/jrsteele09/go-lab-site/internal/errors"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleRecord(id string, position int, published bool, created time.Time) content.Record {
	return content.Record{
		Kind:      content.KindNews,
		ID:        id,
		Position:  position,
		Published: published,
		Payload:   []byte(`{"slug":"` + id + `"}`),
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestSQLiteStore_CRUD(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)
	created := time.Date(2024, 3, 8, 10, 0, 0, 123456789, time.UTC)

	rec := sampleRecord("n1", 0, true, created)
	require.NoError(t, st.Insert(ctx, rec))
	require.ErrorIs(t, st.Insert(ctx, rec), liberrors.ErrConflict)

	got, err := st.Get(ctx, content.KindNews, "n1")
	require.NoError(t, err)
	require.Equal(t, rec.Payload, got.Payload)
	require.True(t, got.Published)
	require.True(t, created.Equal(got.CreatedAt))

	// same id in another kind is a different row
	other := rec
	other.Kind = content.KindReviews
	require.NoError(t, st.Insert(ctx, other))

	rec.Published = false
	rec.Payload = []byte(`{"slug":"changed"}`)
	require.NoError(t, st.Update(ctx, rec))
	got, err = st.Get(ctx, content.KindNews, "n1")
	require.NoError(t, err)
	require.False(t, got.Published)
	require.JSONEq(t, `{"slug":"changed"}`, string(got.Payload))

	missing := sampleRecord("missing", 0, false, created)
	require.ErrorIs(t, st.Update(ctx, missing), liberrors.ErrNotFound)

	require.NoError(t, st.Delete(ctx, content.KindNews, "n1"))
	_, err = st.Get(ctx, content.KindNews, "n1")
	require.ErrorIs(t, err, liberrors.ErrNotFound)
	require.ErrorIs(t, st.Delete(ctx, content.KindNews, "n1"), liberrors.ErrNotFound)

	_, err = st.Get(ctx, content.KindReviews, "n1")
	require.NoError(t, err)
}

func TestSQLiteStore_ListOrdering(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, st.Insert(ctx, sampleRecord("a", 2, true, base)))
	require.NoError(t, st.Insert(ctx, sampleRecord("b", 1, true, base.Add(time.Minute))))
	require.NoError(t, st.Insert(ctx, sampleRecord("c", 1, false, base.Add(time.Hour))))

	all, err := st.List(ctx, content.KindNews, content.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b", "a"}, ids(all))

	published, err := st.List(ctx, content.KindNews, content.ListFilter{PublishedOnly: true})
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, ids(published))

	page, err := st.List(ctx, content.KindNews, content.ListFilter{Offset: 1})
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, ids(page))

	page, err = st.List(ctx, content.KindNews, content.ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, ids(page))

	empty, err := st.List(ctx, content.KindDocuments, content.ListFilter{})
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestSQLiteStore_WithCatalog(t *testing.T) {
	ctx := context.Background()
	catalog := content.NewCatalog(testStore(t), nil)

	block := &content.ContentBlock{Key: "contacts", Body: content.Localized{RU: "ул. Абая 1"}}
	block.Published = true
	require.NoError(t, catalog.ContentBlocks.Create(ctx, block))

	got, err := catalog.Block(ctx, "contacts")
	require.NoError(t, err)
	require.Equal(t, "ул. Абая 1", got.Body.RU)
	require.Equal(t, block.ID, got.ID)
}

func TestSQLiteStore_ExecStatements(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)

	err := st.ExecStatements(ctx, []string{
		`INSERT INTO content (kind, id, position, published, payload, created_at, updated_at)
		 VALUES ('documents', 'd1', 0, 1, '{"file_key":"a.pdf"}', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`,
	})
	require.NoError(t, err)

	rec, err := st.Get(ctx, content.KindDocuments, "d1")
	require.NoError(t, err)
	require.Equal(t, 2024, rec.CreatedAt.Year())

	// a failing statement rolls back the whole script
	err = st.ExecStatements(ctx, []string{
		`INSERT INTO content (kind, id, position, published, payload, created_at, updated_at)
		 VALUES ('documents', 'd2', 0, 1, '{}', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`,
		`INSERT INTO nowhere VALUES (1)`,
	})
	require.Error(t, err)
	_, err = st.Get(ctx, content.KindDocuments, "d2")
	require.ErrorIs(t, err, liberrors.ErrNotFound)
}

func ids(recs []content.Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}
