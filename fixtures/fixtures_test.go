package fixtures

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/go-lab-site/content"
	liberrors "github.com/jrsteele09/go-lab-site/internal/errors"
	"github.com/stretchr/testify/require"
)

var importedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestDeriveIDIsStable(t *testing.T) {
	a := DeriveID(content.KindCategories, "7")
	require.Equal(t, a, DeriveID(content.KindCategories, "7"))
	require.NotEqual(t, a, DeriveID(content.KindAnalyses, "7"))
	require.NotEqual(t, a, DeriveID(content.KindCategories, "8"))
}

func TestLoadAndConvertRemapsReferences(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "categories.json", `[{"id": 7, "slug": "blood", "title": {"ru": "Кровь"}}]`)
	writeFile(t, dir, "analyses.yaml", `
- id: a-1
  category_id: 7
  code: "B-01"
  title: {ru: "Общий анализ крови", en: "Complete blood count"}
  price: 3500
  published: false
`)

	set, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, set, 2)

	records, err := Convert(set, importedAt)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// kinds are emitted in name order
	analysis, category := records[0], records[1]
	require.Equal(t, content.KindAnalyses, analysis.Kind)
	require.Equal(t, DeriveID(content.KindCategories, "7"), category.ID)
	require.True(t, category.Published)
	require.Equal(t, importedAt, category.CreatedAt)

	var decoded content.Analysis
	require.NoError(t, json.Unmarshal(analysis.Payload, &decoded))
	require.Equal(t, category.ID, decoded.CategoryID)
	require.Equal(t, DeriveID(content.KindAnalyses, "a-1"), decoded.ID)
	require.Equal(t, 3500, decoded.Price)
	require.False(t, analysis.Published)
}

func TestConvertRejectsBadRows(t *testing.T) {
	_, err := Convert(Set{content.KindCategories: {{"slug": "x", "title": map[string]any{"ru": "x"}}}}, importedAt)
	require.ErrorIs(t, err, liberrors.ErrInvalidInput)

	_, err = Convert(Set{content.KindCategories: {{"id": "1", "slug": "Bad Slug", "title": map[string]any{"ru": "x"}}}}, importedAt)
	require.ErrorIs(t, err, liberrors.ErrInvalidInput)

	dup := Row{"id": "1", "slug": "a", "title": map[string]any{"ru": "a"}}
	_, err = Convert(Set{content.KindCategories: {dup, dup}}, importedAt)
	require.ErrorIs(t, err, liberrors.ErrInvalidInput)
}

func TestLoadDirRejectsAmbiguousFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "news.json", `[]`)
	writeFile(t, dir, "news.yml", `[]`)
	_, err := LoadDir(dir)
	require.ErrorIs(t, err, liberrors.ErrInvalidInput)
}

func TestStatementsQuoteAndAreIdempotent(t *testing.T) {
	records, err := Convert(Set{content.KindContentBlocks: {{
		"id":         "about",
		"key":        "about",
		"title":      map[string]any{"en": "Lab's story"},
		"created_at": "2020-05-01",
	}}}, importedAt)
	require.NoError(t, err)

	stmts := Statements(records)
	require.Len(t, stmts, 1)
	require.Contains(t, stmts[0], "Lab''s story")
	require.Contains(t, stmts[0], "'2020-05-01T00:00:00.000000000Z'")
	require.True(t, strings.HasSuffix(stmts[0], "ON CONFLICT(kind, id) DO NOTHING;"))

	var buf bytes.Buffer
	require.NoError(t, WriteScript(&buf, stmts))
	require.True(t, strings.HasPrefix(buf.String(), "BEGIN;\n"))
	require.True(t, strings.HasSuffix(buf.String(), "COMMIT;\n"))
}
