package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrsteele09/go-lab-site/content"
	"github.com/jrsteele09/go-lab-site/fixtures"
	"github.com/jrsteele09/go-lab-site/internal/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.json"),
		[]byte(`[{"id": 1, "slug": "hormones", "title": {"ru": "Гормоны"}}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "news.yaml"), []byte(`
- id: 10
  slug: new-branch
  title: {ru: "Новый филиал"}
  published_at: 2023-09-01T00:00:00Z
`), 0o644))
	return dir
}

func TestHashPasswordFromStdin(t *testing.T) {
	out, err := runCmd(t, "correct horse\n", "hash-password")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse")))
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := runCmd(t, "\n", "hash-password")
	require.Error(t, err)
}

func TestMigrateToStdout(t *testing.T) {
	out, err := runCmd(t, "", "migrate", "--fixtures", writeFixtures(t))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "BEGIN;\n"))
	require.Equal(t, 2, strings.Count(out, "ON CONFLICT(kind, id) DO NOTHING;"))
	require.Contains(t, out, fixtures.DeriveID(content.KindNews, "10"))
}

func TestMigrateRequiresFixtures(t *testing.T) {
	_, err := runCmd(t, "", "migrate")
	require.Error(t, err)
}

func TestMigrateAppliesToDatabaseTwice(t *testing.T) {
	dir := writeFixtures(t)
	dbPath := filepath.Join(t.TempDir(), "data", "site.db")
	outPath := filepath.Join(t.TempDir(), "fixtures.sql")

	_, err := runCmd(t, "", "migrate", "--fixtures", dir, "--db", dbPath, "--out", outPath)
	require.NoError(t, err)
	// re-running is a no-op thanks to ON CONFLICT DO NOTHING
	_, err = runCmd(t, "", "migrate", "--fixtures", dir, "--db", dbPath)
	require.NoError(t, err)

	script, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(script), "'hormones'")

	st, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer st.Close()

	news, err := content.NewCollection[content.News](st, nil).List(context.Background(), content.ListFilter{})
	require.NoError(t, err)
	require.Len(t, news, 1)
	require.Equal(t, "new-branch", news[0].Slug)
	require.True(t, news[0].Published)
}
