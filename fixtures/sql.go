package fixtures

import (
	"fmt"
	"io"
	"strings"

	"github.com/jrsteele09/go-lab-site/content"
)

// sqlTimeLayout matches the store's fixed-width timestamp text
const sqlTimeLayout = "2006-01-02T15:04:05.000000000Z"

// Statements renders one idempotent INSERT per record
func Statements(records []content.Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		published := 0
		if rec.Published {
			published = 1
		}
		out = append(out, fmt.Sprintf(
			"INSERT INTO content (kind, id, position, published, payload, created_at, updated_at) VALUES (%s, %s, %d, %d, %s, %s, %s) ON CONFLICT(kind, id) DO NOTHING;",
			quote(string(rec.Kind)),
			quote(rec.ID),
			rec.Position,
			published,
			quote(string(rec.Payload)),
			quote(rec.CreatedAt.UTC().Format(sqlTimeLayout)),
			quote(rec.UpdatedAt.UTC().Format(sqlTimeLayout)),
		))
	}
	return out
}

// WriteScript writes statements wrapped in a transaction
func WriteScript(w io.Writer, statements []string) error {
	if _, err := io.WriteString(w, "BEGIN;\n"); err != nil {
		return err
	}
	for _, stmt := range statements {
		if _, err := io.WriteString(w, stmt+"\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "COMMIT;\n")
	return err
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
