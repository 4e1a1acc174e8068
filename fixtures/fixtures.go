// Package fixtures converts legacy content dumps into rows for the content
// table. IDs are derived deterministically so a migration can be re-run.
package fixtures

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-lab-site/content"
	liberrors "github.com/jrsteele09/go-lab-site/internal/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Namespace seeds every derived ID. Changing it re-keys all migrated content.
var Namespace = uuid.MustParse("6f1c2a7e-4b0d-5c39-9e1a-2d8f0b7c4a61")

// references maps a kind's fields to the kind whose legacy IDs they hold
var references = map[content.Kind]map[string]content.Kind{
	content.KindAnalyses: {"category_id": content.KindCategories},
}

var factories = map[content.Kind]func() content.Entity{
	content.KindCategories:         func() content.Entity { return new(content.Category) },
	content.KindAnalyses:           func() content.Entity { return new(content.Analysis) },
	content.KindReviews:            func() content.Entity { return new(content.Review) },
	content.KindHeroSlides:         func() content.Entity { return new(content.HeroSlide) },
	content.KindServices:           func() content.Entity { return new(content.Service) },
	content.KindNews:               func() content.Entity { return new(content.News) },
	content.KindDocuments:          func() content.Entity { return new(content.Document) },
	content.KindContentBlocks:      func() content.Entity { return new(content.ContentBlock) },
	content.KindDoctorApplications: func() content.Entity { return new(content.DoctorApplication) },
}

// Row is one legacy object as read from a fixture file
type Row map[string]any

// Set holds the rows of every kind found in a fixture directory
type Set map[content.Kind][]Row

// DeriveID maps a legacy ID of kind to its stable UUID
func DeriveID(kind content.Kind, legacyID string) string {
	return uuid.NewSHA1(Namespace, []byte(string(kind)+":"+legacyID)).String()
}

// LoadDir reads <kind>.json, <kind>.yaml or <kind>.yml for every known kind.
// Missing files are skipped; two files for one kind are an error.
func LoadDir(dir string) (Set, error) {
	set := Set{}
	for _, kind := range content.Kinds {
		var found string
		for _, ext := range []string{".json", ".yaml", ".yml"} {
			p := filepath.Join(dir, string(kind)+ext)
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if found != "" {
				return nil, fmt.Errorf("%w: both %s and %s present", liberrors.ErrInvalidInput, filepath.Base(found), filepath.Base(p))
			}
			found = p
		}
		if found == "" {
			continue
		}

		data, err := os.ReadFile(found)
		if err != nil {
			return nil, fmt.Errorf("[fixtures LoadDir] read %s: %w", found, err)
		}
		rows, err := decodeRows(found, data)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("kind", string(kind)).Int("rows", len(rows)).Str("file", found).Msg("fixture loaded")
		set[kind] = rows
	}
	return set, nil
}

func decodeRows(name string, data []byte) ([]Row, error) {
	var rows []Row
	if strings.HasSuffix(name, ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&rows); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", liberrors.ErrInvalidInput, name, err)
		}
		return rows, nil
	}
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", liberrors.ErrInvalidInput, name, err)
	}
	return rows, nil
}

// Convert turns a Set into content records. Rows without a position take
// their index in the file; rows without a published flag are published.
// Rows without timestamps get importedAt.
func Convert(set Set, importedAt time.Time) ([]content.Record, error) {
	kinds := make([]string, 0, len(set))
	for k := range set {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	var records []content.Record
	for _, k := range kinds {
		kind := content.Kind(k)
		seen := map[string]bool{}
		for i, row := range set[kind] {
			rec, legacyID, err := convertRow(kind, i, row, importedAt)
			if err != nil {
				return nil, err
			}
			if seen[legacyID] {
				return nil, fmt.Errorf("%w: duplicate %s id %q", liberrors.ErrInvalidInput, kind, legacyID)
			}
			seen[legacyID] = true
			records = append(records, rec)
		}
	}
	return records, nil
}

func convertRow(kind content.Kind, index int, row Row, importedAt time.Time) (content.Record, string, error) {
	factory, ok := factories[kind]
	if !ok {
		return content.Record{}, "", fmt.Errorf("%w: unknown kind %q", liberrors.ErrInvalidInput, kind)
	}
	legacyID, ok := legacyString(row["id"])
	if !ok {
		return content.Record{}, "", fmt.Errorf("%w: %s row %d has no id", liberrors.ErrInvalidInput, kind, index)
	}

	fields := make(map[string]any, len(row))
	for k, v := range row {
		fields[k] = v
	}
	fields["id"] = DeriveID(kind, legacyID)
	for field, target := range references[kind] {
		if ref, ok := legacyString(fields[field]); ok {
			fields[field] = DeriveID(target, ref)
		}
	}
	// timestamps are applied below; legacy formats vary
	delete(fields, "created_at")
	delete(fields, "updated_at")

	raw, err := json.Marshal(fields)
	if err != nil {
		return content.Record{}, "", fmt.Errorf("%w: %s %s: %v", liberrors.ErrInvalidInput, kind, legacyID, err)
	}
	entity := factory()
	if err := json.Unmarshal(raw, entity); err != nil {
		return content.Record{}, "", fmt.Errorf("%w: %s %s: %v", liberrors.ErrInvalidInput, kind, legacyID, err)
	}

	m := entity.Base()
	if _, ok := row["position"]; !ok {
		m.Position = index
	}
	if _, ok := row["published"]; !ok {
		m.Published = true
	}
	m.CreatedAt = legacyTime(row["created_at"], importedAt)
	m.UpdatedAt = legacyTime(row["updated_at"], m.CreatedAt)

	if err := entity.Validate(); err != nil {
		return content.Record{}, "", fmt.Errorf("%s %s: %w", kind, legacyID, err)
	}
	payload, err := json.Marshal(entity)
	if err != nil {
		return content.Record{}, "", fmt.Errorf("[fixtures Convert] marshal %s %s: %w", kind, legacyID, err)
	}
	return content.Record{
		Kind:      kind,
		ID:        m.ID,
		Position:  m.Position,
		Published: m.Published,
		Payload:   payload,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, legacyID, nil
}

func legacyString(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, id != ""
	case json.Number:
		return id.String(), true
	case int:
		return fmt.Sprint(id), true
	case int64:
		return fmt.Sprint(id), true
	case float64:
		return fmt.Sprint(id), true
	default:
		return "", false
	}
}

func legacyTime(v any, fallback time.Time) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC()
			}
		}
	}
	return fallback.UTC()
}
