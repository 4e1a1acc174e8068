package content_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-lab-site/content"
	"github.com/jrsteele09/go-lab-site/content/repofake"
	"github.com/jrsteele09/go-lab-site/i18n"
	liberrors "github.com/jrsteele09/go-lab-site/internal/errors"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	clock := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return content.NewCatalog(repofake.NewFakeContentRepo(), clock.Now)
}

func TestLocalized_In(t *testing.T) {
	l := content.Localized{RU: "Анализы", EN: "Analyses"}
	require.Equal(t, "Analyses", l.In(i18n.EN))
	require.Equal(t, "Анализы", l.In(i18n.RU))
	require.Equal(t, "Анализы", l.In(i18n.KZ))

	require.Equal(t, "only kz", content.Localized{KZ: "only kz"}.In(i18n.EN))
	require.True(t, content.Localized{}.IsZero())
}

func TestParseKind(t *testing.T) {
	k, ok := content.ParseKind("hero-slides")
	require.True(t, ok)
	require.Equal(t, content.KindHeroSlides, k)

	_, ok = content.ParseKind("users")
	require.False(t, ok)
}

func TestCollection_CRUD(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t)

	review := &content.Review{Author: "Aigerim", Text: "Fast results", Rating: 5}
	require.NoError(t, catalog.Reviews.Create(ctx, review))
	require.NotEmpty(t, review.ID)
	require.False(t, review.CreatedAt.IsZero())

	t.Run("get", func(t *testing.T) {
		got, err := catalog.Reviews.Get(ctx, review.ID)
		require.NoError(t, err)
		require.Equal(t, "Aigerim", got.Author)
		require.Equal(t, review.CreatedAt, got.CreatedAt)
	})

	t.Run("update keeps created at", func(t *testing.T) {
		updated := &content.Review{Author: "Aigerim B.", Text: "Fast results", Rating: 4}
		updated.Published = true
		updated.CreatedAt = time.Unix(0, 0)
		require.NoError(t, catalog.Reviews.Update(ctx, review.ID, updated))

		got, err := catalog.Reviews.Get(ctx, review.ID)
		require.NoError(t, err)
		require.Equal(t, "Aigerim B.", got.Author)
		require.True(t, got.Published)
		require.Equal(t, review.CreatedAt, got.CreatedAt)
		require.True(t, got.UpdatedAt.After(got.CreatedAt))
	})

	t.Run("update missing", func(t *testing.T) {
		err := catalog.Reviews.Update(ctx, "missing", &content.Review{Author: "a", Text: "b", Rating: 3})
		require.ErrorIs(t, err, liberrors.ErrNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		err := catalog.Reviews.Create(ctx, &content.Review{Author: "a", Text: "b", Rating: 9})
		require.ErrorIs(t, err, liberrors.ErrInvalidInput)
	})

	t.Run("duplicate id", func(t *testing.T) {
		dup := &content.Review{Author: "a", Text: "b", Rating: 3}
		dup.ID = review.ID
		require.ErrorIs(t, catalog.Reviews.Create(ctx, dup), liberrors.ErrConflict)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, catalog.Reviews.Delete(ctx, review.ID))
		_, err := catalog.Reviews.Get(ctx, review.ID)
		require.ErrorIs(t, err, liberrors.ErrNotFound)
		require.ErrorIs(t, catalog.Reviews.Delete(ctx, review.ID), liberrors.ErrNotFound)
	})
}

func TestCollection_ListOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t)

	for i, pos := range []int{2, 1, 1} {
		s := &content.Service{Title: content.Localized{RU: string(rune('a' + i))}}
		s.Position = pos
		s.Published = i != 2
		require.NoError(t, catalog.Services.Create(ctx, s))
	}

	all, err := catalog.Services.List(ctx, content.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// position 1 items first, newer before older
	require.Equal(t, "c", all[0].Title.RU)
	require.Equal(t, "b", all[1].Title.RU)
	require.Equal(t, "a", all[2].Title.RU)

	published, err := catalog.Services.List(ctx, content.ListFilter{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, published, 2)

	page, err := catalog.Services.List(ctx, content.ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "b", page[0].Title.RU)
}

func TestCatalog_AnalysesByCategory(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t)

	blood := &content.Category{Slug: "blood", Title: content.Localized{RU: "Кровь"}}
	blood.Published = true
	hidden := &content.Category{Slug: "hidden", Title: content.Localized{RU: "Скрыто"}}
	require.NoError(t, catalog.Categories.Create(ctx, blood))
	require.NoError(t, catalog.Categories.Create(ctx, hidden))

	cbc := &content.Analysis{CategoryID: blood.ID, Code: "CBC", Title: content.Localized{EN: "Complete blood count"}, Price: 2500}
	cbc.Published = true
	draft := &content.Analysis{CategoryID: blood.ID, Code: "DRAFT", Title: content.Localized{EN: "Draft"}}
	orphan := &content.Analysis{CategoryID: hidden.ID, Code: "ORPH", Title: content.Localized{EN: "Orphan"}}
	orphan.Published = true
	for _, a := range []*content.Analysis{cbc, draft, orphan} {
		require.NoError(t, catalog.Analyses.Create(ctx, a))
	}

	groups, err := catalog.AnalysesByCategory(ctx, "")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, "blood", groups[0].Category.Slug)
	require.Len(t, groups[0].Analyses, 1)
	require.Equal(t, "CBC", groups[0].Analyses[0].Code)

	groups, err = catalog.AnalysesByCategory(ctx, "urine")
	require.NoError(t, err)
	require.Empty(t, groups)
}

func TestCatalog_News(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, slug := range []string{"old", "new", "draft"} {
		n := &content.News{Slug: slug, Title: content.Localized{RU: slug}, PublishedAt: base.AddDate(0, 0, i)}
		n.Published = slug != "draft"
		require.NoError(t, catalog.News.Create(ctx, n))
	}

	latest, err := catalog.LatestNews(ctx, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	require.Equal(t, "new", latest[0].Slug)

	got, err := catalog.NewsBySlug(ctx, "old")
	require.NoError(t, err)
	require.Equal(t, "old", got.Slug)

	_, err = catalog.NewsBySlug(ctx, "draft")
	require.ErrorIs(t, err, liberrors.ErrNotFound)

	require.ErrorIs(t, catalog.News.Create(ctx, &content.News{Slug: "Bad Slug", Title: content.Localized{RU: "x"}}), liberrors.ErrInvalidInput)
}

func TestDoctorApplication_Validate(t *testing.T) {
	valid := content.DoctorApplication{FullName: "Dr. Serik", Phone: "+77010000000", Specialty: "Therapist", Email: "serik@example.kz"}
	require.NoError(t, valid.Validate())

	noPhone := valid
	noPhone.Phone = ""
	require.ErrorIs(t, noPhone.Validate(), liberrors.ErrInvalidInput)

	badEmail := valid
	badEmail.Email = "not-an-email"
	require.ErrorIs(t, badEmail.Validate(), liberrors.ErrInvalidInput)
}
