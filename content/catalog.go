package content

import (
	"context"
	"sort"
	"time"
)

// Catalog bundles a collection per kind over a single Repo
type Catalog struct {
	Categories         *Collection[Category, *Category]
	Analyses           *Collection[Analysis, *Analysis]
	Reviews            *Collection[Review, *Review]
	HeroSlides         *Collection[HeroSlide, *HeroSlide]
	Services           *Collection[Service, *Service]
	News               *Collection[News, *News]
	Documents          *Collection[Document, *Document]
	ContentBlocks      *Collection[ContentBlock, *ContentBlock]
	DoctorApplications *Collection[DoctorApplication, *DoctorApplication]
}

// NewCatalog creates every collection. nowTime may be nil.
func NewCatalog(repo Repo, nowTime func() time.Time) *Catalog {
	return &Catalog{
		Categories:         NewCollection[Category](repo, nowTime),
		Analyses:           NewCollection[Analysis](repo, nowTime),
		Reviews:            NewCollection[Review](repo, nowTime),
		HeroSlides:         NewCollection[HeroSlide](repo, nowTime),
		Services:           NewCollection[Service](repo, nowTime),
		News:               NewCollection[News](repo, nowTime),
		Documents:          NewCollection[Document](repo, nowTime),
		ContentBlocks:      NewCollection[ContentBlock](repo, nowTime),
		DoctorApplications: NewCollection[DoctorApplication](repo, nowTime),
	}
}

// CategoryGroup is a category with its published analyses
type CategoryGroup struct {
	Category *Category
	Analyses []*Analysis
}

// AnalysesByCategory groups published analyses under published categories in
// category order. Analyses whose category is missing or unpublished are left out.
// A non-empty slug restricts the result to that category.
func (c *Catalog) AnalysesByCategory(ctx context.Context, slug string) ([]CategoryGroup, error) {
	categories, err := c.Categories.List(ctx, ListFilter{PublishedOnly: true})
	if err != nil {
		return nil, err
	}
	analyses, err := c.Analyses.List(ctx, ListFilter{PublishedOnly: true})
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]*Analysis)
	for _, a := range analyses {
		byCategory[a.CategoryID] = append(byCategory[a.CategoryID], a)
	}

	groups := make([]CategoryGroup, 0, len(categories))
	for _, cat := range categories {
		if slug != "" && cat.Slug != slug {
			continue
		}
		groups = append(groups, CategoryGroup{Category: cat, Analyses: byCategory[cat.ID]})
	}
	return groups, nil
}

// LatestNews returns up to limit published news, newest PublishedAt first
func (c *Catalog) LatestNews(ctx context.Context, limit int) ([]*News, error) {
	news, err := c.News.List(ctx, ListFilter{PublishedOnly: true})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(news, func(i, j int) bool {
		return news[i].PublishedAt.After(news[j].PublishedAt)
	})
	if limit > 0 && len(news) > limit {
		news = news[:limit]
	}
	return news, nil
}

// NewsBySlug returns the published article with the given slug
func (c *Catalog) NewsBySlug(ctx context.Context, slug string) (*News, error) {
	return c.News.Find(ctx, ListFilter{PublishedOnly: true}, func(n *News) bool {
		return n.Slug == slug
	})
}

// Block returns the published content block with the given key
func (c *Catalog) Block(ctx context.Context, key string) (*ContentBlock, error) {
	return c.ContentBlocks.Find(ctx, ListFilter{PublishedOnly: true}, func(b *ContentBlock) bool {
		return b.Key == key
	})
}
