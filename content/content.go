// Package content defines the site's content entities and typed CRUD access
// to them over a generic row store.
package content

import (
	"time"

	"github.com/jrsteele09/go-lab-site/i18n"
)

// Kind names a content collection. It is also the URL segment of the admin API.
type Kind string

const (
	KindCategories         Kind = "categories"
	KindAnalyses           Kind = "analyses"
	KindReviews            Kind = "reviews"
	KindHeroSlides         Kind = "hero-slides"
	KindServices           Kind = "services"
	KindNews               Kind = "news"
	KindDocuments          Kind = "documents"
	KindContentBlocks      Kind = "content-blocks"
	KindDoctorApplications Kind = "doctor-applications"
)

// Kinds lists every collection
var Kinds = []Kind{
	KindCategories,
	KindAnalyses,
	KindReviews,
	KindHeroSlides,
	KindServices,
	KindNews,
	KindDocuments,
	KindContentBlocks,
	KindDoctorApplications,
}

// ParseKind returns the Kind for s if it names a collection
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Localized is a text value in every site locale
type Localized struct {
	RU string `json:"ru"`
	KZ string `json:"kz"`
	EN string `json:"en"`
}

// In returns the text for locale l, falling back to Russian and then to any
// non-empty translation.
func (l Localized) In(locale i18n.Locale) string {
	var v string
	switch locale {
	case i18n.KZ:
		v = l.KZ
	case i18n.EN:
		v = l.EN
	default:
		v = l.RU
	}
	if v != "" {
		return v
	}
	for _, fallback := range []string{l.RU, l.KZ, l.EN} {
		if fallback != "" {
			return fallback
		}
	}
	return ""
}

// IsZero reports whether no translation is set
func (l Localized) IsZero() bool {
	return l.RU == "" && l.KZ == "" && l.EN == ""
}

// Meta is embedded in every entity. The store owns these fields.
type Meta struct {
	ID        string    `json:"id"`
	Position  int       `json:"position"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Base gives generic code access to the embedded Meta
func (m *Meta) Base() *Meta {
	return m
}

// Entity is implemented by pointers to every content type
type Entity interface {
	Base() *Meta
	Kind() Kind
	Validate() error
}

// EntityPtr constrains a type parameter to a pointer to T implementing Entity
type EntityPtr[T any] interface {
	*T
	Entity
}
