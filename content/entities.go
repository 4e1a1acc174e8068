package content

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/jrsteele09/go-lab-site/i18n"
	liberrors "github.com/jrsteele09/go-lab-site/internal/errors"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", liberrors.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return invalid("slug %q must be lowercase letters, digits and dashes", slug)
	}
	return nil
}

// Category groups analyses in the catalog
type Category struct {
	Meta
	Slug  string    `json:"slug"`
	Title Localized `json:"title"`
}

func (Category) Kind() Kind { return KindCategories }

func (c *Category) Validate() error {
	if err := validateSlug(c.Slug); err != nil {
		return err
	}
	if c.Title.IsZero() {
		return invalid("category title is required")
	}
	return nil
}

// Analysis is a laboratory test offered in the catalog
type Analysis struct {
	Meta
	CategoryID     string    `json:"category_id"`
	Code           string    `json:"code"`
	Title          Localized `json:"title"`
	Description    Localized `json:"description"`
	Preparation    Localized `json:"preparation"`
	Price          int       `json:"price"` // tenge
	TurnaroundDays int       `json:"turnaround_days"`
}

func (Analysis) Kind() Kind { return KindAnalyses }

func (a *Analysis) Validate() error {
	if strings.TrimSpace(a.Code) == "" {
		return invalid("analysis code is required")
	}
	if a.Title.IsZero() {
		return invalid("analysis title is required")
	}
	if a.Price < 0 {
		return invalid("analysis price must not be negative")
	}
	if a.TurnaroundDays < 0 {
		return invalid("turnaround days must not be negative")
	}
	return nil
}

// Review is a patient testimonial. Public submissions start unpublished.
type Review struct {
	Meta
	Author string      `json:"author"`
	Text   string      `json:"text"`
	Rating int         `json:"rating"`
	Locale i18n.Locale `json:"locale,omitempty"`
}

func (Review) Kind() Kind { return KindReviews }

func (r *Review) Validate() error {
	if strings.TrimSpace(r.Author) == "" {
		return invalid("review author is required")
	}
	if strings.TrimSpace(r.Text) == "" {
		return invalid("review text is required")
	}
	if len(r.Text) > 4000 {
		return invalid("review text is too long")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return invalid("rating must be between 1 and 5")
	}
	return nil
}

// HeroSlide is a banner on the home page
type HeroSlide struct {
	Meta
	Title    Localized `json:"title"`
	Subtitle Localized `json:"subtitle"`
	ImageKey string    `json:"image_key"`
	LinkURL  string    `json:"link_url,omitempty"`
}

func (HeroSlide) Kind() Kind { return KindHeroSlides }

func (h *HeroSlide) Validate() error {
	if h.Title.IsZero() {
		return invalid("slide title is required")
	}
	if h.ImageKey == "" {
		return invalid("slide image is required")
	}
	return nil
}

// Service is an offering shown on the home page
type Service struct {
	Meta
	Title       Localized `json:"title"`
	Description Localized `json:"description"`
	IconKey     string    `json:"icon_key,omitempty"`
}

func (Service) Kind() Kind { return KindServices }

func (s *Service) Validate() error {
	if s.Title.IsZero() {
		return invalid("service title is required")
	}
	return nil
}

// News is an article. PublishedAt orders the news feed.
type News struct {
	Meta
	Slug        string    `json:"slug"`
	Title       Localized `json:"title"`
	Summary     Localized `json:"summary"`
	Body        Localized `json:"body"`
	CoverKey    string    `json:"cover_key,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

func (News) Kind() Kind { return KindNews }

func (n *News) Validate() error {
	if err := validateSlug(n.Slug); err != nil {
		return err
	}
	if n.Title.IsZero() {
		return invalid("news title is required")
	}
	return nil
}

// Document is a downloadable file (licences, price lists)
type Document struct {
	Meta
	Title   Localized `json:"title"`
	FileKey string    `json:"file_key"`
}

func (Document) Kind() Kind { return KindDocuments }

func (d *Document) Validate() error {
	if d.Title.IsZero() {
		return invalid("document title is required")
	}
	if d.FileKey == "" {
		return invalid("document file is required")
	}
	return nil
}

// ContentBlock is a keyed piece of patient-facing text (contacts, preparation rules)
type ContentBlock struct {
	Meta
	Key   string    `json:"key"`
	Title Localized `json:"title"`
	Body  Localized `json:"body"`
}

func (ContentBlock) Kind() Kind { return KindContentBlocks }

func (b *ContentBlock) Validate() error {
	if err := validateSlug(b.Key); err != nil {
		return err
	}
	return nil
}

// DoctorApplication is a doctor registration request from the public form
type DoctorApplication struct {
	Meta
	FullName  string      `json:"full_name"`
	Phone     string      `json:"phone"`
	Email     string      `json:"email,omitempty"`
	Specialty string      `json:"specialty"`
	Clinic    string      `json:"clinic,omitempty"`
	Comment   string      `json:"comment,omitempty"`
	Locale    i18n.Locale `json:"locale,omitempty"`
}

func (DoctorApplication) Kind() Kind { return KindDoctorApplications }

func (d *DoctorApplication) Validate() error {
	if strings.TrimSpace(d.FullName) == "" {
		return invalid("full name is required")
	}
	if strings.TrimSpace(d.Phone) == "" {
		return invalid("phone is required")
	}
	if d.Email != "" {
		if _, err := mail.ParseAddress(d.Email); err != nil {
			return invalid("email %q is not valid", d.Email)
		}
	}
	if strings.TrimSpace(d.Specialty) == "" {
		return invalid("specialty is required")
	}
	if len(d.Comment) > 2000 {
		return invalid("comment is too long")
	}
	return nil
}
