package server

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/go-lab-site/content"
	"github.com/jrsteele09/go-lab-site/i18n"
	liberrors "github.com/jrsteele09/go-lab-site/internal/errors"
	"github.com/jrsteele09/go-lab-site/internal/utils"
	"github.com/rs/zerolog/log"
)

const homeNewsLimit = 3

// LocaleRedirectHandler sends "/" to the best matching locale's home page
func (s *Server) LocaleRedirectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale := i18n.Negotiate(r.Header.Get("Accept-Language"))
		w.Header().Add("Vary", "Accept-Language")
		http.Redirect(w, r, "/"+locale.String(), http.StatusFound)
	}
}

// localeHandler resolves the {locale} segment, answering 404 for unknown locales
func (s *Server) localeHandler(next func(w http.ResponseWriter, r *http.Request, locale i18n.Locale)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale, ok := i18n.Parse(chi.URLParam(r, "locale"))
		if !ok {
			s.notFound(w, r, i18n.Default)
			return
		}
		next(w, r, locale)
	}
}

func (s *Server) page(r *http.Request, locale i18n.Locale, title string, data any) pageData {
	return pageData{
		Locale: locale,
		Path:   strings.TrimPrefix(r.URL.Path, "/"+locale.String()),
		Title:  title,
		Data:   data,
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, locale i18n.Locale) {
	s.render(w, r, http.StatusNotFound, "not_found.html", s.page(r, locale, "404", nil))
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logError(r.Method, r.URL.Path, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

type homeData struct {
	Slides   []*content.HeroSlide
	Services []*content.Service
	Reviews  []*content.Review
	News     []*content.News
	About    *content.ContentBlock
}

func (s *Server) HomeHandler() http.HandlerFunc {
	return s.localeHandler(func(w http.ResponseWriter, r *http.Request, locale i18n.Locale) {
		ctx := r.Context()
		published := content.ListFilter{PublishedOnly: true}

		var data homeData
		var err error
		if data.Slides, err = s.catalog.HeroSlides.List(ctx, published); err != nil {
			s.serverError(w, r, err)
			return
		}
		if data.Services, err = s.catalog.Services.List(ctx, published); err != nil {
			s.serverError(w, r, err)
			return
		}
		if data.Reviews, err = s.catalog.Reviews.List(ctx, content.ListFilter{PublishedOnly: true, Limit: 6}); err != nil {
			s.serverError(w, r, err)
			return
		}
		if data.News, err = s.catalog.LatestNews(ctx, homeNewsLimit); err != nil {
			s.serverError(w, r, err)
			return
		}
		data.About, err = s.catalog.Block(ctx, "about")
		if err != nil && !errors.Is(err, liberrors.ErrNotFound) {
			s.serverError(w, r, err)
			return
		}

		s.render(w, r, http.StatusOK, "home.html", s.page(r, locale, i18n.T(locale, "nav.home"), data))
	})
}

type analysesData struct {
	Groups   []content.CategoryGroup
	Selected string
	All      []content.CategoryGroup
}

// AnalysesHandler renders the catalog, optionally narrowed with ?category=slug
func (s *Server) AnalysesHandler() http.HandlerFunc {
	return s.localeHandler(func(w http.ResponseWriter, r *http.Request, locale i18n.Locale) {
		selected := r.URL.Query().Get("category")
		all, err := s.catalog.AnalysesByCategory(r.Context(), "")
		if err != nil {
			s.serverError(w, r, err)
			return
		}

		groups := all
		if selected != "" {
			groups = nil
			for _, g := range all {
				if g.Category.Slug == selected {
					groups = append(groups, g)
				}
			}
			if len(groups) == 0 {
				s.notFound(w, r, locale)
				return
			}
		}

		data := analysesData{Groups: groups, Selected: selected, All: all}
		s.render(w, r, http.StatusOK, "analyses.html", s.page(r, locale, i18n.T(locale, "nav.analyses"), data))
	})
}

func (s *Server) NewsListHandler() http.HandlerFunc {
	return s.localeHandler(func(w http.ResponseWriter, r *http.Request, locale i18n.Locale) {
		news, err := s.catalog.LatestNews(r.Context(), 0)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		s.render(w, r, http.StatusOK, "news.html", s.page(r, locale, i18n.T(locale, "nav.news"), news))
	})
}

func (s *Server) NewsItemHandler() http.HandlerFunc {
	return s.localeHandler(func(w http.ResponseWriter, r *http.Request, locale i18n.Locale) {
		item, err := s.catalog.NewsBySlug(r.Context(), chi.URLParam(r, "slug"))
		if errors.Is(err, liberrors.ErrNotFound) {
			s.notFound(w, r, locale)
			return
		}
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		s.render(w, r, http.StatusOK, "news_item.html", s.page(r, locale, item.Title.In(locale), item))
	})
}

type contactsData struct {
	Block     *content.ContentBlock
	Documents []*content.Document
}

func (s *Server) ContactsHandler() http.HandlerFunc {
	return s.localeHandler(func(w http.ResponseWriter, r *http.Request, locale i18n.Locale) {
		var data contactsData
		var err error
		data.Block, err = s.catalog.Block(r.Context(), "contacts")
		if err != nil && !errors.Is(err, liberrors.ErrNotFound) {
			s.serverError(w, r, err)
			return
		}
		if data.Documents, err = s.catalog.Documents.List(r.Context(), content.ListFilter{PublishedOnly: true}); err != nil {
			s.serverError(w, r, err)
			return
		}
		s.render(w, r, http.StatusOK, "contacts.html", s.page(r, locale, i18n.T(locale, "nav.contacts"), data))
	})
}

type doctorsData struct {
	Form   *content.DoctorApplication
	Sent   bool
	Error  string
	Fields []string
}

func (s *Server) DoctorsPageHandler() http.HandlerFunc {
	return s.localeHandler(func(w http.ResponseWriter, r *http.Request, locale i18n.Locale) {
		data := doctorsData{
			Form: &content.DoctorApplication{},
			Sent: r.URL.Query().Get("sent") == "1",
		}
		s.render(w, r, http.StatusOK, "doctors.html", s.page(r, locale, i18n.T(locale, "doctors.title"), data))
	})
}

// DoctorsSubmitHandler checks the captcha, stores the application and
// redirects back to the form with a confirmation
func (s *Server) DoctorsSubmitHandler() http.HandlerFunc {
	return s.localeHandler(func(w http.ResponseWriter, r *http.Request, locale i18n.Locale) {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.GetMaxFormBytes())
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		app := &content.DoctorApplication{
			FullName:  strings.TrimSpace(r.FormValue("full_name")),
			Phone:     strings.TrimSpace(r.FormValue("phone")),
			Email:     strings.TrimSpace(r.FormValue("email")),
			Specialty: strings.TrimSpace(r.FormValue("specialty")),
			Clinic:    strings.TrimSpace(r.FormValue("clinic")),
			Comment:   strings.TrimSpace(r.FormValue("comment")),
			Locale:    locale,
		}
		fail := func(status int) {
			data := doctorsData{Form: app, Error: i18n.T(locale, "form.error")}
			s.render(w, r, status, "doctors.html", s.page(r, locale, i18n.T(locale, "doctors.title"), data))
		}

		if err := s.checkCaptcha(r, r.FormValue("g-recaptcha-response")); err != nil {
			if errors.Is(err, liberrors.ErrCaptchaRejected) {
				fail(http.StatusBadRequest)
				return
			}
			logError(r.Method, r.URL.Path, err)
			fail(http.StatusBadGateway)
			return
		}

		if err := s.catalog.DoctorApplications.Create(r.Context(), app); err != nil {
			if errors.Is(err, liberrors.ErrInvalidInput) {
				fail(http.StatusBadRequest)
				return
			}
			s.serverError(w, r, err)
			return
		}
		log.Info().Str("id", app.ID).Str("locale", locale.String()).Msg("Doctor application received")
		redirectSuccess(w, r, "/"+locale.String()+"/doctors?sent=1")
	})
}

type reviewRequest struct {
	Author  string `json:"author"`
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	Locale  string `json:"locale"`
	Captcha string `json:"captcha"`
}

// ReviewSubmitHandler accepts a public review. Reviews stay unpublished
// until an admin approves them.
func (s *Server) ReviewSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reviewRequest
		if err := decodeJSON(w, r, s.config.GetMaxFormBytes(), &req); err != nil {
			writeError(w, r, err)
			return
		}

		if err := s.checkCaptcha(r, req.Captcha); err != nil {
			if errors.Is(err, liberrors.ErrCaptchaRejected) {
				writeError(w, r, err)
				return
			}
			logError(r.Method, r.URL.Path, err)
			writeJSONError(w, http.StatusBadGateway, "captcha verification unavailable")
			return
		}

		locale, ok := i18n.Parse(req.Locale)
		if !ok {
			locale = i18n.Default
		}
		review := &content.Review{
			Author: strings.TrimSpace(req.Author),
			Text:   strings.TrimSpace(req.Text),
			Rating: req.Rating,
			Locale: locale,
		}
		if err := s.catalog.Reviews.Create(r.Context(), review); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": review.ID})
	}
}

// checkCaptcha returns ErrCaptchaRejected for a refused token and a plain
// error when the verifier could not be reached
func (s *Server) checkCaptcha(r *http.Request, captchaToken string) error {
	result, err := s.captcha.Verify(r.Context(), captchaToken, remoteIP(r))
	if err != nil {
		return err
	}
	if !result.Success {
		log.Info().Strs("codes", result.ErrorCodes).Str("path", r.URL.Path).Msg("Captcha rejected")
		return liberrors.ErrCaptchaRejected
	}
	return nil
}

func remoteIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// queryInt parses an optional non-negative integer query parameter
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, liberrors.Wrapf(liberrors.ErrInvalidInput, "query parameter %s=%q", name, raw)
	}
	return utils.Ptr(v), nil
}
