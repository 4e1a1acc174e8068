package server

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jrsteele09/go-lab-site/content"
	"github.com/jrsteele09/go-lab-site/i18n"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// pageSet holds every page parsed together with its layout
type pageSet map[string]*template.Template

var (
	publicPages = []string{"home.html", "analyses.html", "news.html", "news_item.html", "doctors.html", "contacts.html", "not_found.html"}
	adminPages  = []string{"admin_login.html", "admin_dashboard.html"}
)

// pageData is what every page template receives
type pageData struct {
	AppName string
	Locale  i18n.Locale
	Locales []i18n.Locale
	Path    string // request path below the locale, for the language switcher
	Title   string
	SiteKey string
	Year    int
	Data    any
}

func (s *Server) parsePages() (pageSet, error) {
	funcs := template.FuncMap{
		"t":          i18n.T,
		"text":       func(v content.Localized, l i18n.Locale) string { return v.In(l) },
		"media":      s.mediaURL,
		"date":       func(t time.Time) string { return t.Format("02.01.2006") },
		"price":      formatPrice,
		"paragraphs": paragraphs,
	}

	pages := pageSet{}
	parse := func(layout string, names []string) error {
		for _, name := range names {
			tmpl, err := template.New(layout).Funcs(funcs).ParseFS(TemplateFilesFS(), layout, name)
			if err != nil {
				return fmt.Errorf("parse %s: %w", name, err)
			}
			pages[name] = tmpl
		}
		return nil
	}
	if err := parse("layout.html", publicPages); err != nil {
		return nil, err
	}
	if err := parse("admin_layout.html", adminPages); err != nil {
		return nil, err
	}
	return pages, nil
}

// render executes a page into a buffer first so a template error still
// produces a clean 500
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	tmpl, ok := s.pages[name]
	if !ok {
		logError(r.Method, r.URL.Path, fmt.Errorf("unknown page %s", name))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	data.AppName = s.config.GetAppName()
	data.Locales = i18n.Supported
	data.SiteKey = s.config.GetReCaptchaSiteKey()
	data.Year = s.nowTime().Year()
	if data.Locale == "" {
		data.Locale = i18n.Default
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Err(err).Str("page", name).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// mediaURL resolves an object key for templates; unknown keys render as empty
func (s *Server) mediaURL(key string) string {
	if key == "" {
		return ""
	}
	u, err := s.objects.URL(context.Background(), key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to resolve media URL")
		return ""
	}
	return u
}

// formatPrice renders tenge with spaces between thousands
func formatPrice(tenge int) string {
	return strings.ReplaceAll(humanize.Comma(int64(tenge)), ",", " ") + " ₸"
}

func paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
