package server

import (
	"encoding/xml"
	"net/http"

	"github.com/jrsteele09/go-lab-site/i18n"
)

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

var sitemapSections = []string{"", "/analyses", "/news", "/doctors", "/contacts"}

// SitemapHandler lists every locale's sections and published news
func (s *Server) SitemapHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		base := s.config.GetBaseURL()
		if base == "" {
			base = getScheme(r) + "://" + r.Host
		}

		news, err := s.catalog.LatestNews(r.Context(), 0)
		if err != nil {
			s.serverError(w, r, err)
			return
		}

		set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
		for _, locale := range i18n.Supported {
			prefix := base + "/" + locale.String()
			for _, section := range sitemapSections {
				set.URLs = append(set.URLs, sitemapURL{Loc: prefix + section})
			}
			for _, n := range news {
				set.URLs = append(set.URLs, sitemapURL{
					Loc:     prefix + "/news/" + n.Slug,
					LastMod: n.UpdatedAt.UTC().Format("2006-01-02"),
				})
			}
		}

		w.Header().Set("Content-Type", contentTypeXML)
		_, _ = w.Write([]byte(xml.Header))
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err := enc.Encode(set); err != nil {
			logError(r.Method, r.URL.Path, err)
		}
	}
}
