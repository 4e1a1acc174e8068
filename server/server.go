package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jrsteele09/go-lab-site/content"
	"github.com/jrsteele09/go-lab-site/internal/config"
	"github.com/jrsteele09/go-lab-site/recaptcha"
	"github.com/jrsteele09/go-lab-site/storage"
	"github.com/jrsteele09/go-lab-site/token"
	"github.com/rs/zerolog/log"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the server is built from
type Deps struct {
	Repo    content.Repo
	Health  Pinger
	Objects storage.ObjectStore
	Captcha recaptcha.Verifier
	Auth    *token.Authority
	NowTime func() time.Time
}

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	router    chi.Router
	routes    []string
	config    config.Config
	auth      *token.Authority
	catalog   *content.Catalog
	objects   storage.ObjectStore
	captcha   recaptcha.Verifier
	health    Pinger
	pages     pageSet
	nowTime   func() time.Time
	startTime time.Time

	contentHandlers map[content.Kind]collectionHandlers
}

func New(config config.Config, deps Deps) (*Server, error) {
	if deps.Repo == nil || deps.Auth == nil || deps.Objects == nil {
		return nil, fmt.Errorf("[Server New] repo, auth and object store are required")
	}
	if deps.Captcha == nil {
		deps.Captcha = recaptcha.Disabled{}
	}
	if deps.NowTime == nil {
		deps.NowTime = time.Now
	}

	s := &Server{
		env:       config.GetEnv(),
		router:    chi.NewRouter(),
		config:    config,
		auth:      deps.Auth,
		catalog:   content.NewCatalog(deps.Repo, deps.NowTime),
		objects:   deps.Objects,
		captcha:   deps.Captcha,
		health:    deps.Health,
		nowTime:   deps.NowTime,
		startTime: deps.NowTime(),

		contentHandlers: make(map[content.Kind]collectionHandlers),
	}

	pages, err := s.parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}
	s.pages = pages

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Compress(5, "text/html", "text/css", "text/javascript", "application/javascript", "application/json", "application/xml"))

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// RegisterRouteHandler registers handler for a "METHOD /path" pattern.
// A pattern without a method matches every method.
func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	method, path, found := strings.Cut(pattern, " ")
	if !found {
		s.router.Handle(pattern, handler)
		return
	}
	s.router.Method(method, path, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.RegisterRouteHandler(pattern, http.HandlerFunc(handler))
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Debug().Msgf("[%-19s] %s", colouredMethod(method), path)
}

func logError(method, path string, err error) {
	log.Error().Err(err).Msgf("[%-19s] %s", colouredMethod(method), path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
