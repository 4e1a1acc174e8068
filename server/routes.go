package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-lab-site/i18n"
	"github.com/jrsteele09/go-lab-site/storage"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET /", ChainMiddleware(s.LocaleRedirectHandler(), s.HTMLMiddleWare()...))

	// Public pages
	s.RegisterRouteHandler("GET "+RouteLocaleRoot, ChainMiddleware(s.HomeHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAnalyses, ChainMiddleware(s.AnalysesHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteNews, ChainMiddleware(s.NewsListHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteNewsItem, ChainMiddleware(s.NewsItemHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteDoctors, ChainMiddleware(s.DoctorsPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteDoctors, ChainMiddleware(s.DoctorsSubmitHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteContacts, ChainMiddleware(s.ContactsHandler(), s.HTMLMiddleWare()...))

	// Public API
	s.RegisterRouteHandler("POST "+RouteAPIReviews, ChainMiddleware(s.ReviewSubmitHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteAPIReviews, ChainMiddleware(noContent, s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteSitemap, ChainMiddleware(s.SitemapHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthHandler())

	// Admin pages
	s.RegisterRouteHandler("GET "+RouteAdminLogin, ChainMiddleware(s.AdminLoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAdminDashboard, ChainMiddleware(s.AdminDashboardHandler(), s.HTMLMiddleWare(s.RequireAdminSession(guardPage))...))

	// Admin API
	s.RegisterRouteHandler("POST "+RouteAPIAdminLogin, ChainMiddleware(s.AdminLoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIAdminLogout, ChainMiddleware(s.AdminLogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIAdminSession, ChainMiddleware(s.AdminSessionHandler(), s.APIMiddleware(s.RequireAdminSession(guardAPI))...))
	s.RegisterRouteHandler("POST "+RouteAPIAdminUploads, ChainMiddleware(s.UploadHandler(), s.APIMiddleware(s.RequireAdminSession(guardAPI))...))
	s.RegisterRouteHandler("DELETE "+RouteAPIAdminUpload, ChainMiddleware(s.DeleteUploadHandler(), s.APIMiddleware(s.RequireAdminSession(guardAPI))...))

	s.registerContentRoutes()

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare(s.CacheMiddleware)...))
	s.registerUploadsRoute()

	s.router.NotFound(ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		s.notFound(w, r, i18n.Default)
	}, s.HTMLMiddleWare()...))
}

// registerContentRoutes exposes admin CRUD for every collection
func (s *Server) registerContentRoutes() {
	c := s.catalog
	for _, h := range []collectionHandlers{
		newCollectionAPI(s, c.Categories),
		newCollectionAPI(s, c.Analyses),
		newCollectionAPI(s, c.Reviews),
		newCollectionAPI(s, c.HeroSlides),
		newCollectionAPI(s, c.Services),
		newCollectionAPI(s, c.News),
		newCollectionAPI(s, c.Documents),
		newCollectionAPI(s, c.ContentBlocks),
		newCollectionAPI(s, c.DoctorApplications),
	} {
		s.contentHandlers[h.kind()] = h
	}

	guarded := func(handler http.HandlerFunc) http.HandlerFunc {
		return ChainMiddleware(handler, s.APIMiddleware(s.RequireAdminSession(guardAPI))...)
	}
	s.RegisterRouteHandler("GET "+RouteAPIAdminKind, guarded(s.ContentHandler(collectionHandlers.list)))
	s.RegisterRouteHandler("POST "+RouteAPIAdminKind, guarded(s.ContentHandler(collectionHandlers.create)))
	s.RegisterRouteHandler("GET "+RouteAPIAdminItem, guarded(s.ContentHandler(collectionHandlers.get)))
	s.RegisterRouteHandler("PUT "+RouteAPIAdminItem, guarded(s.ContentHandler(collectionHandlers.update)))
	s.RegisterRouteHandler("PATCH "+RouteAPIAdminItem, guarded(s.ContentHandler(collectionHandlers.patch)))
	s.RegisterRouteHandler("DELETE "+RouteAPIAdminItem, guarded(s.ContentHandler(collectionHandlers.delete)))
}

// registerUploadsRoute serves locally stored objects when their public URL is a path on this site
func (s *Server) registerUploadsRoute() {
	local, ok := s.objects.(*storage.LocalStore)
	if !ok || !strings.HasPrefix(local.PublicURL(), "/") {
		return
	}
	prefix := local.PublicURL() + "/"
	s.RegisterRouteHandler("GET "+prefix+"*", ChainMiddleware(
		http.StripPrefix(prefix, local.Handler()).ServeHTTP,
		s.HTMLMiddleWare(s.CacheMiddleware)...,
	))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/static/")
		if filePath == "" || strings.HasSuffix(filePath, "/") {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError(r.Method, r.URL.Path, err)
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}
