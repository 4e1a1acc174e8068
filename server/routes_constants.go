package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Public pages, prefixed with a locale segment
	RouteLocaleRoot = "/{locale}"
	RouteAnalyses   = "/{locale}/analyses"
	RouteNews       = "/{locale}/news"
	RouteNewsItem   = "/{locale}/news/{slug}"
	RouteDoctors    = "/{locale}/doctors"
	RouteContacts   = "/{locale}/contacts"

	// Public API
	RouteAPIReviews = "/api/reviews"

	// Site infrastructure
	RouteSitemap = "/sitemap.xml"
	RouteHealthz = "/healthz"
	RouteStatic  = "/static/*"

	// Admin pages
	RouteAdminLogin     = "/admin/login"
	RouteAdminDashboard = "/admin"

	// Admin API
	RouteAPIAdminLogin   = "/api/admin/login"
	RouteAPIAdminLogout  = "/api/admin/logout"
	RouteAPIAdminSession = "/api/admin/session"
	RouteAPIAdminKind    = "/api/admin/{kind}"
	RouteAPIAdminItem    = "/api/admin/{kind}/{id}"
	RouteAPIAdminUploads = "/api/admin/uploads"
	RouteAPIAdminUpload  = "/api/admin/uploads/*"
)
