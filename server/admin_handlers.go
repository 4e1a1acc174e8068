package server

import (
	"net/http"

	"github.com/jrsteele09/go-lab-site/content"
	"github.com/jrsteele09/go-lab-site/i18n"
	liberrors "github.com/jrsteele09/go-lab-site/internal/errors"
	"github.com/rs/zerolog/log"
)

type loginRequest struct {
	Password string `json:"password"`
}

// AdminLoginPageHandler displays the login form (GET /admin/login)
func (s *Server) AdminLoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.hasAdminSession(r) {
			http.Redirect(w, r, RouteAdminDashboard, http.StatusSeeOther)
			return
		}
		data := pageData{
			Locale: i18n.Default,
			Title:  "Admin login",
			Data:   map[string]string{"Error": r.URL.Query().Get("error")},
		}
		s.render(w, r, http.StatusOK, "admin_login.html", data)
	}
}

// AdminLoginHandler checks the password and sets the session cookie.
// JSON clients get 200/401/500; form posts are redirected.
func (s *Server) AdminLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asJSON := isJSONRequest(r)

		var password string
		if asJSON {
			var req loginRequest
			if err := decodeJSON(w, r, s.config.GetMaxFormBytes(), &req); err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid request")
				return
			}
			password = req.Password
		} else {
			r.Body = http.MaxBytesReader(w, r.Body, s.config.GetMaxFormBytes())
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form data", http.StatusBadRequest)
				return
			}
			password = r.FormValue("password")
		}

		ok, err := s.auth.VerifyCredential(password)
		if err != nil {
			s.loginFailedInternally(w, r, asJSON, err)
			return
		}
		if !ok {
			log.Warn().Str("ip", remoteIP(r)).Msg("Admin login failed")
			if asJSON {
				writeJSONError(w, http.StatusUnauthorized, liberrors.ErrInvalidCredentials.Error())
				return
			}
			redirectWithError(w, r, RouteAdminLogin, liberrors.ErrInvalidCredentials.Error())
			return
		}

		sessionToken, err := s.auth.Issue()
		if err != nil {
			s.loginFailedInternally(w, r, asJSON, err)
			return
		}
		s.SetSessionCookie(w, r, sessionToken)
		log.Info().Str("ip", remoteIP(r)).Msg("Admin logged in")

		if asJSON {
			writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
			return
		}
		redirectSuccess(w, r, RouteAdminDashboard)
	}
}

// loginFailedInternally reports a configuration defect without hinting at the password
func (s *Server) loginFailedInternally(w http.ResponseWriter, r *http.Request, asJSON bool, err error) {
	logError(r.Method, r.URL.Path, err)
	if asJSON {
		writeJSONError(w, http.StatusInternalServerError, liberrors.ErrInternal.Error())
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// AdminLogoutHandler clears the cookie
func (s *Server) AdminLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ClearSessionCookie(w, r)
		if isJSONRequest(r) {
			writeJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
			return
		}
		redirectSuccess(w, r, RouteAdminLogin)
	}
}

// AdminSessionHandler only runs behind RequireAdminSession
func (s *Server) AdminSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
	}
}

type kindCount struct {
	Kind  content.Kind
	Total int
}

type dashboardData struct {
	Counts         []kindCount
	Applications   []*content.DoctorApplication
	PendingReviews []*content.Review
}

// AdminDashboardHandler renders counts per collection and the latest submissions
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var data dashboardData

		for _, kind := range content.Kinds {
			h := s.contentHandlers[kind]
			if h == nil {
				continue
			}
			total, err := h.count(ctx)
			if err != nil {
				s.serverError(w, r, err)
				return
			}
			data.Counts = append(data.Counts, kindCount{Kind: kind, Total: total})
		}

		apps, err := s.catalog.DoctorApplications.List(ctx, content.ListFilter{Limit: 10})
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		data.Applications = apps

		reviews, err := s.catalog.Reviews.List(ctx, content.ListFilter{})
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		for _, rv := range reviews {
			if !rv.Published {
				data.PendingReviews = append(data.PendingReviews, rv)
			}
		}

		s.render(w, r, http.StatusOK, "admin_dashboard.html", pageData{Locale: i18n.Default, Title: "Dashboard", Data: data})
	}
}
