package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

type loginForm struct {
	Email string // Preserve email on error
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, "login", pageData{
			Title: "Sign in",
			Data:  loginForm{Email: r.URL.Query().Get("email")},
		})
	}
}

// LoginSubmissionHandler processes the login form (POST /login). On success the session store
// has already written the cookie mirror, so the redirect passes the route guard.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteLogin, "Invalid form data")
			return
		}
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")

		if email == "" || password == "" {
			s.renderLoginError(w, r, http.StatusBadRequest, "Email and password are required", email)
			return
		}

		if err := s.sessions.Login(r.Context(), email, password); err != nil {
			log.Warn().Err(err).Str("email", email).Msg("console login failed")
			s.renderLoginError(w, r, errorStatus(err), errorMessage(err), email)
			return
		}
		redirectSuccess(w, r, RouteDashboard)
	}
}

func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, status int, msg, email string) {
	s.render(w, r, status, "login", pageData{
		Title: "Sign in",
		Error: msg,
		Data:  loginForm{Email: email},
	})
}

// LogoutHandler ends the session (POST /logout). It always succeeds.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.sessions.Logout(r.Context())
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

// NotFoundHandler handles 404 errors
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "404 - Page not found", http.StatusNotFound)
	}
}
