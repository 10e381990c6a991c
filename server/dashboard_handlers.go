package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/billing-console/billing"
	"github.com/jrsteele09/billing-console/console"
	"github.com/jrsteele09/billing-console/tenants"
	"github.com/jrsteele09/billing-console/users"
)

// pageHandler renders page from the result of one console call. A failed call renders the page
// with the backend's message, unless the gateway expired the session.
func pageHandler[T any](s *Server, page, title string, fetch func(r *http.Request) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fetch(r)
		if err != nil {
			if s.sessionExpired(w, r) {
				return
			}
			logError(r.Method, r.URL.Path, err)
			s.render(w, r, errorStatus(err), page, pageData{Title: title, Active: page, Error: errorMessage(err)})
			return
		}
		s.render(w, r, http.StatusOK, page, pageData{Title: title, Active: page, Data: data})
	}
}

// mutationFailed sends the operator back to path with the backend's message.
func (s *Server) mutationFailed(w http.ResponseWriter, r *http.Request, path string, err error) {
	if s.sessionExpired(w, r) {
		return
	}
	logError(r.Method, r.URL.Path, err)
	redirectWithError(w, r, path, errorMessage(err))
}

func (s *Server) DashboardHandler() http.HandlerFunc {
	return pageHandler(s, "dashboard", "Overview", func(r *http.Request) (*console.Dashboard, error) {
		return s.api.Dashboard(r.Context())
	})
}

func (s *Server) TransactionsHandler() http.HandlerFunc {
	return pageHandler(s, "transactions", "Transactions", func(r *http.Request) ([]billing.Transaction, error) {
		return s.api.Transactions(r.Context())
	})
}

func (s *Server) DepositsHandler() http.HandlerFunc {
	return pageHandler(s, "deposits", "Deposits", func(r *http.Request) ([]billing.Deposit, error) {
		return s.api.Deposits(r.Context())
	})
}

func (s *Server) StaffHandler() http.HandlerFunc {
	return pageHandler(s, "staff", "Staff", func(r *http.Request) ([]users.User, error) {
		return s.api.Staff(r.Context())
	})
}

func (s *Server) AssembliesHandler() http.HandlerFunc {
	return pageHandler(s, "assemblies", "Assemblies", func(r *http.Request) ([]tenants.Tenant, error) {
		return s.api.Assemblies(r.Context())
	})
}

func (s *Server) ZoneHandler() http.HandlerFunc {
	return pageHandler(s, "zone", "Zone", func(r *http.Request) (billing.Zone, error) {
		return s.api.Zone(r.Context(), chi.URLParam(r, "id"))
	})
}

func (s *Server) ReadingsHandler() http.HandlerFunc {
	return pageHandler(s, "readings", "Meter readings", func(r *http.Request) ([]billing.MeterReading, error) {
		return s.api.MeterReadings(r.Context())
	})
}

func (s *Server) AssetsHandler() http.HandlerFunc {
	return pageHandler(s, "assets", "Assets", func(r *http.Request) ([]billing.Asset, error) {
		return s.api.Assets(r.Context())
	})
}

// VoidTransactionHandler voids one transaction (POST /dashboard/transactions/{id}/void).
func (s *Server) VoidTransactionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteTransactions, "Invalid form data")
			return
		}
		reason := strings.TrimSpace(r.FormValue("reason"))
		if reason == "" {
			redirectWithError(w, r, RouteTransactions, "A reason is required to void a transaction")
			return
		}
		if _, err := s.api.VoidTransaction(r.Context(), chi.URLParam(r, "id"), reason); err != nil {
			s.mutationFailed(w, r, RouteTransactions, err)
			return
		}
		redirectWithNotice(w, r, RouteTransactions, "Transaction voided")
	}
}

// SetStaffActiveHandler deactivates or reactivates a staff member.
func (s *Server) SetStaffActiveHandler(active bool) http.HandlerFunc {
	notice := "Staff member deactivated"
	if active {
		notice = "Staff member reactivated"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.api.SetUserActive(r.Context(), chi.URLParam(r, "id"), active); err != nil {
			s.mutationFailed(w, r, RouteStaff, err)
			return
		}
		redirectWithNotice(w, r, RouteStaff, notice)
	}
}
