package backend

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/billing-console/billing"
	cerrors "github.com/jrsteele09/billing-console/internal/errors"
	"github.com/jrsteele09/billing-console/tenants"
	"github.com/rs/zerolog/log"
)

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Ledger.Summary(tenantFrom(r.Context()).ID))
}

// assemblies lists every assembly for a super admin and only the caller's own otherwise.
func (s *Server) assemblies(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r.Context())
	if !userFrom(r.Context()).IsSuperAdmin() {
		writeJSON(w, http.StatusOK, []*tenants.Tenant{tenant})
		return
	}
	list, err := s.deps.Tenants.List(0, 0)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) transactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Ledger.Transactions(tenantFrom(r.Context()).ID))
}

func (s *Server) voidTransaction(w http.ResponseWriter, r *http.Request) {
	var req billing.VoidRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	user := userFrom(r.Context())
	txn, err := s.deps.Ledger.VoidTransaction(tenantFrom(r.Context()).ID, chi.URLParam(r, "id"), req.Reason, user.ID)
	if err != nil {
		switch {
		case cerrors.Is(err, cerrors.ErrMissingArgument):
			writeError(w, http.StatusBadRequest, "A reason is required to void a transaction")
		case cerrors.Is(err, cerrors.ErrConflict):
			writeError(w, http.StatusConflict, "Transaction already voided")
		case cerrors.Is(err, cerrors.ErrNotFound):
			writeError(w, http.StatusNotFound, "Transaction not found")
		default:
			writeDomainError(w, err)
		}
		return
	}
	log.Info().Str("transaction", txn.ID).Str("by", user.ID).Msg("transaction voided")
	writeJSON(w, http.StatusOK, txn)
}

func (s *Server) deposits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Ledger.Deposits(tenantFrom(r.Context()).ID))
}

func (s *Server) staff(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Users.List(tenantFrom(r.Context()).ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) user(w http.ResponseWriter, r *http.Request) {
	u, err := s.deps.Users.GetByID(chi.URLParam(r, "id"))
	if err != nil || u.AssemblyID != tenantFrom(r.Context()).ID {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// setUserActive deactivates or reactivates a staff member of the caller's assembly.
func (s *Server) setUserActive(w http.ResponseWriter, r *http.Request) {
	var req billing.ActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	caller := userFrom(r.Context())
	if id == caller.ID && !req.Active {
		writeError(w, http.StatusConflict, "You cannot deactivate your own account")
		return
	}

	u, err := s.deps.Users.GetByID(id)
	if err != nil || u.AssemblyID != tenantFrom(r.Context()).ID {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err := s.deps.Users.SetActive(id, req.Active); err != nil {
		writeDomainError(w, err)
		return
	}
	u.Active = req.Active
	log.Info().Str("user", id).Bool("active", req.Active).Str("by", caller.ID).Msg("staff status changed")
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) zone(w http.ResponseWriter, r *http.Request) {
	z, err := s.deps.Ledger.Zone(tenantFrom(r.Context()).ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Zone not found")
		return
	}
	writeJSON(w, http.StatusOK, z)
}

func (s *Server) meterReadings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Ledger.MeterReadings(tenantFrom(r.Context()).ID))
}

func (s *Server) assets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Ledger.Assets(tenantFrom(r.Context()).ID))
}
