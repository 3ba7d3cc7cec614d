package api

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"portfoliohub/internal/domain"
	"portfoliohub/internal/hub"
)

// Path-parameter shape constraints, enforced before the services are invoked.
var (
	clientIDPattern  = regexp.MustCompile(`^CLIENT-[A-Z0-9]+$`)
	accountIDPattern = regexp.MustCompile(`^ACC-[A-Z0-9]+$`)
	symbolPattern    = regexp.MustCompile(`^[A-Z0-9.-]+$`)
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"oms":        "UP",
		"marketData": "UP",
	}

	status := http.StatusOK
	overall := "UP"
	if s.omsPing != nil {
		if err := s.omsPing(r.Context()); err != nil {
			checks["oms"] = "DOWN"
			overall = "DOWN"
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, map[string]interface{}{
		"status":  overall,
		"service": "portfoliohub",
		"version": ServiceVersion,
		"checks":  checks,
	})
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	if !clientIDPattern.MatchString(clientID) {
		writeProblem(w, r, hub.Validation(hub.Violation{
			Field:         "clientId",
			Message:       "Client ID must match pattern CLIENT-{ID}",
			RejectedValue: clientID,
		}))
		return
	}

	q := r.URL.Query()
	var violations []hub.Violation

	var status *domain.AccountStatus
	if raw := q.Get("accountStatus"); raw != "" {
		v := domain.AccountStatus(raw)
		if !v.Valid() {
			violations = append(violations, hub.Violation{
				Field:         "accountStatus",
				Message:       "must be a valid account status",
				RejectedValue: raw,
			})
		} else {
			status = &v
		}
	}

	var acctType *domain.AccountType
	if raw := q.Get("accountType"); raw != "" {
		v := domain.AccountType(raw)
		if !v.Valid() {
			violations = append(violations, hub.Violation{
				Field:         "accountType",
				Message:       "must be a valid account type",
				RejectedValue: raw,
			})
		} else {
			acctType = &v
		}
	}

	if len(violations) > 0 {
		writeProblem(w, r, hub.Validation(violations...))
		return
	}

	accounts, err := s.accounts.ListAccounts(r.Context(), clientID, status, acctType)
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")
	if !accountIDPattern.MatchString(accountID) {
		writeProblem(w, r, hub.Validation(hub.Violation{
			Field:         "accountId",
			Message:       "Account ID must match pattern ACC-{ID}",
			RejectedValue: accountID,
		}))
		return
	}

	portfolio, err := s.portfolio.GetPortfolio(r.Context(), accountID)
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolio)
}

func (s *Server) handleGetInstrument(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if !symbolPattern.MatchString(symbol) {
		writeProblem(w, r, hub.Validation(hub.Violation{
			Field:         "symbol",
			Message:       "Symbol must contain only uppercase letters, numbers, dots, or hyphens",
			RejectedValue: symbol,
		}))
		return
	}

	instrument, err := s.refdata.GetInstrument(r.Context(), symbol)
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, instrument)
}
