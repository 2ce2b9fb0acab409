package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// View endpoints run the computation core over a fresh snapshot. A
// fetch failure is answered with 503 so callers can distinguish "store
// down" from "zero records"; a stale snapshot is flagged in a header
// instead of being passed off as current.

func (s *Server) snapshotOr503(w http.ResponseWriter, r *http.Request) (txs []core.Transaction, cats []core.Category, buds []core.Budget, ok bool) {
	snap, err := s.queries.Fetch(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "snapshot fetch failed",
			log.FieldError, err.Error(), log.FieldOperation, log.OpFetch)
		respondError(w, http.StatusServiceUnavailable, err)
		return nil, nil, nil, false
	}
	if snap.Stale {
		w.Header().Set("X-Snapshot-Stale", "true")
	}
	return snap.Transactions, snap.Categories, snap.Budgets, true
}

func (s *Server) handleDashboardView(w http.ResponseWriter, r *http.Request) {
	txs, cats, _, ok := s.snapshotOr503(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, core.BuildDashboard(txs, cats))
}

func (s *Server) handleHistoryView(w http.ResponseWriter, r *http.Request) {
	txs, _, _, ok := s.snapshotOr503(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	criteria := core.Criteria{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Type:     q.Get("type"),
		DateFrom: q.Get("dateFrom"),
		DateTo:   q.Get("dateTo"),
	}

	field := core.SortField(q.Get("sortBy"))
	switch field {
	case core.SortByDescription, core.SortByCategory, core.SortByAmount:
	default:
		field = core.SortByDate
	}
	dir := core.Ascending
	if q.Get("sortDir") == string(core.Descending) {
		dir = core.Descending
	}

	respondJSON(w, http.StatusOK, core.BuildHistory(txs, criteria, field, dir))
}

func (s *Server) handleReportView(w http.ResponseWriter, r *http.Request) {
	txs, cats, _, ok := s.snapshotOr503(w, r)
	if !ok {
		return
	}

	period := core.Period(r.URL.Query().Get("period"))
	switch period {
	case core.PeriodOneMonth, core.PeriodThreeMonth, core.PeriodSixMonth, core.PeriodOneYear:
	default:
		period = core.PeriodAll
	}

	respondJSON(w, http.StatusOK, core.BuildReport(txs, cats, period, time.Now()))
}

func (s *Server) handleBudgetView(w http.ResponseWriter, r *http.Request) {
	txs, _, buds, ok := s.snapshotOr503(w, r)
	if !ok {
		return
	}

	// An explicit period narrows the view to budgets of that cadence.
	switch p := core.BudgetPeriod(r.URL.Query().Get("period")); p {
	case core.PeriodMonthly, core.PeriodYearly:
		kept := make([]core.Budget, 0, len(buds))
		for _, b := range buds {
			if b.Period == p {
				kept = append(kept, b)
			}
		}
		buds = kept
	}

	respondJSON(w, http.StatusOK, core.BuildBudgets(txs, buds, time.Now()))
}
