package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/query"
	"fintrack/internal/store"
)

type budgetRequest struct {
	Category string          `json:"category"`
	Amount   json.RawMessage `json:"amount"`
	Period   string          `json:"period"`
}

// parseAmount accepts a JSON number or a numeric string, and rejects
// everything else. Unlike read-side normalization, the write boundary
// never coerces garbage to zero.
func parseAmount(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, ok := parseAmount(req.Amount)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "amount must be a number")
		return
	}

	b := core.Budget{
		Category: strings.TrimSpace(req.Category),
		Amount:   amount,
		Period:   core.BudgetPeriod(strings.ToLower(strings.TrimSpace(req.Period))),
	}
	if err := b.Validate(); err != nil {
		if errors.Is(err, core.ErrInvalidPeriod) {
			respondMessage(w, http.StatusBadRequest, "invalid period")
			return
		}
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateBudget(r.Context(), b)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "create budget failed",
			log.FieldError, err.Error(), log.FieldOperation, log.OpCreate)
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	s.publishChange(r.Context(), query.CollectionBudget, created.ID, "created")
	// The response carries no id, matching the store API this mirrors.
	respondMessage(w, http.StatusCreated, "Budget Created")
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.store.ListBudgets(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "list budgets failed",
			log.FieldError, err.Error(), log.FieldOperation, log.OpList)
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, budgets)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Amount json.RawMessage `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, ok := parseAmount(req.Amount)
	if !ok || amount < 0 {
		respondMessage(w, http.StatusBadRequest, "amount must be a number")
		return
	}

	_, err := s.store.UpdateBudgetAmount(r.Context(), id, amount)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Budget not found")
		return
	}
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "update budget failed", log.FieldOperation, log.OpUpdate,
			log.FieldError, err.Error(), log.FieldRecordID, id)
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	s.publishChange(r.Context(), query.CollectionBudget, id, "updated")
	respondMessage(w, http.StatusOK, "Budget updated successfully!")
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := s.store.DeleteBudget(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Budget not found")
		return
	}
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "delete budget failed", log.FieldOperation, log.OpDelete,
			log.FieldError, err.Error(), log.FieldRecordID, id)
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	s.publishChange(r.Context(), query.CollectionBudget, id, "deleted")
	respondMessage(w, http.StatusCreated, "Budget deleted")
}
