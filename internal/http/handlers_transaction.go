package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/query"
	"fintrack/internal/store"
)

type transactionRequest struct {
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, ok := parseAmount(req.Amount)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "amount must be a number")
		return
	}

	tx := core.NormalizeTransaction(core.Transaction{
		Description: req.Description,
		Amount:      amount,
		Category:    req.Category,
		Date:        req.Date,
		Type:        core.TransactionType(req.Type),
	})
	if err := tx.Validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateTransaction(r.Context(), tx)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "create transaction failed",
			log.FieldError, err.Error(), log.FieldOperation, log.OpCreate)
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	s.publishChange(r.Context(), query.CollectionTransaction, created.ID, "created")
	respondJSON(w, http.StatusCreated, map[string]string{
		"id":      created.ID,
		"message": "Transaction created",
	})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListTransactions(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "list transactions failed",
			log.FieldError, err.Error(), log.FieldOperation, log.OpList)
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, core.NormalizeTransactions(txs))
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	txs, err := s.store.ListTransactions(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "list transactions failed",
			log.FieldError, err.Error(), log.FieldOperation, log.OpList)
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	for _, tx := range txs {
		if tx.ID == id {
			respondJSON(w, http.StatusOK, core.NormalizeTransaction(tx))
			return
		}
	}
	respondMessage(w, http.StatusNotFound, "Transaction not found")
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := s.store.DeleteTransaction(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "delete transaction failed", log.FieldOperation, log.OpDelete,
			log.FieldError, err.Error(), log.FieldRecordID, id)
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	s.publishChange(r.Context(), query.CollectionTransaction, id, "deleted")
	// The store API this mirrors answers deletes with 201.
	respondMessage(w, http.StatusCreated, "Transaction deleted")
}
