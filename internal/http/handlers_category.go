package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/query"
	"fintrack/internal/store"
)

type categoryRequest struct {
	Name  string      `json:"name"`
	Color *core.Color `json:"color"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat := core.Category{Name: strings.TrimSpace(req.Name), Color: core.DefaultColor}
	if req.Color != nil {
		cat.Color = *req.Color
	}
	if err := cat.Validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateCategory(r.Context(), cat)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "create category failed",
			log.FieldError, err.Error(), log.FieldOperation, log.OpCreate)
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	s.publishChange(r.Context(), query.CollectionCategory, created.ID, "created")
	respondJSON(w, http.StatusCreated, map[string]string{
		"id":      created.ID,
		"message": "Categories Created",
	})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.store.ListCategories(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "list categories failed",
			log.FieldError, err.Error(), log.FieldOperation, log.OpList)
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, cats)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := store.CategoryPatch{Color: req.Color}
	if name := strings.TrimSpace(req.Name); name != "" {
		patch.Name = &name
	}

	_, err := s.store.UpdateCategory(r.Context(), id, patch)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Categories not found")
		return
	}
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "update category failed", log.FieldOperation, log.OpUpdate,
			log.FieldError, err.Error(), log.FieldRecordID, id)
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	s.publishChange(r.Context(), query.CollectionCategory, id, "updated")
	respondMessage(w, http.StatusOK, "Categories updated successfully!")
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Transactions and budgets referencing this category keep their
	// stored name; deletion never cascades.
	err := s.store.DeleteCategory(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Categories not found")
		return
	}
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "delete category failed", log.FieldOperation, log.OpDelete,
			log.FieldError, err.Error(), log.FieldRecordID, id)
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	s.publishChange(r.Context(), query.CollectionCategory, id, "deleted")
	respondMessage(w, http.StatusCreated, "Categories deleted successfully!")
}
