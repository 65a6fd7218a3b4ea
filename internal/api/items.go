package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wikigear/internal"
)

// handleGetCategories lists every known category with its stored item
// count, zero when nothing has been transformed yet.
func (s *Server) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	counts, err := s.db.CategoryCounts()
	if err != nil {
		slog.ErrorContext(r.Context(), "category counts", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	stored := make(map[string]int, len(counts))
	for _, c := range counts {
		stored[c.Category] = c.Items
	}
	out := make([]internal.CategoryCount, 0, len(internal.AllCategories))
	for _, cat := range internal.AllCategories {
		out = append(out, internal.CategoryCount{Category: string(cat), Items: stored[string(cat)]})
	}
	respondJSON(w, http.StatusOK, out)
}

// handleGetItems returns the final records of one category in file order.
func (s *Server) handleGetItems(w http.ResponseWriter, r *http.Request) {
	category, err := internal.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	items, err := s.db.ListItemJSON(category)
	if err != nil {
		slog.ErrorContext(r.Context(), "list items", "category", category, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch items")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.db.StatusCounts()
	if err != nil {
		slog.ErrorContext(r.Context(), "status counts", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	respondJSON(w, http.StatusOK, counts)
}
