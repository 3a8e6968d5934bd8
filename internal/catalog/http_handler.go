package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	pipeline *Pipeline
	queries  *QueryService
}

func NewHTTPHandler(pipeline *Pipeline, queries *QueryService) *HTTPHandler {
	return &HTTPHandler{pipeline: pipeline, queries: queries}
}

type searchRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

// SearchAndIngest handles POST /catalog/search
func (h *HTTPHandler) SearchAndIngest(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid search request", details)
		return
	}

	outcomes, err := h.pipeline.SearchAndIngest(r.Context(), req.Title)
	if err != nil {
		if errors.Is(err, ErrSearchUnavailable) {
			httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Search provider unavailable", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, outcomes, map[string]any{
		"count": len(outcomes),
	})
}

// ListBooks handles GET /books
func (h *HTTPHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.queries.ListBooks(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if books == nil {
		books = []Book{}
	}
	httpx.JSONSuccess(w, r, books, nil)
}

// ListAuthors handles GET /authors
func (h *HTTPHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.queries.ListAuthors(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, authors, nil)
}

// AuthorsAlive handles GET /authors/alive?year=
func (h *HTTPHandler) AuthorsAlive(w http.ResponseWriter, r *http.Request) {
	yearStr := r.URL.Query().Get("year")
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "year must be an integer", nil)
		return
	}

	authors, err := h.queries.AuthorsAliveDuring(r.Context(), year)
	if err != nil {
		if errors.Is(err, ErrInvalidYear) {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "year must not be negative", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if authors == nil {
		authors = []Author{}
	}
	httpx.JSONSuccess(w, r, authors, nil)
}

// BooksByLanguage handles GET /books/language/{code}
func (h *HTTPHandler) BooksByLanguage(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	books, err := h.queries.BooksByLanguage(r.Context(), code)
	if err != nil {
		if errors.Is(err, ErrUnsupportedLanguage) {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "language must be one of: es, en, fr, pt", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if books == nil {
		books = []Book{}
	}
	httpx.JSONSuccess(w, r, books, nil)
}
