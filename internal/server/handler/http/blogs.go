package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bloglist/internal/middleware"
	"bloglist/internal/models"
	"bloglist/internal/service"
	"bloglist/internal/stats"
)

// BlogService defines the interface for blog-ledger operations required
// by the HTTP handlers.
type BlogService interface {
	// List returns all blogs with their owner projection.
	List(ctx context.Context) ([]models.BlogWithOwner, error)
	// Create persists a new blog owned by userID.
	Create(ctx context.Context, userID string, req service.CreateBlogRequest) (*models.Blog, error)
	// UpdateLikes applies a likes-only partial update.
	UpdateLikes(ctx context.Context, id string, likes *int64) (*models.Blog, error)
	// Delete removes a blog on behalf of its owner.
	Delete(ctx context.Context, userID, blogID string) error
}

// BlogsHandler handles HTTP requests for the blog ledger.
type BlogsHandler struct {
	BlogService BlogService
}

// CreateBlogRequest represents the JSON payload for blog creation.
type CreateBlogRequest struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Author string `json:"author"`
	Likes  *int64 `json:"likes"`
}

// UpdateBlogRequest represents the JSON payload for the likes update.
// Any field other than likes is ignored.
type UpdateBlogRequest struct {
	Likes *int64 `json:"likes"`
}

// List handles GET /blogs.
func (h *BlogsHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.BlogService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if blogs == nil {
		blogs = []models.BlogWithOwner{}
	}
	writeJSON(w, http.StatusOK, blogs)
}

// Create handles POST /blogs. The owner is the authenticated user taken
// from the request context.
func (h *BlogsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request"})
		return
	}

	blog, err := h.BlogService.Create(r.Context(), userID, service.CreateBlogRequest{
		Title:  req.Title,
		URL:    req.URL,
		Author: req.Author,
		Likes:  req.Likes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, blog)
}

// Update handles PUT /blogs/{id}. Only the likes field of the body is
// honored; no authentication is required.
func (h *BlogsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request"})
		return
	}

	blog, err := h.BlogService.UpdateLikes(r.Context(), id, req.Likes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

// Delete handles DELETE /blogs/{id}. Only the blog's owner may delete
// it; a missing id is a strict 404.
func (h *BlogsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.BlogService.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /blogs/stats, aggregating likes over the whole
// catalogue.
func (h *BlogsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	annotated, err := h.BlogService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	blogs := make([]models.Blog, len(annotated))
	for i, b := range annotated {
		blogs[i] = b.Blog
	}
	writeJSON(w, http.StatusOK, stats.Summarize(blogs))
}
