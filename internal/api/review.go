package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/dulcecodigo/storefront/internal/domain/review"
)

type createReviewRequest struct {
	CustomerName string  `json:"customerName"`
	Rating       int     `json:"rating"`
	Comment      string  `json:"comment"`
	Location     *string `json:"location"`
}

// ListReviews returns reviews. With ?approved=true only moderated reviews
// are returned; the full list is for the admin panel.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	var (
		reviews []review.Review
		err     error
	)
	if r.URL.Query().Get("approved") == "true" {
		reviews, err = h.reviews.ListApproved(r.Context())
	} else {
		reviews, err = h.reviews.List(r.Context())
	}
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toReviewListJSON(reviews))
}

// CreateReview submits a testimonial. It stays hidden until approved.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		respondError(w, r, http.StatusBadRequest, "customerName is required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondError(w, r, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	if strings.TrimSpace(req.Comment) == "" {
		respondError(w, r, http.StatusBadRequest, "comment is required")
		return
	}

	created, err := h.reviews.Create(r.Context(), &review.Review{
		CustomerName: req.CustomerName,
		Rating:       req.Rating,
		Comment:      req.Comment,
		Location:     req.Location,
	})
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toReviewJSON(created))
}

// ApproveReview publishes a review. Admin only.
func (h *Handler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid review id")
		return
	}

	approved, err := h.reviews.Approve(r.Context(), id)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "review not found")
			return
		}
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toReviewJSON(approved))
}

// DeleteReview removes a review. Admin only.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid review id")
		return
	}

	if err := h.reviews.Delete(r.Context(), id); err != nil {
		if errors.Is(err, review.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "review not found")
			return
		}
		respondStorageError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
