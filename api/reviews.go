package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/olanest/olanest/internal/identity"
	"github.com/olanest/olanest/internal/review"
)

type ReviewsHandler struct {
	reviews  *review.Aggregator
	resolver *identity.Resolver
}

func NewReviewsHandler(reviews *review.Aggregator, resolver *identity.Resolver) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews, resolver: resolver}
}

type createReviewRequest struct {
	ContractorID string `json:"contractor_id"`
	Rating       int    `json:"rating"`
	Title        string `json:"title,omitempty"`
	Comment      string `json:"comment"`
}

func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.resolver)
	if !ok {
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.ContractorID == "" {
		http.Error(w, "contractor_id is required", http.StatusBadRequest)
		return
	}

	rev, err := h.reviews.Add(r.Context(), caller, req.ContractorID, req.Rating, req.Title, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, rev, http.StatusCreated)
}

type replyRequest struct {
	Comment string `json:"comment"`
}

func (h *ReviewsHandler) Reply(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.resolver)
	if !ok {
		return
	}

	var req replyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.reviews.Reply(r.Context(), caller, id, req.Comment); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]string{"message": "reply recorded"}, http.StatusOK)
}
