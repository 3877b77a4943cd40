package api

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/qri-io/jsonschema"

	"github.com/olanest/olanest/internal/directory"
	"github.com/olanest/olanest/internal/identity"
	"github.com/olanest/olanest/internal/review"
	"github.com/olanest/olanest/internal/search"
	"github.com/olanest/olanest/pkg/models"
)

//go:embed schema/profile_update.json
var profileUpdateSchemaJSON []byte

type ContractorsHandler struct {
	dir      *directory.Service
	reviews  *review.Aggregator
	searcher *search.Facade
	resolver *identity.Resolver
	schema   *jsonschema.Schema
}

func NewContractorsHandler(dir *directory.Service, reviews *review.Aggregator, searcher *search.Facade, resolver *identity.Resolver) (*ContractorsHandler, error) {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(profileUpdateSchemaJSON, rs); err != nil {
		return nil, fmt.Errorf("compile profile update schema: %w", err)
	}

	return &ContractorsHandler{dir: dir, reviews: reviews, searcher: searcher, resolver: resolver, schema: rs}, nil
}

// UpdateProfile merges the request body into the caller's profile. The body
// is checked against the embedded JSON schema before decoding, so unknown
// or malformed fields fail fast with the offending key named.
func (h *ContractorsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.resolver)
	if !ok {
		return
	}
	if caller.Role != models.RoleContractor {
		http.Error(w, "Contractor role required", http.StatusForbidden)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	keyErrs, err := h.schema.ValidateBytes(r.Context(), body)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if len(keyErrs) > 0 {
		http.Error(w, fmt.Sprintf("Invalid profile update: %v", keyErrs[0]), http.StatusBadRequest)
		return
	}

	var upd models.ProfileUpdate
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&upd); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	profile, err := h.dir.Upsert(r.Context(), caller.ID, &upd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, profile, http.StatusOK)
}

type contractorDetail struct {
	Profile   *models.ContractorProfile `json:"profile"`
	Aggregate *models.RatingAggregate   `json:"aggregate"`
}

// GetContractor returns one profile together with its rating aggregate.
func (h *ContractorsHandler) GetContractor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	profile, err := h.dir.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	agg, err := h.reviews.Aggregate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, contractorDetail{Profile: profile, Aggregate: agg}, http.StatusOK)
}

// Search answers the directory query. Missing parameters yield an
// incomplete result with HTTP 200, not an error.
func (h *ContractorsHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	res, err := h.searcher.Query(r.Context(), q.Get("category"), q.Get("province"), q.Get("city"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, res, http.StatusOK)
}

// ListReviews returns a contractor's reviews, newest first.
func (h *ContractorsHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	list, err := h.reviews.List(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"items": list}, http.StatusOK)
}
