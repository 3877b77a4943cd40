package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/olanest/olanest/internal/favorites"
	"github.com/olanest/olanest/internal/identity"
)

type FavoritesHandler struct {
	index    *favorites.Index
	resolver *identity.Resolver
}

func NewFavoritesHandler(index *favorites.Index, resolver *identity.Resolver) *FavoritesHandler {
	return &FavoritesHandler{index: index, resolver: resolver}
}

type toggleResponse struct {
	ContractorID string `json:"contractor_id"`
	Favorite     bool   `json:"favorite"`
}

func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.resolver)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	on, err := h.index.Toggle(r.Context(), caller, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, toggleResponse{ContractorID: id, Favorite: on}, http.StatusOK)
}

func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.resolver)
	if !ok {
		return
	}

	list, err := h.index.List(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"items": list}, http.StatusOK)
}
