package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mbenning/cardbox-api/internal/api/shared"
	"github.com/mbenning/cardbox-api/internal/service"
)

// CollectionHandler handles collection-related HTTP requests
type CollectionHandler struct {
	collections *service.CollectionService
	validator   *validator.Validate
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(collections *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		collections: collections,
		validator:   validator.New(),
	}
}

// SaveCollection handles POST /api/collections requests.
// On success the collection durably exists and the caller may navigate
// away; on conflict or validation failure nothing has been written.
func (h *CollectionHandler) SaveCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SaveCollectionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.collections.Save(r.Context(), userID, req.Name, cardsToDomain(req.Cards)); err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CollectionResponse{Name: req.Name})
}

// ListCollections handles GET /api/collections requests
func (h *CollectionHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	refs, err := h.collections.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	resp := CollectionListResponse{Collections: make([]CollectionResponse, 0, len(refs))}
	for _, ref := range refs {
		resp.Collections = append(resp.Collections, CollectionResponse{Name: ref.Name})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetCollectionCards handles GET /api/collections/{name}/cards requests
func (h *CollectionHandler) GetCollectionCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	name := chi.URLParam(r, "name")

	cards, err := h.collections.Cards(r.Context(), userID, name)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CollectionCardsResponse{
		Name:  name,
		Cards: cardsToPayload(cards),
	})
}
