package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mbenning/cardbox-api/internal/api/shared"
	"github.com/mbenning/cardbox-api/internal/generation"
	"github.com/mbenning/cardbox-api/internal/redact"
)

// GenerateHandler handles card generation HTTP requests
type GenerateHandler struct {
	generator generation.Generator
	validator *validator.Validate
}

// NewGenerateHandler creates a new GenerateHandler
func NewGenerateHandler(generator generation.Generator) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		validator: validator.New(),
	}
}

// Generate handles POST /api/generate requests. The generated cards are
// returned to the caller and live only in memory until a save request
// persists them; generation faults surface as "no cards produced".
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	cards, err := h.generator.GenerateCards(r.Context(), req.Text, userID)
	if err != nil {
		slog.Warn("card generation failed",
			"user_id", userID,
			"error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusBadGateway, "No cards produced")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{
		Cards: cardsToPayload(cards),
	})
}
