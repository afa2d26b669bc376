package api

import (
	"errors"
	"net/http"

	"github.com/mbenning/cardbox-api/internal/api/shared"
	"github.com/mbenning/cardbox-api/internal/domain"
	"github.com/mbenning/cardbox-api/internal/service"
)

// respondServiceError maps service-layer errors onto HTTP status codes.
// Validation and business-rule conflicts are user-correctable and carry
// their message through; anything else is a store fault reported opaquely.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidName), errors.Is(err, domain.ErrEmptyUserID):
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid collection name")
	case errors.Is(err, service.ErrDuplicateName):
		shared.RespondWithError(w, r, http.StatusConflict,
			"A collection with this name already exists")
	case errors.Is(err, service.ErrCollectionNotFound):
		shared.RespondWithError(w, r, http.StatusNotFound, "Collection not found")
	case errors.Is(err, service.ErrUserNotFound):
		shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"The operation could not be completed", err)
	}
}
