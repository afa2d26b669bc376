package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mbenning/cardbox-api/internal/api/shared"
	"github.com/mbenning/cardbox-api/internal/platform/logger"
	"github.com/mbenning/cardbox-api/internal/service"
)

// PaymentHandler consumes payment-completion signals from the checkout
// redirect flow.
type PaymentHandler struct {
	entitlements *service.EntitlementService
	validator    *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(entitlements *service.EntitlementService) *PaymentHandler {
	return &PaymentHandler{
		entitlements: entitlements,
		validator:    validator.New(),
	}
}

// CompletePayment handles POST /api/payments/complete requests.
// The session token is opaque here: checkout itself is run by the payment
// provider, and this endpoint only reconciles the completion signal with
// the caller's entitlement flag. Safe to call repeatedly.
func (h *PaymentHandler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CompletePaymentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	log := logger.FromContext(r.Context())
	log.Info("payment completion received",
		"user_id", userID,
		"session_id", req.SessionID)

	if err := h.entitlements.Reconcile(r.Context(), userID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
