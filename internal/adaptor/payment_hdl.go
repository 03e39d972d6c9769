package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/SW-Wanted/riding/internal/dto/request"
	"github.com/SW-Wanted/riding/internal/usecase"
	"github.com/SW-Wanted/riding/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// PurchasePass handles POST /api/payments (student)
func (h *PaymentHandler) PurchasePass(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.PurchasePassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	payment, err := h.service.PurchasePass(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "purchase pass")
		return
	}

	utils.ResponseCreated(w, "success", payment)
}

// GetUserPayments handles GET /api/user/payments (student)
func (h *PaymentHandler) GetUserPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	payments, err := h.service.ListStudentPayments(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get user payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}
