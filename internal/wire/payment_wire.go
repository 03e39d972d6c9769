package wire

import (
	"github.com/SW-Wanted/riding/internal/adaptor"
	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/internal/data/repository"
	"github.com/SW-Wanted/riding/pkg/middleware"
	"github.com/SW-Wanted/riding/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== STUDENT ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Role(repo.User, log, entity.RoleStudent))

		// POST /api/payments - Buy a transport pass
		r.Post("/api/payments", paymentHandler.PurchasePass)

		// GET /api/user/payments - Pass purchase history
		r.Get("/api/user/payments", paymentHandler.GetUserPayments)
	})
}
