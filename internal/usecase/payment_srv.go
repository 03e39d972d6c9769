package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/internal/data/repository"
	"github.com/SW-Wanted/riding/internal/dto/request"
	"github.com/SW-Wanted/riding/internal/dto/response"
	"github.com/SW-Wanted/riding/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pass prices in kwanzas and validity in days per pass type.
var passTariffs = map[entity.PaymentType]struct {
	Amount float64
	Days   int
}{
	entity.PaymentTypeDaily:   {Amount: 1500, Days: 1},
	entity.PaymentTypeWeekly:  {Amount: 7000, Days: 7},
	entity.PaymentTypeMonthly: {Amount: 25000, Days: 30},
}

type PaymentService interface {
	PurchasePass(ctx context.Context, studentID uuid.UUID, req *request.PurchasePassRequest) (*response.PaymentResponse, error)
	ListStudentPayments(ctx context.Context, studentID uuid.UUID) ([]response.PaymentResponse, error)
}

type paymentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPaymentService(repo *repository.Repository, log *zap.Logger) PaymentService {
	return &paymentService{
		repo: repo,
		log:  log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) PurchasePass(ctx context.Context, studentID uuid.UUID, req *request.PurchasePassRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Purchase pass validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %s", ErrValidation, req.StartDate)
	}
	if startDate.Before(utils.Today()) {
		return nil, fmt.Errorf("%w: start date cannot be in the past", ErrValidation)
	}

	passType := entity.PaymentType(req.PaymentType)
	tariff, ok := passTariffs[passType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown pass type %s", ErrValidation, req.PaymentType)
	}

	payment := &entity.Payment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		StudentID:     studentID,
		PaymentType:   passType,
		Amount:        tariff.Amount,
		StartDate:     startDate,
		EndDate:       startDate.AddDate(0, 0, tariff.Days-1),
		Status:        "completed",
		PaymentMethod: req.PaymentMethod,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("student_id", studentID.String()),
		)
		return nil, storeErr(err)
	}

	s.log.Info("Pass purchased",
		zap.String("payment_id", payment.ID.String()),
		zap.String("student_id", studentID.String()),
		zap.String("payment_type", req.PaymentType),
		zap.Float64("amount", tariff.Amount),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) ListStudentPayments(ctx context.Context, studentID uuid.UUID) ([]response.PaymentResponse, error) {
	payments, err := s.repo.Payment.FindByStudent(ctx, studentID)
	if err != nil {
		s.log.Error("Failed to list student payments",
			zap.Error(err),
			zap.String("student_id", studentID.String()),
		)
		return nil, storeErr(err)
	}

	resp := make([]response.PaymentResponse, len(payments))
	for i, payment := range payments {
		resp[i] = response.PaymentToResponse(payment)
	}

	return resp, nil
}
