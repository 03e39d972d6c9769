package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/SW-Wanted/riding/internal/dto/request"
	"github.com/SW-Wanted/riding/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestPurchasePass_Tariffs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		passType   string
		wantAmount float64
		wantDays   int
	}{
		{"daily", 1500, 1},
		{"weekly", 7000, 7},
		{"monthly", 25000, 30},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.passType, func(t *testing.T) {
			t.Parallel()

			repo, _ := newTestRepos()
			svc := NewPaymentService(repo, zap.NewNop())

			start := utils.Today().AddDate(0, 0, 1)

			resp, err := svc.PurchasePass(context.Background(), uuid.New(), &request.PurchasePassRequest{
				PaymentType: tt.passType,
				StartDate:   start.Format(utils.DateLayout),
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if resp.Amount != tt.wantAmount {
				t.Errorf("expected amount %.0f, got %.0f", tt.wantAmount, resp.Amount)
			}

			wantEnd := start.AddDate(0, 0, tt.wantDays-1).Format(utils.DateLayout)
			if resp.EndDate != wantEnd {
				t.Errorf("expected end date %s, got %s", wantEnd, resp.EndDate)
			}
			if resp.Status != "completed" {
				t.Errorf("expected completed status, got %s", resp.Status)
			}
		})
	}
}

func TestPurchasePass_PassCoversBookingWindow(t *testing.T) {
	t.Parallel()

	repo, mocks := newTestRepos()
	svc := NewPaymentService(repo, zap.NewNop())
	studentID := uuid.New()

	start := utils.Today()
	if _, err := svc.PurchasePass(context.Background(), studentID, &request.PurchasePassRequest{
		PaymentType: "weekly",
		StartDate:   start.Format(utils.DateLayout),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inside, err := mocks.payments.HasActiveCovering(context.Background(), studentID, start.AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inside {
		t.Error("expected the last day of the window to be covered")
	}

	outside, err := mocks.payments.HasActiveCovering(context.Background(), studentID, start.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outside {
		t.Error("expected the day after the window to be uncovered")
	}
}

func TestPurchasePass_PastStartRejected(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepos()
	svc := NewPaymentService(repo, zap.NewNop())

	past := utils.Today().AddDate(0, 0, -1)

	_, err := svc.PurchasePass(context.Background(), uuid.New(), &request.PurchasePassRequest{
		PaymentType: "daily",
		StartDate:   past.Format(utils.DateLayout),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestListStudentPayments_OnlyOwn(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepos()
	svc := NewPaymentService(repo, zap.NewNop())

	studentID := uuid.New()
	start := utils.Today()

	if _, err := svc.PurchasePass(context.Background(), studentID, &request.PurchasePassRequest{
		PaymentType: "daily",
		StartDate:   start.Format(utils.DateLayout),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.PurchasePass(context.Background(), uuid.New(), &request.PurchasePassRequest{
		PaymentType: "monthly",
		StartDate:   start.Format(utils.DateLayout),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payments, err := svc.ListStudentPayments(context.Background(), studentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(payments))
	}
	if payments[0].PaymentType != "daily" {
		t.Errorf("expected daily pass, got %s", payments[0].PaymentType)
	}
}
