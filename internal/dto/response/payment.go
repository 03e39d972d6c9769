package response

import (
	"time"

	"github.com/SW-Wanted/riding/internal/data/entity"
)

type PaymentResponse struct {
	ID            string    `json:"id"`
	StudentID     string    `json:"student_id"`
	PaymentType   string    `json:"payment_type"`
	Amount        float64   `json:"amount"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Status        string    `json:"status"`
	PaymentMethod *string   `json:"payment_method,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID.String(),
		StudentID:     payment.StudentID.String(),
		PaymentType:   string(payment.PaymentType),
		Amount:        payment.Amount,
		StartDate:     payment.StartDate.Format("2006-01-02"),
		EndDate:       payment.EndDate.Format("2006-01-02"),
		Status:        payment.Status,
		PaymentMethod: payment.PaymentMethod,
		CreatedAt:     payment.CreatedAt,
	}
}
