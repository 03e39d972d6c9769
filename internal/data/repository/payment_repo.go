package repository

import (
	"context"
	"time"

	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Payment, error)
	// HasActiveCovering reports whether the student holds a completed pass
	// whose validity window contains the given date.
	HasActiveCovering(ctx context.Context, studentID uuid.UUID, date time.Time) (bool, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, student_id, payment_type, amount, start_date, end_date, status, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.StudentID,
		payment.PaymentType,
		payment.Amount,
		payment.StartDate,
		payment.EndDate,
		payment.Status,
		payment.PaymentMethod,
		payment.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("student_id", payment.StudentID.String()),
			zap.String("payment_type", string(payment.PaymentType)),
		)
		return dbErr("create payment", err)
	}

	return nil
}

func (r *paymentRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Payment, error) {
	query := `
		SELECT id, student_id, payment_type, amount, start_date, end_date, status, payment_method, created_at
		FROM payments
		WHERE student_id = $1
		ORDER BY start_date DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		r.log.Error("Failed to find payments by student",
			zap.Error(err),
			zap.String("student_id", studentID.String()),
		)
		return nil, dbErr("find payments by student "+studentID.String(), err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		var payment entity.Payment
		err := rows.Scan(
			&payment.ID,
			&payment.StudentID,
			&payment.PaymentType,
			&payment.Amount,
			&payment.StartDate,
			&payment.EndDate,
			&payment.Status,
			&payment.PaymentMethod,
			&payment.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, dbErr("scan payment row", err)
		}
		payments = append(payments, &payment)
	}

	return payments, nil
}

func (r *paymentRepository) HasActiveCovering(ctx context.Context, studentID uuid.UUID, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM payments
			WHERE student_id = $1 AND status = 'completed'
			  AND start_date <= $2 AND end_date >= $2
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, studentID, date).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check pass coverage",
			zap.Error(err),
			zap.String("student_id", studentID.String()),
		)
		return false, dbErr("check pass coverage", err)
	}

	return exists, nil
}
