package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// CreateIfAvailable inserts the booking only if the schedule still has a
	// free seat for the booking date and the student holds no other active
	// booking for the same (schedule, date). Check and insert run in one
	// transaction serialized on the schedule row.
	CreateIfAvailable(ctx context.Context, booking *entity.Booking) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByStudent(ctx context.Context, studentID uuid.UUID) (int64, error)
	FindForDate(ctx context.Context, scheduleID *uuid.UUID, date time.Time) ([]*entity.Booking, error)

	CountActive(ctx context.Context, scheduleID uuid.UUID, date time.Time) (int, error)
	HasActiveBooking(ctx context.Context, studentID, scheduleID uuid.UUID, date time.Time) (bool, error)

	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	SetCheckedIn(ctx context.Context, bookingID uuid.UUID, checkInTime time.Time) error

	CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error)
	StatsForDate(ctx context.Context, date time.Time) (map[entity.BookingStatus]int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, student_id, schedule_id, booking_date, status, payment_status, check_in_time, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.StudentID,
		&booking.ScheduleID,
		&booking.BookingDate,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.CheckInTime,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) CreateIfAvailable(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin booking transaction", zap.Error(err))
		return dbErr("begin booking transaction", err)
	}
	defer tx.Rollback(ctx)

	// Locking the schedule row serializes concurrent creates for the same
	// schedule, so the count below cannot race past capacity.
	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT capacity FROM schedules WHERE id = $1 FOR UPDATE`,
		booking.ScheduleID,
	).Scan(&capacity)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("create booking: schedule %s: %w", booking.ScheduleID.String(), ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to lock schedule row",
			zap.Error(err),
			zap.String("schedule_id", booking.ScheduleID.String()),
		)
		return dbErr("lock schedule "+booking.ScheduleID.String(), err)
	}

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE student_id = $1 AND schedule_id = $2 AND booking_date = $3
			  AND status <> 'cancelled'
		)`,
		booking.StudentID, booking.ScheduleID, booking.BookingDate,
	).Scan(&exists)
	if err != nil {
		return dbErr("check duplicate booking", err)
	}
	if exists {
		return fmt.Errorf("create booking: %w", ErrDuplicate)
	}

	var active int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE schedule_id = $1 AND booking_date = $2
		  AND status IN ('pending', 'confirmed')`,
		booking.ScheduleID, booking.BookingDate,
	).Scan(&active)
	if err != nil {
		return dbErr("count active bookings", err)
	}
	if active >= capacity {
		return fmt.Errorf("create booking: %d/%d seats taken: %w", active, capacity, ErrCapacityExceeded)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, student_id, schedule_id, booking_date, status, payment_status, check_in_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		booking.ID,
		booking.StudentID,
		booking.ScheduleID,
		booking.BookingDate,
		booking.Status,
		booking.PaymentStatus,
		booking.CheckInTime,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		// The partial unique index on (student_id, schedule_id, booking_date)
		// for non-cancelled rows backstops the probe above.
		if isUniqueViolation(err) {
			return fmt.Errorf("create booking: %w", ErrDuplicate)
		}
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("student_id", booking.StudentID.String()),
			zap.String("schedule_id", booking.ScheduleID.String()),
		)
		return dbErr("insert booking", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit booking transaction", zap.Error(err))
		return dbErr("commit booking transaction", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, dbErr("find booking by ID "+id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE student_id = $1
		ORDER BY booking_date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, studentID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by student",
			zap.Error(err),
			zap.String("student_id", studentID.String()),
		)
		return nil, dbErr("find bookings by student "+studentID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows, r.log)
}

func (r *bookingRepository) CountByStudent(ctx context.Context, studentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE student_id = $1`, studentID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by student",
			zap.Error(err),
			zap.String("student_id", studentID.String()),
		)
		return 0, dbErr("count bookings by student "+studentID.String(), err)
	}
	return count, nil
}

// FindForDate returns the pending and confirmed bookings for a service date,
// oldest first, so drivers work through the queue in booking order. A nil
// scheduleID means all schedules.
func (r *bookingRepository) FindForDate(ctx context.Context, scheduleID *uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE booking_date = $1
		  AND status IN ('pending', 'confirmed')
		  AND ($2::uuid IS NULL OR schedule_id = $2)
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, date, scheduleID)
	if err != nil {
		r.log.Error("Failed to find bookings for date",
			zap.Error(err),
			zap.Time("booking_date", date),
		)
		return nil, dbErr("find bookings for date", err)
	}
	defer rows.Close()

	return collectBookings(rows, r.log)
}

func (r *bookingRepository) CountActive(ctx context.Context, scheduleID uuid.UUID, date time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE schedule_id = $1 AND booking_date = $2
		  AND status IN ('pending', 'confirmed')
	`

	var count int
	err := r.db.QueryRow(ctx, query, scheduleID, date).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count active bookings",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
			zap.Time("booking_date", date),
		)
		return 0, dbErr("count active bookings", err)
	}

	return count, nil
}

func (r *bookingRepository) HasActiveBooking(ctx context.Context, studentID, scheduleID uuid.UUID, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE student_id = $1 AND schedule_id = $2 AND booking_date = $3
			  AND status <> 'cancelled'
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, studentID, scheduleID, date).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check active booking",
			zap.Error(err),
			zap.String("student_id", studentID.String()),
			zap.String("schedule_id", scheduleID.String()),
		)
		return false, dbErr("check active booking", err)
	}

	return exists, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return dbErr("update booking "+bookingID.String()+" status", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking %s status: %w", bookingID.String(), ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) SetCheckedIn(ctx context.Context, bookingID uuid.UUID, checkInTime time.Time) error {
	query := `
		UPDATE bookings
		SET status = 'confirmed', check_in_time = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, bookingID, checkInTime)
	if err != nil {
		r.log.Error("Failed to check in booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return dbErr("check in booking "+bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("check in booking %s: %w", bookingID.String(), ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by status",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return 0, dbErr("count bookings by status "+string(status), err)
	}
	return count, nil
}

func (r *bookingRepository) StatsForDate(ctx context.Context, date time.Time) (map[entity.BookingStatus]int64, error) {
	query := `
		SELECT status, COUNT(*) FROM bookings
		WHERE booking_date = $1
		GROUP BY status
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to load booking stats for date",
			zap.Error(err),
			zap.Time("booking_date", date),
		)
		return nil, dbErr("booking stats for date", err)
	}
	defer rows.Close()

	stats := make(map[entity.BookingStatus]int64)
	for rows.Next() {
		var status entity.BookingStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, dbErr("scan booking stats row", err)
		}
		stats[status] = count
	}

	return stats, nil
}

func collectBookings(rows pgx.Rows, log *zap.Logger) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			log.Error("Failed to scan booking row", zap.Error(err))
			return nil, dbErr("scan booking row", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}
