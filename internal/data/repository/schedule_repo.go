package repository

import (
	"context"
	"fmt"

	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.Schedule) error
	Update(ctx context.Context, schedule *entity.Schedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error)
	FindAll(ctx context.Context) ([]*entity.Schedule, error)
	FindActiveByUniversity(ctx context.Context, universityID uuid.UUID) ([]*entity.Schedule, error)
}

type scheduleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduleRepository(db database.PgxIface, log *zap.Logger) ScheduleRepository {
	return &scheduleRepository{
		db:  db,
		log: log.With(zap.String("repository", "schedule")),
	}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *entity.Schedule) error {
	query := `
		INSERT INTO schedules (id, university_id, route_id, shift, departure_time, days_of_week, capacity, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		schedule.ID,
		schedule.UniversityID,
		schedule.RouteID,
		schedule.Shift,
		schedule.DepartureTime,
		schedule.DaysOfWeek,
		schedule.Capacity,
		schedule.Active,
		schedule.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create schedule",
			zap.Error(err),
			zap.String("university_id", schedule.UniversityID.String()),
			zap.String("shift", string(schedule.Shift)),
		)
		return dbErr("create schedule", err)
	}

	return nil
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *entity.Schedule) error {
	query := `
		UPDATE schedules
		SET route_id = $2, shift = $3, departure_time = $4, days_of_week = $5,
		    capacity = $6, active = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		schedule.ID,
		schedule.RouteID,
		schedule.Shift,
		schedule.DepartureTime,
		schedule.DaysOfWeek,
		schedule.Capacity,
		schedule.Active,
	)

	if err != nil {
		r.log.Error("Failed to update schedule",
			zap.Error(err),
			zap.String("schedule_id", schedule.ID.String()),
		)
		return dbErr("update schedule "+schedule.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update schedule %s: %w", schedule.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *scheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	query := `
		SELECT id, university_id, route_id, shift, departure_time, days_of_week, capacity, active, created_at
		FROM schedules
		WHERE id = $1
	`

	var schedule entity.Schedule
	err := r.db.QueryRow(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.UniversityID,
		&schedule.RouteID,
		&schedule.Shift,
		&schedule.DepartureTime,
		&schedule.DaysOfWeek,
		&schedule.Capacity,
		&schedule.Active,
		&schedule.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find schedule by ID",
			zap.Error(err),
			zap.String("schedule_id", id.String()),
		)
		return nil, dbErr("find schedule by ID "+id.String(), err)
	}

	return &schedule, nil
}

func (r *scheduleRepository) FindAll(ctx context.Context) ([]*entity.Schedule, error) {
	query := `
		SELECT s.id, s.university_id, s.route_id, s.shift, s.departure_time, s.days_of_week, s.capacity, s.active, s.created_at
		FROM schedules s
		JOIN routes rt ON rt.id = s.route_id
		ORDER BY rt.order_index, s.departure_time
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find schedules", zap.Error(err))
		return nil, dbErr("find schedules", err)
	}
	defer rows.Close()

	var schedules []*entity.Schedule
	for rows.Next() {
		var schedule entity.Schedule
		err := rows.Scan(
			&schedule.ID,
			&schedule.UniversityID,
			&schedule.RouteID,
			&schedule.Shift,
			&schedule.DepartureTime,
			&schedule.DaysOfWeek,
			&schedule.Capacity,
			&schedule.Active,
			&schedule.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan schedule row", zap.Error(err))
			return nil, dbErr("scan schedule row", err)
		}
		schedules = append(schedules, &schedule)
	}

	return schedules, nil
}

func (r *scheduleRepository) FindActiveByUniversity(ctx context.Context, universityID uuid.UUID) ([]*entity.Schedule, error) {
	query := `
		SELECT s.id, s.university_id, s.route_id, s.shift, s.departure_time, s.days_of_week, s.capacity, s.active, s.created_at
		FROM schedules s
		JOIN routes rt ON rt.id = s.route_id
		WHERE s.university_id = $1 AND s.active = true
		ORDER BY rt.order_index, s.departure_time
	`

	rows, err := r.db.Query(ctx, query, universityID)
	if err != nil {
		r.log.Error("Failed to find active schedules",
			zap.Error(err),
			zap.String("university_id", universityID.String()),
		)
		return nil, dbErr("find active schedules for university "+universityID.String(), err)
	}
	defer rows.Close()

	var schedules []*entity.Schedule
	for rows.Next() {
		var schedule entity.Schedule
		err := rows.Scan(
			&schedule.ID,
			&schedule.UniversityID,
			&schedule.RouteID,
			&schedule.Shift,
			&schedule.DepartureTime,
			&schedule.DaysOfWeek,
			&schedule.Capacity,
			&schedule.Active,
			&schedule.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan schedule row", zap.Error(err))
			return nil, dbErr("scan schedule row", err)
		}
		schedules = append(schedules, &schedule)
	}

	return schedules, nil
}
