package repository

import (
	"context"

	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UniversityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.University, error)
	FindAllActive(ctx context.Context) ([]*entity.University, error)
}

type universityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUniversityRepository(db database.PgxIface, log *zap.Logger) UniversityRepository {
	return &universityRepository{
		db:  db,
		log: log.With(zap.String("repository", "university")),
	}
}

func (r *universityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.University, error) {
	query := `
		SELECT id, name, email_domain, address, active, created_at
		FROM universities
		WHERE id = $1
	`

	var university entity.University
	err := r.db.QueryRow(ctx, query, id).Scan(
		&university.ID,
		&university.Name,
		&university.EmailDomain,
		&university.Address,
		&university.Active,
		&university.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find university by ID",
			zap.Error(err),
			zap.String("university_id", id.String()),
		)
		return nil, dbErr("find university by ID "+id.String(), err)
	}

	return &university, nil
}

func (r *universityRepository) FindAllActive(ctx context.Context) ([]*entity.University, error) {
	query := `
		SELECT id, name, email_domain, address, active, created_at
		FROM universities
		WHERE active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active universities", zap.Error(err))
		return nil, dbErr("find active universities", err)
	}
	defer rows.Close()

	var universities []*entity.University
	for rows.Next() {
		var university entity.University
		err := rows.Scan(
			&university.ID,
			&university.Name,
			&university.EmailDomain,
			&university.Address,
			&university.Active,
			&university.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan university row", zap.Error(err))
			return nil, dbErr("scan university row", err)
		}
		universities = append(universities, &university)
	}

	return universities, nil
}
