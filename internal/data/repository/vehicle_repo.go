package repository

import (
	"context"

	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/pkg/database"

	"go.uber.org/zap"
)

// VehicleRepository is read-only: the fleet is managed out of band and the
// booking core only reports on it.
type VehicleRepository interface {
	FindAll(ctx context.Context) ([]*entity.Vehicle, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type vehicleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehicleRepository(db database.PgxIface, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle")),
	}
}

func (r *vehicleRepository) FindAll(ctx context.Context) ([]*entity.Vehicle, error) {
	query := `
		SELECT id, plate_number, model, capacity, driver_id, active, created_at
		FROM vehicles
		ORDER BY plate_number
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find vehicles", zap.Error(err))
		return nil, dbErr("find vehicles", err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		var vehicle entity.Vehicle
		err := rows.Scan(
			&vehicle.ID,
			&vehicle.PlateNumber,
			&vehicle.Model,
			&vehicle.Capacity,
			&vehicle.DriverID,
			&vehicle.Active,
			&vehicle.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, dbErr("scan vehicle row", err)
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, nil
}

func (r *vehicleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count vehicles", zap.Error(err))
		return 0, dbErr("count vehicles", err)
	}
	return count, nil
}

func (r *vehicleRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles WHERE active = true`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count active vehicles", zap.Error(err))
		return 0, dbErr("count active vehicles", err)
	}
	return count, nil
}
