package repository

import (
	"context"

	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RouteRepository interface {
	Create(ctx context.Context, route *entity.Route) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error)
	FindAll(ctx context.Context) ([]*entity.Route, error)
}

type routeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRouteRepository(db database.PgxIface, log *zap.Logger) RouteRepository {
	return &routeRepository{
		db:  db,
		log: log.With(zap.String("repository", "route")),
	}
}

func (r *routeRepository) Create(ctx context.Context, route *entity.Route) error {
	query := `
		INSERT INTO routes (id, name, order_index, is_destination, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		route.ID,
		route.Name,
		route.OrderIndex,
		route.IsDestination,
		route.Active,
		route.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create route",
			zap.Error(err),
			zap.String("name", route.Name),
		)
		return dbErr("create route "+route.Name, err)
	}

	return nil
}

func (r *routeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	query := `
		SELECT id, name, order_index, is_destination, active, created_at
		FROM routes
		WHERE id = $1
	`

	var route entity.Route
	err := r.db.QueryRow(ctx, query, id).Scan(
		&route.ID,
		&route.Name,
		&route.OrderIndex,
		&route.IsDestination,
		&route.Active,
		&route.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find route by ID",
			zap.Error(err),
			zap.String("route_id", id.String()),
		)
		return nil, dbErr("find route by ID "+id.String(), err)
	}

	return &route, nil
}

func (r *routeRepository) FindAll(ctx context.Context) ([]*entity.Route, error) {
	query := `
		SELECT id, name, order_index, is_destination, active, created_at
		FROM routes
		ORDER BY order_index, name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find routes", zap.Error(err))
		return nil, dbErr("find routes", err)
	}
	defer rows.Close()

	var routes []*entity.Route
	for rows.Next() {
		var route entity.Route
		err := rows.Scan(
			&route.ID,
			&route.Name,
			&route.OrderIndex,
			&route.IsDestination,
			&route.Active,
			&route.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan route row", zap.Error(err))
			return nil, dbErr("scan route row", err)
		}
		routes = append(routes, &route)
	}

	return routes, nil
}
