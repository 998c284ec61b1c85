package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/secondplate/restaurant-service/internal/domain"
)

// RestaurantRepository defines persistence access for operator accounts.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	Update(ctx context.Context, restaurant *domain.Restaurant) error
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
	GetByEmail(ctx context.Context, email string) (*domain.Restaurant, error)
	List(ctx context.Context) ([]domain.Restaurant, error)
}

type restaurantRepository struct {
	pool *pgxpool.Pool
}

// NewRestaurantRepository returns a Postgres-backed implementation.
func NewRestaurantRepository(pool *pgxpool.Pool) RestaurantRepository {
	return &restaurantRepository{pool: pool}
}

const restaurantColumns = `id, name, email, password_hash, address, phone,
        logo_url, logo_remote_id, map_url, map_remote_id,
        open_time, close_time, is_open, menu_type, created_at, updated_at`

func (r *restaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	const query = `
        INSERT INTO restaurants
            (name, email, password_hash, address, phone,
             logo_url, logo_remote_id, map_url, map_remote_id,
             open_time, close_time, is_open, menu_type)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`

	logoURL, logoID := splitAssetRef(restaurant.LogoImage)
	mapURL, mapID := splitAssetRef(restaurant.MapImage)

	return r.pool.QueryRow(ctx, query,
		restaurant.Name,
		restaurant.Email,
		restaurant.PasswordHash,
		restaurant.Address,
		restaurant.Phone,
		logoURL,
		logoID,
		mapURL,
		mapID,
		restaurant.OpenTime,
		restaurant.CloseTime,
		restaurant.IsOpen,
		restaurant.MenuType,
	).Scan(&restaurant.ID, &restaurant.CreatedAt, &restaurant.UpdatedAt)
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	const query = `
        UPDATE restaurants SET
            name=$1, email=$2, password_hash=$3, address=$4, phone=$5,
            logo_url=$6, logo_remote_id=$7, map_url=$8, map_remote_id=$9,
            open_time=$10, close_time=$11, is_open=$12, menu_type=$13,
            updated_at=NOW()
        WHERE id=$14`

	logoURL, logoID := splitAssetRef(restaurant.LogoImage)
	mapURL, mapID := splitAssetRef(restaurant.MapImage)

	cmd, err := r.pool.Exec(ctx, query,
		restaurant.Name,
		restaurant.Email,
		restaurant.PasswordHash,
		restaurant.Address,
		restaurant.Phone,
		logoURL,
		logoID,
		mapURL,
		mapID,
		restaurant.OpenTime,
		restaurant.CloseTime,
		restaurant.IsOpen,
		restaurant.MenuType,
		restaurant.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	const query = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id=$1`
	return scanRestaurant(r.pool.QueryRow(ctx, query, id))
}

func (r *restaurantRepository) GetByEmail(ctx context.Context, email string) (*domain.Restaurant, error) {
	const query = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE email=$1`
	return scanRestaurant(r.pool.QueryRow(ctx, query, email))
}

func (r *restaurantRepository) List(ctx context.Context) ([]domain.Restaurant, error) {
	const query = `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Restaurant
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *restaurant)
	}
	return result, rows.Err()
}

func scanRestaurant(row pgx.Row) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	var logoURL, logoID, mapURL, mapID *string

	if err := row.Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Email,
		&restaurant.PasswordHash,
		&restaurant.Address,
		&restaurant.Phone,
		&logoURL,
		&logoID,
		&mapURL,
		&mapID,
		&restaurant.OpenTime,
		&restaurant.CloseTime,
		&restaurant.IsOpen,
		&restaurant.MenuType,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	); err != nil {
		return nil, err
	}

	restaurant.LogoImage = joinAssetRef(logoURL, logoID)
	restaurant.MapImage = joinAssetRef(mapURL, mapID)
	return &restaurant, nil
}

func splitAssetRef(ref *domain.AssetRef) (url, remoteID *string) {
	if ref == nil {
		return nil, nil
	}
	return &ref.URL, &ref.RemoteID
}

func joinAssetRef(url, remoteID *string) *domain.AssetRef {
	if url == nil || remoteID == nil {
		return nil
	}
	return &domain.AssetRef{URL: *url, RemoteID: *remoteID}
}
