package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/secondplate/restaurant-service/internal/domain"
)

// MenuItemRepository persists standard menu entries.
type MenuItemRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, restaurantID, id string) error
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.MenuItem, error)
}

type menuItemRepository struct {
	pool *pgxpool.Pool
}

// NewMenuItemRepository returns a Postgres-backed implementation.
func NewMenuItemRepository(pool *pgxpool.Pool) MenuItemRepository {
	return &menuItemRepository{pool: pool}
}

func (r *menuItemRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        INSERT INTO menu_items (restaurant_id, name, price, description, category, quantity, is_available)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		item.RestaurantID,
		item.Name,
		item.Price,
		item.Description,
		item.Category,
		item.Quantity,
		item.IsAvailable,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *menuItemRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        UPDATE menu_items SET name=$1, price=$2, description=$3, category=$4,
            quantity=$5, is_available=$6, updated_at=NOW()
        WHERE id=$7 AND restaurant_id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		item.Name,
		item.Price,
		item.Description,
		item.Category,
		item.Quantity,
		item.IsAvailable,
		item.ID,
		item.RestaurantID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *menuItemRepository) Delete(ctx context.Context, restaurantID, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM menu_items WHERE id=$1 AND restaurant_id=$2`, id, restaurantID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *menuItemRepository) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	const query = `
        SELECT id, restaurant_id, name, price, description, category, quantity, is_available, created_at, updated_at
        FROM menu_items WHERE id=$1`

	var item domain.MenuItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.RestaurantID,
		&item.Name,
		&item.Price,
		&item.Description,
		&item.Category,
		&item.Quantity,
		&item.IsAvailable,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	const query = `
        SELECT id, restaurant_id, name, price, description, category, quantity, is_available, created_at, updated_at
        FROM menu_items WHERE restaurant_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(
			&item.ID,
			&item.RestaurantID,
			&item.Name,
			&item.Price,
			&item.Description,
			&item.Category,
			&item.Quantity,
			&item.IsAvailable,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
