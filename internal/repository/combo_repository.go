package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/secondplate/restaurant-service/internal/domain"
)

// ComboRepository persists combo-menu records: the combos themselves plus
// their protein and side option lists.
type ComboRepository interface {
	CreateCombo(ctx context.Context, combo *domain.Combo) error
	UpdateCombo(ctx context.Context, combo *domain.Combo) error
	DeleteCombo(ctx context.Context, restaurantID, id string) error
	ListCombos(ctx context.Context, restaurantID string) ([]domain.Combo, error)

	CreateOption(ctx context.Context, option *domain.ComboOption) error
	DeleteOption(ctx context.Context, restaurantID string, group domain.ComboOptionGroup, id string) error
	ListOptions(ctx context.Context, restaurantID string, group domain.ComboOptionGroup) ([]domain.ComboOption, error)
}

type comboRepository struct {
	pool *pgxpool.Pool
}

// NewComboRepository returns a Postgres-backed implementation.
func NewComboRepository(pool *pgxpool.Pool) ComboRepository {
	return &comboRepository{pool: pool}
}

func (r *comboRepository) CreateCombo(ctx context.Context, combo *domain.Combo) error {
	const query = `
        INSERT INTO combos (restaurant_id, name, description, original_price, sale_price)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		combo.RestaurantID,
		combo.Name,
		combo.Description,
		combo.OriginalPrice,
		combo.SalePrice,
	).Scan(&combo.ID, &combo.CreatedAt, &combo.UpdatedAt)
}

func (r *comboRepository) UpdateCombo(ctx context.Context, combo *domain.Combo) error {
	const query = `
        UPDATE combos SET name=$1, description=$2, original_price=$3, sale_price=$4, updated_at=NOW()
        WHERE id=$5 AND restaurant_id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		combo.Name,
		combo.Description,
		combo.OriginalPrice,
		combo.SalePrice,
		combo.ID,
		combo.RestaurantID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *comboRepository) DeleteCombo(ctx context.Context, restaurantID, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM combos WHERE id=$1 AND restaurant_id=$2`, id, restaurantID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *comboRepository) ListCombos(ctx context.Context, restaurantID string) ([]domain.Combo, error) {
	const query = `
        SELECT id, restaurant_id, name, description, original_price, sale_price, created_at, updated_at
        FROM combos WHERE restaurant_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Combo
	for rows.Next() {
		var combo domain.Combo
		if err := rows.Scan(
			&combo.ID,
			&combo.RestaurantID,
			&combo.Name,
			&combo.Description,
			&combo.OriginalPrice,
			&combo.SalePrice,
			&combo.CreatedAt,
			&combo.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, combo)
	}
	return result, rows.Err()
}

func (r *comboRepository) CreateOption(ctx context.Context, option *domain.ComboOption) error {
	const query = `
        INSERT INTO combo_options (restaurant_id, option_group, name, is_available)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		option.RestaurantID,
		option.Group,
		option.Name,
		option.IsAvailable,
	).Scan(&option.ID, &option.CreatedAt, &option.UpdatedAt)
}

func (r *comboRepository) DeleteOption(ctx context.Context, restaurantID string, group domain.ComboOptionGroup, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM combo_options WHERE id=$1 AND restaurant_id=$2 AND option_group=$3`,
		id, restaurantID, group)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *comboRepository) ListOptions(ctx context.Context, restaurantID string, group domain.ComboOptionGroup) ([]domain.ComboOption, error) {
	const query = `
        SELECT id, restaurant_id, option_group, name, is_available, created_at, updated_at
        FROM combo_options WHERE restaurant_id=$1 AND option_group=$2 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, restaurantID, group)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ComboOption
	for rows.Next() {
		var option domain.ComboOption
		if err := rows.Scan(
			&option.ID,
			&option.RestaurantID,
			&option.Group,
			&option.Name,
			&option.IsAvailable,
			&option.CreatedAt,
			&option.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, option)
	}
	return result, rows.Err()
}
