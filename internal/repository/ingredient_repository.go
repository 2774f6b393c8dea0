package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/cocktail-service/internal/domain"
)

// IngredientRepository handles persistence for ingredients.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *domain.Ingredient) error
	Update(ctx context.Context, ingredient *domain.Ingredient) error
	GetByID(ctx context.Context, id string) (*domain.Ingredient, error)
	List(ctx context.Context, filter IngredientFilter) ([]domain.Ingredient, error)
	Delete(ctx context.Context, id string) error
	SetStock(ctx context.Context, id string, inStock bool) (changed bool, err error)
}

// IngredientFilter defines query params for ingredient listing.
type IngredientFilter struct {
	Type    *domain.IngredientType
	InStock *bool
}

type ingredientRepository struct {
	pool *pgxpool.Pool
}

// NewIngredientRepository instantiates the repository.
func NewIngredientRepository(pool *pgxpool.Pool) IngredientRepository {
	return &ingredientRepository{pool: pool}
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *domain.Ingredient) error {
	const query = `
        INSERT INTO ingredients (name, type, abv, in_stock, substitutes, alternatives)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		ingredient.Name,
		ingredient.Type,
		ingredient.ABV,
		ingredient.InStock,
		ingredient.Substitutes,
		ingredient.Alternatives,
	).Scan(&ingredient.ID, &ingredient.CreatedAt, &ingredient.UpdatedAt)
}

func (r *ingredientRepository) Update(ctx context.Context, ingredient *domain.Ingredient) error {
	const query = `
        UPDATE ingredients
        SET name=$1, type=$2, abv=$3, in_stock=$4, substitutes=$5, alternatives=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		ingredient.Name,
		ingredient.Type,
		ingredient.ABV,
		ingredient.InStock,
		ingredient.Substitutes,
		ingredient.Alternatives,
		ingredient.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ingredientRepository) GetByID(ctx context.Context, id string) (*domain.Ingredient, error) {
	const query = `
        SELECT id, name, type, abv, in_stock, substitutes, alternatives, created_at, updated_at
        FROM ingredients WHERE id=$1`

	var ing domain.Ingredient
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ing.ID,
		&ing.Name,
		&ing.Type,
		&ing.ABV,
		&ing.InStock,
		&ing.Substitutes,
		&ing.Alternatives,
		&ing.CreatedAt,
		&ing.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepository) List(ctx context.Context, filter IngredientFilter) ([]domain.Ingredient, error) {
	query := `
        SELECT id, name, type, abv, in_stock, substitutes, alternatives, created_at, updated_at
        FROM ingredients`
	args := []any{}
	clauses := []string{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type=$%d", len(args)))
	}
	if filter.InStock != nil {
		args = append(args, *filter.InStock)
		clauses = append(clauses, fmt.Sprintf("in_stock=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ingredient
	for rows.Next() {
		var ing domain.Ingredient
		if err := rows.Scan(
			&ing.ID,
			&ing.Name,
			&ing.Type,
			&ing.ABV,
			&ing.InStock,
			&ing.Substitutes,
			&ing.Alternatives,
			&ing.CreatedAt,
			&ing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ing)
	}
	return result, rows.Err()
}

func (r *ingredientRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM ingredients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetStock updates the stock flag and reports whether the persisted value
// actually changed, so callers only broadcast on real transitions.
func (r *ingredientRepository) SetStock(ctx context.Context, id string, inStock bool) (bool, error) {
	const query = `
        UPDATE ingredients i
        SET in_stock=$2, updated_at=NOW()
        FROM (SELECT in_stock FROM ingredients WHERE id=$1) prior
        WHERE i.id=$1
        RETURNING prior.in_stock`

	var prior bool
	if err := r.pool.QueryRow(ctx, query, id, inStock).Scan(&prior); err != nil {
		return false, err
	}
	return prior != inStock, nil
}
