package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/cocktail-service/internal/domain"
)

// CocktailRepository handles persistence for cocktails and their recipes.
type CocktailRepository interface {
	Create(ctx context.Context, cocktail *domain.Cocktail) error
	Update(ctx context.Context, cocktail *domain.Cocktail) error
	GetByID(ctx context.Context, id string) (*domain.Cocktail, error)
	List(ctx context.Context) ([]domain.Cocktail, error)
	Delete(ctx context.Context, id string) error
}

type cocktailRepository struct {
	pool *pgxpool.Pool
}

// NewCocktailRepository instantiates the repository.
func NewCocktailRepository(pool *pgxpool.Pool) CocktailRepository {
	return &cocktailRepository{pool: pool}
}

func (r *cocktailRepository) Create(ctx context.Context, cocktail *domain.Cocktail) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO cocktails (name, steps, tags, abv, base_spirit)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, query,
		cocktail.Name,
		cocktail.Steps,
		cocktail.Tags,
		cocktail.ABV,
		cocktail.BaseSpirit,
	).Scan(&cocktail.ID, &cocktail.CreatedAt, &cocktail.UpdatedAt); err != nil {
		return err
	}

	if err := insertRecipe(ctx, tx, cocktail.ID, cocktail.Recipe); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *cocktailRepository) Update(ctx context.Context, cocktail *domain.Cocktail) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE cocktails
        SET name=$1, steps=$2, tags=$3, abv=$4, base_spirit=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := tx.Exec(ctx, query,
		cocktail.Name,
		cocktail.Steps,
		cocktail.Tags,
		cocktail.ABV,
		cocktail.BaseSpirit,
		cocktail.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cocktail_ingredients WHERE cocktail_id=$1`, cocktail.ID); err != nil {
		return err
	}
	if err := insertRecipe(ctx, tx, cocktail.ID, cocktail.Recipe); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *cocktailRepository) GetByID(ctx context.Context, id string) (*domain.Cocktail, error) {
	const query = `
        SELECT id, name, steps, tags, abv, base_spirit, created_at, updated_at
        FROM cocktails WHERE id=$1`

	var cocktail domain.Cocktail
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&cocktail.ID,
		&cocktail.Name,
		&cocktail.Steps,
		&cocktail.Tags,
		&cocktail.ABV,
		&cocktail.BaseSpirit,
		&cocktail.CreatedAt,
		&cocktail.UpdatedAt,
	); err != nil {
		return nil, err
	}

	recipes, err := r.loadRecipes(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	cocktail.Recipe = recipes[id]
	return &cocktail, nil
}

func (r *cocktailRepository) List(ctx context.Context) ([]domain.Cocktail, error) {
	const query = `
        SELECT id, name, steps, tags, abv, base_spirit, created_at, updated_at
        FROM cocktails ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Cocktail
	var ids []string
	for rows.Next() {
		var cocktail domain.Cocktail
		if err := rows.Scan(
			&cocktail.ID,
			&cocktail.Name,
			&cocktail.Steps,
			&cocktail.Tags,
			&cocktail.ABV,
			&cocktail.BaseSpirit,
			&cocktail.CreatedAt,
			&cocktail.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, cocktail)
		ids = append(ids, cocktail.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recipes, err := r.loadRecipes(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Recipe = recipes[result[i].ID]
	}
	return result, nil
}

func (r *cocktailRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cocktails WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *cocktailRepository) loadRecipes(ctx context.Context, cocktailIDs []string) (map[string][]domain.RecipeItem, error) {
	recipes := make(map[string][]domain.RecipeItem, len(cocktailIDs))
	if len(cocktailIDs) == 0 {
		return recipes, nil
	}

	const query = `
        SELECT cocktail_id, ingredient_id, measure
        FROM cocktail_ingredients
        WHERE cocktail_id = ANY($1::uuid[])
        ORDER BY cocktail_id, position`

	rows, err := r.pool.Query(ctx, query, cocktailIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cocktailID string
		var item domain.RecipeItem
		if err := rows.Scan(&cocktailID, &item.IngredientID, &item.Measure); err != nil {
			return nil, err
		}
		recipes[cocktailID] = append(recipes[cocktailID], item)
	}
	return recipes, rows.Err()
}

func insertRecipe(ctx context.Context, tx pgx.Tx, cocktailID string, recipe []domain.RecipeItem) error {
	const query = `
        INSERT INTO cocktail_ingredients (cocktail_id, ingredient_id, measure, position)
        VALUES ($1,$2,$3,$4)`

	for i, item := range recipe {
		if _, err := tx.Exec(ctx, query, cocktailID, item.IngredientID, item.Measure, i); err != nil {
			return err
		}
	}
	return nil
}
