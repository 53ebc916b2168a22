package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/storefront-tech/go-backend/internal/domain"
	"github.com/storefront-tech/go-backend/internal/repository/pgdb/converter"
	"github.com/storefront-tech/go-backend/internal/usecase"
	"github.com/storefront-tech/go-backend/pkg/e"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

const productColumns = `id, name, price, quantity, category, description, image_keys, created_at, updated_at, is_archived`

func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (name, price, quantity, category, description, image_keys)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + productColumns + `;
	`

	var model converter.ProductModel
	err := db(ctx, p.pool).QueryRow(ctx, query,
		product.Name, product.Price, product.Quantity,
		product.Category, product.Description, product.ImageKeys,
	).Scan(
		&model.ID, &model.Name, &model.Price, &model.Quantity, &model.Category,
		&model.Description, &model.ImageKeys, &model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1 AND NOT is_archived;
	`

	var model converter.ProductModel
	err := db(ctx, p.pool).QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.Price, &model.Quantity, &model.Category,
		&model.Description, &model.ImageKeys, &model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE NOT is_archived
		ORDER BY id;
	`

	rows, err := db(ctx, p.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Price, &model.Quantity, &model.Category,
			&model.Description, &model.ImageKeys, &model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// GetProductsInfo возвращает краткую информацию о товарах по их идентификаторам.
func (p *ProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]usecase.ProductInfo, error) {
	query := `
		SELECT id, name, category, price, quantity
		FROM products
		WHERE id = ANY($1) AND NOT is_archived;
	`

	rows, err := db(ctx, p.pool).Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.ProductInfo, 0)
	for rows.Next() {
		var info usecase.ProductInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Category, &info.Price, &info.Quantity); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE products
		SET name = $2, price = $3, quantity = $4, category = $5, description = $6, updated_at = NOW()
		WHERE id = $1 AND NOT is_archived
		RETURNING ` + productColumns + `;
	`

	var model converter.ProductModel
	err := db(ctx, p.pool).QueryRow(ctx, query,
		product.ID, product.Name, product.Price, product.Quantity,
		product.Category, product.Description,
	).Scan(
		&model.ID, &model.Name, &model.Price, &model.Quantity, &model.Category,
		&model.Description, &model.ImageKeys, &model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// AdjustStock атомарно меняет остаток товара. Условие quantity + delta >= 0
// не дает остатку уйти в минус: конкурентное списание проявляется здесь
// как ErrInsufficientStock, а не как отрицательный остаток.
func (p *ProductRepo) AdjustStock(ctx context.Context, id int64, delta int64) (*domain.Product, error) {
	query := `
		UPDATE products
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1 AND NOT is_archived AND quantity + $2 >= 0
		RETURNING ` + productColumns + `;
	`

	var model converter.ProductModel
	err := db(ctx, p.pool).QueryRow(ctx, query, id, delta).Scan(
		&model.ID, &model.Name, &model.Price, &model.Quantity, &model.Category,
		&model.Description, &model.ImageKeys, &model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrInsufficientStock
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Delete архивирует товар. Строки заказов и корзин продолжают ссылаться на него.
func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	query := `
		UPDATE products
		SET is_archived = TRUE, updated_at = NOW()
		WHERE id = $1 AND NOT is_archived;
	`

	tag, err := db(ctx, p.pool).Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.ErrProductNotFound
	}

	return nil
}
