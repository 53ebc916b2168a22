package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/storefront-tech/go-backend/internal/domain"
	"github.com/storefront-tech/go-backend/internal/repository/pgdb/converter"
	"github.com/storefront-tech/go-backend/pkg/e"
)

// CartRepo реализует репозиторий строк корзины поверх PostgreSQL.
// Уникальный индекс (user_id, product_id) гарантирует не более одной
// строки на пару пользователь-товар.
type CartRepo struct {
	pool *pgxpool.Pool
	conv converter.CartLineConverter
}

func NewCartRepo(pool *pgxpool.Pool, conv converter.CartLineConverter) *CartRepo {
	return &CartRepo{
		pool: pool,
		conv: conv,
	}
}

const cartColumns = `id, user_id, product_id, quantity, total_price, created_at, updated_at`

func (c *CartRepo) ListAll(ctx context.Context) ([]domain.CartLine, error) {
	query := `
		SELECT ` + cartColumns + `
		FROM cart_lines
		ORDER BY id;
	`

	return c.queryLines(ctx, query)
}

func (c *CartRepo) ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	query := `
		SELECT ` + cartColumns + `
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY id;
	`

	return c.queryLines(ctx, query, userID)
}

// GetLine возвращает строку корзины для пары (пользователь, товар).
func (c *CartRepo) GetLine(ctx context.Context, userID int64, productID int64) (*domain.CartLine, error) {
	query := `
		SELECT ` + cartColumns + `
		FROM cart_lines
		WHERE user_id = $1 AND product_id = $2;
	`

	var model converter.CartLineModel
	err := db(ctx, c.pool).QueryRow(ctx, query, userID, productID).Scan(
		&model.ID, &model.UserID, &model.ProductID, &model.Quantity,
		&model.TotalPrice, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrCartLineNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CartRepo) Create(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	query := `
		INSERT INTO cart_lines (user_id, product_id, quantity, total_price)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + cartColumns + `;
	`

	var model converter.CartLineModel
	err := db(ctx, c.pool).QueryRow(ctx, query,
		line.UserID, line.ProductID, line.Quantity, line.TotalPrice,
	).Scan(
		&model.ID, &model.UserID, &model.ProductID, &model.Quantity,
		&model.TotalPrice, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CartRepo) Update(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	query := `
		UPDATE cart_lines
		SET quantity = $2, total_price = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + cartColumns + `;
	`

	var model converter.CartLineModel
	err := db(ctx, c.pool).QueryRow(ctx, query, line.ID, line.Quantity, line.TotalPrice).Scan(
		&model.ID, &model.UserID, &model.ProductID, &model.Quantity,
		&model.TotalPrice, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrCartLineNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CartRepo) DeleteLine(ctx context.Context, id int64) error {
	query := `DELETE FROM cart_lines WHERE id = $1;`

	tag, err := db(ctx, c.pool).Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.ErrCartLineNotFound
	}

	return nil
}

// DeleteByUser очищает корзину пользователя; вызывается покупкой внутри транзакции.
func (c *CartRepo) DeleteByUser(ctx context.Context, userID int64) error {
	query := `DELETE FROM cart_lines WHERE user_id = $1;`

	if _, err := db(ctx, c.pool).Exec(ctx, query, userID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CartRepo) queryLines(ctx context.Context, query string, args ...any) ([]domain.CartLine, error) {
	rows, err := db(ctx, c.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.CartLineModel, 0)
	for rows.Next() {
		var model converter.CartLineModel
		if err := rows.Scan(
			&model.ID, &model.UserID, &model.ProductID, &model.Quantity,
			&model.TotalPrice, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToArrEntity(models), nil
}
