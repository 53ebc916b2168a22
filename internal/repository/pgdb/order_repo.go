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

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
// Заказы только создаются, читаются и удаляются, UPDATE-операций нет.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{
		pool: pool,
		conv: conv,
	}
}

// Create сохраняет заказ вместе со снимком позиций; вызывается покупкой внутри транзакции.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	q := db(ctx, o.pool)

	orderQuery := `
		INSERT INTO orders (order_uid, user_id, total)
		VALUES ($1, $2, $3)
		RETURNING id, order_uid, user_id, total, created_at;
	`

	var model converter.OrderModel
	err := q.QueryRow(ctx, orderQuery, order.OrderUID, order.UserID, order.Total).Scan(
		&model.ID, &model.OrderUID, &model.UserID, &model.Total, &model.CreatedAt,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, name, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, order_id, product_id, name, quantity, price;
	`

	itemModels := make([]converter.OrderItemModel, 0, len(order.Items))
	for _, item := range order.Items {
		var itemModel converter.OrderItemModel
		err := q.QueryRow(ctx, itemQuery,
			model.ID, item.ProductID, item.Name, item.Quantity, item.Price,
		).Scan(
			&itemModel.ID, &itemModel.OrderID, &itemModel.ProductID,
			&itemModel.Name, &itemModel.Quantity, &itemModel.Price,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		itemModels = append(itemModels, itemModel)
	}

	return o.conv.ToEntity(&model, itemModels), nil
}

func (o *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT id, order_uid, user_id, total, created_at
		FROM orders
		WHERE id = $1;
	`

	var model converter.OrderModel
	err := db(ctx, o.pool).QueryRow(ctx, query, id).Scan(
		&model.ID, &model.OrderUID, &model.UserID, &model.Total, &model.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrOrderNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := o.loadItems(ctx, []int64{model.ID})
	if err != nil {
		return nil, err
	}

	return o.conv.ToEntity(&model, items[model.ID]), nil
}

func (o *OrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, order_uid, user_id, total, created_at
		FROM orders
		ORDER BY id;
	`

	return o.queryOrders(ctx, query)
}

func (o *OrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	query := `
		SELECT id, order_uid, user_id, total, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY id;
	`

	return o.queryOrders(ctx, query, userID)
}

func (o *OrderRepo) Delete(ctx context.Context, id int64) error {
	// order_items удаляются каскадно по внешнему ключу
	query := `DELETE FROM orders WHERE id = $1;`

	tag, err := db(ctx, o.pool).Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.ErrOrderNotFound
	}

	return nil
}

func (o *OrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := db(ctx, o.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.OrderModel, 0)
	orderIDs := make([]int64, 0)
	for rows.Next() {
		var model converter.OrderModel
		if err := rows.Scan(
			&model.ID, &model.OrderUID, &model.UserID, &model.Total, &model.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
		orderIDs = append(orderIDs, model.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	itemsByOrder, err := o.loadItems(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Order, 0, len(models))
	for i := range models {
		result = append(result, *o.conv.ToEntity(&models[i], itemsByOrder[models[i].ID]))
	}

	return result, nil
}

// loadItems одним запросом подтягивает позиции для набора заказов.
func (o *OrderRepo) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]converter.OrderItemModel, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, order_id, product_id, name, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id;
	`

	rows, err := db(ctx, o.pool).Query(ctx, query, orderIDs)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make(map[int64][]converter.OrderItemModel, len(orderIDs))
	for rows.Next() {
		var model converter.OrderItemModel
		if err := rows.Scan(
			&model.ID, &model.OrderID, &model.ProductID,
			&model.Name, &model.Quantity, &model.Price,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result[model.OrderID] = append(result[model.OrderID], model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
