package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront-tech/go-backend/internal/domain"
	"github.com/storefront-tech/go-backend/pkg/e"
	"github.com/storefront-tech/go-backend/pkg/logger"
)

// OrderUseCase превращает корзину пользователя в заказ, списывая средства
// и уменьшая остатки в одной транзакции.
type OrderUseCase struct {
	orderRepo   OrderRepository
	cartRepo    CartRepository
	productRepo ProductRepository
	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	cacheRepo   CacheRepository
	txManager   TxManager
	logger      logger.Logger
}

func NewOrderUC(
	orderRepo OrderRepository,
	cartRepo CartRepository,
	productRepo ProductRepository,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	txManager TxManager,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		cacheRepo:   cacheRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Purchase оформляет заказ по текущему содержимому корзины пользователя.
// Все проверки и записи выполняются в одной транзакции: при любой ошибке
// баланс, остатки и корзина остаются нетронутыми. Конкурентное изменение
// остатка или баланса проявляется как ErrInsufficientStock/ErrInsufficientFunds
// на защищенных UPDATE, а не как частичная запись.
func (o *OrderUseCase) Purchase(ctx context.Context, userID int64) (*domain.Order, error) {
	const op = "OrderUseCase.Purchase"

	ctx, tx, err := o.txManager.Begin(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	lines, err := o.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(lines) == 0 {
		err = e.ErrEmptyCart
		return nil, e.Wrap(op, err)
	}

	// Снимок товаров и общая стоимость
	var grandTotal int64
	products := make([]*domain.Product, 0, len(lines))
	items := make([]domain.OrderItem, 0, len(lines))
	productIDs := make([]int64, 0, len(lines))
	for _, line := range lines {
		var product *domain.Product
		product, err = o.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		grandTotal += line.TotalPrice
		products = append(products, product)
		items = append(items, domain.NewOrderItem(line.ProductID, product.Name, line.Quantity, line.TotalPrice))
		productIDs = append(productIDs, line.ProductID)
	}

	// Проверка баланса
	var account *domain.Account
	account, err = o.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if account.Funds < grandTotal {
		err = e.ErrInsufficientFunds
		return nil, e.Wrap(op, err)
	}

	// Проверка остатков
	for i, line := range lines {
		if products[i].Quantity < line.Quantity {
			err = e.ErrInsufficientStock
			return nil, e.Wrap(op, err)
		}
	}

	// Списание средств и уменьшение остатков
	if _, err = o.accountRepo.AdjustFunds(ctx, userID, -grandTotal); err != nil {
		return nil, e.Wrap(op, err)
	}
	for _, line := range lines {
		if _, err = o.productRepo.AdjustStock(ctx, line.ProductID, -line.Quantity); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	// Снимок заказа и очистка корзины
	var order *domain.Order
	order, err = o.orderRepo.Create(ctx, domain.NewOrder(uuid.NewString(), userID, grandTotal, items))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = o.cartRepo.DeleteByUser(ctx, userID); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Outbox-событие публикуется воркером после коммита
	var event *OutboxEvent
	event, err = NewOrderCreatedEvent(order)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if _, err = o.outboxRepo.Create(ctx, event); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Инвалидация кэша купленных товаров
	if cacheErr := o.cacheRepo.DeleteProducts(ctx, productIDs); cacheErr != nil {
		o.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, cacheErr))
	}

	return order, nil
}

// ListAllOrders возвращает все заказы (административная операция).
func (o *OrderUseCase) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	const op = "OrderUseCase.ListAllOrders"

	orders, err := o.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return orders, nil
}

// ListUserOrders возвращает заказы одного пользователя.
func (o *OrderUseCase) ListUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	const op = "OrderUseCase.ListUserOrders"

	orders, err := o.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return orders, nil
}

func (o *OrderUseCase) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	const op = "OrderUseCase.GetOrder"

	order, err := o.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return order, nil
}

// DeleteOrder удаляет заказ (административная операция; заказы никогда не редактируются).
func (o *OrderUseCase) DeleteOrder(ctx context.Context, id int64) error {
	const op = "OrderUseCase.DeleteOrder"

	if err := o.orderRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
