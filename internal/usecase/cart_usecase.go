package usecase

import (
	"context"
	"errors"

	"github.com/storefront-tech/go-backend/internal/domain"
	"github.com/storefront-tech/go-backend/pkg/e"
	"github.com/storefront-tech/go-backend/pkg/logger"
)

// CartUseCase реализует бизнес-логику корзины: агрегацию строк по товарам
// и поштучное добавление/удаление.
type CartUseCase struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	logger      logger.Logger
}

func NewCartUC(cartRepo CartRepository, productRepo ProductRepository, logger logger.Logger) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// ListAllCarts возвращает глобальное представление всех корзин:
// строки всех пользователей схлопываются по товару с суммированием количества и стоимости.
func (c *CartUseCase) ListAllCarts(ctx context.Context) ([]CartObject, error) {
	const op = "CartUseCase.ListAllCarts"

	lines, err := c.cartRepo.ListAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result, err := c.aggregate(ctx, lines)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return result, nil
}

// ListUserCart возвращает корзину одного пользователя, по строке на товар.
func (c *CartUseCase) ListUserCart(ctx context.Context, userID int64) ([]CartObject, error) {
	const op = "CartUseCase.ListUserCart"

	lines, err := c.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result, err := c.aggregate(ctx, lines)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return result, nil
}

// AddToCart добавляет одну единицу товара в корзину пользователя.
// Первая единица создает строку, последующие увеличивают количество на 1
// и стоимость на текущую цену товара.
func (c *CartUseCase) AddToCart(ctx context.Context, userID int64, productID int64) (*domain.CartLine, error) {
	const op = "CartUseCase.AddToCart"

	product, err := c.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	line, err := c.cartRepo.GetLine(ctx, userID, productID)
	if errors.Is(err, e.ErrCartLineNotFound) {
		created, createErr := c.cartRepo.Create(ctx, domain.NewCartLine(userID, productID, 1, product.Price))
		if createErr != nil {
			return nil, e.Wrap(op, createErr)
		}
		return created, nil
	}
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	line.Quantity++
	line.TotalPrice += product.Price

	updated, err := c.cartRepo.Update(ctx, line)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// RemoveFromCart убирает одну единицу товара из корзины пользователя.
// Количество и стоимость уменьшаются на единицу и текущую цену соответственно;
// строка с нулевым количеством удаляется целиком.
func (c *CartUseCase) RemoveFromCart(ctx context.Context, userID int64, productID int64) (*domain.CartLine, error) {
	const op = "CartUseCase.RemoveFromCart"

	line, err := c.cartRepo.GetLine(ctx, userID, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := c.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	line.Quantity--
	line.TotalPrice -= product.Price

	if line.Quantity <= 0 {
		if err := c.cartRepo.DeleteLine(ctx, line.ID); err != nil {
			return nil, e.Wrap(op, err)
		}
		// Возвращаем финальное состояние удаленной строки
		return line, nil
	}

	updated, err := c.cartRepo.Update(ctx, line)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// aggregate схлопывает строки корзины в витринные объекты по товару.
// Порядок определяется первым вхождением товара и стабилен между вызовами.
func (c *CartUseCase) aggregate(ctx context.Context, lines []domain.CartLine) ([]CartObject, error) {
	var productOrder []int64
	grouped := make(map[int64]*CartObject, len(lines))

	for _, line := range lines {
		obj, ok := grouped[line.ProductID]
		if !ok {
			product, err := c.productRepo.GetByID(ctx, line.ProductID)
			if err != nil {
				return nil, err
			}

			obj = NewCartObject(product.Name, 0, 0)
			grouped[line.ProductID] = obj
			productOrder = append(productOrder, line.ProductID)
		}

		obj.Quantity += line.Quantity
		obj.Price += line.TotalPrice
	}

	result := make([]CartObject, 0, len(productOrder))
	for _, id := range productOrder {
		result = append(result, *grouped[id])
	}

	return result, nil
}
