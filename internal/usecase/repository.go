package usecase

import (
	"context"

	"github.com/storefront-tech/go-backend/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// AdjustStock атомарно меняет остаток; уводящая в минус дельта
	// отклоняется с e.ErrInsufficientStock.
	AdjustStock(ctx context.Context, id int64, delta int64) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	UpdateProfile(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// AdjustFunds атомарно меняет баланс; уводящая в минус дельта
	// отклоняется с e.ErrInsufficientFunds.
	AdjustFunds(ctx context.Context, id int64, delta int64) (*domain.Account, error)
	Delete(ctx context.Context, id int64) error
}

type CartRepository interface {
	ListAll(ctx context.Context) ([]domain.CartLine, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error)
	GetLine(ctx context.Context, userID int64, productID int64) (*domain.CartLine, error)
	Create(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error)
	Update(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error)
	DeleteLine(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error)
	SetProducts(ctx context.Context, products []ProductInfo) error
	DeleteProducts(ctx context.Context, ids []int64) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

// Tx — активная транзакция, покрывающая несколько чтений и записей.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	IsActive() bool
}

// TxManager открывает транзакцию и возвращает контекст, сквозь который
// репозитории видят её в своих операциях.
type TxManager interface {
	Begin(ctx context.Context) (context.Context, Tx, error)
}
