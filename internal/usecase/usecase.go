package usecase

import (
	"context"

	"github.com/storefront-tech/go-backend/internal/domain"
)

type CartUC interface {
	ListAllCarts(ctx context.Context) ([]CartObject, error)
	ListUserCart(ctx context.Context, userID int64) ([]CartObject, error)
	AddToCart(ctx context.Context, userID int64, productID int64) (*domain.CartLine, error)
	RemoveFromCart(ctx context.Context, userID int64, productID int64) (*domain.CartLine, error)
}

type OrderUC interface {
	Purchase(ctx context.Context, userID int64) (*domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)
	ListUserOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type ProductUC interface {
	RegisterNewProduct(ctx context.Context, req *AddNewProductReq) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error)
	UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type AccountUC interface {
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateProfile(ctx context.Context, req *UpdateProfileReq) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
}
