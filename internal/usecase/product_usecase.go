package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/storefront-tech/go-backend/internal/domain"
	"github.com/storefront-tech/go-backend/pkg/e"
	"github.com/storefront-tech/go-backend/pkg/logger"
)

// ProductUseCase реализует бизнес-логику каталога товаров.
type ProductUseCase struct {
	productRepo ProductRepository
	imagesInfra ImagesInfra
	cacheRepo   CacheRepository
	logger      logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	imagesInfra ImagesInfra,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		imagesInfra: imagesInfra,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// RegisterNewProduct добавляет новый товар, при наличии изображений
// предварительно сохраняя их в MinIO. При ошибке записи в БД уже
// загруженные изображения зачищаются компенсирующим действием.
func (p *ProductUseCase) RegisterNewProduct(ctx context.Context, req *AddNewProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.RegisterNewProduct"

	if err := p.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	var imageKeys []string
	if len(req.Images) > 0 {
		imagesRes, err := p.imagesInfra.UploadImages(ctx, NewUploadImagesReq(req.Name, req.Images))
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		imageKeys = imagesRes.ImagesKeys
	}

	product := domain.NewProduct(req.Name, req.Price, req.Quantity, req.Category, req.Description)
	product.ImageKeys = imageKeys

	created, err := p.productRepo.Create(ctx, product)
	if err != nil {
		if len(imageKeys) > 0 {
			p.logger.Warnf(
				"Cleaning up orphaned images after product insert failure. product_name: %s, error: %v",
				req.Name,
				e.Wrap(op, err),
			)
			p.imagesInfra.CleanupImages(imageKeys)
		}

		return nil, e.Wrap(op, err)
	}

	return created, nil
}

func (p *ProductUseCase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "ProductUseCase.GetProduct"

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

func (p *ProductUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductUseCase.ListProducts"

	products, err := p.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// GetProductsInfo возвращает информацию о товарах по их идентификаторам,
// читая сквозь Redis-кэш. Промахи добираются из БД и кэшируются в фоне.
func (p *ProductUseCase) GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error) {
	const op = "ProductUseCase.GetProductsInfo"

	if len(req.IDs) == 0 {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	cachedMap, err := p.cacheRepo.GetProducts(ctx, req.IDs)
	var nonCacheable []int64
	if err != nil {
		nonCacheable = append(nonCacheable, req.IDs...)
		cachedMap = nil
	} else {
		for _, productID := range req.IDs {
			if _, ok := cachedMap[productID]; !ok {
				nonCacheable = append(nonCacheable, productID)
			}
		}
	}

	var fromDB []ProductInfo
	if len(nonCacheable) > 0 {
		fromDB, err = p.productRepo.GetProductsInfo(ctx, nonCacheable)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		// Фоновое добавление товаров в кэш
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := p.cacheRepo.SetProducts(bgCtx, fromDB); err != nil {
				p.logger.Warnf("Failed to cache products in background: %v", e.Wrap(op, err))
			}
		}()
	}

	dbMap := make(map[int64]ProductInfo, len(fromDB))
	for _, info := range fromDB {
		dbMap[info.ID] = info
	}

	result := make([]ProductInfo, 0, len(req.IDs))
	notFound := make([]int64, 0)
	for _, id := range req.IDs {
		if info, ok := cachedMap[id]; ok {
			result = append(result, info)
		} else if info, ok := dbMap[id]; ok {
			result = append(result, info)
		} else {
			notFound = append(notFound, id)
		}
	}

	return NewGetProductsRes(result, notFound), nil
}

// UpdateProduct изменяет товар и инвалидирует его кэш.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	if strings.TrimSpace(req.Name) == "" {
		return nil, e.Wrap(op, e.ErrProductNameRequired)
	}
	if req.Price < 0 {
		return nil, e.Wrap(op, e.ErrPriceMustBePositive)
	}
	if req.Quantity < 0 {
		return nil, e.Wrap(op, e.ErrQuantityNegative)
	}

	product, err := p.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product.Name = req.Name
	product.Category = req.Category
	product.Description = req.Description
	product.Price = req.Price
	product.Quantity = req.Quantity

	updated, err := p.productRepo.Update(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := p.cacheRepo.DeleteProducts(ctx, []int64{req.ID}); err != nil {
		p.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, err))
	}

	return updated, nil
}

// DeleteProduct удаляет товар и инвалидирует его кэш.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "ProductUseCase.DeleteProduct"

	if err := p.productRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	if err := p.cacheRepo.DeleteProducts(ctx, []int64{id}); err != nil {
		p.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, err))
	}

	return nil
}

// validateProduct проверяет корректность входных данных запроса на добавление товара.
func (p *ProductUseCase) validateProduct(req *AddNewProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if req.Price <= 0 {
		return e.ErrPriceMustBePositive
	}

	if req.Quantity < 0 {
		return e.ErrQuantityNegative
	}

	return nil
}
