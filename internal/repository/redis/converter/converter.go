package converter

import "github.com/storefront-tech/go-backend/internal/usecase"

// ProductInfoConverter преобразует ProductInfo между usecase и моделью Redis.
type ProductInfoConverter struct{}

func NewProductInfoConverter() ProductInfoConverter {
	return ProductInfoConverter{}
}

func (ProductInfoConverter) ToRedisModel(info *usecase.ProductInfo) *ProductInfoRedisModel {
	return &ProductInfoRedisModel{
		ID:       info.ID,
		Name:     info.Name,
		Category: info.Category,
		Price:    info.Price,
		Quantity: info.Quantity,
	}
}

func (ProductInfoConverter) ToUseCase(model *ProductInfoRedisModel) *usecase.ProductInfo {
	return &usecase.ProductInfo{
		ID:       model.ID,
		Name:     model.Name,
		Category: model.Category,
		Price:    model.Price,
		Quantity: model.Quantity,
	}
}

func (c ProductInfoConverter) ToArrRedisModel(infos []usecase.ProductInfo) []ProductInfoRedisModel {
	result := make([]ProductInfoRedisModel, 0, len(infos))
	for i := range infos {
		result = append(result, *c.ToRedisModel(&infos[i]))
	}

	return result
}
