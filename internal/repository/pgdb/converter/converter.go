package converter

import (
	"github.com/storefront-tech/go-backend/internal/domain"
	"github.com/storefront-tech/go-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter struct{}

func NewProductConverter() ProductConverter {
	return ProductConverter{}
}

func (ProductConverter) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:          model.ID,
		Name:        model.Name,
		Price:       model.Price,
		Quantity:    model.Quantity,
		Category:    model.Category,
		Description: model.Description,
		ImageKeys:   model.ImageKeys,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		IsArchived:  model.IsArchived,
	}
}

func (c ProductConverter) ToArrEntity(models []ProductModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}

	return result
}

// AccountConverter преобразует сущности Account между domain и моделью PostgreSQL.
type AccountConverter struct{}

func NewAccountConverter() AccountConverter {
	return AccountConverter{}
}

func (AccountConverter) ToEntity(model *AccountModel) *domain.Account {
	return &domain.Account{
		ID:        model.ID,
		Username:  model.Username,
		Email:     model.Email,
		Funds:     model.Funds,
		Role:      model.Role,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (c AccountConverter) ToArrEntity(models []AccountModel) []domain.Account {
	result := make([]domain.Account, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}

	return result
}

// CartLineConverter преобразует сущности CartLine между domain и моделью PostgreSQL.
type CartLineConverter struct{}

func NewCartLineConverter() CartLineConverter {
	return CartLineConverter{}
}

func (CartLineConverter) ToEntity(model *CartLineModel) *domain.CartLine {
	return &domain.CartLine{
		ID:         model.ID,
		UserID:     model.UserID,
		ProductID:  model.ProductID,
		Quantity:   model.Quantity,
		TotalPrice: model.TotalPrice,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func (c CartLineConverter) ToArrEntity(models []CartLineModel) []domain.CartLine {
	result := make([]domain.CartLine, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}

	return result
}

// OrderConverter преобразует сущности Order между domain и моделями PostgreSQL.
type OrderConverter struct{}

func NewOrderConverter() OrderConverter {
	return OrderConverter{}
}

func (OrderConverter) ToEntity(model *OrderModel, items []OrderItemModel) *domain.Order {
	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, domain.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return &domain.Order{
		ID:        model.ID,
		OrderUID:  model.OrderUID,
		UserID:    model.UserID,
		Total:     model.Total,
		Items:     orderItems,
		CreatedAt: model.CreatedAt,
	}
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter struct{}

func NewOutboxEventConverter() OutboxEventConverter {
	return OutboxEventConverter{}
}

func (OutboxEventConverter) ToModel(event *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          event.ID,
		EventID:     event.EventID,
		EventType:   string(event.EventType),
		OrderID:     event.OrderID,
		Payload:     event.Payload,
		Status:      string(event.Status),
		CreatedAt:   event.CreatedAt,
		ProcessedAt: event.ProcessedAt,
	}
}

func (OutboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		OrderID:     model.OrderID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}

	return result
}
