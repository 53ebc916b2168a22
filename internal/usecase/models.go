package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/storefront-tech/go-backend/internal/domain"
)

// CART USECASE

// CartObject — витринное представление корзины: одна строка на товар.
// Форма JSON является внешним контрактом и не меняется.
type CartObject struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"`
}

// PRODUCT USECASE

// AddNewProductReq — запрос на добавление нового товара.
type AddNewProductReq struct {
	Name        string
	Category    string
	Description string
	Price       int64
	Quantity    int64
	Images      []ProductImage
}

// UpdateProductReq — запрос на изменение товара.
type UpdateProductReq struct {
	ID          int64
	Name        string
	Category    string
	Description string
	Price       int64
	Quantity    int64
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// GetProductsReq — запрос информации о товарах по их идентификаторам.
type GetProductsReq struct {
	IDs []int64
}

// GetProductsRes — ответ с данными запрошенных товаров.
type GetProductsRes struct {
	Products         []ProductInfo
	NotFoundProducts []int64
}

// ProductInfo — DTO с информацией о товаре для внешнего использования.
type ProductInfo struct {
	ID       int64
	Name     string
	Category string
	Price    int64
	Quantity int64
}

// ACCOUNT USECASE

// UpdateProfileReq — запрос на изменение профиля.
// Баланс через профиль не меняется, его мутирует только оформление заказа.
type UpdateProfileReq struct {
	ID       int64
	Username string
	Email    string
}

// INFRASTRUCTURE

// UploadImagesReq — запрос на загрузку изображений товара.
type UploadImagesReq struct {
	Name   string
	Images []ProductImage
}

// UploadImagesRes — результат загрузки изображений (ключи в MinIO).
type UploadImagesRes struct {
	ImagesKeys []string
}

type WriteRawMessageReq struct {
	OrderID int64
	Payload []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	OrderCreatedEvent OutboxEventType = "order_created"
)

// OutboxEvent — запись outbox-таблицы, публикуемая в Kafka после коммита.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// orderCreatedPayload — тело события о созданном заказе.
type orderCreatedPayload struct {
	OrderUID  string             `json:"order_uid"`
	UserID    int64              `json:"user_id"`
	Total     int64              `json:"total"`
	Items     []orderItemPayload `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
}

type orderItemPayload struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Price     int64  `json:"price"`
}

// MAPPERS

func NewCartObject(name string, quantity int64, price int64) *CartObject {
	return &CartObject{
		Name:     name,
		Quantity: quantity,
		Price:    price,
	}
}

func NewAddNewProductReq(name, category, description string, price, quantity int64, images []ProductImage) *AddNewProductReq {
	return &AddNewProductReq{
		Name:        name,
		Category:    category,
		Description: description,
		Price:       price,
		Quantity:    quantity,
		Images:      images,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewGetProductsReq(ids []int64) *GetProductsReq {
	return &GetProductsReq{ids}
}

func NewGetProductsRes(products []ProductInfo, notFoundProducts []int64) *GetProductsRes {
	return &GetProductsRes{
		Products:         products,
		NotFoundProducts: notFoundProducts,
	}
}

func NewProductInfo(id int64, name string, category string, price int64, quantity int64) ProductInfo {
	return ProductInfo{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    price,
		Quantity: quantity,
	}
}

func NewUploadImagesReq(name string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		Name:   name,
		Images: images,
	}
}

func NewUploadImagesRes(imagesKeys []string) *UploadImagesRes {
	return &UploadImagesRes{
		ImagesKeys: imagesKeys,
	}
}

func NewWriteRawMessageReq(orderID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		OrderID: orderID,
		Payload: payload,
	}
}

// NewOrderCreatedEvent упаковывает созданный заказ в outbox-событие с JSON-телом.
func NewOrderCreatedEvent(order *domain.Order) (*OutboxEvent, error) {
	items := make([]orderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemPayload{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	payload, err := json.Marshal(orderCreatedPayload{
		OrderUID:  order.OrderUID,
		UserID:    order.UserID,
		Total:     order.Total,
		Items:     items,
		CreatedAt: order.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: OrderCreatedEvent,
		OrderID:   order.ID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}, nil
}
