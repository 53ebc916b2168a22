package domain

import "time"

// Order — неизменяемый снимок завершенной покупки.
// После создания заказ никогда не обновляется, только читается или удаляется администратором.
type Order struct {
	ID        int64
	OrderUID  string // uuid
	UserID    int64
	Total     int64
	Items     []OrderItem
	CreatedAt time.Time
}

// OrderItem — снимок одной купленной позиции на момент покупки.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Name      string
	Quantity  int64
	Price     int64 // TotalPrice строки корзины на момент покупки
}

func NewOrder(orderUID string, userID int64, total int64, items []OrderItem) *Order {
	return &Order{
		OrderUID: orderUID,
		UserID:   userID,
		Total:    total,
		Items:    items,
	}
}

func NewOrderItem(productID int64, name string, quantity int64, price int64) OrderItem {
	return OrderItem{
		ProductID: productID,
		Name:      name,
		Quantity:  quantity,
		Price:     price,
	}
}
