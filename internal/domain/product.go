package domain

import "time"

// Product описывает товар витрины
type Product struct {
	ID          int64
	Name        string
	Price       int64 // Цена хранится в минимальных единицах (копейках)
	Quantity    int64 // Доступный остаток, не может быть отрицательным
	Category    string
	Description string
	ImageKeys   []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	IsArchived  bool
}

func NewProduct(name string, price int64, quantity int64, category string, description string) *Product {
	return &Product{
		Name:        name,
		Price:       price,
		Quantity:    quantity,
		Category:    category,
		Description: description,
	}
}
