package domain

import "time"

// CartLine — строка корзины: намерение пользователя купить товар в указанном количестве.
// На пару (UserID, ProductID) существует не более одной строки;
// строка с нулевым количеством удаляется, а не сохраняется.
type CartLine struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int64
	// TotalPrice ведется инкрементально: при каждом изменении прибавляется или
	// вычитается текущая цена товара. Если цена менялась между добавлениями,
	// сумма отражает смесь исторических цен.
	TotalPrice int64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func NewCartLine(userID int64, productID int64, quantity int64, totalPrice int64) *CartLine {
	return &CartLine{
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: totalPrice,
	}
}
