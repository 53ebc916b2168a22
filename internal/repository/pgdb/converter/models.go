package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Price       int64      `db:"price"`
	Quantity    int64      `db:"quantity"`
	Category    string     `db:"category"`
	Description string     `db:"description"`
	ImageKeys   []string   `db:"image_keys"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
	IsArchived  bool       `db:"is_archived"`
}

// AccountModel представляет запись таблицы accounts в PostgreSQL.
type AccountModel struct {
	ID        int64      `db:"id"`
	Username  string     `db:"username"`
	Email     string     `db:"email"`
	Funds     int64      `db:"funds"`
	Role      string     `db:"role"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// CartLineModel представляет запись таблицы cart_lines в PostgreSQL.
type CartLineModel struct {
	ID         int64      `db:"id"`
	UserID     int64      `db:"user_id"`
	ProductID  int64      `db:"product_id"`
	Quantity   int64      `db:"quantity"`
	TotalPrice int64      `db:"total_price"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
}

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID        int64     `db:"id"`
	OrderUID  string    `db:"order_uid"`
	UserID    int64     `db:"user_id"`
	Total     int64     `db:"total"`
	CreatedAt time.Time `db:"created_at"`
}

// OrderItemModel представляет запись таблицы order_items в PostgreSQL.
type OrderItemModel struct {
	ID        int64  `db:"id"`
	OrderID   int64  `db:"order_id"`
	ProductID int64  `db:"product_id"`
	Name      string `db:"name"`
	Quantity  int64  `db:"quantity"`
	Price     int64  `db:"price"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	OrderID     int64      `db:"order_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
