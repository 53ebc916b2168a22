package domain

import "time"

// Account описывает учетную запись покупателя
type Account struct {
	ID        int64
	Username  string
	Email     string
	Funds     int64 // Баланс в минимальных единицах, не может стать отрицательным при покупке
	Role      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewAccount(username string, email string, funds int64, role string) *Account {
	return &Account{
		Username: username,
		Email:    email,
		Funds:    funds,
		Role:     role,
	}
}
