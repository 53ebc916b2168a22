package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrAccountNotFound  = fmt.Errorf("account not found")
	ErrCartLineNotFound = fmt.Errorf("cart line not found")
	ErrOrderNotFound    = fmt.Errorf("order not found")

	// Ошибки оформления заказа
	ErrEmptyCart         = fmt.Errorf("cart is empty")
	ErrInsufficientFunds = fmt.Errorf("insufficient funds")
	ErrInsufficientStock = fmt.Errorf("insufficient stock")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrPriceMustBePositive  = fmt.Errorf("price must be positive")
	ErrQuantityNegative     = fmt.Errorf("quantity must not be negative")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrMissingFields        = fmt.Errorf("missing required fields")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrTooManyImages        = fmt.Errorf("too many images")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrInvalidID            = fmt.Errorf("invalid id")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// 401 / 403
	ErrUnauthorized = fmt.Errorf("unauthorized")
	ErrForbidden    = fmt.Errorf("forbidden")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
