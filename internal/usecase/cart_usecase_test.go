package usecase

import (
	"context"
	"testing"

	"github.com/storefront-tech/go-backend/internal/domain"
	"github.com/storefront-tech/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture() (*CartUseCase, *memStore) {
	store := newMemStore()
	uc := NewCartUC(&fakeCartRepo{store: store}, &fakeProductRepo{store: store}, testLogger{})
	return uc, store
}

func seedCartLine(store *memStore, userID, productID, quantity, totalPrice int64) *domain.CartLine {
	store.nextLineID++
	line := domain.NewCartLine(userID, productID, quantity, totalPrice)
	line.ID = store.nextLineID
	store.cartLines = append(store.cartLines, line)
	return line
}

func TestAddToCart_CreatesLineAtCurrentPrice(t *testing.T) {
	uc, store := newCartFixture()
	product := store.addProduct("keyboard", 4500, 10)

	line, err := uc.AddToCart(context.Background(), 1, product.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), line.Quantity)
	assert.Equal(t, int64(4500), line.TotalPrice)
	assert.Len(t, store.cartLines, 1)
}

func TestAddToCart_IncrementsExistingLine(t *testing.T) {
	uc, store := newCartFixture()
	product := store.addProduct("pen", 3, 100)
	seedCartLine(store, 1, product.ID, 7, 50)

	line, err := uc.AddToCart(context.Background(), 1, product.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(8), line.Quantity)
	assert.Equal(t, int64(53), line.TotalPrice)
}

func TestAddToCart_PriceChangeKeepsHistoricalMix(t *testing.T) {
	uc, store := newCartFixture()
	product := store.addProduct("mug", 100, 10)

	_, err := uc.AddToCart(context.Background(), 1, product.ID)
	require.NoError(t, err)

	// Цена меняется между добавлениями; ранее добавленные единицы не переоцениваются
	store.products[product.ID].Price = 150

	line, err := uc.AddToCart(context.Background(), 1, product.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), line.Quantity)
	assert.Equal(t, int64(250), line.TotalPrice)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	uc, store := newCartFixture()

	_, err := uc.AddToCart(context.Background(), 1, 999)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
	assert.Empty(t, store.cartLines)
}

func TestRemoveFromCart_DecrementsLine(t *testing.T) {
	uc, store := newCartFixture()
	product := store.addProduct("pen", 3, 100)
	seedCartLine(store, 1, product.ID, 7, 50)

	line, err := uc.RemoveFromCart(context.Background(), 1, product.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(6), line.Quantity)
	assert.Equal(t, int64(47), line.TotalPrice)
}

func TestRemoveFromCart_LastUnitDeletesLine(t *testing.T) {
	uc, store := newCartFixture()
	product := store.addProduct("pen", 3, 100)
	seedCartLine(store, 1, product.ID, 1, 3)

	line, err := uc.RemoveFromCart(context.Background(), 1, product.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), line.Quantity)
	assert.Empty(t, store.cartLines)
}

func TestRemoveFromCart_MissingLine(t *testing.T) {
	uc, store := newCartFixture()
	product := store.addProduct("pen", 3, 100)
	seedCartLine(store, 2, product.ID, 5, 15)

	_, err := uc.RemoveFromCart(context.Background(), 1, product.ID)
	assert.ErrorIs(t, err, e.ErrCartLineNotFound)

	// Чужая строка не тронута
	require.Len(t, store.cartLines, 1)
	assert.Equal(t, int64(5), store.cartLines[0].Quantity)
}

func TestListAllCarts_AggregatesByProduct(t *testing.T) {
	uc, store := newCartFixture()
	product := store.addProduct("Product 2", 10, 100)

	// Две строки одного товара у разных пользователей схлопываются в одну позицию
	seedCartLine(store, 1, product.ID, 3, 40)
	seedCartLine(store, 2, product.ID, 5, 60)

	carts, err := uc.ListAllCarts(context.Background())
	require.NoError(t, err)

	require.Len(t, carts, 1)
	assert.Equal(t, "Product 2", carts[0].Name)
	assert.Equal(t, int64(8), carts[0].Quantity)
	assert.Equal(t, int64(100), carts[0].Price)
}

func TestListAllCarts_StableFirstEncounterOrder(t *testing.T) {
	uc, store := newCartFixture()
	first := store.addProduct("first", 10, 100)
	second := store.addProduct("second", 20, 100)

	seedCartLine(store, 1, second.ID, 1, 20)
	seedCartLine(store, 1, first.ID, 1, 10)
	seedCartLine(store, 2, second.ID, 2, 40)

	carts, err := uc.ListAllCarts(context.Background())
	require.NoError(t, err)

	require.Len(t, carts, 2)
	assert.Equal(t, "second", carts[0].Name)
	assert.Equal(t, "first", carts[1].Name)
}

func TestListUserCart_OnlyOwnLines(t *testing.T) {
	uc, store := newCartFixture()
	product := store.addProduct("pen", 3, 100)
	other := store.addProduct("mug", 100, 10)

	seedCartLine(store, 1, product.ID, 2, 6)
	seedCartLine(store, 2, other.ID, 1, 100)

	cart, err := uc.ListUserCart(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, cart, 1)
	assert.Equal(t, "pen", cart[0].Name)
	assert.Equal(t, int64(2), cart[0].Quantity)
	assert.Equal(t, int64(6), cart[0].Price)
}

func TestListUserCart_EmptyCart(t *testing.T) {
	uc, _ := newCartFixture()

	cart, err := uc.ListUserCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, cart)
}
