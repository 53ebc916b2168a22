package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/storefront-tech/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	uc        *OrderUseCase
	store     *memStore
	orderRepo *fakeOrderRepo
	outbox    *fakeOutboxRepo
	cache     *fakeCacheRepo
	txManager *fakeTxManager
}

func newOrderFixture() *orderFixture {
	store := newMemStore()
	orderRepo := &fakeOrderRepo{store: store}
	outbox := &fakeOutboxRepo{store: store}
	cache := newFakeCacheRepo()
	txManager := &fakeTxManager{store: store}

	uc := NewOrderUC(
		orderRepo,
		&fakeCartRepo{store: store},
		&fakeProductRepo{store: store},
		&fakeAccountRepo{store: store},
		outbox,
		cache,
		txManager,
		testLogger{},
	)

	return &orderFixture{uc: uc, store: store, orderRepo: orderRepo, outbox: outbox, cache: cache, txManager: txManager}
}

func TestPurchase_Success(t *testing.T) {
	f := newOrderFixture()
	account := f.store.addAccount("buyer", 123456)
	product := f.store.addProduct("pen", 3, 200)
	seedCartLine(f.store, account.ID, product.ID, 140, 420)

	order, err := f.uc.Purchase(context.Background(), account.ID)
	require.NoError(t, err)

	// Средства списаны, остаток уменьшен, корзина очищена
	assert.Equal(t, int64(123036), f.store.accounts[account.ID].Funds)
	assert.Equal(t, int64(60), f.store.products[product.ID].Quantity)
	assert.Empty(t, f.store.cartLines)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "pen", order.Items[0].Name)
	assert.Equal(t, int64(140), order.Items[0].Quantity)
	assert.Equal(t, int64(420), order.Total)
	assert.NotEmpty(t, order.OrderUID)

	assert.True(t, f.txManager.lastTx.committed)
}

func TestPurchase_EmptyCart(t *testing.T) {
	f := newOrderFixture()
	account := f.store.addAccount("buyer", 1000)

	_, err := f.uc.Purchase(context.Background(), account.ID)
	assert.ErrorIs(t, err, e.ErrEmptyCart)

	assert.Equal(t, int64(1000), f.store.accounts[account.ID].Funds)
	assert.Empty(t, f.store.orders)
}

func TestPurchase_InsufficientFunds(t *testing.T) {
	f := newOrderFixture()
	account := f.store.addAccount("buyer", 100)
	product := f.store.addProduct("pen", 3, 100)
	seedCartLine(f.store, account.ID, product.ID, 50, 150)

	_, err := f.uc.Purchase(context.Background(), account.ID)
	assert.ErrorIs(t, err, e.ErrInsufficientFunds)

	// Ничего не изменилось
	assert.Equal(t, int64(100), f.store.accounts[account.ID].Funds)
	assert.Equal(t, int64(100), f.store.products[product.ID].Quantity)
	assert.Len(t, f.store.cartLines, 1)
	assert.Empty(t, f.store.orders)
}

func TestPurchase_InsufficientStock(t *testing.T) {
	f := newOrderFixture()
	account := f.store.addAccount("buyer", 100000)
	product := f.store.addProduct("pen", 3, 5)
	seedCartLine(f.store, account.ID, product.ID, 7, 21)

	_, err := f.uc.Purchase(context.Background(), account.ID)
	assert.ErrorIs(t, err, e.ErrInsufficientStock)

	assert.Equal(t, int64(100000), f.store.accounts[account.ID].Funds)
	assert.Equal(t, int64(5), f.store.products[product.ID].Quantity)
	assert.Len(t, f.store.cartLines, 1)
}

func TestPurchase_FundsCheckedBeforeStock(t *testing.T) {
	// Денег не хватает И товара не хватает: приоритет у проверки баланса
	f := newOrderFixture()
	account := f.store.addAccount("buyer", 10)
	product := f.store.addProduct("pen", 3, 1)
	seedCartLine(f.store, account.ID, product.ID, 7, 21)

	_, err := f.uc.Purchase(context.Background(), account.ID)
	assert.ErrorIs(t, err, e.ErrInsufficientFunds)
}

func TestPurchase_UnknownAccount(t *testing.T) {
	f := newOrderFixture()
	product := f.store.addProduct("pen", 3, 100)
	seedCartLine(f.store, 42, product.ID, 1, 3)

	_, err := f.uc.Purchase(context.Background(), 42)
	assert.ErrorIs(t, err, e.ErrAccountNotFound)
	assert.Len(t, f.store.cartLines, 1)
}

func TestPurchase_RollbackOnLateFailure(t *testing.T) {
	f := newOrderFixture()
	account := f.store.addAccount("buyer", 1000)
	product := f.store.addProduct("pen", 3, 100)
	seedCartLine(f.store, account.ID, product.ID, 2, 6)

	// Ошибка в конце транзакции: все промежуточные записи должны откатиться
	f.outbox.failCreate = errors.New("outbox insert failed")

	_, err := f.uc.Purchase(context.Background(), account.ID)
	require.Error(t, err)

	assert.True(t, f.txManager.lastTx.rolledBack)
	assert.Equal(t, int64(1000), f.store.accounts[account.ID].Funds)
	assert.Equal(t, int64(100), f.store.products[product.ID].Quantity)
	assert.Len(t, f.store.cartLines, 1)
	assert.Empty(t, f.store.orders)
	assert.Empty(t, f.store.outbox)
}

func TestPurchase_WritesOutboxEvent(t *testing.T) {
	f := newOrderFixture()
	account := f.store.addAccount("buyer", 1000)
	product := f.store.addProduct("pen", 3, 100)
	seedCartLine(f.store, account.ID, product.ID, 2, 6)

	order, err := f.uc.Purchase(context.Background(), account.ID)
	require.NoError(t, err)

	require.Len(t, f.store.outbox, 1)
	event := f.store.outbox[0]
	assert.Equal(t, OrderCreatedEvent, event.EventType)
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, Pending, event.Status)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, order.OrderUID, payload["order_uid"])
}

func TestPurchase_InvalidatesProductCache(t *testing.T) {
	f := newOrderFixture()
	account := f.store.addAccount("buyer", 1000)
	product := f.store.addProduct("pen", 3, 100)
	seedCartLine(f.store, account.ID, product.ID, 2, 6)

	_, err := f.uc.Purchase(context.Background(), account.ID)
	require.NoError(t, err)

	assert.Equal(t, []int64{product.ID}, f.cache.deleted())
}

func TestPurchase_MultiLineOrder(t *testing.T) {
	f := newOrderFixture()
	account := f.store.addAccount("buyer", 123456)
	pen := f.store.addProduct("pen", 3, 200)
	mug := f.store.addProduct("mug", 100, 10)
	seedCartLine(f.store, account.ID, pen.ID, 140, 420)
	seedCartLine(f.store, account.ID, mug.ID, 2, 200)

	order, err := f.uc.Purchase(context.Background(), account.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(620), order.Total)
	assert.Equal(t, int64(123456-620), f.store.accounts[account.ID].Funds)
	assert.Equal(t, int64(60), f.store.products[pen.ID].Quantity)
	assert.Equal(t, int64(8), f.store.products[mug.ID].Quantity)
	require.Len(t, order.Items, 2)
}

func TestDeleteOrder(t *testing.T) {
	f := newOrderFixture()
	account := f.store.addAccount("buyer", 1000)
	product := f.store.addProduct("pen", 3, 100)
	seedCartLine(f.store, account.ID, product.ID, 1, 3)

	order, err := f.uc.Purchase(context.Background(), account.ID)
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteOrder(context.Background(), order.ID))
	assert.Empty(t, f.store.orders)

	err = f.uc.DeleteOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}
