package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/storefront-tech/go-backend/internal/domain"
	"github.com/storefront-tech/go-backend/pkg/e"
)

// memStore — общее in-memory состояние фейковых репозиториев.
// Фейковая транзакция снимает с него копию и откатывает к ней при Rollback.
type memStore struct {
	products  map[int64]*domain.Product
	accounts  map[int64]*domain.Account
	cartLines []*domain.CartLine
	orders    []*domain.Order
	outbox    []*OutboxEvent

	nextProductID int64
	nextAccountID int64
	nextLineID    int64
	nextOrderID   int64
	nextEventID   int64
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[int64]*domain.Product),
		accounts: make(map[int64]*domain.Account),
	}
}

func (s *memStore) addProduct(name string, price, quantity int64) *domain.Product {
	s.nextProductID++
	product := domain.NewProduct(name, price, quantity, "misc", "")
	product.ID = s.nextProductID
	s.products[product.ID] = product
	return product
}

func (s *memStore) addAccount(username string, funds int64) *domain.Account {
	s.nextAccountID++
	account := domain.NewAccount(username, username+"@example.com", funds, "customer")
	account.ID = s.nextAccountID
	s.accounts[account.ID] = account
	return account
}

func (s *memStore) snapshot() *memStore {
	cp := &memStore{
		products:      make(map[int64]*domain.Product, len(s.products)),
		accounts:      make(map[int64]*domain.Account, len(s.accounts)),
		nextProductID: s.nextProductID,
		nextAccountID: s.nextAccountID,
		nextLineID:    s.nextLineID,
		nextOrderID:   s.nextOrderID,
		nextEventID:   s.nextEventID,
	}
	for id, p := range s.products {
		c := *p
		cp.products[id] = &c
	}
	for id, a := range s.accounts {
		c := *a
		cp.accounts[id] = &c
	}
	for _, l := range s.cartLines {
		c := *l
		cp.cartLines = append(cp.cartLines, &c)
	}
	for _, o := range s.orders {
		c := *o
		cp.orders = append(cp.orders, &c)
	}
	for _, ev := range s.outbox {
		c := *ev
		cp.outbox = append(cp.outbox, &c)
	}
	return cp
}

func (s *memStore) restore(from *memStore) {
	*s = *from
}

// --- ProductRepository ---

type fakeProductRepo struct {
	store *memStore
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	f.store.nextProductID++
	c := *product
	c.ID = f.store.nextProductID
	f.store.products[c.ID] = &c
	res := c
	return &res, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	product, ok := f.store.products[id]
	if !ok || product.IsArchived {
		return nil, e.ErrProductNotFound
	}
	c := *product
	return &c, nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]domain.Product, error) {
	result := make([]domain.Product, 0, len(f.store.products))
	for id := int64(1); id <= f.store.nextProductID; id++ {
		if product, ok := f.store.products[id]; ok && !product.IsArchived {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) GetProductsInfo(_ context.Context, ids []int64) ([]ProductInfo, error) {
	result := make([]ProductInfo, 0, len(ids))
	for _, id := range ids {
		if product, ok := f.store.products[id]; ok && !product.IsArchived {
			result = append(result, NewProductInfo(product.ID, product.Name, product.Category, product.Price, product.Quantity))
		}
	}
	return result, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if _, ok := f.store.products[product.ID]; !ok {
		return nil, e.ErrProductNotFound
	}
	c := *product
	f.store.products[c.ID] = &c
	res := c
	return &res, nil
}

func (f *fakeProductRepo) AdjustStock(_ context.Context, id int64, delta int64) (*domain.Product, error) {
	product, ok := f.store.products[id]
	if !ok || product.IsArchived {
		return nil, e.ErrProductNotFound
	}
	if product.Quantity+delta < 0 {
		return nil, e.ErrInsufficientStock
	}
	product.Quantity += delta
	c := *product
	return &c, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	product, ok := f.store.products[id]
	if !ok || product.IsArchived {
		return e.ErrProductNotFound
	}
	product.IsArchived = true
	return nil
}

// --- AccountRepository ---

type fakeAccountRepo struct {
	store *memStore
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	account, ok := f.store.accounts[id]
	if !ok {
		return nil, e.ErrAccountNotFound
	}
	c := *account
	return &c, nil
}

func (f *fakeAccountRepo) List(_ context.Context) ([]domain.Account, error) {
	result := make([]domain.Account, 0, len(f.store.accounts))
	for id := int64(1); id <= f.store.nextAccountID; id++ {
		if account, ok := f.store.accounts[id]; ok {
			result = append(result, *account)
		}
	}
	return result, nil
}

func (f *fakeAccountRepo) UpdateProfile(_ context.Context, account *domain.Account) (*domain.Account, error) {
	stored, ok := f.store.accounts[account.ID]
	if !ok {
		return nil, e.ErrAccountNotFound
	}
	stored.Username = account.Username
	stored.Email = account.Email
	c := *stored
	return &c, nil
}

func (f *fakeAccountRepo) AdjustFunds(_ context.Context, id int64, delta int64) (*domain.Account, error) {
	account, ok := f.store.accounts[id]
	if !ok {
		return nil, e.ErrAccountNotFound
	}
	if account.Funds+delta < 0 {
		return nil, e.ErrInsufficientFunds
	}
	account.Funds += delta
	c := *account
	return &c, nil
}

func (f *fakeAccountRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.store.accounts[id]; !ok {
		return e.ErrAccountNotFound
	}
	delete(f.store.accounts, id)
	return nil
}

// --- CartRepository ---

type fakeCartRepo struct {
	store *memStore
}

func (f *fakeCartRepo) ListAll(_ context.Context) ([]domain.CartLine, error) {
	result := make([]domain.CartLine, 0, len(f.store.cartLines))
	for _, line := range f.store.cartLines {
		result = append(result, *line)
	}
	return result, nil
}

func (f *fakeCartRepo) ListByUser(_ context.Context, userID int64) ([]domain.CartLine, error) {
	var result []domain.CartLine
	for _, line := range f.store.cartLines {
		if line.UserID == userID {
			result = append(result, *line)
		}
	}
	return result, nil
}

func (f *fakeCartRepo) GetLine(_ context.Context, userID int64, productID int64) (*domain.CartLine, error) {
	for _, line := range f.store.cartLines {
		if line.UserID == userID && line.ProductID == productID {
			c := *line
			return &c, nil
		}
	}
	return nil, e.ErrCartLineNotFound
}

func (f *fakeCartRepo) Create(_ context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	f.store.nextLineID++
	c := *line
	c.ID = f.store.nextLineID
	f.store.cartLines = append(f.store.cartLines, &c)
	res := c
	return &res, nil
}

func (f *fakeCartRepo) Update(_ context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	for i, stored := range f.store.cartLines {
		if stored.ID == line.ID {
			c := *line
			f.store.cartLines[i] = &c
			res := c
			return &res, nil
		}
	}
	return nil, e.ErrCartLineNotFound
}

func (f *fakeCartRepo) DeleteLine(_ context.Context, id int64) error {
	for i, stored := range f.store.cartLines {
		if stored.ID == id {
			f.store.cartLines = append(f.store.cartLines[:i], f.store.cartLines[i+1:]...)
			return nil
		}
	}
	return e.ErrCartLineNotFound
}

func (f *fakeCartRepo) DeleteByUser(_ context.Context, userID int64) error {
	kept := f.store.cartLines[:0]
	for _, line := range f.store.cartLines {
		if line.UserID != userID {
			kept = append(kept, line)
		}
	}
	f.store.cartLines = kept
	return nil
}

// --- OrderRepository ---

type fakeOrderRepo struct {
	store      *memStore
	failCreate error
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	f.store.nextOrderID++
	c := *order
	c.ID = f.store.nextOrderID
	f.store.orders = append(f.store.orders, &c)
	res := c
	return &res, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	for _, order := range f.store.orders {
		if order.ID == id {
			c := *order
			return &c, nil
		}
	}
	return nil, e.ErrOrderNotFound
}

func (f *fakeOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	result := make([]domain.Order, 0, len(f.store.orders))
	for _, order := range f.store.orders {
		result = append(result, *order)
	}
	return result, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	var result []domain.Order
	for _, order := range f.store.orders {
		if order.UserID == userID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id int64) error {
	for i, order := range f.store.orders {
		if order.ID == id {
			f.store.orders = append(f.store.orders[:i], f.store.orders[i+1:]...)
			return nil
		}
	}
	return e.ErrOrderNotFound
}

// --- OutboxRepository ---

type fakeOutboxRepo struct {
	store      *memStore
	failCreate error
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	f.store.nextEventID++
	c := *event
	c.ID = f.store.nextEventID
	f.store.outbox = append(f.store.outbox, &c)
	res := c
	return &res, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*OutboxEvent, error) {
	var result []*OutboxEvent
	for _, event := range f.store.outbox {
		if event.Status != Pending {
			continue
		}
		event.Status = Processing
		c := *event
		result = append(result, &c)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	for _, event := range f.store.outbox {
		if event.ID == id && event.Status == Processing {
			event.Status = Processed
		}
	}
	return nil
}

// --- CacheRepository ---

// fakeCacheRepo защищен мьютексом: SetProducts вызывается из фоновой горутины.
type fakeCacheRepo struct {
	mu         sync.Mutex
	cached     map[int64]ProductInfo
	deletedIDs []int64
	failGet    error
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{cached: make(map[int64]ProductInfo)}
}

func (f *fakeCacheRepo) GetProducts(_ context.Context, ids []int64) (map[int64]ProductInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return nil, f.failGet
	}
	result := make(map[int64]ProductInfo)
	for _, id := range ids {
		if info, ok := f.cached[id]; ok {
			result[id] = info
		}
	}
	return result, nil
}

func (f *fakeCacheRepo) SetProducts(_ context.Context, products []ProductInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, info := range products {
		f.cached[info.ID] = info
	}
	return nil
}

func (f *fakeCacheRepo) DeleteProducts(_ context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.cached, id)
		f.deletedIDs = append(f.deletedIDs, id)
	}
	return nil
}

func (f *fakeCacheRepo) deleted() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.deletedIDs...)
}

func (f *fakeCacheRepo) put(info ProductInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cached[info.ID] = info
}

// --- ImagesInfra ---

type fakeImagesInfra struct {
	uploadErr   error
	uploaded    []string
	cleanedKeys []string
}

func (f *fakeImagesInfra) UploadImages(_ context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	keys := make([]string, 0, len(req.Images))
	for i := range req.Images {
		keys = append(keys, fmt.Sprintf("%s/key-%d", req.Name, i))
	}
	f.uploaded = append(f.uploaded, keys...)
	return NewUploadImagesRes(keys), nil
}

func (f *fakeImagesInfra) CleanupImages(keys []string) {
	f.cleanedKeys = append(f.cleanedKeys, keys...)
}

// --- TxManager ---

// fakeTx откатывает общее состояние к снимку, сделанному в Begin.
type fakeTx struct {
	store      *memStore
	saved      *memStore
	active     bool
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.active = false
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if t.active {
		t.store.restore(t.saved)
	}
	t.active = false
	t.rolledBack = true
	return nil
}

func (t *fakeTx) IsActive() bool {
	return t.active
}

type fakeTxManager struct {
	store  *memStore
	lastTx *fakeTx
}

func (m *fakeTxManager) Begin(ctx context.Context) (context.Context, Tx, error) {
	tx := &fakeTx{store: m.store, saved: m.store.snapshot(), active: true}
	m.lastTx = tx
	return ctx, tx, nil
}

// --- Logger ---

type testLogger struct{}

func (testLogger) Debugf(string, ...interface{})        {}
func (testLogger) Infof(string, ...interface{})         {}
func (testLogger) Warnf(string, ...interface{})         {}
func (testLogger) Errorf(error, string, ...interface{}) {}
