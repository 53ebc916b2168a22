package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/storefront-tech/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	uc     *ProductUseCase
	store  *memStore
	images *fakeImagesInfra
	cache  *fakeCacheRepo
}

func newProductFixture() *productFixture {
	store := newMemStore()
	images := &fakeImagesInfra{}
	cache := newFakeCacheRepo()
	uc := NewProductUC(&fakeProductRepo{store: store}, images, cache, testLogger{})
	return &productFixture{uc: uc, store: store, images: images, cache: cache}
}

func TestRegisterNewProduct(t *testing.T) {
	f := newProductFixture()

	product, err := f.uc.RegisterNewProduct(context.Background(),
		NewAddNewProductReq("keyboard", "peripherals", "механическая", 450000, 25, nil))
	require.NoError(t, err)

	assert.NotZero(t, product.ID)
	assert.Equal(t, "keyboard", product.Name)
	assert.Equal(t, int64(450000), product.Price)
	assert.Equal(t, int64(25), product.Quantity)
	assert.False(t, product.IsArchived)
}

func TestRegisterNewProduct_WithImages(t *testing.T) {
	f := newProductFixture()
	images := []ProductImage{
		*NewProductImage([]byte("fake-jpeg"), "image/jpeg", 9, "front.jpg"),
		*NewProductImage([]byte("fake-png"), "image/png", 8, "back.png"),
	}

	product, err := f.uc.RegisterNewProduct(context.Background(),
		NewAddNewProductReq("keyboard", "peripherals", "", 450000, 25, images))
	require.NoError(t, err)

	assert.Len(t, product.ImageKeys, 2)
	assert.Equal(t, product.ImageKeys, f.images.uploaded)
}

func TestRegisterNewProduct_Validation(t *testing.T) {
	f := newProductFixture()

	cases := []struct {
		name    string
		req     *AddNewProductReq
		wantErr error
	}{
		{"empty name", NewAddNewProductReq("  ", "misc", "", 100, 1, nil), e.ErrProductNameRequired},
		{"zero price", NewAddNewProductReq("pen", "misc", "", 0, 1, nil), e.ErrPriceMustBePositive},
		{"negative price", NewAddNewProductReq("pen", "misc", "", -5, 1, nil), e.ErrPriceMustBePositive},
		{"negative quantity", NewAddNewProductReq("pen", "misc", "", 100, -1, nil), e.ErrQuantityNegative},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.RegisterNewProduct(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	assert.Empty(t, f.store.products)
}

func TestRegisterNewProduct_UploadFailure(t *testing.T) {
	f := newProductFixture()
	f.images.uploadErr = errors.New("minio unavailable")
	images := []ProductImage{*NewProductImage([]byte("x"), "image/jpeg", 1, "a.jpg")}

	_, err := f.uc.RegisterNewProduct(context.Background(),
		NewAddNewProductReq("keyboard", "peripherals", "", 450000, 25, images))
	require.Error(t, err)
	assert.Empty(t, f.store.products)
}

func TestGetProductsInfo_CacheMissGoesToDB(t *testing.T) {
	f := newProductFixture()
	pen := f.store.addProduct("pen", 3, 100)
	mug := f.store.addProduct("mug", 100, 10)

	res, err := f.uc.GetProductsInfo(context.Background(), NewGetProductsReq([]int64{pen.ID, mug.ID}))
	require.NoError(t, err)

	require.Len(t, res.Products, 2)
	assert.Equal(t, "pen", res.Products[0].Name)
	assert.Equal(t, "mug", res.Products[1].Name)
	assert.Empty(t, res.NotFoundProducts)
}

func TestGetProductsInfo_ServedFromCache(t *testing.T) {
	f := newProductFixture()
	f.cache.put(NewProductInfo(7, "cached-pen", "misc", 3, 100))

	// Товара нет в БД, но есть в кэше
	res, err := f.uc.GetProductsInfo(context.Background(), NewGetProductsReq([]int64{7}))
	require.NoError(t, err)

	require.Len(t, res.Products, 1)
	assert.Equal(t, "cached-pen", res.Products[0].Name)
}

func TestGetProductsInfo_CacheFailureFallsBack(t *testing.T) {
	f := newProductFixture()
	pen := f.store.addProduct("pen", 3, 100)
	f.cache.failGet = errors.New("redis down")

	res, err := f.uc.GetProductsInfo(context.Background(), NewGetProductsReq([]int64{pen.ID}))
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "pen", res.Products[0].Name)
}

func TestGetProductsInfo_ReportsMissing(t *testing.T) {
	f := newProductFixture()
	pen := f.store.addProduct("pen", 3, 100)

	res, err := f.uc.GetProductsInfo(context.Background(), NewGetProductsReq([]int64{pen.ID, 999}))
	require.NoError(t, err)

	require.Len(t, res.Products, 1)
	assert.Equal(t, []int64{999}, res.NotFoundProducts)
}

func TestGetProductsInfo_EmptyIDs(t *testing.T) {
	f := newProductFixture()

	_, err := f.uc.GetProductsInfo(context.Background(), NewGetProductsReq(nil))
	assert.ErrorIs(t, err, e.ErrMissingFields)
}

func TestUpdateProduct_InvalidatesCache(t *testing.T) {
	f := newProductFixture()
	pen := f.store.addProduct("pen", 3, 100)

	updated, err := f.uc.UpdateProduct(context.Background(), &UpdateProductReq{
		ID:       pen.ID,
		Name:     "gel pen",
		Category: "office",
		Price:    5,
		Quantity: 90,
	})
	require.NoError(t, err)

	assert.Equal(t, "gel pen", updated.Name)
	assert.Equal(t, int64(5), updated.Price)

	assert.Equal(t, []int64{pen.ID}, f.cache.deleted())
}

func TestDeleteProduct_ArchivesAndHidesProduct(t *testing.T) {
	f := newProductFixture()
	pen := f.store.addProduct("pen", 3, 100)

	require.NoError(t, f.uc.DeleteProduct(context.Background(), pen.ID))

	_, err := f.uc.GetProduct(context.Background(), pen.ID)
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	err = f.uc.DeleteProduct(context.Background(), pen.ID)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}
