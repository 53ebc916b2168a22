package http

import (
	"net/http"
	"testing"

	"github.com/storefront-tech/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"599.99", 59999},
		{"600", 60000},
		{"0.5", 50},
		{"0.01", 1},
		{"1000000000", 100_000_000_000},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parsePriceToCents(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParsePriceToCents_Rejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"invalid format", "abc", e.ErrInvalidPrice},
		{"negative", "-1", e.ErrInvalidPrice},
		{"too precise", "1.999", e.ErrPricePrecision},
		{"over limit", "1000000001", e.ErrInvalidPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parsePriceToCents(tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := parsePriceToCents("   ")
	assert.Error(t, err)
}

func TestToHTTPResponse(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{e.ErrProductNotFound, http.StatusNotFound},
		{e.ErrCartLineNotFound, http.StatusNotFound},
		{e.ErrEmptyCart, http.StatusBadRequest},
		{e.ErrInsufficientFunds, http.StatusPaymentRequired},
		{e.ErrInsufficientStock, http.StatusConflict},
		{e.ErrUnauthorized, http.StatusUnauthorized},
		{e.ErrForbidden, http.StatusForbidden},
		{e.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{e.Wrap("OrderUseCase.Purchase", e.ErrInsufficientFunds), http.StatusPaymentRequired},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		code, msg := ToHTTPResponse(tc.err)
		assert.Equal(t, tc.code, code, "for error %v", tc.err)
		assert.NotEmpty(t, msg)
	}

	// Внутренняя ошибка не протекает наружу текстом
	_, msg := ToHTTPResponse(assert.AnError)
	assert.Equal(t, e.ErrInternalServerError.Error(), msg)
}
