package http

import (
	"net/http"

	"github.com/storefront-tech/go-backend/internal/usecase"
	"github.com/storefront-tech/go-backend/pkg/logger"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

// listAllCarts
//
//	@Summary		Содержимое корзин всех пользователей
//	@Description	Агрегированные позиции корзин по всем пользователям
//	@Tags			carts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		usecase.CartObject
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Router			/carts [get]
func (h *CartHandler) listAllCarts(w http.ResponseWriter, r *http.Request) {
	carts, err := h.cartUsecase.ListAllCarts(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, carts)
}

// listMyCart
//
//	@Summary		Корзина текущего пользователя
//	@Description	Агрегированные позиции корзины с количеством и суммарной ценой
//	@Tags			carts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		usecase.CartObject
//	@Failure		401	{object}	ErrorResponse
//	@Router			/carts/my [get]
func (h *CartHandler) listMyCart(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	cart, err := h.cartUsecase.ListUserCart(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, cart)
}

// addToCart
//
//	@Summary		Добавить единицу товара в корзину
//	@Description	Увеличивает количество позиции на 1 по цене товара на момент добавления
//	@Tags			carts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			productID	path		int	true	"ID товара"
//	@Success		200			{object}	domain.CartLine
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse	"Товар не найден"
//	@Router			/carts/items/{productID} [post]
func (h *CartHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	productID, err := parseIDParam(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	line, err := h.cartUsecase.AddToCart(r.Context(), identity.UserID, productID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, line)
}

// removeFromCart
//
//	@Summary		Убрать единицу товара из корзины
//	@Description	Уменьшает количество позиции на 1; при нуле позиция удаляется
//	@Tags			carts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			productID	path		int	true	"ID товара"
//	@Success		200			{object}	domain.CartLine
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse	"Позиция не найдена"
//	@Router			/carts/items/{productID} [delete]
func (h *CartHandler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	productID, err := parseIDParam(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	line, err := h.cartUsecase.RemoveFromCart(r.Context(), identity.UserID, productID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, line)
}
