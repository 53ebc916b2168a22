package http

import (
	"net/http"

	"github.com/storefront-tech/go-backend/internal/usecase"
	"github.com/storefront-tech/go-backend/pkg/e"
	"github.com/storefront-tech/go-backend/pkg/logger"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

// purchase
//
//	@Summary		Оформить заказ из корзины
//	@Description	Атомарно списывает средства, уменьшает остатки, создаёт заказ и очищает корзину
//	@Tags			orders
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	domain.Order
//	@Failure		400	{object}	ErrorResponse	"Корзина пуста"
//	@Failure		402	{object}	ErrorResponse	"Недостаточно средств"
//	@Failure		409	{object}	ErrorResponse	"Недостаточно товара на складе"
//	@Router			/orders/purchase [post]
func (h *OrderHandler) purchase(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	order, err := h.orderUsecase.Purchase(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Warnf("purchase failed for user %d: %s", identity.UserID, err.Error())
		WriteError(w, err)
		return
	}

	h.logger.Infof("order %s created for user %d, total %d", order.OrderUID, identity.UserID, order.Total)
	WriteSuccess(w, http.StatusCreated, order)
}

// listAllOrders
//
//	@Summary		Список всех заказов
//	@Tags			orders
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		domain.Order
//	@Failure		403	{object}	ErrorResponse
//	@Router			/orders [get]
func (h *OrderHandler) listAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUsecase.ListAllOrders(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, orders)
}

// listMyOrders
//
//	@Summary		Заказы текущего пользователя
//	@Tags			orders
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}	domain.Order
//	@Router			/orders/my [get]
func (h *OrderHandler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	orders, err := h.orderUsecase.ListUserOrders(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, orders)
}

// getOrder
//
//	@Summary		Заказ по идентификатору
//	@Tags			orders
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"ID заказа"
//	@Success		200	{object}	domain.Order
//	@Failure		404	{object}	ErrorResponse
//	@Router			/orders/{id} [get]
func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	order, err := h.orderUsecase.GetOrder(r.Context(), id)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	// Чужой заказ может смотреть только администратор
	if order.UserID != identity.UserID && identity.Role != adminRole {
		WriteError(w, e.ErrForbidden)
		return
	}

	WriteSuccess(w, http.StatusOK, order)
}

// deleteOrder
//
//	@Summary		Удалить заказ
//	@Tags			orders
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	int	true	"ID заказа"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Router			/orders/{id} [delete]
func (h *OrderHandler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.orderUsecase.DeleteOrder(r.Context(), id); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
