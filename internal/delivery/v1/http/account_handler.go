package http

import (
	"encoding/json"
	"net/http"

	"github.com/storefront-tech/go-backend/internal/usecase"
	"github.com/storefront-tech/go-backend/pkg/e"
	"github.com/storefront-tech/go-backend/pkg/logger"
)

type AccountHandler struct {
	accountUsecase usecase.AccountUC
	logger         logger.Logger
}

func NewAccountHandler(accountUsecase usecase.AccountUC, logger logger.Logger) *AccountHandler {
	return &AccountHandler{accountUsecase: accountUsecase, logger: logger}
}

type updateProfileBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// getMyAccount
//
//	@Summary		Профиль текущего пользователя
//	@Tags			accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	domain.Account
//	@Failure		401	{object}	ErrorResponse
//	@Router			/accounts/me [get]
func (h *AccountHandler) getMyAccount(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	account, err := h.accountUsecase.GetAccount(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, account)
}

// listAccounts
//
//	@Summary		Список аккаунтов
//	@Tags			accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		domain.Account
//	@Failure		403	{object}	ErrorResponse
//	@Router			/accounts [get]
func (h *AccountHandler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountUsecase.ListAccounts(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, accounts)
}

// getAccount
//
//	@Summary		Аккаунт по идентификатору
//	@Tags			accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"ID аккаунта"
//	@Success		200	{object}	domain.Account
//	@Failure		404	{object}	ErrorResponse
//	@Router			/accounts/{id} [get]
func (h *AccountHandler) getAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	account, err := h.accountUsecase.GetAccount(r.Context(), id)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, account)
}

// updateMyProfile
//
//	@Summary		Изменить профиль текущего пользователя
//	@Tags			accounts
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		updateProfileBody	true	"Новые значения"
//	@Success		200		{object}	domain.Account
//	@Failure		400		{object}	ErrorResponse
//	@Router			/accounts/me [put]
func (h *AccountHandler) updateMyProfile(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var body updateProfileBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	account, err := h.accountUsecase.UpdateProfile(r.Context(), &usecase.UpdateProfileReq{
		ID:       identity.UserID,
		Username: body.Username,
		Email:    body.Email,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, account)
}

// deleteAccount
//
//	@Summary		Удалить аккаунт
//	@Tags			accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	int	true	"ID аккаунта"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Router			/accounts/{id} [delete]
func (h *AccountHandler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.accountUsecase.DeleteAccount(r.Context(), id); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
