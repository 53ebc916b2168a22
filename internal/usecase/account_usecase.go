package usecase

import (
	"context"
	"strings"

	"github.com/storefront-tech/go-backend/internal/domain"
	"github.com/storefront-tech/go-backend/pkg/e"
	"github.com/storefront-tech/go-backend/pkg/logger"
)

// AccountUseCase реализует операции над учетными записями.
// Баланс здесь не мутируется, им распоряжается только OrderUseCase.
type AccountUseCase struct {
	accountRepo AccountRepository
	logger      logger.Logger
}

func NewAccountUC(accountRepo AccountRepository, logger logger.Logger) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

func (a *AccountUseCase) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	const op = "AccountUseCase.GetAccount"

	account, err := a.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return account, nil
}

func (a *AccountUseCase) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	const op = "AccountUseCase.ListAccounts"

	accounts, err := a.accountRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return accounts, nil
}

// UpdateProfile изменяет только профильные поля учетной записи.
func (a *AccountUseCase) UpdateProfile(ctx context.Context, req *UpdateProfileReq) (*domain.Account, error) {
	const op = "AccountUseCase.UpdateProfile"

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	account, err := a.accountRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	account.Username = req.Username
	account.Email = req.Email

	updated, err := a.accountRepo.UpdateProfile(ctx, account)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

func (a *AccountUseCase) DeleteAccount(ctx context.Context, id int64) error {
	const op = "AccountUseCase.DeleteAccount"

	if err := a.accountRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
