package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/storefront-tech/go-backend/internal/domain"
	"github.com/storefront-tech/go-backend/internal/repository/pgdb/converter"
	"github.com/storefront-tech/go-backend/pkg/e"
)

// AccountRepo реализует репозиторий учетных записей поверх PostgreSQL.
type AccountRepo struct {
	pool *pgxpool.Pool
	conv converter.AccountConverter
}

func NewAccountRepo(pool *pgxpool.Pool, conv converter.AccountConverter) *AccountRepo {
	return &AccountRepo{
		pool: pool,
		conv: conv,
	}
}

const accountColumns = `id, username, email, funds, role, created_at, updated_at`

func (a *AccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1;
	`

	var model converter.AccountModel
	err := db(ctx, a.pool).QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Username, &model.Email, &model.Funds,
		&model.Role, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrAccountNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a.conv.ToEntity(&model), nil
}

func (a *AccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY id;
	`

	rows, err := db(ctx, a.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.AccountModel, 0)
	for rows.Next() {
		var model converter.AccountModel
		if err := rows.Scan(
			&model.ID, &model.Username, &model.Email, &model.Funds,
			&model.Role, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a.conv.ToArrEntity(models), nil
}

// UpdateProfile изменяет только профильные поля, баланс остается нетронутым.
func (a *AccountRepo) UpdateProfile(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET username = $2, email = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + accountColumns + `;
	`

	var model converter.AccountModel
	err := db(ctx, a.pool).QueryRow(ctx, query, account.ID, account.Username, account.Email).Scan(
		&model.ID, &model.Username, &model.Email, &model.Funds,
		&model.Role, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrAccountNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a.conv.ToEntity(&model), nil
}

// AdjustFunds атомарно меняет баланс. Условие funds + delta >= 0 не дает
// балансу уйти в минус: конкурентное списание проявляется здесь как
// ErrInsufficientFunds, а не как отрицательный баланс.
func (a *AccountRepo) AdjustFunds(ctx context.Context, id int64, delta int64) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET funds = funds + $2, updated_at = NOW()
		WHERE id = $1 AND funds + $2 >= 0
		RETURNING ` + accountColumns + `;
	`

	var model converter.AccountModel
	err := db(ctx, a.pool).QueryRow(ctx, query, id, delta).Scan(
		&model.ID, &model.Username, &model.Email, &model.Funds,
		&model.Role, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrInsufficientFunds
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a.conv.ToEntity(&model), nil
}

func (a *AccountRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM accounts WHERE id = $1;`

	tag, err := db(ctx, a.pool).Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.ErrAccountNotFound
	}

	return nil
}
