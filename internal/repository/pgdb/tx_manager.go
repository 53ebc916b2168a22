package pgdb

import (
	"context"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jimlawless/whereami"
	"github.com/storefront-tech/go-backend/internal/usecase"
	"github.com/storefront-tech/go-backend/pkg/e"
)

// TxManager открывает pgx-транзакции через avito transaction manager и
// кладет их в контекст, откуда репозитории достают их в tr.TxFromCtx.
type TxManager struct {
	pool transaction.Transactional
}

func NewTxManager(pool transaction.Transactional) *TxManager {
	return &TxManager{pool: pool}
}

func (m *TxManager) Begin(ctx context.Context) (context.Context, usecase.Tx, error) {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, m.pool)
	if err != nil {
		return ctx, nil, e.Wrap(whereami.WhereAmI(), err)
	}

	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	return ctx, tx, nil
}
