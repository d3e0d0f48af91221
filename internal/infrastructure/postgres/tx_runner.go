package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	db      *sql.DB
	timeout time.Duration
}

// NewTxRunner constrói o runner; timeout é o limite por comando dos repositórios da transação.
func NewTxRunner(db *sql.DB, timeout time.Duration) *TxRunner {
	return &TxRunner{db: db, timeout: timeout}
}

// Run inicia a transação, executa fn com repositórios atados a ela e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return normalize("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewRepos(tx, r.timeout)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return normalize("commit transaction", err)
	}
	return nil
}

// NewRepos monta o conjunto de repositórios sobre q (pool ou transação).
func NewRepos(q Querier, timeout time.Duration) repository.Repos {
	return repository.Repos{
		Units:         NewUnitRepository(q, timeout),
		Products:      NewProductRepository(q, timeout),
		Movements:     NewStockMovementRepository(q, timeout),
		Suppliers:     NewSupplierRepository(q, timeout),
		Expenses:      NewExpenseRepository(q, timeout),
		Recurring:     NewRecurringExpenseRepository(q, timeout),
		Statements:    NewBankStatementRepository(q, timeout),
		CashRegisters: NewCashRegisterRepository(q, timeout),
		Orders:        NewOrderRepository(q, timeout),
		Professionals: NewProfessionalRepository(q, timeout),
		Queue:         NewQueueRepository(q, timeout),
	}
}
