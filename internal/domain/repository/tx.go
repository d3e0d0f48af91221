package repository

import "context"

// Repos repositórios atados a uma mesma transação.
type Repos struct {
	Units         UnitRepository
	Products      ProductRepository
	Movements     StockMovementRepository
	Suppliers     SupplierRepository
	Expenses      ExpenseRepository
	Recurring     RecurringExpenseRepository
	Statements    BankStatementRepository
	CashRegisters CashRegisterRepository
	Orders        OrderRepository
	Professionals ProfessionalRepository
	Queue         QueueRepository
}

// TxRunner executa fn dentro de uma transação; erro em fn faz rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
