package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/barberpro/barber-analytics-api/internal/application/analytics"
	"github.com/barberpro/barber-analytics-api/internal/application/auth"
	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/internal/application/usecase"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UnitUC         *usecase.UnitUseCase
	Modules        moduleChecker
	ProductUC      *usecase.ProductUseCase
	StockUC        *usecase.StockMovementUseCase
	SupplierUC     *usecase.SupplierUseCase
	ExpenseUC      *usecase.ExpenseUseCase
	RecurringUC    *usecase.RecurringExpenseUseCase
	StatementUC    *usecase.StatementUseCase
	CashRegisterUC *usecase.CashRegisterUseCase
	OrderUC        *usecase.OrderUseCase
	ProfessionalUC *usecase.ProfessionalUseCase
	QueueUC        *usecase.QueueUseCase
	GoalUC         *usecase.GoalUseCase
	AuditUC        *usecase.AuditUseCase
	DashboardUC    *analytics.DashboardUseCase
	Events         ports.EventStream // nil: /api/events responde 503
	JWTSecret      string
	Log            zerolog.Logger
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (register aceita token opcional: obrigatório a partir do segundo usuário da unidade)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", OptionalAuth(deps.JWTSecret), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Units (público: cadastro inicial da barbearia)
	unitHandler := NewUnitHandler(deps.UnitUC)
	units := api.Group("/units")
	units.Post("/", unitHandler.Create)
	units.Get("/", unitHandler.List)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	estoque := RequireModule(entity.ModuleEstoque, deps.Modules)
	financeiro := RequireModule(entity.ModuleFinanceiro, deps.Modules)
	atendimento := RequireModule(entity.ModuleAtendimento, deps.Modules)

	// Estoque
	productHandler := NewProductHandler(deps.ProductUC)
	protected.Get("/products-stats", estoque, productHandler.Stats)
	products := protected.Group("/products", estoque)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	stockHandler := NewStockMovementHandler(deps.StockUC)
	movements := protected.Group("/stock-movements", estoque)
	movements.Post("/", stockHandler.Register)
	movements.Get("/", stockHandler.List)
	movements.Get("/:id", stockHandler.GetByID)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/suppliers", estoque)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)
	suppliers.Post("/:id/files", supplierHandler.UploadFile)
	suppliers.Get("/:id/files", supplierHandler.ListFiles)
	protected.Delete("/supplier-files/:fileId", estoque, supplierHandler.DeleteFile)

	// Financeiro
	expenseHandler := NewExpenseHandler(deps.ExpenseUC, deps.RecurringUC)
	expenses := protected.Group("/expenses", financeiro)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Post("/:id/pay", expenseHandler.Pay)
	expenses.Delete("/:id", expenseHandler.Delete)

	recurring := protected.Group("/recurring-expenses", financeiro)
	recurring.Post("/generate", expenseHandler.GenerateRecurring)
	recurring.Post("/", expenseHandler.CreateRecurring)
	recurring.Get("/", expenseHandler.ListRecurring)
	recurring.Put("/:id", expenseHandler.UpdateRecurring)
	recurring.Delete("/:id", expenseHandler.DeactivateRecurring)

	statementHandler := NewStatementHandler(deps.StatementUC)
	statements := protected.Group("/statements", financeiro)
	statements.Post("/import", statementHandler.Import)
	statements.Post("/reconcile", statementHandler.Reconcile)
	statements.Get("/", statementHandler.List)
	statements.Post("/:id/ignore", statementHandler.Ignore)

	cashHandler := NewCashRegisterHandler(deps.CashRegisterUC)
	cash := protected.Group("/cash-registers", financeiro)
	cash.Post("/", cashHandler.Open)
	cash.Get("/", cashHandler.List)
	cash.Get("/current", cashHandler.Current)
	cash.Post("/movements", cashHandler.AddMovement)
	cash.Get("/:id", cashHandler.GetByID)
	cash.Post("/:id/close", cashHandler.Close)
	cash.Get("/:id/report", cashHandler.Report)

	goalHandler := NewGoalHandler(deps.GoalUC)
	goals := protected.Group("/goals", financeiro)
	goals.Post("/", goalHandler.Create)
	goals.Get("/", goalHandler.List)
	goals.Delete("/:id", goalHandler.Delete)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", financeiro, dashboardHandler.GetSummary)

	// Atendimento
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := protected.Group("/orders", atendimento)
	orders.Post("/", orderHandler.Open)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/items", orderHandler.AddItem)
	orders.Delete("/:id/items/:itemId", orderHandler.RemoveItem)
	orders.Post("/:id/close", orderHandler.Close)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	professionalHandler := NewProfessionalHandler(deps.ProfessionalUC, deps.QueueUC)
	professionals := protected.Group("/professionals", atendimento)
	professionals.Post("/", professionalHandler.Create)
	professionals.Get("/", professionalHandler.List)
	professionals.Get("/:id", professionalHandler.GetByID)
	professionals.Put("/:id", professionalHandler.Update)
	professionals.Delete("/:id", professionalHandler.Delete)

	queue := protected.Group("/queue", atendimento)
	queue.Get("/", professionalHandler.Queue)
	queue.Post("/next", professionalHandler.Next)
	queue.Post("/:professionalId/:action", professionalHandler.QueueAction)

	// Transversais
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit-logs", RequireRole(string(entity.RoleAdmin)), auditHandler.List)

	eventsHandler := NewEventsHandler(deps.Events, deps.Log)
	protected.Get("/events", eventsHandler.Stream)
}
