package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/barberpro/barber-analytics-api/internal/application/analytics"
	"github.com/barberpro/barber-analytics-api/internal/application/auth"
	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/internal/application/usecase"
	"github.com/barberpro/barber-analytics-api/internal/infrastructure/migration"
	infrapdf "github.com/barberpro/barber-analytics-api/internal/infrastructure/pdf"
	"github.com/barberpro/barber-analytics-api/internal/infrastructure/postgres"
	"github.com/barberpro/barber-analytics-api/internal/infrastructure/realtime"
	"github.com/barberpro/barber-analytics-api/internal/infrastructure/scheduler"
	"github.com/barberpro/barber-analytics-api/internal/infrastructure/statement"
	"github.com/barberpro/barber-analytics-api/internal/infrastructure/storage"
	httpRouter "github.com/barberpro/barber-analytics-api/internal/interfaces/http"
	"github.com/barberpro/barber-analytics-api/pkg/config"
	"github.com/barberpro/barber-analytics-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão a PostgreSQL")
	}
	defer pool.Close()
	db := postgres.OpenDB(pool)

	if cfg.DB.MigrateOnStart {
		m, err := migration.New(db, cfg.DB.MigrationsSource, log.Component("migrate"))
		if err != nil {
			log.Fatal().Err(err).Msg("preparar migrações")
		}
		if err := m.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migrações")
		}
	}

	timeout := cfg.DB.QueryTimeout
	unitRepo := postgres.NewUnitRepository(db, timeout)
	userRepo := postgres.NewUserRepository(db, timeout)
	productRepo := postgres.NewProductRepository(db, timeout)
	stockRepo := postgres.NewStockMovementRepository(db, timeout)
	supplierRepo := postgres.NewSupplierRepository(db, timeout)
	expenseRepo := postgres.NewExpenseRepository(db, timeout)
	recurringRepo := postgres.NewRecurringExpenseRepository(db, timeout)
	statementRepo := postgres.NewBankStatementRepository(db, timeout)
	cashRepo := postgres.NewCashRegisterRepository(db, timeout)
	orderRepo := postgres.NewOrderRepository(db, timeout)
	professionalRepo := postgres.NewProfessionalRepository(db, timeout)
	queueRepo := postgres.NewQueueRepository(db, timeout)
	goalRepo := postgres.NewGoalRepository(db, timeout)
	auditRepo := postgres.NewAuditRepository(db, timeout)
	analyticsRepo := postgres.NewAnalyticsRepository(db, timeout)
	txRunner := postgres.NewTxRunner(db, timeout)

	// Notificações: Redis Pub/Sub alimenta o SSE; sem Redis ficam só no log.
	var notifier ports.Notifier = realtime.LogNotifier{Log: log.Component("notify")}
	var events ports.EventStream
	if cfg.Redis.Enabled {
		rn, err := realtime.NewRedisNotifier(realtime.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		}, log.Component("realtime"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexão ao Redis")
		}
		defer rn.Close()
		notifier, events = rn, rn
	}

	var objects ports.ObjectStorage
	if cfg.Storage.Enabled {
		s3, err := storage.NewS3Storage(ctx, storage.Options{
			Endpoint:     cfg.Storage.Endpoint,
			Region:       cfg.Storage.Region,
			Bucket:       cfg.Storage.Bucket,
			AccessKey:    cfg.Storage.AccessKey,
			SecretKey:    cfg.Storage.SecretKey,
			UseSSL:       cfg.Storage.UseSSL,
			UsePathStyle: cfg.Storage.UsePathStyle,
		}, log.Component("storage"))
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3")
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Fatal().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("bucket de arquivos")
		}
		objects = s3
	}

	auditUC := usecase.NewAuditUseCase(auditRepo)
	rep := usecase.Reporting{Notifier: notifier, Audit: auditUC, Log: log.Component("usecase")}

	unitUC := usecase.NewUnitUseCase(unitRepo, txRunner)
	moduleSvc := usecase.NewModuleService(unitRepo)
	productUC := usecase.NewProductUseCase(productRepo, rep)
	stockUC := usecase.NewStockMovementUseCase(stockRepo, txRunner, rep)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, txRunner, objects, cfg.Storage.PresignExpiration, rep)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, rep)
	recurringUC := usecase.NewRecurringExpenseUseCase(recurringRepo, txRunner, rep)
	statementUC := usecase.NewStatementUseCase(statementRepo, expenseRepo, txRunner, statement.NewParser(), rep)
	cashUC := usecase.NewCashRegisterUseCase(cashRepo, unitRepo, txRunner, infrapdf.NewCashReportGenerator(), rep)
	orderUC := usecase.NewOrderUseCase(orderRepo, productRepo, txRunner, rep)
	professionalUC := usecase.NewProfessionalUseCase(professionalRepo, rep)
	queueUC := usecase.NewQueueUseCase(queueRepo, professionalRepo, txRunner, rep)
	goalUC := usecase.NewGoalUseCase(goalRepo, professionalRepo, rep)
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo, goalRepo)
	authUC := auth.NewAuthUseCase(userRepo, unitRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Scheduler.Enabled {
		loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
		if err != nil {
			log.Fatal().Err(err).Str("timezone", cfg.Scheduler.Timezone).Msg("fuso do agendador")
		}
		sched := scheduler.New(scheduler.Config{
			Cron:     cfg.Scheduler.RecurringCron,
			Location: loc,
			Timeout:  5 * time.Minute,
		}, recurringUC, expenseUC, log.Component("scheduler"))
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("iniciar agendador")
		}
		defer sched.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    statement.MaxFileSize + 1<<20,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Barber Analytics Pro API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UnitUC:         unitUC,
		Modules:        moduleSvc,
		ProductUC:      productUC,
		StockUC:        stockUC,
		SupplierUC:     supplierUC,
		ExpenseUC:      expenseUC,
		RecurringUC:    recurringUC,
		StatementUC:    statementUC,
		CashRegisterUC: cashUC,
		OrderUC:        orderUC,
		ProfessionalUC: professionalUC,
		QueueUC:        queueUC,
		GoalUC:         goalUC,
		AuditUC:        auditUC,
		DashboardUC:    dashboardUC,
		Events:         events,
		JWTSecret:      cfg.JWT.Secret,
		Log:            log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
