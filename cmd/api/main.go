package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/ServiCampo-api/internal/application/auth"
	"github.com/jhoicas/ServiCampo-api/internal/application/billing"
	"github.com/jhoicas/ServiCampo-api/internal/application/payroll"
	"github.com/jhoicas/ServiCampo-api/internal/application/usecase"
	inframail "github.com/jhoicas/ServiCampo-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/ServiCampo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ServiCampo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ServiCampo-api/internal/interfaces/http"
	"github.com/jhoicas/ServiCampo-api/pkg/config"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (las operaciones transaccionales reciben
	// sus propios repos atados a la tx vía TxRunner)
	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	stockRepo := postgres.NewStockItemRepository(pool)
	staffRepo := postgres.NewStaffRepository(pool)
	timeRepo := postgres.NewTimeRecordRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	payslipRepo := postgres.NewPayslipRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	// SMTP opcional: sin configuración el motor factura igual, solo no envía correos
	var notifier billing.InvoiceNotifier
	if n := inframail.NewGomailNotifier(cfg.Mail, log); n != nil {
		notifier = n
	}

	authUC := auth.NewUseCase(userRepo, tenantRepo, cfg.JWT, log)
	customerUC := usecase.NewCustomerUseCase(customerRepo, log)
	stockUC := usecase.NewStockUseCase(txRunner, stockRepo, log)
	staffUC := usecase.NewStaffUseCase(staffRepo, log)
	timeUC := usecase.NewTimeRecordUseCase(timeRepo, staffRepo, log)
	jobUC := usecase.NewJobUseCase(txRunner, jobRepo, customerRepo, staffRepo, log)

	createStockInvoiceUC := billing.NewCreateStockInvoiceUseCase(txRunner, customerRepo, tenantRepo, notifier, pdfGenerator, log)
	createJobInvoiceUC := billing.NewCreateJobInvoiceUseCase(txRunner, customerRepo, tenantRepo, notifier, pdfGenerator, log)
	recordPaymentUC := billing.NewRecordPaymentUseCase(txRunner, log)
	setStatusUC := billing.NewSetInvoiceStatusUseCase(txRunner, log)
	sendScheduledUC := billing.NewSendScheduledInvoicesUseCase(txRunner, invoiceRepo, customerRepo, tenantRepo, notifier, pdfGenerator, log)
	invoiceQueryUC := billing.NewInvoiceQueryUseCase(invoiceRepo)
	invoicePDFUC := billing.NewInvoicePDFUseCase(invoiceRepo, customerRepo, tenantRepo, pdfGenerator)

	calculatePayrollUC := payroll.NewCalculatePayrollUseCase(txRunner, staffRepo, timeRepo, jobRepo, settingsRepo, log)
	payslipQueryUC := payroll.NewPayslipQueryUseCase(payslipRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ServiCampo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CustomerUC: customerUC,
		StockUC:    stockUC,
		StaffUC:    staffUC,
		TimeUC:     timeUC,
		JobUC:      jobUC,

		CreateStockInvoice: createStockInvoiceUC,
		CreateJobInvoice:   createJobInvoiceUC,
		RecordPayment:      recordPaymentUC,
		SetInvoiceStatus:   setStatusUC,
		SendScheduled:      sendScheduledUC,
		InvoiceQuery:       invoiceQueryUC,
		InvoicePDF:         invoicePDFUC,

		CalculatePayroll: calculatePayrollUC,
		PayslipQuery:     payslipQueryUC,

		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
