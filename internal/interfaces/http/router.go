package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ServiCampo-api/internal/application/auth"
	"github.com/jhoicas/ServiCampo-api/internal/application/billing"
	"github.com/jhoicas/ServiCampo-api/internal/application/payroll"
	"github.com/jhoicas/ServiCampo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	CustomerUC *usecase.CustomerUseCase
	StockUC    *usecase.StockUseCase
	StaffUC    *usecase.StaffUseCase
	TimeUC     *usecase.TimeRecordUseCase
	JobUC      *usecase.JobUseCase

	CreateStockInvoice *billing.CreateStockInvoiceUseCase
	CreateJobInvoice   *billing.CreateJobInvoiceUseCase
	RecordPayment      *billing.RecordPaymentUseCase
	SetInvoiceStatus   *billing.SetInvoiceStatusUseCase
	SendScheduled      *billing.SendScheduledInvoicesUseCase
	InvoiceQuery       *billing.InvoiceQueryUseCase
	InvoicePDF         *billing.InvoicePDFUseCase

	CalculatePayroll *payroll.CalculatePayrollUseCase
	PayslipQuery     *payroll.PayslipQueryUseCase

	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Stock (protegido)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Post("/", stockHandler.Create)
	stock.Get("/", stockHandler.List)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Put("/:id", stockHandler.Update)
	stock.Post("/:id/release", stockHandler.Release)

	// Staff y registros de jornada (protegido)
	staffHandler := NewStaffHandler(deps.StaffUC, deps.TimeUC)
	staff := protected.Group("/staff")
	staff.Post("/", staffHandler.Create)
	staff.Get("/", staffHandler.List)
	staff.Get("/:id", staffHandler.GetByID)
	staff.Put("/:id", staffHandler.Update)

	timeRecords := protected.Group("/time-records")
	timeRecords.Post("/clock-in", staffHandler.ClockIn)
	timeRecords.Post("/:id/clock-out", staffHandler.ClockOut)

	// Jobs (protegido)
	jobs := protected.Group("/jobs")
	jobHandler := NewJobHandler(deps.JobUC)
	jobs.Post("/", jobHandler.Create)
	jobs.Get("/", jobHandler.List)
	jobs.Get("/:id", jobHandler.GetByID)
	jobs.Post("/:id/stock", jobHandler.AddUsedStock)
	jobs.Post("/:id/complete", jobHandler.Complete)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(
		deps.CreateStockInvoice, deps.CreateJobInvoice, deps.RecordPayment,
		deps.SetInvoiceStatus, deps.SendScheduled, deps.InvoiceQuery, deps.InvoicePDF,
	)
	invoices.Post("/stock", invoiceHandler.CreateStockInvoice)
	invoices.Post("/job", invoiceHandler.CreateJobInvoice)
	invoices.Post("/send-scheduled", invoiceHandler.SendScheduled)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/payments", invoiceHandler.RecordPayment)
	invoices.Patch("/:id/status", invoiceHandler.SetStatus)

	// Payroll (protegido, solo administración)
	payrollGroup := protected.Group("/payroll", RequireRole("admin", "oficina"))
	payrollHandler := NewPayrollHandler(deps.CalculatePayroll, deps.PayslipQuery)
	payrollGroup.Post("/calculate", payrollHandler.Calculate)
	payrollGroup.Get("/payslips", payrollHandler.ListByPeriod)
	payrollGroup.Get("/payslips/:id", payrollHandler.GetByID)
	payrollGroup.Get("/staff/:staffId/payslips", payrollHandler.ListByStaff)
}
