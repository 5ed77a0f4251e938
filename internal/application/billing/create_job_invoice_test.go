package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

func newJobInvoiceUC(store *fakeStore) *CreateJobInvoiceUseCase {
	return NewCreateJobInvoiceUseCase(
		&fakeTxRunner{store},
		&fakeCustomerRepo{store},
		&fakeTenantRepo{store},
		nil, nil,
		logger.Nop(),
	)
}

func seedCompletedJob(store *fakeStore, price string) {
	completed := time.Now().Add(-time.Hour)
	store.jobs["j1"] = &entity.Job{
		ID: "j1", TenantID: "t1", CustomerID: "c1", StaffID: "st1",
		Description: "Mantenimiento de bomba",
		Price:       decimal.RequireFromString(price),
		Status:      entity.JobStatusCompleted,
		CompletedAt: &completed,
	}
}

func TestCreateJobInvoice_ServicioMasMateriales(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	seedCustomer(store, entity.TriggerOnCompletion, true)
	seedCompletedJob(store, "100.00")
	store.stock["s1"] = &entity.StockItem{
		ID: "s1", TenantID: "t1", Name: "Empaque",
		SalePrice: decp("4.50"), StockQuantity: decimal.NewFromInt(50),
	}
	store.usages["j1"] = []*entity.JobStockUsage{
		{ID: "u1", JobID: "j1", StockItemID: "s1", Quantity: decimal.NewFromInt(2)},
	}

	uc := newJobInvoiceUC(store)
	resp, err := uc.Create(context.Background(), "t1", dto.CreateJobInvoiceRequest{JobID: "j1"})
	require.NoError(t, err)

	require.Len(t, resp.LineItems, 2)
	assert.Equal(t, "Mantenimiento de bomba", resp.LineItems[0].Description)
	assert.True(t, resp.LineItems[0].TotalPrice.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, "s1", resp.LineItems[1].StockItemID)
	assert.True(t, resp.LineItems[1].TotalPrice.Equal(decimal.RequireFromString("9.00")))
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("109.00")))
	assert.Equal(t, entity.JobStatusInvoiced, store.jobs["j1"].Status, "el trabajo queda facturado")
	assert.True(t, store.stock["s1"].StockQuantity.Equal(decimal.NewFromInt(50)),
		"facturar el trabajo no vuelve a descontar el material ya consumido")
}

func TestCreateJobInvoice_EstadoInicialSegunDisparador(t *testing.T) {
	cases := []struct {
		name         string
		trigger      string
		emailEnabled bool
		want         string
	}{
		{"al completar sale enviada", entity.TriggerOnCompletion, true, entity.InvoiceStatusSent},
		{"correo deshabilitado sale enviada", entity.TriggerWeekly, false, entity.InvoiceStatusSent},
		{"patron semanal queda en borrador", entity.TriggerWeekly, true, entity.InvoiceStatusDraft},
		{"patron mensual queda en borrador", entity.TriggerMonthly, true, entity.InvoiceStatusDraft},
		{"patron desconocido queda en borrador", "BIWEEKLY", true, entity.InvoiceStatusDraft},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			seedTenant(store)
			seedCustomer(store, tc.trigger, tc.emailEnabled)
			seedCompletedJob(store, "50.00")

			uc := newJobInvoiceUC(store)
			resp, err := uc.Create(context.Background(), "t1", dto.CreateJobInvoiceRequest{JobID: "j1"})
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.Status)
		})
	}
}

func TestCreateJobInvoice_TrabajoNoCompletado(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	seedCustomer(store, entity.TriggerOnCompletion, false)
	store.jobs["j1"] = &entity.Job{
		ID: "j1", TenantID: "t1", CustomerID: "c1",
		Price: decimal.RequireFromString("100.00"), Status: entity.JobStatusPending,
	}

	uc := newJobInvoiceUC(store)
	_, err := uc.Create(context.Background(), "t1", dto.CreateJobInvoiceRequest{JobID: "j1"})
	assert.ErrorIs(t, err, domain.ErrInvalidJobState)
}

func TestCreateJobInvoice_NoDuplicaFacturaDelTrabajo(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	seedCustomer(store, entity.TriggerOnCompletion, false)
	seedCompletedJob(store, "80.00")

	uc := newJobInvoiceUC(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, "t1", dto.CreateJobInvoiceRequest{JobID: "j1"})
	require.NoError(t, err)

	// Reintento sobre el mismo trabajo: ya quedó INVOICED
	_, err = uc.Create(ctx, "t1", dto.CreateJobInvoiceRequest{JobID: "j1"})
	assert.ErrorIs(t, err, domain.ErrInvalidJobState)

	// Y aunque el estado se forzara de vuelta, la unicidad por trabajo lo ataja
	completed := time.Now()
	store.jobs["j1"].Status = entity.JobStatusCompleted
	store.jobs["j1"].CompletedAt = &completed
	_, err = uc.Create(ctx, "t1", dto.CreateJobInvoiceRequest{JobID: "j1"})
	assert.ErrorIs(t, err, domain.ErrDuplicateInvoice)
}

func TestCreateJobInvoice_MaterialSinPrecioFacturaEnCero(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	seedCustomer(store, entity.TriggerOnCompletion, false)
	seedCompletedJob(store, "60.00")
	store.stock["s1"] = &entity.StockItem{
		ID: "s1", TenantID: "t1", Name: "Tornillería",
		SalePrice: nil, StockQuantity: decimal.NewFromInt(10),
	}
	store.usages["j1"] = []*entity.JobStockUsage{
		{ID: "u1", JobID: "j1", StockItemID: "s1", Quantity: decimal.NewFromInt(4)},
	}

	uc := newJobInvoiceUC(store)
	resp, err := uc.Create(context.Background(), "t1", dto.CreateJobInvoiceRequest{JobID: "j1"})
	require.NoError(t, err)

	require.Len(t, resp.LineItems, 2)
	assert.True(t, resp.LineItems[1].UnitPrice.IsZero(), "sin precio configurado la línea va en cero")
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("60.00")))
}

func TestCreateJobInvoice_SinConceptosFacturables(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	seedCustomer(store, entity.TriggerOnCompletion, false)
	seedCompletedJob(store, "0")

	uc := newJobInvoiceUC(store)
	_, err := uc.Create(context.Background(), "t1", dto.CreateJobInvoiceRequest{JobID: "j1"})
	assert.ErrorIs(t, err, domain.ErrNoBillableItems, "precio cero y sin materiales no genera factura")
}

func TestCreateJobInvoice_TrabajoDeOtroTenant(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	seedCustomer(store, entity.TriggerOnCompletion, false)
	completed := time.Now()
	store.jobs["j1"] = &entity.Job{
		ID: "j1", TenantID: "otro", CustomerID: "c1",
		Price: decimal.RequireFromString("10.00"), Status: entity.JobStatusCompleted,
		CompletedAt: &completed,
	}

	uc := newJobInvoiceUC(store)
	_, err := uc.Create(context.Background(), "t1", dto.CreateJobInvoiceRequest{JobID: "j1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
