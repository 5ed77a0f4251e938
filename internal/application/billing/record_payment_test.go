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
	domainbilling "github.com/jhoicas/ServiCampo-api/internal/domain/billing"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

// seedInvoice siembra una factura sent de 100.00 + 19% de impuesto (total 119.00).
func seedInvoice(store *fakeStore, status string) {
	inv := &entity.Invoice{
		ID: "i1", TenantID: "t1", CustomerID: "c1", Number: "INV0001",
		IssueDate: time.Now(), DueDate: time.Now().AddDate(0, 0, 30),
		TaxRate: decimal.RequireFromString("0.19"), Status: status, Currency: "COP",
		LineItems: []*entity.InvoiceLineItem{
			{ID: "l1", InvoiceID: "i1", Description: "Servicio", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("100.00")},
		},
	}
	domainbilling.Recalculate(inv)
	store.lines["i1"] = inv.LineItems
	stored := *inv
	stored.LineItems = nil
	store.invoices["i1"] = &stored
}

func newPaymentUC(store *fakeStore) *RecordPaymentUseCase {
	return NewRecordPaymentUseCase(&fakeTxRunner{store}, logger.Nop())
}

func TestRecordPayment_AbonoParcial(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	seedInvoice(store, entity.InvoiceStatusSent)

	uc := newPaymentUC(store)
	resp, err := uc.Record(context.Background(), "t1", "i1", dto.RecordPaymentRequest{
		Amount: decimal.RequireFromString("50.00"), Method: "transferencia",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusPartiallyPaid, resp.Status)
	assert.True(t, resp.AmountPaid.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, resp.BalanceDue.Equal(decimal.RequireFromString("69.00")))
	require.Len(t, resp.Payments, 1)
}

func TestRecordPayment_PagoCompletoDerivaPagada(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	seedInvoice(store, entity.InvoiceStatusSent)

	uc := newPaymentUC(store)
	ctx := context.Background()

	_, err := uc.Record(ctx, "t1", "i1", dto.RecordPaymentRequest{Amount: decimal.RequireFromString("100.00"), Method: "efectivo"})
	require.NoError(t, err)
	resp, err := uc.Record(ctx, "t1", "i1", dto.RecordPaymentRequest{Amount: decimal.RequireFromString("19.00"), Method: "efectivo"})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusPaid, resp.Status)
	assert.True(t, resp.BalanceDue.IsZero())
}

func TestRecordPayment_SaldoResidualDentroDeTolerancia(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	seedInvoice(store, entity.InvoiceStatusSent)

	uc := newPaymentUC(store)
	resp, err := uc.Record(context.Background(), "t1", "i1", dto.RecordPaymentRequest{
		Amount: decimal.RequireFromString("118.995"), Method: "transferencia",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, resp.Status, "saldo residual de 0.005 cuenta como pagada")
}

func TestRecordPayment_RechazaSobrepago(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	seedInvoice(store, entity.InvoiceStatusSent)

	uc := newPaymentUC(store)
	_, err := uc.Record(context.Background(), "t1", "i1", dto.RecordPaymentRequest{
		Amount: decimal.RequireFromString("119.02"), Method: "transferencia",
	})
	assert.ErrorIs(t, err, domainbilling.ErrOverpayment)
	assert.Empty(t, store.payments["i1"], "el abono rechazado no se persiste")
}

func TestRecordPayment_RechazaMontoNoPositivo(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	seedInvoice(store, entity.InvoiceStatusSent)

	uc := newPaymentUC(store)
	ctx := context.Background()

	_, err := uc.Record(ctx, "t1", "i1", dto.RecordPaymentRequest{Amount: decimal.Zero, Method: "efectivo"})
	assert.ErrorIs(t, err, domainbilling.ErrNonPositiveAmount)

	_, err = uc.Record(ctx, "t1", "i1", dto.RecordPaymentRequest{Amount: decimal.RequireFromString("-5"), Method: "efectivo"})
	assert.ErrorIs(t, err, domainbilling.ErrNonPositiveAmount)
}

func TestRecordPayment_FacturaYaSaldada(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	seedInvoice(store, entity.InvoiceStatusSent)

	uc := newPaymentUC(store)
	ctx := context.Background()

	_, err := uc.Record(ctx, "t1", "i1", dto.RecordPaymentRequest{Amount: decimal.RequireFromString("119.00"), Method: "efectivo"})
	require.NoError(t, err)

	_, err = uc.Record(ctx, "t1", "i1", dto.RecordPaymentRequest{Amount: decimal.RequireFromString("1.00"), Method: "efectivo"})
	assert.ErrorIs(t, err, domainbilling.ErrAlreadySettled)
}

func TestRecordPayment_FacturaAnulada(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	seedInvoice(store, entity.InvoiceStatusVoid)

	uc := newPaymentUC(store)
	_, err := uc.Record(context.Background(), "t1", "i1", dto.RecordPaymentRequest{
		Amount: decimal.RequireFromString("10.00"), Method: "efectivo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus, "una factura void no admite abonos")
}

func TestRecordPayment_FacturaDeOtroTenant(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	seedInvoice(store, entity.InvoiceStatusSent)

	uc := newPaymentUC(store)
	_, err := uc.Record(context.Background(), "otro", "i1", dto.RecordPaymentRequest{
		Amount: decimal.RequireFromString("10.00"), Method: "efectivo",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
