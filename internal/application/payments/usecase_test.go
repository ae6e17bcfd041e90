package payments_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirzacarpets/ledger-api/internal/application/payments"
	"github.com/mirzacarpets/ledger-api/internal/domain"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/testutil/memledger"
)

var ctx = context.Background()

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture() (*memledger.Store, *payments.UseCase) {
	store := memledger.New()
	store.Contractors["c1"] = entity.Contractor{ID: "c1", Name: "Rafiq"}
	store.Orders["o1"] = entity.Order{ID: "o1", ContractorID: "c1", Status: entity.OrderStatusOpen}
	store.Orders["o2"] = entity.Order{ID: "o2", ContractorID: "c1", Status: entity.OrderStatusClosed}
	uc := payments.New(store.PaymentRepo(), store.OrderRepo(), store.ContractorRepo())
	return store, uc
}

func TestRecordAgainstOrder(t *testing.T) {
	_, uc := newFixture()

	p, err := uc.Record(ctx, payments.RecordInput{
		OrderID: "o1",
		Amount:  dec("300"),
		Date:    time.Date(2023, 10, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", p.ContractorID, "contractor comes from the order")
	assert.False(t, p.IsGeneral())
}

func TestRecordGeneral(t *testing.T) {
	_, uc := newFixture()

	p, err := uc.Record(ctx, payments.RecordInput{
		ContractorID: "c1",
		Amount:       dec("150"),
		Date:         time.Date(2023, 10, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, p.IsGeneral())
}

func TestRecordAgainstClosedOrderAllowed(t *testing.T) {
	_, uc := newFixture()

	// Settling after completion is the normal flow.
	_, err := uc.Record(ctx, payments.RecordInput{
		OrderID: "o2",
		Amount:  dec("500"),
		Date:    time.Date(2023, 11, 10, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
}

func TestRecordValidation(t *testing.T) {
	_, uc := newFixture()
	when := time.Date(2023, 10, 5, 0, 0, 0, 0, time.UTC)

	_, err := uc.Record(ctx, payments.RecordInput{ContractorID: "c1", Amount: decimal.Zero, Date: when})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Record(ctx, payments.RecordInput{ContractorID: "c1", Amount: dec("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Record(ctx, payments.RecordInput{Amount: dec("10"), Date: when})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Record(ctx, payments.RecordInput{ContractorID: "ghost", Amount: dec("10"), Date: when})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Record(ctx, payments.RecordInput{OrderID: "ghost", Amount: dec("10"), Date: when})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateOpenOrderPayment(t *testing.T) {
	_, uc := newFixture()
	p, err := uc.Record(ctx, payments.RecordInput{
		OrderID: "o1", Amount: dec("300"),
		Date: time.Date(2023, 10, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, p.ID, dec("350"), p.Date, "corrected")
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("350")))
	assert.Equal(t, "corrected", updated.Notes)
}

func TestUpdateClosedOrderPaymentRejected(t *testing.T) {
	_, uc := newFixture()
	p, err := uc.Record(ctx, payments.RecordInput{
		OrderID: "o2", Amount: dec("300"),
		Date: time.Date(2023, 11, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = uc.Update(ctx, p.ID, dec("350"), p.Date, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	err = uc.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDeleteGeneralPayment(t *testing.T) {
	store, uc := newFixture()
	p, err := uc.Record(ctx, payments.RecordInput{
		ContractorID: "c1", Amount: dec("150"),
		Date: time.Date(2023, 10, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, p.ID))
	assert.Empty(t, store.Payments)

	err = uc.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
