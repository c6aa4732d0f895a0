package billing

import (
	"testing"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testModel() *domain.BillDataModel {
	return &domain.BillDataModel{
		Project: domain.Project{Name: "Road widening NH-52", AgreementNo: "12/2024-25"},
		WorkOrder: []domain.WorkOrderItem{
			{Code: "1.1", Description: "Earthwork in excavation", Unit: "Cum", OriginalQuantity: dec("120"), Rate: dec("150")},
			{Code: "1.2", Description: "Cement concrete 1:2:4", Unit: "Cum", OriginalQuantity: dec("45"), Rate: dec("5400")},
			{Code: "2.1", Description: "Brickwork in CM 1:6", Unit: "Cum", OriginalQuantity: dec("80"), Rate: dec("4100")},
		},
		BillQuantities: []domain.BillQuantityItem{
			{Code: "1.1", MeasuredQuantity: dec("100")},
			{Code: "2.1", MeasuredQuantity: dec("75.5")},
		},
		ExtraItems: []domain.ExtraItem{
			{Description: "Dismantling", Unit: "Cum", Quantity: dec("10"), Rate: dec("250"), Source: domain.ExtraItemManual},
		},
	}
}

func TestEngine_Compute_ManualMode(t *testing.T) {
	engine := NewEngine(0)
	bill, err := engine.Compute(testModel(), domain.ModeManual)
	require.NoError(t, err)

	require.Len(t, bill.Lines, 3)

	// 1.2 has no measured quantity: billed as zero, never as the original.
	assert.True(t, bill.Lines[1].EffectiveQuantity.IsZero())
	assert.True(t, bill.Lines[1].Amount.IsZero())

	// 100*150 + 75.5*4100 = 15000 + 309550
	assert.Equal(t, "324550.00", bill.MainTotal.StringFixed(2))
	assert.Equal(t, "2500.00", bill.ExtraTotal.StringFixed(2))
	assert.Equal(t, "327050.00", bill.GrandTotal.StringFixed(2))
}

func TestEngine_Compute_Idempotent(t *testing.T) {
	engine := NewEngine(0)
	model := testModel()

	first, err := engine.Compute(model, domain.ModeManual)
	require.NoError(t, err)
	second, err := engine.Compute(model, domain.ModeManual)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngine_Compute_FootingInvariant(t *testing.T) {
	// Three lines of 66.67 * 1.50 = 100.005 each. The main total must be the
	// banker's rounding of the raw sum 300.015, not a sum of pre-rounded
	// lines.
	model := &domain.BillDataModel{
		Project: domain.Project{Name: "Footing check"},
		WorkOrder: []domain.WorkOrderItem{
			{Code: "A", Description: "a", Unit: "m", OriginalQuantity: dec("100"), Rate: dec("1.50")},
			{Code: "B", Description: "b", Unit: "m", OriginalQuantity: dec("100"), Rate: dec("1.50")},
			{Code: "C", Description: "c", Unit: "m", OriginalQuantity: dec("100"), Rate: dec("1.50")},
		},
		BillQuantities: []domain.BillQuantityItem{
			{Code: "A", MeasuredQuantity: dec("66.67")},
			{Code: "B", MeasuredQuantity: dec("66.67")},
			{Code: "C", MeasuredQuantity: dec("66.67")},
		},
	}

	bill, err := NewEngine(0).Compute(model, domain.ModeManual)
	require.NoError(t, err)

	assert.Equal(t, "300.02", bill.MainTotal.StringFixed(2))
	assert.NotEqual(t, "300.00", bill.MainTotal.StringFixed(2))
	assert.True(t, bill.GrandTotal.Equal(bill.MainTotal.Add(bill.ExtraTotal)))
}

func TestEngine_Compute_UnknownCode(t *testing.T) {
	model := testModel()
	model.BillQuantities = append(model.BillQuantities, domain.BillQuantityItem{
		Code: "9.9", MeasuredQuantity: dec("1"),
	})

	_, err := NewEngine(0).Compute(model, domain.ModeManual)
	require.Error(t, err)

	var dataErr *domain.DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "9.9", dataErr.Code)
}

func TestEngine_Compute_DuplicateCode(t *testing.T) {
	model := testModel()
	model.WorkOrder = append(model.WorkOrder, model.WorkOrder[0])

	_, err := NewEngine(0).Compute(model, domain.ModeManual)

	var dataErr *domain.DataError
	require.ErrorAs(t, err, &dataErr)
}

func TestEngine_Compute_NegativeQuantity(t *testing.T) {
	model := testModel()
	model.BillQuantities[0].MeasuredQuantity = dec("-5")

	_, err := NewEngine(0).Compute(model, domain.ModeManual)

	var dataErr *domain.DataError
	require.ErrorAs(t, err, &dataErr)
}

func TestEngine_Compute_EmptyBillQuantities(t *testing.T) {
	model := testModel()
	model.BillQuantities = nil
	model.ExtraItems = nil

	bill, err := NewEngine(0).Compute(model, domain.ModeManual)
	require.NoError(t, err)

	// Zero effective items is a valid bill, not an error.
	assert.True(t, bill.MainTotal.IsZero())
	assert.True(t, bill.GrandTotal.IsZero())
	assert.Len(t, bill.Lines, 3)
}

func TestEngine_Compute_UnknownMode(t *testing.T) {
	_, err := NewEngine(0).Compute(testModel(), domain.BillingMode("batch"))
	assert.Error(t, err)
}
