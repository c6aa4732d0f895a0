// Package billing computes bills from ingested work-order data.
package billing

import (
	"fmt"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Engine derives a Bill from a BillDataModel under a billing mode.
type Engine struct {
	seed int64
}

// NewEngine creates an engine. The seed drives the simulated-online policy;
// manual mode ignores it.
func NewEngine(seed int64) *Engine {
	return &Engine{seed: seed}
}

// Compute produces a new Bill. The model is never mutated; in online mode
// the simulated quantities and extra items replace the supplied ones for the
// computed bill only.
func (e *Engine) Compute(model *domain.BillDataModel, mode domain.BillingMode) (*domain.Bill, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}

	quantities := model.BillQuantities
	extras := model.ExtraItems

	switch mode {
	case domain.ModeManual:
	case domain.ModeOnline:
		quantities, extras = simulateOnline(model.WorkOrder, e.seed)
	default:
		return nil, fmt.Errorf("unknown billing mode %q", mode)
	}

	measured := make(map[string]decimal.Decimal, len(quantities))
	index := make(map[string]struct{}, len(model.WorkOrder))
	for _, item := range model.WorkOrder {
		index[item.Code] = struct{}{}
	}
	for _, bq := range quantities {
		if _, ok := index[bq.Code]; !ok {
			return nil, &domain.DataError{Reason: "bill quantity references unknown work order code", Code: bq.Code}
		}
		measured[bq.Code] = bq.MeasuredQuantity
	}

	bill := &domain.Bill{
		Project:    model.Project,
		Lines:      make([]domain.BillLine, 0, len(model.WorkOrder)),
		ExtraLines: make([]domain.ExtraLine, 0, len(extras)),
	}

	// Line amounts stay unrounded until aggregation; the subtotal is rounded
	// once so independently printed lines still foot against it.
	mainRaw := decimal.Zero
	for _, item := range model.WorkOrder {
		qty, ok := measured[item.Code]
		if !ok {
			qty = decimal.Zero
		}
		raw := qty.Mul(item.Rate)
		mainRaw = mainRaw.Add(raw)
		bill.Lines = append(bill.Lines, domain.BillLine{
			Item:              item,
			EffectiveQuantity: qty,
			Amount:            raw.RoundBank(2),
		})
	}

	extraRaw := decimal.Zero
	for _, extra := range extras {
		raw := extra.Quantity.Mul(extra.Rate)
		extraRaw = extraRaw.Add(raw)
		bill.ExtraLines = append(bill.ExtraLines, domain.ExtraLine{
			Item:   extra,
			Amount: raw.RoundBank(2),
		})
	}

	bill.MainTotal = mainRaw.RoundBank(2)
	bill.ExtraTotal = extraRaw.RoundBank(2)
	// Rounded subtotals are added as printed, not re-derived from the raw sums.
	bill.GrandTotal = bill.MainTotal.Add(bill.ExtraTotal)
	return bill, nil
}
