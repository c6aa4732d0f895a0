package domain

import "github.com/shopspring/decimal"

// BillingMode selects how effective quantities are obtained.
type BillingMode string

const (
	// ModeManual takes effective quantities directly from the supplied
	// bill-quantity rows.
	ModeManual BillingMode = "manual"
	// ModeOnline assigns quantities with the seeded simulated-online policy
	// and synthesizes extra items, exercising the full pipeline without
	// live user input.
	ModeOnline BillingMode = "online"
)

// BillLine is one work-order item with its effective quantity and amount.
// Amount is the line amount rounded to two places for presentation; the
// bill's MainTotal is derived from the unrounded amounts, not from these.
type BillLine struct {
	Item              WorkOrderItem
	EffectiveQuantity decimal.Decimal
	Amount            decimal.Decimal
}

// ExtraLine is one extra item with its amount.
type ExtraLine struct {
	Item   ExtraItem
	Amount decimal.Decimal
}

// Bill is the computed result owned exclusively by the calculation engine.
// It is immutable once constructed; recomputation yields a new Bill.
type Bill struct {
	Project    Project
	Lines      []BillLine
	ExtraLines []ExtraLine
	MainTotal  decimal.Decimal
	ExtraTotal decimal.Decimal
	GrandTotal decimal.Decimal
}

// HasExtraItems reports whether the extra-items sheet applies to this bill.
func (b *Bill) HasExtraItems() bool {
	return len(b.ExtraLines) > 0
}
