package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project holds the contract title block printed on every document.
// Immutable once loaded.
type Project struct {
	Name            string
	AgreementNo     string
	Contractor      string
	WorkOrderDate   time.Time
	CompletionDate  time.Time
	MeasurementDate time.Time
}

// WorkOrderItem is one sanctioned item of the work order. Code is unique
// within a project and is the source of truth for sanctioned scope.
type WorkOrderItem struct {
	Code             string
	Description      string
	Unit             string
	OriginalQuantity decimal.Decimal
	Rate             decimal.Decimal
}

// BillQuantityItem records the quantity actually executed for a work-order
// item. A code absent from the bill quantities means zero billed quantity.
type BillQuantityItem struct {
	Code             string
	MeasuredQuantity decimal.Decimal
}

// ExtraItemSource tells whether an extra item was entered by a user or
// synthesized by the simulated-online policy.
type ExtraItemSource string

const (
	ExtraItemManual    ExtraItemSource = "manual"
	ExtraItemGenerated ExtraItemSource = "generated"
)

// ExtraItem is additional work outside the sanctioned work order. Extra items
// never reference work-order codes and are always reported separately.
type ExtraItem struct {
	Description string
	Unit        string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Source      ExtraItemSource
}

// BillDataModel is the canonical ingested dataset: title block, work order,
// measured quantities and optional extra items.
type BillDataModel struct {
	Project        Project
	WorkOrder      []WorkOrderItem
	BillQuantities []BillQuantityItem
	ExtraItems     []ExtraItem
}

// Validate checks the structural invariants the calculation engine relies on:
// unique work-order codes, non-negative quantities and rates, and extra-item
// quantities strictly positive.
func (m *BillDataModel) Validate() error {
	seen := make(map[string]struct{}, len(m.WorkOrder))
	for _, item := range m.WorkOrder {
		if item.Code == "" {
			return &DataError{Reason: "work order item with empty code"}
		}
		if _, dup := seen[item.Code]; dup {
			return &DataError{Reason: "duplicate work order code", Code: item.Code}
		}
		seen[item.Code] = struct{}{}
		if item.OriginalQuantity.IsNegative() {
			return &DataError{Reason: "negative original quantity", Code: item.Code}
		}
		if item.Rate.IsNegative() {
			return &DataError{Reason: "negative rate", Code: item.Code}
		}
	}
	for _, bq := range m.BillQuantities {
		if bq.MeasuredQuantity.IsNegative() {
			return &DataError{Reason: "negative measured quantity", Code: bq.Code}
		}
	}
	for i, extra := range m.ExtraItems {
		if !extra.Quantity.IsPositive() {
			return &DataError{Reason: "extra item quantity must be positive", Index: i}
		}
		if extra.Rate.IsNegative() {
			return &DataError{Reason: "negative extra item rate", Index: i}
		}
	}
	return nil
}
