// Package ingest reads the four-section billing workbook (Title, Work Order,
// Bill Quantity, Extra Items) into the canonical data model. Malformed input
// is rejected here so the calculation engine only ever sees validated data.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	sheetTitle        = "Title"
	sheetWorkOrder    = "Work Order"
	sheetBillQuantity = "Bill Quantity"
	sheetExtraItems   = "Extra Items"
)

var dateLayouts = []string{"02-01-2006", "2006-01-02", "02/01/2006"}

// Reader loads xlsx workbooks.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// Load opens the workbook at path and returns a validated BillDataModel.
func (r *Reader) Load(ctx context.Context, path string) (*domain.BillDataModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &domain.DataError{Reason: fmt.Sprintf("failed to open workbook: %v", err)}
	}
	defer f.Close()

	model := &domain.BillDataModel{}

	if model.Project, err = readTitle(f); err != nil {
		return nil, err
	}
	if model.WorkOrder, err = readWorkOrder(f); err != nil {
		return nil, err
	}
	if model.BillQuantities, err = readBillQuantities(f); err != nil {
		return nil, err
	}
	if model.ExtraItems, err = readExtraItems(f); err != nil {
		return nil, err
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

func readTitle(f *excelize.File) (domain.Project, error) {
	rows, err := f.GetRows(sheetTitle)
	if err != nil {
		return domain.Project{}, &domain.DataError{Reason: "missing Title sheet"}
	}

	fields := make(map[string]string, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(row[0]))
		fields[key] = strings.TrimSpace(row[1])
	}

	project := domain.Project{
		Name:        fields["name of work"],
		AgreementNo: fields["agreement no"],
		Contractor:  fields["contractor"],
	}
	if project.Name == "" {
		return domain.Project{}, &domain.DataError{Reason: "title sheet missing name of work"}
	}

	project.WorkOrderDate = parseDate(fields["work order date"])
	project.CompletionDate = parseDate(fields["completion date"])
	project.MeasurementDate = parseDate(fields["measurement date"])
	return project, nil
}

func readWorkOrder(f *excelize.File) ([]domain.WorkOrderItem, error) {
	rows, err := f.GetRows(sheetWorkOrder)
	if err != nil {
		return nil, &domain.DataError{Reason: "missing Work Order sheet"}
	}

	var items []domain.WorkOrderItem
	for i, row := range rows {
		if i == 0 || emptyRow(row) {
			continue
		}
		if len(row) < 5 {
			return nil, &domain.DataError{Reason: fmt.Sprintf("work order row %d has %d columns, want 5", i+1, len(row))}
		}
		qty, err := parseDecimal(row[3])
		if err != nil {
			return nil, &domain.DataError{Reason: fmt.Sprintf("work order row %d: bad quantity %q", i+1, row[3])}
		}
		rate, err := parseDecimal(row[4])
		if err != nil {
			return nil, &domain.DataError{Reason: fmt.Sprintf("work order row %d: bad rate %q", i+1, row[4])}
		}
		items = append(items, domain.WorkOrderItem{
			Code:             strings.TrimSpace(row[0]),
			Description:      strings.TrimSpace(row[1]),
			Unit:             strings.TrimSpace(row[2]),
			OriginalQuantity: qty,
			Rate:             rate,
		})
	}
	if len(items) == 0 {
		return nil, &domain.DataError{Reason: "work order sheet has no items"}
	}
	return items, nil
}

func readBillQuantities(f *excelize.File) ([]domain.BillQuantityItem, error) {
	rows, err := f.GetRows(sheetBillQuantity)
	if err != nil {
		return nil, &domain.DataError{Reason: "missing Bill Quantity sheet"}
	}

	var items []domain.BillQuantityItem
	for i, row := range rows {
		if i == 0 || emptyRow(row) {
			continue
		}
		if len(row) < 2 {
			return nil, &domain.DataError{Reason: fmt.Sprintf("bill quantity row %d has %d columns, want 2", i+1, len(row))}
		}
		qty, err := parseDecimal(row[1])
		if err != nil {
			return nil, &domain.DataError{Reason: fmt.Sprintf("bill quantity row %d: bad quantity %q", i+1, row[1])}
		}
		items = append(items, domain.BillQuantityItem{
			Code:             strings.TrimSpace(row[0]),
			MeasuredQuantity: qty,
		})
	}
	return items, nil
}

func readExtraItems(f *excelize.File) ([]domain.ExtraItem, error) {
	rows, err := f.GetRows(sheetExtraItems)
	if err != nil {
		// The extra-items section is optional.
		return nil, nil
	}

	var items []domain.ExtraItem
	for i, row := range rows {
		if i == 0 || emptyRow(row) {
			continue
		}
		if len(row) < 4 {
			return nil, &domain.DataError{Reason: fmt.Sprintf("extra item row %d has %d columns, want 4", i+1, len(row))}
		}
		qty, err := parseDecimal(row[2])
		if err != nil {
			return nil, &domain.DataError{Reason: fmt.Sprintf("extra item row %d: bad quantity %q", i+1, row[2])}
		}
		rate, err := parseDecimal(row[3])
		if err != nil {
			return nil, &domain.DataError{Reason: fmt.Sprintf("extra item row %d: bad rate %q", i+1, row[3])}
		}
		items = append(items, domain.ExtraItem{
			Description: strings.TrimSpace(row[0]),
			Unit:        strings.TrimSpace(row[1]),
			Quantity:    qty,
			Rate:        rate,
			Source:      domain.ExtraItemManual,
		})
	}
	return items, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
