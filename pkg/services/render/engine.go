// Package render maps computed bills onto the nine statutory document
// layouts. Rendering is a pure function of (bill, project, document type):
// identical inputs produce byte-identical markup.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Engine renders bills into paginated HTML markup.
type Engine struct {
	tpl *template.Template
}

// NewEngine parses the document templates once; the engine is safe for
// concurrent use afterwards.
func NewEngine() (*Engine, error) {
	tpl := template.New("documents")
	for name, body := range documentTemplates {
		var err error
		tpl, err = tpl.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
	}
	return &Engine{tpl: tpl}, nil
}

// Render produces the markup for one document type.
func (e *Engine) Render(bill *domain.Bill, project domain.Project, dt domain.DocumentType) (domain.Markup, error) {
	view, err := buildView(bill, project, dt)
	if err != nil {
		return domain.Markup{}, err
	}

	var buf bytes.Buffer
	if err := e.tpl.ExecuteTemplate(&buf, string(dt), view); err != nil {
		return domain.Markup{}, fmt.Errorf("failed to render %s: %w", dt, err)
	}
	return domain.Markup{DocumentType: dt, HTML: buf.Bytes()}, nil
}

// RenderAll renders every document type applicable to the bill.
func (e *Engine) RenderAll(bill *domain.Bill, project domain.Project) ([]domain.Markup, error) {
	types := domain.DocumentTypesFor(bill)
	markups := make([]domain.Markup, 0, len(types))
	for _, dt := range types {
		m, err := e.Render(bill, project, dt)
		if err != nil {
			return nil, err
		}
		markups = append(markups, m)
	}
	return markups, nil
}

type headerView struct {
	Title           string
	ProjectName     string
	AgreementNo     string
	Contractor      string
	WorkOrderDate   string
	CompletionDate  string
	MeasurementDate string
}

type lineView struct {
	Serial      int
	Code        string
	Description string
	Unit        string
	OriginalQty string
	Qty         string
	Rate        string
	Amount      string
}

type deviationView struct {
	Serial       int
	Code         string
	Description  string
	Unit         string
	OriginalQty  string
	BilledQty    string
	Excess       string
	Saving       string
	Rate         string
	ExcessAmount string
	SavingAmount string
}

type documentView struct {
	Header     headerView
	Lines      []lineView
	Extras     []lineView
	Deviations []deviationView
	MainTotal  string
	ExtraTotal string
	GrandTotal string
	ItemCount  int
	ExtraCount int
}

var documentTitles = map[domain.DocumentType]string{
	domain.DocCoverSummary:       "First and Final Bill - Summary",
	domain.DocPaymentCertificate: "Certificate of Payment",
	domain.DocWorkOrderDetail:    "Work Order - Item Details",
	domain.DocBillQuantityDetail: "Bill Quantity - Item Details",
	domain.DocDeviationStatement: "Deviation Statement",
	domain.DocCertificateII:      "Certificate II",
	domain.DocCertificateIII:     "Certificate III",
	domain.DocNoteSheet:          "Bill Processing Note Sheet",
	domain.DocExtraItems:         "Statement of Extra Items",
}

func buildView(bill *domain.Bill, project domain.Project, dt domain.DocumentType) (*documentView, error) {
	title, ok := documentTitles[dt]
	if !ok {
		return nil, fmt.Errorf("unknown document type %q", dt)
	}

	view := &documentView{
		Header: headerView{
			Title:           title,
			ProjectName:     project.Name,
			AgreementNo:     project.AgreementNo,
			Contractor:      project.Contractor,
			WorkOrderDate:   formatDate(project.WorkOrderDate),
			CompletionDate:  formatDate(project.CompletionDate),
			MeasurementDate: formatDate(project.MeasurementDate),
		},
		MainTotal:  bill.MainTotal.StringFixed(2),
		ExtraTotal: bill.ExtraTotal.StringFixed(2),
		GrandTotal: bill.GrandTotal.StringFixed(2),
		ItemCount:  len(bill.Lines),
		ExtraCount: len(bill.ExtraLines),
	}

	for i, line := range bill.Lines {
		view.Lines = append(view.Lines, lineView{
			Serial:      i + 1,
			Code:        line.Item.Code,
			Description: line.Item.Description,
			Unit:        line.Item.Unit,
			OriginalQty: line.Item.OriginalQuantity.StringFixed(2),
			Qty:         line.EffectiveQuantity.StringFixed(2),
			Rate:        line.Item.Rate.StringFixed(2),
			Amount:      line.Amount.StringFixed(2),
		})
	}
	for i, extra := range bill.ExtraLines {
		view.Extras = append(view.Extras, lineView{
			Serial:      i + 1,
			Description: extra.Item.Description,
			Unit:        extra.Item.Unit,
			Qty:         extra.Item.Quantity.StringFixed(2),
			Rate:        extra.Item.Rate.StringFixed(2),
			Amount:      extra.Amount.StringFixed(2),
		})
	}

	if dt == domain.DocDeviationStatement {
		view.Deviations = buildDeviations(bill)
	}
	return view, nil
}

func buildDeviations(bill *domain.Bill) []deviationView {
	rows := make([]deviationView, 0, len(bill.Lines))
	for i, line := range bill.Lines {
		excess := decimal.Zero
		saving := decimal.Zero
		diff := line.EffectiveQuantity.Sub(line.Item.OriginalQuantity)
		if diff.IsPositive() {
			excess = diff
		} else {
			saving = diff.Neg()
		}
		rows = append(rows, deviationView{
			Serial:       i + 1,
			Code:         line.Item.Code,
			Description:  line.Item.Description,
			Unit:         line.Item.Unit,
			OriginalQty:  line.Item.OriginalQuantity.StringFixed(2),
			BilledQty:    line.EffectiveQuantity.StringFixed(2),
			Excess:       excess.StringFixed(2),
			Saving:       saving.StringFixed(2),
			Rate:         line.Item.Rate.StringFixed(2),
			ExcessAmount: excess.Mul(line.Item.Rate).RoundBank(2).StringFixed(2),
			SavingAmount: saving.Mul(line.Item.Rate).RoundBank(2).StringFixed(2),
		})
	}
	return rows
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02-01-2006")
}
