package render

// The conversion backends are lossy with respect to layout unless the markup
// carries explicit pagination hints, so every template shares the print CSS
// below: page breaks are kept out of table rows and away from headings, and
// tables use a fixed layout so column widths survive conversion.

const styleTemplate = `<style>
@page { size: A4; margin: 12mm; }
body { font-family: "Liberation Serif", "Times New Roman", serif; font-size: 11pt; margin: 0; }
h1 { font-size: 14pt; text-align: center; margin: 0 0 2mm 0; page-break-after: avoid; }
h2 { font-size: 12pt; margin: 4mm 0 2mm 0; page-break-after: avoid; }
table { width: 100%; table-layout: fixed; border-collapse: collapse; }
thead { display: table-header-group; }
tr { page-break-inside: avoid; }
th, td { border: 0.3mm solid #000; padding: 1mm 1.5mm; font-size: 10pt; word-wrap: break-word; vertical-align: top; }
th { background: #eee; text-align: center; }
td.num { text-align: right; }
.titleblock { margin-bottom: 4mm; page-break-inside: avoid; }
.titleblock td { border: none; font-size: 10pt; padding: 0.5mm 1mm; }
.total td { font-weight: bold; }
.certificate { margin: 4mm 0; page-break-inside: avoid; text-align: justify; }
.signature { margin-top: 14mm; page-break-inside: avoid; }
.signature td { border: none; text-align: center; padding-top: 10mm; }
</style>`

const titleblockTemplate = `<h1>{{.Title}}</h1>
<table class="titleblock">
<tr><td>Name of Work</td><td>{{.ProjectName}}</td></tr>
<tr><td>Agreement No.</td><td>{{.AgreementNo}}</td></tr>
<tr><td>Name of Contractor</td><td>{{.Contractor}}</td></tr>
<tr><td>Date of Work Order</td><td>{{.WorkOrderDate}}</td></tr>
<tr><td>Stipulated Date of Completion</td><td>{{.CompletionDate}}</td></tr>
<tr><td>Date of Measurement</td><td>{{.MeasurementDate}}</td></tr>
</table>`

const signatureTemplate = `<table class="signature">
<tr><td>Contractor</td><td>Junior Engineer</td><td>Assistant Engineer</td><td>Executive Engineer</td></tr>
</table>`

const coverSummaryTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8">{{template "style" .}}</head><body>
{{template "titleblock" .Header}}
<table>
<thead><tr><th style="width:60%">Particulars</th><th style="width:40%">Amount (Rs.)</th></tr></thead>
<tbody>
<tr><td>Value of work done as per work order items</td><td class="num">{{.MainTotal}}</td></tr>
<tr><td>Value of extra items executed</td><td class="num">{{.ExtraTotal}}</td></tr>
<tr class="total"><td>Grand Total payable</td><td class="num">{{.GrandTotal}}</td></tr>
</tbody>
</table>
{{template "signature" .}}
</body></html>`

const paymentCertificateTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8">{{template "style" .}}</head><body>
{{template "titleblock" .Header}}
<div class="certificate">Certified that the work billed for herein has been actually
measured and recorded, that the quantities billed are correct, and that the amount of
Rs. {{.GrandTotal}} is due for payment to the contractor named above.</div>
<table>
<thead><tr><th>Account Head</th><th>Amount (Rs.)</th></tr></thead>
<tbody>
<tr><td>Work order items</td><td class="num">{{.MainTotal}}</td></tr>
<tr><td>Extra items</td><td class="num">{{.ExtraTotal}}</td></tr>
<tr class="total"><td>Total authorized for payment</td><td class="num">{{.GrandTotal}}</td></tr>
</tbody>
</table>
{{template "signature" .}}
</body></html>`

const workOrderDetailTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8">{{template "style" .}}</head><body>
{{template "titleblock" .Header}}
<table>
<thead><tr>
<th style="width:6%">S.No</th><th style="width:10%">Item</th><th style="width:38%">Description</th>
<th style="width:8%">Unit</th><th style="width:12%">Sanctioned Qty</th><th style="width:12%">Rate</th><th style="width:14%">Amount</th>
</tr></thead>
<tbody>
{{range .Lines}}<tr><td class="num">{{.Serial}}</td><td>{{.Code}}</td><td>{{.Description}}</td>
<td>{{.Unit}}</td><td class="num">{{.OriginalQty}}</td><td class="num">{{.Rate}}</td><td class="num">{{.Amount}}</td></tr>
{{end}}</tbody>
</table>
{{template "signature" .}}
</body></html>`

const billQuantityDetailTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8">{{template "style" .}}</head><body>
{{template "titleblock" .Header}}
<table>
<thead><tr>
<th style="width:6%">S.No</th><th style="width:10%">Item</th><th style="width:38%">Description</th>
<th style="width:8%">Unit</th><th style="width:12%">Billed Qty</th><th style="width:12%">Rate</th><th style="width:14%">Amount</th>
</tr></thead>
<tbody>
{{range .Lines}}<tr><td class="num">{{.Serial}}</td><td>{{.Code}}</td><td>{{.Description}}</td>
<td>{{.Unit}}</td><td class="num">{{.Qty}}</td><td class="num">{{.Rate}}</td><td class="num">{{.Amount}}</td></tr>
{{end}}<tr class="total"><td colspan="6">Total value of work done</td><td class="num">{{.MainTotal}}</td></tr>
</tbody>
</table>
{{template "signature" .}}
</body></html>`

const deviationStatementTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8">{{template "style" .}}</head><body>
{{template "titleblock" .Header}}
<table>
<thead><tr>
<th style="width:5%">S.No</th><th style="width:9%">Item</th><th style="width:26%">Description</th>
<th style="width:6%">Unit</th><th style="width:9%">W.O. Qty</th><th style="width:9%">Billed Qty</th>
<th style="width:9%">Excess Qty</th><th style="width:9%">Saving Qty</th><th style="width:9%">Excess Amt</th><th style="width:9%">Saving Amt</th>
</tr></thead>
<tbody>
{{range .Deviations}}<tr><td class="num">{{.Serial}}</td><td>{{.Code}}</td><td>{{.Description}}</td>
<td>{{.Unit}}</td><td class="num">{{.OriginalQty}}</td><td class="num">{{.BilledQty}}</td>
<td class="num">{{.Excess}}</td><td class="num">{{.Saving}}</td><td class="num">{{.ExcessAmount}}</td><td class="num">{{.SavingAmount}}</td></tr>
{{end}}</tbody>
</table>
{{template "signature" .}}
</body></html>`

const certificateIITemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8">{{template "style" .}}</head><body>
{{template "titleblock" .Header}}
<h2>Certificate II</h2>
<div class="certificate">Certified that in addition to the test checks exercised by the
supervisory staff, the measurements on which this bill of Rs. {{.GrandTotal}} is based
were test checked as prescribed, and that the work has been executed in accordance with
the sanctioned specifications across {{.ItemCount}} work order items.</div>
<div class="certificate">Certified further that no deviation beyond the sanctioned
tolerance has been admitted without competent approval.</div>
{{template "signature" .}}
</body></html>`

const certificateIIITemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8">{{template "style" .}}</head><body>
{{template "titleblock" .Header}}
<h2>Certificate III</h2>
<div class="certificate">Certified that the materials supplied by the department, if any,
have been accounted for and recovered at the prescribed rates, and that secured advances
outstanding against the contractor stand fully adjusted in this bill of Rs. {{.GrandTotal}}.</div>
<div class="certificate">Certified further that the contractor has no claim outstanding
against this work other than those included herein.</div>
{{template "signature" .}}
</body></html>`

const noteSheetTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8">{{template "style" .}}</head><body>
{{template "titleblock" .Header}}
<table>
<thead><tr><th style="width:60%">Particulars</th><th style="width:40%">Entry</th></tr></thead>
<tbody>
<tr><td>Number of work order items billed</td><td class="num">{{.ItemCount}}</td></tr>
<tr><td>Number of extra items billed</td><td class="num">{{.ExtraCount}}</td></tr>
<tr><td>Value of work order items (Rs.)</td><td class="num">{{.MainTotal}}</td></tr>
<tr><td>Value of extra items (Rs.)</td><td class="num">{{.ExtraTotal}}</td></tr>
<tr class="total"><td>Net amount recommended for payment (Rs.)</td><td class="num">{{.GrandTotal}}</td></tr>
</tbody>
</table>
<div class="certificate">Submitted for scrutiny and orders. The bill has been checked
against the measurement book and the agreement rates.</div>
{{template "signature" .}}
</body></html>`

const extraItemsTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8">{{template "style" .}}</head><body>
{{template "titleblock" .Header}}
<table>
<thead><tr>
<th style="width:6%">S.No</th><th style="width:44%">Description</th><th style="width:10%">Unit</th>
<th style="width:12%">Quantity</th><th style="width:12%">Rate</th><th style="width:16%">Amount</th>
</tr></thead>
<tbody>
{{range .Extras}}<tr><td class="num">{{.Serial}}</td><td>{{.Description}}</td><td>{{.Unit}}</td>
<td class="num">{{.Qty}}</td><td class="num">{{.Rate}}</td><td class="num">{{.Amount}}</td></tr>
{{end}}<tr class="total"><td colspan="5">Total value of extra items</td><td class="num">{{.ExtraTotal}}</td></tr>
</tbody>
</table>
{{template "signature" .}}
</body></html>`

var documentTemplates = map[string]string{
	"style":                styleTemplate,
	"titleblock":           titleblockTemplate,
	"signature":            signatureTemplate,
	"cover_summary":        coverSummaryTemplate,
	"payment_certificate":  paymentCertificateTemplate,
	"work_order_detail":    workOrderDetailTemplate,
	"bill_quantity_detail": billQuantityDetailTemplate,
	"deviation_statement":  deviationStatementTemplate,
	"certificate_ii":       certificateIITemplate,
	"certificate_iii":      certificateIIITemplate,
	"note_sheet":           noteSheetTemplate,
	"extra_items":          extraItemsTemplate,
}