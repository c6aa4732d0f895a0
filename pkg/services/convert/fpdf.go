package convert

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/jung-kurt/gofpdf"
)

// FPDFBackend is the last-resort native renderer. It does not interpret CSS;
// it recovers the heading and table structure from the markup and draws a
// plain fixed-width table with gofpdf. Lower fidelity, but it needs no
// external binary and cannot be starved of a browser.
type FPDFBackend struct {
	profile domain.BackendProfile
}

func NewFPDFBackend(profile domain.BackendProfile) *FPDFBackend {
	return &FPDFBackend{profile: profile}
}

func (b *FPDFBackend) Name() string { return b.profile.Name }

func (b *FPDFBackend) Convert(ctx context.Context, markup domain.Markup) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	orientation := "P"
	if b.profile.Orientation == domain.OrientationLandscape {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", b.profile.PageSize, "")
	margin := b.profile.MarginMM
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 2*margin

	doc.Find("h1, h2").Each(func(_ int, s *goquery.Selection) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(usable, 7, clean(s.Text()), "", "C", false)
		pdf.Ln(2)
	})

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		cols := rows.First().Find("th, td").Length()
		if cols == 0 {
			return
		}
		colWidth := usable / float64(cols)
		rows.Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("th, td")
			header := row.Find("th").Length() > 0
			if header {
				pdf.SetFont("Helvetica", "B", 8)
			} else {
				pdf.SetFont("Helvetica", "", 8)
			}
			cells.Each(func(_ int, cell *goquery.Selection) {
				pdf.CellFormat(colWidth, 6, clean(cell.Text()), "1", 0, "L", false, 0, "")
			})
			pdf.Ln(-1)
		})
		pdf.Ln(4)
	})

	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		// Leaf divs only, so nested wrappers do not repeat their children.
		if s.Children().Length() > 0 {
			return
		}
		text := clean(s.Text())
		if text == "" {
			return
		}
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(usable, 5, text, "", "L", false)
		pdf.Ln(2)
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
