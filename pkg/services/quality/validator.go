// Package quality scores produced artifacts against the markup that
// produced them.
//
// The similarity metric is a cell-content structural diff: the fraction of
// headings and table cells in the source markup whose text is recoverable
// from the artifact. A pixel diff would couple the score to font rasterics
// each backend controls; recoverable content is what the statutory documents
// are actually judged on.
package quality

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/gen2brain/go-fitz"
)

// DefaultThreshold is the acceptance score for a complete artifact.
const DefaultThreshold = 0.95

// Validator computes artifact quality scores in [0,1].
type Validator struct {
	threshold float64
}

func NewValidator(threshold float64) *Validator {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Validator{threshold: threshold}
}

func (v *Validator) Threshold() float64 { return v.threshold }

// Accept reports whether a score meets the threshold. Sub-threshold
// artifacts are surfaced as degraded, never silently accepted.
func (v *Validator) Accept(score float64) bool { return score >= v.threshold }

// Validate scores an artifact against the markup it was converted from.
func (v *Validator) Validate(artifact *domain.DocumentArtifact, markup domain.Markup) (float64, error) {
	expected, err := expectedFragments(markup.HTML)
	if err != nil {
		return 0, err
	}
	if len(expected) == 0 {
		return 1, nil
	}

	var haystack string
	switch artifact.Format {
	case domain.FormatHTML:
		haystack, err = htmlText(artifact.Payload)
	case domain.FormatPDF:
		haystack, err = pdfText(artifact.Payload)
	default:
		return 0, fmt.Errorf("unknown artifact format %q", artifact.Format)
	}
	if err != nil {
		return 0, err
	}
	haystack = normalize(haystack)

	found := 0
	for _, fragment := range expected {
		if strings.Contains(haystack, fragment) {
			found++
		}
	}
	return float64(found) / float64(len(expected)), nil
}

// expectedFragments extracts the normalized heading and cell texts that a
// faithful conversion must preserve.
func expectedFragments(markup []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}
	var fragments []string
	doc.Find("h1, h2, th, td").Each(func(_ int, s *goquery.Selection) {
		// Skip cells that contain other cells so nested tables are not
		// counted twice; a cell wrapping its text in plain elements still
		// contributes its text.
		if s.Find("h1, h2, th, td").Length() > 0 {
			return
		}
		text := normalize(s.Text())
		if text != "" {
			fragments = append(fragments, text)
		}
	})
	return fragments, nil
}

func htmlText(payload []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to parse artifact html: %w", err)
	}
	return doc.Text(), nil
}

func pdfText(payload []byte) (string, error) {
	doc, err := fitz.NewFromMemory(payload)
	if err != nil {
		return "", fmt.Errorf("failed to open artifact pdf: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		text, err := doc.Text(page)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", page+1, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
