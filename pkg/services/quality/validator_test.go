package quality

import (
	"testing"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func markupWith(body string) domain.Markup {
	return domain.Markup{
		DocumentType: domain.DocCoverSummary,
		HTML:         []byte("<html><body>" + body + "</body></html>"),
	}
}

func htmlArtifact(body string) *domain.DocumentArtifact {
	return &domain.DocumentArtifact{
		ID:           "a1",
		DocumentType: domain.DocCoverSummary,
		Format:       domain.FormatHTML,
		Payload:      []byte("<html><body>" + body + "</body></html>"),
	}
}

func TestValidator_Validate_FullFidelity(t *testing.T) {
	v := NewValidator(DefaultThreshold)
	markup := markupWith(`<h1>First Page Summary</h1>
		<table><tr><th>Item</th><th>Amount</th></tr>
		<tr><td>Earthwork</td><td>15000.00</td></tr></table>`)

	score, err := v.Validate(htmlArtifact(`<h1>First Page Summary</h1>
		<p>Item Amount Earthwork 15000.00</p>`), markup)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
	assert.True(t, v.Accept(score))
}

func TestValidator_Validate_PartialFidelity(t *testing.T) {
	v := NewValidator(DefaultThreshold)
	markup := markupWith(`<table>
		<tr><td>alpha</td><td>beta</td></tr>
		<tr><td>gamma</td><td>delta</td></tr></table>`)

	// Two of four cells survive the conversion.
	score, err := v.Validate(htmlArtifact("<p>alpha beta</p>"), markup)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, score, 1e-9)
	assert.False(t, v.Accept(score))
}

func TestValidator_Validate_CaseAndWhitespaceInsensitive(t *testing.T) {
	v := NewValidator(DefaultThreshold)
	markup := markupWith("<h2>Deviation   Statement</h2>")

	score, err := v.Validate(htmlArtifact("<div>DEVIATION STATEMENT</div>"), markup)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestValidator_Validate_NestedCellsNotDoubleCounted(t *testing.T) {
	v := NewValidator(DefaultThreshold)
	// A cell wrapping its text in a div still counts as an expectation.
	markup := markupWith("<table><tr><td><div>wrapped</div></td></tr></table>")

	score, err := v.Validate(htmlArtifact("<p>nothing here</p>"), markup)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	score, err = v.Validate(htmlArtifact("<p>wrapped</p>"), markup)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestValidator_Validate_NestedTableCountedOnce(t *testing.T) {
	v := NewValidator(DefaultThreshold)
	// The outer cell holds a table; only the inner cells are expectations, so
	// recovering "inner" alone scores full rather than half.
	markup := markupWith(`<table><tr><td>
		<table><tr><td>inner</td></tr></table>
	</td></tr></table>`)

	score, err := v.Validate(htmlArtifact("<p>inner</p>"), markup)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestValidator_Validate_NoExpectations(t *testing.T) {
	v := NewValidator(DefaultThreshold)
	markup := markupWith("<p>prose only, no headings or cells</p>")

	score, err := v.Validate(htmlArtifact("<p>anything</p>"), markup)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestValidator_Validate_UnknownFormat(t *testing.T) {
	v := NewValidator(DefaultThreshold)
	artifact := &domain.DocumentArtifact{Format: domain.ArtifactFormat("docx")}

	_, err := v.Validate(artifact, markupWith("<h1>title</h1>"))
	assert.Error(t, err)
}

func TestNewValidator_ThresholdGuard(t *testing.T) {
	assert.Equal(t, DefaultThreshold, NewValidator(0).Threshold())
	assert.Equal(t, DefaultThreshold, NewValidator(1.5).Threshold())
	assert.Equal(t, 0.9, NewValidator(0.9).Threshold())
}

func TestValidator_Accept_Boundary(t *testing.T) {
	v := NewValidator(0.95)
	assert.True(t, v.Accept(0.95))
	assert.False(t, v.Accept(0.9499))
}
