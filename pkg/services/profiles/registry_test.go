package profiles

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	ctx := context.Background()

	names, err := r.Names(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"chrome", "wkhtmltopdf", "fpdf"}, names)

	chrome, err := r.Get(ctx, "chrome")
	require.NoError(t, err)
	assert.Equal(t, "A4", chrome.PageSize)
	assert.Equal(t, domain.OrientationPortrait, chrome.Orientation)
	assert.Equal(t, 12.0, chrome.MarginMM)

	wk, err := r.Get(ctx, "wkhtmltopdf")
	require.NoError(t, err)
	assert.Equal(t, "wkhtmltopdf", wk.Binary)
	assert.Equal(t, 300, wk.DPI)
}

func TestRegistry_Get_Unknown(t *testing.T) {
	_, err := NewDefaultRegistry().Get(context.Background(), "latex")
	assert.Error(t, err)
}

func TestNewRegistry_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.ini")
	require.NoError(t, os.WriteFile(path, []byte(`
[chrome]
page_size = Letter
orientation = landscape
margin_mm = 8.5
scale = 0.9

[wkhtmltopdf]
binary = /opt/wkhtmltopdf/bin/wkhtmltopdf
`), 0o644))

	r, err := NewRegistry(path)
	require.NoError(t, err)
	ctx := context.Background()

	chrome, err := r.Get(ctx, "chrome")
	require.NoError(t, err)
	assert.Equal(t, "Letter", chrome.PageSize)
	assert.Equal(t, domain.OrientationLandscape, chrome.Orientation)
	assert.Equal(t, 8.5, chrome.MarginMM)
	assert.Equal(t, 0.9, chrome.Scale)
	// Keys absent from the section keep their defaults.
	assert.Equal(t, 96, chrome.DPI)

	wk, err := r.Get(ctx, "wkhtmltopdf")
	require.NoError(t, err)
	assert.Equal(t, "/opt/wkhtmltopdf/bin/wkhtmltopdf", wk.Binary)
	assert.Equal(t, "A4", wk.PageSize)

	// Untouched backends survive the overlay intact.
	fpdf, err := r.Get(ctx, "fpdf")
	require.NoError(t, err)
	assert.Equal(t, 72, fpdf.DPI)
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "absent.ini"))
	assert.Error(t, err)
}

func TestRegistry_All_IsACopy(t *testing.T) {
	r := NewDefaultRegistry()
	ctx := context.Background()

	all, err := r.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	mutated := all["chrome"]
	mutated.PageSize = "Legal"
	all["chrome"] = mutated

	chrome, err := r.Get(ctx, "chrome")
	require.NoError(t, err)
	assert.Equal(t, "A4", chrome.PageSize)
}
