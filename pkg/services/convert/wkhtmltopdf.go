package convert

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/de-tools/bill-forge/pkg/models/domain"
)

// WkhtmltopdfBackend shells out to the wkhtmltopdf binary, reading markup on
// stdin and writing the PDF to stdout. Its WebKit engine interprets the same
// markup differently from Chrome, which is exactly why it sits in the chain.
type WkhtmltopdfBackend struct {
	profile domain.BackendProfile
}

func NewWkhtmltopdfBackend(profile domain.BackendProfile) *WkhtmltopdfBackend {
	return &WkhtmltopdfBackend{profile: profile}
}

func (b *WkhtmltopdfBackend) Name() string { return b.profile.Name }

func (b *WkhtmltopdfBackend) Convert(ctx context.Context, markup domain.Markup) ([]byte, error) {
	binary := b.profile.Binary
	if binary == "" {
		binary = "wkhtmltopdf"
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("wkhtmltopdf binary not found: %w", err)
	}

	orientation := "Portrait"
	if b.profile.Orientation == domain.OrientationLandscape {
		orientation = "Landscape"
	}
	margin := fmt.Sprintf("%.0fmm", b.profile.MarginMM)

	args := []string{
		"--quiet",
		"--page-size", b.profile.PageSize,
		"--orientation", orientation,
		"--margin-top", margin,
		"--margin-bottom", margin,
		"--margin-left", margin,
		"--margin-right", margin,
		"--dpi", strconv.Itoa(b.profile.DPI),
		"--zoom", strconv.FormatFloat(b.profile.Scale, 'f', 2, 64),
		"--encoding", "utf-8",
		"-", "-",
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(markup.HTML)

	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("wkhtmltopdf failed: %w: %s", err, errOut.String())
	}
	return out.Bytes(), nil
}
