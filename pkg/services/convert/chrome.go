package convert

import (
	"context"
	"fmt"
	"io"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// paper sizes in inches, the unit the DevTools print API expects
var paperSizes = map[string][2]float64{
	"A4":     {8.27, 11.69},
	"Letter": {8.5, 11},
	"Legal":  {8.5, 14},
}

// ChromeBackend prints markup through headless Chrome. It is first in the
// default chain because Chrome's print-media CSS handling honours the
// pagination hints most faithfully.
type ChromeBackend struct {
	profile domain.BackendProfile
}

func NewChromeBackend(profile domain.BackendProfile) *ChromeBackend {
	return &ChromeBackend{profile: profile}
}

func (b *ChromeBackend) Name() string { return b.profile.Name }

func (b *ChromeBackend) Convert(ctx context.Context, markup domain.Markup) ([]byte, error) {
	size, ok := paperSizes[b.profile.PageSize]
	if !ok {
		return nil, fmt.Errorf("unsupported page size %q", b.profile.PageSize)
	}

	l := launcher.New().Headless(true)
	defer l.Cleanup()

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(url).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to chrome: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer page.Close()

	if err := page.SetDocumentContent(string(markup.HTML)); err != nil {
		return nil, fmt.Errorf("failed to set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed to wait for page load: %w", err)
	}

	marginIn := b.profile.MarginMM / 25.4
	req := &proto.PagePrintToPDF{
		Landscape:       b.profile.Orientation == domain.OrientationLandscape,
		PrintBackground: true,
		Scale:           gson.Num(b.profile.Scale),
		PaperWidth:      gson.Num(size[0]),
		PaperHeight:     gson.Num(size[1]),
		MarginTop:       gson.Num(marginIn),
		MarginBottom:    gson.Num(marginIn),
		MarginLeft:      gson.Num(marginIn),
		MarginRight:     gson.Num(marginIn),
	}

	stream, err := page.PDF(req)
	if err != nil {
		return nil, fmt.Errorf("failed to print to pdf: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf stream: %w", err)
	}
	return data, nil
}
