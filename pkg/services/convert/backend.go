// Package convert turns rendered markup into final PDF bytes through an
// ordered chain of backends with automatic fallback.
package convert

import (
	"bytes"
	"context"
	"fmt"

	"github.com/de-tools/bill-forge/pkg/models/domain"
)

// Backend is one conversion implementation with its own profile. An attempt
// is atomic: any handle or temporary context it needs is acquired and
// released inside Convert, never held across attempts.
type Backend interface {
	Name() string
	Convert(ctx context.Context, markup domain.Markup) ([]byte, error)
}

var pdfMagic = []byte("%PDF-")

// structurallyValid is the success criterion for a backend attempt: the
// output must be non-empty and carry the PDF header.
func structurallyValid(data []byte) bool {
	return len(data) > 0 && bytes.HasPrefix(data, pdfMagic)
}

// BuildChain instantiates backends in the priority order named by the run
// configuration, each bound to its profile.
func BuildChain(names []string, profiles map[string]domain.BackendProfile) ([]Backend, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("backend chain is empty")
	}
	chain := make([]Backend, 0, len(names))
	for _, name := range names {
		profile, ok := profiles[name]
		if !ok {
			return nil, fmt.Errorf("no profile for backend %q", name)
		}
		switch name {
		case "chrome":
			chain = append(chain, NewChromeBackend(profile))
		case "wkhtmltopdf":
			chain = append(chain, NewWkhtmltopdfBackend(profile))
		case "fpdf":
			chain = append(chain, NewFPDFBackend(profile))
		default:
			return nil, fmt.Errorf("unknown backend %q", name)
		}
	}
	return chain, nil
}
