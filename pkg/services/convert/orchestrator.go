package convert

import (
	"context"
	"errors"
	"time"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Orchestrator tries backends strictly in priority order until one returns a
// structurally valid document. Attempts are atomic and independent; outputs
// are never blended. Exhausting the chain is reported, not retried; the
// conversion is deterministic, so identical inputs cannot succeed on a rerun.
type Orchestrator struct {
	backends       []Backend
	attemptTimeout time.Duration
}

func NewOrchestrator(backends []Backend, attemptTimeout time.Duration) *Orchestrator {
	if attemptTimeout <= 0 {
		attemptTimeout = 60 * time.Second
	}
	return &Orchestrator{backends: backends, attemptTimeout: attemptTimeout}
}

// Convert returns the produced bytes and the identity of the backend that
// produced them. The backend identity is never hidden from the caller.
func (o *Orchestrator) Convert(ctx context.Context, markup domain.Markup) ([]byte, string, error) {
	logger := zerolog.Ctx(ctx)

	var attempts []domain.BackendFailure
	for _, backend := range o.backends {
		data, err := o.attempt(ctx, backend, markup)
		if err == nil && structurallyValid(data) {
			logger.Debug().
				Str("backend", backend.Name()).
				Str("document", string(markup.DocumentType)).
				Int("bytes", len(data)).
				Msg("conversion succeeded")
			return data, backend.Name(), nil
		}
		if err == nil {
			err = errors.New("backend returned structurally invalid output")
		}
		logger.Warn().
			Err(err).
			Str("backend", backend.Name()).
			Str("document", string(markup.DocumentType)).
			Msg("backend attempt failed, falling through")
		attempts = append(attempts, domain.BackendFailure{Backend: backend.Name(), Err: err})

		if ctx.Err() != nil {
			break
		}
	}
	return nil, "", &domain.RenderError{DocumentType: markup.DocumentType, Attempts: attempts}
}

// Scorer gates conversion output on structural fidelity.
type Scorer interface {
	Validate(artifact *domain.DocumentArtifact, markup domain.Markup) (float64, error)
	Accept(score float64) bool
	Threshold() float64
}

// ConvertValidated runs the chain with the quality gate folded in: a backend
// whose output scores below threshold counts as a soft failure and the next
// backend is tried. When the chain is exhausted the best-scoring artifact is
// returned marked degraded rather than discarded.
func (o *Orchestrator) ConvertValidated(ctx context.Context, markup domain.Markup, scorer Scorer, newID func() string) (*domain.DocumentArtifact, error) {
	logger := zerolog.Ctx(ctx)

	var attempts []domain.BackendFailure
	var best *domain.DocumentArtifact
	for _, backend := range o.backends {
		data, err := o.attempt(ctx, backend, markup)
		if err == nil && !structurallyValid(data) {
			err = errors.New("backend returned structurally invalid output")
		}
		if err != nil {
			logger.Warn().
				Err(err).
				Str("backend", backend.Name()).
				Str("document", string(markup.DocumentType)).
				Msg("backend attempt failed, falling through")
			attempts = append(attempts, domain.BackendFailure{Backend: backend.Name(), Err: err})
			if ctx.Err() != nil {
				break
			}
			continue
		}

		artifact := &domain.DocumentArtifact{
			ID:           newID(),
			DocumentType: markup.DocumentType,
			Format:       domain.FormatPDF,
			Payload:      data,
			BackendUsed:  backend.Name(),
		}
		score, err := scorer.Validate(artifact, markup)
		if err != nil {
			attempts = append(attempts, domain.BackendFailure{Backend: backend.Name(), Err: err})
			continue
		}
		artifact.QualityScore = score
		if scorer.Accept(score) {
			return artifact, nil
		}

		degraded := &domain.QualityDegraded{
			DocumentType: markup.DocumentType,
			Score:        score,
			Threshold:    scorer.Threshold(),
			Backend:      backend.Name(),
		}
		logger.Warn().
			Float64("score", score).
			Str("backend", backend.Name()).
			Str("document", string(markup.DocumentType)).
			Msg("artifact below quality threshold, trying next backend")
		attempts = append(attempts, domain.BackendFailure{Backend: backend.Name(), Err: degraded})
		if best == nil || score > best.QualityScore {
			best = artifact
		}
	}

	if best != nil {
		// Supersede, never mutate: the degraded result is a fresh artifact.
		final := *best
		final.ID = newID()
		final.Degraded = true
		return &final, nil
	}
	return nil, &domain.RenderError{DocumentType: markup.DocumentType, Attempts: attempts}
}

// attempt runs one backend under the per-attempt timeout. A hung backend is
// cut off and counted as a failure of that backend only.
func (o *Orchestrator) attempt(ctx context.Context, backend Backend, markup domain.Markup) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, o.attemptTimeout)
	defer cancel()

	data, err := backend.Convert(attemptCtx, markup)
	if err != nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return nil, &domain.TimeoutError{Backend: backend.Name(), Limit: o.attemptTimeout}
	}
	return data, err
}
