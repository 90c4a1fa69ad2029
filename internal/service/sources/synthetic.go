package sources

import (
	"context"

	"IntelPull/internal/domain/models"
	"IntelPull/internal/service/fallback"
)

const defaultSyntheticConfidence = 0.6

// Synthetic is an always-available source backed by the fallback resolver.
// It supports every category and keeps the pipeline productive when no
// upstream source is configured or all of them fail.
type Synthetic struct {
	resolver   *fallback.Resolver
	confidence float64
}

// SyntheticOption configures Synthetic.
type SyntheticOption func(*Synthetic)

// WithSyntheticConfidence overrides the reported confidence.
func WithSyntheticConfidence(c float64) SyntheticOption {
	return func(s *Synthetic) {
		if c > 0 && c <= 1 {
			s.confidence = c
		}
	}
}

// NewSynthetic creates a synthetic source over the given resolver.
func NewSynthetic(resolver *fallback.Resolver, opts ...SyntheticOption) *Synthetic {
	s := &Synthetic{resolver: resolver, confidence: defaultSyntheticConfidence}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Synthetic) Name() string { return "synthetic" }

func (s *Synthetic) Supports(models.Category) bool { return true }

func (s *Synthetic) Fetch(_ context.Context, req models.IntelligenceRequest) (models.SourceResult, error) {
	ticker := req.NormalizedTicker()
	data := s.resolver.Resolve(ticker, req.Category, req.Params)

	confidence := s.confidence
	if s.resolver.FromCurated(ticker) {
		// Curated entries are hand-maintained and trusted more.
		confidence = 0.9
	}

	return models.SourceResult{
		Source:     s.Name(),
		Data:       data,
		Confidence: confidence,
	}, nil
}
