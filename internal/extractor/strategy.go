package extractor

import (
	"github.com/goliatone/go-docref/internal/domain"
)

// Options are the CLI-derived switches the eligibility chain consumes.
type Options struct {
	// IncludeFullFiles enables extraction of anchorless (full-file) links.
	IncludeFullFiles bool
}

// Strategy decides whether a validated link's content should be extracted.
// A nil decision defers to the next strategy in the chain, which turns
// precedence changes into a list reordering instead of a logic rewrite.
type Strategy interface {
	Decide(link *domain.Link, opts Options) *domain.EligibilityDecision
}

// DefaultChain returns the ordered eligibility chain. List order is strict
// precedence: an author stop marker beats a force marker, which beats the
// anchor-present default, which beats the full-file flag gate.
func DefaultChain() []Strategy {
	return []Strategy{
		StopMarkerStrategy{},
		ForceMarkerStrategy{},
		AnchorPresentStrategy{},
		FullFileStrategy{},
	}
}

// Evaluate walks the chain in order and returns the first decision.
func Evaluate(chain []Strategy, link *domain.Link, opts Options) domain.EligibilityDecision {
	for _, strategy := range chain {
		if decision := strategy.Decide(link, opts); decision != nil {
			return *decision
		}
	}
	return domain.EligibilityDecision{
		Eligible: false,
		Reason:   "no eligibility strategy produced a decision",
	}
}

// StopMarkerStrategy honors the author's opt-out comment.
type StopMarkerStrategy struct{}

func (StopMarkerStrategy) Decide(link *domain.Link, _ Options) *domain.EligibilityDecision {
	if !link.Markers.Stop {
		return nil
	}
	return &domain.EligibilityDecision{
		Eligible: false,
		Reason:   "author opted out via docref:skip marker",
	}
}

// ForceMarkerStrategy honors the author's opt-in comment.
type ForceMarkerStrategy struct{}

func (ForceMarkerStrategy) Decide(link *domain.Link, _ Options) *domain.EligibilityDecision {
	if !link.Markers.Force {
		return nil
	}
	return &domain.EligibilityDecision{
		Eligible: true,
		Reason:   "author opted in via docref:embed marker",
	}
}

// AnchorPresentStrategy makes section and block references eligible by
// default.
type AnchorPresentStrategy struct{}

func (AnchorPresentStrategy) Decide(link *domain.Link, _ Options) *domain.EligibilityDecision {
	if link.AnchorType == domain.AnchorNone {
		return nil
	}
	return &domain.EligibilityDecision{
		Eligible: true,
		Reason:   "anchored reference eligible by default",
	}
}

// FullFileStrategy gates anchorless links behind the full-files flag.
type FullFileStrategy struct{}

func (FullFileStrategy) Decide(link *domain.Link, opts Options) *domain.EligibilityDecision {
	if link.AnchorType != domain.AnchorNone {
		return nil
	}
	if opts.IncludeFullFiles {
		return &domain.EligibilityDecision{
			Eligible: true,
			Reason:   "full-file link eligible via full-files flag",
		}
	}
	return &domain.EligibilityDecision{
		Eligible: false,
		Reason:   "full-file link skipped; full-files flag not set",
	}
}
