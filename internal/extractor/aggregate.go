package extractor

import (
	"encoding/json"

	"github.com/goliatone/go-docref/internal/domain"
	"github.com/goliatone/go-docref/internal/identity"
)

// aggregator collapses byte-identical extracted content into one
// content-addressed entry per unique text, keyed by a deterministic hash.
type aggregator struct {
	blocks         map[string]*domain.ContentBlock
	successCount   int
	extractedChars int
}

func newAggregator() *aggregator {
	return &aggregator{blocks: map[string]*domain.ContentBlock{}}
}

func (a *aggregator) add(link *domain.Link, content string) {
	a.successCount++
	a.extractedChars += len(content)

	ref := domain.SourceLinkRef{
		RawSourceLink: link.FullMatch,
		SourceLine:    link.Line,
	}

	hash := identity.ContentHash(content)
	if block, ok := a.blocks[hash]; ok {
		block.SourceLinks = append(block.SourceLinks, ref)
		return
	}
	a.blocks[hash] = &domain.ContentBlock{
		Content:       content,
		ContentLength: len(content),
		SourceLinks:   []domain.SourceLinkRef{ref},
	}
}

// finish assembles the aggregated output. The serialized size of the content
// map is measured before the size field itself joins the payload, so the
// metadata never contributes to its own value.
func (a *aggregator) finish(results []*domain.ExtractionResult) *domain.AggregatedOutput {
	serialized, err := json.Marshal(a.blocks)
	serializedLength := 0
	if err == nil {
		serializedLength = len(serialized)
	}

	uniqueChars := 0
	for _, block := range a.blocks {
		uniqueChars += block.ContentLength
	}

	duplicateChars := a.extractedChars - uniqueChars

	compression := 1.0
	if a.extractedChars > 0 {
		compression = float64(uniqueChars) / float64(a.extractedChars)
	}

	return &domain.AggregatedOutput{
		ExtractedContentBlocks: &domain.ContentBlocks{
			TotalContentCharacterLength: serializedLength,
			Blocks:                      a.blocks,
		},
		OutgoingLinksReport: domain.OutgoingLinksReport{ProcessedLinks: results},
		Stats: domain.Stats{
			TotalLinks:               len(results),
			UniqueContent:            len(a.blocks),
			DuplicateContentDetected: a.successCount - len(a.blocks),
			TokensSaved:              duplicateChars / charsPerToken,
			CompressionRatio:         compression,
		},
	}
}

// charsPerToken is the rough characters-per-token heuristic used to report
// dedup savings in token terms.
const charsPerToken = 4
