package domain

import (
	"encoding/json"
	"sort"
)

// LinkType identifies the source syntax a citation was written in.
type LinkType string

const (
	// LinkMarkdown covers bracketed-path links: [text](path#anchor).
	LinkMarkdown LinkType = "markdown"
	// LinkWiki covers double-bracketed links: [[path#anchor|text]].
	LinkWiki LinkType = "wiki"
)

// LinkScope distinguishes same-document references from cross-document ones.
type LinkScope string

const (
	ScopeInternal      LinkScope = "internal"
	ScopeCrossDocument LinkScope = "cross-document"
)

// AnchorType classifies the fragment a link targets. AnchorNone marks a
// full-file link. Invariant: a link's Target.Anchor is empty exactly when its
// AnchorType is AnchorNone.
type AnchorType string

const (
	AnchorNone   AnchorType = ""
	AnchorHeader AnchorType = "header"
	AnchorBlock  AnchorType = "block"
)

// SourceRef locates the document a link was found in.
type SourceRef struct {
	Path SourcePath `json:"path"`
}

// SourcePath carries the resolved location of the source document.
type SourcePath struct {
	Absolute string `json:"absolute"`
}

// TargetPath carries the three forms of a link target path. Each form serves
// a different consumer: Raw for diagnostics, Absolute for cache lookups,
// Relative for display.
type TargetPath struct {
	Raw      string `json:"raw"`
	Absolute string `json:"absolute"`
	Relative string `json:"relative"`
}

// Target is the destination side of a link.
type Target struct {
	Path TargetPath `json:"path"`
	// Anchor retains the fragment exactly as written, caret included for
	// block references. Empty for full-file links.
	Anchor string `json:"anchor,omitempty"`
}

// Markers records author opt-in/opt-out comments found on the link's source
// line. Detected at parse time so eligibility evaluation needs no re-scan.
type Markers struct {
	Stop  bool `json:"stop,omitempty"`
	Force bool `json:"force,omitempty"`
}

// Link is a single citation from one document to another document or to a
// position within the same document. Created once per parse and never mutated
// except for Validation attachment, which the validator performs post-parse.
type Link struct {
	LinkType   LinkType   `json:"linkType"`
	Scope      LinkScope  `json:"scope"`
	AnchorType AnchorType `json:"anchorType,omitempty"`
	Source     SourceRef  `json:"source"`
	Target     Target     `json:"target"`
	Text       string     `json:"text"`
	FullMatch  string     `json:"fullMatch"`
	Line       int        `json:"line"`
	Column     int        `json:"column"`
	Markers    Markers    `json:"markers,omitempty"`

	// Validation is attached by the validator, never by the parser.
	Validation *ValidationVerdict `json:"validation,omitempty"`
}

// Anchor is a named position a link fragment can target. Line and Column are
// always populated regardless of the originating pattern because resolution
// compares anchors by ID alone.
type Anchor struct {
	AnchorType AnchorType `json:"anchorType"`
	ID         string     `json:"id"`
	RawText    string     `json:"rawText,omitempty"`
	FullMatch  string     `json:"fullMatch"`
	Line       int        `json:"line"`
	Column     int        `json:"column"`
}

// Heading is an ATX heading found in a document.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Raw   string `json:"raw"`
}

// ValidationStatus is the verdict attached to a link after resolution.
type ValidationStatus string

const (
	StatusValid   ValidationStatus = "valid"
	StatusWarning ValidationStatus = "warning"
	StatusError   ValidationStatus = "error"
)

// ValidationVerdict captures the outcome of resolving a link's target file
// and anchor. Suggestion is populated for fuzzy anchor matches.
type ValidationVerdict struct {
	Status     ValidationStatus `json:"status"`
	Error      string           `json:"error,omitempty"`
	Suggestion string           `json:"suggestion,omitempty"`
}

// ValidationSummary aggregates verdict counts for one validated file.
type ValidationSummary struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// EligibilityDecision is the outcome of one eligibility strategy.
type EligibilityDecision struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason"`
}

// ExtractionStatus classifies the per-link outcome of content extraction.
type ExtractionStatus string

const (
	ExtractionSuccess ExtractionStatus = "success"
	ExtractionSkipped ExtractionStatus = "skipped"
	ExtractionError   ExtractionStatus = "error"
)

// SuccessDetails carries the extracted payload for a successful link.
type SuccessDetails struct {
	DecisionReason   string `json:"decisionReason"`
	ExtractedContent string `json:"extractedContent"`
}

// FailureDetails explains a skipped or failed link.
type FailureDetails struct {
	Reason string `json:"reason"`
}

// ExtractionResult is the per-link row of an extraction run. Exactly one of
// Success or Failure is present.
type ExtractionResult struct {
	SourceLink *Link            `json:"sourceLink"`
	Status     ExtractionStatus `json:"status"`
	Success    *SuccessDetails  `json:"successDetails,omitempty"`
	Failure    *FailureDetails  `json:"failureDetails,omitempty"`
}

// SourceLinkRef identifies one contributor to a deduplicated content block.
type SourceLinkRef struct {
	RawSourceLink string `json:"rawSourceLink"`
	SourceLine    int    `json:"sourceLine"`
}

// ContentBlock is one entry of the content-addressed map: a unique piece of
// extracted text plus every link that contributed it.
type ContentBlock struct {
	Content       string          `json:"content"`
	ContentLength int             `json:"contentLength"`
	SourceLinks   []SourceLinkRef `json:"sourceLinks"`
}

// ContentBlocks is the content-addressed map keyed by a deterministic hash of
// the extracted text. TotalContentCharacterLength records the serialized size
// of the map computed before the field itself is added, so the metadata never
// sizes itself.
type ContentBlocks struct {
	TotalContentCharacterLength int
	Blocks                      map[string]*ContentBlock
}

// MarshalJSON emits the diagnostic length field alongside the hash-keyed
// blocks, matching the payload shape consumers expect.
func (c *ContentBlocks) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(c.Blocks)+1)

	length, err := json.Marshal(c.TotalContentCharacterLength)
	if err != nil {
		return nil, err
	}
	out["_totalContentCharacterLength"] = length

	keys := make([]string, 0, len(c.Blocks))
	for key := range c.Blocks {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		encoded, err := json.Marshal(c.Blocks[key])
		if err != nil {
			return nil, err
		}
		out[key] = encoded
	}

	return json.Marshal(out)
}

// OutgoingLinksReport lists every processed link in input order.
type OutgoingLinksReport struct {
	ProcessedLinks []*ExtractionResult `json:"processedLinks"`
}

// Stats summarizes one extraction run.
type Stats struct {
	TotalLinks               int     `json:"totalLinks"`
	UniqueContent            int     `json:"uniqueContent"`
	DuplicateContentDetected int     `json:"duplicateContentDetected"`
	TokensSaved              int     `json:"tokensSaved"`
	CompressionRatio         float64 `json:"compressionRatio"`
}

// AggregatedOutput is the full result of one extraction run. Created per call
// and discarded after output.
type AggregatedOutput struct {
	ExtractedContentBlocks *ContentBlocks      `json:"extractedContentBlocks"`
	OutgoingLinksReport    OutgoingLinksReport `json:"outgoingLinksReport"`
	Stats                  Stats               `json:"stats"`
}
