package parser

import (
	"errors"
	"strings"

	"github.com/goliatone/go-docref/internal/domain"
)

var (
	// ErrSectionNotFound is returned when no heading matches the requested text.
	ErrSectionNotFound = errors.New("parser: section not found")
	// ErrBlockNotFound is returned when no block anchor matches the requested id.
	ErrBlockNotFound = errors.New("parser: block anchor not found")
)

// Meta carries front matter metadata surfaced on a parsed document.
type Meta struct {
	Title string
	Tags  []string
	Raw   map[string]any
}

// Document is the parse result for one markdown file: its raw content, the
// flattened token tree, and every link, anchor, and heading found in it.
// Immutable after construction; the validator attaches verdicts to Links but
// never rewrites them.
type Document struct {
	FilePath string
	Content  string
	Meta     Meta
	Tokens   []Token
	Links    []*domain.Link
	Anchors  []domain.Anchor
	Headings []domain.Heading

	// body is the content after front matter; token offsets index into it.
	body  string
	lines []string
}

// ExtractFullContent returns the entire raw file text.
func (d *Document) ExtractFullContent() string {
	return d.Content
}

// ExtractSection returns the raw text of the section introduced by the first
// heading whose text equals headingText: the heading itself plus everything up
// to (excluding) the next heading at the same or shallower depth. Raw source
// spans are concatenated rather than re-serialized so code fences, tables, and
// nested subsections keep their exact formatting. Repeated calls on the same
// document return identical strings.
func (d *Document) ExtractSection(headingText string) (string, error) {
	target := -1
	for i, token := range d.Tokens {
		if token.IsHeading() && token.HeadingText == headingText {
			target = i
			break
		}
	}
	if target < 0 {
		return "", ErrSectionNotFound
	}

	// The boundary is the next heading at the same or shallower position:
	// same or lower nesting depth and same or smaller heading level. Deeper
	// heading levels open subsections that belong to the extracted section.
	boundary := len(d.Tokens)
	for i := target + 1; i < len(d.Tokens); i++ {
		token := d.Tokens[i]
		if token.IsHeading() && token.Depth <= d.Tokens[target].Depth && token.HeadingLevel <= d.Tokens[target].HeadingLevel {
			boundary = i
			break
		}
	}

	var section strings.Builder
	// highWater guards against double-writing a parent span through its
	// children; gaps between sibling spans (blank lines) are carried along.
	highWater := d.Tokens[target].Start
	for i := target; i < boundary; i++ {
		stop := d.Tokens[i].Stop
		if stop <= highWater {
			continue
		}
		section.WriteString(d.body[highWater:stop])
		highWater = stop
	}
	return section.String(), nil
}

// ExtractBlock returns exactly the single source line carrying the block
// anchor with the given id (caret already stripped). Block anchors are
// single-line references by construction, never multi-line spans. The
// recorded line index is bounds-checked against the document's line count to
// guard against stale anchor data.
func (d *Document) ExtractBlock(anchorID string) (string, error) {
	for _, anchor := range d.Anchors {
		if anchor.AnchorType != domain.AnchorBlock || anchor.ID != anchorID {
			continue
		}
		index := anchor.Line - 1
		if index < 0 || index >= len(d.lines) {
			return "", ErrBlockNotFound
		}
		return d.lines[index], nil
	}
	return "", ErrBlockNotFound
}

// AnchorByID returns the first anchor with the given id. Resolution compares
// anchors by id alone, regardless of the pattern that produced them.
func (d *Document) AnchorByID(id string) (domain.Anchor, bool) {
	for _, anchor := range d.Anchors {
		if anchor.ID == id {
			return anchor, true
		}
	}
	return domain.Anchor{}, false
}
