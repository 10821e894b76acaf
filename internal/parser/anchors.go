package parser

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/goliatone/go-docref/internal/domain"
)

var (
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)

	// ^block-id at the end of a line.
	trailingBlockPattern = regexp.MustCompile(`(?:^|\s)\^([A-Za-z0-9][A-Za-z0-9_-]*)\s*$`)

	// ^block-id anywhere in the line.
	inlineBlockPattern = regexp.MustCompile(`\^([A-Za-z0-9][A-Za-z0-9_-]*)`)

	// *^block-id* or _^block-id_ emphasis-wrapped markers.
	emphasisBlockPattern = regexp.MustCompile(`[*_]\^([A-Za-z0-9][A-Za-z0-9_-]*)[*_]`)
)

// anchorCollector gathers anchors and headings across a scan, deduplicating
// block anchors that multiple patterns match at the same position. Every
// emitted anchor carries line and column, defaulting column to 0 for patterns
// that don't expose one, because resolution matches purely on id equality.
type anchorCollector struct {
	anchors  []domain.Anchor
	headings []domain.Heading
	seen     map[string]struct{}
}

func newAnchorCollector() *anchorCollector {
	return &anchorCollector{seen: map[string]struct{}{}}
}

// scanLine detects every anchor pattern on one source line. lineNumber is
// 1-based.
func (c *anchorCollector) scanLine(line string, lineNumber int) {
	if match := headingPattern.FindStringSubmatch(line); match != nil {
		level := len(match[1])
		text := match[2]

		c.headings = append(c.headings, domain.Heading{
			Level: level,
			Text:  text,
			Raw:   line,
		})

		c.addAnchor(domain.Anchor{
			AnchorType: domain.AnchorHeader,
			ID:         text,
			RawText:    text,
			FullMatch:  line,
			Line:       lineNumber,
			Column:     0,
		})

		// Links written with percent-encoded fragments must resolve too.
		if encoded := url.PathEscape(text); encoded != text {
			c.addAnchor(domain.Anchor{
				AnchorType: domain.AnchorHeader,
				ID:         encoded,
				RawText:    text,
				FullMatch:  line,
				Line:       lineNumber,
				Column:     0,
			})
		}
		return
	}

	for _, match := range trailingBlockPattern.FindAllStringSubmatchIndex(line, -1) {
		c.addBlockAnchor(line, lineNumber, match[2], match[3])
	}
	for _, match := range emphasisBlockPattern.FindAllStringSubmatchIndex(line, -1) {
		c.addBlockAnchor(line, lineNumber, match[2], match[3])
	}
	for _, match := range inlineBlockPattern.FindAllStringSubmatchIndex(line, -1) {
		c.addBlockAnchor(line, lineNumber, match[2], match[3])
	}
}

func (c *anchorCollector) addBlockAnchor(line string, lineNumber, idStart, idStop int) {
	id := line[idStart:idStop]
	// Column points at the caret introducing the id.
	column := idStart - 1

	// "#^id" is a link fragment referencing a block, not a definition.
	if column > 0 && line[column-1] == '#' {
		return
	}

	c.addAnchor(domain.Anchor{
		AnchorType: domain.AnchorBlock,
		ID:         id,
		FullMatch:  "^" + id,
		Line:       lineNumber,
		Column:     column,
	})
}

func (c *anchorCollector) addAnchor(anchor domain.Anchor) {
	key := fmt.Sprintf("%s|%s|%d|%d", anchor.AnchorType, anchor.ID, anchor.Line, anchor.Column)
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = struct{}{}
	c.anchors = append(c.anchors, anchor)
}
