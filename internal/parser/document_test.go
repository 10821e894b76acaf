package parser

import (
	"errors"
	"strings"
	"testing"
)

const sectionFixture = "# Title\n" +
	"\n" +
	"Intro paragraph.\n" +
	"\n" +
	"## Section A\n" +
	"\n" +
	"Alpha text.\n" +
	"\n" +
	"~~~go\n" +
	"fenced := true\n" +
	"~~~\n" +
	"\n" +
	"### Nested\n" +
	"\n" +
	"Nested body.\n" +
	"\n" +
	"## Section B\n" +
	"\n" +
	"Beta.\n"

func TestExtractSectionStopsAtSibling(t *testing.T) {
	doc := buildDocument("/tmp/sections.md", []byte(sectionFixture))

	section, err := doc.ExtractSection("Section A")
	if err != nil {
		t.Fatalf("ExtractSection: %v", err)
	}

	if !strings.HasPrefix(section, "## Section A\n") {
		t.Fatalf("section should start at its heading, got %q", section)
	}
	if !strings.Contains(section, "fenced := true") {
		t.Fatalf("code fence content missing: %q", section)
	}
	if !strings.Contains(section, "~~~go\n") {
		t.Fatalf("opening fence line missing: %q", section)
	}
	if !strings.Contains(section, "### Nested") || !strings.Contains(section, "Nested body.") {
		t.Fatalf("nested subsection missing: %q", section)
	}
	if strings.Contains(section, "Section B") || strings.Contains(section, "Beta.") {
		t.Fatalf("sibling section leaked into extraction: %q", section)
	}
	if strings.Contains(section, "Intro paragraph.") {
		t.Fatalf("content before the heading leaked in: %q", section)
	}
}

func TestExtractSectionTail(t *testing.T) {
	doc := buildDocument("/tmp/sections.md", []byte(sectionFixture))

	section, err := doc.ExtractSection("Section B")
	if err != nil {
		t.Fatalf("ExtractSection: %v", err)
	}
	if !strings.HasPrefix(section, "## Section B\n") || !strings.Contains(section, "Beta.") {
		t.Fatalf("tail section mismatch: %q", section)
	}
}

func TestExtractSectionIdempotent(t *testing.T) {
	doc := buildDocument("/tmp/sections.md", []byte(sectionFixture))

	first, err := doc.ExtractSection("Section A")
	if err != nil {
		t.Fatalf("ExtractSection: %v", err)
	}
	second, err := doc.ExtractSection("Section A")
	if err != nil {
		t.Fatalf("ExtractSection (repeat): %v", err)
	}
	if first != second {
		t.Fatalf("repeated extraction diverged:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestExtractSectionNotFound(t *testing.T) {
	doc := buildDocument("/tmp/sections.md", []byte(sectionFixture))

	if _, err := doc.ExtractSection("Missing"); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestExtractBlock(t *testing.T) {
	content := "# Doc\n" +
		"\n" +
		"First fact worth citing. ^fact-1\n" +
		"Second line.\n"
	doc := buildDocument("/tmp/blocks.md", []byte(content))

	line, err := doc.ExtractBlock("fact-1")
	if err != nil {
		t.Fatalf("ExtractBlock: %v", err)
	}
	if line != "First fact worth citing. ^fact-1" {
		t.Fatalf("block line mismatch: %q", line)
	}

	if _, err := doc.ExtractBlock("nope"); !errors.Is(err, ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}
}

func TestExtractFullContent(t *testing.T) {
	doc := buildDocument("/tmp/full.md", []byte(sectionFixture))
	if doc.ExtractFullContent() != sectionFixture {
		t.Fatalf("full content should be the raw file text")
	}
}

func TestAnchorByID(t *testing.T) {
	doc := buildDocument("/tmp/anchors.md", []byte("# My Header\n\nfact ^b1\n"))

	if anchor, ok := doc.AnchorByID("My Header"); !ok || anchor.Line != 1 {
		t.Fatalf("heading anchor lookup failed: %#v ok=%v", anchor, ok)
	}
	if anchor, ok := doc.AnchorByID("b1"); !ok || anchor.Line != 3 {
		t.Fatalf("block anchor lookup failed: %#v ok=%v", anchor, ok)
	}
	if _, ok := doc.AnchorByID("absent"); ok {
		t.Fatalf("lookup of missing anchor should fail")
	}
}
