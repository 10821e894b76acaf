package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-docref/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

func TestParseFileExtractsLinks(t *testing.T) {
	dir := t.TempDir()
	content := "---\n" +
		"title: Sample\n" +
		"tags: [docs, spec]\n" +
		"---\n" +
		"# Sample Document\n" +
		"\n" +
		"See [intro](guide.md#Introduction) for details.\n" +
		"Wiki ref [[notes#^b1|note one]] here.\n" +
		"External [site](https://example.com/page) is not a citation.\n" +
		"Image ![diagram](diagram.png) is not a citation.\n" +
		"Self link [top](#Sample%20Document) works.\n"
	path := writeFile(t, dir, "sample.md", content)

	doc, err := New().ParseFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	if doc.Meta.Title != "Sample" {
		t.Fatalf("front matter title mismatch, got %q", doc.Meta.Title)
	}
	if len(doc.Meta.Tags) != 2 || doc.Meta.Tags[0] != "docs" {
		t.Fatalf("front matter tags mismatch: %#v", doc.Meta.Tags)
	}

	if len(doc.Links) != 3 {
		t.Fatalf("expected 3 links, got %d: %#v", len(doc.Links), doc.Links)
	}

	markdown := doc.Links[0]
	if markdown.LinkType != domain.LinkMarkdown {
		t.Fatalf("expected markdown link, got %q", markdown.LinkType)
	}
	if markdown.Scope != domain.ScopeCrossDocument {
		t.Fatalf("expected cross-document scope, got %q", markdown.Scope)
	}
	if markdown.AnchorType != domain.AnchorHeader {
		t.Fatalf("expected header anchor, got %q", markdown.AnchorType)
	}
	if markdown.Target.Path.Raw != "guide.md" {
		t.Fatalf("raw path mismatch: %q", markdown.Target.Path.Raw)
	}
	if markdown.Target.Path.Absolute != filepath.Join(dir, "guide.md") {
		t.Fatalf("absolute path mismatch: %q", markdown.Target.Path.Absolute)
	}
	if markdown.Target.Path.Relative != "guide.md" {
		t.Fatalf("relative path mismatch: %q", markdown.Target.Path.Relative)
	}
	if markdown.Target.Anchor != "Introduction" {
		t.Fatalf("anchor mismatch: %q", markdown.Target.Anchor)
	}
	if markdown.Line != 7 {
		t.Fatalf("line mismatch: %d", markdown.Line)
	}

	wiki := doc.Links[1]
	if wiki.LinkType != domain.LinkWiki {
		t.Fatalf("expected wiki link, got %q", wiki.LinkType)
	}
	if wiki.AnchorType != domain.AnchorBlock {
		t.Fatalf("expected block anchor, got %q", wiki.AnchorType)
	}
	if wiki.Target.Anchor != "^b1" {
		t.Fatalf("block anchor keeps caret, got %q", wiki.Target.Anchor)
	}
	if wiki.Target.Path.Absolute != filepath.Join(dir, "notes.md") {
		t.Fatalf("wiki link should resolve to notes.md, got %q", wiki.Target.Path.Absolute)
	}
	if wiki.Text != "note one" {
		t.Fatalf("alias text mismatch: %q", wiki.Text)
	}

	internal := doc.Links[2]
	if internal.Scope != domain.ScopeInternal {
		t.Fatalf("expected internal scope, got %q", internal.Scope)
	}
	if internal.Target.Path.Absolute != path {
		t.Fatalf("internal link should resolve to source file, got %q", internal.Target.Path.Absolute)
	}
}

func TestParseFileExtractsAnchorsAndHeadings(t *testing.T) {
	dir := t.TempDir()
	content := "# Sample Document\n" +
		"\n" +
		"A fact worth citing. ^fact-1\n" +
		"Inline ^fact-2 marker and *^fact-3* emphasis.\n" +
		"A fragment link [x](#^fact-1) defines nothing.\n"
	path := writeFile(t, dir, "anchors.md", content)

	doc, err := New().ParseFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	if len(doc.Headings) != 1 || doc.Headings[0].Level != 1 || doc.Headings[0].Text != "Sample Document" {
		t.Fatalf("headings mismatch: %#v", doc.Headings)
	}

	byID := map[string]domain.Anchor{}
	for _, anchor := range doc.Anchors {
		byID[string(anchor.AnchorType)+":"+anchor.ID] = anchor
	}

	heading, ok := byID["header:Sample Document"]
	if !ok {
		t.Fatalf("literal heading anchor missing: %#v", doc.Anchors)
	}
	if heading.Line != 1 || heading.Column != 0 {
		t.Fatalf("heading anchor position mismatch: %#v", heading)
	}
	if heading.RawText != "Sample Document" {
		t.Fatalf("heading rawText mismatch: %#v", heading)
	}

	if _, ok := byID["header:Sample%20Document"]; !ok {
		t.Fatalf("percent-encoded heading anchor missing: %#v", doc.Anchors)
	}

	for _, id := range []string{"fact-1", "fact-2", "fact-3"} {
		anchor, ok := byID["block:"+id]
		if !ok {
			t.Fatalf("block anchor %q missing: %#v", id, doc.Anchors)
		}
		if anchor.Line == 0 {
			t.Fatalf("block anchor %q has no line: %#v", id, anchor)
		}
	}

	// Three block definitions plus two heading variants; the link fragment on
	// the last line defines nothing.
	if len(doc.Anchors) != 5 {
		t.Fatalf("expected 5 anchors, got %d: %#v", len(doc.Anchors), doc.Anchors)
	}
}

func TestParseFileDetectsMarkers(t *testing.T) {
	dir := t.TempDir()
	content := "Skip [a](a.md#A) here. <!-- docref:skip -->\n" +
		"Force [b](b.md) here. <!-- docref:embed -->\n" +
		"Both [c](c.md#C) here. <!-- docref:skip --> <!-- docref:embed -->\n"
	path := writeFile(t, dir, "markers.md", content)

	doc, err := New().ParseFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(doc.Links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(doc.Links))
	}

	if !doc.Links[0].Markers.Stop || doc.Links[0].Markers.Force {
		t.Fatalf("first link markers mismatch: %#v", doc.Links[0].Markers)
	}
	if doc.Links[1].Markers.Stop || !doc.Links[1].Markers.Force {
		t.Fatalf("second link markers mismatch: %#v", doc.Links[1].Markers)
	}
	if !doc.Links[2].Markers.Stop || !doc.Links[2].Markers.Force {
		t.Fatalf("third link markers mismatch: %#v", doc.Links[2].Markers)
	}
}

func TestParseFileSkipsCodeFences(t *testing.T) {
	dir := t.TempDir()
	content := "[real](real.md)\n" +
		"~~~\n" +
		"[ignored](ignored.md)\n" +
		"# Not A Heading\n" +
		"~~~\n"
	path := writeFile(t, dir, "fences.md", content)

	doc, err := New().ParseFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	if len(doc.Links) != 1 || doc.Links[0].Target.Path.Raw != "real.md" {
		t.Fatalf("fenced links should be skipped: %#v", doc.Links)
	}
	if len(doc.Headings) != 0 {
		t.Fatalf("fenced headings should be skipped: %#v", doc.Headings)
	}
}

func TestParseFileMissingFile(t *testing.T) {
	_, err := New().ParseFile(context.Background(), filepath.Join(t.TempDir(), "absent.md"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
