package parser

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Token is one block-level node of the document's token tree, flattened into
// document order with its original nesting depth attached. Start and Stop are
// byte offsets into the tokenized source, normalized to whole-line bounds so
// concatenating spans reproduces the exact source text of fences, tables, and
// nested subsections.
type Token struct {
	Kind         string
	Depth        int
	Start        int
	Stop         int
	HeadingLevel int
	HeadingText  string
}

// IsHeading reports whether the token is an ATX heading node.
func (t Token) IsHeading() bool {
	return t.Kind == "Heading"
}

// Tokenize parses source with goldmark and returns the flattened token list.
// The traversal visits children before following siblings so section
// boundaries become a linear scan with a depth comparison.
func Tokenize(source []byte) []Token {
	engine := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := engine.Parser().Parse(text.NewReader(source))

	var tokens []Token
	flatten(root, source, 0, &tokens)
	return tokens
}

func flatten(node ast.Node, source []byte, depth int, out *[]Token) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() != ast.TypeBlock {
			continue
		}

		start, stop, ok := blockSpan(child, source)
		if ok {
			token := Token{
				Kind:  child.Kind().String(),
				Depth: depth + 1,
				Start: start,
				Stop:  stop,
			}
			if heading, isHeading := child.(*ast.Heading); isHeading {
				token.HeadingLevel = heading.Level
				token.HeadingText = string(child.Text(source))
			}
			*out = append(*out, token)
		}

		flatten(child, source, depth+1, out)
	}
}

// blockSpan computes the raw byte range a block node covers. Leaf blocks
// expose their lines directly; container blocks (lists, quotes) derive their
// span from descendants. Fenced code blocks are widened to re-include the
// fence lines goldmark strips from the line list.
func blockSpan(node ast.Node, source []byte) (int, int, bool) {
	if lines := node.Lines(); lines != nil && lines.Len() > 0 {
		start := lines.At(0).Start
		stop := lines.At(lines.Len() - 1).Stop

		start = lineStartOffset(source, start)
		if stop > 0 && stop <= len(source) && source[stop-1] != '\n' {
			stop = lineEndOffset(source, stop)
		}

		if _, fenced := node.(*ast.FencedCodeBlock); fenced {
			start, stop = expandFence(source, start, stop)
		}
		return start, stop, true
	}

	start, stop := -1, -1
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		childStart, childStop, ok := blockSpan(child, source)
		if !ok {
			continue
		}
		if start < 0 || childStart < start {
			start = childStart
		}
		if childStop > stop {
			stop = childStop
		}
	}
	if start < 0 {
		return 0, 0, false
	}
	return start, stop, true
}

// expandFence widens a fenced code block span to cover the opening fence line
// and, when present, the closing one.
func expandFence(source []byte, start, stop int) (int, int) {
	if lineStart := lineStartOffset(source, start); lineStart > 0 {
		start = lineStartOffset(source, lineStart-1)
	}

	if stop < len(source) {
		closingEnd := lineEndOffset(source, stop)
		trimmed := bytes.TrimSpace(source[stop:closingEnd])
		if bytes.HasPrefix(trimmed, []byte("```")) || bytes.HasPrefix(trimmed, []byte("~~~")) {
			stop = closingEnd
		}
	}
	return start, stop
}

// lineStartOffset returns the offset of the first byte of the line containing
// offset.
func lineStartOffset(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	if offset <= 0 {
		return 0
	}
	return bytes.LastIndexByte(source[:offset], '\n') + 1
}

// lineEndOffset returns the offset just past the newline terminating the line
// that begins at or contains offset, or len(source) for the final line.
func lineEndOffset(source []byte, offset int) int {
	if offset >= len(source) {
		return len(source)
	}
	idx := bytes.IndexByte(source[offset:], '\n')
	if idx < 0 {
		return len(source)
	}
	return offset + idx + 1
}
