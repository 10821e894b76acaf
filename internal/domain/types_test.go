package domain

import (
	"encoding/json"
	"testing"
)

func TestContentBlocksMarshalShape(t *testing.T) {
	blocks := &ContentBlocks{
		TotalContentCharacterLength: 123,
		Blocks: map[string]*ContentBlock{
			"hash-b": {
				Content:       "beta",
				ContentLength: 4,
				SourceLinks:   []SourceLinkRef{{RawSourceLink: "[[b]]", SourceLine: 2}},
			},
			"hash-a": {
				Content:       "alpha",
				ContentLength: 5,
				SourceLinks:   []SourceLinkRef{{RawSourceLink: "[a](a.md)", SourceLine: 1}},
			},
		},
	}

	encoded, err := json.Marshal(blocks)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(decoded) != 3 {
		t.Fatalf("expected length field plus two blocks, got %d keys", len(decoded))
	}

	var length int
	if err := json.Unmarshal(decoded["_totalContentCharacterLength"], &length); err != nil {
		t.Fatalf("length field: %v", err)
	}
	if length != 123 {
		t.Fatalf("length field = %d, want 123", length)
	}

	var block ContentBlock
	if err := json.Unmarshal(decoded["hash-a"], &block); err != nil {
		t.Fatalf("block entry: %v", err)
	}
	if block.Content != "alpha" || block.ContentLength != 5 {
		t.Fatalf("block payload mismatch: %+v", block)
	}
	if len(block.SourceLinks) != 1 || block.SourceLinks[0].SourceLine != 1 {
		t.Fatalf("sourceLinks mismatch: %+v", block.SourceLinks)
	}
}

func TestContentBlocksMarshalEmpty(t *testing.T) {
	blocks := &ContentBlocks{TotalContentCharacterLength: 2, Blocks: map[string]*ContentBlock{}}

	encoded, err := json.Marshal(blocks)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != `{"_totalContentCharacterLength":2}` {
		t.Fatalf("empty payload mismatch: %s", encoded)
	}
}

func TestExtractionResultMarshalOmitsAbsentSide(t *testing.T) {
	success := &ExtractionResult{
		SourceLink: &Link{LinkType: LinkWiki},
		Status:     ExtractionSuccess,
		Success:    &SuccessDetails{DecisionReason: "anchored", ExtractedContent: "text"},
	}
	encoded, err := json.Marshal(success)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["failureDetails"]; ok {
		t.Fatalf("success result must not carry failure details: %s", encoded)
	}
	if _, ok := decoded["successDetails"]; !ok {
		t.Fatalf("success details missing: %s", encoded)
	}
}
