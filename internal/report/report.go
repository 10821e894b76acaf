package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-docref/internal/domain"
	"github.com/goliatone/go-docref/internal/validator"
)

// ValidationText renders a human-readable validation summary for one file:
// the verdict counts followed by one line per warning or error.
func ValidationText(path string, result *validator.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %d links, %d valid, %d warnings, %d errors\n",
		path,
		result.Summary.Total,
		result.Summary.Valid,
		result.Summary.Warnings,
		result.Summary.Errors,
	)

	for _, link := range result.Links {
		verdict := link.Validation
		if verdict == nil || verdict.Status == domain.StatusValid {
			continue
		}

		fmt.Fprintf(&b, "  %s:%d [%s] %s", relativeDisplay(link), link.Line, verdict.Status, verdict.Error)
		if verdict.Suggestion != "" {
			fmt.Fprintf(&b, " (did you mean %q?)", verdict.Suggestion)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// ExtractionText renders the per-run extraction statistics.
func ExtractionText(output *domain.AggregatedOutput) string {
	var b strings.Builder

	success, skippedCount, errored := 0, 0, 0
	for _, result := range output.OutgoingLinksReport.ProcessedLinks {
		switch result.Status {
		case domain.ExtractionSuccess:
			success++
		case domain.ExtractionSkipped:
			skippedCount++
		case domain.ExtractionError:
			errored++
		}
	}

	fmt.Fprintf(&b, "processed %d links: %d extracted, %d skipped, %d errors\n",
		output.Stats.TotalLinks, success, skippedCount, errored)
	fmt.Fprintf(&b, "unique content blocks: %d (%d duplicates collapsed)\n",
		output.Stats.UniqueContent, output.Stats.DuplicateContentDetected)
	fmt.Fprintf(&b, "estimated tokens saved: %d (compression %.2f)\n",
		output.Stats.TokensSaved, output.Stats.CompressionRatio)

	return b.String()
}

// WriteJSON emits the full aggregated payload for downstream consumers.
func WriteJSON(w io.Writer, output *domain.AggregatedOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("report encode: %w", err)
	}
	return nil
}

func relativeDisplay(link *domain.Link) string {
	if link.Target.Path.Relative != "" {
		return link.Target.Path.Relative
	}
	return link.Target.Path.Raw
}
