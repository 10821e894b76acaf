package parser

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goliatone/go-docref/internal/domain"
)

var (
	// [text](target) with an optional quoted title. The target must be free of
	// whitespace, which keeps the match anchored to real link destinations.
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)

	// [[target]] or [[target|alias]] wiki links.
	wikiLinkPattern = regexp.MustCompile(`\[\[([^\][|]+)(?:\|([^\][]*))?\]\]`)

	// schemePattern identifies external destinations (http:, https:, mailto:)
	// which are not citations and are never emitted.
	schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

	stopMarkerPattern  = regexp.MustCompile(`<!--\s*docref:skip\s*-->`)
	forceMarkerPattern = regexp.MustCompile(`<!--\s*docref:embed\s*-->`)
)

// extractLinks scans one source line for both link syntaxes and derives the
// fully-populated Link records. lineNumber is 1-based; columns are 0-based
// byte offsets into the line.
func extractLinks(line string, lineNumber int, sourcePath string) []*domain.Link {
	markers := domain.Markers{
		Stop:  stopMarkerPattern.MatchString(line),
		Force: forceMarkerPattern.MatchString(line),
	}

	var links []*domain.Link

	for _, match := range markdownLinkPattern.FindAllStringSubmatchIndex(line, -1) {
		start := match[0]
		// Image embeds are not citations.
		if start > 0 && line[start-1] == '!' {
			continue
		}
		fullMatch := line[match[0]:match[1]]
		text := line[match[2]:match[3]]
		target := line[match[4]:match[5]]

		link := buildLink(domain.LinkMarkdown, target, text, fullMatch, lineNumber, start, sourcePath, markers)
		if link != nil {
			links = append(links, link)
		}
	}

	for _, match := range wikiLinkPattern.FindAllStringSubmatchIndex(line, -1) {
		fullMatch := line[match[0]:match[1]]
		target := line[match[2]:match[3]]
		text := ""
		if match[4] >= 0 {
			text = line[match[4]:match[5]]
		}

		link := buildLink(domain.LinkWiki, target, text, fullMatch, lineNumber, match[0], sourcePath, markers)
		if link != nil {
			links = append(links, link)
		}
	}

	return links
}

func buildLink(linkType domain.LinkType, target, text, fullMatch string, line, column int, sourcePath string, markers domain.Markers) *domain.Link {
	if schemePattern.MatchString(target) {
		return nil
	}

	pathPart := target
	anchorPart := ""
	if idx := strings.Index(target, "#"); idx >= 0 {
		pathPart = target[:idx]
		anchorPart = target[idx+1:]
	}

	anchorType := domain.AnchorNone
	switch {
	case strings.HasPrefix(anchorPart, "^"):
		anchorType = domain.AnchorBlock
	case anchorPart != "":
		anchorType = domain.AnchorHeader
	}

	scope := domain.ScopeCrossDocument
	if pathPart == "" {
		scope = domain.ScopeInternal
	}

	sourceDir := filepath.Dir(sourcePath)

	absolute := sourcePath
	if pathPart != "" {
		resolved := decodePath(pathPart)
		if linkType == domain.LinkWiki && filepath.Ext(resolved) == "" {
			resolved += ".md"
		}
		if filepath.IsAbs(resolved) {
			absolute = filepath.Clean(resolved)
		} else {
			absolute = filepath.Clean(filepath.Join(sourceDir, resolved))
		}
	}

	relative, err := filepath.Rel(sourceDir, absolute)
	if err != nil {
		relative = absolute
	}

	if text == "" {
		text = target
	}

	return &domain.Link{
		LinkType:   linkType,
		Scope:      scope,
		AnchorType: anchorType,
		Source:     domain.SourceRef{Path: domain.SourcePath{Absolute: sourcePath}},
		Target: domain.Target{
			Path: domain.TargetPath{
				Raw:      pathPart,
				Absolute: absolute,
				Relative: relative,
			},
			Anchor: anchorPart,
		},
		Text:      text,
		FullMatch: fullMatch,
		Line:      line,
		Column:    column,
		Markers:   markers,
	}
}

// decodePath resolves percent-encoded destination paths; the raw form is kept
// separately for diagnostics.
func decodePath(path string) string {
	decoded, err := url.PathUnescape(path)
	if err != nil {
		return path
	}
	return decoded
}
