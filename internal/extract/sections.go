package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/docranker/internal/document"
)

// DetectorConfig bounds candidate section detection.
type DetectorConfig struct {
	// MinSectionLength is the minimum body character count for a detected
	// section.
	MinSectionLength int `mapstructure:"min-section-length"`
	// MaxSectionLength caps the body character count.
	MaxSectionLength int `mapstructure:"max-section-length"`
	// MaxSectionsPerDocument bounds how many candidates a single document
	// may contribute.
	MaxSectionsPerDocument int `mapstructure:"max-sections-per-document"`
}

// DefaultDetectorConfig returns the built-in detection bounds.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		MinSectionLength:       30,
		MaxSectionLength:       2000,
		MaxSectionsPerDocument: 50,
	}
}

// WithDefaults replaces non-positive bounds with the built-in defaults.
func (c DetectorConfig) WithDefaults() DetectorConfig {
	def := DefaultDetectorConfig()
	if c.MinSectionLength <= 0 {
		c.MinSectionLength = def.MinSectionLength
	}
	if c.MaxSectionLength <= 0 {
		c.MaxSectionLength = def.MaxSectionLength
	}
	if c.MaxSectionsPerDocument <= 0 {
		c.MaxSectionsPerDocument = def.MaxSectionsPerDocument
	}
	return c
}

// Detector turns raw page text into candidate sections using structural
// heuristics: header patterns, paragraph blocks and list runs. Candidates
// still pass document-level validation before scoring.
type Detector struct {
	cfg DetectorConfig
}

// NewDetector creates a detector. Non-positive bounds fall back to defaults.
func NewDetector(cfg DetectorConfig) *Detector {
	return &Detector{cfg: cfg.WithDefaults()}
}

var headerPatterns = []*regexp.Regexp{
	// ALL CAPS lines: "BUDGET HOTELS & HOSTELS"
	regexp.MustCompile(`^([A-Z][A-Z\s&]+)$`),
	// Numbered headings: "1. Getting Around"
	regexp.MustCompile(`^(\d+\.\s+[A-Z][A-Za-z\s]+)$`),
	// Title Case with trailing colon: "Packing Essentials:"
	regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s*:)$`),
}

var (
	numberedItemRe = regexp.MustCompile(`^\d+\.`)
	letteredItemRe = regexp.MustCompile(`^[a-z]\)`)
	allCapsLineRe  = regexp.MustCompile(`^[A-Z][A-Z\s]+$`)
)

const (
	maxHeaderLineLength = 100
	maxContentLines     = 20
	minListItems        = 2
)

// Detect produces candidate sections from the ordered pages of a document.
// Duplicate titles (case insensitive) are kept once; output is bounded by
// MaxSectionsPerDocument.
func (d *Detector) Detect(docName string, pages []Page) []*document.Candidate {
	var detected []*document.Candidate

	for _, page := range pages {
		detected = append(detected, d.detectByHeaders(docName, page)...)
	}
	for _, page := range pages {
		detected = append(detected, d.detectByParagraphs(docName, page)...)
	}
	for _, page := range pages {
		detected = append(detected, d.detectByLists(docName, page)...)
	}

	return d.dedupe(detected)
}

func (d *Detector) dedupe(detected []*document.Candidate) []*document.Candidate {
	kept := make([]*document.Candidate, 0, len(detected))
	seen := make(map[string]struct{})

	for _, candidate := range detected {
		length := candidate.Length()
		if length < d.cfg.MinSectionLength || length > d.cfg.MaxSectionLength {
			continue
		}

		title := strings.ToLower(candidate.Title)
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}

		kept = append(kept, candidate)
		if len(kept) == d.cfg.MaxSectionsPerDocument {
			break
		}
	}

	return kept
}

func (d *Detector) detectByHeaders(docName string, page Page) []*document.Candidate {
	var sections []*document.Candidate

	lines := strings.Split(page.Text, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len(trimmed) >= maxHeaderLineLength {
			continue
		}

		title := matchHeader(trimmed)
		if title == "" {
			continue
		}

		body := contentAfterHeader(lines, trimmed)
		if len([]rune(body)) < d.cfg.MinSectionLength {
			continue
		}

		sections = append(sections, &document.Candidate{
			Document: docName,
			Page:     page.Number,
			Title:    title,
			Body:     body,
		})
	}

	return sections
}

func matchHeader(line string) string {
	for _, pattern := range headerPatterns {
		if m := pattern.FindStringSubmatch(line); m != nil {
			return strings.TrimRight(strings.TrimSpace(m[1]), ":")
		}
	}
	return ""
}

// contentAfterHeader gathers the lines following the header until a blank
// line after content started, another ALL CAPS heading, or the line budget.
func contentAfterHeader(lines []string, header string) string {
	var content []string
	found := false

	for _, line := range lines {
		if strings.TrimSpace(line) == header {
			found = true
			continue
		}
		if !found {
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(content) > 0 {
				break
			}
			continue
		}
		if len(content) > maxContentLines {
			break
		}
		if allCapsLineRe.MatchString(trimmed) {
			break
		}

		content = append(content, line)
	}

	return strings.TrimSpace(strings.Join(content, "\n"))
}

func (d *Detector) detectByParagraphs(docName string, page Page) []*document.Candidate {
	var sections []*document.Candidate

	for _, paragraph := range strings.Split(page.Text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		length := len([]rune(paragraph))
		if length < d.cfg.MinSectionLength || length > d.cfg.MaxSectionLength {
			continue
		}

		sections = append(sections, &document.Candidate{
			Document: docName,
			Page:     page.Number,
			Title:    paragraphTitle(paragraph),
			Body:     paragraph,
		})
	}

	return sections
}

// paragraphTitle derives a synthetic title from the first words of an
// untitled paragraph.
func paragraphTitle(paragraph string) string {
	words := strings.Fields(paragraph)
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.Join(words, " ") + "..."
}

func (d *Detector) detectByLists(docName string, page Page) []*document.Candidate {
	var sections []*document.Candidate

	lines := strings.Split(page.Text, "\n")
	for i := 0; i < len(lines); {
		if !isListItem(lines[i]) {
			i++
			continue
		}

		start := i
		items := 0
		var content []string
		for i < len(lines) && (isListItem(lines[i]) || isContinuation(lines[i])) {
			if isListItem(lines[i]) {
				items++
			}
			content = append(content, strings.TrimSpace(lines[i]))
			i++
		}

		if items < minListItems {
			continue
		}

		sections = append(sections, &document.Candidate{
			Document: docName,
			Page:     page.Number,
			// List runs have no natural heading; label by page position.
			Title: "List Section " + strconv.Itoa(start+1),
			Body:  strings.Join(content, "\n"),
		})
	}

	return sections
}

func isListItem(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "-") ||
		numberedItemRe.MatchString(trimmed) || letteredItemRe.MatchString(trimmed)
}

func isContinuation(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, "•") &&
		!strings.HasPrefix(trimmed, "-") && !numberedItemRe.MatchString(trimmed)
}
