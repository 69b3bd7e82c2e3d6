package document

import (
	"strings"
	"unicode"
)

// Candidate is a structurally-delimited chunk of document text proposed
// for relevance evaluation. It is produced by the extraction layer and
// discarded once scored or rejected.
type Candidate struct {
	// Document is the source file name the section was extracted from.
	Document string `json:"document"`
	// Page is the 1-based page number the section starts on.
	Page int `json:"page_number"`
	// Title is the detected section heading. May be empty for paragraph
	// and list sections without a recognizable header.
	Title string `json:"section_title,omitempty"`
	// Body is the full, untruncated section text.
	Body string `json:"content"`
	// Position is the zero-based extraction order within the whole
	// collection. Used as a deterministic tie-break key during ranking.
	Position int `json:"-"`
}

// Length returns the character count of the candidate body.
func (c *Candidate) Length() int {
	return len([]rune(c.Body))
}

// Candidates holds the extracted section candidates of a collection run.
type Candidates struct {
	Items []*Candidate
}

// ValidationRules are the minimum-quality checks a candidate must pass
// before it reaches the scorer.
type ValidationRules struct {
	// MinBodyLength is the minimum character count of the body.
	MinBodyLength int
	// MaxBodyLength caps the body size. Zero disables the cap.
	MaxBodyLength int
}

func (v *Candidates) Len() int {
	return len(v.Items)
}

// Append adds candidates to the collection, assigning extraction positions.
func (v *Candidates) Append(items ...*Candidate) {
	for _, item := range items {
		item.Position = len(v.Items)
		v.Items = append(v.Items, item)
	}
}

// Validate drops candidates failing the minimum-quality checks and returns
// the number of dropped entries. Rejection is silent: dropped candidates are
// counted, never surfaced as errors.
func (v *Candidates) Validate(rules ValidationRules) int {
	kept := make([]*Candidate, 0, len(v.Items))
	for _, item := range v.Items {
		if item.Valid(rules) {
			kept = append(kept, item)
		}
	}

	dropped := len(v.Items) - len(kept)
	v.Items = kept
	return dropped
}

// Valid reports whether the candidate passes the minimum-quality checks:
// a positive page number, a body within the configured length bounds that
// reads as text rather than extraction garbage, and a title that is not
// pure whitespace or noise when present.
func (c *Candidate) Valid(rules ValidationRules) bool {
	if c.Page <= 0 {
		return false
	}

	body := strings.TrimSpace(c.Body)
	if len([]rune(body)) < rules.MinBodyLength {
		return false
	}
	if rules.MaxBodyLength > 0 && len([]rune(body)) > rules.MaxBodyLength {
		return false
	}

	if PrintableRatio(body) < minPrintableRatio {
		return false
	}
	if WordlikeRatio(body) < minWordlikeRatio {
		return false
	}

	if c.Title != "" && noiseTitle(c.Title) {
		return false
	}

	return true
}

// noiseTitle reports whether a non-empty title carries no usable signal:
// only whitespace, or no letters at all.
func noiseTitle(title string) bool {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return true
	}

	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
