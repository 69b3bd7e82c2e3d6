package ranking

import (
	"sort"

	"github.com/spigell/docranker/internal/document"
)

// DefaultCap bounds the number of retained sections per run.
const DefaultCap = 15

// DefaultWindow is the default diversification look-ahead distance.
const DefaultWindow = 5

const (
	// perDocumentSoftLimit is how many sections one document may place in
	// the selection before the look-ahead starts preferring alternatives.
	// Soft: when no comparable alternative exists, the document keeps its
	// slot.
	perDocumentSoftLimit = 3
	// comparableScoreDelta is the maximum score gap within which a
	// lower-ranked section from another document counts as comparable.
	comparableScoreDelta = 0.05
)

// Scored pairs a validated candidate with its relevance score. Created by
// the scoring stage; only the rank is assigned afterwards.
type Scored struct {
	Candidate *document.Candidate
	Score     float64
	Rank      int
}

// Output is the ordered result of selection: at most cap entries, each with
// a 1-based rank.
type Output struct {
	Sections []*Scored
	// Considered is the number of scored sections before truncation.
	Considered int
}

func (o *Output) Len() int {
	return len(o.Sections)
}

// Select orders scored sections descending by score, applies the
// diversification policy, truncates to the cap and assigns ranks. Total over
// empty input: zero candidates yield an empty output, not an error.
func Select(scored []*Scored, maxSections, window int) *Output {
	if maxSections <= 0 {
		maxSections = DefaultCap
	}
	if window < 0 {
		window = DefaultWindow
	}

	items := make([]*Scored, len(scored))
	copy(items, scored)

	// Ties break on extraction order so output is reproducible regardless
	// of the order scoring completed.
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		if items[i].Candidate.Document != items[j].Candidate.Document {
			return items[i].Candidate.Document < items[j].Candidate.Document
		}
		if items[i].Candidate.Page != items[j].Candidate.Page {
			return items[i].Candidate.Page < items[j].Candidate.Page
		}
		return items[i].Candidate.Position < items[j].Candidate.Position
	})

	diversify(items, maxSections, window)

	retained := items
	if len(retained) > maxSections {
		retained = retained[:maxSections]
	}

	for i, item := range retained {
		item.Rank = i + 1
	}

	return &Output{
		Sections:   retained,
		Considered: len(items),
	}
}

// diversify protects against a single document crowding out the rest of the
// collection. Walking the sorted order up to the cap, once a document has
// filled its soft limit, a bounded look-ahead pulls forward the next
// comparable-score section from another document. Sections displaced by the
// pull keep their relative order.
func diversify(items []*Scored, maxSections, window int) {
	if window == 0 {
		return
	}

	limit := maxSections
	if len(items) < limit {
		limit = len(items)
	}

	counts := make(map[string]int)
	for i := 0; i < limit; i++ {
		doc := items[i].Candidate.Document
		if counts[doc] < perDocumentSoftLimit {
			counts[doc]++
			continue
		}

		swapped := false
		for j := i + 1; j < len(items) && j <= i+window; j++ {
			alt := items[j]
			if alt.Candidate.Document == doc {
				continue
			}
			if items[i].Score-alt.Score > comparableScoreDelta {
				// Sorted descending: anything further is worse.
				break
			}
			pullForward(items, i, j)
			swapped = true
			break
		}

		if swapped {
			counts[items[i].Candidate.Document]++
			continue
		}

		// No comparable alternative in the window: not a hard quota.
		counts[doc]++
	}
}

// pullForward moves items[j] to position i, shifting items[i:j] right.
func pullForward(items []*Scored, i, j int) {
	moved := items[j]
	copy(items[i+1:j+1], items[i:j])
	items[i] = moved
}
