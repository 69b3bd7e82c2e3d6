package ranking

import (
	"fmt"
	"testing"

	"github.com/spigell/docranker/internal/document"
)

func scoredSection(doc string, page, position int, score float64) *Scored {
	return &Scored{
		Candidate: &document.Candidate{
			Document: doc,
			Page:     page,
			Position: position,
			Body:     "section body",
		},
		Score: score,
	}
}

func TestSelectEmptyInput(t *testing.T) {
	t.Parallel()

	out := Select(nil, DefaultCap, DefaultWindow)
	if out.Len() != 0 {
		t.Fatalf("expected empty output, got %d sections", out.Len())
	}
}

func TestSelectCapInvariant(t *testing.T) {
	t.Parallel()

	var scored []*Scored
	for i := 0; i < 40; i++ {
		doc := fmt.Sprintf("doc%d.pdf", i%8)
		scored = append(scored, scoredSection(doc, i+1, i, float64(40-i)/40))
	}

	out := Select(scored, DefaultCap, DefaultWindow)
	if out.Len() != DefaultCap {
		t.Fatalf("expected %d sections, got %d", DefaultCap, out.Len())
	}
	if out.Considered != 40 {
		t.Fatalf("expected 40 considered, got %d", out.Considered)
	}
}

func TestSelectBelowCapKeepsAll(t *testing.T) {
	t.Parallel()

	scored := []*Scored{
		scoredSection("a.pdf", 1, 0, 0.5),
		scoredSection("b.pdf", 2, 1, 0.9),
		scoredSection("a.pdf", 3, 2, 0.1),
	}

	out := Select(scored, DefaultCap, DefaultWindow)
	if out.Len() != 3 {
		t.Fatalf("expected all 3 sections, got %d", out.Len())
	}
	for i, section := range out.Sections {
		if section.Rank != i+1 {
			t.Fatalf("expected rank %d at position %d, got %d", i+1, i, section.Rank)
		}
	}
	if out.Sections[0].Candidate.Document != "b.pdf" {
		t.Fatalf("expected highest scored section first, got %s", out.Sections[0].Candidate.Document)
	}
}

func TestSelectDeterministicTieBreak(t *testing.T) {
	t.Parallel()

	build := func() []*Scored {
		return []*Scored{
			scoredSection("b.pdf", 4, 3, 0.5),
			scoredSection("a.pdf", 9, 1, 0.5),
			scoredSection("a.pdf", 2, 0, 0.5),
			scoredSection("c.pdf", 1, 2, 0.5),
		}
	}

	first := Select(build(), DefaultCap, DefaultWindow)
	second := Select(build(), DefaultCap, DefaultWindow)

	expected := []struct {
		doc  string
		page int
	}{
		{"a.pdf", 2},
		{"a.pdf", 9},
		{"b.pdf", 4},
		{"c.pdf", 1},
	}

	for i, want := range expected {
		got := first.Sections[i].Candidate
		if got.Document != want.doc || got.Page != want.page {
			t.Fatalf("position %d: expected %s p%d, got %s p%d", i, want.doc, want.page, got.Document, got.Page)
		}
	}

	for i := range first.Sections {
		a, b := first.Sections[i].Candidate, second.Sections[i].Candidate
		if a.Document != b.Document || a.Page != b.Page {
			t.Fatalf("runs diverge at position %d", i)
		}
	}
}

func TestSelectDiversification(t *testing.T) {
	t.Parallel()

	scored := []*Scored{
		scoredSection("big.pdf", 1, 0, 0.90),
		scoredSection("big.pdf", 2, 1, 0.89),
		scoredSection("big.pdf", 3, 2, 0.88),
		scoredSection("big.pdf", 4, 3, 0.87),
		scoredSection("other.pdf", 1, 4, 0.86),
	}

	out := Select(scored, DefaultCap, DefaultWindow)

	// Fourth slot goes to the comparable section from the other document;
	// the displaced section keeps its place right after.
	if got := out.Sections[3].Candidate.Document; got != "other.pdf" {
		t.Fatalf("expected other.pdf pulled forward to position 3, got %s", got)
	}
	if got := out.Sections[4].Candidate.Document; got != "big.pdf" {
		t.Fatalf("expected displaced big.pdf section at position 4, got %s", got)
	}
}

func TestSelectDiversificationSoftLimit(t *testing.T) {
	t.Parallel()

	// The alternative is too far behind in score to count as comparable:
	// the dominating document keeps its slots.
	scored := []*Scored{
		scoredSection("big.pdf", 1, 0, 0.90),
		scoredSection("big.pdf", 2, 1, 0.89),
		scoredSection("big.pdf", 3, 2, 0.88),
		scoredSection("big.pdf", 4, 3, 0.87),
		scoredSection("other.pdf", 1, 4, 0.30),
	}

	out := Select(scored, DefaultCap, DefaultWindow)

	if got := out.Sections[3].Candidate.Document; got != "big.pdf" {
		t.Fatalf("expected big.pdf to keep position 3, got %s", got)
	}
}

func TestSelectDiversificationDisabled(t *testing.T) {
	t.Parallel()

	scored := []*Scored{
		scoredSection("big.pdf", 1, 0, 0.90),
		scoredSection("big.pdf", 2, 1, 0.89),
		scoredSection("big.pdf", 3, 2, 0.88),
		scoredSection("big.pdf", 4, 3, 0.87),
		scoredSection("other.pdf", 1, 4, 0.86),
	}

	out := Select(scored, DefaultCap, 0)

	if got := out.Sections[3].Candidate.Document; got != "big.pdf" {
		t.Fatalf("expected pure score order with window 0, got %s", got)
	}
}

func TestSelectRanksAreOneBased(t *testing.T) {
	t.Parallel()

	scored := []*Scored{
		scoredSection("a.pdf", 1, 0, 0.9),
		scoredSection("b.pdf", 1, 1, 0.8),
	}

	out := Select(scored, DefaultCap, DefaultWindow)
	if out.Sections[0].Rank != 1 || out.Sections[1].Rank != 2 {
		t.Fatalf("expected ranks 1 and 2, got %d and %d", out.Sections[0].Rank, out.Sections[1].Rank)
	}
}
