package extract

import (
	"fmt"
	"strings"
	"testing"
)

func TestDetectByHeaders(t *testing.T) {
	t.Parallel()

	page := Page{
		Number: 1,
		Text: strings.Join([]string{
			"BUDGET HOTELS",
			"Affordable places to stay in the old town with nightly rates.",
			"Many hostels offer shared kitchens and free breakfast.",
		}, "\n"),
	}

	detector := NewDetector(DefaultDetectorConfig())
	candidates := detector.Detect("guide.pdf", []Page{page})

	var found bool
	for _, candidate := range candidates {
		if candidate.Title == "BUDGET HOTELS" {
			found = true
			if candidate.Page != 1 {
				t.Fatalf("expected page 1, got %d", candidate.Page)
			}
			if !strings.Contains(candidate.Body, "Affordable places") {
				t.Fatalf("expected header body to contain following lines, got %q", candidate.Body)
			}
		}
	}
	if !found {
		t.Fatalf("expected a header section, got %+v", candidates)
	}
}

func TestDetectNumberedAndColonHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		title  string
	}{
		{name: "numbered", header: "1. Getting Around", title: "1. Getting Around"},
		{name: "title case with colon", header: "Packing Essentials:", title: "Packing Essentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page := Page{
				Number: 2,
				Text:   tt.header + "\nPublic transport passes cover buses trams and regional trains.",
			}

			candidates := NewDetector(DefaultDetectorConfig()).Detect("guide.pdf", []Page{page})

			for _, candidate := range candidates {
				if candidate.Title == tt.title {
					return
				}
			}
			t.Fatalf("expected title %q among %+v", tt.title, candidates)
		})
	}
}

func TestDetectByParagraphs(t *testing.T) {
	t.Parallel()

	page := Page{
		Number: 3,
		Text: "First paragraph about museum opening hours and ticket prices downtown.\n\n" +
			"Second paragraph describing the harbour ferry schedule in summer.",
	}

	candidates := NewDetector(DefaultDetectorConfig()).Detect("guide.pdf", []Page{page})

	var synthetic int
	for _, candidate := range candidates {
		if strings.HasSuffix(candidate.Title, "...") {
			synthetic++
		}
	}
	if synthetic < 2 {
		t.Fatalf("expected at least 2 paragraph sections with synthetic titles, got %d", synthetic)
	}
}

func TestDetectByLists(t *testing.T) {
	t.Parallel()

	page := Page{
		Number: 4,
		Text: strings.Join([]string{
			"• pack sunscreen and a reusable water bottle",
			"• book the hostel at least two weeks early",
			"• keep copies of travel documents",
		}, "\n"),
	}

	candidates := NewDetector(DefaultDetectorConfig()).Detect("guide.pdf", []Page{page})

	for _, candidate := range candidates {
		if strings.HasPrefix(candidate.Title, "List Section") {
			if !strings.Contains(candidate.Body, "sunscreen") {
				t.Fatalf("expected list body, got %q", candidate.Body)
			}
			return
		}
	}
	t.Fatalf("expected a list section among %+v", candidates)
}

func TestDetectDeduplicatesTitles(t *testing.T) {
	t.Parallel()

	text := "BUDGET HOTELS\nAffordable places to stay in the old town with nightly rates."
	pages := []Page{
		{Number: 1, Text: text},
		{Number: 5, Text: text},
	}

	candidates := NewDetector(DefaultDetectorConfig()).Detect("guide.pdf", pages)

	count := 0
	for _, candidate := range candidates {
		if candidate.Title == "BUDGET HOTELS" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected duplicate title kept once, got %d", count)
	}
}

func TestDetectRespectsPerDocumentCap(t *testing.T) {
	t.Parallel()

	var pages []Page
	for i := 0; i < 10; i++ {
		pages = append(pages, Page{
			Number: i + 1,
			Text:   fmt.Sprintf("Topic%d overview paragraph %s", i, strings.Repeat("words ", 10)),
		})
	}

	detector := NewDetector(DetectorConfig{
		MinSectionLength:       30,
		MaxSectionLength:       2000,
		MaxSectionsPerDocument: 3,
	})

	candidates := detector.Detect("guide.pdf", pages)
	if len(candidates) > 3 {
		t.Fatalf("expected at most 3 candidates, got %d", len(candidates))
	}
}

func TestDetectSkipsTinySections(t *testing.T) {
	t.Parallel()

	page := Page{Number: 1, Text: "BUDGET HOTELS\nshort"}

	candidates := NewDetector(DefaultDetectorConfig()).Detect("guide.pdf", []Page{page})
	for _, candidate := range candidates {
		if candidate.Title == "BUDGET HOTELS" {
			t.Fatalf("expected tiny header body to be skipped, got %+v", candidate)
		}
	}
}
