package persona

import (
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	table := DefaultTable()

	tests := []struct {
		name     string
		role     string
		category string
	}{
		{
			name:     "travel planner",
			role:     "Travel Planner, group trips",
			category: "travel_planner",
		},
		{
			name:     "hr professional",
			role:     "HR professional handling onboarding",
			category: "hr_professional",
		},
		{
			name:     "food contractor",
			role:     "Food Contractor for corporate catering",
			category: "food_contractor",
		},
		{
			name:     "researcher",
			role:     "PhD Researcher in Computational Biology",
			category: "researcher",
		},
		{
			name:     "unknown role falls back to generic",
			role:     "Underwater Basket Weaver",
			category: GenericCategory,
		},
		{
			name:     "empty role falls back to generic",
			role:     "",
			category: GenericCategory,
		},
		{
			name:     "case insensitive match",
			role:     "TRAVEL agent",
			category: "travel_planner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			profile := table.Classify(tt.role)
			if profile == nil {
				t.Fatalf("expected a profile, got nil")
			}
			if profile.Category != tt.category {
				t.Fatalf("expected category %q, got %q", tt.category, profile.Category)
			}
			if profile.Keywords == nil {
				t.Fatalf("expected a non-nil vocabulary")
			}
		})
	}
}

func TestClassifyDeclarationOrderWins(t *testing.T) {
	t.Parallel()

	table := NewTable([]Category{
		{Name: "first", Triggers: []string{"planner"}, Terms: []string{"alpha"}},
		{Name: "second", Triggers: []string{"planner"}, Terms: []string{"beta"}},
	})

	profile := table.Classify("Event Planner")
	if profile.Category != "first" {
		t.Fatalf("expected first declared category to win, got %q", profile.Category)
	}
}

func TestGenericProfileHasEmptyVocabulary(t *testing.T) {
	t.Parallel()

	profile := DefaultTable().Classify("completely unknown description")
	if len(profile.Keywords) != 0 {
		t.Fatalf("expected empty vocabulary for generic profile, got %d terms", len(profile.Keywords))
	}
}

func TestNewJobContext(t *testing.T) {
	t.Parallel()

	job := NewJobContext("Plan a 5-day itinerary for the whole group")

	for _, keyword := range []string{"plan", "day", "itinerary", "group"} {
		if _, ok := job.Keywords[keyword]; !ok {
			t.Fatalf("expected keyword %q in job context, got %v", keyword, job.Keywords)
		}
	}

	if _, ok := job.Keywords["the"]; ok {
		t.Fatalf("did not expect stopword in job context")
	}
}

func TestNewJobContextEmptyTask(t *testing.T) {
	t.Parallel()

	job := NewJobContext("")
	if len(job.Keywords) != 0 {
		t.Fatalf("expected empty keyword set, got %v", job.Keywords)
	}
}
