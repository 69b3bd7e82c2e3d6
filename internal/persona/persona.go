package persona

import (
	"strings"

	"github.com/spigell/docranker/internal/textutil"
)

// GenericCategory is the fallback category for role descriptions matching
// no known persona. Its vocabulary is empty, so scoring degrades to the
// job-term contribution alone.
const GenericCategory = "general"

// Profile is the resolved persona of a collection run. Immutable once
// resolved; scoring only reads it.
type Profile struct {
	Category string
	Keywords map[string]struct{}
}

// Category pairs trigger terms (matched against the raw role text) with the
// scoring vocabulary used for persona-term density.
type Category struct {
	Name     string
	Triggers []string
	Terms    []string
}

// Table is an immutable persona lookup, constructed once at startup and
// passed explicitly to classification. Declaration order is the match
// priority: the first category whose trigger appears in the role text wins.
type Table struct {
	categories []Category
}

// NewTable builds a lookup table from the provided categories.
func NewTable(categories []Category) *Table {
	return &Table{categories: categories}
}

// DefaultTable returns the built-in persona table.
func DefaultTable() *Table {
	return NewTable(defaultCategories)
}

// Classify maps a free-text role description to a persona profile. Total:
// unmatched or empty role text resolves to the generic profile instead of
// failing.
func (t *Table) Classify(roleText string) *Profile {
	normalized := textutil.Normalize(roleText)

	for _, category := range t.categories {
		for _, trigger := range category.Triggers {
			if strings.Contains(normalized, trigger) {
				return &Profile{
					Category: category.Name,
					Keywords: termSet(category.Terms),
				}
			}
		}
	}

	return &Profile{
		Category: GenericCategory,
		Keywords: map[string]struct{}{},
	}
}

func termSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		set[term] = struct{}{}
	}
	return set
}

var defaultCategories = []Category{
	{
		Name:     "travel_planner",
		Triggers: []string{"travel", "trip", "vacation", "tourism"},
		Terms: []string{
			"travel", "trip", "itinerary", "hotel", "hotels", "accommodation",
			"destination", "tour", "flight", "budget", "booking", "restaurant",
			"restaurants", "attraction", "attractions", "city", "cities",
			"beach", "museum", "nightlife", "cuisine", "packing", "guide",
		},
	},
	{
		Name:     "hr_professional",
		Triggers: []string{"hr", "human resource", "employee", "onboarding"},
		Terms: []string{
			"employee", "onboarding", "form", "forms", "compliance",
			"signature", "signatures", "document", "documents", "policy",
			"training", "benefits", "fillable", "workflow", "hiring",
			"payroll", "record", "records", "contract", "agreement",
		},
	},
	{
		Name:     "food_contractor",
		Triggers: []string{"food", "catering", "chef", "restaurant"},
		Terms: []string{
			"recipe", "recipes", "menu", "ingredient", "ingredients", "dish",
			"dishes", "vegetarian", "vegan", "buffet", "catering", "meal",
			"meals", "serving", "dinner", "lunch", "breakfast", "sauce",
			"side", "sides", "gluten", "cooking", "preparation",
		},
	},
	{
		Name:     "researcher",
		Triggers: []string{"research", "scientist", "phd"},
		Terms: []string{
			"research", "study", "analysis", "methodology", "data",
			"experiment", "hypothesis", "literature", "publication",
			"findings", "results", "conclusion",
		},
	},
	{
		Name:     "student",
		Triggers: []string{"student", "undergraduate", "learner"},
		Terms: []string{
			"learn", "study", "understand", "concept", "theory", "practice",
			"example", "exercise", "exam", "assignment", "knowledge", "skill",
		},
	},
	{
		Name:     "analyst",
		Triggers: []string{"analyst", "analysis"},
		Terms: []string{
			"analyze", "evaluate", "assess", "trend", "pattern", "metric",
			"performance", "comparison", "forecast", "strategy", "insight",
			"recommendation",
		},
	},
	{
		Name:     "teacher",
		Triggers: []string{"teacher", "instructor", "educator"},
		Terms: []string{
			"teach", "explain", "instruction", "curriculum", "lesson",
			"education", "training", "guidance", "demonstration",
			"assessment", "learning", "development",
		},
	},
	{
		Name:     "manager",
		Triggers: []string{"manager", "management", "lead"},
		Terms: []string{
			"manage", "plan", "organize", "control", "strategy", "decision",
			"resource", "team", "process", "objective", "performance",
			"leadership",
		},
	},
	{
		Name:     "entrepreneur",
		Triggers: []string{"entrepreneur", "founder", "startup"},
		Terms: []string{
			"business", "opportunity", "market", "innovation", "startup",
			"venture", "revenue", "growth", "investment", "competition",
			"strategy", "scalability",
		},
	},
}
