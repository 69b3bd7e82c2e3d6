package output

import (
	"encoding/json"
	"math"
	"os"

	"github.com/spigell/docranker/internal/ranking"
)

const (
	// maxContentLength bounds the externally visible section body. Applied
	// only here: scoring always sees the full text.
	maxContentLength = 1000
	// maxRefinedLength bounds the refined text of the subsection analysis.
	maxRefinedLength = 300
	// summaryCount is how many top sections appear in the summary and the
	// subsection analysis.
	summaryCount = 5
)

// Result is the terminal artifact of a collection run, shaped for JSON
// serialization. Immutable once assembled.
type Result struct {
	Metadata            Metadata      `json:"metadata"`
	ExtractedSections   []Section     `json:"extracted_sections"`
	SubsectionAnalysis  []Subsection  `json:"subsection_analysis"`
	PersonaInsights     Insights      `json:"persona_insights"`
	ContentDistribution Distribution  `json:"content_distribution"`
	TopSectionsSummary  []SummaryItem `json:"top_sections_summary"`
}

// Metadata carries run-level processing statistics.
type Metadata struct {
	PersonaCategory      string   `json:"persona_category"`
	Persona              string   `json:"persona"`
	JobToBeDone          string   `json:"job_to_be_done"`
	InputDocuments       []string `json:"input_documents"`
	CandidatesConsidered int      `json:"total_candidates_considered"`
	CandidatesDropped    int      `json:"total_candidates_dropped"`
	SectionsRetained     int      `json:"total_sections_retained"`
}

// Section is one retained section in final rank order.
type Section struct {
	Document       string  `json:"document"`
	SectionTitle   string  `json:"section_title"`
	Content        string  `json:"content"`
	PageNumber     int     `json:"page_number"`
	RelevanceScore float64 `json:"relevance_score"`
	ImportanceRank int     `json:"importance_rank"`
}

// Subsection is a condensed view of a top section.
type Subsection struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// Insights summarizes how well the retained sections serve the persona.
type Insights struct {
	IdentifiedPersona string `json:"identified_persona"`
	AlignmentQuality  string `json:"alignment_quality"`
	PersonaContext    string `json:"persona_context"`
	TaskContext       string `json:"task_context"`
}

// Distribution buckets retained sections by relevance band.
type Distribution struct {
	HighRelevance   int `json:"high_relevance_sections"`
	MediumRelevance int `json:"medium_relevance_sections"`
	LowRelevance    int `json:"low_relevance_sections"`
}

// SummaryItem is one line of the top-sections summary.
type SummaryItem struct {
	Document string  `json:"document"`
	Title    string  `json:"title"`
	Score    float64 `json:"score"`
}

// RunMetadata is the run-level context supplied by the orchestrator.
type RunMetadata struct {
	PersonaCategory      string
	PersonaText          string
	JobText              string
	InputDocuments       []string
	CandidatesConsidered int
	CandidatesDropped    int
}

const (
	highRelevanceThreshold   = 0.7
	mediumRelevanceThreshold = 0.4
)

// Assemble shapes the ranked output and run metadata into the final result.
// Pure transformation: a malformed ranked input is a programming error
// upstream, not a condition handled here.
func Assemble(ranked *ranking.Output, meta RunMetadata) *Result {
	sections := make([]Section, 0, ranked.Len())
	subsections := make([]Subsection, 0, summaryCount)
	summary := make([]SummaryItem, 0, summaryCount)
	var distribution Distribution

	for i, scored := range ranked.Sections {
		score := roundScore(scored.Score)

		sections = append(sections, Section{
			Document:       scored.Candidate.Document,
			SectionTitle:   scored.Candidate.Title,
			Content:        truncate(scored.Candidate.Body, maxContentLength),
			PageNumber:     scored.Candidate.Page,
			RelevanceScore: score,
			ImportanceRank: scored.Rank,
		})

		switch {
		case scored.Score >= highRelevanceThreshold:
			distribution.HighRelevance++
		case scored.Score >= mediumRelevanceThreshold:
			distribution.MediumRelevance++
		default:
			distribution.LowRelevance++
		}

		if i < summaryCount {
			subsections = append(subsections, Subsection{
				Document:    scored.Candidate.Document,
				RefinedText: truncate(scored.Candidate.Body, maxRefinedLength),
				PageNumber:  scored.Candidate.Page,
			})
			summary = append(summary, SummaryItem{
				Document: scored.Candidate.Document,
				Title:    scored.Candidate.Title,
				Score:    score,
			})
		}
	}

	return &Result{
		Metadata: Metadata{
			PersonaCategory:      meta.PersonaCategory,
			Persona:              meta.PersonaText,
			JobToBeDone:          meta.JobText,
			InputDocuments:       meta.InputDocuments,
			CandidatesConsidered: meta.CandidatesConsidered,
			CandidatesDropped:    meta.CandidatesDropped,
			SectionsRetained:     ranked.Len(),
		},
		ExtractedSections:  sections,
		SubsectionAnalysis: subsections,
		PersonaInsights: Insights{
			IdentifiedPersona: meta.PersonaCategory,
			AlignmentQuality:  alignmentQuality(ranked),
			PersonaContext:    meta.PersonaText,
			TaskContext:       meta.JobText,
		},
		ContentDistribution: distribution,
		TopSectionsSummary:  summary,
	}
}

// ToFile writes the result as indented JSON.
func (r *Result) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// alignmentQuality maps the average retained score to a coarse label.
func alignmentQuality(ranked *ranking.Output) string {
	if ranked.Len() == 0 {
		return "low"
	}

	sum := 0.0
	for _, scored := range ranked.Sections {
		sum += scored.Score
	}
	avg := sum / float64(ranked.Len())

	switch {
	case avg >= highRelevanceThreshold:
		return "high"
	case avg >= mediumRelevanceThreshold:
		return "medium"
	default:
		return "low"
	}
}

func roundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}

// truncate cuts s to at most limit runes. No ellipsis: the payload contract
// bounds length exactly.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
