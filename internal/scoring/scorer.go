package scoring

import (
	"github.com/spigell/docranker/internal/document"
	"github.com/spigell/docranker/internal/persona"
	"github.com/spigell/docranker/internal/textutil"
)

// Config holds the tunable scoring weights. The defaults favour the persona
// vocabulary while keeping the job description contributory; neither value
// is known to be optimal.
type Config struct {
	// PersonaWeight scales the persona-term density contribution.
	PersonaWeight float64 `mapstructure:"persona-weight"`
	// JobWeight scales the job-term density contribution.
	JobWeight float64 `mapstructure:"job-weight"`
	// TitleMultiplier is the fixed weight of title tokens relative to
	// body tokens. Must be >= 1.
	TitleMultiplier float64 `mapstructure:"title-multiplier"`
}

// DefaultConfig returns the built-in scoring weights.
func DefaultConfig() Config {
	return Config{
		PersonaWeight:   0.6,
		JobWeight:       0.4,
		TitleMultiplier: 2.0,
	}
}

// amplificationGain stretches apart near-zero and mid-range raw scores to
// improve rank separation among weakly related sections. Any strictly
// increasing convex transform on [0,1] would serve.
const amplificationGain = 2.5

// Scorer computes bounded relevance scores for section candidates. Pure and
// deterministic: identical (candidate, profile, job) input always yields the
// identical score.
type Scorer struct {
	cfg Config
}

// New creates a scorer with the provided weights. Zero or negative weights
// fall back to the defaults.
func New(cfg Config) *Scorer {
	def := DefaultConfig()
	if cfg.PersonaWeight <= 0 {
		cfg.PersonaWeight = def.PersonaWeight
	}
	if cfg.JobWeight <= 0 {
		cfg.JobWeight = def.JobWeight
	}
	if cfg.TitleMultiplier < 1 {
		cfg.TitleMultiplier = def.TitleMultiplier
	}
	return &Scorer{cfg: cfg}
}

// Score computes the relevance of a candidate for the given persona profile
// and job context. The result is always within [0.0, 1.0]; candidates with
// no usable tokens score 0.0 rather than failing.
func (s *Scorer) Score(candidate *document.Candidate, profile *persona.Profile, job *persona.JobContext) float64 {
	titleTokens := textutil.Tokenize(candidate.Title)
	bodyTokens := textutil.Tokenize(candidate.Body)

	totalWeight := s.cfg.TitleMultiplier*float64(len(titleTokens)) + float64(len(bodyTokens))
	if totalWeight == 0 {
		return 0.0
	}

	personaDensity := s.weightedDensity(titleTokens, bodyTokens, profile.Keywords) / totalWeight
	jobDensity := s.weightedDensity(titleTokens, bodyTokens, job.Keywords) / totalWeight

	raw := s.cfg.PersonaWeight*personaDensity + s.cfg.JobWeight*jobDensity

	return clamp(amplify(raw))
}

// weightedDensity sums keyword hits with title tokens counted at the title
// multiplier. The caller normalizes by the weighted token count so longer
// sections are not favoured purely by raw hit count.
func (s *Scorer) weightedDensity(titleTokens, bodyTokens []string, keywords map[string]struct{}) float64 {
	if len(keywords) == 0 {
		return 0.0
	}

	hits := 0.0
	for _, tok := range titleTokens {
		if _, ok := keywords[tok]; ok {
			hits += s.cfg.TitleMultiplier
		}
	}
	for _, tok := range bodyTokens {
		if _, ok := keywords[tok]; ok {
			hits++
		}
	}
	return hits
}

// amplify applies a strictly increasing convex transform on [0,1]:
// raw * (1 + gain*raw). Mid-range scores stretch upwards while near-zero
// scores stay near zero.
func amplify(raw float64) float64 {
	return raw * (1 + amplificationGain*raw)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
