package collection

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/docranker/internal/document"
	"github.com/spigell/docranker/internal/extract"
	"github.com/spigell/docranker/internal/logger"
	"github.com/spigell/docranker/internal/output"
	"github.com/spigell/docranker/internal/persona"
	"github.com/spigell/docranker/internal/ranking"
	"github.com/spigell/docranker/internal/scoring"
)

const (
	// DefaultInputFile is the expected input name inside a collection directory.
	DefaultInputFile = "input.json"
	// DefaultOutputFile is the result name written into a collection directory.
	DefaultOutputFile = "output.json"
	// DefaultWorkers bounds how many collections are processed concurrently.
	DefaultWorkers = 4
	// documentsSubdir is where a collection keeps its source PDFs.
	documentsSubdir = "PDFs"
	// maxLoggedTextLength bounds free-text persona/job fields in log entries.
	maxLoggedTextLength = 80
)

// Options are the run-wide knobs of the processing pipeline.
type Options struct {
	InputFile  string
	OutputFile string
	// MaxSections caps the ranked output length.
	MaxSections int
	// DiversificationWindow is the ranking look-ahead distance.
	DiversificationWindow int
	// Workers bounds collection-level parallelism.
	Workers int
	// Scoring holds the relevance weights.
	Scoring scoring.Config
	// Detection holds section detection bounds.
	Detection extract.DetectorConfig
}

// Runner processes collections: extraction, validation, classification,
// scoring, selection and output assembly. Collections are independent and
// share no mutable state, so they may run in parallel.
type Runner struct {
	extractor extract.PageExtractor
	detector  *extract.Detector
	scorer    *scoring.Scorer
	personas  *persona.Table
	opts      Options
	logger    *zap.Logger
}

// NewRunner wires the pipeline. Zero option values fall back to defaults.
func NewRunner(extractor extract.PageExtractor, personas *persona.Table, opts Options, log *zap.Logger) *Runner {
	if opts.InputFile == "" {
		opts.InputFile = DefaultInputFile
	}
	if opts.OutputFile == "" {
		opts.OutputFile = DefaultOutputFile
	}
	if opts.MaxSections <= 0 {
		opts.MaxSections = ranking.DefaultCap
	}
	if opts.DiversificationWindow <= 0 {
		opts.DiversificationWindow = ranking.DefaultWindow
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	opts.Detection = opts.Detection.WithDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	if personas == nil {
		personas = persona.DefaultTable()
	}

	return &Runner{
		extractor: extractor,
		detector:  extract.NewDetector(opts.Detection),
		scorer:    scoring.New(opts.Scoring),
		personas:  personas,
		opts:      opts,
		logger:    log,
	}
}

// Summary reports the outcome of processing a set of collections.
type Summary struct {
	Processed int
	Failed    int
}

// ProcessAll runs the pipeline over each collection directory. A failing
// collection is logged and counted; it never aborts the others.
func (r *Runner) ProcessAll(ctx context.Context, dirs []string) Summary {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(r.opts.Workers)

	results := make([]error, len(dirs))
	for i, dir := range dirs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = err
				return nil
			}

			if err := r.ProcessCollection(dir); err != nil {
				r.logger.Error("collection failed",
					zap.String(logger.FieldCollection, dir),
					zap.Error(err),
				)
				results[i] = err
			}
			// Errors are isolated per collection.
			return nil
		})
	}

	// The group never returns an error; Wait only synchronizes.
	_ = group.Wait()

	summary := Summary{}
	for _, err := range results {
		if err != nil {
			summary.Failed++
			continue
		}
		summary.Processed++
	}
	return summary
}

// ProcessCollection runs the full pipeline for one collection directory and
// writes its result file.
func (r *Runner) ProcessCollection(dir string) error {
	input, err := LoadInput(filepath.Join(dir, r.opts.InputFile))
	if err != nil {
		return err
	}

	log := logger.WithCollection(r.logger, dir, "")

	profile := r.personas.Classify(input.Persona.Role)
	job := persona.NewJobContext(input.JobToBeDone.Task)

	log.Info("classified persona",
		zap.String("category", profile.Category),
		zap.String("role", logger.TruncateForLog(input.Persona.Role, maxLoggedTextLength)),
		zap.String("task", logger.TruncateForLog(input.JobToBeDone.Task, maxLoggedTextLength)),
		zap.Int("persona_keywords", len(profile.Keywords)),
		zap.Int("job_keywords", len(job.Keywords)),
	)

	candidates, processed := r.gatherCandidates(dir, input, log)

	considered := candidates.Len()
	dropped := candidates.Validate(document.ValidationRules{
		MinBodyLength: r.opts.Detection.MinSectionLength,
		MaxBodyLength: r.opts.Detection.MaxSectionLength,
	})

	log.Info("candidate validation",
		zap.Int("initial", considered),
		zap.Int("dropped", dropped),
		zap.Int("left", candidates.Len()),
	)

	scored := make([]*ranking.Scored, 0, candidates.Len())
	for _, candidate := range candidates.Items {
		scored = append(scored, &ranking.Scored{
			Candidate: candidate,
			Score:     r.scorer.Score(candidate, profile, job),
		})
	}

	ranked := ranking.Select(scored, r.opts.MaxSections, r.opts.DiversificationWindow)

	log.Info("ranking complete",
		zap.Int("scored", len(scored)),
		zap.Int("retained", ranked.Len()),
	)

	result := output.Assemble(ranked, output.RunMetadata{
		PersonaCategory:      profile.Category,
		PersonaText:          input.Persona.Role,
		JobText:              input.JobToBeDone.Task,
		InputDocuments:       processed,
		CandidatesConsidered: considered,
		CandidatesDropped:    dropped,
	})

	outPath := filepath.Join(dir, r.opts.OutputFile)
	if err := result.ToFile(outPath); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	log.Info("collection processed",
		zap.String("output", outPath),
		zap.Int("documents", len(processed)),
		zap.Int("sections", ranked.Len()),
	)

	return nil
}

// gatherCandidates extracts and detects section candidates from every
// document listed in the input. Missing or unreadable documents are skipped
// with a log entry; they do not fail the collection.
func (r *Runner) gatherCandidates(dir string, input *Input, log *zap.Logger) (*document.Candidates, []string) {
	candidates := &document.Candidates{}
	processed := make([]string, 0, len(input.Documents))

	for _, doc := range input.Documents {
		if doc.Filename == "" {
			continue
		}

		docLog := logger.WithCollection(r.logger, dir, doc.Filename)

		path := filepath.Join(dir, documentsSubdir, doc.Filename)
		if _, err := os.Stat(path); err != nil {
			docLog.Warn("document not found, skipping", zap.Error(err))
			continue
		}

		pages, err := r.extractor.Extract(path)
		if err != nil {
			docLog.Warn("extraction failed, skipping", zap.Error(err))
			continue
		}

		detected := r.detector.Detect(doc.Filename, pages)
		candidates.Append(detected...)
		processed = append(processed, doc.Filename)

		docLog.Debug("document extracted",
			zap.Int("pages", len(pages)),
			zap.Int("candidates", len(detected)),
		)
	}

	return candidates, processed
}
