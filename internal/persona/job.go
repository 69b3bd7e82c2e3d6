package persona

import (
	"github.com/spigell/docranker/internal/textutil"
)

// JobContext holds the job-to-be-done description and the keyword set
// derived from it. Built once per collection run and read-only afterwards.
type JobContext struct {
	RawText  string
	Keywords map[string]struct{}
}

// NewJobContext derives the keyword set from the raw task description.
// An empty or keyword-free task yields an empty set, never an error.
func NewJobContext(task string) *JobContext {
	return &JobContext{
		RawText:  task,
		Keywords: textutil.Keywords(task),
	}
}
