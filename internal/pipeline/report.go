package pipeline

import (
	"fmt"
	"time"
)

// BuildReport aggregates what a pipeline run did. Purely observational; it
// never influences the run's outcome.
type BuildReport struct {
	RunID   string
	Bundler string
	Mode    string

	StageDurations  map[StageName]time.Duration
	StageErrorKinds map[StageName]string
	Warnings        []*StageError

	Artifacts    []string
	CopiedFiles  []string
	SkippedFiles []string

	Elapsed time.Duration
}

func newBuildReport(runID, bundlerName, mode string) *BuildReport {
	return &BuildReport{
		RunID:           runID,
		Bundler:         bundlerName,
		Mode:            mode,
		StageDurations:  make(map[StageName]time.Duration),
		StageErrorKinds: make(map[StageName]string),
	}
}

func (r *BuildReport) recordError(se *StageError) {
	r.StageErrorKinds[se.Stage] = string(se.Kind)
}

// FormatElapsed renders a duration the way the completion message wants it:
// seconds with two decimals from one second up, whole milliseconds below.
func FormatElapsed(d time.Duration) string {
	if d >= time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}
