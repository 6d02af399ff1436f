package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Stage is a discrete unit of work in the publication build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal or canceled error. Warnings are recorded and execution
// continues with the next stage.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.recordError(se)
			return se
		default:
		}

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		bs.Report.StageDurations[st.Name] = time.Since(t0)

		if err == nil {
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			// Wrap unknown errors as fatal by default.
			se = newFatalStageError(st.Name, err)
		}
		bs.Report.recordError(se)
		if se.Kind == StageErrorWarning {
			bs.Report.Warnings = append(bs.Report.Warnings, se)
			continue
		}
		return se
	}
	return nil
}
