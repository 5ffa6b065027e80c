package service

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// ProgressManager tracks the lifetime of one or more progress-reporting
// tasks, e.g. the per-module discovery/transform steps of a bundle run.
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress reports progress on a single task.
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// IsInteractiveEnvironment reports whether stderr is attached to a terminal,
// used to decide whether progress bars should render.
func IsInteractiveEnvironment() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// ProgressManagerImpl implements ProgressManager with interactive progress bars.
type ProgressManagerImpl struct {
	writer io.Writer
	tasks  []*progressbar.ProgressBar
}

// NewProgressManager creates a progress manager based on the caller's
// preference and the environment: progress bars only render when enabled
// is true and stderr is a terminal.
func NewProgressManager(enabled bool) ProgressManager {
	if enabled && IsInteractiveEnvironment() {
		return &ProgressManagerImpl{
			writer: os.Stderr,
			tasks:  make([]*progressbar.ProgressBar, 0),
		}
	}
	return &NoOpProgressManager{}
}

// StartTask creates a new progress task with a description and total count.
func (pm *ProgressManagerImpl) StartTask(description string, total int) TaskProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(pm.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(18),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
	)
	pm.tasks = append(pm.tasks, bar)
	return &TaskProgressImpl{bar: bar}
}

// IsInteractive returns true if progress bars should be shown.
func (pm *ProgressManagerImpl) IsInteractive() bool {
	return true
}

// Close finishes all outstanding tasks.
func (pm *ProgressManagerImpl) Close() {
	for _, bar := range pm.tasks {
		_ = bar.Finish()
	}
	pm.tasks = nil
}

// TaskProgressImpl implements TaskProgress with a progressbar.
type TaskProgressImpl struct {
	bar *progressbar.ProgressBar
}

// Increment adds n to the current progress.
func (tp *TaskProgressImpl) Increment(n int) {
	_ = tp.bar.Add(n)
}

// Describe updates the current item description.
func (tp *TaskProgressImpl) Describe(description string) {
	tp.bar.Describe(description)
}

// Complete marks the task as finished.
func (tp *TaskProgressImpl) Complete() {
	_ = tp.bar.Finish()
}

// NoOpProgressManager implements ProgressManager with no-op methods, used
// when progress reporting is disabled or stderr isn't a terminal.
type NoOpProgressManager struct{}

// StartTask returns a no-op task progress.
func (pm *NoOpProgressManager) StartTask(_ string, _ int) TaskProgress {
	return &NoOpTaskProgress{}
}

// IsInteractive returns false for the no-op manager.
func (pm *NoOpProgressManager) IsInteractive() bool {
	return false
}

// Close is a no-op.
func (pm *NoOpProgressManager) Close() {}

// NoOpTaskProgress implements TaskProgress with no-op methods.
type NoOpTaskProgress struct{}

// Increment is a no-op.
func (tp *NoOpTaskProgress) Increment(_ int) {}

// Describe is a no-op.
func (tp *NoOpTaskProgress) Describe(_ string) {}

// Complete is a no-op.
func (tp *NoOpTaskProgress) Complete() {}
