// Package progress reports per-file analysis progress on stderr.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Tracker drives a progress bar across a known number of files.
// A tracker created for zero files is inert.
type Tracker struct {
	bar   *progressbar.ProgressBar
	label string
}

// NewTracker creates a tracker labeled with the current operation.
func NewTracker(label string, total int) *Tracker {
	if total <= 0 {
		return &Tracker{label: label}
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(24),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		// Workers tick faster than a terminal repaints.
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "#",
			SaucerPadding: "-",
			BarStart:      "|",
			BarEnd:        "|",
		}),
	)
	return &Tracker{bar: bar, label: label}
}

// Tick records one completed file. Safe for concurrent use.
func (t *Tracker) Tick() {
	if t.bar != nil {
		t.bar.Add(1)
	}
}

// FinishSuccess completes the bar and clears it from the terminal.
func (t *Tracker) FinishSuccess() {
	if t.bar != nil {
		t.bar.Finish()
	}
}

// FinishError clears the bar and reports the failure on stderr.
func (t *Tracker) FinishError(err error) {
	if t.bar != nil {
		t.bar.Exit()
		t.bar.Clear()
	}
	fmt.Fprintf(os.Stderr, "%s failed: %v\n", t.label, err)
}
