package progress

import (
	"time"

	"bcmr/internal/config"
)

// Renderer is the polymorphic sink the transfer/move/remove engines report
// progress to. TuiRenderer and InlineRenderer share the same ProgressState
// shape but differ in I/O; NopRenderer is used for dry runs, where no
// presentation is wanted.
type Renderer interface {
	SetTotalItems(total int)
	IncItemsProcessed()
	SetCurrentFile(name string, size uint64)
	IncCurrent(delta uint64)
	SetOperationType(label string)
	Tick()
	Finish()
}

// New constructs the renderer variant matching tuiMode. This is the sole
// constructor point; it is the one place tuiMode is interpreted, so there
// is no possibility of the mapping being read backwards by a caller.
func New(tuiMode bool, cfg config.Config) Renderer {
	if !tuiMode {
		return newInlineRenderer(cfg)
	}
	return newTuiRenderer(cfg)
}

// NopRenderer discards all progress events. Used for dry runs; a non-TTY
// stdout is handled by the inline renderer's plain-line output instead.
type NopRenderer struct{}

func (NopRenderer) SetTotalItems(int)             {}
func (NopRenderer) IncItemsProcessed()             {}
func (NopRenderer) SetCurrentFile(string, uint64) {}
func (NopRenderer) IncCurrent(uint64)              {}
func (NopRenderer) SetOperationType(string)        {}
func (NopRenderer) Tick()                          {}
func (NopRenderer) Finish()                        {}

// oneMiB is the repaint-throttle boundary for IncCurrent in the TUI
// renderer, matching the original tool's flicker-avoidance rule.
const oneMiB = 1024 * 1024

func nowFn() time.Time { return time.Now() }
