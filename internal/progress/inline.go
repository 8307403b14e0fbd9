package progress

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"bcmr/internal/config"
)

// inlineRenderer streams three updating lines (total bar, stats, current
// file + its own bar) using relative cursor-up/clear-line sequences. It
// requires no raw mode and falls back to append-only plain lines when
// stdout is not a TTY.
type inlineRenderer struct {
	guard
	cfg       config.Config
	tty       bool
	linesDown int // lines already drawn, for cursor-up math
	once      sync.Once
}

func newInlineRenderer(cfg config.Config) *inlineRenderer {
	return &inlineRenderer{
		cfg: cfg,
		tty: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

func (r *inlineRenderer) SetTotalItems(total int) {
	r.with(func(s *State) { s.ItemsTotal = &total })
	r.repaint()
}

func (r *inlineRenderer) IncItemsProcessed() {
	r.with(func(s *State) { s.ItemsProcessed++ })
	r.repaint()
}

func (r *inlineRenderer) SetCurrentFile(name string, size uint64) {
	r.with(func(s *State) {
		s.CurrentFile = name
		s.CurrentFileSize = size
		s.CurrentFileProgress = 0
	})
	r.repaint()
}

func (r *inlineRenderer) IncCurrent(delta uint64) {
	now := nowFn()
	r.with(func(s *State) {
		s.CurrentBytes += delta
		s.CurrentFileProgress += delta
		s.RefreshSpeed(now)
	})
	r.repaint()
}

func (r *inlineRenderer) SetOperationType(label string) {
	r.with(func(s *State) { s.OperationType = label })
	r.repaint()
}

func (r *inlineRenderer) Tick() {
	r.repaint()
}

func (r *inlineRenderer) Finish() {
	snap := r.snapshot()
	fmt.Printf("%s complete: %s transferred\n", orDefault(snap.OperationType, "Operation"), formatBytes(snap.CurrentBytes))
}

func (r *inlineRenderer) repaint() {
	snap := r.snapshot()
	totalBar := renderPlainBar(Percent(snap.CurrentBytes, snap.TotalBytes), 30)
	fileBar := renderPlainBar(Percent(snap.CurrentFileProgress, snap.CurrentFileSize), 30)
	eta := formatETA(snap.EstimateETA())

	lines := []string{
		fmt.Sprintf("%s [%s] %3d%%", orDefault(snap.OperationType, "Progress"), totalBar, Percent(snap.CurrentBytes, snap.TotalBytes)),
		fmt.Sprintf("%s / %s  %.2f MiB/s  ETA %s", formatBytes(snap.CurrentBytes), formatBytes(snap.TotalBytes), snap.LastSpeed, eta),
		fmt.Sprintf("%s [%s] %3d%%", truncateName(snap.CurrentFile, 40), fileBar, Percent(snap.CurrentFileProgress, snap.CurrentFileSize)),
	}

	if !r.tty {
		for _, l := range lines {
			fmt.Println(l)
		}
		return
	}

	if r.linesDown > 0 {
		fmt.Printf("\x1b[%dA", r.linesDown)
	}
	for _, l := range lines {
		fmt.Print("\x1b[2K\r", l, "\n")
	}
	r.linesDown = len(lines)
}

func renderPlainBar(pct, width int) string {
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	return strings.Repeat("=", filled) + strings.Repeat("-", width-filled)
}

func formatETA(seconds *int) string {
	if seconds == nil {
		return "--"
	}
	return (time.Duration(*seconds) * time.Second).String()
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	units := "KMGTPE"
	return fmt.Sprintf("%.2f %ciB", float64(n)/float64(div), units[exp])
}

func truncateName(name string, width int) string {
	runes := []rune(name)
	if len(runes) <= width {
		return name
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
