// Package progress implements the shared progress state, speed/ETA model,
// and the two renderer variants (TUI, inline) described by the progress
// core.
package progress

import (
	"math"
	"sync"
	"time"
)

// State is the mutable aggregate updated by the orchestrator, the engine
// (via byte-delta callback), and the ticker through Renderer methods;
// callers never touch it directly. The inline renderer keeps it behind its
// embedded mutex; the TUI renderer's copy lives in the bubbletea model and
// is changed only by that program's Update loop.
type State struct {
	TotalBytes         uint64
	CurrentBytes       uint64
	CurrentFile        string
	CurrentFileSize    uint64
	CurrentFileProgress uint64
	ItemsTotal         *int
	ItemsProcessed     int
	OperationType      string

	LastSpeed  float64 // EWMA, MiB/s
	LastUpdate time.Time
	LastBytes  uint64
}

// CalculateSpeed returns the current EWMA speed in MiB/s, refreshing the
// average only when at least 100ms has elapsed since LastUpdate. When less
// time has passed it returns the previously computed LastSpeed unchanged.
func (s *State) CalculateSpeed(now time.Time) float64 {
	elapsed := now.Sub(s.LastUpdate).Seconds()
	if elapsed < 0.1 {
		return s.LastSpeed
	}
	bytesPerSec := float64(s.CurrentBytes-s.LastBytes) / elapsed
	speed := bytesPerSec / (1024.0 * 1024.0)
	if s.LastSpeed > 0 {
		return s.LastSpeed*0.8 + speed*0.2
	}
	return speed
}

// RefreshSpeed recomputes and stores LastSpeed/LastUpdate/LastBytes if the
// 100ms gate has elapsed; otherwise it is a no-op.
func (s *State) RefreshSpeed(now time.Time) {
	elapsed := now.Sub(s.LastUpdate).Seconds()
	if elapsed < 0.1 {
		return
	}
	s.LastSpeed = s.CalculateSpeed(now)
	s.LastUpdate = now
	s.LastBytes = s.CurrentBytes
}

// EstimateETA returns the estimated remaining seconds, or nil when speed is
// undefined (LastSpeed <= 0).
func (s *State) EstimateETA() *int {
	if s.TotalBytes == 0 {
		zero := 0
		return &zero
	}
	if s.CurrentBytes >= s.TotalBytes {
		zero := 0
		return &zero
	}
	if s.LastSpeed <= 0 {
		return nil
	}
	remaining := float64(s.TotalBytes - s.CurrentBytes)
	secs := int(math.Ceil(remaining / (s.LastSpeed * 1024 * 1024)))
	return &secs
}

// Percent returns a 0-100 percentage, reporting 0 rather than dividing by
// zero when total is zero.
func Percent(current, total uint64) int {
	if total == 0 {
		return 0
	}
	pct := float64(current) / float64(total) * 100
	if pct > 100 {
		pct = 100
	}
	return int(pct)
}

// guard bundles a State behind a mutex; Renderer implementations embed it.
type guard struct {
	mu    sync.Mutex
	state State
}

func (g *guard) with(fn func(*State)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(&g.state)
}

func (g *guard) snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
