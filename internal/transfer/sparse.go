package transfer

import (
	"io"
	"os"

	"bcmr/internal/command"
	"bcmr/internal/core/errs"
)

const sparseThreshold = 4096

// sparseWriter wraps a destination file, coalescing runs of all-zero
// buffers into filesystem holes per the configured SparseMode instead of
// writing zero bytes to disk.
type sparseWriter struct {
	f           *os.File
	mode        command.SparseMode
	pos         int64 // logical position already accounted for (written or holed)
	pendingHole int64
}

func newSparseWriter(f *os.File, startOffset int64, mode command.SparseMode) *sparseWriter {
	return &sparseWriter{f: f, mode: mode, pos: startOffset}
}

func isAllZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}

func (w *sparseWriter) qualifiesAsHole(n int) bool {
	switch w.mode {
	case command.SparseNever:
		return false
	case command.SparseAlways:
		return true
	default: // SparseAuto
		return n >= sparseThreshold
	}
}

// Write writes buf[:n] at the writer's current logical position, holing it
// out instead of materializing zeros when eligible.
func (w *sparseWriter) Write(buf []byte, n int) error {
	if n == 0 {
		return nil
	}
	if isAllZero(buf[:n]) && w.qualifiesAsHole(n) {
		w.pendingHole += int64(n)
		w.pos += int64(n)
		return nil
	}
	if err := w.flushHole(); err != nil {
		return err
	}
	if _, err := w.f.Write(buf[:n]); err != nil {
		return errs.WrapIO("write", err)
	}
	w.pos += int64(n)
	return nil
}

func (w *sparseWriter) flushHole() error {
	if w.pendingHole == 0 {
		return nil
	}
	if _, err := w.f.Seek(w.pendingHole, io.SeekCurrent); err != nil {
		return errs.WrapIO("seek hole", err)
	}
	w.pendingHole = 0
	return nil
}

// Close finalizes a trailing hole (if any) by truncating the file to the
// logical size, so a hole at EOF still produces the correct file size
// without the seek having materialized real blocks.
func (w *sparseWriter) Close() error {
	if w.pendingHole > 0 {
		if err := w.f.Truncate(w.pos); err != nil {
			return errs.WrapIO("truncate trailing hole", err)
		}
		w.pendingHole = 0
	}
	return nil
}
