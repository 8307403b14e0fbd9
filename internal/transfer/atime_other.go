//go:build !linux

package transfer

import (
	"os"
	"time"
)

// accessTime has no portable cross-platform accessor outside Linux's
// Stat_t; ModTime is used as the best available approximation.
func accessTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
