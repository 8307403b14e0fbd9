//go:build !windows

package progress

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// watchSuspend forwards SIGTSTP (Ctrl+Z) by restoring terminal state before
// the process actually stops, and re-establishes it on SIGCONT (fg). It
// returns a stop function that unregisters the watch.
func watchSuspend(onStop, onResume func()) func() {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, unix.SIGTSTP, unix.SIGCONT)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig, ok := <-sigCh:
				if !ok {
					return
				}
				switch sig {
				case unix.SIGTSTP:
					onStop()
					signal.Reset(unix.SIGTSTP)
					_ = unix.Kill(os.Getpid(), unix.SIGTSTP)
				case unix.SIGCONT:
					onResume()
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		close(done)
		signal.Stop(sigCh)
	}
}
