//go:build windows

package progress

// watchSuspend is a no-op on Windows: there is no job-control signal
// equivalent to SIGTSTP/SIGCONT.
func watchSuspend(onStop, onResume func()) func() {
	return func() {}
}
