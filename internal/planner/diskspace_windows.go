//go:build windows

package planner

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"unsafe"
)

// usableFreeSpace returns bytes available on the volume holding path, or 0
// if it cannot be determined.
func usableFreeSpace(path string) uint64 {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0
	}
	volume := filepath.VolumeName(absPath)
	if volume == "" {
		return 0
	}
	root := volume + string(os.PathSeparator)

	if free, err := getDiskFreeSpaceEx(root); err == nil {
		return free
	}
	if free := getFallbackDiskSpace(root); free > 0 {
		return free
	}
	return 0
}

func getDiskFreeSpaceEx(rootPath string) (uint64, error) {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	proc := kernel32.NewProc("GetDiskFreeSpaceExW")

	pathPtr, err := syscall.UTF16PtrFromString(rootPath)
	if err != nil {
		return 0, err
	}

	var freeBytesAvailable, totalBytes, totalFreeBytes uint64
	r1, _, callErr := proc.Call(
		uintptr(unsafe.Pointer(pathPtr)),
		uintptr(unsafe.Pointer(&freeBytesAvailable)),
		uintptr(unsafe.Pointer(&totalBytes)),
		uintptr(unsafe.Pointer(&totalFreeBytes)),
	)
	if r1 == 0 {
		return 0, callErr
	}
	return freeBytesAvailable, nil
}

func getFallbackDiskSpace(rootPath string) uint64 {
	cmd := exec.Command("powershell", "-Command",
		"(Get-WmiObject -Class Win32_LogicalDisk -Filter \"DeviceID='"+
			strings.TrimSuffix(rootPath, string(os.PathSeparator))+"'\").FreeSpace")
	output, err := cmd.Output()
	if err != nil {
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimSpace(string(output)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
