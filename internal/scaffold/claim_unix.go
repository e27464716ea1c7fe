//go:build unix

package scaffold

import (
	"errors"
	"syscall"
)

// processAlive reports whether pid names a running process. Signal 0
// checks existence without delivering anything.
func processAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}
