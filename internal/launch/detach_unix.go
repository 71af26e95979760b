//go:build !windows

package launch

import "syscall"

// New session so the game survives the launcher and its terminal.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
