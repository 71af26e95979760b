package launch

import (
	"fmt"
	"os/exec"
)

// Spawner starts a process and returns its pid without waiting for it.
type Spawner interface {
	Start(name string, args []string) (int, error)
}

// ExecSpawner starts detached children with stdin/stdout/stderr bound to the
// null device.
type ExecSpawner struct{}

// Start launches name and returns at once. A background Wait reaps the child
// when it exits; nothing else observes or stops it.
func (ExecSpawner) Start(name string, args []string) (int, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = detachedProcAttr()

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %s: %w", name, err)
	}
	pid := cmd.Process.Pid
	go func() { _ = cmd.Wait() }()
	return pid, nil
}
