//go:build !windows

package player

import (
	"os/exec"
	"syscall"
)

// sysProcAttr puts the player in its own process group so terminal signals do not reach it.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// terminate kills the player together with anything it spawned, such as yt-dlp.
func terminate(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	return cmd.Process.Kill()
}
