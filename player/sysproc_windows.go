//go:build windows

package player

import (
	"os/exec"
	"syscall"
)

// CREATE_NEW_PROCESS_GROUP
const createNewProcessGroup = 0x00000200

func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: createNewProcessGroup}
}

func terminate(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
