//go:build windows

/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package vproc

import (
	"os"
	"os/exec"
	"syscall"
)

func shellName() string { return "cmd.exe" }

func shellArgs() []string { return []string{"/C"} }

// applyCredential is a documented no-op on Windows: impersonating
// another account requires a logon token (LogonUser+CreateProcessAsUser),
// which the retrieval pack carries no library for, unlike the direct
// uid/gid syscall.Credential path available on unix.
func applyCredential(cmd *exec.Cmd, userName, groupName string) {}

// applyDetach sets CREATE_NEW_PROCESS_GROUP so the child does not
// receive the parent console's Ctrl+C, the Windows analogue of unix's
// Setpgid detach.
func applyDetach(cmd *exec.Cmd, detach bool) {
	if !detach {
		return
	}
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= syscall.CREATE_NEW_PROCESS_GROUP
}

// classifyExit on Windows has no signal/core-dump distinction: every
// exit is reported as WhyExit with the process's exit code.
func classifyExit(state *os.ProcessState, err error) (WaitWhy, int) {
	if state == nil {
		return WhyExit, -1
	}
	return WhyExit, state.ExitCode()
}
