//go:build !windows

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
	"os/user"
	"strconv"
	"syscall"
)

func shellName() string { return "/bin/sh" }

func shellArgs() []string { return []string{"-c"} }

// applyCredential resolves userName/groupName to numeric uid/gid via
// os/user and sets cmd.SysProcAttr.Credential, the same lookup-then-
// syscall pattern the stdlib's own os/exec examples use for dropping
// privilege. Left untouched when neither is set.
func applyCredential(cmd *exec.Cmd, userName, groupName string) {
	if userName == "" && groupName == "" {
		return
	}
	var uid, gid uint32
	if userName != "" {
		if u, err := user.Lookup(userName); err == nil {
			if n, err := strconv.ParseUint(u.Uid, 10, 32); err == nil {
				uid = uint32(n)
			}
			if groupName == "" {
				if n, err := strconv.ParseUint(u.Gid, 10, 32); err == nil {
					gid = uint32(n)
				}
			}
		}
	}
	if groupName != "" {
		if g, err := user.LookupGroup(groupName); err == nil {
			if n, err := strconv.ParseUint(g.Gid, 10, 32); err == nil {
				gid = uint32(n)
			}
		}
	}
	attr := sysProcAttr(cmd)
	attr.Credential = &syscall.Credential{Uid: uid, Gid: gid}
}

// applyDetach puts the child in its own process group (Setpgid) so it
// survives the parent exiting, mirroring setsid-style daemonization.
func applyDetach(cmd *exec.Cmd, detach bool) {
	if !detach {
		return
	}
	attr := sysProcAttr(cmd)
	attr.Setpgid = true
}

func sysProcAttr(cmd *exec.Cmd) *syscall.SysProcAttr {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	return cmd.SysProcAttr
}

// classifyExit inspects os.ProcessState (via its underlying
// syscall.WaitStatus) to split a normal non-zero exit from death by
// signal, and whether a core was dumped (spec.md §4.5's wait() why
// values).
func classifyExit(state *os.ProcessState, err error) (WaitWhy, int) {
	if state == nil {
		if err != nil {
			return WhyExit, -1
		}
		return WhyExit, 0
	}
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		if state.Success() {
			return WhyExit, 0
		}
		return WhyExit, state.ExitCode()
	}
	switch {
	case ws.Signaled():
		if ws.CoreDump() {
			return WhySignalCore, int(ws.Signal())
		}
		return WhySignal, int(ws.Signal())
	default:
		return WhyExit, ws.ExitStatus()
	}
}
