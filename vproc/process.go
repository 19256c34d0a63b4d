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

// Package vproc implements spec.md §4.5: a child-process builder/handle
// over os/exec, with lazily-wrapped stdio Files and a gopsutil-backed
// Stat snapshot (a feature original_source/ carries that spec.md's
// distillation dropped — see DESIGN.md).
package vproc

import (
	"os"
	"os/exec"
	"sync"
	"time"

	gopsproc "github.com/shirou/gopsutil/process"

	"github.com/sabouaram/osrt/logger"
	"github.com/sabouaram/osrt/pool"
	"github.com/sabouaram/osrt/refobj"
	"github.com/sabouaram/osrt/status"
	"github.com/sabouaram/osrt/vfile"
)

var log = logger.Component("vproc")

// CmdType selects how the program argument is interpreted, and whether
// env_set is honored (spec.md §4.5: "ignored for command types
// shellcmd/env, program/env, program/env/path which inherit the
// caller's environment instead").
type CmdType int

const (
	CmdProgram CmdType = iota
	CmdProgramEnv
	CmdProgramPath
	CmdProgramEnvPath
	CmdShell
	CmdShellEnv
)

func (t CmdType) inheritsEnv() bool {
	switch t {
	case CmdShellEnv, CmdProgramEnv, CmdProgramEnvPath:
		return true
	default:
		return false
	}
}

func (t CmdType) isShell() bool {
	return t == CmdShell || t == CmdShellEnv
}

// IOMode selects the blocking behavior of a pipe io_set creates for one
// stdio stream (spec.md §4.5). Every mode other than IONone creates an
// ordinary os.Pipe, which is blocking on both ends; IOFullNonBlock,
// IOParentBlock and IOChildBlock are accepted but do not change the
// blocking behavior of either end.
type IOMode int

const (
	IONone IOMode = iota
	IOFullBlock
	IOFullNonBlock
	IOParentBlock
	IOChildBlock
)

// KillHow selects when/whether GC-time cleanup signals the child
// (spec.md §4.5's kill(how)).
type KillHow int

const (
	KillNever KillHow = iota
	KillAlways
	KillTimeout
	KillWait
	KillOnce
)

// WaitWhy classifies how a child terminated (spec.md §4.5's
// wait() → (done, why, code)).
type WaitWhy string

const (
	WhyExit       WaitWhy = "exit"
	WhySignal     WaitWhy = "signal"
	WhySignalCore WaitWhy = "signal/core"
)

// stdioSlot is one of stdin/stdout/stderr: the parent-side pipe end
// (nil if io_set was never called for this stream) plus its lazily
// created File wrapper, cached so repeated *_get calls return the same
// object (spec.md §4.5).
type stdioSlot struct {
	parentEnd *os.File
	childEnd  *os.File
	wrapped   *vfile.File
}

// Process is the builder/handle spec.md §4.5 describes. Setters mutate
// the builder and return it, the way the teacher's own option-struct
// builders do elsewhere in the pack.
type Process struct {
	ref  *refobj.Ref
	pool *pool.Pool

	program string
	cmdType CmdType
	user    string
	group   string
	env     map[string]string
	dir     string
	detach  bool
	errChk  bool
	killHow KillHow

	cmd      *exec.Cmd
	waitDone chan struct{}
	waitErr  error

	mu    sync.Mutex
	stdin stdioSlot
	stdo  stdioSlot
	stde  stdioSlot

	waited bool
}

// Create begins building a child process that will run program
// (spec.md §4.5's proc_create).
func Create(program string) *Process {
	p := pool.New()
	proc := &Process{pool: p, program: program}
	proc.ref = refobj.New(false, func() { proc.cleanup() })
	p.OnCleanup(proc.ref.Release)
	return proc
}

// cleanup runs at GC/pool-destroy time (spec.md §4.5: "any cached pipe
// Files are closed first, then the process's pool is destroyed";
// SIGKILL/SIGTERM behavior is controlled by the earlier kill(how)).
func (p *Process) cleanup() {
	p.mu.Lock()
	slots := []*stdioSlot{&p.stdin, &p.stdo, &p.stde}
	waited := p.waited
	killHow := p.killHow
	cmd := p.cmd
	waitDone := p.waitDone
	p.mu.Unlock()

	for _, s := range slots {
		if s.wrapped != nil {
			_ = s.wrapped.Close()
		} else if s.parentEnd != nil {
			_ = s.parentEnd.Close()
		}
	}

	if cmd == nil || cmd.Process == nil || waited {
		return
	}
	switch killHow {
	case KillAlways, KillTimeout, KillOnce:
		if err := cmd.Process.Kill(); err != nil {
			log.WithError(err).Debug("kill on cleanup failed")
		}
	case KillWait:
		if waitDone != nil {
			<-waitDone
		}
	}
}

// CmdTypeSet selects how the program string is interpreted.
func (p *Process) CmdTypeSet(t CmdType) *Process { p.cmdType = t; return p }

// AddrSpaceSet is accepted for API fidelity with spec.md §4.5 but has
// no effect: Go's os/exec always launches a process in its own address
// space, and the retrieval pack carries no library for requesting an
// alternate one (e.g. WOW64 32-bit subprocess creation).
func (p *Process) AddrSpaceSet(string) *Process { return p }

// UserSet/GroupSet record the identity exec should run as; applied at
// Exec time via platformCredential (unix only — see
// process_unix.go/process_windows.go).
func (p *Process) UserSet(user string) *Process   { p.user = user; return p }
func (p *Process) GroupSet(group string) *Process { p.group = group; return p }

// EnvSet records the child's environment mapping; ignored at Exec time
// for command types that inherit the caller's environment instead
// (spec.md §4.5).
func (p *Process) EnvSet(env map[string]string) *Process { p.env = env; return p }

// DirSet sets the child's working directory.
func (p *Process) DirSet(dir string) *Process { p.dir = dir; return p }

// DetachSet marks the child as detached from the parent's process
// group (platform-specific at Exec time, see process_unix.go).
func (p *Process) DetachSet(detach bool) *Process { p.detach = detach; return p }

// ErrorCheckSet controls whether Wait treats a non-zero exit as a
// failing Status rather than a successful "done" report.
func (p *Process) ErrorCheckSet(check bool) *Process { p.errChk = check; return p }

// KillSet records how GC-time cleanup should treat a still-running
// child (spec.md §4.5's kill(how), applied at cleanup time).
func (p *Process) KillSet(how KillHow) *Process { p.killHow = how; return p }

func newPipe(mode IOMode) (parentEnd, childEnd *os.File, st status.Status) {
	if mode == IONone {
		return nil, nil, status.Ok()
	}
	r, w, err := os.Pipe()
	if err != nil {
		return nil, nil, status.New(status.ENOMEM, "failed to create stdio pipe: "+err.Error())
	}
	return r, w, status.Ok()
}

// InSet creates stdin's pipe in mode: the child reads from its end,
// the parent writes to its end (spec.md §4.5's in_set).
func (p *Process) InSet(mode IOMode) status.Status {
	writeEnd, readEnd, st := pipeReversed(mode)
	if !st.IsOk() {
		return st
	}
	p.mu.Lock()
	p.stdin = stdioSlot{parentEnd: writeEnd, childEnd: readEnd}
	p.mu.Unlock()
	return status.Ok()
}

// pipeReversed builds a pipe whose read end is the second return value,
// used for stdin where the child holds the read end (opposite
// orientation from stdout/stderr).
func pipeReversed(mode IOMode) (writeEnd, readEnd *os.File, st status.Status) {
	readEnd, writeEnd, st = newPipe(mode)
	return writeEnd, readEnd, st
}

// OutSet creates stdout's pipe in mode: the child writes to its end,
// the parent reads from its end (spec.md §4.5's out_set).
func (p *Process) OutSet(mode IOMode) status.Status {
	parentEnd, childEnd, st := newPipe(mode)
	if !st.IsOk() {
		return st
	}
	p.mu.Lock()
	p.stdo = stdioSlot{parentEnd: parentEnd, childEnd: childEnd}
	p.mu.Unlock()
	return status.Ok()
}

// ErrSet creates stderr's pipe in mode, mirroring OutSet.
func (p *Process) ErrSet(mode IOMode) status.Status {
	parentEnd, childEnd, st := newPipe(mode)
	if !st.IsOk() {
		return st
	}
	p.mu.Lock()
	p.stde = stdioSlot{parentEnd: parentEnd, childEnd: childEnd}
	p.mu.Unlock()
	return status.Ok()
}

// IOSet wires all three stdio streams at once (spec.md §4.5's
// io_set(in, out, err)).
func (p *Process) IOSet(in, out, errMode IOMode) status.Status {
	if st := p.InSet(in); !st.IsOk() {
		return st
	}
	if st := p.OutSet(out); !st.IsOk() {
		return st
	}
	return p.ErrSet(errMode)
}

func (p *Process) resolveEnv() []string {
	if p.cmdType.inheritsEnv() || p.env == nil {
		return os.Environ()
	}
	out := make([]string, 0, len(p.env))
	for k, v := range p.env {
		out = append(out, k+"="+v)
	}
	return out
}

// Exec starts the child process (spec.md §4.5's exec(args?)). For the
// program command types, args are passed as the child's arguments after
// argv[0], which is always the program name; argv[0] cannot be
// overridden. The shell command types ignore args and hand program to
// the shell as its command string.
func (p *Process) Exec(args ...string) status.Status {
	var name string
	var argv []string
	if p.cmdType.isShell() {
		name = shellName()
		argv = append(shellArgs(), p.program)
	} else {
		name = p.program
		argv = args
	}

	cmd := exec.Command(name, argv...)
	cmd.Env = p.resolveEnv()
	cmd.Dir = p.dir

	p.mu.Lock()
	if p.stdin.childEnd != nil {
		cmd.Stdin = p.stdin.childEnd
	}
	if p.stdo.childEnd != nil {
		cmd.Stdout = p.stdo.childEnd
	}
	if p.stde.childEnd != nil {
		cmd.Stderr = p.stde.childEnd
	}
	p.mu.Unlock()

	applyCredential(cmd, p.user, p.group)
	applyDetach(cmd, p.detach)

	if err := cmd.Start(); err != nil {
		return status.New(status.EPROC_UNKNOWN, err.Error())
	}
	p.cmd = cmd
	p.waitDone = make(chan struct{})
	go func() {
		p.waitErr = cmd.Wait()
		close(p.waitDone)
	}()

	// The parent no longer needs the child's ends once the fork+exec
	// has inherited them; closing them here is what lets EOF propagate
	// to the parent's read end once the child itself closes its copy.
	p.mu.Lock()
	for _, s := range []*stdioSlot{&p.stdin, &p.stdo, &p.stde} {
		if s.childEnd != nil {
			_ = s.childEnd.Close()
			s.childEnd = nil
		}
	}
	p.mu.Unlock()

	return status.Ok()
}

// wrapSlot lazily wraps slot's parent-side pipe end as a buffered File,
// caching the wrapper so repeated calls return the same object
// (spec.md §4.5's in_get/out_get/err_get).
func (p *Process) wrapSlot(slot *stdioSlot, label string, mode vfile.OpenMode) (*vfile.File, status.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if slot.parentEnd == nil {
		return nil, status.New(status.EINVAL, label+" was not attached via io_set")
	}
	if slot.wrapped == nil {
		slot.wrapped = vfile.WrapHandle(p.pool, label, slot.parentEnd, mode)
	}
	return slot.wrapped, status.Ok()
}

// InGet returns the parent's write end of stdin as a File.
func (p *Process) InGet() (*vfile.File, status.Status) {
	return p.wrapSlot(&p.stdin, "stdin", vfile.OpenMode{Write: true, Binary: true})
}

// OutGet returns the parent's read end of stdout as a File.
func (p *Process) OutGet() (*vfile.File, status.Status) {
	return p.wrapSlot(&p.stdo, "stdout", vfile.OpenMode{Read: true, Binary: true})
}

// ErrGet returns the parent's read end of stderr as a File.
func (p *Process) ErrGet() (*vfile.File, status.Status) {
	return p.wrapSlot(&p.stde, "stderr", vfile.OpenMode{Read: true, Binary: true})
}

// Wait blocks (if blocking) until the child exits, or polls once
// otherwise, returning (done, why, code) per spec.md §4.5.
func (p *Process) Wait(blocking bool) (done bool, why WaitWhy, code int, st status.Status) {
	if p.cmd == nil {
		return false, "", 0, status.New(status.EINVAL, "process has not been exec'd")
	}

	if blocking {
		<-p.waitDone
	} else {
		select {
		case <-p.waitDone:
		default:
			return false, "", 0, status.Ok()
		}
	}

	p.mu.Lock()
	p.waited = true
	p.mu.Unlock()

	why, code = classifyExit(p.cmd.ProcessState, p.waitErr)
	if p.errChk && code != 0 && why == WhyExit {
		return true, why, code, status.Newf(status.EPROC_UNKNOWN, "child exited with code %d", code)
	}
	return true, why, code, status.Ok()
}

// Kill signals the child according to how, independent of the
// GC-time policy set via KillSet (spec.md §4.5's kill(how), invoked
// explicitly).
func (p *Process) Kill(how KillHow) status.Status {
	if p.cmd == nil || p.cmd.Process == nil {
		return status.New(status.EINVAL, "process has not been exec'd")
	}
	switch how {
	case KillNever:
		return status.Ok()
	case KillWait:
		if p.waitDone != nil {
			<-p.waitDone
			p.mu.Lock()
			p.waited = true
			p.mu.Unlock()
		}
		return status.Ok()
	default:
		if err := p.cmd.Process.Kill(); err != nil {
			return status.New(status.EPROC_UNKNOWN, err.Error())
		}
		return status.Ok()
	}
}

// Close releases the Process's pool (closing any cached stdio Files
// and, depending on KillSet, signaling a still-running child).
func (p *Process) Close() status.Status {
	p.pool.Release()
	return status.Ok()
}

// Fork is honestly unimplemented: Go's runtime multiplexes goroutines
// across OS threads and runs its own GC/scheduler bookkeeping on all
// of them, none of which survives a raw fork() in the child until the
// next exec() replaces its image. Returning ENOTIMPL here is safer
// than the memory corruption a half-working fork would eventually
// produce (see DESIGN.md).
func Fork() (*Process, status.Status) {
	return nil, status.New(status.ENOTIMPL, "fork is not supported by the Go runtime without an immediate exec")
}

// Stat is a supplemental snapshot of the running child beyond
// spec.md's own scope (gathered via gopsutil, grounded on the
// teacher's go.mod listing of shirou/gopsutil): CPU/memory usage and
// wall-clock age, useful for a VM that wants to report resource
// consumption of a spawned child.
type Stat struct {
	Pid        int
	CPUPercent float64
	RSS        uint64
	VMS        uint64
	CreateTime time.Time
	Running    bool
}

// Stat snapshots the child's current resource usage. Returns a failing
// Status if the process has not been exec'd or has already exited and
// been reaped.
func (p *Process) Stat() (Stat, status.Status) {
	if p.cmd == nil || p.cmd.Process == nil {
		return Stat{}, status.New(status.EINVAL, "process has not been exec'd")
	}
	pid := int32(p.cmd.Process.Pid)
	proc, err := gopsproc.NewProcess(pid)
	if err != nil {
		return Stat{}, status.New(status.EPROC_UNKNOWN, err.Error())
	}

	cpuPct, _ := proc.CPUPercent()
	mem, memErr := proc.MemoryInfo()
	createMs, _ := proc.CreateTime()
	running, _ := proc.IsRunning()

	st := Stat{
		Pid:        int(pid),
		CPUPercent: cpuPct,
		CreateTime: time.UnixMilli(createMs),
		Running:    running,
	}
	if memErr == nil && mem != nil {
		st.RSS = mem.RSS
		st.VMS = mem.VMS
	}
	return st, status.Ok()
}
