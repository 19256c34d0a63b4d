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

package vfile

import (
	"os"
	"path/filepath"
	"time"

	"github.com/sabouaram/osrt/permstring"
)

// EntryType enumerates the node kinds Stat.Type reports, per spec.md
// §4.3's stat field table.
type EntryType int

const (
	TypeUnknown EntryType = iota
	TypeRegular
	TypeDirectory
	TypeSymlink
	TypeSocket
	TypePipe
	TypeDevice
)

// Stat is the full metadata record spec.md §4.3 requires File/Dir
// operations to expose: name, path, type, size, the time triple, link
// count and the platform-dependent inode/device/"link" pseudo-field.
type Stat struct {
	Name       string
	Path       string
	Type       EntryType
	Size       int64
	CSize      int64 // allocated size on disk; equals Size when unknown (spec.md §4.3)
	CTime      time.Time
	ATime      time.Time
	MTime      time.Time
	NLink      uint64
	Inode      uint64
	Dev        uint64
	Protection permstring.Perm
	Link       string // symlink target, empty for non-symlinks
}

func typeOf(mode os.FileMode) EntryType {
	switch {
	case mode&os.ModeSymlink != 0:
		return TypeSymlink
	case mode&os.ModeDir != 0:
		return TypeDirectory
	case mode&os.ModeSocket != 0:
		return TypeSocket
	case mode&os.ModeNamedPipe != 0:
		return TypePipe
	case mode&os.ModeDevice != 0:
		return TypeDevice
	case mode.IsRegular():
		return TypeRegular
	default:
		return TypeUnknown
	}
}

// statOf builds a Stat from a standard os.FileInfo. Platform-specific
// fields (inode, device, nlink, precise atime/ctime) are filled in by
// statPlatform where the host OS exposes them; elsewhere they stay at
// their zero value, which spec.md §4.3 allows ("fields with no
// platform equivalent read as zero, not an error").
func statOf(path string, info os.FileInfo) Stat {
	s := Stat{
		Name:       info.Name(),
		Path:       path,
		Type:       typeOf(info.Mode()),
		Size:       info.Size(),
		CSize:      info.Size(),
		MTime:      info.ModTime(),
		Protection: permstring.Perm(info.Mode().Perm()),
	}
	if s.Type == TypeSymlink {
		if target, err := os.Readlink(path); err == nil {
			s.Link = target
		}
	}
	statPlatform(&s, info)
	return s
}

// join mirrors filepath.Join but is named here so callers reading
// dir.go don't need to import path/filepath themselves.
func join(dir, name string) string {
	return filepath.Join(dir, name)
}
