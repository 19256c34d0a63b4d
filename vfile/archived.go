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
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"

	"github.com/dsnet/compress/bzip2"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"

	"github.com/sabouaram/osrt/iobuf"
	"github.com/sabouaram/osrt/pool"
	"github.com/sabouaram/osrt/refobj"
	"github.com/sabouaram/osrt/status"
)

// newGzipReader mirrors the teacher's own choice to lean on the
// standard library for the one codec it already covers well, rather
// than pulling in a third-party gzip implementation.
func newGzipReader(r io.Reader) (io.Reader, error) {
	return gzip.NewReader(r)
}

// compressionKind names the transparent-decompression codec that
// detectCompression picks from a stream's leading bytes, the same header-matching
// approach the teacher's archive/compress package uses for its
// Algorithm.DetectHeader.
type compressionKind int

const (
	compNone compressionKind = iota
	compGzip
	compBzip2
	compLZ4
	compXZ
)

func detectCompression(magic []byte) compressionKind {
	switch {
	case len(magic) >= 2 && magic[0] == 0x1f && magic[1] == 0x8b:
		return compGzip
	case len(magic) >= 3 && bytes.Equal(magic[:3], []byte("BZh")):
		return compBzip2
	case len(magic) >= 4 && bytes.Equal(magic[:4], []byte{0x04, 0x22, 0x4d, 0x18}):
		return compLZ4
	case len(magic) >= 6 && bytes.Equal(magic[:6], []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}):
		return compXZ
	default:
		return compNone
	}
}

// archivedBackend wraps a decompressing io.Reader as a read-only
// iobuf.Backend: an archive-transparent File is never writable, since
// none of these codecs support appending into the middle of a stream.
type archivedBackend struct {
	r io.Reader
}

func (b archivedBackend) BackendRead(dst []byte) (int, status.Status) {
	n, err := b.r.Read(dst)
	if err == io.EOF {
		return n, status.New(status.EOF, "")
	}
	return n, statusFromOSError(err, "read")
}

func (b archivedBackend) BackendWrite(src []byte) (int, status.Status) {
	return 0, status.New(status.ENOTIMPL, "archive-transparent files are read-only")
}

func (b archivedBackend) BackendFlush() status.Status {
	return status.Ok()
}

// noSeeker backs an archived Stream's seeker slot: Seek only ever
// reaches BackendSeek when the target offset falls outside the
// buffered window, which a decompressing reader can never satisfy.
type noSeeker struct{}

func (noSeeker) BackendSeek(offset int64, whence int) (int64, status.Status) {
	return 0, status.New(status.ENOTIMPL, "archive-transparent files are not seekable")
}

// OpenArchived opens path for reading, transparently decompressing it
// if its leading bytes match a gzip, bzip2, lz4 or xz header — the
// feature spec.md's distillation dropped but original_source/'s
// archive handling implies: scripts reading a log or data file should
// not need to know whether it was rotated-and-compressed. Plain files
// are returned exactly as File.Open would.
func OpenArchived(p *pool.Pool, path string) (*File, status.Status) {
	raw, err := os.Open(path)
	if err != nil {
		return nil, statusFromOSError(err, "open "+path)
	}

	br := bufio.NewReader(raw)
	magic, _ := br.Peek(6)

	var decoded io.Reader
	switch detectCompression(magic) {
	case compGzip:
		decoded, err = newGzipReader(br)
	case compBzip2:
		decoded, err = bzip2.NewReader(br, nil)
	case compLZ4:
		decoded = lz4.NewReader(br)
	case compXZ:
		decoded, err = xz.NewReader(br)
	default:
		decoded = br
	}
	if err != nil {
		_ = raw.Close()
		return nil, status.New(status.EMISMATCH, "decompress "+path+": "+err.Error())
	}

	vf := &File{pool: p, path: path, mode: OpenMode{Read: true, Binary: true}}
	vf.stream = iobuf.NewStream(archivedBackend{decoded}, noSeeker{}, false, 0)
	vf.ref = refobj.New(false, func() { _ = raw.Close() })
	p.OnCleanup(vf.ref.Release)
	return vf, status.Ok()
}
