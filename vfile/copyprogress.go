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
	"io"
	"os"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/sabouaram/osrt/permstring"
	"github.com/sabouaram/osrt/pool"
	"github.com/sabouaram/osrt/status"
)

// raw byte-level reads bypass the buffered Stream since CopyProgress
// measures and moves whole chunks itself; Flush/Close on src and dst
// still go through the normal File API via the deferred Close calls.

// ProgressFunc receives the cumulative byte count copied so far, mirroring
// the teacher's file/progress FctIncrement callback shape.
type ProgressFunc func(copied, total int64)

// CopyProgress copies srcPath to dstPath, invoking onProgress after each
// chunk and, when render is true, driving an mpb terminal progress bar —
// the feature original_source/'s file-copy helpers expose and spec.md's
// distillation left out, supplemented here per the process's "enrich from
// the rest of the pack" step.
func CopyProgress(p *pool.Pool, dstPath, srcPath string, perm permstring.Perm, render bool, onProgress ProgressFunc) (int64, status.Status) {
	src, st := Open(p, srcPath, "rb", 0)
	if !st.IsOk() {
		return 0, st
	}
	defer src.Close()

	dst, st := Open(p, dstPath, "wb", perm)
	if !st.IsOk() {
		return 0, st
	}
	defer dst.Close()

	info, err := os.Stat(srcPath)
	if err != nil {
		return 0, statusFromOSError(err, "stat "+srcPath)
	}
	total := info.Size()

	var bar *mpb.Bar
	var progress *mpb.Progress
	if render {
		progress = mpb.New(mpb.WithWidth(64))
		bar = progress.AddBar(total,
			mpb.PrependDecorators(decor.Name(dstPath)),
			mpb.AppendDecorators(decor.CountersKibiByte("% .2f / % .2f")),
		)
	}

	buf := make([]byte, 32*1024)
	var copied int64
	var loopErr error

	for {
		n, rErr := src.os.Read(buf)
		if n > 0 {
			if _, wErr := dst.os.Write(buf[:n]); wErr != nil {
				loopErr = wErr
				break
			}
			copied += int64(n)
			if bar != nil {
				bar.IncrBy(n)
			}
			if onProgress != nil {
				onProgress(copied, total)
			}
		}
		if rErr != nil {
			if rErr != io.EOF {
				loopErr = rErr
			}
			break
		}
	}

	if progress != nil {
		progress.Wait()
	}

	if loopErr != nil {
		return copied, statusFromOSError(loopErr, "copy "+srcPath+" -> "+dstPath)
	}
	return copied, status.Ok()
}
