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

package iobuf

// Kind discriminates the four read formats of spec.md §4.2's table.
type Kind int

const (
	// KindLine reads up to but not including '\n' ('*l', the default).
	KindLine Kind = iota
	// KindNumber skips leading whitespace and parses a numeric prefix ('*n').
	KindNumber
	// KindAll reads every remaining byte until EOF ('*a').
	KindAll
	// KindCount reads at most N bytes (the integer format).
	KindCount
)

// Format is one element of the format list passed to Reader.Read.
type Format struct {
	Kind  Kind
	Count int
}

// Line is the '*l' format: one line, excluding the trailing newline.
func Line() Format { return Format{Kind: KindLine} }

// Number is the '*n' format: the longest valid numeric prefix.
func Number() Format { return Format{Kind: KindNumber} }

// All is the '*a' format: every remaining byte until EOF.
func All() Format { return Format{Kind: KindAll} }

// Count is the integer format: at most n bytes.
func Count(n int) Format { return Format{Kind: KindCount, Count: n} }

// Value is one result of Reader.Read: either a string payload (Line,
// All, Count) or a parsed number (Number), or neither when Valid is
// false — the Go rendering of the spec's "return nil" cases (EOF with
// no bytes for Line/Count, or no valid numeric prefix for Number).
type Value struct {
	Str   string
	Num   float64
	IsNum bool
	Valid bool
}

func strValue(s string) Value   { return Value{Str: s, Valid: true} }
func numValue(n float64) Value  { return Value{Num: n, IsNum: true, Valid: true} }
func nilValue() Value           { return Value{} }
func (v Value) String() string  { return v.Str }
func (v Value) IsNil() bool     { return !v.Valid }
