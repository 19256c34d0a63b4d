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

// Package permstring decodes and encodes the permission notations
// spec.md §6 requires File/Dir operations to accept: the classic
// 9-character symbolic form ("rwxr-xr-x"), its 10-character variant
// prefixed with a file-type glyph, and the chmod-style assignment
// grammar ("ugo=r,ug=w,o-x").
package permstring

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Perm is an os.FileMode-compatible permission value, wide enough to
// also carry the file-type bits the 10-character form encodes.
type Perm os.FileMode

// String renders p in the canonical 9-character symbolic form.
func (p Perm) String() string {
	var b strings.Builder
	groups := []Perm{(p >> 6) & 07, (p >> 3) & 07, p & 07}
	for _, g := range groups {
		b.WriteByte(charOr(g&4 != 0, 'r'))
		b.WriteByte(charOr(g&2 != 0, 'w'))
		b.WriteByte(charOr(g&1 != 0, 'x'))
	}
	return b.String()
}

func charOr(set bool, c byte) byte {
	if set {
		return c
	}
	return '-'
}

// Parse decodes s, trying in order: an octal literal ("0644"), the
// symbolic 9/10-character form, then the chmod assignment grammar.
// This mirrors the teacher's layered parseString/parseLetterString
// fallback.
func Parse(s string) (Perm, error) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)

	if v, err := strconv.ParseUint(s, 8, 32); err == nil {
		return Perm(v), nil
	}
	if p, err := parseSymbolic(s); err == nil {
		return p, nil
	}
	return parseChmodSpec(s)
}

func parseSymbolic(s string) (Perm, error) {
	if len(s) != 9 && len(s) != 10 {
		return 0, fmt.Errorf("permstring: invalid symbolic length %d", len(s))
	}

	var mode os.FileMode
	start := 0
	if len(s) == 10 {
		bit, err := fileTypeBit(s[0])
		if err != nil {
			return 0, err
		}
		mode |= bit
		start = 1
	}

	for i := 0; i < 3; i++ {
		group := s[start+i*3 : start+i*3+3]
		v, err := parseTriad(group)
		if err != nil {
			return 0, err
		}
		mode |= os.FileMode(v) << uint(6-i*3)
	}
	return Perm(mode), nil
}

func fileTypeBit(c byte) (os.FileMode, error) {
	switch c {
	case '-':
		return 0, nil
	case 'd':
		return os.ModeDir, nil
	case 'l':
		return os.ModeSymlink, nil
	case 'c':
		return os.ModeDevice | os.ModeCharDevice, nil
	case 'b':
		return os.ModeDevice, nil
	case 'p':
		return os.ModeNamedPipe, nil
	case 's':
		return os.ModeSocket, nil
	default:
		return 0, fmt.Errorf("permstring: invalid file type character %q", c)
	}
}

func parseTriad(g string) (uint8, error) {
	if len(g) != 3 {
		return 0, fmt.Errorf("permstring: invalid permission group %q", g)
	}
	var v uint8
	switch g[0] {
	case 'r':
		v += 4
	case '-':
	default:
		return 0, fmt.Errorf("permstring: invalid read bit %q", g[0])
	}
	switch g[1] {
	case 'w':
		v += 2
	case '-':
	default:
		return 0, fmt.Errorf("permstring: invalid write bit %q", g[1])
	}
	switch g[2] {
	case 'x', 's', 't', 'S', 'T':
		v += 1
	case '-':
	default:
		return 0, fmt.Errorf("permstring: invalid execute bit %q", g[2])
	}
	return v, nil
}

// who identifies the u/g/o/a classes a chmod clause targets.
type who struct{ u, g, o bool }

func parseWho(s string) who {
	var w who
	if s == "" || strings.Contains(s, "a") {
		return who{true, true, true}
	}
	for _, c := range s {
		switch c {
		case 'u':
			w.u = true
		case 'g':
			w.g = true
		case 'o':
			w.o = true
		}
	}
	return w
}

// parseChmodSpec decodes a chmod-style clause list such as
// "ugo=r,ug=w,o-x". Clauses apply left to right against a
// zero-initialized Perm: '=' sets the named bit for the named classes
// (clearing it everywhere else among those classes), '+' sets it,
// '-' clears it.
func parseChmodSpec(s string) (Perm, error) {
	if s == "" {
		return 0, fmt.Errorf("permstring: empty permission spec")
	}
	var mode os.FileMode
	for _, clause := range strings.Split(s, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		opIdx := strings.IndexAny(clause, "+-=")
		if opIdx < 0 {
			return 0, fmt.Errorf("permstring: invalid clause %q", clause)
		}
		w := parseWho(clause[:opIdx])
		op := clause[opIdx]
		bits := clause[opIdx+1:]

		var r, wr, x bool
		for _, c := range bits {
			switch c {
			case 'r':
				r = true
			case 'w':
				wr = true
			case 'x':
				x = true
			default:
				return 0, fmt.Errorf("permstring: invalid permission letter %q", c)
			}
		}

		apply := func(shift uint, on bool) {
			var bit os.FileMode
			if r {
				bit |= 4
			}
			if wr {
				bit |= 2
			}
			if x {
				bit |= 1
			}
			bit <<= shift
			switch op {
			case '=':
				mode &^= os.FileMode(07) << shift
				mode |= bit
			case '+':
				mode |= bit
			case '-':
				mode &^= bit
			}
			_ = on
		}
		if w.u {
			apply(6, true)
		}
		if w.g {
			apply(3, true)
		}
		if w.o {
			apply(0, true)
		}
	}
	return Perm(mode), nil
}
