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

package cliopt

import "strings"

// optSpec describes one option extracted from a usage-message line, e.g.
//
//	-v, --verbose           enable verbose output
//	-o, --output=FILE       write the result to FILE
//
// Only the option spelling is parsed out of the line; the rest of the
// line (past the first run of two-or-more spaces) is left untouched so
// it prints back exactly as the caller wrote it.
type optSpec struct {
	short  byte
	long   string
	hasArg bool
}

// name returns the pflag-facing long name for this option, synthesizing
// one from the short letter when the usage line declared no --long form.
func (o optSpec) name() string {
	if o.long != "" {
		return o.long
	}
	return string(o.short)
}

// parseUsage scans a usage-message string line by line and pulls out the
// option specs it declares. Lines that do not start with a '-' token
// (after leading whitespace) are plain prose and are ignored here; they
// still appear verbatim when the usage string itself is printed.
func parseUsage(usage string) []optSpec {
	var specs []optSpec

	for _, line := range strings.Split(usage, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "-") {
			continue
		}

		spec := trimmed
		if idx := strings.Index(trimmed, "  "); idx >= 0 {
			spec = trimmed[:idx]
		}

		var o optSpec
		for _, tok := range strings.Split(spec, ",") {
			tok = strings.TrimSpace(tok)
			switch {
			case strings.HasPrefix(tok, "--"):
				name := tok[2:]
				if i := strings.IndexAny(name, "= "); i >= 0 {
					o.hasArg = true
					name = name[:i]
				}
				o.long = name
			case strings.HasPrefix(tok, "-") && len(tok) >= 2:
				name := tok[1:]
				if i := strings.IndexAny(name, "= "); i >= 0 {
					o.hasArg = true
					name = name[:i]
				}
				if len(name) >= 1 {
					o.short = name[0]
				}
			}
		}

		if o.long != "" || o.short != 0 {
			specs = append(specs, o)
		}
	}

	return specs
}
