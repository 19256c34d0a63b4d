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

// Package cliopt is the line-oriented option-parsing helper scripts reach
// for to build a small CLI surface without pulling in a full command
// tree. A caller hands it the usage message it already wants to show a
// user; cliopt parses the short and long options out of that text, runs
// them against the real argument list with spf13/pflag, and hands back
// the recognized options plus the leftover positional arguments.
//
// -h/--help is always honored: on request the usage string is printed
// and Parse reports HelpShown so the caller can stop. A malformed
// argument list prints the usage string followed by the error and, by
// default, exits the process with status 1; passing noExit suppresses
// the exit and reports the failure as a Status instead, for callers
// (and tests) that need to keep running.
package cliopt

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/spf13/pflag"

	"github.com/sabouaram/osrt/logger"
	"github.com/sabouaram/osrt/status"
)

var log = logger.Component("cliopt")

var (
	headingColor = color.New(color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// Result is what a successful (or help-short-circuited) Parse reports.
type Result struct {
	// Options holds every option that was actually present on the
	// command line, keyed by its long name (or, for short-only
	// options, the single-letter name). Flags with no argument are
	// recorded with the value "true".
	Options map[string]string

	// Args holds the positional arguments left over once every
	// recognized option has been consumed.
	Args []string

	// HelpShown is true when -h/--help was given; the usage message
	// has already been printed and the caller should stop.
	HelpShown bool
}

// Parse parses args against the options declared in usage.
//
// On -h/--help it prints usage to stdout, returns a Result with
// HelpShown set, and (unless noExit) calls os.Exit(0).
//
// On a parse error it prints usage followed by the error to stderr
// and (unless noExit) calls os.Exit(1); with noExit it instead returns
// a non-ok Status describing the failure.
func Parse(usage string, args []string, noExit bool) (*Result, status.Status) {
	specs := parseUsage(usage)

	fs := pflag.NewFlagSet("", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	declaredHelp := false
	for _, o := range specs {
		name := o.name()
		if name == "help" || o.short == 'h' {
			declaredHelp = true
		}
		if o.hasArg {
			if o.short != 0 {
				fs.StringP(name, string(o.short), "", "")
			} else {
				fs.String(name, "", "")
			}
		} else {
			if o.short != 0 {
				fs.BoolP(name, string(o.short), false, "")
			} else {
				fs.Bool(name, false, "")
			}
		}
	}

	var help *bool
	if !declaredHelp {
		help = fs.BoolP("help", "h", false, "")
	}

	if err := fs.Parse(args); err != nil {
		return parseFailure(usage, noExit, status.Newf(status.EINVAL, "cliopt: %s", err))
	}

	if (help != nil && *help) || (declaredHelp && helpRequested(fs, specs)) {
		printUsage(colorableStdout(), usage)
		if !noExit {
			os.Exit(0)
		}
		return &Result{HelpShown: true}, status.Ok()
	}

	opts := make(map[string]string, len(specs))
	for _, o := range specs {
		name := o.name()
		f := fs.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		opts[name] = f.Value.String()
	}

	return &Result{Options: opts, Args: fs.Args()}, status.Ok()
}

// helpRequested covers the case where the usage string itself declares
// -h/--help as one of its options: pflag then owns the flag under its
// declared name rather than under "help", so look it up there.
func helpRequested(fs *pflag.FlagSet, specs []optSpec) bool {
	for _, o := range specs {
		if o.name() == "help" || o.short == 'h' {
			if f := fs.Lookup(o.name()); f != nil && f.Value.String() == "true" {
				return true
			}
		}
	}
	return false
}

func parseFailure(usage string, noExit bool, st status.Status) (*Result, status.Status) {
	log.WithError(st.AsError()).Warn("cliopt: parse error")

	w := colorableStderr()
	printUsage(w, usage)
	errorColor.Fprintf(w, "error: %s\n", st.Message())

	if !noExit {
		os.Exit(1)
	}
	return nil, st
}

func printUsage(w io.Writer, usage string) {
	headingColor.Fprintln(w, "usage:")
	fmt.Fprintln(w, usage)
}

func colorableStdout() io.Writer { return colorable.NewColorableStdout() }
func colorableStderr() io.Writer { return colorable.NewColorableStderr() }
