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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sabouaram/osrt/iobuf"
	"github.com/sabouaram/osrt/vproc"
)

var execCmd = &cobra.Command{
	Use:   "exec -- <program> [args...]",
	Short: "run a program through vproc and print its stdout",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := vproc.Create(args[0]).CmdTypeSet(vproc.CmdProgram)
		defer p.Close()

		if st := p.OutSet(vproc.IOFullBlock); !st.IsOk() {
			return st.AsError()
		}

		if st := p.Exec(args[1:]...); !st.IsOk() {
			return st.AsError()
		}

		out, st := p.OutGet()
		if !st.IsOk() {
			return st.AsError()
		}
		vals, st := out.Read(iobuf.All())
		if !st.IsOk() {
			log.WithError(st.AsError()).Warn("reading child stdout")
		}
		for _, v := range vals {
			fmt.Fprint(os.Stdout, v.Str)
		}

		done, _, code, st := p.Wait(true)
		if !st.IsOk() {
			return st.AsError()
		}
		if done && code != 0 {
			os.Exit(code)
		}
		return nil
	},
}
