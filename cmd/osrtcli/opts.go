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

	"github.com/sabouaram/osrt/cliopt"
)

// optsCmd demonstrates the §6 CLI surface a hosted script would call
// into: a usage-message file doubles as both the help text shown to a
// user and the option grammar cliopt parses the remaining args
// against.
var optsCmd = &cobra.Command{
	Use:   "opts <usage-file> -- [args...]",
	Short: "parse args against a usage-message file via cliopt",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		usage, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		res, st := cliopt.Parse(string(usage), args[1:], true)
		if !st.IsOk() {
			return st.AsError()
		}
		if res.HelpShown {
			return nil
		}

		for k, v := range res.Options {
			fmt.Printf("option %s=%s\n", k, v)
		}
		for _, a := range res.Args {
			fmt.Printf("arg %s\n", a)
		}
		return nil
	},
}
