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
	"github.com/spf13/cobra"

	"github.com/sabouaram/osrt/logger"
	"github.com/sabouaram/osrt/runtimeconfig"
)

var log = logger.Component("osrtcli")

var cfgPath string
var cfg runtimeconfig.Config

var rootCmd = &cobra.Command{
	Use:   "osrtcli",
	Short: "example CLI host for the osrt scripting runtime",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		runtimeconfig.BridgeSPF13Logging()

		var dirs []string
		if cfgPath != "" {
			dirs = []string{cfgPath}
		}

		loaded, st := runtimeconfig.New(dirs...)
		if !st.IsOk() {
			return st.AsError()
		}
		cfg = loaded
		log.WithField("queue_capacity", cfg.QueueCapacity).Debug("runtime configuration loaded")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config-dir", "", "directory to search for an osrt.yaml config file")
	rootCmd.AddCommand(execCmd, optsCmd)
}
