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

package runtimeconfig

import (
	"strings"

	jww "github.com/spf13/jwalterweatherman"

	"github.com/sabouaram/osrt/logger"
)

// jwwBridge forwards jwalterweatherman's line-buffered writes (Viper
// itself logs through jww) into this module's own component logger
// instead of jww's default stderr, mirroring the teacher's
// logger.SetSPF13Level bridge.
type jwwBridge struct {
	log logger.Logger
}

func (w jwwBridge) Write(p []byte) (int, error) {
	if s := strings.TrimRight(string(p), "\n"); s != "" {
		w.log.Debug(s)
	}
	return len(p), nil
}

// BridgeSPF13Logging points jwalterweatherman's (and so Viper's) log
// output at this module's component logger, tagged "runtimeconfig",
// instead of leaving it on jww's default of stderr.
func BridgeSPF13Logging() {
	w := jwwBridge{log: logger.Component("runtimeconfig")}
	jww.SetLogOutput(w)
	jww.SetLogThreshold(jww.LevelWarn)
	jww.SetStdoutOutput(w)
	jww.SetStdoutThreshold(jww.LevelWarn)
}
