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

import "github.com/sabouaram/osrt/errors"

// Package-scoped error codes, registered at errors.MinAvailable. These
// back the internal, non-script-visible error wrapping Load/New do
// around viper/mapstructure failures; status.Status remains the only
// error shape a script ever observes.
const (
	ErrConfigRead errors.CodeError = iota + errors.MinAvailable
	ErrConfigDecode
)

func init() {
	errors.RegisterIdFctMessage(ErrConfigRead, configErrorMessage)
	errors.RegisterIdFctMessage(ErrConfigDecode, configErrorMessage)
}

func configErrorMessage(code errors.CodeError) string {
	switch code {
	case ErrConfigRead:
		return "reading the runtime configuration file failed"
	case ErrConfigDecode:
		return "decoding the runtime configuration into Config failed"
	}
	return ""
}
