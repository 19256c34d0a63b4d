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

// Package runtimeconfig holds the module-level tunables every package in
// this runtime reads at startup: scratch-pool clear policy, default
// Queue capacity, socket buffer sizes, shared-memory slack, and the
// default file permission new vfile.Files are created with. It is
// decoded from YAML/TOML/JSON/env via github.com/spf13/viper, following
// the same mapstructure.DecodeHookFuncType composition the teacher's
// file/perm.ViperDecoderHook is documented to plug into.
package runtimeconfig

import "github.com/sabouaram/osrt/permstring"

// Config is the decoded shape of a runtime configuration file.
type Config struct {
	ScratchClearOnJoin bool            `mapstructure:"scratch_clear_on_join"`
	QueueCapacity      int             `mapstructure:"queue_capacity"`
	SocketBufferSize   int             `mapstructure:"socket_buffer_size"`
	SharedMemSlack     int64           `mapstructure:"shared_mem_slack"`
	DefaultFilePerm    permstring.Perm `mapstructure:"default_file_perm"`
}

// Default returns the tunables every package is built against when no
// configuration file is supplied.
func Default() Config {
	return Config{
		ScratchClearOnJoin: true,
		QueueCapacity:      64,
		SocketBufferSize:   64 * 1024,
		SharedMemSlack:     4096,
		DefaultFilePerm:    permstring.Perm(0o644),
	}
}
