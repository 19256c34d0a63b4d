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
	libmap "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/sabouaram/osrt/errors"
	"github.com/sabouaram/osrt/permstring"
	"github.com/sabouaram/osrt/status"
)

// Load decodes v's current settings into a Config, starting from
// Default() so a file that only overrides a handful of keys still
// yields a fully populated Config. permstring.ViperDecoderHook lets
// default_file_perm be written in any of Parse's accepted notations
// ("0644", "rwxr-xr-x", ...).
func Load(v *viper.Viper) (Config, status.Status) {
	cfg := Default()

	opt := viper.DecoderConfigOption(func(c *libmap.DecoderConfig) {
		c.DecodeHook = libmap.ComposeDecodeHookFunc(
			libmap.StringToTimeDurationHookFunc(),
			permstring.ViperDecoderHook(),
		)
	})

	if err := v.Unmarshal(&cfg, opt); err != nil {
		wrapped := ErrConfigDecode.Error(err)
		return Default(), status.New(status.EINVAL, wrapped.Error())
	}

	return cfg, status.Ok()
}

// New builds a Viper instance named "osrt", searches dirs for a
// matching config file (any format Viper recognizes), and decodes it
// via Load. A missing config file is not an error: Default() tunables
// apply and New reports ok.
func New(dirs ...string) (Config, status.Status) {
	v := viper.New()
	v.SetConfigName("osrt")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			wrapped := ErrConfigRead.Error(err)
			return Default(), status.New(status.EINVAL, wrapped.Error())
		}
	}

	return Load(v)
}
