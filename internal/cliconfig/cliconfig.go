/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package cliconfig translates the root command's viper-bound persistent
// flags into a resolver.ResolverConfig, shared by every subcommand that
// constructs a Resolver.
package cliconfig

import (
	"github.com/spf13/viper"

	"github.com/rnxkit/rntsc/resolver"
	"github.com/rnxkit/rntsc/tracelog"
)

// FromViper builds a ResolverConfig from the current viper state.
// TraceMode is derived per §3: Always if --trace-resolution, else
// OnFailure if --trace-rn-resolution-errors, else Never.
func FromViper() resolver.ResolverConfig {
	mode := tracelog.Never
	switch {
	case viper.GetBool("trace-resolution"):
		mode = tracelog.Always
	case viper.GetBool("trace-rn-resolution-errors"):
		mode = tracelog.OnFailure
	}

	var sink tracelog.Sink
	if mode != tracelog.Never {
		if logPath := viper.GetString("trace-resolution-log"); logPath != "" {
			sink = tracelog.FileSink{Path: logPath}
		} else {
			sink = tracelog.StdoutSink{}
		}
	}

	return resolver.ResolverConfig{
		Platform:                     viper.GetString("platform"),
		ExtraPlatformExtensions:      viper.GetStringSlice("platform-extensions"),
		DisableRNPackageSubstitution: viper.GetBool("disable-rn-substitution"),
		CheckJS:                      viper.GetBool("check-js"),
		ResolveJSONModule:            viper.GetBool("resolve-json-module"),
		TraceMode:                    mode,
		TraceSink:                    sink,
	}
}
