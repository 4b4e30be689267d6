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

// Command rntsc resolves React-Native-aware TypeScript module specifiers
// and traces a source tree's import graph against a package manifest.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rnxkit/rntsc/cmd/resolve"
	"github.com/rnxkit/rntsc/cmd/trace"
	"github.com/rnxkit/rntsc/cmd/version"
	"github.com/rnxkit/rntsc/internal/clierror"
)

var rootCmd = &cobra.Command{
	Use:   "rntsc",
	Short: "React-Native-aware TypeScript module resolver",
	Long: `rntsc resolves module specifiers the way a React-Native-aware
TypeScript compiler driver would: platform-extension precedence,
in-repo workspace shortcuts, and external-package typings-first lookup.`,
	PersistentPreRunE: enforcePlatformDependencyRule,
}

func init() {
	rootCmd.PersistentFlags().String("package", ".", "package/workspace root directory")
	rootCmd.PersistentFlags().String("platform", "", "target platform (ios, android, windows, macos, win32, or custom)")
	rootCmd.PersistentFlags().StringSlice("platform-extensions", nil, "extra platform extension tokens tried after --platform, before the bare extension")
	rootCmd.PersistentFlags().Bool("disable-rn-substitution", false, "disable react-native -> platform-package substitution")
	rootCmd.PersistentFlags().Bool("check-js", false, "allow .js/.jsx as resolvable extensions")
	rootCmd.PersistentFlags().Bool("resolve-json-module", false, "allow .json as a resolvable extension")
	rootCmd.PersistentFlags().Bool("trace-resolution", false, "trace every resolution attempt, success or failure")
	rootCmd.PersistentFlags().Bool("trace-rn-resolution-errors", false, "trace only failed resolution attempts")
	rootCmd.PersistentFlags().String("trace-resolution-log", "", "file to append trace records to (default: stdout)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output file (default: stdout)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text, json)")

	for _, name := range []string{
		"package", "platform", "platform-extensions", "disable-rn-substitution",
		"check-js", "resolve-json-module", "trace-resolution",
		"trace-rn-resolution-errors", "trace-resolution-log", "output", "format",
	} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(trace.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

// enforcePlatformDependencyRule implements §6's usage-error dependency
// rule: --platform-extensions, --disable-rn-substitution,
// --trace-rn-resolution-errors, and --trace-resolution-log all require
// --platform to be set.
func enforcePlatformDependencyRule(cmd *cobra.Command, args []string) error {
	if viper.GetString("platform") != "" {
		return nil
	}

	dependents := map[string]bool{
		"platform-extensions":        len(viper.GetStringSlice("platform-extensions")) > 0,
		"disable-rn-substitution":    viper.GetBool("disable-rn-substitution"),
		"trace-rn-resolution-errors": viper.GetBool("trace-rn-resolution-errors"),
		"trace-resolution-log":       viper.GetString("trace-resolution-log") != "",
	}

	for flag, set := range dependents {
		if set {
			return fmt.Errorf("--%s requires --platform", flag)
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}

	var internalErr *clierror.Internal
	if errors.As(err, &internalErr) {
		os.Exit(clierror.ExitCode)
	}
	os.Exit(1)
}
