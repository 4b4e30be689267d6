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

// Package resolve provides the resolve command for rntsc.
package resolve

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rnxkit/rntsc/fs"
	"github.com/rnxkit/rntsc/internal/cliconfig"
	"github.com/rnxkit/rntsc/internal/clierror"
	"github.com/rnxkit/rntsc/internal/output"
	"github.com/rnxkit/rntsc/resolver"
)

// Cmd is the resolve cobra command: it constructs a Resolver over the
// package root and prints one resolved module (or failure) per specifier.
var Cmd = &cobra.Command{
	Use:   "resolve [specifiers...]",
	Short: "Resolve one or more module specifiers against a containing file",
	Long: `Resolve constructs a Resolver over the package root (--package, default
the current directory) and resolves each specifier argument as if it
appeared in the file named by --containing.`,
	Example: `  rntsc resolve ./App --containing src/index.ios.ts --platform ios
  rntsc resolve react-native/Libraries/Foo --containing app/index.windows.ts --platform windows`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("containing", "", "the containing file each specifier is resolved relative to")
	_ = Cmd.MarkFlagRequired("containing")
}

type resolvedEntry struct {
	Specifier    string `json:"specifier"`
	AbsolutePath string `json:"absolutePath,omitempty"`
	Extension    string `json:"extension,omitempty"`
	Resolved     bool   `json:"resolved"`
}

type resolveResult struct {
	Results []resolvedEntry `json:"results"`
}

func (r resolveResult) String() string {
	var out string
	for _, e := range r.Results {
		if e.Resolved {
			out += fmt.Sprintf("%s -> %s\n", e.Specifier, e.AbsolutePath)
		} else {
			out += fmt.Sprintf("%s -> (unresolved)\n", e.Specifier)
		}
	}
	return out
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()

	rootDir, err := filepath.Abs(viper.GetString("package"))
	if err != nil {
		return fmt.Errorf("invalid package directory: %w", err)
	}

	containing, err := cmd.Flags().GetString("containing")
	if err != nil {
		return err
	}
	if !filepath.IsAbs(containing) {
		containing = filepath.Join(rootDir, containing)
	}

	r, err := resolver.New(osfs, rootDir, cliconfig.FromViper())
	if err != nil {
		return clierror.Wrap(fmt.Errorf("constructing resolver: %w", err))
	}

	resolved, err := r.ResolveModuleNames(args, containing)
	if err != nil {
		return clierror.Wrap(err)
	}

	result := resolveResult{Results: make([]resolvedEntry, len(args))}
	for i, spec := range args {
		entry := resolvedEntry{Specifier: spec}
		if resolved[i] != nil {
			entry.Resolved = true
			entry.AbsolutePath = resolved[i].AbsolutePath
			entry.Extension = string(resolved[i].Extension)
		}
		result.Results[i] = entry
	}

	return output.Write(osfs, result, viper.GetString("format"))
}
