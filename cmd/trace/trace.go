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

// Package trace provides the trace command for rntsc: it walks a source
// tree, extracts every import/re-export/dynamic-import specifier, resolves
// each one against the configured resolver, and flags bare-specifier
// imports that only work by accident of hoisting. Triple-slash
// type-reference directives are not resolved or reported.
package trace

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rnxkit/rntsc/fs"
	"github.com/rnxkit/rntsc/hygiene"
	"github.com/rnxkit/rntsc/internal/cliconfig"
	"github.com/rnxkit/rntsc/internal/clierror"
	"github.com/rnxkit/rntsc/internal/output"
	"github.com/rnxkit/rntsc/packagejson"
	"github.com/rnxkit/rntsc/resolver"
	"github.com/rnxkit/rntsc/sourcescan"
)

// Cmd is the trace cobra command.
var Cmd = &cobra.Command{
	Use:   "trace [dir]",
	Short: "Scan a source tree and report import resolution and hygiene issues",
	Long: `Trace walks the directory named by its argument (default: --package),
extracts every static import, re-export, and dynamic import from each
TypeScript source file, resolves each specifier against the configured
Resolver, and classifies bare-specifier imports that aren't declared in the
root manifest's own dependencies. Triple-slash type-reference directives
are not resolved or reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().Int("workers", runtime.NumCPU(), "number of concurrent file-scan workers")
}

type resolutionOutcome struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Specifier string `json:"specifier"`
	Resolved  bool   `json:"resolved"`
}

type parseFailure struct {
	File string `json:"file"`
	Err  string `json:"error"`
}

type traceResult struct {
	Resolved      []resolutionOutcome   `json:"resolved"`
	Unresolved    []resolutionOutcome   `json:"unresolved"`
	Issues        []hygiene.ImportIssue `json:"hygieneIssues"`
	ParseFailures []parseFailure        `json:"parseFailures,omitempty"`
}

func (r traceResult) String() string {
	out := fmt.Sprintf("%d imports resolved, %d unresolved, %d hygiene issue(s), %d parse failure(s)\n",
		len(r.Resolved), len(r.Unresolved), len(r.Issues), len(r.ParseFailures))
	for _, u := range r.Unresolved {
		out += fmt.Sprintf("  UNRESOLVED %s:%d  %q\n", u.File, u.Line, u.Specifier)
	}
	for _, issue := range r.Issues {
		out += fmt.Sprintf("  %s %s:%d  %q (package %q)\n", issue.Kind, issue.File, issue.Line, issue.Specifier, issue.PackageName)
	}
	for _, pf := range r.ParseFailures {
		out += fmt.Sprintf("  PARSE FAILED %s: %s\n", pf.File, pf.Err)
	}
	return out
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()

	rootDir, err := filepath.Abs(viper.GetString("package"))
	if err != nil {
		return fmt.Errorf("invalid package directory: %w", err)
	}

	scanDir := rootDir
	if len(args) == 1 {
		scanDir, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid scan directory: %w", err)
		}
	}

	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return err
	}

	r, err := resolver.New(osfs, rootDir, cliconfig.FromViper())
	if err != nil {
		return clierror.Wrap(fmt.Errorf("constructing resolver: %w", err))
	}

	pkg, err := packagejson.ParseFile(osfs, filepath.Join(rootDir, "package.json"))
	if err != nil {
		return clierror.Wrap(fmt.Errorf("reading root manifest: %w", err))
	}

	files, err := sourcescan.Scan(cmd.Context(), osfs, scanDir, sourcescan.Options{Workers: workers})
	if err != nil {
		if cmd.Context().Err() != nil {
			return cmd.Context().Err()
		}
		return clierror.Wrap(fmt.Errorf("scanning source tree: %w", err))
	}

	result := traceResult{}
	for _, file := range files {
		if file.Err != nil {
			result.ParseFailures = append(result.ParseFailures, parseFailure{File: file.Path, Err: file.Err.Error()})
			continue
		}
		for _, imp := range file.Imports {
			resolved, err := r.ResolveModuleNames([]string{imp.Specifier}, file.Path)
			if err != nil {
				return clierror.Wrap(err)
			}
			outcome := resolutionOutcome{File: file.Path, Line: imp.Line, Specifier: imp.Specifier}
			if resolved[0] != nil {
				outcome.Resolved = true
				result.Resolved = append(result.Resolved, outcome)
			} else {
				result.Unresolved = append(result.Unresolved, outcome)
			}
		}
	}

	result.Issues = hygiene.Check(osfs, rootDir, pkg.Name, pkg.Dependencies, pkg.DevDependencies, files)

	return output.Write(osfs, result, viper.GetString("format"))
}
