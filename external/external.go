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

// Package external locates a bare-specifier package by walking node_modules
// upward from a start directory, falling back to the @types sidecar scope
// when no runtime package (or no matching entry point) is found.
package external

import (
	"path"
	"strings"

	"github.com/rnxkit/rntsc/entrypoint"
	"github.com/rnxkit/rntsc/extensions"
	"github.com/rnxkit/rntsc/finder"
	"github.com/rnxkit/rntsc/probe"
)

// Ref names the package to locate, mirroring moduleref.ModuleRef's Package
// case.
type Ref struct {
	Scope   string
	Name    string
	SubPath string
}

// Logger receives entrypoint's manifest-field trace banners.
type Logger interface {
	Logf(format string, args ...any)
}

// Resolve implements §4.H. It walks startDir's ancestors looking for
// node_modules/<scope>/<name> (or node_modules/<name>), resolves an entry
// point there, and on failure falls back to the mangled @types sidecar
// package restricted to .d.ts. A malformed manifest encountered along the
// way is fatal and propagates immediately rather than being treated as a
// miss that falls through to the next candidate.
func Resolve(
	prober *probe.Prober,
	logger Logger,
	ref Ref,
	startDir string,
	platformExts []string,
	allowedExts []extensions.Extension,
) (*finder.Result, bool, error) {
	if pkgDir, found := findPackageDir(prober, ref, startDir); found {
		result, ok, err := entrypoint.Resolve(prober, logger, pkgDir, ref.SubPath, platformExts, allowedExts)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return result, true, nil
		}
		if ref.SubPath != "" {
			// Retry with no sub-path restricted to .d.ts, to accommodate
			// type-only sidecar layouts (a package whose "types" entry
			// covers every sub-path via its own internal structure).
			result, ok, err := entrypoint.Resolve(prober, logger, pkgDir, "", platformExts, []extensions.Extension{extensions.DTs})
			if err != nil {
				return nil, false, err
			}
			if ok {
				return result, true, nil
			}
		}
	}

	typesRef := Ref{
		Scope:   "types",
		Name:    mangleTypesName(ref),
		SubPath: ref.SubPath,
	}
	if pkgDir, found := findPackageDir(prober, typesRef, startDir); found {
		return entrypoint.Resolve(prober, logger, pkgDir, typesRef.SubPath, platformExts, []extensions.Extension{extensions.DTs})
	}

	return nil, false, nil
}

// mangleTypesName builds the @types sidecar package name: "scope__name" for
// a scoped package, or the bare name otherwise.
func mangleTypesName(ref Ref) string {
	if ref.Scope == "" {
		return ref.Name
	}
	return ref.Scope + "__" + ref.Name
}

// findPackageDir walks upward from startDir, checking
// node_modules/<scope>/<name> (or node_modules/<name> when scope is empty)
// at each level, iteratively rather than recursively to avoid stack depth
// surprises on very deep trees.
func findPackageDir(prober *probe.Prober, ref Ref, startDir string) (string, bool) {
	rel := ref.Name
	if ref.Scope != "" {
		rel = "@" + ref.Scope + "/" + ref.Name
	}

	current := startDir
	for {
		candidate := path.Join(current, "node_modules", rel)
		if prober.IsDirectory(candidate) {
			return candidate, true
		}

		parent := path.Dir(current)
		if parent == current || isRoot(current) {
			return "", false
		}
		current = parent
	}
}

func isRoot(dir string) bool {
	return dir == "/" || dir == "." || strings.HasSuffix(dir, ":\\") || strings.HasSuffix(dir, ":/")
}
