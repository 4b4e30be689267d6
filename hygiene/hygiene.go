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

// Package hygiene classifies bare-specifier imports discovered by the
// source scanner against the root manifest's dependency lists, flagging
// imports that only work by accident of hoisting or devDependency bleed.
package hygiene

import (
	"path"
	"strings"

	"github.com/rnxkit/rntsc/fs"
	"github.com/rnxkit/rntsc/moduleref"
	"github.com/rnxkit/rntsc/sourcescan"
)

// Kind classifies why a bare specifier's package relationship is flagged.
type Kind int

const (
	TransitiveDependency Kind = iota
	DevDependency
	NotInstalled
)

func (k Kind) String() string {
	switch k {
	case TransitiveDependency:
		return "transitive dependency"
	case DevDependency:
		return "devDependency"
	case NotInstalled:
		return "not installed"
	default:
		return "unknown"
	}
}

// ImportIssue is one flagged bare-specifier import.
type ImportIssue struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Specifier   string `json:"specifier"`
	PackageName string `json:"packageName"`
	Kind        Kind   `json:"kind"`
}

// Check classifies every bare-specifier import across files (as produced by
// sourcescan.Scan) against deps/devDeps, skipping files under node_modules
// and specifiers that name the scanned project's own package.
func Check(
	fsys fs.FileSystem,
	rootDir string,
	rootPkgName string,
	deps, devDeps map[string]string,
	files []sourcescan.FileImports,
) []ImportIssue {
	var issues []ImportIssue

	for _, file := range files {
		if strings.Contains(file.Path, "/node_modules/") {
			continue
		}

		for _, imp := range file.Imports {
			ref := moduleref.Parse(imp.Specifier)
			if ref.Kind != moduleref.Package {
				continue
			}

			pkgName := ref.QualifiedName()
			if pkgName == rootPkgName {
				continue
			}
			if _, ok := deps[pkgName]; ok {
				continue
			}

			issue := ImportIssue{
				File:        file.Path,
				Line:        imp.Line,
				Specifier:   imp.Specifier,
				PackageName: pkgName,
			}

			if _, ok := devDeps[pkgName]; ok {
				issue.Kind = DevDependency
				issues = append(issues, issue)
				continue
			}

			if fsys.Exists(path.Join(rootDir, "node_modules", pkgName)) {
				issue.Kind = TransitiveDependency
				issues = append(issues, issue)
				continue
			}

			issue.Kind = NotInstalled
			issues = append(issues, issue)
		}
	}

	return issues
}
