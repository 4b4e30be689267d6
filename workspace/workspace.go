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

// Package workspace enumerates the in-repo packages of a monorepo once at
// resolver construction and answers the two linear-scan queries the
// Resolver Engine needs: "is there a workspace named N?" and "does this
// absolute path belong to a workspace?"
package workspace

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rnxkit/rntsc/fs"
	"github.com/rnxkit/rntsc/moduleref"
	"github.com/rnxkit/rntsc/packagejson"
)

// Workspace is an in-repo package discovered by the monorepo enumerator.
type Workspace struct {
	Name     string
	RootPath string // absolute, normalized
	Manifest *packagejson.PackageJSON
}

// Index is the immutable, read-only-after-construction set of workspaces.
type Index struct {
	workspaces []Workspace
}

// New enumerates the monorepo rooted at rootDir and builds the Index. The
// root manifest's "workspaces" field supplies the glob patterns; each
// directory matching a pattern that also contains a package.json with a
// non-empty name becomes a Workspace. Discovery is injected via fsys rather than reading the current
// working directory, so it is testable with an in-memory tree.
func New(fsys fs.FileSystem, rootDir string) (*Index, error) {
	rootManifest, err := packagejson.ParseFile(fsys, path.Join(rootDir, "package.json"))
	if err != nil {
		// No root manifest, or a monorepo with no workspaces field: the
		// index is simply empty, not an error.
		return &Index{}, nil
	}

	patterns := rootManifest.WorkspacePatterns()
	if len(patterns) == 0 {
		return &Index{}, nil
	}

	dirs, err := matchingDirectories(fsys, rootDir, patterns)
	if err != nil {
		return nil, fmt.Errorf("discovering workspaces under %s: %w", rootDir, err)
	}

	var workspaces []Workspace
	for _, dir := range dirs {
		manifestPath := path.Join(dir, "package.json")
		if !fsys.Exists(manifestPath) {
			continue
		}
		manifest, err := packagejson.ParseFile(fsys, manifestPath)
		if err != nil {
			return nil, fmt.Errorf("malformed package manifest in %s: %w", dir, err)
		}
		if manifest.Name == "" {
			continue
		}
		workspaces = append(workspaces, Workspace{
			Name:     manifest.Name,
			RootPath: dir,
			Manifest: manifest,
		})
	}

	return &Index{workspaces: workspaces}, nil
}

// ByName linear-scans for the workspace whose manifest name matches exactly.
func (idx *Index) ByName(name string) (Workspace, bool) {
	for _, w := range idx.workspaces {
		if w.Name == name {
			return w, true
		}
	}
	return Workspace{}, false
}

// ContainingPath linear-scans for the workspace whose RootPath, with a
// trailing separator, is a prefix of absPath — avoiding "pkg"/"pkg-foo"
// false matches.
func (idx *Index) ContainingPath(absPath string) (Workspace, bool) {
	for _, w := range idx.workspaces {
		if strings.HasPrefix(absPath, w.RootPath+"/") {
			return w, true
		}
	}
	return Workspace{}, false
}

// ModuleRefResult is the outcome of QueryModuleRef: the workspace a
// specifier belongs to, plus the sub-path within it.
type ModuleRefResult struct {
	Workspace Workspace
	SubPath   string
}

// QueryModuleRef implements queryWorkspaceModuleRef (§4.C). For a Package
// specifier it matches by exact qualified name; for a File specifier it
// resolves against the containing file's directory and checks path
// containment.
func (idx *Index) QueryModuleRef(spec, containingFile string) (ModuleRefResult, bool) {
	ref := moduleref.Parse(spec)

	switch ref.Kind {
	case moduleref.Package:
		if w, ok := idx.ByName(ref.QualifiedName()); ok {
			return ModuleRefResult{Workspace: w, SubPath: ref.SubPath}, true
		}
		return ModuleRefResult{}, false

	case moduleref.File:
		absPath := path.Join(path.Dir(containingFile), ref.Path)
		if w, ok := idx.ContainingPath(absPath); ok {
			subPath := strings.TrimPrefix(absPath, w.RootPath+"/")
			return ModuleRefResult{Workspace: w, SubPath: subPath}, true
		}
		return ModuleRefResult{}, false
	}

	return ModuleRefResult{}, false
}

// matchingDirectories walks the tree under rootDir (skipping node_modules
// and dot-directories) and returns every directory whose path relative to
// rootDir matches at least one of patterns.
func matchingDirectories(fsys fs.FileSystem, rootDir string, patterns []string) ([]string, error) {
	var relDirs []string
	if err := walkDirs(fsys, rootDir, "", &relDirs); err != nil {
		return nil, err
	}

	var matched []string
	for _, rel := range relDirs {
		for _, pattern := range patterns {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				return nil, fmt.Errorf("invalid workspace pattern %q: %w", pattern, err)
			}
			if ok {
				matched = append(matched, path.Join(rootDir, rel))
				break
			}
		}
	}
	return matched, nil
}

func walkDirs(fsys fs.FileSystem, rootDir, relDir string, out *[]string) error {
	absDir := rootDir
	if relDir != "" {
		absDir = path.Join(rootDir, relDir)
	}

	entries, err := fsys.ReadDir(absDir)
	if err != nil {
		return nil //nolint:nilerr // a directory that disappears mid-walk is not fatal
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == "node_modules" || name == ".git" || strings.HasPrefix(name, ".") {
			continue
		}
		childRel := name
		if relDir != "" {
			childRel = relDir + "/" + name
		}
		*out = append(*out, childRel)
		if err := walkDirs(fsys, rootDir, childRel, out); err != nil {
			return err
		}
	}
	return nil
}

// FindMonorepoRoot walks upward from startDir looking for a node_modules
// directory, a package.json with a workspaces field, or a .git directory —
// in that order at each level — stopping at the filesystem root. Returns
// startDir itself if no such marker is found anywhere above it.
func FindMonorepoRoot(fsys fs.FileSystem, startDir string) string {
	current := startDir
	for {
		if fsys.Exists(path.Join(current, "node_modules")) {
			return current
		}
		if manifest, err := packagejson.ParseFile(fsys, path.Join(current, "package.json")); err == nil && manifest.HasWorkspaces() {
			return current
		}
		if fsys.Exists(path.Join(current, ".git")) {
			return current
		}

		parent := path.Dir(current)
		if parent == current {
			return startDir
		}
		current = parent
	}
}
