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

// Package finder implements the layered search that turns (search
// directory, logical module path, allowed extensions) into a resolved file:
// an explicit-extension fast path, a platform-extension × extension
// cross-product, and a directory-index fallback.
package finder

import (
	"path"

	"github.com/rnxkit/rntsc/extensions"
)

// Prober is the subset of probe.Prober the Finder needs.
type Prober interface {
	IsFile(absPath string) bool
	IsDirectory(absPath string) bool
}

// Result is a resolved module file.
type Result struct {
	AbsolutePath string
	Extension    extensions.Extension
}

// Find implements §4.F's ordered algorithm. platformExts is the full
// precedence list built by platform.ExtensionList, always ending with the
// empty-string sentinel. allowedExts is the ordered extension list for the
// current containing file (§4.B).
func Find(prober Prober, searchDir, modulePath string, platformExts []string, allowedExts []extensions.Extension) (*Result, bool) {
	// Step 1: explicit extension fast-path.
	if ext, trimmed, ok := extensions.MatchExplicit(modulePath, allowedExts); ok {
		candidate := path.Join(searchDir, modulePath)
		if prober.IsFile(candidate) {
			return &Result{AbsolutePath: candidate, Extension: ext}, true
		}
		if extensions.IsJSLike(ext) {
			// "./foo.js" retries against the trimmed path so it can resolve
			// to "./foo.ts".
			return findCrossProductThenIndex(prober, searchDir, trimmed, platformExts, allowedExts)
		}
		return nil, false
	}

	// A ".js"/".jsx" suffix that is not itself allowed (checkJs off) still
	// retries against the trimmed path, so "./foo.js" resolves to "./foo.ts".
	if _, trimmed, ok := extensions.MatchExplicit(modulePath, []extensions.Extension{extensions.Js, extensions.Jsx}); ok {
		return findCrossProductThenIndex(prober, searchDir, trimmed, platformExts, allowedExts)
	}

	return findCrossProductThenIndex(prober, searchDir, modulePath, platformExts, allowedExts)
}

func findCrossProductThenIndex(prober Prober, searchDir, modulePath string, platformExts []string, allowedExts []extensions.Extension) (*Result, bool) {
	if result, ok := crossProduct(prober, searchDir, modulePath, platformExts, allowedExts); ok {
		return result, true
	}

	dirCandidate := path.Join(searchDir, modulePath)
	if prober.IsDirectory(dirCandidate) {
		return Find(prober, dirCandidate, "index", platformExts, allowedExts)
	}

	return nil, false
}

// crossProduct iterates platform extension (outer) then allowed extension
// (inner, in the exact order given) and returns the first existing file.
// Platform suffix always wins over generic extension precedence within the
// same nesting level.
func crossProduct(prober Prober, searchDir, modulePath string, platformExts []string, allowedExts []extensions.Extension) (*Result, bool) {
	for _, pext := range platformExts {
		for _, ext := range allowedExts {
			candidate := path.Join(searchDir, modulePath+pext+string(ext))
			if prober.IsFile(candidate) {
				return &Result{AbsolutePath: candidate, Extension: ext}, true
			}
		}
	}
	return nil, false
}
