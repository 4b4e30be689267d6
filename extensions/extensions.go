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

// Package extensions owns the closed, ordered set of extensions the
// resolver is allowed to match, and the per-containing-file rule for
// deriving the allowed subset.
//
// Extension precedence is always an ordered sequence, never a set: callers
// iterate it in order and take the first match.
package extensions

import "strings"

// Extension is one of the closed set of recognized source/declaration/data
// extensions, always including the leading dot.
type Extension string

const (
	DTs  Extension = ".d.ts"
	Ts   Extension = ".ts"
	Tsx  Extension = ".tsx"
	Js   Extension = ".js"
	Jsx  Extension = ".jsx"
	Json Extension = ".json"
)

// Allowed returns the ordered extension list a containing file may resolve
// against.
//
//   - If containingFile ends in .d.ts, the list is [.d.ts, .ts] — the .ts
//     entry lets a specifier written as "./foo.d" resolve to "./foo.d.ts".
//   - Otherwise the base list is [.ts, .tsx, .d.ts], with [.js, .jsx]
//     appended when checkJs is set, and [.json] appended when
//     resolveJsonModule is set.
func Allowed(containingFile string, checkJs, resolveJsonModule bool) []Extension {
	if strings.HasSuffix(containingFile, string(DTs)) {
		return []Extension{DTs, Ts}
	}

	exts := []Extension{Ts, Tsx, DTs}
	if checkJs {
		exts = append(exts, Js, Jsx)
	}
	if resolveJsonModule {
		exts = append(exts, Json)
	}
	return exts
}

// MatchExplicit returns the longest extension in allowed that spec ends
// with, and the spec with that suffix trimmed. ok is false if no allowed
// extension matches.
func MatchExplicit(spec string, allowed []Extension) (ext Extension, trimmed string, ok bool) {
	var best Extension
	bestLen := -1
	for _, e := range allowed {
		if strings.HasSuffix(spec, string(e)) && len(e) > bestLen {
			best = e
			bestLen = len(e)
		}
	}
	if bestLen < 0 {
		return "", "", false
	}
	return best, spec[:len(spec)-bestLen], true
}

// IsJSLike reports whether ext is .js or .jsx — the two extensions whose
// explicit-extension match triggers the File Finder's TypeScript retry.
func IsJSLike(ext Extension) bool {
	return ext == Js || ext == Jsx
}
