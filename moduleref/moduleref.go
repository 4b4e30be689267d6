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

// Package moduleref classifies a raw import specifier into a package, file,
// or builtin reference — the first step of every module resolution attempt.
package moduleref

import "strings"

// Kind tags which case of ModuleRef is populated.
type Kind int

const (
	// File is a relative ("./x", "../x") or absolute ("/x", "C:\x") specifier.
	File Kind = iota
	// Package is a bare specifier naming an installed or workspace package,
	// optionally with a scope and a sub-path.
	Package
)

// ModuleRef is the parsed form of a raw specifier. Builtin is not a Kind of
// its own: callers consult IsBuiltin separately (§4.I's failure-suppression
// predicate is the only place that classification matters).
type ModuleRef struct {
	Kind Kind

	// Populated when Kind == File.
	Path string

	// Populated when Kind == Package.
	Scope   string // without leading "@"; empty if unscoped
	Name    string
	SubPath string // without leading "/"; empty if the specifier names just the package
}

// Parse classifies spec per the three-rule precedence: relative/absolute
// paths are File; `@scope/name(/rest)?` or `name(/rest)?` is Package;
// anything else falls back to File with the raw string, which callers treat
// as defensively unresolvable.
func Parse(spec string) ModuleRef {
	if isRelativeOrAbsolute(spec) {
		return ModuleRef{Kind: File, Path: spec}
	}

	scope, name, subPath, ok := splitPackageSpecifier(spec)
	if !ok {
		return ModuleRef{Kind: File, Path: spec}
	}

	return ModuleRef{Kind: Package, Scope: scope, Name: name, SubPath: subPath}
}

func isRelativeOrAbsolute(spec string) bool {
	if strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") {
		return true
	}
	if strings.HasPrefix(spec, "/") {
		return true
	}
	if isDriveLetterPath(spec) {
		return true
	}
	return false
}

// isDriveLetterPath reports whether spec begins with a Windows drive letter
// such as "C:" or "C:\".
func isDriveLetterPath(spec string) bool {
	if len(spec) < 2 {
		return false
	}
	c := spec[0]
	isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	return isLetter && spec[1] == ':'
}

// splitPackageSpecifier splits a bare specifier into scope (without "@"),
// name, and sub-path (without leading "/"). Returns ok=false for an empty
// spec, or for a scoped spec whose scope or name is missing ("@", "@scope",
// "@scope/").
func splitPackageSpecifier(spec string) (scope, name, subPath string, ok bool) {
	if spec == "" {
		return "", "", "", false
	}

	if strings.HasPrefix(spec, "@") {
		rest := spec[1:]
		scopeEnd := strings.IndexByte(rest, '/')
		if scopeEnd <= 0 {
			return "", "", "", false
		}
		scope = rest[:scopeEnd]
		rest = rest[scopeEnd+1:]
		if rest == "" {
			return "", "", "", false
		}
		nameEnd := strings.IndexByte(rest, '/')
		if nameEnd == -1 {
			return scope, rest, "", true
		}
		return scope, rest[:nameEnd], rest[nameEnd+1:], true
	}

	nameEnd := strings.IndexByte(spec, '/')
	if nameEnd == -1 {
		return "", spec, "", true
	}
	return "", spec[:nameEnd], spec[nameEnd+1:], true
}

// QualifiedName returns the package's full name including scope, e.g.
// "@acme/ui" or "lodash" — the form matched against a Workspace's or
// PackageManifest's name field.
func (r ModuleRef) QualifiedName() string {
	if r.Kind != Package {
		return ""
	}
	if r.Scope == "" {
		return r.Name
	}
	return "@" + r.Scope + "/" + r.Name
}

// builtins is the closed set of reserved specifiers consulted only by the
// resolver's failure-suppression predicate, never by Parse itself.
var builtins = map[string]bool{
	"assert": true, "buffer": true, "child_process": true, "cluster": true,
	"crypto": true, "dgram": true, "dns": true, "events": true, "fs": true,
	"fs/promises": true, "http": true, "https": true, "net": true, "os": true,
	"path": true, "perf_hooks": true, "process": true, "punycode": true,
	"querystring": true, "readline": true, "stream": true, "string_decoder": true,
	"timers": true, "tls": true, "tty": true, "url": true, "util": true,
	"v8": true, "vm": true, "worker_threads": true, "zlib": true,
}

// IsBuiltin reports whether spec names a platform built-in module: one of
// the reserved names, "fs/promises", or anything prefixed "node:"
// case-insensitively.
func IsBuiltin(spec string) bool {
	if len(spec) >= 5 && strings.EqualFold(spec[:5], "node:") {
		return true
	}
	return builtins[spec]
}
