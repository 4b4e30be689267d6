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

// Package platform rewrites a leading "react-native" specifier to its
// out-of-tree platform package, and builds the ordered platform-extension
// list probed by the File Finder.
package platform

import "strings"

// packageSubstitutions is the closed set of out-of-tree platform packages.
// A platform absent from this map has no substitution — per a prior
// revision's ambiguity, this implementation silently opts out rather than
// raising an error for unmapped platforms.
var packageSubstitutions = map[string]string{
	"windows": "react-native-windows",
	"macos":   "react-native-macos",
	"win32":   "@office-iss/react-native-win32",
}

const reactNativeToken = "react-native"

// Substitute rewrites spec's leading "react-native" to the platform package
// for platform, unless substitution is disabled, the platform has no
// mapping, or spec does not start with the exact token "react-native". When
// a substitution happens, onSubstitute (if non-nil) is invoked with the
// trace message to emit.
func Substitute(spec, platform string, disabled bool, onSubstitute func(message string)) string {
	if disabled {
		return spec
	}

	mapped, hasMapping := packageSubstitutions[platform]
	if !hasMapping {
		return spec
	}

	if !hasReactNativePrefix(spec) {
		return spec
	}

	newSpec := mapped + spec[len(reactNativeToken):]
	if onSubstitute != nil {
		onSubstitute("Substituting module '" + spec + "' with '" + newSpec + "'.")
	}
	return newSpec
}

// hasReactNativePrefix reports whether spec starts with the exact token
// "react-native" followed by "/", "?", or end of string — so
// "react-native-community" is never substituted.
func hasReactNativePrefix(spec string) bool {
	if !strings.HasPrefix(spec, reactNativeToken) {
		return false
	}
	rest := spec[len(reactNativeToken):]
	return rest == "" || rest[0] == '/' || rest[0] == '?'
}

// ExtensionList builds the ordered platform-extension list probed by the
// File Finder: ["." + platform, "." + extra₁, …, "." + extraₙ, ""]. The
// leading "." is prepended once here; downstream code never special-cases
// the trailing empty sentinel, it just probes it like any other entry.
func ExtensionList(platform string, extra []string) []string {
	list := make([]string, 0, len(extra)+2)
	if platform != "" {
		list = append(list, "."+platform)
	}
	for _, e := range extra {
		list = append(list, "."+e)
	}
	list = append(list, "")
	return list
}
