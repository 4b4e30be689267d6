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
package moduleref_test

import (
	"testing"

	"github.com/rnxkit/rntsc/moduleref"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		spec        string
		wantKind    moduleref.Kind
		wantScope   string
		wantPkgName string
		wantSubPath string
		wantPath    string
	}{
		{"relative dot", "./App", moduleref.File, "", "", "", "./App"},
		{"relative dotdot", "../shared/util", moduleref.File, "", "", "", "../shared/util"},
		{"absolute unix", "/repo/src/App", moduleref.File, "", "", "", "/repo/src/App"},
		{"absolute windows drive", `C:\repo\src\App`, moduleref.File, "", "", "", `C:\repo\src\App`},
		{"bare package", "lodash", moduleref.Package, "", "lodash", "", ""},
		{"bare package with subpath", "lodash/isString", moduleref.Package, "", "lodash", "isString", ""},
		{"scoped package", "@acme/ui", moduleref.Package, "acme", "ui", "", ""},
		{"scoped package with subpath", "@acme/ui/Button", moduleref.Package, "acme", "ui", "Button", ""},
		{"react-native bare", "react-native", moduleref.Package, "", "react-native", "", ""},
		{"react-native subpath", "react-native/Libraries/Foo", moduleref.Package, "", "react-native", "Libraries/Foo", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := moduleref.Parse(tt.spec)
			if ref.Kind != tt.wantKind {
				t.Fatalf("Parse(%q).Kind = %v, want %v", tt.spec, ref.Kind, tt.wantKind)
			}
			switch tt.wantKind {
			case moduleref.File:
				if ref.Path != tt.wantPath {
					t.Errorf("Parse(%q).Path = %q, want %q", tt.spec, ref.Path, tt.wantPath)
				}
			case moduleref.Package:
				if ref.Scope != tt.wantScope || ref.Name != tt.wantPkgName || ref.SubPath != tt.wantSubPath {
					t.Errorf("Parse(%q) = {Scope:%q Name:%q SubPath:%q}, want {Scope:%q Name:%q SubPath:%q}",
						tt.spec, ref.Scope, ref.Name, ref.SubPath, tt.wantScope, tt.wantPkgName, tt.wantSubPath)
				}
			}
		})
	}
}

func TestQualifiedName(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"lodash", "lodash"},
		{"lodash/isString", "lodash"},
		{"@acme/ui", "@acme/ui"},
		{"@acme/ui/Button", "@acme/ui"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got := moduleref.Parse(tt.spec).QualifiedName()
			if got != tt.want {
				t.Errorf("Parse(%q).QualifiedName() = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestIsBuiltin(t *testing.T) {
	tests := []struct {
		spec string
		want bool
	}{
		{"fs", true},
		{"fs/promises", true},
		{"path", true},
		{"node:fs", true},
		{"NODE:FS", true},
		{"lodash", false},
		{"react-native", false},
		{"./fs", false},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if got := moduleref.IsBuiltin(tt.spec); got != tt.want {
				t.Errorf("IsBuiltin(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}
