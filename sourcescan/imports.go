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
package sourcescan

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Kind tags which syntactic form produced an ImportSpecifier.
type Kind int

const (
	Import Kind = iota
	DynamicImport
	ReExport
)

func (k Kind) String() string {
	switch k {
	case Import:
		return "Import"
	case DynamicImport:
		return "DynamicImport"
	case ReExport:
		return "ReExport"
	default:
		return "Unknown"
	}
}

// ImportSpecifier is one specifier extracted from a source file, with the
// 1-indexed line it appeared on.
type ImportSpecifier struct {
	Specifier string
	Line      int
	Kind      Kind
}

// TypeReference is one `/// <reference types="..." />` directive.
type TypeReference struct {
	Name string
	Line int
}

// tripleSlashReference matches a triple-slash types reference directive.
// The TypeScript grammar models these as comment trivia rather than a
// semantic node, so a line-oriented textual scan is the appropriate tool
// for this one sub-case; the rest of extraction goes through tree-sitter.
var tripleSlashReference = regexp.MustCompile(`^///\s*<reference\s+types\s*=\s*"([^"]+)"\s*/>`)

// ExtractImports parses content as TypeScript/TSX and returns every static
// import, re-export, and dynamic-import specifier it contains.
func ExtractImports(content []byte) ([]ImportSpecifier, error) {
	query, err := getImportsQuery()
	if err != nil {
		return nil, err
	}

	parser := getParser()
	defer putParser(parser)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse source content")
	}
	defer tree.Close()

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	captureNames := query.CaptureNames()
	var specifiers []ImportSpecifier

	matches := cursor.Matches(query, tree.RootNode(), content)
	for {
		match := matches.Next()
		if match == nil {
			break
		}

		for _, capture := range match.Captures {
			name := captureNames[capture.Index]
			text := capture.Node.Utf8Text(content)
			line := int(capture.Node.StartPosition().Row) + 1

			var kind Kind
			switch name {
			case "import.spec":
				kind = Import
			case "dynamicImport.spec":
				kind = DynamicImport
			case "reexport.spec":
				kind = ReExport
			default:
				continue
			}

			specifiers = append(specifiers, ImportSpecifier{
				Specifier: text,
				Line:      line,
				Kind:      kind,
			})
		}
	}

	return specifiers, nil
}

// ExtractTypeReferences scans content line by line for triple-slash types
// reference directives, which must appear before any other token on the
// line to be meaningful to the compiler.
func ExtractTypeReferences(content []byte) []TypeReference {
	var refs []TypeReference

	scanner := bufio.NewScanner(bytes.NewReader(content))
	line := 0
	for scanner.Scan() {
		line++
		trimmed := bytes.TrimSpace(scanner.Bytes())
		if m := tripleSlashReference.FindSubmatch(trimmed); m != nil {
			refs = append(refs, TypeReference{Name: string(m[1]), Line: line})
		}
	}

	return refs
}
