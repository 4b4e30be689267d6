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
	"context"
	"path"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/rnxkit/rntsc/fs"
)

// skippedDirs are never descended into during a Scan.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"out":          true,
}

// FileImports is one scanned file's extraction result.
type FileImports struct {
	Path           string
	Imports        []ImportSpecifier
	TypeReferences []TypeReference
	Err            error
}

// Options configures a Scan invocation.
type Options struct {
	// Workers bounds concurrent file parses. Zero means runtime.NumCPU().
	Workers int
}

// Scan walks rootDir for recognized TypeScript source files, parsing each
// with a bounded worker pool, and returns results sorted by path so the
// Resolver Engine sees a deterministic order regardless of goroutine
// completion order.
func Scan(ctx context.Context, fsys fs.FileSystem, rootDir string, opts Options) ([]FileImports, error) {
	files, err := collectSourceFiles(fsys, rootDir)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan string, len(files))
	resultsMu := sync.Mutex{}
	results := make([]FileImports, 0, len(files))

	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for filePath := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				result := scanFile(fsys, filePath)
				resultsMu.Lock()
				results = append(results, result)
				resultsMu.Unlock()
			}
		})
	}

	for _, f := range files {
		jobs <- f
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

func scanFile(fsys fs.FileSystem, filePath string) FileImports {
	content, err := fsys.ReadFile(filePath)
	if err != nil {
		return FileImports{Path: filePath, Err: err}
	}

	imports, err := ExtractImports(content)
	if err != nil {
		return FileImports{Path: filePath, Err: err}
	}

	return FileImports{
		Path:           filePath,
		Imports:        imports,
		TypeReferences: ExtractTypeReferences(content),
	}
}

func collectSourceFiles(fsys fs.FileSystem, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		full := path.Join(dir, name)

		if entry.IsDir() {
			if skippedDirs[name] || strings.HasPrefix(name, ".") {
				continue
			}
			children, err := collectSourceFiles(fsys, full)
			if err != nil {
				return nil, err
			}
			files = append(files, children...)
			continue
		}

		if isRecognizedSourceFile(name) {
			files = append(files, full)
		}
	}

	return files, nil
}

func isRecognizedSourceFile(name string) bool {
	return strings.HasSuffix(name, ".ts") || strings.HasSuffix(name, ".tsx")
}
