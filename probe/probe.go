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

// Package probe wraps the filesystem abstraction with the exact trace
// phrasing the resolver's callers expect on a miss, and routes manifest
// reads through a shared cache.
package probe

import (
	"fmt"
	"path"

	"github.com/rnxkit/rntsc/fs"
	"github.com/rnxkit/rntsc/packagejson"
)

// Logger receives standalone or in-transaction trace records. tracelog.Log
// satisfies this interface; probe depends only on this narrow shape so it
// never imports tracelog directly.
type Logger interface {
	Logf(format string, args ...any)
}

// Prober answers isFile/isDirectory/readPackageManifest, emitting a trace
// record on every miss.
type Prober struct {
	fsys   fs.FileSystem
	cache  packagejson.Cache
	logger Logger
}

// New creates a Prober. cache may be nil, in which case manifests are
// re-parsed on every call.
func New(fsys fs.FileSystem, cache packagejson.Cache, logger Logger) *Prober {
	return &Prober{fsys: fsys, cache: cache, logger: logger}
}

// IsFile reports whether p names a regular file, logging "File <p> does not
// exist." on a miss.
func (p *Prober) IsFile(absPath string) bool {
	info, err := p.fsys.Stat(absPath)
	if err != nil || info.IsDir() {
		p.logger.Logf("File %s does not exist.", absPath)
		return false
	}
	return true
}

// IsDirectory reports whether absPath names a directory, logging
// "Directory <p> does not exist." on a miss.
func (p *Prober) IsDirectory(absPath string) bool {
	info, err := p.fsys.Stat(absPath)
	if err != nil || !info.IsDir() {
		p.logger.Logf("Directory %s does not exist.", absPath)
		return false
	}
	return true
}

// ReadManifest reads and parses dir's package.json. A malformed manifest is
// a fatal error, propagated with the offending directory named.
func (p *Prober) ReadManifest(dir string) (*packagejson.PackageJSON, error) {
	manifestPath := path.Join(dir, "package.json")

	load := func() (*packagejson.PackageJSON, error) {
		if !p.fsys.Exists(manifestPath) {
			// No manifest at all is not malformed: callers fall through to
			// the "index" entry-point search.
			return &packagejson.PackageJSON{}, nil
		}
		pkg, err := packagejson.ParseFile(p.fsys, manifestPath)
		if err != nil {
			return nil, fmt.Errorf("malformed package manifest in %s: %w", dir, err)
		}
		return pkg, nil
	}

	if p.cache == nil {
		return load()
	}
	return p.cache.GetOrLoad(manifestPath, load)
}
