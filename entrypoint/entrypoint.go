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

// Package entrypoint resolves a package directory (plus optional sub-path)
// to the file the compiler should consume, consulting the manifest's
// types/typings/main fields before falling back to "index".
package entrypoint

import (
	"github.com/rnxkit/rntsc/extensions"
	"github.com/rnxkit/rntsc/finder"
	"github.com/rnxkit/rntsc/probe"
)

// Logger receives the "Package has '<field>' field '<value>'." trace banner
// emitted before each manifest-field probe.
type Logger interface {
	Logf(format string, args ...any)
}

// Resolve implements §4.G. If subPath is non-empty, it is resolved directly
// against pkgDir via the File Finder. Otherwise the package manifest is
// read and its types/typings/main fields are tried in order, each preceded
// by a trace banner, before falling back to "index". A malformed manifest
// is fatal: it is returned as an error naming pkgDir rather than treated as
// a lookup miss.
func Resolve(
	prober *probe.Prober,
	logger Logger,
	pkgDir, subPath string,
	platformExts []string,
	allowedExts []extensions.Extension,
) (*finder.Result, bool, error) {
	if subPath != "" {
		result, ok := finder.Find(prober, pkgDir, subPath, platformExts, allowedExts)
		return result, ok, nil
	}

	manifest, err := prober.ReadManifest(pkgDir)
	if err != nil {
		return nil, false, err
	}

	allowsDTs := false
	for _, e := range allowedExts {
		if e == extensions.DTs {
			allowsDTs = true
			break
		}
	}

	if allowsDTs {
		if manifest.Types != "" {
			logger.Logf("Package has 'types' field '%s'.", manifest.Types)
			if result, ok := finder.Find(prober, pkgDir, manifest.Types, platformExts, allowedExts); ok {
				return result, true, nil
			}
		} else if manifest.Typings != "" {
			logger.Logf("Package has 'typings' field '%s'.", manifest.Typings)
			if result, ok := finder.Find(prober, pkgDir, manifest.Typings, platformExts, allowedExts); ok {
				return result, true, nil
			}
		}
	}

	if manifest.Main != "" {
		logger.Logf("Package has 'main' field '%s'.", manifest.Main)
		if result, ok := finder.Find(prober, pkgDir, manifest.Main, platformExts, allowedExts); ok {
			return result, true, nil
		}
	}

	result, ok := finder.Find(prober, pkgDir, "index", platformExts, allowedExts)
	return result, ok, nil
}
