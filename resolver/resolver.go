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

// Package resolver orchestrates the module-ref parser, extension table,
// workspace index, platform substitution, file finder, and package
// resolvers into the single entry point a compiler driver calls per batch
// of specifiers.
package resolver

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/rnxkit/rntsc/entrypoint"
	"github.com/rnxkit/rntsc/extensions"
	"github.com/rnxkit/rntsc/external"
	"github.com/rnxkit/rntsc/finder"
	"github.com/rnxkit/rntsc/fs"
	"github.com/rnxkit/rntsc/moduleref"
	"github.com/rnxkit/rntsc/packagejson"
	"github.com/rnxkit/rntsc/platform"
	"github.com/rnxkit/rntsc/probe"
	"github.com/rnxkit/rntsc/tracelog"
	"github.com/rnxkit/rntsc/workspace"
)

// ResolvedModule is the result the compiler host consumes.
type ResolvedModule struct {
	AbsolutePath string
	Extension    extensions.Extension
}

// ResolverConfig carries every construction input named in the external
// interface: platform targeting, compiler-option flags, and trace policy.
type ResolverConfig struct {
	Platform                     string
	ExtraPlatformExtensions      []string
	DisableRNPackageSubstitution bool
	CheckJS                      bool
	ResolveJSONModule            bool
	TraceMode                    tracelog.Mode
	TraceSink                    tracelog.Sink
}

// ResolvedType is the outcome of a type-reference-directive lookup,
// delegated to an injected TypeReferenceResolver.
type ResolvedType struct {
	AbsolutePath string
}

// TypeReferenceResolver resolves `/// <reference types="..." />` directives.
// The default implementation reports every directive unresolved, since the
// wrapped compiler that would actually own this logic is out of scope.
type TypeReferenceResolver interface {
	ResolveTypeReferenceDirective(name, containingFile string) (*ResolvedType, bool)
}

type unresolvedTypeReferenceResolver struct{}

func (unresolvedTypeReferenceResolver) ResolveTypeReferenceDirective(string, string) (*ResolvedType, bool) {
	return nil, false
}

// CacheEntry is returned by GetResolvedModuleWithFailedLookupLocationsFromCache.
type CacheEntry struct {
	Resolved *ResolvedModule
	Err      error
}

// multimediaExtension matches the closed set of non-code extensions whose
// resolution failure is never surfaced as a resolver diagnostic.
var multimediaExtension = regexp.MustCompile(`(?i)\.(aac|aiff|bmp|caf|gif|html|jpeg|jpg|m4a|m4v|mov|mp3|mp4|mpeg|mpg|obj|otf|pdf|png|psd|svg|ttf|wav|webm|webp|css)$`)

// Resolver is a constructed, per-invocation resolver handle. It holds no
// mutable state beyond the trace log's current transaction and the
// manifest cache threaded through the Prober; it is not safe to share a
// single instance's trace log across concurrent callers.
type Resolver struct {
	fsys    fs.FileSystem
	rootDir string
	cfg     ResolverConfig

	workspaces *workspace.Index
	prober     *probe.Prober
	trace      *tracelog.Log
	typeRefs   TypeReferenceResolver
}

// New constructs a Resolver: enumerates the monorepo workspaces rooted at
// rootDir and wires a fresh trace log and manifest-backed prober.
func New(fsys fs.FileSystem, rootDir string, cfg ResolverConfig) (*Resolver, error) {
	idx, err := workspace.New(fsys, rootDir)
	if err != nil {
		return nil, fmt.Errorf("constructing resolver: %w", err)
	}

	trace := tracelog.New(cfg.TraceMode, cfg.TraceSink)
	cache := packagejson.NewMemoryCache()
	r := &Resolver{
		fsys:       fsys,
		rootDir:    rootDir,
		cfg:        cfg,
		workspaces: idx,
		trace:      trace,
		typeRefs:   unresolvedTypeReferenceResolver{},
	}
	r.prober = probe.New(fsys, cache, trace)
	return r, nil
}

// SetTypeReferenceResolver overrides the default unresolved-everything
// stub with a caller-supplied collaborator.
func (r *Resolver) SetTypeReferenceResolver(t TypeReferenceResolver) {
	r.typeRefs = t
}

// ResolveModuleNames implements §4.I: for each name, returns the resolved
// module or nil at the same index, tracing a full begin/end transaction per
// specifier. It stops and returns early, with an error, the moment either a
// malformed package manifest is encountered along a resolution path or the
// trace sink fails to flush a completed transaction — both are fatal per
// §7, not per-specifier misses. Results already written for earlier names
// are still returned alongside the error.
func (r *Resolver) ResolveModuleNames(names []string, containingFile string) ([]*ResolvedModule, error) {
	results := make([]*ResolvedModule, len(names))

	allowedExts := extensions.Allowed(containingFile, r.cfg.CheckJS, r.cfg.ResolveJSONModule)

	for i, name := range names {
		r.trace.Begin()
		r.trace.Logf("======== Resolving module '%s' from '%s' ========", name, containingFile)

		effective := platform.Substitute(name, strings.ToLower(r.cfg.Platform), r.cfg.DisableRNPackageSubstitution, func(message string) {
			r.trace.Logf("%s", message)
		})

		result, err := r.resolveOne(effective, containingFile, allowedExts)
		if err != nil {
			r.trace.Logf("%s", err.Error())
			if flushErr := r.trace.EndFailure(); flushErr != nil {
				return results, fmt.Errorf("flushing trace log: %w", flushErr)
			}
			return results, fmt.Errorf("resolving %q from %q: %w", name, containingFile, err)
		}

		if result != nil {
			r.trace.Logf("File %s exists - using it as a module resolution result.", result.AbsolutePath)
			r.trace.Logf("======== Module name '%s' was successfully resolved to '%s' ========", name, result.AbsolutePath)
			if flushErr := r.trace.EndSuccess(); flushErr != nil {
				return results, fmt.Errorf("flushing trace log: %w", flushErr)
			}
		} else {
			r.trace.Logf("Failed to resolve module %s to a file.", name)
			r.trace.Logf("======== Module name '%s' failed to resolve ========", name)
			if shouldShowResolverFailure(name) {
				if flushErr := r.trace.EndFailure(); flushErr != nil {
					return results, fmt.Errorf("flushing trace log: %w", flushErr)
				}
			} else {
				r.trace.Reset()
			}
		}

		results[i] = result
	}

	return results, nil
}

func (r *Resolver) resolveOne(effective, containingFile string, allowedExts []extensions.Extension) (*ResolvedModule, error) {
	platformExts := platform.ExtensionList(strings.ToLower(r.cfg.Platform), r.cfg.ExtraPlatformExtensions)
	containingDir := path.Dir(containingFile)

	if w, ok := r.workspaces.QueryModuleRef(effective, containingFile); ok {
		r.trace.Logf("Found workspace package '%s' at '%s'.", w.Workspace.Name, w.Workspace.RootPath)
		res, found, err := entrypoint.Resolve(r.prober, r.trace, w.Workspace.RootPath, w.SubPath, platformExts, allowedExts)
		if err != nil {
			return nil, err
		}
		if found {
			return &ResolvedModule{AbsolutePath: res.AbsolutePath, Extension: res.Extension}, nil
		}
		return nil, nil
	}

	ref := moduleref.Parse(effective)
	switch ref.Kind {
	case moduleref.Package:
		extRef := external.Ref{Scope: ref.Scope, Name: ref.Name, SubPath: ref.SubPath}
		res, found, err := external.Resolve(r.prober, r.trace, extRef, containingDir, platformExts, allowedExts)
		if err != nil {
			return nil, err
		}
		if found {
			return &ResolvedModule{AbsolutePath: res.AbsolutePath, Extension: res.Extension}, nil
		}
		return nil, nil

	case moduleref.File:
		r.trace.Logf("Loading module '%s' relative to '%s'.", ref.Path, containingDir)
		if res, found := finder.Find(r.prober, containingDir, ref.Path, platformExts, allowedExts); found {
			return &ResolvedModule{AbsolutePath: res.AbsolutePath, Extension: res.Extension}, nil
		}
		return nil, nil
	}

	return nil, nil
}

// shouldShowResolverFailure implements §4.I's suppression predicate: a
// failed resolution of a builtin, a "node:"-prefixed specifier, or a
// multimedia/CSS asset is never surfaced as a trace failure.
func shouldShowResolverFailure(name string) bool {
	if moduleref.IsBuiltin(name) {
		return false
	}
	if multimediaExtension.MatchString(name) {
		return false
	}
	return true
}

// ResolveTypeReferenceDirectives delegates each directive to the injected
// TypeReferenceResolver within its own trace transaction. It stops and
// returns early, with an error, the moment the trace sink fails to flush.
func (r *Resolver) ResolveTypeReferenceDirectives(names []string, containingFile string) ([]*ResolvedType, error) {
	results := make([]*ResolvedType, len(names))
	for i, name := range names {
		r.trace.Begin()
		resolved, ok := r.typeRefs.ResolveTypeReferenceDirective(name, containingFile)
		if ok {
			results[i] = resolved
		}
		if err := r.trace.EndSuccess(); err != nil {
			return results, fmt.Errorf("flushing trace log: %w", err)
		}
	}
	return results, nil
}

// GetResolvedModuleWithFailedLookupLocationsFromCache re-resolves name
// against containingFile, reporting the same result a prior
// ResolveModuleNames call for this pair would have returned. This
// implementation re-runs resolution rather than consulting a separate
// failed-lookup cache, since the Manifest Cache already amortizes the
// expensive part (manifest parses) across repeated calls. A malformed
// manifest encountered during re-resolution is reported via CacheEntry.Err
// rather than swallowed.
func (r *Resolver) GetResolvedModuleWithFailedLookupLocationsFromCache(name, containingFile string) *CacheEntry {
	allowedExts := extensions.Allowed(containingFile, r.cfg.CheckJS, r.cfg.ResolveJSONModule)
	effective := platform.Substitute(name, strings.ToLower(r.cfg.Platform), r.cfg.DisableRNPackageSubstitution, nil)
	resolved, err := r.resolveOne(effective, containingFile, allowedExts)
	return &CacheEntry{Resolved: resolved, Err: err}
}

// Trace is a pass-through allowing the compiler host to funnel its own
// trace messages into this resolver's log as a standalone transaction.
func (r *Resolver) Trace(message string) {
	r.trace.Logf("%s", message)
}
