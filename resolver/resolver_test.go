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
package resolver_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rnxkit/rntsc/extensions"
	"github.com/rnxkit/rntsc/internal/mapfs"
	"github.com/rnxkit/rntsc/resolver"
	"github.com/rnxkit/rntsc/testutil"
	"github.com/rnxkit/rntsc/tracelog"
)

type bufferSink struct {
	records []string
}

func (s *bufferSink) Write(record string) error {
	s.records = append(s.records, record)
	return nil
}

func TestResolveModuleNamesLengthMatchesInput(t *testing.T) {
	mfs := testutil.NewTree(
		testutil.PackageFile{Path: "/repo/src/index.ts", Content: "export {}"},
		testutil.PackageFile{Path: "/repo/src/App.ts", Content: "export {}"},
	)

	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	results, err := r.ResolveModuleNames([]string{"./App", "./missing"}, "/repo/src/index.ts")
	if err != nil {
		t.Fatalf("ResolveModuleNames() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("ResolveModuleNames() len = %d, want 2", len(results))
	}
	if results[0] == nil {
		t.Error("results[0] = nil, want resolved ./App")
	}
	if results[1] != nil {
		t.Error("results[1] != nil, want unresolved ./missing")
	}
}

func TestScenarioPlatformExtensionPriority(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/src/index.ios.ts", "export {}", 0644)
	mfs.AddFile("/repo/src/App.ios.tsx", "export {}", 0644)
	mfs.AddFile("/repo/src/App.ts", "export {}", 0644)

	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{
		Platform:                "ios",
		ExtraPlatformExtensions: []string{"native"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	results, err := r.ResolveModuleNames([]string{"./App"}, "/repo/src/index.ios.ts")
	if err != nil {
		t.Fatalf("ResolveModuleNames() error = %v", err)
	}
	if results[0] == nil {
		t.Fatal("resolve ./App: got nil, want resolved")
	}
	if results[0].AbsolutePath != "/repo/src/App.ios.tsx" {
		t.Errorf("resolve ./App = %q, want App.ios.tsx", results[0].AbsolutePath)
	}
	if results[0].Extension != extensions.Tsx {
		t.Errorf("resolve ./App extension = %v, want .tsx", results[0].Extension)
	}
}

func TestScenarioPlatformSubstitutionToPackage(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/app/index.windows.ts", "export {}", 0644)
	mfs.AddFile("/repo/node_modules/react-native-windows/Libraries/Foo.ts", "export {}", 0644)
	mfs.AddFile("/repo/node_modules/react-native-windows/package.json", `{"name":"react-native-windows"}`, 0644)

	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{Platform: "windows"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	results, err := r.ResolveModuleNames([]string{"react-native/Libraries/Foo"}, "/repo/app/index.windows.ts")
	if err != nil {
		t.Fatalf("ResolveModuleNames() error = %v", err)
	}
	if results[0] == nil {
		t.Fatal("resolve react-native/Libraries/Foo: got nil, want resolved")
	}
	if results[0].AbsolutePath != "/repo/node_modules/react-native-windows/Libraries/Foo.ts" {
		t.Errorf("resolve = %q, want substituted package path", results[0].AbsolutePath)
	}
}

func TestScenarioDTsContainingFileRestriction(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/types/index.d.ts", "export {}", 0644)
	mfs.AddFile("/repo/types/sub.d.ts", "export {}", 0644)
	mfs.AddFile("/repo/types/sub.ts", "export {}", 0644)

	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	results, err := r.ResolveModuleNames([]string{"./sub"}, "/repo/types/index.d.ts")
	if err != nil {
		t.Fatalf("ResolveModuleNames() error = %v", err)
	}
	if results[0] == nil {
		t.Fatal("resolve ./sub: got nil, want resolved")
	}
	if results[0].AbsolutePath != "/repo/types/sub.d.ts" {
		t.Errorf("resolve = %q, want sub.d.ts (higher precedence)", results[0].AbsolutePath)
	}
	if results[0].Extension != extensions.DTs && results[0].Extension != extensions.Ts {
		t.Errorf("extension = %v, want one of {.d.ts, .ts}", results[0].Extension)
	}
}

func TestScenarioDTsContainingFileFallsBackToTs(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/types/index.d.ts", "export {}", 0644)
	mfs.AddFile("/repo/types/sub.ts", "export {}", 0644)

	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	results, err := r.ResolveModuleNames([]string{"./sub"}, "/repo/types/index.d.ts")
	if err != nil {
		t.Fatalf("ResolveModuleNames() error = %v", err)
	}
	if results[0] == nil {
		t.Fatal("resolve ./sub: got nil, want resolved")
	}
	if results[0].AbsolutePath != "/repo/types/sub.ts" {
		t.Errorf("resolve = %q, want sub.ts", results[0].AbsolutePath)
	}
}

func TestScenarioMultimediaFailureSuppressed(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/src/index.ios.ts", "export {}", 0644)

	sink := &bufferSink{}
	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{
		Platform:  "ios",
		TraceMode: tracelog.OnFailure,
		TraceSink: sink,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	results, err := r.ResolveModuleNames([]string{"./assets/logo.png"}, "/repo/src/index.ios.ts")
	if err != nil {
		t.Fatalf("ResolveModuleNames() error = %v", err)
	}
	if results[0] != nil {
		t.Error("resolve ./assets/logo.png: got resolved, want nil")
	}
	if len(sink.records) != 0 {
		t.Errorf("sink received %d records, want 0 (multimedia failure suppressed)", len(sink.records))
	}
}

func TestScenarioWorkspaceEntryPointWithCheckJs(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/package.json", `{"name":"root","workspaces":["packages/*"]}`, 0644)
	mfs.AddFile("/repo/packages/ui/package.json", `{"name":"@acme/ui","main":"lib/index.js"}`, 0644)
	mfs.AddFile("/repo/packages/ui/lib/index.js", "module.exports = {}", 0644)
	mfs.AddFile("/repo/app/x.ts", "export {}", 0644)

	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{CheckJS: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	results, err := r.ResolveModuleNames([]string{"@acme/ui"}, "/repo/app/x.ts")
	if err != nil {
		t.Fatalf("ResolveModuleNames() error = %v", err)
	}
	if results[0] == nil {
		t.Fatal("resolve @acme/ui: got nil, want resolved via workspace main field")
	}
	if results[0].AbsolutePath != "/repo/packages/ui/lib/index.js" {
		t.Errorf("resolve = %q, want lib/index.js", results[0].AbsolutePath)
	}
}

func TestScenarioWorkspaceEntryPointWithoutCheckJsFails(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/package.json", `{"name":"root","workspaces":["packages/*"]}`, 0644)
	mfs.AddFile("/repo/packages/ui/package.json", `{"name":"@acme/ui","main":"lib/index.js"}`, 0644)
	mfs.AddFile("/repo/packages/ui/lib/index.js", "module.exports = {}", 0644)
	mfs.AddFile("/repo/app/x.ts", "export {}", 0644)

	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{CheckJS: false})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	results, err := r.ResolveModuleNames([]string{"@acme/ui"}, "/repo/app/x.ts")
	if err != nil {
		t.Fatalf("ResolveModuleNames() error = %v", err)
	}
	if results[0] != nil {
		t.Error("resolve @acme/ui: got resolved, want nil (checkJs disabled, no .ts present)")
	}
}

func TestScenarioAtTypesFallbackForSubPath(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/app/x.ts", "export {}", 0644)
	mfs.AddFile("/repo/node_modules/@types/lodash/isString.d.ts", "export {}", 0644)

	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	results, err := r.ResolveModuleNames([]string{"lodash/isString"}, "/repo/app/x.ts")
	if err != nil {
		t.Fatalf("ResolveModuleNames() error = %v", err)
	}
	if results[0] == nil {
		t.Fatal("resolve lodash/isString: got nil, want resolved via @types fallback")
	}
	if results[0].AbsolutePath != "/repo/node_modules/@types/lodash/isString.d.ts" {
		t.Errorf("resolve = %q, want @types fallback path", results[0].AbsolutePath)
	}
}

func TestWorkspacePrecedenceOverExternalPackageOfSameName(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/package.json", `{"name":"root","workspaces":["packages/*"]}`, 0644)
	mfs.AddFile("/repo/packages/ui/package.json", `{"name":"shared-ui"}`, 0644)
	mfs.AddFile("/repo/packages/ui/index.ts", "export {}", 0644)
	mfs.AddFile("/repo/node_modules/shared-ui/package.json", `{"name":"shared-ui","main":"dist/index.js"}`, 0644)
	mfs.AddFile("/repo/node_modules/shared-ui/dist/index.js", "module.exports = {}", 0644)
	mfs.AddFile("/repo/app/x.ts", "export {}", 0644)

	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	results, err := r.ResolveModuleNames([]string{"shared-ui"}, "/repo/app/x.ts")
	if err != nil {
		t.Fatalf("ResolveModuleNames() error = %v", err)
	}
	if results[0] == nil {
		t.Fatal("resolve shared-ui: got nil, want resolved via workspace")
	}
	if results[0].AbsolutePath != "/repo/packages/ui/index.ts" {
		t.Errorf("resolve = %q, want workspace index.ts, not node_modules", results[0].AbsolutePath)
	}
}

func TestTraceModeAlwaysFlushesEveryOutcome(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/src/index.ts", "export {}", 0644)
	mfs.AddFile("/repo/src/App.ts", "export {}", 0644)

	sink := &bufferSink{}
	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{
		TraceMode: tracelog.Always,
		TraceSink: sink,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := r.ResolveModuleNames([]string{"./App", "./missing-xyz"}, "/repo/src/index.ts"); err != nil {
		t.Fatalf("ResolveModuleNames() error = %v", err)
	}
	if len(sink.records) != 2 {
		t.Fatalf("sink received %d records, want 2 (one per specifier, regardless of outcome)", len(sink.records))
	}
}

func TestTraceModeNeverWritesNothing(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/src/index.ts", "export {}", 0644)

	sink := &bufferSink{}
	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{
		TraceMode: tracelog.Never,
		TraceSink: sink,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := r.ResolveModuleNames([]string{"./missing"}, "/repo/src/index.ts"); err != nil {
		t.Fatalf("ResolveModuleNames() error = %v", err)
	}
	if len(sink.records) != 0 {
		t.Errorf("sink received %d records, want 0 in Never mode", len(sink.records))
	}
}

func TestTraceBannersUseExactPhrasing(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/src/index.ts", "export {}", 0644)
	mfs.AddFile("/repo/src/App.ts", "export {}", 0644)

	sink := &bufferSink{}
	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{
		TraceMode: tracelog.Always,
		TraceSink: sink,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := r.ResolveModuleNames([]string{"./App"}, "/repo/src/index.ts"); err != nil {
		t.Fatalf("ResolveModuleNames() error = %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("sink received %d records, want 1", len(sink.records))
	}
	record := sink.records[0]
	if !strings.Contains(record, "======== Resolving module './App' from '/repo/src/index.ts' ========") {
		t.Errorf("record missing begin banner: %q", record)
	}
	if !strings.Contains(record, "======== Module name './App' was successfully resolved to '/repo/src/App.ts' ========") {
		t.Errorf("record missing success banner: %q", record)
	}
}

func TestGetResolvedModuleWithFailedLookupLocationsFromCache(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/src/index.ts", "export {}", 0644)
	mfs.AddFile("/repo/src/App.ts", "export {}", 0644)

	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	entry := r.GetResolvedModuleWithFailedLookupLocationsFromCache("./App", "/repo/src/index.ts")
	if entry.Resolved == nil {
		t.Fatal("GetResolvedModuleWithFailedLookupLocationsFromCache() Resolved = nil, want resolved")
	}
	if entry.Resolved.AbsolutePath != "/repo/src/App.ts" {
		t.Errorf("Resolved = %q, want App.ts", entry.Resolved.AbsolutePath)
	}
}

func TestResolveTypeReferenceDirectivesDefaultUnresolved(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/src/index.ts", "export {}", 0644)

	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	results, err := r.ResolveTypeReferenceDirectives([]string{"node"}, "/repo/src/index.ts")
	if err != nil {
		t.Fatalf("ResolveTypeReferenceDirectives() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len = %d, want 1", len(results))
	}
	if results[0] != nil {
		t.Error("results[0] != nil, want nil (default resolver reports everything unresolved)")
	}
}

func TestMalformedManifestPropagatesAsError(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/app/x.ts", "export {}", 0644)
	mfs.AddFile("/repo/node_modules/broken-pkg/package.json", `{not valid json`, 0644)
	mfs.AddFile("/repo/node_modules/broken-pkg/index.ts", "export {}", 0644)

	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	results, err := r.ResolveModuleNames([]string{"broken-pkg"}, "/repo/app/x.ts")
	if err == nil {
		t.Fatal("ResolveModuleNames() error = nil, want malformed manifest error")
	}
	if !strings.Contains(err.Error(), "/repo/node_modules/broken-pkg") {
		t.Errorf("error = %q, want it to name the offending directory", err.Error())
	}
	if results[0] != nil {
		t.Errorf("results[0] = %+v, want nil alongside the error", results[0])
	}
}

type failingSink struct{}

func (failingSink) Write(string) error {
	return fmt.Errorf("sink unavailable")
}

func TestTraceSinkFlushErrorPropagates(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/src/index.ts", "export {}", 0644)

	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{
		TraceMode: tracelog.Always,
		TraceSink: failingSink{},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = r.ResolveModuleNames([]string{"./missing"}, "/repo/src/index.ts")
	if err == nil {
		t.Fatal("ResolveModuleNames() error = nil, want sink flush error to surface")
	}
	if !strings.Contains(err.Error(), "flushing trace log") {
		t.Errorf("error = %q, want it to mention the trace flush failure", err.Error())
	}
}

func TestTraceFunnelsStandaloneMessage(t *testing.T) {
	mfs := mapfs.New()
	sink := &bufferSink{}
	r, err := resolver.New(mfs, "/repo", resolver.ResolverConfig{
		TraceMode: tracelog.Always,
		TraceSink: sink,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	r.Trace("host-supplied diagnostic")
	if len(sink.records) != 1 {
		t.Fatalf("sink received %d records, want 1", len(sink.records))
	}
	if !strings.Contains(sink.records[0], "host-supplied diagnostic") {
		t.Errorf("record = %q, want to contain funneled message", sink.records[0])
	}
}
