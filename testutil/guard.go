// Package testutil holds import guards shared by the architecture tests.
// The document records in pkg/domain and the object model in internal/osm
// are meant to stay free of storage, transport and logging dependencies.
package testutil

import (
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// ModulePath is the import path prefix of this module.
const ModulePath = "energyport"

// AssertNoTransitiveDependency runs `go list -deps` on pattern and fails t
// when any listed package matches forbidden.
func AssertNoTransitiveDependency(t testing.TB, pattern string, forbidden func(path string) bool, reason string) {
	t.Helper()
	viols, out, err := transitiveViolations(pattern, forbidden)
	if err != nil {
		t.Fatalf("go list failed: %v\n%s", err, string(out))
	}
	report(t, "transitive dependency", reason, viols)
}

// AssertNoDirectImports parses the non-test .go files in dir and fails t
// when an import matches forbidden. Build tags are not evaluated.
func AssertNoDirectImports(t testing.TB, dir string, forbidden func(importPath string) bool, reason string) {
	t.Helper()
	viols, err := directViolations(dir, forbidden)
	if err != nil {
		t.Fatalf("scan %s: %v", dir, err)
	}
	report(t, "direct import", reason, viols)
}

// NonStandardImport matches anything outside the standard library. Standard
// library paths have no dot in their first element; module-local paths are
// matched as well.
func NonStandardImport(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return strings.Contains(first, ".") || first == ModulePath
}

// StorageImport matches the model and blob storage backends along with the
// database and cloud drivers they wrap.
func StorageImport(path string) bool {
	for _, prefix := range []string{
		ModulePath + "/internal/infra/",
		ModulePath + "/internal/blob",
		"github.com/jackc/pgx",
		"modernc.org/sqlite",
		"github.com/aws/aws-sdk-go-v2",
	} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// ServiceImport matches the translation service and its ambient stack.
func ServiceImport(path string) bool {
	return strings.HasPrefix(path, ModulePath+"/internal/core") ||
		strings.HasPrefix(path, ModulePath+"/internal/config") ||
		strings.HasPrefix(path, ModulePath+"/internal/platform/") ||
		strings.HasPrefix(path, "go.uber.org/zap") ||
		strings.HasPrefix(path, "github.com/prometheus/")
}

// Any combines predicates.
func Any(preds ...func(string) bool) func(string) bool {
	return func(path string) bool {
		for _, p := range preds {
			if p(path) {
				return true
			}
		}
		return false
	}
}

var goListDeps = func(pattern string) ([]byte, error) {
	cmd := exec.Command("go", "list", "-deps", pattern)
	return cmd.CombinedOutput()
}

func transitiveViolations(pattern string, forbidden func(string) bool) ([]string, []byte, error) {
	out, err := goListDeps(pattern)
	if err != nil {
		return nil, out, err
	}
	var viols []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && forbidden(line) {
			viols = append(viols, line)
		}
	}
	return viols, out, nil
}

func directViolations(dir string, forbidden func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	var viols []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ImportsOnly)
		if err != nil {
			return nil, err
		}
		for _, spec := range file.Imports {
			imp, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				return nil, err
			}
			if forbidden(imp) {
				viols = append(viols, imp+" (in "+name+")")
			}
		}
	}
	return viols, nil
}

type fatalLogger interface {
	Fatalf(format string, args ...any)
}

func report(t fatalLogger, kind, reason string, viols []string) {
	if len(viols) > 0 {
		t.Fatalf("forbidden %s detected (%s):\n%s", kind, reason, strings.Join(viols, "\n"))
	}
}
