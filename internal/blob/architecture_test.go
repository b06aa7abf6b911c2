package blob

import (
	"slices"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// Storage backends are reached through their facade packages only: document
// stores through blob.Store and model stores through core.ModelStore.
func TestBackendsOnlyReachedThroughFacades(t *testing.T) {
	rules := []struct {
		backend string
		owners  []string
	}{
		{backend: "energyport/internal/infra/blob", owners: []string{"energyport/internal/blob"}},
		{backend: "energyport/internal/infra/persistence", owners: []string{"energyport/internal/core"}},
	}

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "energyport/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var violations []string
	for _, pkg := range pkgs {
		for _, rule := range rules {
			if within(pkg.PkgPath, rule.backend) || withinAny(pkg.PkgPath, rule.owners) {
				continue
			}
			for imp := range pkg.Imports {
				if within(imp, rule.backend) {
					violations = append(violations, pkg.PkgPath+" imports "+imp)
				}
			}
		}
	}
	sort.Strings(violations)
	for _, v := range slices.Compact(violations) {
		t.Errorf("backend imported outside its facade: %s", v)
	}
}

func within(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func withinAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		// test variants report as "pkg [pkg.test]" or "pkg_test"
		base, _, _ := strings.Cut(path, " ")
		if within(strings.TrimSuffix(base, "_test"), p) {
			return true
		}
	}
	return false
}
