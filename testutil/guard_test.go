package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingT struct {
	msg string
}

func (r *recordingT) Fatalf(format string, args ...any) {
	r.msg = format
	if len(args) > 0 {
		r.msg = strings.Join([]string{format, args[len(args)-1].(string)}, "|")
	}
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		pred func(string) bool
		in   string
		want bool
	}{
		{NonStandardImport, "encoding/json", false},
		{NonStandardImport, "go.uber.org/zap", true},
		{NonStandardImport, "energyport/internal/osm", true},
		{StorageImport, "energyport/internal/infra/persistence/sqlite", true},
		{StorageImport, "energyport/internal/blob", true},
		{StorageImport, "github.com/aws/aws-sdk-go-v2/service/s3", true},
		{StorageImport, "energyport/internal/osm", false},
		{ServiceImport, "energyport/internal/core", true},
		{ServiceImport, "github.com/prometheus/client_golang/prometheus", true},
		{ServiceImport, "github.com/google/uuid", false},
		{Any(StorageImport, ServiceImport), "modernc.org/sqlite", true},
		{Any(), "modernc.org/sqlite", false},
	}
	for _, c := range cases {
		if got := c.pred(c.in); got != c.want {
			t.Errorf("%q: got %v want %v", c.in, got, c.want)
		}
	}
}

func writeGo(t *testing.T, dir, name, src string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestDirectViolationsIgnoresTestsAndDirectories(t *testing.T) {
	dir := t.TempDir()
	writeGo(t, dir, "x.go", "package tmp\nimport \"fmt\"\nfunc X() { fmt.Println(1) }\n")
	writeGo(t, dir, "x_test.go", "package tmp\nimport _ \"modernc.org/sqlite\"\n")
	if err := os.Mkdir(filepath.Join(dir, "nested.go"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	AssertNoDirectImports(t, dir, StorageImport, "test files are not scanned")
}

func TestDirectViolationsReportsImports(t *testing.T) {
	dir := t.TempDir()
	writeGo(t, dir, "store.go", "package tmp\nimport (\n\t\"context\"\n\t_ \"github.com/jackc/pgx/v5/stdlib\"\n)\nvar _ context.Context\n")
	viols, err := directViolations(dir, StorageImport)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 1 || viols[0] != "github.com/jackc/pgx/v5/stdlib (in store.go)" {
		t.Fatalf("unexpected violations %v", viols)
	}

	rec := &recordingT{}
	report(rec, "direct import", "no drivers", viols)
	if !strings.Contains(rec.msg, "pgx") {
		t.Fatalf("expected the violation to be reported, got %q", rec.msg)
	}
}

func TestDirectViolationsErrors(t *testing.T) {
	if _, err := directViolations(filepath.Join(t.TempDir(), "missing"), StorageImport); err == nil {
		t.Fatal("expected a missing directory to fail")
	}
	dir := t.TempDir()
	writeGo(t, dir, "broken.go", "package tmp\nimport (\n")
	if _, err := directViolations(dir, StorageImport); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestTransitiveViolationsUsesGoList(t *testing.T) {
	old := goListDeps
	defer func() { goListDeps = old }()

	goListDeps = func(string) ([]byte, error) {
		return []byte("context\nenergyport/internal/osm\nmodernc.org/sqlite\n\n"), nil
	}
	viols, _, err := transitiveViolations("./...", StorageImport)
	if err != nil || len(viols) != 1 || viols[0] != "modernc.org/sqlite" {
		t.Fatalf("unexpected violations %v (%v)", viols, err)
	}

	goListDeps = func(string) ([]byte, error) { return []byte("no go files"), errors.New("exit status 1") }
	if _, out, err := transitiveViolations("./...", StorageImport); err == nil || string(out) != "no go files" {
		t.Fatalf("expected go list failure to surface, got %v", err)
	}
}

func TestReportPassesWithoutViolations(t *testing.T) {
	rec := &recordingT{}
	report(rec, "direct import", "none", nil)
	if rec.msg != "" {
		t.Fatalf("unexpected failure %q", rec.msg)
	}
}
