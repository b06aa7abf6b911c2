package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ValidateDirectory checks every .json document in dir against the catalogue.
// A missing directory is reported as a single error rather than ignored.
func (c *Catalogue) ValidateDirectory(dir string) []Error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		msg := fmt.Sprintf("read documents: %v", err)
		if errors.Is(err, fs.ErrNotExist) {
			msg = "document directory does not exist"
		}
		return []Error{{File: dir, Path: "$", Code: CodeParse, Message: msg}}
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var errs []Error
	for _, name := range names {
		path := filepath.Join(dir, name)
		errs = append(errs, c.ValidateFile(path)...)
	}
	return errs
}

// ValidateFile checks a single document on disk.
func (c *Catalogue) ValidateFile(path string) []Error {
	// #nosec G304 -- document paths are supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return []Error{{File: path, Path: "$", Code: CodeParse, Message: fmt.Sprintf("read document: %v", err)}}
	}
	found := c.ValidateDocument(data)
	for i := range found {
		found[i].File = path
	}
	return found
}
