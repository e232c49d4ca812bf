// Package docdir implements the library auto-loader convention: doc
// fragments dropped into a conventional directory are discovered and
// merged into the program's scannable documentation before usage text is
// synthesized, so bundled helpers can document themselves without the
// main program knowing about them.
package docdir

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the suffix a documentation fragment must carry to be
// picked up by Load.
const Extension = ".doc"

// Load recursively discovers every fragment under dir and returns their
// contents concatenated in path order, separated by blank lines so each
// fragment's documentation block stays self-terminating. A missing
// directory is not an error; the convention is optional.
func Load(dir string) (string, error) {
	if dir == "" {
		return "", nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return "", nil
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), Extension) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	// WalkDir is already lexical, but sort explicitly so the merge order
	// is a documented guarantee rather than an accident.
	sort.Strings(paths)

	var parts []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimRight(string(data), "\n"))
	}
	if len(parts) == 0 {
		return "", nil
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}
