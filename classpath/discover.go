package classpath

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/assertgen/java"
)

// Discover lists the binary names of the classes at path, which may be a
// directory, a jar or zip file, or a single .class file. Names are sorted.
func Discover(path string) ([]string, error) {
	if strings.HasSuffix(path, ".class") {
		model, err := java.ClassModelFromFile(path)
		if err != nil {
			return nil, err
		}
		return []string{model.Name}, nil
	}

	e, err := openEntry(path)
	if err != nil {
		return nil, err
	}
	defer e.Close()

	paths, err := e.list()
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", path)
	}
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, NormalizeName(p))
	}
	sort.Strings(names)
	log.Debug("discovered classes", "path", path, "count", len(names))
	return names, nil
}

// ClassRoot returns the directory a class file's package hierarchy starts
// at, so that its siblings can be found. It returns "" when the file does
// not sit in a directory matching its package.
func ClassRoot(file string, model *java.ClassModel) string {
	dir := filepath.Dir(file)
	if model.Package == "" {
		return dir
	}
	pkgDir := filepath.FromSlash(strings.ReplaceAll(model.Package, ".", "/"))
	if dir != pkgDir && !strings.HasSuffix(dir, string(os.PathSeparator)+pkgDir) {
		return ""
	}
	root := strings.TrimSuffix(dir, pkgDir)
	if root == "" {
		return "."
	}
	return filepath.Clean(root)
}
