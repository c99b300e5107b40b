package classpath

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/assertgen/java"
)

// Classpath loads classes from directories and jar files, in order. Models
// are parsed on first lookup and cached, including misses. A nil *Classpath
// is an empty classpath.
type Classpath struct {
	entries []entry

	mu    sync.RWMutex
	cache map[string]*java.ClassModel
	miss  map[string]struct{}
}

type entry interface {
	open(path string) (io.ReadCloser, error)
	list() ([]string, error)
	String() string
	Close() error
}

// New opens every path. Directories are read lazily; jar and zip files are
// opened now and stay open until Close.
func New(paths ...string) (*Classpath, error) {
	cp := &Classpath{
		cache: make(map[string]*java.ClassModel),
		miss:  make(map[string]struct{}),
	}
	for _, p := range paths {
		e, err := openEntry(p)
		if err != nil {
			cp.Close()
			return nil, err
		}
		cp.entries = append(cp.entries, e)
	}
	return cp, nil
}

func openEntry(path string) (entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "classpath entry %s", path)
	}
	if info.IsDir() {
		return dirEntry(path), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jar", ".zip":
		r, err := zip.OpenReader(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open jar %s", path)
		}
		return &jarEntry{path: path, r: r}, nil
	}
	return nil, errors.WithHint(
		errors.Newf("unsupported classpath entry %s", path),
		"classpath entries are directories, .jar or .zip files",
	)
}

func (cp *Classpath) Lookup(name string) (*java.ClassModel, error) {
	name = NormalizeName(name)
	if cp == nil {
		return nil, notFound(name)
	}

	cp.mu.RLock()
	model, ok := cp.cache[name]
	_, missed := cp.miss[name]
	cp.mu.RUnlock()
	if ok {
		return model, nil
	}
	if missed {
		return nil, notFound(name)
	}

	model, err := cp.load(name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	cp.mu.Lock()
	defer cp.mu.Unlock()
	if model == nil {
		cp.miss[name] = struct{}{}
		return nil, err
	}
	// Another goroutine may have loaded it meanwhile; keep the first.
	if existing, ok := cp.cache[name]; ok {
		return existing, nil
	}
	cp.cache[name] = model
	return model, nil
}

func (cp *Classpath) load(name string) (*java.ClassModel, error) {
	path := strings.ReplaceAll(name, ".", "/") + ".class"
	for _, e := range cp.entries {
		rc, err := e.open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "open %s in %s", path, e)
		}
		model, err := java.ClassModelFromReader(rc)
		rc.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "load %s from %s", name, e)
		}
		log.Debug("loaded class", "class", name, "from", e.String())
		return model, nil
	}
	return nil, notFound(name)
}

// Classes lists the binary names of every class on the classpath, in entry
// order. Duplicates shadowed by an earlier entry are omitted.
func (cp *Classpath) Classes() ([]string, error) {
	if cp == nil {
		return nil, nil
	}
	seen := make(map[string]struct{})
	var names []string
	for _, e := range cp.entries {
		paths, err := e.list()
		if err != nil {
			return nil, errors.Wrapf(err, "list %s", e)
		}
		for _, p := range paths {
			name := NormalizeName(p)
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names, nil
}

func (cp *Classpath) Close() error {
	if cp == nil {
		return nil
	}
	var errs error
	for _, e := range cp.entries {
		errs = errors.CombineErrors(errs, e.Close())
	}
	return errs
}

type dirEntry string

func (d dirEntry) open(path string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(string(d), filepath.FromSlash(path)))
}

func (d dirEntry) list() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(string(d), func(p string, de os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() || !isClassFile(p) {
			return nil
		}
		rel, err := filepath.Rel(string(d), p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	return paths, err
}

func (d dirEntry) String() string { return string(d) }
func (d dirEntry) Close() error   { return nil }

// jarEntry shares one zip reader between goroutines; zip.File.Open is safe
// for concurrent use on a ReadCloser.
type jarEntry struct {
	path  string
	r     *zip.ReadCloser
	once  sync.Once
	files map[string]*zip.File
}

func (j *jarEntry) index() map[string]*zip.File {
	j.once.Do(func() {
		j.files = make(map[string]*zip.File, len(j.r.File))
		for _, f := range j.r.File {
			j.files[f.Name] = f
		}
	})
	return j.files
}

func (j *jarEntry) open(path string) (io.ReadCloser, error) {
	f, ok := j.index()[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return f.Open()
}

func (j *jarEntry) list() ([]string, error) {
	var paths []string
	for _, f := range j.r.File {
		if !f.FileInfo().IsDir() && isClassFile(f.Name) {
			paths = append(paths, f.Name)
		}
	}
	return paths, nil
}

func (j *jarEntry) String() string { return j.path }
func (j *jarEntry) Close() error   { return j.r.Close() }

// isClassFile skips module and package descriptors and multi-release
// overlays, none of which describe a regular class.
func isClassFile(path string) bool {
	if !strings.HasSuffix(path, ".class") {
		return false
	}
	base := filepath.Base(path)
	if base == "module-info.class" || base == "package-info.class" {
		return false
	}
	return !strings.HasPrefix(filepath.ToSlash(path), "META-INF/")
}
