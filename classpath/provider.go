// Package classpath supplies class metadata by name. Converters never read
// files themselves; they ask a Provider.
package classpath

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/assertgen/java"
)

var log = commonlog.GetLogger("assertgen.classpath")

// ErrNotFound is returned (possibly wrapped) when a provider has no class
// of the requested name.
var ErrNotFound = errors.New("class not found")

// Provider looks up class models by binary name ("java.util.Map$Entry").
// Implementations must be safe for concurrent use.
type Provider interface {
	Lookup(name string) (*java.ClassModel, error)
}

// NormalizeName accepts internal ("a/b/C"), binary ("a.b.C$D") or file
// ("a/b/C.class") spellings and returns the binary name.
func NormalizeName(name string) string {
	name = strings.TrimSuffix(name, ".class")
	return strings.ReplaceAll(name, "/", ".")
}

func notFound(name string) error {
	return errors.Wrapf(ErrNotFound, "%s", name)
}

// Chain asks each provider in turn and returns the first hit. Errors other
// than ErrNotFound stop the search.
type Chain []Provider

func (c Chain) Lookup(name string) (*java.ClassModel, error) {
	for _, p := range c {
		if p == nil {
			continue
		}
		model, err := p.Lookup(name)
		if err == nil {
			return model, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, notFound(name)
}

// Memory serves a fixed set of models. It is filled before use and only
// read afterwards.
type Memory map[string]*java.ClassModel

func NewMemory(models ...*java.ClassModel) Memory {
	m := make(Memory, len(models))
	for _, model := range models {
		m[model.Name] = model
	}
	return m
}

func (m Memory) Lookup(name string) (*java.ClassModel, error) {
	if model, ok := m[NormalizeName(name)]; ok {
		return model, nil
	}
	return nil, notFound(name)
}
