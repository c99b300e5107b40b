// Package converter turns class models into descriptions of their
// properties: accessors and public fields, their resolved types and the
// exceptions accessors declare.
package converter

import (
	"context"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/assertgen/classpath"
	"github.com/dhamidi/assertgen/description"
	"github.com/dhamidi/assertgen/java"
)

var log = commonlog.GetLogger("assertgen.converter")

// ErrInvalidArgument is returned for a nil model or an empty class name.
var ErrInvalidArgument = errors.New("invalid argument")

// DefaultSkipAnnotation excludes a member when no other skip annotations are
// configured.
const DefaultSkipAnnotation = "org.assertj.assertions.generator.annotations.SkipAssertJGeneration"

type Option func(*Converter)

// WithSkipAnnotations replaces the annotations that exclude a member.
func WithSkipAnnotations(names ...string) Option {
	return func(c *Converter) {
		c.skip = make(map[string]struct{}, len(names))
		for _, n := range names {
			c.skip[classpath.NormalizeName(strings.TrimSpace(n))] = struct{}{}
		}
	}
}

// Converter builds class descriptions. It only reads from its provider and
// is safe for concurrent use.
type Converter struct {
	provider classpath.Provider
	skip     map[string]struct{}
}

// New returns a converter looking up classes in provider, backed by the
// builtin JDK table. A nil provider uses the builtin table alone.
func New(provider classpath.Provider, opts ...Option) *Converter {
	c := &Converter{
		provider: classpath.Chain{provider, classpath.Builtin()},
		skip:     map[string]struct{}{DefaultSkipAnnotation: {}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertName looks the class up and converts it.
func (c *Converter) ConvertName(name string) (*description.ClassDescription, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "empty class name")
	}
	model, err := c.provider.Lookup(name)
	if err != nil {
		return nil, errors.Wrapf(err, "convert %s", name)
	}
	return c.Convert(model)
}

// Convert describes model. It reads class metadata only; missing ancestors
// and unreadable generic signatures degrade the result instead of failing.
func (c *Converter) Convert(model *java.ClassModel) (*description.ClassDescription, error) {
	if model == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil class model")
	}
	if model.Name == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "class model without a name")
	}

	nesting := model.NestedNames()
	desc := &description.ClassDescription{
		ClassName:               nesting[len(nesting)-1],
		ClassNameWithOuterClass: strings.Join(nesting, "."),
		ClassNameWithOuterClassNotSeparatedByDots: strings.Join(nesting, ""),
		PackageName: model.Package,
		SuperType:   c.superType(model),
	}

	props := c.extract(model)
	desc.Getters = nonNil(props.getters)
	desc.DeclaredGetters = nonNil(props.declaredGetters)
	desc.Fields = nonNil(props.fields)
	desc.DeclaredFields = nonNil(props.declaredFields)

	log.Debug("converted class", "class", model.Name, "getters", len(desc.Getters), "fields", len(desc.Fields))
	return desc, nil
}

// superType names the direct superclass, or nil for interfaces and classes
// extending Object.
func (c *Converter) superType(model *java.ClassModel) *description.ClassIdentity {
	if model.IsInterface() || model.SuperClass == "" || model.SuperClass == java.ObjectClass {
		return nil
	}
	name := c.typeName(java.TypeModel{Name: model.SuperClass}, model)
	return &description.ClassIdentity{
		ClassName:               name.SimpleName(),
		ClassNameWithOuterClass: strings.Join(name.Nesting, "."),
		PackageName:             name.Package,
	}
}

// ConvertAll converts the named classes with at most workers conversions in
// flight (all CPUs when workers < 1). Results follow the order of names. The
// first error cancels the remaining work.
func (c *Converter) ConvertAll(ctx context.Context, names []string, workers int) ([]*description.ClassDescription, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	results := make([]*description.ClassDescription, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			desc, err := c.ConvertName(name)
			if err != nil {
				return err
			}
			results[i] = desc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
