// Package generate renders class descriptions into Java assertion classes.
package generate

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/assertgen/description"
)

var log = commonlog.GetLogger("assertgen.generate")

//go:embed assert.java.tmpl
var assertTemplate string

var tmpl = template.Must(template.New("assert").Parse(assertTemplate))

// Generator writes one <Class>Assert.java per description.
type Generator struct {
	// OutputDir is the root of the generated source tree.
	OutputDir string
	// BasePackage places every assertion class in one package instead of
	// the package of the class it asserts on.
	BasePackage string
}

type assertion struct {
	Package    string
	Name       string
	Simple     string
	ClassRef   string
	Properties []property
}

type property struct {
	Property    string
	Capitalized string
	Param       string
	Access      string
	Type        string
	Element     string
	// Elements selects the element assertions: "iterable", "array",
	// "primitiveArray" or "" for none.
	Elements    string
	Predicate   bool
	Throws      string
}

// Package is the package the assertion class for desc is generated in.
func (g *Generator) Package(desc *description.ClassDescription) string {
	if g.BasePackage != "" {
		return g.BasePackage
	}
	return desc.PackageName
}

// ClassName is the simple name of the generated assertion class.
func (g *Generator) ClassName(desc *description.ClassDescription) string {
	return desc.ClassNameWithOuterClassNotSeparatedByDots + "Assert"
}

// Path is where WriteFile puts the assertion class for desc.
func (g *Generator) Path(desc *description.ClassDescription) string {
	dir := filepath.FromSlash(strings.ReplaceAll(g.Package(desc), ".", "/"))
	return filepath.Join(g.OutputDir, dir, g.ClassName(desc)+".java")
}

func (g *Generator) Render(desc *description.ClassDescription, w io.Writer) error {
	if desc == nil {
		return errors.New("render: nil description")
	}
	if err := tmpl.Execute(w, g.assertion(desc)); err != nil {
		return errors.Wrapf(err, "render %s", desc.FullyQualifiedName())
	}
	return nil
}

// WriteFile renders desc below OutputDir and returns the file written.
func (g *Generator) WriteFile(desc *description.ClassDescription) (string, error) {
	var buf bytes.Buffer
	if err := g.Render(desc, &buf); err != nil {
		return "", err
	}
	path := g.Path(desc)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrapf(err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}
	log.Info("generated assertion", "class", desc.FullyQualifiedName(), "path", path)
	return path, nil
}

func (g *Generator) assertion(desc *description.ClassDescription) assertion {
	pkg := g.Package(desc)
	a := assertion{
		Package:  pkg,
		Name:     g.ClassName(desc),
		Simple:   desc.ClassName,
		ClassRef: desc.Identity().TypeName().Display(pkg),
	}

	seen := make(map[string]struct{})
	for _, getter := range desc.Getters {
		seen[getter.PropertyName] = struct{}{}
		p := newProperty(getter.PropertyName, getter.TypeDescription, pkg)
		p.Access = getter.OriginalMember + "()"
		p.Predicate = getter.IsPredicate
		if names := getter.ExceptionNames(pkg); len(names) > 0 {
			p.Throws = " throws " + strings.Join(names, ", ")
		}
		a.Properties = append(a.Properties, p)
	}
	// A public field shadowed by a getter of the same name is asserted
	// through the getter.
	for _, field := range desc.Fields {
		if _, ok := seen[field.Name]; ok {
			continue
		}
		p := newProperty(field.Name, field.TypeDescription, pkg)
		p.Access = field.Name
		a.Properties = append(a.Properties, p)
	}
	return a
}

func newProperty(name string, t description.TypeDescription, pkg string) property {
	return property{
		Property:    name,
		Capitalized: capitalize(name),
		Param:       paramName(name),
		Type:        t.Type.Display(pkg),
		Element:     t.ElementTypeName(pkg),
		Elements:    elements(t),
	}
}

// elements picks the assertions a property's elements support. Enums are
// described as iterable over themselves but have no elements to check.
func elements(t description.TypeDescription) string {
	switch {
	case t.ElementType == nil || t.IsEnumType:
		return ""
	case t.IsArrayType && t.ElementType.Primitive && !t.ElementType.IsArray():
		return "primitiveArray"
	case t.IsArrayType:
		return "array"
	case t.IsIterableType:
		return "iterable"
	}
	return ""
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

var javaKeywords = map[string]struct{}{
	"abstract": {}, "assert": {}, "boolean": {}, "break": {}, "byte": {}, "case": {},
	"catch": {}, "char": {}, "class": {}, "const": {}, "continue": {}, "default": {},
	"do": {}, "double": {}, "else": {}, "enum": {}, "extends": {}, "final": {},
	"finally": {}, "float": {}, "for": {}, "goto": {}, "if": {}, "implements": {},
	"import": {}, "instanceof": {}, "int": {}, "interface": {}, "long": {}, "native": {},
	"new": {}, "package": {}, "private": {}, "protected": {}, "public": {}, "return": {},
	"short": {}, "static": {}, "strictfp": {}, "super": {}, "switch": {}, "synchronized": {},
	"this": {}, "throw": {}, "throws": {}, "transient": {}, "try": {}, "void": {},
	"volatile": {}, "while": {}, "true": {}, "false": {}, "null": {},
}

// paramName avoids Java keywords and the inherited actual field.
func paramName(property string) string {
	if _, ok := javaKeywords[property]; ok || property == "actual" {
		return "expected" + capitalize(property)
	}
	return property
}
