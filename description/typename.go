package description

import (
	"slices"
	"strings"
)

const javaLang = "java.lang"

// TypeName is a resolved type reference. Nesting holds the simple names from
// the outermost class down, so java.util.Map.Entry is
// {Package: "java.util", Nesting: ["Map", "Entry"]}.
type TypeName struct {
	Package    string   `json:"package,omitempty" yaml:"package,omitempty"`
	Nesting    []string `json:"nesting" yaml:"nesting"`
	Primitive  bool     `json:"primitive,omitempty" yaml:"primitive,omitempty"`
	ArrayDepth int      `json:"arrayDepth,omitempty" yaml:"arrayDepth,omitempty"`
}

// PrimitiveType returns the TypeName of a primitive type such as "int".
func PrimitiveType(name string) TypeName {
	return TypeName{Nesting: []string{name}, Primitive: true}
}

// Display renders the name as it should appear in source living in
// referencePackage: qualified only when the package differs and is not
// java.lang.
func (t TypeName) Display(referencePackage string) string {
	if t.Primitive || t.Package == "" || t.Package == referencePackage || t.Package == javaLang {
		return t.nested() + t.brackets()
	}
	return t.FullyQualified()
}

// FullyQualified always includes the package.
func (t TypeName) FullyQualified() string {
	if t.Primitive || t.Package == "" {
		return t.nested() + t.brackets()
	}
	return t.Package + "." + t.nested() + t.brackets()
}

func (t TypeName) String() string {
	return t.FullyQualified()
}

func (t TypeName) nested() string {
	return strings.Join(t.Nesting, ".")
}

func (t TypeName) brackets() string {
	return strings.Repeat("[]", t.ArrayDepth)
}

// SimpleName is the innermost simple name, without array brackets.
func (t TypeName) SimpleName() string {
	if len(t.Nesting) == 0 {
		return ""
	}
	return t.Nesting[len(t.Nesting)-1]
}

func (t TypeName) IsArray() bool {
	return t.ArrayDepth > 0
}

// Element strips one array level; int[][] gives int[].
func (t TypeName) Element() TypeName {
	if t.ArrayDepth == 0 {
		return t
	}
	e := t
	e.ArrayDepth--
	return e
}

func (t TypeName) Equal(o TypeName) bool {
	return t.Package == o.Package &&
		t.Primitive == o.Primitive &&
		t.ArrayDepth == o.ArrayDepth &&
		slices.Equal(t.Nesting, o.Nesting)
}
