package java

import "strings"

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "annotation"
	ClassKindRecord     ClassKind = "record"
	ClassKindModule     ClassKind = "module"
)

// Well known root types.
const (
	ObjectClass   = "java.lang.Object"
	EnumClass     = "java.lang.Enum"
	RecordClass   = "java.lang.Record"
	IterableClass = "java.lang.Iterable"
)

// ClassModel describes one class as read from a class file. Name is the
// binary name in dotted form, so a nested class reads "pkg.Outer$Inner".
type ClassModel struct {
	Name         string
	SimpleName   string
	Package      string
	SuperClass   string
	Interfaces   []string
	Visibility   Visibility
	Kind         ClassKind
	IsFinal      bool
	IsAbstract   bool
	IsStatic     bool
	IsSynthetic  bool
	MajorVersion uint16
	MinorVersion uint16
	Signature    string
	SourceFile   string
	IsDeprecated bool
	Annotations  []AnnotationModel

	// Generic view of the class header. GenericSuperClass is nil when the
	// class has no superclass; both fall back to the raw names when the
	// class carries no signature.
	TypeParameters    []TypeParameterModel
	GenericSuperClass *TypeModel
	GenericInterfaces []TypeModel

	// Nesting. OuterClass is the declaring class of a member class, or the
	// enclosing class of a local or anonymous one.
	OuterClass   string
	InnerName    string
	IsAnonymous  bool
	IsLocal      bool
	InnerClasses []InnerClassModel

	Fields  []FieldModel
	Methods []MethodModel
}

func (c *ClassModel) IsInterface() bool {
	return c.Kind == ClassKindInterface || c.Kind == ClassKindAnnotation
}

// NestedNames returns the simple names from the outermost enclosing class
// down to this one, e.g. ["Outer", "Inner"]. A class without a row for
// itself in its InnerClasses table is top level, even if its name holds a
// '$'.
func (c *ClassModel) NestedNames() []string {
	if names, ok := NestedNames(c.Name, c.InnerClasses); ok {
		return names
	}
	return []string{SimpleBinaryName(c.Name)}
}

// CanonicalName joins the package and the nested names with dots.
func (c *ClassModel) CanonicalName() string {
	nested := strings.Join(c.NestedNames(), ".")
	if c.Package == "" {
		return nested
	}
	return c.Package + "." + nested
}

// Supertypes returns the generic superclass (if any) followed by the generic
// interfaces.
func (c *ClassModel) Supertypes() []TypeModel {
	var result []TypeModel
	if c.GenericSuperClass != nil {
		result = append(result, *c.GenericSuperClass)
	}
	return append(result, c.GenericInterfaces...)
}

type FieldModel struct {
	Name         string
	Type         TypeModel
	Visibility   Visibility
	IsStatic     bool
	IsFinal      bool
	IsSynthetic  bool
	IsEnum       bool
	Signature    string
	IsDeprecated bool
	Annotations  []AnnotationModel
}

type MethodModel struct {
	Name           string
	Descriptor     string
	ReturnType     TypeModel
	Parameters     []ParameterModel
	Visibility     Visibility
	IsStatic       bool
	IsFinal        bool
	IsAbstract     bool
	IsBridge       bool
	IsVarargs      bool
	IsSynthetic    bool
	IsDefault      bool
	Signature      string
	IsDeprecated   bool
	Annotations    []AnnotationModel
	Exceptions     []TypeModel
	TypeParameters []TypeParameterModel
}

// ParameterKey identifies the method's parameter list independently of its
// return type, which is how an override is recognised.
func (m *MethodModel) ParameterKey() string {
	if i := strings.IndexByte(m.Descriptor, ')'); i >= 0 {
		return m.Descriptor[:i+1]
	}
	parts := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		parts[i] = p.Type.Erasure()
	}
	return "(" + strings.Join(parts, ",") + ")"
}

type ParameterModel struct {
	Name string
	Type TypeModel
}

// TypeModel is a possibly generic type use. When IsTypeVariable is set, Name
// is the variable name rather than a class name.
type TypeModel struct {
	Name           string
	ArrayDepth     int
	IsTypeVariable bool
	TypeArguments  []TypeArgumentModel
}

func (t TypeModel) IsPrimitive() bool {
	if t.ArrayDepth > 0 || t.IsTypeVariable {
		return false
	}
	return IsPrimitiveName(t.Name)
}

func IsPrimitiveName(name string) bool {
	switch name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

func (t TypeModel) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t TypeModel) IsVoid() bool {
	return t.Name == "void" && t.ArrayDepth == 0
}

// Erasure is the name with array suffixes and no type arguments.
func (t TypeModel) Erasure() string {
	return t.Name + strings.Repeat("[]", t.ArrayDepth)
}

func (t TypeModel) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.TypeArguments) > 0 {
		sb.WriteByte('<')
		for i, arg := range t.TypeArguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteByte('>')
	}
	sb.WriteString(strings.Repeat("[]", t.ArrayDepth))
	return sb.String()
}

// TypeArgumentModel is either a concrete Type or a wildcard. BoundKind is
// "extends", "super", or "" for the unbounded wildcard.
type TypeArgumentModel struct {
	Type       *TypeModel
	IsWildcard bool
	BoundKind  string
	Bound      *TypeModel
}

func (a TypeArgumentModel) String() string {
	switch {
	case !a.IsWildcard && a.Type != nil:
		return a.Type.String()
	case a.Bound != nil:
		return "? " + a.BoundKind + " " + a.Bound.String()
	default:
		return "?"
	}
}

type TypeParameterModel struct {
	Name   string
	Bounds []TypeModel
}

type AnnotationModel struct {
	Type    string
	Visible bool
	Values  map[string]interface{}
}

type InnerClassModel struct {
	InnerClass string
	OuterClass string
	InnerName  string
	Visibility Visibility
	IsStatic   bool
	IsFinal    bool
	IsAbstract bool
}
