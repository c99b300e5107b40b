// Package description holds the language-neutral model of a class's
// observable properties. Values are built once by the converter and never
// modified afterwards.
package description

import (
	"fmt"
	"slices"
	"strings"
)

// TypeDescription classifies the declared type of a property. IsIterableType
// and IsArrayType are never both set; ElementType is set when either is.
// Enums are iterable over themselves and also carry IsEnumType, since they
// are not java.lang.Iterable.
type TypeDescription struct {
	Type            TypeName  `json:"type" yaml:"type"`
	TypeName        string    `json:"typeName" yaml:"typeName"`
	ElementType     *TypeName `json:"elementType,omitempty" yaml:"elementType,omitempty"`
	ElementTypeText string    `json:"elementTypeName,omitempty" yaml:"elementTypeName,omitempty"`
	IsIterableType  bool      `json:"iterableType" yaml:"iterableType"`
	IsArrayType     bool      `json:"arrayType" yaml:"arrayType"`
	IsEnumType      bool      `json:"enumType,omitempty" yaml:"enumType,omitempty"`
}

// ElementTypeName renders the element type relative to pkg, or "" when the
// type is neither iterable nor an array.
func (t TypeDescription) ElementTypeName(pkg string) string {
	if t.ElementType == nil {
		return ""
	}
	return t.ElementType.Display(pkg)
}

func (t TypeDescription) Equal(o TypeDescription) bool {
	if (t.ElementType == nil) != (o.ElementType == nil) {
		return false
	}
	if t.ElementType != nil && !t.ElementType.Equal(*o.ElementType) {
		return false
	}
	return t.Type.Equal(o.Type) &&
		t.TypeName == o.TypeName &&
		t.ElementTypeText == o.ElementTypeText &&
		t.IsIterableType == o.IsIterableType &&
		t.IsArrayType == o.IsArrayType &&
		t.IsEnumType == o.IsEnumType
}

type GetterDescription struct {
	PropertyName    string `json:"propertyName" yaml:"propertyName"`
	OriginalMember  string `json:"originalMember" yaml:"originalMember"`
	IsPredicate     bool   `json:"predicate" yaml:"predicate"`
	TypeDescription `yaml:",inline"`
	// Exceptions lists the declared exception types in declaration order.
	// It is empty, never nil, for accessors that declare none.
	Exceptions []TypeName `json:"exceptions" yaml:"exceptions"`
}

// ExceptionNames renders the declared exceptions relative to pkg.
func (g GetterDescription) ExceptionNames(pkg string) []string {
	names := make([]string, len(g.Exceptions))
	for i, e := range g.Exceptions {
		names[i] = e.Display(pkg)
	}
	return names
}

func (g GetterDescription) Equal(o GetterDescription) bool {
	return g.PropertyName == o.PropertyName &&
		g.OriginalMember == o.OriginalMember &&
		g.IsPredicate == o.IsPredicate &&
		g.TypeDescription.Equal(o.TypeDescription) &&
		slices.EqualFunc(g.Exceptions, o.Exceptions, TypeName.Equal)
}

type FieldDescription struct {
	Name            string `json:"name" yaml:"name"`
	TypeDescription `yaml:",inline"`
	Visibility      string `json:"visibility" yaml:"visibility"`
}

func (f FieldDescription) Equal(o FieldDescription) bool {
	return f.Name == o.Name &&
		f.Visibility == o.Visibility &&
		f.TypeDescription.Equal(o.TypeDescription)
}

// ClassIdentity names a class without describing it; it is how a
// description refers to its superclass.
type ClassIdentity struct {
	ClassName               string `json:"className" yaml:"className"`
	ClassNameWithOuterClass string `json:"classNameWithOuterClass" yaml:"classNameWithOuterClass"`
	PackageName             string `json:"packageName" yaml:"packageName"`
}

func (c ClassIdentity) FullyQualifiedName() string {
	return qualify(c.PackageName, c.ClassNameWithOuterClass)
}

// TypeName splits the nested name back into a type reference.
func (c ClassIdentity) TypeName() TypeName {
	return TypeName{Package: c.PackageName, Nesting: strings.Split(c.ClassNameWithOuterClass, ".")}
}

func (c ClassIdentity) String() string {
	return c.FullyQualifiedName()
}

type ClassDescription struct {
	ClassName                                 string         `json:"className" yaml:"className"`
	ClassNameWithOuterClass                   string         `json:"classNameWithOuterClass" yaml:"classNameWithOuterClass"`
	ClassNameWithOuterClassNotSeparatedByDots string         `json:"classNameWithOuterClassNotSeparatedByDots" yaml:"classNameWithOuterClassNotSeparatedByDots"`
	PackageName                               string         `json:"packageName" yaml:"packageName"`
	SuperType                                 *ClassIdentity `json:"superType" yaml:"superType"`

	Getters         []GetterDescription `json:"gettersDescriptions" yaml:"gettersDescriptions"`
	DeclaredGetters []GetterDescription `json:"declaredGettersDescriptions" yaml:"declaredGettersDescriptions"`
	Fields          []FieldDescription  `json:"fieldsDescriptions" yaml:"fieldsDescriptions"`
	DeclaredFields  []FieldDescription  `json:"declaredFieldsDescriptions" yaml:"declaredFieldsDescriptions"`
}

func (c *ClassDescription) Identity() ClassIdentity {
	return ClassIdentity{
		ClassName:               c.ClassName,
		ClassNameWithOuterClass: c.ClassNameWithOuterClass,
		PackageName:             c.PackageName,
	}
}

func (c *ClassDescription) FullyQualifiedName() string {
	return qualify(c.PackageName, c.ClassNameWithOuterClass)
}

func (c *ClassDescription) String() string {
	return fmt.Sprintf("ClassDescription [className=%s, getters=%d, fields=%d]",
		c.FullyQualifiedName(), len(c.Getters), len(c.Fields))
}

// Getter returns the getter for a property from the full collection.
func (c *ClassDescription) Getter(property string) (GetterDescription, bool) {
	i := slices.IndexFunc(c.Getters, func(g GetterDescription) bool { return g.PropertyName == property })
	if i < 0 {
		return GetterDescription{}, false
	}
	return c.Getters[i], true
}

// Field returns a field from the full collection.
func (c *ClassDescription) Field(name string) (FieldDescription, bool) {
	i := slices.IndexFunc(c.Fields, func(f FieldDescription) bool { return f.Name == name })
	if i < 0 {
		return FieldDescription{}, false
	}
	return c.Fields[i], true
}

func (c *ClassDescription) GetterNames() []string {
	return propertyNames(c.Getters, func(g GetterDescription) string { return g.PropertyName })
}

func (c *ClassDescription) DeclaredGetterNames() []string {
	return propertyNames(c.DeclaredGetters, func(g GetterDescription) string { return g.PropertyName })
}

func (c *ClassDescription) FieldNames() []string {
	return propertyNames(c.Fields, func(f FieldDescription) string { return f.Name })
}

func (c *ClassDescription) DeclaredFieldNames() []string {
	return propertyNames(c.DeclaredFields, func(f FieldDescription) string { return f.Name })
}

// Equal compares identities and the four property collections as sets.
func (c *ClassDescription) Equal(o *ClassDescription) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.ClassName != o.ClassName ||
		c.ClassNameWithOuterClass != o.ClassNameWithOuterClass ||
		c.ClassNameWithOuterClassNotSeparatedByDots != o.ClassNameWithOuterClassNotSeparatedByDots ||
		c.PackageName != o.PackageName {
		return false
	}
	if (c.SuperType == nil) != (o.SuperType == nil) {
		return false
	}
	if c.SuperType != nil && *c.SuperType != *o.SuperType {
		return false
	}
	getterKey := func(g GetterDescription) string { return g.PropertyName }
	fieldKey := func(f FieldDescription) string { return f.Name }
	return sameSet(c.Getters, o.Getters, getterKey, GetterDescription.Equal) &&
		sameSet(c.DeclaredGetters, o.DeclaredGetters, getterKey, GetterDescription.Equal) &&
		sameSet(c.Fields, o.Fields, fieldKey, FieldDescription.Equal) &&
		sameSet(c.DeclaredFields, o.DeclaredFields, fieldKey, FieldDescription.Equal)
}

func sameSet[T any](a, b []T, key func(T) string, eq func(T, T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	byKey := make(map[string]T, len(a))
	for _, v := range a {
		byKey[key(v)] = v
	}
	for _, v := range b {
		w, ok := byKey[key(v)]
		if !ok || !eq(v, w) {
			return false
		}
	}
	return true
}

func propertyNames[T any](items []T, name func(T) string) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = name(item)
	}
	return names
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return strings.Join([]string{pkg, name}, ".")
}
