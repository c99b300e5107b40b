package converter

import (
	"maps"

	"github.com/dhamidi/assertgen/description"
	"github.com/dhamidi/assertgen/java"
)

// bindings maps type variable names to the types they stand for in the
// class or method being walked. Bound types never contain variables of the
// same scope.
type bindings map[string]java.TypeModel

var objectType = java.TypeModel{Name: java.ObjectClass}

// substitute replaces bound type variables in t. Variables without a
// binding are kept and erased later.
func (b bindings) substitute(t java.TypeModel) java.TypeModel {
	if t.IsTypeVariable {
		bound, ok := b[t.Name]
		if !ok {
			return t
		}
		bound.ArrayDepth += t.ArrayDepth
		return bound
	}
	if len(t.TypeArguments) == 0 {
		return t
	}
	result := t
	result.TypeArguments = make([]java.TypeArgumentModel, len(t.TypeArguments))
	for i, arg := range t.TypeArguments {
		result.TypeArguments[i] = b.substituteArgument(arg)
	}
	return result
}

func (b bindings) substituteArgument(arg java.TypeArgumentModel) java.TypeArgumentModel {
	if arg.Type != nil {
		t := b.substitute(*arg.Type)
		arg.Type = &t
	}
	if arg.Bound != nil {
		t := b.substitute(*arg.Bound)
		arg.Bound = &t
	}
	return arg
}

// with returns a copy of b extended by the erasures of params, which shadow
// existing bindings of the same name.
func (b bindings) with(params []java.TypeParameterModel) bindings {
	if len(params) == 0 {
		return b
	}
	result := make(bindings, len(b)+len(params))
	maps.Copy(result, b)

	// Raw bounds first so that self-referencing bounds such as
	// E extends Enum<E> resolve against an erased E.
	raw := make(bindings, len(params))
	for _, p := range params {
		raw[p.Name] = rawBound(p)
	}
	for _, p := range params {
		if len(p.Bounds) == 0 {
			result[p.Name] = objectType
			continue
		}
		result[p.Name] = b.substitute(raw.substitute(p.Bounds[0]))
	}
	return result
}

func rawBound(p java.TypeParameterModel) java.TypeModel {
	if len(p.Bounds) == 0 || p.Bounds[0].IsTypeVariable {
		return objectType
	}
	return java.TypeModel{Name: p.Bounds[0].Name, ArrayDepth: p.Bounds[0].ArrayDepth}
}

// bind maps the type parameters of model to the arguments of use, the
// type through which model was reached. A raw use erases every parameter.
func (b bindings) bind(model *java.ClassModel, use java.TypeModel) bindings {
	if len(use.TypeArguments) != len(model.TypeParameters) {
		return bindings(nil).with(model.TypeParameters)
	}
	result := make(bindings, len(model.TypeParameters))
	for i, p := range model.TypeParameters {
		result[p.Name] = argumentType(b.substituteArgument(use.TypeArguments[i]))
	}
	return result
}

// argumentType is the type a type argument contributes: its own type, the
// upper bound of an extends-wildcard, or Object otherwise.
func argumentType(arg java.TypeArgumentModel) java.TypeModel {
	switch {
	case !arg.IsWildcard && arg.Type != nil:
		return eraseVariables(*arg.Type)
	case arg.BoundKind == "extends" && arg.Bound != nil:
		return eraseVariables(*arg.Bound)
	}
	return objectType
}

// eraseVariables turns leftover type variables into Object.
func eraseVariables(t java.TypeModel) java.TypeModel {
	if t.IsTypeVariable {
		return java.TypeModel{Name: java.ObjectClass, ArrayDepth: t.ArrayDepth}
	}
	return t
}

// describeType classifies t, already substituted, as seen from the package
// pkg. Member types are named with the help of the declaring class owner.
func (c *Converter) describeType(t java.TypeModel, pkg string, owner *java.ClassModel) description.TypeDescription {
	t = eraseVariables(t)
	name := c.typeName(t, owner)
	td := description.TypeDescription{
		Type:     name,
		TypeName: name.Display(pkg),
	}

	var element *description.TypeName
	switch {
	case t.IsArray():
		e := name.Element()
		element = &e
		td.IsArrayType = true
	case t.IsPrimitive():
	case c.isEnum(t.Name):
		// Enums are iterable over themselves.
		element = &name
		td.IsIterableType = true
		td.IsEnumType = true
	default:
		if e, ok := c.iterableElement(t, make(map[string]struct{})); ok {
			en := c.typeName(e, owner)
			element = &en
			td.IsIterableType = true
		}
	}
	if element != nil {
		td.ElementType = element
		td.ElementTypeText = element.Display(pkg)
	}
	return td
}

func (c *Converter) isEnum(name string) bool {
	model, err := c.provider.Lookup(name)
	return err == nil && model.Kind == java.ClassKindEnum
}

// iterableElement reports whether t is a java.lang.Iterable and, if so, its
// element type. The supertypes of t are walked with their type arguments
// substituted; an element that cannot be recovered falls back to Object.
func (c *Converter) iterableElement(t java.TypeModel, visited map[string]struct{}) (java.TypeModel, bool) {
	if t.IsArray() || t.IsPrimitive() {
		return java.TypeModel{}, false
	}
	if t.Name == java.IterableClass {
		if len(t.TypeArguments) != 1 {
			return objectType, true
		}
		return argumentType(t.TypeArguments[0]), true
	}
	if _, seen := visited[t.Name]; seen {
		return java.TypeModel{}, false
	}
	visited[t.Name] = struct{}{}

	model, err := c.provider.Lookup(t.Name)
	if err != nil {
		log.Debug("cannot inspect type for iterability", "type", t.Name, "error", err)
		return java.TypeModel{}, false
	}
	b := bindings(nil).bind(model, t)
	for _, super := range model.Supertypes() {
		if e, ok := c.iterableElement(b.substitute(super), visited); ok {
			return e, true
		}
	}
	return java.TypeModel{}, false
}

// typeName resolves a class or primitive type to its description name. An
// unresolved type variable names Object.
func (c *Converter) typeName(t java.TypeModel, owner *java.ClassModel) description.TypeName {
	t = eraseVariables(t)
	if java.IsPrimitiveName(t.Name) {
		name := description.PrimitiveType(t.Name)
		name.ArrayDepth = t.ArrayDepth
		return name
	}
	pkg, _ := java.SplitClassName(t.Name)
	return description.TypeName{
		Package:    pkg,
		Nesting:    c.nestedNames(t.Name, owner),
		ArrayDepth: t.ArrayDepth,
	}
}

// nestedNames looks for nesting information in the referencing class's
// InnerClasses table, then in the referenced class itself, and finally
// splits the binary name.
func (c *Converter) nestedNames(binaryName string, owner *java.ClassModel) []string {
	if owner != nil {
		if owner.Name == binaryName {
			return owner.NestedNames()
		}
		if names, ok := java.NestedNames(binaryName, owner.InnerClasses); ok {
			return names
		}
	}
	if model, err := c.provider.Lookup(binaryName); err == nil {
		return model.NestedNames()
	}
	names, _ := java.NestedNames(binaryName, nil)
	return names
}
