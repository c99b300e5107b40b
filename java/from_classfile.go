package java

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/assertgen/classfile"
)

var log = commonlog.GetLogger("assertgen.java")

func ClassModelFromFile(path string) (*ClassModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open class file")
	}
	defer f.Close()
	model, err := ClassModelFromReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return model, nil
}

func ClassModelFromReader(r io.Reader) (*ClassModel, error) {
	cf, err := classfile.Parse(r)
	if err != nil {
		return nil, err
	}
	return ClassModelFromClassFile(cf), nil
}

func ClassModelFromClassFile(cf *classfile.ClassFile) *ClassModel {
	cp := cf.ConstantPool
	className := classfile.InternalToSourceName(cf.ClassName())
	pkg, simpleName := SplitClassName(className)

	model := &ClassModel{
		Name:         className,
		SimpleName:   simpleName,
		Package:      pkg,
		MajorVersion: cf.MajorVersion,
		MinorVersion: cf.MinorVersion,
		Visibility:   visibilityFromAccessFlags(cf.AccessFlags),
		Kind:         classKindFromClassFile(cf),
		IsFinal:      cf.AccessFlags.IsFinal(),
		IsAbstract:   cf.AccessFlags.IsAbstract(),
		IsSynthetic:  cf.AccessFlags.IsSynthetic(),
		SourceFile:   cf.SourceFile(),
		IsDeprecated: cf.Attributes.IsDeprecated(),
		Annotations:  annotationsFromAttributes(cf.Attributes, cp),
	}

	if cf.SuperClass != 0 {
		model.SuperClass = classfile.InternalToSourceName(cf.SuperClassName())
	}
	for _, iface := range cf.InterfaceNames() {
		model.Interfaces = append(model.Interfaces, classfile.InternalToSourceName(iface))
	}
	if err := ApplyClassSignature(model, cf.Signature()); err != nil {
		log.Debug("ignoring class signature", "class", className, "error", err)
	}

	applyNesting(model, cf)

	for i := range cf.Fields {
		field := &cf.Fields[i]
		if field.IsSynthetic() {
			continue
		}
		model.Fields = append(model.Fields, fieldModelFromFieldInfo(field, cp))
	}

	for i := range cf.Methods {
		method := &cf.Methods[i]
		// Bridge methods duplicate a covariant override with the erased
		// return type; the real override is kept.
		if method.IsSynthetic() || method.IsBridge() {
			continue
		}
		if method.IsStaticInitializer(cp) {
			continue
		}
		model.Methods = append(model.Methods, methodModelFromMethodInfo(method, model, cp))
	}

	return model
}

// ApplyClassSignature fills the generic header of model from a class
// signature. An empty signature resets the generic view to the raw
// superclass and interfaces. On a malformed signature the raw view is kept
// and the error is returned.
func ApplyClassSignature(model *ClassModel, sig string) error {
	model.Signature = sig
	model.TypeParameters = nil
	model.GenericSuperClass = nil
	model.GenericInterfaces = nil

	if sig == "" {
		rawSupertypes(model)
		return nil
	}
	cs, err := classfile.ParseClassSignature(sig)
	if err != nil {
		rawSupertypes(model)
		return err
	}

	model.TypeParameters = typeParametersFromSignature(cs.TypeParameters)
	if model.SuperClass != "" && cs.SuperClass != nil {
		super := typeModelFromSignature(cs.SuperClass)
		model.GenericSuperClass = &super
	}
	for _, iface := range cs.Interfaces {
		model.GenericInterfaces = append(model.GenericInterfaces, typeModelFromSignature(iface))
	}
	return nil
}

func rawSupertypes(model *ClassModel) {
	if model.SuperClass != "" {
		model.GenericSuperClass = &TypeModel{Name: model.SuperClass}
	}
	model.GenericInterfaces = nil
	for _, iface := range model.Interfaces {
		model.GenericInterfaces = append(model.GenericInterfaces, TypeModel{Name: iface})
	}
}

func applyNesting(model *ClassModel, cf *classfile.ClassFile) {
	self := cf.ClassName()
	for _, ic := range cf.InnerClasses() {
		entry := InnerClassModel{
			InnerClass: classfile.InternalToSourceName(ic.Inner),
			OuterClass: classfile.InternalToSourceName(ic.Outer),
			InnerName:  ic.Name,
			Visibility: visibilityFromAccessFlags(ic.AccessFlags),
			IsStatic:   ic.AccessFlags.IsStatic(),
			IsFinal:    ic.AccessFlags.IsFinal(),
			IsAbstract: ic.AccessFlags.IsAbstract(),
		}
		model.InnerClasses = append(model.InnerClasses, entry)
		if ic.Inner != self {
			continue
		}
		// The class's own row carries its real access flags.
		model.Visibility = entry.Visibility
		model.IsStatic = entry.IsStatic
		model.InnerName = ic.Name
		model.OuterClass = entry.OuterClass
		model.IsAnonymous = ic.Name == ""
		model.IsLocal = ic.Name != "" && ic.Outer == ""
	}
	if model.OuterClass == "" {
		model.OuterClass = classfile.InternalToSourceName(cf.EnclosingClass())
	}
}

func visibilityFromAccessFlags(flags classfile.AccessFlags) Visibility {
	switch {
	case flags.IsPublic():
		return VisibilityPublic
	case flags.IsProtected():
		return VisibilityProtected
	case flags.IsPrivate():
		return VisibilityPrivate
	}
	return VisibilityPackage
}

func classKindFromClassFile(cf *classfile.ClassFile) ClassKind {
	switch {
	case cf.IsModule():
		return ClassKindModule
	case cf.IsAnnotation():
		return ClassKindAnnotation
	case cf.IsEnum():
		return ClassKindEnum
	case cf.IsInterface():
		return ClassKindInterface
	case cf.SuperClassName() == "java/lang/Record":
		return ClassKindRecord
	}
	return ClassKindClass
}

func fieldModelFromFieldInfo(f *classfile.FieldInfo, cp classfile.ConstantPool) FieldModel {
	model := FieldModel{
		Name:         f.Name(cp),
		Type:         typeModelFromFieldType(f.ParsedDescriptor(cp)),
		Visibility:   visibilityFromAccessFlags(f.AccessFlags),
		IsStatic:     f.IsStatic(),
		IsFinal:      f.AccessFlags.IsFinal(),
		IsSynthetic:  f.IsSynthetic(),
		IsEnum:       f.AccessFlags.IsEnum(),
		Signature:    f.Attributes.Signature(cp),
		IsDeprecated: f.Attributes.IsDeprecated(),
		Annotations:  annotationsFromAttributes(f.Attributes, cp),
	}
	if model.Signature != "" {
		ts, err := classfile.ParseFieldSignature(model.Signature)
		if err != nil {
			log.Debug("ignoring field signature", "field", model.Name, "error", err)
		} else {
			model.Type = typeModelFromSignature(ts)
		}
	}
	return model
}

func methodModelFromMethodInfo(m *classfile.MethodInfo, owner *ClassModel, cp classfile.ConstantPool) MethodModel {
	model := MethodModel{
		Name:         m.Name(cp),
		Descriptor:   m.Descriptor(cp),
		ReturnType:   TypeModel{Name: "void"},
		Visibility:   visibilityFromAccessFlags(m.AccessFlags),
		IsStatic:     m.IsStatic(),
		IsFinal:      m.AccessFlags.IsFinal(),
		IsAbstract:   m.AccessFlags.IsAbstract(),
		IsBridge:     m.IsBridge(),
		IsVarargs:    m.AccessFlags.IsVarargs(),
		IsSynthetic:  m.IsSynthetic(),
		Signature:    m.Attributes.Signature(cp),
		IsDeprecated: m.Attributes.IsDeprecated(),
		Annotations:  annotationsFromAttributes(m.Attributes, cp),
	}
	model.IsDefault = owner.IsInterface() && !model.IsAbstract && !model.IsStatic

	if desc := m.ParsedDescriptor(cp); desc != nil {
		if desc.ReturnType != nil {
			model.ReturnType = typeModelFromFieldType(desc.ReturnType)
		}
		for i := range desc.Parameters {
			model.Parameters = append(model.Parameters, ParameterModel{Type: typeModelFromFieldType(&desc.Parameters[i])})
		}
	}
	for _, ex := range m.ExceptionNames(cp) {
		model.Exceptions = append(model.Exceptions, TypeModel{Name: classfile.InternalToSourceName(ex)})
	}

	if model.Signature == "" {
		return model
	}
	ms, err := classfile.ParseMethodSignature(model.Signature)
	if err != nil {
		log.Debug("ignoring method signature", "method", model.Name, "error", err)
		return model
	}
	model.TypeParameters = typeParametersFromSignature(ms.TypeParameters)
	if ms.ReturnType != nil {
		model.ReturnType = typeModelFromSignature(ms.ReturnType)
	}
	// Signatures may omit synthetic parameters (outer instance, enum
	// name/ordinal); only trust them when the counts agree.
	if len(ms.Parameters) == len(model.Parameters) {
		for i, p := range ms.Parameters {
			model.Parameters[i].Type = typeModelFromSignature(p)
		}
	}
	if len(ms.Throws) > 0 {
		model.Exceptions = model.Exceptions[:0]
		for _, ex := range ms.Throws {
			model.Exceptions = append(model.Exceptions, typeModelFromSignature(ex))
		}
	}
	return model
}

func typeModelFromFieldType(ft *classfile.FieldType) TypeModel {
	if ft == nil {
		return TypeModel{Name: "void"}
	}
	model := TypeModel{ArrayDepth: ft.ArrayDepth}
	if ft.BaseType != "" {
		model.Name = ft.BaseType
	} else {
		model.Name = classfile.InternalToSourceName(ft.ClassName)
	}
	return model
}

func typeModelFromSignature(ts *classfile.TypeSignature) TypeModel {
	model := TypeModel{ArrayDepth: ts.ArrayDepth}
	switch {
	case ts.BaseType != "":
		model.Name = ts.BaseType
	case ts.TypeVariable != "":
		model.Name = ts.TypeVariable
		model.IsTypeVariable = true
	default:
		model.Name = classfile.InternalToSourceName(ts.ClassName)
	}
	for _, arg := range ts.TypeArguments {
		model.TypeArguments = append(model.TypeArguments, typeArgumentFromSignature(arg))
	}
	return model
}

func typeArgumentFromSignature(arg classfile.TypeArgument) TypeArgumentModel {
	switch arg.Wildcard {
	case classfile.WildcardAny:
		return TypeArgumentModel{IsWildcard: true}
	case classfile.WildcardExtends, classfile.WildcardSuper:
		bound := typeModelFromSignature(arg.Type)
		kind := "extends"
		if arg.Wildcard == classfile.WildcardSuper {
			kind = "super"
		}
		return TypeArgumentModel{IsWildcard: true, BoundKind: kind, Bound: &bound}
	}
	t := typeModelFromSignature(arg.Type)
	return TypeArgumentModel{Type: &t}
}

func typeParametersFromSignature(params []classfile.TypeParameter) []TypeParameterModel {
	var result []TypeParameterModel
	for _, p := range params {
		tp := TypeParameterModel{Name: p.Name}
		for _, b := range p.Bounds {
			tp.Bounds = append(tp.Bounds, typeModelFromSignature(b))
		}
		result = append(result, tp)
	}
	return result
}
