package format

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/dhamidi/assertgen/description"
	"github.com/dhamidi/assertgen/java"
)

// LineEncoder writes a description as tab separated lines: one class line,
// then one line per getter and per field. Empty columns read "-".
type LineEncoder struct {
	w    io.Writer
	desc *description.ClassDescription
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(desc *description.ClassDescription) error {
	e.desc = desc
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	d := e.desc

	super := "-"
	if d.SuperType != nil {
		super = d.SuperType.FullyQualifiedName()
	}
	fmt.Fprintf(&sb, "class\t%s\t%s\t%s\n", d.FullyQualifiedName(), d.ClassNameWithOuterClassNotSeparatedByDots, super)

	declaredGetters := make(map[string]bool, len(d.DeclaredGetters))
	for _, g := range d.DeclaredGetters {
		declaredGetters[g.PropertyName] = true
	}
	for _, g := range d.Getters {
		fmt.Fprintf(&sb, "getter\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			g.PropertyName,
			g.TypeName,
			g.OriginalMember,
			typeKind(g.TypeDescription),
			orDash(g.ElementTypeText),
			orDash(strings.Join(g.ExceptionNames(d.PackageName), ",")),
			origin(declaredGetters[g.PropertyName]),
		)
	}

	declaredFields := make(map[string]bool, len(d.DeclaredFields))
	for _, f := range d.DeclaredFields {
		declaredFields[f.Name] = true
	}
	for _, f := range d.Fields {
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\t%s\t%s\n",
			f.Name,
			f.TypeName,
			typeKind(f.TypeDescription),
			orDash(f.ElementTypeText),
			origin(declaredFields[f.Name]),
		)
	}

	return []byte(sb.String()), nil
}

func typeKind(t description.TypeDescription) string {
	switch {
	case t.IsIterableType:
		return "iterable"
	case t.IsArrayType:
		return "array"
	}
	return "-"
}

func origin(declared bool) string {
	if declared {
		return "declared"
	}
	return "inherited"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// LineModelEncoder dumps a raw class model, one line per member. Each
// annotation gets its own line after the class or member it is on.
type LineModelEncoder struct {
	w     io.Writer
	model *java.ClassModel
}

func NewLineModelEncoder(w io.Writer) *LineModelEncoder {
	return &LineModelEncoder{w: w}
}

func (e *LineModelEncoder) Encode(model *java.ClassModel) error {
	e.model = model
	return write(e.w, e)
}

func (e *LineModelEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	m := e.model

	mods := append([]string{string(m.Visibility)}, classModifiers(m)...)
	fmt.Fprintf(&sb, "%s\t%s\t%s\n", m.Kind, m.Name, strings.Join(mods, ","))
	writeAnnotations(&sb, m.Annotations)

	for _, st := range m.Supertypes() {
		fmt.Fprintf(&sb, "extends\t%s\n", st.String())
	}

	for _, f := range m.Fields {
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\t%s\n",
			f.Name,
			f.Type.String(),
			f.Visibility,
			joinOrDash(fieldModifiers(f)),
		)
		writeAnnotations(&sb, f.Annotations)
	}

	for _, method := range m.Methods {
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\t%s\t%s\t%s\n",
			method.Name,
			method.ReturnType.String(),
			parametersStr(method.Parameters),
			method.Visibility,
			joinOrDash(methodModifiers(method)),
			exceptionsStr(method.Exceptions),
		)
		writeAnnotations(&sb, method.Annotations)
	}

	return []byte(sb.String()), nil
}

func writeAnnotations(sb *strings.Builder, anns []java.AnnotationModel) {
	for _, a := range anns {
		fmt.Fprintf(sb, "annotation\t%s\n", annotationStr(a))
	}
}

func classModifiers(m *java.ClassModel) []string {
	var mods []string
	if m.IsStatic {
		mods = append(mods, "static")
	}
	if m.IsFinal {
		mods = append(mods, "final")
	}
	if m.IsAbstract {
		mods = append(mods, "abstract")
	}
	if m.IsSynthetic {
		mods = append(mods, "synthetic")
	}
	if m.IsDeprecated {
		mods = append(mods, "deprecated")
	}
	if m.IsAnonymous {
		mods = append(mods, "anonymous")
	}
	if m.IsLocal {
		mods = append(mods, "local")
	}
	return mods
}

func fieldModifiers(f java.FieldModel) []string {
	var mods []string
	if f.IsStatic {
		mods = append(mods, "static")
	}
	if f.IsFinal {
		mods = append(mods, "final")
	}
	if f.IsSynthetic {
		mods = append(mods, "synthetic")
	}
	if f.IsEnum {
		mods = append(mods, "enum")
	}
	if f.IsDeprecated {
		mods = append(mods, "deprecated")
	}
	return mods
}

func methodModifiers(m java.MethodModel) []string {
	var mods []string
	if m.IsStatic {
		mods = append(mods, "static")
	}
	if m.IsFinal {
		mods = append(mods, "final")
	}
	if m.IsAbstract {
		mods = append(mods, "abstract")
	}
	if m.IsBridge {
		mods = append(mods, "bridge")
	}
	if m.IsVarargs {
		mods = append(mods, "varargs")
	}
	if m.IsSynthetic {
		mods = append(mods, "synthetic")
	}
	if m.IsDefault {
		mods = append(mods, "default")
	}
	if m.IsDeprecated {
		mods = append(mods, "deprecated")
	}
	return mods
}

func joinOrDash(parts []string) string {
	return orDash(strings.Join(parts, ","))
}

func parametersStr(params []java.ParameterModel) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type.String()
	}
	return joinOrDash(parts)
}

func exceptionsStr(exceptions []java.TypeModel) string {
	parts := make([]string, len(exceptions))
	for i, ex := range exceptions {
		parts[i] = ex.String()
	}
	return joinOrDash(parts)
}

func annotationStrs(anns []java.AnnotationModel) []string {
	var strs []string
	for _, a := range anns {
		strs = append(strs, annotationStr(a))
	}
	return strs
}

// annotationStr renders an annotation as it would be written in source,
// elements sorted by name.
func annotationStr(a java.AnnotationModel) string {
	if len(a.Values) == 0 {
		return "@" + a.Type
	}
	names := slices.Sorted(maps.Keys(a.Values))
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + elementStr(a.Values[name])
	}
	return "@" + a.Type + "(" + strings.Join(parts, ", ") + ")"
}

func elementStr(v interface{}) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case java.ClassValue:
		return string(v) + ".class"
	case java.EnumValue:
		return v.Type + "." + v.Value
	case java.AnnotationModel:
		return annotationStr(v)
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = elementStr(item)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprint(v)
}

func typeParameterStr(tp java.TypeParameterModel) string {
	if len(tp.Bounds) == 0 {
		return tp.Name
	}
	bounds := make([]string, len(tp.Bounds))
	for i, b := range tp.Bounds {
		bounds[i] = b.String()
	}
	return tp.Name + " extends " + strings.Join(bounds, " & ")
}
