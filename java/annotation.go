package java

import "github.com/dhamidi/assertgen/classfile"

// EnumValue is the decoded form of an enum constant annotation element.
type EnumValue struct {
	Type  string
	Value string
}

// ClassValue is a class literal annotation element, e.g. "java.lang.String".
type ClassValue string

func annotationsFromAttributes(attrs classfile.Attributes, cp classfile.ConstantPool) []AnnotationModel {
	var result []AnnotationModel
	for _, group := range attrs.Annotations() {
		for _, a := range group.Annotations {
			ann := annotationModel(a, cp)
			ann.Visible = group.Visible
			result = append(result, ann)
		}
	}
	return result
}

func annotationModel(a classfile.Annotation, cp classfile.ConstantPool) AnnotationModel {
	model := AnnotationModel{Type: descriptorToTypeName(cp.GetUtf8(a.TypeIndex))}
	if len(a.ElementValuePairs) > 0 {
		model.Values = make(map[string]interface{}, len(a.ElementValuePairs))
		for _, p := range a.ElementValuePairs {
			model.Values[cp.GetUtf8(p.ElementNameIndex)] = elementValueToGo(p.Value, cp)
		}
	}
	return model
}

func elementValueToGo(ev classfile.ElementValue, cp classfile.ConstantPool) interface{} {
	idx, _ := ev.Value.(uint16)
	switch ev.Tag {
	case 'B', 'C', 'I', 'S':
		if val, ok := cp.GetInteger(idx); ok {
			return val
		}
	case 'Z':
		if val, ok := cp.GetInteger(idx); ok {
			return val != 0
		}
	case 'D':
		if val, ok := cp.GetDouble(idx); ok {
			return val
		}
	case 'F':
		if val, ok := cp.GetFloat(idx); ok {
			return val
		}
	case 'J':
		if val, ok := cp.GetLong(idx); ok {
			return val
		}
	case 's':
		return cp.GetUtf8(idx)
	case 'c':
		return ClassValue(descriptorToTypeName(cp.GetUtf8(idx)))
	case 'e':
		if ecv, ok := ev.Value.(classfile.EnumConstValue); ok {
			return EnumValue{
				Type:  descriptorToTypeName(cp.GetUtf8(ecv.TypeNameIndex)),
				Value: cp.GetUtf8(ecv.ConstNameIndex),
			}
		}
	case '@':
		if ann, ok := ev.Value.(classfile.Annotation); ok {
			return annotationModel(ann, cp)
		}
	case '[':
		if arr, ok := ev.Value.(classfile.ArrayValue); ok {
			result := make([]interface{}, len(arr.Values))
			for i, v := range arr.Values {
				result[i] = elementValueToGo(v, cp)
			}
			return result
		}
	}
	return nil
}

// descriptorToTypeName turns "Lcom/acme/Skip;" into "com.acme.Skip" and
// leaves base type descriptors alone.
func descriptorToTypeName(desc string) string {
	if ft := classfile.ParseFieldDescriptor(desc); ft != nil {
		return ft.String()
	}
	return desc
}

// HasAnnotation reports whether any annotation's type is in names.
func HasAnnotation(anns []AnnotationModel, names map[string]struct{}) bool {
	for _, a := range anns {
		if _, ok := names[a.Type]; ok {
			return true
		}
	}
	return false
}
