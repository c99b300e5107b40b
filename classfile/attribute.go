package classfile

import "encoding/binary"

type AttributeInfo struct {
	NameIndex uint16
	Name      string
	Info      []byte
	Parsed    interface{}
}

type SourceFileAttribute struct {
	SourceFileIndex uint16
}

type SignatureAttribute struct {
	SignatureIndex uint16
}

type ExceptionsAttribute struct {
	ExceptionIndexTable []uint16
}

type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

type EnclosingMethodAttribute struct {
	ClassIndex  uint16
	MethodIndex uint16
}

type DeprecatedAttribute struct{}

type AnnotationsAttribute struct {
	Visible     bool
	Annotations []Annotation
}

type Annotation struct {
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

type ElementValuePair struct {
	ElementNameIndex uint16
	Value            ElementValue
}

type ElementValue struct {
	Tag   byte
	Value interface{}
}

type EnumConstValue struct {
	TypeNameIndex  uint16
	ConstNameIndex uint16
}

type ArrayValue struct {
	Values []ElementValue
}

func (a *AttributeInfo) AsSourceFile() *SourceFileAttribute {
	v, _ := a.Parsed.(*SourceFileAttribute)
	return v
}

func (a *AttributeInfo) AsSignature() *SignatureAttribute {
	v, _ := a.Parsed.(*SignatureAttribute)
	return v
}

func (a *AttributeInfo) AsExceptions() *ExceptionsAttribute {
	v, _ := a.Parsed.(*ExceptionsAttribute)
	return v
}

func (a *AttributeInfo) AsInnerClasses() *InnerClassesAttribute {
	v, _ := a.Parsed.(*InnerClassesAttribute)
	return v
}

func (a *AttributeInfo) AsEnclosingMethod() *EnclosingMethodAttribute {
	v, _ := a.Parsed.(*EnclosingMethodAttribute)
	return v
}

func (a *AttributeInfo) AsAnnotations() *AnnotationsAttribute {
	v, _ := a.Parsed.(*AnnotationsAttribute)
	return v
}

// Attributes is the attribute table of a class, field or method.
type Attributes []AttributeInfo

func (as Attributes) Get(name string) *AttributeInfo {
	for i := range as {
		if as[i].Name == name {
			return &as[i]
		}
	}
	return nil
}

// Signature returns the generic signature string, or "" when the member
// carries none.
func (as Attributes) Signature(cp ConstantPool) string {
	attr := as.Get(AttrSignature)
	if attr == nil {
		return ""
	}
	if sig := attr.AsSignature(); sig != nil {
		return cp.GetUtf8(sig.SignatureIndex)
	}
	return ""
}

func (as Attributes) IsDeprecated() bool {
	return as.Get(AttrDeprecated) != nil
}

// Annotations returns runtime-visible annotations followed by
// runtime-invisible ones.
func (as Attributes) Annotations() []AnnotationsAttribute {
	var result []AnnotationsAttribute
	for _, name := range []string{AttrRuntimeVisibleAnnotations, AttrRuntimeInvisibleAnnotations} {
		if attr := as.Get(name); attr != nil {
			if anns := attr.AsAnnotations(); anns != nil {
				result = append(result, *anns)
			}
		}
	}
	return result
}

func parseAttribute(name string, info []byte) interface{} {
	c := &cursor{b: info}
	var parsed interface{}
	switch name {
	case AttrSourceFile:
		parsed = &SourceFileAttribute{SourceFileIndex: c.u2()}
	case AttrSignature:
		parsed = &SignatureAttribute{SignatureIndex: c.u2()}
	case AttrExceptions:
		ex := &ExceptionsAttribute{ExceptionIndexTable: make([]uint16, c.count(2))}
		for i := range ex.ExceptionIndexTable {
			ex.ExceptionIndexTable[i] = c.u2()
		}
		parsed = ex
	case AttrInnerClasses:
		ic := &InnerClassesAttribute{Classes: make([]InnerClassEntry, c.count(8))}
		for i := range ic.Classes {
			ic.Classes[i] = InnerClassEntry{
				InnerClassInfoIndex:   c.u2(),
				OuterClassInfoIndex:   c.u2(),
				InnerNameIndex:        c.u2(),
				InnerClassAccessFlags: AccessFlags(c.u2()),
			}
		}
		parsed = ic
	case AttrEnclosingMethod:
		parsed = &EnclosingMethodAttribute{ClassIndex: c.u2(), MethodIndex: c.u2()}
	case AttrDeprecated:
		return &DeprecatedAttribute{}
	case AttrRuntimeVisibleAnnotations, AttrRuntimeInvisibleAnnotations:
		anns := &AnnotationsAttribute{Visible: name == AttrRuntimeVisibleAnnotations}
		n := c.count(4)
		for i := 0; i < n && !c.short; i++ {
			anns.Annotations = append(anns.Annotations, c.annotation())
		}
		parsed = anns
	default:
		return nil
	}
	if c.short {
		return nil
	}
	return parsed
}

// cursor reads big-endian values from an attribute body. Reading past the
// end sets short and yields zeros, so a truncated attribute is detected once
// after parsing instead of at every read.
type cursor struct {
	b     []byte
	off   int
	short bool
}

func (c *cursor) take(n int) []byte {
	if c.short || c.off+n > len(c.b) {
		c.short = true
		return nil
	}
	p := c.b[c.off : c.off+n]
	c.off += n
	return p
}

func (c *cursor) u1() uint8 {
	if p := c.take(1); p != nil {
		return p[0]
	}
	return 0
}

func (c *cursor) u2() uint16 {
	if p := c.take(2); p != nil {
		return binary.BigEndian.Uint16(p)
	}
	return 0
}

// count reads a u2 length prefix and checks that at least n*minSize bytes
// remain, which keeps corrupt counts from allocating huge tables.
func (c *cursor) count(minSize int) int {
	n := int(c.u2())
	if c.short || len(c.b)-c.off < n*minSize {
		c.short = true
		return 0
	}
	return n
}

func (c *cursor) annotation() Annotation {
	ann := Annotation{TypeIndex: c.u2()}
	n := c.count(3)
	for i := 0; i < n && !c.short; i++ {
		ann.ElementValuePairs = append(ann.ElementValuePairs, ElementValuePair{
			ElementNameIndex: c.u2(),
			Value:            c.elementValue(),
		})
	}
	return ann
}

func (c *cursor) elementValue() ElementValue {
	ev := ElementValue{Tag: c.u1()}
	switch ev.Tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's', 'c':
		ev.Value = c.u2()
	case 'e':
		ev.Value = EnumConstValue{TypeNameIndex: c.u2(), ConstNameIndex: c.u2()}
	case '@':
		ev.Value = c.annotation()
	case '[':
		n := c.count(1)
		values := make([]ElementValue, 0, n)
		for i := 0; i < n && !c.short; i++ {
			values = append(values, c.elementValue())
		}
		ev.Value = ArrayValue{Values: values}
	default:
		c.short = true
	}
	return ev
}
