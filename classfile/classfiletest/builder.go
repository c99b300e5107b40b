// Package classfiletest writes minimal class files for tests. It emits only
// what the parser reads: the constant pool, access flags, members and the
// attributes the model is built from. Method bodies are never written.
package classfiletest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dhamidi/assertgen/classfile"
)

type Annotation struct {
	// Type is the annotation's internal name, e.g. "com/acme/Skip".
	Type      string
	Invisible bool
	// Values are the element-value pairs in order. A value is a string,
	// int32, bool, Enum, Class or a []any of those.
	Values []Element
}

type Element struct {
	Name  string
	Value any
}

// Enum is an enum constant element value; Type is a field descriptor.
type Enum struct {
	Type string
	Name string
}

// ClassLiteral is a class literal element value, given as a return descriptor.
type ClassLiteral string

type Member struct {
	Name        string
	Descriptor  string
	Flags       classfile.AccessFlags
	Signature   string
	Exceptions  []string
	Annotations []Annotation
	Deprecated  bool
}

type InnerClass struct {
	Inner string
	Outer string
	Name  string
	Flags classfile.AccessFlags
}

// Class accumulates the pieces of one class file. Names are internal
// (slash separated).
type Class struct {
	Name         string
	Super        string
	Interfaces   []string
	Flags        classfile.AccessFlags
	Signature    string
	SourceFile   string
	Annotations  []Annotation
	Fields       []Member
	Methods      []Member
	InnerClasses []InnerClass
	// EnclosingClass and EnclosingMethod make up the EnclosingMethod attribute.
	EnclosingClass  string
	EnclosingMethod string
	// Longs are added to the constant pool to exercise two-slot entries.
	Longs []int64
}

// New starts a public class extending java/lang/Object.
func New(name string) *Class {
	return &Class{
		Name:  name,
		Super: "java/lang/Object",
		Flags: classfile.AccPublic | classfile.AccSuper,
	}
}

func (c *Class) Getter(name, descriptor string) *Class {
	c.Methods = append(c.Methods, Member{Name: name, Descriptor: descriptor, Flags: classfile.AccPublic})
	return c
}

func (c *Class) Method(m Member) *Class {
	c.Methods = append(c.Methods, m)
	return c
}

func (c *Class) Field(f Member) *Class {
	c.Fields = append(c.Fields, f)
	return c
}

func (c *Class) PublicField(name, descriptor string) *Class {
	return c.Field(Member{Name: name, Descriptor: descriptor, Flags: classfile.AccPublic})
}

// Bytes encodes the class. Field and method attribute tables are written in
// the order Signature, Exceptions, annotations, Deprecated.
func (c *Class) Bytes() []byte {
	pool := newPool()
	for _, v := range c.Longs {
		pool.long(v)
	}

	var body bytes.Buffer
	w := &writer{buf: &body}
	w.u2(uint16(c.Flags))
	w.u2(pool.class(c.Name))
	if c.Super == "" {
		w.u2(0)
	} else {
		w.u2(pool.class(c.Super))
	}
	w.u2(uint16(len(c.Interfaces)))
	for _, iface := range c.Interfaces {
		w.u2(pool.class(iface))
	}
	for _, members := range [][]Member{c.Fields, c.Methods} {
		w.u2(uint16(len(members)))
		for _, m := range members {
			w.u2(uint16(m.Flags))
			w.u2(pool.utf8(m.Name))
			w.u2(pool.utf8(m.Descriptor))
			w.attributes(pool, memberAttributes(pool, m))
		}
	}
	w.attributes(pool, c.classAttributes(pool))

	var out bytes.Buffer
	head := &writer{buf: &out}
	head.u4(classfile.Magic)
	head.u2(0)
	head.u2(61)
	head.u2(uint16(pool.count))
	out.Write(pool.buf.Bytes())
	out.Write(body.Bytes())
	return out.Bytes()
}

type attribute struct {
	name string
	info []byte
}

func (c *Class) classAttributes(pool *pool) []attribute {
	var attrs []attribute
	if c.SourceFile != "" {
		attrs = append(attrs, attribute{classfile.AttrSourceFile, u2s(pool.utf8(c.SourceFile))})
	}
	if c.Signature != "" {
		attrs = append(attrs, attribute{classfile.AttrSignature, u2s(pool.utf8(c.Signature))})
	}
	if len(c.InnerClasses) > 0 {
		vals := []uint16{uint16(len(c.InnerClasses))}
		for _, ic := range c.InnerClasses {
			outer, name := uint16(0), uint16(0)
			if ic.Outer != "" {
				outer = pool.class(ic.Outer)
			}
			if ic.Name != "" {
				name = pool.utf8(ic.Name)
			}
			vals = append(vals, pool.class(ic.Inner), outer, name, uint16(ic.Flags))
		}
		attrs = append(attrs, attribute{classfile.AttrInnerClasses, u2s(vals...)})
	}
	if c.EnclosingClass != "" {
		method := uint16(0)
		if c.EnclosingMethod != "" {
			method = pool.nameAndType(c.EnclosingMethod, "()V")
		}
		attrs = append(attrs, attribute{classfile.AttrEnclosingMethod, u2s(pool.class(c.EnclosingClass), method)})
	}
	return append(attrs, annotationAttributes(pool, c.Annotations)...)
}

func memberAttributes(pool *pool, m Member) []attribute {
	var attrs []attribute
	if m.Signature != "" {
		attrs = append(attrs, attribute{classfile.AttrSignature, u2s(pool.utf8(m.Signature))})
	}
	if len(m.Exceptions) > 0 {
		vals := []uint16{uint16(len(m.Exceptions))}
		for _, ex := range m.Exceptions {
			vals = append(vals, pool.class(ex))
		}
		attrs = append(attrs, attribute{classfile.AttrExceptions, u2s(vals...)})
	}
	attrs = append(attrs, annotationAttributes(pool, m.Annotations)...)
	if m.Deprecated {
		attrs = append(attrs, attribute{classfile.AttrDeprecated, nil})
	}
	return attrs
}

func annotationAttributes(pool *pool, anns []Annotation) []attribute {
	var visible, invisible []Annotation
	for _, a := range anns {
		if a.Invisible {
			invisible = append(invisible, a)
		} else {
			visible = append(visible, a)
		}
	}
	var attrs []attribute
	if len(visible) > 0 {
		attrs = append(attrs, attribute{classfile.AttrRuntimeVisibleAnnotations, annotationsInfo(pool, visible)})
	}
	if len(invisible) > 0 {
		attrs = append(attrs, attribute{classfile.AttrRuntimeInvisibleAnnotations, annotationsInfo(pool, invisible)})
	}
	return attrs
}

func annotationsInfo(pool *pool, anns []Annotation) []byte {
	w := &writer{buf: &bytes.Buffer{}}
	w.u2(uint16(len(anns)))
	for _, a := range anns {
		w.u2(pool.utf8("L" + a.Type + ";"))
		w.u2(uint16(len(a.Values)))
		for _, e := range a.Values {
			w.u2(pool.utf8(e.Name))
			w.elementValue(pool, e.Value)
		}
	}
	return w.buf.Bytes()
}

func (w *writer) elementValue(pool *pool, v any) {
	switch v := v.(type) {
	case string:
		w.u1('s')
		w.u2(pool.utf8(v))
	case int32:
		w.u1('I')
		w.u2(pool.integer(v))
	case bool:
		var i int32
		if v {
			i = 1
		}
		w.u1('Z')
		w.u2(pool.integer(i))
	case Enum:
		w.u1('e')
		w.u2(pool.utf8(v.Type))
		w.u2(pool.utf8(v.Name))
	case ClassLiteral:
		w.u1('c')
		w.u2(pool.utf8(string(v)))
	case []any:
		w.u1('[')
		w.u2(uint16(len(v)))
		for _, item := range v {
			w.elementValue(pool, item)
		}
	default:
		panic(fmt.Sprintf("classfiletest: unsupported element value %T", v))
	}
}

type writer struct {
	buf *bytes.Buffer
}

func (w *writer) u1(v uint8) { w.buf.WriteByte(v) }

func (w *writer) u2(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) u4(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) attributes(pool *pool, attrs []attribute) {
	w.u2(uint16(len(attrs)))
	for _, a := range attrs {
		w.u2(pool.utf8(a.name))
		w.u4(uint32(len(a.info)))
		w.buf.Write(a.info)
	}
}

func u2s(vals ...uint16) []byte {
	b := make([]byte, 0, len(vals)*2)
	for _, v := range vals {
		b = binary.BigEndian.AppendUint16(b, v)
	}
	return b
}

// pool deduplicates Utf8, Class and NameAndType entries. count is the
// constant_pool_count value: one more than the highest index in use.
type pool struct {
	buf     bytes.Buffer
	count   int
	utf8s   map[string]uint16
	classes map[string]uint16
}

func newPool() *pool {
	return &pool{count: 1, utf8s: map[string]uint16{}, classes: map[string]uint16{}}
}

func (p *pool) add(slots int) uint16 {
	idx := uint16(p.count)
	p.count += slots
	return idx
}

func (p *pool) utf8(s string) uint16 {
	if idx, ok := p.utf8s[s]; ok {
		return idx
	}
	w := &writer{buf: &p.buf}
	w.u1(uint8(classfile.ConstantUtf8))
	w.u2(uint16(len(s)))
	p.buf.WriteString(s)
	idx := p.add(1)
	p.utf8s[s] = idx
	return idx
}

func (p *pool) class(name string) uint16 {
	if idx, ok := p.classes[name]; ok {
		return idx
	}
	nameIdx := p.utf8(name)
	w := &writer{buf: &p.buf}
	w.u1(uint8(classfile.ConstantClass))
	w.u2(nameIdx)
	idx := p.add(1)
	p.classes[name] = idx
	return idx
}

func (p *pool) nameAndType(name, descriptor string) uint16 {
	n, d := p.utf8(name), p.utf8(descriptor)
	w := &writer{buf: &p.buf}
	w.u1(uint8(classfile.ConstantNameAndType))
	w.u2(n)
	w.u2(d)
	return p.add(1)
}

func (p *pool) integer(v int32) uint16 {
	w := &writer{buf: &p.buf}
	w.u1(uint8(classfile.ConstantInteger))
	w.u4(uint32(v))
	return p.add(1)
}

func (p *pool) long(v int64) uint16 {
	w := &writer{buf: &p.buf}
	w.u1(uint8(classfile.ConstantLong))
	w.u4(uint32(uint64(v) >> 32))
	w.u4(uint32(uint64(v) & math.MaxUint32))
	return p.add(2)
}
