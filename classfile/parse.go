package classfile

import (
	"encoding/binary"
	"io"
	"math"
	"os"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// ErrMalformed marks every error caused by bytes that are not a valid class file.
var ErrMalformed = errors.New("malformed class file")

type reader struct {
	r   io.Reader
	err error
}

func (r *reader) read(n int) []byte {
	if r.err != nil {
		if n > 8 {
			return nil
		}
		return make([]byte, n)
	}
	if n <= 1<<16 {
		buf := make([]byte, n)
		_, r.err = io.ReadFull(r.r, buf)
		return buf
	}
	// Large lengths come from attribute headers; grow with the data
	// actually present instead of trusting the header.
	buf, err := io.ReadAll(io.LimitReader(r.r, int64(n)))
	if err == nil && len(buf) < n {
		err = io.ErrUnexpectedEOF
	}
	r.err = err
	return buf
}

func (r *reader) readU1() uint8  { return r.read(1)[0] }
func (r *reader) readU2() uint16 { return binary.BigEndian.Uint16(r.read(2)) }
func (r *reader) readU4() uint32 { return binary.BigEndian.Uint32(r.read(4)) }

func (r *reader) check(what string) error {
	if r.err == nil {
		return nil
	}
	return errors.Mark(errors.Wrapf(r.err, "read %s", what), ErrMalformed)
}

func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open class file")
	}
	defer f.Close()
	cf, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return cf, nil
}

func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	magic := r.readU4()
	if err := r.check("magic"); err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, errors.Mark(errors.Newf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic), ErrMalformed)
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}
	count := r.readU2()
	if err := r.check("header"); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.Mark(errors.New("empty constant pool"), ErrMalformed)
	}

	cf.ConstantPool = make(ConstantPool, count-1)
	for i := uint16(1); i < count; i++ {
		entry, wide, err := readConstantPoolEntry(r)
		if err != nil {
			return nil, errors.Wrapf(err, "read constant pool entry %d", i)
		}
		cf.ConstantPool[i-1] = entry
		if wide {
			i++
		}
	}

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()
	cf.Interfaces = make([]uint16, r.readU2())
	for i := range cf.Interfaces {
		cf.Interfaces[i] = r.readU2()
	}
	if err := r.check("class info"); err != nil {
		return nil, err
	}

	cf.Fields = make([]FieldInfo, r.readU2())
	for i := range cf.Fields {
		if err := readMember(r, cf.ConstantPool, &cf.Fields[i].MemberInfo); err != nil {
			return nil, errors.Wrapf(err, "read field %d", i)
		}
	}

	cf.Methods = make([]MethodInfo, r.readU2())
	for i := range cf.Methods {
		if err := readMember(r, cf.ConstantPool, &cf.Methods[i].MemberInfo); err != nil {
			return nil, errors.Wrapf(err, "read method %d", i)
		}
	}

	attrs, err := readAttributes(r, cf.ConstantPool)
	if err != nil {
		return nil, errors.Wrap(err, "read class attributes")
	}
	cf.Attributes = attrs

	if cf.ClassName() == "" {
		return nil, errors.Mark(errors.Newf("this_class %d is not a class entry", cf.ThisClass), ErrMalformed)
	}
	return cf, nil
}

func readConstantPoolEntry(r *reader) (ConstantPoolEntry, bool, error) {
	tag := ConstantTag(r.readU1())
	var entry ConstantPoolEntry
	wide := false

	switch tag {
	case ConstantUtf8:
		entry = &ConstantUtf8Info{Value: decodeModifiedUtf8(r.read(int(r.readU2())))}
	case ConstantInteger:
		entry = &ConstantIntegerInfo{Value: int32(r.readU4())}
	case ConstantFloat:
		entry = &ConstantFloatInfo{Value: math.Float32frombits(r.readU4())}
	case ConstantLong:
		bits := uint64(r.readU4())<<32 | uint64(r.readU4())
		entry, wide = &ConstantLongInfo{Value: int64(bits)}, true
	case ConstantDouble:
		bits := uint64(r.readU4())<<32 | uint64(r.readU4())
		entry, wide = &ConstantDoubleInfo{Value: math.Float64frombits(bits)}, true
	case ConstantClass:
		entry = &ConstantClassInfo{NameIndex: r.readU2()}
	case ConstantString:
		entry = &ConstantStringInfo{StringIndex: r.readU2()}
	case ConstantMethodHandle:
		kind := uint16(r.readU1())
		entry = &ConstantRefInfo{Kind: tag, Operands: []uint16{kind, r.readU2()}}
	case ConstantMethodType, ConstantModule, ConstantPackage:
		entry = &ConstantRefInfo{Kind: tag, Operands: []uint16{r.readU2()}}
	case ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref,
		ConstantNameAndType, ConstantDynamic, ConstantInvokeDynamic:
		entry = &ConstantRefInfo{Kind: tag, Operands: []uint16{r.readU2(), r.readU2()}}
	default:
		if r.err == nil {
			return nil, false, errors.Mark(errors.Newf("unknown constant pool tag: %d", tag), ErrMalformed)
		}
	}
	if err := r.check("constant"); err != nil {
		return nil, false, err
	}
	return entry, wide, nil
}

func readMember(r *reader, cp ConstantPool, m *MemberInfo) error {
	m.AccessFlags = AccessFlags(r.readU2())
	m.NameIndex = r.readU2()
	m.DescriptorIndex = r.readU2()
	attrs, err := readAttributes(r, cp)
	if err != nil {
		return err
	}
	m.Attributes = attrs
	return nil
}

func readAttributes(r *reader, cp ConstantPool) (Attributes, error) {
	n := r.readU2()
	if err := r.check("attributes count"); err != nil {
		return nil, err
	}
	attrs := make(Attributes, n)
	for i := range attrs {
		nameIndex := r.readU2()
		info := r.read(int(r.readU4()))
		if err := r.check("attribute"); err != nil {
			return nil, errors.Wrapf(err, "attribute %d", i)
		}
		name := cp.GetUtf8(nameIndex)
		attrs[i] = AttributeInfo{
			NameIndex: nameIndex,
			Name:      name,
			Info:      info,
			Parsed:    parseAttribute(name, info),
		}
	}
	return attrs, nil
}

// decodeModifiedUtf8 decodes the JVM's modified UTF-8: NUL is encoded in two
// bytes and supplementary characters as a pair of three-byte surrogates.
func decodeModifiedUtf8(b []byte) string {
	runes := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			runes = append(runes, rune(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			runes = append(runes, rune(c&0x1F)<<6|rune(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			r := rune(c&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(b) && b[i+3] == 0xED {
				low := rune(b[i+3]&0x0F)<<12 | rune(b[i+4]&0x3F)<<6 | rune(b[i+5]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+(r-0xD800)<<10+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		default:
			runes = append(runes, utf8.RuneError)
			i++
		}
	}
	return string(runes)
}
