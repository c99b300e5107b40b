package classfile

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Value string
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

type ConstantFloatInfo struct {
	Value float32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

type ConstantDoubleInfo struct {
	Value float64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

type ConstantStringInfo struct {
	StringIndex uint16
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

// ConstantRefInfo holds the entries that only point at other entries
// (member references, handles, dynamic call sites, modules, packages).
// Describing a class never follows them, so their operands stay untyped.
type ConstantRefInfo struct {
	Kind     ConstantTag
	Operands []uint16
}

func (c *ConstantRefInfo) Tag() ConstantTag { return c.Kind }

// ConstantPool is indexed from 1 as in the class file; slot 0 of the slice
// holds entry 1. The second slot of a long or double is nil.
type ConstantPool []ConstantPoolEntry

func entryAt[T ConstantPoolEntry](cp ConstantPool, index uint16) (T, bool) {
	var zero T
	if index == 0 || int(index) > len(cp) {
		return zero, false
	}
	entry, ok := cp[index-1].(T)
	return entry, ok
}

func (cp ConstantPool) GetUtf8(index uint16) string {
	if entry, ok := entryAt[*ConstantUtf8Info](cp, index); ok {
		return entry.Value
	}
	return ""
}

// GetClassName returns the internal name (slash separated) of a Class entry.
func (cp ConstantPool) GetClassName(index uint16) string {
	if entry, ok := entryAt[*ConstantClassInfo](cp, index); ok {
		return cp.GetUtf8(entry.NameIndex)
	}
	return ""
}

func (cp ConstantPool) GetString(index uint16) string {
	if entry, ok := entryAt[*ConstantStringInfo](cp, index); ok {
		return cp.GetUtf8(entry.StringIndex)
	}
	return ""
}

func (cp ConstantPool) GetInteger(index uint16) (int32, bool) {
	entry, ok := entryAt[*ConstantIntegerInfo](cp, index)
	if !ok {
		return 0, false
	}
	return entry.Value, true
}

func (cp ConstantPool) GetLong(index uint16) (int64, bool) {
	entry, ok := entryAt[*ConstantLongInfo](cp, index)
	if !ok {
		return 0, false
	}
	return entry.Value, true
}

func (cp ConstantPool) GetFloat(index uint16) (float32, bool) {
	entry, ok := entryAt[*ConstantFloatInfo](cp, index)
	if !ok {
		return 0, false
	}
	return entry.Value, true
}

func (cp ConstantPool) GetDouble(index uint16) (float64, bool) {
	entry, ok := entryAt[*ConstantDoubleInfo](cp, index)
	if !ok {
		return 0, false
	}
	return entry.Value, true
}
