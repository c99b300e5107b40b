package classfile

// MemberInfo is the shared layout of field_info and method_info.
type MemberInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      Attributes
}

func (m *MemberInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(m.NameIndex)
}

func (m *MemberInfo) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(m.DescriptorIndex)
}

func (m *MemberInfo) IsPublic() bool    { return m.AccessFlags.IsPublic() }
func (m *MemberInfo) IsStatic() bool    { return m.AccessFlags.IsStatic() }
func (m *MemberInfo) IsSynthetic() bool { return m.AccessFlags.IsSynthetic() }

type FieldInfo struct {
	MemberInfo
}

func (f *FieldInfo) ParsedDescriptor(cp ConstantPool) *FieldType {
	return ParseFieldDescriptor(f.Descriptor(cp))
}

type MethodInfo struct {
	MemberInfo
}

func (m *MethodInfo) IsBridge() bool { return m.AccessFlags.IsBridge() }

func (m *MethodInfo) IsConstructor(cp ConstantPool) bool {
	return m.Name(cp) == "<init>"
}

func (m *MethodInfo) IsStaticInitializer(cp ConstantPool) bool {
	return m.Name(cp) == "<clinit>"
}

func (m *MethodInfo) ParsedDescriptor(cp ConstantPool) *MethodDescriptor {
	return ParseMethodDescriptor(m.Descriptor(cp))
}

// ExceptionNames returns the internal names listed in the Exceptions
// attribute, in declaration order.
func (m *MethodInfo) ExceptionNames(cp ConstantPool) []string {
	attr := m.Attributes.Get(AttrExceptions)
	if attr == nil {
		return nil
	}
	ex := attr.AsExceptions()
	if ex == nil {
		return nil
	}
	names := make([]string, 0, len(ex.ExceptionIndexTable))
	for _, idx := range ex.ExceptionIndexTable {
		names = append(names, cp.GetClassName(idx))
	}
	return names
}
