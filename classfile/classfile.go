package classfile

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   Attributes
}

func (cf *ClassFile) ClassName() string {
	return cf.ConstantPool.GetClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.ConstantPool.GetClassName(cf.SuperClass)
}

func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		names[i] = cf.ConstantPool.GetClassName(idx)
	}
	return names
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool {
	return cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsEnum() bool {
	return cf.AccessFlags.IsEnum()
}

func (cf *ClassFile) IsModule() bool {
	return cf.AccessFlags.IsModule()
}

func (cf *ClassFile) Signature() string {
	return cf.Attributes.Signature(cf.ConstantPool)
}

func (cf *ClassFile) SourceFile() string {
	attr := cf.Attributes.Get(AttrSourceFile)
	if attr == nil {
		return ""
	}
	if sf := attr.AsSourceFile(); sf != nil {
		return cf.ConstantPool.GetUtf8(sf.SourceFileIndex)
	}
	return ""
}

// InnerClass is a resolved row of the InnerClasses attribute. Outer is empty
// for local and anonymous classes; Name is empty for anonymous ones.
type InnerClass struct {
	Inner       string
	Outer       string
	Name        string
	AccessFlags AccessFlags
}

func (cf *ClassFile) InnerClasses() []InnerClass {
	attr := cf.Attributes.Get(AttrInnerClasses)
	if attr == nil {
		return nil
	}
	ic := attr.AsInnerClasses()
	if ic == nil {
		return nil
	}
	cp := cf.ConstantPool
	result := make([]InnerClass, 0, len(ic.Classes))
	for _, e := range ic.Classes {
		result = append(result, InnerClass{
			Inner:       cp.GetClassName(e.InnerClassInfoIndex),
			Outer:       cp.GetClassName(e.OuterClassInfoIndex),
			Name:        cp.GetUtf8(e.InnerNameIndex),
			AccessFlags: e.InnerClassAccessFlags,
		})
	}
	return result
}

// EnclosingClass returns the internal name of the class enclosing a local or
// anonymous class, or "" for any other class.
func (cf *ClassFile) EnclosingClass() string {
	attr := cf.Attributes.Get(AttrEnclosingMethod)
	if attr == nil {
		return ""
	}
	if em := attr.AsEnclosingMethod(); em != nil {
		return cf.ConstantPool.GetClassName(em.ClassIndex)
	}
	return ""
}

func (cf *ClassFile) GetMethod(name, descriptor string) *MethodInfo {
	for i := range cf.Methods {
		if cf.Methods[i].Name(cf.ConstantPool) == name {
			if descriptor == "" || cf.Methods[i].Descriptor(cf.ConstantPool) == descriptor {
				return &cf.Methods[i]
			}
		}
	}
	return nil
}

func (cf *ClassFile) GetField(name string) *FieldInfo {
	for i := range cf.Fields {
		if cf.Fields[i].Name(cf.ConstantPool) == name {
			return &cf.Fields[i]
		}
	}
	return nil
}
