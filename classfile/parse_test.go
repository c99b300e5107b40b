package classfile_test

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/assertgen/classfile"
	"github.com/dhamidi/assertgen/classfile/classfiletest"
)

func parse(t *testing.T, c *classfiletest.Class) *classfile.ClassFile {
	t.Helper()
	cf, err := classfile.Parse(bytes.NewReader(c.Bytes()))
	require.NoError(t, err)
	return cf
}

func TestParseClassStructure(t *testing.T) {
	c := classfiletest.New("com/acme/Player")
	c.Interfaces = []string{"java/io/Serializable", "java/lang/Comparable"}
	c.SourceFile = "Player.java"
	c.PublicField("name", "Ljava/lang/String;")
	c.Getter("getAge", "()I")
	c.Method(classfiletest.Member{Name: "<init>", Descriptor: "()V", Flags: classfile.AccPublic})

	cf := parse(t, c)

	assert.Equal(t, "com/acme/Player", cf.ClassName())
	assert.Equal(t, "java/lang/Object", cf.SuperClassName())
	assert.Equal(t, []string{"java/io/Serializable", "java/lang/Comparable"}, cf.InterfaceNames())
	assert.True(t, cf.AccessFlags.IsPublic())
	assert.False(t, cf.IsInterface())
	assert.Equal(t, "Player.java", cf.SourceFile())

	require.Len(t, cf.Fields, 1)
	assert.Equal(t, "name", cf.Fields[0].Name(cf.ConstantPool))
	assert.Equal(t, "java.lang.String", cf.Fields[0].ParsedDescriptor(cf.ConstantPool).String())

	getAge := cf.GetMethod("getAge", "")
	require.NotNil(t, getAge)
	desc := getAge.ParsedDescriptor(cf.ConstantPool)
	require.NotNil(t, desc)
	assert.Empty(t, desc.Parameters)
	assert.Equal(t, "int", desc.ReturnType.BaseType)

	ctor := cf.GetMethod("<init>", "()V")
	require.NotNil(t, ctor)
	assert.True(t, ctor.IsConstructor(cf.ConstantPool))
	assert.Nil(t, cf.GetMethod("missing", ""))
}

func TestParseObjectHasNoSuperClass(t *testing.T) {
	c := classfiletest.New("java/lang/Object")
	c.Super = ""
	cf := parse(t, c)
	assert.Equal(t, "", cf.SuperClassName())
}

func TestParseWideConstants(t *testing.T) {
	c := classfiletest.New("com/acme/Constants")
	c.Longs = []int64{1<<40 + 5, -7}

	cf := parse(t, c)

	v, ok := cf.ConstantPool.GetLong(1)
	require.True(t, ok)
	assert.Equal(t, int64(1<<40+5), v)
	assert.Nil(t, cf.ConstantPool[1], "second slot of a long is unusable")

	v, ok = cf.ConstantPool.GetLong(3)
	require.True(t, ok)
	assert.Equal(t, int64(-7), v)
	assert.Equal(t, "com/acme/Constants", cf.ClassName())
}

func TestParseMemberAttributes(t *testing.T) {
	c := classfiletest.New("com/acme/Team")
	c.Signature = "<T:Ljava/lang/Object;>Ljava/lang/Object;"
	c.Method(classfiletest.Member{
		Name:       "getPlayers",
		Descriptor: "()Ljava/util/List;",
		Flags:      classfile.AccPublic,
		Signature:  "()Ljava/util/List<TT;>;",
		Exceptions: []string{"java/io/IOException", "java/sql/SQLException"},
		Annotations: []classfiletest.Annotation{
			{Type: "com/acme/Visible"},
			{Type: "com/acme/Hidden", Invisible: true},
		},
		Deprecated: true,
	})

	cf := parse(t, c)
	assert.Equal(t, "<T:Ljava/lang/Object;>Ljava/lang/Object;", cf.Signature())

	m := cf.GetMethod("getPlayers", "()Ljava/util/List;")
	require.NotNil(t, m)
	assert.Equal(t, "()Ljava/util/List<TT;>;", m.Attributes.Signature(cf.ConstantPool))
	assert.Equal(t, []string{"java/io/IOException", "java/sql/SQLException"}, m.ExceptionNames(cf.ConstantPool))
	assert.True(t, m.Attributes.IsDeprecated())

	anns := m.Attributes.Annotations()
	require.Len(t, anns, 2)
	assert.True(t, anns[0].Visible)
	require.Len(t, anns[0].Annotations, 1)
	assert.Equal(t, "Lcom/acme/Visible;", cf.ConstantPool.GetUtf8(anns[0].Annotations[0].TypeIndex))
	assert.False(t, anns[1].Visible)
	assert.Equal(t, "Lcom/acme/Hidden;", cf.ConstantPool.GetUtf8(anns[1].Annotations[0].TypeIndex))
}

func TestParseNestingAttributes(t *testing.T) {
	c := classfiletest.New("com/acme/Outer$1Local")
	c.InnerClasses = []classfiletest.InnerClass{
		{Inner: "com/acme/Outer$1Local", Name: "Local"},
		{Inner: "com/acme/Outer$Member", Outer: "com/acme/Outer", Name: "Member", Flags: classfile.AccPublic | classfile.AccStatic},
	}
	c.EnclosingClass = "com/acme/Outer"
	c.EnclosingMethod = "run"

	cf := parse(t, c)

	assert.Equal(t, []classfile.InnerClass{
		{Inner: "com/acme/Outer$1Local", Name: "Local"},
		{Inner: "com/acme/Outer$Member", Outer: "com/acme/Outer", Name: "Member", AccessFlags: classfile.AccPublic | classfile.AccStatic},
	}, cf.InnerClasses())
	assert.Equal(t, "com/acme/Outer", cf.EnclosingClass())
}

func TestParseRejectsMalformedInput(t *testing.T) {
	valid := classfiletest.New("com/acme/Player").Getter("getName", "()Ljava/lang/String;").Bytes()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", append([]byte{0xCA, 0xFE, 0xD0, 0x0D}, valid[4:]...)},
		{"truncated header", valid[:6]},
		{"truncated body", valid[:len(valid)-3]},
		{"unknown constant tag", append(append([]byte{}, valid[:10]...), 0x63, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := classfile.Parse(bytes.NewReader(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, classfile.ErrMalformed), "got %v", err)
		})
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := classfile.ParseFile("does/not/exist.class")
	require.Error(t, err)
	assert.False(t, errors.Is(err, classfile.ErrMalformed))
}

func TestParseDescriptors(t *testing.T) {
	ft := classfile.ParseFieldDescriptor("[[I")
	require.NotNil(t, ft)
	assert.Equal(t, "int[][]", ft.String())
	assert.True(t, ft.IsArray())
	assert.False(t, ft.IsPrimitive())

	assert.Nil(t, classfile.ParseFieldDescriptor("Ljava/lang/String"))
	assert.Nil(t, classfile.ParseFieldDescriptor("IJ"))

	md := classfile.ParseMethodDescriptor("(ILjava/lang/String;[J)V")
	require.NotNil(t, md)
	assert.Len(t, md.Parameters, 3)
	assert.Nil(t, md.ReturnType)
	assert.Equal(t, "(int, java.lang.String, long[]) void", md.String())

	assert.Nil(t, classfile.ParseMethodDescriptor("(I"))
	assert.Nil(t, classfile.ParseMethodDescriptor("()"))
}
