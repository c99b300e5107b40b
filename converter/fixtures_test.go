package converter_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhamidi/assertgen/classfile"
	"github.com/dhamidi/assertgen/classfile/classfiletest"
	"github.com/dhamidi/assertgen/classpath"
	"github.com/dhamidi/assertgen/converter"
	"github.com/dhamidi/assertgen/java"
)

const (
	dataPkg = "org/assertj/data"
	nbaPkg  = "org/assertj/data/nba"
	testPkg = "org/assertj/converter"
)

const skipAnnotation = "org/assertj/assertions/generator/annotations/SkipAssertJGeneration"

// load parses every class and serves the models from memory.
func load(t *testing.T, classes ...*classfiletest.Class) classpath.Memory {
	t.Helper()
	mem := make(classpath.Memory, len(classes))
	for _, c := range classes {
		m, err := java.ClassModelFromReader(bytes.NewReader(c.Bytes()))
		require.NoError(t, err, c.Name)
		mem[m.Name] = m
	}
	return mem
}

func newConverter(t *testing.T, classes ...*classfiletest.Class) (*converter.Converter, classpath.Memory) {
	t.Helper()
	mem := load(t, classes...)
	return converter.New(mem), mem
}

func iface(name string) *classfiletest.Class {
	c := classfiletest.New(name)
	c.Flags = classfile.AccPublic | classfile.AccInterface | classfile.AccAbstract
	return c
}

func abstractGetter(name, descriptor string) classfiletest.Member {
	return classfiletest.Member{Name: name, Descriptor: descriptor, Flags: classfile.AccPublic | classfile.AccAbstract}
}

func genericGetter(name, descriptor, signature string) classfiletest.Member {
	return classfiletest.Member{Name: name, Descriptor: descriptor, Flags: classfile.AccPublic, Signature: signature}
}

// localClass declares a class local to a method of the test class, the
// way javac emits `class Type { ... }` inside a test method.
func localClass(name string) *classfiletest.Class {
	binary := testPkg + "/ConverterTest$1" + name
	c := classfiletest.New(binary)
	c.Flags = classfile.AccSuper
	c.InnerClasses = []classfiletest.InnerClass{{Inner: binary, Name: name}}
	c.EnclosingClass = testPkg + "/ConverterTest"
	c.EnclosingMethod = "test"
	c.Method(classfiletest.Member{Name: "<init>", Descriptor: "(L" + testPkg + "/ConverterTest;)V"})
	return c
}

func player() *classfiletest.Class {
	c := classfiletest.New(nbaPkg + "/Player")
	c.Field(classfiletest.Member{Name: "name", Descriptor: "Ljava/lang/String;", Flags: classfile.AccPrivate})
	c.Method(classfiletest.Member{Name: "<init>", Descriptor: "()V", Flags: classfile.AccPublic})
	c.Getter("getName", "()Ljava/lang/String;").
		Getter("getTeam", "()Ljava/lang/String;").
		Getter("getPoints", "()I").
		Getter("getAssistsPerGame", "()I").
		Getter("getReboundsPerGame", "()I").
		Getter("getSize", "()I").
		Getter("isRookie", "()Z").
		Getter("getBirthDate", "()Ljava/util/Date;").
		Getter("getWeight", "()D").
		Getter("getHighestScore", "()J")
	c.Method(genericGetter("getPreviousTeams", "()Ljava/util/List;", "()Ljava/util/List<Ljava/lang/String;>;"))

	// Not getters.
	c.Getter("setName", "(Ljava/lang/String;)V").
		Getter("toString", "()Ljava/lang/String;").
		Getter("equals", "(Ljava/lang/Object;)Z").
		Getter("isNotABoolean", "()I").
		Getter("getScoreOf", "(I)I").
		Getter("get", "()I").
		Getter("is", "()Z").
		Getter("getNothing", "()V")
	c.Method(classfiletest.Member{Name: "getInstance", Descriptor: "()L" + nbaPkg + "/Player;",
		Flags: classfile.AccPublic | classfile.AccStatic})
	c.Method(classfiletest.Member{Name: "getSecret", Descriptor: "()Ljava/lang/String;", Flags: classfile.AccPrivate})
	c.Method(classfiletest.Member{Name: "getHidden", Descriptor: "()I", Flags: classfile.AccProtected})
	return c
}

func playerAgent() *classfiletest.Class {
	c := iface(nbaPkg + "/PlayerAgent")
	c.Method(abstractGetter("getManagedPlayer", "()L"+nbaPkg+"/Player;"))
	return c
}

func artWork() *classfiletest.Class {
	c := classfiletest.New(dataPkg + "/ArtWork")
	c.Flags |= classfile.AccAbstract
	c.PublicField("creator", "Ljava/lang/String;")
	c.Getter("getCost", "()J")
	return c
}

func movie() *classfiletest.Class {
	c := classfiletest.New(dataPkg + "/Movie")
	c.Super = dataPkg + "/ArtWork"
	c.PublicField("title", "Ljava/lang/String;")
	c.PublicField("releaseDate", "Ljava/util/Date;")
	c.PublicField("duration", "Lorg/assertj/data/Movie$Duration;")
	c.Field(classfiletest.Member{Name: "xrated", Descriptor: "Z", Flags: classfile.AccPrivate})
	c.Field(classfiletest.Member{Name: "ALL", Descriptor: "Ljava/util/List;", Flags: classfile.AccPublic | classfile.AccStatic})
	c.Getter("getTitle", "()Ljava/lang/String;")
	c.Getter("getReleaseDate", "()Ljava/util/Date;")
	c.InnerClasses = []classfiletest.InnerClass{{
		Inner: dataPkg + "/Movie$Duration", Outer: dataPkg + "/Movie", Name: "Duration",
		Flags: classfile.AccPublic | classfile.AccStatic,
	}}
	return c
}

func team() *classfiletest.Class {
	c := classfiletest.New(dataPkg + "/Team")
	c.PublicField("name", "Ljava/lang/String;")
	c.PublicField("oldNames", "[Ljava/lang/String;")
	c.PublicField("westCoast", "Z")
	c.PublicField("rank", "I")
	c.Field(classfiletest.Member{Name: "players", Descriptor: "Ljava/util/List;", Flags: classfile.AccPublic,
		Signature: "Ljava/util/List<Lorg/assertj/data/nba/Player;>;"})
	c.PublicField("points", "I")
	c.PublicField("victoryRatio", "F")
	c.Field(classfiletest.Member{Name: "division", Descriptor: "Ljava/lang/String;", Flags: classfile.AccPrivate})
	c.Field(classfiletest.Member{Name: "this$0", Descriptor: "Ljava/lang/Object;",
		Flags: classfile.AccPublic | classfile.AccSynthetic})
	c.Getter("getDivision", "()Ljava/lang/String;")
	return c
}

func treeEnum() *classfiletest.Class {
	c := classfiletest.New(dataPkg + "/TreeEnum")
	c.Flags |= classfile.AccEnum | classfile.AccFinal
	c.Super = "java/lang/Enum"
	c.Signature = "Ljava/lang/Enum<Lorg/assertj/data/TreeEnum;>;"
	c.Field(classfiletest.Member{Name: "OAK", Descriptor: "Lorg/assertj/data/TreeEnum;",
		Flags: classfile.AccPublic | classfile.AccStatic | classfile.AccFinal | classfile.AccEnum})
	c.Field(classfiletest.Member{Name: "$VALUES", Descriptor: "[Lorg/assertj/data/TreeEnum;",
		Flags: classfile.AccPrivate | classfile.AccStatic | classfile.AccFinal | classfile.AccSynthetic})
	c.Method(classfiletest.Member{Name: "values", Descriptor: "()[Lorg/assertj/data/TreeEnum;",
		Flags: classfile.AccPublic | classfile.AccStatic})
	c.Getter("getParent", "()Lorg/assertj/data/TreeEnum;")
	return c
}

// enumWithMembers stands in for a JDK java.lang.Enum on the classpath.
func enumWithMembers() *classfiletest.Class {
	c := classfiletest.New("java/lang/Enum")
	c.Flags |= classfile.AccAbstract
	c.Signature = "<E:Ljava/lang/Enum<TE;>;>Ljava/lang/Object;Ljava/lang/Comparable<TE;>;Ljava/io/Serializable;"
	c.Interfaces = []string{"java/lang/Comparable", "java/io/Serializable"}
	c.Method(genericGetter("getDeclaringClass", "()Ljava/lang/Class;", "()Ljava/lang/Class<TE;>;"))
	c.Getter("name", "()Ljava/lang/String;")
	return c
}

func partiallySkipped() *classfiletest.Class {
	skip := []classfiletest.Annotation{{Type: skipAnnotation, Invisible: true}}
	c := classfiletest.New(dataPkg + "/skipped/PartiallySkipped")
	c.Field(classfiletest.Member{Name: "aBoolean", Descriptor: "Z", Flags: classfile.AccPrivate})
	c.Field(classfiletest.Member{Name: "anotherBoolean", Descriptor: "Z", Flags: classfile.AccPrivate})
	c.Field(classfiletest.Member{Name: "aField", Descriptor: "Z", Flags: classfile.AccPublic, Annotations: skip})
	c.PublicField("anotherField", "Z")
	c.Method(classfiletest.Member{Name: "isABoolean", Descriptor: "()Z", Flags: classfile.AccPublic, Annotations: skip})
	c.Getter("isAnotherBoolean", "()Z")
	return c
}
