package converter_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/assertgen/classfile"
	"github.com/dhamidi/assertgen/classfile/classfiletest"
	"github.com/dhamidi/assertgen/classpath"
	"github.com/dhamidi/assertgen/converter"
	"github.com/dhamidi/assertgen/description"
)

func convert(t *testing.T, c *converter.Converter, name string) *description.ClassDescription {
	t.Helper()
	desc, err := c.ConvertName(name)
	require.NoError(t, err)
	return desc
}

func getter(t *testing.T, desc *description.ClassDescription, property string) description.GetterDescription {
	t.Helper()
	g, ok := desc.Getter(property)
	require.True(t, ok, "getter %s not found in %v", property, desc.GetterNames())
	return g
}

func TestConvertPlayer(t *testing.T) {
	c, _ := newConverter(t, player())

	desc := convert(t, c, "org.assertj.data.nba.Player")

	assert.Equal(t, "Player", desc.ClassName)
	assert.Equal(t, "Player", desc.ClassNameWithOuterClass)
	assert.Equal(t, "org.assertj.data.nba", desc.PackageName)
	assert.Nil(t, desc.SuperType)
	assert.Len(t, desc.Getters, 11)
	assert.Equal(t, desc.GetterNames(), desc.DeclaredGetterNames())
	assert.Empty(t, desc.Fields, "private fields are not described")
	assert.NotNil(t, desc.Fields)

	assert.Equal(t, []string{
		"name", "team", "points", "assistsPerGame", "reboundsPerGame", "size",
		"rookie", "birthDate", "weight", "highestScore", "previousTeams",
	}, desc.GetterNames(), "declaration order is kept")

	rookie := getter(t, desc, "rookie")
	assert.True(t, rookie.IsPredicate)
	assert.Equal(t, "isRookie", rookie.OriginalMember)
	assert.Equal(t, "boolean", rookie.TypeName)

	birthDate := getter(t, desc, "birthDate")
	assert.Equal(t, "java.util.Date", birthDate.TypeName)
	assert.False(t, birthDate.IsIterableType)
	assert.NotNil(t, birthDate.Exceptions)
	assert.Empty(t, birthDate.Exceptions)

	name := getter(t, desc, "name")
	assert.Equal(t, "String", name.TypeName, "java.lang is never qualified")

	teams := getter(t, desc, "previousTeams")
	assert.Equal(t, "java.util.List", teams.TypeName)
	assert.True(t, teams.IsIterableType)
	assert.False(t, teams.IsArrayType)
	assert.Equal(t, "String", teams.ElementTypeName(desc.PackageName))
}

func TestConvertMovie(t *testing.T) {
	c, _ := newConverter(t, artWork(), movie())

	desc := convert(t, c, "org.assertj.data.Movie")

	assert.Equal(t, "Movie", desc.ClassName)
	assert.Equal(t, "org.assertj.data", desc.PackageName)
	assert.Len(t, desc.Getters, 3)
	assert.Len(t, desc.Fields, 4)
	assert.Len(t, desc.DeclaredGetters, 2)
	assert.Len(t, desc.DeclaredFields, 3)
	assert.Equal(t, &description.ClassIdentity{
		ClassName: "ArtWork", ClassNameWithOuterClass: "ArtWork", PackageName: "org.assertj.data",
	}, desc.SuperType)

	t.Run("declared members are a subset disjoint from parent-only members", func(t *testing.T) {
		assert.Subset(t, desc.GetterNames(), desc.DeclaredGetterNames())
		assert.Subset(t, desc.FieldNames(), desc.DeclaredFieldNames())
		assert.NotContains(t, desc.DeclaredGetterNames(), "cost")
		assert.NotContains(t, desc.DeclaredFieldNames(), "creator")
		assert.Equal(t, []string{"title", "releaseDate", "cost"}, desc.GetterNames())
	})

	t.Run("public static fields are not described", func(t *testing.T) {
		assert.NotContains(t, desc.FieldNames(), "ALL")
		assert.NotContains(t, desc.FieldNames(), "xrated")
	})

	t.Run("member class field type", func(t *testing.T) {
		f, ok := desc.Field("duration")
		require.True(t, ok)
		assert.Equal(t, "Movie.Duration", f.TypeName)
		assert.Equal(t, "public", f.Visibility)
	})
}

func TestConvertNestedClasses(t *testing.T) {
	outer := dataPkg + "/OuterClass"
	staticNested := classfiletest.New(outer + "$StaticNestedPerson")
	staticNested.InnerClasses = []classfiletest.InnerClass{{
		Inner: outer + "$StaticNestedPerson", Outer: outer, Name: "StaticNestedPerson",
		Flags: classfile.AccPublic | classfile.AccStatic,
	}}
	staticNested.Getter("getName", "()Ljava/lang/String;")

	deep := classfiletest.New(outer + "$InnerPerson$IP_InnerPerson")
	deep.InnerClasses = []classfiletest.InnerClass{
		{Inner: outer + "$InnerPerson", Outer: outer, Name: "InnerPerson", Flags: classfile.AccPublic},
		{Inner: outer + "$InnerPerson$IP_InnerPerson", Outer: outer + "$InnerPerson", Name: "IP_InnerPerson", Flags: classfile.AccPublic},
	}
	deep.Getter("getName", "()Ljava/lang/String;")

	c, _ := newConverter(t, staticNested, deep)

	tests := []struct {
		class, simple, withOuter, noDots string
	}{
		{"org.assertj.data.OuterClass$StaticNestedPerson", "StaticNestedPerson", "OuterClass.StaticNestedPerson", "OuterClassStaticNestedPerson"},
		{"org.assertj.data.OuterClass$InnerPerson$IP_InnerPerson", "IP_InnerPerson", "OuterClass.InnerPerson.IP_InnerPerson", "OuterClassInnerPersonIP_InnerPerson"},
	}
	for _, tt := range tests {
		t.Run(tt.simple, func(t *testing.T) {
			desc := convert(t, c, tt.class)
			assert.Equal(t, tt.simple, desc.ClassName)
			assert.Equal(t, tt.withOuter, desc.ClassNameWithOuterClass)
			assert.Equal(t, tt.noDots, desc.ClassNameWithOuterClassNotSeparatedByDots)
			assert.Equal(t, "org.assertj.data", desc.PackageName)
			assert.Len(t, desc.Getters, 1)
			assert.Equal(t, "org.assertj.data."+tt.withOuter, desc.FullyQualifiedName())
		})
	}
}

func TestConvertTopLevelClassWithDollarInName(t *testing.T) {
	c, _ := newConverter(t, classfiletest.New("com/acme/Foo$Bar").Getter("getName", "()Ljava/lang/String;"))
	desc := convert(t, c, "com.acme.Foo$Bar")

	assert.Equal(t, "Foo$Bar", desc.ClassName)
	assert.Equal(t, "Foo$Bar", desc.ClassNameWithOuterClass)
	assert.Equal(t, "Foo$Bar", desc.ClassNameWithOuterClassNotSeparatedByDots)
	assert.Equal(t, "com.acme.Foo$Bar", desc.FullyQualifiedName())
}

func TestConvertAnonymousAndLocalClasses(t *testing.T) {
	anon := classfiletest.New(testPkg + "/ConverterTest$1")
	anon.InnerClasses = []classfiletest.InnerClass{{Inner: testPkg + "/ConverterTest$1"}}
	anon.EnclosingClass = testPkg + "/ConverterTest"
	anon.Getter("getValue", "()I")

	local := localClass("Type")
	local.Getter("getValue", "()I")

	c, _ := newConverter(t, anon, local)

	t.Run("anonymous class gets its binary simple name", func(t *testing.T) {
		desc := convert(t, c, "org.assertj.converter.ConverterTest$1")
		assert.Equal(t, "ConverterTest$1", desc.ClassName)
		assert.Equal(t, "ConverterTest$1", desc.ClassNameWithOuterClass)
		assert.Len(t, desc.Getters, 1)
	})

	t.Run("local class uses its declared name", func(t *testing.T) {
		desc := convert(t, c, "org.assertj.converter.ConverterTest$1Type")
		assert.Equal(t, "Type", desc.ClassName)
		assert.Equal(t, "Type", desc.ClassNameWithOuterClass)
		assert.Equal(t, "org.assertj.converter", desc.PackageName)
	})
}

func TestConvertGetterExceptions(t *testing.T) {
	base := classfiletest.New(dataPkg + "/BeanWithOneException")
	base.Method(classfiletest.Member{Name: "getPower", Descriptor: "()I", Flags: classfile.AccPublic,
		Exceptions: []string{"java/lang/Exception"}})
	base.Method(classfiletest.Member{Name: "getRank", Descriptor: "()I", Flags: classfile.AccPublic,
		Exceptions: []string{"java/io/IOException"}})

	bean := classfiletest.New(dataPkg + "/BeanWithExceptions")
	bean.Super = dataPkg + "/BeanWithOneException"
	bean.Method(classfiletest.Member{Name: "getPowerLevel", Descriptor: "()I", Flags: classfile.AccPublic,
		Exceptions: []string{"java/io/IOException", "java/sql/SQLException", "org/assertj/data/BeanWithExceptions$Failure"}})
	bean.Method(classfiletest.Member{Name: "getPower", Descriptor: "()I", Flags: classfile.AccPublic,
		Exceptions: []string{"java/io/IOException"}})
	bean.Getter("getName", "()Ljava/lang/String;")
	bean.InnerClasses = []classfiletest.InnerClass{{
		Inner: dataPkg + "/BeanWithExceptions$Failure", Outer: dataPkg + "/BeanWithExceptions", Name: "Failure",
		Flags: classfile.AccPublic | classfile.AccStatic,
	}}

	c, _ := newConverter(t, base, bean)
	desc := convert(t, c, "org.assertj.data.BeanWithExceptions")

	assert.Len(t, desc.Getters, 4)

	level := getter(t, desc, "powerLevel")
	assert.Equal(t, []string{"java.io.IOException", "java.sql.SQLException", "BeanWithExceptions.Failure"},
		level.ExceptionNames(desc.PackageName), "declaration order is kept")

	power := getter(t, desc, "power")
	assert.Equal(t, []string{"java.io.IOException"}, power.ExceptionNames(desc.PackageName),
		"the overriding accessor's exceptions win")
	assert.Contains(t, desc.DeclaredGetterNames(), "power")

	rank := getter(t, desc, "rank")
	assert.Equal(t, []string{"java.io.IOException"}, rank.ExceptionNames(desc.PackageName))
	assert.NotContains(t, desc.DeclaredGetterNames(), "rank")

	assert.Empty(t, getter(t, desc, "name").Exceptions)
}

func TestConvertArraysAndIterables(t *testing.T) {
	scores := localClass("Type")
	scores.Method(genericGetter("getScores", "()Ljava/util/List;", "()Ljava/util/List<[I>;"))

	matrix := localClass("Matrix")
	matrix.Getter("getScores", "()[[I")

	players := localClass("Roster")
	players.Method(genericGetter("getPlayers", "()Ljava/util/List;", "()Ljava/util/List<[Lorg/assertj/data/nba/Player;>;"))
	players.PublicField("bench", "[Lorg/assertj/data/nba/Player;")

	c, _ := newConverter(t, scores, matrix, players, player())

	t.Run("iterable of primitive arrays", func(t *testing.T) {
		desc := convert(t, c, "org.assertj.converter.ConverterTest$1Type")
		assert.Equal(t, "Type", desc.ClassName)
		require.Len(t, desc.Getters, 1)
		g := desc.Getters[0]
		assert.True(t, g.IsIterableType)
		assert.False(t, g.IsArrayType)
		assert.Equal(t, "int[]", g.ElementTypeName(desc.PackageName))
	})

	t.Run("array of primitive arrays", func(t *testing.T) {
		desc := convert(t, c, "org.assertj.converter.ConverterTest$1Matrix")
		require.Len(t, desc.Getters, 1)
		g := desc.Getters[0]
		assert.False(t, g.IsIterableType)
		assert.True(t, g.IsArrayType)
		assert.Equal(t, "int[][]", g.TypeName)
		assert.Equal(t, "int[]", g.ElementTypeName(desc.PackageName))
	})

	t.Run("iterable of object arrays from another package", func(t *testing.T) {
		desc := convert(t, c, "org.assertj.converter.ConverterTest$1Roster")
		g := getter(t, desc, "players")
		assert.True(t, g.IsIterableType)
		assert.False(t, g.IsArrayType)
		assert.Equal(t, "org.assertj.data.nba.Player[]", g.ElementTypeName(desc.PackageName))

		f, ok := desc.Field("bench")
		require.True(t, ok)
		assert.True(t, f.IsArrayType)
		assert.Equal(t, "org.assertj.data.nba.Player[]", f.TypeName)
		assert.Equal(t, "org.assertj.data.nba.Player", f.ElementTypeText)
	})
}

func TestConvertEnum(t *testing.T) {
	t.Run("enum is iterable over itself", func(t *testing.T) {
		c, _ := newConverter(t, treeEnum())
		desc := convert(t, c, "org.assertj.data.TreeEnum")

		assert.Equal(t, "TreeEnum", desc.ClassName)
		require.Len(t, desc.Getters, 1)
		g := desc.Getters[0]
		assert.True(t, g.IsIterableType)
		assert.True(t, g.IsEnumType)
		assert.False(t, g.IsArrayType)
		assert.Equal(t, "TreeEnum", g.ElementTypeName(desc.PackageName))
		assert.Empty(t, desc.Fields, "enum constants are static")
		assert.Equal(t, "java.lang.Enum", desc.SuperType.FullyQualifiedName())
	})

	t.Run("java.lang.Enum accessors are not properties", func(t *testing.T) {
		c, _ := newConverter(t, treeEnum(), enumWithMembers())
		desc := convert(t, c, "org.assertj.data.TreeEnum")
		assert.Equal(t, []string{"parent"}, desc.GetterNames())
	})
}

func TestConvertInterface(t *testing.T) {
	c, _ := newConverter(t, playerAgent(), player())

	desc := convert(t, c, "org.assertj.data.nba.PlayerAgent")

	assert.Equal(t, "PlayerAgent", desc.ClassName)
	assert.Nil(t, desc.SuperType)
	require.Len(t, desc.Getters, 1)
	g := desc.Getters[0]
	assert.False(t, g.IsIterableType)
	assert.Equal(t, "managedPlayer", g.PropertyName)
	assert.Equal(t, "Player", g.TypeName)
}

func TestConvertInterfaceDiamond(t *testing.T) {
	named := iface("com/acme/Named")
	named.Method(abstractGetter("getName", "()Ljava/lang/String;"))
	left := iface("com/acme/Left")
	left.Interfaces = []string{"com/acme/Named"}
	left.Method(abstractGetter("getLeft", "()I"))
	right := iface("com/acme/Right")
	right.Interfaces = []string{"com/acme/Named"}
	both := iface("com/acme/Both")
	both.Interfaces = []string{"com/acme/Left", "com/acme/Right"}
	both.Method(abstractGetter("getBoth", "()I"))

	c, _ := newConverter(t, named, left, right, both)
	desc := convert(t, c, "com.acme.Both")

	assert.Nil(t, desc.SuperType)
	assert.Equal(t, []string{"both", "left", "name"}, desc.GetterNames())
	assert.Equal(t, []string{"both"}, desc.DeclaredGetterNames())
}

func TestConvertFellowshipToString(t *testing.T) {
	c, _ := newConverter(t, classfiletest.New("org/assertj/data/lotr/FellowshipOfTheRing").Getter("getSize", "()I"))

	desc := convert(t, c, "org.assertj.data.lotr.FellowshipOfTheRing")

	assert.Equal(t, "FellowshipOfTheRing", desc.ClassName)
	assert.Equal(t, "FellowshipOfTheRing", desc.ClassNameWithOuterClass)
	assert.Equal(t, "FellowshipOfTheRing", desc.ClassNameWithOuterClassNotSeparatedByDots)
	assert.Equal(t, "org.assertj.data.lotr", desc.PackageName)
	assert.Len(t, desc.Getters, 1)
	assert.Contains(t, desc.String(), "org.assertj.data.lotr.FellowshipOfTheRing")
}

func TestConvertPublicFields(t *testing.T) {
	c, _ := newConverter(t, team(), player())

	desc := convert(t, c, "org.assertj.data.Team")

	assert.Equal(t, []string{"division"}, desc.GetterNames())
	assert.ElementsMatch(t, []string{"name", "oldNames", "westCoast", "rank", "players", "points", "victoryRatio"}, desc.FieldNames())

	players, _ := desc.Field("players")
	assert.True(t, players.IsIterableType)
	assert.Equal(t, "org.assertj.data.nba.Player", players.ElementTypeText)

	oldNames, _ := desc.Field("oldNames")
	assert.True(t, oldNames.IsArrayType)
	assert.Equal(t, "String", oldNames.ElementTypeText)
}

func TestConvertIterableThroughNonGenericAncestor(t *testing.T) {
	ex := localClass("MySQLException")
	ex.Super = "java/sql/SQLException"
	ex.Getter("getExceptionChain", "()Ljava/sql/SQLException;")

	c, _ := newConverter(t, ex)
	desc := convert(t, c, "org.assertj.converter.ConverterTest$1MySQLException")

	assert.Contains(t, desc.GetterNames(), "exceptionChain")
	chain := getter(t, desc, "exceptionChain")
	assert.True(t, chain.IsIterableType)
	assert.False(t, chain.IsEnumType)
	assert.False(t, chain.IsArrayType)
	assert.Equal(t, "java.sql.SQLException", chain.TypeName)
	assert.Equal(t, "Throwable", chain.ElementTypeName(desc.PackageName))
	assert.Equal(t, "java.sql.SQLException", desc.SuperType.FullyQualifiedName())
}

func TestConvertOverriddenGetterOnce(t *testing.T) {
	withGetter := iface(testPkg + "/ConverterTest$InterfaceWithGetter")
	withGetter.Method(classfiletest.Member{Name: "getMyList", Descriptor: "()Ljava/util/List;",
		Flags: classfile.AccPublic | classfile.AccAbstract, Signature: "()Ljava/util/List<Ljava/lang/String;>;"})

	overriding := classfiletest.New(testPkg + "/ConverterTest$ClassOverridingGetter")
	overriding.InnerClasses = []classfiletest.InnerClass{{
		Inner: testPkg + "/ConverterTest$ClassOverridingGetter", Outer: testPkg + "/ConverterTest",
		Name: "ClassOverridingGetter", Flags: classfile.AccPublic | classfile.AccStatic,
	}}
	overriding.Interfaces = []string{testPkg + "/ConverterTest$InterfaceWithGetter"}
	overriding.Method(genericGetter("getMyList", "()Ljava/util/ArrayList;", "()Ljava/util/ArrayList<Ljava/lang/String;>;"))
	overriding.Method(classfiletest.Member{Name: "getMyList", Descriptor: "()Ljava/util/List;",
		Flags: classfile.AccPublic | classfile.AccBridge | classfile.AccSynthetic})

	c, _ := newConverter(t, withGetter, overriding)
	desc := convert(t, c, "org.assertj.converter.ConverterTest$ClassOverridingGetter")

	assert.Equal(t, []string{"myList"}, desc.GetterNames())
	g := desc.Getters[0]
	assert.Equal(t, "java.util.ArrayList", g.TypeName, "the covariant override wins")
	assert.Equal(t, "String", g.ElementTypeName(desc.PackageName))
	assert.Equal(t, "ConverterTest.ClassOverridingGetter", desc.ClassNameWithOuterClass)
}

func TestConvertSkipAnnotation(t *testing.T) {
	t.Run("default annotation", func(t *testing.T) {
		c, _ := newConverter(t, partiallySkipped())
		desc := convert(t, c, "org.assertj.data.skipped.PartiallySkipped")

		assert.Equal(t, []string{"anotherBoolean"}, desc.GetterNames())
		assert.Equal(t, []string{"anotherField"}, desc.FieldNames())
	})

	t.Run("skipped override hides the ancestor accessor", func(t *testing.T) {
		parent := classfiletest.New("com/acme/Parent")
		parent.Getter("getSecret", "()Ljava/lang/String;")
		child := classfiletest.New("com/acme/Child")
		child.Super = "com/acme/Parent"
		child.Method(classfiletest.Member{Name: "getSecret", Descriptor: "()Ljava/lang/String;",
			Flags: classfile.AccPublic, Annotations: []classfiletest.Annotation{{Type: skipAnnotation, Invisible: true}}})
		child.PublicField("secret", "Ljava/lang/String;")

		c, _ := newConverter(t, parent, child)
		desc := convert(t, c, "com.acme.Child")

		assert.Empty(t, desc.GetterNames())
		assert.Equal(t, []string{"secret"}, desc.FieldNames(), "skip directives are per member")
	})

	t.Run("configured annotations", func(t *testing.T) {
		c := classfiletest.New("com/acme/Configured")
		c.Method(classfiletest.Member{Name: "getInternal", Descriptor: "()I", Flags: classfile.AccPublic,
			Annotations: []classfiletest.Annotation{{Type: "com/acme/Internal"}}})
		c.Method(classfiletest.Member{Name: "getLegacy", Descriptor: "()I", Flags: classfile.AccPublic,
			Annotations: []classfiletest.Annotation{{Type: skipAnnotation, Invisible: true}}})

		conv := converter.New(load(t, c), converter.WithSkipAnnotations("com/acme/Internal"))
		desc := convert(t, conv, "com.acme.Configured")

		assert.Equal(t, []string{"legacy"}, desc.GetterNames(), "configured names replace the default")
	})
}

func TestConvertMissingAncestor(t *testing.T) {
	orphan := classfiletest.New("com/acme/Orphan")
	orphan.Super = "com/acme/Missing"
	orphan.Interfaces = []string{"com/acme/AlsoMissing"}
	orphan.Getter("getValue", "()I")

	c, _ := newConverter(t, orphan)
	desc := convert(t, c, "com.acme.Orphan")

	assert.Equal(t, []string{"value"}, desc.GetterNames())
	assert.Equal(t, "com.acme.Missing", desc.SuperType.FullyQualifiedName())
}

func TestConvertRoundTrip(t *testing.T) {
	c, mem := newConverter(t, artWork(), movie(), team(), player())

	for name, model := range mem {
		t.Run(name, func(t *testing.T) {
			first, err := c.Convert(model)
			require.NoError(t, err)
			second, err := c.Convert(model)
			require.NoError(t, err)
			assert.True(t, first.Equal(second))
			assert.NotSame(t, first, second)
		})
	}
}

func TestConvertInvalidArgument(t *testing.T) {
	c := converter.New(nil)

	_, err := c.Convert(nil)
	assert.True(t, errors.Is(err, converter.ErrInvalidArgument))

	_, err = c.ConvertName(" ")
	assert.True(t, errors.Is(err, converter.ErrInvalidArgument))

	_, err = c.ConvertName("com.acme.Nope")
	assert.True(t, errors.Is(err, classpath.ErrNotFound))
	assert.False(t, errors.Is(err, converter.ErrInvalidArgument))
}

func TestConvertNilClasspath(t *testing.T) {
	var cp *classpath.Classpath
	c := converter.New(cp)

	desc, err := c.ConvertName("java.util.ArrayList")
	require.NoError(t, err)
	assert.Equal(t, "java.util.AbstractList", desc.SuperType.FullyQualifiedName())

	_, err = c.ConvertName("com.acme.Nope")
	assert.True(t, errors.Is(err, classpath.ErrNotFound))
}

func TestConvertAll(t *testing.T) {
	c, _ := newConverter(t, artWork(), movie(), team(), player(), playerAgent())
	names := []string{
		"org.assertj.data.Team",
		"org.assertj.data.nba.Player",
		"org.assertj.data.Movie",
		"org.assertj.data.nba.PlayerAgent",
		"org.assertj.data.ArtWork",
	}

	t.Run("results follow input order", func(t *testing.T) {
		descs, err := c.ConvertAll(context.Background(), names, 2)
		require.NoError(t, err)
		require.Len(t, descs, len(names))
		for i, d := range descs {
			assert.Equal(t, names[i], d.FullyQualifiedName())
		}
	})

	t.Run("first error fails the batch", func(t *testing.T) {
		_, err := c.ConvertAll(context.Background(), append(names, "com.acme.Nope"), 0)
		assert.True(t, errors.Is(err, classpath.ErrNotFound))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.ConvertAll(ctx, names, 1)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
