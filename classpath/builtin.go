package classpath

import (
	"sync"

	"github.com/dhamidi/assertgen/java"
)

// builtinClass declares the generic header of a JDK type. Builtins carry no
// members: they only let the type resolver walk supertypes (to find
// java.lang.Iterable and its type argument) when no JDK is on the classpath.
type builtinClass struct {
	name      string
	kind      java.ClassKind
	signature string
}

const (
	objectSig = "Ljava/lang/Object;"
	elemParam = "<E:Ljava/lang/Object;>"
)

var builtinClasses = []builtinClass{
	{"java.lang.Object", java.ClassKindClass, ""},
	{"java.io.Serializable", java.ClassKindInterface, ""},
	{"java.lang.Comparable", java.ClassKindInterface, "<T:Ljava/lang/Object;>" + objectSig},
	{"java.lang.CharSequence", java.ClassKindInterface, ""},
	{"java.lang.Iterable", java.ClassKindInterface, "<T:Ljava/lang/Object;>" + objectSig},
	{"java.lang.Enum", java.ClassKindClass, "<E:Ljava/lang/Enum<TE;>;>Ljava/lang/Object;Ljava/lang/Comparable<TE;>;Ljava/io/Serializable;"},
	{"java.lang.Record", java.ClassKindClass, ""},

	{"java.lang.String", java.ClassKindClass, "Ljava/lang/Object;Ljava/io/Serializable;Ljava/lang/Comparable<Ljava/lang/String;>;Ljava/lang/CharSequence;"},
	{"java.lang.Boolean", java.ClassKindClass, "Ljava/lang/Object;Ljava/io/Serializable;Ljava/lang/Comparable<Ljava/lang/Boolean;>;"},
	{"java.lang.Number", java.ClassKindClass, "Ljava/lang/Object;Ljava/io/Serializable;"},
	{"java.lang.Integer", java.ClassKindClass, "Ljava/lang/Number;Ljava/lang/Comparable<Ljava/lang/Integer;>;"},
	{"java.lang.Long", java.ClassKindClass, "Ljava/lang/Number;Ljava/lang/Comparable<Ljava/lang/Long;>;"},
	{"java.lang.Double", java.ClassKindClass, "Ljava/lang/Number;Ljava/lang/Comparable<Ljava/lang/Double;>;"},

	{"java.lang.Throwable", java.ClassKindClass, "Ljava/lang/Object;Ljava/io/Serializable;"},
	{"java.lang.Exception", java.ClassKindClass, "Ljava/lang/Throwable;"},
	{"java.lang.RuntimeException", java.ClassKindClass, "Ljava/lang/Exception;"},
	{"java.io.IOException", java.ClassKindClass, "Ljava/lang/Exception;"},
	{"java.sql.SQLException", java.ClassKindClass, "Ljava/lang/Exception;Ljava/lang/Iterable<Ljava/lang/Throwable;>;"},
	{"java.sql.SQLWarning", java.ClassKindClass, "Ljava/sql/SQLException;"},
	{"java.nio.file.Path", java.ClassKindInterface, "Ljava/lang/Object;Ljava/lang/Comparable<Ljava/nio/file/Path;>;Ljava/lang/Iterable<Ljava/nio/file/Path;>;"},

	{"java.util.Collection", java.ClassKindInterface, elemParam + "Ljava/lang/Object;Ljava/lang/Iterable<TE;>;"},
	{"java.util.List", java.ClassKindInterface, elemParam + "Ljava/lang/Object;Ljava/util/Collection<TE;>;"},
	{"java.util.Set", java.ClassKindInterface, elemParam + "Ljava/lang/Object;Ljava/util/Collection<TE;>;"},
	{"java.util.SortedSet", java.ClassKindInterface, elemParam + "Ljava/lang/Object;Ljava/util/Set<TE;>;"},
	{"java.util.NavigableSet", java.ClassKindInterface, elemParam + "Ljava/lang/Object;Ljava/util/SortedSet<TE;>;"},
	{"java.util.Queue", java.ClassKindInterface, elemParam + "Ljava/lang/Object;Ljava/util/Collection<TE;>;"},
	{"java.util.Deque", java.ClassKindInterface, elemParam + "Ljava/lang/Object;Ljava/util/Queue<TE;>;"},
	{"java.util.AbstractCollection", java.ClassKindClass, elemParam + "Ljava/lang/Object;Ljava/util/Collection<TE;>;"},
	{"java.util.AbstractList", java.ClassKindClass, elemParam + "Ljava/util/AbstractCollection<TE;>;Ljava/util/List<TE;>;"},
	{"java.util.AbstractSet", java.ClassKindClass, elemParam + "Ljava/util/AbstractCollection<TE;>;Ljava/util/Set<TE;>;"},
	{"java.util.AbstractQueue", java.ClassKindClass, elemParam + "Ljava/util/AbstractCollection<TE;>;Ljava/util/Queue<TE;>;"},
	{"java.util.ArrayList", java.ClassKindClass, elemParam + "Ljava/util/AbstractList<TE;>;Ljava/util/List<TE;>;"},
	{"java.util.LinkedList", java.ClassKindClass, elemParam + "Ljava/util/AbstractList<TE;>;Ljava/util/List<TE;>;Ljava/util/Deque<TE;>;"},
	{"java.util.Vector", java.ClassKindClass, elemParam + "Ljava/util/AbstractList<TE;>;Ljava/util/List<TE;>;"},
	{"java.util.Stack", java.ClassKindClass, elemParam + "Ljava/util/Vector<TE;>;"},
	{"java.util.HashSet", java.ClassKindClass, elemParam + "Ljava/util/AbstractSet<TE;>;Ljava/util/Set<TE;>;"},
	{"java.util.LinkedHashSet", java.ClassKindClass, elemParam + "Ljava/util/HashSet<TE;>;Ljava/util/Set<TE;>;"},
	{"java.util.TreeSet", java.ClassKindClass, elemParam + "Ljava/util/AbstractSet<TE;>;Ljava/util/NavigableSet<TE;>;"},
	{"java.util.ArrayDeque", java.ClassKindClass, elemParam + "Ljava/util/AbstractCollection<TE;>;Ljava/util/Deque<TE;>;"},
	{"java.util.PriorityQueue", java.ClassKindClass, elemParam + "Ljava/util/AbstractQueue<TE;>;"},
	{"java.util.concurrent.CopyOnWriteArrayList", java.ClassKindClass, elemParam + "Ljava/lang/Object;Ljava/util/List<TE;>;"},
	{"java.util.Map", java.ClassKindInterface, "<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/lang/Object;"},
	{"java.util.Map$Entry", java.ClassKindInterface, "<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/lang/Object;"},
	{"java.util.Optional", java.ClassKindClass, "<T:Ljava/lang/Object;>Ljava/lang/Object;"},
}

var (
	builtinOnce sync.Once
	builtins    Memory
)

// Builtin returns the JDK marker table. Put it after the real classpath in
// a Chain so that a JDK on the classpath takes precedence.
func Builtin() Memory {
	builtinOnce.Do(func() {
		builtins = make(Memory, len(builtinClasses))
		for _, b := range builtinClasses {
			builtins[b.name] = b.model()
		}
	})
	return builtins
}

func (b builtinClass) model() *java.ClassModel {
	pkg, simple := java.SplitClassName(b.name)
	m := &java.ClassModel{
		Name:       b.name,
		SimpleName: simple,
		Package:    pkg,
		Kind:       b.kind,
		Visibility: java.VisibilityPublic,
		IsAbstract: b.kind == java.ClassKindInterface,
	}
	if b.name == "java.util.Map$Entry" {
		m.InnerClasses = []java.InnerClassModel{{
			InnerClass: b.name, OuterClass: "java.util.Map", InnerName: "Entry",
			Visibility: java.VisibilityPublic, IsStatic: true,
		}}
		m.OuterClass, m.InnerName, m.IsStatic = "java.util.Map", "Entry", true
	}
	if b.name != java.ObjectClass {
		m.SuperClass = java.ObjectClass
	}
	if err := java.ApplyClassSignature(m, b.signature); err != nil {
		panic("builtin signature for " + b.name + ": " + err.Error())
	}
	// Raw names follow the signature.
	if m.GenericSuperClass != nil {
		m.SuperClass = m.GenericSuperClass.Name
	}
	if b.signature != "" {
		for _, iface := range m.GenericInterfaces {
			m.Interfaces = append(m.Interfaces, iface.Name)
		}
	}
	return m
}
