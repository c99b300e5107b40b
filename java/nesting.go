package java

import "strings"

// NestedNames resolves a binary class name such as "pkg.Outer$Inner" to its
// chain of simple names, outermost first. The InnerClasses table is
// authoritative; without an entry the name is split on '$', keeping
// segments that start with a digit (anonymous and local classes) attached
// to their predecessor. ok reports whether the table had an entry.
func NestedNames(binaryName string, table []InnerClassModel) (names []string, ok bool) {
	byInner := make(map[string]InnerClassModel, len(table))
	for _, ic := range table {
		byInner[ic.InnerClass] = ic
	}

	var reversed []string
	cur := binaryName
	for {
		ic, found := byInner[cur]
		if !found {
			break
		}
		ok = true
		delete(byInner, cur)
		if ic.InnerName == "" {
			// anonymous: the binary simple name is the only usable identifier
			return prepend(reversed, SimpleBinaryName(cur)), true
		}
		reversed = append(reversed, ic.InnerName)
		if ic.OuterClass == "" {
			// local: declared name without an outer prefix
			return prepend(reversed, nil...), true
		}
		cur = ic.OuterClass
	}
	return prepend(reversed, splitBinarySimpleName(SimpleBinaryName(cur))...), ok
}

// prepend returns head followed by reversed in reverse order.
func prepend(reversed []string, head ...string) []string {
	result := make([]string, 0, len(head)+len(reversed))
	result = append(result, head...)
	for i := len(reversed) - 1; i >= 0; i-- {
		result = append(result, reversed[i])
	}
	return result
}

// SimpleBinaryName strips the package: "pkg.Outer$Inner" -> "Outer$Inner".
func SimpleBinaryName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func splitBinarySimpleName(simple string) []string {
	var parts []string
	for _, seg := range strings.Split(simple, "$") {
		n := len(parts)
		if n > 0 && (seg == "" || isDigit(seg[0]) || parts[n-1] == "" || strings.HasSuffix(parts[n-1], "$")) {
			parts[n-1] += "$" + seg
			continue
		}
		parts = append(parts, seg)
	}
	return parts
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// SplitClassName splits a dotted name into package and simple part.
func SplitClassName(fullName string) (pkg, simpleName string) {
	lastDot := strings.LastIndex(fullName, ".")
	if lastDot == -1 {
		return "", fullName
	}
	return fullName[:lastDot], fullName[lastDot+1:]
}
