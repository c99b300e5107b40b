package converter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/assertgen/description"
	"github.com/dhamidi/assertgen/java"
)

// ancestor is one class or interface of the hierarchy being described,
// with its type parameters bound as seen from the analyzed class.
type ancestor struct {
	model    *java.ClassModel
	bindings bindings
}

// Members of the JDK roots are never properties.
var stopClasses = map[string]struct{}{
	java.ObjectClass: {},
	java.EnumClass:   {},
	java.RecordClass: {},
}

// hierarchy lists root, its superclass chain, and then every
// super-interface breadth first. Each type appears once.
func (c *Converter) hierarchy(root *java.ClassModel) []ancestor {
	visited := map[string]struct{}{root.Name: {}}
	start := ancestor{model: root, bindings: bindings(nil).with(root.TypeParameters)}
	result := []ancestor{start}

	for cur := start; cur.model.GenericSuperClass != nil; {
		next, ok := c.ancestor(cur, *cur.model.GenericSuperClass, visited)
		if !ok {
			break
		}
		result = append(result, next)
		cur = next
	}

	queue := append([]ancestor(nil), result...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, iface := range cur.model.GenericInterfaces {
			next, ok := c.ancestor(cur, iface, visited)
			if !ok {
				continue
			}
			result = append(result, next)
			queue = append(queue, next)
		}
	}
	return result
}

func (c *Converter) ancestor(from ancestor, use java.TypeModel, visited map[string]struct{}) (ancestor, bool) {
	if _, stop := stopClasses[use.Name]; stop {
		return ancestor{}, false
	}
	if _, seen := visited[use.Name]; seen {
		return ancestor{}, false
	}
	visited[use.Name] = struct{}{}

	model, err := c.provider.Lookup(use.Name)
	if err != nil {
		log.Debug("skipping ancestor", "class", use.Name, "of", from.model.Name, "error", err)
		return ancestor{}, false
	}
	return ancestor{
		model:    model,
		bindings: from.bindings.bind(model, from.bindings.substitute(use)),
	}, true
}

// properties holds the four collections while they are being filled.
type properties struct {
	getters, declaredGetters []description.GetterDescription
	fields, declaredFields   []description.FieldDescription
}

// extract walks the hierarchy most derived first. The first accessor seen
// for a method key or property name wins, so ancestors never replace what
// a descendant declared. Skipped members still claim their key.
func (c *Converter) extract(root *java.ClassModel) properties {
	var props properties
	methodKeys := make(map[string]struct{})
	getterNames := make(map[string]struct{})
	fieldNames := make(map[string]struct{})

	for i, a := range c.hierarchy(root) {
		declared := i == 0
		for _, m := range a.model.Methods {
			property, predicate, ok := getterProperty(&m)
			if !ok {
				continue
			}
			key := m.Name + m.ParameterKey()
			if _, seen := methodKeys[key]; seen {
				continue
			}
			methodKeys[key] = struct{}{}
			if java.HasAnnotation(m.Annotations, c.skip) {
				log.Debug("skipping accessor", "class", a.model.Name, "method", m.Name)
				continue
			}
			if _, seen := getterNames[property]; seen {
				continue
			}
			getterNames[property] = struct{}{}

			g := c.describeGetter(root, a, &m, property, predicate)
			props.getters = append(props.getters, g)
			if declared {
				props.declaredGetters = append(props.declaredGetters, g)
			}
		}

		for _, f := range a.model.Fields {
			if f.Visibility != java.VisibilityPublic || f.IsStatic || f.IsSynthetic {
				continue
			}
			if _, seen := fieldNames[f.Name]; seen {
				continue
			}
			fieldNames[f.Name] = struct{}{}
			if java.HasAnnotation(f.Annotations, c.skip) {
				log.Debug("skipping field", "class", a.model.Name, "field", f.Name)
				continue
			}

			fd := description.FieldDescription{
				Name:            f.Name,
				TypeDescription: c.describeType(a.bindings.substitute(f.Type), root.Package, a.model),
				Visibility:      string(java.VisibilityPublic),
			}
			props.fields = append(props.fields, fd)
			if declared {
				props.declaredFields = append(props.declaredFields, fd)
			}
		}
	}
	return props
}

func (c *Converter) describeGetter(root *java.ClassModel, a ancestor, m *java.MethodModel, property string, predicate bool) description.GetterDescription {
	scope := a.bindings.with(m.TypeParameters)
	g := description.GetterDescription{
		PropertyName:    property,
		OriginalMember:  m.Name,
		IsPredicate:     predicate,
		TypeDescription: c.describeType(scope.substitute(m.ReturnType), root.Package, a.model),
		Exceptions:      make([]description.TypeName, 0, len(m.Exceptions)),
	}
	for _, ex := range m.Exceptions {
		g.Exceptions = append(g.Exceptions, c.typeName(scope.substitute(ex), a.model))
	}
	return g
}

// getterProperty applies the accessor naming rules: a public instance
// method without parameters named getX, or isX returning a boolean.
func getterProperty(m *java.MethodModel) (property string, predicate bool, ok bool) {
	if m.Visibility != java.VisibilityPublic || m.IsStatic || m.IsSynthetic || m.IsBridge {
		return "", false, false
	}
	if len(m.Parameters) > 0 || m.ReturnType.IsVoid() {
		return "", false, false
	}
	switch {
	case strings.HasPrefix(m.Name, "get") && len(m.Name) > len("get"):
		return decapitalize(m.Name[len("get"):]), false, true
	case strings.HasPrefix(m.Name, "is") && len(m.Name) > len("is") && isBoolean(m.ReturnType):
		return decapitalize(m.Name[len("is"):]), true, true
	}
	return "", false, false
}

func isBoolean(t java.TypeModel) bool {
	return t.ArrayDepth == 0 && !t.IsTypeVariable && (t.Name == "boolean" || t.Name == "java.lang.Boolean")
}

func decapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
