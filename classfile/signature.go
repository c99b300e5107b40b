package classfile

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// TypeSignature is one parsed JavaTypeSignature. Exactly one of BaseType,
// ClassName and TypeVariable is set. Nested class types such as
// Outer<T>.Inner<U> are flattened to ClassName "Outer$Inner" carrying the
// innermost type arguments.
type TypeSignature struct {
	BaseType      string
	ClassName     string
	TypeVariable  string
	TypeArguments []TypeArgument
	ArrayDepth    int
}

type WildcardKind byte

const (
	WildcardNone    WildcardKind = 0
	WildcardAny     WildcardKind = '*'
	WildcardExtends WildcardKind = '+'
	WildcardSuper   WildcardKind = '-'
)

// TypeArgument is nil-typed only for the unbounded wildcard.
type TypeArgument struct {
	Wildcard WildcardKind
	Type     *TypeSignature
}

// TypeParameter lists the class bound first (when present) followed by the
// interface bounds.
type TypeParameter struct {
	Name   string
	Bounds []*TypeSignature
}

type ClassSignature struct {
	TypeParameters []TypeParameter
	SuperClass     *TypeSignature
	Interfaces     []*TypeSignature
}

type MethodSignature struct {
	TypeParameters []TypeParameter
	Parameters     []*TypeSignature
	ReturnType     *TypeSignature // nil for void
	Throws         []*TypeSignature
}

func (ts *TypeSignature) String() string {
	var sb strings.Builder
	ts.write(&sb)
	return sb.String()
}

func (ts *TypeSignature) write(sb *strings.Builder) {
	switch {
	case ts.BaseType != "":
		sb.WriteString(ts.BaseType)
	case ts.TypeVariable != "":
		sb.WriteString(ts.TypeVariable)
	default:
		sb.WriteString(InternalToSourceName(ts.ClassName))
	}
	if len(ts.TypeArguments) > 0 {
		sb.WriteByte('<')
		for i, arg := range ts.TypeArguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			switch arg.Wildcard {
			case WildcardAny:
				sb.WriteByte('?')
				continue
			case WildcardExtends:
				sb.WriteString("? extends ")
			case WildcardSuper:
				sb.WriteString("? super ")
			}
			arg.Type.write(sb)
		}
		sb.WriteByte('>')
	}
	for i := 0; i < ts.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
}

func ParseClassSignature(sig string) (*ClassSignature, error) {
	p := &sigParser{s: sig}
	cs := &ClassSignature{}
	cs.TypeParameters = p.typeParameters()
	cs.SuperClass = p.classType()
	for p.err == nil && !p.done() {
		cs.Interfaces = append(cs.Interfaces, p.classType())
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return cs, nil
}

func ParseMethodSignature(sig string) (*MethodSignature, error) {
	p := &sigParser{s: sig}
	ms := &MethodSignature{}
	ms.TypeParameters = p.typeParameters()
	p.expect('(')
	for p.err == nil && p.peek() != ')' {
		ms.Parameters = append(ms.Parameters, p.javaType())
	}
	p.expect(')')
	if p.peek() == 'V' {
		p.pos++
	} else {
		ms.ReturnType = p.javaType()
	}
	for p.err == nil && p.peek() == '^' {
		p.pos++
		ms.Throws = append(ms.Throws, p.referenceType())
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return ms, nil
}

func ParseFieldSignature(sig string) (*TypeSignature, error) {
	p := &sigParser{s: sig}
	ts := p.referenceType()
	if err := p.finish(); err != nil {
		return nil, err
	}
	return ts, nil
}

// sigParser is a recursive descent parser over the JVMS signature grammar.
// The first error stops all further consumption.
type sigParser struct {
	s   string
	pos int
	err error
}

func (p *sigParser) done() bool {
	return p.pos >= len(p.s)
}

func (p *sigParser) peek() byte {
	if p.err != nil || p.done() {
		return 0
	}
	return p.s[p.pos]
}

func (p *sigParser) fail(format string, args ...interface{}) {
	if p.err == nil {
		p.err = errors.Mark(
			errors.Wrapf(errors.Newf(format, args...), "signature %q at offset %d", p.s, p.pos),
			ErrMalformed,
		)
	}
}

func (p *sigParser) expect(c byte) {
	if p.peek() != c {
		p.fail("expected %q", c)
		return
	}
	p.pos++
}

func (p *sigParser) finish() error {
	if p.err == nil && !p.done() {
		p.fail("unexpected trailing input")
	}
	return p.err
}

func (p *sigParser) identifier() string {
	start := p.pos
	for !p.done() && !strings.ContainsRune(".;[/<>:", rune(p.s[p.pos])) {
		p.pos++
	}
	if p.pos == start {
		p.fail("expected identifier")
	}
	return p.s[start:p.pos]
}

func (p *sigParser) typeParameters() []TypeParameter {
	if p.peek() != '<' {
		return nil
	}
	p.pos++
	var params []TypeParameter
	for p.err == nil && p.peek() != '>' {
		tp := TypeParameter{Name: p.identifier()}
		p.expect(':')
		// The class bound may be empty when only interface bounds follow.
		if c := p.peek(); c != ':' && c != '>' {
			tp.Bounds = append(tp.Bounds, p.referenceType())
		}
		for p.err == nil && p.peek() == ':' {
			p.pos++
			tp.Bounds = append(tp.Bounds, p.referenceType())
		}
		params = append(params, tp)
	}
	p.expect('>')
	if p.err == nil && len(params) == 0 {
		p.fail("empty type parameter list")
	}
	return params
}

func (p *sigParser) javaType() *TypeSignature {
	if base, ok := baseTypes[p.peek()]; ok {
		p.pos++
		return &TypeSignature{BaseType: base}
	}
	return p.referenceType()
}

func (p *sigParser) referenceType() *TypeSignature {
	switch p.peek() {
	case 'L':
		return p.classType()
	case 'T':
		p.pos++
		ts := &TypeSignature{TypeVariable: p.identifier()}
		p.expect(';')
		return ts
	case '[':
		p.pos++
		elem := p.javaType()
		if elem == nil {
			return nil
		}
		elem.ArrayDepth++
		return elem
	default:
		p.fail("expected reference type")
		return nil
	}
}

func (p *sigParser) classType() *TypeSignature {
	p.expect('L')
	var name strings.Builder
	ts := &TypeSignature{}
	for p.err == nil {
		name.WriteString(p.identifier())
		switch p.peek() {
		case '/':
			p.pos++
			name.WriteByte('/')
			continue
		case '<':
			ts.TypeArguments = p.typeArguments()
		}
		if p.peek() != '.' {
			break
		}
		p.pos++
		name.WriteByte('$')
		ts.TypeArguments = nil
	}
	p.expect(';')
	ts.ClassName = name.String()
	if p.err != nil {
		return nil
	}
	return ts
}

func (p *sigParser) typeArguments() []TypeArgument {
	p.expect('<')
	var args []TypeArgument
	for p.err == nil && p.peek() != '>' {
		switch c := WildcardKind(p.peek()); c {
		case WildcardAny:
			p.pos++
			args = append(args, TypeArgument{Wildcard: WildcardAny})
		case WildcardExtends, WildcardSuper:
			p.pos++
			args = append(args, TypeArgument{Wildcard: c, Type: p.referenceType()})
		default:
			args = append(args, TypeArgument{Type: p.referenceType()})
		}
	}
	p.expect('>')
	if p.err == nil && len(args) == 0 {
		p.fail("empty type argument list")
	}
	return args
}
