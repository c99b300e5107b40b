package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/assertgen/description"
	"github.com/dhamidi/assertgen/java"
)

// JSONEncoder writes one indented JSON document per description, using the
// description's own field names.
type JSONEncoder struct {
	w    io.Writer
	desc *description.ClassDescription
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(desc *description.ClassDescription) error {
	e.desc = desc
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(e.desc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type JSONModelEncoder struct {
	w     io.Writer
	model *java.ClassModel
}

func NewJSONModelEncoder(w io.Writer) *JSONModelEncoder {
	return &JSONModelEncoder{w: w}
}

func (e *JSONModelEncoder) Encode(model *java.ClassModel) error {
	e.model = model
	return write(e.w, e)
}

func (e *JSONModelEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(buildClassData(e.model), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// jsonClass is the dump shape of a class model, shared by the JSON and
// YAML model encoders.
type jsonClass struct {
	Name           string       `json:"name" yaml:"name"`
	CanonicalName  string       `json:"canonicalName" yaml:"canonicalName"`
	Package        string       `json:"package" yaml:"package"`
	SuperClass     string       `json:"superClass,omitempty" yaml:"superClass,omitempty"`
	Interfaces     []string     `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Signature      string       `json:"signature,omitempty" yaml:"signature,omitempty"`
	Visibility     string       `json:"visibility" yaml:"visibility"`
	Kind           string       `json:"kind" yaml:"kind"`
	Modifiers      []string     `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Version        jsonVersion  `json:"version" yaml:"version"`
	SourceFile     string       `json:"sourceFile,omitempty" yaml:"sourceFile,omitempty"`
	OuterClass     string       `json:"outerClass,omitempty" yaml:"outerClass,omitempty"`
	Annotations    []string     `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	TypeParameters []string     `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
	Fields         []jsonField  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Methods        []jsonMethod `json:"methods,omitempty" yaml:"methods,omitempty"`
}

type jsonVersion struct {
	Major uint16 `json:"major" yaml:"major"`
	Minor uint16 `json:"minor" yaml:"minor"`
}

type jsonField struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Visibility  string   `json:"visibility" yaml:"visibility"`
	Modifiers   []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Annotations []string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

type jsonMethod struct {
	Name        string   `json:"name" yaml:"name"`
	ReturnType  string   `json:"returnType" yaml:"returnType"`
	Parameters  []string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Exceptions  []string `json:"exceptions,omitempty" yaml:"exceptions,omitempty"`
	Visibility  string   `json:"visibility" yaml:"visibility"`
	Modifiers   []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Annotations []string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

func buildClassData(m *java.ClassModel) jsonClass {
	data := jsonClass{
		Name:          m.Name,
		CanonicalName: m.CanonicalName(),
		Package:       m.Package,
		SuperClass:    m.SuperClass,
		Interfaces:    m.Interfaces,
		Signature:     m.Signature,
		Visibility:    string(m.Visibility),
		Kind:          string(m.Kind),
		Modifiers:     classModifiers(m),
		Version: jsonVersion{
			Major: m.MajorVersion,
			Minor: m.MinorVersion,
		},
		SourceFile:  m.SourceFile,
		OuterClass:  m.OuterClass,
		Annotations: annotationStrs(m.Annotations),
	}
	for _, tp := range m.TypeParameters {
		data.TypeParameters = append(data.TypeParameters, typeParameterStr(tp))
	}
	for _, f := range m.Fields {
		data.Fields = append(data.Fields, jsonField{
			Name:        f.Name,
			Type:        f.Type.String(),
			Visibility:  string(f.Visibility),
			Modifiers:   fieldModifiers(f),
			Annotations: annotationStrs(f.Annotations),
		})
	}
	for _, method := range m.Methods {
		jm := jsonMethod{
			Name:        method.Name,
			ReturnType:  method.ReturnType.String(),
			Visibility:  string(method.Visibility),
			Modifiers:   methodModifiers(method),
			Annotations: annotationStrs(method.Annotations),
		}
		for _, p := range method.Parameters {
			jm.Parameters = append(jm.Parameters, p.Type.String())
		}
		for _, ex := range method.Exceptions {
			jm.Exceptions = append(jm.Exceptions, ex.String())
		}
		data.Methods = append(data.Methods, jm)
	}
	return data
}
