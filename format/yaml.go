package format

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/assertgen/description"
	"github.com/dhamidi/assertgen/java"
)

// YAMLEncoder writes each description as its own YAML document.
type YAMLEncoder struct {
	w    io.Writer
	desc *description.ClassDescription
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(desc *description.ClassDescription) error {
	e.desc = desc
	return write(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	return marshalYAML(e.desc)
}

type YAMLModelEncoder struct {
	w     io.Writer
	model *java.ClassModel
}

func NewYAMLModelEncoder(w io.Writer) *YAMLModelEncoder {
	return &YAMLModelEncoder{w: w}
}

func (e *YAMLModelEncoder) Encode(model *java.ClassModel) error {
	e.model = model
	return write(e.w, e)
}

func (e *YAMLModelEncoder) MarshalText() ([]byte, error) {
	return marshalYAML(buildClassData(e.model))
}

// marshalYAML prefixes a document separator so that consecutive encodes
// form a valid stream.
func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
