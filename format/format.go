// Package format writes class descriptions and raw class models as JSON,
// YAML or tab separated lines.
package format

import (
	"encoding"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/assertgen/description"
	"github.com/dhamidi/assertgen/java"
)

var ErrUnknownFormat = errors.New("unknown format")

// Names lists the formats accepted by New and NewModel.
var Names = []string{"json", "yaml", "line"}

type Encoder interface {
	encoding.TextMarshaler
	Encode(desc *description.ClassDescription) error
}

type ModelEncoder interface {
	encoding.TextMarshaler
	Encode(model *java.ClassModel) error
}

// New returns the description encoder called name.
func New(name string, w io.Writer) (Encoder, error) {
	switch strings.ToLower(name) {
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml", "yml":
		return NewYAMLEncoder(w), nil
	case "line", "":
		return NewLineEncoder(w), nil
	}
	return nil, unknown(name)
}

// NewModel returns the class model encoder called name.
func NewModel(name string, w io.Writer) (ModelEncoder, error) {
	switch strings.ToLower(name) {
	case "json":
		return NewJSONModelEncoder(w), nil
	case "yaml", "yml":
		return NewYAMLModelEncoder(w), nil
	case "line", "":
		return NewLineModelEncoder(w), nil
	}
	return nil, unknown(name)
}

func unknown(name string) error {
	return errors.WithHint(
		errors.Wrapf(ErrUnknownFormat, "%q", name),
		"supported formats: "+strings.Join(Names, ", "),
	)
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
