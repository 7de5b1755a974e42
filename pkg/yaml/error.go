package yaml

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// Error represents a YAML error. It includes the original error, and the
// position in the source document where the error occurred, either as a
// [*token.Token] or as a [*yaml.Path].
type Error struct {
	Err    error
	Path   *yaml.Path
	Token  *token.Token
	Source []byte
}

func (e *Error) Error() string {
	if e.Err == nil {
		return ""
	}

	if e.Token != nil {
		pos := e.Token.Position
		msg := fmt.Sprintf("[%d:%d] %v", pos.Line, pos.Column, e.Err)

		var pp printer.Printer

		return fmt.Sprintf("%s\n%s", msg, pp.PrintErrorToken(e.Token, false))
	}

	if e.Path != nil {
		msg := fmt.Sprintf("error at %s: %v", e.Path.String(), e.Err)

		if len(e.Source) > 0 {
			annotated, err := e.Path.AnnotateSource(e.Source, false)
			if err == nil {
				return fmt.Sprintf("%s\n%s", msg, string(annotated))
			}
		}

		return msg
	}

	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithSource attaches the source document, used to annotate path errors.
func (e *Error) WithSource(source []byte) *Error {
	e.Source = source

	return e
}

// WrapWithSource attaches source to any [*Error] in err's chain, so that its
// message can include an annotated snippet of the document.
func WrapWithSource(err error, source []byte) error {
	if err == nil {
		return nil
	}

	var yamlErr *Error
	if errors.As(err, &yamlErr) {
		return yamlErr.WithSource(source)
	}

	return err
}
