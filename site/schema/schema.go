package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var ErrValidationFailed = errors.New("validation failed")

// Schema validates documents against a compiled JSON schema.
type Schema struct {
	schema *gojsonschema.Schema
}

//go:embed status.json
var statusSchema json.RawMessage
var statusSchemaLoader = gojsonschema.NewBytesLoader(statusSchema)

// NewStatusSchema compiles the schema of the status payload.
func NewStatusSchema() (*Schema, error) {
	schema, err := gojsonschema.NewSchema(statusSchemaLoader)
	if err != nil {
		return nil, err
	}

	return &Schema{schema: schema}, nil
}

// Validate validates a raw JSON document. Schema violations are
// reported as a ValidationError wrapping ErrValidationFailed.
func (s *Schema) Validate(data []byte) error {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return err
	}

	if result.Valid() {
		return nil
	}

	return &ValidationError{Errors: result.Errors()}
}

// ValidationError lists the schema violations of a document.
type ValidationError struct {
	Errors []gojsonschema.ResultError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, resultErr := range e.Errors {
		msgs = append(msgs, resultErr.String())
	}

	return ErrValidationFailed.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
