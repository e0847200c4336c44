// Package schema validates generated documents against the Facturae 3.2.1
// schema definition.
package schema

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/lestrrat-go/libxml2"
	"github.com/lestrrat-go/libxml2/xsd"
	"go.uber.org/zap"

	"github.com/smallbiznis/facturae/internal/facturae/domain"
)

//go:embed facturae_3_2_1.xsd
var embeddedSchema []byte

// Validator holds a compiled schema, loaded once and reused for every
// document.
type Validator struct {
	schema *xsd.Schema
	log    *zap.Logger
}

// New compiles the bundled schema, or the one at path when set.
func New(path string, log *zap.Logger) (*Validator, error) {
	src := embeddedSchema
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", path, err)
		}
		src = b
	}
	compiled, err := xsd.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("compile facturae schema: %w", err)
	}
	return &Validator{schema: compiled, log: log.Named("facturae.schema")}, nil
}

// Validate checks the document against the schema. A failure is an internal
// bug in document assembly, so the full content is logged for diagnosis.
func (v *Validator) Validate(ctx context.Context, document []byte) error {
	parsed, err := libxml2.Parse(document)
	if err != nil {
		v.log.Warn("generated document is not well-formed XML", zap.Error(err))
		return &domain.SchemaValidationError{Document: document, Cause: err}
	}
	defer parsed.Free()

	if err := v.schema.Validate(parsed); err != nil {
		if verr, ok := err.(xsd.SchemaValidationError); ok {
			for _, detail := range verr.Errors() {
				v.log.Warn("schema violation", zap.String("detail", detail.Error()))
			}
		}
		v.log.Warn("generated document failed schema validation",
			zap.ByteString("document", document))
		return &domain.SchemaValidationError{Document: document, Cause: err}
	}
	return nil
}

// Close releases the compiled schema.
func (v *Validator) Close() {
	v.schema.Free()
}

var _ domain.Validator = (*Validator)(nil)
