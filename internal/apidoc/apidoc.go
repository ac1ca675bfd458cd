package apidoc

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.json
var document []byte

// Document returns the raw embedded API description.
func Document() []byte {
	return document
}

// RequiredSchemas are the components the rates endpoint answers with or accepts.
var RequiredSchemas = []string{"RatesRequest", "SuccessEnvelope", "ErrorEnvelope"}

// Load parses and validates the embedded API description.
func Load(ctx context.Context) (*openapi3.T, error) {
	return LoadData(ctx, document)
}

// LoadData parses and validates an API description and checks that every
// RequiredSchemas entry is present.
func LoadData(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	for _, name := range RequiredSchemas {
		if _, err := Schema(doc, name); err != nil {
			return nil, fmt.Errorf("validate openapi document: %w", err)
		}
	}

	return doc, nil
}

// Schema looks up a component schema by name.
func Schema(doc *openapi3.T, name string) (*openapi3.Schema, error) {
	if doc.Components == nil {
		return nil, fmt.Errorf("schema %s not found", name)
	}

	ref, ok := doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return nil, fmt.Errorf("schema %s not found", name)
	}

	return ref.Value, nil
}
