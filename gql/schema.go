package gql

import (
	_ "embed"
	"sync"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphqls
var schemaSDL string

var (
	schemaOnce sync.Once
	schema     *ast.Schema
	schemaErr  error
)

// SDL returns the console schema in its source form.
func SDL() string {
	return schemaSDL
}

// Schema parses the embedded schema once and returns it.
func Schema() (*ast.Schema, error) {
	schemaOnce.Do(func() {
		s, gerr := gqlparser.LoadSchema(&ast.Source{
			Name:    "schema.graphqls",
			Input:   schemaSDL,
			BuiltIn: false,
		})
		if gerr != nil {
			schemaErr = errors.Wrap(gerr, "failed to load schema")
			return
		}
		schema = s
	})
	return schema, schemaErr
}

// ValidateDocument parses doc and checks it against the schema.
func ValidateDocument(doc string) (*ast.QueryDocument, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}
	queryDoc, errs := gqlparser.LoadQuery(s, doc)
	if len(errs) > 0 {
		return nil, errs
	}
	return queryDoc, nil
}

// OperationType returns the type of the operation that would run for
// operationName, or of the only operation when operationName is empty.
func OperationType(doc *ast.QueryDocument, operationName string) (ast.Operation, error) {
	if operationName == "" {
		if len(doc.Operations) != 1 {
			return "", errors.Errorf("document has %d operations, operationName is required", len(doc.Operations))
		}
		return doc.Operations[0].Operation, nil
	}
	op := doc.Operations.ForName(operationName)
	if op == nil {
		return "", errors.Errorf("operation %q not found", operationName)
	}
	return op.Operation, nil
}
