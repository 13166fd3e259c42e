package moviegraph

import (
	"bytes"

	"github.com/jensneuse/graphql-go-tools/pkg/ast"
	"github.com/jensneuse/graphql-go-tools/pkg/astparser"
	"github.com/jensneuse/graphql-go-tools/pkg/graphql"
	"github.com/vektah/gqlparser/v2"
	gqlast "github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// servedSchema is the schema shape used to normalize, validate and analyze incoming requests.
type servedSchema struct {
	schema   *graphql.Schema
	document *ast.Document
	sdl      []byte
}

func loadServedSchema(sdl string) (*servedSchema, error) {
	gqlSchema, gqlErr := gqlparser.LoadSchema(&gqlast.Source{Name: "schema.graphql", Input: sdl})

	if gqlErr != nil {
		return nil, gqlErr
	}

	printed := new(bytes.Buffer)
	formatter.NewFormatter(printed).FormatSchema(gqlSchema)

	schema, err := graphql.NewSchemaFromString(sdl)

	if err != nil {
		return nil, err
	}

	normalizationResult, _ := schema.Normalize()

	if !normalizationResult.Successful {
		return nil, normalizationResult.Errors
	}

	document, report := astparser.ParseGraphqlDocumentBytes(schema.Document())

	if report.HasErrors() {
		return nil, &report
	}

	return &servedSchema{
		schema:   schema,
		document: &document,
		sdl:      printed.Bytes(),
	}, nil
}
