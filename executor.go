package moviegraph

import (
	"context"
	"encoding/json"
	"net/http"

	graphqlgo "github.com/graph-gophers/graphql-go"
)

// executionRequest keeps the request as sent by the client, request normalization rewrites
// inline arguments into variables and must not leak into execution.
type executionRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type executionResult struct {
	Body []byte

	// Failed reports whether the response carries errors.
	Failed bool
}

type executor func(ctx context.Context, r *executionRequest) (*executionResult, error)

func newExecutor(schema *graphqlgo.Schema) executor {
	return func(ctx context.Context, r *executionRequest) (*executionResult, error) {
		response := schema.Exec(ctx, r.Query, r.OperationName, r.Variables)
		body, err := json.Marshal(response)

		if err != nil {
			return nil, err
		}

		return &executionResult{
			Body:   body,
			Failed: len(response.Errors) > 0,
		}, nil
	}
}

func writeExecutionResult(w http.ResponseWriter, r *executionResult) error {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(r.Body)

	return err
}
