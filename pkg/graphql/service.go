package graphql

import (
	"context"
	"fmt"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/logging"
	"github.com/doctorew/pocket-morties/pkg/models"
)

// Request is a GraphQL-over-HTTP request body.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// Service executes GraphQL documents against the schema in process.
type Service struct {
	schema graphql.Schema
	logger *zap.Logger
}

// NewService builds the schema around r.
func NewService(r *Resolver, logger *zap.Logger) (*Service, error) {
	schema, err := NewSchema(r)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return &Service{
		schema: schema,
		logger: logger.Named("graphql"),
	}, nil
}

// Do executes req. Resolver failures are reported in the response's errors
// list, never as a Go error.
func (s *Service) Do(ctx context.Context, req Request) *models.GraphQLResponse {
	result := graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})

	resp := &models.GraphQLResponse{}
	if data, ok := result.Data.(map[string]any); ok {
		resp.Data = data
	}
	for _, e := range result.Errors {
		resp.Errors = append(resp.Errors, models.GraphQLError{
			Message: e.Message,
			Path:    e.Path,
		})
	}

	if resp.HasErrors() {
		logging.WithContext(ctx, s.logger).Warn("GraphQL request completed with errors",
			zap.String("query", logging.SanitizeQuery(req.Query)),
			zap.Int("error_count", len(resp.Errors)),
			zap.String("first_error", resp.Errors[0].Message))
	}
	return resp
}

// Execute runs a bare query document.
func (s *Service) Execute(ctx context.Context, query string) (*models.GraphQLResponse, error) {
	return s.Do(ctx, Request{Query: query}), nil
}
