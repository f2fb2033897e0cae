package models

// GraphQLError is one entry of a GraphQL response's errors list.
type GraphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// GraphQLResponse is the standard GraphQL response envelope.
type GraphQLResponse struct {
	Data   map[string]any `json:"data,omitempty"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// HasErrors reports whether the response carries any errors.
func (r *GraphQLResponse) HasErrors() bool {
	return len(r.Errors) > 0
}
