package tools

import (
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/doctorew/pocket-morties/pkg/apperrors"
)

// ErrorResponse represents a structured error in tool results.
// It is returned as a tool result so the calling agent sees the details
// instead of a bare protocol error.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// NewErrorResult creates a tool result containing a structured error.
// Use this for errors the caller can fix (bad parameters, unknown id).
// Upstream failures should still return Go errors.
func NewErrorResult(code, message string) *mcp.CallToolResult {
	return NewErrorResultWithDetails(code, message, nil)
}

// NewErrorResultWithDetails creates an error result with additional context,
// such as the list of valid values for a rejected parameter.
func NewErrorResultWithDetails(code, message string, details any) *mcp.CallToolResult {
	resp := ErrorResponse{
		Error:   true,
		Code:    code,
		Message: message,
		Details: details,
	}
	jsonBytes, _ := json.Marshal(resp)
	result := mcp.NewToolResultText(string(jsonBytes))
	result.IsError = true
	return result
}

// errorResultFor converts caller errors into tool results. It returns nil
// for anything else, which the handler should return as a Go error.
func errorResultFor(err error, details any) *mcp.CallToolResult {
	switch {
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return NewErrorResultWithDetails("invalid_parameters", err.Error(), details)
	case errors.Is(err, apperrors.ErrNotFound):
		return NewErrorResult("not_found", err.Error())
	}
	return nil
}
