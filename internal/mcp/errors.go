package mcp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rpggio/bugdeck/internal/api"
)

// ToolError represents a tool error response.
type ToolError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps tracker API errors to tool error codes.
func MapError(err error) *ToolError {
	if err == nil {
		return nil
	}
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		return nil
	}
	switch apiErr.Status {
	case http.StatusUnauthorized:
		return &ToolError{Code: "AUTH_EXPIRED", Message: apiErr.Detail, RecoveryHint: "Log in again with the bugdeck TUI"}
	case http.StatusForbidden:
		return &ToolError{Code: "FORBIDDEN", Message: apiErr.Detail}
	case http.StatusNotFound:
		return &ToolError{Code: "NOT_FOUND", Message: apiErr.Detail, RecoveryHint: "Check the ID"}
	case http.StatusBadRequest:
		return &ToolError{Code: "VALIDATION_REJECTED", Message: apiErr.Detail}
	default:
		return &ToolError{Code: "OPERATION_FAILED", Message: apiErr.Detail}
	}
}
