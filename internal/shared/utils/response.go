package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-edu/atelier/internal/shared/errors"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorInfo represents error information in API response
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	}

	c.JSON(statusCode, response)
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	errorInfo := ErrorInfo{
		Type:    "error",
		Message: message,
	}

	response := APIResponse{
		Success: false,
		Error:   &errorInfo,
	}

	c.JSON(statusCode, response)
}

// ErrorResponseWithError sends an error response based on error type
func ErrorResponseWithError(c *gin.Context, err error) {
	var appErr *errors.AppError
	var statusCode int
	var errorInfo ErrorInfo

	if appError := errors.GetAppError(err); appError != nil {
		appErr = appError
		statusCode = appErr.Code
		errorInfo = ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		}
	} else {
		// For non-AppError, do not expose internal error details to prevent information leakage
		statusCode = http.StatusInternalServerError
		errorInfo = ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: "Internal server error occurred",
		}
	}

	response := APIResponse{
		Success: false,
		Error:   &errorInfo,
	}

	c.JSON(statusCode, response)
}

