package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/atelier-edu/atelier/internal/shared/errors"
	"github.com/atelier-edu/atelier/internal/shared/id"
)

// ParseSIDParam parses and validates a Stripe-style prefixed ID from a URL path parameter.
// paramName is the Gin route parameter name (e.g., "id", "rule_id").
// prefix is the expected SID prefix (e.g., id.PrefixNode).
// entityName is used in error messages (e.g., "node", "forward rule").
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}

	return sid, nil
}

// ParseUintParam parses a numeric URL path parameter.
func ParseUintParam(c *gin.Context, paramName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(paramName + " is required")
	}

	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.NewValidationError(
			fmt.Sprintf("invalid %s, expected a positive integer", paramName),
		)
	}

	return uint(value), nil
}
