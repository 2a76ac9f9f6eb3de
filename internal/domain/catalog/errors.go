package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductUnpublished   = errors.New("product not published")
	ErrContentIDRequired    = errors.New("content ID is required")
	ErrUnknownContentType   = errors.New("unknown content type")
	ErrProductTitleRequired = errors.New("product title is required")
)

func ErrInvalidContentType(raw string) error {
	return fmt.Errorf("%w: %s", ErrUnknownContentType, raw)
}
