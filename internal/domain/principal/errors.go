package principal

import "errors"

var (
	ErrPrincipalNotFound = errors.New("principal not found")
	ErrInvalidRole       = errors.New("invalid principal role")
)
