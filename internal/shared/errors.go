package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig  = fmt.Errorf("configuration not found")
	ErrInvalidConfig  = fmt.Errorf("invalid configuration")
	ErrUnknownBackend = fmt.Errorf("unknown storage backend")

	// Storage errors
	ErrStoreClosed    = fmt.Errorf("store is closed")
	ErrDuplicateTitle = fmt.Errorf("title already exists")
	ErrNotFound       = fmt.Errorf("entry not found")
	ErrStorage        = fmt.Errorf("storage failure")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingField    = fmt.Errorf("%w: missing required field", ErrInvalidInput)
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
