package shared

import "fmt"

var (
	// Configuration errors
	ErrUnconfigured    = fmt.Errorf("catalog credentials not configured")
	ErrInvalidEndpoint = fmt.Errorf("invalid catalog endpoint URL")
	ErrMissingConfig   = fmt.Errorf("configuration not found")
	ErrInvalidConfig   = fmt.Errorf("invalid configuration")

	// Cache errors
	ErrNotFound = fmt.Errorf("cache entry not found")

	// Remote catalog errors
	ErrRemoteRequest = fmt.Errorf("catalog request failed")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
