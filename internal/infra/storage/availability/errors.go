package availability

import "errors"

var (
	ErrBlockNotFound = errors.New("availability.repository: block not found")
	ErrBuildQuery    = errors.New("availability.repository: failed to build query")
	ErrExecQuery     = errors.New("availability.repository: failed to execute query")
	ErrScanRow       = errors.New("availability.repository: failed to scan row")
)
