package service

import "errors"

var (
	ErrServiceNotFound = errors.New("service.repository: service not found")
	ErrBuildQuery      = errors.New("service.repository: failed to build query")
	ErrExecQuery       = errors.New("service.repository: failed to execute query")
	ErrScanRow         = errors.New("service.repository: failed to scan row")
)
