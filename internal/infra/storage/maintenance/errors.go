package maintenance

import "errors"

var (
	ErrMaintenanceNotFound = errors.New("maintenance.repository: maintenance not found")
	ErrBuildQuery          = errors.New("maintenance.repository: failed to build query")
	ErrExecQuery           = errors.New("maintenance.repository: failed to execute query")
	ErrScanRow             = errors.New("maintenance.repository: failed to scan row")
)
