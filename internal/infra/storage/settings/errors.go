package settings

import "errors"

var (
	// ErrSettingsNotFound is returned when no settings row exists at the requested level
	ErrSettingsNotFound = errors.New("settings.repository: settings not found")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("settings.repository: failed to scan row")
)
