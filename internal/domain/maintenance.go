package domain

import (
	"time"

	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

// MaintenanceStatus is the state of a maintenance record
type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "scheduled"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

// Valid reports whether s is a known maintenance status
func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceScheduled, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled:
		return true
	}
	return false
}

// Maintenance is a period during which a service is serviced and cannot be rented
type Maintenance struct {
	ID          int64
	ServiceID   int64
	ProviderID  int64
	Title       string
	Description string
	StartDate   types.Date
	EndDate     types.Date
	Status      MaintenanceStatus
	Cost        float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsBlocking returns true while the maintenance withdraws the service
func (m *Maintenance) IsBlocking() bool {
	return m.Status == MaintenanceScheduled || m.Status == MaintenanceInProgress
}

// CoversDate reports whether the maintenance includes date
func (m *Maintenance) CoversDate(date types.Date) bool {
	return date.Between(m.StartDate, m.EndDate)
}

// MaintenanceFilter selects maintenance records
type MaintenanceFilter struct {
	ServiceID  *int64
	ProviderID *int64
	Status     *MaintenanceStatus
	// From/To keep records intersecting [From, To]
	From *types.Date
	To   *types.Date
	Page Page
}
