package domain

import "time"

// Service is a piece of equipment or labour offered for rent by a provider
type Service struct {
	ID           int64
	ProviderID   int64
	Name         string
	Description  string
	Category     string
	PricePerDay  float64
	PricePerHour *float64
	Location     string
	Images       []string
	IsAvailable  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Prices returns the rates used by CalculatePrice
func (s *Service) Prices() ServicePrices {
	return ServicePrices{PricePerDay: s.PricePerDay, PricePerHour: s.PricePerHour}
}

// ServiceFilter selects services in catalog lists
type ServiceFilter struct {
	ProviderID *int64
	Category   string
	Search     string
	Available  *bool
	Page       Page
}
