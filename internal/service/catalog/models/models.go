package models

import (
	"io"
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

type ListServicesRequest struct {
	ProviderID *int64
	Category   string
	Search     string
	Available  *bool
	Page       domain.Page
}

func (r *ListServicesRequest) ToDomainFilter() domain.ServiceFilter {
	return domain.ServiceFilter{
		ProviderID: r.ProviderID,
		Category:   r.Category,
		Search:     r.Search,
		Available:  r.Available,
		Page:       r.Page,
	}
}

// CreateServiceRequest describes a new offer. ProviderID is only honoured for administrators;
// providers always create for themselves.
type CreateServiceRequest struct {
	ProviderID   *int64   `json:"providerId"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	PricePerDay  float64  `json:"pricePerDay"`
	PricePerHour *float64 `json:"pricePerHour"`
	Location     string   `json:"location"`
	IsAvailable  *bool    `json:"isAvailable"`
}

// UpdateServiceRequest changes only the set fields
type UpdateServiceRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	PricePerDay  *float64 `json:"pricePerDay"`
	PricePerHour *float64 `json:"pricePerHour"`
	Location     *string  `json:"location"`
	IsAvailable  *bool    `json:"isAvailable"`
}

func (r *UpdateServiceRequest) ApplyTo(s *domain.Service) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Description != nil {
		s.Description = *r.Description
	}
	if r.Category != nil {
		s.Category = *r.Category
	}
	if r.PricePerDay != nil {
		s.PricePerDay = *r.PricePerDay
	}
	if r.PricePerHour != nil {
		s.PricePerHour = r.PricePerHour
	}
	if r.Location != nil {
		s.Location = *r.Location
	}
	if r.IsAvailable != nil {
		s.IsAvailable = *r.IsAvailable
	}
}

// ImageFile is one uploaded picture
type ImageFile struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type ServiceResponse struct {
	ID           int64     `json:"id"`
	ProviderID   int64     `json:"providerId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	PricePerDay  float64   `json:"pricePerDay"`
	PricePerHour *float64  `json:"pricePerHour,omitempty"`
	Location     string    `json:"location"`
	Images       []string  `json:"images"`
	IsAvailable  bool      `json:"isAvailable"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ServiceListResponse struct {
	Services []ServiceResponse
	Page     int
	Limit    int
	Total    int
}

func FromDomainService(s *domain.Service) ServiceResponse {
	images := s.Images
	if images == nil {
		images = []string{}
	}
	return ServiceResponse{
		ID:           s.ID,
		ProviderID:   s.ProviderID,
		Name:         s.Name,
		Description:  s.Description,
		Category:     s.Category,
		PricePerDay:  s.PricePerDay,
		PricePerHour: s.PricePerHour,
		Location:     s.Location,
		Images:       images,
		IsAvailable:  s.IsAvailable,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func FromDomainServiceList(services []*domain.Service, page domain.Page, total int) *ServiceListResponse {
	page = page.Normalize()
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
		Page:     page.Page,
		Limit:    page.Limit,
		Total:    total,
	}
	for _, s := range services {
		resp.Services = append(resp.Services, FromDomainService(s))
	}
	return resp
}
