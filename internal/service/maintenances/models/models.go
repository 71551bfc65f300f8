package models

import (
	"time"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/pkg/types"
)

type ListMaintenancesRequest struct {
	ServiceID *int64
	Status    *string
	Page      domain.Page
}

type CreateMaintenanceRequest struct {
	ServiceID   int64      `json:"serviceId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   types.Date `json:"startDate"`
	EndDate     types.Date `json:"endDate"`
	Status      string     `json:"status"`
	Cost        float64    `json:"cost"`
}

type UpdateMaintenanceRequest struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	StartDate   *types.Date `json:"startDate"`
	EndDate     *types.Date `json:"endDate"`
	Status      *string     `json:"status"`
	Cost        *float64    `json:"cost"`
}

func (r *UpdateMaintenanceRequest) ApplyTo(m *domain.Maintenance) {
	if r.Title != nil {
		m.Title = *r.Title
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.StartDate != nil {
		m.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		m.EndDate = *r.EndDate
	}
	if r.Status != nil {
		m.Status = domain.MaintenanceStatus(*r.Status)
	}
	if r.Cost != nil {
		m.Cost = *r.Cost
	}
}

type MaintenanceResponse struct {
	ID          int64     `json:"id"`
	ServiceID   int64     `json:"serviceId"`
	ProviderID  int64     `json:"providerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Status      string    `json:"status"`
	Cost        float64   `json:"cost"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type MaintenanceListResponse struct {
	Maintenances []MaintenanceResponse
	Page         int
	Limit        int
	Total        int
}

func FromDomainMaintenance(m *domain.Maintenance) MaintenanceResponse {
	return MaintenanceResponse{
		ID:          m.ID,
		ServiceID:   m.ServiceID,
		ProviderID:  m.ProviderID,
		Title:       m.Title,
		Description: m.Description,
		StartDate:   m.StartDate.String(),
		EndDate:     m.EndDate.String(),
		Status:      string(m.Status),
		Cost:        m.Cost,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func FromDomainMaintenanceList(list []*domain.Maintenance, page domain.Page, total int) *MaintenanceListResponse {
	page = page.Normalize()
	resp := &MaintenanceListResponse{
		Maintenances: make([]MaintenanceResponse, 0, len(list)),
		Page:         page.Page,
		Limit:        page.Limit,
		Total:        total,
	}
	for _, m := range list {
		resp.Maintenances = append(resp.Maintenances, FromDomainMaintenance(m))
	}
	return resp
}
