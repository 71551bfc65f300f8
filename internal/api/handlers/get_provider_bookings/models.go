package get_provider_bookings

import (
	"fmt"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/bookings/models"
)

// ToServiceRequest builds the service request from the query string:
// serviceId, status, from, to, date (shorthand for from=to=date), includeInactive, page, limit
func ToServiceRequest(r *http.Request, providerID int64, actor domain.Actor) (*models.GetProviderBookingsRequest, error) {
	req := &models.GetProviderBookingsRequest{
		Actor:      actor,
		ProviderID: providerID,
		Status:     handlers.QueryString(r, "status"),
	}

	var err error
	if req.ServiceID, err = handlers.QueryInt64(r, "serviceId"); err != nil {
		return nil, err
	}
	if req.Page, err = handlers.ParsePage(r); err != nil {
		return nil, err
	}

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		return nil, err
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		return nil, err
	}
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}
	if !date.IsZero() {
		from, to = date, date
	}
	if !from.IsZero() {
		req.From = &from
	}
	if !to.IsZero() {
		req.To = &to
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("to %s is before from %s", *req.To, *req.From)
	}

	includeInactive, err := handlers.QueryBool(r, "includeInactive")
	if err != nil {
		return nil, err
	}
	if includeInactive != nil {
		req.IncludeInactive = *includeInactive
	}

	return req, nil
}
