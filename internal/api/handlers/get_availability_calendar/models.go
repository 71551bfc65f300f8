package get_availability_calendar

import (
	"net/http"
	"strconv"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	getCalendar "github.com/agroboost/AgroBoost-RentalService/internal/usecase/get_availability_calendar"
)

// ToUseCaseRequest reads year, month, the pending selection and an optional clickedDate
func ToUseCaseRequest(r *http.Request, serviceID int64) (*getCalendar.Request, error) {
	req := &getCalendar.Request{ServiceID: serviceID}
	q := r.URL.Query()

	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Year = year
	}
	if raw := q.Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Month = month
	}

	var err error
	if req.SelectedStart, err = handlers.QueryDate(r, "selectedStartDate"); err != nil {
		return nil, err
	}
	if req.SelectedEnd, err = handlers.QueryDate(r, "selectedEndDate"); err != nil {
		return nil, err
	}
	if req.Clicked, err = handlers.QueryDate(r, "clickedDate"); err != nil {
		return nil, err
	}
	return req, nil
}
