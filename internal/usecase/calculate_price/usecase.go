package calculate_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	serviceRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/service"
)

// UseCase quotes the price of a rental without creating anything
type UseCase struct {
	serviceRepo ServiceRepository
	logger      Logger
}

func NewUseCase(serviceRepo ServiceRepository, logger Logger) *UseCase {
	return &UseCase{serviceRepo: serviceRepo, logger: logger}
}

// Execute loads the service rates and prices the request.
// Requests that bill less than one unit are rejected here since CalculatePrice never fails.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	bookingReq, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CalculatePrice: validation failed: %v", err)
		return nil, err
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CalculatePrice: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CalculatePrice: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	price := domain.CalculatePrice(bookingReq, service.Prices())

	return &Response{
		ServiceID:        service.ID,
		ServiceName:      service.Name,
		BookingType:      string(bookingReq.Type),
		Currency:         domain.DefaultCurrency,
		PriceCalculation: price,
	}, nil
}

func validateRequest(req *Request) (domain.BookingRequest, error) {
	if req.ServiceID <= 0 {
		return domain.BookingRequest{}, fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	bookingReq := req.ToBookingRequest()
	switch bookingReq.Type {
	case domain.BookingTypeDaily:
		if !bookingReq.StartDate.Valid() || !bookingReq.EndDate.Valid() {
			return bookingReq, fmt.Errorf("%w: startDate and endDate must be YYYY-MM-DD", ErrInvalidInput)
		}
	case domain.BookingTypeHourly:
		if bookingReq.Duration < domain.MinHourlyDuration || bookingReq.Duration > domain.MaxHourlyDuration {
			return bookingReq, fmt.Errorf("%w: duration must be between %d and %d hours",
				ErrInvalidInput, domain.MinHourlyDuration, domain.MaxHourlyDuration)
		}
	default:
		return bookingReq, fmt.Errorf("%w: bookingType must be daily or hourly", ErrInvalidInput)
	}

	if bookingReq.Units() < 1 {
		return bookingReq, fmt.Errorf("%w: the rental must last at least one unit", ErrInvalidInput)
	}
	return bookingReq, nil
}
