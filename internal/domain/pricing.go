package domain

import "github.com/agroboost/AgroBoost-RentalService/pkg/types"

// BookingRequest is the rental period a price is computed for.
// Daily requests use StartDate/EndDate, hourly ones BookingDate/StartTime/Duration.
type BookingRequest struct {
	Type        BookingType
	StartDate   types.Date
	EndDate     types.Date
	BookingDate types.Date
	StartTime   types.TimeString
	Duration    int
}

// Units returns the number of billed units: inclusive days for daily
// requests, the caller's hour count for hourly ones.
// Malformed dates give 0 and inverted dates give a non-positive count.
func (r BookingRequest) Units() int {
	if r.Type == BookingTypeHourly {
		return r.Duration
	}
	return types.InclusiveDayCount(r.StartDate, r.EndDate)
}

// ServicePrices are the rates of a service
type ServicePrices struct {
	PricePerDay  float64
	PricePerHour *float64
}

// HourlyRate returns PricePerHour, or a working-day share of PricePerDay when unset
func (p ServicePrices) HourlyRate() float64 {
	if p.PricePerHour != nil {
		return *p.PricePerHour
	}
	return p.PricePerDay / HoursPerWorkingDay
}

// PriceCalculation is the price breakdown of a booking request
type PriceCalculation struct {
	Duration           int     `json:"duration"`
	PricePerUnit       float64 `json:"pricePerUnit"`
	Subtotal           float64 `json:"subtotal"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountAmount     float64 `json:"discountAmount"`
	TotalPrice         float64 `json:"totalPrice"`
}

// DiscountTier grants Percentage off daily rentals of at least MinDays
type DiscountTier struct {
	MinDays    int
	Percentage float64
}

// DiscountTiers ordered from the highest threshold down
var DiscountTiers = []DiscountTier{
	{MinDays: 30, Percentage: 20},
	{MinDays: 14, Percentage: 15},
	{MinDays: 7, Percentage: 10},
}

// DiscountForDuration returns the discount percentage of a daily rental
func DiscountForDuration(days int) float64 {
	for _, tier := range DiscountTiers {
		if days >= tier.MinDays {
			return tier.Percentage
		}
	}
	return 0
}

// CalculatePrice prices a booking request. It has no side effects and never fails:
// validating the request (duration >= 1) is up to the caller.
func CalculatePrice(req BookingRequest, prices ServicePrices) PriceCalculation {
	duration := req.Units()

	var (
		pricePerUnit float64
		discount     float64
	)
	if req.Type == BookingTypeHourly {
		pricePerUnit = prices.HourlyRate()
	} else {
		pricePerUnit = prices.PricePerDay
		discount = DiscountForDuration(duration)
	}

	subtotal := float64(duration) * pricePerUnit
	discountAmount := subtotal * discount / 100

	return PriceCalculation{
		Duration:           duration,
		PricePerUnit:       pricePerUnit,
		Subtotal:           subtotal,
		DiscountPercentage: discount,
		DiscountAmount:     discountAmount,
		TotalPrice:         subtotal - discountAmount,
	}
}
