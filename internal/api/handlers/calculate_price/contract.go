package calculate_price

import (
	"context"

	calculatePrice "github.com/agroboost/AgroBoost-RentalService/internal/usecase/calculate_price"
)

type CalculatePriceUseCase interface {
	Execute(ctx context.Context, req *calculatePrice.Request) (*calculatePrice.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
