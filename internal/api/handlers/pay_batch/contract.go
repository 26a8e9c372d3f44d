package pay_batch

import (
	"context"

	payReservation "github.com/m04kA/SMC-RentalService/internal/usecase/pay_reservation"
)

type PayBatchUseCase interface {
	ExecuteBatch(ctx context.Context, req *payReservation.BatchRequest) (*payReservation.BatchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
