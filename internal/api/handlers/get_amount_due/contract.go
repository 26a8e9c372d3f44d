package get_amount_due

import (
	"context"

	getAmountDue "github.com/m04kA/SMC-RentalService/internal/usecase/get_amount_due"
)

type GetAmountDueUseCase interface {
	Execute(ctx context.Context, req *getAmountDue.Request) (*getAmountDue.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
