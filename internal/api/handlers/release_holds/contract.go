package release_holds

import (
	"context"

	releaseUnpaidHolds "github.com/m04kA/SMC-RentalService/internal/usecase/release_unpaid_holds"
)

type ReleaseHoldsUseCase interface {
	Execute(ctx context.Context) (*releaseUnpaidHolds.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
