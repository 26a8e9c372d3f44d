package apply_storm_insurance

import (
	"context"

	applyStormInsurance "github.com/m04kA/SMC-RentalService/internal/usecase/apply_storm_insurance"
)

type ApplyStormInsuranceUseCase interface {
	Execute(ctx context.Context, req *applyStormInsurance.Request) (*applyStormInsurance.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
