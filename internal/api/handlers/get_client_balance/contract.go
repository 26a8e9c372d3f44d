package get_client_balance

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
)

type BalanceService interface {
	GetBalance(ctx context.Context, clientID int64) (*models.BalanceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
