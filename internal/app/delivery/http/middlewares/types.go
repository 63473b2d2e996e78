package middlewares

import (
	"homecare-service/internal/app/config"
	"homecare-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	IntakeUsecase  contracts.IntakeUsecase
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(logger *zap.Logger, intakeUsecase contracts.IntakeUsecase, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		IntakeUsecase:  intakeUsecase,
		InternalConfig: internalConfig,
	}
}
