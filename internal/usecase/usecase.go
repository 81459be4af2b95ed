package usecase

import (
	"context"
	"time"

	"team-task-manager/internal/repository"
	"team-task-manager/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	TeamUsecaseInterface
	UserUsecaseInterface
	TaskUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, ctx context.Context, repo repository.Repository, timeout time.Duration) InterfaceUsecase {
	return domain.New(log, ctx, repo, timeout)
}
