package usecases

import (
	"context"

	"skynet/internal/application/request/dto"
	"skynet/internal/domain/request"
	"skynet/internal/shared/logger"
)

type ListRequestsUseCase struct {
	requestRepo request.RequestRepository
	logger      logger.Interface
}

func NewListRequestsUseCase(
	requestRepo request.RequestRepository,
	logger logger.Interface,
) *ListRequestsUseCase {
	return &ListRequestsUseCase{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// Execute returns every request, newest first. Ordering is delegated to the
// repository so the index does the work.
func (uc *ListRequestsUseCase) Execute(ctx context.Context) ([]*dto.RequestDTO, error) {
	uc.logger.Debugw("executing list requests use case")

	requests, err := uc.requestRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list requests", "error", err)
		return nil, err
	}

	return dto.ToRequestDTOs(requests), nil
}
