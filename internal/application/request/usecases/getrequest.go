package usecases

import (
	"context"

	"skynet/internal/application/request/dto"
	"skynet/internal/domain/request"
	"skynet/internal/shared/logger"
)

type GetRequestQuery struct {
	RequestID uint
}

type GetRequestUseCase struct {
	requestRepo request.RequestRepository
	logger      logger.Interface
}

func NewGetRequestUseCase(
	requestRepo request.RequestRepository,
	logger logger.Interface,
) *GetRequestUseCase {
	return &GetRequestUseCase{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

func (uc *GetRequestUseCase) Execute(ctx context.Context, query GetRequestQuery) (*dto.RequestDTO, error) {
	uc.logger.Debugw("executing get request use case", "request_id", query.RequestID)

	r, err := uc.requestRepo.GetByID(ctx, query.RequestID)
	if err != nil {
		uc.logger.Warnw("failed to load request", "request_id", query.RequestID, "error", err)
		return nil, err
	}

	return dto.ToRequestDTO(r), nil
}
