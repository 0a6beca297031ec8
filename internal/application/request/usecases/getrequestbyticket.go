package usecases

import (
	"context"
	"strings"

	"skynet/internal/application/request/dto"
	"skynet/internal/domain/request"
	apperrors "skynet/internal/shared/errors"
	"skynet/internal/shared/logger"
)

type GetRequestByTicketQuery struct {
	Ticket string
}

type GetRequestByTicketUseCase struct {
	requestRepo request.RequestRepository
	logger      logger.Interface
}

func NewGetRequestByTicketUseCase(
	requestRepo request.RequestRepository,
	logger logger.Interface,
) *GetRequestByTicketUseCase {
	return &GetRequestByTicketUseCase{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

func (uc *GetRequestByTicketUseCase) Execute(ctx context.Context, query GetRequestByTicketQuery) (*dto.RequestDTO, error) {
	ticket := strings.TrimSpace(query.Ticket)
	if ticket == "" {
		return nil, apperrors.NewBadRequestError("ticket is required")
	}

	uc.logger.Debugw("executing get request by ticket use case", "ticket", ticket)

	r, err := uc.requestRepo.GetByTicket(ctx, ticket)
	if err != nil {
		uc.logger.Warnw("failed to load request by ticket", "ticket", ticket, "error", err)
		return nil, err
	}

	return dto.ToRequestDTO(r), nil
}
