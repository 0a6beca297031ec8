package usecases

import (
	"context"

	"skynet/internal/domain/request"
	"skynet/internal/shared/logger"
)

type DeleteRequestCommand struct {
	RequestID uint
}

type DeleteRequestResult struct {
	RequestID uint
	Ticket    string
}

// DeleteRequestUseCase removes a request and its attachment records in one
// transaction. Content-store blobs are not touched; keys of deleted rows
// simply become unreferenced.
type DeleteRequestUseCase struct {
	requestRepo request.RequestRepository
	txManager   TransactionExecutor
	logger      logger.Interface
}

func NewDeleteRequestUseCase(
	requestRepo request.RequestRepository,
	txManager TransactionExecutor,
	logger logger.Interface,
) *DeleteRequestUseCase {
	return &DeleteRequestUseCase{
		requestRepo: requestRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *DeleteRequestUseCase) Execute(ctx context.Context, cmd DeleteRequestCommand) (*DeleteRequestResult, error) {
	uc.logger.Infow("executing delete request use case", "request_id", cmd.RequestID)

	r, err := uc.requestRepo.GetByID(ctx, cmd.RequestID)
	if err != nil {
		uc.logger.Warnw("failed to load request for deletion", "request_id", cmd.RequestID, "error", err)
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.requestRepo.DeleteAttachmentsByRequestID(txCtx, cmd.RequestID); err != nil {
			return err
		}
		return uc.requestRepo.Delete(txCtx, cmd.RequestID)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete request", "request_id", cmd.RequestID, "error", err)
		return nil, err
	}

	uc.logger.Infow("request deleted", "request_id", cmd.RequestID, "ticket", r.Ticket())
	return &DeleteRequestResult{RequestID: cmd.RequestID, Ticket: r.Ticket()}, nil
}
