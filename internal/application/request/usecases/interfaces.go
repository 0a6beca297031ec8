package usecases

import (
	"context"

	"skynet/internal/application/request/dto"
)

type CreateRequestExecutor interface {
	Execute(ctx context.Context, cmd CreateRequestCommand) (*CreateRequestResult, error)
}

type GetRequestExecutor interface {
	Execute(ctx context.Context, query GetRequestQuery) (*dto.RequestDTO, error)
}

type GetRequestByTicketExecutor interface {
	Execute(ctx context.Context, query GetRequestByTicketQuery) (*dto.RequestDTO, error)
}

type ListRequestsExecutor interface {
	Execute(ctx context.Context) ([]*dto.RequestDTO, error)
}

type DeleteRequestExecutor interface {
	Execute(ctx context.Context, cmd DeleteRequestCommand) (*DeleteRequestResult, error)
}

// Notifier sends the submitter a confirmation carrying the ticket code.
// Delivery is best effort; intake never fails because of it.
type Notifier interface {
	SendRequestConfirmation(ctx context.Context, email, name, ticket string) error
}

// TransactionExecutor runs a function inside a single database transaction.
type TransactionExecutor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
