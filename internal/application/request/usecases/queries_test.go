package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skynet/internal/domain/request"
	vo "skynet/internal/domain/request/valueobjects"
	apperrors "skynet/internal/shared/errors"
	"skynet/internal/shared/logger"
)

func reconstructedRequest(t *testing.T, id uint, ticket string) *request.Request {
	t.Helper()
	r, err := request.ReconstructRequest(
		id, ticket, "Ana Gómez", "ana@example.com", nil,
		"Soporte", "normal", "Falla de red", vo.StatusPending,
		nil, nil, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC), nil,
	)
	require.NoError(t, err)
	return r
}

func TestGetRequest(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := &mockRequestRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*request.Request, error) {
				return reconstructedRequest(t, id, "SKY-20260831-ABC234"), nil
			},
		}
		uc := NewGetRequestUseCase(repo, logger.NewNop())

		result, err := uc.Execute(context.Background(), GetRequestQuery{RequestID: 5})
		require.NoError(t, err)
		assert.Equal(t, uint(5), result.ID)
		assert.Equal(t, "SKY-20260831-ABC234", result.Ticket)
		assert.Equal(t, "pending", result.Status)
		assert.NotNil(t, result.Attachments)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockRequestRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*request.Request, error) {
				return nil, apperrors.NewNotFoundError("request not found")
			},
		}
		uc := NewGetRequestUseCase(repo, logger.NewNop())

		_, err := uc.Execute(context.Background(), GetRequestQuery{RequestID: 99})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestGetRequestByTicket(t *testing.T) {
	t.Run("found with surrounding whitespace", func(t *testing.T) {
		var queried string
		repo := &mockRequestRepository{
			GetByTicketFunc: func(ctx context.Context, ticket string) (*request.Request, error) {
				queried = ticket
				return reconstructedRequest(t, 5, ticket), nil
			},
		}
		uc := NewGetRequestByTicketUseCase(repo, logger.NewNop())

		result, err := uc.Execute(context.Background(), GetRequestByTicketQuery{Ticket: "  SKY-20260831-ABC234  "})
		require.NoError(t, err)
		assert.Equal(t, "SKY-20260831-ABC234", queried)
		assert.Equal(t, "SKY-20260831-ABC234", result.Ticket)
	})

	t.Run("blank ticket", func(t *testing.T) {
		uc := NewGetRequestByTicketUseCase(&mockRequestRepository{}, logger.NewNop())

		_, err := uc.Execute(context.Background(), GetRequestByTicketQuery{Ticket: "   "})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeBadRequest, appErr.Type)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockRequestRepository{
			GetByTicketFunc: func(ctx context.Context, ticket string) (*request.Request, error) {
				return nil, apperrors.NewNotFoundError("request not found")
			},
		}
		uc := NewGetRequestByTicketUseCase(repo, logger.NewNop())

		_, err := uc.Execute(context.Background(), GetRequestByTicketQuery{Ticket: "SKY-20260831-ZZZZZZ"})
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestListRequests(t *testing.T) {
	t.Run("returns repository order", func(t *testing.T) {
		repo := &mockRequestRepository{
			ListFunc: func(ctx context.Context) ([]*request.Request, error) {
				return []*request.Request{
					reconstructedRequest(t, 2, "SKY-20260831-NEWER1"),
					reconstructedRequest(t, 1, "SKY-20260830-OLDER1"),
				}, nil
			},
		}
		uc := NewListRequestsUseCase(repo, logger.NewNop())

		result, err := uc.Execute(context.Background())
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "SKY-20260831-NEWER1", result[0].Ticket)
		assert.Equal(t, "SKY-20260830-OLDER1", result[1].Ticket)
	})

	t.Run("empty store yields empty slice", func(t *testing.T) {
		uc := NewListRequestsUseCase(&mockRequestRepository{}, logger.NewNop())

		result, err := uc.Execute(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &mockRequestRepository{
			ListFunc: func(ctx context.Context) ([]*request.Request, error) {
				return nil, fmt.Errorf("connection refused")
			},
		}
		uc := NewListRequestsUseCase(repo, logger.NewNop())

		_, err := uc.Execute(context.Background())
		assert.Error(t, err)
	})
}

func TestDeleteRequest(t *testing.T) {
	t.Run("deletes attachments and request in one transaction", func(t *testing.T) {
		var calls []string
		repo := &mockRequestRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*request.Request, error) {
				return reconstructedRequest(t, id, "SKY-20260831-ABC234"), nil
			},
			DeleteAttachmentsByRequestIDFunc: func(ctx context.Context, requestID uint) error {
				calls = append(calls, "attachments")
				return nil
			},
			DeleteFunc: func(ctx context.Context, id uint) error {
				calls = append(calls, "request")
				return nil
			},
		}
		txUsed := false
		tx := &mockTransactionManager{
			RunInTransactionFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
				txUsed = true
				return fn(ctx)
			},
		}
		uc := NewDeleteRequestUseCase(repo, tx, logger.NewNop())

		result, err := uc.Execute(context.Background(), DeleteRequestCommand{RequestID: 5})
		require.NoError(t, err)
		assert.True(t, txUsed)
		assert.Equal(t, []string{"attachments", "request"}, calls)
		assert.Equal(t, "SKY-20260831-ABC234", result.Ticket)
	})

	t.Run("missing request", func(t *testing.T) {
		repo := &mockRequestRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*request.Request, error) {
				return nil, apperrors.NewNotFoundError("request not found")
			},
		}
		uc := NewDeleteRequestUseCase(repo, &mockTransactionManager{}, logger.NewNop())

		_, err := uc.Execute(context.Background(), DeleteRequestCommand{RequestID: 99})
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("transaction failure rolls up", func(t *testing.T) {
		repo := &mockRequestRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*request.Request, error) {
				return reconstructedRequest(t, id, "SKY-20260831-ABC234"), nil
			},
			DeleteFunc: func(ctx context.Context, id uint) error {
				return fmt.Errorf("deadlock detected")
			},
		}
		uc := NewDeleteRequestUseCase(repo, &mockTransactionManager{}, logger.NewNop())

		_, err := uc.Execute(context.Background(), DeleteRequestCommand{RequestID: 5})
		assert.Error(t, err)
	})
}
