package usecases

import (
	"context"

	"skynet/internal/domain/request"
)

type mockRequestRepository struct {
	SaveFunc                         func(ctx context.Context, r *request.Request) error
	SaveAttachmentFunc               func(ctx context.Context, a *request.Attachment) error
	GetByIDFunc                      func(ctx context.Context, id uint) (*request.Request, error)
	GetByTicketFunc                  func(ctx context.Context, ticket string) (*request.Request, error)
	ListFunc                         func(ctx context.Context) ([]*request.Request, error)
	ExistsByTicketFunc               func(ctx context.Context, ticket string) (bool, error)
	DeleteFunc                       func(ctx context.Context, id uint) error
	DeleteAttachmentsByRequestIDFunc func(ctx context.Context, requestID uint) error
}

func (m *mockRequestRepository) Save(ctx context.Context, r *request.Request) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, r)
	}
	return r.SetID(1)
}

func (m *mockRequestRepository) SaveAttachment(ctx context.Context, a *request.Attachment) error {
	if m.SaveAttachmentFunc != nil {
		return m.SaveAttachmentFunc(ctx, a)
	}
	return nil
}

func (m *mockRequestRepository) GetByID(ctx context.Context, id uint) (*request.Request, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRequestRepository) GetByTicket(ctx context.Context, ticket string) (*request.Request, error) {
	if m.GetByTicketFunc != nil {
		return m.GetByTicketFunc(ctx, ticket)
	}
	return nil, nil
}

func (m *mockRequestRepository) List(ctx context.Context) ([]*request.Request, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockRequestRepository) ExistsByTicket(ctx context.Context, ticket string) (bool, error) {
	if m.ExistsByTicketFunc != nil {
		return m.ExistsByTicketFunc(ctx, ticket)
	}
	return false, nil
}

func (m *mockRequestRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockRequestRepository) DeleteAttachmentsByRequestID(ctx context.Context, requestID uint) error {
	if m.DeleteAttachmentsByRequestIDFunc != nil {
		return m.DeleteAttachmentsByRequestIDFunc(ctx, requestID)
	}
	return nil
}

type mockTicketGenerator struct {
	GenerateFunc func(ctx context.Context) (string, error)
}

func (m *mockTicketGenerator) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return "SKY-20260831-ABC234", nil
}

type mockUploader struct {
	UploadFunc func(ctx context.Context, ticket string, file UploadFile) (string, error)
}

func (m *mockUploader) Upload(ctx context.Context, ticket string, file UploadFile) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, ticket, file)
	}
	return "solicitudes/" + ticket + "/" + file.Name, nil
}

type mockNotifier struct {
	SendRequestConfirmationFunc func(ctx context.Context, email, name, ticket string) error
	calls                       int
}

func (m *mockNotifier) SendRequestConfirmation(ctx context.Context, email, name, ticket string) error {
	m.calls++
	if m.SendRequestConfirmationFunc != nil {
		return m.SendRequestConfirmationFunc(ctx, email, name, ticket)
	}
	return nil
}

type mockTransactionManager struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}
