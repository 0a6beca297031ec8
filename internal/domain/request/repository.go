package request

import "context"

// RequestRepository is the persistence port for the Request aggregate.
// Ticket uniqueness is ultimately enforced by a unique index at the store
// level; ExistsByTicket only narrows the race window before insert.
type RequestRepository interface {
	Save(ctx context.Context, r *Request) error
	SaveAttachment(ctx context.Context, a *Attachment) error
	GetByID(ctx context.Context, id uint) (*Request, error)
	GetByTicket(ctx context.Context, ticket string) (*Request, error)
	List(ctx context.Context) ([]*Request, error)
	ExistsByTicket(ctx context.Context, ticket string) (bool, error)
	Delete(ctx context.Context, id uint) error
	DeleteAttachmentsByRequestID(ctx context.Context, requestID uint) error
}
