package request

import (
	"fmt"
	"time"

	vo "skynet/internal/domain/request/valueobjects"
)

// DefaultPriority is applied when a submission leaves the priority blank.
const DefaultPriority = "normal"

// Request is the aggregate root for a support request. It owns its
// attachments exclusively; attachment records are created only after the
// request itself is durable.
type Request struct {
	id          uint
	ticket      string
	name        string
	email       string
	phone       *string
	requestType string
	priority    string
	description string
	status      vo.RequestStatus
	address     *string
	coordinates *vo.Coordinates
	createdAt   time.Time
	attachments []*Attachment
}

func NewRequest(
	name string,
	email string,
	phone *string,
	requestType string,
	priority string,
	description string,
	address *string,
	coordinates *vo.Coordinates,
) (*Request, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(email) == 0 {
		return nil, fmt.Errorf("email is required")
	}
	if len(requestType) == 0 {
		return nil, fmt.Errorf("request type is required")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if priority == "" {
		priority = DefaultPriority
	}

	return &Request{
		name:        name,
		email:       email,
		phone:       phone,
		requestType: requestType,
		priority:    priority,
		description: description,
		status:      vo.StatusPending,
		address:     address,
		coordinates: coordinates,
		createdAt:   time.Now().UTC(),
		attachments: []*Attachment{},
	}, nil
}

func ReconstructRequest(
	id uint,
	ticket string,
	name string,
	email string,
	phone *string,
	requestType string,
	priority string,
	description string,
	status vo.RequestStatus,
	address *string,
	coordinates *vo.Coordinates,
	createdAt time.Time,
	attachments []*Attachment,
) (*Request, error) {
	if id == 0 {
		return nil, fmt.Errorf("request ID cannot be zero")
	}
	if len(ticket) == 0 {
		return nil, fmt.Errorf("ticket is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	if attachments == nil {
		attachments = []*Attachment{}
	}

	return &Request{
		id:          id,
		ticket:      ticket,
		name:        name,
		email:       email,
		phone:       phone,
		requestType: requestType,
		priority:    priority,
		description: description,
		status:      status,
		address:     address,
		coordinates: coordinates,
		createdAt:   createdAt,
		attachments: attachments,
	}, nil
}

func (r *Request) ID() uint {
	return r.id
}

func (r *Request) Ticket() string {
	return r.ticket
}

func (r *Request) Name() string {
	return r.name
}

func (r *Request) Email() string {
	return r.email
}

func (r *Request) Phone() *string {
	return r.phone
}

func (r *Request) Type() string {
	return r.requestType
}

func (r *Request) Priority() string {
	return r.priority
}

func (r *Request) Description() string {
	return r.description
}

func (r *Request) Status() vo.RequestStatus {
	return r.status
}

func (r *Request) Address() *string {
	return r.address
}

func (r *Request) Coordinates() *vo.Coordinates {
	return r.coordinates
}

func (r *Request) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Request) Attachments() []*Attachment {
	attachmentsCopy := make([]*Attachment, len(r.attachments))
	copy(attachmentsCopy, r.attachments)
	return attachmentsCopy
}

// SetID assigns the store-generated identifier exactly once.
func (r *Request) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("request ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("request ID cannot be zero")
	}
	r.id = id
	return nil
}

// SetTicket assigns the human-facing ticket code exactly once. The code is
// immutable afterwards.
func (r *Request) SetTicket(ticket string) error {
	if len(r.ticket) > 0 {
		return fmt.Errorf("ticket is already set")
	}
	if len(ticket) == 0 {
		return fmt.Errorf("ticket cannot be empty")
	}
	r.ticket = ticket
	return nil
}

// ChangeStatus moves the request along the lifecycle state machine.
func (r *Request) ChangeStatus(newStatus vo.RequestStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}

	if r.status == newStatus {
		return nil
	}

	if !r.status.CanTransitionTo(newStatus) {
		return fmt.Errorf("cannot transition from %s to %s", r.status, newStatus)
	}

	r.status = newStatus
	return nil
}

// AddAttachment records an attachment owned by this request. The parent must
// already be persisted since attachments reference its id.
func (r *Request) AddAttachment(a *Attachment) error {
	if a == nil {
		return fmt.Errorf("attachment cannot be nil")
	}
	if r.id == 0 {
		return fmt.Errorf("request must be persisted before attaching files")
	}
	if a.RequestID() != r.id {
		return fmt.Errorf("attachment request ID mismatch")
	}

	r.attachments = append(r.attachments, a)
	return nil
}
