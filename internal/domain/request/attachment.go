package request

import (
	"fmt"
	"time"
)

// MaxStorageKeyLength bounds the opaque reference returned by the content
// store. Keys longer than this indicate a misbehaving provider.
const MaxStorageKeyLength = 512

// Attachment is a file reference owned by exactly one Request. The storage
// key is an opaque content-store reference, never a raw provider URL.
type Attachment struct {
	id         uint
	requestID  uint
	storageKey string
	active     bool
	createdAt  time.Time
}

func NewAttachment(requestID uint, storageKey string) (*Attachment, error) {
	if requestID == 0 {
		return nil, fmt.Errorf("request ID is required")
	}
	if len(storageKey) == 0 {
		return nil, fmt.Errorf("storage key is required")
	}
	if len(storageKey) > MaxStorageKeyLength {
		return nil, fmt.Errorf("storage key exceeds maximum length of %d characters", MaxStorageKeyLength)
	}

	return &Attachment{
		requestID:  requestID,
		storageKey: storageKey,
		active:     true,
		createdAt:  time.Now().UTC(),
	}, nil
}

func ReconstructAttachment(
	id uint,
	requestID uint,
	storageKey string,
	active bool,
	createdAt time.Time,
) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if requestID == 0 {
		return nil, fmt.Errorf("request ID is required")
	}
	if len(storageKey) == 0 {
		return nil, fmt.Errorf("storage key is required")
	}

	return &Attachment{
		id:         id,
		requestID:  requestID,
		storageKey: storageKey,
		active:     active,
		createdAt:  createdAt,
	}, nil
}

func (a *Attachment) ID() uint {
	return a.id
}

func (a *Attachment) RequestID() uint {
	return a.requestID
}

func (a *Attachment) StorageKey() string {
	return a.storageKey
}

func (a *Attachment) IsActive() bool {
	return a.active
}

func (a *Attachment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}
