package dto

import (
	"time"

	"skynet/internal/domain/request"
)

type AttachmentDTO struct {
	ID         uint      `json:"id"`
	StorageKey string    `json:"storage_key"`
	CreatedAt  time.Time `json:"created_at"`
}

type RequestDTO struct {
	ID          uint            `json:"id"`
	Ticket      string          `json:"ticket"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       *string         `json:"phone"`
	Type        string          `json:"type"`
	Priority    string          `json:"priority"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Address     *string         `json:"address"`
	Latitude    *float64        `json:"latitude"`
	Longitude   *float64        `json:"longitude"`
	CreatedAt   time.Time       `json:"created_at"`
	Attachments []AttachmentDTO `json:"attachments"`
}

// File outcome statuses reported back to the submitter.
const (
	FileStatusUploaded = "uploaded"
	FileStatusFailed   = "failed"
)

// FileOutcome reports what happened to a single submitted file. Outcomes are
// always returned in submission order.
type FileOutcome struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	StorageKey string `json:"storage_key,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Message    string `json:"message,omitempty"`
}

func ToRequestDTO(r *request.Request) *RequestDTO {
	if r == nil {
		return nil
	}

	attachments := make([]AttachmentDTO, 0)
	for _, a := range r.Attachments() {
		if !a.IsActive() {
			continue
		}
		attachments = append(attachments, AttachmentDTO{
			ID:         a.ID(),
			StorageKey: a.StorageKey(),
			CreatedAt:  a.CreatedAt(),
		})
	}

	var lat, lng *float64
	if coords := r.Coordinates(); coords != nil {
		latVal := coords.Latitude()
		lngVal := coords.Longitude()
		lat = &latVal
		lng = &lngVal
	}

	return &RequestDTO{
		ID:          r.ID(),
		Ticket:      r.Ticket(),
		Name:        r.Name(),
		Email:       r.Email(),
		Phone:       r.Phone(),
		Type:        r.Type(),
		Priority:    r.Priority(),
		Description: r.Description(),
		Status:      r.Status().String(),
		Address:     r.Address(),
		Latitude:    lat,
		Longitude:   lng,
		CreatedAt:   r.CreatedAt(),
		Attachments: attachments,
	}
}

func ToRequestDTOs(requests []*request.Request) []*RequestDTO {
	dtos := make([]*RequestDTO, 0, len(requests))
	for _, r := range requests {
		dtos = append(dtos, ToRequestDTO(r))
	}
	return dtos
}
