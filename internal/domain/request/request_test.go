package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "skynet/internal/domain/request/valueobjects"
)

func strPtr(s string) *string {
	return &s
}

func newTestRequest(t *testing.T) *Request {
	r, err := NewRequest("Ana Gómez", "ana@example.com", nil, "Soporte", "", "Falla de red", nil, nil)
	require.NoError(t, err)
	return r
}

func TestNewRequest(t *testing.T) {
	t.Run("creates pending request with UTC timestamp", func(t *testing.T) {
		r := newTestRequest(t)

		assert.Equal(t, vo.StatusPending, r.Status())
		assert.Equal(t, time.UTC, r.CreatedAt().Location())
		assert.WithinDuration(t, time.Now().UTC(), r.CreatedAt(), time.Second)
		assert.Empty(t, r.Attachments())
		assert.Zero(t, r.ID())
		assert.Empty(t, r.Ticket())
	})

	t.Run("defaults blank priority", func(t *testing.T) {
		r := newTestRequest(t)
		assert.Equal(t, DefaultPriority, r.Priority())
	})

	t.Run("keeps explicit priority", func(t *testing.T) {
		r, err := NewRequest("Ana", "ana@example.com", nil, "Soporte", "alta", "desc", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "alta", r.Priority())
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		tests := []struct {
			name                          string
			reqName, email, reqType, desc string
		}{
			{"empty name", "", "a@b.com", "Soporte", "desc"},
			{"empty email", "Ana", "", "Soporte", "desc"},
			{"empty type", "Ana", "a@b.com", "", "desc"},
			{"empty description", "Ana", "a@b.com", "Soporte", ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewRequest(tt.reqName, tt.email, nil, tt.reqType, "", tt.desc, nil, nil)
				assert.Error(t, err)
			})
		}
	})
}

func TestRequest_SetID(t *testing.T) {
	r := newTestRequest(t)

	require.NoError(t, r.SetID(42))
	assert.Equal(t, uint(42), r.ID())

	assert.Error(t, r.SetID(43), "id is write-once")
	assert.Error(t, newTestRequest(t).SetID(0))
}

func TestRequest_SetTicket(t *testing.T) {
	r := newTestRequest(t)

	require.NoError(t, r.SetTicket("SKY-20260831-ABC234"))
	assert.Equal(t, "SKY-20260831-ABC234", r.Ticket())

	assert.Error(t, r.SetTicket("SKY-20260831-XYZ789"), "ticket is immutable once assigned")
	assert.Error(t, newTestRequest(t).SetTicket(""))
}

func TestRequest_ChangeStatus(t *testing.T) {
	r := newTestRequest(t)

	require.NoError(t, r.ChangeStatus(vo.StatusInProgress))
	assert.Equal(t, vo.StatusInProgress, r.Status())

	require.NoError(t, r.ChangeStatus(vo.StatusResolved))
	assert.Error(t, r.ChangeStatus(vo.StatusInProgress), "resolved is terminal")

	assert.NoError(t, r.ChangeStatus(vo.StatusResolved), "same status is a no-op")
	assert.Error(t, r.ChangeStatus(vo.RequestStatus("bogus")))
}

func TestRequest_AddAttachment(t *testing.T) {
	t.Run("requires persisted parent", func(t *testing.T) {
		r := newTestRequest(t)
		a, err := NewAttachment(1, "solicitudes/SKY-20260831-ABC234/foto")
		require.NoError(t, err)

		assert.Error(t, r.AddAttachment(a))
	})

	t.Run("attaches to matching parent", func(t *testing.T) {
		r := newTestRequest(t)
		require.NoError(t, r.SetID(7))

		a, err := NewAttachment(7, "solicitudes/SKY-20260831-ABC234/foto")
		require.NoError(t, err)

		require.NoError(t, r.AddAttachment(a))
		assert.Len(t, r.Attachments(), 1)
	})

	t.Run("rejects mismatched parent id", func(t *testing.T) {
		r := newTestRequest(t)
		require.NoError(t, r.SetID(7))

		a, err := NewAttachment(8, "solicitudes/SKY-20260831-ABC234/foto")
		require.NoError(t, err)

		assert.Error(t, r.AddAttachment(a))
	})

	t.Run("rejects nil attachment", func(t *testing.T) {
		r := newTestRequest(t)
		require.NoError(t, r.SetID(7))
		assert.Error(t, r.AddAttachment(nil))
	})
}

func TestNewAttachment(t *testing.T) {
	t.Run("valid attachment", func(t *testing.T) {
		a, err := NewAttachment(3, "solicitudes/SKY-20260831-ABC234/archivo_xyz")
		require.NoError(t, err)
		assert.Equal(t, uint(3), a.RequestID())
		assert.True(t, a.IsActive())
		assert.Equal(t, time.UTC, a.CreatedAt().Location())
	})

	t.Run("rejects zero request id", func(t *testing.T) {
		_, err := NewAttachment(0, "key")
		assert.Error(t, err)
	})

	t.Run("rejects empty storage key", func(t *testing.T) {
		_, err := NewAttachment(3, "")
		assert.Error(t, err)
	})

	t.Run("rejects oversized storage key", func(t *testing.T) {
		long := make([]byte, MaxStorageKeyLength+1)
		for i := range long {
			long[i] = 'k'
		}
		_, err := NewAttachment(3, string(long))
		assert.Error(t, err)
	})
}

func TestReconstructRequest(t *testing.T) {
	createdAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	r, err := ReconstructRequest(
		5, "SKY-20260831-ABC234", "Ana", "ana@example.com", strPtr("5555-1234"),
		"Soporte", "normal", "Falla de red", vo.StatusPending,
		strPtr("Zona 10"), nil, createdAt, nil,
	)
	require.NoError(t, err)
	assert.Equal(t, uint(5), r.ID())
	assert.Equal(t, createdAt, r.CreatedAt())
	assert.NotNil(t, r.Attachments())

	_, err = ReconstructRequest(0, "T", "n", "e", nil, "t", "p", "d", vo.StatusPending, nil, nil, createdAt, nil)
	assert.Error(t, err)

	_, err = ReconstructRequest(5, "", "n", "e", nil, "t", "p", "d", vo.StatusPending, nil, nil, createdAt, nil)
	assert.Error(t, err)

	_, err = ReconstructRequest(5, "T", "n", "e", nil, "t", "p", "d", vo.RequestStatus("bogus"), nil, nil, createdAt, nil)
	assert.Error(t, err)
}
