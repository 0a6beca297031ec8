package valueobjects

import "fmt"

// RequestStatus is the closed, ordered set of lifecycle states for a support
// request. A request starts pending; resolved and cancelled are terminal.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusInProgress RequestStatus = "in_progress"
	StatusResolved   RequestStatus = "resolved"
	StatusCancelled  RequestStatus = "cancelled"
)

var validRequestStatuses = map[RequestStatus]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusResolved:   true,
	StatusCancelled:  true,
}

var requestStatusTransitions = map[RequestStatus][]RequestStatus{
	StatusPending: {
		StatusInProgress,
		StatusCancelled,
	},
	StatusInProgress: {
		StatusResolved,
		StatusCancelled,
	},
	StatusResolved:  {},
	StatusCancelled: {},
}

// requestStatusOrder reflects the intended progression of the state machine.
var requestStatusOrder = map[RequestStatus]int{
	StatusPending:    0,
	StatusInProgress: 1,
	StatusResolved:   2,
	StatusCancelled:  3,
}

func (rs RequestStatus) String() string {
	return string(rs)
}

func (rs RequestStatus) IsValid() bool {
	return validRequestStatuses[rs]
}

func (rs RequestStatus) CanTransitionTo(newStatus RequestStatus) bool {
	allowedTransitions, ok := requestStatusTransitions[rs]
	if !ok {
		return false
	}

	for _, allowed := range allowedTransitions {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func (rs RequestStatus) IsPending() bool {
	return rs == StatusPending
}

func (rs RequestStatus) IsInProgress() bool {
	return rs == StatusInProgress
}

func (rs RequestStatus) IsTerminal() bool {
	return rs == StatusResolved || rs == StatusCancelled
}

// Order returns the position of the status in the intended progression.
func (rs RequestStatus) Order() int {
	return requestStatusOrder[rs]
}

func NewRequestStatus(s string) (RequestStatus, error) {
	rs := RequestStatus(s)
	if !rs.IsValid() {
		return "", fmt.Errorf("invalid request status: %s", s)
	}
	return rs, nil
}
