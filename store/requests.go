/*
requests.go - Request collections and their state transitions

PURPOSE:
  The RequestStore owns the leave-request and encashment collections:
  submission (pending), the single pending -> approved/rejected
  transition, and publication of collection snapshots to observers.

NO VALIDATION HERE:
  Submission performs no eligibility checks. Callers validate through the
  policy engine first; the store persists whatever it is handed. This
  keeps the engine's rules in one place instead of duplicated as store
  guards.

OBSERVATION MODEL:
  Both collections are exposed as replay-then-push streams: a new
  subscriber immediately receives the current snapshot, then every
  subsequent mutation publishes a fresh one.

CONCURRENCY:
  One mutex serializes all request mutations. Approval deducts through
  the ledger, which additionally locks the employee record - validate-
  then-deduct can never interleave with another deduction on the same
  balance.

SEE ALSO:
  - leave/engine.go: Pre-submission validation
  - ledger.go: Balance deduction on approval
*/
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/pubsub"
)

// =============================================================================
// REQUEST STORE
// =============================================================================

type RequestStore struct {
	mu     sync.Mutex
	ledger *BalanceLedger
	clock  leave.Clock

	leaves      []*leave.LeaveRequest
	leaveByID   map[string]*leave.LeaveRequest
	encashments []*leave.LeaveEncashment
	encashByID  map[string]*leave.LeaveEncashment

	leaveStream  *pubsub.Subject[[]leave.LeaveRequest]
	encashStream *pubsub.Subject[[]leave.LeaveEncashment]
}

func NewRequestStore(ledger *BalanceLedger, clock leave.Clock) *RequestStore {
	if clock == nil {
		clock = leave.SystemClock
	}
	return &RequestStore{
		ledger:       ledger,
		clock:        clock,
		leaveByID:    make(map[string]*leave.LeaveRequest),
		encashByID:   make(map[string]*leave.LeaveEncashment),
		leaveStream:  pubsub.NewSubjectWithValue([]leave.LeaveRequest{}),
		encashStream: pubsub.NewSubjectWithValue([]leave.LeaveEncashment{}),
	}
}

// =============================================================================
// SUBMISSION
// =============================================================================

// SubmitLeave assigns an id and applied date, marks the request pending,
// appends it, and publishes the updated collection. Returns the stored
// request.
func (s *RequestStore) SubmitLeave(req leave.LeaveRequest) leave.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = uuid.NewString()
	req.AppliedDate = s.clock()
	req.Status = leave.StatusPending
	req.ApprovedDate = nil
	req.ApprovedBy = ""
	req.Comments = ""

	stored := req
	s.leaves = append(s.leaves, &stored)
	s.leaveByID[stored.ID] = &stored
	s.publishLeavesLocked()
	return stored
}

// SubmitEncashment mirrors SubmitLeave for encashment requests.
func (s *RequestStore) SubmitEncashment(req leave.LeaveEncashment) leave.LeaveEncashment {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = uuid.NewString()
	req.AppliedDate = s.clock()
	req.Status = leave.StatusPending
	req.ApprovedBy = ""

	stored := req
	s.encashments = append(s.encashments, &stored)
	s.encashByID[stored.ID] = &stored
	s.publishEncashmentsLocked()
	return stored
}

// =============================================================================
// LEAVE TRANSITIONS
// =============================================================================

// ApproveLeave transitions a pending request to approved, deducts its
// chargeable days from the employee's balance, and republishes.
//
// The deduction runs before the status flips: if the employee reference
// is broken the request stays pending and the error surfaces, instead of
// marking an approval that never touched a balance.
func (s *RequestStore) ApproveLeave(ctx context.Context, id, approverID, comments string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.leaveByID[id]
	if !ok {
		return leave.ErrRequestNotFound
	}
	if req.Status.Terminal() {
		return leave.ErrTerminalState
	}

	if err := s.ledger.Deduct(ctx, req.EmployeeID, req.LeaveType, req.TotalDays, req.ID, req.Reason, approverID); err != nil {
		return err
	}

	now := s.clock()
	req.Status = leave.StatusApproved
	req.ApprovedBy = approverID
	req.ApprovedDate = &now
	req.Comments = comments
	s.publishLeavesLocked()
	return nil
}

// RejectLeave transitions a pending request to rejected with approver
// metadata. Balances are never touched on rejection.
func (s *RequestStore) RejectLeave(id, approverID, comments string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.leaveByID[id]
	if !ok {
		return leave.ErrRequestNotFound
	}
	if req.Status.Terminal() {
		return leave.ErrTerminalState
	}

	now := s.clock()
	req.Status = leave.StatusRejected
	req.ApprovedBy = approverID
	req.ApprovedDate = &now
	req.Comments = comments
	s.publishLeavesLocked()
	return nil
}

// =============================================================================
// ENCASHMENT TRANSITIONS
// =============================================================================

// ApproveEncashment transitions a pending encashment to approved and
// deducts the encashed days from the matching pool.
func (s *RequestStore) ApproveEncashment(ctx context.Context, id, approverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.encashByID[id]
	if !ok {
		return leave.ErrRequestNotFound
	}
	if req.Status.Terminal() {
		return leave.ErrTerminalState
	}

	if err := s.ledger.Deduct(ctx, req.EmployeeID, req.LeaveType, req.DaysToEncash, req.ID, "leave encashment", approverID); err != nil {
		return err
	}

	req.Status = leave.StatusApproved
	req.ApprovedBy = approverID
	s.publishEncashmentsLocked()
	return nil
}

// RejectEncashment persists the rejected status without touching any
// balance. The source system only surfaced a transient notification here
// and never stored the rejection; persisting it keeps the encashment
// lifecycle symmetric with leave requests.
func (s *RequestStore) RejectEncashment(id, approverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.encashByID[id]
	if !ok {
		return leave.ErrRequestNotFound
	}
	if req.Status.Terminal() {
		return leave.ErrTerminalState
	}

	req.Status = leave.StatusRejected
	req.ApprovedBy = approverID
	s.publishEncashmentsLocked()
	return nil
}

// =============================================================================
// READS AND STREAMS
// =============================================================================

// ListLeave returns a snapshot of all leave requests in submission order.
func (s *RequestStore) ListLeave() []leave.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leaveSnapshotLocked()
}

// ListEncashments returns a snapshot of all encashment requests.
func (s *RequestStore) ListEncashments() []leave.LeaveEncashment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.encashSnapshotLocked()
}

// GetLeave returns a copy of one leave request.
func (s *RequestStore) GetLeave(id string) (leave.LeaveRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.leaveByID[id]
	if !ok {
		return leave.LeaveRequest{}, false
	}
	return *req, true
}

// GetEncashment returns a copy of one encashment request.
func (s *RequestStore) GetEncashment(id string) (leave.LeaveEncashment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.encashByID[id]
	if !ok {
		return leave.LeaveEncashment{}, false
	}
	return *req, true
}

// LeaveRequests is the observable leave collection: replays the current
// snapshot to new subscribers, then pushes on every mutation.
func (s *RequestStore) LeaveRequests() (<-chan []leave.LeaveRequest, func()) {
	return s.leaveStream.Subscribe()
}

// Encashments is the observable encashment collection.
func (s *RequestStore) Encashments() (<-chan []leave.LeaveEncashment, func()) {
	return s.encashStream.Subscribe()
}

func (s *RequestStore) leaveSnapshotLocked() []leave.LeaveRequest {
	out := make([]leave.LeaveRequest, len(s.leaves))
	for i, r := range s.leaves {
		out[i] = *r
	}
	return out
}

func (s *RequestStore) encashSnapshotLocked() []leave.LeaveEncashment {
	out := make([]leave.LeaveEncashment, len(s.encashments))
	for i, r := range s.encashments {
		out[i] = *r
	}
	return out
}

func (s *RequestStore) publishLeavesLocked() {
	s.leaveStream.Publish(s.leaveSnapshotLocked())
}

func (s *RequestStore) publishEncashmentsLocked() {
	s.encashStream.Publish(s.encashSnapshotLocked())
}
