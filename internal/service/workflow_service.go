package service

import (
	"context"
	"fmt"
	"time"

	"github.com/brightpath-hq/be-hr-progression/internal/apperrors"
	"github.com/brightpath-hq/be-hr-progression/internal/logger"
	"github.com/brightpath-hq/be-hr-progression/internal/repository"
)

// Notifier publishes workflow events. Publishing is best-effort: failures are
// handled inside the implementation and never interrupt a transition.
// The real implementation is client.NotificationPublisher.
type Notifier interface {
	PublishWorkflowEvent(ctx context.Context, eventType string, req *repository.LevelMovementRequest, actorID string, payload map[string]any)
}

// Workflow event types published after committed transitions.
const (
	EventSubmitted = "level_move_submitted"
	EventApproved  = "level_move_approved"
	EventRejected  = "level_move_rejected"
	EventCompleted = "level_move_completed"
)

// WorkflowService owns the level movement approval state machine. Every
// transition validates role-for-stage (and authority at the manager stage),
// then commits the status change, stage timestamp and one audit entry
// atomically through the request store.
type WorkflowService struct {
	requests  repository.RequestStore
	employees repository.EmployeeStore
	readiness *ReadinessService
	authority *AuthorityService
	notifier  Notifier
	log       *logger.Logger
}

// NewWorkflowService creates a new WorkflowService. notifier may be nil when
// no broker is configured.
func NewWorkflowService(
	requests repository.RequestStore,
	employees repository.EmployeeStore,
	readiness *ReadinessService,
	authority *AuthorityService,
	notifier Notifier,
	log *logger.Logger,
) *WorkflowService {
	return &WorkflowService{
		requests:  requests,
		employees: employees,
		readiness: readiness,
		authority: authority,
		notifier:  notifier,
		log:       log,
	}
}

// ── Initiation ───────────────────────────────────────────────────────────────

// InitiateRequest opens a level movement request for an employee. The
// readiness score is computed once here and frozen on the record; the
// employee's current band is snapshotted at the same moment. An employee may
// hold at most one open request; the store enforces that transactionally on
// top of the pre-check, so a race can never produce two.
func (s *WorkflowService) InitiateRequest(
	ctx context.Context,
	employeeID string,
	targetBand repository.Band,
	initiatorID string,
) (*repository.LevelMovementRequest, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !KnownBand(targetBand) {
		return nil, apperrors.InvalidInput("target_level", "unknown band "+string(targetBand))
	}
	if !IsValidProgression(emp.Band, targetBand) {
		return nil, apperrors.InvalidInput("target_level",
			fmt.Sprintf("band %s is not the next level after %s", targetBand, emp.Band))
	}

	open, err := s.requests.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, apperrors.Conflict(
			fmt.Sprintf("employee already has an open request in status %s", open.Status))
	}

	readiness, err := s.readiness.EvaluateReadiness(ctx, employeeID, targetBand)
	if err != nil {
		return nil, err
	}

	req := &repository.LevelMovementRequest{
		EmployeeID:     employeeID,
		CurrentLevel:   emp.Band,
		RequestedLevel: targetBand,
		Status:         repository.StatusPending,
		ReadinessScore: readiness.Score,
		InitiatedBy:    initiatorID,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("request_id", req.ID).
		Str("employee_id", employeeID).
		Str("current_level", string(emp.Band)).
		Str("requested_level", string(targetBand)).
		Float64("readiness_score", req.ReadinessScore).
		Msg("Level movement request initiated")

	s.notify(ctx, EventSubmitted, req, initiatorID, map[string]any{
		"readiness_score": req.ReadinessScore,
		"is_ready":        readiness.IsReady,
	})

	return req, nil
}

// ── Approval / rejection ─────────────────────────────────────────────────────

// Approve executes one decision on a request. The approver's role must match
// the current stage; at the manager stage the approver must additionally
// hold authority over the employee. A mismatch fails without any mutation
// and without an audit entry. An executed decision (approve or reject)
// commits exactly one audit entry atomically with the status change; the HR
// approval also moves the employee's band in the same transaction.
func (s *WorkflowService) Approve(
	ctx context.Context,
	requestID string,
	approverID string,
	approverRole repository.Role,
	approved bool,
	comments *string,
) (*repository.LevelMovementRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	t, open := transitionFor(req.Status)
	if !open {
		return nil, apperrors.Conflict(
			fmt.Sprintf("request is already %s and accepts no further decisions", req.Status))
	}
	if !t.roleAllowed(approverRole) {
		return nil, apperrors.Unauthorized(
			fmt.Sprintf("role %s cannot act on a request in status %s; expected %s",
				approverRole, req.Status, rolesLabel(t.roles)))
	}

	// Manager-stage approvals also require real authority over the
	// employee, not just the role.
	if req.Status == repository.StatusPending {
		ok, reason, err := s.authority.CanAssess(ctx, approverID, approverRole, req.EmployeeID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.Unauthorized(reason)
		}
	}

	now := time.Now()
	audit := &repository.ApprovalAuditEntry{
		RequestID:    req.ID,
		ApproverID:   approverID,
		ApproverRole: approverRole,
		Comments:     comments,
	}

	var newBand *repository.Band
	eventType := EventApproved

	if approved {
		req.Status = t.next
		t.stamp(req, now)
		audit.ApprovalStatus = "approved"
		if req.Status == repository.StatusHRApproved {
			band := req.RequestedLevel
			newBand = &band
		}
	} else {
		req.Status = repository.StatusRejected
		req.RejectionReason = comments
		audit.ApprovalStatus = "rejected"
		eventType = EventRejected
	}

	if err := s.requests.ApplyTransition(ctx, req, audit, newBand); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("request_id", req.ID).
		Str("employee_id", req.EmployeeID).
		Str("approver_id", approverID).
		Str("approver_role", string(approverRole)).
		Str("status", string(req.Status)).
		Bool("approved", approved).
		Msg("Level movement decision recorded")

	s.notify(ctx, eventType, req, approverID, map[string]any{
		"approver_role": string(approverRole),
	})

	return req, nil
}

// Reject is the explicit rejection alias for Approve with approved=false.
func (s *WorkflowService) Reject(
	ctx context.Context,
	requestID string,
	approverID string,
	approverRole repository.Role,
	comments *string,
) (*repository.LevelMovementRequest, error) {
	return s.Approve(ctx, requestID, approverID, approverRole, false, comments)
}

// ── Completion ───────────────────────────────────────────────────────────────

// Complete moves an HR_APPROVED request to COMPLETED. Nothing completes a
// request automatically; this is the only way in.
// TODO: confirm with the product owner whether COMPLETED should ever be set
// by payroll sync instead of this explicit call.
func (s *WorkflowService) Complete(
	ctx context.Context,
	requestID string,
	actorID string,
	actorRole repository.Role,
) (*repository.LevelMovementRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != repository.StatusHRApproved {
		return nil, apperrors.Conflict(
			fmt.Sprintf("only HR_APPROVED requests can be completed (status: %s)", req.Status))
	}
	if actorRole != repository.RoleHRAdmin && actorRole != repository.RoleSystemAdmin {
		return nil, apperrors.Unauthorized(
			fmt.Sprintf("role %s cannot complete a request", actorRole))
	}

	now := time.Now()
	req.Status = repository.StatusCompleted
	req.CompletedDate = &now

	audit := &repository.ApprovalAuditEntry{
		RequestID:      req.ID,
		ApproverID:     actorID,
		ApproverRole:   actorRole,
		ApprovalStatus: "completed",
	}

	if err := s.requests.ApplyTransition(ctx, req, audit, nil); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("request_id", req.ID).
		Str("employee_id", req.EmployeeID).
		Msg("Level movement request completed")

	s.notify(ctx, EventCompleted, req, actorID, nil)

	return req, nil
}

// ── Queries ──────────────────────────────────────────────────────────────────

// GetRequest returns one request by ID.
func (s *WorkflowService) GetRequest(ctx context.Context, id string) (*repository.LevelMovementRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// GetPendingRequests returns the requests for which the given role is the
// expected next approver — next in line, not merely open. Roles with no
// approval stage get an empty list.
func (s *WorkflowService) GetPendingRequests(ctx context.Context, role repository.Role) ([]*repository.LevelMovementRequest, error) {
	statuses := statusesAwaiting(role)
	if len(statuses) == 0 {
		return []*repository.LevelMovementRequest{}, nil
	}
	requests, err := s.requests.GetByStatuses(ctx, statuses)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []*repository.LevelMovementRequest{}
	}
	return requests, nil
}

// ── Internal helpers ─────────────────────────────────────────────────────────

func (s *WorkflowService) notify(ctx context.Context, eventType string, req *repository.LevelMovementRequest, actorID string, payload map[string]any) {
	if s.notifier == nil {
		return
	}
	s.notifier.PublishWorkflowEvent(ctx, eventType, req, actorID, payload)
}

func rolesLabel(roles []repository.Role) string {
	out := ""
	for i, r := range roles {
		if i > 0 {
			out += " or "
		}
		out += string(r)
	}
	return out
}
