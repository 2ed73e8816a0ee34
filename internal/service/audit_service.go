package service

import (
	"context"

	"github.com/brightpath-hq/be-hr-progression/internal/repository"
)

// AuditService reconstructs the full approval history for an employee from
// persisted requests and their audit entries. Read-only.
type AuditService struct {
	requests repository.RequestStore
	audit    repository.AuditStore
}

// NewAuditService creates a new AuditService.
func NewAuditService(requests repository.RequestStore, audit repository.AuditStore) *AuditService {
	return &AuditService{requests: requests, audit: audit}
}

// RequestHistory is one request annotated with its audit trail.
type RequestHistory struct {
	Request *repository.LevelMovementRequest `json:"request"`
	Audit   []*repository.ApprovalAuditEntry `json:"audit"`
}

// GetEmployeeHistory returns every request for an employee, newest request
// first, each with its audit entries in ascending timestamp order.
func (s *AuditService) GetEmployeeHistory(ctx context.Context, employeeID string) ([]*RequestHistory, error) {
	requests, err := s.requests.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	history := make([]*RequestHistory, 0, len(requests))
	for _, req := range requests {
		entries, err := s.audit.GetByRequestID(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []*repository.ApprovalAuditEntry{}
		}
		history = append(history, &RequestHistory{Request: req, Audit: entries})
	}
	return history, nil
}
