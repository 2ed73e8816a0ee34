package service

import (
	"context"

	"github.com/brightpath-hq/be-hr-progression/internal/logger"
	"github.com/brightpath-hq/be-hr-progression/internal/repository"
)

// Authority decision reason strings. Callers and the UI rely on these being
// stable.
const (
	ReasonRoleCannotAssess  = "Only Line Managers and Delivery Managers can assess skills"
	ReasonDirectReport      = "Direct report"
	ReasonProjectAssignment = "Project assignment"
	ReasonSameLocation      = "Same location (Delivery Manager)"
	ReasonNoAuthority       = "No authority over employee"
)

// AuthorityService decides whether an assessor or approver has standing over
// a target employee.
type AuthorityService struct {
	employees repository.EmployeeStore
	log       *logger.Logger
}

// NewAuthorityService creates a new AuthorityService.
func NewAuthorityService(employees repository.EmployeeStore, log *logger.Logger) *AuthorityService {
	return &AuthorityService{employees: employees, log: log}
}

// CanAssess reports whether the assessor may act on behalf of the target
// employee, and why. Authority derives from a direct-report relationship, a
// project assignment, or (Delivery Managers only) a shared location. Line
// Managers get no location-based fallback.
func (s *AuthorityService) CanAssess(
	ctx context.Context,
	assessorID string,
	assessorRole repository.Role,
	targetID string,
) (bool, string, error) {
	if assessorRole != repository.RoleLineManager && assessorRole != repository.RoleDeliveryManager {
		return false, ReasonRoleCannotAssess, nil
	}

	target, err := s.employees.GetByID(ctx, targetID)
	if err != nil {
		return false, "", err
	}

	if target.LineManagerID != nil && *target.LineManagerID == assessorID {
		return true, ReasonDirectReport, nil
	}

	assigned, err := s.employees.HasProjectAssignment(ctx, targetID, assessorID)
	if err != nil {
		return false, "", err
	}
	if assigned {
		return true, ReasonProjectAssignment, nil
	}

	if assessorRole == repository.RoleDeliveryManager {
		assessor, err := s.employees.GetByID(ctx, assessorID)
		if err != nil {
			return false, "", err
		}
		if assessor.LocationID != nil && target.LocationID != nil &&
			*assessor.LocationID == *target.LocationID {
			return true, ReasonSameLocation, nil
		}
	}

	return false, ReasonNoAuthority, nil
}

// GetAssessableEmployees returns every employee the assessor has standing
// over: direct reports, project-assigned employees, and (Delivery Managers
// only) location peers. Each employee appears once even when reachable
// through multiple relationships; the assessor is never included.
func (s *AuthorityService) GetAssessableEmployees(
	ctx context.Context,
	assessorID string,
	role repository.Role,
) ([]*repository.Employee, error) {
	if role != repository.RoleLineManager && role != repository.RoleDeliveryManager {
		return []*repository.Employee{}, nil
	}

	seen := make(map[string]bool)
	var out []*repository.Employee

	add := func(emps []*repository.Employee) {
		for _, emp := range emps {
			if emp.ID == assessorID || seen[emp.ID] {
				continue
			}
			seen[emp.ID] = true
			out = append(out, emp)
		}
	}

	reports, err := s.employees.GetDirectReports(ctx, assessorID)
	if err != nil {
		return nil, err
	}
	add(reports)

	assigned, err := s.employees.GetProjectAssignedEmployees(ctx, assessorID)
	if err != nil {
		return nil, err
	}
	add(assigned)

	if role == repository.RoleDeliveryManager {
		assessor, err := s.employees.GetByID(ctx, assessorID)
		if err != nil {
			return nil, err
		}
		if assessor.LocationID != nil {
			peers, err := s.employees.GetByLocation(ctx, *assessor.LocationID)
			if err != nil {
				return nil, err
			}
			add(peers)
		}
	}

	if out == nil {
		out = []*repository.Employee{}
	}
	return out, nil
}
