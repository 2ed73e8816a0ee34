package repository

import "context"

// Store interfaces consumed by the service layer. Production uses the
// pgx-backed implementations in this package; tests use MemoryStore.

// RequestStore persists level movement requests and their transitions.
type RequestStore interface {
	// Create inserts a new request. Returns a conflict error when the
	// employee already has an open request (enforced by the store, not
	// just a pre-check).
	Create(ctx context.Context, req *LevelMovementRequest) error

	// GetByID returns a request or a not-found error.
	GetByID(ctx context.Context, id string) (*LevelMovementRequest, error)

	// GetOpenByEmployee returns the employee's open request, or nil when
	// none exists.
	GetOpenByEmployee(ctx context.Context, employeeID string) (*LevelMovementRequest, error)

	// GetByStatuses returns all requests currently in any of the given
	// statuses, oldest submission first.
	GetByStatuses(ctx context.Context, statuses []RequestStatus) ([]*LevelMovementRequest, error)

	// ListByEmployee returns all requests for an employee, newest
	// submission first.
	ListByEmployee(ctx context.Context, employeeID string) ([]*LevelMovementRequest, error)

	// ApplyTransition atomically persists an executed transition: the
	// request's updated status, stage timestamps and rejection reason,
	// exactly one audit entry, and, when newBand is non-nil, the
	// employee's band. Partial application must never be observable.
	ApplyTransition(ctx context.Context, req *LevelMovementRequest, audit *ApprovalAuditEntry, newBand *Band) error
}

// AuditStore reads the append-only audit log. Writes happen only through
// RequestStore.ApplyTransition.
type AuditStore interface {
	// GetByRequestID returns all entries for a request in ascending
	// timestamp order.
	GetByRequestID(ctx context.Context, requestID string) ([]*ApprovalAuditEntry, error)
}

// EmployeeStore reads the employee directory and its relationships.
type EmployeeStore interface {
	// GetByID returns an employee or a not-found error.
	GetByID(ctx context.Context, id string) (*Employee, error)

	// GetDirectReports returns employees whose line manager is managerID.
	GetDirectReports(ctx context.Context, managerID string) ([]*Employee, error)

	// HasProjectAssignment reports whether a project assignment links
	// employeeID to managerID.
	HasProjectAssignment(ctx context.Context, employeeID, managerID string) (bool, error)

	// GetProjectAssignedEmployees returns employees project-assigned to
	// managerID.
	GetProjectAssignedEmployees(ctx context.Context, managerID string) ([]*Employee, error)

	// GetByLocation returns employees at a location.
	GetByLocation(ctx context.Context, locationID string) ([]*Employee, error)
}

// SkillStore reads skill ratings and band requirements.
type SkillStore interface {
	// GetEmployeeSkills returns all skill ratings for an employee.
	GetEmployeeSkills(ctx context.Context, employeeID string) ([]*EmployeeSkill, error)

	// GetRoleRequirements returns the required ratings for a band. An
	// empty result means the band defines no gate.
	GetRoleRequirements(ctx context.Context, band Band) ([]*RoleRequirement, error)
}

var (
	_ RequestStore  = (*RequestRepository)(nil)
	_ AuditStore    = (*AuditRepository)(nil)
	_ EmployeeStore = (*EmployeeRepository)(nil)
	_ SkillStore    = (*SkillsRepository)(nil)
)
