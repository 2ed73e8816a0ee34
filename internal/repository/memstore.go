package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brightpath-hq/be-hr-progression/internal/apperrors"
)

// MemoryStore is a complete in-memory implementation of every store
// interface, exposed through typed views (Requests, Audit, Employees,
// Skills). It backs the service tests so they exercise the exact store
// contract production runs against — the services never grow a
// null-session code path.
type MemoryStore struct {
	mu sync.Mutex

	requests    map[string]*LevelMovementRequest
	audits      []*ApprovalAuditEntry
	employees   map[string]*Employee
	assignments []*EmployeeProjectAssignment
	skills      []*EmployeeSkill
	bandReqs    []*RoleRequirement
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		requests:  make(map[string]*LevelMovementRequest),
		employees: make(map[string]*Employee),
	}
}

// Requests returns the RequestStore view.
func (m *MemoryStore) Requests() RequestStore { return memRequests{m} }

// Audit returns the AuditStore view.
func (m *MemoryStore) Audit() AuditStore { return memAudit{m} }

// Employees returns the EmployeeStore view.
func (m *MemoryStore) Employees() EmployeeStore { return memEmployees{m} }

// Skills returns the SkillStore view.
func (m *MemoryStore) Skills() SkillStore { return memSkills{m} }

// ── Seed and inspection helpers ──────────────────────────────────────────────

// AddEmployee seeds an employee record.
func (m *MemoryStore) AddEmployee(emp *Employee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *emp
	m.employees[emp.ID] = &cp
}

// AddProjectAssignment seeds a project assignment.
func (m *MemoryStore) AddProjectAssignment(a EmployeeProjectAssignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments = append(m.assignments, &a)
}

// AddEmployeeSkill seeds a skill rating.
func (m *MemoryStore) AddEmployeeSkill(s EmployeeSkill) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skills = append(m.skills, &s)
}

// AddRoleRequirement seeds a band requirement.
func (m *MemoryStore) AddRoleRequirement(r RoleRequirement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bandReqs = append(m.bandReqs, &r)
}

// AuditCount returns the total number of audit entries across all requests.
func (m *MemoryStore) AuditCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.audits)
}

// ── RequestStore view ────────────────────────────────────────────────────────

type memRequests struct{ m *MemoryStore }

// Create inserts a request, rejecting a second open request for the same
// employee under the same lock that performs the insert.
func (v memRequests) Create(ctx context.Context, req *LevelMovementRequest) error {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.requests {
		if existing.EmployeeID == req.EmployeeID && !existing.Status.IsTerminal() {
			return apperrors.Conflict("employee already has an open level movement request")
		}
	}

	now := time.Now()
	req.ID = uuid.NewString()
	req.SubmissionDate = now
	req.CreatedAt = now
	req.UpdatedAt = now

	cp := *req
	m.requests[req.ID] = &cp
	return nil
}

func (v memRequests) GetByID(ctx context.Context, id string) (*LevelMovementRequest, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()

	req, ok := m.requests[id]
	if !ok {
		return nil, apperrors.NotFound("level_movement_request", id)
	}
	cp := *req
	return &cp, nil
}

func (v memRequests) GetOpenByEmployee(ctx context.Context, employeeID string) (*LevelMovementRequest, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, req := range m.requests {
		if req.EmployeeID == employeeID && !req.Status.IsTerminal() {
			cp := *req
			return &cp, nil
		}
	}
	return nil, nil
}

func (v memRequests) GetByStatuses(ctx context.Context, statuses []RequestStatus) ([]*LevelMovementRequest, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()

	want := make(map[RequestStatus]bool, len(statuses))
	for _, s := range statuses {
		want[s] = true
	}

	var out []*LevelMovementRequest
	for _, req := range m.requests {
		if want[req.Status] {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmissionDate.Before(out[j].SubmissionDate)
	})
	return out, nil
}

func (v memRequests) ListByEmployee(ctx context.Context, employeeID string) ([]*LevelMovementRequest, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*LevelMovementRequest
	for _, req := range m.requests {
		if req.EmployeeID == employeeID {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmissionDate.After(out[j].SubmissionDate)
	})
	return out, nil
}

// ApplyTransition applies the request update, audit append and optional band
// update under one lock, mirroring the single-transaction guarantee of the
// pgx store.
func (v memRequests) ApplyTransition(
	ctx context.Context,
	req *LevelMovementRequest,
	audit *ApprovalAuditEntry,
	newBand *Band,
) error {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.requests[req.ID]
	if !ok {
		return apperrors.NotFound("level_movement_request", req.ID)
	}
	if newBand != nil {
		if _, ok := m.employees[req.EmployeeID]; !ok {
			return apperrors.NotFound("employee", req.EmployeeID)
		}
	}

	now := time.Now()
	stored.Status = req.Status
	stored.ManagerApprovalDate = req.ManagerApprovalDate
	stored.CPApprovalDate = req.CPApprovalDate
	stored.HRApprovalDate = req.HRApprovalDate
	stored.CompletedDate = req.CompletedDate
	stored.RejectionReason = req.RejectionReason
	stored.UpdatedAt = now
	req.UpdatedAt = now

	audit.ID = uuid.NewString()
	audit.Timestamp = now
	cp := *audit
	m.audits = append(m.audits, &cp)

	if newBand != nil {
		m.employees[req.EmployeeID].Band = *newBand
	}

	return nil
}

// ── AuditStore view ──────────────────────────────────────────────────────────

type memAudit struct{ m *MemoryStore }

func (v memAudit) GetByRequestID(ctx context.Context, requestID string) ([]*ApprovalAuditEntry, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*ApprovalAuditEntry
	for _, e := range m.audits {
		if e.RequestID == requestID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// ── EmployeeStore view ───────────────────────────────────────────────────────

type memEmployees struct{ m *MemoryStore }

func (v memEmployees) GetByID(ctx context.Context, id string) (*Employee, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()

	emp, ok := m.employees[id]
	if !ok {
		return nil, apperrors.NotFound("employee", id)
	}
	cp := *emp
	return &cp, nil
}

func (v memEmployees) GetDirectReports(ctx context.Context, managerID string) ([]*Employee, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Employee
	for _, emp := range m.employees {
		if emp.LineManagerID != nil && *emp.LineManagerID == managerID {
			cp := *emp
			out = append(out, &cp)
		}
	}
	sortEmployees(out)
	return out, nil
}

func (v memEmployees) HasProjectAssignment(ctx context.Context, employeeID, managerID string) (bool, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.assignments {
		if a.EmployeeID == employeeID && a.LineManagerID == managerID {
			return true, nil
		}
	}
	return false, nil
}

func (v memEmployees) GetProjectAssignedEmployees(ctx context.Context, managerID string) ([]*Employee, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool)
	var out []*Employee
	for _, a := range m.assignments {
		if a.LineManagerID != managerID || seen[a.EmployeeID] {
			continue
		}
		seen[a.EmployeeID] = true
		if emp, ok := m.employees[a.EmployeeID]; ok {
			cp := *emp
			out = append(out, &cp)
		}
	}
	sortEmployees(out)
	return out, nil
}

func (v memEmployees) GetByLocation(ctx context.Context, locationID string) ([]*Employee, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Employee
	for _, emp := range m.employees {
		if emp.LocationID != nil && *emp.LocationID == locationID {
			cp := *emp
			out = append(out, &cp)
		}
	}
	sortEmployees(out)
	return out, nil
}

// ── SkillStore view ──────────────────────────────────────────────────────────

type memSkills struct{ m *MemoryStore }

func (v memSkills) GetEmployeeSkills(ctx context.Context, employeeID string) ([]*EmployeeSkill, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*EmployeeSkill
	for _, s := range m.skills {
		if s.EmployeeID == employeeID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (v memSkills) GetRoleRequirements(ctx context.Context, band Band) ([]*RoleRequirement, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*RoleRequirement
	for _, r := range m.bandReqs {
		if r.Band == band {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func sortEmployees(emps []*Employee) {
	sort.Slice(emps, func(i, j int) bool { return emps[i].Name < emps[j].Name })
}
