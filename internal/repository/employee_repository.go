package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/brightpath-hq/be-hr-progression/internal/apperrors"
	"github.com/brightpath-hq/be-hr-progression/internal/database"
)

// EmployeeRepository reads the employee directory and its managerial
// relationships. The only write to employees is the band update executed
// inside RequestRepository.ApplyTransition.
type EmployeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new EmployeeRepository.
func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `
	id, name, band, pathway, line_manager_id, location_id, capability_owner_id
`

// GetByID retrieves an employee by primary key.
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := r.scanEmployee(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, apperrors.NotFound("employee", id)
	}
	return emp, err
}

// GetDirectReports returns employees whose line manager is managerID.
func (r *EmployeeRepository) GetDirectReports(ctx context.Context, managerID string) ([]*Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE line_manager_id = $1
		ORDER BY name ASC
	`
	return r.queryEmployees(ctx, query, managerID)
}

// HasProjectAssignment reports whether employeeID is project-assigned to
// managerID.
func (r *EmployeeRepository) HasProjectAssignment(ctx context.Context, employeeID, managerID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM employee_project_assignments
			WHERE employee_id = $1 AND line_manager_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, employeeID, managerID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to check project assignment")
	}
	return exists, nil
}

// GetProjectAssignedEmployees returns employees project-assigned to managerID.
func (r *EmployeeRepository) GetProjectAssignedEmployees(ctx context.Context, managerID string) ([]*Employee, error) {
	query := `
		SELECT DISTINCT e.id, e.name, e.band, e.pathway,
		       e.line_manager_id, e.location_id, e.capability_owner_id
		FROM employees e
		JOIN employee_project_assignments a ON a.employee_id = e.id
		WHERE a.line_manager_id = $1
		ORDER BY e.name ASC
	`
	return r.queryEmployees(ctx, query, managerID)
}

// GetByLocation returns all employees at a location.
func (r *EmployeeRepository) GetByLocation(ctx context.Context, locationID string) ([]*Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE location_id = $1
		ORDER BY name ASC
	`
	return r.queryEmployees(ctx, query, locationID)
}

// ── scan helpers ─────────────────────────────────────────────────────────────

func (r *EmployeeRepository) queryEmployees(ctx context.Context, query string, args ...any) ([]*Employee, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to query employees")
	}
	defer rows.Close()

	var employees []*Employee
	for rows.Next() {
		emp, err := r.scanEmployee(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to scan employee row")
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

type employeeScanner interface {
	Scan(dest ...any) error
}

func (r *EmployeeRepository) scanEmployee(row employeeScanner) (*Employee, error) {
	emp := &Employee{}
	err := row.Scan(
		&emp.ID,
		&emp.Name,
		&emp.Band,
		&emp.Pathway,
		&emp.LineManagerID,
		&emp.LocationID,
		&emp.CapabilityOwnerID,
	)
	if err != nil {
		return nil, err
	}
	return emp, nil
}
