package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brightpath-hq/be-hr-progression/internal/apperrors"
	"github.com/brightpath-hq/be-hr-progression/internal/database"
)

// uniqueViolation is the PostgreSQL error code raised by the partial unique
// index on open requests.
const uniqueViolation = "23505"

// RequestRepository is the pgx-backed RequestStore. Transitions are always
// applied together with their audit entry in a single transaction.
type RequestRepository struct {
	db *database.DB
}

// NewRequestRepository creates a new RequestRepository.
func NewRequestRepository(db *database.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

const requestColumns = `
	id, employee_id, current_level, requested_level, status,
	readiness_score, initiated_by, submission_date,
	manager_approval_date, cp_approval_date, hr_approval_date,
	completed_date, rejection_reason,
	created_at, updated_at
`

// Create inserts a request in status PENDING. The partial unique index on
// employee_id for open statuses rejects a second open request; that
// violation is surfaced as a conflict error so a pre-check race can never
// produce two open requests.
func (r *RequestRepository) Create(ctx context.Context, req *LevelMovementRequest) error {
	query := `
		INSERT INTO level_movement_requests
		    (employee_id, current_level, requested_level, status,
		     readiness_score, initiated_by)
		VALUES ($1, $2, $3, $4::level_movement_status, $5, $6)
		RETURNING id, submission_date, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		req.EmployeeID,
		req.CurrentLevel,
		req.RequestedLevel,
		req.Status,
		req.ReadinessScore,
		req.InitiatedBy,
	).Scan(&req.ID, &req.SubmissionDate, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.Conflict("employee already has an open level movement request")
		}
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to create level movement request")
	}
	return nil
}

// GetByID retrieves a request by primary key.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*LevelMovementRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM level_movement_requests WHERE id = $1`

	req, err := r.scanRequest(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, apperrors.NotFound("level_movement_request", id)
	}
	return req, err
}

// GetOpenByEmployee returns the employee's open request, or nil when none.
func (r *RequestRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (*LevelMovementRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM level_movement_requests
		WHERE employee_id = $1
		  AND status IN ('PENDING', 'MANAGER_APPROVED', 'CP_APPROVED')
		ORDER BY submission_date DESC
		LIMIT 1
	`

	req, err := r.scanRequest(r.db.QueryRow(ctx, query, employeeID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return req, err
}

// GetByStatuses returns all requests in any of the given statuses, oldest
// submission first.
func (r *RequestRepository) GetByStatuses(ctx context.Context, statuses []RequestStatus) ([]*LevelMovementRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM level_movement_requests
		WHERE status = ANY($1)
		ORDER BY submission_date ASC
	`

	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	rows, err := r.db.Query(ctx, query, names)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to list requests by status")
	}
	defer rows.Close()

	return r.scanRows(rows)
}

// ListByEmployee returns all requests for an employee, newest first.
func (r *RequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*LevelMovementRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM level_movement_requests
		WHERE employee_id = $1
		ORDER BY submission_date DESC
	`

	rows, err := r.db.Query(ctx, query, employeeID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to list requests for employee")
	}
	defer rows.Close()

	return r.scanRows(rows)
}

// ApplyTransition persists one executed transition in a single transaction:
// request status + stage timestamps + rejection reason, exactly one audit
// entry, and the employee band update when newBand is non-nil.
func (r *RequestRepository) ApplyTransition(
	ctx context.Context,
	req *LevelMovementRequest,
	audit *ApprovalAuditEntry,
	newBand *Band,
) error {
	return r.db.InTransaction(ctx, func(tx pgx.Tx) error {
		updateQuery := `
			UPDATE level_movement_requests
			SET status                = $2::level_movement_status,
			    manager_approval_date = $3,
			    cp_approval_date      = $4,
			    hr_approval_date      = $5,
			    completed_date        = $6,
			    rejection_reason      = $7,
			    updated_at            = NOW()
			WHERE id = $1
			RETURNING updated_at
		`

		err := tx.QueryRow(ctx, updateQuery,
			req.ID,
			req.Status,
			req.ManagerApprovalDate,
			req.CPApprovalDate,
			req.HRApprovalDate,
			req.CompletedDate,
			req.RejectionReason,
		).Scan(&req.UpdatedAt)
		if err == pgx.ErrNoRows {
			return apperrors.NotFound("level_movement_request", req.ID)
		}
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to update request status")
		}

		auditQuery := `
			INSERT INTO level_movement_approval_audit
			    (request_id, approver_id, approver_role, approval_status, comments)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, approved_at
		`

		err = tx.QueryRow(ctx, auditQuery,
			audit.RequestID,
			audit.ApproverID,
			audit.ApproverRole,
			audit.ApprovalStatus,
			audit.Comments,
		).Scan(&audit.ID, &audit.Timestamp)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to append approval audit entry")
		}

		if newBand != nil {
			bandQuery := `
				UPDATE employees
				SET band = $2, updated_at = NOW()
				WHERE id = $1
				RETURNING id
			`
			var returnedID string
			err = tx.QueryRow(ctx, bandQuery, req.EmployeeID, *newBand).Scan(&returnedID)
			if err == pgx.ErrNoRows {
				return apperrors.NotFound("employee", req.EmployeeID)
			}
			if err != nil {
				return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to update employee band")
			}
		}

		return nil
	})
}

// ── scan helpers ─────────────────────────────────────────────────────────────

type requestScanner interface {
	Scan(dest ...any) error
}

func (r *RequestRepository) scanRequest(row requestScanner) (*LevelMovementRequest, error) {
	req := &LevelMovementRequest{}
	err := row.Scan(
		&req.ID,
		&req.EmployeeID,
		&req.CurrentLevel,
		&req.RequestedLevel,
		&req.Status,
		&req.ReadinessScore,
		&req.InitiatedBy,
		&req.SubmissionDate,
		&req.ManagerApprovalDate,
		&req.CPApprovalDate,
		&req.HRApprovalDate,
		&req.CompletedDate,
		&req.RejectionReason,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *RequestRepository) scanRows(rows pgx.Rows) ([]*LevelMovementRequest, error) {
	var requests []*LevelMovementRequest
	for rows.Next() {
		req, err := r.scanRequest(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to scan request row")
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
