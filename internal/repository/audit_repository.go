package repository

import (
	"context"

	"github.com/brightpath-hq/be-hr-progression/internal/apperrors"
	"github.com/brightpath-hq/be-hr-progression/internal/database"
)

// AuditRepository reads the append-only approval audit log. The table has no
// update or delete path; inserts happen only inside
// RequestRepository.ApplyTransition.
type AuditRepository struct {
	db *database.DB
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *database.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// GetByRequestID returns all audit entries for a request, oldest first.
func (r *AuditRepository) GetByRequestID(ctx context.Context, requestID string) ([]*ApprovalAuditEntry, error) {
	query := `
		SELECT id, request_id, approver_id, approver_role,
		       approval_status, comments, approved_at
		FROM level_movement_approval_audit
		WHERE request_id = $1
		ORDER BY approved_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, requestID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to get approval audit log")
	}
	defer rows.Close()

	var entries []*ApprovalAuditEntry
	for rows.Next() {
		entry := &ApprovalAuditEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.RequestID,
			&entry.ApproverID,
			&entry.ApproverRole,
			&entry.ApprovalStatus,
			&entry.Comments,
			&entry.Timestamp,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to scan audit entry")
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
