package repository

import "time"

// ── Bands and roles ──────────────────────────────────────────────────────────

// Band is an ordered seniority level within a career pathway.
type Band string

const (
	BandA  Band = "A"
	BandB  Band = "B"
	BandC  Band = "C"
	BandL1 Band = "L1"
	BandL2 Band = "L2"
)

// Role is a resolved approver/assessor role.
type Role string

const (
	RoleLineManager       Role = "LINE_MANAGER"
	RoleDeliveryManager   Role = "DELIVERY_MANAGER"
	RoleCapabilityPartner Role = "CAPABILITY_PARTNER"
	RoleHRAdmin           Role = "HR_ADMIN"
	RoleSystemAdmin       Role = "SYSTEM_ADMIN"
)

// ── Skill ratings ────────────────────────────────────────────────────────────

// Rating ordinals. A skill the employee has no record for counts as 0.
const (
	RatingBeginner     = 1
	RatingDeveloping   = 2
	RatingIntermediate = 3
	RatingAdvanced     = 4
	RatingExpert       = 5
)

var ratingOrdinals = map[string]int{
	"Beginner":     RatingBeginner,
	"Developing":   RatingDeveloping,
	"Intermediate": RatingIntermediate,
	"Advanced":     RatingAdvanced,
	"Expert":       RatingExpert,
}

// RatingOrdinal maps a rating name to its ordinal, 0 for unknown names.
func RatingOrdinal(rating string) int {
	return ratingOrdinals[rating]
}

// ── Request lifecycle ────────────────────────────────────────────────────────

// RequestStatus is the state of a level movement request.
type RequestStatus string

const (
	StatusPending         RequestStatus = "PENDING"
	StatusManagerApproved RequestStatus = "MANAGER_APPROVED"
	StatusCPApproved      RequestStatus = "CP_APPROVED"
	StatusHRApproved      RequestStatus = "HR_APPROVED"
	StatusRejected        RequestStatus = "REJECTED"
	StatusCompleted       RequestStatus = "COMPLETED"
)

// OpenStatuses are the non-terminal states. At most one request per employee
// may be in any of these at a time.
var OpenStatuses = []RequestStatus{StatusPending, StatusManagerApproved, StatusCPApproved}

// IsTerminal reports whether no further approval transitions are possible.
// HR_APPROVED is terminal for the approval sequence; only the explicit
// complete operation moves it further.
func (s RequestStatus) IsTerminal() bool {
	switch s {
	case StatusHRApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// LevelMovementRequest is a workflow instance tracking one promotion attempt.
// Requests are never deleted; terminal rows are kept for audit.
type LevelMovementRequest struct {
	ID                  string
	EmployeeID          string
	CurrentLevel        Band // employee's band at submission time
	RequestedLevel      Band
	Status              RequestStatus
	ReadinessScore      float64 // frozen at initiation, never recomputed
	InitiatedBy         string
	SubmissionDate      time.Time
	ManagerApprovalDate *time.Time
	CPApprovalDate      *time.Time
	HRApprovalDate      *time.Time
	CompletedDate       *time.Time
	RejectionReason     *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ApprovalAuditEntry is one immutable record of an executed transition.
// Exactly one entry is written per transition; stage-mismatch attempts that
// mutate nothing write nothing.
type ApprovalAuditEntry struct {
	ID             string
	RequestID      string
	ApproverID     string
	ApproverRole   Role
	ApprovalStatus string // "approved" | "rejected" | "completed"
	Comments       *string
	Timestamp      time.Time
}

// ── External collaborators ───────────────────────────────────────────────────

// Employee is the directory record. Read-only except for Band, which this
// engine updates exactly once per request, at the HR-approval transition.
type Employee struct {
	ID                string
	Name              string
	Band              Band
	Pathway           string
	LineManagerID     *string
	LocationID        *string
	CapabilityOwnerID *string
}

// EmployeeProjectAssignment is a secondary managerial relationship,
// independent of the primary line_manager_id.
type EmployeeProjectAssignment struct {
	EmployeeID    string
	LineManagerID string
	ProjectID     string
}

// EmployeeSkill is an employee's current rating on one skill.
type EmployeeSkill struct {
	EmployeeID string
	SkillID    string
	Rating     string
}

// RoleRequirement is one required skill rating for a band.
type RoleRequirement struct {
	Band           Band
	SkillID        string
	RequiredRating string
}
