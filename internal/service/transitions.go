package service

import (
	"time"

	"github.com/brightpath-hq/be-hr-progression/internal/repository"
)

// The approval sequence is a single explicit table. Each entry names the
// state, the roles allowed to act in it, the state an approval moves to, and
// the stage timestamp that approval stamps. Rejection is universal: any role
// allowed to act at the current stage may move the request to REJECTED.
type transition struct {
	from  repository.RequestStatus
	roles []repository.Role
	next  repository.RequestStatus
	stamp func(req *repository.LevelMovementRequest, at time.Time)
}

var approvalSequence = []transition{
	{
		from:  repository.StatusPending,
		roles: []repository.Role{repository.RoleLineManager},
		next:  repository.StatusManagerApproved,
		stamp: func(req *repository.LevelMovementRequest, at time.Time) {
			req.ManagerApprovalDate = &at
		},
	},
	{
		from:  repository.StatusManagerApproved,
		roles: []repository.Role{repository.RoleCapabilityPartner},
		next:  repository.StatusCPApproved,
		stamp: func(req *repository.LevelMovementRequest, at time.Time) {
			req.CPApprovalDate = &at
		},
	},
	{
		from:  repository.StatusCPApproved,
		roles: []repository.Role{repository.RoleHRAdmin, repository.RoleSystemAdmin},
		next:  repository.StatusHRApproved,
		stamp: func(req *repository.LevelMovementRequest, at time.Time) {
			req.HRApprovalDate = &at
		},
	},
}

// transitionFor returns the sequence entry for a status, or false when the
// status accepts no approval (terminal states).
func transitionFor(status repository.RequestStatus) (transition, bool) {
	for _, t := range approvalSequence {
		if t.from == status {
			return t, true
		}
	}
	return transition{}, false
}

// roleAllowed reports whether role may act on the given stage.
func (t transition) roleAllowed(role repository.Role) bool {
	for _, r := range t.roles {
		if r == role {
			return true
		}
	}
	return false
}

// expectedRoles returns the roles expected to act next for a status. Empty
// for terminal states.
func expectedRoles(status repository.RequestStatus) []repository.Role {
	t, ok := transitionFor(status)
	if !ok {
		return nil
	}
	return t.roles
}

// statusesAwaiting returns the statuses for which role is the expected next
// approver. Empty for roles with no stage of their own.
func statusesAwaiting(role repository.Role) []repository.RequestStatus {
	var out []repository.RequestStatus
	for _, t := range approvalSequence {
		if t.roleAllowed(role) {
			out = append(out, t.from)
		}
	}
	return out
}
