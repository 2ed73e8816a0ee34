package service

import (
	"testing"

	"github.com/brightpath-hq/be-hr-progression/internal/repository"
)

func TestApprovalSequence_CoversEveryOpenStatus(t *testing.T) {
	for _, status := range repository.OpenStatuses {
		if _, ok := transitionFor(status); !ok {
			t.Fatalf("no transition defined for open status %s", status)
		}
	}
}

func TestTransitionFor_TerminalStatusesHaveNoTransition(t *testing.T) {
	for _, status := range []repository.RequestStatus{
		repository.StatusHRApproved,
		repository.StatusRejected,
		repository.StatusCompleted,
	} {
		if _, ok := transitionFor(status); ok {
			t.Fatalf("terminal status %s must not accept approvals", status)
		}
	}
}

func TestExpectedRoles_MatchesStageMapping(t *testing.T) {
	tests := []struct {
		status repository.RequestStatus
		roles  []repository.Role
	}{
		{repository.StatusPending, []repository.Role{repository.RoleLineManager}},
		{repository.StatusManagerApproved, []repository.Role{repository.RoleCapabilityPartner}},
		{repository.StatusCPApproved, []repository.Role{repository.RoleHRAdmin, repository.RoleSystemAdmin}},
	}

	for _, tc := range tests {
		got := expectedRoles(tc.status)
		if len(got) != len(tc.roles) {
			t.Fatalf("status %s: expected roles %v, got %v", tc.status, tc.roles, got)
		}
		for i, role := range tc.roles {
			if got[i] != role {
				t.Fatalf("status %s: expected roles %v, got %v", tc.status, tc.roles, got)
			}
		}
	}
}

func TestApprovalSequence_NextStates(t *testing.T) {
	tests := []struct {
		from repository.RequestStatus
		next repository.RequestStatus
	}{
		{repository.StatusPending, repository.StatusManagerApproved},
		{repository.StatusManagerApproved, repository.StatusCPApproved},
		{repository.StatusCPApproved, repository.StatusHRApproved},
	}

	for _, tc := range tests {
		tr, ok := transitionFor(tc.from)
		if !ok {
			t.Fatalf("no transition for %s", tc.from)
		}
		if tr.next != tc.next {
			t.Fatalf("approve from %s: expected %s, got %s", tc.from, tc.next, tr.next)
		}
	}
}

func TestStatusesAwaiting(t *testing.T) {
	tests := []struct {
		role     repository.Role
		statuses []repository.RequestStatus
	}{
		{repository.RoleLineManager, []repository.RequestStatus{repository.StatusPending}},
		{repository.RoleCapabilityPartner, []repository.RequestStatus{repository.StatusManagerApproved}},
		{repository.RoleHRAdmin, []repository.RequestStatus{repository.StatusCPApproved}},
		{repository.RoleSystemAdmin, []repository.RequestStatus{repository.StatusCPApproved}},
		{repository.RoleDeliveryManager, nil},
	}

	for _, tc := range tests {
		got := statusesAwaiting(tc.role)
		if len(got) != len(tc.statuses) {
			t.Fatalf("role %s: expected %v, got %v", tc.role, tc.statuses, got)
		}
		for i, s := range tc.statuses {
			if got[i] != s {
				t.Fatalf("role %s: expected %v, got %v", tc.role, tc.statuses, got)
			}
		}
	}
}
