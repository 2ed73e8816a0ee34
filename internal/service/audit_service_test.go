package service

import (
	"context"
	"testing"

	"github.com/brightpath-hq/be-hr-progression/internal/repository"
)

func TestGetEmployeeHistory_NewestRequestFirstAuditAscending(t *testing.T) {
	env := newTestEnv()
	env.seedManagerAndReport("mgr-1", "emp-1")

	first := initiate(t, env, "emp-1", repository.BandC)
	if _, err := env.workflow.Approve(context.Background(), first.ID, "mgr-1", repository.RoleLineManager, true, nil); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := env.workflow.Reject(context.Background(), first.ID, "cp-1", repository.RoleCapabilityPartner, strPtr("gaps remain")); err != nil {
		t.Fatalf("reject: %v", err)
	}

	// First request is terminal; a second one can open.
	second := initiate(t, env, "emp-1", repository.BandC)

	history, err := env.audit.GetEmployeeHistory(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 requests in history, got %d", len(history))
	}
	if history[0].Request.ID != second.ID {
		t.Fatal("newest request must come first")
	}
	if history[1].Request.ID != first.ID {
		t.Fatal("older request must come last")
	}

	// The rejected request carries its two decisions in chronological order.
	entries := history[1].Audit
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if entries[0].ApprovalStatus != "approved" || entries[1].ApprovalStatus != "rejected" {
		t.Fatalf("audit entries out of order: %+v", entries)
	}
	if entries[1].Timestamp.Before(entries[0].Timestamp) {
		t.Fatal("audit timestamps must be non-decreasing")
	}

	// The fresh request has no decisions yet but still serializes a list.
	if history[0].Audit == nil || len(history[0].Audit) != 0 {
		t.Fatalf("expected empty audit list, got %+v", history[0].Audit)
	}
}

func TestGetEmployeeHistory_EmptyForUnknownEmployee(t *testing.T) {
	env := newTestEnv()

	history, err := env.audit.GetEmployeeHistory(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d", len(history))
	}
}
