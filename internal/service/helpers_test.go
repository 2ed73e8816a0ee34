package service

import (
	"context"

	"github.com/brightpath-hq/be-hr-progression/internal/logger"
	"github.com/brightpath-hq/be-hr-progression/internal/repository"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", ServiceName: "test"})
}

func strPtr(s string) *string { return &s }

// recordingNotifier captures published events for assertions.
type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) PublishWorkflowEvent(
	ctx context.Context,
	eventType string,
	req *repository.LevelMovementRequest,
	actorID string,
	payload map[string]any,
) {
	n.events = append(n.events, eventType)
}

// testEnv wires all services onto one in-memory store.
type testEnv struct {
	store     *repository.MemoryStore
	readiness *ReadinessService
	authority *AuthorityService
	workflow  *WorkflowService
	audit     *AuditService
	notifier  *recordingNotifier
}

func newTestEnv() *testEnv {
	store := repository.NewMemoryStore()
	log := testLogger()
	notifier := &recordingNotifier{}

	readiness := NewReadinessService(store.Employees(), store.Skills(), log)
	authority := NewAuthorityService(store.Employees(), log)
	workflow := NewWorkflowService(store.Requests(), store.Employees(), readiness, authority, notifier, log)
	audit := NewAuditService(store.Requests(), store.Audit())

	return &testEnv{
		store:     store,
		readiness: readiness,
		authority: authority,
		workflow:  workflow,
		audit:     audit,
		notifier:  notifier,
	}
}

// seedManagerAndReport adds a line manager and one direct report at band B.
func (e *testEnv) seedManagerAndReport(managerID, employeeID string) {
	e.store.AddEmployee(&repository.Employee{
		ID:   managerID,
		Name: "Manager " + managerID,
		Band: repository.BandL1,
	})
	e.store.AddEmployee(&repository.Employee{
		ID:            employeeID,
		Name:          "Employee " + employeeID,
		Band:          repository.BandB,
		Pathway:       "Engineering",
		LineManagerID: &managerID,
	})
}
