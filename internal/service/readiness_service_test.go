package service

import (
	"context"
	"testing"

	"github.com/brightpath-hq/be-hr-progression/internal/apperrors"
	"github.com/brightpath-hq/be-hr-progression/internal/repository"
)

func TestEvaluateReadiness_NoRequirementsMeansReady(t *testing.T) {
	env := newTestEnv()
	env.seedManagerAndReport("mgr-1", "emp-1")

	result, err := env.readiness.EvaluateReadiness(context.Background(), "emp-1", repository.BandC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 100 {
		t.Fatalf("expected score 100, got %v", result.Score)
	}
	if result.CriteriaTotal != 0 {
		t.Fatalf("expected criteria_total 0, got %d", result.CriteriaTotal)
	}
	if !result.IsReady {
		t.Fatal("expected is_ready=true when no requirements exist")
	}
	if len(result.SkillGaps) != 0 {
		t.Fatalf("expected no gaps, got %d", len(result.SkillGaps))
	}
}

func TestEvaluateReadiness_HalfMetScoresFifty(t *testing.T) {
	env := newTestEnv()
	env.seedManagerAndReport("mgr-1", "emp-1")

	// Skill X: rated Advanced (4), required Intermediate (3) — met.
	// Skill Y: unrated, required Intermediate (3) — gap of 3.
	env.store.AddRoleRequirement(repository.RoleRequirement{
		Band: repository.BandC, SkillID: "skill-x", RequiredRating: "Intermediate",
	})
	env.store.AddRoleRequirement(repository.RoleRequirement{
		Band: repository.BandC, SkillID: "skill-y", RequiredRating: "Intermediate",
	})
	env.store.AddEmployeeSkill(repository.EmployeeSkill{
		EmployeeID: "emp-1", SkillID: "skill-x", Rating: "Advanced",
	})

	result, err := env.readiness.EvaluateReadiness(context.Background(), "emp-1", repository.BandC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CriteriaTotal != 2 || result.CriteriaMet != 1 {
		t.Fatalf("expected 1/2 criteria met, got %d/%d", result.CriteriaMet, result.CriteriaTotal)
	}
	if result.Score != 50.0 {
		t.Fatalf("expected score 50.0, got %v", result.Score)
	}
	if result.IsReady {
		t.Fatal("expected is_ready=false at score 50")
	}
	if len(result.SkillGaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(result.SkillGaps))
	}
	gap := result.SkillGaps[0]
	if gap.SkillID != "skill-y" || gap.Required != 3 || gap.Current != 0 || gap.Gap != 3 {
		t.Fatalf("unexpected gap: %+v", gap)
	}
}

func TestEvaluateReadiness_AllMetScoresHundred(t *testing.T) {
	env := newTestEnv()
	env.seedManagerAndReport("mgr-1", "emp-1")

	ratings := map[string]string{
		"skill-a": "Expert",
		"skill-b": "Intermediate",
	}
	for skill, required := range map[string]string{"skill-a": "Advanced", "skill-b": "Intermediate"} {
		env.store.AddRoleRequirement(repository.RoleRequirement{
			Band: repository.BandC, SkillID: skill, RequiredRating: required,
		})
	}
	for skill, rating := range ratings {
		env.store.AddEmployeeSkill(repository.EmployeeSkill{
			EmployeeID: "emp-1", SkillID: skill, Rating: rating,
		})
	}

	result, err := env.readiness.EvaluateReadiness(context.Background(), "emp-1", repository.BandC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 100 || !result.IsReady {
		t.Fatalf("expected score 100 and ready, got %v / %v", result.Score, result.IsReady)
	}
	if len(result.SkillGaps) != 0 {
		t.Fatalf("expected no gaps, got %+v", result.SkillGaps)
	}
}

func TestEvaluateReadiness_ScoreStaysInRange(t *testing.T) {
	env := newTestEnv()
	env.seedManagerAndReport("mgr-1", "emp-1")

	// Three requirements, none met.
	for _, skill := range []string{"s1", "s2", "s3"} {
		env.store.AddRoleRequirement(repository.RoleRequirement{
			Band: repository.BandC, SkillID: skill, RequiredRating: "Expert",
		})
	}

	result, err := env.readiness.EvaluateReadiness(context.Background(), "emp-1", repository.BandC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score < 0 || result.Score > 100 {
		t.Fatalf("score out of range: %v", result.Score)
	}
	if result.Score != 0 {
		t.Fatalf("expected score 0 with nothing met, got %v", result.Score)
	}
	for _, gap := range result.SkillGaps {
		if gap.Gap != gap.Required-gap.Current {
			t.Fatalf("inconsistent gap: %+v", gap)
		}
	}
}

func TestEvaluateReadiness_RoundsToTwoDecimals(t *testing.T) {
	env := newTestEnv()
	env.seedManagerAndReport("mgr-1", "emp-1")

	// 1 of 3 met → 33.333... rounds to 33.33.
	for _, skill := range []string{"s1", "s2", "s3"} {
		env.store.AddRoleRequirement(repository.RoleRequirement{
			Band: repository.BandC, SkillID: skill, RequiredRating: "Intermediate",
		})
	}
	env.store.AddEmployeeSkill(repository.EmployeeSkill{
		EmployeeID: "emp-1", SkillID: "s1", Rating: "Intermediate",
	})

	result, err := env.readiness.EvaluateReadiness(context.Background(), "emp-1", repository.BandC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 33.33 {
		t.Fatalf("expected score 33.33, got %v", result.Score)
	}
}

func TestEvaluateReadiness_UnknownBandRejected(t *testing.T) {
	env := newTestEnv()
	env.seedManagerAndReport("mgr-1", "emp-1")

	_, err := env.readiness.EvaluateReadiness(context.Background(), "emp-1", repository.Band("Z9"))
	if err == nil {
		t.Fatal("expected error for unknown band")
	}
	if apperrors.CodeOf(err) != apperrors.ErrCodeValidation {
		t.Fatalf("expected validation error, got %v", apperrors.CodeOf(err))
	}
}

func TestEvaluateReadiness_MissingEmployeeRejected(t *testing.T) {
	env := newTestEnv()

	_, err := env.readiness.EvaluateReadiness(context.Background(), "ghost", repository.BandC)
	if err == nil {
		t.Fatal("expected error for missing employee")
	}
	if apperrors.CodeOf(err) != apperrors.ErrCodeNotFound {
		t.Fatalf("expected not-found error, got %v", apperrors.CodeOf(err))
	}
}
