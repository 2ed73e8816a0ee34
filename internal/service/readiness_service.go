package service

import (
	"context"
	"math"

	"github.com/brightpath-hq/be-hr-progression/internal/apperrors"
	"github.com/brightpath-hq/be-hr-progression/internal/logger"
	"github.com/brightpath-hq/be-hr-progression/internal/repository"
)

// readyThreshold is the fixed readiness score at or above which an employee
// is considered ready for the target band.
const readyThreshold = 80.0

// ReadinessService computes how qualified an employee is for a target band
// by comparing current skill ratings against the band's requirements.
type ReadinessService struct {
	employees repository.EmployeeStore
	skills    repository.SkillStore
	log       *logger.Logger
}

// NewReadinessService creates a new ReadinessService.
func NewReadinessService(
	employees repository.EmployeeStore,
	skills repository.SkillStore,
	log *logger.Logger,
) *ReadinessService {
	return &ReadinessService{employees: employees, skills: skills, log: log}
}

// SkillGap describes one requirement the employee does not yet meet.
type SkillGap struct {
	SkillID        string `json:"skill_id"`
	RequiredRating string `json:"required_rating"`
	Required       int    `json:"required"`
	Current        int    `json:"current"`
	Gap            int    `json:"gap"`
}

// ReadinessResult is the outcome of a readiness evaluation.
type ReadinessResult struct {
	EmployeeID    string          `json:"employee_id"`
	TargetBand    repository.Band `json:"target_band"`
	Score         float64         `json:"score"`
	CriteriaMet   int             `json:"criteria_met"`
	CriteriaTotal int             `json:"criteria_total"`
	SkillGaps     []SkillGap      `json:"skill_gaps"`
	IsReady       bool            `json:"is_ready"`
}

// EvaluateReadiness scores an employee against a target band's requirements.
// A band with no requirements defines no gate: score 100, ready. A required
// skill with no rating on record counts as ordinal 0.
func (s *ReadinessService) EvaluateReadiness(
	ctx context.Context,
	employeeID string,
	targetBand repository.Band,
) (*ReadinessResult, error) {
	if !KnownBand(targetBand) {
		return nil, apperrors.InvalidInput("target_band", "unknown band "+string(targetBand))
	}
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	requirements, err := s.skills.GetRoleRequirements(ctx, targetBand)
	if err != nil {
		return nil, err
	}

	result := &ReadinessResult{
		EmployeeID:    employeeID,
		TargetBand:    targetBand,
		CriteriaTotal: len(requirements),
		SkillGaps:     []SkillGap{},
	}

	if len(requirements) == 0 {
		result.Score = 100
		result.IsReady = true
		return result, nil
	}

	skills, err := s.skills.GetEmployeeSkills(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	current := make(map[string]int, len(skills))
	for _, skill := range skills {
		current[skill.SkillID] = repository.RatingOrdinal(skill.Rating)
	}

	for _, req := range requirements {
		required := repository.RatingOrdinal(req.RequiredRating)
		have := current[req.SkillID]
		if have >= required {
			result.CriteriaMet++
			continue
		}
		result.SkillGaps = append(result.SkillGaps, SkillGap{
			SkillID:        req.SkillID,
			RequiredRating: req.RequiredRating,
			Required:       required,
			Current:        have,
			Gap:            required - have,
		})
	}

	result.Score = round2(float64(result.CriteriaMet) / float64(result.CriteriaTotal) * 100)
	result.IsReady = result.Score >= readyThreshold

	s.log.Debug().
		Str("employee_id", employeeID).
		Str("target_band", string(targetBand)).
		Float64("score", result.Score).
		Int("criteria_met", result.CriteriaMet).
		Int("criteria_total", result.CriteriaTotal).
		Msg("Readiness evaluated")

	return result, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
