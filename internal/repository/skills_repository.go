package repository

import (
	"context"

	"github.com/brightpath-hq/be-hr-progression/internal/apperrors"
	"github.com/brightpath-hq/be-hr-progression/internal/database"
)

// SkillsRepository reads employee skill ratings and band requirements.
// Both tables are owned by the skills/template import pipeline; this service
// only reads them.
type SkillsRepository struct {
	db *database.DB
}

// NewSkillsRepository creates a new SkillsRepository.
func NewSkillsRepository(db *database.DB) *SkillsRepository {
	return &SkillsRepository{db: db}
}

// GetEmployeeSkills returns all skill ratings recorded for an employee.
func (r *SkillsRepository) GetEmployeeSkills(ctx context.Context, employeeID string) ([]*EmployeeSkill, error) {
	query := `
		SELECT employee_id, skill_id, rating
		FROM employee_skills
		WHERE employee_id = $1
	`

	rows, err := r.db.Query(ctx, query, employeeID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to get employee skills")
	}
	defer rows.Close()

	var skills []*EmployeeSkill
	for rows.Next() {
		skill := &EmployeeSkill{}
		if err := rows.Scan(&skill.EmployeeID, &skill.SkillID, &skill.Rating); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to scan employee skill")
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}

// GetRoleRequirements returns the required skill ratings for a band.
// An empty result means the band defines no readiness gate.
func (r *SkillsRepository) GetRoleRequirements(ctx context.Context, band Band) ([]*RoleRequirement, error) {
	query := `
		SELECT band, skill_id, required_rating
		FROM role_requirements
		WHERE band = $1
		ORDER BY skill_id ASC
	`

	rows, err := r.db.Query(ctx, query, band)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to get role requirements")
	}
	defer rows.Close()

	var reqs []*RoleRequirement
	for rows.Next() {
		req := &RoleRequirement{}
		if err := rows.Scan(&req.Band, &req.SkillID, &req.RequiredRating); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to scan role requirement")
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
