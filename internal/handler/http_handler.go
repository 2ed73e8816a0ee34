package handler

import (
	"encoding/json"
	"net/http"

	"github.com/brightpath-hq/be-hr-progression/internal/apperrors"
	"github.com/brightpath-hq/be-hr-progression/internal/logger"
	"github.com/brightpath-hq/be-hr-progression/internal/repository"
	"github.com/brightpath-hq/be-hr-progression/internal/service"
)

// HTTPHandler wraps the exposed workflow operations. The transport carries no
// business logic: every rule lives in the service layer.
type HTTPHandler struct {
	workflow  *service.WorkflowService
	readiness *service.ReadinessService
	authority *service.AuthorityService
	audit     *service.AuditService
	log       *logger.Logger
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(
	workflow *service.WorkflowService,
	readiness *service.ReadinessService,
	authority *service.AuthorityService,
	audit *service.AuditService,
	log *logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		workflow:  workflow,
		readiness: readiness,
		authority: authority,
		audit:     audit,
		log:       log,
	}
}

// InitiateRequest handles POST /api/v1/level-movements.
func (h *HTTPHandler) InitiateRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID  string `json:"employee_id"`
		TargetLevel string `json:"target_level"`
		InitiatedBy string `json:"initiated_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.EmployeeID == "" || req.TargetLevel == "" {
		http.Error(w, "employee_id and target_level are required", http.StatusBadRequest)
		return
	}

	// TODO: take initiated_by from the auth context once the identity
	// service resolves principals for this surface.
	created, err := h.workflow.InitiateRequest(r.Context(), req.EmployeeID, repository.Band(req.TargetLevel), req.InitiatedBy)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, created)
}

// GetRequest handles GET /api/v1/level-movements/get?id=.
func (h *HTTPHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	req, err := h.workflow.GetRequest(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, req)
}

type decisionRequest struct {
	ID           string  `json:"id"`
	ApproverID   string  `json:"approver_id"`
	ApproverRole string  `json:"approver_role"`
	Approved     *bool   `json:"approved"`
	Comments     *string `json:"comments"`
}

// Approve handles POST /api/v1/level-movements/approve.
func (h *HTTPHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" || req.ApproverID == "" || req.ApproverRole == "" {
		http.Error(w, "id, approver_id and approver_role are required", http.StatusBadRequest)
		return
	}

	approved := true
	if req.Approved != nil {
		approved = *req.Approved
	}

	updated, err := h.workflow.Approve(r.Context(), req.ID, req.ApproverID,
		repository.Role(req.ApproverRole), approved, req.Comments)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

// Reject handles POST /api/v1/level-movements/reject.
func (h *HTTPHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" || req.ApproverID == "" || req.ApproverRole == "" {
		http.Error(w, "id, approver_id and approver_role are required", http.StatusBadRequest)
		return
	}

	updated, err := h.workflow.Reject(r.Context(), req.ID, req.ApproverID,
		repository.Role(req.ApproverRole), req.Comments)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

// Complete handles POST /api/v1/level-movements/complete.
func (h *HTTPHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID        string `json:"id"`
		ActorID   string `json:"actor_id"`
		ActorRole string `json:"actor_role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" || req.ActorID == "" || req.ActorRole == "" {
		http.Error(w, "id, actor_id and actor_role are required", http.StatusBadRequest)
		return
	}

	updated, err := h.workflow.Complete(r.Context(), req.ID, req.ActorID, repository.Role(req.ActorRole))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

// GetPendingRequests handles GET /api/v1/level-movements/pending?role=.
func (h *HTTPHandler) GetPendingRequests(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		http.Error(w, "role is required", http.StatusBadRequest)
		return
	}

	requests, err := h.workflow.GetPendingRequests(r.Context(), repository.Role(role))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"requests": requests,
		"total":    len(requests),
	})
}

// GetEmployeeHistory handles GET /api/v1/level-movements/history?employee_id=.
func (h *HTTPHandler) GetEmployeeHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		http.Error(w, "employee_id is required", http.StatusBadRequest)
		return
	}

	history, err := h.audit.GetEmployeeHistory(r.Context(), employeeID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"employee_id": employeeID,
		"history":     history,
	})
}

// EvaluateReadiness handles GET /api/v1/readiness?employee_id=&target_level=.
func (h *HTTPHandler) EvaluateReadiness(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	targetLevel := r.URL.Query().Get("target_level")
	if employeeID == "" || targetLevel == "" {
		http.Error(w, "employee_id and target_level are required", http.StatusBadRequest)
		return
	}

	result, err := h.readiness.EvaluateReadiness(r.Context(), employeeID, repository.Band(targetLevel))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// CanAssess handles GET /api/v1/authority/can-assess?assessor_id=&role=&target_id=.
func (h *HTTPHandler) CanAssess(w http.ResponseWriter, r *http.Request) {
	assessorID := r.URL.Query().Get("assessor_id")
	role := r.URL.Query().Get("role")
	targetID := r.URL.Query().Get("target_id")
	if assessorID == "" || role == "" || targetID == "" {
		http.Error(w, "assessor_id, role and target_id are required", http.StatusBadRequest)
		return
	}

	authorized, reason, err := h.authority.CanAssess(r.Context(), assessorID, repository.Role(role), targetID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"authorized": authorized,
		"reason":     reason,
	})
}

// GetAssessableEmployees handles GET /api/v1/authority/assessable?assessor_id=&role=.
func (h *HTTPHandler) GetAssessableEmployees(w http.ResponseWriter, r *http.Request) {
	assessorID := r.URL.Query().Get("assessor_id")
	role := r.URL.Query().Get("role")
	if assessorID == "" || role == "" {
		http.Error(w, "assessor_id and role are required", http.StatusBadRequest)
		return
	}

	employees, err := h.authority.GetAssessableEmployees(r.Context(), assessorID, repository.Role(role))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"employees": employees,
		"total":     len(employees),
	})
}

// ── response helpers ─────────────────────────────────────────────────────────

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response body")
	}
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("Request failed")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":  string(apperrors.CodeOf(err)),
		"error": err.Error(),
	})
}
