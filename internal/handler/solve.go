// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/banci/banci/internal/metrics"
	"github.com/banci/banci/pkg/errors"
	"github.com/banci/banci/pkg/model"
	"github.com/banci/banci/pkg/scheduler/solver"
)

var validate = validator.New()

// SolveHandler 排班求解处理器
type SolveHandler struct {
	svc *solver.Service
}

// NewSolveHandler 创建求解处理器
func NewSolveHandler(svc *solver.Service) *SolveHandler {
	return &SolveHandler{svc: svc}
}

// SolveRequest 求解请求（与原客户端的线上格式保持一致）
type SolveRequest struct {
	StaffList        []model.Staff           `json:"staffList" validate:"required,min=1,dive"`
	ShiftRequirement *model.ShiftRequirement `json:"requirements" validate:"required"`
	LeaveRequests    model.LeaveRequests     `json:"leaveRequests"`
	ScheduleSkeleton *model.ScheduleSkeleton `json:"skeleton"`
}

// SolveResponse 求解成功响应
type SolveResponse struct {
	Success  bool                  `json:"success"`
	Schedule []model.StaffSchedule `json:"schedule"`
	Stats    model.SolverStats     `json:"solverStats"`
	Warnings []model.Warning       `json:"warnings,omitempty"`
}

// Generate 骨架流程：休/夜班日由请求中的骨架给定
func (h *SolveHandler) Generate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, appErr := h.decode(r)
	if appErr != nil {
		respondError(w, appErr)
		metrics.RecordRequestMetrics(r.Method, r.URL.Path, appErr.HTTPStatus, time.Since(start))
		return
	}
	if req.ScheduleSkeleton == nil || len(req.ScheduleSkeleton.StaffSchedules) == 0 {
		appErr = errors.InvalidInput("skeleton", "骨架流程必须提供排班骨架")
		respondError(w, appErr)
		metrics.RecordRequestMetrics(r.Method, r.URL.Path, appErr.HTTPStatus, time.Since(start))
		return
	}

	result, err := h.svc.SolveWithSkeleton(r.Context(), req.StaffList, req.ScheduleSkeleton, req.ShiftRequirement, req.LeaveRequests)
	h.respond(w, r, result, err, start)
}

// Unified 统一流程：完整约束族 + 缺口警告
func (h *SolveHandler) Unified(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, appErr := h.decode(r)
	if appErr != nil {
		respondError(w, appErr)
		metrics.RecordRequestMetrics(r.Method, r.URL.Path, appErr.HTTPStatus, time.Since(start))
		return
	}

	result, err := h.svc.SolveUnified(r.Context(), req.StaffList, req.ShiftRequirement, req.LeaveRequests)
	h.respond(w, r, result, err, start)
}

// decode 解析并验证请求体
func (h *SolveHandler) decode(r *http.Request) (*SolveRequest, *errors.AppError) {
	if r.Method != http.MethodPost {
		return nil, errors.New(errors.CodeInvalidInput, "仅支持POST方法")
	}
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败")
	}
	if err := validate.Struct(&req); err != nil {
		ve := &errors.ValidationErrors{}
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				ve.Add(fe.Namespace(), fe.Tag())
			}
			return nil, ve.ToAppError()
		}
		return nil, errors.Wrap(err, errors.CodeValidationFail, "请求验证失败")
	}
	if req.ShiftRequirement.TargetMonth == "" {
		return nil, errors.InvalidInput("requirements.targetMonth", "目标月份不能为空")
	}
	return &req, nil
}

// respond 统一的求解结果响应
func (h *SolveHandler) respond(w http.ResponseWriter, r *http.Request, result *model.SolveResult, err error, start time.Time) {
	if err != nil {
		appErr := errors.AsAppError(err)
		respondError(w, appErr)
		metrics.RecordRequestMetrics(r.Method, r.URL.Path, appErr.HTTPStatus, time.Since(start))
		return
	}
	respondJSON(w, http.StatusOK, SolveResponse{
		Success:  true,
		Schedule: result.Schedule,
		Stats:    result.Stats,
		Warnings: result.Warnings,
	})
	metrics.RecordRequestMetrics(r.Method, r.URL.Path, http.StatusOK, time.Since(start))
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   false,
		"error":     err.Message,
		"errorType": err.ErrorType(),
		"details": map[string]interface{}{
			"code":   err.Code,
			"detail": err.Details,
			"fields": err.Fields,
		},
	})
}
