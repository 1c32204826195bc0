// Package solver 编排整个求解流程：构建模型、调用引擎、提取结果。
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banci/banci/internal/metrics"
	"github.com/banci/banci/pkg/errors"
	"github.com/banci/banci/pkg/logger"
	"github.com/banci/banci/pkg/model"
	"github.com/banci/banci/pkg/scheduler/builder"
	"github.com/banci/banci/pkg/scheduler/engine"
)

// Options 服务级求解参数
type Options struct {
	SkeletonTimeLimit time.Duration
	UnifiedTimeLimit  time.Duration
	RelativeGap       float64
}

// DefaultOptions 返回默认参数
func DefaultOptions() Options {
	return Options{
		SkeletonTimeLimit: 10 * time.Second,
		UnifiedTimeLimit:  30 * time.Second,
		RelativeGap:       0.05,
	}
}

// Service 排班求解服务
type Service struct {
	opts Options
	log  *logger.SolverLogger
}

// NewService 创建求解服务
func NewService(opts Options) *Service {
	def := DefaultOptions()
	if opts.SkeletonTimeLimit <= 0 {
		opts.SkeletonTimeLimit = def.SkeletonTimeLimit
	}
	if opts.UnifiedTimeLimit <= 0 {
		opts.UnifiedTimeLimit = def.UnifiedTimeLimit
	}
	return &Service{opts: opts, log: logger.NewSolverLogger()}
}

// SolveUnified 执行统一流程：完整约束族 + 全部软目标 + 缺口警告
func (s *Service) SolveUnified(
	ctx context.Context,
	staffList []model.Staff,
	req *model.ShiftRequirement,
	leaves model.LeaveRequests,
) (result *model.SolveResult, err error) {
	solveID := uuid.NewString()
	start := time.Now()
	defer s.recover(solveID, start, &err)

	b, berr := builder.NewUnifiedBuilder(staffList, req, leaves)
	if berr != nil {
		return nil, errors.InvalidInput("targetMonth", berr.Error())
	}

	s.log.StartSolve(solveID, "unified", len(staffList), b.Month().Days())

	m := b.Build()
	warnings := collectWarnings(b, staffList, req)
	for _, w := range warnings {
		s.log.Warning(solveID, w.Date, string(w.ShiftType), string(w.Kind), w.Required, w.Available)
		metrics.RecordWarning(string(w.Kind))
	}
	metrics.SetModelSize("unified", m.NumVariables(), m.NumConstraints())

	res, serr := s.runSolve(ctx, m, engine.Config{
		Workers:     1,
		TimeLimit:   s.opts.UnifiedTimeLimit,
		RelativeGap: s.opts.RelativeGap,
	}, solveID, "unified", start)
	if serr != nil {
		return nil, serr
	}

	result = &model.SolveResult{
		Schedule: b.Extract(res),
		Stats:    buildStats(m, res),
		Warnings: warnings,
		Duration: time.Since(start),
	}
	s.finish(solveID, "unified", res, start)
	return result, nil
}

// SolveWithSkeleton 执行骨架流程：休/夜班日外部给定，仅分配日间班次
func (s *Service) SolveWithSkeleton(
	ctx context.Context,
	staffList []model.Staff,
	skeleton *model.ScheduleSkeleton,
	req *model.ShiftRequirement,
	leaves model.LeaveRequests,
) (result *model.SolveResult, err error) {
	solveID := uuid.NewString()
	start := time.Now()
	defer s.recover(solveID, start, &err)

	b, berr := builder.NewSkeletonBuilder(staffList, skeleton, req, leaves)
	if berr != nil {
		return nil, errors.InvalidInput("targetMonth", berr.Error())
	}

	s.log.StartSolve(solveID, "skeleton", len(staffList), b.Month().Days())

	m := b.Build()
	metrics.SetModelSize("skeleton", m.NumVariables(), m.NumConstraints())

	res, serr := s.runSolve(ctx, m, engine.Config{
		Workers:   1,
		TimeLimit: s.opts.SkeletonTimeLimit,
	}, solveID, "skeleton", start)
	if serr != nil {
		return nil, serr
	}

	result = &model.SolveResult{
		Schedule: b.Extract(res),
		Stats:    buildStats(m, res),
		Duration: time.Since(start),
	}
	s.finish(solveID, "skeleton", res, start)
	return result, nil
}

// runSolve 调用引擎并把非成功终态映射为应用错误
func (s *Service) runSolve(
	ctx context.Context,
	m *engine.Model,
	cfg engine.Config,
	solveID, flow string,
	start time.Time,
) (*engine.Result, error) {
	res, err := engine.NewSolver(cfg).Solve(ctx, m)
	if err != nil {
		metrics.RecordSolve(flow, "ERROR", time.Since(start))
		s.log.SolveFailed(solveID, "ERROR", time.Since(start), err)
		return nil, errors.Wrap(err, errors.CodeInternal, "求解引擎执行失败")
	}

	if !res.Status.IsSuccess() {
		metrics.RecordSolve(flow, res.Status.Name(), time.Since(start))
		s.log.SolveFailed(solveID, res.Status.Name(), time.Since(start), nil)

		msg := "在给定约束下不存在可行排班"
		if res.Status == engine.StatusUnknown {
			msg = "时间预算内未找到可行排班"
		}
		return nil, errors.Infeasible(msg).
			WithField("status", res.Status.Name()).
			WithField("solveTimeMs", res.WallTime.Milliseconds())
	}
	return res, nil
}

// finish 记录成功终态
func (s *Service) finish(solveID, flow string, res *engine.Result, start time.Time) {
	metrics.RecordSolve(flow, res.Status.Name(), time.Since(start))
	s.log.SolveComplete(solveID, res.Status.Name(), time.Since(start), res.Objective)
}

// recover 捕获求解过程中的运行时异常，统一转为内部错误
func (s *Service) recover(solveID string, start time.Time, err *error) {
	if r := recover(); r != nil {
		s.log.SolveFailed(solveID, "PANIC", time.Since(start), fmt.Errorf("%v", r))
		*err = errors.New(errors.CodeInternal, "求解过程发生内部异常").
			WithDetails(fmt.Sprintf("%v", r))
	}
}

// buildStats 汇总求解统计
func buildStats(m *engine.Model, res *engine.Result) model.SolverStats {
	return model.SolverStats{
		Status:         res.Status.Name(),
		SolveTimeMs:    res.WallTime.Milliseconds(),
		NumVariables:   m.NumVariables(),
		NumConstraints: m.NumConstraints(),
		ObjectiveValue: res.Objective,
	}
}
