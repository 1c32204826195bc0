package engine

import (
	"context"
	"fmt"
	"time"

	sat "github.com/crillab/gophersat/solver"
)

// Status 求解终态
type Status int

const (
	StatusUnknown Status = iota // 预算内未找到任何解
	StatusOptimal               // 已证明最优
	StatusFeasible              // 找到可行解但未证明最优
	StatusInfeasible            // 无可行解
)

// Name 返回状态名
func (s Status) Name() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess OPTIMAL 与 FEASIBLE 均视为成功
func (s Status) IsSuccess() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Config 求解配置
type Config struct {
	// Workers 工作线程数。可复现性是产品要求，必须为 1。
	Workers int
	// TimeLimit 墙钟时间预算
	TimeLimit time.Duration
	// RelativeGap 相对目标间隙提前停止阈值（0 表示关闭）
	RelativeGap float64
}

// DefaultConfig 返回默认求解配置
func DefaultConfig() Config {
	return Config{
		Workers:   1,
		TimeLimit: 30 * time.Second,
	}
}

// Result 求解结果
type Result struct {
	Status    Status
	Objective int
	WallTime  time.Duration

	assign []bool // 按变量号索引（1 起），无解时为 nil
}

// HasSolution 是否携带变量赋值
func (r *Result) HasSolution() bool {
	return r.assign != nil
}

// BoolValue 读取布尔变量的取值
func (r *Result) BoolValue(v BoolVar) bool {
	if r.assign == nil || int(v) >= len(r.assign) {
		return false
	}
	return r.assign[v]
}

// IntValue 读取整数变量的取值
func (r *Result) IntValue(v IntVar) int {
	total := 0
	for i, b := range v.bits {
		if r.BoolValue(b) {
			total += 1 << i
		}
	}
	return total
}

// Solver 基于 gophersat 伪布尔求解的引擎后端。
// gophersat 为单线程纯 Go 实现，相同输入必然产生相同搜索轨迹。
type Solver struct {
	cfg Config
}

// NewSolver 创建求解器
func NewSolver(cfg Config) *Solver {
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = DefaultConfig().TimeLimit
	}
	return &Solver{cfg: cfg}
}

// Solve 在时间预算内求解模型
func (s *Solver) Solve(ctx context.Context, m *Model) (*Result, error) {
	if s.cfg.Workers != 1 {
		return nil, fmt.Errorf("worker 数必须为 1（确定性要求），得到 %d", s.cfg.Workers)
	}

	start := time.Now()
	problem, costWeights := s.translate(m)
	backend := sat.New(problem)

	// 无目标项时退化为纯可行性判定
	if len(costWeights) == 0 {
		status := backend.Solve()
		res := &Result{WallTime: time.Since(start)}
		switch status {
		case sat.Sat:
			res.Status = StatusOptimal
			res.assign = fromModelSlice(backend.Model(), m.numVars)
		case sat.Unsat:
			res.Status = StatusInfeasible
		default:
			res.Status = StatusUnknown
		}
		return res, nil
	}

	// gophersat 的 Optimal 不读取 stop 通道，时间预算只能在采集侧执行：
	// 后台协程驱动求解，采集侧在预算耗尽时放弃它并返回已收到的最好解。
	results := make(chan sat.Result)
	finalCh := make(chan sat.Result, 1)
	go func() { finalCh <- backend.Optimal(results, nil) }()

	deadline := time.NewTimer(s.cfg.TimeLimit)
	defer deadline.Stop()

	costSpan := 0
	for _, w := range costWeights {
		costSpan += w
	}

	var (
		best     []bool
		haveBest bool
	)
	// abandon 排空被放弃协程的发送，避免其阻塞在 results 上
	abandon := func() {
		go func() {
			for range results {
			}
			<-finalCh
		}()
	}

	res := &Result{}
collect:
	for {
		select {
		case r, ok := <-results:
			if !ok {
				final := <-finalCh
				switch final.Status {
				case sat.Sat:
					res.Status = StatusOptimal
					if final.Model != nil {
						res.assign = fromModelSlice(final.Model, m.numVars)
					} else if haveBest {
						res.assign = best
					}
				case sat.Unsat:
					res.Status = StatusInfeasible
				default:
					if haveBest {
						res.Status = StatusFeasible
						res.assign = best
					} else {
						res.Status = StatusUnknown
					}
				}
				break collect
			}
			if r.Status == sat.Sat && r.Model != nil {
				best = fromModelSlice(r.Model, m.numVars)
				haveBest = true
				if s.cfg.RelativeGap > 0 && costSpan > 0 &&
					float64(r.Weight) <= s.cfg.RelativeGap*float64(costSpan) {
					abandon()
					res.Status = StatusFeasible
					res.assign = best
					break collect
				}
			}
		case <-deadline.C:
			abandon()
			if haveBest {
				res.Status = StatusFeasible
				res.assign = best
			} else {
				res.Status = StatusUnknown
			}
			break collect
		case <-ctx.Done():
			abandon()
			if haveBest {
				res.Status = StatusFeasible
				res.assign = best
			} else {
				res.Status = StatusUnknown
			}
			break collect
		}
	}

	res.WallTime = time.Since(start)
	if res.assign != nil && m.objective != nil {
		res.Objective = m.objective.Eval(res.BoolValue)
	}
	return res, nil
}

// translate 将模型翻译为 gophersat 伪布尔问题。
// 返回问题与目标函数的代价权重（空切片表示无目标）。
func (s *Solver) translate(m *Model) (*sat.Problem, []int) {
	constrs := make([]sat.PBConstr, 0, m.NumConstraints())
	for _, c := range m.clauses {
		constrs = append(constrs, sat.PropClause(c...))
	}
	for _, l := range m.linears {
		if pb, ok := normalizeGE(l); ok {
			constrs = append(constrs, pb)
		}
	}
	// 问题规模由约束中出现的文字决定，仅在目标中出现的变量
	// 也必须占有位置，否则 SetCostFunc 会越界。用恒真子句补齐。
	if m.numVars > 0 {
		constrs = append(constrs, sat.PropClause(m.numVars, -m.numVars))
	}
	problem := sat.ParsePBConstrs(constrs)

	if m.objective == nil {
		return problem, nil
	}
	// 最大化 Σ w×lit 等价于最小化补集代价：
	// w>0 的项在 lit 为假时计代价 w；w<0 的项在 lit 为真时计代价 -w。
	var (
		costLits    []sat.Lit
		costWeights []int
	)
	for _, t := range m.objective.terms {
		switch {
		case t.weight > 0:
			costLits = append(costLits, sat.IntToLit(int32(-t.lit)))
			costWeights = append(costWeights, t.weight)
		case t.weight < 0:
			costLits = append(costLits, sat.IntToLit(int32(t.lit)))
			costWeights = append(costWeights, -t.weight)
		}
	}
	if len(costLits) > 0 {
		problem.SetCostFunc(costLits, costWeights)
	}
	return problem, costWeights
}

// normalizeGE 将带负权重的 Σ w×lit >= k 规范化为正权重形式。
// w<0 的项按 w×lit = w - (-w)×(¬lit) 替换。平凡可满足的约束被丢弃。
func normalizeGE(l linear) (sat.PBConstr, bool) {
	lits := make([]int, 0, len(l.terms))
	weights := make([]int, 0, len(l.terms))
	atLeast := l.atLeast
	for _, t := range l.terms {
		if t.weight == 0 {
			continue
		}
		if t.weight > 0 {
			lits = append(lits, t.lit)
			weights = append(weights, t.weight)
		} else {
			lits = append(lits, -t.lit)
			weights = append(weights, -t.weight)
			atLeast -= t.weight
		}
	}
	if atLeast <= 0 {
		return sat.PBConstr{}, false
	}
	return sat.GtEq(lits, weights, atLeast), true
}

// fromModelSlice 从 0 起的模型切片提取赋值
func fromModelSlice(mdl []bool, numVars int) []bool {
	if mdl == nil {
		return nil
	}
	out := make([]bool, numVars+1)
	for i := 0; i < numVars && i < len(mdl); i++ {
		out[i+1] = mdl[i]
	}
	return out
}
