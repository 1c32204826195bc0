package engine

import (
	"context"
	"testing"
	"time"
)

func solveModel(t *testing.T, m *Model) *Result {
	t.Helper()
	res, err := NewSolver(Config{Workers: 1, TimeLimit: 5 * time.Second}).Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	return res
}

func TestSolveSatisfiable(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar()
	b := m.NewBoolVar()
	m.AddClause(int(a), int(b))
	m.AddClause(-int(a))

	res := solveModel(t, m)
	if !res.Status.IsSuccess() {
		t.Fatalf("Expected success, got %s", res.Status.Name())
	}
	if res.BoolValue(a) {
		t.Error("a should be false")
	}
	if !res.BoolValue(b) {
		t.Error("b should be true")
	}
}

func TestSolveUnsatisfiable(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar()
	m.Fix(a, true)
	m.Fix(a, false)

	res := solveModel(t, m)
	if res.Status != StatusInfeasible {
		t.Fatalf("Expected INFEASIBLE, got %s", res.Status.Name())
	}
	if res.HasSolution() {
		t.Error("Infeasible result should carry no assignment")
	}
}

func TestAddContradiction(t *testing.T) {
	m := NewModel()
	v := m.NewBoolVar()
	m.Fix(v, true)
	m.AddContradiction()

	res := solveModel(t, m)
	if res.Status != StatusInfeasible {
		t.Fatalf("Expected INFEASIBLE, got %s", res.Status.Name())
	}
}

func TestExactlyOne(t *testing.T) {
	m := NewModel()
	vars := []BoolVar{m.NewBoolVar(), m.NewBoolVar(), m.NewBoolVar()}
	m.AddExactlyOne(vars)

	res := solveModel(t, m)
	if !res.Status.IsSuccess() {
		t.Fatalf("Expected success, got %s", res.Status.Name())
	}
	count := 0
	for _, v := range vars {
		if res.BoolValue(v) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly one true variable, got %d", count)
	}
}

func TestSumBounds(t *testing.T) {
	m := NewModel()
	vars := []BoolVar{m.NewBoolVar(), m.NewBoolVar(), m.NewBoolVar(), m.NewBoolVar()}
	m.AddSumAtLeast(vars, 2)
	m.AddSumAtMost(vars, 3)

	res := solveModel(t, m)
	if !res.Status.IsSuccess() {
		t.Fatalf("Expected success, got %s", res.Status.Name())
	}
	count := 0
	for _, v := range vars {
		if res.BoolValue(v) {
			count++
		}
	}
	if count < 2 || count > 3 {
		t.Errorf("Sum should be in [2,3], got %d", count)
	}
}

func TestImplication(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar()
	b := m.NewBoolVar()
	m.AddImplication(a, b)
	m.Fix(a, true)

	res := solveModel(t, m)
	if !res.Status.IsSuccess() {
		t.Fatalf("Expected success, got %s", res.Status.Name())
	}
	if !res.BoolValue(b) {
		t.Error("a=1 should force b=1")
	}
}

func TestMaximize(t *testing.T) {
	// max 3a+2b, a+b<=1 → a=1, b=0, 目标值3
	m := NewModel()
	a := m.NewBoolVar()
	b := m.NewBoolVar()
	m.AddSumAtMost([]BoolVar{a, b}, 1)

	obj := NewLinear().AddVar(a, 3).AddVar(b, 2)
	m.Maximize(obj)

	res := solveModel(t, m)
	if res.Status != StatusOptimal {
		t.Fatalf("Expected OPTIMAL, got %s", res.Status.Name())
	}
	if res.Objective != 3 {
		t.Errorf("Expected objective 3, got %d", res.Objective)
	}
	if !res.BoolValue(a) || res.BoolValue(b) {
		t.Error("Expected a=1, b=0")
	}
}

func TestMaximizeNegativeWeight(t *testing.T) {
	// max a-2b, b 被固定为1 → a=1, 目标值 -1
	m := NewModel()
	a := m.NewBoolVar()
	b := m.NewBoolVar()
	m.Fix(b, true)

	obj := NewLinear().AddVar(a, 1).AddVar(b, -2)
	m.Maximize(obj)

	res := solveModel(t, m)
	if res.Status != StatusOptimal {
		t.Fatalf("Expected OPTIMAL, got %s", res.Status.Name())
	}
	if res.Objective != -1 {
		t.Errorf("Expected objective -1, got %d", res.Objective)
	}
}

func TestIntVarBound(t *testing.T) {
	// 上界5不是 2^n-1，需要显式封顶约束
	m := NewModel()
	v := m.NewIntVar(5)
	if v.Hi() != 5 {
		t.Fatalf("Expected hi 5, got %d", v.Hi())
	}

	// 最大化整数变量本身，最优值应为上界
	obj := NewLinear().AddInt(v, 1)
	m.Maximize(obj)

	res := solveModel(t, m)
	if res.Status != StatusOptimal {
		t.Fatalf("Expected OPTIMAL, got %s", res.Status.Name())
	}
	if got := res.IntValue(v); got != 5 {
		t.Errorf("Expected int value 5, got %d", got)
	}
}

func TestMaximizeObjectiveOnlyVar(t *testing.T) {
	// b 只出现在目标中，不出现在任何约束里
	m := NewModel()
	a := m.NewBoolVar()
	b := m.NewBoolVar()
	m.AddClause(int(a))

	obj := NewLinear().AddVar(a, 2).AddVar(b, 3)
	m.Maximize(obj)

	res := solveModel(t, m)
	if res.Status != StatusOptimal {
		t.Fatalf("Expected OPTIMAL, got %s", res.Status.Name())
	}
	if !res.BoolValue(b) {
		t.Error("Positive-weight objective variable should be set true")
	}
	if res.Objective != 5 {
		t.Errorf("Expected objective 5, got %d", res.Objective)
	}
}

// groupedModel 构造 groups 个互斥三元组，目标权重使最优代价不为0，
// 迫使求解器经历完整的逐步收紧证明过程
func groupedModel(groups int) *Model {
	m := NewModel()
	obj := NewLinear()
	for g := 0; g < groups; g++ {
		vars := []BoolVar{m.NewBoolVar(), m.NewBoolVar(), m.NewBoolVar()}
		m.AddExactlyOne(vars)
		for i, v := range vars {
			obj.AddVar(v, i+1)
		}
	}
	m.Maximize(obj)
	return m
}

func TestSolveTimeLimit(t *testing.T) {
	// 预算耗尽时必须立即返回已收到的最好解，而不是等待最优性证明
	res, err := NewSolver(Config{Workers: 1, TimeLimit: time.Millisecond}).
		Solve(context.Background(), groupedModel(200))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if res.Status != StatusFeasible && res.Status != StatusUnknown {
		t.Fatalf("Expected FEASIBLE or UNKNOWN on expired budget, got %s", res.Status.Name())
	}
	if res.Status == StatusFeasible && !res.HasSolution() {
		t.Error("FEASIBLE result must carry an assignment")
	}
	if res.Status == StatusUnknown && res.HasSolution() {
		t.Error("UNKNOWN result should carry no assignment")
	}
}

func TestSolveContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewSolver(Config{Workers: 1, TimeLimit: time.Minute}).
		Solve(ctx, groupedModel(200))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if res.Status != StatusFeasible && res.Status != StatusUnknown {
		t.Fatalf("Expected FEASIBLE or UNKNOWN on cancelled context, got %s", res.Status.Name())
	}
}

func TestWorkersMustBeOne(t *testing.T) {
	m := NewModel()
	m.NewBoolVar()
	_, err := NewSolver(Config{Workers: 4, TimeLimit: time.Second}).Solve(context.Background(), m)
	if err == nil {
		t.Fatal("Expected error for workers != 1")
	}
}

func TestLinearExprEval(t *testing.T) {
	e := NewLinear()
	e.AddVar(1, 5).AddVar(2, 3).AddConstant(7)
	got := e.Eval(func(v BoolVar) bool { return v == 1 })
	if got != 12 {
		t.Errorf("Expected 12, got %d", got)
	}
}
