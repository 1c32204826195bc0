// Package engine 提供求解引擎的窄接口：声明布尔变量、线性/蕴含约束、
// 线性目标函数，并在时间预算内求解。模型构建与搜索完全解耦，
// 任何约束/整数规划后端都可实现本包的求解语义。
package engine

// BoolVar 布尔决策变量（1 起的变量号，DIMACS 惯例）
type BoolVar int

// IntVar 有界辅助整数变量，取值 [0, hi]，内部为二进制位编码
type IntVar struct {
	bits []BoolVar
	hi   int
}

// Hi 返回上界
func (v IntVar) Hi() int {
	return v.hi
}

// term 线性项: weight × literal（literal 为 ±变量号）
type term struct {
	lit    int
	weight int
}

// LinearExpr 线性表达式: Σ weight×literal + constant
type LinearExpr struct {
	terms    []term
	constant int
}

// NewLinear 创建空线性表达式
func NewLinear() *LinearExpr {
	return &LinearExpr{}
}

// AddVar 追加 weight×var 项
func (e *LinearExpr) AddVar(v BoolVar, weight int) *LinearExpr {
	e.terms = append(e.terms, term{lit: int(v), weight: weight})
	return e
}

// AddSum 对一组变量以同一权重追加项
func (e *LinearExpr) AddSum(vars []BoolVar, weight int) *LinearExpr {
	for _, v := range vars {
		e.AddVar(v, weight)
	}
	return e
}

// AddInt 追加 weight×intVar 项（按位展开）
func (e *LinearExpr) AddInt(v IntVar, weight int) *LinearExpr {
	for i, b := range v.bits {
		e.AddVar(b, weight<<i)
	}
	return e
}

// AddExpr 按比例合并另一表达式的全部项与常数
func (e *LinearExpr) AddExpr(other *LinearExpr, scale int) *LinearExpr {
	for _, t := range other.terms {
		e.terms = append(e.terms, term{lit: t.lit, weight: t.weight * scale})
	}
	e.constant += other.constant * scale
	return e
}

// AddConstant 追加常数项
func (e *LinearExpr) AddConstant(c int) *LinearExpr {
	e.constant += c
	return e
}

// Empty 表达式是否没有任何变量项
func (e *LinearExpr) Empty() bool {
	return len(e.terms) == 0
}

// Eval 按赋值求表达式的值
func (e *LinearExpr) Eval(assign func(BoolVar) bool) int {
	total := e.constant
	for _, t := range e.terms {
		v := BoolVar(t.lit)
		truth := assign(v)
		if t.lit < 0 {
			v = BoolVar(-t.lit)
			truth = !assign(v)
		}
		if truth {
			total += t.weight
		}
	}
	return total
}

// linear 规范化前的线性约束: Σ terms >= atLeast
type linear struct {
	terms   []term
	atLeast int
}

// Model 待求解的模型：变量、约束与目标函数的纯声明。
// 构建后不可变；求解器只读。
type Model struct {
	numVars   int
	clauses   [][]int
	linears   []linear
	objective *LinearExpr
}

// NewModel 创建空模型
func NewModel() *Model {
	return &Model{}
}

// NewBoolVar 声明布尔变量
func (m *Model) NewBoolVar() BoolVar {
	m.numVars++
	return BoolVar(m.numVars)
}

// NewIntVar 声明取值 [0, hi] 的辅助整数变量
func (m *Model) NewIntVar(hi int) IntVar {
	if hi < 0 {
		hi = 0
	}
	nbits := 0
	for 1<<nbits <= hi {
		nbits++
	}
	v := IntVar{hi: hi, bits: make([]BoolVar, nbits)}
	for i := range v.bits {
		v.bits[i] = m.NewBoolVar()
	}
	// 位组合上界约束（hi+1 为 2 的幂时位宽天然封顶）
	if hi != 1<<nbits-1 {
		e := NewLinear().AddInt(v, -1)
		m.AddGE(e, -hi)
	}
	return v
}

// AddClause 追加子句（至少一个 literal 为真）
func (m *Model) AddClause(lits ...int) {
	c := make([]int, len(lits))
	copy(c, lits)
	m.clauses = append(m.clauses, c)
}

// AddExactlyOne 约束一组布尔变量中恰好一个为真
func (m *Model) AddExactlyOne(vars []BoolVar) {
	lits := make([]int, len(vars))
	for i, v := range vars {
		lits[i] = int(v)
	}
	m.AddClause(lits...)
	m.AddSumAtMost(vars, 1)
}

// AddSumAtLeast 约束 Σ vars >= k
func (m *Model) AddSumAtLeast(vars []BoolVar, k int) {
	e := NewLinear().AddSum(vars, 1)
	m.AddGE(e, k)
}

// AddSumAtMost 约束 Σ vars <= k
func (m *Model) AddSumAtMost(vars []BoolVar, k int) {
	e := NewLinear().AddSum(vars, -1)
	m.AddGE(e, -k)
}

// AddImplication 约束 a=1 → b=1
func (m *Model) AddImplication(a, b BoolVar) {
	m.AddClause(-int(a), int(b))
}

// Fix 固定布尔变量的取值
func (m *Model) Fix(v BoolVar, value bool) {
	if value {
		m.AddClause(int(v))
	} else {
		m.AddClause(-int(v))
	}
}

// AddContradiction 使模型无条件矛盾（显式的"输入不可满足"失败模式）
func (m *Model) AddContradiction() {
	v := m.NewBoolVar()
	m.Fix(v, true)
	m.Fix(v, false)
}

// AddGE 追加线性约束 expr >= bound
func (m *Model) AddGE(e *LinearExpr, bound int) {
	terms := make([]term, len(e.terms))
	copy(terms, e.terms)
	m.linears = append(m.linears, linear{terms: terms, atLeast: bound - e.constant})
}

// Maximize 设置待最大化的线性目标函数
func (m *Model) Maximize(e *LinearExpr) {
	m.objective = e
}

// NumVariables 返回变量数
func (m *Model) NumVariables() int {
	return m.numVars
}

// NumConstraints 返回约束数
func (m *Model) NumConstraints() int {
	return len(m.clauses) + len(m.linears)
}
