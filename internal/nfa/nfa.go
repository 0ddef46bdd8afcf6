// Package nfa 把词法规则编译为一个非确定有限自动机，并在运行时直接模拟它做最长匹配
//
// 不做子集构造：匹配时维护当前活跃状态集合，逐字符推进，
// epsilon 闭包在匹配过程中按需计算。
package nfa

import (
	"errors"
	"fmt"

	"github.com/tangzhangming/ccfront/internal/regex"
	"github.com/tangzhangming/ccfront/internal/token"
)

// ============================================================================
// 状态
// ============================================================================

// stateKind 状态种类
type stateKind uint8

const (
	commonState  stateKind = iota // 字符区间边与 epsilon 边
	specialState                  // 特殊模式匹配器
	rangeState                    // 字符类匹配器
)

func (k stateKind) String() string {
	switch k {
	case commonState:
		return "common"
	case specialState:
		return "special"
	case rangeState:
		return "range"
	}
	return "unknown"
}

// matcher 消耗恰好一个字符的子匹配器
type matcher interface {
	Match(c byte) bool
	String() string
}

// state 自动机状态
type state struct {
	kind  stateKind
	eps   []int         // epsilon 边
	edges map[int][]int // 区间编号 -> 目标状态，仅 commonState
	match matcher       // specialState / rangeState 的匹配器
	next  int           // 匹配器接受字符后进入的状态

	accept   bool
	produces token.Kind // 接受状态产生的 token 种类
	priority int        // 规则序号，越小越优先
}

// Rule 一条词法规则，规则在表中的顺序就是优先级
type Rule struct {
	Pattern string
	Kind    token.Kind
}

// Match 一次匹配的结果
type Match struct {
	Kind     token.Kind
	Priority int // 产生匹配的规则序号
	End      int // 匹配结束位置（不含）
}

// ============================================================================
// 自动机
// ============================================================================

// Nfa 非确定有限自动机
//
// 构造完成后只读，可以被多个 Lexer 同时使用。
type Nfa struct {
	states []state
	root   int
	ranges CharRanges
	rules  int
	stats  *Stats
}

var (
	// ErrEmptyRuleSet 规则表为空
	ErrEmptyRuleSet = errors.New("nfa: empty rule set")
)

// RuleError 规则编译失败
type RuleError struct {
	Index   int
	Pattern string
	Kind    token.Kind
	Err     error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("nfa: rule %d (%s %q): %v", e.Index, e.Kind, e.Pattern, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// New 把整张规则表编译为一个自动机
//
// 所有规则共享一个字母表划分。任意一条规则编译失败则整体失败，不返回残缺的自动机。
func New(rules []Rule) (*Nfa, error) {
	if len(rules) == 0 {
		return nil, ErrEmptyRuleSet
	}

	asts := make([]*regex.Node, len(rules))
	var literals []byte
	for i, r := range rules {
		node, err := regex.Parse(r.Pattern)
		if err != nil {
			return nil, &RuleError{Index: i, Pattern: r.Pattern, Kind: r.Kind, Err: err}
		}
		asts[i] = node
		literals = append(literals, regex.Literals(node)...)
	}
	ranges := NewCharRanges(literals)

	parts := make([]*Nfa, len(rules))
	for i, node := range asts {
		part, err := build(node, ranges, rules[i].Kind, i)
		if err != nil {
			return nil, &RuleError{Index: i, Pattern: rules[i].Pattern, Kind: rules[i].Kind, Err: err}
		}
		parts[i] = part
	}
	return merge(parts, ranges), nil
}

// Compile 把单个正则表达式编译为自动机，使用默认字母表划分
func Compile(pattern string, kind token.Kind) (*Nfa, error) {
	node, err := regex.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return build(node, DefaultCharRanges(), kind, 0)
}

// FromAst 从运算树构造自动机
//
// node 为 nil（正则解析失败）时返回空自动机，空自动机不接受任何输入。
func FromAst(node *regex.Node, ranges CharRanges, kind token.Kind) (*Nfa, error) {
	if node == nil {
		return &Nfa{ranges: ranges, stats: &Stats{}}, nil
	}
	return build(node, ranges, kind, 0)
}

// IsEmpty 判断是否为空自动机
func (n *Nfa) IsEmpty() bool {
	return n == nil || len(n.states) == 0
}

// CharRanges 返回自动机使用的字母表划分
func (n *Nfa) CharRanges() CharRanges {
	return n.ranges
}

// StateCount 返回状态数
func (n *Nfa) StateCount() int {
	return len(n.states)
}

// build 用 Thompson 构造法把一棵运算树编译为单规则自动机
func build(node *regex.Node, ranges CharRanges, kind token.Kind, priority int) (*Nfa, error) {
	b := &builder{ranges: ranges}
	f, err := b.build(node)
	if err != nil {
		return nil, err
	}
	acc := &b.states[f.accept]
	acc.accept = true
	acc.produces = kind
	acc.priority = priority
	return &Nfa{states: b.states, root: f.begin, ranges: ranges, rules: 1, stats: &Stats{}}, nil
}

// merge 在一个新的根状态下合并多个单规则自动机
func merge(parts []*Nfa, ranges CharRanges) *Nfa {
	total := 1
	for _, p := range parts {
		total += len(p.states)
	}
	states := make([]state, 1, total)
	for _, p := range parts {
		offset := len(states)
		states[0].eps = append(states[0].eps, p.root+offset)
		for _, s := range p.states {
			states = append(states, s.shift(offset))
		}
	}
	return &Nfa{states: states, root: 0, ranges: ranges, rules: len(parts), stats: &Stats{}}
}

// shift 返回状态编号整体偏移 offset 后的副本
func (s state) shift(offset int) state {
	out := s
	out.eps = shiftAll(s.eps, offset)
	if s.edges != nil {
		out.edges = make(map[int][]int, len(s.edges))
		for r, targets := range s.edges {
			out.edges[r] = shiftAll(targets, offset)
		}
	}
	if s.match != nil {
		out.next = s.next + offset
	}
	return out
}

func shiftAll(ids []int, offset int) []int {
	if ids == nil {
		return nil
	}
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = id + offset
	}
	return out
}

// ============================================================================
// Thompson 构造
// ============================================================================

// fragment 子自动机，只有一个入口和一个出口
type fragment struct {
	begin, accept int
}

type builder struct {
	states []state
	ranges CharRanges
}

func (b *builder) newState() int {
	b.states = append(b.states, state{kind: commonState})
	return len(b.states) - 1
}

func (b *builder) epsilon(from, to int) {
	b.states[from].eps = append(b.states[from].eps, to)
}

func (b *builder) build(n *regex.Node) (fragment, error) {
	switch n.Kind {
	case regex.Char:
		return b.buildChar(n.Text)

	case regex.And:
		left, err := b.build(n.Left)
		if err != nil {
			return fragment{}, err
		}
		right, err := b.build(n.Right)
		if err != nil {
			return fragment{}, err
		}
		b.epsilon(left.accept, right.begin)
		return fragment{begin: left.begin, accept: right.accept}, nil

	case regex.Alternative:
		left, err := b.build(n.Left)
		if err != nil {
			return fragment{}, err
		}
		right, err := b.build(n.Right)
		if err != nil {
			return fragment{}, err
		}
		begin, accept := b.newState(), b.newState()
		b.epsilon(begin, left.begin)
		b.epsilon(begin, right.begin)
		b.epsilon(left.accept, accept)
		b.epsilon(right.accept, accept)
		return fragment{begin: begin, accept: accept}, nil

	case regex.Quantifier:
		return b.buildQuantifier(n)

	case regex.PassiveGroup:
		return b.build(n.Left)
	}
	return fragment{}, fmt.Errorf("unknown regex node %s", n.Kind)
}

// buildChar 构造叶子：字面字符走区间边，其余交给特殊模式或字符类状态
func (b *builder) buildChar(text string) (fragment, error) {
	switch {
	case len(text) == 1 && text != ".":
		begin, accept := b.newState(), b.newState()
		r := b.ranges.Index(text[0])
		if lo, hi := b.ranges.Range(r); hi-lo != 1 {
			return fragment{}, fmt.Errorf("character %q shares range [%d,%d) in the alphabet partition", text[0], lo, hi)
		}
		b.states[begin].edges = map[int][]int{r: {accept}}
		return fragment{begin: begin, accept: accept}, nil

	case text[0] == '[':
		cls, err := parseClass(text)
		if err != nil {
			return fragment{}, err
		}
		accept := b.newState()
		b.states = append(b.states, state{kind: rangeState, match: cls, next: accept})
		return fragment{begin: len(b.states) - 1, accept: accept}, nil

	default:
		sp, err := parseSpecial(text)
		if err != nil {
			return fragment{}, err
		}
		accept := b.newState()
		b.states = append(b.states, state{kind: specialState, match: sp, next: accept})
		return fragment{begin: len(b.states) - 1, accept: accept}, nil
	}
}

// buildQuantifier 展开量词
//
// 先按下界串接 Min 份副本；无上界时让最后一份带回边（下界为 0 时另建一份并加旁路），
// 有上界时继续串接 Max-Min 份可跳过的副本。
func (b *builder) buildQuantifier(n *regex.Node) (fragment, error) {
	begin, accept := b.newState(), b.newState()
	cur := begin
	var last fragment
	for i := 0; i < n.Min; i++ {
		f, err := b.build(n.Left)
		if err != nil {
			return fragment{}, err
		}
		b.epsilon(cur, f.begin)
		cur = f.accept
		last = f
	}

	if n.Max == regex.Unbounded {
		if n.Min > 0 {
			b.epsilon(last.accept, last.begin)
			b.epsilon(last.accept, accept)
			return fragment{begin: begin, accept: accept}, nil
		}
		f, err := b.build(n.Left)
		if err != nil {
			return fragment{}, err
		}
		b.epsilon(begin, f.begin)
		b.epsilon(f.accept, f.begin)
		b.epsilon(f.accept, accept)
		b.epsilon(begin, accept)
		return fragment{begin: begin, accept: accept}, nil
	}

	b.epsilon(cur, accept)
	for i := n.Min; i < n.Max; i++ {
		f, err := b.build(n.Left)
		if err != nil {
			return fragment{}, err
		}
		b.epsilon(cur, f.begin)
		b.epsilon(f.accept, accept)
		cur = f.accept
	}
	return fragment{begin: begin, accept: accept}, nil
}

// ============================================================================
// 匹配
// ============================================================================

// NextMatch 从 src[begin] 开始寻找被任意规则接受的最长前缀
//
// 长度相同时规则序号小的优先。零长度匹配也会报告，由调用方决定是否接受。
// 没有任何接受状态被访问到时返回 false。
func (n *Nfa) NextMatch(src string, begin int) (Match, bool) {
	if n.IsEmpty() || begin > len(src) {
		return Match{}, false
	}

	set := newStateSet(len(n.states))
	cur := set.closure(n, []int{n.root})
	best := Match{End: -1}
	pos := begin
	for {
		if kind, prio, ok := n.accepting(cur); ok {
			best = Match{Kind: kind, Priority: prio, End: pos}
		}
		if pos >= len(src) || len(cur) == 0 {
			break
		}
		cur = set.closure(n, n.step(cur, src[pos]))
		pos++
		n.stats.Steps.Inc()
	}

	if best.End < 0 {
		n.stats.Misses.Inc()
		return Match{}, false
	}
	n.stats.Matches.Inc()
	return best, true
}

// accepting 在活跃集合中选出优先级最高的接受状态
func (n *Nfa) accepting(active []int) (token.Kind, int, bool) {
	found := false
	var kind token.Kind
	prio := 0
	for _, id := range active {
		s := &n.states[id]
		if s.accept && (!found || s.priority < prio) {
			found = true
			kind = s.produces
			prio = s.priority
		}
	}
	return kind, prio, found
}

// step 让活跃集合中的每个状态消耗字符 c
func (n *Nfa) step(active []int, c byte) []int {
	var next []int
	r := n.ranges.Index(c)
	for _, id := range active {
		s := &n.states[id]
		switch s.kind {
		case commonState:
			next = append(next, s.edges[r]...)
		case specialState, rangeState:
			if s.match.Match(c) {
				next = append(next, s.next)
			}
		}
	}
	return next
}

// stateSet 计算 epsilon 闭包时用的去重标记
type stateSet struct {
	mark []uint32
	gen  uint32
}

func newStateSet(n int) *stateSet {
	return &stateSet{mark: make([]uint32, n)}
}

// closure 返回 seeds 的 epsilon 闭包
func (s *stateSet) closure(n *Nfa, seeds []int) []int {
	s.gen++
	out := make([]int, 0, len(seeds))
	stack := append([]int(nil), seeds...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.mark[id] == s.gen {
			continue
		}
		s.mark[id] = s.gen
		out = append(out, id)
		stack = append(stack, n.states[id].eps...)
	}
	return out
}
