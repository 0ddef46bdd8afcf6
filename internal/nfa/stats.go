package nfa

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"go.uber.org/atomic"
)

// Stats 匹配计数器，多个 Lexer 共享同一个自动机时并发累加
type Stats struct {
	Matches atomic.Int64 // 成功匹配次数
	Misses  atomic.Int64 // 失败匹配次数
	Steps   atomic.Int64 // 消耗的输入字符数
}

// Snapshot 某一时刻的自动机统计
type Snapshot struct {
	States  int
	Rules   int
	Ranges  int
	Matches int64
	Misses  int64
	Steps   int64
}

// Stats 返回自动机的结构信息与匹配计数
func (n *Nfa) Stats() Snapshot {
	if n == nil {
		return Snapshot{}
	}
	snap := Snapshot{
		States: len(n.states),
		Rules:  n.rules,
		Ranges: n.ranges.Len(),
	}
	if n.stats != nil {
		snap.Matches = n.stats.Matches.Load()
		snap.Misses = n.stats.Misses.Load()
		snap.Steps = n.stats.Steps.Load()
	}
	return snap
}

// ResetStats 清零匹配计数
func (n *Nfa) ResetStats() {
	n.stats.Matches.Store(0)
	n.stats.Misses.Store(0)
	n.stats.Steps.Store(0)
}

// Dump 以文本形式输出所有状态，每行一个
//
//	0 common eps=[1 9]
//	3 common 'w'->4
//	7 range [a-z] ->8
//	8 common accept IDENT priority=1
func (n *Nfa) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "root %d, %d states, %d rules, %d ranges\n", n.root, len(n.states), n.rules, n.ranges.Len())
	for id := range n.states {
		s := &n.states[id]
		fmt.Fprintf(bw, "%d %s", id, s.kind)
		if len(s.eps) > 0 {
			fmt.Fprintf(bw, " eps=%v", s.eps)
		}
		if len(s.edges) > 0 {
			keys := make([]int, 0, len(s.edges))
			for r := range s.edges {
				keys = append(keys, r)
			}
			sort.Ints(keys)
			for _, r := range keys {
				lo, hi := n.ranges.Range(r)
				if hi-lo == 1 {
					fmt.Fprintf(bw, " %q->%v", rune(lo), s.edges[r])
				} else {
					fmt.Fprintf(bw, " [%d,%d)->%v", lo, hi, s.edges[r])
				}
			}
		}
		if s.match != nil {
			fmt.Fprintf(bw, " %s ->%d", s.match, s.next)
		}
		if s.accept {
			fmt.Fprintf(bw, " accept %s priority=%d", s.produces, s.priority)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
