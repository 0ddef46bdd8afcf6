package nfa

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/tangzhangming/ccfront/internal/regex"
	"github.com/tangzhangming/ccfront/internal/token"
)

// accepts 判断自动机是否完整接受 s
func accepts(n *Nfa, s string) bool {
	m, ok := n.NextMatch(s, 0)
	return ok && m.End == len(s)
}

func TestCompileLanguage(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"a", []string{"a"}, []string{"", "b", "aa"}},
		{"abc", []string{"abc"}, []string{"ab", "abd", "abcc"}},
		{"a|b", []string{"a", "b"}, []string{"c", "ab"}},
		{"ab|cd", []string{"ab", "cd"}, []string{"ad", "abcd"}},
		{"a*", []string{"", "a", "aaaa"}, []string{"b", "ab"}},
		{"a+", []string{"a", "aaa"}, []string{"", "b"}},
		{"a?b", []string{"b", "ab"}, []string{"aab", "a"}},
		{"a{3}", []string{"aaa"}, []string{"aa", "aaaa"}},
		{"a{2,}", []string{"aa", "aaaaa"}, []string{"", "a"}},
		{"a{1,3}", []string{"a", "aa", "aaa"}, []string{"", "aaaa"}},
		{"a{0,2}", []string{"", "a", "aa"}, []string{"aaa"}},
		{"(ab)+", []string{"ab", "abab"}, []string{"a", "aba"}},
		{"(?:x|y)z", []string{"xz", "yz"}, []string{"z", "xyz"}},
		{"[a-c]+", []string{"a", "cab"}, []string{"d", "abd"}},
		{"[^a-c]", []string{"d", "z", "0"}, []string{"a", "b", "c"}},
		{`[\d_]+`, []string{"1_2", "_"}, []string{"a"}},
		{"[a-]", []string{"a", "-"}, []string{"b"}},
		{`\d+`, []string{"0", "123"}, []string{"a", "1a"}},
		{`\D`, []string{"a", "-"}, []string{"5"}},
		{`\s`, []string{" ", "\t", "\n"}, []string{"x"}},
		{`\S`, []string{"x"}, []string{" "}},
		{`\w+`, []string{"abc_09"}, []string{"a-b"}},
		{`\W`, []string{"-", " "}, []string{"a", "_"}},
		{`.`, []string{"x", " "}, []string{"\n", ""}},
		{`\.\*`, []string{".*"}, []string{"a*", "."}},
		{`\t\n`, []string{"\t\n"}, []string{"tn"}},
		{`[a-zA-Z_][a-zA-Z0-9_]*`, []string{"x", "_tmp9", "while1"}, []string{"9x", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := Compile(tt.pattern, token.IDENT)
			if err != nil {
				t.Fatalf("compile failed: %v", err)
			}
			for _, s := range tt.accept {
				if !accepts(n, s) {
					t.Errorf("expected %q to be accepted", s)
				}
			}
			for _, s := range tt.reject {
				if accepts(n, s) {
					t.Errorf("expected %q to be rejected", s)
				}
			}
		})
	}
}

func TestLongestMatchAndPriority(t *testing.T) {
	n, err := New([]Rule{
		{Pattern: "while", Kind: token.WHILE},
		{Pattern: "[a-zA-Z_][a-zA-Z0-9_]*", Kind: token.IDENT},
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	tests := []struct {
		input string
		kind  token.Kind
		end   int
	}{
		{"while", token.WHILE, 5},
		{"while1", token.IDENT, 6},
		{"whil", token.IDENT, 4},
		{"while (", token.WHILE, 5},
	}
	for _, tt := range tests {
		m, ok := n.NextMatch(tt.input, 0)
		if !ok {
			t.Errorf("%q: expected a match", tt.input)
			continue
		}
		if m.Kind != tt.kind || m.End != tt.end {
			t.Errorf("%q: got (%s, %d), want (%s, %d)", tt.input, m.Kind, m.End, tt.kind, tt.end)
		}
	}
}

func TestPriorityFollowsRuleOrder(t *testing.T) {
	n, err := New([]Rule{
		{Pattern: "[a-z]+", Kind: token.IDENT},
		{Pattern: "while", Kind: token.WHILE},
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	m, ok := n.NextMatch("while", 0)
	if !ok || m.Kind != token.IDENT || m.Priority != 0 {
		t.Errorf("expected earlier rule to win the tie, got %+v", m)
	}
}

func TestNextMatchStartsAtBegin(t *testing.T) {
	n, err := New([]Rule{{Pattern: "[0-9]+", Kind: token.INT_CONST}})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, ok := n.NextMatch("x12", 0); ok {
		t.Errorf("match must not skip leading characters")
	}
	m, ok := n.NextMatch("x12", 1)
	if !ok || m.End != 3 {
		t.Errorf("expected match [1,3), got %+v ok=%v", m, ok)
	}
}

func TestZeroLengthMatch(t *testing.T) {
	n, err := Compile("[a-c]?", token.IDENT)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	m, ok := n.NextMatch("xyz", 0)
	if !ok || m.End != 0 {
		t.Errorf("expected zero-length match, got %+v ok=%v", m, ok)
	}
	m, ok = n.NextMatch("abc", 3)
	if !ok || m.End != 3 {
		t.Errorf("expected zero-length match at end of input, got %+v ok=%v", m, ok)
	}
}

func TestRuleSetIsAllOrNothing(t *testing.T) {
	n, err := New([]Rule{
		{Pattern: "int", Kind: token.INT},
		{Pattern: "(broken", Kind: token.IDENT},
	})
	if err == nil {
		t.Fatalf("expected build failure, got automaton with %d states", n.StateCount())
	}
	var ruleErr *RuleError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("expected *RuleError, got %T", err)
	}
	if ruleErr.Index != 1 {
		t.Errorf("expected failing rule 1, got %d", ruleErr.Index)
	}
	var reErr *regex.Error
	if !errors.As(err, &reErr) {
		t.Errorf("expected wrapped *regex.Error, got %v", err)
	}

	if _, err := New(nil); !errors.Is(err, ErrEmptyRuleSet) {
		t.Errorf("expected ErrEmptyRuleSet, got %v", err)
	}
	if _, err := New([]Rule{{Pattern: "[z-a]", Kind: token.IDENT}}); err == nil {
		t.Errorf("expected out-of-order class range to fail")
	}
}

func TestEmptyAutomaton(t *testing.T) {
	n, err := FromAst(nil, DefaultCharRanges(), token.IDENT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !n.IsEmpty() {
		t.Fatalf("expected empty automaton")
	}
	if _, ok := n.NextMatch("anything", 0); ok {
		t.Errorf("empty automaton must not match")
	}
}

func TestCharRanges(t *testing.T) {
	r := NewCharRanges([]byte("ba"))
	// [0,'a') ['a'] ['b'] ['c',256)
	if r.Len() != 4 {
		t.Fatalf("expected 4 ranges, got %d", r.Len())
	}
	if r.Index('a') == r.Index('b') {
		t.Errorf("literals must have distinct ranges")
	}
	if r.Index('c') != r.Index('z') {
		t.Errorf("non-literal characters should share a range")
	}
	if lo, hi := r.Range(r.Index('a')); lo != 'a' || hi != 'b' {
		t.Errorf("unexpected range for 'a': [%d,%d)", lo, hi)
	}

	d := DefaultCharRanges()
	if d.Len() != 256 || d.Index(200) != 200 {
		t.Errorf("default partition should give each byte its own range")
	}

	node, _ := regex.Parse("a")
	if _, err := FromAst(node, NewCharRanges(nil), token.IDENT); err == nil {
		t.Errorf("expected literal outside the partition to fail")
	}
}

func TestStatsAndConcurrentMatch(t *testing.T) {
	n, err := New([]Rule{
		{Pattern: "[0-9]+", Kind: token.INT_CONST},
		{Pattern: "[a-z]+", Kind: token.IDENT},
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if m, ok := n.NextMatch("abc123", 0); !ok || m.End != 3 {
					t.Errorf("unexpected match %+v", m)
					return
				}
				if _, ok := n.NextMatch("+", 0); ok {
					t.Errorf("unexpected match for '+'")
					return
				}
			}
		}()
	}
	wg.Wait()

	snap := n.Stats()
	if snap.Matches != 800 || snap.Misses != 800 {
		t.Errorf("unexpected counters: %+v", snap)
	}
	if snap.Rules != 2 || snap.States != n.StateCount() {
		t.Errorf("unexpected structure: %+v", snap)
	}
	n.ResetStats()
	if n.Stats().Matches != 0 {
		t.Errorf("expected counters reset")
	}
}

func TestDump(t *testing.T) {
	n, err := New([]Rule{{Pattern: "a[0-9]", Kind: token.IDENT}})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	var sb strings.Builder
	if err := n.Dump(&sb); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"root 0", "'a'->", "range [0-9]", "accept IDENT priority=0"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}
