package regex

import (
	"reflect"
	"testing"
)

func TestParseStructure(t *testing.T) {
	tests := []struct {
		pattern  string
		expected string
	}{
		{"a", "a"},
		{"ab", "&(a,b)"},
		{"abc", "&(&(a,b),c)"},
		{"a|b", "|(a,b)"},
		{"ab|c", "|(&(a,b),c)"},
		{"a|bc", "|(a,&(b,c))"},
		{"ab*", "&(a,*(b))"},
		{"a+?", "?(+(a))"},
		{"(ab)*", "*((?:&(a,b)))"},
		{"(?:a|b)c", "&((?:|(a,b)),c)"},
		{"[a-z_]+", "+([a-z_])"},
		{`\d{2,4}`, `{2,4}(\d)`},
		{"a{3}", "{3}(a)"},
		{"a{2,}", "{2,}(a)"},
		{".x", "&(.,x)"},
		{`\(\)`, `&(\(,\))`},
		{"a{x", "&(&(a,{),x)"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			node, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := node.String(); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestParseQuantifierBounds(t *testing.T) {
	tests := []struct {
		pattern  string
		min, max int
	}{
		{"a*", 0, Unbounded},
		{"a+", 1, Unbounded},
		{"a?", 0, 1},
		{"a{3}", 3, 3},
		{"a{3,}", 3, Unbounded},
		{"a{0,5}", 0, 5},
	}

	for _, tt := range tests {
		node, err := Parse(tt.pattern)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.pattern, err)
			continue
		}
		if node.Kind != Quantifier {
			t.Errorf("%s: expected Quantifier, got %s", tt.pattern, node.Kind)
			continue
		}
		if node.Min != tt.min || node.Max != tt.max {
			t.Errorf("%s: got {%d,%d}, want {%d,%d}", tt.pattern, node.Min, node.Max, tt.min, tt.max)
		}
	}
}

func TestParseErrors(t *testing.T) {
	patterns := []string{
		"",
		"(",
		"(ab",
		"ab)",
		"[a-z",
		"|a",
		"a|",
		"a||b",
		"*a",
		"()",
		`a\`,
		"a{3,1}",
		"(?:)",
	}

	for _, pattern := range patterns {
		node, err := Parse(pattern)
		if err == nil {
			t.Errorf("%q: expected error, got %s", pattern, node)
			continue
		}
		if node != nil {
			t.Errorf("%q: expected no tree on error", pattern)
		}
		if _, ok := err.(*Error); !ok {
			t.Errorf("%q: expected *Error, got %T", pattern, err)
		}
	}
}

func TestNestedErrorOffset(t *testing.T) {
	_, err := Parse("ab(c|)")
	e, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if e.Pattern != "ab(c|)" {
		t.Errorf("pattern mismatch: %q", e.Pattern)
	}
	if e.Offset != 5 {
		t.Errorf("offset mismatch: got %d, want 5", e.Offset)
	}
}

func TestNextTokenInRegex(t *testing.T) {
	pattern := `a[^x\]]\w(?:b)|{1,2}`
	expected := []Token{
		{Kind: TokLiteral, Text: "a"},
		{Kind: TokClass, Text: `[^x\]]`},
		{Kind: TokEscape, Text: `\w`},
		{Kind: TokPassiveGroup, Text: "b"},
		{Kind: TokAlternative, Text: "|"},
		{Kind: TokQuantifier, Text: "{1,2}", Min: 1, Max: 2},
	}

	pos := 0
	for i, want := range expected {
		tok, next, err := NextTokenInRegex(pattern, pos)
		if err != nil {
			t.Fatalf("token[%d]: unexpected error: %v", i, err)
		}
		if tok != want {
			t.Errorf("token[%d]: got %+v, want %+v", i, tok, want)
		}
		pos = next
	}
	if pos != len(pattern) {
		t.Errorf("expected to consume whole pattern, stopped at %d", pos)
	}
}

func TestLiterals(t *testing.T) {
	node, err := Parse(`wh(i|l)e[0-9]\+.`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Literals(node); !reflect.DeepEqual(got, []byte("while")) {
		t.Errorf("got %q, want %q", got, "while")
	}
}
