package token

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want Kind
		ok   bool
	}{
		{"IDENT", IDENT, true},
		{"INT_CONST", INT_CONST, true},
		{"THREAD_LOCAL", THREAD_LOCAL, true},
		{"ARROW", ARROW, true},
		{"DELIM", DELIM, true},
		{"ident", EMPTY, false},
		{"NOT_A_KIND", EMPTY, false},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.name)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Lookup(%q) = %s, %v; want %s, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindNamesRoundTrip(t *testing.T) {
	for k, name := range kindNames {
		got, ok := Lookup(name)
		if !ok || got != k {
			t.Errorf("Lookup(%q) = %s, want %s", name, got, k)
		}
		if k.String() != name {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), name)
		}
	}
}

func TestSpelling(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{SEMICOLON, ";"},
		{ARROW, "->"},
		{RIGHT_SHIFT_ASSIGN, ">>="},
		{WHILE, "while"},
		{THREAD_LOCAL, "_Thread_local"},
		{IDENT, "IDENT"},
		{Kind(-1), "Kind(-1)"},
	}
	for _, tt := range tests {
		if got := tt.kind.Spelling(); got != tt.want {
			t.Errorf("%s.Spelling() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKeywords(t *testing.T) {
	kw := Keywords()
	if kw["int"] != INT || kw["sizeof"] != SIZEOF {
		t.Errorf("unexpected keyword table")
	}
	for word, k := range kw {
		if !IsKeyword(k) {
			t.Errorf("%s (%s) should be a keyword", word, k)
		}
	}
	kw["int"] = IDENT
	if Keywords()["int"] != INT {
		t.Errorf("Keywords should return a copy")
	}
	if IsKeyword(IDENT) || IsKeyword(PLUS) {
		t.Errorf("IDENT and PLUS are not keywords")
	}
}

func TestIsSkipped(t *testing.T) {
	for _, k := range []Kind{DELIM, LINE_COMMENT, BLOCK_COMMENT} {
		if !IsSkipped(k) {
			t.Errorf("%s should be skipped", k)
		}
	}
	if IsSkipped(IDENT) || IsSkipped(EMPTY) {
		t.Errorf("IDENT and EMPTY are not skipped kinds")
	}
}

func TestTokenString(t *testing.T) {
	pos := Position{Filename: "a.c", Line: 2, Column: 5, Offset: 10}
	tests := []struct {
		tok  Token
		want string
	}{
		{New(IDENT, "main", pos), "IDENT(main) at a.c:2:5"},
		{New(INT_CONST, "42", pos), "INT_CONST(42) at a.c:2:5"},
		{New(LBRACE, "{", Position{Line: 1, Column: 1}), "LBRACE at 1:1"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}

	end := New(IDENT, "main", pos).End()
	if end.Column != 9 || end.Offset != 14 || end.Line != 2 {
		t.Errorf("unexpected end position %+v", end)
	}
	if (Token{}).IsEmpty() != true || New(IDENT, "x", pos).IsEmpty() {
		t.Errorf("IsEmpty mismatch")
	}
	if (Position{}).IsValid() || !pos.IsValid() {
		t.Errorf("IsValid mismatch")
	}
}
