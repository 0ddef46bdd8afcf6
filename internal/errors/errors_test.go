package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/tangzhangming/ccfront/internal/i18n"
)

func TestNewUsesErrorTable(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)

	tests := []struct {
		code  string
		args  []interface{}
		kind  Kind
		level Level
		msg   string
	}{
		{E0101, []interface{}{"i"}, KindSemantic, LevelError, "redeclaration of 'i'"},
		{E0003, nil, KindLexical, LevelError, "missing terminating '\"' character"},
		{E0100, []interface{}{"x"}, KindSemantic, LevelWarning, "use of undeclared identifier 'x'"},
		{E0002, []interface{}{'@'}, KindLexical, LevelWarning, "unexpected character '@'"},
		{E0006, []interface{}{";", "}"}, KindSyntax, LevelError, "expected ';' but found '}'"},
		{L0001, []interface{}{2, "(a", "boom"}, KindRegex, LevelError, "invalid pattern in rule 2 ((a): boom"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			e := New(tt.code, "a.c", 3, 7, tt.args...)
			if e.Kind != tt.kind || e.Level != tt.level {
				t.Errorf("got (%s, %s), want (%s, %s)", e.Kind, e.Level, tt.kind, tt.level)
			}
			if e.Message != tt.msg {
				t.Errorf("got %q, want %q", e.Message, tt.msg)
			}
			if e.Error() != "a.c:3:7: "+tt.msg {
				t.Errorf("unexpected Error(): %q", e.Error())
			}
		})
	}
}

func TestEveryCodeHasMessage(t *testing.T) {
	for code, info := range errorTable {
		if info.Code != code {
			t.Errorf("%s: table entry carries code %s", code, info.Code)
		}
		if !i18n.Has(info.MessageID) {
			t.Errorf("%s: message %q has no english text", code, info.MessageID)
		}
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(E0101) || !IsFatal(E0006) {
		t.Errorf("syntax and semantic errors should be fatal")
	}
	if IsFatal(E0003) || IsFatal(E0002) {
		t.Errorf("lexical errors should not be fatal")
	}
	if IsFatal(E0100) || New(E0100, "a.c", 1, 1, "x").IsFatal() {
		t.Errorf("undeclared identifiers are warnings")
	}
}

func TestFormatCompileError(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)
	f := NewFormatter()
	f.Colors = false

	e := New(E0101, "main.c", 2, 5, "i").WithSpan(1).
		WithLabel(Label{Line: 1, Column: 5, Length: 1, Message: "previous declaration"})
	out := f.FormatCompileError(e, []string{"int i;", "int i;"})

	for _, want := range []string{
		"error[E0101]: redeclaration of 'i'",
		"--> main.c:2:5",
		"2 | int i;",
		"    ^",
		"- previous declaration",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReporter(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)
	var buf bytes.Buffer
	r := NewReporter(&buf)
	f := NewFormatter()
	f.Colors = false
	r.SetFormatter(f)
	r.SetSource("x.c", "int x = y;\n")

	r.ReportError(&CompileError{Code: E0101, Level: LevelError, Kind: KindSemantic,
		Message: "redeclaration of 'x'", File: "x.c", Line: 1, Column: 5})
	r.ReportWarning(New(E0002, "x.c", 1, 1, '$'))
	r.Summary()

	if r.ErrorCount() != 1 || r.WarningCount() != 1 {
		t.Fatalf("got %d errors and %d warnings", r.ErrorCount(), r.WarningCount())
	}
	if !r.HasErrors() || !r.HasWarnings() {
		t.Errorf("HasErrors and HasWarnings should both be true")
	}
	out := buf.String()
	if !strings.Contains(out, "1 | int x = y;") {
		t.Errorf("source line not shown:\n%s", out)
	}
	for _, want := range []string{"warning: found 1 warning", "error: found 1 error"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary %q not shown:\n%s", want, out)
		}
	}
}

func TestReporterWarningsOnly(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.SetFormatter(&Formatter{ShowSource: true, ShowHints: true, TabWidth: 4})
	r.SetSource("x.c", "int main() { foo(); }\n")
	r.ReportWarning(New(E0100, "x.c", 1, 14, "foo").WithSpan(3).WithNote("implicit"))
	r.ReportWarning(New(E0100, "x.c", 1, 14, "bar"))
	r.Summary()

	if r.HasErrors() {
		t.Errorf("warnings must not count as errors")
	}
	out := buf.String()
	if !strings.Contains(out, "warning: found 2 warnings") || strings.Contains(out, "error: found") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	if !strings.Contains(out, "implicit") {
		t.Errorf("note not shown:\n%s", out)
	}
}

func TestReporterReportAll(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.SetFormatter(&Formatter{})
	err := multierr.Append(New(E0003, "a.c", 1, 1), fmt.Errorf("disk full"))
	r.ReportAll(err)
	if r.ErrorCount() != 2 {
		t.Fatalf("got %d errors, want 2", r.ErrorCount())
	}
	if !strings.Contains(buf.String(), "E0001") || !strings.Contains(buf.String(), "disk full") {
		t.Errorf("plain errors should be reported as E0001:\n%s", buf.String())
	}
}

func TestDiagnostics(t *testing.T) {
	a := New(E0003, "a.c", 1, 1)
	b := New(E0004, "a.c", 2, 1)
	err := Combine([]*CompileError{a, b})
	got := Diagnostics(err)
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("unexpected diagnostics %v", got)
	}
	if Combine(nil) != nil {
		t.Errorf("expected nil for empty list")
	}
}

func TestSuggestions(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)
	hints := GetSuggestions(E0100, map[string]interface{}{"name": "cnt", "similar": "count"})
	if len(hints) != 2 || hints[1] != "did you mean `count`?" {
		t.Errorf("unexpected hints %q", hints)
	}
	if hints := GetSuggestions(E0006, map[string]interface{}{"expected": ";"}); len(hints) != 1 {
		t.Errorf("expected a semicolon hint, got %q", hints)
	}
	if hints := GetSuggestions(E0001, nil); hints != nil {
		t.Errorf("expected no hints, got %q", hints)
	}
}

func TestFindSimilar(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"conut", []string{"count", "main"}, "count"},
		{"Main", []string{"main"}, "main"},
		{"x", []string{"longname"}, ""},
		{"i", []string{"i"}, ""},
		{"foo", nil, ""},
	}
	for _, tt := range tests {
		if got := FindSimilar(tt.name, tt.candidates, 2); got != tt.want {
			t.Errorf("FindSimilar(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestColorize(t *testing.T) {
	saved := colorsEnabled
	defer func() { colorsEnabled = saved }()

	colorsEnabled = true
	if got := Colorize("x", ColorRed); got != "\033[31mx\033[0m" {
		t.Errorf("got %q", got)
	}
	colorsEnabled = false
	if got := Colorize("x", ColorRed); got != "x" {
		t.Errorf("got %q, want plain text", got)
	}
}
