package lsp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/protocol"

	cerrors "github.com/tangzhangming/ccfront/internal/errors"
	"github.com/tangzhangming/ccfront/internal/parser"
)

func TestSeverity(t *testing.T) {
	tests := []struct {
		level cerrors.Level
		want  protocol.DiagnosticSeverity
	}{
		{cerrors.LevelError, protocol.DiagnosticSeverityError},
		{cerrors.LevelWarning, protocol.DiagnosticSeverityWarning},
		{cerrors.LevelNote, protocol.DiagnosticSeverityInformation},
		{cerrors.LevelHelp, protocol.DiagnosticSeverityHint},
	}
	for _, tt := range tests {
		if got := Severity(tt.level); got != tt.want {
			t.Errorf("Severity(%s) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestToDiagnostic(t *testing.T) {
	_, err := parser.ParseSource("int main() { int i; int i; }", "a.c")
	var ce *cerrors.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CompileError, got %v", err)
	}

	docURI := DocumentURI("a.c")
	diag := ToDiagnostic(docURI, ce)
	wantRange := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 24},
		End:   protocol.Position{Line: 0, Character: 25},
	}
	if diag.Range != wantRange {
		t.Errorf("got range %+v, want %+v", diag.Range, wantRange)
	}
	if diag.Code != cerrors.E0101 || diag.Source != Source || diag.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("unexpected diagnostic header %+v", diag)
	}
	if !strings.HasPrefix(diag.Message, ce.Message) {
		t.Errorf("message %q should start with %q", diag.Message, ce.Message)
	}
	if len(diag.RelatedInformation) != 1 {
		t.Fatalf("expected previous declaration as related information, got %d", len(diag.RelatedInformation))
	}
	rel := diag.RelatedInformation[0]
	if rel.Location.URI != docURI || rel.Location.Range.Start.Character != 17 {
		t.Errorf("unexpected related location %+v", rel.Location)
	}
}

func TestDiagnosticsMultierr(t *testing.T) {
	err := cerrors.Combine([]*cerrors.CompileError{
		cerrors.New(cerrors.E0003, "a.c", 2, 5),
		cerrors.New(cerrors.E0002, "a.c", 3, 1, '@'),
	})
	diags := Diagnostics(DocumentURI("a.c"), err)
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if diags[0].Severity != protocol.DiagnosticSeverityError || diags[1].Severity != protocol.DiagnosticSeverityWarning {
		t.Errorf("unexpected severities %v %v", diags[0].Severity, diags[1].Severity)
	}
	if diags[0].Range.Start.Line != 1 || diags[0].Range.Start.Character != 4 {
		t.Errorf("unexpected range %+v", diags[0].Range)
	}
}

func TestPublishClearsOnSuccess(t *testing.T) {
	params := Publish("a.c", nil)
	if params.Diagnostics == nil || len(params.Diagnostics) != 0 {
		t.Errorf("expected an empty, non-nil diagnostics list")
	}
	if !strings.HasPrefix(string(params.URI), "file://") || !strings.HasSuffix(string(params.URI), "/a.c") {
		t.Errorf("unexpected uri %s", params.URI)
	}
}

func TestPublishWarnings(t *testing.T) {
	p, err := parser.NewFromSource("int main() { foo(); }", "c.c")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Parse(); err != nil {
		t.Fatal(err)
	}
	params := Publish("c.c", nil, p.Warnings()...)
	if len(params.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(params.Diagnostics))
	}
	d := params.Diagnostics[0]
	if d.Severity != protocol.DiagnosticSeverityWarning || d.Code != cerrors.E0100 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if d.Range.Start.Character != 13 || d.Range.End.Character != 16 {
		t.Errorf("got range %+v", d.Range)
	}
	if !strings.Contains(d.Message, "int foo()") {
		t.Errorf("the implicit declaration note should be part of the message: %q", d.Message)
	}
}

func TestWriteNotification(t *testing.T) {
	_, err := parser.ParseSource("int x = ;", "b.c")
	if err == nil {
		t.Fatal("expected parse error")
	}

	var buf bytes.Buffer
	if err := WriteNotification(context.Background(), &buf, Publish("b.c", err)); err != nil {
		t.Fatalf("WriteNotification: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "Content-Length: ") {
		t.Fatalf("missing header: %q", out)
	}
	body := out[strings.Index(out, "\r\n\r\n")+4:]
	if !strings.Contains(out, fmt.Sprintf("Content-Length: %d", len(body))) {
		t.Errorf("Content-Length does not match body length %d: %q", len(body), out)
	}

	var msg struct {
		JSONRPC string                            `json:"jsonrpc"`
		Method  string                            `json:"method"`
		Params  protocol.PublishDiagnosticsParams `json:"params"`
	}
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		t.Fatalf("invalid body %q: %v", body, err)
	}
	if msg.JSONRPC != "2.0" || msg.Method != MethodPublishDiagnostics {
		t.Errorf("unexpected envelope %+v", msg)
	}
	if len(msg.Params.Diagnostics) != 1 || msg.Params.Diagnostics[0].Code != cerrors.E0009 {
		t.Errorf("unexpected diagnostics %+v", msg.Params.Diagnostics)
	}
}
