package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{" error ", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestNewFormat(t *testing.T) {
	t.Setenv(EnvDebug, "")
	var buf bytes.Buffer
	logger, err := New("info", &buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hidden")
	logger.Info("rules loaded", zap.Int("rules", 42))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry should be filtered at info level: %q", out)
	}
	for _, want := range []string{"[INFO]", "rules loaded", `"rules": 42`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q should contain %q", out, want)
		}
	}
	if !strings.HasPrefix(out, "[") {
		t.Errorf("output should start with a bracketed time stamp: %q", out)
	}
}

func TestDebugEnv(t *testing.T) {
	for _, v := range []string{"1", "true", "ON"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv(EnvDebug, v)
			if !DebugEnabled() {
				t.Fatalf("%s=%s should enable debug", EnvDebug, v)
			}
			var buf bytes.Buffer
			logger, err := New("error", &buf)
			if err != nil {
				t.Fatal(err)
			}
			logger.Debug("traced")
			if !strings.Contains(buf.String(), "traced") {
				t.Errorf("debug entry should be written when %s is set", EnvDebug)
			}
		})
	}

	t.Setenv(EnvDebug, "0")
	if DebugEnabled() {
		t.Errorf("%s=0 should not enable debug", EnvDebug)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New("chatty", &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewFile(t *testing.T) {
	t.Setenv(EnvDebug, "")
	path := filepath.Join(t.TempDir(), "ccfront.log")
	logger, closeFn, err := NewFile("info", path)
	if err != nil {
		t.Fatal(err)
	}
	logger.Warn("unterminated comment", zap.String("file", "a.c"))
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[WARN]") || !strings.Contains(string(data), "a.c") {
		t.Errorf("unexpected log file content %q", data)
	}
}
