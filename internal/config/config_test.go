package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Config
		wantErr bool
	}{
		{
			name:  "empty uses defaults",
			input: "",
			want:  *Default(),
		},
		{
			name: "all sections",
			input: `
[lexer]
rules = "c.toml"
[diagnostics]
lang = "zh"
color = false
[log]
level = "debug"
`,
			want: Config{
				Lexer:       LexerConfig{Rules: "c.toml"},
				Diagnostics: DiagnosticsConfig{Lang: "zh", Color: false},
				Log:         LogConfig{Level: "debug"},
			},
		},
		{
			name:  "partial keeps other defaults",
			input: "[log]\nlevel = \"warn\"\n",
			want: Config{
				Diagnostics: DiagnosticsConfig{Lang: "en", Color: true},
				Log:         LogConfig{Level: "warn"},
			},
		},
		{name: "bad language", input: "[diagnostics]\nlang = \"fr\"\n", wantErr: true},
		{name: "bad level", input: "[log]\nlevel = \"loud\"\n", wantErr: true},
		{name: "bad toml", input: "[log\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *cfg != tt.want {
				t.Errorf("got %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	cfg := Default()
	cfg.Lexer.Rules = filepath.Join(dir, "rules.txt")
	cfg.Diagnostics.Lang = "zh"
	cfg.Log.Level = "error"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("got %+v, want %+v", *got, *cfg)
	}
}

func TestLoadResolvesRulesRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("[lexer]\nrules = \"c.rules\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(dir, "c.rules"); cfg.Lexer.Rules != want {
		t.Errorf("got %s, want %s", cfg.Lexer.Rules, want)
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "lib")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	source := filepath.Join(nested, "main.c")
	if err := os.WriteFile(source, []byte("int main() {}"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := Find(source); got != "" {
		t.Fatalf("expected no config, got %s", got)
	}

	path := filepath.Join(root, FileName)
	if err := Default().Save(path); err != nil {
		t.Fatal(err)
	}
	if got := Find(source); got != path {
		t.Errorf("got %q, want %q", got, path)
	}
	if got := Find(nested); got != path {
		t.Errorf("got %q, want %q", got, path)
	}

	cfg, found, err := LoadFrom(source)
	if err != nil || found != path || *cfg != *Default() {
		t.Errorf("LoadFrom: got %+v %q %v", cfg, found, err)
	}
}

func TestFindMissingPath(t *testing.T) {
	if got := Find(filepath.Join(t.TempDir(), "missing.c")); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
