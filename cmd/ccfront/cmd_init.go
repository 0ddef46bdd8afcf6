package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tangzhangming/ccfront/internal/config"
	"github.com/tangzhangming/ccfront/internal/i18n"
)

// cmdInit 在当前目录生成 ccfront.toml
func (a *app) cmdInit(args []string) int {
	m := Msg()
	fs, rules := a.newFlagSet("init", "")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(a.stderr, m.ErrGetWorkDir+"\n", err)
		return 1
	}

	// 检查是否已存在配置文件
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(a.stderr, m.ErrConfigExists+"\n", config.FileName)
		return 1
	}

	cfg := config.Default()
	cfg.Lexer.Rules = *rules
	cfg.Diagnostics.Lang = string(i18n.GetLanguage())

	fmt.Fprintf(a.stdout, m.InitCreating+"\n", config.FileName)
	if err := cfg.Save(path); err != nil {
		fmt.Fprintf(a.stderr, m.ErrWriteFile+"\n", err)
		return 1
	}
	return 0
}
