//go:build windows

package main

import (
	"strings"

	"golang.org/x/sys/windows"
)

// detectWindowsChinese 使用用户界面语言列表检测是否为中文系统
func detectWindowsChinese() bool {
	langs, err := windows.GetUserPreferredUILanguages(windows.MUI_LANGUAGE_NAME)
	if err != nil || len(langs) == 0 {
		return false
	}
	return strings.HasPrefix(strings.ToLower(langs[0]), "zh")
}
