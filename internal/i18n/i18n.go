// Package i18n 提供诊断信息的多语言文本
package i18n

import (
	"fmt"
	"strings"
	"sync"
)

// Language 语言类型
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// catalogues 每种语言的消息表，英文是回退语言
var catalogues = map[Language]map[string]string{
	LangEnglish: messagesEN,
	LangChinese: messagesZH,
}

// 全局语言设置
var (
	currentLang = LangEnglish
	mu          sync.RWMutex
)

// SetLanguage 设置当前语言
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	currentLang = lang
}

// ParseLanguage 把配置或命令行中的语言名解析为 Language
func ParseLanguage(name string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "zh", "zh-cn", "zh-tw", "zh-hk", "chinese":
		return LangChinese, true
	case "", "en", "en-us", "en-gb", "english":
		return LangEnglish, true
	}
	return LangEnglish, false
}

// SetLanguageFromString 从字符串设置语言，无法识别时使用英文
func SetLanguageFromString(name string) {
	lang, _ := ParseLanguage(name)
	SetLanguage(lang)
}

// GetLanguage 获取当前语言
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return currentLang
}

// Has 判断消息 ID 是否有英文文本
func Has(msgID string) bool {
	_, ok := messagesEN[msgID]
	return ok
}

// T 翻译消息（支持格式化参数）
//
// 当前语言缺少该消息时回退到英文，英文也没有时返回消息 ID 本身。
func T(msgID string, args ...interface{}) string {
	msg, ok := catalogues[GetLanguage()][msgID]
	if !ok {
		msg, ok = messagesEN[msgID]
	}
	if !ok {
		return msgID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
