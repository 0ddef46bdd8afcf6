package errors

import (
	"strings"

	"github.com/tangzhangming/ccfront/internal/i18n"
)

// ============================================================================
// 修复建议生成器
// ============================================================================

// SuggestionGenerator 修复建议生成器
//
// 上下文中常用的键：
//
//	name     出错的标识符
//	similar  作用域中拼写相近的名称
type SuggestionGenerator struct{}

// NewSuggestionGenerator 创建修复建议生成器
func NewSuggestionGenerator() *SuggestionGenerator {
	return &SuggestionGenerator{}
}

// GetSuggestions 根据错误码和上下文获取修复建议
func (g *SuggestionGenerator) GetSuggestions(code string, context map[string]interface{}) []string {
	switch code {
	// 规则表
	case L0001:
		return []string{i18n.T("suggestion.check_pattern")}
	case L0002:
		return []string{i18n.T("suggestion.known_kinds")}

	// 词法
	case E0003, E0008:
		return []string{i18n.T("suggestion.close_string")}
	case E0004:
		return []string{i18n.T("suggestion.close_comment")}

	// 语法
	case E0006:
		return g.expectedTokenSuggestions(context)

	// 声明
	case E0100:
		return g.undeclaredSuggestions(context)
	case E0101:
		return []string{
			i18n.T("suggestion.rename_identifier"),
			i18n.T("suggestion.shadow_in_block"),
		}
	case E0102:
		return []string{i18n.T("suggestion.match_prototype", stringValue(context, "name"))}
	case E0103:
		return []string{i18n.T("suggestion.remove_definition", stringValue(context, "name"))}
	case E0104:
		return []string{i18n.T("suggestion.typedef")}

	// 常量表达式
	case E0600, E0602, E0603, E0604:
		return []string{i18n.T("suggestion.constant_expression")}

	default:
		return nil
	}
}

// undeclaredSuggestions 未声明标识符的建议
func (g *SuggestionGenerator) undeclaredSuggestions(context map[string]interface{}) []string {
	name := stringValue(context, "name")
	if name == "" {
		return nil
	}
	suggestions := []string{i18n.T("suggestion.declare_identifier", name)}
	if similar := stringValue(context, "similar"); similar != "" {
		suggestions = append(suggestions, i18n.T("suggestion.did_you_mean", similar))
	}
	return suggestions
}

// expectedTokenSuggestions 缺少分号时的建议
func (g *SuggestionGenerator) expectedTokenSuggestions(context map[string]interface{}) []string {
	if stringValue(context, "expected") == ";" {
		return []string{i18n.T("suggestion.missing_semicolon")}
	}
	return nil
}

func stringValue(context map[string]interface{}, key string) string {
	if context == nil {
		return ""
	}
	s, _ := context[key].(string)
	return s
}

// ============================================================================
// 相似名称查找
// ============================================================================

// FindSimilar 查找相似的名称
func FindSimilar(name string, candidates []string, maxDistance int) string {
	if len(candidates) == 0 {
		return ""
	}

	bestMatch := ""
	bestDistance := maxDistance + 1

	for _, candidate := range candidates {
		if candidate == name {
			continue
		}
		distance := levenshteinDistance(name, candidate)
		if distance < bestDistance {
			bestDistance = distance
			bestMatch = candidate
		}
	}

	if bestDistance <= maxDistance {
		return bestMatch
	}
	return ""
}

// levenshteinDistance 计算 Levenshtein 编辑距离
//
// C 标识符区分大小写，但拼写建议忽略大小写。
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	s1 = strings.ToLower(s1)
	s2 = strings.ToLower(s2)

	// 只保留两行
	prev := make([]int, len(s2)+1)
	cur := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		cur[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			cur[j] = min3(
				prev[j]+1,      // 删除
				cur[j-1]+1,     // 插入
				prev[j-1]+cost, // 替换
			)
		}
		prev, cur = cur, prev
	}

	return prev[len(s2)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// ============================================================================
// 全局实例
// ============================================================================

var defaultSuggestionGenerator = NewSuggestionGenerator()

// GetSuggestions 使用默认生成器获取建议
func GetSuggestions(code string, context map[string]interface{}) []string {
	return defaultSuggestionGenerator.GetSuggestions(code, context)
}
