// Package errors 提供 C 前端的诊断模型：错误码、错误种类、格式化与报告
package errors

// ============================================================================
// 错误级别
// ============================================================================

// Level 错误级别
type Level int

const (
	LevelError   Level = iota // 错误
	LevelWarning              // 警告
	LevelNote                 // 提示
	LevelHelp                 // 帮助
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelNote:
		return "note"
	case LevelHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ============================================================================
// 错误种类
// ============================================================================

// Kind 错误来源
type Kind int

const (
	KindSyntax   Kind = iota // 语法错误，解析终止
	KindLexical              // 词法错误，可恢复
	KindSemantic             // 声明、作用域与常量表达式错误，解析终止
	KindRegex                // 规则表中的正则表达式错误
	KindConfig               // 配置与规则文件错误
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindLexical:
		return "lexical"
	case KindSemantic:
		return "semantic"
	case KindRegex:
		return "regex"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ============================================================================
// 错误码
// ============================================================================

const (
	// L0001-L0099: 规则表错误
	L0001 = "L0001" // 无效的正则表达式
	L0002 = "L0002" // 未知的 token 种类
	L0003 = "L0003" // 规则表为空
	L0004 = "L0004" // 规则行格式错误
	L0005 = "L0005" // 规则文件无法读取

	// E0001-E0099: 词法与语法错误
	E0001 = "E0001" // 语法错误
	E0002 = "E0002" // 意外的字符
	E0003 = "E0003" // 未闭合的字符串
	E0004 = "E0004" // 未闭合的注释
	E0005 = "E0005" // 无效的数值常量
	E0006 = "E0006" // 期望的 token
	E0007 = "E0007" // 意外的 token
	E0008 = "E0008" // 未闭合的字符常量
	E0009 = "E0009" // 需要表达式
	E0010 = "E0010" // 需要声明说明符
	E0011 = "E0011" // 需要标识符
	E0012 = "E0012" // 意外的输入结束

	// E0100-E0199: 声明与作用域错误
	E0100 = "E0100" // 未声明的标识符
	E0101 = "E0101" // 同一作用域内重复声明
	E0102 = "E0102" // 函数声明冲突
	E0103 = "E0103" // 函数重复定义
	E0104 = "E0104" // 不支持的 typedef

	// E0600-E0699: 常量表达式错误
	E0600 = "E0600" // 数组大小不是常量
	E0601 = "E0601" // 数组大小为负
	E0602 = "E0602" // case 标签不是常量
	E0603 = "E0603" // 枚举值不是常量
	E0604 = "E0604" // 数组指示符不是常量
)

// ============================================================================
// 错误码信息
// ============================================================================

// ErrorInfo 错误码信息
type ErrorInfo struct {
	Code      string // 错误码
	Level     Level  // 错误级别
	Kind      Kind   // 错误种类
	MessageID string // i18n 消息 ID
	Category  string // 错误分类
}

// errorTable 错误码信息表
var errorTable = map[string]ErrorInfo{
	// 规则表
	L0001: {L0001, LevelError, KindRegex, "rules.invalid_pattern", "rules"},
	L0002: {L0002, LevelError, KindConfig, "rules.unknown_kind", "rules"},
	L0003: {L0003, LevelError, KindConfig, "rules.empty", "rules"},
	L0004: {L0004, LevelError, KindConfig, "rules.malformed_line", "rules"},
	L0005: {L0005, LevelError, KindConfig, "rules.read_failed", "rules"},

	// 词法
	E0002: {E0002, LevelWarning, KindLexical, "lexer.unexpected_char", "lexical"},
	E0003: {E0003, LevelError, KindLexical, "lexer.unterminated_string", "lexical"},
	E0004: {E0004, LevelError, KindLexical, "lexer.unterminated_comment", "lexical"},
	E0008: {E0008, LevelError, KindLexical, "lexer.unterminated_char", "lexical"},

	// 语法
	E0001: {E0001, LevelError, KindSyntax, "parser.syntax", "syntax"},
	E0005: {E0005, LevelError, KindSyntax, "parser.invalid_number", "syntax"},
	E0006: {E0006, LevelError, KindSyntax, "parser.expected_token", "syntax"},
	E0007: {E0007, LevelError, KindSyntax, "parser.unexpected_token", "syntax"},
	E0009: {E0009, LevelError, KindSyntax, "parser.expected_expression", "syntax"},
	E0010: {E0010, LevelError, KindSyntax, "parser.expected_decl_spec", "syntax"},
	E0011: {E0011, LevelError, KindSyntax, "parser.expected_identifier", "syntax"},
	E0012: {E0012, LevelError, KindSyntax, "parser.unexpected_eof", "syntax"},

	// 声明与作用域
	E0100: {E0100, LevelWarning, KindSemantic, "sema.undeclared_identifier", "declaration"},
	E0101: {E0101, LevelError, KindSemantic, "sema.redeclaration", "declaration"},
	E0102: {E0102, LevelError, KindSemantic, "sema.conflicting_declaration", "declaration"},
	E0103: {E0103, LevelError, KindSemantic, "sema.function_redefinition", "declaration"},
	E0104: {E0104, LevelError, KindSemantic, "sema.typedef_unsupported", "declaration"},

	// 常量表达式
	E0600: {E0600, LevelError, KindSemantic, "const.array_size_not_const", "constant"},
	E0601: {E0601, LevelError, KindSemantic, "const.array_size_negative", "constant"},
	E0602: {E0602, LevelError, KindSemantic, "const.case_not_const", "constant"},
	E0603: {E0603, LevelError, KindSemantic, "const.enum_value_not_const", "constant"},
	E0604: {E0604, LevelError, KindSemantic, "const.designator_not_const", "constant"},
}

// GetErrorInfo 获取错误码信息
func GetErrorInfo(code string) (ErrorInfo, bool) {
	info, ok := errorTable[code]
	return info, ok
}

// KindOf 返回错误码所属的种类，未知错误码视为语法错误
func KindOf(code string) Kind {
	if info, ok := errorTable[code]; ok {
		return info.Kind
	}
	return KindSyntax
}

// IsFatal 判断该错误码是否终止解析，警告级别的错误码不终止
func IsFatal(code string) bool {
	if info, ok := errorTable[code]; ok && info.Level != LevelError {
		return false
	}
	switch KindOf(code) {
	case KindSyntax, KindSemantic:
		return true
	}
	return false
}
