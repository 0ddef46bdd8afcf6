package i18n

var messagesZH = map[string]string{
	// ========== 规则表 ==========
	ErrInvalidPattern:    "规则 %d (%s) 的正则表达式无效: %v",
	ErrUnknownTokenKind:  "未知的 token 种类 %q（规则 %d）",
	ErrEmptyRuleTable:    "规则表为空",
	ErrMalformedRuleLine: "第 %d 行的规则格式错误: %q",
	ErrReadRuleFile:      "无法读取规则文件: %v",

	// ========== 词法分析器 ==========
	ErrUnexpectedChar:      "意外字符 '%c'",
	ErrUnterminatedString:  "缺少结束的 '\"'",
	ErrUnterminatedChar:    "缺少结束的 '",
	ErrUnterminatedComment: "未闭合的块注释",

	// ========== 语法分析器 ==========
	ErrSyntax:             "语法错误",
	ErrExpectedToken:      "需要 '%s'，实际是 '%s'",
	ErrUnexpectedToken:    "意外的符号 '%s'",
	ErrUnexpectedEOF:      "意外的输入结束",
	ErrExpectedExpression: "需要表达式，实际是 '%s'",
	ErrExpectedDeclSpec:   "需要声明说明符，实际是 '%s'",
	ErrExpectedIdentifier: "需要标识符，实际是 '%s'",
	ErrInvalidNumber:      "无效的数值常量 '%s'",

	// ========== 声明与作用域 ==========
	ErrUndeclaredIdent:    "使用了未声明的标识符 '%s'",
	ErrRedeclaration:      "'%s' 重复声明",
	ErrConflictingDecl:    "'%s' 的类型与之前的声明冲突",
	ErrFuncRedefinition:   "函数 '%s' 重复定义",
	ErrTypedefUnsupported: "不支持 typedef 声明",

	// ========== 常量表达式 ==========
	ErrArraySizeNotConst:  "数组大小必须是整数常量表达式",
	ErrArraySizeNegative:  "数组大小必须非负，实际是 %d",
	ErrCaseNotConst:       "case 标签必须是整数常量表达式",
	ErrEnumValueNotConst:  "枚举常量 '%s' 的值不是整数常量表达式",
	ErrDesignatorNotConst: "数组指示符必须是整数常量表达式",

	// ========== 汇总 ==========
	MsgErrorCount:    "错误: 发现 %d 个错误",
	MsgErrorSingle:   "错误: 发现 1 个错误",
	MsgWarningCount:  "警告: 发现 %d 个警告",
	MsgWarningSingle: "警告: 发现 1 个警告",

	// ========== 附加说明 ==========
	NoteImplicitFunc:   "'%s' 被隐式声明为 'int %s()'",
	NoteImplicitObject: "'%s' 按 'int' 类型的对象处理",

	// ========== 修复建议 ==========
	"suggestion.declare_identifier":  "在首次使用之前声明 `%s`",
	"suggestion.did_you_mean":        "是否想用 `%s`？",
	"suggestion.rename_identifier":   "重命名其中一个声明，或删除重复的声明",
	"suggestion.shadow_in_block":     "嵌套块中的声明可以复用这个名字",
	"suggestion.match_prototype":     "让 `%s` 的声明与之前的声明保持一致",
	"suggestion.remove_definition":   "只保留 `%s` 的一个定义",
	"suggestion.close_string":        "在行尾之前补上结束引号",
	"suggestion.close_comment":       "补上 `*/` 结束注释",
	"suggestion.constant_expression": "使用整数字面量、字符常量或枚举常量",
	"suggestion.check_pattern":       "检查该规则的正则表达式语法",
	"suggestion.known_kinds":         "运行 `ccfront rules` 查看可用的 token 种类",
	"suggestion.missing_semicolon":   "上一个声明或语句末尾可能缺少 ';'",
	"suggestion.typedef":             "直接写出完整类型，不使用 typedef 名称",

	// ========== Labels ==========
	"label.previous_declaration": "之前的声明在这里",
}
