package i18n

// 消息 ID
const (
	// ========== 规则表 ==========
	ErrInvalidPattern    = "rules.invalid_pattern"
	ErrUnknownTokenKind  = "rules.unknown_kind"
	ErrEmptyRuleTable    = "rules.empty"
	ErrMalformedRuleLine = "rules.malformed_line"
	ErrReadRuleFile      = "rules.read_failed"

	// ========== 词法分析器 ==========
	ErrUnexpectedChar      = "lexer.unexpected_char"
	ErrUnterminatedString  = "lexer.unterminated_string"
	ErrUnterminatedChar    = "lexer.unterminated_char"
	ErrUnterminatedComment = "lexer.unterminated_comment"

	// ========== 语法分析器 ==========
	ErrSyntax             = "parser.syntax"
	ErrExpectedToken      = "parser.expected_token"
	ErrUnexpectedToken    = "parser.unexpected_token"
	ErrUnexpectedEOF      = "parser.unexpected_eof"
	ErrExpectedExpression = "parser.expected_expression"
	ErrExpectedDeclSpec   = "parser.expected_decl_spec"
	ErrExpectedIdentifier = "parser.expected_identifier"
	ErrInvalidNumber      = "parser.invalid_number"

	// ========== 声明与作用域 ==========
	ErrUndeclaredIdent    = "sema.undeclared_identifier"
	ErrRedeclaration      = "sema.redeclaration"
	ErrConflictingDecl    = "sema.conflicting_declaration"
	ErrFuncRedefinition   = "sema.function_redefinition"
	ErrTypedefUnsupported = "sema.typedef_unsupported"

	// ========== 常量表达式 ==========
	ErrArraySizeNotConst  = "const.array_size_not_const"
	ErrArraySizeNegative  = "const.array_size_negative"
	ErrCaseNotConst       = "const.case_not_const"
	ErrEnumValueNotConst  = "const.enum_value_not_const"
	ErrDesignatorNotConst = "const.designator_not_const"

	// ========== 汇总 ==========
	MsgErrorCount    = "summary.error_count"
	MsgErrorSingle   = "summary.error_single"
	MsgWarningCount  = "summary.warning_count"
	MsgWarningSingle = "summary.warning_single"

	// ========== 附加说明 ==========
	NoteImplicitFunc   = "note.implicit_function"
	NoteImplicitObject = "note.implicit_object"
)
