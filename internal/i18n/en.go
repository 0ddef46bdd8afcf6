package i18n

var messagesEN = map[string]string{
	// ========== Rules ==========
	ErrInvalidPattern:    "invalid pattern in rule %d (%s): %v",
	ErrUnknownTokenKind:  "unknown token kind %q in rule %d",
	ErrEmptyRuleTable:    "rule table is empty",
	ErrMalformedRuleLine: "malformed rule on line %d: %q",
	ErrReadRuleFile:      "cannot read rule file: %v",

	// ========== Lexer ==========
	ErrUnexpectedChar:      "unexpected character '%c'",
	ErrUnterminatedString:  "missing terminating '\"' character",
	ErrUnterminatedChar:    "missing terminating ' character",
	ErrUnterminatedComment: "unterminated comment",

	// ========== Parser ==========
	ErrSyntax:             "syntax error",
	ErrExpectedToken:      "expected '%s' but found '%s'",
	ErrUnexpectedToken:    "unexpected token '%s'",
	ErrUnexpectedEOF:      "unexpected end of input",
	ErrExpectedExpression: "expected expression but found '%s'",
	ErrExpectedDeclSpec:   "expected declaration specifiers but found '%s'",
	ErrExpectedIdentifier: "expected identifier but found '%s'",
	ErrInvalidNumber:      "invalid numeric constant '%s'",

	// ========== Declarations ==========
	ErrUndeclaredIdent:    "use of undeclared identifier '%s'",
	ErrRedeclaration:      "redeclaration of '%s'",
	ErrConflictingDecl:    "conflicting types for '%s'",
	ErrFuncRedefinition:   "redefinition of function '%s'",
	ErrTypedefUnsupported: "typedef declarations are not supported",

	// ========== Constant expressions ==========
	ErrArraySizeNotConst:  "array size must be an integer constant expression",
	ErrArraySizeNegative:  "array size must be non-negative, got %d",
	ErrCaseNotConst:       "case label must be an integer constant expression",
	ErrEnumValueNotConst:  "value of enumerator '%s' is not an integer constant expression",
	ErrDesignatorNotConst: "array designator must be an integer constant expression",

	// ========== Summary ==========
	MsgErrorCount:    "error: found %d errors",
	MsgErrorSingle:   "error: found 1 error",
	MsgWarningCount:  "warning: found %d warnings",
	MsgWarningSingle: "warning: found 1 warning",

	// ========== Notes ==========
	NoteImplicitFunc:   "'%s' is implicitly declared as 'int %s()'",
	NoteImplicitObject: "'%s' is treated as an object of type 'int'",

	// ========== Suggestions ==========
	"suggestion.declare_identifier":  "declare `%s` before its first use",
	"suggestion.did_you_mean":        "did you mean `%s`?",
	"suggestion.rename_identifier":   "rename one of the declarations, or remove the duplicate",
	"suggestion.shadow_in_block":     "a declaration inside a nested block may reuse the name",
	"suggestion.match_prototype":     "make the declaration of `%s` match the earlier one",
	"suggestion.remove_definition":   "keep only one definition of `%s`",
	"suggestion.close_string":        "add the closing quote before the end of the line",
	"suggestion.close_comment":       "add `*/` to close the comment",
	"suggestion.constant_expression": "use an integer literal, a character constant or an enumeration constant",
	"suggestion.check_pattern":       "check the regular expression syntax of the rule",
	"suggestion.known_kinds":         "run `ccfront rules` to list the known token kinds",
	"suggestion.missing_semicolon":   "a ';' may be missing at the end of the previous declaration or statement",
	"suggestion.typedef":             "spell the type out in full instead of using a typedef name",

	// ========== Labels ==========
	"label.previous_declaration": "previous declaration is here",
}
