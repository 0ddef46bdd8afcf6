// Package token 定义 C 语言前端的词法单元
package token

import "fmt"

// ============================================================================
// Token 种类定义
// ============================================================================
//
// Kind 使用 iota 自动编号，按类别分组：
// 1. 特殊标记（EMPTY 与仅供词法规则使用的注释、空白）
// 2. 标识符与常量
// 3. 关键字（C11）
// 4. 标点符号（运算符与分隔符）
//
// 规则表中的优先级由规则顺序决定，与这里的编号无关。
//
// ============================================================================

// Kind 表示 Token 的种类
type Kind int

const (
	// ----------------------------------------------------------
	// 特殊标记
	// ----------------------------------------------------------
	EMPTY         Kind = iota // 没有 token（输入结束或未匹配）
	DELIM                     // 空白分隔符，词法器内部丢弃
	LINE_COMMENT              // 行注释开头 //
	BLOCK_COMMENT             // 块注释开头 /*

	// ----------------------------------------------------------
	// 标识符与常量
	// ----------------------------------------------------------
	IDENT          // 标识符
	INT_CONST      // 整数常量
	FLOAT_CONST    // 浮点常量
	CHAR_CONST     // 字符常量（规则只匹配开头的 '）
	STRING_LITERAL // 字符串字面量（规则只匹配开头的 "）

	// ----------------------------------------------------------
	// 关键字
	// ----------------------------------------------------------
	keyword_beg
	AUTO
	BREAK
	CASE
	CHAR
	CONST
	CONTINUE
	DEFAULT
	DO
	DOUBLE
	ELSE
	ENUM
	EXTERN
	FLOAT
	FOR
	GOTO
	IF
	INLINE
	INT
	LONG
	REGISTER
	RESTRICT
	RETURN
	SHORT
	SIGNED
	SIZEOF
	STATIC
	STRUCT
	SWITCH
	TYPEDEF
	UNION
	UNSIGNED
	VOID
	VOLATILE
	WHILE
	ALIGNAS        // _Alignas
	ALIGNOF        // _Alignof
	ATOMIC         // _Atomic
	BOOL           // _Bool
	COMPLEX        // _Complex
	GENERIC        // _Generic
	IMAGINARY      // _Imaginary
	NORETURN       // _Noreturn
	STATIC_ASSERT  // _Static_assert
	THREAD_LOCAL   // _Thread_local
	keyword_end

	// ----------------------------------------------------------
	// 分隔符
	// ----------------------------------------------------------
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :
	QUESTION  // ?
	DOT       // .
	ARROW     // ->
	ELLIPSIS  // ...
	HASH      // #
	HASH_HASH // ##

	// ----------------------------------------------------------
	// 算术运算符
	// ----------------------------------------------------------
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	INCREMENT // ++
	DECREMENT // --

	// ----------------------------------------------------------
	// 比较与逻辑运算符
	// ----------------------------------------------------------
	EQ  // ==
	NE  // !=
	LT  // <
	LE  // <=
	GT  // >
	GE  // >=
	AND // &&
	OR  // ||
	NOT // !

	// ----------------------------------------------------------
	// 位运算符
	// ----------------------------------------------------------
	BIT_AND     // &
	BIT_OR      // |
	BIT_XOR     // ^
	BIT_NOT     // ~
	LEFT_SHIFT  // <<
	RIGHT_SHIFT // >>

	// ----------------------------------------------------------
	// 赋值运算符
	// ----------------------------------------------------------
	ASSIGN             // =
	PLUS_ASSIGN        // +=
	MINUS_ASSIGN       // -=
	STAR_ASSIGN        // *=
	SLASH_ASSIGN       // /=
	PERCENT_ASSIGN     // %=
	LEFT_SHIFT_ASSIGN  // <<=
	RIGHT_SHIFT_ASSIGN // >>=
	AND_ASSIGN         // &=
	OR_ASSIGN          // |=
	XOR_ASSIGN         // ^=
)

// kindNames 是 Kind 到规则表名称的映射，规则文件里用这些名字指定种类
var kindNames = map[Kind]string{
	EMPTY:         "EMPTY",
	DELIM:         "DELIM",
	LINE_COMMENT:  "LINE_COMMENT",
	BLOCK_COMMENT: "BLOCK_COMMENT",

	IDENT:          "IDENT",
	INT_CONST:      "INT_CONST",
	FLOAT_CONST:    "FLOAT_CONST",
	CHAR_CONST:     "CHAR_CONST",
	STRING_LITERAL: "STRING_LITERAL",

	AUTO:          "AUTO",
	BREAK:         "BREAK",
	CASE:          "CASE",
	CHAR:          "CHAR",
	CONST:         "CONST",
	CONTINUE:      "CONTINUE",
	DEFAULT:       "DEFAULT",
	DO:            "DO",
	DOUBLE:        "DOUBLE",
	ELSE:          "ELSE",
	ENUM:          "ENUM",
	EXTERN:        "EXTERN",
	FLOAT:         "FLOAT",
	FOR:           "FOR",
	GOTO:          "GOTO",
	IF:            "IF",
	INLINE:        "INLINE",
	INT:           "INT",
	LONG:          "LONG",
	REGISTER:      "REGISTER",
	RESTRICT:      "RESTRICT",
	RETURN:        "RETURN",
	SHORT:         "SHORT",
	SIGNED:        "SIGNED",
	SIZEOF:        "SIZEOF",
	STATIC:        "STATIC",
	STRUCT:        "STRUCT",
	SWITCH:        "SWITCH",
	TYPEDEF:       "TYPEDEF",
	UNION:         "UNION",
	UNSIGNED:      "UNSIGNED",
	VOID:          "VOID",
	VOLATILE:      "VOLATILE",
	WHILE:         "WHILE",
	ALIGNAS:       "ALIGNAS",
	ALIGNOF:       "ALIGNOF",
	ATOMIC:        "ATOMIC",
	BOOL:          "BOOL",
	COMPLEX:       "COMPLEX",
	GENERIC:       "GENERIC",
	IMAGINARY:     "IMAGINARY",
	NORETURN:      "NORETURN",
	STATIC_ASSERT: "STATIC_ASSERT",
	THREAD_LOCAL:  "THREAD_LOCAL",

	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACKET:  "LBRACKET",
	RBRACKET:  "RBRACKET",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	COMMA:     "COMMA",
	SEMICOLON: "SEMICOLON",
	COLON:     "COLON",
	QUESTION:  "QUESTION",
	DOT:       "DOT",
	ARROW:     "ARROW",
	ELLIPSIS:  "ELLIPSIS",
	HASH:      "HASH",
	HASH_HASH: "HASH_HASH",

	PLUS:      "PLUS",
	MINUS:     "MINUS",
	STAR:      "STAR",
	SLASH:     "SLASH",
	PERCENT:   "PERCENT",
	INCREMENT: "INCREMENT",
	DECREMENT: "DECREMENT",

	EQ:  "EQ",
	NE:  "NE",
	LT:  "LT",
	LE:  "LE",
	GT:  "GT",
	GE:  "GE",
	AND: "AND",
	OR:  "OR",
	NOT: "NOT",

	BIT_AND:     "BIT_AND",
	BIT_OR:      "BIT_OR",
	BIT_XOR:     "BIT_XOR",
	BIT_NOT:     "BIT_NOT",
	LEFT_SHIFT:  "LEFT_SHIFT",
	RIGHT_SHIFT: "RIGHT_SHIFT",

	ASSIGN:             "ASSIGN",
	PLUS_ASSIGN:        "PLUS_ASSIGN",
	MINUS_ASSIGN:       "MINUS_ASSIGN",
	STAR_ASSIGN:        "STAR_ASSIGN",
	SLASH_ASSIGN:       "SLASH_ASSIGN",
	PERCENT_ASSIGN:     "PERCENT_ASSIGN",
	LEFT_SHIFT_ASSIGN:  "LEFT_SHIFT_ASSIGN",
	RIGHT_SHIFT_ASSIGN: "RIGHT_SHIFT_ASSIGN",
	AND_ASSIGN:         "AND_ASSIGN",
	OR_ASSIGN:          "OR_ASSIGN",
	XOR_ASSIGN:         "XOR_ASSIGN",
}

// spellings 是关键字与标点的源代码拼写，用于诊断信息
var spellings = map[Kind]string{
	LPAREN: "(", RPAREN: ")", LBRACKET: "[", RBRACKET: "]", LBRACE: "{", RBRACE: "}",
	COMMA: ",", SEMICOLON: ";", COLON: ":", QUESTION: "?", DOT: ".", ARROW: "->",
	ELLIPSIS: "...", HASH: "#", HASH_HASH: "##",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", INCREMENT: "++", DECREMENT: "--",
	EQ: "==", NE: "!=", LT: "<", LE: "<=", GT: ">", GE: ">=", AND: "&&", OR: "||", NOT: "!",
	BIT_AND: "&", BIT_OR: "|", BIT_XOR: "^", BIT_NOT: "~", LEFT_SHIFT: "<<", RIGHT_SHIFT: ">>",
	ASSIGN: "=", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", STAR_ASSIGN: "*=", SLASH_ASSIGN: "/=",
	PERCENT_ASSIGN: "%=", LEFT_SHIFT_ASSIGN: "<<=", RIGHT_SHIFT_ASSIGN: ">>=",
	AND_ASSIGN: "&=", OR_ASSIGN: "|=", XOR_ASSIGN: "^=",
}

// keywords 是关键字拼写到种类的映射
var keywords = map[string]Kind{
	"auto":           AUTO,
	"break":          BREAK,
	"case":           CASE,
	"char":           CHAR,
	"const":          CONST,
	"continue":       CONTINUE,
	"default":        DEFAULT,
	"do":             DO,
	"double":         DOUBLE,
	"else":           ELSE,
	"enum":           ENUM,
	"extern":         EXTERN,
	"float":          FLOAT,
	"for":            FOR,
	"goto":           GOTO,
	"if":             IF,
	"inline":         INLINE,
	"int":            INT,
	"long":           LONG,
	"register":       REGISTER,
	"restrict":       RESTRICT,
	"return":         RETURN,
	"short":          SHORT,
	"signed":         SIGNED,
	"sizeof":         SIZEOF,
	"static":         STATIC,
	"struct":         STRUCT,
	"switch":         SWITCH,
	"typedef":        TYPEDEF,
	"union":          UNION,
	"unsigned":       UNSIGNED,
	"void":           VOID,
	"volatile":       VOLATILE,
	"while":          WHILE,
	"_Alignas":       ALIGNAS,
	"_Alignof":       ALIGNOF,
	"_Atomic":        ATOMIC,
	"_Bool":          BOOL,
	"_Complex":       COMPLEX,
	"_Generic":       GENERIC,
	"_Imaginary":     IMAGINARY,
	"_Noreturn":      NORETURN,
	"_Static_assert": STATIC_ASSERT,
	"_Thread_local":  THREAD_LOCAL,
}

// nameToKind 是 kindNames 的反向索引
var nameToKind map[string]Kind

func init() {
	nameToKind = make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		nameToKind[name] = k
	}
	for word, k := range keywords {
		spellings[k] = word
	}
}

// Lookup 根据规则表中的名称查找种类
func Lookup(name string) (Kind, bool) {
	k, ok := nameToKind[name]
	return k, ok
}

// Keywords 返回所有关键字拼写到种类的映射副本
func Keywords() map[string]Kind {
	out := make(map[string]Kind, len(keywords))
	for word, k := range keywords {
		out[word] = k
	}
	return out
}

// IsKeyword 判断 Kind 是否为关键字
func IsKeyword(k Kind) bool {
	return k > keyword_beg && k < keyword_end
}

// IsSkipped 判断种类是否只在词法器内部使用，永远不会交给语法分析器
func IsSkipped(k Kind) bool {
	return k == DELIM || k == LINE_COMMENT || k == BLOCK_COMMENT
}

// String 返回 Kind 的名称
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Spelling 返回种类的源代码拼写，没有固定拼写时返回名称
func (k Kind) Spelling() string {
	if s, ok := spellings[k]; ok {
		return s
	}
	return k.String()
}

// ============================================================================
// Position - 源代码位置
// ============================================================================

// Position 表示源代码中的位置
type Position struct {
	Filename string // 文件名
	Line     int    // 行号 (从1开始)
	Column   int    // 列号 (从1开始)
	Offset   int    // 字节偏移量 (从0开始)
}

// String 返回位置的字符串表示，格式为 "filename:line:column"
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid 检查位置是否有效
func (p Position) IsValid() bool {
	return p.Line > 0
}

// ============================================================================
// Token - 词法单元
// ============================================================================

// Token 表示一个词法单元，创建后不再修改
type Token struct {
	Kind   Kind     // 种类
	Lexeme string   // 匹配到的原始文本
	Pos    Position // 第一个字符的位置
}

// New 创建一个新的 Token
func New(kind Kind, lexeme string, pos Position) Token {
	return Token{Kind: kind, Lexeme: lexeme, Pos: pos}
}

// IsEmpty 判断是否为 EMPTY
func (t Token) IsEmpty() bool {
	return t.Kind == EMPTY
}

// End 返回 token 之后第一个字符的位置（仅在单行 token 上准确）
func (t Token) End() Position {
	end := t.Pos
	end.Column += len(t.Lexeme)
	end.Offset += len(t.Lexeme)
	return end
}

// String 返回 Token 的字符串表示（用于调试）
func (t Token) String() string {
	switch t.Kind {
	case IDENT, INT_CONST, FLOAT_CONST, CHAR_CONST, STRING_LITERAL:
		return fmt.Sprintf("%s(%s) at %s", t.Kind, t.Lexeme, t.Pos)
	default:
		return fmt.Sprintf("%s at %s", t.Kind, t.Pos)
	}
}
