package lexer

import (
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	cerrors "github.com/tangzhangming/ccfront/internal/errors"
	"github.com/tangzhangming/ccfront/internal/nfa"
	"github.com/tangzhangming/ccfront/internal/token"
)

// ============================================================================
// Lexer - 词法分析器
// ============================================================================
//
// Lexer 在源代码上反复调用自动机的最长匹配，把匹配结果整理为 Token 流。
//
// 自动机只识别字符串、字符常量和注释的起始定界符，其余部分由 Lexer 自己扫描：
//   - 字符串与字符常量：反斜杠与其后一个字符整体跳过，直到遇到相同的引号；
//     先遇到换行或文件结束则报告 E0003 / E0008，之后不再产生 token
//   - 行注释：丢弃到行尾
//   - 块注释：丢弃到 */，没有闭合时报告 E0004
//   - 空白：丢弃
//
// 没有规则匹配（或只得到零长度匹配）的字符逐个跳过，默认不产生诊断。
//
// ============================================================================

// Lexer 词法分析器结构体
type Lexer struct {
	source    string   // 源代码字符串
	filename  string   // 源文件名（用于错误报告）
	automaton *nfa.Nfa // 共享的自动机，只读

	current int // 当前扫描位置（字节偏移）
	line    int // 当前行号（从1开始）
	column  int // 当前列号（从1开始）

	pending []token.Token // 回退的 token，后进先出
	done    bool          // 输入已耗尽或遇到未闭合的字面量

	errors  []*cerrors.CompileError // 词法错误列表
	skipped int                     // 被跳过的无法识别字符数
	warn    bool                    // 是否把跳过的字符记录为 E0002 警告

	logger *zap.Logger
}

// Option Lexer 选项
type Option func(*Lexer)

// WithLogger 设置日志，跳过的字符与词法错误以 debug 级别记录
func WithLogger(logger *zap.Logger) Option {
	return func(l *Lexer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSkipWarnings 把跳过的无法识别字符记录为 E0002 警告
func WithSkipWarnings() Option {
	return func(l *Lexer) {
		l.warn = true
	}
}

// ============================================================================
// 构造函数
// ============================================================================

// New 创建一个新的词法分析器
//
// automaton 通常由 DefaultAutomaton 或 BuildAutomaton 得到，可以被多个 Lexer 共享。
func New(source, filename string, automaton *nfa.Nfa, opts ...Option) *Lexer {
	l := &Lexer{
		source:    source,
		filename:  filename,
		automaton: automaton,
		line:      1,
		column:    1,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewDefault 使用内置 C 规则表创建词法分析器
func NewDefault(source, filename string, opts ...Option) (*Lexer, error) {
	automaton, err := DefaultAutomaton()
	if err != nil {
		return nil, err
	}
	return New(source, filename, automaton, opts...), nil
}

// NewFromReader 读入全部输入后创建词法分析器
func NewFromReader(r io.Reader, filename string, automaton *nfa.Nfa, opts ...Option) (*Lexer, error) {
	var sb strings.Builder
	if _, err := io.Copy(&sb, r); err != nil {
		return nil, err
	}
	return New(sb.String(), filename, automaton, opts...), nil
}

var (
	defaultOnce      sync.Once
	defaultAutomaton *nfa.Nfa
	defaultErr       error
)

// DefaultAutomaton 返回内置 C 规则表的自动机，只构造一次
func DefaultAutomaton() (*nfa.Nfa, error) {
	defaultOnce.Do(func() {
		defaultAutomaton, defaultErr = BuildAutomaton(DefaultRules(), "<builtin>")
	})
	return defaultAutomaton, defaultErr
}

// ============================================================================
// 公共方法
// ============================================================================

// Next 返回下一个 token，输入耗尽后一直返回 EMPTY
func (l *Lexer) Next() token.Token {
	if n := len(l.pending); n > 0 {
		tok := l.pending[n-1]
		l.pending = l.pending[:n-1]
		return tok
	}
	return l.scan()
}

// Peek 查看下一个 token 但不消费
func (l *Lexer) Peek() token.Token {
	tok := l.Next()
	l.Rollback(tok)
	return tok
}

// Rollback 把已经取出的 token 放回，下一次 Next 会再次返回它
func (l *Lexer) Rollback(tok token.Token) {
	l.pending = append(l.pending, tok)
}

// ScanTokens 扫描所有 tokens，结果不含末尾的 EMPTY
func (l *Lexer) ScanTokens() []token.Token {
	var tokens []token.Token
	for {
		tok := l.Next()
		if tok.IsEmpty() {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Errors 返回所有词法错误
func (l *Lexer) Errors() []*cerrors.CompileError {
	return l.errors
}

// HasErrors 检查是否有错误（不含警告）
func (l *Lexer) HasErrors() bool {
	for _, e := range l.errors {
		if e.Level == cerrors.LevelError {
			return true
		}
	}
	return false
}

// Err 把词法错误合并为一个 error，没有错误时返回 nil
func (l *Lexer) Err() error {
	return cerrors.Combine(l.errors)
}

// Skipped 返回被跳过的无法识别字符数
func (l *Lexer) Skipped() int {
	return l.skipped
}

// Filename 源文件名
func (l *Lexer) Filename() string {
	return l.filename
}

// Source 源代码
func (l *Lexer) Source() string {
	return l.source
}

// ============================================================================
// 核心扫描逻辑
// ============================================================================

// scan 从当前位置扫描一个对解析器可见的 token
func (l *Lexer) scan() token.Token {
	for {
		if l.done || l.current >= len(l.source) {
			l.done = true
			return token.New(token.EMPTY, "", l.currentPos())
		}

		m, ok := l.automaton.NextMatch(l.source, l.current)
		if !ok || m.End == l.current {
			l.skipChar()
			continue
		}

		start := l.current
		pos := l.currentPos()
		l.advanceTo(m.End)

		switch m.Kind {
		case token.DELIM:
			continue
		case token.LINE_COMMENT:
			l.lineComment()
			continue
		case token.BLOCK_COMMENT:
			if !l.blockComment(pos) {
				return token.New(token.EMPTY, "", l.currentPos())
			}
			continue
		case token.STRING_LITERAL, token.CHAR_CONST:
			if !l.quoted(m.Kind, l.source[m.End-1], pos) {
				return token.New(token.EMPTY, "", l.currentPos())
			}
		}

		return token.New(m.Kind, l.source[start:l.current], pos)
	}
}

// skipChar 跳过一个无法识别的字符
func (l *Lexer) skipChar() {
	pos := l.currentPos()
	r, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.advanceTo(l.current + size)
	l.skipped++

	l.logger.Debug("skip unmatched character",
		zap.String("char", string(r)),
		zap.Stringer("pos", pos))
	if l.warn {
		l.errors = append(l.errors, cerrors.New(cerrors.E0002, l.filename, pos.Line, pos.Column, r))
	}
}

// lineComment 丢弃到行尾，换行符留给空白规则
func (l *Lexer) lineComment() {
	end := strings.IndexByte(l.source[l.current:], '\n')
	if end < 0 {
		l.advanceTo(len(l.source))
		return
	}
	l.advanceTo(l.current + end)
}

// blockComment 丢弃到 */，没有闭合时报告错误并结束扫描
func (l *Lexer) blockComment(open token.Position) bool {
	end := strings.Index(l.source[l.current:], "*/")
	if end < 0 {
		l.advanceTo(len(l.source))
		l.fail(cerrors.E0004, open, 2)
		return false
	}
	l.advanceTo(l.current + end + 2)
	return true
}

// quoted 扫描字符串或字符常量的剩余部分（起始引号已被消费）
func (l *Lexer) quoted(kind token.Kind, quote byte, open token.Position) bool {
	i := l.current
scan:
	for i < len(l.source) {
		switch l.source[i] {
		case '\\':
			i += 2
			continue
		case '\n':
			break scan
		case quote:
			l.advanceTo(i + 1)
			return true
		}
		i++
	}

	code := cerrors.E0003
	if kind == token.CHAR_CONST {
		code = cerrors.E0008
	}
	l.advanceTo(len(l.source))
	l.fail(code, open, 1)
	return false
}

// fail 记录词法错误并停止产生 token
func (l *Lexer) fail(code string, pos token.Position, span int) {
	e := cerrors.New(code, l.filename, pos.Line, pos.Column).WithSpan(span)
	l.errors = append(l.errors, e)
	l.done = true
	l.logger.Debug("lexical error",
		zap.String("code", code),
		zap.Stringer("pos", pos))
}

// ============================================================================
// 位置
// ============================================================================

// advanceTo 前进到 end，逐字符更新行列号
func (l *Lexer) advanceTo(end int) {
	if end > len(l.source) {
		end = len(l.source)
	}
	for ; l.current < end; l.current++ {
		b := l.source[l.current]
		switch {
		case b == '\n':
			l.line++
			l.column = 1
		case utf8.RuneStart(b):
			l.column++
		}
	}
}

// currentPos 当前扫描位置
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.column,
		Offset:   l.current,
	}
}
