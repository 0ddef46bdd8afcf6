package parser

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tangzhangming/ccfront/internal/ast"
	cerrors "github.com/tangzhangming/ccfront/internal/errors"
	"github.com/tangzhangming/ccfront/internal/i18n"
	"github.com/tangzhangming/ccfront/internal/lexer"
	"github.com/tangzhangming/ccfront/internal/token"
)

// ============================================================================
// Parser - 语法分析器
// ============================================================================
//
// 递归下降解析，边解析边建立作用域与类型。任何语法或声明错误都是致命的：
// 内部通过 panic(bailout) 立即返回到 Parse，由 Parse 转为普通的 error。
// 不做错误恢复。未声明的标识符只记录警告，见 Warnings。

// Parser 语法分析器
type Parser struct {
	lex      *lexer.Lexer
	filename string

	tu    *ast.TranslationUnit
	scope *ast.Scope // 当前作用域

	storage ast.StorageSpec // 当前声明中累积的存储类说明符
	tags    []ast.Decl      // 当前说明符中新加入作用域的标签声明

	implicit map[string]*ast.Function // 调用处隐式声明的函数
	warnings []*cerrors.CompileError

	exprDepth int
	logger    *zap.Logger
}

// maxExprDepth 最大表达式嵌套深度，防止栈溢出
const maxExprDepth = 200

// bailout 致命错误，只在包内传播
type bailout struct {
	err *cerrors.CompileError
}

// Option Parser 选项
type Option func(*Parser)

// WithLogger 设置日志
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New 在词法分析器之上创建语法分析器
func New(lex *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		lex:      lex,
		filename: lex.Filename(),
		implicit: make(map[string]*ast.Function),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewFromSource 使用内置 C 规则表创建语法分析器
func NewFromSource(source, filename string, opts ...Option) (*Parser, error) {
	lex, err := lexer.NewDefault(source, filename)
	if err != nil {
		return nil, err
	}
	return New(lex, opts...), nil
}

// ParseSource 解析一段源代码
func ParseSource(source, filename string, opts ...Option) (*ast.TranslationUnit, error) {
	p, err := NewFromSource(source, filename, opts...)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// Parse 解析整个翻译单元
//
// 出错时返回 nil 与错误。词法错误优先于它引起的语法错误。
func (p *Parser) Parse() (tu *ast.TranslationUnit, err error) {
	p.tu = ast.NewTranslationUnit(p.filename)
	p.scope = p.tu.Scope
	p.implicit = make(map[string]*ast.Function)
	p.warnings = nil

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			tu = nil
			if p.lex.HasErrors() {
				err = p.lex.Err()
				return
			}
			err = b.err
		}
	}()

	for !p.peek().IsEmpty() {
		p.parseExternalDecl()
	}
	if p.lex.HasErrors() {
		return nil, p.lex.Err()
	}
	return p.tu, nil
}

// Scope 当前作用域
func (p *Parser) Scope() *ast.Scope {
	return p.scope
}

// Warnings 最近一次 Parse 记录的警告，按出现顺序
func (p *Parser) Warnings() []*cerrors.CompileError {
	return p.warnings
}

// ============================================================================
// Token 辅助方法
// ============================================================================

func (p *Parser) next() token.Token {
	return p.lex.Next()
}

func (p *Parser) peek() token.Token {
	return p.lex.Peek()
}

func (p *Parser) rollback(tok token.Token) {
	p.lex.Rollback(tok)
}

// peekIs 下一个 token 是否为 kind
func (p *Parser) peekIs(kind token.Kind) bool {
	return p.peek().Kind == kind
}

// test 下一个 token 是 kind 时消费它
func (p *Parser) test(kind token.Kind) bool {
	if p.peekIs(kind) {
		p.next()
		return true
	}
	return false
}

// peek2 查看下一个 token 之后的 token
func (p *Parser) peek2() token.Token {
	first := p.next()
	second := p.peek()
	p.rollback(first)
	return second
}

// Check 消费一个 kind 类型的 token，否则报告错误
func (p *Parser) Check(kind token.Kind) token.Token {
	tok := p.next()
	if tok.Kind != kind {
		p.expected(kind.Spelling(), tok)
	}
	return tok
}

// expectIdent 消费一个标识符
func (p *Parser) expectIdent() token.Token {
	tok := p.next()
	if tok.Kind != token.IDENT {
		p.unexpected(cerrors.E0011, tok)
	}
	return tok
}

// ============================================================================
// 作用域
// ============================================================================

func (p *Parser) enterScope(s *ast.Scope) *ast.Scope {
	prev := p.scope
	p.scope = s
	return prev
}

func (p *Parser) exitScope(prev *ast.Scope) {
	p.scope = prev
}

// addIdent 加入当前作用域，重复声明时报告 E0101
func (p *Parser) addIdent(d ast.Decl, at token.Position) {
	if err := p.scope.AddIdent(d); err != nil {
		p.redeclared(err, at)
	}
}

// ============================================================================
// 错误
// ============================================================================

// fail 报告致命错误
func (p *Parser) fail(err *cerrors.CompileError) {
	p.logger.Debug("parse error",
		zap.String("code", err.Code),
		zap.String("file", err.File),
		zap.Int("line", err.Line),
		zap.Int("column", err.Column),
		zap.String("message", err.Message))
	panic(bailout{err: err})
}

// errorAt 在 pos 处创建诊断
func (p *Parser) errorAt(code string, pos token.Position, args ...interface{}) *cerrors.CompileError {
	return cerrors.New(code, p.filename, pos.Line, pos.Column, args...)
}

// errorAtToken 在 tok 处创建诊断，标注整个 token
func (p *Parser) errorAtToken(code string, tok token.Token, args ...interface{}) *cerrors.CompileError {
	err := p.errorAt(code, tok.Pos, args...)
	if n := len(tok.Lexeme); n > 0 {
		err.WithSpan(n)
	}
	return err
}

// unexpected 在 tok 处报告 code，输入结束时改为 E0012
func (p *Parser) unexpected(code string, tok token.Token) {
	if tok.IsEmpty() {
		p.fail(p.errorAt(cerrors.E0012, tok.Pos))
	}
	p.fail(p.errorAtToken(code, tok, tok.Lexeme))
}

func (p *Parser) expected(want string, tok token.Token) {
	if tok.IsEmpty() {
		p.fail(p.errorAt(cerrors.E0012, tok.Pos))
	}
	err := p.errorAtToken(cerrors.E0006, tok, want, tok.Lexeme)
	err.WithHint(cerrors.GetSuggestions(cerrors.E0006, map[string]interface{}{"expected": want})...)
	p.fail(err)
}

// semantic 带建议的声明错误
func (p *Parser) semantic(code string, pos token.Position, name string, args ...interface{}) *cerrors.CompileError {
	err := p.errorAt(code, pos, args...)
	if name != "" {
		err.WithSpan(len(name))
	}
	err.WithHint(cerrors.GetSuggestions(code, map[string]interface{}{"name": name})...)
	return err
}

// redeclared 把作用域返回的错误转为 E0101，并标注之前的声明
func (p *Parser) redeclared(err error, at token.Position) {
	var name string
	var prev ast.Decl
	if r, ok := err.(*ast.RedeclarationError); ok {
		name, prev = r.Name, r.Previous
	}
	ce := p.semantic(cerrors.E0101, at, name, name)
	p.labelPrevious(ce, prev)
	p.fail(ce)
}

func (p *Parser) labelPrevious(ce *cerrors.CompileError, prev ast.Decl) {
	if prev == nil {
		return
	}
	if pos := prev.Position(); pos.IsValid() {
		ce.WithLabel(cerrors.Label{
			Line:    pos.Line,
			Column:  pos.Column,
			Length:  len(ast.DeclName(prev)),
			Message: i18n.T("label.previous_declaration"),
		})
	}
}

// undeclared 记录未声明标识符的警告，附带拼写相近的候选
func (p *Parser) undeclared(tok token.Token, note string) {
	similar := cerrors.FindSimilar(tok.Lexeme, p.scope.Names(), 2)
	err := p.errorAtToken(cerrors.E0100, tok, tok.Lexeme)
	err.WithHint(cerrors.GetSuggestions(cerrors.E0100, map[string]interface{}{
		"name":    tok.Lexeme,
		"similar": similar,
	})...)
	err.WithNote(note)
	p.warnings = append(p.warnings, err)
	p.debugf("undeclared identifier",
		zap.String("name", tok.Lexeme),
		zap.Int("line", tok.Pos.Line),
		zap.Int("column", tok.Pos.Column))
}

func (p *Parser) debugf(msg string, fields ...zap.Field) {
	if ce := p.logger.Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(fields...)
	}
}

// describe 用于日志的 token 描述
func describe(tok token.Token) string {
	if tok.IsEmpty() {
		return "<eof>"
	}
	return fmt.Sprintf("%s %q", tok.Kind, tok.Lexeme)
}
