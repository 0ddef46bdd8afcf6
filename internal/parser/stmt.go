package parser

import (
	"github.com/tangzhangming/ccfront/internal/ast"
	cerrors "github.com/tangzhangming/ccfront/internal/errors"
	"github.com/tangzhangming/ccfront/internal/token"
)

// ============================================================================
// 语句
// ============================================================================

// ParseStmt 解析一条语句或块内声明
//
// 一个声明可以产生多个 ObjectDecl，因此返回语句列表。
func (p *Parser) ParseStmt() []ast.Stmt {
	tok := p.peek()
	switch tok.Kind {
	case token.LBRACE:
		return []ast.Stmt{p.ParseCompoundStmt()}
	case token.IF:
		return []ast.Stmt{p.parseIfStmt()}
	case token.SWITCH:
		return []ast.Stmt{p.parseSwitchStmt()}
	case token.WHILE:
		return []ast.Stmt{p.parseWhileStmt()}
	case token.DO:
		return []ast.Stmt{p.parseDoWhileStmt()}
	case token.FOR:
		return []ast.Stmt{p.parseForStmt()}
	case token.GOTO, token.CONTINUE, token.BREAK:
		return []ast.Stmt{p.parseJumpStmt()}
	case token.RETURN:
		return []ast.Stmt{p.parseReturnStmt()}
	case token.CASE, token.DEFAULT:
		return p.parseSwitchLabel()
	case token.SEMICOLON:
		p.next()
		return []ast.Stmt{&ast.ExprStmt{Pos: tok.Pos}}
	case token.IDENT:
		if p.peek2().Kind == token.COLON {
			return p.parseLabel()
		}
	case token.EMPTY:
		p.unexpected(cerrors.E0012, tok)
	}

	if IsDeclSpec(tok.Kind) {
		return p.parseDecl()
	}
	e := p.ParseExpr()
	p.Check(token.SEMICOLON)
	return []ast.Stmt{&ast.ExprStmt{Expr: e, Pos: tok.Pos}}
}

// ParseCompoundStmt 解析 { ... }，为其建立块作用域
func (p *Parser) ParseCompoundStmt() *ast.CompoundStmt {
	lb := p.Check(token.LBRACE)
	c := ast.NewCompoundStmt(ast.ScopeBlock, p.scope, lb.Pos)
	prev := p.enterScope(c.Scope)
	p.parseBlockItems(c)
	p.exitScope(prev)
	return c
}

// parseBlockItems 解析到右花括号为止，语句加入 c，左花括号已被消费
func (p *Parser) parseBlockItems(c *ast.CompoundStmt) {
	for !p.test(token.RBRACE) {
		c.Append(p.ParseStmt()...)
	}
}

// parseBody 在 c 的作用域中解析控制语句的语句体
//
// 带花括号的语句体直接展开到 c 中，不再嵌套一层复合语句。
func (p *Parser) parseBody(c *ast.CompoundStmt) {
	prev := p.enterScope(c.Scope)
	defer p.exitScope(prev)
	p.parseBodyHere(c)
}

// parseBodyHere 在当前作用域中解析语句体
func (p *Parser) parseBodyHere(c *ast.CompoundStmt) {
	if p.test(token.LBRACE) {
		p.parseBlockItems(c)
		return
	}
	c.Append(p.ParseStmt()...)
}

// parseParenExpr 解析 ( expr )
func (p *Parser) parseParenExpr() ast.Expr {
	p.Check(token.LPAREN)
	e := p.ParseExpr()
	p.Check(token.RPAREN)
	return e
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	tok := p.next()
	stmt := &ast.IfStmt{CompoundStmt: *ast.NewCompoundStmt(ast.ScopeBlock, p.scope, tok.Pos)}
	stmt.Cond = p.parseParenExpr()
	p.parseBody(&stmt.CompoundStmt)

	if elseTok := p.peek(); elseTok.Kind == token.ELSE {
		p.next()
		stmt.Else = ast.NewCompoundStmt(ast.ScopeBlock, p.scope, elseTok.Pos)
		p.parseBody(stmt.Else)
	}
	return stmt
}

func (p *Parser) parseSwitchStmt() *ast.SwitchStmt {
	tok := p.next()
	stmt := &ast.SwitchStmt{CompoundStmt: *ast.NewCompoundStmt(ast.ScopeBlock, p.scope, tok.Pos)}
	stmt.Cond = p.parseParenExpr()
	p.parseBody(&stmt.CompoundStmt)
	return stmt
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	tok := p.next()
	stmt := &ast.WhileStmt{CompoundStmt: *ast.NewCompoundStmt(ast.ScopeBlock, p.scope, tok.Pos)}
	stmt.Cond = p.parseParenExpr()
	p.parseBody(&stmt.CompoundStmt)
	return stmt
}

func (p *Parser) parseDoWhileStmt() *ast.WhileStmt {
	tok := p.next()
	stmt := &ast.WhileStmt{CompoundStmt: *ast.NewCompoundStmt(ast.ScopeBlock, p.scope, tok.Pos), DoWhile: true}
	p.parseBody(&stmt.CompoundStmt)
	p.Check(token.WHILE)
	stmt.Cond = p.parseParenExpr()
	p.Check(token.SEMICOLON)
	return stmt
}

// parseForStmt 解析 for 语句
//
// 初始化子句中的声明属于 for 自己的作用域，语句体也在这个作用域中。
func (p *Parser) parseForStmt() *ast.ForStmt {
	tok := p.next()
	stmt := &ast.ForStmt{CompoundStmt: *ast.NewCompoundStmt(ast.ScopeBlock, p.scope, tok.Pos)}
	prev := p.enterScope(stmt.Scope)
	defer p.exitScope(prev)

	p.Check(token.LPAREN)
	switch init := p.peek(); {
	case IsDeclSpec(init.Kind):
		stmt.Init = p.parseDecl()
	case init.Kind == token.SEMICOLON:
		p.next()
	default:
		e := p.ParseExpr()
		p.Check(token.SEMICOLON)
		stmt.Init = []ast.Stmt{&ast.ExprStmt{Expr: e, Pos: init.Pos}}
	}

	if !p.test(token.SEMICOLON) {
		stmt.Cond = p.ParseExpr()
		p.Check(token.SEMICOLON)
	}
	if !p.peekIs(token.RPAREN) {
		stmt.After = p.ParseExpr()
	}
	p.Check(token.RPAREN)

	p.parseBodyHere(&stmt.CompoundStmt)
	return stmt
}

func (p *Parser) parseJumpStmt() *ast.JumpStmt {
	tok := p.next()
	stmt := &ast.JumpStmt{Tok: tok}
	if tok.Kind == token.GOTO {
		stmt.Label = p.expectIdent().Lexeme
	}
	p.Check(token.SEMICOLON)
	return stmt
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	tok := p.next()
	stmt := &ast.ReturnStmt{Tok: tok}
	if !p.test(token.SEMICOLON) {
		stmt.Value = p.ParseExpr()
		p.Check(token.SEMICOLON)
	}
	return stmt
}

// parseLabel 解析 name: stmt
func (p *Parser) parseLabel() []ast.Stmt {
	name := p.next()
	p.Check(token.COLON)
	label := &ast.LabelStmt{Kind: ast.LabelCommon, Name: name.Lexeme, Pos: name.Pos}
	return p.attachLabel(label)
}

// parseSwitchLabel 解析 case expr: stmt 与 default: stmt
func (p *Parser) parseSwitchLabel() []ast.Stmt {
	tok := p.next()
	label := &ast.LabelStmt{Kind: ast.LabelDefault, Pos: tok.Pos}
	if tok.Kind == token.CASE {
		label.Kind = ast.LabelCase
		start := p.peek()
		label.Expr = p.parseConditional()
		v, ok := ast.ToInt(label.Expr)
		if !ok {
			p.fail(p.errorAtToken(cerrors.E0602, start))
		}
		label.Value = v
	}
	p.Check(token.COLON)
	return p.attachLabel(label)
}

// attachLabel 标签标记其后的第一条语句，其余语句跟在标签之后
func (p *Parser) attachLabel(label *ast.LabelStmt) []ast.Stmt {
	stmts := p.ParseStmt()
	if len(stmts) == 0 {
		return []ast.Stmt{label}
	}
	label.Stmt = stmts[0]
	return append([]ast.Stmt{label}, stmts[1:]...)
}
