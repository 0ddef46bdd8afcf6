package parser

import (
	"github.com/tangzhangming/ccfront/internal/ast"
	cerrors "github.com/tangzhangming/ccfront/internal/errors"
	"github.com/tangzhangming/ccfront/internal/i18n"
	"github.com/tangzhangming/ccfront/internal/token"
)

// ============================================================================
// 表达式
// ============================================================================
//
// 优先级从低到高：逗号、赋值、条件、||、&&、|、^、&、相等、关系、移位、
// 加减、乘除、类型转换、一元、后缀、初等表达式。
//
// 二元运算由 parseBinaryExpr 统一处理：左操作数之后至多一次右侧应用，
// 右侧在同一层递归，所以 a - b - c 解析为 a - (b - c)。

var assignOps = []token.Kind{
	token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
	token.SLASH_ASSIGN, token.PERCENT_ASSIGN, token.LEFT_SHIFT_ASSIGN,
	token.RIGHT_SHIFT_ASSIGN, token.AND_ASSIGN, token.OR_ASSIGN, token.XOR_ASSIGN,
}

// parseBinaryExpr 解析 next (op self)?
func (p *Parser) parseBinaryExpr(next func() ast.Expr, ops ...token.Kind) ast.Expr {
	left := next()
	tok := p.peek()
	for _, op := range ops {
		if tok.Kind == op {
			p.next()
			right := p.parseBinaryExpr(next, ops...)
			return &ast.BinaryExpr{Tok: tok, Left: left, Right: right}
		}
	}
	return left
}

// ParseExpr 解析逗号表达式
func (p *Parser) ParseExpr() ast.Expr {
	return p.parseBinaryExpr(p.parseAssign, token.COMMA)
}

func (p *Parser) parseAssign() ast.Expr {
	p.exprDepth++
	defer func() { p.exprDepth-- }()
	if p.exprDepth > maxExprDepth {
		p.fail(p.errorAtToken(cerrors.E0001, p.peek()))
	}
	return p.parseBinaryExpr(p.parseConditional, assignOps...)
}

func (p *Parser) parseConditional() ast.Expr {
	cond := p.parseLogicalOr()
	tok := p.peek()
	if tok.Kind != token.QUESTION {
		return cond
	}
	p.next()
	then := p.ParseExpr()
	p.Check(token.COLON)
	els := p.parseConditional()
	return &ast.ConditionalExpr{Tok: tok, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseLogicalOr() ast.Expr {
	return p.parseBinaryExpr(p.parseLogicalAnd, token.OR)
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	return p.parseBinaryExpr(p.parseBitOr, token.AND)
}

func (p *Parser) parseBitOr() ast.Expr {
	return p.parseBinaryExpr(p.parseBitXor, token.BIT_OR)
}

func (p *Parser) parseBitXor() ast.Expr {
	return p.parseBinaryExpr(p.parseBitAnd, token.BIT_XOR)
}

func (p *Parser) parseBitAnd() ast.Expr {
	return p.parseBinaryExpr(p.parseEquality, token.BIT_AND)
}

func (p *Parser) parseEquality() ast.Expr {
	return p.parseBinaryExpr(p.parseRelational, token.EQ, token.NE)
}

func (p *Parser) parseRelational() ast.Expr {
	return p.parseBinaryExpr(p.parseShift, token.LT, token.LE, token.GT, token.GE)
}

func (p *Parser) parseShift() ast.Expr {
	return p.parseBinaryExpr(p.parseAdditive, token.LEFT_SHIFT, token.RIGHT_SHIFT)
}

func (p *Parser) parseAdditive() ast.Expr {
	return p.parseBinaryExpr(p.parseMultiplicative, token.PLUS, token.MINUS)
}

func (p *Parser) parseMultiplicative() ast.Expr {
	return p.parseBinaryExpr(p.parseCast, token.STAR, token.SLASH, token.PERCENT)
}

// parseCast 解析 (type-name) cast-expr，括号后不是类型名时按一元表达式解析
func (p *Parser) parseCast() ast.Expr {
	if p.peekIs(token.LPAREN) && IsDeclSpec(p.peek2().Kind) {
		lp := p.next()
		typ := p.ParseTypeName()
		p.Check(token.RPAREN)
		return &ast.CastExpr{Tok: lp, To: typ, Operand: p.parseCast()}
	}
	return p.parseUnary()
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.INCREMENT, token.DECREMENT:
		p.next()
		return &ast.UnaryExpr{Tok: tok, Operand: p.parseUnary()}
	case token.BIT_AND, token.STAR, token.PLUS, token.MINUS, token.BIT_NOT, token.NOT:
		p.next()
		return &ast.UnaryExpr{Tok: tok, Operand: p.parseCast()}
	case token.SIZEOF:
		p.next()
		if p.peekIs(token.LPAREN) && IsDeclSpec(p.peek2().Kind) {
			p.next()
			typ := p.ParseTypeName()
			p.Check(token.RPAREN)
			return &ast.SizeofTypeExpr{Tok: tok, Of: typ}
		}
		return &ast.UnaryExpr{Tok: tok, Operand: p.parseUnary()}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.LBRACKET:
			p.next()
			index := p.ParseExpr()
			p.Check(token.RBRACKET)
			e = &ast.ArraySubscriptExpr{Tok: tok, Array: e, Index: index}
		case token.LPAREN:
			p.next()
			args := parseListOf(p, p.parseAssign, token.RPAREN, token.COMMA, false)
			e = &ast.FuncCallExpr{Tok: tok, Func: e, Args: args}
		case token.DOT, token.ARROW:
			p.next()
			e = &ast.MemberExpr{Tok: tok, Base: e, Member: p.expectIdent().Lexeme}
		case token.INCREMENT, token.DECREMENT:
			p.next()
			e = &ast.UnaryExpr{Tok: tok, Operand: e, Postfix: true}
		default:
			return e
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.next()
	switch tok.Kind {
	case token.IDENT:
		return p.resolveIdent(tok)
	case token.INT_CONST:
		v, ok := parseIntLiteral(tok.Lexeme)
		if !ok {
			p.fail(p.errorAtToken(cerrors.E0005, tok, tok.Lexeme))
		}
		return ast.NewIntConstant(tok, v)
	case token.FLOAT_CONST:
		v, ok := parseFloatLiteral(tok.Lexeme)
		if !ok {
			p.fail(p.errorAtToken(cerrors.E0005, tok, tok.Lexeme))
		}
		return &ast.Constant{Tok: tok, Kind: ast.ConstFloat, Float: v}
	case token.CHAR_CONST:
		v, ok := parseCharLiteral(tok.Lexeme)
		if !ok {
			p.fail(p.errorAtToken(cerrors.E0005, tok, tok.Lexeme))
		}
		return &ast.Constant{Tok: tok, Kind: ast.ConstChar, Int: v}
	case token.STRING_LITERAL:
		return p.parseStringLiteral(tok)
	case token.LPAREN:
		e := p.ParseExpr()
		p.Check(token.RPAREN)
		return e
	}
	p.unexpected(cerrors.E0009, tok)
	return nil
}

// resolveIdent 把标识符解析为最近作用域中的对象、函数或枚举常量
func (p *Parser) resolveIdent(tok token.Token) ast.Expr {
	d, e := p.scope.Resolve(tok.Lexeme)
	switch x := d.(type) {
	case *ast.ObjectDecl:
		return &ast.ObjectExpr{Tok: tok, Obj: x.Obj}
	case *ast.FuncDecl:
		return &ast.FuncRefExpr{Tok: tok, Func: x.Func}
	}
	if e == nil {
		return p.unresolved(tok)
	}
	return &ast.EnumConstExpr{Tok: tok, Name: e.Name, Value: e.Value}
}

// unresolved 未声明的标识符
//
// 被调用时隐式声明为外部链接、返回 int 的函数，同名调用共用一个 Function；
// 其它位置得到一个没有声明的 int 对象。两种情况都不加入作用域。
func (p *Parser) unresolved(tok token.Token) ast.Expr {
	name := tok.Lexeme
	if p.peekIs(token.LPAREN) {
		f, ok := p.implicit[name]
		if !ok {
			typ := &ast.FuncType{Derived: &ast.QualType{Specifier: ast.SpecInt}}
			f = ast.NewFunction(name, typ, ast.LinkageExternal, nil, tok.Pos)
			p.implicit[name] = f
			p.undeclared(tok, i18n.T(i18n.NoteImplicitFunc, name, name))
		}
		return &ast.FuncRefExpr{Tok: tok, Func: f}
	}
	p.undeclared(tok, i18n.T(i18n.NoteImplicitObject, name))
	obj := ast.NewObject(name, &ast.QualType{Specifier: ast.SpecInt}, ast.LinkageNone, 0, tok.Pos)
	return &ast.ObjectExpr{Tok: tok, Obj: obj}
}

// parseStringLiteral 相邻的字符串字面量拼接为一个常量
func (p *Parser) parseStringLiteral(first token.Token) ast.Expr {
	var sb []byte
	for tok := first; ; tok = p.next() {
		s, ok := parseStringBody(tok.Lexeme)
		if !ok {
			p.fail(p.errorAtToken(cerrors.E0005, tok, tok.Lexeme))
		}
		sb = append(sb, s...)
		if !p.peekIs(token.STRING_LITERAL) {
			break
		}
	}
	return &ast.Constant{Tok: first, Kind: ast.ConstString, Str: string(sb)}
}
