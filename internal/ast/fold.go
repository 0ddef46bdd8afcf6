package ast

import (
	"github.com/tangzhangming/ccfront/internal/token"
)

// ============================================================================
// 整数常量折叠
// ============================================================================
//
// 只用于数组长度、case 标签、枚举值和数组指示符。sizeof 与对象不被折叠。

// IsIntConstant 表达式能否折叠为整数常量
func IsIntConstant(e Expr) bool {
	_, ok := fold(e)
	return ok
}

// ToInt 折叠整数常量，不是常量时返回 0 与 false
func ToInt(e Expr) (int64, bool) {
	return fold(e)
}

func fold(e Expr) (int64, bool) {
	switch x := e.(type) {
	case *Constant:
		if x.Kind == ConstInt || x.Kind == ConstChar {
			return x.Int, true
		}
	case *EnumConstExpr:
		return x.Value, true
	case *CastExpr:
		if qt, ok := x.To.(*QualType); ok && qt.Specifier.IsInteger() {
			return fold(x.Operand)
		}
	case *UnaryExpr:
		if x.Postfix {
			return 0, false
		}
		v, ok := fold(x.Operand)
		if !ok {
			return 0, false
		}
		switch x.Tok.Kind {
		case token.PLUS:
			return v, true
		case token.MINUS:
			return -v, true
		case token.BIT_NOT:
			return ^v, true
		case token.NOT:
			return boolInt(v == 0), true
		}
	case *BinaryExpr:
		return foldBinary(x)
	case *ConditionalExpr:
		c, ok := fold(x.Cond)
		if !ok {
			return 0, false
		}
		if c != 0 {
			return fold(x.Then)
		}
		return fold(x.Else)
	}
	return 0, false
}

func foldBinary(x *BinaryExpr) (int64, bool) {
	l, ok := fold(x.Left)
	if !ok {
		return 0, false
	}
	// && 与 || 短路
	switch x.Tok.Kind {
	case token.AND:
		if l == 0 {
			return 0, true
		}
	case token.OR:
		if l != 0 {
			return 1, true
		}
	}
	r, ok := fold(x.Right)
	if !ok {
		return 0, false
	}

	switch x.Tok.Kind {
	case token.PLUS:
		return l + r, true
	case token.MINUS:
		return l - r, true
	case token.STAR:
		return l * r, true
	case token.SLASH:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case token.PERCENT:
		if r == 0 {
			return 0, false
		}
		return l % r, true
	case token.LEFT_SHIFT:
		if r < 0 || r >= 64 {
			return 0, false
		}
		return l << uint(r), true
	case token.RIGHT_SHIFT:
		if r < 0 || r >= 64 {
			return 0, false
		}
		return l >> uint(r), true
	case token.BIT_AND:
		return l & r, true
	case token.BIT_OR:
		return l | r, true
	case token.BIT_XOR:
		return l ^ r, true
	case token.EQ:
		return boolInt(l == r), true
	case token.NE:
		return boolInt(l != r), true
	case token.LT:
		return boolInt(l < r), true
	case token.LE:
		return boolInt(l <= r), true
	case token.GT:
		return boolInt(l > r), true
	case token.GE:
		return boolInt(l >= r), true
	case token.AND, token.OR:
		return boolInt(r != 0), true
	case token.COMMA:
		return r, true
	}
	return 0, false
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
