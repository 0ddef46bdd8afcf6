package ast

import (
	"math"

	"github.com/tangzhangming/ccfront/internal/token"
)

// ============================================================================
// 表达式
// ============================================================================
//
// 每个表达式都记录产生它的运算符 token（常量和标识符记录自身的 token）。
// 比较时只看 token 的种类，不看位置和原文。

// Expr 表达式
type Expr interface {
	exprNode()
	Token() token.Token
}

// UnaryExpr 一元运算，Postfix 区分 i++ 与 ++i
type UnaryExpr struct {
	Tok     token.Token
	Operand Expr
	Postfix bool
}

// BinaryExpr 二元运算，包括赋值与逗号
type BinaryExpr struct {
	Tok   token.Token
	Left  Expr
	Right Expr
}

// ConditionalExpr 三目运算
type ConditionalExpr struct {
	Tok  token.Token // ?
	Cond Expr
	Then Expr
	Else Expr
}

// ArraySubscriptExpr a[i]
type ArraySubscriptExpr struct {
	Tok   token.Token // [
	Array Expr
	Index Expr
}

// FuncCallExpr f(args)
type FuncCallExpr struct {
	Tok  token.Token // (
	Func Expr
	Args []Expr
}

// MemberExpr a.b 与 a->b
type MemberExpr struct {
	Tok    token.Token // . 或 ->
	Base   Expr
	Member string
}

// CastExpr (type) expr
type CastExpr struct {
	Tok     token.Token // (
	To      Type
	Operand Expr
}

// SizeofTypeExpr sizeof(type)
type SizeofTypeExpr struct {
	Tok token.Token
	Of  Type
}

// ConstKind 常量种类
type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstChar
	ConstString
)

func (k ConstKind) String() string {
	switch k {
	case ConstInt:
		return "int"
	case ConstFloat:
		return "float"
	case ConstChar:
		return "char"
	default:
		return "string"
	}
}

// Constant 字面量
//
// 整数与字符常量的值在 Int，浮点常量在 Float，字符串常量在 Str（已拼接、已转义）。
type Constant struct {
	Tok   token.Token
	Kind  ConstKind
	Int   int64
	Float float64
	Str   string
}

// NewIntConstant 整数常量
func NewIntConstant(tok token.Token, v int64) *Constant {
	return &Constant{Tok: tok, Kind: ConstInt, Int: v}
}

// ObjectExpr 作为操作数的对象
type ObjectExpr struct {
	Tok token.Token
	Obj *Object
}

// FuncRefExpr 作为操作数的函数名
type FuncRefExpr struct {
	Tok  token.Token
	Func *Function
}

// EnumConstExpr 枚举常量
type EnumConstExpr struct {
	Tok   token.Token
	Name  string
	Value int64
}

func (*UnaryExpr) exprNode()          {}
func (*BinaryExpr) exprNode()         {}
func (*ConditionalExpr) exprNode()    {}
func (*ArraySubscriptExpr) exprNode() {}
func (*FuncCallExpr) exprNode()       {}
func (*MemberExpr) exprNode()         {}
func (*CastExpr) exprNode()           {}
func (*SizeofTypeExpr) exprNode()     {}
func (*Constant) exprNode()           {}
func (*ObjectExpr) exprNode()         {}
func (*FuncRefExpr) exprNode()        {}
func (*EnumConstExpr) exprNode()      {}

func (e *UnaryExpr) Token() token.Token          { return e.Tok }
func (e *BinaryExpr) Token() token.Token         { return e.Tok }
func (e *ConditionalExpr) Token() token.Token    { return e.Tok }
func (e *ArraySubscriptExpr) Token() token.Token { return e.Tok }
func (e *FuncCallExpr) Token() token.Token       { return e.Tok }
func (e *MemberExpr) Token() token.Token         { return e.Tok }
func (e *CastExpr) Token() token.Token           { return e.Tok }
func (e *SizeofTypeExpr) Token() token.Token     { return e.Tok }
func (e *Constant) Token() token.Token           { return e.Tok }
func (e *ObjectExpr) Token() token.Token         { return e.Tok }
func (e *FuncRefExpr) Token() token.Token        { return e.Tok }
func (e *EnumConstExpr) Token() token.Token      { return e.Tok }

// EqualExpr 结构相等
func EqualExpr(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Token().Kind != b.Token().Kind {
		return false
	}
	switch x := a.(type) {
	case *UnaryExpr:
		y, ok := b.(*UnaryExpr)
		return ok && x.Postfix == y.Postfix && EqualExpr(x.Operand, y.Operand)
	case *BinaryExpr:
		y, ok := b.(*BinaryExpr)
		return ok && EqualExpr(x.Left, y.Left) && EqualExpr(x.Right, y.Right)
	case *ConditionalExpr:
		y, ok := b.(*ConditionalExpr)
		return ok && EqualExpr(x.Cond, y.Cond) && EqualExpr(x.Then, y.Then) && EqualExpr(x.Else, y.Else)
	case *ArraySubscriptExpr:
		y, ok := b.(*ArraySubscriptExpr)
		return ok && EqualExpr(x.Array, y.Array) && EqualExpr(x.Index, y.Index)
	case *FuncCallExpr:
		y, ok := b.(*FuncCallExpr)
		if !ok || len(x.Args) != len(y.Args) || !EqualExpr(x.Func, y.Func) {
			return false
		}
		for i := range x.Args {
			if !EqualExpr(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *MemberExpr:
		y, ok := b.(*MemberExpr)
		return ok && x.Member == y.Member && EqualExpr(x.Base, y.Base)
	case *CastExpr:
		y, ok := b.(*CastExpr)
		return ok && EqualType(x.To, y.To) && EqualExpr(x.Operand, y.Operand)
	case *SizeofTypeExpr:
		y, ok := b.(*SizeofTypeExpr)
		return ok && EqualType(x.Of, y.Of)
	case *Constant:
		y, ok := b.(*Constant)
		if !ok || x.Kind != y.Kind {
			return false
		}
		switch x.Kind {
		case ConstFloat:
			return x.Float == y.Float || math.IsNaN(x.Float) && math.IsNaN(y.Float)
		case ConstString:
			return x.Str == y.Str
		default:
			return x.Int == y.Int
		}
	case *ObjectExpr:
		y, ok := b.(*ObjectExpr)
		return ok && x.Obj.Equal(y.Obj)
	case *FuncRefExpr:
		y, ok := b.(*FuncRefExpr)
		return ok && x.Func.Identifier.Equal(&y.Func.Identifier)
	case *EnumConstExpr:
		y, ok := b.(*EnumConstExpr)
		return ok && x.Name == y.Name && x.Value == y.Value
	}
	return false
}
