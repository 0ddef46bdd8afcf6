package ast

import (
	"github.com/tangzhangming/ccfront/internal/token"
)

// ============================================================================
// 语句
// ============================================================================

// Stmt 语句
//
// OwnedScope 返回语句拥有的作用域，不引入作用域的语句返回 nil。
type Stmt interface {
	stmtNode()
	OwnedScope() *Scope
	Position() token.Position
}

// ExprStmt 表达式语句，空语句的 Expr 为 nil
type ExprStmt struct {
	Expr Expr
	Pos  token.Position
}

// CompoundStmt 复合语句，拥有一个作用域
type CompoundStmt struct {
	Scope *Scope
	Stmts []Stmt
	Func  *Function // 作为函数体时指向该函数，不持有
	Pos   token.Position
}

// NewCompoundStmt 创建复合语句及其作用域
func NewCompoundStmt(kind ScopeKind, parent *Scope, pos token.Position) *CompoundStmt {
	return &CompoundStmt{Scope: NewScope(kind, parent), Pos: pos}
}

// IfStmt if 语句，then 分支保存在内嵌的 CompoundStmt 中
type IfStmt struct {
	CompoundStmt
	Cond Expr
	Else *CompoundStmt // 没有 else 时为 nil
}

// SwitchStmt switch 语句
type SwitchStmt struct {
	CompoundStmt
	Cond Expr
}

// WhileStmt while 与 do-while 语句
type WhileStmt struct {
	CompoundStmt
	Cond    Expr
	DoWhile bool
}

// ForStmt for 语句，Init 中的声明属于 for 自己的作用域
type ForStmt struct {
	CompoundStmt
	Init  []Stmt
	Cond  Expr // 可以为 nil
	After Expr // 可以为 nil
}

// LabelKind 标签种类
type LabelKind int

const (
	LabelCommon LabelKind = iota
	LabelCase
	LabelDefault
)

func (k LabelKind) String() string {
	switch k {
	case LabelCommon:
		return "label"
	case LabelCase:
		return "case"
	default:
		return "default"
	}
}

// LabelStmt 标签语句，Stmt 是被标记的语句
type LabelStmt struct {
	Kind  LabelKind
	Name  string // 普通标签
	Expr  Expr   // case 表达式
	Value int64  // case 的常量值
	Stmt  Stmt
	Pos   token.Position
}

// JumpStmt goto continue break
type JumpStmt struct {
	Tok   token.Token
	Label string // goto 的目标
}

// ReturnStmt return 语句，Value 可以为 nil
type ReturnStmt struct {
	Tok   token.Token
	Value Expr
}

func (*ExprStmt) stmtNode()     {}
func (*CompoundStmt) stmtNode() {}
func (*IfStmt) stmtNode()       {}
func (*SwitchStmt) stmtNode()   {}
func (*WhileStmt) stmtNode()    {}
func (*ForStmt) stmtNode()      {}
func (*LabelStmt) stmtNode()    {}
func (*JumpStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode()   {}

func (*ExprStmt) OwnedScope() *Scope       { return nil }
func (s *CompoundStmt) OwnedScope() *Scope { return s.Scope }
func (*LabelStmt) OwnedScope() *Scope      { return nil }
func (*JumpStmt) OwnedScope() *Scope       { return nil }
func (*ReturnStmt) OwnedScope() *Scope     { return nil }

func (s *ExprStmt) Position() token.Position     { return s.Pos }
func (s *CompoundStmt) Position() token.Position { return s.Pos }
func (s *LabelStmt) Position() token.Position    { return s.Pos }
func (s *JumpStmt) Position() token.Position     { return s.Tok.Pos }
func (s *ReturnStmt) Position() token.Position   { return s.Tok.Pos }

// Append 追加语句
func (s *CompoundStmt) Append(stmts ...Stmt) {
	s.Stmts = append(s.Stmts, stmts...)
}

// Equal 比较作用域与语句列表
func (s *CompoundStmt) Equal(other *CompoundStmt) bool {
	if s == nil || other == nil {
		return s == nil && other == nil
	}
	return s.Scope.Equal(other.Scope) && equalStmts(s.Stmts, other.Stmts)
}

func equalStmts(a, b []Stmt) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualStmt(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualStmt 结构相等
func EqualStmt(a, b Stmt) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case Decl:
		y, ok := b.(Decl)
		return ok && EqualDecl(x, y)
	case *ExprStmt:
		y, ok := b.(*ExprStmt)
		return ok && EqualExpr(x.Expr, y.Expr)
	case *CompoundStmt:
		y, ok := b.(*CompoundStmt)
		return ok && x.Equal(y)
	case *IfStmt:
		y, ok := b.(*IfStmt)
		return ok && x.CompoundStmt.Equal(&y.CompoundStmt) && EqualExpr(x.Cond, y.Cond) && x.Else.Equal(y.Else)
	case *SwitchStmt:
		y, ok := b.(*SwitchStmt)
		return ok && x.CompoundStmt.Equal(&y.CompoundStmt) && EqualExpr(x.Cond, y.Cond)
	case *WhileStmt:
		y, ok := b.(*WhileStmt)
		return ok && x.DoWhile == y.DoWhile && x.CompoundStmt.Equal(&y.CompoundStmt) && EqualExpr(x.Cond, y.Cond)
	case *ForStmt:
		y, ok := b.(*ForStmt)
		return ok && x.CompoundStmt.Equal(&y.CompoundStmt) && equalStmts(x.Init, y.Init) &&
			EqualExpr(x.Cond, y.Cond) && EqualExpr(x.After, y.After)
	case *LabelStmt:
		y, ok := b.(*LabelStmt)
		return ok && x.Kind == y.Kind && x.Name == y.Name && x.Value == y.Value && EqualStmt(x.Stmt, y.Stmt)
	case *JumpStmt:
		y, ok := b.(*JumpStmt)
		return ok && x.Tok.Kind == y.Tok.Kind && x.Label == y.Label
	case *ReturnStmt:
		y, ok := b.(*ReturnStmt)
		return ok && EqualExpr(x.Value, y.Value)
	}
	return false
}
