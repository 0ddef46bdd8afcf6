package ast

import (
	"fmt"

	"github.com/tangzhangming/ccfront/internal/token"
)

// ============================================================================
// 声明
// ============================================================================

// Decl 声明，同时也是语句
//
// 变体：*ObjectDecl *FuncDecl *TypeDecl
type Decl interface {
	Stmt
	declNode()
}

// ObjectDecl 对象声明，Init 可以为 nil
type ObjectDecl struct {
	Obj  *Object
	Init Initializer
}

// FuncDecl 函数声明或定义
type FuncDecl struct {
	Func *Function
}

// TypeDecl 标签类型声明
//
// 前向声明时 Type 是 *TypeDeclType，定义后替换为完整的结构体、联合体或枚举类型。
type TypeDecl struct {
	Type TaggedType
	Pos  token.Position
}

// NewObjectDecl 创建对象声明并设置对象的反向引用
func NewObjectDecl(obj *Object, init Initializer) *ObjectDecl {
	d := &ObjectDecl{Obj: obj, Init: init}
	obj.Decl = d
	return d
}

func (*ObjectDecl) stmtNode() {}
func (*FuncDecl) stmtNode()   {}
func (*TypeDecl) stmtNode()   {}

func (*ObjectDecl) declNode() {}
func (*FuncDecl) declNode()   {}
func (*TypeDecl) declNode()   {}

func (*ObjectDecl) OwnedScope() *Scope { return nil }
func (*FuncDecl) OwnedScope() *Scope   { return nil }
func (*TypeDecl) OwnedScope() *Scope   { return nil }

func (d *ObjectDecl) Position() token.Position { return d.Obj.Pos }
func (d *FuncDecl) Position() token.Position   { return d.Func.Pos }
func (d *TypeDecl) Position() token.Position   { return d.Pos }

// DeclName 声明的名字或标签
func DeclName(d Decl) string {
	switch x := d.(type) {
	case *ObjectDecl:
		return x.Obj.Name
	case *FuncDecl:
		return x.Func.Name
	case *TypeDecl:
		return x.Type.TagName()
	}
	return ""
}

// EqualDecl 结构相等
func EqualDecl(a, b Decl) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *ObjectDecl:
		y, ok := b.(*ObjectDecl)
		return ok && x.Obj.Equal(y.Obj) && EqualInitializer(x.Init, y.Init)
	case *FuncDecl:
		y, ok := b.(*FuncDecl)
		return ok && x.Func.Equal(y.Func)
	case *TypeDecl:
		y, ok := b.(*TypeDecl)
		return ok && EqualType(x.Type, y.Type)
	}
	return false
}

// ============================================================================
// 初始化器
// ============================================================================

// Offset 初始化位置：数组下标或成员名
type Offset struct {
	Index  int64
	Member string // 非空表示 .member 指示符
}

// IndexOffset 按位置初始化
func IndexOffset(i int64) Offset {
	return Offset{Index: i}
}

// MemberOffset 按成员名初始化
func MemberOffset(name string) Offset {
	return Offset{Member: name}
}

// IsMember 是否是成员指示符
func (o Offset) IsMember() bool {
	return o.Member != ""
}

func (o Offset) String() string {
	if o.IsMember() {
		return "." + o.Member
	}
	return fmt.Sprintf("[%d]", o.Index)
}

// Initializer 初始化器
//
// 变体：*BaseInitializer *InitializerList
type Initializer interface {
	initNode()
	At() Offset
}

// BaseInitializer 单个表达式
type BaseInitializer struct {
	Offset Offset
	Expr   Expr
}

// InitializerList 花括号中的初始化器列表
type InitializerList struct {
	Offset Offset
	List   []Initializer
}

func (*BaseInitializer) initNode() {}
func (*InitializerList) initNode() {}

func (i *BaseInitializer) At() Offset { return i.Offset }
func (i *InitializerList) At() Offset { return i.Offset }

// EqualInitializer 结构相等
func EqualInitializer(a, b Initializer) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *BaseInitializer:
		y, ok := b.(*BaseInitializer)
		return ok && x.Offset == y.Offset && EqualExpr(x.Expr, y.Expr)
	case *InitializerList:
		y, ok := b.(*InitializerList)
		if !ok || x.Offset != y.Offset || len(x.List) != len(y.List) {
			return false
		}
		for i := range x.List {
			if !EqualInitializer(x.List[i], y.List[i]) {
				return false
			}
		}
		return true
	}
	return false
}
