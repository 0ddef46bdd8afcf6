package ast

import (
	"github.com/tangzhangming/ccfront/internal/token"
)

// ============================================================================
// 链接与存储期
// ============================================================================

// Linkage 标识符链接属性
type Linkage int

const (
	LinkageExternal Linkage = iota
	LinkageInternal
	LinkageNone
)

func (l Linkage) String() string {
	switch l {
	case LinkageExternal:
		return "external"
	case LinkageInternal:
		return "internal"
	default:
		return "none"
	}
}

// Storage 对象存储期
type Storage int

const (
	StorageStatic Storage = iota
	StorageThread
	StorageAutomatic
	StorageAllocated // 解析器从不产生
)

func (s Storage) String() string {
	switch s {
	case StorageStatic:
		return "static"
	case StorageThread:
		return "thread"
	case StorageAutomatic:
		return "automatic"
	default:
		return "allocated"
	}
}

// DeriveStorage 由链接属性和存储类说明符推导存储期
func DeriveStorage(linkage Linkage, spec StorageSpec) Storage {
	switch {
	case spec&SpecThreadLocal != 0:
		return StorageThread
	case linkage != LinkageNone || spec&SpecStatic != 0:
		return StorageStatic
	default:
		return StorageAutomatic
	}
}

// ============================================================================
// 标识符
// ============================================================================

// Identifier 对象与函数共有的部分
type Identifier struct {
	Name    string
	Type    Type
	Linkage Linkage
	Pos     token.Position // 不参与比较
}

// Equal 名字、链接属性与类型都相同
func (id *Identifier) Equal(other *Identifier) bool {
	if id == nil || other == nil {
		return id == nil && other == nil
	}
	return id.Name == other.Name && id.Linkage == other.Linkage && EqualType(id.Type, other.Type)
}

// Object 变量
type Object struct {
	Identifier
	Storage Storage
	Decl    *ObjectDecl // 所属声明，不持有
}

// NewObject 创建对象，存储期按 DeriveStorage 推导
func NewObject(name string, typ Type, linkage Linkage, spec StorageSpec, pos token.Position) *Object {
	return &Object{
		Identifier: Identifier{Name: name, Type: typ, Linkage: linkage, Pos: pos},
		Storage:    DeriveStorage(linkage, spec),
	}
}

// Equal 比较标识符部分与存储期，不比较所属声明
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == nil && other == nil
	}
	return o.Identifier.Equal(&other.Identifier) && o.Storage == other.Storage
}

// Function 函数
type Function struct {
	Identifier
	Params []*Object
	Body   *CompoundStmt
}

// NewFunction 创建函数，typ 应当是 *FuncType
func NewFunction(name string, typ Type, linkage Linkage, params []*Object, pos token.Position) *Function {
	return &Function{
		Identifier: Identifier{Name: name, Type: typ, Linkage: linkage, Pos: pos},
		Params:     params,
	}
}

// IsDefined 是否有函数体
func (f *Function) IsDefined() bool {
	return f.Body != nil
}

// Signature 函数类型，typ 不是函数类型时返回 nil
func (f *Function) Signature() *FuncType {
	ft, _ := f.Type.(*FuncType)
	return ft
}

// BodyInit 设置函数体，函数体反向指向该函数
func (f *Function) BodyInit(body *CompoundStmt) {
	f.Body = body
	if body != nil {
		body.Func = f
	}
}

// Equal 比较标识符、参数与函数体
func (f *Function) Equal(other *Function) bool {
	if f == nil || other == nil {
		return f == nil && other == nil
	}
	if !f.Identifier.Equal(&other.Identifier) || len(f.Params) != len(other.Params) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equal(other.Params[i]) {
			return false
		}
	}
	if f.Body == nil || other.Body == nil {
		return f.Body == nil && other.Body == nil
	}
	return f.Body.Equal(other.Body)
}
