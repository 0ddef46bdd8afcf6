package ast

import (
	"fmt"
	"strings"
)

// ============================================================================
// 说明符位掩码
// ============================================================================

// StorageSpec 存储类说明符位掩码
type StorageSpec uint8

const (
	SpecTypedef StorageSpec = 1 << iota
	SpecExtern
	SpecStatic
	SpecThreadLocal
	SpecAuto
	SpecRegister
)

var storageSpecNames = []string{"typedef", "extern", "static", "_Thread_local", "auto", "register"}

func (s StorageSpec) String() string {
	return maskString(uint(s), storageSpecNames)
}

// Qualifier 类型限定符位掩码
type Qualifier uint8

const (
	QualConst Qualifier = 1 << iota
	QualRestrict
	QualVolatile
	QualAtomic
)

var qualifierNames = []string{"const", "restrict", "volatile", "_Atomic"}

func (q Qualifier) String() string {
	return maskString(uint(q), qualifierNames)
}

// Specifier 类型说明符位掩码
type Specifier uint16

const (
	SpecChar Specifier = 1 << iota
	SpecShort
	SpecInt
	SpecLong
	SpecFloat
	SpecDouble
	SpecSigned
	SpecUnsigned
	SpecBool
	SpecComplex
	SpecVoid
	SpecLongLong // 第二个 long
)

var specifierNames = []string{
	"char", "short", "int", "long", "float", "double",
	"signed", "unsigned", "_Bool", "_Complex", "void", "long",
}

func (s Specifier) String() string {
	return maskString(uint(s), specifierNames)
}

// IsInteger 判断是否为整数类型
func (s Specifier) IsInteger() bool {
	return s&(SpecFloat|SpecDouble|SpecVoid|SpecComplex) == 0 && s != 0
}

func maskString(mask uint, names []string) string {
	var parts []string
	for i, name := range names {
		if mask&(1<<uint(i)) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, " ")
}

// ============================================================================
// 类型
// ============================================================================

// Type C 类型
//
// 变体：*QualType *PointerType *ArrayType *FuncType
// *StructUnionType *EnumType *TypeDeclType
type Type interface {
	typeNode()
	String() string
}

// TagKind 标签种类
type TagKind int

const (
	TagStruct TagKind = iota
	TagUnion
	TagEnum
)

func (k TagKind) String() string {
	switch k {
	case TagStruct:
		return "struct"
	case TagUnion:
		return "union"
	default:
		return "enum"
	}
}

// TaggedType 带标签的类型，可以出现在 TypeDecl 中
type TaggedType interface {
	Type
	TagName() string
	TagKind() TagKind
}

// QualType 标量类型：说明符加限定符
type QualType struct {
	Specifier Specifier
	Qualifier Qualifier
}

func (*QualType) typeNode() {}

func (t *QualType) String() string {
	if t.Qualifier == 0 {
		return t.Specifier.String()
	}
	return t.Qualifier.String() + " " + t.Specifier.String()
}

// PointerType 指针类型
type PointerType struct {
	Derived   Type
	Qualifier Qualifier
}

func (*PointerType) typeNode() {}

func (t *PointerType) String() string {
	s := "pointer to " + t.Derived.String()
	if t.Qualifier != 0 {
		return t.Qualifier.String() + " " + s
	}
	return s
}

// ArrayType 数组类型，Incomplete 表示长度未给出
type ArrayType struct {
	Derived    Type
	Length     int64
	Incomplete bool
}

func (*ArrayType) typeNode() {}

func (t *ArrayType) String() string {
	if t.Incomplete {
		return "array[] of " + t.Derived.String()
	}
	return fmt.Sprintf("array[%d] of %s", t.Length, t.Derived.String())
}

// FuncType 函数类型，Derived 是返回类型
type FuncType struct {
	Derived  Type
	Params   []Type
	Variadic bool
}

func (*FuncType) typeNode() {}

func (t *FuncType) String() string {
	params := make([]string, 0, len(t.Params)+1)
	for _, p := range t.Params {
		params = append(params, p.String())
	}
	if t.Variadic {
		params = append(params, "...")
	}
	return fmt.Sprintf("function(%s) returning %s", strings.Join(params, ", "), t.Derived.String())
}

// StructUnionType 结构体或联合体
type StructUnionType struct {
	IsStruct bool
	Tag      string
	Members  []*Object
	Complete bool
}

func (*StructUnionType) typeNode() {}

func (t *StructUnionType) TagName() string { return t.Tag }

func (t *StructUnionType) TagKind() TagKind {
	if t.IsStruct {
		return TagStruct
	}
	return TagUnion
}

// Member 按名字查找成员
func (t *StructUnionType) Member(name string) *Object {
	for _, m := range t.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (t *StructUnionType) String() string {
	s := t.TagKind().String()
	if t.Tag != "" {
		s += " " + t.Tag
	}
	if !t.Complete {
		return s
	}
	members := make([]string, len(t.Members))
	for i, m := range t.Members {
		members[i] = m.Name + ": " + m.Type.String()
	}
	return s + " {" + strings.Join(members, "; ") + "}"
}

// Enumerator 枚举常量
type Enumerator struct {
	Name     string
	Value    int64
	Explicit bool // 是否显式给出了值
}

// EnumType 枚举类型
type EnumType struct {
	Tag         string
	Enumerators []Enumerator
	Complete    bool
}

func (*EnumType) typeNode() {}

func (t *EnumType) TagName() string { return t.Tag }

func (t *EnumType) TagKind() TagKind { return TagEnum }

// Lookup 按名字查找枚举常量
func (t *EnumType) Lookup(name string) (*Enumerator, bool) {
	for i := range t.Enumerators {
		if t.Enumerators[i].Name == name {
			return &t.Enumerators[i], true
		}
	}
	return nil, false
}

func (t *EnumType) String() string {
	s := "enum"
	if t.Tag != "" {
		s += " " + t.Tag
	}
	if !t.Complete {
		return s
	}
	names := make([]string, len(t.Enumerators))
	for i, e := range t.Enumerators {
		names[i] = fmt.Sprintf("%s=%d", e.Name, e.Value)
	}
	return s + " {" + strings.Join(names, ", ") + "}"
}

// TypeDeclType 对标签的引用
//
// 由 "struct s" 这样不带成员列表的写法产生。Def 指向已知的定义，
// 前向声明时为 nil，定义出现后补上。Def 不属于该节点。
type TypeDeclType struct {
	Tag  string
	Kind TagKind
	Def  TaggedType
}

func (*TypeDeclType) typeNode() {}

func (t *TypeDeclType) TagName() string { return t.Tag }

func (t *TypeDeclType) TagKind() TagKind { return t.Kind }

// IsComplete 定义是否已知
func (t *TypeDeclType) IsComplete() bool {
	return t.Def != nil
}

func (t *TypeDeclType) String() string {
	return t.Kind.String() + " " + t.Tag
}

// ============================================================================
// 类型相等
// ============================================================================

// EqualType 结构相等：变体相同且所有字段递归相等
//
// TypeDeclType 只比较标签与种类，自引用的结构体因此不会无限递归。
func EqualType(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *QualType:
		y, ok := b.(*QualType)
		return ok && x.Specifier == y.Specifier && x.Qualifier == y.Qualifier
	case *PointerType:
		y, ok := b.(*PointerType)
		return ok && x.Qualifier == y.Qualifier && EqualType(x.Derived, y.Derived)
	case *ArrayType:
		y, ok := b.(*ArrayType)
		return ok && x.Incomplete == y.Incomplete && x.Length == y.Length && EqualType(x.Derived, y.Derived)
	case *FuncType:
		y, ok := b.(*FuncType)
		if !ok || x.Variadic != y.Variadic || len(x.Params) != len(y.Params) || !EqualType(x.Derived, y.Derived) {
			return false
		}
		for i := range x.Params {
			if !EqualType(x.Params[i], y.Params[i]) {
				return false
			}
		}
		return true
	case *StructUnionType:
		y, ok := b.(*StructUnionType)
		if !ok || x.IsStruct != y.IsStruct || x.Tag != y.Tag || x.Complete != y.Complete || len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if !x.Members[i].Equal(y.Members[i]) {
				return false
			}
		}
		return true
	case *EnumType:
		y, ok := b.(*EnumType)
		if !ok || x.Tag != y.Tag || x.Complete != y.Complete || len(x.Enumerators) != len(y.Enumerators) {
			return false
		}
		for i := range x.Enumerators {
			if x.Enumerators[i] != y.Enumerators[i] {
				return false
			}
		}
		return true
	case *TypeDeclType:
		y, ok := b.(*TypeDeclType)
		return ok && x.Tag == y.Tag && x.Kind == y.Kind
	}
	return false
}

// Unqualified 去掉顶层限定符后的类型
func Unqualified(t Type) Type {
	switch x := t.(type) {
	case *QualType:
		if x.Qualifier != 0 {
			return &QualType{Specifier: x.Specifier}
		}
	case *PointerType:
		if x.Qualifier != 0 {
			return &PointerType{Derived: x.Derived}
		}
	}
	return t
}
