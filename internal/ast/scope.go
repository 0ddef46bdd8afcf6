package ast

import (
	"errors"
	"fmt"
)

// ============================================================================
// Scope - 作用域
// ============================================================================
//
// 作用域按声明顺序保存本层的声明，查找时由内向外沿 parent 链进行，
// 不会进入兄弟或子作用域。

// ScopeKind 作用域种类
type ScopeKind int

const (
	ScopeFile ScopeKind = iota
	ScopeBlock
	ScopeFunc
	ScopeFuncPrototype
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeBlock:
		return "block"
	case ScopeFunc:
		return "function"
	default:
		return "prototype"
	}
}

// ErrRedeclared 同一作用域内重复声明
var ErrRedeclared = errors.New("redeclared in this scope")

// RedeclarationError 重复声明，Previous 是已有的声明
type RedeclarationError struct {
	Name     string
	Previous Decl
}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf("%q %s", e.Name, ErrRedeclared.Error())
}

func (e *RedeclarationError) Unwrap() error {
	return ErrRedeclared
}

// Scope 作用域
type Scope struct {
	Kind   ScopeKind
	Parent *Scope // 不持有，文件作用域为 nil
	Decls  []Decl
}

// NewScope 创建作用域
func NewScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{Kind: kind, Parent: parent}
}

// AddIdent 向本作用域加入声明
//
// 对象与本层同名的对象、函数或枚举常量冲突；带标签的类型与本层同标签的类型冲突；
// 函数总是加入，合并规则由调用方处理。
func (s *Scope) AddIdent(d Decl) error {
	switch x := d.(type) {
	case *ObjectDecl:
		if x.Obj.Name != "" {
			if prev := s.localOrdinary(x.Obj.Name); prev != nil {
				return &RedeclarationError{Name: x.Obj.Name, Previous: prev}
			}
		}
		x.Obj.Decl = x
	case *TypeDecl:
		if tag := x.Type.TagName(); tag != "" {
			if prev := s.LocalType(tag); prev != nil {
				return &RedeclarationError{Name: tag, Previous: prev}
			}
		}
		if et, ok := x.Type.(*EnumType); ok {
			for _, e := range et.Enumerators {
				if prev := s.localOrdinary(e.Name); prev != nil {
					return &RedeclarationError{Name: e.Name, Previous: prev}
				}
			}
		}
	}
	s.Decls = append(s.Decls, d)
	return nil
}

// localOrdinary 本层与 name 同名的对象、函数，或声明了同名枚举常量的类型
func (s *Scope) localOrdinary(name string) Decl {
	d, e := s.LookupLocal(name)
	if d != nil {
		return d
	}
	if e != nil {
		return s.enumDecl(name)
	}
	return nil
}

func (s *Scope) enumDecl(name string) *TypeDecl {
	for _, d := range s.Decls {
		if td, ok := d.(*TypeDecl); ok {
			if et, ok := td.Type.(*EnumType); ok {
				if _, found := et.Lookup(name); found {
					return td
				}
			}
		}
	}
	return nil
}

// LookupLocal 只在本层查找普通标识符
//
// 找到对象或函数时返回声明，找到枚举常量时返回常量。
func (s *Scope) LookupLocal(name string) (Decl, *Enumerator) {
	for _, d := range s.Decls {
		switch x := d.(type) {
		case *ObjectDecl:
			if x.Obj.Name == name {
				return x, nil
			}
		case *FuncDecl:
			if x.Func.Name == name {
				return x, nil
			}
		case *TypeDecl:
			if et, ok := x.Type.(*EnumType); ok {
				if e, found := et.Lookup(name); found {
					return nil, e
				}
			}
		}
	}
	return nil, nil
}

// LocalType 只在本层按标签查找类型声明
func (s *Scope) LocalType(tag string) *TypeDecl {
	for _, d := range s.Decls {
		if td, ok := d.(*TypeDecl); ok && td.Type.TagName() == tag {
			return td
		}
	}
	return nil
}

// Resolve 由内向外查找普通标识符，返回最近一层的结果
func (s *Scope) Resolve(name string) (Decl, *Enumerator) {
	for cur := s; cur != nil; cur = cur.Parent {
		if d, e := cur.LookupLocal(name); d != nil || e != nil {
			return d, e
		}
	}
	return nil, nil
}

// GetObject 查找对象
func (s *Scope) GetObject(name string) *ObjectDecl {
	for cur := s; cur != nil; cur = cur.Parent {
		for _, d := range cur.Decls {
			if od, ok := d.(*ObjectDecl); ok && od.Obj.Name == name {
				return od
			}
		}
	}
	return nil
}

// GetFunc 查找函数，同一层有多个时返回第一个
func (s *Scope) GetFunc(name string) *FuncDecl {
	for cur := s; cur != nil; cur = cur.Parent {
		for _, d := range cur.Decls {
			if fd, ok := d.(*FuncDecl); ok && fd.Func.Name == name {
				return fd
			}
		}
	}
	return nil
}

// GetType 按标签查找类型声明
func (s *Scope) GetType(tag string) *TypeDecl {
	for cur := s; cur != nil; cur = cur.Parent {
		if td := cur.LocalType(tag); td != nil {
			return td
		}
	}
	return nil
}

// GetEnumerator 查找枚举常量
func (s *Scope) GetEnumerator(name string) *Enumerator {
	for cur := s; cur != nil; cur = cur.Parent {
		if d, e := cur.LookupLocal(name); d != nil {
			return nil
		} else if e != nil {
			return e
		}
	}
	return nil
}

// Names 所有可见的普通标识符，内层在前，用于拼写建议
func (s *Scope) Names() []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for cur := s; cur != nil; cur = cur.Parent {
		for _, d := range cur.Decls {
			switch x := d.(type) {
			case *ObjectDecl:
				add(x.Obj.Name)
			case *FuncDecl:
				add(x.Func.Name)
			case *TypeDecl:
				if et, ok := x.Type.(*EnumType); ok {
					for _, e := range et.Enumerators {
						add(e.Name)
					}
				}
			}
		}
	}
	return names
}

// Depth 到文件作用域的层数
func (s *Scope) Depth() int {
	n := 0
	for cur := s.Parent; cur != nil; cur = cur.Parent {
		n++
	}
	return n
}

// Equal 比较种类、声明，以及父作用域是否存在且种类相同
func (s *Scope) Equal(other *Scope) bool {
	if s == nil || other == nil {
		return s == nil && other == nil
	}
	if s.Kind != other.Kind || len(s.Decls) != len(other.Decls) {
		return false
	}
	if (s.Parent == nil) != (other.Parent == nil) {
		return false
	}
	if s.Parent != nil && s.Parent.Kind != other.Parent.Kind {
		return false
	}
	for i := range s.Decls {
		if !EqualDecl(s.Decls[i], other.Decls[i]) {
			return false
		}
	}
	return true
}
