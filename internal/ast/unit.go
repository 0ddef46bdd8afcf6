package ast

import (
	"errors"
	"fmt"
)

// ============================================================================
// TranslationUnit - 翻译单元
// ============================================================================

var (
	// ErrRedefinition 函数重复定义
	ErrRedefinition = errors.New("function redefinition")
	// ErrConflicting 与已有声明不一致
	ErrConflicting = errors.New("conflicting declaration")
)

// MergeError 函数声明合并失败
type MergeError struct {
	Err      error // ErrRedefinition 或 ErrConflicting
	Name     string
	Previous *FuncDecl
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("%s of %q", e.Err.Error(), e.Name)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}

// TranslationUnit AST 的根，拥有文件作用域
type TranslationUnit struct {
	Filename string
	Scope    *Scope
	Decls    []Decl // 按出现顺序的外部声明
}

// NewTranslationUnit 创建翻译单元
func NewTranslationUnit(filename string) *TranslationUnit {
	return &TranslationUnit{
		Filename: filename,
		Scope:    NewScope(ScopeFile, nil),
	}
}

// AddExternalDecl 加入对象或类型声明
func (tu *TranslationUnit) AddExternalDecl(d Decl) error {
	if fd, ok := d.(*FuncDecl); ok {
		_, err := tu.AddExternalDef(fd)
		return err
	}
	if err := tu.Scope.AddIdent(d); err != nil {
		return err
	}
	tu.Decls = append(tu.Decls, d)
	return nil
}

// AddExternalDef 加入函数声明或定义，返回最终保留的声明
//
//   - 没有同名函数：加入
//   - 已有声明与之相同：两个都有函数体是重复定义；先原型后定义时原型取得函数体与参数；
//     重复的原型被丢弃
//   - 已有声明与之不同：冲突
func (tu *TranslationUnit) AddExternalDef(fd *FuncDecl) (*FuncDecl, error) {
	prev := tu.Scope.GetFunc(fd.Func.Name)
	if prev == nil {
		if d, _ := tu.Scope.LookupLocal(fd.Func.Name); d != nil {
			return nil, &RedeclarationError{Name: fd.Func.Name, Previous: d}
		}
		if err := tu.Scope.AddIdent(fd); err != nil {
			return nil, err
		}
		tu.Decls = append(tu.Decls, fd)
		return fd, nil
	}

	if !prev.Func.Identifier.Equal(&fd.Func.Identifier) {
		return nil, &MergeError{Err: ErrConflicting, Name: fd.Func.Name, Previous: prev}
	}
	switch {
	case prev.Func.IsDefined() && fd.Func.IsDefined():
		return nil, &MergeError{Err: ErrRedefinition, Name: fd.Func.Name, Previous: prev}
	case fd.Func.IsDefined():
		prev.Func.Params = fd.Func.Params
		prev.Func.Pos = fd.Func.Pos
		prev.Func.BodyInit(fd.Func.Body)
		fd.Func.Body = nil
	}
	return prev, nil
}

// Equal 比较作用域与外部声明
func (tu *TranslationUnit) Equal(other *TranslationUnit) bool {
	if tu == nil || other == nil {
		return tu == nil && other == nil
	}
	if !tu.Scope.Equal(other.Scope) || len(tu.Decls) != len(other.Decls) {
		return false
	}
	for i := range tu.Decls {
		if !EqualDecl(tu.Decls[i], other.Decls[i]) {
			return false
		}
	}
	return true
}
