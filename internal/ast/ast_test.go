package ast

import (
	"errors"
	"strings"
	"testing"

	"github.com/tangzhangming/ccfront/internal/token"
)

func intType() *QualType { return &QualType{Specifier: SpecInt} }

func tok(kind token.Kind) token.Token { return token.Token{Kind: kind} }

func intConst(v int64) *Constant { return NewIntConstant(tok(token.INT_CONST), v) }

func TestDeriveStorage(t *testing.T) {
	tests := []struct {
		linkage Linkage
		spec    StorageSpec
		want    Storage
	}{
		{LinkageExternal, 0, StorageStatic},
		{LinkageInternal, SpecStatic, StorageStatic},
		{LinkageNone, 0, StorageAutomatic},
		{LinkageNone, SpecAuto, StorageAutomatic},
		{LinkageNone, SpecStatic, StorageStatic},
		{LinkageNone, SpecThreadLocal, StorageThread},
		{LinkageExternal, SpecThreadLocal | SpecExtern, StorageThread},
	}
	for _, tt := range tests {
		if got := DeriveStorage(tt.linkage, tt.spec); got != tt.want {
			t.Errorf("DeriveStorage(%s, %q) = %s, want %s", tt.linkage, tt.spec, got, tt.want)
		}
	}
}

func TestEqualType(t *testing.T) {
	ptrInt := &PointerType{Derived: intType()}
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"same scalar", intType(), intType(), true},
		{"unsigned differs", intType(), &QualType{Specifier: SpecInt | SpecUnsigned}, false},
		{"qualifier differs", intType(), &QualType{Specifier: SpecInt, Qualifier: QualConst}, false},
		{"pointer", ptrInt, &PointerType{Derived: intType()}, true},
		{"pointer vs scalar", ptrInt, intType(), false},
		{"array length", &ArrayType{Derived: intType(), Length: 3}, &ArrayType{Derived: intType(), Length: 4}, false},
		{"incomplete array", &ArrayType{Derived: intType(), Incomplete: true}, &ArrayType{Derived: intType(), Incomplete: true}, true},
		{"func params", &FuncType{Derived: intType(), Params: []Type{intType()}}, &FuncType{Derived: intType()}, false},
		{"func variadic", &FuncType{Derived: intType(), Variadic: true}, &FuncType{Derived: intType()}, false},
		{"tag ref", &TypeDeclType{Tag: "s", Kind: TagStruct}, &TypeDeclType{Tag: "s", Kind: TagStruct}, true},
		{"tag kind", &TypeDeclType{Tag: "s", Kind: TagStruct}, &TypeDeclType{Tag: "s", Kind: TagUnion}, false},
		{"nil", nil, nil, true},
		{"nil vs type", nil, intType(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EqualType(tt.a, tt.b); got != tt.want {
				t.Errorf("EqualType(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSelfReferentialStruct(t *testing.T) {
	build := func() *StructUnionType {
		ref := &TypeDeclType{Tag: "node", Kind: TagStruct}
		st := &StructUnionType{IsStruct: true, Tag: "node", Complete: true}
		st.Members = []*Object{
			NewObject("value", intType(), LinkageNone, 0, token.Position{}),
			NewObject("next", &PointerType{Derived: ref}, LinkageNone, 0, token.Position{}),
		}
		ref.Def = st
		return st
	}
	a, b := build(), build()
	if !EqualType(a, b) {
		t.Errorf("self-referential structs should be equal")
	}
	if got := a.String(); !strings.Contains(got, "next: pointer to struct node") {
		t.Errorf("got %s", got)
	}
	if a.Member("next") == nil || a.Member("missing") != nil {
		t.Errorf("Member lookup failed")
	}
}

func TestScopeShadowing(t *testing.T) {
	file := NewScope(ScopeFile, nil)
	if err := file.AddIdent(NewObjectDecl(NewObject("i", intType(), LinkageExternal, 0, token.Position{}), nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	block := NewScope(ScopeBlock, file)
	inner := NewObjectDecl(NewObject("i", intType(), LinkageNone, 0, token.Position{}), nil)
	if err := block.AddIdent(inner); err != nil {
		t.Fatalf("shadowing should be allowed: %v", err)
	}
	if got := block.GetObject("i"); got != inner {
		t.Errorf("GetObject should find the innermost declaration")
	}
	if got := file.GetObject("i"); got == inner {
		t.Errorf("outer scope must not see inner declarations")
	}

	err := block.AddIdent(NewObjectDecl(NewObject("i", intType(), LinkageNone, 0, token.Position{}), nil))
	if !errors.Is(err, ErrRedeclared) {
		t.Fatalf("got %v, want ErrRedeclared", err)
	}
	var redecl *RedeclarationError
	if !errors.As(err, &redecl) || redecl.Previous != inner {
		t.Errorf("RedeclarationError should point at the previous declaration")
	}
}

func TestScopeFunctionsExempt(t *testing.T) {
	file := NewScope(ScopeFile, nil)
	ft := &FuncType{Derived: intType()}
	for i := 0; i < 2; i++ {
		fd := &FuncDecl{Func: NewFunction("f", ft, LinkageExternal, nil, token.Position{})}
		if err := file.AddIdent(fd); err != nil {
			t.Fatalf("function insertion should not fail: %v", err)
		}
	}
	if len(file.Decls) != 2 {
		t.Errorf("got %d decls, want 2", len(file.Decls))
	}
	err := file.AddIdent(NewObjectDecl(NewObject("f", intType(), LinkageExternal, 0, token.Position{}), nil))
	if !errors.Is(err, ErrRedeclared) {
		t.Errorf("object named like a function: got %v, want ErrRedeclared", err)
	}
}

func TestScopeTags(t *testing.T) {
	file := NewScope(ScopeFile, nil)
	fwd := &TypeDecl{Type: &TypeDeclType{Tag: "s", Kind: TagStruct}}
	if err := file.AddIdent(fwd); err != nil {
		t.Fatal(err)
	}
	if err := file.AddIdent(&TypeDecl{Type: &StructUnionType{IsStruct: true, Tag: "s"}}); !errors.Is(err, ErrRedeclared) {
		t.Errorf("got %v, want ErrRedeclared", err)
	}
	// 匿名标签不受限制
	for i := 0; i < 2; i++ {
		if err := file.AddIdent(&TypeDecl{Type: &StructUnionType{IsStruct: true}}); err != nil {
			t.Errorf("anonymous struct: %v", err)
		}
	}
	block := NewScope(ScopeBlock, file)
	if got := block.GetType("s"); got != fwd {
		t.Errorf("GetType should search enclosing scopes")
	}
	if block.LocalType("s") != nil {
		t.Errorf("LocalType must not search enclosing scopes")
	}
}

func TestScopeEnumerators(t *testing.T) {
	file := NewScope(ScopeFile, nil)
	color := &EnumType{Tag: "color", Complete: true, Enumerators: []Enumerator{{Name: "RED"}, {Name: "GREEN", Value: 4, Explicit: true}}}
	if err := file.AddIdent(&TypeDecl{Type: color}); err != nil {
		t.Fatal(err)
	}

	block := NewScope(ScopeBlock, file)
	d, e := block.Resolve("GREEN")
	if d != nil || e == nil || e.Value != 4 {
		t.Fatalf("Resolve(GREEN) = %v, %v", d, e)
	}
	if block.GetEnumerator("RED") == nil {
		t.Errorf("GetEnumerator(RED) should succeed")
	}

	err := file.AddIdent(NewObjectDecl(NewObject("RED", intType(), LinkageExternal, 0, token.Position{}), nil))
	if !errors.Is(err, ErrRedeclared) {
		t.Errorf("object named like an enumerator: got %v, want ErrRedeclared", err)
	}

	shadow := NewObjectDecl(NewObject("RED", intType(), LinkageNone, 0, token.Position{}), nil)
	if err := block.AddIdent(shadow); err != nil {
		t.Fatal(err)
	}
	if got, e := block.Resolve("RED"); got != shadow || e != nil {
		t.Errorf("inner object should shadow the enumerator")
	}
	if block.GetEnumerator("RED") != nil {
		t.Errorf("shadowed enumerator should not be found")
	}

	names := block.Names()
	if len(names) != 2 || names[0] != "RED" || names[1] != "GREEN" {
		t.Errorf("Names() = %v", names)
	}
}

func TestScopeEqual(t *testing.T) {
	a := NewScope(ScopeBlock, NewScope(ScopeFile, nil))
	b := NewScope(ScopeBlock, NewScope(ScopeFile, nil))
	if !a.Equal(b) {
		t.Errorf("empty block scopes should be equal")
	}
	if a.Equal(NewScope(ScopeBlock, nil)) {
		t.Errorf("scopes with and without parent should differ")
	}
	a.AddIdent(NewObjectDecl(NewObject("x", intType(), LinkageNone, 0, token.Position{}), nil))
	if a.Equal(b) {
		t.Errorf("scopes with different declarations should differ")
	}
	if a.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", a.Depth())
	}
}

func newFunc(name string, defined bool, params ...Type) *FuncDecl {
	ft := &FuncType{Derived: intType(), Params: params}
	f := NewFunction(name, ft, LinkageExternal, nil, token.Position{})
	if defined {
		f.BodyInit(NewCompoundStmt(ScopeFunc, nil, token.Position{}))
	}
	return &FuncDecl{Func: f}
}

func TestAddExternalDef(t *testing.T) {
	t.Run("prototype then definition", func(t *testing.T) {
		tu := NewTranslationUnit("a.c")
		proto := newFunc("f", false, intType())
		if _, err := tu.AddExternalDef(proto); err != nil {
			t.Fatal(err)
		}
		def := newFunc("f", true, intType())
		body := def.Func.Body
		kept, err := tu.AddExternalDef(def)
		if err != nil {
			t.Fatal(err)
		}
		if kept != proto || !proto.Func.IsDefined() || proto.Func.Body != body {
			t.Errorf("prototype should take over the body")
		}
		if body.Func != proto.Func {
			t.Errorf("body should point back at the surviving function")
		}
		if len(tu.Decls) != 1 {
			t.Errorf("got %d decls, want 1", len(tu.Decls))
		}
	})

	t.Run("duplicate prototype", func(t *testing.T) {
		tu := NewTranslationUnit("a.c")
		tu.AddExternalDef(newFunc("f", false))
		if _, err := tu.AddExternalDef(newFunc("f", false)); err != nil {
			t.Errorf("duplicate prototype should be accepted: %v", err)
		}
		if len(tu.Scope.Decls) != 1 {
			t.Errorf("duplicate prototype should be discarded")
		}
	})

	t.Run("redefinition", func(t *testing.T) {
		tu := NewTranslationUnit("a.c")
		tu.AddExternalDef(newFunc("f", true))
		_, err := tu.AddExternalDef(newFunc("f", true))
		if !errors.Is(err, ErrRedefinition) {
			t.Errorf("got %v, want ErrRedefinition", err)
		}
	})

	t.Run("conflicting", func(t *testing.T) {
		tu := NewTranslationUnit("a.c")
		tu.AddExternalDef(newFunc("f", false))
		_, err := tu.AddExternalDef(newFunc("f", true, intType()))
		if !errors.Is(err, ErrConflicting) {
			t.Errorf("got %v, want ErrConflicting", err)
		}
	})

	t.Run("object with same name", func(t *testing.T) {
		tu := NewTranslationUnit("a.c")
		tu.AddExternalDecl(NewObjectDecl(NewObject("f", intType(), LinkageExternal, 0, token.Position{}), nil))
		_, err := tu.AddExternalDef(newFunc("f", false))
		if !errors.Is(err, ErrRedeclared) {
			t.Errorf("got %v, want ErrRedeclared", err)
		}
	})
}

func TestFold(t *testing.T) {
	bin := func(k token.Kind, l, r Expr) Expr { return &BinaryExpr{Tok: tok(k), Left: l, Right: r} }
	obj := &ObjectExpr{Tok: tok(token.IDENT), Obj: NewObject("x", intType(), LinkageNone, 0, token.Position{})}

	tests := []struct {
		name string
		expr Expr
		want int64
		ok   bool
	}{
		{"literal", intConst(3), 3, true},
		{"char", &Constant{Tok: tok(token.CHAR_CONST), Kind: ConstChar, Int: 'a'}, 97, true},
		{"add", bin(token.PLUS, intConst(1), intConst(2)), 3, true},
		{"nested", bin(token.STAR, intConst(2), bin(token.MINUS, intConst(5), intConst(1))), 8, true},
		{"shift", bin(token.LEFT_SHIFT, intConst(1), intConst(4)), 16, true},
		{"negate", &UnaryExpr{Tok: tok(token.MINUS), Operand: intConst(7)}, -7, true},
		{"not", &UnaryExpr{Tok: tok(token.NOT), Operand: intConst(0)}, 1, true},
		{"compare", bin(token.LT, intConst(1), intConst(2)), 1, true},
		{"conditional", &ConditionalExpr{Tok: tok(token.QUESTION), Cond: intConst(0), Then: intConst(1), Else: intConst(2)}, 2, true},
		{"enum", &EnumConstExpr{Tok: tok(token.IDENT), Name: "A", Value: 5}, 5, true},
		{"cast", &CastExpr{Tok: tok(token.LPAREN), To: &QualType{Specifier: SpecLong}, Operand: intConst(9)}, 9, true},
		{"short circuit", bin(token.AND, intConst(0), obj), 0, true},
		{"object", obj, 0, false},
		{"div zero", bin(token.SLASH, intConst(1), intConst(0)), 0, false},
		{"float", &Constant{Tok: tok(token.FLOAT_CONST), Kind: ConstFloat, Float: 1.5}, 0, false},
		{"postfix", &UnaryExpr{Tok: tok(token.INCREMENT), Operand: intConst(1), Postfix: true}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt(tt.expr)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ToInt() = %d, %v, want %d, %v", got, ok, tt.want, tt.ok)
			}
			if IsIntConstant(tt.expr) != tt.ok {
				t.Errorf("IsIntConstant() = %v, want %v", !tt.ok, tt.ok)
			}
		})
	}
}

func TestEqualExprIgnoresPositions(t *testing.T) {
	a := &BinaryExpr{Tok: token.New(token.LT, "<", token.Position{Line: 1, Column: 3}), Left: intConst(1), Right: intConst(2)}
	b := &BinaryExpr{Tok: token.New(token.LT, "<", token.Position{Line: 9, Column: 9}), Left: intConst(1), Right: intConst(2)}
	if !EqualExpr(a, b) {
		t.Errorf("positions should be ignored")
	}
	c := &BinaryExpr{Tok: tok(token.GT), Left: intConst(1), Right: intConst(2)}
	if EqualExpr(a, c) {
		t.Errorf("different operators should differ")
	}
}

func TestEqualStmt(t *testing.T) {
	build := func(limit int64) *ForStmt {
		parent := NewScope(ScopeFunc, NewScope(ScopeFile, nil))
		f := &ForStmt{CompoundStmt: *NewCompoundStmt(ScopeBlock, parent, token.Position{})}
		i := NewObjectDecl(NewObject("i", intType(), LinkageNone, 0, token.Position{}), &BaseInitializer{Expr: intConst(0)})
		f.Scope.AddIdent(i)
		f.Init = []Stmt{i}
		f.Cond = &BinaryExpr{Tok: tok(token.LT), Left: &ObjectExpr{Tok: tok(token.IDENT), Obj: i.Obj}, Right: intConst(limit)}
		f.After = &UnaryExpr{Tok: tok(token.INCREMENT), Operand: &ObjectExpr{Tok: tok(token.IDENT), Obj: i.Obj}}
		return f
	}
	if !EqualStmt(build(100), build(100)) {
		t.Errorf("identical for statements should be equal")
	}
	if EqualStmt(build(100), build(10)) {
		t.Errorf("different conditions should differ")
	}
	if got := build(1).OwnedScope(); got == nil || got.Kind != ScopeBlock {
		t.Errorf("for statement should own a block scope")
	}
	if (&ReturnStmt{}).OwnedScope() != nil {
		t.Errorf("return statement owns no scope")
	}
}

func TestEqualInitializer(t *testing.T) {
	a := &InitializerList{List: []Initializer{
		&BaseInitializer{Offset: MemberOffset("x"), Expr: intConst(1)},
		&BaseInitializer{Offset: IndexOffset(1), Expr: intConst(2)},
	}}
	b := &InitializerList{List: []Initializer{
		&BaseInitializer{Offset: MemberOffset("x"), Expr: intConst(1)},
		&BaseInitializer{Offset: IndexOffset(1), Expr: intConst(2)},
	}}
	if !EqualInitializer(a, b) {
		t.Errorf("identical lists should be equal")
	}
	b.List[0].(*BaseInitializer).Offset = MemberOffset("y")
	if EqualInitializer(a, b) {
		t.Errorf("different designators should differ")
	}
	if got := MemberOffset("x").String(); got != ".x" {
		t.Errorf("got %s, want .x", got)
	}
	if got := IndexOffset(2).String(); got != "[2]" {
		t.Errorf("got %s, want [2]", got)
	}
}

func TestDumpJSON(t *testing.T) {
	tu := NewTranslationUnit("a.c")
	i := NewObjectDecl(NewObject("i", intType(), LinkageExternal, 0, token.Position{}), &BaseInitializer{Expr: intConst(0)})
	if err := tu.AddExternalDecl(i); err != nil {
		t.Fatal(err)
	}
	tu.AddExternalDef(newFunc("main", true))

	data, err := DumpJSON(tu)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{`"ObjectDecl"`, `"FuncDecl"`, `"main"`, `"storage": "static"`, `"BaseInitializer"`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %s:\n%s", want, out)
		}
	}
}
