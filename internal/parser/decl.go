package parser

import (
	"errors"

	"go.uber.org/zap"

	"github.com/tangzhangming/ccfront/internal/ast"
	cerrors "github.com/tangzhangming/ccfront/internal/errors"
	"github.com/tangzhangming/ccfront/internal/token"
)

// ============================================================================
// 声明说明符
// ============================================================================

var storageSpecs = map[token.Kind]ast.StorageSpec{
	token.EXTERN:       ast.SpecExtern,
	token.STATIC:       ast.SpecStatic,
	token.THREAD_LOCAL: ast.SpecThreadLocal,
	token.AUTO:         ast.SpecAuto,
	token.REGISTER:     ast.SpecRegister,
}

var qualifiers = map[token.Kind]ast.Qualifier{
	token.CONST:    ast.QualConst,
	token.RESTRICT: ast.QualRestrict,
	token.VOLATILE: ast.QualVolatile,
	token.ATOMIC:   ast.QualAtomic,
}

var typeSpecs = map[token.Kind]ast.Specifier{
	token.VOID:     ast.SpecVoid,
	token.CHAR:     ast.SpecChar,
	token.SHORT:    ast.SpecShort,
	token.INT:      ast.SpecInt,
	token.LONG:     ast.SpecLong,
	token.FLOAT:    ast.SpecFloat,
	token.DOUBLE:   ast.SpecDouble,
	token.SIGNED:   ast.SpecSigned,
	token.UNSIGNED: ast.SpecUnsigned,
	token.BOOL:     ast.SpecBool,
	token.COMPLEX:  ast.SpecComplex,
}

// IsDeclSpec 判断 token 能否开始一个声明
func IsDeclSpec(kind token.Kind) bool {
	if _, ok := storageSpecs[kind]; ok {
		return true
	}
	if _, ok := qualifiers[kind]; ok {
		return true
	}
	if _, ok := typeSpecs[kind]; ok {
		return true
	}
	switch kind {
	case token.STRUCT, token.UNION, token.ENUM, token.TYPEDEF, token.INLINE, token.NORETURN:
		return true
	}
	return false
}

// ParseDeclSpec 解析声明说明符
//
// 存储类说明符累积到 p.storage，由声明的解析者在声明结束时清零。
// 结构体、联合体与枚举交给 ParseStructOrUnion 和 ParseEnum。
func (p *Parser) ParseDeclSpec() ast.Type {
	var spec ast.Specifier
	var qual ast.Qualifier
	var tagged ast.Type
	start := p.peek()
	seen := false

loop:
	for {
		tok := p.peek()
		if s, ok := storageSpecs[tok.Kind]; ok {
			p.next()
			p.storage |= s
			seen = true
			continue
		}
		if q, ok := qualifiers[tok.Kind]; ok {
			p.next()
			qual |= q
			seen = true
			continue
		}
		if s, ok := typeSpecs[tok.Kind]; ok {
			p.next()
			if s == ast.SpecLong && spec&ast.SpecLong != 0 {
				s = ast.SpecLongLong
			}
			spec |= s
			seen = true
			continue
		}

		switch tok.Kind {
		case token.TYPEDEF:
			p.fail(p.semantic(cerrors.E0104, tok.Pos, "typedef"))
		case token.INLINE, token.NORETURN:
			p.next()
			seen = true
		case token.STRUCT, token.UNION:
			p.next()
			tagged = p.ParseStructOrUnion(tok.Kind == token.STRUCT)
			seen = true
		case token.ENUM:
			p.next()
			tagged = p.ParseEnum()
			seen = true
		default:
			break loop
		}
	}

	if !seen {
		p.unexpected(cerrors.E0010, start)
	}
	if tagged != nil {
		return tagged
	}
	if spec == 0 {
		spec = ast.SpecInt
	}
	return &ast.QualType{Specifier: spec, Qualifier: qual}
}

// declSpecIsolated 解析一组独立的说明符，不影响外层声明累积的存储类
func (p *Parser) declSpecIsolated() (ast.Type, ast.StorageSpec) {
	saved := p.storage
	p.storage = 0
	base := p.ParseDeclSpec()
	spec := p.storage
	p.storage = saved
	return base, spec
}

// takeStorage 取出并清零累积的存储类说明符
func (p *Parser) takeStorage() ast.StorageSpec {
	spec := p.storage
	p.storage = 0
	return spec
}

// takeTags 取出说明符解析期间新加入作用域的标签声明
func (p *Parser) takeTags() []ast.Decl {
	tags := p.tags
	p.tags = nil
	return tags
}

// ============================================================================
// 结构体、联合体与枚举
// ============================================================================

// ParseStructOrUnion 解析 struct/union 关键字之后的部分
func (p *Parser) ParseStructOrUnion(isStruct bool) ast.Type {
	kind := ast.TagUnion
	if isStruct {
		kind = ast.TagStruct
	}
	tagTok, tag := p.optionalTag()

	if !p.peekIs(token.LBRACE) {
		return p.tagReference(tagTok, kind)
	}
	p.next()

	st := &ast.StructUnionType{IsStruct: isStruct, Tag: tag}
	var decl *ast.TypeDecl
	var fwd *ast.TypeDeclType
	if tag != "" {
		decl, fwd = p.tagDefinition(tagTok, kind)
	}

	for !p.test(token.RBRACE) {
		p.parseMembers(st)
	}
	st.Complete = true

	if decl != nil {
		fwd.Def = st
		decl.Type = st
	}
	return st
}

// parseMembers 解析一行成员声明
func (p *Parser) parseMembers(st *ast.StructUnionType) {
	base, _ := p.declSpecIsolated()
	if p.test(token.SEMICOLON) {
		return
	}
	p.parseList(func() struct{} {
		id := p.ParseDeclarator(base)
		if st.Member(id.Name) != nil {
			p.fail(p.semantic(cerrors.E0101, id.Pos, id.Name, id.Name))
		}
		st.Members = append(st.Members, ast.NewObject(id.Name, id.Type, ast.LinkageNone, 0, id.Pos))
		return struct{}{}
	}, token.SEMICOLON, token.COMMA, false)
}

// ParseEnum 解析 enum 关键字之后的部分
func (p *Parser) ParseEnum() ast.Type {
	tagTok, tag := p.optionalTag()
	if !p.peekIs(token.LBRACE) {
		return p.tagReference(tagTok, ast.TagEnum)
	}
	lb := p.next()

	et := &ast.EnumType{Tag: tag}
	var fwd *ast.TypeDeclType
	if tag != "" {
		var decl *ast.TypeDecl
		decl, fwd = p.tagDefinition(tagTok, ast.TagEnum)
		decl.Type = et
	} else {
		decl := &ast.TypeDecl{Type: et, Pos: lb.Pos}
		p.addIdent(decl, lb.Pos)
		p.tags = append(p.tags, decl)
	}

	next := int64(0)
	p.parseList(func() struct{} {
		nameTok := p.expectIdent()
		if d, e := p.scope.LookupLocal(nameTok.Lexeme); d != nil || e != nil {
			ce := p.semantic(cerrors.E0101, nameTok.Pos, nameTok.Lexeme, nameTok.Lexeme)
			p.labelPrevious(ce, d)
			p.fail(ce)
		}
		e := ast.Enumerator{Name: nameTok.Lexeme, Value: next}
		if p.test(token.ASSIGN) {
			value := p.parseConditional()
			v, ok := ast.ToInt(value)
			if !ok {
				p.fail(p.semantic(cerrors.E0603, nameTok.Pos, nameTok.Lexeme, nameTok.Lexeme))
			}
			e.Value, e.Explicit = v, true
		}
		next = e.Value + 1
		et.Enumerators = append(et.Enumerators, e)
		return struct{}{}
	}, token.RBRACE, token.COMMA, true)

	et.Complete = true
	if fwd != nil {
		fwd.Def = et
	}
	return et
}

func (p *Parser) optionalTag() (token.Token, string) {
	tok := p.peek()
	if tok.Kind == token.IDENT {
		p.next()
		return tok, tok.Lexeme
	}
	return tok, ""
}

// tagReference 不带成员列表的 struct s / enum e
//
// 找不到标签时在当前作用域加入前向声明。未完成的标签共享同一个
// TypeDeclType，定义出现后所有引用都能看到。
func (p *Parser) tagReference(tagTok token.Token, kind ast.TagKind) ast.Type {
	if tagTok.Kind != token.IDENT {
		p.unexpected(cerrors.E0011, tagTok)
	}
	tag := tagTok.Lexeme
	if td := p.scope.GetType(tag); td != nil {
		if td.Type.TagKind() != kind {
			ce := p.semantic(cerrors.E0102, tagTok.Pos, tag, tag)
			p.labelPrevious(ce, td)
			p.fail(ce)
		}
		if ref, ok := td.Type.(*ast.TypeDeclType); ok {
			return ref
		}
		return &ast.TypeDeclType{Tag: tag, Kind: kind, Def: td.Type}
	}

	ref := &ast.TypeDeclType{Tag: tag, Kind: kind}
	decl := &ast.TypeDecl{Type: ref, Pos: tagTok.Pos}
	p.addIdent(decl, tagTok.Pos)
	p.tags = append(p.tags, decl)
	return ref
}

// tagDefinition 为带成员列表的标签找到或建立本层的前向声明
func (p *Parser) tagDefinition(tagTok token.Token, kind ast.TagKind) (*ast.TypeDecl, *ast.TypeDeclType) {
	tag := tagTok.Lexeme
	if td := p.scope.LocalType(tag); td != nil {
		ref, forward := td.Type.(*ast.TypeDeclType)
		switch {
		case td.Type.TagKind() != kind:
			ce := p.semantic(cerrors.E0102, tagTok.Pos, tag, tag)
			p.labelPrevious(ce, td)
			p.fail(ce)
		case !forward:
			ce := p.semantic(cerrors.E0101, tagTok.Pos, tag, tag)
			p.labelPrevious(ce, td)
			p.fail(ce)
		}
		return td, ref
	}

	ref := &ast.TypeDeclType{Tag: tag, Kind: kind}
	decl := &ast.TypeDecl{Type: ref, Pos: tagTok.Pos}
	p.addIdent(decl, tagTok.Pos)
	p.tags = append(p.tags, decl)
	return decl, ref
}

// ============================================================================
// 声明符
// ============================================================================

// declarator 声明符的解析结果
type declarator struct {
	name   string
	pos    token.Position
	typ    ast.Type
	params []*ast.Object // 直接作用在名字上的参数列表
}

type declMode int

const (
	declNamed    declMode = iota // 必须有名字
	declAbstract                 // 没有名字（类型名）
	declEither                   // 参数：名字可有可无
)

// ParseDeclarator 解析带名字的声明符，返回的标识符没有链接属性
func (p *Parser) ParseDeclarator(base ast.Type) *ast.Identifier {
	d := p.parseDeclarator(base, declNamed)
	return &ast.Identifier{Name: d.name, Type: d.typ, Pos: d.pos}
}

// ParseTypeName 解析类型名：说明符加抽象声明符
func (p *Parser) ParseTypeName() ast.Type {
	savedTags := p.tags
	defer func() { p.tags = savedTags }()
	base, _ := p.declSpecIsolated()
	return p.parseDeclarator(base, declAbstract).typ
}

func (p *Parser) parseDeclarator(base ast.Type, mode declMode) declarator {
	base = p.ParsePointer(base)

	if p.peekIs(token.LPAREN) && p.isGroupedDeclarator(mode) {
		p.next()
		hole := &ast.QualType{}
		inner := p.parseDeclarator(hole, mode)
		p.Check(token.RPAREN)
		outer, params := p.parseSuffixes(base)
		if inner.typ == ast.Type(hole) {
			inner.params = params
		}
		inner.typ = substitute(inner.typ, hole, outer)
		return inner
	}

	d := declarator{pos: p.peek().Pos}
	if mode != declAbstract && p.peekIs(token.IDENT) {
		tok := p.next()
		d.name, d.pos = tok.Lexeme, tok.Pos
	} else if mode == declNamed {
		p.unexpected(cerrors.E0011, p.peek())
	}
	d.typ, d.params = p.parseSuffixes(base)
	return d
}

// isGroupedDeclarator 左括号开始的是 (declarator) 而不是参数列表
func (p *Parser) isGroupedDeclarator(mode declMode) bool {
	switch p.peek2().Kind {
	case token.STAR, token.LPAREN, token.LBRACKET:
		return true
	case token.IDENT:
		return mode != declAbstract
	}
	return false
}

// substitute 把 t 中的占位类型替换为 repl
func substitute(t, hole, repl ast.Type) ast.Type {
	if t == hole {
		return repl
	}
	switch x := t.(type) {
	case *ast.PointerType:
		x.Derived = substitute(x.Derived, hole, repl)
	case *ast.ArrayType:
		x.Derived = substitute(x.Derived, hole, repl)
	case *ast.FuncType:
		x.Derived = substitute(x.Derived, hole, repl)
	}
	return t
}

// ParsePointer 解析 * 链，每个 * 可以带限定符
func (p *Parser) ParsePointer(base ast.Type) ast.Type {
	for p.test(token.STAR) {
		var qual ast.Qualifier
		for {
			q, ok := qualifiers[p.peek().Kind]
			if !ok {
				break
			}
			p.next()
			qual |= q
		}
		base = &ast.PointerType{Derived: base, Qualifier: qual}
	}
	return base
}

// suffix 数组维度或参数列表
type suffix struct {
	array    bool
	length   int64
	complete bool

	params   []ast.Type
	objects  []*ast.Object
	variadic bool
}

// parseSuffixes 解析名字之后的 [] 与 ()，a[2][3] 是 2 个 "3 个元素的数组" 组成的数组
func (p *Parser) parseSuffixes(base ast.Type) (ast.Type, []*ast.Object) {
	var suffixes []suffix
	for {
		switch {
		case p.test(token.LBRACKET):
			suffixes = append(suffixes, p.parseArraySuffix())
		case p.test(token.LPAREN):
			suffixes = append(suffixes, p.parseParams())
		default:
			return applySuffixes(base, suffixes)
		}
	}
}

func applySuffixes(base ast.Type, suffixes []suffix) (ast.Type, []*ast.Object) {
	t := base
	for i := len(suffixes) - 1; i >= 0; i-- {
		s := suffixes[i]
		if s.array {
			t = &ast.ArrayType{Derived: t, Length: s.length, Incomplete: !s.complete}
		} else {
			t = &ast.FuncType{Derived: t, Params: s.params, Variadic: s.variadic}
		}
	}
	if len(suffixes) > 0 && !suffixes[0].array {
		return t, suffixes[0].objects
	}
	return t, nil
}

func (p *Parser) parseArraySuffix() suffix {
	if p.test(token.RBRACKET) {
		return suffix{array: true}
	}
	start := p.peek()
	length := p.ParseIntConstExpr(cerrors.E0600, start)
	if length < 0 {
		p.fail(p.errorAtToken(cerrors.E0601, start, length))
	}
	p.Check(token.RBRACKET)
	return suffix{array: true, length: length, complete: true}
}

// parseParams 解析参数列表，左括号已被消费
//
// 参数在临时的函数原型作用域中声明，同名参数是重复声明。
// f() 与 f(void) 都没有参数。
func (p *Parser) parseParams() suffix {
	s := suffix{}
	if p.test(token.RPAREN) {
		return s
	}
	if p.peekIs(token.VOID) && p.peek2().Kind == token.RPAREN {
		p.next()
		p.next()
		return s
	}

	prev := p.enterScope(ast.NewScope(ast.ScopeFuncPrototype, p.scope))
	defer p.exitScope(prev)
	savedTags := p.tags
	defer func() { p.tags = savedTags }()

	p.parseList(func() struct{} {
		if tok := p.peek(); tok.Kind == token.ELLIPSIS {
			p.next()
			if !p.peekIs(token.RPAREN) {
				p.expected(token.RPAREN.Spelling(), p.peek())
			}
			s.variadic = true
			return struct{}{}
		}
		base, spec := p.declSpecIsolated()
		d := p.parseDeclarator(base, declEither)
		typ := adjustParam(d.typ)
		obj := ast.NewObject(d.name, typ, ast.LinkageNone, spec, d.pos)
		if d.name != "" {
			p.addIdent(ast.NewObjectDecl(obj, nil), d.pos)
		}
		// 函数类型中的参数不带顶层限定符
		s.params = append(s.params, ast.Unqualified(typ))
		s.objects = append(s.objects, obj)
		return struct{}{}
	}, token.RPAREN, token.COMMA, false)
	return s
}

// adjustParam 数组与函数类型的参数调整为指针
func adjustParam(t ast.Type) ast.Type {
	switch x := t.(type) {
	case *ast.ArrayType:
		return &ast.PointerType{Derived: x.Derived}
	case *ast.FuncType:
		return &ast.PointerType{Derived: x}
	}
	return t
}

// ParseIntConstExpr 解析必须折叠为整数常量的条件表达式
func (p *Parser) ParseIntConstExpr(code string, at token.Token) int64 {
	e := p.parseConditional()
	v, ok := ast.ToInt(e)
	if !ok {
		p.fail(p.errorAtToken(code, at))
	}
	return v
}

// ============================================================================
// 列表
// ============================================================================

// parseList 解析以 delim 分隔、以 end 结束的列表，end 被消费
func parseListOf[T any](p *Parser, elem func() T, end, delim token.Kind, trailing bool) []T {
	var items []T
	if p.test(end) {
		return items
	}
	for {
		items = append(items, elem())
		if p.test(end) {
			return items
		}
		p.Check(delim)
		if trailing && p.test(end) {
			return items
		}
	}
}

func (p *Parser) parseList(elem func() struct{}, end, delim token.Kind, trailing bool) {
	parseListOf(p, elem, end, delim, trailing)
}

// ============================================================================
// 声明
// ============================================================================

// parseExternalDecl 解析文件作用域的声明或函数定义
func (p *Parser) parseExternalDecl() {
	start := p.peek()
	base := p.ParseDeclSpec()
	spec := p.takeStorage()

	p.tu.Decls = append(p.tu.Decls, p.takeTags()...)
	if p.test(token.SEMICOLON) {
		return
	}

	d := p.parseDeclarator(base, declNamed)
	if _, isFunc := d.typ.(*ast.FuncType); isFunc && p.peekIs(token.LBRACE) {
		p.parseFuncDef(d, spec)
		return
	}

	p.debugf("external declaration", zap.String("start", describe(start)))
	for {
		p.declare(d, spec)
		if p.test(token.SEMICOLON) {
			return
		}
		p.Check(token.COMMA)
		d = p.parseDeclarator(base, declNamed)
	}
}

// parseDecl 解析块作用域中的声明，返回按顺序产生的声明
func (p *Parser) parseDecl() []ast.Stmt {
	base := p.ParseDeclSpec()
	spec := p.takeStorage()

	var stmts []ast.Stmt
	for _, t := range p.takeTags() {
		stmts = append(stmts, t)
	}
	if p.test(token.SEMICOLON) {
		return stmts
	}
	p.parseList(func() struct{} {
		stmts = append(stmts, p.declare(p.parseDeclarator(base, declNamed), spec))
		return struct{}{}
	}, token.SEMICOLON, token.COMMA, false)
	return stmts
}

// declare 为一个声明符建立声明，对象可以带初始化器
func (p *Parser) declare(d declarator, spec ast.StorageSpec) ast.Decl {
	fileScope := p.scope == p.tu.Scope
	if _, isFunc := d.typ.(*ast.FuncType); isFunc {
		fd := &ast.FuncDecl{Func: ast.NewFunction(d.name, d.typ, p.funcLinkage(d.name, spec), d.params, d.pos)}
		if fileScope {
			p.addExternalFunc(fd, d.pos)
		} else {
			if prev, _ := p.scope.LookupLocal(d.name); prev != nil {
				if _, ok := prev.(*ast.FuncDecl); !ok {
					p.redeclared(&ast.RedeclarationError{Name: d.name, Previous: prev}, d.pos)
				}
			}
			p.addIdent(fd, d.pos)
		}
		return fd
	}

	linkage := ast.LinkageNone
	switch {
	case fileScope && spec&ast.SpecStatic != 0:
		linkage = ast.LinkageInternal
	case fileScope || spec&ast.SpecExtern != 0:
		linkage = ast.LinkageExternal
	}
	decl := ast.NewObjectDecl(ast.NewObject(d.name, d.typ, linkage, spec, d.pos), nil)
	if fileScope {
		if err := p.tu.AddExternalDecl(decl); err != nil {
			p.redeclared(err, d.pos)
		}
	} else {
		p.addIdent(decl, d.pos)
	}

	if p.test(token.ASSIGN) {
		decl.Init = p.ParseInitializer(ast.IndexOffset(0))
	}
	return decl
}

// funcLinkage 函数的链接属性：static 为内部链接，否则沿用可见的同名声明
func (p *Parser) funcLinkage(name string, spec ast.StorageSpec) ast.Linkage {
	if spec&ast.SpecStatic != 0 {
		return ast.LinkageInternal
	}
	if prev := p.scope.GetFunc(name); prev != nil {
		return prev.Func.Linkage
	}
	return ast.LinkageExternal
}

// addExternalFunc 按合并规则加入文件作用域，失败时报告对应的错误
func (p *Parser) addExternalFunc(fd *ast.FuncDecl, at token.Position) *ast.FuncDecl {
	kept, err := p.tu.AddExternalDef(fd)
	if err == nil {
		return kept
	}
	var prev ast.Decl
	code := cerrors.E0101
	var me *ast.MergeError
	var re *ast.RedeclarationError
	switch {
	case errors.As(err, &me):
		prev = me.Previous
		code = cerrors.E0102
		if errors.Is(err, ast.ErrRedefinition) {
			code = cerrors.E0103
		}
	case errors.As(err, &re):
		prev = re.Previous
	}
	ce := p.semantic(code, at, fd.Func.Name, fd.Func.Name)
	p.labelPrevious(ce, prev)
	p.fail(ce)
	return nil
}

// parseFuncDef 解析函数定义
//
// 先以原型的形式加入文件作用域，函数体中因此可以递归调用；
// 函数体解析完成后再按合并规则把函数体交给保留下来的声明。
func (p *Parser) parseFuncDef(d declarator, spec ast.StorageSpec) {
	linkage := p.funcLinkage(d.name, spec)
	proto := &ast.FuncDecl{Func: ast.NewFunction(d.name, d.typ, linkage, d.params, d.pos)}
	kept := p.addExternalFunc(proto, d.pos)
	if kept.Func.IsDefined() {
		ce := p.semantic(cerrors.E0103, d.pos, d.name, d.name)
		p.labelPrevious(ce, kept)
		p.fail(ce)
	}

	lb := p.Check(token.LBRACE)
	body := ast.NewCompoundStmt(ast.ScopeFunc, p.scope, lb.Pos)
	prev := p.enterScope(body.Scope)
	for _, param := range d.params {
		if param.Name != "" {
			p.addIdent(ast.NewObjectDecl(param, nil), param.Pos)
		}
	}
	p.parseBlockItems(body)
	p.exitScope(prev)

	def := &ast.FuncDecl{Func: ast.NewFunction(d.name, d.typ, linkage, d.params, d.pos)}
	def.Func.BodyInit(body)
	p.addExternalFunc(def, d.pos)

	p.debugf("function definition",
		zap.String("name", d.name),
		zap.Int("params", len(d.params)),
		zap.Int("stmts", len(body.Stmts)))
}

// ============================================================================
// 初始化器
// ============================================================================

// ParseInitializer 解析初始化器，offset 是它在外层列表中的位置
//
// 指示符 .m = v 与 [i] = v 产生以该位置为键的初始化器；连续的指示符
// .a.b = v 产生嵌套的 InitializerList。未指定位置的元素接在上一个元素之后。
func (p *Parser) ParseInitializer(offset ast.Offset) ast.Initializer {
	if !p.test(token.LBRACE) {
		return &ast.BaseInitializer{Offset: offset, Expr: p.parseAssign()}
	}

	list := &ast.InitializerList{Offset: offset}
	index := int64(0)
	p.parseList(func() struct{} {
		var init ast.Initializer
		if p.peekIs(token.DOT) || p.peekIs(token.LBRACKET) {
			init = p.parseDesignation()
			if at := init.At(); !at.IsMember() {
				index = at.Index
			}
		} else {
			init = p.ParseInitializer(ast.IndexOffset(index))
		}
		index++
		list.List = append(list.List, init)
		return struct{}{}
	}, token.RBRACE, token.COMMA, true)
	return list
}

// parseDesignation 解析指示符列表、= 与其后的初始化器
func (p *Parser) parseDesignation() ast.Initializer {
	var offsets []ast.Offset
	for {
		if p.test(token.DOT) {
			offsets = append(offsets, ast.MemberOffset(p.expectIdent().Lexeme))
			continue
		}
		if p.test(token.LBRACKET) {
			start := p.peek()
			i := p.ParseIntConstExpr(cerrors.E0604, start)
			p.Check(token.RBRACKET)
			offsets = append(offsets, ast.IndexOffset(i))
			continue
		}
		break
	}
	p.Check(token.ASSIGN)

	init := p.ParseInitializer(offsets[len(offsets)-1])
	for i := len(offsets) - 2; i >= 0; i-- {
		init = &ast.InitializerList{Offset: offsets[i], List: []ast.Initializer{init}}
	}
	return init
}
