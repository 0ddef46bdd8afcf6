package ast

import (
	"github.com/segmentio/encoding/json"
)

// ============================================================================
// JSON 输出
// ============================================================================
//
// 节点转换为 {"node": 种类, ...字段} 形式的对象。TypeDeclType 只输出标签，
// 不展开它指向的定义，自引用的结构体因此可以输出。

type jsonNode map[string]interface{}

// MarshalJSON 输出整个翻译单元
func (tu *TranslationUnit) MarshalJSON() ([]byte, error) {
	return json.Marshal(unitJSON(tu))
}

// DumpJSON 输出带缩进的 JSON
func DumpJSON(tu *TranslationUnit) ([]byte, error) {
	return json.MarshalIndent(unitJSON(tu), "", "  ")
}

func unitJSON(tu *TranslationUnit) jsonNode {
	decls := make([]interface{}, len(tu.Decls))
	for i, d := range tu.Decls {
		decls[i] = stmtJSON(d)
	}
	return jsonNode{"node": "TranslationUnit", "file": tu.Filename, "decls": decls}
}

// TypeJSON 类型的 JSON 形式
func TypeJSON(t Type) interface{} {
	switch x := t.(type) {
	case nil:
		return nil
	case *QualType:
		n := jsonNode{"node": "QualType", "specifier": x.Specifier.String()}
		if x.Qualifier != 0 {
			n["qualifier"] = x.Qualifier.String()
		}
		return n
	case *PointerType:
		n := jsonNode{"node": "PointerType", "to": TypeJSON(x.Derived)}
		if x.Qualifier != 0 {
			n["qualifier"] = x.Qualifier.String()
		}
		return n
	case *ArrayType:
		n := jsonNode{"node": "ArrayType", "of": TypeJSON(x.Derived)}
		if !x.Incomplete {
			n["length"] = x.Length
		}
		return n
	case *FuncType:
		params := make([]interface{}, len(x.Params))
		for i, p := range x.Params {
			params[i] = TypeJSON(p)
		}
		return jsonNode{"node": "FuncType", "returns": TypeJSON(x.Derived), "params": params, "variadic": x.Variadic}
	case *StructUnionType:
		members := make([]interface{}, len(x.Members))
		for i, m := range x.Members {
			members[i] = jsonNode{"name": m.Name, "type": TypeJSON(m.Type)}
		}
		return jsonNode{"node": "StructUnionType", "kind": x.TagKind().String(), "tag": x.Tag, "members": members, "complete": x.Complete}
	case *EnumType:
		enums := make([]interface{}, len(x.Enumerators))
		for i, e := range x.Enumerators {
			enums[i] = jsonNode{"name": e.Name, "value": e.Value}
		}
		return jsonNode{"node": "EnumType", "tag": x.Tag, "enumerators": enums, "complete": x.Complete}
	case *TypeDeclType:
		return jsonNode{"node": "TypeDeclType", "kind": x.Kind.String(), "tag": x.Tag, "complete": x.IsComplete()}
	}
	return nil
}

func objectJSON(o *Object) jsonNode {
	return jsonNode{
		"name":    o.Name,
		"type":    TypeJSON(o.Type),
		"linkage": o.Linkage.String(),
		"storage": o.Storage.String(),
	}
}

func initJSON(i Initializer) interface{} {
	switch x := i.(type) {
	case *BaseInitializer:
		return jsonNode{"node": "BaseInitializer", "offset": x.Offset.String(), "expr": exprJSON(x.Expr)}
	case *InitializerList:
		list := make([]interface{}, len(x.List))
		for j, e := range x.List {
			list[j] = initJSON(e)
		}
		return jsonNode{"node": "InitializerList", "offset": x.Offset.String(), "list": list}
	}
	return nil
}

func exprJSON(e Expr) interface{} {
	if e == nil {
		return nil
	}
	op := e.Token().Kind.String()
	switch x := e.(type) {
	case *UnaryExpr:
		return jsonNode{"node": "UnaryExpr", "op": op, "operand": exprJSON(x.Operand), "postfix": x.Postfix}
	case *BinaryExpr:
		return jsonNode{"node": "BinaryExpr", "op": op, "left": exprJSON(x.Left), "right": exprJSON(x.Right)}
	case *ConditionalExpr:
		return jsonNode{"node": "ConditionalExpr", "cond": exprJSON(x.Cond), "then": exprJSON(x.Then), "else": exprJSON(x.Else)}
	case *ArraySubscriptExpr:
		return jsonNode{"node": "ArraySubscriptExpr", "array": exprJSON(x.Array), "index": exprJSON(x.Index)}
	case *FuncCallExpr:
		args := make([]interface{}, len(x.Args))
		for i, a := range x.Args {
			args[i] = exprJSON(a)
		}
		return jsonNode{"node": "FuncCallExpr", "func": exprJSON(x.Func), "args": args}
	case *MemberExpr:
		return jsonNode{"node": "MemberExpr", "op": op, "base": exprJSON(x.Base), "member": x.Member}
	case *CastExpr:
		return jsonNode{"node": "CastExpr", "to": TypeJSON(x.To), "operand": exprJSON(x.Operand)}
	case *SizeofTypeExpr:
		return jsonNode{"node": "SizeofTypeExpr", "of": TypeJSON(x.Of)}
	case *Constant:
		n := jsonNode{"node": "Constant", "kind": x.Kind.String()}
		switch x.Kind {
		case ConstFloat:
			n["value"] = x.Float
		case ConstString:
			n["value"] = x.Str
		default:
			n["value"] = x.Int
		}
		return n
	case *ObjectExpr:
		return jsonNode{"node": "ObjectExpr", "name": x.Obj.Name}
	case *FuncRefExpr:
		return jsonNode{"node": "FuncRefExpr", "name": x.Func.Name}
	case *EnumConstExpr:
		return jsonNode{"node": "EnumConstExpr", "name": x.Name, "value": x.Value}
	}
	return nil
}

func stmtsJSON(stmts []Stmt) []interface{} {
	out := make([]interface{}, len(stmts))
	for i, s := range stmts {
		out[i] = stmtJSON(s)
	}
	return out
}

func bodyJSON(c *CompoundStmt) interface{} {
	if c == nil {
		return nil
	}
	return jsonNode{"node": "CompoundStmt", "scope": c.Scope.Kind.String(), "stmts": stmtsJSON(c.Stmts)}
}

func stmtJSON(s Stmt) interface{} {
	switch x := s.(type) {
	case nil:
		return nil
	case *ObjectDecl:
		n := jsonNode{"node": "ObjectDecl", "object": objectJSON(x.Obj)}
		if x.Init != nil {
			n["init"] = initJSON(x.Init)
		}
		return n
	case *FuncDecl:
		params := make([]interface{}, len(x.Func.Params))
		for i, p := range x.Func.Params {
			params[i] = objectJSON(p)
		}
		return jsonNode{
			"node":    "FuncDecl",
			"name":    x.Func.Name,
			"type":    TypeJSON(x.Func.Type),
			"linkage": x.Func.Linkage.String(),
			"params":  params,
			"body":    bodyJSON(x.Func.Body),
		}
	case *TypeDecl:
		return jsonNode{"node": "TypeDecl", "type": TypeJSON(x.Type)}
	case *ExprStmt:
		return jsonNode{"node": "ExprStmt", "expr": exprJSON(x.Expr)}
	case *CompoundStmt:
		return bodyJSON(x)
	case *IfStmt:
		return jsonNode{"node": "IfStmt", "cond": exprJSON(x.Cond), "then": stmtsJSON(x.Stmts), "else": bodyJSON(x.Else)}
	case *SwitchStmt:
		return jsonNode{"node": "SwitchStmt", "cond": exprJSON(x.Cond), "body": stmtsJSON(x.Stmts)}
	case *WhileStmt:
		return jsonNode{"node": "WhileStmt", "cond": exprJSON(x.Cond), "doWhile": x.DoWhile, "body": stmtsJSON(x.Stmts)}
	case *ForStmt:
		return jsonNode{
			"node":  "ForStmt",
			"init":  stmtsJSON(x.Init),
			"cond":  exprJSON(x.Cond),
			"after": exprJSON(x.After),
			"body":  stmtsJSON(x.Stmts),
		}
	case *LabelStmt:
		n := jsonNode{"node": "LabelStmt", "kind": x.Kind.String(), "stmt": stmtJSON(x.Stmt)}
		switch x.Kind {
		case LabelCommon:
			n["name"] = x.Name
		case LabelCase:
			n["value"] = x.Value
		}
		return n
	case *JumpStmt:
		n := jsonNode{"node": "JumpStmt", "kind": x.Tok.Kind.String()}
		if x.Label != "" {
			n["label"] = x.Label
		}
		return n
	case *ReturnStmt:
		return jsonNode{"node": "ReturnStmt", "value": exprJSON(x.Value)}
	}
	return nil
}
