package regex

import "strconv"

// ============================================================================
// 正则表达式内部的词法单元
// ============================================================================

// TokenKind 正则表达式词法单元种类
type TokenKind int

const (
	TokLiteral      TokenKind = iota // 普通字面字符
	TokAny                           // .
	TokEscape                        // \x
	TokClass                         // [...]
	TokAlternative                   // |
	TokQuantifier                    // * + ? {m,n}
	TokGroup                         // (...)
	TokPassiveGroup                  // (?:...)
)

// Token 正则表达式词法单元
//
// 分组的 Text 保存括号内的文本，由解析器递归处理；其余种类保存原始写法。
type Token struct {
	Kind TokenKind
	Text string
	Min  int
	Max  int
}

// NextTokenInRegex 从 pattern 的 pos 处读取下一个词法单元，返回单元和之后的位置
func NextTokenInRegex(pattern string, pos int) (Token, int, error) {
	c := pattern[pos]
	switch c {
	case '|':
		return Token{Kind: TokAlternative, Text: "|"}, pos + 1, nil
	case '*':
		return Token{Kind: TokQuantifier, Text: "*", Min: 0, Max: Unbounded}, pos + 1, nil
	case '+':
		return Token{Kind: TokQuantifier, Text: "+", Min: 1, Max: Unbounded}, pos + 1, nil
	case '?':
		return Token{Kind: TokQuantifier, Text: "?", Min: 0, Max: 1}, pos + 1, nil
	case '{':
		tok, next, ok, err := scanBraces(pattern, pos)
		if err != nil {
			return Token{}, pos, err
		}
		if ok {
			return tok, next, nil
		}
		// 不是合法的量词写法，按字面字符处理
		return Token{Kind: TokLiteral, Text: "{"}, pos + 1, nil
	case '.':
		return Token{Kind: TokAny, Text: "."}, pos + 1, nil
	case '\\':
		if pos+1 >= len(pattern) {
			return Token{}, pos, &Error{Pattern: pattern, Offset: pos, Message: "trailing backslash"}
		}
		return Token{Kind: TokEscape, Text: pattern[pos : pos+2]}, pos + 2, nil
	case '[':
		end, err := scanClass(pattern, pos)
		if err != nil {
			return Token{}, pos, err
		}
		return Token{Kind: TokClass, Text: pattern[pos : end+1]}, end + 1, nil
	case '(':
		end, err := scanGroup(pattern, pos)
		if err != nil {
			return Token{}, pos, err
		}
		inner := pattern[pos+1 : end]
		if len(inner) >= 2 && inner[0] == '?' && inner[1] == ':' {
			return Token{Kind: TokPassiveGroup, Text: inner[2:]}, end + 1, nil
		}
		return Token{Kind: TokGroup, Text: inner}, end + 1, nil
	case ')':
		return Token{}, pos, &Error{Pattern: pattern, Offset: pos, Message: "unmatched ')'"}
	}
	return Token{Kind: TokLiteral, Text: pattern[pos : pos+1]}, pos + 1, nil
}

// scanBraces 尝试把 pos 处的 { 解析为 {m}、{m,} 或 {m,n}
func scanBraces(pattern string, pos int) (Token, int, bool, error) {
	i := pos + 1
	start := i
	for i < len(pattern) && isDigit(pattern[i]) {
		i++
	}
	if i == start {
		return Token{}, pos, false, nil
	}
	lo, _ := strconv.Atoi(pattern[start:i])
	hi := lo
	if i < len(pattern) && pattern[i] == ',' {
		i++
		start = i
		for i < len(pattern) && isDigit(pattern[i]) {
			i++
		}
		if i == start {
			hi = Unbounded
		} else {
			hi, _ = strconv.Atoi(pattern[start:i])
		}
	}
	if i >= len(pattern) || pattern[i] != '}' {
		return Token{}, pos, false, nil
	}
	if hi != Unbounded && hi < lo {
		return Token{}, pos, false, &Error{Pattern: pattern, Offset: pos, Message: "quantifier upper bound below lower bound"}
	}
	return Token{Kind: TokQuantifier, Text: pattern[pos : i+1], Min: lo, Max: hi}, i + 1, true, nil
}

// scanClass 返回与 pos 处 [ 配对的 ] 的位置
//
// 紧跟在 [ 或 [^ 之后的 ] 视为普通成员。
func scanClass(pattern string, pos int) (int, error) {
	i := pos + 1
	if i < len(pattern) && pattern[i] == '^' {
		i++
	}
	if i < len(pattern) && pattern[i] == ']' {
		i++
	}
	for i < len(pattern) {
		switch pattern[i] {
		case '\\':
			i += 2
			continue
		case ']':
			return i, nil
		}
		i++
	}
	return 0, &Error{Pattern: pattern, Offset: pos, Message: "missing ']'"}
}

// scanGroup 返回与 pos 处 ( 配对的 ) 的位置，跳过转义和字符类
func scanGroup(pattern string, pos int) (int, error) {
	depth := 0
	for i := pos; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '[':
			end, err := scanClass(pattern, i)
			if err != nil {
				return 0, err
			}
			i = end
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, &Error{Pattern: pattern, Offset: pos, Message: "missing ')'"}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ============================================================================
// 解析器
// ============================================================================

// Parse 把正则表达式解析为运算树
//
// 采用调度场算法：运算符栈保存尚未归约的选择与连接，操作数栈保存子树。
// 量词是后缀运算符且优先级最高，读到时直接修饰操作数栈顶。
// 语法错误时返回 nil 和 *Error。
func Parse(pattern string) (*Node, error) {
	p := &parser{pattern: pattern}
	return p.parse(pattern, 0)
}

type parser struct {
	pattern string // 完整的正则表达式，用于错误信息
}

// precedence 返回二元运算符的优先级：选择 < 连接
func precedence(k Kind) int {
	if k == Alternative {
		return 1
	}
	return 2
}

// parse 解析 text，base 是 text 在完整表达式中的偏移
func (p *parser) parse(text string, base int) (*Node, error) {
	if text == "" {
		return nil, &Error{Pattern: p.pattern, Offset: base, Message: "empty expression"}
	}

	var operands []*Node
	var operators []Kind
	lastWasOperand := false

	reduce := func(offset int) error {
		op := operators[len(operators)-1]
		operators = operators[:len(operators)-1]
		if len(operands) < 2 {
			return &Error{Pattern: p.pattern, Offset: offset, Message: "operator is missing an operand"}
		}
		right := operands[len(operands)-1]
		left := operands[len(operands)-2]
		operands = append(operands[:len(operands)-2], &Node{Kind: op, Left: left, Right: right})
		return nil
	}
	pushOperator := func(op Kind, offset int) error {
		for len(operators) > 0 && precedence(operators[len(operators)-1]) >= precedence(op) {
			if err := reduce(offset); err != nil {
				return err
			}
		}
		operators = append(operators, op)
		return nil
	}

	pos := 0
	for pos < len(text) {
		tok, next, err := NextTokenInRegex(text, pos)
		if err != nil {
			return nil, p.rebase(err, base)
		}
		offset := base + pos

		switch tok.Kind {
		case TokAlternative:
			if !lastWasOperand {
				return nil, &Error{Pattern: p.pattern, Offset: offset, Message: "alternation is missing its left operand"}
			}
			if err := pushOperator(Alternative, offset); err != nil {
				return nil, err
			}
			lastWasOperand = false

		case TokQuantifier:
			if !lastWasOperand {
				return nil, &Error{Pattern: p.pattern, Offset: offset, Message: "quantifier has nothing to repeat"}
			}
			top := operands[len(operands)-1]
			operands[len(operands)-1] = &Node{Kind: Quantifier, Text: tok.Text, Left: top, Min: tok.Min, Max: tok.Max}

		default:
			var operand *Node
			switch tok.Kind {
			case TokGroup, TokPassiveGroup:
				innerBase := base + pos + 1
				if tok.Kind == TokPassiveGroup {
					innerBase += 2
				}
				inner, err := p.parse(tok.Text, innerBase)
				if err != nil {
					return nil, err
				}
				operand = &Node{Kind: PassiveGroup, Left: inner}
			default:
				operand = &Node{Kind: Char, Text: tok.Text}
			}
			if lastWasOperand {
				if err := pushOperator(And, offset); err != nil {
					return nil, err
				}
			}
			operands = append(operands, operand)
			lastWasOperand = true
		}
		pos = next
	}

	if !lastWasOperand {
		return nil, &Error{Pattern: p.pattern, Offset: base + len(text), Message: "alternation is missing its right operand"}
	}
	for len(operators) > 0 {
		if err := reduce(base + len(text)); err != nil {
			return nil, err
		}
	}
	if len(operands) != 1 {
		return nil, &Error{Pattern: p.pattern, Offset: base, Message: "expression does not reduce to a single tree"}
	}
	return operands[0], nil
}

// rebase 把子表达式中的错误改写为完整表达式中的偏移
func (p *parser) rebase(err error, base int) error {
	if e, ok := err.(*Error); ok {
		return &Error{Pattern: p.pattern, Offset: base + e.Offset, Message: e.Message}
	}
	return err
}
