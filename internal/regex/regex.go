// Package regex 把词法规则中的正则表达式解析为二叉运算树
//
// 支持的语法：
//   - 选择 a|b
//   - 连接（输入中不出现显式运算符，由解析器补出）
//   - 量词 * + ? {m} {m,} {m,n}，只支持贪婪语义
//   - 字符类 [...]、[^...]，可包含区间 a-z 与 \d 一类转义
//   - 转义字符 \x、任意字符 .
//   - 分组 (...) 与非捕获分组 (?:...)，两者都不捕获
package regex

import "fmt"

// Kind 运算树节点种类
type Kind int

const (
	Char         Kind = iota // 叶子：单个字面字符、转义、字符类或 .
	And                      // 连接
	Alternative              // 选择
	Quantifier               // 量词，Left 为被修饰的子树
	PassiveGroup             // 分组，Left 为组内子树
)

func (k Kind) String() string {
	switch k {
	case Char:
		return "Char"
	case And:
		return "And"
	case Alternative:
		return "Alternative"
	case Quantifier:
		return "Quantifier"
	case PassiveGroup:
		return "PassiveGroup"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Unbounded 表示量词没有上界
const Unbounded = -1

// Node 运算树节点
type Node struct {
	Kind  Kind
	Text  string // Char 叶子的原始文本；Quantifier 的原始写法
	Left  *Node
	Right *Node
	Min   int // 仅 Quantifier 使用
	Max   int // 仅 Quantifier 使用，Unbounded 表示无上界
}

// IsLiteral 判断节点是否为未转义的单个字面字符
func (n *Node) IsLiteral() bool {
	return n != nil && n.Kind == Char && len(n.Text) == 1 && n.Text != "."
}

// String 以前缀形式输出运算树，便于调试和测试
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case Char:
		return n.Text
	case Quantifier:
		return fmt.Sprintf("%s(%s)", n.Text, n.Left)
	case PassiveGroup:
		return fmt.Sprintf("(?:%s)", n.Left)
	case And:
		return fmt.Sprintf("&(%s,%s)", n.Left, n.Right)
	case Alternative:
		return fmt.Sprintf("|(%s,%s)", n.Left, n.Right)
	}
	return "?"
}

// Literals 收集运算树中出现的所有未转义字面字符，按首次出现的顺序返回
func Literals(n *Node) []byte {
	var out []byte
	seen := make(map[byte]bool)
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.IsLiteral() {
			c := n.Text[0]
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(n)
	return out
}

// Error 正则表达式语法错误
type Error struct {
	Pattern string // 出错的正则表达式
	Offset  int    // 出错的字节偏移
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("regex %q at offset %d: %s", e.Pattern, e.Offset, e.Message)
}
