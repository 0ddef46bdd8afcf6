package nfa

import (
	"fmt"
	"strings"
)

// ============================================================================
// 特殊模式：. \d \D \s \S \w \W 以及转义字面字符
// ============================================================================

// specialClass 特殊模式种类
type specialClass uint8

const (
	specialLiteral  specialClass = iota // 转义后的单个字符，如 \( \t \0
	specialAny                          // . 匹配除换行外的任意字符
	specialDigit                        // \d
	specialNonDigit                     // \D
	specialSpace                        // \s
	specialNonSpace                     // \S
	specialWord                         // \w
	specialNonWord                      // \W
)

// special 只消耗一个字符的特殊模式匹配器
type special struct {
	class specialClass
	char  byte // specialLiteral 使用
}

// parseSpecial 解析 "." 或以反斜杠开头的两字符转义
func parseSpecial(text string) (special, error) {
	if text == "." {
		return special{class: specialAny}, nil
	}
	if len(text) != 2 || text[0] != '\\' {
		return special{}, fmt.Errorf("invalid special pattern %q", text)
	}
	switch c := text[1]; c {
	case 'd':
		return special{class: specialDigit}, nil
	case 'D':
		return special{class: specialNonDigit}, nil
	case 's':
		return special{class: specialSpace}, nil
	case 'S':
		return special{class: specialNonSpace}, nil
	case 'w':
		return special{class: specialWord}, nil
	case 'W':
		return special{class: specialNonWord}, nil
	default:
		return special{class: specialLiteral, char: unescape(c)}, nil
	}
}

// unescape 返回转义字符代表的字节
func unescape(c byte) byte {
	switch c {
	case 't':
		return '\t'
	case 'n':
		return '\n'
	case 'v':
		return '\v'
	case 'f':
		return '\f'
	case 'r':
		return '\r'
	case '0':
		return 0
	}
	return c
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r'
}

func isWordByte(c byte) bool {
	return c == '_' || isDigitByte(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Match 判断特殊模式是否接受字符 c
func (s special) Match(c byte) bool {
	switch s.class {
	case specialLiteral:
		return c == s.char
	case specialAny:
		return c != '\n'
	case specialDigit:
		return isDigitByte(c)
	case specialNonDigit:
		return !isDigitByte(c)
	case specialSpace:
		return isSpaceByte(c)
	case specialNonSpace:
		return !isSpaceByte(c)
	case specialWord:
		return isWordByte(c)
	case specialNonWord:
		return !isWordByte(c)
	}
	return false
}

func (s special) String() string {
	switch s.class {
	case specialLiteral:
		return fmt.Sprintf("%q", s.char)
	case specialAny:
		return "."
	case specialDigit:
		return `\d`
	case specialNonDigit:
		return `\D`
	case specialSpace:
		return `\s`
	case specialNonSpace:
		return `\S`
	case specialWord:
		return `\w`
	case specialNonWord:
		return `\W`
	}
	return "?"
}

// isSet 判断特殊模式是否代表一个字符集合（而不是单个字符）
func (s special) isSet() bool {
	return s.class != specialLiteral
}

// ============================================================================
// 字符类 [...] / [^...]
// ============================================================================

// interval 闭区间 [lo, hi]
type interval struct {
	lo, hi byte
}

// charClass 字符类匹配器，在构造自动机时解析
type charClass struct {
	text      string
	negated   bool
	intervals []interval
	specials  []special
}

// parseClass 解析形如 [a-z\d_] 或 [^"\n] 的字符类
func parseClass(text string) (*charClass, error) {
	if len(text) < 2 || text[0] != '[' || text[len(text)-1] != ']' {
		return nil, fmt.Errorf("invalid character class %q", text)
	}
	cls := &charClass{text: text}
	body := text[1 : len(text)-1]
	if strings.HasPrefix(body, "^") {
		cls.negated = true
		body = body[1:]
	}
	if body == "" {
		return nil, fmt.Errorf("empty character class %q", text)
	}

	i := 0
	for i < len(body) {
		lo, n, err := classAtom(body, i)
		if err != nil {
			return nil, fmt.Errorf("character class %q: %w", text, err)
		}
		if lo.isSet() {
			cls.specials = append(cls.specials, lo)
			i += n
			continue
		}
		i += n

		// a-z 形式的区间；末尾的 - 是普通字符
		if i+1 < len(body) && body[i] == '-' {
			hi, m, err := classAtom(body, i+1)
			if err != nil {
				return nil, fmt.Errorf("character class %q: %w", text, err)
			}
			if hi.isSet() {
				return nil, fmt.Errorf("character class %q: range end cannot be a class", text)
			}
			if hi.char < lo.char {
				return nil, fmt.Errorf("character class %q: range %c-%c out of order", text, lo.char, hi.char)
			}
			cls.intervals = append(cls.intervals, interval{lo: lo.char, hi: hi.char})
			i += 1 + m
			continue
		}
		cls.intervals = append(cls.intervals, interval{lo: lo.char, hi: lo.char})
	}
	return cls, nil
}

// classAtom 读取字符类中的一个成员，返回成员和消耗的字节数
func classAtom(body string, i int) (special, int, error) {
	if body[i] != '\\' {
		return special{class: specialLiteral, char: body[i]}, 1, nil
	}
	if i+1 >= len(body) {
		return special{}, 0, fmt.Errorf("trailing backslash")
	}
	s, err := parseSpecial(body[i : i+2])
	return s, 2, err
}

// Match 判断字符类是否接受字符 c
func (c *charClass) Match(ch byte) bool {
	in := false
	for _, iv := range c.intervals {
		if ch >= iv.lo && ch <= iv.hi {
			in = true
			break
		}
	}
	if !in {
		for _, s := range c.specials {
			if s.Match(ch) {
				in = true
				break
			}
		}
	}
	return in != c.negated
}

func (c *charClass) String() string {
	return c.text
}
