package parser

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ============================================================================
// 字面量解码
// ============================================================================

// parseIntLiteral 解析整数常量，0x 十六进制，0 开头八进制
func parseIntLiteral(lexeme string) (int64, bool) {
	s := strings.TrimRight(lexeme, "uUlL")
	if len(s) > 1 && s[0] == '0' && s[1] != 'x' && s[1] != 'X' {
		v, err := strconv.ParseUint(s[1:], 8, 64)
		return int64(v), err == nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	return int64(v), err == nil
}

// parseFloatLiteral 解析浮点常量，溢出时得到无穷大
func parseFloatLiteral(lexeme string) (float64, bool) {
	s := strings.TrimRight(lexeme, "fFlL")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// parseCharLiteral 解析字符常量
//
// 普通字符常量的多个字符按字节依次拼接（'ab' == 'a'<<8 | 'b'），
// 带 L u U 前缀的取第一个字符的码点。
func parseCharLiteral(lexeme string) (int64, bool) {
	wide := false
	if i := strings.IndexByte(lexeme, '\''); i > 0 {
		wide = true
		lexeme = lexeme[i:]
	}
	if len(lexeme) < 3 || lexeme[len(lexeme)-1] != '\'' {
		return 0, false
	}
	b, ok := unescape(lexeme[1 : len(lexeme)-1])
	if !ok || len(b) == 0 {
		return 0, false
	}
	if wide {
		r, _ := utf8.DecodeRune(b)
		return int64(r), true
	}
	var v int64
	for _, c := range b {
		v = v<<8 | int64(c)
	}
	if len(b) == 1 {
		v = int64(int8(b[0])) // char 按有符号处理
	}
	return v, true
}

// parseStringBody 去掉前缀与引号并处理转义
func parseStringBody(lexeme string) ([]byte, bool) {
	i := strings.IndexByte(lexeme, '"')
	if i < 0 || len(lexeme) < i+2 || lexeme[len(lexeme)-1] != '"' {
		return nil, false
	}
	return unescape(lexeme[i+1 : len(lexeme)-1])
}

// unescape 处理 C 转义序列
//
// 八进制与 \x 转义不超过 0xff 时写入单个字节，否则按 UTF-8 编码；
// \u 与 \U 总是按 UTF-8 编码。未知的转义保留转义后的字符。
func unescape(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(s) {
			return nil, false
		}
		switch c = s[i]; c {
		case 'a':
			out = append(out, '\a')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'v':
			out = append(out, '\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i:j], 8, 32)
			out = appendCode(out, rune(v))
			i = j - 1
		case 'x':
			j := i + 1
			for j < len(s) && isHex(s[j]) {
				j++
			}
			if j == i+1 {
				return nil, false
			}
			v, err := strconv.ParseUint(s[i+1:j], 16, 32)
			if err != nil {
				return nil, false
			}
			out = appendCode(out, rune(v))
			i = j - 1
		case 'u', 'U':
			n := 4
			if c == 'U' {
				n = 8
			}
			if i+1+n > len(s) {
				return nil, false
			}
			v, err := strconv.ParseUint(s[i+1:i+1+n], 16, 32)
			if err != nil {
				return nil, false
			}
			out = utf8.AppendRune(out, rune(v))
			i += n
		default:
			out = append(out, c)
		}
	}
	return out, true
}

func appendCode(out []byte, r rune) []byte {
	if r <= 0xff {
		return append(out, byte(r))
	}
	return utf8.AppendRune(out, r)
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
