package lexer

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/crypto/blake2b"

	cerrors "github.com/tangzhangming/ccfront/internal/errors"
	"github.com/tangzhangming/ccfront/internal/nfa"
	"github.com/tangzhangming/ccfront/internal/token"
)

// ============================================================================
// 内置 C 规则表
// ============================================================================
//
// 顺序即优先级：关键字在标识符之前，长度相同时关键字胜出。

const (
	identPattern  = `[a-zA-Z_][a-zA-Z0-9_]*`
	floatPattern  = `(([0-9]+\.[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?|[0-9]+[eE][+-]?[0-9]+)[fFlL]?`
	intPattern    = `(0[xX][0-9a-fA-F]+|0[0-7]*|[1-9][0-9]*)([uU](l|L|ll|LL)?|(l|L|ll|LL)[uU]?)?`
	charPattern   = `[LuU]?'`
	stringPattern = `(u8|[LuU])?"`
	delimPattern  = `[ \t\r\n\v\f]+`
)

// DefaultRules 返回内置的 C 规则表
func DefaultRules() []nfa.Rule {
	kw := token.Keywords()
	names := make([]string, 0, len(kw))
	for name := range kw {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return kw[names[i]] < kw[names[j]] })

	rules := make([]nfa.Rule, 0, len(names)+len(punctuators)+8)
	for _, name := range names {
		rules = append(rules, nfa.Rule{Pattern: name, Kind: kw[name]})
	}
	rules = append(rules,
		nfa.Rule{Pattern: identPattern, Kind: token.IDENT},
		nfa.Rule{Pattern: floatPattern, Kind: token.FLOAT_CONST},
		nfa.Rule{Pattern: intPattern, Kind: token.INT_CONST},
		nfa.Rule{Pattern: charPattern, Kind: token.CHAR_CONST},
		nfa.Rule{Pattern: stringPattern, Kind: token.STRING_LITERAL},
		nfa.Rule{Pattern: `//`, Kind: token.LINE_COMMENT},
		nfa.Rule{Pattern: `/\*`, Kind: token.BLOCK_COMMENT},
		nfa.Rule{Pattern: delimPattern, Kind: token.DELIM},
	)
	for _, k := range punctuators {
		rules = append(rules, nfa.Rule{Pattern: QuoteMeta(k.Spelling()), Kind: k})
	}
	return rules
}

// punctuators 内置规则表中的标点符号
var punctuators = []token.Kind{
	token.LPAREN, token.RPAREN, token.LBRACKET, token.RBRACKET, token.LBRACE, token.RBRACE,
	token.COMMA, token.SEMICOLON, token.COLON, token.QUESTION, token.DOT, token.ARROW,
	token.ELLIPSIS, token.HASH, token.HASH_HASH,
	token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
	token.INCREMENT, token.DECREMENT,
	token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE,
	token.AND, token.OR, token.NOT,
	token.BIT_AND, token.BIT_OR, token.BIT_XOR, token.BIT_NOT,
	token.LEFT_SHIFT, token.RIGHT_SHIFT,
	token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
	token.SLASH_ASSIGN, token.PERCENT_ASSIGN, token.LEFT_SHIFT_ASSIGN, token.RIGHT_SHIFT_ASSIGN,
	token.AND_ASSIGN, token.OR_ASSIGN, token.XOR_ASSIGN,
}

// QuoteMeta 转义正则元字符，使 s 按字面匹配
func QuoteMeta(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(`\.+*?()|[]{}^$`, s[i]) >= 0 {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// Fingerprint 规则表摘要，顺序不同的规则表摘要不同
func Fingerprint(rules []nfa.Rule) string {
	h, _ := blake2b.New256(nil)
	for _, r := range rules {
		fmt.Fprintf(h, "%s\x00%s\n", r.Kind, r.Pattern)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// ============================================================================
// 规则文件
// ============================================================================

// tomlRuleFile TOML 规则文件
//
//	[[rule]]
//	kind = "IDENT"
//	pattern = "[a-zA-Z_][a-zA-Z0-9_]*"
type tomlRuleFile struct {
	Rules []tomlRule `toml:"rule"`
}

type tomlRule struct {
	Kind    string `toml:"kind"`
	Pattern string `toml:"pattern"`
}

// ParseRulesTOML 解析 TOML 格式的规则表
func ParseRulesTOML(data []byte, filename string) ([]nfa.Rule, error) {
	var file tomlRuleFile
	if err := toml.Unmarshal(data, &file); err != nil {
		line, col := 0, 0
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			line, col = decodeErr.Position()
		}
		return nil, cerrors.New(cerrors.L0004, filename, line, col, line, err.Error())
	}

	rules := make([]nfa.Rule, 0, len(file.Rules))
	for i, r := range file.Rules {
		kind, ok := token.Lookup(r.Kind)
		if !ok {
			return nil, cerrors.New(cerrors.L0002, filename, 0, 0, r.Kind, i)
		}
		rules = append(rules, nfa.Rule{Pattern: r.Pattern, Kind: kind})
	}
	if len(rules) == 0 {
		return nil, cerrors.New(cerrors.L0003, filename, 0, 0)
	}
	return rules, nil
}

// ParseRuleLines 解析行格式的规则表
//
// 每个非空行是 "KIND pattern"，种类名与模式之间至少一个空白，
// 模式取第一个空白之后的全部内容。以 # 开头的行是注释。
func ParseRuleLines(r io.Reader, filename string) ([]nfa.Rule, error) {
	var rules []nfa.Rule
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		text = strings.TrimLeft(text, " \t")
		sep := strings.IndexAny(text, " \t")
		if sep < 0 {
			return nil, cerrors.New(cerrors.L0004, filename, line, 1, line, text)
		}
		name := text[:sep]
		pattern := strings.TrimLeft(text[sep:], " \t")
		if pattern == "" {
			return nil, cerrors.New(cerrors.L0004, filename, line, 1, line, text)
		}

		kind, ok := token.Lookup(name)
		if !ok {
			return nil, cerrors.New(cerrors.L0002, filename, line, 1, name, len(rules))
		}
		rules = append(rules, nfa.Rule{Pattern: pattern, Kind: kind})
	}
	if err := scanner.Err(); err != nil {
		return nil, cerrors.New(cerrors.L0005, filename, 0, 0, err)
	}
	if len(rules) == 0 {
		return nil, cerrors.New(cerrors.L0003, filename, 0, 0)
	}
	return rules, nil
}

// LoadRules 从文件加载规则表，.toml 文件按 TOML 解析，其余按行格式解析
func LoadRules(path string) ([]nfa.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cerrors.New(cerrors.L0005, path, 0, 0, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseRulesTOML(data, path)
	}
	return ParseRuleLines(strings.NewReader(string(data)), path)
}

// BuildAutomaton 编译规则表，失败时返回 L0001 诊断
func BuildAutomaton(rules []nfa.Rule, filename string) (*nfa.Nfa, error) {
	n, err := nfa.New(rules)
	if err == nil {
		return n, nil
	}
	var ruleErr *nfa.RuleError
	if errors.As(err, &ruleErr) {
		return nil, cerrors.New(cerrors.L0001, filename, 0, 0, ruleErr.Index, ruleErr.Pattern, ruleErr.Err)
	}
	return nil, cerrors.New(cerrors.L0003, filename, 0, 0)
}

// ExportRules 把规则表写为行格式
func ExportRules(w io.Writer, rules []nfa.Rule) error {
	bw := bufio.NewWriter(w)
	for _, r := range rules {
		fmt.Fprintf(bw, "%s %s\n", r.Kind, r.Pattern)
	}
	return bw.Flush()
}
