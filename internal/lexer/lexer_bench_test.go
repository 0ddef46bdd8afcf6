package lexer

import (
	"strings"
	"testing"
)

// ============================================================================
// Lexer 基准测试
// ============================================================================
//
// 运行基准测试：
//   go test -bench=. -benchmem ./internal/lexer/...
//
// ============================================================================

// 测试源码样本：模拟真实的 C 代码
var benchSource = `
/* 基准测试用的示例代码
 * 包含各种常见的语法结构
 */

struct point {
    int x;
    int y;
};

enum color { RED, GREEN = 4, BLUE };

static const char *names[3] = { "red", "green", "blue" };

unsigned long hash(const char *s, unsigned long seed) {
    unsigned long h = seed;
    while (*s) {
        h = h * 31u + *s++;   // 简单的乘法哈希
    }
    return h;
}

int main(void) {
    struct point p = { .x = 1, .y = 2 };
    double scale = 1.5e2;
    for (int i = 0; i < 100; ++i) {
        if (i % 3 == 0 && p.x <= 0x10) {
            p.x += i;
        } else {
            p.y -= i >> 1;
        }
    }
    switch (p.x) {
    case 1: return 'a';
    default: break;
    }
    return (int)(scale * p.y) ? 0 : 1;
}
`

// BenchmarkLexer 测试完整的词法分析性能
func BenchmarkLexer(b *testing.B) {
	automaton, err := DefaultAutomaton()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.SetBytes(int64(len(benchSource)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		lexer := New(benchSource, "bench.c", automaton)
		_ = lexer.ScanTokens()
	}
}

// BenchmarkLexerLargeFile 测试大文件的词法分析性能
func BenchmarkLexerLargeFile(b *testing.B) {
	automaton, err := DefaultAutomaton()
	if err != nil {
		b.Fatal(err)
	}
	largeSource := strings.Repeat(benchSource, 100)

	b.ReportAllocs()
	b.SetBytes(int64(len(largeSource)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		lexer := New(largeSource, "large.c", automaton)
		_ = lexer.ScanTokens()
	}
}

// BenchmarkLexerIdentifiers 测试标识符与关键字
func BenchmarkLexerIdentifiers(b *testing.B) {
	automaton, err := DefaultAutomaton()
	if err != nil {
		b.Fatal(err)
	}
	source := strings.Repeat("foo bar baz qux identifier variable ", 50) +
		strings.Repeat("if else for while return struct union ", 30) +
		strings.Repeat("int char long float void ", 20)

	b.ReportAllocs()
	b.SetBytes(int64(len(source)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		lexer := New(source, "idents.c", automaton)
		_ = lexer.ScanTokens()
	}
}

// BenchmarkDefaultAutomaton 测试内置规则表的编译
func BenchmarkDefaultAutomaton(b *testing.B) {
	rules := DefaultRules()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := BuildAutomaton(rules, "<builtin>"); err != nil {
			b.Fatal(err)
		}
	}
}
