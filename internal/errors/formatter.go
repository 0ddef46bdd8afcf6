package errors

import (
	"fmt"
	"strings"

	"github.com/tangzhangming/ccfront/internal/i18n"
)

// ============================================================================
// 错误标签
// ============================================================================

// Label 代码标签（用于标注错误位置）
type Label struct {
	Line    int    // 行号（1-based）
	Column  int    // 列号（1-based）
	Length  int    // 标注长度
	Message string // 标签消息
	Primary bool   // 是否为主要标签
}

// ============================================================================
// 编译错误
// ============================================================================

// CompileError 前端诊断
type CompileError struct {
	Code      string   // 错误码 (E0101)
	Level     Level    // 错误级别
	Kind      Kind     // 错误种类
	Message   string   // 主消息
	File      string   // 文件路径
	Line      int      // 行号
	Column    int      // 列号
	EndColumn int      // 结束列
	Labels    []Label  // 代码标签
	Hints     []string // 修复建议
	Notes     []string // 附加说明
}

// New 按错误码创建诊断，消息通过 i18n 翻译
func New(code, file string, line, column int, args ...interface{}) *CompileError {
	info, ok := GetErrorInfo(code)
	if !ok {
		info = ErrorInfo{Code: code, Level: LevelError, Kind: KindSyntax, MessageID: i18n.ErrSyntax}
	}
	return &CompileError{
		Code:    code,
		Level:   info.Level,
		Kind:    info.Kind,
		Message: i18n.T(info.MessageID, args...),
		File:    file,
		Line:    line,
		Column:  column,
	}
}

// WithSpan 设置标注长度
func (e *CompileError) WithSpan(length int) *CompileError {
	if length > 0 {
		e.EndColumn = e.Column + length
	}
	return e
}

// WithHint 追加修复建议
func (e *CompileError) WithHint(hints ...string) *CompileError {
	e.Hints = append(e.Hints, hints...)
	return e
}

// WithNote 追加附加说明
func (e *CompileError) WithNote(notes ...string) *CompileError {
	e.Notes = append(e.Notes, notes...)
	return e
}

// WithLabel 追加代码标签
func (e *CompileError) WithLabel(label Label) *CompileError {
	e.Labels = append(e.Labels, label)
	return e
}

// Error 实现 error 接口
func (e *CompileError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// IsFatal 是否终止解析
func (e *CompileError) IsFatal() bool {
	return e.Level == LevelError && (e.Kind == KindSyntax || e.Kind == KindSemantic)
}

// ============================================================================
// 格式化器
// ============================================================================

// Formatter 错误格式化器
type Formatter struct {
	Colors     bool // 是否使用颜色
	ShowSource bool // 是否显示源代码
	ShowHints  bool // 是否显示修复建议
	TabWidth   int  // Tab 宽度
}

// NewFormatter 创建默认格式化器
func NewFormatter() *Formatter {
	return &Formatter{
		Colors:     true,
		ShowSource: true,
		ShowHints:  true,
		TabWidth:   4,
	}
}

// FormatCompileError 格式化编译错误
func (f *Formatter) FormatCompileError(err *CompileError, sourceLines []string) string {
	var sb strings.Builder

	// 错误头: error[E0101]: redeclaration of 'i'
	levelStr := f.colorize(err.Level.String(), f.levelColor(err.Level))
	codeStr := f.colorize(fmt.Sprintf("[%s]", err.Code), f.levelColor(err.Level))
	sb.WriteString(fmt.Sprintf("%s%s: %s\n", levelStr, codeStr, err.Message))

	// 位置: --> main.c:5:12
	arrow := f.colorize("-->", ColorCyan)
	location := f.colorize(fmt.Sprintf("%s:%d:%d", err.File, err.Line, err.Column), ColorCyan)
	sb.WriteString(fmt.Sprintf(" %s %s\n", arrow, location))

	if f.ShowSource && len(sourceLines) > 0 && err.Line > 0 && err.Line <= len(sourceLines) {
		sb.WriteString(f.formatSourceContext(sourceLines, err.Line, err.Column, err.EndColumn, err.Labels))
	}

	if f.ShowHints {
		for _, hint := range err.Hints {
			hintLabel := f.colorize(" = help:", ColorCyan)
			sb.WriteString(fmt.Sprintf("%s %s\n", hintLabel, hint))
		}
	}

	for _, note := range err.Notes {
		noteLabel := f.colorize(" = note:", ColorCyan)
		sb.WriteString(fmt.Sprintf("%s %s\n", noteLabel, note))
	}

	return sb.String()
}

// formatSourceContext 格式化源代码上下文
func (f *Formatter) formatSourceContext(lines []string, errorLine, startCol, endCol int, labels []Label) string {
	var sb strings.Builder

	maxLine := errorLine
	for _, label := range labels {
		if label.Line > maxLine && label.Line <= len(lines) {
			maxLine = label.Line
		}
	}
	lineNumWidth := len(fmt.Sprintf("%d", maxLine))

	separator := f.colorize(strings.Repeat(" ", lineNumWidth)+" |", ColorBlue)
	sb.WriteString(separator + "\n")

	line := lines[errorLine-1]
	lineNum := f.colorize(fmt.Sprintf("%*d", lineNumWidth, errorLine), ColorBlue)
	pipe := f.colorize(" |", ColorBlue)
	sb.WriteString(fmt.Sprintf("%s%s %s\n", lineNum, pipe, f.expandTabs(line)))

	if endCol == 0 {
		endCol = startCol + 1
	}
	length := endCol - startCol
	if length < 1 {
		length = 1
	}
	actualCol := f.calculateActualColumn(line, startCol)
	underline := strings.Repeat(" ", lineNumWidth+3+actualCol-1) +
		f.colorize(strings.Repeat("^", length), ColorRed)
	sb.WriteString(underline + "\n")

	// 额外的标签，例如先前的声明位置
	for _, label := range labels {
		if label.Line == errorLine || label.Line <= 0 || label.Line > len(lines) {
			continue
		}
		line := lines[label.Line-1]
		lineNum := f.colorize(fmt.Sprintf("%*d", lineNumWidth, label.Line), ColorBlue)
		sb.WriteString(fmt.Sprintf("%s%s %s\n", lineNum, pipe, f.expandTabs(line)))

		if label.Message != "" {
			n := label.Length
			if n < 1 {
				n = 1
			}
			actualCol := f.calculateActualColumn(line, label.Column)
			msgLine := strings.Repeat(" ", lineNumWidth+3+actualCol-1) +
				f.colorize(strings.Repeat("-", n)+" "+label.Message, f.labelColor(label.Primary))
			sb.WriteString(msgLine + "\n")
		}
	}

	return sb.String()
}

// expandTabs 展开 Tab 为空格
func (f *Formatter) expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", f.TabWidth))
}

// calculateActualColumn 计算实际列位置（考虑 Tab），结果为 1-based
func (f *Formatter) calculateActualColumn(line string, col int) int {
	if col <= 0 {
		return 1
	}
	actual := 1
	for i := 0; i < col-1 && i < len(line); i++ {
		if line[i] == '\t' {
			actual += f.TabWidth
		} else {
			actual++
		}
	}
	return actual
}

// levelColor 获取错误级别对应的颜色
func (f *Formatter) levelColor(level Level) Color {
	switch level {
	case LevelError:
		return ColorRed
	case LevelWarning:
		return ColorYellow
	case LevelNote:
		return ColorCyan
	case LevelHelp:
		return ColorGreen
	default:
		return ColorWhite
	}
}

// labelColor 获取标签颜色
func (f *Formatter) labelColor(primary bool) Color {
	if primary {
		return ColorRed
	}
	return ColorYellow
}

// colorize 着色字符串
func (f *Formatter) colorize(s string, color Color) string {
	if !f.Colors {
		return s
	}
	return Colorize(s, color)
}

// ============================================================================
// 汇总
// ============================================================================

// summaryMessage 错误计数文本
func summaryMessage(n int) string {
	if n == 1 {
		return i18n.T(i18n.MsgErrorSingle)
	}
	return i18n.T(i18n.MsgErrorCount, n)
}

// warningSummaryMessage 警告计数文本
func warningSummaryMessage(n int) string {
	if n == 1 {
		return i18n.T(i18n.MsgWarningSingle)
	}
	return i18n.T(i18n.MsgWarningCount, n)
}
