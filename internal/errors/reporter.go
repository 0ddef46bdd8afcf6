package errors

import (
	"bufio"
	"io"
	"os"
	"strings"

	"go.uber.org/multierr"
)

// ============================================================================
// 错误报告器
// ============================================================================

// Reporter 错误报告器，把诊断格式化后写入 out
type Reporter struct {
	out         io.Writer
	formatter   *Formatter
	sourceCache map[string][]string // 源代码缓存
	errors      []*CompileError
	warnings    []*CompileError
}

// NewReporter 创建错误报告器，out 为 nil 时写入标准错误
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stderr
	}
	return &Reporter{
		out:         out,
		formatter:   NewFormatter(),
		sourceCache: make(map[string][]string),
	}
}

// SetFormatter 设置格式化器
func (r *Reporter) SetFormatter(f *Formatter) {
	r.formatter = f
}

// LoadSource 加载源文件
func (r *Reporter) LoadSource(filename string) error {
	if _, ok := r.sourceCache[filename]; ok {
		return nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	r.sourceCache[filename] = lines
	return nil
}

// SetSource 设置源代码（用于测试或内存中的源代码）
func (r *Reporter) SetSource(filename string, content string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	r.sourceCache[filename] = strings.Split(content, "\n")
}

// GetSourceLines 获取源代码行数组
func (r *Reporter) GetSourceLines(filename string) []string {
	return r.sourceCache[filename]
}

// ============================================================================
// 报告
// ============================================================================

// ReportError 报告诊断，警告级别的诊断计入警告
func (r *Reporter) ReportError(err *CompileError) {
	if err == nil {
		return
	}
	if err.File != "" {
		_ = r.LoadSource(err.File)
	}

	if len(err.Hints) == 0 {
		err.Hints = GetSuggestions(err.Code, map[string]interface{}{
			"file":    err.File,
			"line":    err.Line,
			"message": err.Message,
		})
	}

	if err.Level == LevelWarning {
		r.warnings = append(r.warnings, err)
	} else {
		r.errors = append(r.errors, err)
	}

	io.WriteString(r.out, r.formatter.FormatCompileError(err, r.GetSourceLines(err.File)))
}

// ReportWarning 报告警告
func (r *Reporter) ReportWarning(err *CompileError) {
	err.Level = LevelWarning
	r.ReportError(err)
}

// ReportAll 报告 err 中包含的全部诊断
//
// err 可以是单个 *CompileError，也可以是 multierr 合并后的错误；
// 其它错误按 E0001 报告。
func (r *Reporter) ReportAll(err error) {
	for _, e := range multierr.Errors(err) {
		if ce, ok := e.(*CompileError); ok {
			r.ReportError(ce)
			continue
		}
		r.ReportError(&CompileError{
			Code:    E0001,
			Level:   LevelError,
			Kind:    KindConfig,
			Message: e.Error(),
		})
	}
}

// Summary 输出警告与错误计数
func (r *Reporter) Summary() {
	if !r.HasErrors() && !r.HasWarnings() {
		return
	}
	io.WriteString(r.out, "\n")
	if r.HasWarnings() {
		msg := r.formatter.colorize(warningSummaryMessage(r.WarningCount()), ColorYellow)
		io.WriteString(r.out, msg+"\n")
	}
	if r.HasErrors() {
		msg := r.formatter.colorize(summaryMessage(r.ErrorCount()), ColorRed)
		io.WriteString(r.out, msg+"\n")
	}
}

// ============================================================================
// 状态查询
// ============================================================================

// HasErrors 是否有错误
func (r *Reporter) HasErrors() bool {
	return len(r.errors) > 0
}

// HasWarnings 是否有警告
func (r *Reporter) HasWarnings() bool {
	return len(r.warnings) > 0
}

// ErrorCount 错误数量
func (r *Reporter) ErrorCount() int {
	return len(r.errors)
}

// WarningCount 警告数量
func (r *Reporter) WarningCount() int {
	return len(r.warnings)
}

// ============================================================================
// 合并
// ============================================================================

// Combine 用 multierr 合并多个诊断
func Combine(errs []*CompileError) error {
	var err error
	for _, e := range errs {
		err = multierr.Append(err, e)
	}
	return err
}

// Diagnostics 从 error 中取出所有 *CompileError
func Diagnostics(err error) []*CompileError {
	var out []*CompileError
	for _, e := range multierr.Errors(err) {
		if ce, ok := e.(*CompileError); ok {
			out = append(out, ce)
		}
	}
	return out
}
