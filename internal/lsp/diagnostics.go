// Package lsp 把前端诊断转换为 LSP 的 publishDiagnostics 通知
package lsp

import (
	"path/filepath"
	"strings"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/multierr"

	cerrors "github.com/tangzhangming/ccfront/internal/errors"
)

// Source 诊断来源
const Source = "ccfront"

// DocumentURI 把文件路径转换为文档 URI
func DocumentURI(filename string) protocol.DocumentURI {
	if abs, err := filepath.Abs(filename); err == nil {
		filename = abs
	}
	return protocol.DocumentURI(uri.File(filename))
}

// Severity 诊断级别转换为 LSP 严重程度
func Severity(level cerrors.Level) protocol.DiagnosticSeverity {
	switch level {
	case cerrors.LevelWarning:
		return protocol.DiagnosticSeverityWarning
	case cerrors.LevelNote:
		return protocol.DiagnosticSeverityInformation
	case cerrors.LevelHelp:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}

// span 1-based 的行列转换为 0-based 的区间，长度至少为 1
func span(line, column, length int) protocol.Range {
	if line < 1 {
		line = 1
	}
	if column < 1 {
		column = 1
	}
	if length < 1 {
		length = 1
	}
	return protocol.Range{
		Start: protocol.Position{
			Line:      uint32(line - 1), // LSP 行号从 0 开始
			Character: uint32(column - 1),
		},
		End: protocol.Position{
			Line:      uint32(line - 1),
			Character: uint32(column - 1 + length),
		},
	}
}

// ToDiagnostic 转换单个诊断
//
// 附加说明与修复建议依次附加在消息之后，次要标签成为 RelatedInformation。
func ToDiagnostic(docURI protocol.DocumentURI, err *cerrors.CompileError) protocol.Diagnostic {
	length := 1
	if err.EndColumn > err.Column {
		length = err.EndColumn - err.Column
	}

	message := err.Message
	for _, extra := range [][]string{err.Notes, err.Hints} {
		if len(extra) > 0 {
			message += "\n" + strings.Join(extra, "\n")
		}
	}

	diag := protocol.Diagnostic{
		Range:    span(err.Line, err.Column, length),
		Severity: Severity(err.Level),
		Code:     err.Code,
		Source:   Source,
		Message:  message,
	}
	for _, label := range err.Labels {
		diag.RelatedInformation = append(diag.RelatedInformation, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{
				URI:   docURI,
				Range: span(label.Line, label.Column, label.Length),
			},
			Message: label.Message,
		})
	}
	return diag
}

// Diagnostics 展开 err 中的所有诊断，其他错误放在文件开头
func Diagnostics(docURI protocol.DocumentURI, err error) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for _, e := range multierr.Errors(err) {
		if ce, ok := e.(*cerrors.CompileError); ok {
			diagnostics = append(diagnostics, ToDiagnostic(docURI, ce))
			continue
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    span(1, 1, 1),
			Severity: protocol.DiagnosticSeverityError,
			Source:   Source,
			Message:  e.Error(),
		})
	}
	return diagnostics
}

// Publish 构造 textDocument/publishDiagnostics 的参数，警告排在错误之后
//
// err 为 nil 且没有警告时诊断列表为空，用于清空编辑器中的旧诊断。
func Publish(filename string, err error, warnings ...*cerrors.CompileError) protocol.PublishDiagnosticsParams {
	docURI := DocumentURI(filename)
	diagnostics := Diagnostics(docURI, err)
	for _, w := range warnings {
		diagnostics = append(diagnostics, ToDiagnostic(docURI, w))
	}
	return protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: diagnostics,
	}
}
