package lsp

import (
	"context"
	"fmt"
	"io"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// MethodPublishDiagnostics 诊断通知的方法名
const MethodPublishDiagnostics = "textDocument/publishDiagnostics"

// writeOnly 只写的连接，供 jsonrpc2.Stream 使用
type writeOnly struct {
	io.Writer
}

func (writeOnly) Read([]byte) (int, error) { return 0, io.EOF }
func (writeOnly) Close() error             { return nil }

// WriteNotification 以 Content-Length 分帧写出一条 publishDiagnostics 通知
func WriteNotification(ctx context.Context, w io.Writer, params protocol.PublishDiagnosticsParams) error {
	msg, err := jsonrpc2.NewNotification(MethodPublishDiagnostics, params)
	if err != nil {
		return fmt.Errorf("failed to build notification: %w", err)
	}
	if _, err := jsonrpc2.NewStream(writeOnly{w}).Write(ctx, msg); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}
	return nil
}
