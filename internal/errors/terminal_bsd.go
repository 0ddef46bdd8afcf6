//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package errors

import "golang.org/x/sys/unix"

// isTerminal 判断文件描述符是否连接到终端
func isTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), unix.TIOCGETA)
	return err == nil
}
