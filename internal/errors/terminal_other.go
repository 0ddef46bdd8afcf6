//go:build !linux && !windows && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package errors

import "os"

// isTerminal 判断文件描述符是否为字符设备
func isTerminal(fd uintptr) bool {
	info, err := os.NewFile(fd, "").Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
